package atom

import (
	"errors"
	"testing"
	"time"

	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/testutil"
)

func fixedClockCalendar(loc *time.Location) *Calendar {
	cal := NewCalendar(loc, English())
	cal.Now = func() time.Time { return time.UnixMilli(refMilli) }
	return cal
}

func TestParseLayout(t *testing.T) {
	cal := fixedClockCalendar(time.UTC)

	cases := []struct {
		value   string
		pattern string
		milli   int64
	}{
		{"2024-03-15 10:30:00.123", "YYYY-MM-DD HH:mm:ss.SSS", refMilli + 123},
		{"Mar 15, 2024, 10:30:00 AM", "MMM D, YYYY, h:mm:ss A", refMilli},
		{"March 15 2024 10:30", "MMMM D YYYY HH:mm", refMilli},
		{"3/15/24 10:30 PM", "M/D/YY h:mm A", refMilli + 12*MilliPerHour},
		{"15th of Mar 2024, 10:30:00 am", "Do [of] MMM YYYY, hh:mm:ss a", refMilli},
		{"2024-03-15T10:30:00+08:00", "YYYY-MM-DDTHH:mm:ssZ", refMilli - 8*MilliPerHour},
		{"2024-03-15T10:30:00-0130", "YYYY-MM-DDTHH:mm:ssZZ", refMilli + 90*MilliPerMinute},
		{"2024-03-15T10:30:00Z", "YYYY-MM-DDTHH:mm:ssZ", refMilli},
		{"Fri 2024-03-15 10:30", "ddd YYYY-MM-DD HH:mm", refMilli},
		{"1710498600", "X", refMilli},
		{"1710498600.5", "X", refMilli + 500},
		{"1710498600123", "x", refMilli + 123},
		{"12:00 AM 2024-03-15", "hh:mm A YYYY-MM-DD", refMilli - 10*MilliPerHour - 30*MilliPerMinute},
		{"24:30 2024-03-15", "kk:mm YYYY-MM-DD", refMilli - 10*MilliPerHour},
		{"2024 Q2", "YYYY [Q]Q", utc(2024, 4, 1, 0, 0, 0, 0).UnixMilli()},
		{"2023", "YYYY", utc(2023, 1, 1, 0, 0, 0, 0).UnixMilli()},
		{"08:15", "HH:mm", utc(2024, 3, 15, 8, 15, 0, 0).UnixMilli()},
		{"03/15/2024", "L", utc(2024, 3, 15, 0, 0, 0, 0).UnixMilli()},
	}
	for _, c := range cases {
		v, err := cal.ParseLayout(c.value, c.pattern)
		if err != nil {
			t.Fatalf("failed to parse '%v' with '%v', %v", c.value, c.pattern, err)
		}
		testutil.TestEqual(t, c.milli, v.UnixMilli())
	}
}

func TestParseLayoutTwoDigitYear(t *testing.T) {
	cal := fixedClockCalendar(time.UTC)
	v, err := cal.ParseLayout("69", "YY")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, 1969, v.Year())

	v, err = cal.ParseLayout("68", "YY")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, 2068, v.Year())
}

func TestParseLayoutInZone(t *testing.T) {
	tokyo := loadLoc(t, "Asia/Tokyo")
	cal := fixedClockCalendar(tokyo)
	v, err := cal.ParseLayout("2024-03-15 19:30", "YYYY-MM-DD HH:mm")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, refMilli, v.UnixMilli())
	testutil.TestEqual(t, tokyo, v.Location())

	// explicit offset wins, result is still in calendar's location
	v, err = cal.ParseLayout("2024-03-15 10:30 +00:00", "YYYY-MM-DD HH:mm Z")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, refMilli, v.UnixMilli())
	testutil.TestEqual(t, 19, v.Hour())
}

func TestParseLayoutMismatch(t *testing.T) {
	cal := fixedClockCalendar(time.UTC)

	unparsable := [][2]string{
		{"2024-13-01", "YYYY-MM-DD"},
		{"2024-02-30", "YYYY-MM-DD"},
		{"2023-02-29", "YYYY-MM-DD"},
		{"2024-03-15x", "YYYY-MM-DD"},
		{"2024-03", "YYYY-MM-DD"},
		{"24-03-15", "YYYY-MM-DD"},
		{"2024/03/15", "YYYY-MM-DD"},
		{"13:00 PM", "h:mm A"},
		{"00:10 AM", "hh:mm A"},
		{"10:60", "HH:mm"},
		{"25:00", "HH:mm"},
		{"Sat 2024-03-15", "ddd YYYY-MM-DD"},
		{"Foo 15 2024", "MMM D YYYY"},
		{"2024 Q5", "YYYY [Q]Q"},
		{"", "YYYY"},
		{"abc", "x"},
	}
	for _, c := range unparsable {
		_, err := cal.ParseLayout(c[0], c[1])
		if err == nil {
			t.Fatalf("'%v' with '%v' should not be parsed", c[0], c[1])
		}
		testutil.TestTrue(t, errors.Is(err, errs.ErrUnparsableTime))
	}

	invalid := []string{"", "[YYYY", "YYYY w", "WW"}
	for _, p := range invalid {
		_, err := cal.ParseLayout("2024", p)
		if err == nil {
			t.Fatalf("pattern '%v' should be rejected", p)
		}
		testutil.TestTrue(t, errors.Is(err, errs.ErrInvalidPattern))
		testutil.TestEqual(t, errs.ErrCodeInvalidPattern, errs.CodeOf(err))
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, zone := range []string{"UTC", "America/New_York", "Asia/Kolkata", "Australia/Lord_Howe"} {
		cal := NewCalendar(loadLoc(t, zone), English())
		for _, ms := range []int64{refMilli + 123, 0, -1, 951782400999, 4102444799999} {
			for _, p := range []string{"YYYY-MM-DDTHH:mm:ss.SSSZ", "YYYY-MM-DD HH:mm:ss.SSS ZZ", "x"} {
				s := cal.Format(cal.Time(ms), p)
				v, err := cal.ParseLayout(s, p)
				testutil.TestNoErr(t, err)
				testutil.TestEqual(t, ms, v.UnixMilli())
			}
		}
	}
}

func TestParseFree(t *testing.T) {
	cal := NewCalendar(time.UTC, nil)

	cases := map[string]int64{
		"2024-03-15T10:30:00Z":          refMilli,
		"2024-03-15T18:30:00+08:00":     refMilli,
		"2024-03-15T10:30:00.123Z":      refMilli + 123,
		"2024-03-15 10:30":              refMilli,
		"2024/3/15 10:30:00":            refMilli,
		"2024-03-15T10:30:00.5":         refMilli + 500,
		"2024-03-15 10:30:00.123456":    refMilli + 123,
		"20240315":                      utc(2024, 3, 15, 0, 0, 0, 0).UnixMilli(),
		"2024":                          utc(2024, 1, 1, 0, 0, 0, 0).UnixMilli(),
		"2024-03":                       utc(2024, 3, 1, 0, 0, 0, 0).UnixMilli(),
		"2024-01-32":                    utc(2024, 2, 1, 0, 0, 0, 0).UnixMilli(),
		"Fri, 15 Mar 2024 10:30:00 GMT": refMilli,
		"Mar 15, 2024":                  utc(2024, 3, 15, 0, 0, 0, 0).UnixMilli(),
		" 15 March 2024 ":               utc(2024, 3, 15, 0, 0, 0, 0).UnixMilli(),
	}
	for s, expected := range cases {
		v, err := cal.ParseFree(s)
		if err != nil {
			t.Fatalf("failed to parse '%v', %v", s, err)
		}
		testutil.TestEqual(t, expected, v.UnixMilli())
	}

	for _, s := range []string{"", "garbage", "15/03/2024", "not a time 2024"} {
		_, err := cal.ParseFree(s)
		if err == nil {
			t.Fatalf("'%v' should not be parsed", s)
		}
		testutil.TestTrue(t, errors.Is(err, errs.ErrUnparsableTime))
	}
}

func TestParseFreeLocal(t *testing.T) {
	cal := NewCalendar(loadLoc(t, "Asia/Tokyo"), nil)
	v, err := cal.ParseFree("2024-03-15")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, utc(2024, 3, 14, 15, 0, 0, 0).UnixMilli(), v.UnixMilli())

	// absolute values keep their own offset
	v, err = cal.ParseFree("2024-03-15T10:30:00Z")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, refMilli, v.UnixMilli())
	testutil.TestEqual(t, 19, v.Hour())
}

func TestAddTimeParseFormat(t *testing.T) {
	cal := NewCalendar(time.UTC, nil)
	_, err := cal.ParseFree("15.03.2024 10:30")
	testutil.TestTrue(t, err != nil)

	AddTimeParseFormat("02.01.2006 15:04", "02.01.2006 15:04")
	v, err := cal.ParseFree("15.03.2024 10:30")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, refMilli, v.UnixMilli())
}

func TestParseEpochOutOfRange(t *testing.T) {
	cal := fixedClockCalendar(time.UTC)

	for _, c := range [][2]string{
		{"18446744073709552", "X"},
		{"-8640000000001", "X"},
		{"8640000000000.5", "X"},
		{"8640000000000000001", "x"},
	} {
		_, err := cal.ParseLayout(c[0], c[1])
		if err == nil {
			t.Fatalf("'%v' with '%v' should be out of range", c[0], c[1])
		}
		testutil.TestTrue(t, errors.Is(err, errs.ErrUnparsableTime))
	}

	v, err := cal.ParseLayout("8640000000000", "X")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, MaxUnixMilli, v.UnixMilli())

	v, err = cal.ParseLayout("-8640000000000000", "x")
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, -MaxUnixMilli, v.UnixMilli())
}
