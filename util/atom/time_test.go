package atom

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/curtisnewbie/timeaxis/util/testutil"
)

// 2024-03-15T10:30:00Z, a Friday
const refMilli int64 = 1710498600000

func utc(y int, m time.Month, d, hh, mm, ss, ms int) Time {
	return WrapTime(time.Date(y, m, d, hh, mm, ss, ms*int(time.Millisecond), time.UTC))
}

func loadLoc(t *testing.T, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func TestBoundaries(t *testing.T) {
	n := UnixMilli(refMilli, nil)
	t.Logf("ref: %v", n)

	testutil.TestEqual(t, utc(2024, 3, 15, 10, 30, 0, 0).UnixMilli(), n.StartOfSec().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 15, 10, 30, 0, 999).UnixMilli(), n.EndOfSec().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 15, 10, 30, 59, 999).UnixMilli(), n.EndOfMin().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 15, 10, 0, 0, 0).UnixMilli(), n.StartOfHour().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 15, 10, 59, 59, 999).UnixMilli(), n.EndOfHour().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 15, 0, 0, 0, 0).UnixMilli(), n.StartOfDay().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 15, 23, 59, 59, 999).UnixMilli(), n.EndOfDay().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 10, 0, 0, 0, 0).UnixMilli(), n.StartOfWeek(time.Sunday).UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 16, 23, 59, 59, 999).UnixMilli(), n.EndOfWeek(time.Sunday).UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 11, 0, 0, 0, 0).UnixMilli(), n.StartOfISOWeek().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 17, 23, 59, 59, 999).UnixMilli(), n.EndOfWeek(time.Monday).UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 1, 0, 0, 0, 0).UnixMilli(), n.StartOfMonth().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 31, 23, 59, 59, 999).UnixMilli(), n.EndOfMonth().UnixMilli())
	testutil.TestEqual(t, utc(2024, 1, 1, 0, 0, 0, 0).UnixMilli(), n.StartOfQuarter().UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 31, 23, 59, 59, 999).UnixMilli(), n.EndOfQuarter().UnixMilli())
	testutil.TestEqual(t, utc(2024, 1, 1, 0, 0, 0, 0).UnixMilli(), n.StartOfYear().UnixMilli())
	testutil.TestEqual(t, utc(2024, 12, 31, 23, 59, 59, 999).UnixMilli(), n.EndOfYear().UnixMilli())

	// already on the first day of week
	sun := utc(2024, 3, 10, 8, 0, 0, 0)
	testutil.TestEqual(t, utc(2024, 3, 10, 0, 0, 0, 0).UnixMilli(), sun.StartOfWeek(time.Sunday).UnixMilli())
	testutil.TestEqual(t, utc(2024, 3, 4, 0, 0, 0, 0).UnixMilli(), sun.StartOfISOWeek().UnixMilli())
}

func TestBoundariesInZone(t *testing.T) {
	kolkata := loadLoc(t, "Asia/Kolkata")
	n := UnixMilli(refMilli, kolkata) // 16:00 +05:30
	testutil.TestEqual(t, 16, n.Hour())
	testutil.TestEqual(t, time.Date(2024, 3, 15, 16, 0, 0, 0, kolkata).UnixMilli(), n.StartOfHour().UnixMilli())
	testutil.TestEqual(t, time.Date(2024, 3, 15, 0, 0, 0, 0, kolkata).UnixMilli(), n.StartOfDay().UnixMilli())
	testutil.TestEqual(t, time.Date(2024, 3, 1, 0, 0, 0, 0, kolkata).UnixMilli(), n.StartOfMonth().UnixMilli())
}

func TestBoundariesAcrossDST(t *testing.T) {
	ny := loadLoc(t, "America/New_York")

	// 2024-11-03 01:30 EST, the second 01:30 of the day
	n := UnixMilli(time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC).UnixMilli(), ny)
	testutil.TestEqual(t, -5*3600, n.Offset())
	testutil.TestTrue(t, !n.StartOfHour().After(n))
	testutil.TestTrue(t, !n.EndOfHour().Before(n))
	testutil.TestEqual(t, int64(30*60*1000), n.DiffMillis(n.StartOfHour()))

	day := n.StartOfDay()
	testutil.TestEqual(t, 0, day.Hour())
	testutil.TestEqual(t, 3, day.Day())
	end := n.EndOfDay()
	testutil.TestEqual(t, 23, end.Hour())
	testutil.TestEqual(t, 999, end.Nanosecond()/int(time.Millisecond))
}

func TestAddMonthsClamp(t *testing.T) {
	testutil.TestEqual(t, utc(2024, 2, 29, 0, 0, 0, 0).UnixMilli(), utc(2024, 1, 31, 0, 0, 0, 0).AddMonths(1).UnixMilli())
	testutil.TestEqual(t, utc(2023, 2, 28, 0, 0, 0, 0).UnixMilli(), utc(2023, 1, 31, 0, 0, 0, 0).AddMonths(1).UnixMilli())
	testutil.TestEqual(t, utc(2024, 2, 29, 6, 0, 0, 0).UnixMilli(), utc(2024, 3, 31, 6, 0, 0, 0).AddMonths(-1).UnixMilli())
	testutil.TestEqual(t, utc(2023, 12, 31, 0, 0, 0, 0).UnixMilli(), utc(2024, 1, 31, 0, 0, 0, 0).AddMonths(-1).UnixMilli())
	testutil.TestEqual(t, utc(2025, 2, 28, 0, 0, 0, 0).UnixMilli(), utc(2024, 2, 29, 0, 0, 0, 0).AddYears(1).UnixMilli())
	testutil.TestEqual(t, utc(2024, 6, 30, 0, 0, 0, 0).UnixMilli(), utc(2024, 3, 31, 0, 0, 0, 0).AddQuarters(1).UnixMilli())
	testutil.TestEqual(t, utc(2021, 1, 15, 0, 0, 0, 0).UnixMilli(), utc(2024, 1, 15, 0, 0, 0, 0).AddMonths(-36).UnixMilli())
}

func TestAddFixedAndDays(t *testing.T) {
	n := UnixMilli(refMilli, nil)
	testutil.TestEqual(t, refMilli+1, n.AddMillis(1).UnixMilli())
	testutil.TestEqual(t, refMilli-90_000, n.AddSeconds(-90).UnixMilli())
	testutil.TestEqual(t, refMilli+5*MilliPerMinute, n.AddMinutes(5).UnixMilli())
	testutil.TestEqual(t, refMilli+48*MilliPerHour, n.AddHours(48).UnixMilli())
	testutil.TestEqual(t, refMilli+2*MilliPerWeek, n.AddWeeks(2).UnixMilli())

	// wall clock is kept across DST
	ny := loadLoc(t, "America/New_York")
	sat := WrapTime(time.Date(2024, 3, 9, 12, 0, 0, 0, ny))
	sun := sat.AddDays(1)
	testutil.TestEqual(t, 12, sun.Hour())
	testutil.TestEqual(t, int64(23*MilliPerHour), sun.DiffMillis(sat))

	// clamped instead of overflowing
	testutil.TestFalse(t, n.AddHours(1<<62).IsValid())
	testutil.TestFalse(t, n.AddMillis(-(1 << 62)).IsValid())
	testutil.TestFalse(t, n.AddYears(1<<40).IsValid())
}

func TestDiff(t *testing.T) {
	ny := loadLoc(t, "America/New_York")
	u := WrapTime(time.Date(2024, 3, 10, 0, 0, 0, 0, ny))
	v := WrapTime(time.Date(2024, 3, 11, 0, 0, 0, 0, ny))
	testutil.TestEqual(t, int64(23*MilliPerHour), v.DiffMillis(u))
	testutil.TestEqual(t, 1.0, v.DiffDays(u))
	testutil.TestEqual(t, -1.0, u.DiffDays(v))

	n := UnixMilli(refMilli, nil)
	testutil.TestEqual(t, int64(1), Trunc(n.DiffWeeks(n.AddDays(-13))))
	testutil.TestEqual(t, int64(-1), Trunc(n.DiffWeeks(n.AddDays(13))))
}

func TestMonthDiff(t *testing.T) {
	testutil.TestEqual(t, 1.0, utc(2024, 2, 29, 0, 0, 0, 0).MonthDiff(utc(2024, 1, 31, 0, 0, 0, 0)))
	testutil.TestEqual(t, 1.0, utc(2024, 4, 1, 0, 0, 0, 0).MonthDiff(utc(2024, 3, 1, 0, 0, 0, 0)))
	testutil.TestEqual(t, -1.0, utc(2024, 3, 1, 0, 0, 0, 0).MonthDiff(utc(2024, 4, 1, 0, 0, 0, 0)))
	testutil.TestEqual(t, 12.0, utc(2025, 3, 15, 0, 0, 0, 0).MonthDiff(utc(2024, 3, 15, 0, 0, 0, 0)))

	half := utc(2024, 3, 15, 10, 30, 0, 0).MonthDiff(utc(2024, 3, 1, 0, 0, 0, 0))
	testutil.TestTrue(t, half > 0 && half < 1)
	testutil.TestEqual(t, int64(0), Trunc(half))

	testutil.TestEqual(t, int64(2), Trunc(utc(2024, 3, 15, 0, 0, 0, 0).MonthDiff(utc(2024, 1, 1, 0, 0, 0, 0))))
	testutil.TestEqual(t, int64(-2), Trunc(utc(2024, 1, 1, 0, 0, 0, 0).MonthDiff(utc(2024, 3, 15, 0, 0, 0, 0))))
}

func TestWeek(t *testing.T) {
	n := UnixMilli(refMilli, nil)
	testutil.TestEqual(t, 11, n.Week(time.Sunday, 1))
	_, iso := n.ISOWeek()
	testutil.TestEqual(t, 11, iso)

	// belongs to week 1 of next year
	testutil.TestEqual(t, 1, utc(2024, 12, 29, 0, 0, 0, 0).Week(time.Sunday, 1))

	// belongs to the last week of previous year
	testutil.TestEqual(t, 53, utc(2021, 1, 1, 0, 0, 0, 0).Week(time.Monday, 4))
	testutil.TestEqual(t, 1, utc(2021, 1, 4, 0, 0, 0, 0).Week(time.Monday, 4))
}

func TestIsValid(t *testing.T) {
	testutil.TestTrue(t, UnixMilli(MaxUnixMilli, nil).IsValid())
	testutil.TestTrue(t, UnixMilli(-MaxUnixMilli, nil).IsValid())
	testutil.TestFalse(t, UnixMilli(MaxUnixMilli+1, nil).IsValid())
	testutil.TestFalse(t, UnixMilli(-MaxUnixMilli-1, nil).IsValid())
}

func TestTrunc(t *testing.T) {
	testutil.TestEqual(t, int64(1), Trunc(1.9))
	testutil.TestEqual(t, int64(-1), Trunc(-1.9))
	testutil.TestEqual(t, int64(0), Trunc(-0.2))
}

func TestSkippedMidnight(t *testing.T) {
	havana := loadLoc(t, "America/Havana")

	// 2024-03-10 00:00 -05:00 jumps to 01:00 -04:00
	dayStart := int64(1710046800000)
	noon := UnixMilli(time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC).UnixMilli(), havana)
	start := noon.StartOfDay()
	testutil.TestEqual(t, dayStart, start.UnixMilli())
	testutil.TestEqual(t, "2024-03-10 01:00:00.000 -04:00", start.Format("2006-01-02 15:04:05.000 -07:00"))
	testutil.TestEqual(t, dayStart, start.StartOfDay().UnixMilli())
	testutil.TestEqual(t, dayStart, noon.StartOfWeek(time.Sunday).UnixMilli())

	// 23:30 -05:00 of the day before ends right before the gap
	late := UnixMilli(1710045000000, havana)
	testutil.TestEqual(t, dayStart-1, late.EndOfDay().UnixMilli())
	testutil.TestEqual(t, int64(1709960400000), late.StartOfDay().UnixMilli())
	testutil.TestEqual(t, dayStart-1, late.EndOfWeek(time.Sunday).UnixMilli())

	saoPaulo := loadLoc(t, "America/Sao_Paulo")
	sp := UnixMilli(time.Date(2018, 11, 4, 14, 0, 0, 0, time.UTC).UnixMilli(), saoPaulo)
	testutil.TestEqual(t, int64(1541300400000), sp.StartOfDay().UnixMilli())
	testutil.TestEqual(t, 1, sp.StartOfDay().Hour())
}

func TestRepeatedMidnight(t *testing.T) {
	havana := loadLoc(t, "America/Havana")

	// 2024-11-03 01:00 -04:00 falls back to 00:00 -05:00, the second 00:30 belongs to the same day
	second := UnixMilli(1730611800000, havana)
	testutil.TestEqual(t, -5*3600, second.Offset())
	start := second.StartOfDay()
	testutil.TestEqual(t, int64(1730606400000), start.UnixMilli())
	testutil.TestEqual(t, -4*3600, start.Offset())
	testutil.TestEqual(t, int64(1730606400000-1), UnixMilli(1730606400000-1, havana).EndOfDay().UnixMilli())
}

func TestHalfHourShift(t *testing.T) {
	lordHowe := loadLoc(t, "Australia/Lord_Howe")

	// 2024-04-07 02:00 +11:00 falls back to 01:30 +10:30, 01:45 +10:30 is in the repeated half hour
	fall := UnixMilli(1712416500000, lordHowe)
	testutil.TestEqual(t, int64(1712412000000), fall.StartOfHour().UnixMilli())
	testutil.TestEqual(t, int64(1712412000000), fall.StartOfHour().StartOfHour().UnixMilli())
	testutil.TestEqual(t, int64(1712417399999), fall.EndOfHour().UnixMilli())
	testutil.TestEqual(t, int64(1712412000000), fall.EndOfHour().StartOfHour().UnixMilli())

	// 2024-10-06 02:00 +10:30 jumps to 02:30 +11:00, hour 2 starts at 02:30
	spring := UnixMilli(1728143100000, lordHowe)
	start := spring.StartOfHour()
	testutil.TestEqual(t, int64(1728142200000), start.UnixMilli())
	testutil.TestEqual(t, 30, start.Minute())
	testutil.TestEqual(t, int64(1728142200000), start.StartOfHour().UnixMilli())
	testutil.TestEqual(t, int64(1728143999999), spring.EndOfHour().UnixMilli())
}

func TestAddDaysAcrossGap(t *testing.T) {
	havana := loadLoc(t, "America/Havana")

	// 2024-03-09 00:30 -05:00, 00:30 of the next day doesn't exist
	n := UnixMilli(1709962200000, havana)
	testutil.TestEqual(t, int64(1710048600000), n.AddDays(1).UnixMilli())
	testutil.TestEqual(t, "01:30", n.AddDays(1).Format("15:04"))
	testutil.TestEqual(t, int64(1710131400000), n.AddDays(2).UnixMilli())
	testutil.TestEqual(t, "00:30", n.AddDays(2).Format("15:04"))

	// month arithmetic resolves on the wall clock too
	feb := UnixMilli(time.Date(2024, 2, 10, 5, 30, 0, 0, time.UTC).UnixMilli(), havana)
	testutil.TestEqual(t, int64(1710048600000), feb.AddMonths(1).UnixMilli())
}

func TestBoundaryInvariants(t *testing.T) {
	type boundary struct {
		name  string
		start func(Time) Time
		end   func(Time) Time
	}
	boundaries := []boundary{
		{"second", Time.StartOfSec, Time.EndOfSec},
		{"minute", Time.StartOfMin, Time.EndOfMin},
		{"hour", Time.StartOfHour, Time.EndOfHour},
		{"day", Time.StartOfDay, Time.EndOfDay},
		{"week", func(t Time) Time { return t.StartOfWeek(time.Sunday) }, func(t Time) Time { return t.EndOfWeek(time.Sunday) }},
		{"month", Time.StartOfMonth, Time.EndOfMonth},
		{"quarter", Time.StartOfQuarter, Time.EndOfQuarter},
		{"year", Time.StartOfYear, Time.EndOfYear},
	}
	zones := []string{"UTC", "America/New_York", "America/Havana", "America/Sao_Paulo", "Australia/Lord_Howe",
		"Pacific/Apia", "Asia/Beirut"}

	// 2011-06-01T00:00Z onwards, the prime step visits every time of day
	const step = 7*MilliPerHour + 17*MilliPerMinute + 13*MilliPerSecond + 7
	for _, zone := range zones {
		loc := loadLoc(t, zone)
		for ms := int64(1306886400000); ms < 1577836800000; ms += step {
			n := UnixMilli(ms, loc)
			for _, b := range boundaries {
				start, end := b.start(n), b.end(n)
				if start.After(n) || end.Before(n) {
					t.Fatalf("%v %v of %v: [%v, %v]", zone, b.name, n, start, end)
				}
				if !b.start(start).Equal(start.Time) || !b.start(end).Equal(start.Time) || !b.end(end).Equal(end.Time) {
					t.Fatalf("%v %v of %v is not stable: [%v, %v]", zone, b.name, n, start, end)
				}
			}
		}
	}
}
