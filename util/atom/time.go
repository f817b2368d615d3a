package atom

import (
	"math"
	"strconv"
	"time"
)

const (
	// Max distance to the epoch in milliseconds, 100,000,000 days on both sides.
	MaxUnixMilli int64 = 8_640_000_000_000_000

	MilliPerSecond int64 = 1000
	MilliPerMinute int64 = 60 * MilliPerSecond
	MilliPerHour   int64 = 60 * MilliPerMinute
	MilliPerDay    int64 = 24 * MilliPerHour
	MilliPerWeek   int64 = 7 * MilliPerDay

	StdDateTimeMilliFormat = "2006-01-02 15:04:05.000"
	SQLDateFormat          = "2006-01-02"
)

// Enhanced wrapper of time.Time.
//
// Every boundary and arithmetic method works on the wall clock of the location the Time is in.
//
// To cast from time.Time to Time, use [WrapTime] method. To cast from Time to time.Time, use [Time.Unwrap] method.
type Time struct {
	time.Time
}

func Now() Time {
	return WrapTime(time.Now())
}

func WrapTime(t time.Time) Time {
	return Time{t}
}

// Create Time from milliseconds since unix epoch, nil loc means UTC.
func UnixMilli(ms int64, loc *time.Location) Time {
	if loc == nil {
		loc = time.UTC
	}
	return Time{time.UnixMilli(ms).In(loc)}
}

func (t Time) GoString() string {
	return t.String()
}

func (t Time) String() string {
	return t.Unwrap().Format("2006-01-02 15:04:05.000 (MST)")
}

func (t Time) Unwrap() time.Time {
	return t.Time
}

// Check whether the time is within ±[MaxUnixMilli] around the epoch.
func (t Time) IsValid() bool {
	ms := t.UnixMilli()
	return ms >= -MaxUnixMilli && ms <= MaxUnixMilli
}

func (t Time) In(z *time.Location) Time {
	return WrapTime(t.Unwrap().In(z))
}

func (t Time) After(u Time) bool {
	return t.Time.After(u.Time)
}

func (t Time) Before(u Time) bool {
	return t.Time.Before(u.Time)
}

// Offset to UTC in seconds.
func (t Time) Offset() int {
	_, off := t.Zone()
	return off
}

// Implements encoding/json Marshaler, always as milliseconds since unix epoch.
func (t Time) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

// Sub-day boundaries are computed by subtracting wall clock fields, the offset stays untouched even
// when the wall clock is repeated during DST transition. When a transition shorter than the unit lies in
// between, e.g., the 30 minutes shift of Australia/Lord_Howe, the boundary is resolved on the wall clock.

func (t Time) StartOfSec() Time {
	return t.startOfWall(t.Hour(), t.Minute(), t.Second())
}

func (t Time) EndOfSec() Time {
	return t.StartOfSec().endOfWall(t.Hour(), t.Minute(), t.Second(), time.Second)
}

func (t Time) StartOfMin() Time {
	return t.startOfWall(t.Hour(), t.Minute(), 0)
}

func (t Time) EndOfMin() Time {
	return t.StartOfMin().endOfWall(t.Hour(), t.Minute(), 0, time.Minute)
}

func (t Time) StartOfHour() Time {
	return t.startOfWall(t.Hour(), 0, 0)
}

func (t Time) EndOfHour() Time {
	return t.StartOfHour().endOfWall(t.Hour(), 0, 0, time.Hour)
}

func (t Time) startOfWall(hh, mi, ss int) Time {
	yyyy, mm, dd := t.Date()
	want := time.Date(yyyy, mm, dd, hh, mi, ss, 0, time.UTC)
	r := t.Time.Add(-wallOf(t.Time).Sub(want))
	if wallOf(r).Equal(want) {
		return Time{r}
	}
	return wallTime(yyyy, mm, dd, hh, mi, ss, 0, t.Location())
}

// last milli of the unit starting at t, hh:mi:ss is the wall clock the unit starts at
func (t Time) endOfWall(hh, mi, ss int, unit time.Duration) Time {
	e := t.Time.Add(unit)
	if w := wallOf(e); w.Truncate(unit).Equal(w) {
		return Time{e}.prevMilli()
	}
	yyyy, mm, dd := t.Date()
	next := time.Date(yyyy, mm, dd, hh, mi, ss, 0, time.UTC).Add(unit)
	return wallTime(next.Year(), next.Month(), next.Day(), next.Hour(), next.Minute(), next.Second(), 0, t.Location()).prevMilli()
}

// At 00:00:00.000, or the first instant of the day when midnight is skipped.
func (t Time) StartOfDay() Time {
	yyyy, mm, dd := t.Date()
	return wallDate(yyyy, mm, dd, t.Location())
}

// At 23:59:59.999.
func (t Time) EndOfDay() Time {
	yyyy, mm, dd := t.Date()
	return wallDate(yyyy, mm, dd+1, t.Location()).prevMilli()
}

// Start of the week that begins on the given weekday.
func (t Time) StartOfWeek(start time.Weekday) Time {
	yyyy, mm, dd := t.Date()
	return wallDate(yyyy, mm, dd-weekdayGap(t.Weekday(), start), t.Location())
}

// End of the week that begins on the given weekday.
func (t Time) EndOfWeek(start time.Weekday) Time {
	yyyy, mm, dd := t.Date()
	return wallDate(yyyy, mm, dd-weekdayGap(t.Weekday(), start)+7, t.Location()).prevMilli()
}

// Start of the ISO week, i.e., Monday 00:00:00.000.
func (t Time) StartOfISOWeek() Time {
	return t.StartOfWeek(time.Monday)
}

func (t Time) StartOfMonth() Time {
	yyyy, mm, _ := t.Date()
	return wallDate(yyyy, mm, 1, t.Location())
}

func (t Time) EndOfMonth() Time {
	yyyy, mm, _ := t.Date()
	return wallDate(yyyy, mm+1, 1, t.Location()).prevMilli()
}

func (t Time) StartOfQuarter() Time {
	yyyy, mm, _ := t.Date()
	return wallDate(yyyy, quarterMonth(mm), 1, t.Location())
}

func (t Time) EndOfQuarter() Time {
	yyyy, mm, _ := t.Date()
	return wallDate(yyyy, quarterMonth(mm)+3, 1, t.Location()).prevMilli()
}

func (t Time) StartOfYear() Time {
	return wallDate(t.Year(), time.January, 1, t.Location())
}

func (t Time) EndOfYear() Time {
	return wallDate(t.Year()+1, time.January, 1, t.Location()).prevMilli()
}

// Quarter of year, 1 to 4.
func (t Time) Quarter() int {
	return (int(t.Month())-1)/3 + 1
}

// Week of year where weeks begin on weekStart, and week 1 is the week containing January yearStart.
func (t Time) Week(weekStart time.Weekday, yearStart int) int {
	if yearStart < 1 {
		yearStart = 1
	}
	yyyy := t.Year()
	if t.Month() == time.December && t.Day() > 25 {
		nextYearStart := wallDate(yyyy+1, time.January, yearStart, t.Location())
		if nextYearStart.Before(t.EndOfWeek(weekStart)) {
			return 1
		}
	}
	yearStartDay := wallDate(yyyy, time.January, yearStart, t.Location())
	yearStartWeek := yearStartDay.StartOfWeek(weekStart).prevMilli()
	weeks := t.DiffWeeks(yearStartWeek)
	if weeks < 0 {
		// belongs to the last week of previous year
		return t.StartOfWeek(weekStart).Week(weekStart, yearStart)
	}
	return int(math.Ceil(weeks))
}

func (t Time) AddMillis(n int64) Time {
	return t.addFixed(n, 1)
}

func (t Time) AddSeconds(n int64) Time {
	return t.addFixed(n, MilliPerSecond)
}

func (t Time) AddMinutes(n int64) Time {
	return t.addFixed(n, MilliPerMinute)
}

func (t Time) AddHours(n int64) Time {
	return t.addFixed(n, MilliPerHour)
}

// Add days on the wall clock, time of day is kept.
func (t Time) AddDays(n int64) Time {
	n = clampSteps(n, MilliPerDay)
	yyyy, mm, dd := t.Date()
	hh, mi, ss := t.Clock()
	return wallTime(yyyy, mm, dd+int(n), hh, mi, ss, t.Nanosecond(), t.Location())
}

func (t Time) AddWeeks(n int64) Time {
	return t.AddDays(clampSteps(n, MilliPerWeek) * 7)
}

// Add months on the wall clock, day of month is clamped to the length of the target month.
func (t Time) AddMonths(n int64) Time {
	n = clampSteps(n, 28*MilliPerDay)
	yyyy, mm, dd := t.Date()
	hh, mi, ss := t.Clock()
	total := int64(yyyy)*12 + int64(mm-1) + n
	ny := floorDiv(total, 12)
	nm := time.Month(total-ny*12) + 1
	if days := DaysIn(int(ny), nm); dd > days {
		dd = days
	}
	return wallTime(int(ny), nm, dd, hh, mi, ss, t.Nanosecond(), t.Location())
}

func (t Time) AddQuarters(n int64) Time {
	return t.AddMonths(clampSteps(n, 89*MilliPerDay) * 3)
}

func (t Time) AddYears(n int64) Time {
	return t.AddMonths(clampSteps(n, 365*MilliPerDay) * 12)
}

// t - u in milliseconds.
func (t Time) DiffMillis(u Time) int64 {
	return t.UnixMilli() - u.UnixMilli()
}

// Fractional days between t and u, the change of zone offset between them is not counted.
func (t Time) DiffDays(u Time) float64 {
	return float64(t.DiffMillis(u)-t.zoneDelta(u)) / float64(MilliPerDay)
}

// Fractional weeks between t and u, the change of zone offset between them is not counted.
func (t Time) DiffWeeks(u Time) float64 {
	return float64(t.DiffMillis(u)-t.zoneDelta(u)) / float64(MilliPerWeek)
}

// Fractional months from u to t, positive when t is after u.
//
// The whole months are counted on the wall clock, the remaining part is interpolated between the two
// month anchors surrounding t, e.g., Jan 31 to Feb 29 is exactly one month.
func (t Time) MonthDiff(u Time) float64 {
	return monthDiff(t, u)
}

func monthDiff(a Time, b Time) float64 {
	if a.Day() < b.Day() {
		return -monthDiff(b, a)
	}
	whole := int64(b.Year()-a.Year())*12 + int64(b.Month()-a.Month())
	anchor := a.AddMonths(whole)
	behind := b.DiffMillis(anchor) < 0
	var anchor2 Time
	var span int64
	if behind {
		anchor2 = a.AddMonths(whole - 1)
		span = anchor.DiffMillis(anchor2)
	} else {
		anchor2 = a.AddMonths(whole + 1)
		span = anchor2.DiffMillis(anchor)
	}
	v := float64(whole)
	if span != 0 {
		v += float64(b.DiffMillis(anchor)) / float64(span)
	}
	if v == 0 {
		return 0 // no negative zero
	}
	return -v
}

// zone offset of u minus the one of t, in milliseconds
func (t Time) zoneDelta(u Time) int64 {
	return int64(u.Offset()-t.Offset()) * MilliPerSecond
}

func (t Time) addFixed(n int64, unitMs int64) Time {
	n = clampSteps(n, unitMs)
	return UnixMilli(t.UnixMilli()+n*unitMs, t.Location())
}

func (t Time) prevMilli() Time {
	return Time{t.Time.Add(-time.Millisecond)}
}

// Resolve the wall clock in loc.
//
// A wall clock skipped by a DST transition moves forward by the length of the gap, e.g., 00:30 in a gap
// from 00:00 to 01:00 is 01:30. A repeated wall clock resolves to its first occurrence.
func wallTime(yyyy int, mm time.Month, dd, hh, mi, ss, ns int, loc *time.Location) Time {
	t := time.Date(yyyy, mm, dd, hh, mi, ss, ns, loc)
	if loc == time.UTC {
		return Time{t}
	}
	want := time.Date(yyyy, mm, dd, hh, mi, ss, ns, time.UTC)
	if gap := want.Sub(wallOf(t)); gap != 0 {
		// time.Date may resolve a skipped wall clock backward
		if gap > 0 {
			t = t.Add(gap)
		}
		return Time{t}
	}
	for _, d := range [...]time.Duration{-12 * time.Hour, 12 * time.Hour} {
		_, off := t.Add(d).Zone()
		c := want.Add(-time.Duration(off) * time.Second).In(loc)
		if c.Before(t) && wallOf(c).Equal(want) {
			t = c
		}
	}
	return Time{t}
}

func wallDate(yyyy int, mm time.Month, dd int, loc *time.Location) Time {
	return wallTime(yyyy, mm, dd, 0, 0, 0, 0, loc)
}

// wall clock of t as if it were in UTC
func wallOf(t time.Time) time.Time {
	yyyy, mm, dd := t.Date()
	hh, mi, ss := t.Clock()
	return time.Date(yyyy, mm, dd, hh, mi, ss, t.Nanosecond(), time.UTC)
}

// Number of days in the month.
func DaysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Limit the number of steps, so that n*unitMs never overflows while still going beyond the valid range.
func clampSteps(n int64, unitMs int64) int64 {
	limit := 2*MaxUnixMilli/unitMs + 1
	if n > limit {
		return limit
	}
	if n < -limit {
		return -limit
	}
	return n
}

// days to go back from curr to reach start
func weekdayGap(curr time.Weekday, start time.Weekday) int {
	c := int(curr)
	if c < int(start) {
		c += 7
	}
	return c - int(start)
}

func quarterMonth(m time.Month) time.Month {
	return (m-1)/3*3 + 1
}

func floorDiv(a int64, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Truncate toward zero.
func Trunc(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	return int64(math.Trunc(f))
}
