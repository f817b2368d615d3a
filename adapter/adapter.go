package adapter

import (
	"math"

	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/util/atom"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/opt"
)

// Max distance to the epoch, see [Instant.Valid].
const MaxInstant Instant = Instant(atom.MaxUnixMilli)

// Milliseconds since unix epoch.
type Instant int64

// Check whether the instant is within ±[MaxInstant].
func (i Instant) Valid() bool {
	return i >= -MaxInstant && i <= MaxInstant
}

// Operation names reported to FallbackListener.
const (
	OpParse   = "parse"
	OpFormat  = "format"
	OpAdd     = "add"
	OpDiff    = "diff"
	OpStartOf = "startOf"
	OpEndOf   = "endOf"
)

// Called whenever an operation returns its sentinel result instead of a computed one.
type FallbackListener func(op string, unit Unit)

type Option func(a *Adapter)

// Overlay format patterns onto the defaults, see [NewFormatTable].
func WithFormats(overrides map[string]string) Option {
	return func(a *Adapter) {
		a.formats = NewFormatTable(overrides)
	}
}

// Use calendar for zone, locale and the pattern language. By default, it's UTC and English.
func WithCalendar(cal *atom.Calendar) Option {
	return func(a *Adapter) {
		if cal != nil {
			a.cal = cal
		}
	}
}

func WithFallbackListener(l FallbackListener) Option {
	return func(a *Adapter) {
		a.listener = l
	}
}

// Temporal adapter backed by [atom.Calendar].
//
// Adapter never panics or returns errors, failures are reported as sentinel results: (0, false) for Parse, "" for
// Format, 0 for Diff, and the unchanged input for Add, StartOf and EndOf.
//
// Adapter is immutable and safe for concurrent use.
type Adapter struct {
	cal      *atom.Calendar
	formats  FormatTable
	listener FallbackListener
}

func New(opts ...Option) *Adapter {
	a := &Adapter{
		cal:     atom.NewCalendar(nil, nil),
		formats: DefaultFormats(),
	}
	for _, op := range opts {
		op(a)
	}
	return a
}

func (a *Adapter) Calendar() *atom.Calendar {
	return a.cal
}

// Format table built at construction.
func (a *Adapter) Formats() FormatTable {
	return a.formats
}

// Parse value into Instant.
//
// Numbers and instants are used directly and the pattern is ignored. Text is parsed strictly when a non-empty
// pattern is present, otherwise in free form, see [atom.Calendar.ParseLayout] and [atom.Calendar.ParseFree].
//
// Returns false when the value is absent or can't be parsed into a valid instant.
func (a *Adapter) Parse(value Input, pattern opt.Opt[string]) (Instant, bool) {
	t, err := a.ParseErr(value, pattern)
	if err != nil {
		a.fallback(OpParse, UnitUnknown, "value: %v, err: %v", value, err)
		return 0, false
	}
	return t, true
}

// Same as [Adapter.Parse], but returns the reason of failure.
func (a *Adapter) ParseErr(value Input, pattern opt.Opt[string]) (Instant, error) {
	switch value.kind {
	case inputNumber:
		if math.IsNaN(value.number) || math.IsInf(value.number, 0) || math.Abs(value.number) > float64(MaxInstant) {
			return 0, errs.ErrUnparsableTime.WithInternalMsg("%v is not a valid epoch", value.number)
		}
		return checkInstant(Instant(atom.Trunc(value.number)))
	case inputMillis:
		return checkInstant(Instant(value.millis))
	case inputTime:
		if !atom.WrapTime(value.time).IsValid() {
			return 0, errs.ErrUnparsableTime.WithInternalMsg("%v is out of range", value.time)
		}
		return Instant(value.time.UnixMilli()), nil
	case inputText:
		var t atom.Time
		var err error
		if p, ok := pattern.MayGet(); ok && p != "" {
			t, err = a.cal.ParseLayout(value.text, p)
		} else {
			t, err = a.cal.ParseFree(value.text)
		}
		if err != nil {
			return 0, err
		}
		if !t.IsValid() {
			return 0, errs.ErrUnparsableTime.WithInternalMsg("'%v' is out of range", value.text)
		}
		return Instant(t.UnixMilli()), nil
	}
	return 0, errs.ErrIllegalArgument.WithInternalMsg("value is absent")
}

func checkInstant(t Instant) (Instant, error) {
	if !t.Valid() {
		return 0, errs.ErrUnparsableTime.WithInternalMsg("%d is out of range", t)
	}
	return t, nil
}

// Render t with pattern, "" if t is invalid.
func (a *Adapter) Format(t Instant, pattern string) string {
	if !t.Valid() {
		a.fallback(OpFormat, UnitUnknown, "invalid instant: %d", t)
		return ""
	}
	return a.cal.Format(a.cal.Time(int64(t)), pattern)
}

// Add amount of unit to t.
//
// Units up to hours are fixed durations, days and weeks keep the wall clock, months, quarters and years clamp the
// day of month. Returns t unchanged for isoWeek, unknown units, invalid t and results out of range.
func (a *Adapter) Add(t Instant, amount int, unit Unit) Instant {
	if !t.Valid() {
		a.fallback(OpAdd, unit, "invalid instant: %d", t)
		return t
	}
	v := a.cal.Time(int64(t))
	n := int64(amount)
	var r atom.Time
	switch unit {
	case UnitMillisecond:
		r = v.AddMillis(n)
	case UnitSecond:
		r = v.AddSeconds(n)
	case UnitMinute:
		r = v.AddMinutes(n)
	case UnitHour:
		r = v.AddHours(n)
	case UnitDay:
		r = v.AddDays(n)
	case UnitWeek:
		r = v.AddWeeks(n)
	case UnitMonth:
		r = v.AddMonths(n)
	case UnitQuarter:
		r = v.AddQuarters(n)
	case UnitYear:
		r = v.AddYears(n)
	default:
		a.fallback(OpAdd, unit, "unsupported unit")
		return t
	}
	if !r.IsValid() {
		a.fallback(OpAdd, unit, "%d + %d %v is out of range", t, amount, unit)
		return t
	}
	return Instant(r.UnixMilli())
}

// Number of whole units from min to max, truncated toward zero.
//
// Days and weeks ignore the change of zone offset in between, months, quarters and years are calendar aware.
// Returns 0 for isoWeek, unknown units and invalid instants.
func (a *Adapter) Diff(max Instant, min Instant, unit Unit) int64 {
	if !max.Valid() || !min.Valid() {
		a.fallback(OpDiff, unit, "invalid instant: %d, %d", max, min)
		return 0
	}
	u := a.cal.Time(int64(max))
	v := a.cal.Time(int64(min))
	switch unit {
	case UnitMillisecond:
		return u.DiffMillis(v)
	case UnitSecond:
		return u.DiffMillis(v) / atom.MilliPerSecond
	case UnitMinute:
		return u.DiffMillis(v) / atom.MilliPerMinute
	case UnitHour:
		return u.DiffMillis(v) / atom.MilliPerHour
	case UnitDay:
		return atom.Trunc(u.DiffDays(v))
	case UnitWeek:
		return atom.Trunc(u.DiffWeeks(v))
	case UnitMonth:
		return atom.Trunc(u.MonthDiff(v))
	case UnitQuarter:
		return atom.Trunc(u.MonthDiff(v) / 3)
	case UnitYear:
		return atom.Trunc(u.MonthDiff(v) / 12)
	}
	a.fallback(OpDiff, unit, "unsupported unit")
	return 0
}

// Start of the unit containing t.
//
// Week starts on the locale's first day of week, isoWeek starts on Monday. Returns t unchanged for millisecond,
// unknown units and invalid t.
func (a *Adapter) StartOf(t Instant, unit Unit) Instant {
	if !t.Valid() {
		a.fallback(OpStartOf, unit, "invalid instant: %d", t)
		return t
	}
	v := a.cal.Time(int64(t))
	var r atom.Time
	switch unit {
	case UnitSecond:
		r = v.StartOfSec()
	case UnitMinute:
		r = v.StartOfMin()
	case UnitHour:
		r = v.StartOfHour()
	case UnitDay:
		r = v.StartOfDay()
	case UnitWeek:
		r = a.cal.StartOfWeek(v)
	case UnitISOWeek:
		r = v.StartOfISOWeek()
	case UnitMonth:
		r = v.StartOfMonth()
	case UnitQuarter:
		r = v.StartOfQuarter()
	case UnitYear:
		r = v.StartOfYear()
	default:
		a.fallback(OpStartOf, unit, "unsupported unit")
		return t
	}
	return a.bounded(OpStartOf, unit, t, r)
}

// Last millisecond of the unit containing t.
//
// Returns t unchanged for millisecond, isoWeek, unknown units and invalid t.
func (a *Adapter) EndOf(t Instant, unit Unit) Instant {
	if !t.Valid() {
		a.fallback(OpEndOf, unit, "invalid instant: %d", t)
		return t
	}
	v := a.cal.Time(int64(t))
	var r atom.Time
	switch unit {
	case UnitSecond:
		r = v.EndOfSec()
	case UnitMinute:
		r = v.EndOfMin()
	case UnitHour:
		r = v.EndOfHour()
	case UnitDay:
		r = v.EndOfDay()
	case UnitWeek:
		r = a.cal.EndOfWeek(v)
	case UnitMonth:
		r = v.EndOfMonth()
	case UnitQuarter:
		r = v.EndOfQuarter()
	case UnitYear:
		r = v.EndOfYear()
	default:
		a.fallback(OpEndOf, unit, "unsupported unit")
		return t
	}
	return a.bounded(OpEndOf, unit, t, r)
}

// boundaries next to ±MaxInstant may fall out of range
func (a *Adapter) bounded(op string, unit Unit, t Instant, r atom.Time) Instant {
	if !r.IsValid() {
		a.fallback(op, unit, "%v of %d is out of range", unit, t)
		return t
	}
	return Instant(r.UnixMilli())
}

func (a *Adapter) fallback(op string, unit Unit, msg string, args ...any) {
	if core.IsDebugLevel() {
		args = append([]any{op, unit}, args...)
		core.Debugf("Adapter %v (%v) fell back, "+msg, args...)
	}
	if a.listener != nil {
		a.listener(op, unit)
	}
}
