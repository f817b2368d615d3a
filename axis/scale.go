package axis

import (
	"math"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/util/errs"
)

// Max number of ticks when Scale.MaxTicks is not set.
const DefaultMaxTicks = 1000

// Approximate length of a unit.
type Interval struct {
	Unit adapter.Unit
	Size int64 // in milliseconds

	// Whether the unit is picked by DetermineUnit and used as the major unit of ticks.
	Common bool
}

// Intervals of all units from the finest to the coarsest.
var Intervals = []Interval{
	{Unit: adapter.UnitMillisecond, Size: 1, Common: true},
	{Unit: adapter.UnitSecond, Size: 1_000, Common: true},
	{Unit: adapter.UnitMinute, Size: 60_000, Common: true},
	{Unit: adapter.UnitHour, Size: 3_600_000, Common: true},
	{Unit: adapter.UnitDay, Size: 86_400_000, Common: true},
	{Unit: adapter.UnitWeek, Size: 604_800_000},
	{Unit: adapter.UnitMonth, Size: 2_628_000_000, Common: true},
	{Unit: adapter.UnitQuarter, Size: 7_884_000_000},
	{Unit: adapter.UnitYear, Size: 31_540_000_000, Common: true},
}

func intervalIndex(u adapter.Unit) int {
	if u == adapter.UnitISOWeek {
		u = adapter.UnitWeek
	}
	for i, iv := range Intervals {
		if iv.Unit == u {
			return i
		}
	}
	return 0
}

// Find the finest common unit, not finer than minUnit, that splits [min, max] into no more than capacity ticks.
//
// Year is returned when none of them fits.
func DetermineUnit(min adapter.Instant, max adapter.Instant, capacity int, minUnit adapter.Unit) adapter.Unit {
	span := math.Abs(float64(max) - float64(min))
	for _, iv := range Intervals[intervalIndex(minUnit) : len(Intervals)-1] {
		if !iv.Common {
			continue
		}
		if math.Ceil(span/float64(iv.Size)) <= float64(capacity) {
			return iv.Unit
		}
	}
	return adapter.UnitYear
}

// Next common unit coarser than u, UnitUnknown for year.
func MajorUnit(u adapter.Unit) adapter.Unit {
	for _, iv := range Intervals[intervalIndex(u)+1:] {
		if iv.Common {
			return iv.Unit
		}
	}
	return adapter.UnitUnknown
}

type Tick struct {
	Value adapter.Instant
	Label string

	// Tick starts a period of the major unit, see MajorUnit.
	Major bool
}

// Time scale.
//
// Ticks start at the beginning of the unit that contains min, and advance by Step units until max is passed.
type Scale struct {
	Host Host

	// Unit of ticks, determined by the span and MaxTicks when it's unknown. UnitISOWeek is the same as UnitWeek with
	// ISOWeekday set.
	Unit adapter.Unit

	// Number of units between ticks, 1 by default.
	Step int

	// Start weeks on Monday instead of the locale's first day of week.
	ISOWeekday bool

	// Max number of ticks, DefaultMaxTicks by default.
	MaxTicks int
}

// Generate ticks between min and max, both inclusive.
//
// Major ticks are labeled with the major unit's format, others with the format of Unit.
func (s Scale) Ticks(min adapter.Instant, max adapter.Instant) ([]Tick, error) {
	if s.Host == nil {
		return nil, errs.ErrNoBackend.WithInternalMsg("scale is not bound to a host")
	}
	b := s.Host.Backend()
	if b == nil {
		return nil, errs.ErrNoBackend.WithInternalMsg("host has no temporal backend")
	}
	if !min.Valid() || !max.Valid() {
		return nil, errs.ErrIllegalArgument.WithInternalMsg("range [%d, %d] is out of bounds", min, max)
	}
	if min > max {
		return nil, errs.ErrIllegalArgument.WithInternalMsg("min %d is after max %d", min, max)
	}

	maxTicks := s.MaxTicks
	if maxTicks < 1 {
		maxTicks = DefaultMaxTicks
	}
	step := s.Step
	if step < 1 {
		step = 1
	}
	unit := s.Unit
	iso := s.ISOWeekday
	if unit == adapter.UnitISOWeek {
		unit = adapter.UnitWeek
		iso = true
	}
	if !unit.Known() {
		unit = DetermineUnit(min, max, maxTicks, adapter.UnitMillisecond)
	}
	startUnit := unit
	if unit == adapter.UnitWeek && iso {
		startUnit = adapter.UnitISOWeek
	}

	formats := b.Formats()
	minorFmt := formats.Get(unit.Granularity())
	major := MajorUnit(unit)
	majorFmt := formats.Get(major.Granularity())

	// every tick is offset from the origin, a DST gap shifting one tick doesn't shift the ones after it
	origin := b.StartOf(min, startUnit)
	ticks := []Tick{}
	for t := origin; t <= max; {
		if len(ticks) >= maxTicks {
			return nil, errs.ErrIllegalArgument.WithInternalMsg("more than %d ticks of %d %v between %d and %d",
				maxTicks, step, unit, min, max)
		}
		tick := Tick{Value: t}
		if major.Known() && b.StartOf(t, major) == t {
			tick.Major = true
			tick.Label = b.Format(t, majorFmt)
		} else {
			tick.Label = b.Format(t, minorFmt)
		}
		ticks = append(ticks, tick)

		n := len(ticks) * step
		if n/len(ticks) != step {
			return nil, errs.ErrIllegalArgument.WithInternalMsg("%d steps of %d %v overflow", len(ticks), step, unit)
		}
		next := b.Add(origin, n, unit)
		if next <= t {
			return nil, errs.ErrIllegalArgument.WithInternalMsg("adding %d %v to %d doesn't advance", step, unit, t)
		}
		t = next
	}
	return ticks, nil
}
