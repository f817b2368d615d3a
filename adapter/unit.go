package adapter

// Calendar unit.
//
// The zero value is UnitUnknown, every operation falls back to its sentinel result for it.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitMillisecond
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitISOWeek // only meaningful to StartOf
	UnitMonth
	UnitQuarter
	UnitYear
)

var unitNames = [...]string{
	UnitUnknown:     "unknown",
	UnitMillisecond: "millisecond",
	UnitSecond:      "second",
	UnitMinute:      "minute",
	UnitHour:        "hour",
	UnitDay:         "day",
	UnitWeek:        "week",
	UnitISOWeek:     "isoWeek",
	UnitMonth:       "month",
	UnitQuarter:     "quarter",
	UnitYear:        "year",
}

// Units from the finest to the coarsest, isoWeek excluded.
var Units = []Unit{
	UnitMillisecond,
	UnitSecond,
	UnitMinute,
	UnitHour,
	UnitDay,
	UnitWeek,
	UnitMonth,
	UnitQuarter,
	UnitYear,
}

// Parse unit keyword, keywords are case-sensitive, e.g., 'isoWeek'.
func ParseUnit(s string) Unit {
	for i := UnitMillisecond; i <= UnitYear; i++ {
		if unitNames[i] == s {
			return i
		}
	}
	return UnitUnknown
}

func (u Unit) String() string {
	if u < UnitUnknown || u > UnitYear {
		return unitNames[UnitUnknown]
	}
	return unitNames[u]
}

func (u Unit) Known() bool {
	return u > UnitUnknown && u <= UnitYear
}

// Key in the format table for labels of this unit, isoWeek shares the one of week.
func (u Unit) Granularity() Granularity {
	switch u {
	case UnitMillisecond:
		return GranularityMillisecond
	case UnitSecond:
		return GranularitySecond
	case UnitMinute:
		return GranularityMinute
	case UnitHour:
		return GranularityHour
	case UnitDay:
		return GranularityDay
	case UnitWeek, UnitISOWeek:
		return GranularityWeek
	case UnitMonth:
		return GranularityMonth
	case UnitQuarter:
		return GranularityQuarter
	case UnitYear:
		return GranularityYear
	}
	return GranularityDatetime
}
