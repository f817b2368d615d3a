package adapter

import (
	"github.com/curtisnewbie/timeaxis/core"
)

// Key of the format table.
type Granularity string

const (
	GranularityDatetime    Granularity = "datetime"
	GranularityMillisecond Granularity = "millisecond"
	GranularitySecond      Granularity = "second"
	GranularityMinute      Granularity = "minute"
	GranularityHour        Granularity = "hour"
	GranularityDay         Granularity = "day"
	GranularityWeek        Granularity = "week"
	GranularityMonth       Granularity = "month"
	GranularityQuarter     Granularity = "quarter"
	GranularityYear        Granularity = "year"
)

// All format table keys, in display order.
var Granularities = []Granularity{
	GranularityDatetime,
	GranularityMillisecond,
	GranularitySecond,
	GranularityMinute,
	GranularityHour,
	GranularityDay,
	GranularityWeek,
	GranularityMonth,
	GranularityQuarter,
	GranularityYear,
}

var defaultFormats = map[Granularity]string{
	GranularityDatetime:    "MMM D, YYYY, h:mm:ss A",
	GranularityMillisecond: "h:mm:ss.SSS A",
	GranularitySecond:      "h:mm:ss A",
	GranularityMinute:      "h:mm A",
	GranularityHour:        "hA",
	GranularityDay:         "MMM D",
	GranularityWeek:        "l",
	GranularityMonth:       "MMM YYYY",
	GranularityQuarter:     "[Q]Q - YYYY",
	GranularityYear:        "YYYY",
}

// Format patterns for every granularity.
//
// FormatTable is immutable, every key always resolves to a non-empty pattern.
type FormatTable struct {
	m map[Granularity]string
}

func DefaultFormats() FormatTable {
	return NewFormatTable(nil)
}

// Create FormatTable by overlaying overrides onto the defaults.
//
// Unknown keys are ignored, empty values keep the default.
func NewFormatTable(overrides map[string]string) FormatTable {
	m := make(map[Granularity]string, len(defaultFormats))
	for k, v := range defaultFormats {
		m[k] = v
	}
	for k, v := range overrides {
		g := Granularity(k)
		if _, ok := defaultFormats[g]; !ok {
			core.Warnf("Ignored unknown format key '%v', pattern: '%v'", k, v)
			continue
		}
		if v == "" {
			continue
		}
		m[g] = v
	}
	return FormatTable{m: m}
}

// Pattern for the granularity, the datetime pattern is returned for unknown keys.
func (f FormatTable) Get(g Granularity) string {
	if f.m == nil {
		f = DefaultFormats()
	}
	if v, ok := f.m[g]; ok {
		return v
	}
	return f.m[GranularityDatetime]
}

// Copy of the table keyed by plain strings.
func (f FormatTable) Map() map[string]string {
	cp := make(map[string]string, len(Granularities))
	for _, g := range Granularities {
		cp[string(g)] = f.Get(g)
	}
	return cp
}
