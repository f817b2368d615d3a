package atom

import (
	"strings"
	"sync"
	"time"

	"github.com/curtisnewbie/timeaxis/util/lru"
)

// Max number of compiled patterns cached by each Calendar.
const LayoutCacheSize = 256

// Calendar binds a location and a locale for formatting, parsing and week based boundaries.
//
// Calendar is safe for concurrent use, it must not be modified after first use.
type Calendar struct {
	Loc    *time.Location
	Locale *Locale

	// clock used to fill the fields missing in parsed values, time.Now by default
	Now func() time.Time

	layoutsOnce sync.Once
	layouts     lru.LRU[*layout]
}

// Create Calendar, nil loc means UTC, nil locale means English.
func NewCalendar(loc *time.Location, locale *Locale) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if locale == nil {
		locale = English()
	}
	return &Calendar{Loc: loc, Locale: locale, Now: time.Now}
}

func (c *Calendar) location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

func (c *Calendar) locale() *Locale {
	if c.Locale == nil {
		return builtinLocales[0]
	}
	return c.Locale
}

func (c *Calendar) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Calendar) layout(pattern string) *layout {
	c.layoutsOnce.Do(func() { c.layouts = lru.MustNew[*layout](LayoutCacheSize) })
	l, _ := c.layouts.GetElse(pattern, func() (*layout, error) { return compileLayout(pattern, c.locale()), nil })
	return l
}

// Convert milliseconds since unix epoch to Time in calendar's location.
func (c *Calendar) Time(ms int64) Time {
	return UnixMilli(ms, c.location())
}

// Format t in calendar's location.
//
// Malformed escapes are rendered as is, e.g., '[Q' is formatted as '[' followed by the quarter.
func (c *Calendar) Format(t Time, pattern string) string {
	var b strings.Builder
	formatLayout(&b, c.layout(pattern), t.In(c.location()), c.locale())
	return b.String()
}

// Strict parse, the whole value must match the pattern.
//
// Missing date fields are taken from the current date when neither year nor month is present, otherwise they
// default to the first month or the first day, e.g., 'HH:mm' parses a time of today, 'YYYY' parses Jan 1.
//
// The value is interpreted in calendar's location unless the pattern contains 'Z' or 'ZZ'.
func (c *Calendar) ParseLayout(value string, pattern string) (Time, error) {
	return parseLayout(value, pattern, c.layout(pattern), c.locale(), c.location(), c.now())
}

// Best-effort parse of ISO-like local date time (e.g., '2024-03-15 10:30') and common absolute formats
// (e.g., RFC3339 or RFC1123).
func (c *Calendar) ParseFree(value string) (Time, error) {
	return parseFree(value, c.location())
}

// Start of the week using locale's first day of week.
func (c *Calendar) StartOfWeek(t Time) Time {
	return t.In(c.location()).StartOfWeek(c.locale().WeekStart)
}

// End of the week using locale's first day of week.
func (c *Calendar) EndOfWeek(t Time) Time {
	return t.In(c.location()).EndOfWeek(c.locale().WeekStart)
}
