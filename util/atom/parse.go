package atom

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/curtisnewbie/timeaxis/util/errs"
)

var (
	// local date time, e.g., 2024-03-15, 2024/3/15 10:30, 20240315T103000.123
	freeFormRegexp = regexp.MustCompile(`^(\d{4})[-/]?(\d{1,2})?[-/]?(\d{0,2})[Tt\s]*(\d{1,2})?:?(\d{1,2})?:?(\d{1,2})?[.:]?(\d+)?$`)

	parseFormatsMu sync.RWMutex
	parseFormats   = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04:05.999999999Z07:00",
		time.RFC1123Z,
		time.RFC1123,
		time.RFC850,
		time.RFC822Z,
		time.RFC822,
		time.ANSIC,
		time.UnixDate,
		time.RubyDate,
		"Mon Jan 2 2006 15:04:05 GMT-0700",
		"Jan 2, 2006 15:04:05",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"2 January 2006",
	}
)

// Register extra Go layouts for [Calendar.ParseFree], duplicates are ignored.
func AddTimeParseFormat(fmt ...string) {
	parseFormatsMu.Lock()
	defer parseFormatsMu.Unlock()
	for _, f := range fmt {
		dup := false
		for _, v := range parseFormats {
			if v == f {
				dup = true
				break
			}
		}
		if !dup {
			parseFormats = append(parseFormats, f)
		}
	}
}

func copyParseFormats() []string {
	parseFormatsMu.RLock()
	defer parseFormatsMu.RUnlock()
	cp := make([]string, len(parseFormats))
	copy(cp, parseFormats)
	return cp
}

// Try each Go layout in order, values without zone are interpreted in loc.
func FuzzParseTimeLoc(formats []string, value string, loc *time.Location) (time.Time, error) {
	if len(formats) < 1 {
		return time.Time{}, errors.New("formats is empty")
	}
	if loc == nil {
		loc = time.UTC
	}

	var t time.Time
	var err error
	for _, f := range formats {
		t, err = time.ParseInLocation(f, value, loc)
		if err == nil {
			return t, nil
		}
	}
	return t, fmt.Errorf("failed to parse time '%s'", value)
}

func parseFree(value string, loc *time.Location) (Time, error) {
	if m := freeFormRegexp.FindStringSubmatch(value); m != nil {
		year := atoiOr(m[1], 0)
		month := atoiOr(m[2], 1)
		day := atoiOr(m[3], 1)
		hour := atoiOr(m[4], 0)
		minute := atoiOr(m[5], 0)
		sec := atoiOr(m[6], 0)
		frac := m[7]
		if len(frac) > 3 {
			frac = frac[:3]
		}
		milli := 0
		if frac != "" {
			milli = atoiOr(frac+strings.Repeat("0", 3-len(frac)), 0)
		}
		// out of range fields roll over, e.g., 2024-01-32 is 2024-02-01
		return wallTime(year, time.Month(month), day, hour, minute, sec, milli*int(time.Millisecond), loc), nil
	}

	t, err := FuzzParseTimeLoc(copyParseFormats(), strings.TrimSpace(value), loc)
	if err != nil {
		return Time{}, errs.ErrUnparsableTime.Wrapf(err, "unrecognized time '%v'", value)
	}
	return WrapTime(t).In(loc), nil
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// week numbers can't be mapped back to a date without the weekday
var unparsableFields = map[string]struct{}{"w": {}, "ww": {}, "W": {}, "WW": {}}

const (
	meridiemNone = iota
	meridiemAM
	meridiemPM
)

type parsedFields struct {
	year, month, day            int
	hour, minute, second, milli int
	quarter                     int
	weekday                     int
	offset                      int
	epochMilli                  int64

	hasYear, hasMonth, hasDay bool
	hasOffset, hasEpoch       bool
	twelveHour                bool
	meridiem                  int
}

func parseLayout(value string, pattern string, l *layout, locale *Locale, loc *time.Location, now time.Time) (Time, error) {
	if pattern == "" {
		return Time{}, errs.ErrInvalidPattern.WithInternalMsg("pattern is empty")
	}
	if l.err != nil {
		return Time{}, l.err
	}
	for _, tok := range l.tokens {
		if _, ok := unparsableFields[tok.field]; ok {
			return Time{}, errs.ErrInvalidPattern.WithInternalMsg("token '%v' in pattern '%v' is not supported for parsing", tok.field, pattern)
		}
	}
	mismatch := func() (Time, error) {
		return Time{}, errs.ErrUnparsableTime.WithInternalMsg("'%v' does not match pattern '%v'", value, pattern)
	}

	p := parsedFields{weekday: -1}
	rest := value
	for _, tok := range l.tokens {
		if tok.field == "" {
			if !strings.HasPrefix(rest, tok.lit) {
				return mismatch()
			}
			rest = rest[len(tok.lit):]
			continue
		}
		n, err := p.parseField(tok.field, rest, locale)
		if err != nil {
			return Time{}, err
		}
		if n < 0 {
			return mismatch()
		}
		rest = rest[n:]
	}
	if rest != "" {
		return mismatch()
	}
	return p.build(value, pattern, loc, now)
}

// Consume the field at the beginning of s, returns number of bytes consumed, -1 if s doesn't match.
func (p *parsedFields) parseField(field string, s string, locale *Locale) (int, error) {
	switch field {
	case "YYYY":
		n, v := takeDigits(s, 4, 4)
		p.year, p.hasYear = v, true
		return n, nil
	case "YY":
		n, v := takeDigits(s, 2, 2)
		if v > 68 {
			v += 1900
		} else {
			v += 2000
		}
		p.year, p.hasYear = v, true
		return n, nil
	case "M", "MM":
		n, v := takeDigits(s, len(field), 2)
		p.month, p.hasMonth = v, true
		return n, nil
	case "MMM", "MMMM":
		names := locale.MonthsShort
		if field == "MMMM" {
			names = locale.Months
		}
		n, i := takeName(s, names[:])
		p.month, p.hasMonth = i+1, true
		return n, nil
	case "D", "DD":
		n, v := takeDigits(s, len(field), 2)
		p.day, p.hasDay = v, true
		return n, nil
	case "Do":
		n, v := takeDigits(s, 1, 2)
		if n < 0 {
			return n, nil
		}
		for n < len(s) {
			r, size := utf8.DecodeRuneInString(s[n:])
			if !unicode.IsLetter(r) && r != '.' {
				break
			}
			n += size
		}
		p.day, p.hasDay = v, true
		return n, nil
	case "d":
		n, v := takeDigits(s, 1, 1)
		if v > 6 {
			return -1, nil
		}
		p.weekday = v
		return n, nil
	case "dd", "ddd", "dddd":
		names := locale.WeekdaysMin
		if field == "ddd" {
			names = locale.WeekdaysShort
		} else if field == "dddd" {
			names = locale.Weekdays
		}
		n, i := takeName(s, names[:])
		p.weekday = i
		return n, nil
	case "H", "HH":
		n, v := takeDigits(s, len(field), 2)
		p.hour = v
		return n, nil
	case "h", "hh":
		n, v := takeDigits(s, len(field), 2)
		p.hour, p.twelveHour = v, true
		return n, nil
	case "k", "kk":
		n, v := takeDigits(s, len(field), 2)
		if v == 24 {
			v = 0
		} else if v == 0 {
			return -1, nil
		}
		p.hour = v
		return n, nil
	case "m", "mm":
		n, v := takeDigits(s, len(field), 2)
		p.minute = v
		return n, nil
	case "s", "ss":
		n, v := takeDigits(s, len(field), 2)
		p.second = v
		return n, nil
	case "S", "SS", "SSS":
		n, v := takeDigits(s, len(field), len(field))
		for i := len(field); i < 3; i++ {
			v *= 10
		}
		p.milli = v
		return n, nil
	case "a", "A":
		for _, lower := range []bool{false, true} {
			if am := locale.meridiem(0, lower); strings.HasPrefix(s, am) {
				p.meridiem = meridiemAM
				return len(am), nil
			}
			if pm := locale.meridiem(12, lower); strings.HasPrefix(s, pm) {
				p.meridiem = meridiemPM
				return len(pm), nil
			}
		}
		return -1, nil
	case "Z", "ZZ":
		n, off := takeOffset(s)
		p.offset, p.hasOffset = off, true
		return n, nil
	case "Q":
		n, v := takeDigits(s, 1, 1)
		if v < 1 || v > 4 {
			return -1, nil
		}
		p.quarter = v
		return n, nil
	case "X", "x":
		n, v := takeSigned(s)
		if n < 0 {
			return n, nil
		}
		limit := MaxUnixMilli
		if field == "X" {
			limit /= MilliPerSecond
		}
		if v > limit || v < -limit {
			return 0, errs.ErrUnparsableTime.WithInternalMsg("epoch '%v' is out of range", s[:n])
		}
		if field == "X" {
			// fraction of second, up to milliseconds
			if n < len(s) && s[n] == '.' {
				fn, fv := takeDigits(s[n+1:], 1, 3)
				if fn > 0 {
					for i := fn; i < 3; i++ {
						fv *= 10
					}
					n += fn + 1
					if strings.HasPrefix(s, "-") {
						fv = -fv
					}
					p.epochMilli = v*MilliPerSecond + int64(fv)
					p.hasEpoch = true
					return n, nil
				}
			}
			v *= MilliPerSecond
		}
		p.epochMilli, p.hasEpoch = v, true
		return n, nil
	}
	return 0, errs.ErrInvalidPattern.WithInternalMsg("token '%v' is not supported for parsing", field)
}

func (p *parsedFields) build(value string, pattern string, loc *time.Location, now time.Time) (Time, error) {
	invalid := func(field string, v int) (Time, error) {
		return Time{}, errs.ErrUnparsableTime.WithInternalMsg("'%v' parsed with pattern '%v' has invalid %v: %d", value, pattern, field, v)
	}

	if p.hasEpoch {
		if p.epochMilli > MaxUnixMilli || p.epochMilli < -MaxUnixMilli {
			return Time{}, errs.ErrUnparsableTime.WithInternalMsg("'%v' parsed with pattern '%v' is out of range", value, pattern)
		}
		return UnixMilli(p.epochMilli, loc), nil
	}

	now = now.In(loc)
	year := p.year
	if !p.hasYear {
		year = now.Year()
	}
	month := p.month
	if !p.hasMonth {
		if p.quarter > 0 {
			month = (p.quarter-1)*3 + 1
		} else if p.hasYear {
			month = 1
		} else {
			month = int(now.Month())
		}
	}
	day := p.day
	if !p.hasDay {
		if !p.hasYear && !p.hasMonth {
			day = now.Day()
		} else {
			day = 1
		}
	}

	hour := p.hour
	if p.twelveHour && (hour < 1 || hour > 12) {
		return invalid("hour", hour)
	}
	switch p.meridiem {
	case meridiemPM:
		if hour < 12 {
			hour += 12
		}
	case meridiemAM:
		if hour == 12 {
			hour = 0
		}
	}

	if month < 1 || month > 12 {
		return invalid("month", month)
	}
	if day < 1 || day > DaysIn(year, time.Month(month)) {
		return invalid("day", day)
	}
	if hour > 23 {
		return invalid("hour", hour)
	}
	if p.minute > 59 {
		return invalid("minute", p.minute)
	}
	if p.second > 59 {
		return invalid("second", p.second)
	}

	zone := loc
	if p.hasOffset {
		zone = time.FixedZone("", p.offset)
	}
	t := wallTime(year, time.Month(month), day, hour, p.minute, p.second, p.milli*int(time.Millisecond), zone).In(loc)
	if p.weekday >= 0 && int(t.Weekday()) != p.weekday {
		return invalid("weekday", p.weekday)
	}
	return t, nil
}

// Take between min and max leading digits, -1 if there are less than min.
func takeDigits(s string, min int, max int) (int, int) {
	n := 0
	v := 0
	for n < len(s) && n < max && s[n] >= '0' && s[n] <= '9' {
		v = v*10 + int(s[n]-'0')
		n++
	}
	if n < min {
		return -1, 0
	}
	return n, v
}

func takeSigned(s string) (int, int64) {
	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	start := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == start {
		return -1, 0
	}
	v, err := strconv.ParseInt(s[:n], 10, 64)
	if err != nil {
		return -1, 0
	}
	return n, v
}

// Longest name that prefixes s, returns index of the name.
func takeName(s string, names []string) (int, int) {
	best, idx := -1, -1
	for i, name := range names {
		if name != "" && len(name) > best && strings.HasPrefix(s, name) {
			best, idx = len(name), i
		}
	}
	return best, idx
}

// Z, +08, +0800 or +08:00, returns offset in seconds.
func takeOffset(s string) (int, int) {
	if strings.HasPrefix(s, "Z") || strings.HasPrefix(s, "z") {
		return 1, 0
	}
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return -1, 0
	}
	n, hh := takeDigits(s[1:], 2, 2)
	if n < 0 {
		return -1, 0
	}
	n++
	mm := 0
	rest := s[n:]
	if strings.HasPrefix(rest, ":") {
		if mn, v := takeDigits(rest[1:], 2, 2); mn > 0 {
			n, mm = n+mn+1, v
		}
	} else if mn, v := takeDigits(rest, 2, 2); mn > 0 {
		n, mm = n+mn, v
	}
	off := (hh*60 + mm) * 60
	if s[0] == '-' {
		off = -off
	}
	return n, off
}
