package atom

import (
	"strconv"
	"strings"

	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/strutil"
)

// Format tokens, longer ones go first so that the longest token always wins.
var fieldTokens = []string{
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"Do", "DD", "D",
	"dddd", "ddd", "dd", "d",
	"HH", "H", "hh", "h", "kk", "k",
	"mm", "m", "ss", "s",
	"SSS", "SS", "S",
	"ZZ", "Z",
	"A", "a",
	"Q", "ww", "w", "WW", "W",
	"X", "x",
}

var localizedTokens = []string{"LTS", "LT", "LLLL", "LLL", "LL", "L", "llll", "lll", "ll", "l"}

// Literal text when field is empty.
type layoutToken struct {
	field string
	lit   string
}

type layout struct {
	tokens []layoutToken

	// set when the pattern is malformed, formatting still works on a best-effort basis
	err error
}

func (l *layout) appendLit(s string) {
	if s == "" {
		return
	}
	if n := len(l.tokens); n > 0 && l.tokens[n-1].field == "" {
		l.tokens[n-1].lit += s
		return
	}
	l.tokens = append(l.tokens, layoutToken{lit: s})
}

func (l *layout) appendField(f string) {
	l.tokens = append(l.tokens, layoutToken{field: f})
}

// Split pattern into literals and field tokens, localized formats are expanded.
func compileLayout(pattern string, locale *Locale) *layout {
	l := &layout{}
	compileLayoutInto(l, pattern, locale, true)
	return l
}

func compileLayoutInto(l *layout, pattern string, locale *Locale, expand bool) {
	for i := 0; i < len(pattern); {
		rest := pattern[i:]
		if rest[0] == '[' {
			if j := strings.IndexByte(rest, ']'); j > 0 {
				l.appendLit(rest[1:j])
				i += j + 1
				continue
			}
			if l.err == nil {
				l.err = errs.ErrInvalidPattern.WithInternalMsg("unclosed '[' at %d in pattern '%v'", i, pattern)
			}
			l.appendLit("[")
			i++
			continue
		}

		if expand {
			if tok, ok := matchPrefix(rest, localizedTokens); ok {
				if f, ok := locale.LocalizedFormat(tok); ok {
					compileLayoutInto(l, f, locale, false)
					i += len(tok)
					continue
				}
			}
		}

		if tok, ok := matchPrefix(rest, fieldTokens); ok {
			l.appendField(tok)
			i += len(tok)
			continue
		}

		l.appendLit(rest[:1])
		i++
	}
}

func matchPrefix(s string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if strings.HasPrefix(s, c) {
			return c, true
		}
	}
	return "", false
}

func formatLayout(b *strings.Builder, l *layout, t Time, locale *Locale) {
	for _, tok := range l.tokens {
		if tok.field == "" {
			b.WriteString(tok.lit)
			continue
		}
		b.WriteString(formatField(tok.field, t, locale))
	}
}

func formatField(field string, t Time, locale *Locale) string {
	switch field {
	case "YYYY":
		return strutil.PadNum(t.Year(), 4)
	case "YY":
		y := t.Year() % 100
		if y < 0 {
			y = -y
		}
		return strutil.PadNum(y, 2)
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "MM":
		return strutil.PadNum(int(t.Month()), 2)
	case "MMM":
		return locale.MonthsShort[t.Month()-1]
	case "MMMM":
		return locale.Months[t.Month()-1]
	case "D":
		return strconv.Itoa(t.Day())
	case "DD":
		return strutil.PadNum(t.Day(), 2)
	case "Do":
		return locale.ordinal(t.Day())
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "dd":
		return locale.WeekdaysMin[t.Weekday()]
	case "ddd":
		return locale.WeekdaysShort[t.Weekday()]
	case "dddd":
		return locale.Weekdays[t.Weekday()]
	case "H":
		return strconv.Itoa(t.Hour())
	case "HH":
		return strutil.PadNum(t.Hour(), 2)
	case "h":
		return strconv.Itoa(hour12(t.Hour()))
	case "hh":
		return strutil.PadNum(hour12(t.Hour()), 2)
	case "k":
		return strconv.Itoa(hour24(t.Hour()))
	case "kk":
		return strutil.PadNum(hour24(t.Hour()), 2)
	case "a":
		return locale.meridiem(t.Hour(), true)
	case "A":
		return locale.meridiem(t.Hour(), false)
	case "m":
		return strconv.Itoa(t.Minute())
	case "mm":
		return strutil.PadNum(t.Minute(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "ss":
		return strutil.PadNum(t.Second(), 2)
	case "S":
		return strconv.Itoa(t.Nanosecond() / 100_000_000)
	case "SS":
		return strutil.PadNum(t.Nanosecond()/10_000_000, 2)
	case "SSS":
		return strutil.PadNum(t.Nanosecond()/1_000_000, 3)
	case "Z":
		return formatOffset(t.Offset(), ":")
	case "ZZ":
		return formatOffset(t.Offset(), "")
	case "Q":
		return strconv.Itoa(t.Quarter())
	case "w":
		return strconv.Itoa(t.Week(locale.WeekStart, locale.YearStart))
	case "ww":
		return strutil.PadNum(t.Week(locale.WeekStart, locale.YearStart), 2)
	case "W":
		_, w := t.ISOWeek()
		return strconv.Itoa(w)
	case "WW":
		_, w := t.ISOWeek()
		return strutil.PadNum(w, 2)
	case "X":
		return strconv.FormatInt(floorDiv(t.UnixMilli(), MilliPerSecond), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return field
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func hour24(h int) int {
	if h == 0 {
		return 24
	}
	return h
}

// e.g., +05:30 or +0530
func formatOffset(offsetSec int, sep string) string {
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	min := offsetSec / 60
	return sign + strutil.PadNum(min/60, 2) + sep + strutil.PadNum(min%60, 2)
}
