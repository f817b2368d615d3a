package atom

import (
	"strconv"
	"strings"
	"time"

	"github.com/curtisnewbie/timeaxis/util/errs"
	"golang.org/x/text/language"
)

// Calendar locale, names are indexed from January and Sunday.
type Locale struct {
	Name          string
	Months        [12]string
	MonthsShort   [12]string
	Weekdays      [7]string
	WeekdaysShort [7]string
	WeekdaysMin   [7]string

	// first day of week
	WeekStart time.Weekday

	// week 1 is the week containing January YearStart
	YearStart int

	// LT, LTS, L, LL, LLL and LLLL, the lower case variants are derived from them
	Formats map[string]string

	Ordinal  func(n int) string
	Meridiem func(hour int, lower bool) string
}

func (l *Locale) clone() *Locale {
	c := *l
	c.Formats = make(map[string]string, len(l.Formats))
	for k, v := range l.Formats {
		c.Formats[k] = v
	}
	return &c
}

// Resolve localized format, e.g., 'L' or 'll'. Returns false if the token is unknown.
func (l *Locale) LocalizedFormat(token string) (string, bool) {
	if f, ok := l.Formats[token]; ok {
		return f, true
	}
	upper := strings.ToUpper(token)
	if upper == token || upper == "LTS" || upper == "LT" {
		return "", false
	}
	f, ok := l.Formats[upper]
	if !ok {
		return "", false
	}
	return shortenLocalized(f), true
}

func (l *Locale) meridiem(hour int, lower bool) string {
	if l.Meridiem != nil {
		return l.Meridiem(hour, lower)
	}
	return defaultMeridiem(hour, lower)
}

func (l *Locale) ordinal(n int) string {
	if l.Ordinal != nil {
		return l.Ordinal(n)
	}
	return strconv.Itoa(n)
}

// MMMM -> MMM, MM -> M, DD -> D, dddd -> ddd, escaped text is kept
func shortenLocalized(f string) string {
	var b strings.Builder
	for i := 0; i < len(f); {
		if f[i] == '[' {
			if j := strings.IndexByte(f[i:], ']'); j > 0 {
				b.WriteString(f[i : i+j+1])
				i += j + 1
				continue
			}
		}
		matched := false
		for _, tok := range []string{"MMMM", "dddd", "MM", "DD"} {
			if strings.HasPrefix(f[i:], tok) {
				b.WriteString(tok[1:])
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(f[i])
			i++
		}
	}
	return b.String()
}

func defaultMeridiem(hour int, lower bool) string {
	if hour < 12 {
		if lower {
			return "am"
		}
		return "AM"
	}
	if lower {
		return "pm"
	}
	return "PM"
}

func englishOrdinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

var (
	englishMonths      = [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	englishMonthsShort = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	englishWeekdays    = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	englishWeekdaysSh  = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	englishWeekdaysMin = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
)

var builtinLocales = []*Locale{
	{
		Name:          "en",
		Months:        englishMonths,
		MonthsShort:   englishMonthsShort,
		Weekdays:      englishWeekdays,
		WeekdaysShort: englishWeekdaysSh,
		WeekdaysMin:   englishWeekdaysMin,
		WeekStart:     time.Sunday,
		YearStart:     1,
		Formats: map[string]string{
			"LT":   "h:mm A",
			"LTS":  "h:mm:ss A",
			"L":    "MM/DD/YYYY",
			"LL":   "MMMM D, YYYY",
			"LLL":  "MMMM D, YYYY h:mm A",
			"LLLL": "dddd, MMMM D, YYYY h:mm A",
		},
		Ordinal: englishOrdinal,
	},
	{
		Name:          "en-GB",
		Months:        englishMonths,
		MonthsShort:   englishMonthsShort,
		Weekdays:      englishWeekdays,
		WeekdaysShort: englishWeekdaysSh,
		WeekdaysMin:   englishWeekdaysMin,
		WeekStart:     time.Monday,
		YearStart:     4,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "D MMMM YYYY HH:mm",
			"LLLL": "dddd, D MMMM YYYY HH:mm",
		},
		Ordinal: englishOrdinal,
	},
	{
		Name:          "de",
		Months:        [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		MonthsShort:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
		Weekdays:      [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		WeekdaysShort: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
		WeekdaysMin:   [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		WeekStart:     time.Monday,
		YearStart:     4,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD.MM.YYYY",
			"LL":   "D. MMMM YYYY",
			"LLL":  "D. MMMM YYYY HH:mm",
			"LLLL": "dddd, D. MMMM YYYY HH:mm",
		},
		Ordinal: func(n int) string { return strconv.Itoa(n) + "." },
	},
	{
		Name:          "fr",
		Months:        [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		MonthsShort:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		Weekdays:      [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		WeekdaysShort: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
		WeekdaysMin:   [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
		WeekStart:     time.Monday,
		YearStart:     4,
		Formats: map[string]string{
			"LT":   "HH:mm",
			"LTS":  "HH:mm:ss",
			"L":    "DD/MM/YYYY",
			"LL":   "D MMMM YYYY",
			"LLL":  "D MMMM YYYY HH:mm",
			"LLLL": "dddd D MMMM YYYY HH:mm",
		},
		Ordinal: func(n int) string {
			if n == 1 {
				return "1er"
			}
			return strconv.Itoa(n)
		},
	},
}

// matched in the same order as builtinLocales
var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.BritishEnglish,
	language.German,
	language.French,
})

// regions where weeks start on a day other than Monday, from CLDR week data
var regionWeekStart = map[string]time.Weekday{}

func init() {
	for _, r := range strings.Fields("AG AS BD BR BS BT BW BZ CA CN CO DM DO ET GT GU HK HN ID IL IN JM JP KE KH KR LA MH MM MO MT MX MZ NI NP PA PE PH PK PR PT PY SA SG SV TH TT TW UM US VE VI WS YE ZA ZW") {
		regionWeekStart[r] = time.Sunday
	}
	for _, r := range strings.Fields("AE AF BH DJ DZ EG IQ IR JO KW LY OM QA SD SY") {
		regionWeekStart[r] = time.Saturday
	}
	regionWeekStart["MV"] = time.Friday
}

// Built-in English locale.
func English() *Locale {
	return builtinLocales[0].clone()
}

// Resolve locale by BCP-47 tag, e.g., 'en', 'en-GB', 'de-AT' or 'fr-CA'.
//
// The closest built-in locale provides names and formats. When the tag has an explicit region, the region decides
// the first day of week.
func LookupLocale(tag string) (*Locale, error) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return nil, errs.ErrUnknownLocale.Wrapf(err, "failed to parse locale tag '%v'", tag)
	}
	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No {
		return nil, errs.ErrUnknownLocale.WithInternalMsg("no locale matches '%v'", tag)
	}
	l := builtinLocales[idx].clone()
	if region, rc := t.Region(); rc == language.Exact {
		l.Name = t.String()
		if ws, ok := regionWeekStart[region.String()]; ok {
			l.WeekStart = ws
		} else {
			l.WeekStart = time.Monday
		}
	}
	return l, nil
}
