package adapter

import (
	"time"

	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/util/atom"
	"github.com/curtisnewbie/timeaxis/util/errs"
)

// Build Calendar using 'calendar.timezone' and 'calendar.locale'.
func CalendarFromConfig(conf *core.AppConfig) (*atom.Calendar, error) {
	tz := conf.GetPropStr(core.PropCalendarTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errs.ErrUnknownTimezone.Wrapf(err, "failed to load timezone '%v'", tz)
	}
	locale, err := atom.LookupLocale(conf.GetPropStr(core.PropCalendarLocale))
	if err != nil {
		return nil, err
	}
	return atom.NewCalendar(loc, locale), nil
}

// Read format overrides under 'adapter.formats'.
func FormatsFromConfig(conf *core.AppConfig) map[string]string {
	overrides := map[string]string{}

	// unknown keys are kept, they are reported when the table is built
	for k, v := range conf.GetPropStrMap(core.PropAdapterFormats) {
		overrides[k] = v
	}

	// keys set individually, e.g., through args, are not merged into the map above
	for _, g := range Granularities {
		k := core.PropAdapterFormats + "." + string(g)
		if conf.HasProp(k) {
			overrides[string(g)] = conf.GetPropStr(k)
		}
	}
	return overrides
}

// Build Adapter from configuration, opts are applied last.
func FromConfig(conf *core.AppConfig, opts ...Option) (*Adapter, error) {
	cal, err := CalendarFromConfig(conf)
	if err != nil {
		return nil, err
	}
	base := []Option{WithCalendar(cal), WithFormats(FormatsFromConfig(conf))}
	a := New(append(base, opts...)...)
	core.Debugf("Built temporal adapter, zone: %v, locale: %v", cal.Loc, cal.Locale.Name)
	return a, nil
}
