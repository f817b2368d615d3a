package adapter

import (
	"errors"
	"testing"

	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/opt"
	"github.com/curtisnewbie/timeaxis/util/testutil"
)

type slotHost struct {
	backend Backend
	calls   int
}

func (h *slotHost) UseBackend(b Backend) {
	h.backend = b
	h.calls++
}

func loadTestConf(t *testing.T) *core.AppConfig {
	conf := core.NewAppConfig()
	if err := conf.LoadConfigFromFile(testutil.FindTestdata(t, "conf_test.yml")); err != nil {
		t.Fatal(err)
	}
	return conf
}

func TestFromConfig(t *testing.T) {
	t.Setenv("TIMEAXIS_TEST_TZ", "Asia/Tokyo")
	conf := loadTestConf(t)
	conf.SetProp(core.PropAdapterFormats+".hour", "HH[h]")

	a, err := FromConfig(conf)
	testutil.TestNoErr(t, err)

	f := a.Formats()
	testutil.TestEqual(t, "DD/MM", f.Get(GranularityDay))
	testutil.TestEqual(t, "[Q]Q YYYY", f.Get(GranularityQuarter))
	testutil.TestEqual(t, "HH[h]", f.Get(GranularityHour))
	testutil.TestEqual(t, "YYYY", f.Get(GranularityYear))

	testutil.TestEqual(t, "Asia/Tokyo", a.Calendar().Loc.String())
	testutil.TestEqual(t, "en-GB", a.Calendar().Locale.Name)
	testutil.TestEqual(t, "15/03", a.Format(ref, f.Get(GranularityDay)))
	testutil.TestEqual(t, "19h", a.Format(ref, f.Get(GranularityHour)))

	// weeks start on Monday in Tokyo's local time
	testutil.TestEqual(t, "2024-03-11 00:00 +09:00", a.Format(a.StartOf(ref, UnitWeek), "YYYY-MM-DD HH:mm Z"))

	v, ok := a.Parse(Text("2024-03-15 19:30"), opt.Nil[string]())
	testutil.TestTrue(t, ok)
	testutil.TestEqual(t, ref, v)
}

func TestFromConfigDefaults(t *testing.T) {
	a, err := FromConfig(core.NewAppConfig())
	testutil.TestNoErr(t, err)
	testutil.TestEqual(t, "UTC", a.Calendar().Loc.String())
	testutil.TestEqual(t, "en", a.Calendar().Locale.Name)
	testutil.TestEqual(t, DefaultFormats().Map()["datetime"], a.Formats().Get(GranularityDatetime))
}

func TestFromConfigErr(t *testing.T) {
	conf := core.NewAppConfig()
	conf.SetProp(core.PropCalendarTimezone, "Mars/Olympus_Mons")
	_, err := FromConfig(conf)
	testutil.TestTrue(t, errors.Is(err, errs.ErrUnknownTimezone))

	conf = core.NewAppConfig()
	conf.SetProp(core.PropCalendarLocale, "tlh")
	_, err = FromConfig(conf)
	testutil.TestTrue(t, errors.Is(err, errs.ErrUnknownLocale))
}

func TestInitialize(t *testing.T) {
	var h slotHost
	first := Initialize(&h, nil)
	testutil.TestEqual(t, 1, h.calls)
	testutil.TestTrue(t, h.backend == Backend(first))

	second := Initialize(&h, map[string]string{"day": "D MMM"})
	testutil.TestEqual(t, 2, h.calls)
	testutil.TestTrue(t, h.backend == Backend(second))
	testutil.TestEqual(t, "15 Mar", h.backend.Format(ref, h.backend.Formats().Get(GranularityDay)))

	// options are applied after the overrides
	third := Initialize(&h, map[string]string{"day": "D MMM"}, WithFormats(map[string]string{"day": "DD"}))
	testutil.TestEqual(t, "DD", third.Formats().Get(GranularityDay))
}
