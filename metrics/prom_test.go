package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/util/opt"
	"github.com/curtisnewbie/timeaxis/util/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFallbackListener(t *testing.T) {
	a := adapter.New(adapter.WithFallbackListener(FallbackListener()))
	endOf := FallbackCounter.WithLabelValues(adapter.OpEndOf, "isoWeek")
	parse := FallbackCounter.WithLabelValues(adapter.OpParse, "unknown")
	before := promtest.ToFloat64(endOf)
	beforeParse := promtest.ToFloat64(parse)

	a.EndOf(1710498600000, adapter.UnitISOWeek)
	a.EndOf(1710498600000, adapter.UnitISOWeek)
	a.EndOf(1710498600000, adapter.UnitDay)
	a.Parse(adapter.None(), opt.Nil[string]())

	testutil.TestEqual(t, before+2, promtest.ToFloat64(endOf))
	testutil.TestEqual(t, beforeParse+1, promtest.ToFloat64(parse))
}

func TestPrometheusHandler(t *testing.T) {
	FallbackListener()(adapter.OpAdd, adapter.UnitISOWeek)

	rec := httptest.NewRecorder()
	PrometheusHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	testutil.TestEqual(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	testutil.TestNoErr(t, err)
	testutil.TestTrue(t, strings.Contains(string(body), `timeaxis_adapter_fallback_total{op="add",unit="isoWeek"}`))
}
