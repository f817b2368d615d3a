package metrics

import (
	"net/http"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Number of adapter operations that returned their sentinel result.
	FallbackCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timeaxis",
		Subsystem: "adapter",
		Name:      "fallback_total",
		Help:      "Number of temporal adapter operations that fell back to the sentinel result",
	}, []string{"op", "unit"})
)

func init() {
	prometheus.MustRegister(FallbackCounter)
}

// Build FallbackListener that increments FallbackCounter.
func FallbackListener() adapter.FallbackListener {
	return func(op string, unit adapter.Unit) {
		FallbackCounter.WithLabelValues(op, unit.String()).Inc()
	}
}

func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
