package axis

import (
	"math"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/core"
	"gonum.org/v1/plot"
)

var _ plot.Ticker = PlotTicker{}

// gonum plot.Ticker for axes whose values are epoch milliseconds.
type PlotTicker struct {
	Scale Scale
}

func (p PlotTicker) Ticks(min float64, max float64) []plot.Tick {
	lo := adapter.Instant(clampMilli(math.Floor(min)))
	hi := adapter.Instant(clampMilli(math.Ceil(max)))
	ticks, err := p.Scale.Ticks(lo, hi)
	if err != nil {
		core.Warnf("Failed to generate time ticks between %v and %v, %v", min, max, err)
		return nil
	}
	pt := make([]plot.Tick, 0, len(ticks))
	for _, t := range ticks {
		pt = append(pt, plot.Tick{Value: float64(t.Value), Label: t.Label})
	}
	return pt
}

func clampMilli(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-float64(adapter.MaxInstant), math.Min(float64(adapter.MaxInstant), v))
}
