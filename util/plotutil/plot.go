package plotutil

import (
	"math"

	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/spf13/cast"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type plotLineConf struct {
	XLabel     *string
	YLabel     *string
	PlotWidth  *font.Length
	PlotHeight *font.Length
	LineLabel  *string
}

type PlotLineOption func(*plotLineConf)

func WithXLabel(v string) PlotLineOption {
	return func(pgc *plotLineConf) {
		pgc.XLabel = &v
	}
}

func WithYLabel(v string) PlotLineOption {
	return func(pgc *plotLineConf) {
		pgc.YLabel = &v
	}
}

func WithWidth(v font.Length) PlotLineOption {
	return func(pgc *plotLineConf) {
		pgc.PlotWidth = &v
	}
}

func WithHeight(v font.Length) PlotLineOption {
	return func(pgc *plotLineConf) {
		pgc.PlotHeight = &v
	}
}

func WithLineLabel(v string) PlotLineOption {
	return func(pgc *plotLineConf) {
		pgc.LineLabel = &v
	}
}

// Plot a time series into fname, the image format is decided by the file extension, e.g., '.png', '.svg'.
//
// X values are epoch milliseconds, ticks on the X axis are generated by ticker, e.g., axis.PlotTicker.
func PlotTimeLine(title string, points plotter.XYs, fname string, ticker plot.Ticker, ops ...PlotLineOption) error {
	if len(points) < 1 {
		return errs.ErrIllegalArgument.WithInternalMsg("no points to plot")
	}
	pgc := &plotLineConf{}
	for _, o := range ops {
		o(pgc)
	}

	var (
		xlabel     string = "Time"
		ylabel     string = "Y"
		lineLabel  string
		plotWidth  = 10 * vg.Inch
		plotHeight = plotWidth / 2
	)
	if pgc.XLabel != nil {
		xlabel = *pgc.XLabel
	}
	if pgc.YLabel != nil {
		ylabel = *pgc.YLabel
	}
	if pgc.LineLabel != nil {
		lineLabel = *pgc.LineLabel
	}
	if pgc.PlotWidth != nil {
		plotWidth = *pgc.PlotWidth
	}
	if pgc.PlotHeight != nil {
		plotHeight = *pgc.PlotHeight
	}

	p := plot.New()
	p.Title.Text = "\n" + title
	p.Title.Padding = 0.1 * vg.Inch
	p.X.Label.Text = "\n" + xlabel + "\n"
	p.X.Label.Padding = 0.1 * vg.Inch
	p.Y.Label.Text = "\n" + ylabel + "\n"
	p.Y.Label.Padding = 0.1 * vg.Inch
	if ticker != nil {
		p.X.Tick.Marker = ticker
	}
	p.Add(plotter.NewGrid())

	if err := drawLine(p, points, 1, lineLabel); err != nil {
		return err
	}

	// fit the data after the plotters have extended the ranges
	p.X.Min, p.X.Max = points[0].X, points[0].X
	p.Y.Min, p.Y.Max = 0, 0
	for _, v := range points {
		p.X.Min = math.Min(p.X.Min, v.X)
		p.X.Max = math.Max(p.X.Max, v.X)
		p.Y.Min = math.Min(p.Y.Min, v.Y)
		p.Y.Max = math.Max(p.Y.Max, v.Y)
	}
	p.Y.Max += 1

	if err := p.Save(plotWidth, plotHeight, fname); err != nil {
		return errs.WrapErrf(err, "failed to save plot to '%v'", fname)
	}
	return nil
}

func drawLine(p *plot.Plot, dat plotter.XYs, color int, lineLabel string) error {

	// find min, max
	mini, maxi := 0, 0
	for i, xy := range dat {
		if xy.Y < dat[mini].Y {
			mini = i
		}
		if xy.Y >= dat[maxi].Y {
			maxi = i
		}
	}

	line, err := plotter.NewLine(dat)
	if err != nil {
		return errs.Wrap(err)
	}
	line.LineStyle.Color = plotutil.Color(color)
	p.Add(line)

	xys := []plotter.XY{{X: dat[maxi].X, Y: dat[maxi].Y}}
	labels := []string{cast.ToString(dat[maxi].Y)}
	if dat[mini].Y < dat[maxi].Y {
		xys = append(xys, plotter.XY{X: dat[mini].X, Y: dat[mini].Y})
		labels = append(labels, cast.ToString(dat[mini].Y))
	}
	if lineLabel != "" {
		xys = append(xys, plotter.XY{X: dat[0].X, Y: dat[0].Y})
		labels = append(labels, lineLabel)
	}
	lineLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return errs.Wrap(err)
	}
	p.Add(lineLabels)
	return nil
}
