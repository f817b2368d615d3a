package main

import (
	"fmt"
	"io"
	"os"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/axis"
	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/encoding/json"
	"github.com/curtisnewbie/timeaxis/util/csv"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/plotutil"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/plotter"
)

type scaleFlags struct {
	unit       string
	step       int
	isoWeekday bool
	maxTicks   int
}

func (f *scaleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.unit, "unit", "u", "", "unit of ticks, determined by the range when absent")
	cmd.Flags().IntVar(&f.step, "step", 1, "number of units between ticks")
	cmd.Flags().BoolVar(&f.isoWeekday, "iso-weekday", false, "start weeks on Monday")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "max number of ticks, 'axis.max-ticks' by default")
}

func (a *app) scale(f scaleFlags) axis.Scale {
	host := axis.NewContext()
	host.UseBackend(a.adapter)

	maxTicks := f.maxTicks
	if maxTicks < 1 {
		maxTicks = a.conf.GetPropInt(core.PropAxisMaxTicks)
	}
	return axis.Scale{
		Host:       host,
		Unit:       adapter.ParseUnit(f.unit),
		Step:       f.step,
		ISOWeekday: f.isoWeekday,
		MaxTicks:   maxTicks,
	}
}

func (a *app) ticksCmd() *cobra.Command {
	var (
		sf     scaleFlags
		asCsv  bool
		asJson bool
	)
	cmd := &cobra.Command{
		Use:   "ticks MIN MAX",
		Short: "Generate axis ticks between min and max",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := a.instant(args[0])
			if err != nil {
				return err
			}
			max, err := a.instant(args[1])
			if err != nil {
				return err
			}
			ticks, err := a.scale(sf).Ticks(min, max)
			if err != nil {
				return err
			}
			return printTicks(cmd.OutOrStdout(), ticks, asCsv, asJson)
		},
	}
	sf.register(cmd)
	cmd.Flags().BoolVar(&asCsv, "csv", false, "print as csv")
	cmd.Flags().BoolVar(&asJson, "json", false, "print as json")
	return cmd
}

func printTicks(w io.Writer, ticks []axis.Tick, asCsv bool, asJson bool) error {
	if asJson {
		s, err := json.SWriteIndent(ticks)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}
	if asCsv {
		records := make([][]string, 0, len(ticks))
		for _, t := range ticks {
			records = append(records, []string{cast.ToString(int64(t.Value)), t.Label, cast.ToString(t.Major)})
		}
		return csv.Write(w, records)
	}
	for _, t := range ticks {
		major := ""
		if t.Major {
			major = "\tmajor"
		}
		fmt.Fprintf(w, "%d\t%s%s\n", t.Value, t.Label, major)
	}
	return nil
}

func (a *app) plotCmd() *cobra.Command {
	var (
		sf     scaleFlags
		in     string
		out    string
		title  string
		xlabel string
		ylabel string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot a time series read from csv, each row is 'time,value'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := cmd.InOrStdin()
			if in != "" && in != "-" {
				f, err := os.Open(in)
				if err != nil {
					return errs.WrapErrf(err, "failed to open '%v'", in)
				}
				defer f.Close()
				r = f
			}
			points, err := a.readPoints(r)
			if err != nil {
				return err
			}
			ticker := axis.PlotTicker{Scale: a.scale(sf)}
			if err := plotutil.PlotTimeLine(title, points, out, ticker,
				plotutil.WithXLabel(xlabel), plotutil.WithYLabel(ylabel)); err != nil {
				return err
			}
			core.Infof("Plotted %d points to '%v'", len(points), out)
			return nil
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVarP(&in, "in", "i", "-", "csv file, '-' for stdin")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image, e.g., 'series.png'")
	cmd.Flags().StringVar(&title, "title", "", "title of the plot")
	cmd.Flags().StringVar(&xlabel, "x-label", "Time", "label of the x axis")
	cmd.Flags().StringVar(&ylabel, "y-label", "Value", "label of the y axis")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// Read 'time,value' rows, a header row is skipped.
func (a *app) readPoints(r io.Reader) (plotter.XYs, error) {
	records, err := csv.ReadAllIgnoreEmpty(r)
	if err != nil {
		return nil, err
	}
	points := make(plotter.XYs, 0, len(records))
	for i, row := range records {
		if len(row) < 2 {
			return nil, errs.ErrIllegalArgument.WithInternalMsg("row %d has less than two columns", i+1)
		}
		y, err := cast.ToFloat64E(row[1])
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, errs.ErrIllegalArgument.Wrapf(err, "row %d has an invalid value '%v'", i+1, row[1])
		}
		t, err := a.instant(row[0])
		if err != nil {
			return nil, err
		}
		points = append(points, plotter.XY{X: float64(t), Y: y})
	}
	return points, nil
}
