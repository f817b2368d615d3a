package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/metrics"
	"github.com/curtisnewbie/timeaxis/server"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/opt"
	"github.com/spf13/cobra"
)

type app struct {
	configFile string
	sets       []string
	debug      bool

	conf      *core.AppConfig
	adapter   *adapter.Adapter
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "timeaxis",
		Short:         "Calendar aware time parsing, formatting, arithmetic and axis ticks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to the yaml config file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log at debug level, overrides logging.level")
	root.PersistentFlags().StringArrayVar(&a.sets, "set", nil, "overwrite config prop, e.g., --set calendar.timezone=Asia/Tokyo")

	root.AddCommand(
		a.formatsCmd(),
		a.parseCmd(),
		a.formatCmd(),
		a.addCmd(),
		a.diffCmd(),
		a.startOfCmd(),
		a.endOfCmd(),
		a.ticksCmd(),
		a.plotCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	core.SetDefaultLogOutput(cmd.ErrOrStderr())

	conf := core.NewAppConfig()
	if err := conf.LoadConfigFromFile(a.configFile); err != nil {
		return err
	}
	conf.OverwriteConf(a.sets)

	closer, err := core.ConfigureLogging(conf)
	if err != nil {
		return err
	}
	a.logCloser = closer
	if a.debug {
		core.SetLogLevel("debug")
	}

	ad, err := adapter.FromConfig(conf, adapter.WithFallbackListener(metrics.FallbackListener()))
	if err != nil {
		return err
	}
	a.conf = conf
	a.adapter = ad
	return nil
}

// Parse cli arg as instant, integers are epoch milliseconds, others are parsed in free form.
func (a *app) instant(arg string) (adapter.Instant, error) {
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		t := adapter.Instant(n)
		if !t.Valid() {
			return 0, errs.ErrIllegalArgument.WithInternalMsg("epoch %d is out of range", n)
		}
		return t, nil
	}
	return a.adapter.ParseErr(adapter.Text(arg), opt.Nil[string]())
}

func (a *app) printInstant(w io.Writer, t adapter.Instant) {
	fmt.Fprintf(w, "%d\t%s\n", t, a.adapter.Format(t, server.IsoPattern))
}
