package main

import (
	"fmt"
	"strconv"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/encoding/json"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/opt"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func (a *app) formatsCmd() *cobra.Command {
	var asYaml bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Print the format table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.adapter.Formats().Map()
			if asYaml {
				buf, err := yaml.Marshal(map[string]any{"adapter": map[string]any{"formats": m}})
				if err != nil {
					return errs.Wrap(err)
				}
				_, err = cmd.OutOrStdout().Write(buf)
				return err
			}
			s, err := json.SWriteIndent(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYaml, "yaml", false, "print as yaml config")
	return cmd
}

func (a *app) parseCmd() *cobra.Command {
	var (
		pattern string
		epoch   bool
	)
	cmd := &cobra.Command{
		Use:   "parse VALUE",
		Short: "Parse value into epoch milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := adapter.Text(args[0])
			if epoch {
				n, err := cast.ToFloat64E(args[0])
				if err != nil {
					return errs.ErrIllegalArgument.Wrapf(err, "'%v' is not a number", args[0])
				}
				in = adapter.Number(n)
			}
			p := opt.Nil[string]()
			if pattern != "" {
				p = opt.New(pattern)
			}
			t, err := a.adapter.ParseErr(in, p)
			if err != nil {
				return err
			}
			a.printInstant(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "parse strictly using the pattern, e.g., 'DD/MM/YYYY HH:mm'")
	cmd.Flags().BoolVar(&epoch, "epoch", false, "value is a numeric epoch in milliseconds")
	return cmd
}

func (a *app) formatCmd() *cobra.Command {
	var (
		pattern     string
		granularity string
	)
	cmd := &cobra.Command{
		Use:   "format TIME",
		Short: "Format time using a pattern or the format table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.instant(args[0])
			if err != nil {
				return err
			}
			if pattern == "" {
				pattern = a.adapter.Formats().Get(adapter.Granularity(granularity))
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.adapter.Format(t, pattern))
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "format pattern, e.g., 'YYYY-MM-DD HH:mm'")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(adapter.GranularityDatetime), "key in the format table")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add TIME AMOUNT UNIT",
		Short: "Add amount of unit to time",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.instant(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return errs.ErrIllegalArgument.Wrapf(err, "'%v' is not an integer", args[1])
			}
			a.printInstant(cmd.OutOrStdout(), a.adapter.Add(t, amount, adapter.ParseUnit(args[2])))
			return nil
		},
	}
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff MAX MIN UNIT",
		Short: "Number of whole units from min to max",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			max, err := a.instant(args[0])
			if err != nil {
				return err
			}
			min, err := a.instant(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.adapter.Diff(max, min, adapter.ParseUnit(args[2])))
			return nil
		},
	}
}

func (a *app) startOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-of TIME UNIT",
		Short: "Start of the unit that contains time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.instant(args[0])
			if err != nil {
				return err
			}
			a.printInstant(cmd.OutOrStdout(), a.adapter.StartOf(t, adapter.ParseUnit(args[1])))
			return nil
		},
	}
}

func (a *app) endOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-of TIME UNIT",
		Short: "Last millisecond of the unit that contains time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.instant(args[0])
			if err != nil {
				return err
			}
			a.printInstant(cmd.OutOrStdout(), a.adapter.EndOf(t, adapter.ParseUnit(args[1])))
			return nil
		},
	}
}
