// Command tzinspect prints how many active transitions a zone produces for
// a given year, and the offset in effect at a given instant.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-tz/acetz/tzregistry"
	"github.com/go-tz/acetz/zonedb/sample"
	"github.com/go-tz/acetz/zoneprocessor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "tzinspect",
		Short: "Inspect zone transitions computed by the acetz engine",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log cache rebuilds to stderr")

	root.AddCommand(newTransitionsCmd(&verbose))
	root.AddCommand(newAtCmd(&verbose))
	root.AddCommand(newZonesCmd())
	return root
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List every zone and link name known to the sample database",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := tzregistry.New(sample.Zones())
			for _, name := range reg.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTransitionsCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "transitions <zone> <year>",
		Short: "Print the number of active transitions computed for a zone and year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", args[1], err)
			}
			reg := tzregistry.New(sample.Zones())
			zi, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown zone %q", args[0])
			}
			resolved := zi
			if zi.IsLink() {
				resolved = zi.Target
			}
			p, err := zoneprocessor.NewProcessor(resolved, newLogger(*verbose))
			if err != nil {
				return err
			}
			count, err := p.ActiveTransitionCount(int16(year))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d): %d active transitions\n", args[0], year, count)
			return nil
		},
	}
}

func newAtCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "at <zone> <RFC3339 instant>",
		Short: "Print the offset in effect at an instant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := time.Parse(time.RFC3339, args[1])
			if err != nil {
				return fmt.Errorf("invalid instant %q: %w", args[1], err)
			}
			reg := tzregistry.New(sample.Zones())
			zi, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown zone %q", args[0])
			}
			resolved := zi
			if zi.IsLink() {
				resolved = zi.Target
			}
			p, err := zoneprocessor.NewProcessor(resolved, newLogger(*verbose))
			if err != nil {
				return err
			}
			const epochOffsetSeconds = 946684800
			info, err := p.OffsetForInstant(t.Unix() - epochOffsetSeconds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", info)
			return nil
		},
	}
}
