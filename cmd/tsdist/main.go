// SPDX-License-Identifier: MIT

// Command tsdist computes time-series distance matrices from files, serves
// them over HTTP and generates synthetic collections.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tsdist/config"
	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/device/emulator"
)

const appName = "tsdist"

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

// app is the state shared by every subcommand.
type app struct {
	cfgPath  string
	logLevel string
	cfg      config.Config
	logger   zerolog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           appName,
		Short:         "Elastic time-series distance matrices",
		Long:          "tsdist computes pairwise distance matrices (DTW, ERP, LCSS, MSM, TWE, SBD, MP, ...) between collections of time series.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.cfgPath, "config", os.Getenv("TSDIST_CONFIG"), "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug|info|warn|error)")

	root.AddCommand(
		newComputeCmd(a),
		newServeCmd(a),
		newSynthCmd(a),
		newMetricsCmd(a),
		newVersionCmd(),
	)

	return root
}

// init loads the configuration, configures logging and registers the accelerator.
func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	var out io.Writer = stderr
	if cfg.Log.Console {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	}
	a.logger = zerolog.New(out).Level(level).With().Timestamp().Str("app", appName).Logger()

	if cfg.Compute.Accelerator == "emulator" {
		device.Register(emulator.Provider())
		a.logger.Debug().Msg("accelerator: host emulator registered")
	}
	a.cfg = cfg

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)

			return err
		},
	}
}
