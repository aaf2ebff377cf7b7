// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/tsdist/cost"
	"github.com/katalvlaran/tsdist/distances"
	"github.com/katalvlaran/tsdist/features"
)

type computeFlags struct {
	x1, x2    string
	output    string
	format    string
	device    string
	workers   int
	parallel  bool
	extractor string
	params    distances.Params
}

// addParamFlags binds every metric parameter to fs with catalog defaults.
func addParamFlags(fs *pflag.FlagSet, p *distances.Params) {
	d := distances.DefaultParams()
	fs.Float64Var(&p.Band, "band", d.Band, "Sakoe-Chiba band fraction in [0,1]")
	fs.Float64Var(&p.Gap, "gap", d.Gap, "ERP gap value")
	fs.Float64Var(&p.Epsilon, "epsilon", d.Epsilon, "LCSS matching tolerance")
	fs.Float64Var(&p.G, "g", d.G, "WDTW/WDDTW logistic steepness")
	fs.Float64Var(&p.WarpPenalty, "warp-penalty", d.WarpPenalty, "ADTW warping penalty")
	fs.Float64Var(&p.Stiffness, "stiffness", d.Stiffness, "TWE stiffness (nu)")
	fs.Float64Var(&p.Penalty, "penalty", d.Penalty, "TWE penalty (lambda)")
	fs.IntVar(&p.Window, "window", d.Window, "MP subsequence window (0 = len/4)")
}

func newComputeCmd(a *app) *cobra.Command {
	f := &computeFlags{}
	cmd := &cobra.Command{
		Use:   "compute <metric>",
		Short: "Compute a distance matrix from sequence files",
		Long: `Compute a distance matrix between the sequences of --x1 and --x2
(or --x1 with itself). Inputs are CSV (one sequence per line, ragged rows
allowed), JSON or YAML arrays of arrays.

catch_euclidean needs --extractor naming a Catch22 extractor registered
with features.Register; this binary registers none by itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompute(cmd, args[0], f)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.x1, "x1", "", "First collection file (required)")
	fs.StringVar(&f.x2, "x2", "", "Second collection file (default: compare --x1 with itself)")
	fs.StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	fs.StringVar(&f.format, "format", formatCSV, "Output format (csv|json)")
	fs.StringVar(&f.device, "device", "", "Device (cpu|gpu); default from config")
	fs.IntVar(&f.workers, "workers", -1, "Worker pool size (0 = GOMAXPROCS); default from config")
	fs.BoolVar(&f.parallel, "parallel", true, "Fan rows out over a worker pool")
	fs.StringVar(&f.extractor, "extractor", "", "Catch22 extractor for catch_euclidean (must be registered by the binary)")
	addParamFlags(fs, &f.params)
	_ = cmd.MarkFlagRequired("x1")

	return cmd
}

func (a *app) runCompute(cmd *cobra.Command, metric string, f *computeFlags) error {
	x1, err := readCollection(f.x1)
	if err != nil {
		return err
	}
	var x2 [][]float64
	if f.x2 != "" {
		if x2, err = readCollection(f.x2); err != nil {
			return err
		}
	}

	dev := a.cfg.Compute.Device
	if f.device != "" {
		dev = f.device
	}
	workers := a.cfg.Compute.Workers
	if f.workers >= 0 {
		workers = f.workers
	}
	parallel := a.cfg.Compute.Parallel
	if cmd.Flags().Changed("parallel") {
		parallel = f.parallel
	}
	opts := []distances.Option{
		distances.WithContext(cmd.Context()),
		distances.WithDevice(dev),
		distances.WithWorkers(workers),
		distances.WithParallel(parallel),
		distances.WithLogger(a.logger),
	}
	if f.extractor == "" && strings.EqualFold(strings.TrimSpace(metric), string(cost.MetricCatchEuclidean)) {
		return fmt.Errorf("%s needs --extractor (registered: %s): %w",
			cost.MetricCatchEuclidean, registeredExtractors(), features.ErrNilExtractor)
	}
	if f.extractor != "" {
		ex, err := features.Lookup(f.extractor)
		if err != nil {
			return err
		}
		opts = append(opts, distances.WithExtractor(ex))
	}

	a.logger.Debug().Str("metric", metric).Int("x1", len(x1)).Int("x2", len(x2)).Str("device", dev).Msg("compute")
	m, err := distances.Run(metric, x1, x2, f.params, opts...)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(f.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeMatrix(w, m, f.format); err != nil {
		_ = closeOut()

		return err
	}

	return closeOut()
}

func registeredExtractors() string {
	names := features.Names()
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, ", ")
}
