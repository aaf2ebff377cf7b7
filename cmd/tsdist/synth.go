// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tsdist/synth"
)

func newSynthCmd(a *app) *cobra.Command {
	var (
		kind           string
		count          int
		minLen, maxLen int
		seed           int64
		noise          float64
		output, format string
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic collection",
		Long:  "Generates deterministic pulse, chirp, random-walk or noise sequences, one per output row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := synth.ParseKind(kind)
			if err != nil {
				return err
			}
			xs, err := synth.Collection(count, minLen, maxLen, seed, k, synth.WithNoise(noise))
			if err != nil {
				return err
			}
			a.logger.Debug().Str("kind", string(k)).Int("count", count).Int64("seed", seed).Msg("synth")

			w, closeOut, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := writeRows(w, xs, format); err != nil {
				_ = closeOut()

				return err
			}

			return closeOut()
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&kind, "kind", string(synth.KindMixed), "Generator (pulse|chirp|walk|noise|mixed)")
	fs.IntVarP(&count, "count", "n", 10, "Number of sequences")
	fs.IntVar(&minLen, "min-len", 64, "Minimum sequence length")
	fs.IntVar(&maxLen, "max-len", 128, "Maximum sequence length")
	fs.Int64Var(&seed, "seed", 1, "Random seed")
	fs.Float64Var(&noise, "noise", 0, "Gaussian noise sigma added to every sample")
	fs.StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	fs.StringVar(&format, "format", formatCSV, "Output format (csv|json)")

	return cmd
}
