// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tsdist/distances"
)

func newMetricsCmd(_ *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the available distance metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := distances.Metrics()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(infos)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METRIC\tPARAMS\tGPU\tDESCRIPTION")
			for _, info := range infos {
				params := strings.Join(info.Params, ",")
				if params == "" {
					params = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", info.Name, params, info.Accelerated, info.Summary)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")

	return cmd
}
