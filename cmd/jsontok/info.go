package main

import (
	"fmt"
	"strings"

	"github.com/jsontok/jsontok/internal/diag"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the host CPU and the effective parser options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := diag.Current()
			fmt.Fprintf(out, "cpu: %s\n", c.BrandName)
			fmt.Fprintf(out, "cores: %d physical, %d logical\n", c.PhysicalCores, c.LogicalCores)
			fmt.Fprintf(out, "cache line: %d bytes\n", c.CacheLine)
			fmt.Fprintf(out, "features: %s\n", strings.Join(c.Features, " "))

			opts := optsFromFlags()
			fmt.Fprintf(out, "permissive: %v\n", opts.Permissive)
			fmt.Fprintf(out, "max depth: %d (0 means default)\n", opts.MaxDepth)
			fmt.Fprintf(out, "token cap: %d\n", flagTokenCap)
			return nil
		},
	}
}
