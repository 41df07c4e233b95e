package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagPermissive bool
	flagMaxDepth   int
	flagTokenCap   int
	flagVerbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jsontok",
		Short:         "Validate and tokenize JSON without building a DOM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVar(&flagPermissive, "permissive", false, "accept leading zeros and multiple top-level values")
	root.PersistentFlags().IntVar(&flagMaxDepth, "max-depth", 0, "maximum container nesting depth (0 = default 64)")
	root.PersistentFlags().IntVar(&flagTokenCap, "token-cap", 4096, "token buffer capacity per parse")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newInfoCmd())
	return root
}
