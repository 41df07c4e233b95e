package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jsontok/jsontok"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that input is structurally valid JSON, printing only the token count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			buf, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			p := jsontok.NewParser(optsFromFlags())
			n := p.Parse(buf, nil)
			if n < 0 {
				slog.Debug("parse failed", "code", jsontok.Code(n), "pos", p.Pos())
				if perr := p.Err(); perr != nil {
					return perr
				}
				return fmt.Errorf("input ended before a complete value")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid, %d tokens\n", n)
			return nil
		},
	}
}
