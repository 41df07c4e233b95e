package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jsontok/jsontok"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print one line per emitted token: kind, byte range, child count, parent",
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

			tokens := make([]jsontok.Token, flagTokenCap)
			p := jsontok.NewParser(optsFromFlags())
			n := p.Parse(buf, tokens)
			if n < 0 {
				if perr := p.Err(); perr != nil {
					return perr
				}
				return fmt.Errorf("input ended before a complete value")
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			for i := 0; i < n; i++ {
				t := tokens[i]
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\tsize=%d\tparent=%d\t%q\n",
					i, t.Kind, t.Start, t.End, t.Size, t.Parent, t.Raw(buf))
			}
			return nil
		},
	}
}
