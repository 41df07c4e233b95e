// Command jsontok exposes the jsontok tokenizer as a small CLI: validating
// input structurally, printing its token stream, watching a growing file,
// and reporting the host CPU jsontok is running on.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
