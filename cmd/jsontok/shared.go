package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jsontok/jsontok"
)

func optsFromFlags() jsontok.Options {
	return jsontok.Options{
		Permissive:  flagPermissive,
		MaxDepth:    flagMaxDepth,
		TrackParent: true,
	}
}

// openInput returns stdin for "-" or no args, otherwise opens the named file.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", args[0], err)
	}
	return f, nil
}
