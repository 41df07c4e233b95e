package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jsontok/jsontok"
	"github.com/jsontok/jsontok/streamjson"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Follow a file that's being appended to, printing each complete top-level value as it arrives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(cmd, args[0])
		},
	}
}

// watchFile tails a growing file (e.g. newline-delimited JSON being written
// by another process) using fsnotify to wake up on writes instead of
// polling, handing each chunk to a streamjson.Scanner so a value split
// across several writes is still parsed correctly.
func watchFile(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	scanner := streamjson.NewScanner(f, optsFromFlags(), flagTokenCap)
	out := cmd.OutOrStdout()

	for {
		tokens, raw, err := scanner.Next()
		switch {
		case err == nil:
			printValue(out, tokens, raw)
			continue
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			slog.Debug("caught up, waiting for writes", "path", path)
		default:
			return fmt.Errorf("parse %s: %w", path, err)
		}

		if waitErr := waitForWrite(watcher); waitErr != nil {
			return waitErr
		}
	}
}

// waitForWrite blocks until fsnotify reports a write (or create, for
// editors that replace the file atomically) or an unrecoverable watcher
// error. A timer guards against missed events on some filesystems by
// polling once in a while regardless.
func waitForWrite(watcher *fsnotify.Watcher) error {
	timeout := time.NewTimer(2 * time.Second)
	defer timeout.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher: %w", werr)
		case <-timeout.C:
			return nil
		}
	}
}

func printValue(out io.Writer, tokens []jsontok.Token, raw []byte) {
	if len(tokens) == 0 {
		return
	}
	fmt.Fprintf(out, "%s %q\n", tokens[0].Kind, raw)
}
