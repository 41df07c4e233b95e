package jsontok

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// parseInOneShot is the reference result: the whole input handed to Parse
// in a single call.
func parseInOneShot(t *testing.T, input []byte, opts Options) (n int, tokens []Token) {
	t.Helper()
	tokens = make([]Token, 128)
	p := NewParser(opts)
	n = p.Parse(input, tokens)
	return n, tokens[:max(n, 0)]
}

// parseAtEverySplit feeds input to a fresh Parser one byte boundary at a
// time, growing a buffer that shares one backing array, and checks that the
// result once the whole input is visible matches the one-shot parse
// regardless of where the splits fell. This is the resumability invariant
// spec.md promises: "splitting input at any byte boundary and feeding it in
// multiple calls yields the same tokens as parsing it in one call."
func parseAtEverySplit(t *testing.T, input []byte, opts Options) {
	t.Helper()
	for split := 0; split <= len(input); split++ {
		t.Run(fmt.Sprintf("split@%d", split), func(t *testing.T) {
			backing := make([]byte, len(input))
			tokens := make([]Token, 128)
			p := NewParser(opts)

			copy(backing[:split], input[:split])
			n := p.Parse(backing[:split], tokens)
			if split < len(input) {
				require.Equal(t, int(Partial), n, "incomplete prefix must report Partial, got %d at pos %d", n, p.Pos())
			}

			copy(backing, input)
			n = p.Parse(backing, tokens)

			wantN, wantTokens := parseInOneShot(t, input, opts)
			require.Equal(t, wantN, n, "split at %d diverged from one-shot result", split)
			if n >= 0 {
				require.Equal(t, wantTokens, tokens[:n])
			}
		})
	}
}

func TestResumeAcrossEverySplit(t *testing.T) {
	inputs := []string{
		"{}",
		"[]",
		"[1,2,3]",
		`{"a":[1,{"b":"c"}]}`,
		`"hello\nworld"`,
		"-12.5e+2",
		"true",
		"false",
		"null",
		`{"nested":{"deep":{"deeper":[1,2,[3,4],{"x":null}]}}}`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			parseAtEverySplit(t, []byte(in), DefaultOptions())
		})
	}
}

func TestResumePermissiveMultiRoot(t *testing.T) {
	parseAtEverySplit(t, []byte("1 2 3"), Options{Permissive: true})
}

// TestPartialDoesNotCorruptState checks that repeatedly calling Parse with
// the same too-short prefix (simulating a reader that stalls) returns the
// identical Partial result every time, never drifting position or state.
func TestPartialDoesNotCorruptState(t *testing.T) {
	input := []byte(`{"a":1`)
	tokens := make([]Token, 16)
	p := NewParser(DefaultOptions())

	first := p.Parse(input, tokens)
	require.Equal(t, int(Partial), first)
	firstPos := p.Pos()

	second := p.Parse(input, tokens)
	require.Equal(t, int(Partial), second)
	require.Equal(t, firstPos, p.Pos())
}

// TestCountOnlyResumable mirrors the token-mode resume property for
// count-only mode (tokens == nil), which has no Size bookkeeping to roll
// back but still must rewind pos identically on Partial.
func TestCountOnlyResumable(t *testing.T) {
	input := []byte(`{"a":[1,2,3],"b":"c"}`)
	for split := 0; split <= len(input); split++ {
		backing := make([]byte, len(input))
		p := NewParser(DefaultOptions())

		copy(backing[:split], input[:split])
		p.Parse(backing[:split], nil)

		copy(backing, input)
		n := p.Parse(backing, nil)
		require.GreaterOrEqual(t, n, 0, "split at %d", split)
	}
}
