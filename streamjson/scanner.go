// Package streamjson bridges jsontok's resumable Parse contract to Go's
// io.Reader, so callers don't have to manage buffer growth and re-parse
// calls themselves. It owns one growable []byte and drives one
// *jsontok.Parser per read cycle from a single goroutine; see SPEC_FULL.md
// §5 for why this never needs to introduce concurrency into the core.
package streamjson

import (
	"errors"
	"io"

	"github.com/jsontok/jsontok"
)

// ErrTooManyTokens is returned when a single Parse call needs more tokens
// than the Scanner was constructed with.
var ErrTooManyTokens = errors.New("streamjson: value exceeds token capacity")

// Scanner reads successive complete top-level JSON values from an
// io.Reader, such as a newline-delimited JSON stream or a single document
// arriving in pieces over time. A single underlying Read can return bytes
// spanning more than one value, so Scanner always forces Options.Permissive
// on its internal parser: the core keeps accepting whitespace-separated
// root values within one Parse call rather than rejecting the start of the
// next value as a second root, and Scanner then splits the result back into
// one token slice per value for Next's caller.
type Scanner struct {
	r      io.Reader
	opts   jsontok.Options
	tokens []jsontok.Token

	buf   []byte
	valid int
	err   error

	pending   []jsontok.Token // tokens from the most recent successful Parse call
	consumed  int             // bytes of buf that call consumed, discarded once pending is drained
	pendingAt int             // next unread index into pending
}

// NewScanner returns a Scanner reading JSON values from r. tokenCap bounds
// how many tokens a single Parse call may produce; ErrTooManyTokens is
// returned if even one value needs more.
func NewScanner(r io.Reader, opts jsontok.Options, tokenCap int) *Scanner {
	opts.Permissive = true
	return &Scanner{
		r:      r,
		opts:   opts,
		tokens: make([]jsontok.Token, tokenCap),
		buf:    make([]byte, 4096),
	}
}

// Next returns the next complete top-level value's tokens and raw bytes.
// The raw slice aliases the Scanner's internal buffer and is only valid
// until the next call to Next. It returns io.EOF when r currently has
// nothing left but whitespace, or io.ErrUnexpectedEOF when a value was
// truncated by EOF mid-token; both are transient, not latched into the
// Scanner's terminal error — a caller following a growing file (see the
// watch subcommand) can call Next again once r has more to give, and
// parsing resumes from the same partial buffer rather than starting over.
// Only a structural failure (bad JSON, or ErrTooManyTokens) is terminal;
// once Next returns one of those, every later call returns it again.
func (s *Scanner) Next() ([]jsontok.Token, []byte, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	if s.pendingAt >= len(s.pending) {
		if s.consumed > 0 {
			s.slide(s.consumed)
			s.consumed = 0
		}
		if err := s.parseMore(); err != nil {
			return nil, nil, err
		}
	}
	tok := s.pending[s.pendingAt]
	end := subtreeEnd(s.pending, s.pendingAt)
	group := s.pending[s.pendingAt:end]
	raw := s.buf[tok.Start:tok.End]
	s.pendingAt = end
	return group, raw, nil
}

// parseMore drives a fresh Parser over the accumulated buffer, growing it by
// reading from r whenever the parser reports Partial, until it has a full
// batch of root values (or a terminal error).
func (s *Scanner) parseMore() error {
	p := jsontok.NewParser(s.opts)
	for {
		n := p.Parse(s.buf[:s.valid], s.tokens)
		switch {
		case n >= 0:
			s.pending = s.tokens[:n]
			s.consumed = p.Pos()
			s.pendingAt = 0
			return nil
		case n == int(jsontok.NoMem):
			s.err = ErrTooManyTokens
			return s.err
		case n != int(jsontok.Partial):
			s.err = p.Err()
			return s.err
		}

		grew, rerr := s.grow()
		if !grew {
			if rerr == io.EOF {
				for _, c := range s.buf[:s.valid] {
					if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
						return io.ErrUnexpectedEOF
					}
				}
				return io.EOF
			}
			s.err = rerr
			return s.err
		}
	}
}

// grow reads at least one more byte into buf, expanding capacity first if
// the buffer is full. It reports whether any bytes were read.
func (s *Scanner) grow() (bool, error) {
	if s.valid == len(s.buf) {
		next := make([]byte, len(s.buf)*2)
		copy(next, s.buf[:s.valid])
		s.buf = next
	}
	n, err := s.r.Read(s.buf[s.valid:])
	s.valid += n
	if n > 0 {
		return true, nil
	}
	return false, err
}

// slide discards the first n bytes of buf, which every value in the last
// pending batch owned. It only ever runs once that batch is fully drained,
// so no token or raw slice still referencing old offsets is left dangling.
func (s *Scanner) slide(n int) {
	remaining := copy(s.buf, s.buf[n:s.valid])
	s.valid = remaining
}

// subtreeEnd returns the index one past the last token belonging to the
// subtree rooted at tokens[idx], using a small bounded explicit stack
// instead of native recursion (spec.md §9's rule against call-stack
// recursion for descent applies here too).
func subtreeEnd(tokens []jsontok.Token, idx int) int {
	tok := tokens[idx]
	if tok.Kind != jsontok.Object && tok.Kind != jsontok.Array {
		return idx + 1
	}
	var stack [64]int
	top := 0
	stack[0] = tok.Size
	next := idx + 1
	for top >= 0 {
		if stack[top] == 0 {
			top--
			continue
		}
		stack[top]--
		child := tokens[next]
		next++
		if child.Kind == jsontok.Object || child.Kind == jsontok.Array {
			top++
			stack[top] = child.Size
		}
	}
	return next
}

// Each calls fn once per top-level value read from r, stopping cleanly on
// io.EOF. Any other error, including one returned by fn, stops iteration
// and is returned.
func Each(s *Scanner, fn func(tokens []jsontok.Token, raw []byte) error) error {
	for {
		tokens, raw, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(tokens, raw); err != nil {
			return err
		}
	}
}
