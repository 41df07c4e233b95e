package jsontok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioEmptyObject is worked scenario 1: {} -> 1 token.
func TestScenarioEmptyObject(t *testing.T) {
	tokens, n := parseAll(t, "{}", DefaultOptions())
	require.Equal(t, 1, n)
	assert.Equal(t, Token{Kind: Object, Start: 0, End: 2, Size: 0, Parent: -1}, tokens[0])
}

// TestScenarioArrayOfThree is worked scenario 2: [1,2,3] -> 4 tokens.
func TestScenarioArrayOfThree(t *testing.T) {
	tokens, n := parseAll(t, "[1,2,3]", DefaultOptions())
	require.Equal(t, 4, n)
	assert.Equal(t, Array, tokens[0].Kind)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 7, tokens[0].End)
	assert.Equal(t, 3, tokens[0].Size)
	assert.Equal(t, Token{Kind: Primitive, Start: 1, End: 2, Parent: 0}, tokens[1])
	assert.Equal(t, Token{Kind: Primitive, Start: 3, End: 4, Parent: 0}, tokens[2])
	assert.Equal(t, Token{Kind: Primitive, Start: 5, End: 6, Parent: 0}, tokens[3])
}

// TestScenarioNestedObject is worked scenario 3. spec.md's own worked example
// states 8 tokens for this input, but walking its own counting rule (as
// verified against scenarios 1 and 2) yields 7: root Object, key "a", inner
// Array, primitive 1, inner Object, key "b", value "c". The root Object's
// size (1 key) and inner Array's size (2 elements) and inner Object's size
// (1 pair) all match the spec text; only the total token count in the prose
// is off by one. This test follows the verified count, not the prose.
func TestScenarioNestedObject(t *testing.T) {
	input := `{"a":[1,{"b":"c"}]}`
	tokens, n := parseAll(t, input, DefaultOptions())
	require.Equal(t, 7, n)

	assert.Equal(t, Object, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].Size)

	assert.Equal(t, String, tokens[1].Kind)
	assert.Equal(t, "a", string(tokens[1].Raw([]byte(input))))

	assert.Equal(t, Array, tokens[2].Kind)
	assert.Equal(t, 2, tokens[2].Size)

	assert.Equal(t, Primitive, tokens[3].Kind)
	assert.Equal(t, "1", string(tokens[3].Raw([]byte(input))))

	assert.Equal(t, Object, tokens[4].Kind)
	assert.Equal(t, 1, tokens[4].Size)

	assert.Equal(t, String, tokens[5].Kind)
	assert.Equal(t, "b", string(tokens[5].Raw([]byte(input))))

	assert.Equal(t, String, tokens[6].Kind)
	assert.Equal(t, "c", string(tokens[6].Raw([]byte(input))))
}

// TestScenarioSplitAcrossCalls is worked scenario 4: splitting at bytes 6,
// 16, 25 yields Partial each time, and the full input succeeds with a root
// Object of size 2 and a primitive 1234.
func TestScenarioSplitAcrossCalls(t *testing.T) {
	input := []byte(`{"async":"working","num":1234}`)
	splits := []int{6, 16, 25}

	p := NewParser(DefaultOptions())
	tokens := make([]Token, 16)
	backing := make([]byte, len(input))

	for _, k := range splits {
		copy(backing[:k], input[:k])
		n := p.Parse(backing[:k], tokens)
		require.Equal(t, int(Partial), n, "split at byte %d", k)
	}

	copy(backing, input)
	n := p.Parse(backing, tokens)
	require.GreaterOrEqual(t, n, 0)
	assert.Equal(t, Object, tokens[0].Kind)
	assert.Equal(t, 2, tokens[0].Size)

	var sawPrimitive1234 bool
	for _, tok := range tokens[:n] {
		if tok.Kind == Primitive && string(tok.Raw(backing)) == "1234" {
			sawPrimitive1234 = true
		}
	}
	assert.True(t, sawPrimitive1234)
}

// TestScenarioLeadingZero is worked scenario 5.
func TestScenarioLeadingZero(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		p := NewParser(DefaultOptions())
		n := p.Parse([]byte("01"), make([]Token, 4))
		require.Equal(t, int(Invalid), n)
		var perr *ParseError
		require.ErrorAs(t, p.Err(), &perr)
		assert.Equal(t, 1, perr.Pos)
	})

	t.Run("permissive no delimiter", func(t *testing.T) {
		p := NewParser(Options{Permissive: true})
		n := p.Parse([]byte("01"), make([]Token, 4))
		assert.Equal(t, int(Partial), n)
	})

	t.Run("permissive with delimiter", func(t *testing.T) {
		// Wrapped in an array so ']' is a legal delimiter after the number.
		p := NewParser(Options{Permissive: true})
		tokens := make([]Token, 4)
		n := p.Parse([]byte("[01]"), tokens)
		require.GreaterOrEqual(t, n, 0)
	})
}

// TestScenarioStringPartialEscape is worked scenario 6: a truncated \u
// escape returns Partial with pos rewound to 0.
func TestScenarioStringPartialEscape(t *testing.T) {
	p := NewParser(DefaultOptions())
	n := p.Parse([]byte(`"a\u12`), make([]Token, 4))
	require.Equal(t, int(Partial), n)
	assert.Equal(t, 0, p.Pos())
}

// TestScenarioMultiRoot is worked scenario 7: "{} []" is Invalid in strict
// mode and two root tokens in permissive mode.
func TestScenarioMultiRoot(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		p := NewParser(DefaultOptions())
		n := p.Parse([]byte("{} []"), make([]Token, 8))
		assert.Equal(t, int(Invalid), n)
	})

	t.Run("permissive", func(t *testing.T) {
		p := NewParser(Options{Permissive: true})
		tokens := make([]Token, 8)
		n := p.Parse([]byte("{} []"), tokens)
		require.Equal(t, 2, n)
		assert.Equal(t, Object, tokens[0].Kind)
		assert.Equal(t, Array, tokens[1].Kind)
	})
}

// TestBoundaryMaxDepthExact is the "max-depth exactly" boundary behavior.
func TestBoundaryMaxDepthExact(t *testing.T) {
	open := func(n int) string {
		s := ""
		for i := 0; i < n; i++ {
			s += "["
		}
		return s
	}
	closeBrackets := func(n int) string {
		s := ""
		for i := 0; i < n; i++ {
			s += "]"
		}
		return s
	}

	t.Run("at limit succeeds", func(t *testing.T) {
		input := open(3) + closeBrackets(3)
		p := NewParser(Options{MaxDepth: 3})
		n := p.Parse([]byte(input), make([]Token, 8))
		assert.GreaterOrEqual(t, n, 0)
	})

	t.Run("over limit fails", func(t *testing.T) {
		input := open(4) + closeBrackets(4)
		p := NewParser(Options{MaxDepth: 3})
		n := p.Parse([]byte(input), make([]Token, 8))
		assert.Equal(t, int(Depth), n)
	})
}

// TestBoundaryTokenCapacityExact is the "token-capacity exactly" boundary
// behavior: [1,2,3] needs 4 tokens.
func TestBoundaryTokenCapacityExact(t *testing.T) {
	input := []byte("[1,2,3]")

	p := NewParser(DefaultOptions())
	n := p.Parse(input, make([]Token, 3))
	assert.Equal(t, int(NoMem), n)

	p2 := NewParser(DefaultOptions())
	n2 := p2.Parse(input, make([]Token, 4))
	assert.Equal(t, 4, n2)
}

// TestBoundaryEmptyInput checks that an empty buffer is Partial, not Invalid
// — there may simply be more to read.
func TestBoundaryEmptyInput(t *testing.T) {
	p := NewParser(DefaultOptions())
	n := p.Parse(nil, make([]Token, 4))
	assert.Equal(t, int(Partial), n)
}

// TestInvariantTokenRangesInBounds checks 0 <= start <= end <= len(input)
// for every emitted token across a handful of representative inputs.
func TestInvariantTokenRangesInBounds(t *testing.T) {
	inputs := []string{
		"{}", "[1,2,3]", `{"a":[1,{"b":"c"}]}`, `"hello\nworld"`, "-12.5e+2",
	}
	for _, in := range inputs {
		tokens, n := parseAll(t, in, DefaultOptions())
		for i, tok := range tokens[:n] {
			assert.GreaterOrEqual(t, tok.Start, 0, "token %d of %q", i, in)
			assert.LessOrEqual(t, tok.Start, tok.End, "token %d of %q", i, in)
			assert.LessOrEqual(t, tok.End, len(in), "token %d of %q", i, in)
		}
	}
}

// TestInvariantObjectKeyValueOrder checks that every object's direct
// children alternate key (always a String) then value.
func TestInvariantObjectKeyValueOrder(t *testing.T) {
	input := `{"a":1,"b":[2,3],"c":{"d":4}}`
	tokens, n := parseAll(t, input, DefaultOptions())
	require.Equal(t, Object, tokens[0].Kind)

	i := 1
	for pair := 0; pair < tokens[0].Size; pair++ {
		key := tokens[i]
		require.Equal(t, String, key.Kind, "pair %d key", pair)
		require.Equal(t, 0, key.Parent)
		valueIdx := i + 1
		i = valueIdx + subtreeSizeForTest(tokens, valueIdx)
	}
	assert.Equal(t, n, i)
}

// subtreeSizeForTest counts how many tokens the subtree rooted at idx
// occupies, mirroring streamjson's subtreeEnd but kept local to the test
// so this package's tests don't import streamjson.
func subtreeSizeForTest(tokens []Token, idx int) int {
	tok := tokens[idx]
	if tok.Kind != Object && tok.Kind != Array {
		return 1
	}
	count := 1
	remaining := tok.Size
	next := idx + 1
	for remaining > 0 {
		child := tokens[next]
		childSize := subtreeSizeForTest(tokens, next)
		next += childSize
		count += childSize
		_ = child
		remaining--
	}
	return count
}
