// Package jsonptr contains the downstream, allocation-permitted consumers
// that spec.md §1 explicitly keeps out of jsontok's core: key lookup, path
// traversal, integer/bool decoding, and string unescaping over the flat
// token array jsontok.Parser produces. None of this runs during Parse; it
// is a second pass over tokens the caller already has.
package jsonptr

import (
	"errors"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jsontok/jsontok"
)

// ErrNotFound is returned when a key or index does not exist in the object
// or array being traversed.
var ErrNotFound = errors.New("jsonptr: not found")

// ErrType is returned when a token is not of the kind the caller expected.
var ErrType = errors.New("jsonptr: wrong token type")

// Key looks up name inside the object token at tokens[objIdx] and returns
// the index of its value token. tokens must be a complete token array from
// a successful jsontok.Parser.Parse call with Options.TrackParent irrelevant
// here — Key walks direct children by position, not by Parent links.
func Key(input []byte, tokens []jsontok.Token, objIdx int, name string) (int, error) {
	tok := tokens[objIdx]
	if tok.Kind != jsontok.Object {
		return -1, ErrType
	}
	i := objIdx + 1
	for n := 0; n < tok.Size; n++ {
		keyTok := tokens[i]
		valIdx := i + 1
		if string(keyTok.Raw(input)) == name {
			return valIdx, nil
		}
		i = skip(tokens, valIdx)
	}
	return -1, ErrNotFound
}

// Index returns the index of the i'th element token inside the array token
// at tokens[arrIdx].
func Index(tokens []jsontok.Token, arrIdx int, i int) (int, error) {
	tok := tokens[arrIdx]
	if tok.Kind != jsontok.Array {
		return -1, ErrType
	}
	if i < 0 || i >= tok.Size {
		return -1, ErrNotFound
	}
	cur := arrIdx + 1
	for n := 0; n < i; n++ {
		cur = skip(tokens, cur)
	}
	return cur, nil
}

// Path walks a sequence of object keys and/or array indices (as strings;
// a segment that parses as a non-negative integer is tried as an array
// index) starting from root, returning the index of the token it lands on.
func Path(input []byte, tokens []jsontok.Token, root int, segments ...string) (int, error) {
	cur := root
	for _, seg := range segments {
		tok := tokens[cur]
		switch tok.Kind {
		case jsontok.Object:
			idx, err := Key(input, tokens, cur, seg)
			if err != nil {
				return -1, err
			}
			cur = idx
		case jsontok.Array:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return -1, ErrType
			}
			idx, err := Index(tokens, cur, i)
			if err != nil {
				return -1, err
			}
			cur = idx
		default:
			return -1, ErrType
		}
	}
	return cur, nil
}

// skip returns the index of the token immediately following the subtree
// rooted at idx, using a small bounded explicit stack rather than native
// recursion — even this "skip subtree" helper honors the core's "never use
// call-stack recursion for descent" rule (spec.md §9), since a maliciously
// deep but otherwise valid token array could still exhaust a Go goroutine's
// stack if we recursed per level.
func skip(tokens []jsontok.Token, idx int) int {
	var stack [64]int
	top := 0
	stack[0] = tokens[idx].Size
	next := idx + 1
	if tokens[idx].Kind != jsontok.Object && tokens[idx].Kind != jsontok.Array {
		return next
	}
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
			if top >= len(stack) {
				// Token arrays are bounded by the same MaxDepth the
				// parser enforced when producing them, so this can't
				// happen for well-formed input; guard anyway rather
				// than index out of range on adversarial input.
				return next
			}
			stack[top] = child.Size
		}
	}
	return next
}

// AsInt decodes a Primitive token as a base-10 integer, checked for
// overflow (spec.md §9 open question: pinned to a checked error here,
// unlike a wrap-on-overflow C decoder, since there is no existing caller
// relying on wraparound).
func AsInt(input []byte, tokens []jsontok.Token, idx int) (int64, error) {
	tok := tokens[idx]
	if tok.Kind != jsontok.Primitive {
		return 0, ErrType
	}
	return strconv.ParseInt(string(tok.Raw(input)), 10, 64)
}

// AsFloat decodes a Primitive token as a float64.
func AsFloat(input []byte, tokens []jsontok.Token, idx int) (float64, error) {
	tok := tokens[idx]
	if tok.Kind != jsontok.Primitive {
		return 0, ErrType
	}
	return strconv.ParseFloat(string(tok.Raw(input)), 64)
}

// AsBool decodes a Primitive token holding exactly "true" or "false".
func AsBool(input []byte, tokens []jsontok.Token, idx int) (bool, error) {
	tok := tokens[idx]
	if tok.Kind != jsontok.Primitive {
		return false, ErrType
	}
	switch string(tok.Raw(input)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ErrType
	}
}

// IsNull reports whether the Primitive token at idx is the literal null.
func IsNull(input []byte, tokens []jsontok.Token, idx int) bool {
	tok := tokens[idx]
	return tok.Kind == jsontok.Primitive && string(tok.Raw(input)) == "null"
}

// Unescape decodes a String token's raw bytes into a Go string, resolving
// the two-byte escapes and \uXXXX sequences the core left untouched.
// A high surrogate escape immediately followed by its low surrogate escape
// is combined into one rune with utf16.DecodeRune. A high surrogate not
// immediately followed by its low surrogate, or a lone low surrogate, is
// written with utf8.EncodeRune, which encodes it as unicode.ReplacementChar
// — permissive, not a rejection.
func Unescape(input []byte, tok jsontok.Token) (string, error) {
	if tok.Kind != jsontok.String {
		return "", ErrType
	}
	raw := tok.Raw(input)
	out := make([]byte, 0, len(raw))
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		i++
		if i >= len(raw) {
			return "", ErrType
		}
		switch raw[i] {
		case '"':
			out = append(out, '"')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '/':
			out = append(out, '/')
			i++
		case 'b':
			out = append(out, '\b')
			i++
		case 'f':
			out = append(out, '\f')
			i++
		case 'n':
			out = append(out, '\n')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'u':
			i++
			r1, err := hex4(raw, i)
			if err != nil {
				return "", err
			}
			i += 4
			r := rune(r1)
			if utf16.IsSurrogate(r) && i+1 < len(raw) && raw[i] == '\\' && raw[i+1] == 'u' {
				r2, err := hex4(raw, i+2)
				if err == nil {
					combined := utf16.DecodeRune(r, rune(r2))
					if combined != utf8.RuneError {
						r = combined
						i += 6
					}
				}
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
		default:
			return "", ErrType
		}
	}
	return string(out), nil
}

func hex4(raw []byte, i int) (uint32, error) {
	if i+4 > len(raw) {
		return 0, ErrType
	}
	var v uint32
	for k := 0; k < 4; k++ {
		c := raw[i+k]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		default:
			return 0, ErrType
		}
	}
	return v, nil
}
