package jsontok

// outcome is the result a recognizer reports; it never writes tokens
// directly (spec.md §2: "never writes tokens directly").
type outcome int8

const (
	outOK outcome = iota
	outInvalid
	outPartial
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isDelimiter reports whether c may legally follow a number or literal:
// a comma, a container closer, or whitespace.
func isDelimiter(c byte) bool {
	return c == ',' || c == ']' || c == '}' || isSpace(c)
}

// skipSpace advances past SPACE, HT, LF, CR.
func skipSpace(buf []byte, pos int) int {
	n := len(buf)
	for pos < n && isSpace(buf[pos]) {
		pos++
	}
	return pos
}

// scanString scans a JSON string starting at the opening quote (buf[start] ==
// '"'). On success it returns the content range (excluding both quotes) and
// the position just past the closing quote. On Partial or Invalid, end and
// errAt are best-effort; the driver is responsible for rewinding pos back to
// start, since this recognizer keeps no state of its own between calls.
func scanString(buf []byte, start int) (contentStart, contentEnd, after, errAt int, out outcome) {
	n := len(buf)
	i := start + 1
	contentStart = i
	for i < n {
		c := buf[i]
		switch {
		case c == '"':
			return contentStart, i, i + 1, 0, outOK
		case c < 0x20:
			return 0, 0, 0, i, outInvalid
		case c == '\\':
			i++
			if i >= n {
				return 0, 0, 0, 0, outPartial
			}
			switch buf[i] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i++
			case 'u':
				i++
				for k := 0; k < 4; k++ {
					if i >= n {
						return 0, 0, 0, 0, outPartial
					}
					if !isHexDigit(buf[i]) {
						return 0, 0, 0, i, outInvalid
					}
					i++
				}
			default:
				return 0, 0, 0, i, outInvalid
			}
		default:
			i++
		}
	}
	return 0, 0, 0, 0, outPartial
}

// scanNumber scans a JSON number starting at start, per the grammar in
// spec.md §4.1. In permissive mode a leading zero may be followed by more
// digits; in strict mode that is Invalid. The number is never committed on
// end-of-buffer, since more digits could always follow in the next call.
func scanNumber(buf []byte, start int, permissive bool) (end, errAt int, out outcome) {
	n := len(buf)
	i := start
	if buf[i] == '-' {
		i++
		if i >= n {
			return 0, 0, outPartial
		}
	}
	switch {
	case buf[i] == '0':
		i++
		if i < n && isDigit(buf[i]) {
			if !permissive {
				return 0, i, outInvalid
			}
			for i < n && isDigit(buf[i]) {
				i++
			}
		}
	case isDigit(buf[i]):
		i++
		for i < n && isDigit(buf[i]) {
			i++
		}
	default:
		return 0, i, outInvalid
	}

	if i < n && buf[i] == '.' {
		j := i + 1
		if j >= n {
			return 0, 0, outPartial
		}
		if !isDigit(buf[j]) {
			return 0, j, outInvalid
		}
		i = j
		for i < n && isDigit(buf[i]) {
			i++
		}
	}

	if i < n && (buf[i] == 'e' || buf[i] == 'E') {
		j := i + 1
		if j >= n {
			return 0, 0, outPartial
		}
		if buf[j] == '+' || buf[j] == '-' {
			j++
			if j >= n {
				return 0, 0, outPartial
			}
		}
		if !isDigit(buf[j]) {
			return 0, j, outInvalid
		}
		i = j
		for i < n && isDigit(buf[i]) {
			i++
		}
	}

	if i >= n {
		return 0, 0, outPartial
	}
	if isDelimiter(buf[i]) {
		return i, 0, outOK
	}
	return 0, i, outInvalid
}

// scanLiteral matches one of "true", "false", "null" exactly, requiring a
// delimiter (or end-of-buffer, which is Partial) immediately after.
func scanLiteral(buf []byte, start int, lit string) (end, errAt int, out outcome) {
	n := len(buf)
	for k := 0; k < len(lit); k++ {
		idx := start + k
		if idx >= n {
			return 0, 0, outPartial
		}
		if buf[idx] != lit[k] {
			return 0, idx, outInvalid
		}
	}
	end = start + len(lit)
	if end >= n {
		return 0, 0, outPartial
	}
	if isDelimiter(buf[end]) {
		return end, 0, outOK
	}
	return 0, end, outInvalid
}
