// Package jsontok implements a single-pass, zero-allocation JSON tokenizer
// and structural validator. It is a linear byte scanner driven by an
// explicit container stack that emits a flat array of tokens referring to
// byte ranges in the caller's buffer. It never decodes strings, never
// converts numbers, and never builds a DOM; see the jsonptr package for
// those, built on top of the token array this package produces.
//
// The parser is resumable: callers may call Parse repeatedly with a slice
// over the SAME backing array whose length never decreases, appending more
// input between calls. A Partial result means the input seen so far is a
// well-formed prefix; everything else is terminal for the session.
package jsontok

// Parser holds all the mutable state of one resumable parse session. The
// zero value is immediately usable in strict mode with TrackParent off; most
// callers should use NewParser(DefaultOptions()) instead.
type Parser struct {
	Opts Options

	pos      int
	toknext  int
	depth    int
	rootDone bool
	errPos   int
	errCode  Code

	stack [maxDepthCap]frame
}

// NewParser returns a Parser configured with opts, ready to Parse.
func NewParser(opts Options) *Parser {
	return &Parser{Opts: opts}
}

// Reset zeros all parse-session state, leaving Opts untouched, so the same
// Parser can be reused for a new input without reallocating its frame stack.
// This is the init(parser) operation from spec.md §6; a parser must be Reset
// before starting a new parse session, never mid-session.
func (p *Parser) Reset() {
	p.pos = 0
	p.toknext = 0
	p.depth = 0
	p.rootDone = false
	p.errPos = 0
	p.errCode = 0
}

// Pos is the next byte Parse will examine.
func (p *Parser) Pos() int { return p.pos }

// Err reports the terminal failure of the last Parse call, if any. It
// returns nil after a successful parse or a Partial return, since Partial is
// not a session error.
func (p *Parser) Err() error {
	if p.errCode == 0 {
		return nil
	}
	return &ParseError{Code: p.errCode, Pos: p.errPos}
}

func (p *Parser) effectiveMaxDepth() int {
	d := p.Opts.MaxDepth
	if d <= 0 || d > maxDepthCap {
		return maxDepthCap
	}
	return d
}

func (p *Parser) failAt(code Code, at int) int {
	p.errCode = code
	p.errPos = at
	return int(code)
}

// Parse scans as much of buf as it can starting from the position left by
// the previous call (0 on a fresh or just-Reset Parser). tokens receives one
// entry per emitted token; pass nil to run in count-only mode, where only
// the token count is computed. The return value is a non-negative token
// count on success, or one of NoMem, Invalid, Partial, Depth (as an int; see
// Code) on failure. Successive calls must pass a buf sharing the same
// backing array with non-decreasing length — Parse has no way to verify
// this and its behavior is undefined if violated.
func (p *Parser) Parse(buf []byte, tokens []Token) int {
	p.errPos = 0
	p.errCode = 0
	n := len(buf)

	for p.pos < n {
		c := buf[p.pos]
		if isSpace(c) {
			p.pos++
			continue
		}
		var code int
		switch c {
		case '{', '[':
			code = p.openContainer(c, tokens)
		case '}', ']':
			code = p.closeContainer(c, tokens)
		case ':':
			code = p.handleColon()
		case ',':
			code = p.handleComma()
		case '"':
			code = p.handleString(buf, tokens)
		default:
			code = p.handlePrimitive(buf, tokens, c)
		}
		if code != 0 {
			return code
		}
	}

	if p.depth != 0 {
		return int(Partial)
	}
	if !p.rootDone {
		return int(Partial)
	}
	return p.toknext
}

func (p *Parser) handleColon() int {
	if p.depth == 0 {
		return p.failAt(Invalid, p.pos)
	}
	top := &p.stack[p.depth-1]
	if top.kind != frameObject || top.sub != objColon {
		return p.failAt(Invalid, p.pos)
	}
	top.sub = objValue
	p.pos++
	return 0
}

func (p *Parser) handleComma() int {
	if p.depth == 0 {
		return p.failAt(Invalid, p.pos)
	}
	top := &p.stack[p.depth-1]
	switch top.kind {
	case frameObject:
		if top.sub != objCommaOrEnd {
			return p.failAt(Invalid, p.pos)
		}
		top.sub = objKey
	case frameArray:
		if top.sub != arrCommaOrEnd {
			return p.failAt(Invalid, p.pos)
		}
		top.sub = arrValue
	}
	p.pos++
	return 0
}

// valueSnapshot is the state acceptValue saved before mutating, so a Partial
// recognizer result can be rolled back atomically (spec.md §4.4).
type valueSnapshot struct {
	atRoot        bool
	savedRootDone bool
	parentIdx     int
	savedSub      int8
}

// acceptValue is the accept_value transition (spec.md §4.3): it validates
// that a value may legally appear here and updates container bookkeeping
// exactly once. tokens is used only to find the parent token to bump Size
// on; it is nil in count-only mode, in which case no Size bookkeeping
// happens (there is no token to hold it).
func (p *Parser) acceptValue(tokens []Token) (valueSnapshot, int) {
	if p.depth == 0 {
		snap := valueSnapshot{atRoot: true, savedRootDone: p.rootDone}
		if p.rootDone {
			if !p.Opts.Permissive {
				return snap, p.failAt(Invalid, p.pos)
			}
			return snap, 0
		}
		p.rootDone = true
		return snap, 0
	}

	idx := p.depth - 1
	top := &p.stack[idx]
	snap := valueSnapshot{parentIdx: idx, savedSub: top.sub}
	switch top.kind {
	case frameArray:
		if top.sub != arrValueOrEnd && top.sub != arrValue {
			return snap, p.failAt(Invalid, p.pos)
		}
	case frameObject:
		if top.sub != objValue {
			return snap, p.failAt(Invalid, p.pos)
		}
	}
	p.bumpParentSize(top, tokens, 1)
	switch top.kind {
	case frameArray:
		top.sub = arrCommaOrEnd
	case frameObject:
		top.sub = objCommaOrEnd
	}
	return snap, 0
}

// rollbackValue undoes acceptValue's mutation after a Partial recognizer
// result, so the parser is left exactly as if it had never seen the
// incomplete value (spec.md §4.4).
func (p *Parser) rollbackValue(snap valueSnapshot, tokens []Token) {
	if snap.atRoot {
		p.rootDone = snap.savedRootDone
		return
	}
	top := &p.stack[snap.parentIdx]
	top.sub = snap.savedSub
	p.bumpParentSize(top, tokens, -1)
}

func (p *Parser) bumpParentSize(top *frame, tokens []Token, delta int) {
	if tokens == nil || top.tok < 0 {
		return
	}
	tokens[top.tok].Size += delta
}

// acceptKey is the accept_key transition (spec.md §4.3): called once a
// string has been fully scanned as an object key. Size is not touched here;
// it is bumped when the corresponding value is accepted.
func (p *Parser) acceptKey() int {
	if p.depth == 0 {
		return p.failAt(Invalid, p.pos)
	}
	top := &p.stack[p.depth-1]
	if top.kind != frameObject || (top.sub != objKeyOrEnd && top.sub != objKey) {
		return p.failAt(Invalid, p.pos)
	}
	top.sub = objColon
	return 0
}

func (p *Parser) currentParent() int {
	if !p.Opts.TrackParent || p.depth == 0 {
		return -1
	}
	return p.stack[p.depth-1].tok
}

// emitToken is the token emitter (spec.md §4.6): it allocates the next slot
// in tokens, or in count-only mode (tokens == nil) only advances toknext.
func (p *Parser) emitToken(tokens []Token, kind Kind, start, end, parent int) int {
	if tokens != nil {
		if p.toknext >= len(tokens) {
			return p.failAt(NoMem, p.pos)
		}
		tokens[p.toknext] = Token{Kind: kind, Start: start, End: end, Parent: parent}
	}
	p.toknext++
	return 0
}

// openContainer handles '{' and '[' per spec.md §4.2: act as a value for the
// enclosing context, emit the container's token with a sentinel End, push a
// frame, and advance past the opener.
func (p *Parser) openContainer(c byte, tokens []Token) int {
	if _, code := p.acceptValue(tokens); code != 0 {
		return code
	}

	kind, tokKind, initialSub := frameObject, Object, objKeyOrEnd
	if c == '[' {
		kind, tokKind, initialSub = frameArray, Array, arrValueOrEnd
	}

	parent := p.currentParent()
	if code := p.emitToken(tokens, tokKind, p.pos, -1, parent); code != 0 {
		return code
	}

	if p.depth >= p.effectiveMaxDepth() {
		return p.failAt(Depth, p.pos)
	}

	tokIdx := -1
	if tokens != nil {
		tokIdx = p.toknext - 1
	}
	p.stack[p.depth] = frame{kind: kind, sub: initialSub, tok: tokIdx}
	p.depth++
	p.pos++
	return 0
}

// closeContainer handles '}' and ']' per spec.md §4.2: the top frame must
// exist, match the closer's kind, and be in a state where a close is legal.
func (p *Parser) closeContainer(c byte, tokens []Token) int {
	if p.depth == 0 {
		return p.failAt(Invalid, p.pos)
	}
	top := &p.stack[p.depth-1]

	wantKind := frameObject
	if c == ']' {
		wantKind = frameArray
	}
	if top.kind != wantKind {
		return p.failAt(Invalid, p.pos)
	}

	switch top.kind {
	case frameObject:
		if top.sub != objKeyOrEnd && top.sub != objCommaOrEnd {
			return p.failAt(Invalid, p.pos)
		}
	case frameArray:
		if top.sub != arrValueOrEnd && top.sub != arrCommaOrEnd {
			return p.failAt(Invalid, p.pos)
		}
	}

	if tokens != nil && top.tok >= 0 {
		tokens[top.tok].End = p.pos + 1
	}
	p.depth--
	p.pos++
	if p.depth == 0 {
		p.rootDone = true
	}
	return 0
}

// handleString handles a '"' byte per spec.md §4.4: inside an object
// expecting a key, it is parsed as a key (scan first, accept_key after);
// otherwise it is a value (accept_value first, then scan).
func (p *Parser) handleString(buf []byte, tokens []Token) int {
	isKey := p.depth > 0 && p.stack[p.depth-1].kind == frameObject &&
		(p.stack[p.depth-1].sub == objKeyOrEnd || p.stack[p.depth-1].sub == objKey)

	var snap valueSnapshot
	if !isKey {
		var code int
		snap, code = p.acceptValue(tokens)
		if code != 0 {
			return code
		}
	}

	start := p.pos
	contentStart, contentEnd, after, errAt, out := scanString(buf, start)
	switch out {
	case outPartial:
		if !isKey {
			p.rollbackValue(snap, tokens)
		}
		p.pos = start
		return int(Partial)
	case outInvalid:
		return p.failAt(Invalid, errAt)
	}

	parent := p.currentParent()
	if code := p.emitToken(tokens, String, contentStart, contentEnd, parent); code != 0 {
		return code
	}
	p.pos = after

	if isKey {
		if code := p.acceptKey(); code != 0 {
			return code
		}
	}
	return 0
}

// handlePrimitive handles any byte that starts a number or a literal, always
// as a value (keys are always quoted strings in JSON).
func (p *Parser) handlePrimitive(buf []byte, tokens []Token, c byte) int {
	snap, code := p.acceptValue(tokens)
	if code != 0 {
		return code
	}

	start := p.pos
	var end, errAt int
	var out outcome
	switch {
	case c == 't':
		end, errAt, out = scanLiteral(buf, start, "true")
	case c == 'f':
		end, errAt, out = scanLiteral(buf, start, "false")
	case c == 'n':
		end, errAt, out = scanLiteral(buf, start, "null")
	case c == '-' || isDigit(c):
		end, errAt, out = scanNumber(buf, start, p.Opts.Permissive)
	default:
		p.rollbackValue(snap, tokens)
		return p.failAt(Invalid, start)
	}

	switch out {
	case outPartial:
		p.rollbackValue(snap, tokens)
		p.pos = start
		return int(Partial)
	case outInvalid:
		return p.failAt(Invalid, errAt)
	}

	parent := p.currentParent()
	if code := p.emitToken(tokens, Primitive, start, end, parent); code != 0 {
		return code
	}
	p.pos = end
	return 0
}
