// Package cursor implements the byte-slice cursor the rest of the parser is
// built on: a position/eaten pair, lookahead, and backtracking primitives.
//
// Everything here is greedy but non-committal. A sub-parser either advances
// the cursor and returns nil, or leaves the cursor exactly where it found it
// (rewound to the last eaten mark) and returns ErrMismatch. Nothing above a
// Cursor needs to know how far a failed attempt reached.
package cursor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is returned by a sub-parser that did not apply at the current
// position. It is always paired with a rewind of pos back to eaten, and it
// must never reach a caller outside the parser: something above it either
// tries an alternative or converts the situation into a TerminateError.
var ErrMismatch = errors.New("cursor: mismatch")

// TerminateError reports a position in the document where no grammar
// alternative applies and the parse cannot continue. It is fatal: unlike
// ErrMismatch it is never backtracked past.
type TerminateError struct {
	Name string
	Pos  uint64
}

func (e *TerminateError) Error() string {
	return fmt.Sprintf("yaml: %s at byte %d", e.Name, e.Pos)
}

// Terminate builds a TerminateError reporting name at byte offset pos.
func Terminate(name string, pos uint64) error {
	return &TerminateError{Name: name, Pos: pos}
}

// Quantifier describes how many times AdvanceIf's predicate must match.
type Quantifier struct {
	kind quantKind
	min  int
	max  int
}

type quantKind uint8

const (
	quantOne quantKind = iota
	quantRange
	quantMore
)

// One requires the predicate to match exactly once.
func One() Quantifier { return Quantifier{kind: quantOne} }

// Range requires between min and max matches, inclusive, same as regex {m,n}.
func Range(min, max int) Quantifier { return Quantifier{kind: quantRange, min: min, max: max} }

// More requires at least min matches with no upper bound; More(0) is regex
// `*`, More(1) is regex `+`.
func More(min int) Quantifier { return Quantifier{kind: quantMore, min: min} }

// Cursor is a read-only view over input bytes with two marks: pos (the
// current read position) and eaten (the start of the lexeme currently being
// built). Nothing here ever writes to the bytes of doc.
type Cursor struct {
	doc      []byte
	pos      int
	eaten    int
	consumed uint64
}

// New creates a Cursor over doc, positioned at offset zero; SetStart moves
// it to another starting offset.
func New(doc []byte) *Cursor {
	return &Cursor{doc: doc}
}

// Pos returns the current read position, relative to doc.
func (c *Cursor) Pos() int { return c.pos }

// Eaten returns the start of the current lexeme window.
func (c *Cursor) Eaten() int { return c.eaten }

// Len reports the number of bytes in the underlying document.
func (c *Cursor) Len() int { return len(c.doc) }

// AtEOF reports whether the cursor has reached the end of the document.
func (c *Cursor) AtEOF() bool { return c.pos >= len(c.doc) }

// SetStart moves both pos and eaten to an initial offset. It is only valid
// before any parsing has happened; used to honor the start_position option.
func (c *Cursor) SetStart(pos int) {
	if pos < 0 || pos > len(c.doc) {
		return
	}
	c.pos = pos
	c.eaten = pos
}

// Peek returns the unconsumed remainder of the document.
func (c *Cursor) Peek() []byte { return c.doc[c.pos:] }

// Indicator is the absolute byte offset for diagnostics: the sum of bytes
// consume has permanently committed plus the live pos.
func (c *Cursor) Indicator() uint64 { return c.consumed + uint64(c.pos) }

// Forward promotes eaten to the current position, discarding the pending
// lexeme window. Sub-parsers call this to start measuring a fresh span with
// Text.
func (c *Cursor) Forward() { c.eaten = c.pos }

// Backward rewinds pos back to eaten. This is how a Mismatch undoes a failed
// attempt.
func (c *Cursor) Backward() { c.pos = c.eaten }

// Back moves pos back by n bytes directly, used to un-consume a boundary
// byte that a lookahead rule peeked at.
func (c *Cursor) Back(n int) { c.pos -= n }

// Consume promotes eaten to pos and folds the span into the running
// consumed counter. Surrounding layers call this once a parse decision is
// final, so that a deeply backtracking sub-grammar never needs to keep the
// abandoned alternatives' bytes in play. It does not change Indicator's
// result: doc is cut down to the unconsumed rest and pos is rebased onto
// it, so consumed plus pos is still the absolute offset.
func (c *Cursor) Consume() {
	c.Forward()
	c.consumed += uint64(c.eaten)
	c.doc = c.doc[c.eaten:]
	c.pos = 0
	c.eaten = 0
}

// Text returns doc[eaten:pos] lossily decoded as UTF-8.
func (c *Cursor) Text() string {
	if c.eaten < c.pos {
		return strings.ToValidUTF8(string(c.doc[c.eaten:c.pos]), "�")
	}
	return ""
}

// Checkpoint isolates a sub-parser's lexeme window: it saves eaten, runs f
// (which is free to mutate pos and eaten), then restores eaten to its saved
// value regardless of how f returned. It does not touch pos — a failing f is
// still responsible for calling Backward before returning ErrMismatch.
func (c *Cursor) Checkpoint(f func() error) error {
	eaten := c.eaten
	c.Forward()
	err := f()
	c.eaten = eaten
	return err
}

// AdvanceIf takes bytes from the front of Peek while pred holds, subject to
// the quantifier. On success pos has moved forward by the number of bytes
// matched. On failure pos is rewound to eaten and ErrMismatch is returned.
func (c *Cursor) AdvanceIf(pred func(byte) bool, q Quantifier) error {
	start := c.pos
	counter := 0
	for _, b := range c.doc[c.pos:] {
		if !pred(b) {
			break
		}
		c.pos++
		counter++
		if q.kind == quantOne {
			break
		}
		if q.kind == quantRange && counter == q.max {
			break
		}
	}
	if c.pos == start {
		if (q.kind == quantMore || q.kind == quantRange) && q.min == 0 {
			return nil
		}
		c.Backward()
		return ErrMismatch
	}
	if (q.kind == quantMore || q.kind == quantRange) && counter < q.min {
		c.Backward()
		return ErrMismatch
	}
	return nil
}

// Symbol matches a single byte.
func (c *Cursor) Symbol(b byte) error {
	return c.AdvanceIf(func(x byte) bool { return x == b }, One())
}

// SymbolSet matches a single byte out of set.
func (c *Cursor) SymbolSet(set []byte) error {
	return c.AdvanceIf(IsIn(set), One())
}

// SymbolSeq matches an exact byte sequence, one Symbol call per byte so a
// partial match still backtracks cleanly.
func (c *Cursor) SymbolSeq(seq []byte) error {
	for _, b := range seq {
		if err := c.Symbol(b); err != nil {
			return err
		}
	}
	return nil
}

// IsIn builds a predicate that accepts bytes present in set.
func IsIn(set []byte) func(byte) bool {
	return func(b byte) bool {
		for _, s := range set {
			if b == s {
				return true
			}
		}
		return false
	}
}

// NotIn builds a predicate that accepts bytes absent from set.
func NotIn(set []byte) func(byte) bool {
	in := IsIn(set)
	return func(b byte) bool { return !in(b) }
}
