package parser

import (
	"github.com/yamlcursor/yaml/internal/cursor"
)

// ws matches spaces and tabs only; it never crosses a newline.
func (p *Parser) ws(q cursor.Quantifier) error {
	return p.c.AdvanceIf(func(b byte) bool {
		return b == ' ' || b == '\t'
	}, q)
}

// nl matches one of \r\n, \n\r, \n, \r, at most once.
func (p *Parser) nl() error {
	return p.c.Checkpoint(func() error {
		if p.c.SymbolSeq([]byte("\r\n")) == nil {
			return nil
		}
		if p.c.SymbolSeq([]byte("\n\r")) == nil {
			return nil
		}
		if p.c.Symbol('\n') == nil {
			return nil
		}
		if p.c.Symbol('\r') == nil {
			return nil
		}
		return cursor.ErrMismatch
	})
}

// comment matches optional leading whitespace, then '#' to end of line. On
// mismatch the cursor is left exactly where comment found it, even though
// the leading whitespace probe may have advanced it first.
func (p *Parser) comment() error {
	return p.c.Checkpoint(func() error {
		_ = p.ws(cursor.More(0))
		if err := p.c.Symbol('#'); err != nil {
			p.c.Backward()
			return err
		}
		return p.c.AdvanceIf(cursor.NotIn([]byte("\n\r")), cursor.More(0))
	})
}

// gap matches one mandatory newline followed by a run of blank, whitespace
// or (when includeComments holds) comment lines, and returns the number of
// line terminators consumed (at least 1). 1 means a simple wrap; more than
// 1 means an explicit blank line was present, which folded-scalar semantics
// render as a literal newline instead of a joining space.
func (p *Parser) gap(includeComments bool) (int, error) {
	var t int
	err := p.c.Checkpoint(func() error {
		if includeComments {
			_ = p.comment()
		}
		if err := p.nl(); err != nil {
			return err
		}
		t = 1
		for {
			p.c.Forward()
			_ = p.ws(cursor.More(0))
			if includeComments {
				_ = p.comment()
			}
			if p.nl() != nil {
				p.c.Backward()
				return nil
			}
			t++
		}
	})
	return t, err
}

// indentStack is the level-indexed spaces-per-level table described by the
// spec: ind(level) consumes exactly sum(indent[0..=level]) spaces,
// ind_define(level) measures the current line's indentation and records it,
// and descending from level L to a shallower L' truncates entries beyond
// L'.
type indentStack struct {
	levels []int
}

func newIndentStack() *indentStack {
	return &indentStack{levels: []int{0}}
}

// ind consumes exactly sum(levels[0..=level]) space bytes, extending the
// stack with a conventional 2-space default for any newly seen level.
func (s *indentStack) ind(c *cursor.Cursor, level int) error {
	if level >= len(s.levels) {
		for len(s.levels) <= level {
			s.levels = append(s.levels, 2)
		}
	} else {
		s.levels = s.levels[:level+1]
	}
	sum := 0
	for _, v := range s.levels[:level+1] {
		sum += v
	}
	for i := 0; i < sum; i++ {
		if err := c.Symbol(' '); err != nil {
			return err
		}
	}
	return nil
}

// indDefine measures the spaces at the current position and records that
// width for level, consuming indent[0..level-1] first. It is used the first
// time a new nesting level is entered, so later ind(level) calls know how
// many spaces that level actually owns.
func (s *indentStack) indDefine(c *cursor.Cursor, level int) error {
	if level > 0 {
		if err := s.ind(c, level-1); err != nil {
			return err
		}
	}
	width := 0
	err := c.Checkpoint(func() error {
		for c.Symbol(' ') == nil {
			width++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if level == len(s.levels) {
		s.levels = append(s.levels, width)
	} else {
		s.levels[level] = width
	}
	return nil
}

// unind reports whether the current line is indented less than level — i.e.
// whether the enclosing block construct should end here. It consumes the
// shallower indent[0..level-1] prefix unconditionally but never commits to
// level's own width.
func (s *indentStack) unind(c *cursor.Cursor, level int) (bool, error) {
	if level == 0 {
		return s.ind(c, 0) != nil, nil
	}
	if err := s.ind(c, level-1); err != nil {
		return false, err
	}
	dedented := false
	_ = c.Checkpoint(func() error {
		if s.ind(c, level) != nil {
			dedented = true
		}
		return nil
	})
	return dedented, nil
}

// atDocumentLevel reports whether the stack has collapsed back to just the
// document-level zero entry, the invariant a successful parse must restore.
func (s *indentStack) atDocumentLevel() bool {
	return len(s.levels) == 1 && s.levels[0] == 0
}
