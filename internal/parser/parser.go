// Package parser implements the YAML structural and scalar grammar: a
// hand-written, backtracking recursive-descent parser driven by the cursor
// and indent-stack primitives in lexer.go, over the scalar productions in
// scalar.go and the document/collection productions in structural.go.
package parser

import (
	"github.com/yamlcursor/yaml/internal/anchor"
	"github.com/yamlcursor/yaml/internal/ast"
	"github.com/yamlcursor/yaml/internal/cursor"
	"github.com/yamlcursor/yaml/internal/resolve"
)

// Parser threads the cursor, the live indent stack, the active %TAG handle
// table and the anchor table collected as a side effect of producing
// anchored values. A Parser is single-use: construct one per call to Parse.
type Parser struct {
	c       *cursor.Cursor
	indent  *indentStack
	tags    map[string]string
	anchors *anchor.Table
	version string
}

func newParser(data []byte) *Parser {
	return &Parser{
		c:       cursor.New(data),
		indent:  newIndentStack(),
		tags:    resolve.DefaultHandles(),
		anchors: anchor.New(),
	}
}

func (p *Parser) resetDocumentState() {
	p.indent = newIndentStack()
	p.tags = resolve.DefaultHandles()
	p.version = ""
}

// Parse runs the document-stream production over data, starting at
// startPos, and returns one Node per document plus the anchor table
// gathered across the whole stream. Aliases are left unresolved in the
// returned tree; resolving them is internal/anchor's job.
func Parse(data []byte, startPos int) ([]*ast.Node, *anchor.Table, error) {
	p := newParser(data)
	p.c.SetStart(startPos)
	var docs []*ast.Node
	for {
		p.skipEmptyLines()
		if p.c.AtEOF() {
			break
		}
		doc, err := p.document()
		if err == cursor.ErrMismatch {
			err = cursor.Terminate("no value production matches", p.c.Indicator())
		}
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
	}
	return docs, p.anchors, nil
}

// skipEmptyLines consumes a run of blank or comment-only lines.
func (p *Parser) skipEmptyLines() {
	for {
		matched := p.c.Checkpoint(func() error {
			_ = p.ws(cursor.More(0))
			_ = p.comment()
			if err := p.nl(); err != nil {
				p.c.Backward()
				return err
			}
			return nil
		}) == nil
		if !matched {
			break
		}
	}
}

// document parses one directives-block + content + terminator unit of the
// document stream, resetting per-document state (indent stack, tag handle
// table, version-checked flag) first.
func (p *Parser) document() (*ast.Node, error) {
	p.resetDocumentState()
	for {
		p.skipEmptyLines()
		if p.directive() != nil {
			break
		}
	}
	_ = p.c.Checkpoint(func() error {
		if p.c.SymbolSeq([]byte("---")) != nil {
			return cursor.ErrMismatch
		}
		return p.ws(cursor.More(0))
	})
	p.skipEmptyLines()

	var doc *ast.Node
	if p.atDocumentBoundary() {
		doc = ast.Null(p.c.Indicator())
	} else {
		v, err := p.value(0, false)
		if err != nil {
			return nil, err
		}
		doc = v
	}

	p.skipEmptyLines()
	_ = p.c.Checkpoint(func() error {
		if p.c.SymbolSeq([]byte("...")) != nil {
			return cursor.ErrMismatch
		}
		return p.ws(cursor.More(0))
	})
	if !p.indent.atDocumentLevel() {
		return nil, cursor.Terminate("indent stack did not return to document level", p.c.Indicator())
	}
	return doc, nil
}

// atDocumentBoundary reports whether the cursor sits at EOF or at the next
// document/stream marker, meaning the current document's content is empty
// (a Null document).
func (p *Parser) atDocumentBoundary() bool {
	if p.c.AtEOF() {
		return true
	}
	rest := p.c.Peek()
	if len(rest) < 3 {
		return false
	}
	head := string(rest[:3])
	return head == "---" || head == "..."
}

// directive matches one '%'-prefixed directive line. Recognized directives
// are %YAML and %TAG; anything else is tolerated and skipped to end of
// line, per spec.md §4.B. Each keyword candidate runs in its own Checkpoint
// so a partial match on one never leaves the cursor short of where the next
// candidate needs to start, right after the leading '%'.
func (p *Parser) directive() error {
	return p.c.Checkpoint(func() error {
		if err := p.c.Symbol('%'); err != nil {
			return err
		}
		switch {
		case p.c.Checkpoint(func() error { return p.c.SymbolSeq([]byte("YAML")) }) == nil:
			if err := p.yamlDirective(); err != nil {
				return err
			}
		case p.c.Checkpoint(func() error { return p.c.SymbolSeq([]byte("TAG")) }) == nil:
			if err := p.tagDirective(); err != nil {
				return err
			}
		default:
			_ = p.c.AdvanceIf(cursor.NotIn([]byte("\n\r")), cursor.More(0))
		}
		return p.nl()
	})
}

func (p *Parser) yamlDirective() error {
	if p.version != "" {
		return cursor.Terminate("duplicate %YAML directive", p.c.Indicator())
	}
	if err := p.ws(cursor.More(1)); err != nil {
		return err
	}
	p.c.Forward()
	if err := p.c.AdvanceIf(isAsciiDigit, cursor.More(1)); err != nil {
		return err
	}
	major := p.c.Text()
	if err := p.c.Symbol('.'); err != nil {
		return err
	}
	p.c.Forward()
	if err := p.c.AdvanceIf(isAsciiDigit, cursor.More(1)); err != nil {
		return err
	}
	version := major + "." + p.c.Text()
	if version != "1.1" && version != "1.2" {
		return cursor.Terminate("unsupported YAML version "+version, p.c.Indicator())
	}
	p.version = version
	return p.ws(cursor.More(0))
}

// tagDirective matches "%TAG !handle! prefix" and installs the expansion
// in the active tag handle table, overriding any default.
func (p *Parser) tagDirective() error {
	if err := p.ws(cursor.More(1)); err != nil {
		return err
	}
	if err := p.c.Symbol('!'); err != nil {
		return err
	}
	var handleSuffix string
	_ = p.c.Checkpoint(func() error {
		if err := p.c.AdvanceIf(cursor.NotIn([]byte(" \t!\n\r")), cursor.More(0)); err != nil {
			return err
		}
		handleSuffix = p.c.Text()
		return nil
	})
	handle := "!" + handleSuffix
	if p.c.Symbol('!') == nil {
		handle += "!"
	}
	if err := p.ws(cursor.More(1)); err != nil {
		return err
	}
	p.c.Forward()
	if err := p.c.AdvanceIf(cursor.NotIn([]byte(" \t\n\r")), cursor.More(1)); err != nil {
		return err
	}
	p.tags[handle] = p.c.Text()
	return p.ws(cursor.More(0))
}
