package parser

import (
	"github.com/yamlcursor/yaml/internal/ast"
	"github.com/yamlcursor/yaml/internal/cursor"
)

// value is the entry point for a single Value position: it first peels off
// any number of leading anchor/tag decorations (order-independent, per
// spec), dispatches to the underlying production, then attaches the
// decorations to the result and records an anchor capture side effect.
func (p *Parser) value(level int, inFlow bool) (*ast.Node, error) {
	var anchorName, tag string
	for {
		if a, err := p.anchorDef(); err == nil {
			anchorName = a
			_ = p.ws(cursor.More(0))
			continue
		}
		if t, err := p.tag(); err == nil {
			tag = t
			_ = p.ws(cursor.More(0))
			continue
		}
		break
	}

	n, err := p.valueBody(level, inFlow)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		n = n.WithTag(tag)
	}
	if anchorName != "" {
		n = n.WithAnchor(anchorName)
		p.anchors.Insert(anchorName, n)
	}
	return n, nil
}

// valueBody tries each value production in the order spec.md §4.D fixes:
// null/bool, flow collection, block sequence, block map, alias, numeric,
// string. Every attempt backtracks cleanly on mismatch.
func (p *Parser) valueBody(level int, inFlow bool) (*ast.Node, error) {
	if n, err := p.nullScalar(); err == nil {
		return n, nil
	}
	if n, err := p.boolScalar(); err == nil {
		return n, nil
	}
	if n, err := p.flowCollection(level); err == nil {
		return n, nil
	}
	if !inFlow {
		if n, err := p.blockSequence(level); err == nil {
			return n, nil
		}
		if n, err := p.blockMap(level); err == nil {
			return n, nil
		}
	}
	if name, err := p.anchorUse(); err == nil {
		return ast.Alias(p.c.Indicator(), name), nil
	}
	if n, err := p.numericScalar(); err == nil {
		return n, nil
	}
	return p.stringScalar(level, inFlow)
}

func (p *Parser) nullScalar() (*ast.Node, error) {
	pos := p.c.Indicator()
	err := p.c.Checkpoint(func() error {
		if p.c.Symbol('~') == nil {
			return p.bound()
		}
		if p.c.SymbolSeq([]byte("null")) == nil {
			return p.bound()
		}
		return cursor.ErrMismatch
	})
	if err != nil {
		return nil, err
	}
	return ast.Null(pos), nil
}

func (p *Parser) boolScalar() (*ast.Node, error) {
	pos := p.c.Indicator()
	var b bool
	err := p.c.Checkpoint(func() error {
		switch {
		case p.c.SymbolSeq([]byte("true")) == nil:
			b = true
		case p.c.SymbolSeq([]byte("false")) == nil:
			b = false
		default:
			return cursor.ErrMismatch
		}
		return p.bound()
	})
	if err != nil {
		return nil, err
	}
	return ast.Bool(pos, b), nil
}

// numericScalar tries NaN, signed infinity, scientific float, plain float,
// then int, in the order spec.md §4.C fixes for the ambiguous leading-digit
// cases (sci-float before float before int).
func (p *Parser) numericScalar() (*ast.Node, error) {
	pos := p.c.Indicator()
	if s, err := p.nanScalar(); err == nil {
		return ast.Float(pos, s), nil
	}
	if s, err := p.infScalar(); err == nil {
		return ast.Float(pos, s), nil
	}
	if s, err := p.sciFloat(); err == nil {
		return ast.Float(pos, s), nil
	}
	if s, err := p.floatLexeme(); err == nil {
		return ast.Float(pos, s), nil
	}
	if s, err := p.int(); err == nil {
		return ast.Int(pos, s), nil
	}
	return nil, cursor.ErrMismatch
}

// stringScalar tries the block scalar forms first (unambiguous '|'/'>'
// indicators, block-context only), then single-quoted, double-quoted and
// plain in that order.
func (p *Parser) stringScalar(level int, inFlow bool) (*ast.Node, error) {
	pos := p.c.Indicator()
	if !inFlow {
		if s, err := p.stringLiteral(level); err == nil {
			return ast.Str(pos, s), nil
		}
		if s, err := p.stringFolded(level); err == nil {
			return ast.Str(pos, s), nil
		}
	}
	s, err := p.stringFlow(level, inFlow)
	if err != nil {
		return nil, err
	}
	return ast.Str(pos, s), nil
}

// blockSequence matches a run of '-' items at the same indent level, each
// either an inline value on the dash's own line or a value on subsequent
// deeper-indented lines. Like blockMap, it owns measuring its own indent at
// i==0 (indDefine) rather than relying on a caller to have positioned the
// cursor past it — this is what lets a sequence appear as a mapping value on
// the lines following "key:".
func (p *Parser) blockSequence(level int) (*ast.Node, error) {
	pos := p.c.Indicator()
	var items []*ast.Node
	for i := 0; ; i++ {
		if i == 0 {
			if err := p.indent.indDefine(p.c, level); err != nil {
				return nil, err
			}
		}
		ok := p.c.Checkpoint(func() error {
			if i > 0 {
				if err := p.nl(); err != nil {
					p.c.Backward()
					return err
				}
				if dedented, err := p.indent.unind(p.c, level); err != nil {
					p.c.Backward()
					return err
				} else if dedented {
					p.c.Backward()
					return cursor.ErrMismatch
				}
				if err := p.indent.ind(p.c, level); err != nil {
					p.c.Backward()
					return err
				}
			}
			if err := p.c.Symbol('-'); err != nil {
				p.c.Backward()
				return err
			}
			return p.c.SymbolSet([]byte(" \t\n\r"))
		}) == nil
		if !ok {
			if i == 0 {
				return nil, cursor.ErrMismatch
			}
			break
		}
		p.c.Back(1)
		_ = p.ws(cursor.More(0))
		if p.nl() == nil {
			if err := p.indent.indDefine(p.c, level+1); err != nil {
				return nil, err
			}
		}
		item, err := p.value(level+1, false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return ast.Seq(pos, items), nil
}

// blockMap matches a run of entries at the same indent level, each either
// a simple "key: value" pair or a "? key" / ": value" complex-key pair.
func (p *Parser) blockMap(level int) (*ast.Node, error) {
	pos := p.c.Indicator()
	var entries []ast.MapEntry
	for i := 0; ; i++ {
		if i == 0 {
			if err := p.indent.indDefine(p.c, level); err != nil {
				return nil, err
			}
		} else {
			ok := p.c.Checkpoint(func() error {
				if err := p.nl(); err != nil {
					p.c.Backward()
					return err
				}
				if dedented, err := p.indent.unind(p.c, level); err != nil {
					p.c.Backward()
					return err
				} else if dedented {
					p.c.Backward()
					return cursor.ErrMismatch
				}
				if err := p.indent.ind(p.c, level); err != nil {
					p.c.Backward()
					return err
				}
				return nil
			}) == nil
			if !ok {
				break
			}
		}
		key, value, err := p.mapEntry(level)
		if err != nil {
			return nil, err
		}
		if ast.ContainsKey(entries, key) {
			return nil, cursor.Terminate("duplicate map key", p.c.Indicator())
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
	}
	if len(entries) == 0 {
		return nil, cursor.ErrMismatch
	}
	return ast.Map(pos, entries), nil
}

func (p *Parser) mapEntry(level int) (*ast.Node, *ast.Node, error) {
	if key, value, err := p.complexKeyEntry(level); err == nil {
		return key, value, nil
	}
	return p.simpleKeyEntry(level)
}

// complexKeyEntry matches "? key" (key may itself span multiple lines and
// nest arbitrarily) followed, at the map's own indent, by ": value". The
// whole attempt is one Checkpoint so a failure at any step after '?' has
// matched leaves the cursor exactly where mapEntry found it, free for
// simpleKeyEntry to retry from.
func (p *Parser) complexKeyEntry(level int) (*ast.Node, *ast.Node, error) {
	var key, value *ast.Node
	err := p.c.Checkpoint(func() error {
		if err := p.c.Symbol('?'); err != nil {
			return err
		}
		_ = p.c.SymbolSet([]byte(" \t"))
		k, err := p.value(level+1, false)
		if err != nil {
			p.c.Backward()
			return err
		}
		if err := p.nl(); err != nil {
			p.c.Backward()
			return err
		}
		if err := p.indent.ind(p.c, level); err != nil {
			p.c.Backward()
			return err
		}
		if err := p.c.Symbol(':'); err != nil {
			p.c.Backward()
			return err
		}
		_ = p.c.SymbolSet([]byte(" \t"))
		v, err := p.value(level+1, false)
		if err != nil {
			p.c.Backward()
			return err
		}
		key, value = k, v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// simpleKeyEntry matches a scalar key followed by ": " or ":" + newline on
// the same line, then a value either inline or on following deeper lines.
func (p *Parser) simpleKeyEntry(level int) (*ast.Node, *ast.Node, error) {
	pos := p.c.Indicator()
	keyLexeme, err := p.stringFlow(level, false)
	if err != nil {
		return nil, nil, err
	}
	key := ast.Str(pos, keyLexeme)
	if err := p.c.Symbol(':'); err != nil {
		return nil, nil, err
	}
	if err := p.c.Checkpoint(func() error {
		if p.c.SymbolSet([]byte(" \t")) == nil {
			return nil
		}
		if p.nl() == nil {
			return nil
		}
		return cursor.ErrMismatch
	}); err != nil {
		return nil, nil, err
	}
	p.skipToValueLine()
	value, err := p.value(level+1, false)
	if err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// skipToValueLine lets a "key:" whose rest of line is blank hand its value
// off to the next, more deeply indented, line; an inline value is left
// untouched.
func (p *Parser) skipToValueLine() {
	_ = p.c.Checkpoint(func() error {
		_ = p.ws(cursor.More(0))
		if p.nl() != nil {
			p.c.Backward()
			return nil
		}
		return nil
	})
}

func (p *Parser) flowCollection(level int) (*ast.Node, error) {
	if n, err := p.flowSeq(level); err == nil {
		return n, nil
	}
	return p.flowMap(level)
}

// skipFlowGap consumes any run of inline whitespace and line breaks between
// flow tokens; flow collections allow free line wrapping.
func (p *Parser) skipFlowGap() {
	for {
		matched := false
		if p.ws(cursor.More(1)) == nil {
			matched = true
		}
		if p.nl() == nil {
			matched = true
		}
		if !matched {
			break
		}
	}
}

func (p *Parser) flowSeq(level int) (*ast.Node, error) {
	pos := p.c.Indicator()
	if err := p.c.Symbol('['); err != nil {
		return nil, err
	}
	var items []*ast.Node
	p.skipFlowGap()
	if p.c.Symbol(']') == nil {
		return ast.Seq(pos, items), nil
	}
	for {
		item, err := p.value(level, true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipFlowGap()
		if p.c.Symbol(',') == nil {
			p.skipFlowGap()
			if p.c.Symbol(']') == nil {
				return ast.Seq(pos, items), nil
			}
			continue
		}
		if p.c.Symbol(']') == nil {
			return ast.Seq(pos, items), nil
		}
		return nil, cursor.Terminate("unterminated flow sequence", p.c.Indicator())
	}
}

func (p *Parser) flowMap(level int) (*ast.Node, error) {
	pos := p.c.Indicator()
	if err := p.c.Symbol('{'); err != nil {
		return nil, err
	}
	var entries []ast.MapEntry
	p.skipFlowGap()
	if p.c.Symbol('}') == nil {
		return ast.Map(pos, entries), nil
	}
	for {
		key, err := p.value(level, true)
		if err != nil {
			return nil, err
		}
		p.skipFlowGap()
		value := ast.Null(p.c.Indicator())
		if p.c.Symbol(':') == nil {
			p.skipFlowGap()
			v, err := p.value(level, true)
			if err != nil {
				return nil, err
			}
			value = v
			p.skipFlowGap()
		}
		if ast.ContainsKey(entries, key) {
			return nil, cursor.Terminate("duplicate map key", p.c.Indicator())
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
		if p.c.Symbol(',') == nil {
			p.skipFlowGap()
			if p.c.Symbol('}') == nil {
				return ast.Map(pos, entries), nil
			}
			continue
		}
		if p.c.Symbol('}') == nil {
			return ast.Map(pos, entries), nil
		}
		return nil, cursor.Terminate("unterminated flow map", p.c.Indicator())
	}
}
