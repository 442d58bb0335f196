package parser

import (
	"strings"

	"github.com/yamlcursor/yaml/internal/cursor"
)

// bound matches the invisible boundary that must follow a numeric scalar:
// one of the terminator bytes, pushed back so the terminator itself is not
// consumed, followed by any trailing inline whitespace.
func (p *Parser) bound() error {
	if p.c.AtEOF() {
		return nil
	}
	if err := p.c.SymbolSet([]byte(":{}[] ,\n\r")); err != nil {
		return err
	}
	p.c.Back(1)
	return p.ws(cursor.More(0))
}

func isAsciiDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *Parser) numPrefix() error {
	_ = p.c.Symbol('-')
	return p.c.AdvanceIf(isAsciiDigit, cursor.More(1))
}

// int matches an Int lexeme: optional '-', digits, or a 0x/0o base-prefixed
// form, terminated by a boundary.
func (p *Parser) int() (string, error) {
	if err := p.hexOrOctalInt(); err == nil {
		return p.c.Text(), nil
	}
	p.c.Forward()
	if err := p.numPrefix(); err != nil {
		return "", err
	}
	s := p.c.Text()
	if err := p.bound(); err != nil {
		return "", err
	}
	return s, nil
}

// hexOrOctalInt matches an optionally-signed 0x/0o prefixed integer. The two
// prefix candidates each run in their own Checkpoint so a partial match on
// "0x" can never strand the optional leading '-' and block the "0o" retry.
func (p *Parser) hexOrOctalInt() error {
	return p.c.Checkpoint(func() error {
		p.c.Forward()
		_ = p.c.Symbol('-')
		if p.c.Checkpoint(func() error { return p.c.SymbolSeq([]byte("0x")) }) == nil {
			if err := p.c.AdvanceIf(isHexDigit, cursor.More(1)); err != nil {
				return err
			}
			return p.bound()
		}
		if p.c.Checkpoint(func() error { return p.c.SymbolSeq([]byte("0o")) }) == nil {
			if err := p.c.AdvanceIf(isOctalDigit, cursor.More(1)); err != nil {
				return err
			}
			return p.bound()
		}
		p.c.Backward()
		return cursor.ErrMismatch
	})
}

func isHexDigit(b byte) bool {
	return isAsciiDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

// floatLexeme matches a Float lexeme of the form [-]digits.[digits],
// terminated by a boundary.
func (p *Parser) floatLexeme() (string, error) {
	p.c.Forward()
	if err := p.numPrefix(); err != nil {
		return "", err
	}
	if err := p.c.Symbol('.'); err != nil {
		return "", err
	}
	_ = p.c.AdvanceIf(isAsciiDigit, cursor.More(0))
	s := p.c.Text()
	if err := p.bound(); err != nil {
		return "", err
	}
	return s, nil
}

// sciFloat matches scientific notation: [-]digits[eE][+-]digits.
func (p *Parser) sciFloat() (string, error) {
	p.c.Forward()
	if err := p.numPrefix(); err != nil {
		return "", err
	}
	if err := p.c.SymbolSet([]byte("eE")); err != nil {
		return "", err
	}
	_ = p.c.AdvanceIf(cursor.IsIn([]byte("+-")), cursor.Range(0, 1))
	if err := p.c.AdvanceIf(isAsciiDigit, cursor.More(1)); err != nil {
		return "", err
	}
	s := p.c.Text()
	if err := p.bound(); err != nil {
		return "", err
	}
	return s, nil
}

// nanScalar matches .nan/.NaN/.NAN and returns the matched lexeme verbatim.
// Each candidate form is tried inside its own Checkpoint so a partial match
// on one candidate can never leave the cursor short of where the next
// candidate needs to start (right after the leading '.').
func (p *Parser) nanScalar() (string, error) {
	p.c.Forward()
	if err := p.c.Symbol('.'); err != nil {
		return "", err
	}
	for _, form := range [][]byte{[]byte("nan"), []byte("NaN"), []byte("NAN")} {
		if p.c.Checkpoint(func() error { return p.c.SymbolSeq(form) }) == nil {
			s := p.c.Text()
			if err := p.bound(); err != nil {
				return "", err
			}
			return s, nil
		}
	}
	p.c.Backward()
	return "", cursor.ErrMismatch
}

// infScalar matches optional '-' then .inf/.Inf/.INF and returns the
// matched lexeme verbatim, sign included. See nanScalar for why each
// candidate form runs in its own Checkpoint.
func (p *Parser) infScalar() (string, error) {
	p.c.Forward()
	_ = p.c.Symbol('-')
	if err := p.c.Symbol('.'); err != nil {
		return "", err
	}
	for _, form := range [][]byte{[]byte("inf"), []byte("Inf"), []byte("INF")} {
		if p.c.Checkpoint(func() error { return p.c.SymbolSeq(form) }) == nil {
			s := p.c.Text()
			if err := p.bound(); err != nil {
				return "", err
			}
			return s, nil
		}
	}
	p.c.Backward()
	return "", cursor.ErrMismatch
}

// stringQuoted matches a sym-quoted string (sym is the quote character,
// ignore is the two-byte escape for a literal quote: "''" or `\"`).
// Newlines inside the quotes fold per the 1-gap-is-a-space,
// N>1-gaps-is-N-1-newlines rule shared with block scalars.
func (p *Parser) stringQuoted(sym byte, ignore []byte) (string, error) {
	var out string
	err := p.c.Checkpoint(func() error {
		if err := p.c.Symbol(sym); err != nil {
			return err
		}
		p.c.Forward()
		var v strings.Builder
		_ = p.ws(cursor.More(0))
		v.WriteString(p.c.Text())
		for {
			p.c.Forward()
			_ = p.c.AdvanceIf(cursor.NotIn([]byte{'\n', '\r', '\\', sym}), cursor.More(0))
			v.WriteString(p.c.Text())
			p.c.Forward()
			switch {
			case p.c.SymbolSeq(ignore) == nil:
				v.WriteByte(sym)
			default:
				if t, err := p.gap(false); err == nil {
					if strings.HasSuffix(v.String(), "\\") {
						t--
					}
					switch {
					case t < 1:
					case t == 1:
						s := strings.TrimRight(v.String(), " \t")
						v.Reset()
						v.WriteString(s)
						if !strings.HasSuffix(v.String(), "\\n") {
							v.WriteByte(' ')
						}
					default:
						for i := 0; i < t-1; i++ {
							v.WriteByte('\n')
						}
					}
					_ = p.ws(cursor.More(0))
				} else if p.c.Symbol('\\') == nil {
					v.WriteByte('\\')
				} else if p.c.Symbol(sym) == nil {
					out = v.String()
					return nil
				} else {
					p.c.Backward()
					return cursor.ErrMismatch
				}
			}
		}
	})
	return out, err
}

// stringPlain matches a plain scalar at the given indent level. inFlow
// additionally excludes ',' from the character set, since flow collections
// use it as a separator.
func (p *Parser) stringPlain(level int, inFlow bool) (string, error) {
	excluded := []byte("[]{}: \n\r")
	if inFlow {
		excluded = append(excluded, ',')
	}
	var out string
	err := p.c.Checkpoint(func() error {
		var v strings.Builder
		for {
			iterStart := p.c.Pos()
			p.c.Forward()
			if err := p.c.AdvanceIf(cursor.NotIn(excluded), cursor.More(0)); err != nil {
				return err
			}
			v.WriteString(p.c.Text())
			p.c.Forward()
			if len(p.c.Peek()) == 0 ||
				p.c.SymbolSeq([]byte(": ")) == nil ||
				(p.c.Symbol(':') == nil && p.nl() == nil) ||
				p.c.SymbolSeq([]byte(" #")) == nil {
				p.c.Backward()
				break
			}
			p.c.Forward()
			if p.c.SymbolSet([]byte(": ")) == nil {
				if p.c.Text() == " " {
					s := strings.TrimRight(v.String(), " \t")
					v.Reset()
					v.WriteString(s)
				}
				v.WriteString(p.c.Text())
			} else if !inFlow && v.Len() != 0 && p.c.SymbolSet([]byte("{}[]")) == nil {
				v.WriteString(p.c.Text())
			} else if p.indent.ind(p.c, level) != nil {
				if t, err := p.gap(true); err == nil {
					if t == 1 {
						v.WriteByte(' ')
					}
					for i := 0; i < t-1; i++ {
						v.WriteByte('\n')
					}
					if p.indent.ind(p.c, level) != nil {
						break
					}
				} else {
					break
				}
			}
			// A well-formed grammar always makes progress each iteration; this
			// guards against a zero-width indent level leaving the cursor
			// stationary, which would otherwise loop forever instead of
			// mismatching.
			if p.c.Pos() == iterStart {
				break
			}
		}
		s := strings.TrimRight(v.String(), " \t")
		if s == "" {
			p.c.Backward()
			return cursor.ErrMismatch
		}
		out = s
		return nil
	})
	return out, err
}

// stringFlow tries the three flow-compatible string flavors in order:
// single-quoted, double-quoted, plain.
func (p *Parser) stringFlow(level int, inFlow bool) (string, error) {
	if s, err := p.stringQuoted('\'', []byte("''")); err == nil {
		return s, nil
	}
	if s, err := p.stringQuoted('"', []byte(`\"`)); err == nil {
		return unescape(s), nil
	}
	return p.stringPlain(level, inFlow)
}

// unescape interprets the second-pass double-quote backslash escapes:
// \\, \n, \r, \t, \b, \f only. Any other escaped character is written as
// itself, without its backslash.
func unescape(s string) string {
	var out strings.Builder
	escaping := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && !escaping {
			escaping = true
			continue
		}
		if escaping {
			switch c {
			case '\\':
				out.WriteByte('\\')
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			case 'b':
				out.WriteByte('\b')
			case 'f':
				out.WriteByte('\f')
			default:
				out.WriteByte(c)
			}
			escaping = false
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

// chomp reads the optional chomping indicator ('-' strip, '+' keep, default
// clip) and returns the post-processor that applies it to the block
// scalar's assembled content.
func (p *Parser) chomp() func(string) string {
	var fn func(string) string
	_ = p.c.Checkpoint(func() error {
		switch {
		case p.c.Symbol('-') == nil:
			fn = func(s string) string { return strings.TrimRight(s, "\n") }
		case p.c.Symbol('+') == nil:
			fn = func(s string) string { return s }
		default:
			fn = func(s string) string { return strings.TrimRight(s, "\n") + "\n" }
		}
		return nil
	})
	return fn
}

// stringLiteral matches a '|' block scalar: each source line becomes one
// content line joined by '\n', indentation beyond the block indent kept.
func (p *Parser) stringLiteral(level int) (string, error) {
	if err := p.c.Symbol('|'); err != nil {
		return "", err
	}
	chomp := p.chomp()
	_ = p.ws(cursor.More(0))
	s, err := p.stringWrapped(level, '\n', true)
	if err != nil {
		return "", err
	}
	return chomp(s), nil
}

// stringFolded matches a '>' block scalar: lines joined by a single space,
// a blank line becomes a real '\n'.
func (p *Parser) stringFolded(level int) (string, error) {
	if err := p.c.Symbol('>'); err != nil {
		return "", err
	}
	chomp := p.chomp()
	_ = p.ws(cursor.More(0))
	s, err := p.stringWrapped(level, ' ', false)
	if err != nil {
		return "", err
	}
	return chomp(s), nil
}

// stringWrapped assembles the body of a block scalar: every line at or
// deeper than the declared block indent contributes content, terminating at
// the first shallower line or EOF.
func (p *Parser) stringWrapped(level int, sep byte, leading bool) (string, error) {
	var out string
	err := p.c.Checkpoint(func() error {
		var v strings.Builder
		for {
			if p.nl() != nil {
				break
			}
			p.c.Forward()
			if p.indent.ind(p.c, level) != nil {
				if t, err := p.gap(false); err == nil {
					for i := 0; i < t; i++ {
						v.WriteByte('\n')
					}
					if p.indent.ind(p.c, level) != nil {
						break
					}
				} else {
					break
				}
			}
			p.c.Forward()
			if err := p.c.AdvanceIf(cursor.NotIn([]byte("\n\r")), cursor.More(0)); err != nil {
				break
			}
			s := p.c.Text()
			if leading {
				if v.Len() != 0 {
					v.WriteByte(sep)
				}
				v.WriteString(s)
			} else {
				trimmed := strings.TrimLeft(s, " \t")
				if v.Len() != 0 && !endsWithSpace(v.String()) {
					v.WriteByte(sep)
				}
				v.WriteString(trimmed)
			}
		}
		p.c.Back(1)
		out = v.String() + "\n"
		return nil
	})
	return out, err
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == ' ' || last == '\t' || last == '\n'
}

// identifier matches the shared anchor/alias/tag-suffix grammar: an ASCII
// alphanumeric, then any run of alphanumerics or '-'.
func (p *Parser) identifier() error {
	if err := p.c.AdvanceIf(isAlphanumeric, cursor.One()); err != nil {
		return err
	}
	return p.c.AdvanceIf(func(b byte) bool {
		return isAlphanumeric(b) || b == '-'
	}, cursor.More(0))
}

func isAlphanumeric(b byte) bool {
	return isAsciiDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// tag matches a '!' tag token in one of its forms: bare '!', default '!!',
// '!handle!suffix', '!<verbatim-uri>' or '!local'. The handle is expanded
// through p.tags, keyed by the full handle spelling ("!" or "!!" or
// "!name!") exactly as %TAG installs it.
func (p *Parser) tag() (string, error) {
	var out string
	err := p.c.Checkpoint(func() error {
		if err := p.c.Symbol('!'); err != nil {
			return err
		}
		if p.c.Symbol('<') == nil {
			var verbatim string
			verr := p.c.Checkpoint(func() error {
				if err := p.c.AdvanceIf(cursor.NotIn([]byte(" <>\n\r")), cursor.More(1)); err != nil {
					return err
				}
				verbatim = p.c.Text()
				return nil
			})
			if verr != nil {
				p.c.Backward()
				return verr
			}
			if err := p.c.Symbol('>'); err != nil {
				p.c.Backward()
				return err
			}
			out = verbatim
			return nil
		}
		if p.c.Symbol('!') == nil {
			out = p.tags["!!"] + p.captureIdentifier()
			return nil
		}
		name := p.captureIdentifier()
		if p.c.Symbol('!') == nil {
			handle := "!" + name + "!"
			prefix, ok := p.tags[handle]
			if !ok {
				return cursor.Terminate("tag handle used but not declared", p.c.Indicator())
			}
			out = prefix + p.captureIdentifier()
			return nil
		}
		out = p.tags["!"] + name
		return nil
	})
	return out, err
}

// captureIdentifier matches an optional identifier and returns its text,
// or "" if none is present at the current position.
func (p *Parser) captureIdentifier() string {
	var s string
	_ = p.c.Checkpoint(func() error {
		if p.identifier() == nil {
			s = p.c.Text()
		}
		return nil
	})
	return s
}

// anchorDef matches an '&name' anchor declaration and returns name.
func (p *Parser) anchorDef() (string, error) {
	if err := p.c.Symbol('&'); err != nil {
		return "", err
	}
	var out string
	err := p.c.Checkpoint(func() error {
		if err := p.identifier(); err != nil {
			return err
		}
		out = p.c.Text()
		return nil
	})
	return out, err
}

// anchorUse matches a '*name' alias reference and returns name.
func (p *Parser) anchorUse() (string, error) {
	if err := p.c.Symbol('*'); err != nil {
		return "", err
	}
	var out string
	err := p.c.Checkpoint(func() error {
		if err := p.identifier(); err != nil {
			return err
		}
		out = p.c.Text()
		return nil
	})
	return out, err
}
