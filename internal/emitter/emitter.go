// Package emitter writes a resolved node tree back out as block-style
// YAML text. It is a real collaborator package, grounded on the shape of
// the teacher's own internal/emitter (a dedicated writer package consuming
// the data model from outside) but reduced to the minimum contract
// spec.md §6 actually asks of an emitter: no flow style, no comment or
// anchor re-emission, no style analysis pass.
package emitter

import (
	"fmt"
	"io"
	"strings"

	"github.com/yamlcursor/yaml/internal/ast"
)

// Write renders n as block-style YAML text to w.
//
// Scalars containing '\n' are written as literal ('|') blocks at the
// current indent; maps render "key: value" per line; sequences render
// "- item" per line; aliases render "*name". Tags and anchors are not
// re-emitted, matching the minimum contract.
func Write(w io.Writer, n *ast.Node) error {
	e := &writer{w: w}
	_ = e.value(n, 0)
	return e.err
}

type writer struct {
	w   io.Writer
	err error
}

func (e *writer) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

func (e *writer) value(n *ast.Node, level int) error {
	if e.err != nil {
		return e.err
	}
	switch n.Value.Kind {
	case ast.NullKind:
		e.printf("null\n")
	case ast.BoolKind:
		e.printf("%t\n", n.Value.Bool)
	case ast.IntKind, ast.FloatKind, ast.StrKind:
		e.writeScalar(n.Value, level)
	case ast.AliasKind:
		e.printf("*%s\n", n.Value.Lexeme)
	case ast.SeqKind:
		e.writeSeq(n, level)
	case ast.MapKind:
		e.writeMap(n, level)
	default:
		return fmt.Errorf("emitter: unknown value kind %v", n.Value.Kind)
	}
	return e.err
}

func (e *writer) writeScalar(v *ast.Value, level int) {
	if v.Kind != ast.StrKind || !strings.Contains(v.Lexeme, "\n") {
		e.printf("%s\n", v.Lexeme)
		return
	}
	e.printf("|-\n")
	for _, line := range strings.Split(strings.TrimSuffix(v.Lexeme, "\n"), "\n") {
		e.printf("%s%s\n", indent(level), line)
	}
}

func (e *writer) writeSeq(n *ast.Node, level int) {
	if len(n.Value.Seq) == 0 {
		e.printf("[]\n")
		return
	}
	for _, item := range n.Value.Seq {
		e.printf("%s- ", indent(level))
		e.writeInline(item, level+1)
	}
}

func (e *writer) writeMap(n *ast.Node, level int) {
	if len(n.Value.Map) == 0 {
		e.printf("{}\n")
		return
	}
	for _, entry := range n.Value.Map {
		key := entry.Key
		if key.Value.Kind == ast.SeqKind || key.Value.Kind == ast.MapKind {
			e.printf("%s? ", indent(level))
			e.writeInline(key, level+1)
			e.printf("%s: ", indent(level))
		} else {
			e.printf("%s%s: ", indent(level), scalarText(key.Value))
		}
		e.writeInline(entry.Value, level+1)
	}
}

// writeInline writes a sequence item or map value: scalars and aliases
// render on the same line as their introducer; collections start a new
// indented block on the following line.
func (e *writer) writeInline(n *ast.Node, level int) {
	if n.Value.Kind == ast.SeqKind || n.Value.Kind == ast.MapKind {
		e.printf("\n")
	}
	_ = e.value(n, level)
}

func scalarText(v *ast.Value) string {
	switch v.Kind {
	case ast.NullKind:
		return "null"
	case ast.BoolKind:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return v.Lexeme
	}
}
