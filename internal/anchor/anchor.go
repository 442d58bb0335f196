// Package anchor implements the anchor table and the post-parse alias
// resolver: the "many readers, no writers after construction" graph the
// parser produces still has Alias leaves in it, and this package turns that
// into a fully inlined tree by fixed-point substitution.
//
// Grounded on the same swap-two-working-copies technique the Rust original
// (anchors.rs, anchor_resolve) uses: 2*depth passes over the table, each
// pass substituting against the previous pass's result, guarantee a fixed
// point for alias chains no longer than depth.
package anchor

import (
	"fmt"

	"github.com/yamlcursor/yaml/internal/ast"
)

// Table is an insertion-ordered mapping from anchor name to the Node bound
// to it. A re-declared name overwrites the older binding (last-wins); the
// order slice still records only the first insertion position of each name,
// matching "anchor table insertion order equals textual declaration order".
type Table struct {
	order []string
	nodes map[string]*ast.Node
}

// New returns an empty anchor table.
func New() *Table {
	return &Table{nodes: make(map[string]*ast.Node)}
}

// Insert binds name to n, last-wins on a repeated name.
func (t *Table) Insert(name string, n *ast.Node) {
	if _, ok := t.nodes[name]; !ok {
		t.order = append(t.order, name)
	}
	t.nodes[name] = n
}

// Lookup returns the Node bound to name, if any.
func (t *Table) Lookup(name string) (*ast.Node, bool) {
	n, ok := t.nodes[name]
	return n, ok
}

// Names returns the bound anchor names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports how many anchors are bound.
func (t *Table) Len() int { return len(t.nodes) }

func (t *Table) clone() *Table {
	cp := &Table{
		order: append([]string(nil), t.order...),
		nodes: make(map[string]*ast.Node, len(t.nodes)),
	}
	for k, v := range t.nodes {
		cp.nodes[k] = v
	}
	return cp
}

// UnresolvedAliasError reports an alias that names an anchor absent from
// the table it was resolved against, or an alias still left in a binding
// after Resolve's last pass (a cycle, or a chain too long for the depth
// bound).
type UnresolvedAliasError struct {
	Name string
}

func (e *UnresolvedAliasError) Error() string {
	return fmt.Sprintf("yaml: unresolved alias %q", e.Name)
}

// Visit performs a depth-first traversal of n and returns every
// (anchor, Node) pair it finds, used by callers that build a table from a
// tree constructed outside the parser.
func Visit(n *ast.Node) *Table {
	t := New()
	ast.Walk(n, func(child *ast.Node) {
		if child.Anchor != "" {
			t.Insert(child.Anchor, child)
		}
	})
	return t
}

// Resolve runs up to 2*depth fixed-point passes over a and returns a new
// table in which every alias reachable from any bound Node has been
// replaced by its current binding. depth must be at least 1 (smaller values
// are treated as 1). Chains no longer than depth always resolve; a longer
// chain may still resolve within the passes, and if any alias is left after
// the last pass Resolve returns an UnresolvedAliasError naming it.
//
// A structurally cyclic anchor (one that references itself, directly or
// through another alias) never converges within 2*depth passes and is
// reported as unresolved rather than detected up front: the bounded-pass
// approach is simpler than a cycle detector and sufficient for the acyclic
// graphs real YAML anchors describe.
func Resolve(a *Table, depth int) (*Table, error) {
	if depth < 1 {
		depth = 1
	}
	working := a.clone()
	prev := a.clone()
	for pass := 0; pass < 2*depth; pass++ {
		next := New()
		for _, name := range working.order {
			n := working.nodes[name]
			substituted, err := substitute(n, prev, make(map[*ast.Node]*ast.Node))
			if err != nil {
				return nil, err
			}
			next.Insert(name, substituted)
		}
		prev, working = working, next
	}
	for _, name := range working.order {
		left := ""
		ast.Walk(working.nodes[name], func(n *ast.Node) {
			if left == "" && n.Value.Kind == ast.AliasKind {
				left = n.Value.Lexeme
			}
		})
		if left != "" {
			return nil, &UnresolvedAliasError{Name: left}
		}
	}
	return working, nil
}

// Substitute rewrites n against the resolved table a, replacing any Alias
// leaf with its bound Node. Callers use this once, after Resolve, to rewrite
// the parsed tree(s) returned alongside the anchor table.
func Substitute(n *ast.Node, a *Table) (*ast.Node, error) {
	return substitute(n, a, make(map[*ast.Node]*ast.Node))
}

// substitute walks n, replacing Alias leaves with their binding in a. seen
// guards a single top-level call against re-walking the same Node twice in
// one substitution (a shared subtree, not a cycle), mapping it to the copy
// already produced for it so a second occurrence gets the substituted
// result too, not the still-aliased original.
func substitute(n *ast.Node, a *Table, seen map[*ast.Node]*ast.Node) (*ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	if cp, ok := seen[n]; ok {
		return cp, nil
	}
	switch n.Value.Kind {
	case ast.AliasKind:
		bound, ok := a.Lookup(n.Value.Lexeme)
		if !ok {
			return nil, &UnresolvedAliasError{Name: n.Value.Lexeme}
		}
		if n.Anchor != "" {
			return bound.WithAnchor(n.Anchor), nil
		}
		return bound, nil
	case ast.SeqKind:
		cp := *n
		seen[n] = &cp
		children := make([]*ast.Node, len(n.Value.Seq))
		for i, c := range n.Value.Seq {
			sub, err := substitute(c, a, seen)
			if err != nil {
				return nil, err
			}
			children[i] = sub
		}
		v := *n.Value
		v.Seq = children
		cp.Value = &v
		return &cp, nil
	case ast.MapKind:
		cp := *n
		seen[n] = &cp
		entries := make([]ast.MapEntry, len(n.Value.Map))
		for i, e := range n.Value.Map {
			k, err := substitute(e.Key, a, seen)
			if err != nil {
				return nil, err
			}
			v, err := substitute(e.Value, a, seen)
			if err != nil {
				return nil, err
			}
			entries[i] = ast.MapEntry{Key: k, Value: v}
		}
		val := *n.Value
		val.Map = entries
		cp.Value = &val
		return &cp, nil
	default:
		return n, nil
	}
}
