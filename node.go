// Package yaml parses YAML 1.2 documents into a tagged-union tree and
// resolves anchor/alias references against it. The grammar and resolver
// live in internal/parser and internal/anchor; this package re-exports
// their shared data model by type alias, since both internal/anchor and
// internal/parser need Node without importing back through the public API.
package yaml

import (
	"github.com/yamlcursor/yaml/internal/anchor"
	"github.com/yamlcursor/yaml/internal/ast"
)

// Kind discriminates which arm of a Value's tagged union is populated.
type Kind = ast.Kind

const (
	NullKind  = ast.NullKind
	BoolKind  = ast.BoolKind
	IntKind   = ast.IntKind
	FloatKind = ast.FloatKind
	StrKind   = ast.StrKind
	SeqKind   = ast.SeqKind
	MapKind   = ast.MapKind
	AliasKind = ast.AliasKind
)

// MapEntry is one key/value pair of a Map value, in declared order.
type MapEntry = ast.MapEntry

// Value is the tagged union backing a Node: exactly one Kind is populated.
type Value = ast.Value

// Node wraps a Value with positional and type-decoration metadata.
type Node = ast.Node

// AnchorTable is the insertion-ordered anchor-name-to-Node table collected
// during parsing and consumed by resolution.
type AnchorTable = anchor.Table

// StructurallyEqual reports whether a and b have the same Value, the
// equality Map key uniqueness and table lookups are defined against.
func StructurallyEqual(a, b *Node) bool { return ast.StructurallyEqual(a, b) }

// Walk performs a depth-first pre-order traversal of n, invoking visit on
// every Node reached, n included.
func Walk(n *Node, visit func(*Node)) { ast.Walk(n, visit) }
