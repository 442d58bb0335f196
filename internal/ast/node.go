// Package ast holds the tagged-union value model the parser builds and the
// resolver rewrites: Value, Node and the ordered map representation. It is
// kept internal and re-exported by the root package so that internal/anchor
// and internal/parser can share the type without an import cycle back
// through the public API.
package ast

import (
	"math"

	"github.com/yamlcursor/yaml/internal/resolve"
)

// Kind discriminates which arm of the Value tagged union is populated.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StrKind
	SeqKind
	MapKind
	AliasKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StrKind:
		return "str"
	case SeqKind:
		return "seq"
	case MapKind:
		return "map"
	case AliasKind:
		return "alias"
	default:
		return "unknown"
	}
}

// MapEntry is one key/value pair of a Map value, in declared order.
type MapEntry struct {
	Key   *Node
	Value *Node
}

// Value is the tagged union described by the data model: exactly one Kind is
// populated at a time. Once a Value is reachable from a published Node it is
// never mutated again — transformations (alias substitution included)
// produce new Values, never edit one in place. That "immutable after
// publish" discipline is what lets many Nodes share one *Value (and many
// parents share one *Node after alias resolution) without a data race, the
// same way the Rust original's Rc<Yaml> sharing works, without Go needing an
// explicit reference count: the garbage collector frees a Value once its
// last referencing Node is gone.
type Value struct {
	Kind Kind

	Bool bool

	// Lexeme holds the original source text for Int, Float, Str and Alias:
	// the base-prefixed integer/float spelling, the fully unescaped string
	// contents, or the aliased anchor name, respectively.
	Lexeme string

	Seq []*Node

	Map []MapEntry
}

// Node wraps a Value with positional and type-decoration metadata. Node
// values are immutable once returned from the parser or resolver; building
// a new tree means building new Nodes, never editing fields of a published
// one.
type Node struct {
	Value  *Value
	Pos    uint64
	Tag    string
	Anchor string
}

// Null builds a Node holding the Null value.
func Null(pos uint64) *Node {
	return &Node{Value: &Value{Kind: NullKind}, Pos: pos}
}

// Bool builds a Node holding a Bool value.
func Bool(pos uint64, b bool) *Node {
	return &Node{Value: &Value{Kind: BoolKind, Bool: b}, Pos: pos}
}

// Int builds a Node holding an Int value; lexeme is stored verbatim.
func Int(pos uint64, lexeme string) *Node {
	return &Node{Value: &Value{Kind: IntKind, Lexeme: lexeme}, Pos: pos}
}

// Float builds a Node holding a Float value; lexeme is stored verbatim.
func Float(pos uint64, lexeme string) *Node {
	return &Node{Value: &Value{Kind: FloatKind, Lexeme: lexeme}, Pos: pos}
}

// Str builds a Node holding a Str value; s must already be fully unescaped
// and unfolded.
func Str(pos uint64, s string) *Node {
	return &Node{Value: &Value{Kind: StrKind, Lexeme: s}, Pos: pos}
}

// Seq builds a Node holding a Seq value.
func Seq(pos uint64, children []*Node) *Node {
	return &Node{Value: &Value{Kind: SeqKind, Seq: children}, Pos: pos}
}

// Map builds a Node holding a Map value, in the given entry order. Callers
// are responsible for having already rejected duplicate keys: Map itself
// does not re-check.
func Map(pos uint64, entries []MapEntry) *Node {
	return &Node{Value: &Value{Kind: MapKind, Map: entries}, Pos: pos}
}

// Alias builds a Node holding an Alias placeholder, to be replaced by the
// resolver.
func Alias(pos uint64, name string) *Node {
	return &Node{Value: &Value{Kind: AliasKind, Lexeme: name}, Pos: pos}
}

// WithTag returns n decorated with tag. Nodes are immutable once published,
// so decoration always produces a new Node sharing the same Value.
func (n *Node) WithTag(tag string) *Node {
	cp := *n
	cp.Tag = tag
	return &cp
}

// WithAnchor returns n decorated with anchor.
func (n *Node) WithAnchor(anchor string) *Node {
	cp := *n
	cp.Anchor = anchor
	return &cp
}

// Int parses the stored Int lexeme, accepting the 0x/0o/0b/plain-decimal
// forms the grammar preserves. It is the "documented numeric converter"
// invariant 5 of the data model refers to.
func (n *Node) Int() (int64, error) {
	return resolve.ParseInt(n.Value.Lexeme)
}

// Float parses the stored Float lexeme, accepting decimal, scientific
// notation, and the .nan/.inf/-.inf spellings.
func (n *Node) Float() (float64, error) {
	return resolve.ParseFloat(n.Value.Lexeme)
}

// StructurallyEqual implements the Map-key uniqueness invariant: equality on
// Values only (position, tag and anchor are diagnostic metadata, not part of
// identity), with NaN treated as equal to NaN as the spec requires.
func StructurallyEqual(a, b *Node) bool {
	return valuesEqual(a.Value, b.Value)
}

func valuesEqual(a, b *Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NullKind:
		return true
	case BoolKind:
		return a.Bool == b.Bool
	case IntKind:
		return a.Lexeme == b.Lexeme
	case FloatKind:
		return floatLexemesEqual(a.Lexeme, b.Lexeme)
	case StrKind, AliasKind:
		return a.Lexeme == b.Lexeme
	case SeqKind:
		if len(a.Seq) != len(b.Seq) {
			return false
		}
		for i := range a.Seq {
			if !StructurallyEqual(a.Seq[i], b.Seq[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(a.Map) != len(b.Map) {
			return false
		}
		for i := range a.Map {
			if !StructurallyEqual(a.Map[i].Key, b.Map[i].Key) || !StructurallyEqual(a.Map[i].Value, b.Map[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func floatLexemesEqual(a, b string) bool {
	if a == b {
		return true
	}
	af, aerr := resolve.ParseFloat(a)
	bf, berr := resolve.ParseFloat(b)
	if aerr != nil || berr != nil {
		return false
	}
	if math.IsNaN(af) && math.IsNaN(bf) {
		return true
	}
	return af == bf
}

// ContainsKey reports whether entries already declares a key structurally
// equal to key, used by the block/flow map productions to reject duplicates
// as they are built.
func ContainsKey(entries []MapEntry, key *Node) bool {
	for _, e := range entries {
		if StructurallyEqual(e.Key, key) {
			return true
		}
	}
	return false
}

// Walk performs a depth-first pre-order traversal of n, invoking visit on
// every Node reached, n included. It is the shared machinery behind the
// anchor visitor (internal/anchor.Visit) and the position-monotonicity test
// property.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch n.Value.Kind {
	case SeqKind:
		for _, c := range n.Value.Seq {
			Walk(c, visit)
		}
	case MapKind:
		for _, e := range n.Value.Map {
			Walk(e.Key, visit)
			Walk(e.Value, visit)
		}
	}
}
