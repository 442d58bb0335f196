package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlcursor/yaml/internal/anchor"
	"github.com/yamlcursor/yaml/internal/ast"
)

// S1 — flow JSON subset.
func TestFlowJSONSubset(t *testing.T) {
	docs, _, err := Parse([]byte(`{"a":"b","c":[123,321,1234567],"d":{}}`), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	m := docs[0]
	require.Equal(t, ast.MapKind, m.Value.Kind)
	require.Len(t, m.Value.Map, 3)
	assert.Equal(t, "a", m.Value.Map[0].Key.Value.Lexeme)
	assert.Equal(t, "b", m.Value.Map[0].Value.Value.Lexeme)

	c := m.Value.Map[1].Value
	require.Equal(t, ast.SeqKind, c.Value.Kind)
	require.Len(t, c.Value.Seq, 3)
	assert.Equal(t, "123", c.Value.Seq[0].Value.Lexeme)
	assert.Equal(t, "321", c.Value.Seq[1].Value.Lexeme)
	assert.Equal(t, "1234567", c.Value.Seq[2].Value.Lexeme)

	d := m.Value.Map[2].Value
	assert.Equal(t, ast.MapKind, d.Value.Kind)
	assert.Empty(t, d.Value.Map)
}

// S2 — block map with anchor and alias.
func TestBlockMapAnchorAlias(t *testing.T) {
	src := "- &seq\n  - a: &sub b\n  - a: *sub\n- *seq\n"
	docs, table, err := Parse([]byte(src), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	outer := docs[0]
	require.Equal(t, ast.SeqKind, outer.Value.Kind)
	require.Len(t, outer.Value.Seq, 2)
	assert.Equal(t, "seq", outer.Value.Seq[0].Anchor)
	assert.Equal(t, ast.AliasKind, outer.Value.Seq[1].Value.Kind)

	resolved, err := anchor.Resolve(table, 1)
	require.NoError(t, err)
	first, err := anchor.Substitute(outer.Value.Seq[0], resolved)
	require.NoError(t, err)
	second, err := anchor.Substitute(outer.Value.Seq[1], resolved)
	require.NoError(t, err)
	assert.True(t, ast.StructurallyEqual(first, second))
}

// S3 — folded scalar with chomping.
func TestFoldedScalarChomping(t *testing.T) {
	src := "x: >-\n  aaa\n  bbb\n\n  ccc\n"
	docs, _, err := Parse([]byte(src), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	m := docs[0]
	require.Len(t, m.Value.Map, 1)
	assert.Equal(t, "aaa bbb\nccc", m.Value.Map[0].Value.Value.Lexeme)
}

// S4 — complex key.
func TestComplexKey(t *testing.T) {
	src := "? - q\n  - r\n  - s\n: {1: 2, 3: 4}\n"
	docs, _, err := Parse([]byte(src), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	m := docs[0]
	require.Equal(t, ast.MapKind, m.Value.Kind)
	require.Len(t, m.Value.Map, 1)

	key := m.Value.Map[0].Key
	require.Equal(t, ast.SeqKind, key.Value.Kind)
	require.Len(t, key.Value.Seq, 3)
	assert.Equal(t, "q", key.Value.Seq[0].Value.Lexeme)
	assert.Equal(t, "r", key.Value.Seq[1].Value.Lexeme)
	assert.Equal(t, "s", key.Value.Seq[2].Value.Lexeme)

	value := m.Value.Map[0].Value
	require.Equal(t, ast.MapKind, value.Value.Kind)
	require.Len(t, value.Value.Map, 2)
}

// S5 — directives & tags.
func TestDirectivesAndTags(t *testing.T) {
	src := "%YAML 1.2\n%TAG !e! tag:example.org,2024:\n---\n!e!widget name: foo\n"
	docs, _, err := Parse([]byte(src), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	m := docs[0]
	require.Equal(t, ast.MapKind, m.Value.Kind)
	assert.Equal(t, "tag:example.org,2024:widget", m.Tag)
	require.Len(t, m.Value.Map, 1)
	assert.Equal(t, "name", m.Value.Map[0].Key.Value.Lexeme)
	assert.Equal(t, "foo", m.Value.Map[0].Value.Value.Lexeme)
}

// S6 — duplicate key rejection.
func TestDuplicateKeyRejected(t *testing.T) {
	_, _, err := Parse([]byte(`{a: 1, a: 2}`), 0)
	require.Error(t, err)
}

func TestPositionMonotonicity(t *testing.T) {
	src := "a: 1\nb:\n  - x\n  - y\nc: z\n"
	docs, _, err := Parse([]byte(src), 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var last uint64
	ast.Walk(docs[0], func(n *ast.Node) {
		assert.GreaterOrEqual(t, n.Pos, last)
		last = n.Pos
	})
}

func TestMapUniquenessRejectsDuplicateFlowKeys(t *testing.T) {
	_, _, err := Parse([]byte(`{x: 1, y: 2, x: 3}`), 0)
	require.Error(t, err)
}

func TestIndentStackReturnsToDocumentLevel(t *testing.T) {
	src := "a:\n  b:\n    c: 1\nd: 2\n"
	_, _, err := Parse([]byte(src), 0)
	require.NoError(t, err)
}

func TestLexemePreservation(t *testing.T) {
	docs, _, err := Parse([]byte(`n: 9223372036854775807`), 0)
	require.NoError(t, err)
	n := docs[0].Value.Map[0].Value
	require.Equal(t, ast.IntKind, n.Value.Kind)
	v, err := n.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), v)
}
