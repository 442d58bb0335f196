package yaml

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlcursor/yaml/internal/anchor"
	"github.com/yamlcursor/yaml/internal/emitter"
)

func TestParseTopLevelDocumentStream(t *testing.T) {
	src := "---\na: 1\n---\nb: 2\n"
	docs, _, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Value.Map[0].Key.Value.Lexeme)
	assert.Equal(t, "b", docs[1].Value.Map[0].Key.Value.Lexeme)
}

func TestParseResolvesAliasesByDefault(t *testing.T) {
	src := "top: &a 1\nuse: *a\n"
	docs, table, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	m := docs[0]
	assert.Equal(t, IntKind, m.Value.Map[1].Value.Value.Kind)
	assert.Equal(t, "1", m.Value.Map[1].Value.Value.Lexeme)

	_, ok := table.Lookup("a")
	assert.True(t, ok)
}

func TestParseWithResolverDepthForChainedAliases(t *testing.T) {
	src := "a: &x 1\nb: &y *x\nc: *y\n"
	docs, _, err := Parse([]byte(src), WithResolverDepth(2))
	require.NoError(t, err)
	c := docs[0].Value.Map[2].Value
	assert.Equal(t, "1", c.Value.Lexeme)
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	_, _, err := Parse([]byte(`{a: 1, a: 2}`))
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Error(), "line")
}

// Universal property: idempotent parse -> dump -> parse for a canonical
// subset with no anchors, no comments, clip chomping.
func TestIdempotentParseDumpParse(t *testing.T) {
	src := "a: 1\nb:\n  - x\n  - y\nc: z\n"
	docs, _, err := Parse([]byte(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, emitter.Write(&buf, docs[0]))

	docs2, _, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, StructurallyEqual(docs[0], docs2[0]))
}

func TestAnchorResolutionIdempotent(t *testing.T) {
	src := "a: &x 1\nb: *x\n"
	_, table1, err := Parse([]byte(src), WithResolverDepth(1))
	require.NoError(t, err)

	table2, err := anchor.Resolve(table1, 1)
	require.NoError(t, err)

	bound1, ok := table1.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "1", bound1.Value.Lexeme)
	bound2, ok := table2.Lookup("x")
	require.True(t, ok)
	assert.True(t, StructurallyEqual(bound1, bound2))
}
