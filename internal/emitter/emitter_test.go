package emitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlcursor/yaml/internal/ast"
)

func TestWriteMapAndSeq(t *testing.T) {
	tree := ast.Map(0, []ast.MapEntry{
		{Key: ast.Str(0, "a"), Value: ast.Int(0, "1")},
		{Key: ast.Str(0, "b"), Value: ast.Seq(0, []*ast.Node{
			ast.Str(0, "x"),
			ast.Str(0, "y"),
		})},
	})
	var buf strings.Builder
	require.NoError(t, Write(&buf, tree))
	assert.Equal(t, "a: 1\nb: \n  - x\n  - y\n", buf.String())
}

func TestWriteMultilineScalarAsLiteralBlock(t *testing.T) {
	tree := ast.Map(0, []ast.MapEntry{
		{Key: ast.Str(0, "x"), Value: ast.Str(0, "aaa\nbbb")},
	})
	var buf strings.Builder
	require.NoError(t, Write(&buf, tree))
	assert.Equal(t, "x: |-\n  aaa\n  bbb\n", buf.String())
}

func TestWriteAlias(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Write(&buf, ast.Alias(0, "sub")))
	assert.Equal(t, "*sub\n", buf.String())
}

func TestWriteEmptyCollections(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Write(&buf, ast.Map(0, nil)))
	assert.Equal(t, "{}\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, ast.Seq(0, nil)))
	assert.Equal(t, "[]\n", buf.String())
}
