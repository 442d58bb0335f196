package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yamlcursor/yaml/internal/resolve"
)

// crossCheckInts and crossCheckFloats are the shared scalar corpus used to cross-check this
// package's hand-rolled numeric lexeme handling against yaml.v3's own
// Unmarshal, grounded on the comparison role the teacher's
// fuzz/fuzz_test.go testData corpus played against the same reference
// library.
var crossCheckInts = []string{
	"0", "-0", "123", "-321", "0x1A", "-0x1A", "0o17", "4294967296",
}

var crossCheckFloats = []string{
	"685.23015", "-685.23015", "6.8523e+2", "0.0", "-0.0",
}

func TestCrossCheckIntsAgainstYAMLv3(t *testing.T) {
	for _, lexeme := range crossCheckInts {
		lexeme := lexeme
		t.Run(lexeme, func(t *testing.T) {
			var want int64
			require.NoError(t, yamlv3.Unmarshal([]byte(lexeme), &want))
			got, err := resolve.ParseInt(lexeme)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCrossCheckFloatsAgainstYAMLv3(t *testing.T) {
	for _, lexeme := range crossCheckFloats {
		lexeme := lexeme
		t.Run(lexeme, func(t *testing.T) {
			var want float64
			require.NoError(t, yamlv3.Unmarshal([]byte(lexeme), &want))
			got, err := resolve.ParseFloat(lexeme)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9)
		})
	}
}

func TestCrossCheckDocumentShapeAgainstYAMLv3(t *testing.T) {
	src := []byte("a: 1\nb:\n  - x\n  - y\n")

	var want map[string]interface{}
	require.NoError(t, yamlv3.Unmarshal(src, &want))

	docs, _, err := Parse(src, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	got := docs[0]
	require.Equal(t, 2, len(got.Value.Map))
	assert.Equal(t, "a", got.Value.Map[0].Key.Value.Lexeme)
	assert.Equal(t, "b", got.Value.Map[1].Key.Value.Lexeme)
	assert.Len(t, got.Value.Map[1].Value.Value.Seq, len(want["b"].([]interface{})))
}
