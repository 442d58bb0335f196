package resolve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntForms(t *testing.T) {
	cases := map[string]int64{
		"123":         123,
		"-321":        -321,
		"0x1A":        26,
		"0o17":        15,
		"0b101":       5,
		"1_234_567":   1234567,
		"-0x10":       -16,
		"4294967296":  4294967296,
		"9223372036854775807": math.MaxInt64,
	}
	for lexeme, want := range cases {
		got, err := ParseInt(lexeme)
		require.NoError(t, err, lexeme)
		assert.Equal(t, want, got, lexeme)
	}
}

func TestParseIntRejectsGarbage(t *testing.T) {
	_, err := ParseInt("12x")
	assert.Error(t, err)
}

func TestParseFloatForms(t *testing.T) {
	f, err := ParseFloat("685.23015")
	require.NoError(t, err)
	assert.InDelta(t, 685.23015, f, 1e-9)

	f, err = ParseFloat("6.8523e+2")
	require.NoError(t, err)
	assert.InDelta(t, 685.23, f, 1e-9)

	f, err = ParseFloat(".inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, 1))

	f, err = ParseFloat("-.Inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, -1))

	f, err = ParseFloat(".NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))
}

func TestTagHandleExpansion(t *testing.T) {
	assert.Equal(t, "!!str", ShortTag("tag:yaml.org,2002:str"))
	assert.Equal(t, "tag:yaml.org,2002:str", LongTag("!!str"))
	assert.Equal(t, "custom", ShortTag("custom"))
}

func TestDefaultHandles(t *testing.T) {
	h := DefaultHandles()
	assert.Equal(t, "", h["!"])
	assert.Equal(t, "tag:yaml.org,2002:", h["!!"])
}
