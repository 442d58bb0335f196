package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func TestAdvanceIfOne(t *testing.T) {
	c := New([]byte("7x"))
	require.NoError(t, c.AdvanceIf(isDigit, One()))
	assert.Equal(t, 1, c.Pos())
	c.Forward()
	require.Error(t, c.AdvanceIf(isDigit, One()))
	assert.Equal(t, 1, c.Pos(), "mismatch must rewind to eaten")
}

func TestAdvanceIfMore(t *testing.T) {
	c := New([]byte("123abc"))
	require.NoError(t, c.AdvanceIf(isDigit, More(1)))
	assert.Equal(t, "123", c.Text())
}

func TestAdvanceIfMoreZeroAllowsEmpty(t *testing.T) {
	c := New([]byte("abc"))
	require.NoError(t, c.AdvanceIf(isDigit, More(0)))
	assert.Equal(t, 0, c.Pos())
}

func TestAdvanceIfRange(t *testing.T) {
	c := New([]byte("1234"))
	require.NoError(t, c.AdvanceIf(isDigit, Range(1, 2)))
	assert.Equal(t, 2, c.Pos())
}

func TestAdvanceIfRangeBelowMinFails(t *testing.T) {
	c := New([]byte("1abc"))
	require.Error(t, c.AdvanceIf(isDigit, Range(2, 3)))
	assert.Equal(t, 0, c.Pos())
}

func TestSymbolSeqBacktracksOnPartialMatch(t *testing.T) {
	c := New([]byte("nope"))
	require.Error(t, c.SymbolSeq([]byte("null")))
	assert.Equal(t, 0, c.Pos())
}

func TestCheckpointRestoresEaten(t *testing.T) {
	c := New([]byte("ab"))
	c.Forward()
	require.NoError(t, c.Symbol('a'))
	err := c.Checkpoint(func() error {
		return c.Symbol('b')
	})
	require.NoError(t, err)
	assert.Equal(t, "ab", c.Text(), "eaten window should span both symbols after checkpoint restores it")
}

func TestConsumeKeepsIndicatorAbsolute(t *testing.T) {
	c := New([]byte("aaaa"))
	require.NoError(t, c.AdvanceIf(IsIn([]byte("a")), Range(1, 2)))
	c.Consume()
	assert.Equal(t, uint64(2), c.Indicator())
	require.NoError(t, c.AdvanceIf(IsIn([]byte("a")), More(0)))
	assert.Equal(t, uint64(4), c.Indicator())
}

func TestNotInExcludesSet(t *testing.T) {
	pred := NotIn([]byte(":{}[] \n\r"))
	assert.True(t, pred('x'))
	assert.False(t, pred(':'))
}
