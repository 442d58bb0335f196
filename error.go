package yaml

import (
	"bytes"
	"fmt"

	"github.com/yamlcursor/yaml/internal/cursor"
)

// SyntaxError reports a position in the document where no grammar
// alternative applies and the parse could not continue. It is the error
// kind Parse returns for malformed input; an alias that cannot be resolved
// is reported as an internal/anchor UnresolvedAliasError instead. The
// recoverable-mismatch channel used internally by the grammar never escapes
// this package.
type SyntaxError struct {
	Name string
	Pos  uint64

	source []byte
}

func (e *SyntaxError) Error() string {
	if e.source == nil {
		return fmt.Sprintf("yaml: %s at byte %d", e.Name, e.Pos)
	}
	line, col := lineCol(e.source, e.Pos)
	return fmt.Sprintf("yaml: %s (line %d:%d)\n%s", e.Name, line, col, excerpt(e.source, e.Pos, col))
}

func lineCol(source []byte, pos uint64) (line, col int) {
	line = 1
	col = 1
	for i := 0; i < int(pos) && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func excerpt(source []byte, pos uint64, col int) string {
	start := bytes.LastIndexByte(source[:min(int(pos), len(source))], '\n') + 1
	end := len(source)
	if i := bytes.IndexByte(source[start:], '\n'); i >= 0 {
		end = start + i
	}
	caret := bytes.Repeat([]byte(" "), max(col-1, 0))
	return fmt.Sprintf("%s\n%s^", source[start:end], caret)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func fromCursorError(err error, source []byte) error {
	if err == nil {
		return nil
	}
	if te, ok := err.(*cursor.TerminateError); ok {
		return &SyntaxError{Name: te.Name, Pos: te.Pos, source: source}
	}
	return err
}
