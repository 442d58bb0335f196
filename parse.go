package yaml

import (
	"github.com/yamlcursor/yaml/internal/anchor"
	"github.com/yamlcursor/yaml/internal/parser"
)

// config holds the options Parse recognizes; it is never exposed directly,
// only built up through functional Options, mirroring the small
// constructor-function style the teacher's event builders use.
type config struct {
	startPosition int
	resolverDepth int
}

// Option configures a Parse call.
type Option func(*config)

// WithStartPosition sets the cursor's initial offset into data. pos must
// land on a UTF-8 boundary; Parse does not validate this.
func WithStartPosition(pos uint64) Option {
	return func(c *config) { c.startPosition = int(pos) }
}

// WithResolverDepth bounds the longest alias chain Resolve will follow.
// The default is 1; pass a larger value for documents with deeper anchor
// chains.
func WithResolverDepth(depth int) Option {
	return func(c *config) { c.resolverDepth = depth }
}

// Parse parses data as a stream of YAML 1.2 documents and resolves every
// alias reachable from any of them against the anchor table gathered along
// the way. It returns one Node per document, the resolved anchor table, or
// the first SyntaxError encountered (an alias that cannot be resolved is
// returned as an internal/anchor UnresolvedAliasError).
func Parse(data []byte, opts ...Option) ([]*Node, *AnchorTable, error) {
	cfg := config{resolverDepth: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	docs, anchors, err := parser.Parse(data, cfg.startPosition)
	if err != nil {
		return nil, nil, fromCursorError(err, data)
	}

	resolved, err := anchor.Resolve(anchors, cfg.resolverDepth)
	if err != nil {
		return nil, nil, err
	}

	out := make([]*Node, len(docs))
	for i, doc := range docs {
		n, err := anchor.Substitute(doc, resolved)
		if err != nil {
			return nil, nil, err
		}
		out[i] = n
	}
	return out, resolved, nil
}
