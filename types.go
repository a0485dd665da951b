package jumbf

// DefaultMaxDepth is the superbox nesting depth the streaming parsers
// permit when no explicit limit is supplied. The root superbox counts
// as depth 1.
const DefaultMaxDepth = 32

// parseOptions is the resolved option set for a streaming parse.
type parseOptions struct {
	maxDepth int
}

// ParseOpt adjusts streaming-parse behavior. Zero value means "use the
// defaults". When multiple options are passed the last one wins.
type ParseOpt struct {
	// MaxDepth caps superbox nesting. 0 selects DefaultMaxDepth;
	// negative values are treated as 0.
	MaxDepth int
}

func resolveOpts(opts []ParseOpt) parseOptions {
	p := parseOptions{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		if o.MaxDepth > 0 {
			p.maxDepth = o.MaxDepth
		}
	}
	return p
}
