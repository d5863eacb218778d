// Package arena provides the per-pattern bookkeeping object for one
// compilation. It counts the AST nodes the parser creates, which is what
// PatternStats.ASTNodes reports.
//
// Arena does not allocate or hand out memory: AST nodes, classes and
// program storage are ordinary Go values owned by the garbage collector and
// are reclaimed when the compiled pattern becomes unreachable. Nodes the
// compiler creates internally are not counted.
package arena

// Arena counts the AST nodes created during one pattern compilation.
//
// It is not safe for concurrent use; a single Compile call owns one Arena
// for the lifetime of parsing and NFA construction.
type Arena struct {
	nodes int // number of AST nodes handed out, for PatternStats
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{}
}

// NodeCount returns how many AST nodes have been allocated from this arena.
func (a *Arena) NodeCount() int {
	return a.nodes
}

// Track records that n more AST nodes were allocated. Callers invoke this
// alongside constructing a node rather than allocating through the arena
// directly, since Go's garbage collector -- not the arena -- owns the
// memory; Track exists so PatternStats.ASTNodes reports an accurate count
// without threading a counter through every AST constructor.
func (a *Arena) Track(n int) {
	a.nodes += n
}

// Reset clears the arena's bookkeeping so it can be reused for a fresh
// compilation. Reset does not and cannot reclaim previously allocated Go
// values; callers that want that must simply drop the Arena and let the
// garbage collector do its job -- this mirrors "freeing the arena releases
// everything in one step" for the node-count bookkeeping the arena owns.
func (a *Arena) Reset() {
	a.nodes = 0
}
