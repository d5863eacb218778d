// Package litaccel is the boolean-only fast path for patterns that reduce to
// a pure alternation of fixed literals, e.g. `cat|dog|bird` or a single
// `needle`. It is grounded on the teacher's meta package (meta/compile.go's
// UseAhoCorasick strategy, meta/ismatch.go's isMatchAhoCorasick), which hands
// this exact shape of pattern to github.com/coregx/ahocorasick instead of
// the NFA/DFA engines.
//
// This package never reports a capture or an offset: it answers only "does
// this pattern occur somewhere in the subject", and only for patterns whose
// AST proves that question is equivalent to "does any of these literal byte
// strings occur somewhere in the subject" -- Unicode literals are included
// in that equivalence (as their UTF-8 bytes); case-folded literals, anchors
// and repetition are not.
// Restricting the fast path to this narrow, provably-equivalent shape is
// what keeps it from ever compromising correctness.
package litaccel

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/threadvm/retwo/internal/resyntax"
)

// Accelerator answers IsMatch queries for a pure-literal-alternation pattern
// without invoking the NFA executor.
type Accelerator struct {
	auto *ahocorasick.Automaton
}

// Build inspects root and returns an Accelerator plus true if root's AST is
// entirely built out of literal alternatives (OpLiteral, or OpAlternate of
// OpLiteral/OpEmpty), with no anchors, classes, or repetition -- the one
// shape where "the pattern matches somewhere" reduces exactly to
// "one of these byte strings occurs somewhere".
func Build(root *resyntax.Node) (*Accelerator, bool) {
	lits, ok := extractLiterals(root)
	if !ok || len(lits) == 0 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, l := range lits {
		builder.AddPattern(l)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Accelerator{auto: auto}, true
}

// IsMatch reports whether any extracted literal occurs in subject.
func (a *Accelerator) IsMatch(subject []byte) bool {
	return a.auto.IsMatch(subject)
}

func extractLiterals(n *resyntax.Node) ([][]byte, bool) {
	switch n.Op {
	case resyntax.OpLiteral:
		if n.FoldCase {
			// A case-folded literal isn't one fixed byte string; expanding
			// every fold combination is more patterns than the automaton
			// buys back, so this shape falls back to the NFA.
			return nil, false
		}
		return [][]byte{literalBytes(n)}, true
	case resyntax.OpEmpty:
		return [][]byte{{}}, true
	case resyntax.OpAlternate:
		var out [][]byte
		for _, c := range n.Children {
			lits, ok := extractLiterals(c)
			if !ok {
				return nil, false
			}
			out = append(out, lits...)
		}
		return out, true
	default:
		return nil, false
	}
}

func literalBytes(n *resyntax.Node) []byte {
	buf := make([]byte, 0, len(n.Rune)*2)
	var tmp [utf8.UTFMax]byte
	for _, r := range n.Rune {
		size := utf8.EncodeRune(tmp[:], r)
		buf = append(buf, tmp[:size]...)
	}
	return buf
}
