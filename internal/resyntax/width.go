package resyntax

// FixedWidth returns the number of code points n always consumes, and true
// if that width is the same on every path through n. It is used to enforce
// spec.md §9's Open Question resolution: lookbehind requires a fixed-width
// inner expression, and variable-width lookbehind must be rejected with
// UNSUPPORTED at compile time rather than silently mismeasured.
func FixedWidth(n *Node) (width int, ok bool) {
	switch n.Op {
	case OpEmpty, OpBeginLine, OpEndLine, OpBeginText, OpEndText, OpWordBoundary, OpNoWordBoundary:
		return 0, true
	case OpLiteral:
		return len(n.Rune), true
	case OpCharClass, OpAnyChar, OpAnyCharNotNL:
		return 1, true
	case OpCapture:
		return FixedWidth(n.Sub)
	case OpConcat:
		total := 0
		for _, c := range n.Children {
			w, ok := FixedWidth(c)
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	case OpAlternate:
		first, ok := FixedWidth(n.Children[0])
		if !ok {
			return 0, false
		}
		for _, c := range n.Children[1:] {
			w, ok := FixedWidth(c)
			if !ok || w != first {
				return 0, false
			}
		}
		return first, true
	case OpQuest, OpStar, OpPlus:
		return 0, false
	case OpRepeat:
		if n.Min != n.Max {
			return 0, false
		}
		w, ok := FixedWidth(n.Sub)
		if !ok {
			return 0, false
		}
		return w * n.Min, true
	case OpLookahead, OpNegLookahead, OpLookbehind, OpNegLookbehind:
		return 0, true
	default:
		return 0, false
	}
}
