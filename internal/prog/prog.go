// Package prog lowers a resyntax AST to a flat instruction program (spec.md
// component C6) using Thompson-style construction with a classic
// patch-list builder: every partially-built fragment tracks a start PC and
// a list of "dangling" successor fields still waiting for their target, so
// concatenation, alternation, and repetition are each a small, local patch
// operation instead of a second pass over the tree.
package prog

import "github.com/threadvm/retwo/internal/charclass"

// PC indexes into a Program's instruction vector.
type PC uint32

// Op identifies an instruction's opcode, per spec.md §3.4.
type Op uint8

const (
	// OpChar consumes one code point equal to Rune.
	OpChar Op = iota
	// OpCharFold is the case-insensitive form of OpChar.
	OpCharFold
	// OpClass consumes one code point in the referenced class.
	OpClass
	// OpAnyChar consumes any code point, including '\n' (DOTALL `.`).
	OpAnyChar
	// OpAnyCharNotNL consumes any code point except '\n'.
	OpAnyCharNotNL
	// OpAssert is a zero-width test; it does not advance the input position.
	OpAssert
	// OpCapture records the current input position into a capture slot.
	OpCapture
	// OpAlt is a two-way epsilon split; Out1 is the preferred branch.
	OpAlt
	// OpJump is an unconditional epsilon transition.
	OpJump
	// OpMatch accepts.
	OpMatch
	// OpLook runs an independent sub-program as a zero-width lookaround
	// assertion. This opcode is the SPEC_FULL.md expansion covering
	// lookahead/lookbehind; it is not part of spec.md's base instruction
	// table, which scopes lookaround out of the base contract.
	OpLook
)

// AssertKind enumerates the zero-width tests an OpAssert instruction can
// perform, per spec.md §3.4.
type AssertKind uint8

const (
	AssertBeginText AssertKind = iota
	AssertEndText
	AssertBeginLine
	AssertEndLine
	AssertWordBoundary
	AssertNoWordBoundary
)

// LookAssertion carries an independently-compiled sub-program used as a
// lookaround test.
type LookAssertion struct {
	Sub     *Program
	Negate  bool
	Behind  bool // true for lookbehind, false for lookahead
	Width   int  // code points; only meaningful when Behind
}

// Inst is one program instruction. Only the fields relevant to Op are
// meaningful; see the Op constants above.
type Inst struct {
	Op Op

	Rune  rune        // OpChar, OpCharFold
	Class charclass.ID // OpClass

	Assert AssertKind // OpAssert
	Slot   int        // OpCapture: index into the capture slot array

	Out1 PC // OpChar/OpCharFold/OpClass/OpAnyChar/OpAnyCharNotNL/OpAssert/OpCapture/OpJump/OpLook: successor. OpAlt: preferred branch.
	Out2 PC // OpAlt: non-preferred branch.

	MatchID int // OpMatch

	Look *LookAssertion // OpLook
}

// AnchorHint records how a program's start is constrained, letting the
// executor skip the "try every start position" outer loop when possible,
// per spec.md §3.1/§4.2.
type AnchorHint uint8

const (
	Unanchored AnchorHint = iota
	BeginAnchored
	BothAnchored
)

// Program is the flat, index-addressed instruction vector produced by
// compiling one pattern, per spec.md §3.4's invariants: every non-Match
// instruction has in-range successor PCs, Alt.Out1 is the preferred branch.
type Program struct {
	Insts     []Inst
	Start     PC
	NumCaps   int // including implicit group 0
	Anchor    AnchorHint
	ClassPool *charclass.Pool
}

// NumSlots is the size a capture array must have to record every group's
// (start, end) pair.
func (p *Program) NumSlots() int {
	return p.NumCaps * 2
}
