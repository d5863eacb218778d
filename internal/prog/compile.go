package prog

import (
	"github.com/threadvm/retwo/internal/charclass"
	"github.com/threadvm/retwo/internal/rerr"
	"github.com/threadvm/retwo/internal/resyntax"
)

// Config controls compilation limits, mirroring the teacher's
// CompilerConfig/meta.Config pattern of an explicit, validated struct with
// sensible defaults (meta/config.go, nfa/compile.go's CompilerConfig).
type Config struct {
	// MaxProgramSize caps the instruction count; exceeding it aborts
	// compilation with PROGRAM_TOO_LARGE, per spec.md §4.2.
	MaxProgramSize int
}

// DefaultConfig returns the spec's documented default cap of 100,000
// instructions.
func DefaultConfig() Config {
	return Config{MaxProgramSize: 100_000}
}

func (c Config) withDefaults() Config {
	if c.MaxProgramSize <= 0 {
		c.MaxProgramSize = 100_000
	}
	return c
}

// patch is a not-yet-known successor: instruction idx's Out1 (field==0) or
// Out2 (field==1) field, waiting for a target PC.
type patch struct {
	idx   PC
	field int
}

// frag is a partially built program fragment: its entry PC, and the list of
// dangling successor fields still needing a target.
type frag struct {
	start   PC
	patches []patch
}

type compiler struct {
	pattern string // original pattern text, for error messages
	cfg     Config
	insts   []Inst
	pool    *charclass.Pool
}

// Compile lowers an AST (as produced by resyntax.Parse) into a Program.
// numCaps is the explicit capture-group count (not counting group 0, the
// overall match, which this function wraps the root in automatically per
// spec.md §4.2 "Root is wrapped in an implicit capture group 0").
func Compile(pattern string, root *resyntax.Node, numCaps int, cfg Config) (*Program, error) {
	c := &compiler{pattern: pattern, cfg: cfg.withDefaults(), pool: charclass.NewPool()}

	anchor, body := liftAnchors(root)

	bodyFrag, err := c.compileNode(body)
	if err != nil {
		return nil, err
	}

	capStart := c.add(Inst{Op: OpCapture, Slot: 0})
	c.patchTo(capStart, bodyFrag.start)
	capEnd := c.add(Inst{Op: OpCapture, Slot: 1})
	c.patchFrag(bodyFrag, capEnd)

	matchIdx := c.add(Inst{Op: OpMatch, MatchID: 0})
	c.patchTo(capEnd, matchIdx)

	prog := &Program{
		Insts:     c.insts,
		Start:     capStart,
		NumCaps:   numCaps + 1,
		Anchor:    anchor,
		ClassPool: c.pool,
	}
	resolveJumpChains(prog)
	return prog, nil
}

// liftAnchors detects a leading \A (spec.md §4.2 "Anchor lifting") in a
// top-level Concat (or a bare \A node) and strips it, since the executor's
// seed-thread loop already enforces "start only at position 0" once
// re-seeding is disabled (internal/pikevm/vm.go) -- the assertion would be
// redundant, never false, once that structural guarantee holds.
//
// A trailing \z/$ is NOT stripped: unlike the begin case, nothing in the
// executor structurally forces OpMatch to be reached only at i == len
// (search's match-latch fires at whatever position a thread reaches
// OpMatch), so the assertion must stay in the compiled program as an
// ordinary OpAssert, the same way OpBeginLine/OpEndLine already do. This
// function only peeks at whether the body ends in \z to report the
// AnchorHint; it never removes that node.
func liftAnchors(root *resyntax.Node) (AnchorHint, *resyntax.Node) {
	n := root
	begin := false

	if n.Op == resyntax.OpBeginText {
		n = emptyNode()
		begin = true
	} else if n.Op == resyntax.OpConcat {
		children := append([]*resyntax.Node(nil), n.Children...)
		if len(children) > 0 && children[0].Op == resyntax.OpBeginText {
			children = children[1:]
			begin = true
			n = concatOf(children)
		}
	}

	end := endsWithEndText(n)

	switch {
	case begin && end:
		return BothAnchored, n
	case begin:
		return BeginAnchored, n
	default:
		return Unanchored, n
	}
}

// endsWithEndText reports whether n is, or ends in a top-level Concat with,
// an OpEndText node -- used only to compute the AnchorHint; the node itself
// stays in the tree and compiles to a normal OpAssert.
func endsWithEndText(n *resyntax.Node) bool {
	if n.Op == resyntax.OpEndText {
		return true
	}
	if n.Op == resyntax.OpConcat && len(n.Children) > 0 {
		return n.Children[len(n.Children)-1].Op == resyntax.OpEndText
	}
	return false
}

func emptyNode() *resyntax.Node {
	return &resyntax.Node{Op: resyntax.OpEmpty}
}

func concatOf(children []*resyntax.Node) *resyntax.Node {
	switch len(children) {
	case 0:
		return emptyNode()
	case 1:
		return children[0]
	default:
		return &resyntax.Node{Op: resyntax.OpConcat, Children: children}
	}
}

// add appends an instruction and returns its PC. MaxProgramSize is enforced
// by checkSize, which compileNode calls before compiling each node.
func (c *compiler) add(inst Inst) PC {
	idx := PC(len(c.insts))
	c.insts = append(c.insts, inst)
	return idx
}

func (c *compiler) patchTo(idx PC, target PC) {
	c.insts[idx].Out1 = target
}

// patchFrag resolves every dangling patch in f to target.
func (c *compiler) patchFrag(f frag, target PC) {
	for _, p := range f.patches {
		if p.field == 0 {
			c.insts[p.idx].Out1 = target
		} else {
			c.insts[p.idx].Out2 = target
		}
	}
}

func (c *compiler) checkSize() error {
	if len(c.insts) > c.cfg.MaxProgramSize {
		return rerr.NewCompileError(rerr.ProgramTooLarge, c.pattern, -1,
			"compiled program exceeds %d instructions", c.cfg.MaxProgramSize)
	}
	return nil
}

func (c *compiler) compileNode(n *resyntax.Node) (frag, error) {
	if err := c.checkSize(); err != nil {
		return frag{}, err
	}
	switch n.Op {
	case resyntax.OpEmpty:
		idx := c.add(Inst{Op: OpJump})
		return frag{start: idx, patches: []patch{{idx, 0}}}, nil

	case resyntax.OpLiteral:
		return c.compileLiteral(n), nil

	case resyntax.OpCharClass:
		id := c.pool.Intern(n.Class)
		idx := c.add(Inst{Op: OpClass, Class: id})
		return frag{start: idx, patches: []patch{{idx, 0}}}, nil

	case resyntax.OpAnyChar:
		idx := c.add(Inst{Op: OpAnyChar})
		return frag{start: idx, patches: []patch{{idx, 0}}}, nil

	case resyntax.OpAnyCharNotNL:
		idx := c.add(Inst{Op: OpAnyCharNotNL})
		return frag{start: idx, patches: []patch{{idx, 0}}}, nil

	case resyntax.OpBeginText:
		return c.compileAssert(AssertBeginText), nil
	case resyntax.OpEndText:
		return c.compileAssert(AssertEndText), nil
	case resyntax.OpBeginLine:
		return c.compileAssert(AssertBeginLine), nil
	case resyntax.OpEndLine:
		return c.compileAssert(AssertEndLine), nil
	case resyntax.OpWordBoundary:
		return c.compileAssert(AssertWordBoundary), nil
	case resyntax.OpNoWordBoundary:
		return c.compileAssert(AssertNoWordBoundary), nil

	case resyntax.OpCapture:
		return c.compileCapture(n)

	case resyntax.OpConcat:
		return c.compileConcat(n)

	case resyntax.OpAlternate:
		return c.compileAlternate(n)

	case resyntax.OpStar:
		return c.compileStar(n)
	case resyntax.OpPlus:
		return c.compilePlus(n)
	case resyntax.OpQuest:
		return c.compileQuest(n)
	case resyntax.OpRepeat:
		return c.compileRepeat(n)

	case resyntax.OpLookahead:
		return c.compileLook(n.Sub, false, false)
	case resyntax.OpNegLookahead:
		return c.compileLook(n.Sub, true, false)
	case resyntax.OpLookbehind:
		return c.compileLook(n.Sub, false, true)
	case resyntax.OpNegLookbehind:
		return c.compileLook(n.Sub, true, true)

	case resyntax.OpBackref:
		return frag{}, rerr.NewCompileError(rerr.Unsupported, c.pattern, -1,
			"backreferences are not supported by a linear-time NFA engine")

	default:
		return frag{}, rerr.NewCompileError(rerr.Parse, c.pattern, -1, "unknown AST op %v", n.Op)
	}
}

// repeatWrap builds a synthetic Star/Plus/Quest node around sub for
// expanding the unbounded or trailing-optional part of a counted
// repetition. It is compiler-internal scaffolding, never seen by the
// parser or exposed in PatternStats.
func repeatWrap(op resyntax.Op, sub *resyntax.Node, greedy bool) *resyntax.Node {
	return &resyntax.Node{Op: op, Sub: sub, Greedy: greedy}
}

func (c *compiler) compileAssert(kind AssertKind) frag {
	idx := c.add(Inst{Op: OpAssert, Assert: kind})
	return frag{start: idx, patches: []patch{{idx, 0}}}
}

func (c *compiler) compileLiteral(n *resyntax.Node) frag {
	op := OpChar
	if n.FoldCase {
		op = OpCharFold
	}
	if len(n.Rune) == 0 {
		idx := c.add(Inst{Op: OpJump})
		return frag{start: idx, patches: []patch{{idx, 0}}}
	}
	first := c.add(Inst{Op: op, Rune: n.Rune[0]})
	prev := first
	for _, r := range n.Rune[1:] {
		next := c.add(Inst{Op: op, Rune: r})
		c.patchTo(prev, next)
		prev = next
	}
	return frag{start: first, patches: []patch{{prev, 0}}}
}

func (c *compiler) compileCapture(n *resyntax.Node) (frag, error) {
	sub, err := c.compileNode(n.Sub)
	if err != nil {
		return frag{}, err
	}
	start := c.add(Inst{Op: OpCapture, Slot: 2 * n.CapIndex})
	c.patchTo(start, sub.start)
	end := c.add(Inst{Op: OpCapture, Slot: 2*n.CapIndex + 1})
	c.patchFrag(sub, end)
	return frag{start: start, patches: []patch{{end, 0}}}, nil
}

func (c *compiler) compileConcat(n *resyntax.Node) (frag, error) {
	first, err := c.compileNode(n.Children[0])
	if err != nil {
		return frag{}, err
	}
	for _, child := range n.Children[1:] {
		next, err := c.compileNode(child)
		if err != nil {
			return frag{}, err
		}
		c.patchFrag(first, next.start)
		first = frag{start: first.start, patches: next.patches}
	}
	return first, nil
}

// compileAlternate builds a right-leaning chain of OpAlt instructions so
// earlier alternatives are always preferred over later ones, per spec.md
// §4.2 "Alt(a,b)... preference" and the leftmost-first requirement (§8 S9).
func (c *compiler) compileAlternate(n *resyntax.Node) (frag, error) {
	frags := make([]frag, len(n.Children))
	for i, child := range n.Children {
		f, err := c.compileNode(child)
		if err != nil {
			return frag{}, err
		}
		frags[i] = f
	}
	// Fold right-to-left: last two combine first, then prepend leftward, so
	// Out1 of each Alt is the earlier alternative.
	acc := frags[len(frags)-1]
	for i := len(frags) - 2; i >= 0; i-- {
		left := frags[i]
		idx := c.add(Inst{Op: OpAlt, Out1: left.start, Out2: acc.start})
		patches := append(append([]patch(nil), left.patches...), acc.patches...)
		acc = frag{start: idx, patches: patches}
	}
	return acc, nil
}

func (c *compiler) compileStar(n *resyntax.Node) (frag, error) {
	altIdx := c.add(Inst{Op: OpAlt})
	sub, err := c.compileNode(n.Sub)
	if err != nil {
		return frag{}, err
	}
	c.patchFrag(sub, altIdx)
	if n.Greedy {
		c.insts[altIdx].Out1 = sub.start
		return frag{start: altIdx, patches: []patch{{altIdx, 1}}}, nil
	}
	c.insts[altIdx].Out2 = sub.start
	return frag{start: altIdx, patches: []patch{{altIdx, 0}}}, nil
}

func (c *compiler) compilePlus(n *resyntax.Node) (frag, error) {
	sub, err := c.compileNode(n.Sub)
	if err != nil {
		return frag{}, err
	}
	altIdx := c.add(Inst{Op: OpAlt})
	c.patchFrag(sub, altIdx)
	if n.Greedy {
		c.insts[altIdx].Out1 = sub.start
		return frag{start: sub.start, patches: []patch{{altIdx, 1}}}, nil
	}
	c.insts[altIdx].Out2 = sub.start
	return frag{start: sub.start, patches: []patch{{altIdx, 0}}}, nil
}

func (c *compiler) compileQuest(n *resyntax.Node) (frag, error) {
	altIdx := c.add(Inst{Op: OpAlt})
	sub, err := c.compileNode(n.Sub)
	if err != nil {
		return frag{}, err
	}
	if n.Greedy {
		c.insts[altIdx].Out1 = sub.start
		return frag{start: altIdx, patches: append(append([]patch(nil), sub.patches...), patch{altIdx, 1})}, nil
	}
	c.insts[altIdx].Out2 = sub.start
	return frag{start: altIdx, patches: append(append([]patch(nil), sub.patches...), patch{altIdx, 0})}, nil
}

// compileRepeat expands {m,n} into m mandatory copies followed by (n-m)
// optional copies, or a trailing Star/Plus when unbounded, per spec.md
// §4.2's Repeat rule.
func (c *compiler) compileRepeat(n *resyntax.Node) (frag, error) {
	if n.Min == 0 && n.Max == 0 {
		idx := c.add(Inst{Op: OpJump})
		return frag{start: idx, patches: []patch{{idx, 0}}}, nil
	}

	var result *frag
	appendFrag := func(f frag) {
		if result == nil {
			result = &frag{start: f.start, patches: f.patches}
			return
		}
		c.patchFrag(*result, f.start)
		result.patches = f.patches
	}

	mandatory := n.Min
	if n.Max == -1 && n.Min == 0 {
		f, err := c.compileStar(repeatWrap(resyntax.OpStar, n.Sub, n.Greedy))
		if err != nil {
			return frag{}, err
		}
		return f, nil
	}
	if n.Max == -1 {
		mandatory = n.Min - 1
	}
	for i := 0; i < mandatory; i++ {
		f, err := c.compileNode(n.Sub)
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
	}
	if n.Max == -1 {
		f, err := c.compilePlus(repeatWrap(resyntax.OpPlus, n.Sub, n.Greedy))
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
		return *result, nil
	}
	for i := mandatory; i < n.Max; i++ {
		f, err := c.compileQuest(repeatWrap(resyntax.OpQuest, n.Sub, n.Greedy))
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
	}
	if result == nil {
		idx := c.add(Inst{Op: OpJump})
		return frag{start: idx, patches: []patch{{idx, 0}}}, nil
	}
	return *result, nil
}

// compileLook compiles a lookaround assertion's inner expression as an
// independent sub-program and emits an OpLook instruction referencing it.
// Variable-width lookbehind is rejected with UNSUPPORTED here, per
// spec.md §9's Open Question resolution.
func (c *compiler) compileLook(sub *resyntax.Node, negate, behind bool) (frag, error) {
	width := 0
	if behind {
		w, ok := resyntax.FixedWidth(sub)
		if !ok {
			return frag{}, rerr.NewCompileError(rerr.Unsupported, c.pattern, -1,
				"variable-width lookbehind is not supported")
		}
		width = w
	}
	subProg, err := Compile(c.pattern, sub, sub.NumCaptures(), c.cfg)
	if err != nil {
		return frag{}, err
	}
	idx := c.add(Inst{Op: OpLook, Look: &LookAssertion{Sub: subProg, Negate: negate, Behind: behind, Width: width}})
	return frag{start: idx, patches: []patch{{idx, 0}}}, nil
}

// resolveJumpChains collapses runs of OpJump into a single hop, per
// spec.md §4.2 "Dead-code and epsilon coalescing".
func resolveJumpChains(p *Program) {
	resolve := func(pc PC) PC {
		seen := map[PC]bool{}
		for p.Insts[pc].Op == OpJump && !seen[pc] {
			seen[pc] = true
			pc = p.Insts[pc].Out1
		}
		return pc
	}
	for i := range p.Insts {
		switch p.Insts[i].Op {
		case OpJump:
			p.Insts[i].Out1 = resolve(p.Insts[i].Out1)
		case OpAlt:
			p.Insts[i].Out1 = resolve(p.Insts[i].Out1)
			p.Insts[i].Out2 = resolve(p.Insts[i].Out2)
			if p.Insts[i].Out1 == p.Insts[i].Out2 {
				p.Insts[i].Op = OpJump
			}
		case OpChar, OpCharFold, OpClass, OpAnyChar, OpAnyCharNotNL, OpAssert, OpCapture, OpLook:
			p.Insts[i].Out1 = resolve(p.Insts[i].Out1)
		}
	}
	p.Start = resolve(p.Start)
}
