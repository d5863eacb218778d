package prog

import (
	"testing"

	"github.com/threadvm/retwo/internal/arena"
	"github.com/threadvm/retwo/internal/rerr"
	"github.com/threadvm/retwo/internal/resyntax"
)

func mustCompile(t *testing.T, pattern string) *Program {
	t.Helper()
	root, ncap, err := resyntax.Parse(pattern, resyntax.Flags{}, arena.New())
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	p, err := Compile(pattern, root, ncap, DefaultConfig())
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return p
}

func TestCompileWrapsImplicitGroupZero(t *testing.T) {
	p := mustCompile(t, "abc")
	if p.NumCaps != 1 {
		t.Errorf("NumCaps = %d, want 1 (implicit group 0 only)", p.NumCaps)
	}
	if p.NumSlots() != 2 {
		t.Errorf("NumSlots() = %d, want 2", p.NumSlots())
	}
}

func TestCompileCountsExplicitGroups(t *testing.T) {
	p := mustCompile(t, "(a)(b)")
	if p.NumCaps != 3 {
		t.Errorf("NumCaps = %d, want 3 (group 0 + two explicit groups)", p.NumCaps)
	}
}

func TestCompileEndsInMatch(t *testing.T) {
	p := mustCompile(t, "a")
	last := p.Insts[len(p.Insts)-1]
	if last.Op != OpMatch {
		t.Errorf("last instruction Op = %v, want OpMatch", last.Op)
	}
}

func TestCompileStartsWithCaptureZero(t *testing.T) {
	p := mustCompile(t, "a")
	start := p.Insts[p.Start]
	if start.Op != OpCapture || start.Slot != 0 {
		t.Errorf("start instruction = %+v, want OpCapture{Slot:0}", start)
	}
}

func TestCompileAnchorLiftingBeginAndEnd(t *testing.T) {
	p := mustCompile(t, `\Aabc\z`)
	if p.Anchor != BothAnchored {
		t.Errorf("Anchor = %v, want BothAnchored", p.Anchor)
	}
	// \A is lifted (redundant once the executor only seeds at position 0),
	// but \z must remain as a real OpAssert: nothing else in the executor
	// forces OpMatch to be reached only at the end of the subject.
	sawBeginText, sawEndText := false, false
	for _, inst := range p.Insts {
		if inst.Op == OpAssert {
			switch inst.Assert {
			case AssertBeginText:
				sawBeginText = true
			case AssertEndText:
				sawEndText = true
			}
		}
	}
	if sawBeginText {
		t.Error("lifted \\A should not also appear as an OpAssert instruction")
	}
	if !sawEndText {
		t.Error("\\z must remain as an OpAssert instruction, or matches won't be rejected before end of input")
	}
}

func TestCompileBareEndAnchorKeepsUnanchoredHint(t *testing.T) {
	// A trailing \z with no leading \A used to fall through liftAnchors to
	// Unanchored *and* silently drop the end assertion entirely. The hint
	// staying Unanchored is correct (the match can still start anywhere);
	// internal/pikevm's vm_test.go covers that the assertion itself survives.
	p := mustCompile(t, `abc\z`)
	if p.Anchor != Unanchored {
		t.Errorf("Anchor = %v, want Unanchored (no leading \\A)", p.Anchor)
	}
	sawEndText := false
	for _, inst := range p.Insts {
		if inst.Op == OpAssert && inst.Assert == AssertEndText {
			sawEndText = true
		}
	}
	if !sawEndText {
		t.Error("bare trailing \\z must still compile to an OpAssert instruction")
	}
}

func TestCompileAnchorLiftingBeginOnly(t *testing.T) {
	p := mustCompile(t, `\Aabc`)
	if p.Anchor != BeginAnchored {
		t.Errorf("Anchor = %v, want BeginAnchored", p.Anchor)
	}
}

func TestCompileUnanchoredByDefault(t *testing.T) {
	p := mustCompile(t, "abc")
	if p.Anchor != Unanchored {
		t.Errorf("Anchor = %v, want Unanchored", p.Anchor)
	}
}

func TestCompileClassPoolDedups(t *testing.T) {
	p := mustCompile(t, "[a-c][a-c]")
	if p.ClassPool.Len() != 1 {
		t.Errorf("ClassPool.Len() = %d, want 1 (two identical classes should share one entry)", p.ClassPool.Len())
	}
}

func TestCompileBackreferenceRejected(t *testing.T) {
	root, ncap, err := resyntax.Parse(`(a)\1`, resyntax.Flags{}, arena.New())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Compile(`(a)\1`, root, ncap, DefaultConfig())
	if err == nil {
		t.Fatal("expected backreference compilation to fail")
	}
	if rerr.KindOf(err) != rerr.Unsupported {
		t.Errorf("KindOf = %v, want Unsupported", rerr.KindOf(err))
	}
}

func TestCompileVariableWidthLookbehindRejected(t *testing.T) {
	root, ncap, err := resyntax.Parse(`(?<=a*)b`, resyntax.Flags{}, arena.New())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Compile(`(?<=a*)b`, root, ncap, DefaultConfig())
	if err == nil {
		t.Fatal("expected variable-width lookbehind to fail compilation")
	}
	if rerr.KindOf(err) != rerr.Unsupported {
		t.Errorf("KindOf = %v, want Unsupported", rerr.KindOf(err))
	}
}

func TestCompileFixedWidthLookbehindOK(t *testing.T) {
	p := mustCompile(t, `(?<=ab)c`)
	found := false
	for _, inst := range p.Insts {
		if inst.Op == OpLook {
			found = true
			if !inst.Look.Behind || inst.Look.Width != 2 {
				t.Errorf("LookAssertion = %+v, want Behind=true Width=2", inst.Look)
			}
		}
	}
	if !found {
		t.Fatal("expected an OpLook instruction")
	}
}

func TestCompileMaxProgramSizeEnforced(t *testing.T) {
	root, ncap, err := resyntax.Parse(`a{900}`, resyntax.Flags{}, arena.New())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Compile(`a{900}`, root, ncap, Config{MaxProgramSize: 10})
	if err == nil {
		t.Fatal("expected program-size cap to be enforced")
	}
	if rerr.KindOf(err) != rerr.ProgramTooLarge {
		t.Errorf("KindOf = %v, want ProgramTooLarge", rerr.KindOf(err))
	}
}

func TestCompileGreedyStarPrefersConsuming(t *testing.T) {
	p := mustCompile(t, "a*")
	// find the OpAlt compiled for the star; Out1 is documented as the
	// preferred branch, and greedy should prefer consuming another 'a'.
	for _, inst := range p.Insts {
		if inst.Op == OpAlt {
			pref := p.Insts[inst.Out1]
			if pref.Op != OpChar {
				t.Errorf("greedy a*: preferred branch Op = %v, want OpChar", pref.Op)
			}
			return
		}
	}
	t.Fatal("expected an OpAlt instruction for a*")
}

func TestCompileLazyStarPrefersSkipping(t *testing.T) {
	p := mustCompile(t, "a*?")
	for i, inst := range p.Insts {
		if inst.Op == OpAlt {
			pref := p.Insts[inst.Out1]
			if pref.Op == OpChar {
				t.Errorf("lazy a*?: preferred branch at %d should skip consuming, got OpChar", i)
			}
			return
		}
	}
	t.Fatal("expected an OpAlt instruction for a*?")
}

func TestCompileJumpChainsCollapsed(t *testing.T) {
	p := mustCompile(t, "(?:)a")
	for _, inst := range p.Insts {
		if inst.Op == OpJump {
			if p.Insts[inst.Out1].Op == OpJump {
				t.Error("resolveJumpChains should collapse chains of OpJump to a single hop")
			}
		}
	}
}

func TestCompileCountedRepeatExpandsCopies(t *testing.T) {
	p1 := mustCompile(t, "a{3}")
	p2 := mustCompile(t, "aaa")
	if len(p1.Insts) != len(p2.Insts) {
		t.Errorf("a{3} compiled to %d instructions, want same shape as aaa (%d)", len(p1.Insts), len(p2.Insts))
	}
}
