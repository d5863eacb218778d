package pikevm

import (
	"github.com/threadvm/retwo/internal/prog"
	"github.com/threadvm/retwo/internal/runeio"
)

// testLook evaluates an OpLook assertion at byte offset i: does look.Sub
// match, anchored, starting exactly at the appropriate window boundary.
// Lookahead anchors at i; lookbehind first walks back look.Width code
// points and anchors there, relying on the compiler (prog.compileLook, via
// resyntax.FixedWidth) having already rejected any lookbehind whose inner
// expression isn't fixed-width, so a successful sub-match is guaranteed to
// end exactly at i.
func (m *vm) testLook(look *prog.LookAssertion, i int) bool {
	var matched bool
	if look.Behind {
		start, ok := backOffset(m.subject, i, look.Width)
		matched = ok && matchAnchored(look.Sub, m.subject, start)
	} else {
		matched = matchAnchored(look.Sub, m.subject, i)
	}
	if look.Negate {
		return !matched
	}
	return matched
}

// backOffset walks n code points backward from i, reporting the resulting
// byte offset, or ok=false if the subject doesn't have n whole code points
// available before i.
func backOffset(subject []byte, i, n int) (int, bool) {
	pos := i
	for k := 0; k < n; k++ {
		_, size, ok := runeio.DecodePrev(subject, pos)
		if !ok {
			return 0, false
		}
		pos -= size
	}
	return pos, true
}

// matchAnchored reports whether p matches some prefix of subject starting
// exactly at start; used for both lookahead and lookbehind, neither of
// which exposes captures to the enclosing match.
func matchAnchored(p *prog.Program, subject []byte, start int) bool {
	m := newVM(p, subject)
	found, _, _ := m.search(p.Start, start, false, Options{})
	return found
}
