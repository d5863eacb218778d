package pikevm

import (
	"github.com/threadvm/retwo/internal/prog"
	"github.com/threadvm/retwo/internal/runeio"
	"github.com/threadvm/retwo/internal/udata"
)

// addThread recursively follows every epsilon transition out of pc (Jump,
// Alt, Capture, Assert, Look) and appends the consuming/terminal
// instructions it reaches to queue, in priority order. The generation stamp
// in m.seen guarantees each pc is visited at most once per position, which
// is what bounds the whole search to O(n*m): without it, patterns with
// nested stars could revisit the same pc exponentially often.
func (m *vm) addThread(queue *[]thread, pc prog.PC, caps capSlice, i int) {
	if m.seen[pc] == m.gen {
		return
	}
	m.seen[pc] = m.gen

	inst := &m.prog.Insts[pc]
	switch inst.Op {
	case prog.OpJump:
		m.addThread(queue, inst.Out1, caps, i)
	case prog.OpAlt:
		m.addThread(queue, inst.Out1, caps.clone(), i)
		m.addThread(queue, inst.Out2, caps, i)
	case prog.OpCapture:
		m.addThread(queue, inst.Out1, caps.set(inst.Slot, i), i)
	case prog.OpAssert:
		if m.testAssert(inst.Assert, i) {
			m.addThread(queue, inst.Out1, caps, i)
		}
	case prog.OpLook:
		if m.testLook(inst.Look, i) {
			m.addThread(queue, inst.Out1, caps, i)
		}
	default:
		*queue = append(*queue, thread{pc: pc, caps: caps})
	}
}

// testAssert evaluates a zero-width assertion at byte offset i into the
// subject, per spec.md §3.4's assertion table.
func (m *vm) testAssert(kind prog.AssertKind, i int) bool {
	switch kind {
	case prog.AssertBeginText:
		return i == 0
	case prog.AssertEndText:
		return i == len(m.subject)
	case prog.AssertBeginLine:
		return i == 0 || m.subject[i-1] == '\n'
	case prog.AssertEndLine:
		return i == len(m.subject) || m.subject[i] == '\n'
	case prog.AssertWordBoundary:
		return m.wordBefore(i) != m.wordAfter(i)
	case prog.AssertNoWordBoundary:
		return m.wordBefore(i) == m.wordAfter(i)
	default:
		return false
	}
}

func (m *vm) wordBefore(i int) bool {
	r, _, ok := runeio.DecodePrev(m.subject, i)
	return ok && runeio.IsWordByte(r)
}

func (m *vm) wordAfter(i int) bool {
	r, _, ok := runeio.Decode(m.subject, i)
	return ok && runeio.IsWordByte(r)
}

func foldMatches(want, r rune) bool {
	if r == want {
		return true
	}
	for _, v := range udata.SimpleFold(want) {
		if v == r {
			return true
		}
	}
	return false
}
