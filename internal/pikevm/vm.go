// Package pikevm is the NFA executor (spec.md component C7): a Pike VM that
// runs every live thread through one position at a time, using a
// generation-stamped dedup set (internal/sparse in the teacher's nfa
// package; reproduced here as a plain stamped slice since PCs are already a
// dense array index) so the whole search stays O(n*m) regardless of
// backtracking-style blowup.
//
// Unlike the teacher's nfa/pikevm.go, which resolves ties between
// same-length matches using leftmost-longest (POSIX) semantics, this
// executor implements leftmost-first (Perl/RE2) semantics per spec.md
// §4.3: the first alternative that completes a match wins, even if a
// later alternative would have matched more text.
package pikevm

import (
	"github.com/threadvm/retwo/internal/prog"
	"github.com/threadvm/retwo/internal/rerr"
	"github.com/threadvm/retwo/internal/runeio"
)

// Options configures one Run call.
type Options struct {
	// MaxSteps bounds the number of input positions visited before giving
	// up with rerr.ErrCancelled. Zero means unlimited. Checked only at
	// position boundaries, matching spec.md §5's cooperative cancellation.
	MaxSteps int
}

type thread struct {
	pc   prog.PC
	caps capSlice
}

type vm struct {
	prog    *prog.Program
	subject []byte
	seen    []int32
	gen     int32
}

func newVM(p *prog.Program, subject []byte) *vm {
	return &vm{
		prog:    p,
		subject: subject,
		seen:    make([]int32, len(p.Insts)),
	}
}

func (m *vm) nextGen() int32 {
	m.gen++
	return m.gen
}

// Run searches subject for p, returning whether it matched and, if so, the
// capture slots (start/end byte offsets, group 0 first, -1 for an
// unparticipating group) written into dst up to len(dst) entries.
func Run(p *prog.Program, subject []byte, dst []int, opts Options) (bool, error) {
	m := newVM(p, subject)
	found, caps, err := m.search(p.Start, 0, true, opts)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	data := caps.data()
	n := len(dst)
	if n > len(data) {
		n = len(data)
	}
	copy(dst[:n], data[:n])
	return true, nil
}

// search runs the full unanchored-or-anchored loop starting no earlier than
// startAt. allowReseed disables the "try a later start position" step for
// anchored programs and for the inner lookaround searches that embed this
// same loop.
func (m *vm) search(start prog.PC, startAt int, allowReseed bool, opts Options) (bool, capSlice, error) {
	n := len(m.subject)
	anchored := !allowReseed || m.prog.Anchor != prog.Unanchored

	current := make([]thread, 0, 16)
	next := make([]thread, 0, 16)

	m.gen = m.nextGen()
	m.addThread(&current, start, newCaps(m.prog.NumSlots()), startAt)

	var best capSlice
	found := false
	steps := 0

	for i := startAt; ; {
		if opts.MaxSteps > 0 {
			steps++
			if steps > opts.MaxSteps {
				return false, capSlice{}, rerr.NewMatchError(rerr.Cancelled, "step budget exceeded")
			}
		}

		var r rune
		var size int
		if i < n {
			r, size, _ = runeio.Decode(m.subject, i)
		}

		next = next[:0]
		m.gen = m.nextGen()

		for _, t := range current {
			inst := &m.prog.Insts[t.pc]
			if inst.Op == prog.OpMatch {
				best = t.caps
				found = true
				break
			}
			if i >= n {
				continue
			}
			if m.instConsumes(inst, r) {
				m.addThread(&next, inst.Out1, t.caps, i+size)
			}
		}

		if i >= n {
			break
		}
		if len(next) == 0 && (found || anchored) {
			break
		}
		if !anchored && !found {
			m.addThread(&next, start, newCaps(m.prog.NumSlots()), i+size)
		}

		current, next = next, current
		i += size
	}

	return found, best, nil
}

// instConsumes reports whether inst accepts the decoded code point r,
// advancing the thread to inst.Out1 on success.
func (m *vm) instConsumes(inst *prog.Inst, r rune) bool {
	switch inst.Op {
	case prog.OpChar:
		return r == inst.Rune
	case prog.OpCharFold:
		return foldMatches(inst.Rune, r)
	case prog.OpClass:
		return m.prog.ClassPool.Get(inst.Class).Contains(r)
	case prog.OpAnyChar:
		return true
	case prog.OpAnyCharNotNL:
		return r != '\n'
	default:
		return false
	}
}
