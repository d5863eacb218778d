package pikevm

import "github.com/threadvm/retwo/internal/prog"

// Search runs p against subject and returns the full capture slot array
// (2*NumCaps ints, -1 for groups that did not participate) on a match, or
// nil on no match. This is the entry point the root package's Regexp
// methods build on.
func Search(p *prog.Program, subject []byte, opts Options) ([]int, error) {
	dst := make([]int, p.NumSlots())
	ok, err := Run(p, subject, dst, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return dst, nil
}

// IsMatch reports only whether p matches somewhere in subject. Capture
// slots for every group are still tracked during the run and then
// discarded.
func IsMatch(p *prog.Program, subject []byte, opts Options) (bool, error) {
	dst := make([]int, p.NumSlots())
	return Run(p, subject, dst, opts)
}
