package retwo

import (
	"github.com/threadvm/retwo/internal/litaccel"
	"github.com/threadvm/retwo/internal/pikevm"
	"github.com/threadvm/retwo/internal/prog"
)

// Regexp is a compiled pattern. A *Regexp is safe for concurrent use by
// multiple goroutines: Match and Find methods only read the compiled
// program, allocating a fresh executor per call.
type Regexp struct {
	pattern string
	prog    *prog.Program
	cfg     Config
	accel   *litaccel.Accelerator // nil unless the pattern is a pure literal alternation
	astSize int
}

// String returns the source pattern text used to compile the Regexp.
func (re *Regexp) String() string {
	return re.pattern
}

// NumSubexp returns the number of capturing groups, not counting group 0
// (the whole match).
func (re *Regexp) NumSubexp() int {
	return re.prog.NumCaps - 1
}

func (re *Regexp) vmOpts() pikevm.Options {
	return pikevm.Options{MaxSteps: re.cfg.MaxSteps}
}

// Match reports whether b contains a match of the pattern anywhere.
func (re *Regexp) Match(b []byte) (bool, error) {
	if re.accel != nil {
		return re.accel.IsMatch(b), nil
	}
	return pikevm.IsMatch(re.prog, b, re.vmOpts())
}

// MatchString is Match for a string subject. If Match reports an error
// (ErrCancelled), MatchString returns false; use Match directly to observe
// cancellation.
func (re *Regexp) MatchString(s string) bool {
	ok, err := re.Match([]byte(s))
	if err != nil {
		return false
	}
	return ok
}

// findIndex runs the executor once and returns the raw capture-slot array,
// or nil on no match.
func (re *Regexp) findIndex(b []byte) ([]int, error) {
	return pikevm.Search(re.prog, b, re.vmOpts())
}

// FindIndex returns a two-element slice [start, end) for the leftmost match
// in b, or nil if there is none.
func (re *Regexp) FindIndex(b []byte) []int {
	caps, err := re.findIndex(b)
	if err != nil || caps == nil {
		return nil
	}
	return []int{caps[0], caps[1]}
}

// FindStringIndex is FindIndex for a string subject.
func (re *Regexp) FindStringIndex(s string) []int {
	return re.FindIndex([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
func (re *Regexp) Find(b []byte) []byte {
	loc := re.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]]
}

// FindString is Find for a string subject.
func (re *Regexp) FindString(s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindSubmatchIndex returns index pairs for the leftmost match and every
// capture group: result[2*i:2*i+2] is group i's [start, end), or [-1, -1]
// for a group that did not participate. Returns nil on no match.
func (re *Regexp) FindSubmatchIndex(b []byte) []int {
	caps, err := re.findIndex(b)
	if err != nil {
		return nil
	}
	return caps
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string subject.
func (re *Regexp) FindStringSubmatchIndex(s string) []int {
	return re.FindSubmatchIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its capture groups as byte
// slices; an unmatched group is reported as nil. Returns nil on no match.
func (re *Regexp) FindSubmatch(b []byte) [][]byte {
	caps := re.FindSubmatchIndex(b)
	if caps == nil {
		return nil
	}
	out := make([][]byte, len(caps)/2)
	for i := range out {
		s, e := caps[2*i], caps[2*i+1]
		if s < 0 || e < 0 {
			continue
		}
		out[i] = b[s:e]
	}
	return out
}

// FindStringSubmatch is FindSubmatch for a string subject.
func (re *Regexp) FindStringSubmatch(s string) []string {
	caps := re.FindSubmatchIndex([]byte(s))
	if caps == nil {
		return nil
	}
	out := make([]string, len(caps)/2)
	for i := range out {
		start, e := caps[2*i], caps[2*i+1]
		if start < 0 || e < 0 {
			continue
		}
		out[i] = s[start:e]
	}
	return out
}

// FindAllIndex returns the index pairs of every non-overlapping match in b,
// in order, at most n of them (n < 0 means unlimited). Returns nil if there
// are no matches.
func (re *Regexp) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	var out [][]int
	pos := 0
	for pos <= len(b) {
		loc := re.FindIndex(b[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		out = append(out, []int{start, end})
		if end > pos {
			pos = end
		} else {
			pos++
		}
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAllStringIndex is FindAllIndex for a string subject.
func (re *Regexp) FindAllStringIndex(s string, n int) [][]int {
	return re.FindAllIndex([]byte(s), n)
}

// FindAll returns every non-overlapping match in b, at most n of them.
func (re *Regexp) FindAll(b []byte, n int) [][]byte {
	locs := re.FindAllIndex(b, n)
	if locs == nil {
		return nil
	}
	out := make([][]byte, len(locs))
	for i, loc := range locs {
		out[i] = b[loc[0]:loc[1]]
	}
	return out
}

// FindAllString is FindAll for a string subject.
func (re *Regexp) FindAllString(s string, n int) []string {
	locs := re.FindAllIndex([]byte(s), n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// Free releases no resources: Regexp holds no memory outside Go's GC and no
// OS handles. It exists so callers migrating from engines that do need
// explicit teardown have a no-op landing spot.
func (re *Regexp) Free() {}
