package resyntax

// Flags is the active flag set while parsing, per spec.md §4.1 ("Flags").
// The zero value is RE2's default: case-sensitive, `.` excludes `\n`, `^`/`$`
// only match text boundaries, quantifiers are greedy.
type Flags struct {
	CaseInsensitive bool
	Multiline       bool
	DotAll          bool
	Ungreedy        bool
}

// greedyFor resolves a quantifier's effective greediness: the `?` suffix
// flips the default, and Ungreedy flips the default too, so both together
// cancel out.
func (f Flags) greedyFor(sawLazySuffix bool) bool {
	greedy := !f.Ungreedy
	if sawLazySuffix {
		greedy = !greedy
	}
	return greedy
}
