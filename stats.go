package retwo

// PatternStats reports compile-time size figures for a pattern, useful for
// diagnosing why a pattern was rejected with ErrProgramTooLarge or for
// capacity planning before compiling a large rule set.
type PatternStats struct {
	// ASTNodes is the number of nodes the parser allocated for this pattern.
	ASTNodes int
	// CaptureCount is the number of explicit capture groups (excluding
	// group 0, the whole match).
	CaptureCount int
	// ProgramSize is the number of instructions in the compiled program.
	ProgramSize int
}

// Stats returns size figures for the compiled pattern.
func (re *Regexp) Stats() PatternStats {
	return PatternStats{
		ASTNodes:     re.astSize,
		CaptureCount: re.prog.NumCaps - 1,
		ProgramSize:  len(re.prog.Insts),
	}
}
