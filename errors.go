package retwo

import "github.com/threadvm/retwo/internal/rerr"

// Sentinel errors callers can compare against with errors.Is. Compile
// returns a *rerr.CompileError wrapping one of these; Match-family methods
// that can fail (Regexp.Match) return a *rerr.MatchError wrapping
// ErrCancelled.
var (
	ErrParse           = rerr.ErrParse
	ErrUnsupported     = rerr.ErrUnsupported
	ErrProgramTooLarge = rerr.ErrProgramTooLarge
	ErrClassInvalid    = rerr.ErrClassInvalid
	ErrCancelled       = rerr.ErrCancelled
)

// ErrorKind is the taxonomy ErrorKindOf reports.
type ErrorKind = rerr.Kind

// ErrorKindOf extracts the structured error kind from err, or
// rerr.None if err is nil or wasn't produced by this package.
func ErrorKindOf(err error) ErrorKind {
	return rerr.KindOf(err)
}
