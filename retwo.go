// Package retwo is a linear-time regular expression engine: parsing, NFA
// compilation, and execution are all guaranteed O(n*m) in input length n and
// program size m, with no catastrophic-backtracking failure mode. Matching
// follows RE2/Perl leftmost-first semantics: among competing alternatives,
// the first one that completes the overall match wins, regardless of
// whether a later alternative would match more text.
//
// Basic usage:
//
//	re, err := retwo.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("call 555-1234") {
//	    fmt.Println("matched")
//	}
//
// Options configure case sensitivity and related flags at compile time:
//
//	re, err := retwo.Compile(`hello`, retwo.CaseInsensitive())
//
// Limitations: case folding and property tables cover a practical subset of
// Unicode rather than the full UCD (see DESIGN.md); backreferences are
// parsed but always rejected with ErrUnsupported.
package retwo

import (
	"github.com/threadvm/retwo/internal/arena"
	"github.com/threadvm/retwo/internal/litaccel"
	"github.com/threadvm/retwo/internal/pikevm"
	"github.com/threadvm/retwo/internal/prog"
	"github.com/threadvm/retwo/internal/resyntax"
)

// Config holds every compile-time knob. Most callers should use Compile with
// functional Options instead of building a Config directly; CompileWithConfig
// is exposed for callers who already have a Config (e.g. read from a file)
// and want to bypass the options layer, mirroring the teacher's
// meta.Config/CompileWithConfig split.
type Config struct {
	CaseInsensitive bool
	Multiline       bool
	DotAll          bool
	Ungreedy        bool

	// MaxProgramSize caps the compiled instruction count; compilation fails
	// with ErrProgramTooLarge beyond it. Zero uses the package default.
	MaxProgramSize int

	// MaxSteps caps the number of input positions a single Match call will
	// visit before aborting with ErrCancelled. Zero means unlimited.
	MaxSteps int
}

// DefaultConfig returns the configuration Compile uses when given no
// Options: case-sensitive, `.` excludes `\n`, greedy quantifiers, and the
// package's default program-size cap.
func DefaultConfig() Config {
	return Config{MaxProgramSize: prog.DefaultConfig().MaxProgramSize}
}

// Option mutates a Config; see CaseInsensitive, Multiline, DotAll, Ungreedy,
// WithMaxProgramSize, and WithMaxSteps.
type Option func(*Config)

// CaseInsensitive makes the whole pattern match without regard to case,
// equivalent to wrapping it in (?i).
func CaseInsensitive() Option { return func(c *Config) { c.CaseInsensitive = true } }

// Multiline makes ^ and $ match at line boundaries rather than only at the
// start and end of the subject.
func Multiline() Option { return func(c *Config) { c.Multiline = true } }

// DotAll makes `.` match `\n` as well as every other code point.
func DotAll() Option { return func(c *Config) { c.DotAll = true } }

// Ungreedy swaps the default greediness of every quantifier (so `*` behaves
// like `*?` and vice versa), matching RE2's U flag.
func Ungreedy() Option { return func(c *Config) { c.Ungreedy = true } }

// WithMaxProgramSize overrides the compiled-program instruction-count cap.
func WithMaxProgramSize(n int) Option { return func(c *Config) { c.MaxProgramSize = n } }

// WithMaxSteps bounds how many input positions a single match attempt will
// visit, returning ErrCancelled instead of running unbounded on pathological
// input. Zero (the default) means unlimited.
func WithMaxSteps(n int) Option { return func(c *Config) { c.MaxSteps = n } }

// Compile parses and compiles pattern, applying opts over DefaultConfig.
func Compile(pattern string, opts ...Option) (*Regexp, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return CompileWithConfig(pattern, cfg)
}

// MustCompile is like Compile but panics if pattern fails to compile. It is
// intended for regexps known to be valid at init time.
func MustCompile(pattern string, opts ...Option) *Regexp {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic("retwo: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern under an explicit Config, bypassing the
// functional-options layer.
func CompileWithConfig(pattern string, cfg Config) (*Regexp, error) {
	flags := resyntax.Flags{
		CaseInsensitive: cfg.CaseInsensitive,
		Multiline:       cfg.Multiline,
		DotAll:          cfg.DotAll,
		Ungreedy:        cfg.Ungreedy,
	}
	ar := arena.New()
	root, ncap, err := resyntax.Parse(pattern, flags, ar)
	if err != nil {
		return nil, err
	}

	progCfg := prog.DefaultConfig()
	if cfg.MaxProgramSize > 0 {
		progCfg.MaxProgramSize = cfg.MaxProgramSize
	}
	p, err := prog.Compile(pattern, root, ncap, progCfg)
	if err != nil {
		return nil, err
	}

	accel, _ := litaccel.Build(root)

	return &Regexp{
		pattern: pattern,
		prog:    p,
		cfg:     cfg,
		accel:   accel,
		astSize: ar.NodeCount(),
	}, nil
}

// MatchString is a one-shot convenience equivalent to
// Compile(pattern) followed by re.MatchString(s); prefer Compile directly
// when the same pattern will be used more than once.
func MatchString(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}
