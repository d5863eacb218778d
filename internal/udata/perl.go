package udata

import "github.com/threadvm/retwo/internal/charclass"

// PerlDigit, PerlSpace, PerlWord are the ASCII-only classes backing \d, \s,
// \w (and their negations \D, \S, \W). RE2 keeps these classes ASCII-only
// even when matching Unicode text; only explicit \p{...} properties reach
// into the rest of the Unicode range. The exact byte ranges mirror the
// "perl_groups" data every RE2-family engine ships.
var (
	PerlDigit = charclass.New(charclass.Range{Lo: '0', Hi: '9'})

	PerlSpace = charclass.New(
		charclass.Range{Lo: '\t', Hi: '\n'},
		charclass.Range{Lo: '\f', Hi: '\r'},
		charclass.Range{Lo: ' ', Hi: ' '},
	)

	PerlWord = charclass.New(
		charclass.Range{Lo: '0', Hi: '9'},
		charclass.Range{Lo: 'A', Hi: 'Z'},
		charclass.Range{Lo: '_', Hi: '_'},
		charclass.Range{Lo: 'a', Hi: 'z'},
	)
)

// PerlClass looks up one of the predefined escapes (without backslash):
// "d", "D", "s", "S", "w", "W".
func PerlClass(name string) (charclass.Class, bool) {
	switch name {
	case "d":
		return PerlDigit, true
	case "D":
		return PerlDigit.Negate(), true
	case "s":
		return PerlSpace, true
	case "S":
		return PerlSpace.Negate(), true
	case "w":
		return PerlWord, true
	case "W":
		return PerlWord.Negate(), true
	}
	return charclass.Class{}, false
}

// posixClasses backs the [:name:] forms inside [...]. Values are ASCII-only,
// matching RE2/POSIX bracket-expression semantics for the "C" locale.
var posixClasses = map[string]charclass.Class{
	"alpha": charclass.New(charclass.Range{Lo: 'A', Hi: 'Z'}, charclass.Range{Lo: 'a', Hi: 'z'}),
	"digit": charclass.New(charclass.Range{Lo: '0', Hi: '9'}),
	"alnum": charclass.New(
		charclass.Range{Lo: '0', Hi: '9'},
		charclass.Range{Lo: 'A', Hi: 'Z'},
		charclass.Range{Lo: 'a', Hi: 'z'},
	),
	"upper": charclass.New(charclass.Range{Lo: 'A', Hi: 'Z'}),
	"lower": charclass.New(charclass.Range{Lo: 'a', Hi: 'z'}),
	"space": charclass.New(
		charclass.Range{Lo: '\t', Hi: '\r'},
		charclass.Range{Lo: ' ', Hi: ' '},
	),
	"punct": charclass.New(
		charclass.Range{Lo: '!', Hi: '/'},
		charclass.Range{Lo: ':', Hi: '@'},
		charclass.Range{Lo: '[', Hi: '`'},
		charclass.Range{Lo: '{', Hi: '~'},
	),
	"cntrl": charclass.New(
		charclass.Range{Lo: 0x00, Hi: 0x1F},
		charclass.Range{Lo: 0x7F, Hi: 0x7F},
	),
	"graph": charclass.New(charclass.Range{Lo: '!', Hi: '~'}),
	"print": charclass.New(charclass.Range{Lo: ' ', Hi: '~'}),
	"blank": charclass.New(charclass.Range{Lo: '\t', Hi: '\t'}, charclass.Range{Lo: ' ', Hi: ' '}),
	"xdigit": charclass.New(
		charclass.Range{Lo: '0', Hi: '9'},
		charclass.Range{Lo: 'A', Hi: 'F'},
		charclass.Range{Lo: 'a', Hi: 'f'},
	),
}

// PosixClass looks up a [:name:] bracket-expression class.
func PosixClass(name string) (charclass.Class, bool) {
	c, ok := posixClasses[name]
	return c, ok
}

// Property resolves a \p{Name} / \P{Name} payload, trying general
// categories first and then scripts, per spec.md §9's Open Question
// resolution: "treat unrecognized property names as PARSE_ERROR".
func Property(name string) (charclass.Class, bool) {
	if c, ok := Category(name); ok {
		return c, true
	}
	if c, ok := Script(name); ok {
		return c, true
	}
	// Single-letter shorthands for \pL, \pN, etc. are handled by the
	// category table directly since category keys already include the
	// one-letter top-level categories (L, N, P, Z, C, S).
	return charclass.Class{}, false
}
