package udata

// SimpleFold returns the other code points that case-fold to the same
// value as r (never including r itself), or nil if r doesn't participate in
// simple case folding. It only implements *simple* 1:1 folding, per
// spec.md's Design Notes ("Case folding: use simple fold only in the
// core... full locale-sensitive folding is out of scope").
//
// The table covers ASCII and Latin-1 Supplement letters plus a handful of
// common special cases (Kelvin sign, micro sign); it is not a full Unicode
// case-folding table. See DESIGN.md for why this subset was chosen.
func SimpleFold(r rune) []rune {
	if others, ok := specialFold[r]; ok {
		return others
	}
	if pair, ok := asciiFold[r]; ok {
		return []rune{pair}
	}
	if pair, ok := latin1Fold[r]; ok {
		return []rune{pair}
	}
	return nil
}

var asciiFold = buildASCIIFold()

func buildASCIIFold() map[rune]rune {
	m := make(map[rune]rune, 52)
	for c := rune('A'); c <= 'Z'; c++ {
		m[c] = c + ('a' - 'A')
		m[c+('a'-'A')] = c
	}
	return m
}

// latin1Fold covers the Latin-1 Supplement letters (0xC0-0xDE upper,
// 0xE0-0xFE lower), skipping 0xD7 (multiplication sign) and 0xF7 (division
// sign), which are not letters.
var latin1Fold = buildLatin1Fold()

func buildLatin1Fold() map[rune]rune {
	m := make(map[rune]rune, 2*0x1E)
	for c := rune(0xC0); c <= 0xDE; c++ {
		if c == 0xD7 {
			continue
		}
		lower := c + 0x20
		m[c] = lower
		m[lower] = c
	}
	return m
}

// specialFold handles code points whose fold partners aren't a simple
// upper/lower pair a few code points apart.
var specialFold = map[rune][]rune{
	0x212A: {'k', 'K'},      // KELVIN SIGN folds with 'k'/'K'
	0x00B5: {0x03BC, 0x039C}, // MICRO SIGN folds with Greek mu/Mu
	0x03BC: {0x00B5, 0x039C},
	0x039C: {0x00B5, 0x03BC},
	0x017F: {'s', 'S'}, // LATIN SMALL LETTER LONG S folds with 's'/'S'
	'k':    {'K', 0x212A},
	'K':    {'k', 0x212A},
	's':    {'S', 0x017F},
	'S':    {'s', 0x017F},
}
