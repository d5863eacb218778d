package udata

import "github.com/threadvm/retwo/internal/charclass"

// Category returns the Unicode general-category class for name (e.g. "L",
// "Nd", "Zs"), and whether name is recognized.
//
// This ships a practical subset of the Unicode Character Database rather
// than the full table (see DESIGN.md): enough of each letter/number/
// punctuation/separator/control category to exercise \p{...} end to end,
// not a byte-for-byte UCD mirror.
func Category(name string) (charclass.Class, bool) {
	c, ok := categories[name]
	return c, ok
}

var categories = map[string]charclass.Class{
	"Lu": charclass.New(
		charclass.Range{Lo: 'A', Hi: 'Z'},
		charclass.Range{Lo: 0x00C0, Hi: 0x00D6},
		charclass.Range{Lo: 0x00D8, Hi: 0x00DE},
		charclass.Range{Lo: 0x0391, Hi: 0x03A9}, // Greek upper
		charclass.Range{Lo: 0x0410, Hi: 0x042F}, // Cyrillic upper
	),
	"Ll": charclass.New(
		charclass.Range{Lo: 'a', Hi: 'z'},
		charclass.Range{Lo: 0x00DF, Hi: 0x00F6},
		charclass.Range{Lo: 0x00F8, Hi: 0x00FF},
		charclass.Range{Lo: 0x03B1, Hi: 0x03C9}, // Greek lower
		charclass.Range{Lo: 0x0430, Hi: 0x044F}, // Cyrillic lower
	),
	"Lt": charclass.New(
		charclass.Range{Lo: 0x01C5, Hi: 0x01C5},
		charclass.Range{Lo: 0x01C8, Hi: 0x01C8},
		charclass.Range{Lo: 0x01CB, Hi: 0x01CB},
	),
	"Lm": charclass.New(
		charclass.Range{Lo: 0x02B0, Hi: 0x02C1},
	),
	"Lo": charclass.New(
		charclass.Range{Lo: 0x4E00, Hi: 0x9FFF}, // CJK Unified Ideographs
		charclass.Range{Lo: 0x3040, Hi: 0x309F}, // Hiragana
		charclass.Range{Lo: 0x30A0, Hi: 0x30FF}, // Katakana
		charclass.Range{Lo: 0x0600, Hi: 0x06FF}, // Arabic
		charclass.Range{Lo: 0x0590, Hi: 0x05FF}, // Hebrew
	),
	"Nd": charclass.New(
		charclass.Range{Lo: '0', Hi: '9'},
		charclass.Range{Lo: 0x0660, Hi: 0x0669}, // Arabic-Indic digits
		charclass.Range{Lo: 0xFF10, Hi: 0xFF19}, // fullwidth digits
	),
	"Nl": charclass.New(
		charclass.Range{Lo: 0x2160, Hi: 0x2182}, // Roman numerals
	),
	"No": charclass.New(
		charclass.Range{Lo: 0x00B2, Hi: 0x00B3}, // superscript 2,3
		charclass.Range{Lo: 0x00BC, Hi: 0x00BE}, // vulgar fractions
	),
	"Pc": charclass.New(charclass.Range{Lo: '_', Hi: '_'}),
	"Pd": charclass.New(
		charclass.Range{Lo: '-', Hi: '-'},
		charclass.Range{Lo: 0x2010, Hi: 0x2015},
	),
	"Ps": charclass.New(
		charclass.Range{Lo: '(', Hi: '('},
		charclass.Range{Lo: '[', Hi: '['},
		charclass.Range{Lo: '{', Hi: '{'},
	),
	"Pe": charclass.New(
		charclass.Range{Lo: ')', Hi: ')'},
		charclass.Range{Lo: ']', Hi: ']'},
		charclass.Range{Lo: '}', Hi: '}'},
	),
	"Po": charclass.New(
		charclass.Range{Lo: '!', Hi: '!'},
		charclass.Range{Lo: '"', Hi: '"'},
		charclass.Range{Lo: '#', Hi: '%'},
		charclass.Range{Lo: '\'', Hi: '\''},
		charclass.Range{Lo: '*', Hi: '*'},
		charclass.Range{Lo: ',', Hi: ','},
		charclass.Range{Lo: '.', Hi: '/'},
		charclass.Range{Lo: ':', Hi: ';'},
		charclass.Range{Lo: '?', Hi: '@'},
		charclass.Range{Lo: '\\', Hi: '\\'},
	),
	"Zs": charclass.New(
		charclass.Range{Lo: ' ', Hi: ' '},
		charclass.Range{Lo: 0x00A0, Hi: 0x00A0},
		charclass.Range{Lo: 0x2000, Hi: 0x200A},
	),
	"Zl": charclass.New(charclass.Range{Lo: 0x2028, Hi: 0x2028}),
	"Zp": charclass.New(charclass.Range{Lo: 0x2029, Hi: 0x2029}),
	"Cc": charclass.New(
		charclass.Range{Lo: 0x0000, Hi: 0x001F},
		charclass.Range{Lo: 0x007F, Hi: 0x009F},
	),
	"Sm": charclass.New(
		charclass.Range{Lo: '+', Hi: '+'},
		charclass.Range{Lo: '<', Hi: '>'},
		charclass.Range{Lo: '=', Hi: '='},
		charclass.Range{Lo: '|', Hi: '|'},
		charclass.Range{Lo: '~', Hi: '~'},
	),
	"Sc": charclass.New(
		charclass.Range{Lo: '$', Hi: '$'},
		charclass.Range{Lo: 0x00A2, Hi: 0x00A5},
	),
}

func init() {
	categories["L"] = charclass.UnionAll(categories["Lu"], categories["Ll"],
		categories["Lt"], categories["Lm"], categories["Lo"])
	categories["N"] = charclass.UnionAll(categories["Nd"], categories["Nl"], categories["No"])
	categories["P"] = charclass.UnionAll(categories["Pc"], categories["Pd"], categories["Ps"],
		categories["Pe"], categories["Po"])
	categories["Z"] = charclass.UnionAll(categories["Zs"], categories["Zl"], categories["Zp"])
	categories["C"] = categories["Cc"]
	categories["S"] = charclass.UnionAll(categories["Sm"], categories["Sc"])
}
