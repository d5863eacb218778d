package udata

import "github.com/threadvm/retwo/internal/charclass"

// Script returns the class for a Unicode script name (e.g. "Greek", "Han"),
// and whether name is recognized. Like Category, this is a practical subset
// of real script boundaries -- enough contiguous-block scripts to exercise
// \p{Script} end to end -- not the full UCD Scripts.txt.
func Script(name string) (charclass.Class, bool) {
	c, ok := scripts[name]
	return c, ok
}

var scripts = map[string]charclass.Class{
	"Latin": charclass.New(
		charclass.Range{Lo: 'A', Hi: 'Z'},
		charclass.Range{Lo: 'a', Hi: 'z'},
		charclass.Range{Lo: 0x00C0, Hi: 0x00FF},
		charclass.Range{Lo: 0x0100, Hi: 0x017F},
	),
	"Greek": charclass.New(
		charclass.Range{Lo: 0x0370, Hi: 0x03FF},
	),
	"Cyrillic": charclass.New(
		charclass.Range{Lo: 0x0400, Hi: 0x04FF},
	),
	"Han": charclass.New(
		charclass.Range{Lo: 0x4E00, Hi: 0x9FFF},
		charclass.Range{Lo: 0x3400, Hi: 0x4DBF},
	),
	"Hiragana": charclass.New(
		charclass.Range{Lo: 0x3040, Hi: 0x309F},
	),
	"Katakana": charclass.New(
		charclass.Range{Lo: 0x30A0, Hi: 0x30FF},
	),
	"Arabic": charclass.New(
		charclass.Range{Lo: 0x0600, Hi: 0x06FF},
	),
	"Hebrew": charclass.New(
		charclass.Range{Lo: 0x0590, Hi: 0x05FF},
	),
}
