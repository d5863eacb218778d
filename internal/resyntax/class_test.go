package resyntax

import (
	"testing"

	"github.com/threadvm/retwo/internal/arena"
)

func TestParseClassRange(t *testing.T) {
	n := mustParse(t, "[a-c]", Flags{})
	if n.Op != OpCharClass {
		t.Fatalf("Op = %v, want OpCharClass", n.Op)
	}
	for _, r := range []rune{'a', 'b', 'c'} {
		if !n.Class.Contains(r) {
			t.Errorf("[a-c] should contain %q", r)
		}
	}
	if n.Class.Contains('d') {
		t.Error("[a-c] should not contain 'd'")
	}
}

func TestParseClassNegation(t *testing.T) {
	n := mustParse(t, "[^a-c]", Flags{})
	if n.Class.Contains('a') {
		t.Error("[^a-c] should not contain 'a'")
	}
	if !n.Class.Contains('z') {
		t.Error("[^a-c] should contain 'z'")
	}
}

func TestParseClassLiteralHyphenAtEnd(t *testing.T) {
	n := mustParse(t, "[a-]", Flags{})
	if !n.Class.Contains('a') || !n.Class.Contains('-') {
		t.Errorf("[a-] should contain both 'a' and '-', got %v", n.Class.Ranges())
	}
}

func TestParseClassLeadingCloseBracket(t *testing.T) {
	n := mustParse(t, "[]a]", Flags{})
	if !n.Class.Contains(']') || !n.Class.Contains('a') {
		t.Errorf("[]a] should contain ']' and 'a', got %v", n.Class.Ranges())
	}
}

func TestParseClassNestedPerlEscape(t *testing.T) {
	n := mustParse(t, `[\d.]`, Flags{})
	if !n.Class.Contains('5') || !n.Class.Contains('.') || n.Class.Contains('a') {
		t.Errorf(`[\d.] parsed wrong: %v`, n.Class.Ranges())
	}
}

func TestParseClassUnicodeProperty(t *testing.T) {
	n := mustParse(t, `[\p{Greek}0-9]`, Flags{})
	if !n.Class.Contains(0x03B1) || !n.Class.Contains('5') || n.Class.Contains('a') {
		t.Errorf(`[\p{Greek}0-9] parsed wrong: %v`, n.Class.Ranges())
	}
}

func TestParsePosixClass(t *testing.T) {
	n := mustParse(t, "[[:digit:]]", Flags{})
	if !n.Class.Contains('5') || n.Class.Contains('a') {
		t.Errorf("[[:digit:]] parsed wrong: %v", n.Class.Ranges())
	}
}

func TestParsePosixClassNegated(t *testing.T) {
	n := mustParse(t, "[[:^digit:]]", Flags{})
	if n.Class.Contains('5') || !n.Class.Contains('a') {
		t.Errorf("[[:^digit:]] parsed wrong: %v", n.Class.Ranges())
	}
}

func TestParseClassCaseInsensitiveFolds(t *testing.T) {
	n := mustParse(t, "[a-c]", Flags{CaseInsensitive: true})
	if !n.Class.Contains('A') || !n.Class.Contains('C') {
		t.Errorf("case-insensitive [a-c] should also contain 'A'..'C', got %v", n.Class.Ranges())
	}
}

func TestParseClassUnterminated(t *testing.T) {
	if _, _, err := Parse("[abc", Flags{}, arena.New()); err == nil {
		t.Fatal("expected unterminated class to be a parse error")
	}
}

func TestParseClassInvalidRange(t *testing.T) {
	if _, _, err := Parse("[z-a]", Flags{}, arena.New()); err == nil {
		t.Fatal("expected inverted range to be a parse error")
	}
}

func TestParseUnknownPosixClassRejected(t *testing.T) {
	if _, _, err := Parse("[[:nope:]]", Flags{}, arena.New()); err == nil {
		t.Fatal("expected unknown POSIX class to be a parse error")
	}
}
