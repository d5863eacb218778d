package retwo

import (
	"errors"
	"testing"

	"github.com/threadvm/retwo/internal/rerr"
)

// TestSeedScenarios covers a seed table of end-to-end scenarios through the
// public API rather than any one internal package.
func TestSeedScenarios(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    []int // FindStringSubmatchIndex result, nil for no match
	}{
		{"S1_literal", `abc`, "xxabcxx", []int{2, 5}},
		{"S2_anchored_fail", `^hello$`, "hello world", nil},
		{"S3_anchored_ok", `^abc$`, "abc", []int{0, 3}},
		{"S4_class", `[a-c]+`, "xaabccz", []int{1, 6}},
		{"S5_groups", `(\w+)@(\w+)`, "user@host", []int{0, 9, 0, 4, 5, 9}},
		{"S6_star_greedy", `a.*b`, "axxbxxb", []int{0, 7}},
		{"S7_empty_match", `a*`, "bbb", []int{0, 0}},
		{"S8_group_absent", `(a)|b`, "b", []int{0, 1, -1, -1}},
		{"S9_leftmost_first", `(a|ab)c`, "abc", []int{0, 3, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			got := re.FindStringSubmatchIndex(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %v, want no match", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v (len %d), want %v (len %d)", got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %d, want %d (full got=%v want=%v)", i, got[i], tt.want[i], got, tt.want)
				}
			}
		})
	}
}

func TestCompileOptions(t *testing.T) {
	re, err := Compile("HELLO", CaseInsensitive())
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString("say hello there") {
		t.Error("expected case-insensitive match")
	}

	re2, err := Compile(`^world`, Multiline())
	if err != nil {
		t.Fatal(err)
	}
	if !re2.MatchString("hello\nworld") {
		t.Error("expected Multiline ^ to match after \\n")
	}

	re3, err := Compile(`a.b`, DotAll())
	if err != nil {
		t.Fatal(err)
	}
	if !re3.MatchString("a\nb") {
		t.Error("expected DotAll . to match \\n")
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	_, err := Compile(`a(b`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if ErrorKindOf(err) != rerr.Parse {
		t.Errorf("ErrorKindOf = %v, want Parse", ErrorKindOf(err))
	}
	if !errors.Is(err, ErrParse) {
		t.Error("expected errors.Is(err, ErrParse)")
	}
}

func TestBackreferenceUnsupported(t *testing.T) {
	_, err := Compile(`(a)\1`)
	if err == nil {
		t.Fatal("expected backreferences to be rejected")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}

func TestVariableWidthLookbehindUnsupported(t *testing.T) {
	_, err := Compile(`(?<=a*)b`)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported for variable-width lookbehind", err)
	}
}

func TestFindAll(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllString("1 22 333", -1)
	want := []string{"1", "22", "333"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestLiteralAlternationUsesAccelerator(t *testing.T) {
	re, err := Compile("cat|dog")
	if err != nil {
		t.Fatal(err)
	}
	if re.accel == nil {
		t.Fatal("expected a pure literal alternation to build an accelerator")
	}
	if !re.MatchString("I have a dog") {
		t.Error("expected match")
	}
	if re.MatchString("I have a fish") {
		t.Error("expected no match")
	}
}

func TestStats(t *testing.T) {
	re := MustCompile(`(a)(b)(c)`)
	stats := re.Stats()
	if stats.CaptureCount != 3 {
		t.Errorf("CaptureCount = %d, want 3", stats.CaptureCount)
	}
	if stats.ProgramSize == 0 {
		t.Error("expected nonzero ProgramSize")
	}
}
