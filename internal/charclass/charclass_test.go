package charclass

import (
	"reflect"
	"testing"
)

func TestNewCanonicalizesOverlapAndAdjacency(t *testing.T) {
	c := New(Range{10, 20}, Range{5, 9}, Range{21, 25}, Range{30, 40}, Range{35, 38})
	want := []Range{{5, 25}, {30, 40}}
	if got := c.Ranges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ranges() = %v, want %v", got, want)
	}
}

func TestNewDropsInvalidAndClamps(t *testing.T) {
	c := New(Range{20, 10}, Range{-5, 3}, Range{MaxRune - 1, MaxRune + 100})
	want := []Range{{0, 3}, {MaxRune - 1, MaxRune}}
	if got := c.Ranges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ranges() = %v, want %v", got, want)
	}
}

func TestIsEmpty(t *testing.T) {
	if !New().IsEmpty() {
		t.Error("New() should be empty")
	}
	if Single('a').IsEmpty() {
		t.Error("Single('a') should not be empty")
	}
}

func TestContains(t *testing.T) {
	c := New(Range{'a', 'f'}, Range{'0', '9'})
	for _, r := range []rune{'a', 'c', 'f', '0', '9'} {
		if !c.Contains(r) {
			t.Errorf("Contains(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'g', '/', 'A', ' '} {
		if c.Contains(r) {
			t.Errorf("Contains(%q) = true, want false", r)
		}
	}
}

func TestUnion(t *testing.T) {
	a := New(Range{'a', 'c'})
	b := New(Range{'x', 'z'})
	got := a.Union(b).Ranges()
	want := []Range{{'a', 'c'}, {'x', 'z'}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestUnionAll(t *testing.T) {
	got := UnionAll(New(Range{'a', 'b'}), New(Range{'c', 'd'}), New(Range{'x', 'y'})).Ranges()
	want := []Range{{'a', 'd'}, {'x', 'y'}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnionAll = %v, want %v", got, want)
	}
}

func TestIntersect(t *testing.T) {
	a := New(Range{'a', 'm'})
	b := New(Range{'g', 'z'})
	got := a.Intersect(b).Ranges()
	want := []Range{{'g', 'm'}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := New(Range{'a', 'c'})
	b := New(Range{'x', 'z'})
	if got := a.Intersect(b); !got.IsEmpty() {
		t.Errorf("Intersect of disjoint ranges = %v, want empty", got.Ranges())
	}
}

func TestNegate(t *testing.T) {
	c := New(Range{'a', 'z'})
	neg := c.Negate()
	if neg.Contains('m') {
		t.Error("Negate should exclude members of the original class")
	}
	if !neg.Contains('0') || !neg.Contains('!') {
		t.Error("Negate should include code points outside the original class")
	}
	if neg.Contains(0xD900) {
		t.Error("Negate should never include a surrogate code point")
	}
}

func TestNegateTwiceIsIdentity(t *testing.T) {
	c := New(Range{'a', 'z'}, Range{'0', '9'})
	got := c.Negate().Negate()
	if !reflect.DeepEqual(got.Ranges(), c.Ranges()) {
		t.Errorf("double negate = %v, want %v", got.Ranges(), c.Ranges())
	}
}

func TestCaseFold(t *testing.T) {
	c := Single('a')
	folded := c.CaseFold(func(r rune) []rune {
		if r == 'a' {
			return []rune{'A'}
		}
		return nil
	})
	if !folded.Contains('a') || !folded.Contains('A') {
		t.Errorf("CaseFold result %v should contain both 'a' and 'A'", folded.Ranges())
	}
	if folded.Contains('b') {
		t.Error("CaseFold should not introduce unrelated members")
	}
}
