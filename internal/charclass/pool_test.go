package charclass

import "testing"

func TestPoolInternDedups(t *testing.T) {
	p := NewPool()
	id1 := p.Intern(New(Range{'a', 'z'}))
	id2 := p.Intern(New(Range{'a', 'z'}))
	if id1 != id2 {
		t.Errorf("Intern of equal classes returned different IDs: %d vs %d", id1, id2)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPoolInternDistinctClasses(t *testing.T) {
	p := NewPool()
	id1 := p.Intern(New(Range{'a', 'z'}))
	id2 := p.Intern(New(Range{'0', '9'}))
	if id1 == id2 {
		t.Error("distinct classes should get distinct IDs")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPoolGetRoundTrips(t *testing.T) {
	p := NewPool()
	c := New(Range{'a', 'f'}, Range{'0', '9'})
	id := p.Intern(c)
	got := p.Get(id)
	if len(got.Ranges()) != len(c.Ranges()) {
		t.Fatalf("Get(id) = %v, want %v", got.Ranges(), c.Ranges())
	}
	for i, r := range got.Ranges() {
		if r != c.Ranges()[i] {
			t.Errorf("Get(id).Ranges()[%d] = %v, want %v", i, r, c.Ranges()[i])
		}
	}
}

func TestPoolOrderSensitiveKeyStillDedups(t *testing.T) {
	p := NewPool()
	// Built from ranges given in a different order; canonicalization in New
	// should make both equal before they ever reach the pool.
	id1 := p.Intern(New(Range{'a', 'c'}, Range{'x', 'z'}))
	id2 := p.Intern(New(Range{'x', 'z'}, Range{'a', 'c'}))
	if id1 != id2 {
		t.Error("classes built from the same ranges in different order should dedup to one ID")
	}
}
