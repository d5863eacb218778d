package charclass

import "strings"

// ID identifies a class stored in a Pool.
type ID int

// Pool deduplicates classes by their canonical range list so that two
// identical classes compiled from different parts of a pattern (or from two
// different patterns during a fuzz/property sweep) share one Class
// instruction in the compiled program, per spec.md §4.4.
type Pool struct {
	byKey map[string]ID
	list  []Class
}

// NewPool creates an empty class pool.
func NewPool() *Pool {
	return &Pool{byKey: make(map[string]ID)}
}

// Intern returns the ID for c, adding it to the pool if this is the first
// time an equal class has been seen.
func (p *Pool) Intern(c Class) ID {
	key := classKey(c)
	if id, ok := p.byKey[key]; ok {
		return id
	}
	id := ID(len(p.list))
	p.list = append(p.list, c)
	p.byKey[key] = id
	return id
}

// Get returns the class stored under id.
func (p *Pool) Get(id ID) Class {
	return p.list[id]
}

// Len returns the number of distinct classes interned so far.
func (p *Pool) Len() int {
	return len(p.list)
}

func classKey(c Class) string {
	var b strings.Builder
	for _, r := range c.ranges {
		b.WriteRune(r.Lo)
		b.WriteByte(0)
		b.WriteRune(r.Hi)
		b.WriteByte(';')
	}
	return b.String()
}
