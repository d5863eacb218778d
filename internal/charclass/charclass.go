// Package charclass represents and manipulates sets of Unicode code points
// as sorted, non-overlapping, non-adjacent ranges. It is the shared class
// algebra used by the parser (building [...] classes), the property tables
// (\d, \w, \p{L}, POSIX classes), and the NFA compiler (one Class
// instruction per distinct class, deduplicated through a Pool).
package charclass

import "sort"

// MaxRune is the upper bound of the Unicode scalar-value domain.
const MaxRune = 0x10FFFF

// Range is an inclusive, closed interval of code points [Lo, Hi].
type Range struct {
	Lo, Hi rune
}

// Class is an ordered set of non-overlapping, non-adjacent code-point
// ranges. The zero value is the empty class. Class values are built
// immutable by convention: every method that would mutate the set instead
// returns a new Class, so a Class referenced from the class Pool (and thus
// possibly shared by several program Class instructions) is never
// surprised by a caller's in-place edit.
type Class struct {
	ranges []Range
}

// New builds a canonical Class from arbitrary (possibly unsorted,
// overlapping) ranges.
func New(ranges ...Range) Class {
	c := Class{ranges: append([]Range(nil), ranges...)}
	return c.canonicalize()
}

// Single returns a Class containing exactly one code point.
func Single(r rune) Class {
	return Class{ranges: []Range{{r, r}}}
}

// IsEmpty reports whether the class has no members.
func (c Class) IsEmpty() bool {
	return len(c.ranges) == 0
}

// Ranges returns the class's canonical ranges. The returned slice must not
// be mutated by the caller.
func (c Class) Ranges() []Range {
	return c.ranges
}

// canonicalize sorts ranges by Lo and merges overlapping or adjacent
// ranges, dropping empty/invalid (Hi < Lo) entries and clamping to the
// scalar-value domain. This is the only place range lists are normalized;
// every constructor and set operation below routes through it.
func (c Class) canonicalize() Class {
	rs := make([]Range, 0, len(c.ranges))
	for _, r := range c.ranges {
		if r.Lo < 0 {
			r.Lo = 0
		}
		if r.Hi > MaxRune {
			r.Hi = MaxRune
		}
		if r.Hi < r.Lo {
			continue
		}
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })

	merged := rs[:0]
	for _, r := range rs {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			// Adjacent ranges (hi+1 == lo) merge too: that is what keeps the
			// set "non-overlapping, non-adjacent" per the spec's canonical
			// form, and it is what makes Negate's complement well-formed.
			if r.Lo <= last.Hi+1 {
				if r.Hi > last.Hi {
					last.Hi = r.Hi
				}
				continue
			}
		}
		merged = append(merged, r)
	}
	return Class{ranges: merged}
}

// Contains reports whether r is a member of the class via binary search
// over the sorted ranges, O(log #ranges).
func (c Class) Contains(r rune) bool {
	rs := c.ranges
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Hi >= r })
	return i < len(rs) && rs[i].Lo <= r
}

// Union returns the set union of c and other.
func (c Class) Union(other Class) Class {
	merged := make([]Range, 0, len(c.ranges)+len(other.ranges))
	merged = append(merged, c.ranges...)
	merged = append(merged, other.ranges...)
	return Class{ranges: merged}.canonicalize()
}

// UnionAll unions a sequence of classes in one pass.
func UnionAll(classes ...Class) Class {
	var total int
	for _, cl := range classes {
		total += len(cl.ranges)
	}
	merged := make([]Range, 0, total)
	for _, cl := range classes {
		merged = append(merged, cl.ranges...)
	}
	return Class{ranges: merged}.canonicalize()
}

// Intersect returns the set intersection of c and other by interleaving the
// two sorted range lists.
func (c Class) Intersect(other Class) Class {
	var out []Range
	i, j := 0, 0
	a, b := c.ranges, other.ranges
	for i < len(a) && j < len(b) {
		lo := a[i].Lo
		if b[j].Lo > lo {
			lo = b[j].Lo
		}
		hi := a[i].Hi
		if b[j].Hi < hi {
			hi = b[j].Hi
		}
		if lo <= hi {
			out = append(out, Range{lo, hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return Class{ranges: out}.canonicalize()
}

// Negate returns the complement of c within the Unicode scalar-value domain
// (0..MaxRune), excluding the UTF-16 surrogate range 0xD800-0xDFFF, which is
// never a valid code point and so is never a member of any class or its
// complement.
func (c Class) Negate() Class {
	domain := New(Range{0, 0xD7FF}, Range{0xE000, MaxRune})
	return domain.subtract(c)
}

// subtract removes other's members from c.
func (c Class) subtract(other Class) Class {
	if other.IsEmpty() {
		return c
	}
	var out []Range
	for _, r := range c.ranges {
		lo := r.Lo
		for _, o := range other.ranges {
			if o.Hi < lo || o.Lo > r.Hi {
				continue
			}
			if o.Lo > lo {
				out = append(out, Range{lo, o.Lo - 1})
			}
			if o.Hi+1 > lo {
				lo = o.Hi + 1
			}
			if lo > r.Hi {
				break
			}
		}
		if lo <= r.Hi {
			out = append(out, Range{lo, r.Hi})
		}
	}
	return Class{ranges: out}.canonicalize()
}

// CaseFold expands c to include, for every member code point, every code
// point in its simple-fold equivalence set, using foldFn (supplied by
// internal/udata to avoid an import cycle).
func (c Class) CaseFold(foldFn func(rune) []rune) Class {
	extra := make([]Range, 0, len(c.ranges))
	extra = append(extra, c.ranges...)
	for _, r := range c.ranges {
		for cp := r.Lo; cp <= r.Hi; cp++ {
			for _, f := range foldFn(cp) {
				extra = append(extra, Range{f, f})
			}
			if cp == MaxRune { // guard against overflow on the unreachable max
				break
			}
		}
	}
	return Class{ranges: extra}.canonicalize()
}
