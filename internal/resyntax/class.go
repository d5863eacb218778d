package resyntax

import (
	"strings"

	"github.com/threadvm/retwo/internal/charclass"
	"github.com/threadvm/retwo/internal/udata"
)

// parseClass parses a bracket expression "[...]" into an OpCharClass node,
// per spec.md §4.1's "Character-class sub-parser": accumulate elements
// (single code point, range, predefined class, property class) via C4's
// union, case-fold if the insensitive flag is active, then apply the final
// negation if opened with '^'.
func (p *parser) parseClass() (*Node, error) {
	classStart := p.pos
	p.pos++ // consume '['
	negate := false
	if !p.eof() && p.cur() == '^' {
		negate = true
		p.pos++
	}

	var set charclass.Class
	first := true
	for {
		if p.eof() {
			return nil, p.errorf(classStart, "unterminated character class")
		}
		if p.cur() == ']' && !first {
			p.pos++
			break
		}
		first = false

		if p.cur() == '[' && p.pos+1 < len(p.src) && p.src[p.pos+1] == ':' {
			cls, err := p.parsePosixClass(classStart)
			if err != nil {
				return nil, err
			}
			set = set.Union(cls)
			continue
		}

		lo, loIsClass, loClass, err := p.parseClassElement(classStart)
		if err != nil {
			return nil, err
		}
		if loIsClass {
			set = set.Union(loClass)
			continue
		}

		// Possibly a range: lo '-' hi (but not if '-' is immediately before ']').
		if !p.eof() && p.cur() == '-' && p.pos+1 < len(p.src) && p.src[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hi, hiIsClass, _, err := p.parseClassElement(classStart)
			if err != nil {
				return nil, err
			}
			if hiIsClass {
				return nil, p.errorf(classStart, "invalid character range")
			}
			if hi < lo {
				return nil, p.errorf(classStart, "invalid character range: hi < lo")
			}
			set = set.Union(charclass.New(charclass.Range{Lo: lo, Hi: hi}))
			continue
		}

		set = set.Union(charclass.New(charclass.Range{Lo: lo, Hi: lo}))
	}

	if p.flags.CaseInsensitive {
		set = set.CaseFold(udata.SimpleFold)
	}
	if negate {
		set = set.Negate()
	}

	n := p.newNode(OpCharClass)
	n.Class = set
	return n, nil
}

// parseClassElement parses one class member: either a single code point
// (isClass=false) or a predefined/property class folded in directly
// (isClass=true, e.g. \d or \p{L} nested inside [...]).
func (p *parser) parseClassElement(classStart int) (r rune, isClass bool, cls charclass.Class, err error) {
	if p.cur() == '\\' {
		escStart := p.pos
		p.pos++
		if p.eof() {
			return 0, false, charclass.Class{}, p.errorf(escStart, "trailing backslash in class")
		}
		switch c := p.cur(); c {
		case 'd', 'D', 's', 'S', 'w', 'W':
			p.pos++
			pc, _ := udata.PerlClass(string(c))
			return 0, true, pc, nil
		case 'p', 'P':
			pc, perr := p.parseClassUnicodeProperty(escStart)
			if perr != nil {
				return 0, false, charclass.Class{}, perr
			}
			return 0, true, pc, nil
		}
		rv, _, e := p.parseEscapedRune(escStart)
		if e != nil {
			return 0, false, charclass.Class{}, e
		}
		return rv, false, charclass.Class{}, nil
	}
	rv, size, valid := p.nextRune()
	if !valid {
		return 0, false, charclass.Class{}, p.errorf(p.pos, "invalid UTF-8 in character class")
	}
	p.pos += size
	return rv, false, charclass.Class{}, nil
}

func (p *parser) parseClassUnicodeProperty(escStart int) (charclass.Class, error) {
	negate := p.cur() == 'P'
	p.pos++
	var name string
	if !p.eof() && p.cur() == '{' {
		p.pos++
		nameStart := p.pos
		for !p.eof() && p.cur() != '}' {
			p.pos++
		}
		if p.eof() {
			return charclass.Class{}, p.errorf(escStart, "unterminated \\p{...}")
		}
		name = p.src[nameStart:p.pos]
		p.pos++
	} else if !p.eof() {
		name = string(p.cur())
		p.pos++
	} else {
		return charclass.Class{}, p.errorf(escStart, "missing property name")
	}
	if strings.HasPrefix(name, "^") {
		negate = !negate
		name = name[1:]
	}
	cls, ok := udata.Property(name)
	if !ok {
		return charclass.Class{}, p.errorf(escStart, "unknown Unicode property %q", name)
	}
	if negate {
		cls = cls.Negate()
	}
	return cls, nil
}

// parsePosixClass parses "[:name:]" (or "[:^name:]") at the current
// position, which must be "[:".
func (p *parser) parsePosixClass(classStart int) (charclass.Class, error) {
	start := p.pos
	p.pos += 2 // consume "[:"
	negate := false
	if !p.eof() && p.cur() == '^' {
		negate = true
		p.pos++
	}
	nameStart := p.pos
	for !p.eof() && p.cur() != ':' {
		p.pos++
	}
	name := p.src[nameStart:p.pos]
	if p.eof() || p.pos+1 >= len(p.src) || p.src[p.pos] != ':' || p.src[p.pos+1] != ']' {
		return charclass.Class{}, p.errorf(start, "unterminated POSIX class")
	}
	p.pos += 2 // consume ":]"
	cls, ok := udata.PosixClass(name)
	if !ok {
		return charclass.Class{}, p.errorf(classStart, "unknown POSIX class [:%s:]", name)
	}
	if negate {
		cls = cls.Negate()
	}
	return cls, nil
}
