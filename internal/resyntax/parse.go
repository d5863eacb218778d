package resyntax

import (
	"strconv"
	"strings"

	"github.com/threadvm/retwo/internal/arena"
	"github.com/threadvm/retwo/internal/charclass"
	"github.com/threadvm/retwo/internal/rerr"
	"github.com/threadvm/retwo/internal/runeio"
	"github.com/threadvm/retwo/internal/udata"
)

// parser holds recursive-descent state for one Parse call. Precedence,
// lowest to highest: Alternate > Concat > Repeat > Atom, per spec.md §4.1.
type parser struct {
	src     string
	pos     int
	arena   *arena.Arena
	flags   Flags
	ncap    int
	names   map[string]int
}

// Parse turns pattern text into an AST under the given initial flag set.
// The returned int is the number of explicit capture groups (group 0, the
// whole match, is not counted).
func Parse(pattern string, flags Flags, ar *arena.Arena) (*Node, int, error) {
	p := &parser{src: pattern, flags: flags, arena: ar, names: map[string]int{}}
	root, err := p.parseAlternate()
	if err != nil {
		return nil, 0, err
	}
	if !p.eof() {
		if p.cur() == ')' {
			return nil, 0, p.errorf(p.pos, "unexpected )")
		}
		return nil, 0, p.errorf(p.pos, "unexpected trailing input")
	}
	return root, p.ncap, nil
}

func (p *parser) newNode(op Op) *Node {
	p.arena.Track(1)
	return &Node{Op: op}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) cur() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(pos int, format string, args ...any) *rerr.CompileError {
	return rerr.NewCompileError(rerr.Parse, p.src, pos, format, args...)
}

// nextRune decodes the code point at the current position without
// consuming it.
func (p *parser) nextRune() (r rune, size int, valid bool) {
	return runeio.Decode([]byte(p.src), p.pos)
}

// ---- Alternate > Concat > Repeat > Atom ----

func (p *parser) parseAlternate() (*Node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.cur() != '|' {
		return first, nil
	}
	children := []*Node{first}
	for !p.eof() && p.cur() == '|' {
		p.pos++
		next, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	n := p.newNode(OpAlternate)
	n.Children = children
	return n, nil
}

func (p *parser) parseConcat() (*Node, error) {
	var children []*Node
	for !p.eof() && p.cur() != '|' && p.cur() != ')' {
		n, err := p.parseRepeat(children)
		if err != nil {
			return nil, err
		}
		if n == nil { // inline flag-only group like (?i), no node produced
			continue
		}
		children = append(children, n)
	}
	children = mergeLiterals(children)
	switch len(children) {
	case 0:
		return p.newNode(OpEmpty), nil
	case 1:
		return children[0], nil
	default:
		n := p.newNode(OpConcat)
		n.Children = children
		return n, nil
	}
}

// mergeLiterals coalesces adjacent Literal nodes with the same fold flag
// into one multi-code-point literal, per spec.md §4.1's "adjacent Literal
// children... merged" optimization.
func mergeLiterals(children []*Node) []*Node {
	out := children[:0:0]
	for _, c := range children {
		if c.Op == OpLiteral && len(out) > 0 {
			last := out[len(out)-1]
			if last.Op == OpLiteral && last.FoldCase == c.FoldCase {
				last.Rune = append(last.Rune, c.Rune...)
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func (p *parser) parseRepeat(prevSiblings []*Node) (*Node, error) {
	startPos := p.pos
	atom, err := p.parseAtom(prevSiblings)
	if err != nil {
		return nil, err
	}
	if atom == nil {
		return nil, nil
	}
	for {
		if p.eof() {
			return atom, nil
		}
		switch p.cur() {
		case '*', '+', '?':
			op := p.cur()
			p.pos++
			lazy := false
			if !p.eof() && p.cur() == '?' {
				lazy = true
				p.pos++
			}
			greedy := p.flags.greedyFor(lazy)
			atom = p.wrapRepeat(op, atom, greedy, startPos)
		case '{':
			save := p.pos
			n, ok, err := p.tryParseCountedRepeat(atom)
			if err != nil {
				return nil, err
			}
			if !ok {
				p.pos = save
				return atom, nil
			}
			atom = n
		default:
			return atom, nil
		}
		startPos = -1 // a second quantifier on the same atom is a parse error below
		if !p.eof() && isRepeatOp(p.cur()) {
			return nil, p.errorf(p.pos, "invalid nested repetition operator")
		}
	}
}

func isRepeatOp(b byte) bool { return b == '*' || b == '+' || b == '?' }

func (p *parser) wrapRepeat(op byte, atom *Node, greedy bool, startPos int) *Node {
	var kind Op
	switch op {
	case '*':
		kind = OpStar
	case '+':
		kind = OpPlus
	case '?':
		kind = OpQuest
	}
	_ = startPos
	n := p.newNode(kind)
	n.Sub = atom
	n.Greedy = greedy
	return n
}

// tryParseCountedRepeat parses "{n}", "{n,}", "{n,m}" starting at '{'. If
// the brace content doesn't look like a repetition spec at all, it is not
// an error: the caller treats '{' as a literal character (matching common
// practice in every RE2-family engine).
func (p *parser) tryParseCountedRepeat(atom *Node) (*Node, bool, error) {
	braceStart := p.pos
	p.pos++ // consume '{'
	digStart := p.pos
	for !p.eof() && isDigit(p.cur()) {
		p.pos++
	}
	if p.pos == digStart {
		return nil, false, nil // "{" not followed by a digit: not a repeat spec
	}
	minStr := p.src[digStart:p.pos]
	max := -1
	hasComma := false
	if !p.eof() && p.cur() == ',' {
		hasComma = true
		p.pos++
		maxStart := p.pos
		for !p.eof() && isDigit(p.cur()) {
			p.pos++
		}
		if p.pos > maxStart {
			m, err := strconv.Atoi(p.src[maxStart:p.pos])
			if err != nil {
				return nil, false, p.errorf(braceStart, "invalid repetition count")
			}
			max = m
		}
	}
	if p.eof() || p.cur() != '}' {
		return nil, false, nil // not a well-formed repeat spec: treat '{' as literal
	}
	p.pos++ // consume '}'

	min, err := strconv.Atoi(minStr)
	if err != nil {
		return nil, false, p.errorf(braceStart, "invalid repetition count")
	}
	if !hasComma {
		max = min
	}
	if max != -1 && max < min {
		return nil, false, p.errorf(braceStart, "invalid repetition bounds {%d,%d}", min, max)
	}
	if min > 1000 || max > 1000 {
		return nil, false, p.errorf(braceStart, "repetition count too large")
	}

	lazy := false
	if !p.eof() && p.cur() == '?' {
		lazy = true
		p.pos++
	}
	n := p.newNode(OpRepeat)
	n.Sub = atom
	n.Min = min
	n.Max = max
	n.Greedy = p.flags.greedyFor(lazy)
	return n, true, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseAtom parses one atom: literal, `.`, anchors, a character class, or a
// group. Returns (nil, nil) only for a pure inline-flag group like "(?i)",
// which changes parser state but produces no AST node.
func (p *parser) parseAtom(prevSiblings []*Node) (*Node, error) {
	if p.eof() {
		return nil, nil
	}
	switch b := p.cur(); b {
	case '*', '+', '?':
		return nil, p.errorf(p.pos, "nothing to repeat")
	case '{':
		// Only an error if it actually parses as a repeat spec with nothing
		// before it; otherwise it will be treated as a literal below.
		save := p.pos
		if _, ok, _ := p.tryParseCountedRepeat(nil); ok {
			p.pos = save
			return nil, p.errorf(p.pos, "nothing to repeat")
		}
		p.pos = save
	case '.':
		p.pos++
		if p.flags.DotAll {
			return p.newNode(OpAnyChar), nil
		}
		return p.newNode(OpAnyCharNotNL), nil
	case '^':
		p.pos++
		if p.flags.Multiline {
			return p.newNode(OpBeginLine), nil
		}
		return p.newNode(OpBeginText), nil
	case '$':
		p.pos++
		if p.flags.Multiline {
			return p.newNode(OpEndLine), nil
		}
		return p.newNode(OpEndText), nil
	case '[':
		return p.parseClass()
	case '(':
		return p.parseGroup()
	case '\\':
		return p.parseEscapeAtom()
	case ')':
		return nil, nil
	}
	r, size, valid := p.nextRune()
	if !valid {
		return nil, p.errorf(p.pos, "invalid UTF-8 in pattern")
	}
	p.pos += size
	n := p.newNode(OpLiteral)
	n.Rune = []rune{r}
	n.FoldCase = p.flags.CaseInsensitive
	return n, nil
}

// ---- Groups ----

func (p *parser) parseGroup() (*Node, error) {
	groupStart := p.pos
	p.pos++ // consume '('
	savedFlags := p.flags

	if !p.eof() && p.cur() == '?' {
		n, handled, err := p.parseExtendedGroup(groupStart)
		if err != nil {
			return nil, err
		}
		if handled {
			// A flag-only group like "(?i)" yields no node; its flags stay in
			// effect for the rest of the enclosing group.
			if n != nil {
				p.flags = savedFlags
			}
			return n, nil
		}
	} else {
		p.ncap++
		idx := p.ncap
		sub, err := p.parseAlternate()
		if err != nil {
			return nil, err
		}
		if err := p.expectClose(groupStart); err != nil {
			return nil, err
		}
		n := p.newNode(OpCapture)
		n.CapIndex = idx
		n.Sub = sub
		p.flags = savedFlags
		return n, nil
	}
	p.flags = savedFlags
	return nil, nil
}

// parseExtendedGroup parses everything starting with "(?" -- non-capturing
// groups, named captures, lookaround, and inline flag groups. handled is
// false only if the caller should fall through (never happens here; kept
// for symmetry with parseGroup's structure).
func (p *parser) parseExtendedGroup(groupStart int) (*Node, bool, error) {
	p.pos++ // consume '?'
	if p.eof() {
		return nil, true, p.errorf(p.pos, "unterminated group")
	}
	switch p.cur() {
	case ':':
		p.pos++
		sub, err := p.parseAlternate()
		if err != nil {
			return nil, true, err
		}
		if err := p.expectClose(groupStart); err != nil {
			return nil, true, err
		}
		return sub, true, nil
	case '=':
		p.pos++
		return p.parseLookaround(groupStart, OpLookahead)
	case '!':
		p.pos++
		return p.parseLookaround(groupStart, OpNegLookahead)
	case 'P', '<':
		return p.parseNamedOrLookbehind(groupStart)
	default:
		return p.parseInlineFlags(groupStart)
	}
}

func (p *parser) parseLookaround(groupStart int, op Op) (*Node, bool, error) {
	sub, err := p.parseAlternate()
	if err != nil {
		return nil, true, err
	}
	if err := p.expectClose(groupStart); err != nil {
		return nil, true, err
	}
	n := p.newNode(op)
	n.Sub = sub
	return n, true, nil
}

func (p *parser) parseNamedOrLookbehind(groupStart int) (*Node, bool, error) {
	if p.cur() == 'P' {
		p.pos++
		if p.eof() || p.cur() != '<' {
			return nil, true, p.errorf(p.pos, "expected '<' after (?P")
		}
	}
	p.pos++ // consume '<'
	if !p.eof() && (p.cur() == '=' || p.cur() == '!') {
		neg := p.cur() == '!'
		p.pos++
		sub, err := p.parseAlternate()
		if err != nil {
			return nil, true, err
		}
		if err := p.expectClose(groupStart); err != nil {
			return nil, true, err
		}
		op := OpLookbehind
		if neg {
			op = OpNegLookbehind
		}
		n := p.newNode(op)
		n.Sub = sub
		return n, true, nil
	}
	// Named capture: (?P<name>...) or (?<name>...)
	nameStart := p.pos
	for !p.eof() && p.cur() != '>' {
		p.pos++
	}
	if p.eof() {
		return nil, true, p.errorf(groupStart, "unterminated capture name")
	}
	name := p.src[nameStart:p.pos]
	if !validCaptureName(name) {
		return nil, true, p.errorf(nameStart, "invalid capture group name %q", name)
	}
	if _, dup := p.names[name]; dup {
		return nil, true, p.errorf(nameStart, "duplicate capture group name %q", name)
	}
	p.pos++ // consume '>'
	p.ncap++
	idx := p.ncap
	p.names[name] = idx
	sub, err := p.parseAlternate()
	if err != nil {
		return nil, true, err
	}
	if err := p.expectClose(groupStart); err != nil {
		return nil, true, err
	}
	n := p.newNode(OpCapture)
	n.CapIndex = idx
	n.CapName = name
	n.Sub = sub
	return n, true, nil
}

func validCaptureName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// parseInlineFlags parses "(?flags)" (scopes to the rest of the enclosing
// group) and "(?flags:...)" (scopes to the parenthesized expression).
func (p *parser) parseInlineFlags(groupStart int) (*Node, bool, error) {
	newFlags := p.flags
	neg := false
	sawFlag := false
	for {
		if p.eof() {
			return nil, true, p.errorf(groupStart, "unterminated flag group")
		}
		c := p.cur()
		switch c {
		case 'i':
			newFlags.CaseInsensitive = !neg
			sawFlag = true
		case 'm':
			newFlags.Multiline = !neg
			sawFlag = true
		case 's':
			newFlags.DotAll = !neg
			sawFlag = true
		case 'U':
			newFlags.Ungreedy = !neg
			sawFlag = true
		case '-':
			if neg {
				return nil, true, p.errorf(p.pos, "invalid flag syntax")
			}
			neg = true
			p.pos++
			continue
		case ':':
			p.pos++
			p.flags = newFlags
			sub, err := p.parseAlternate()
			if err != nil {
				return nil, true, err
			}
			if err := p.expectClose(groupStart); err != nil {
				return nil, true, err
			}
			return sub, true, nil
		case ')':
			if neg && !sawFlag {
				return nil, true, p.errorf(p.pos, "invalid flag syntax")
			}
			p.pos++
			p.flags = newFlags
			return nil, true, nil
		default:
			return nil, true, p.errorf(p.pos, "invalid flag character %q", string(c))
		}
		p.pos++
	}
}

func (p *parser) expectClose(groupStart int) error {
	if p.eof() || p.cur() != ')' {
		return p.errorf(groupStart, "missing closing )")
	}
	p.pos++
	return nil
}

// ---- Escapes outside a class ----

func (p *parser) parseEscapeAtom() (*Node, error) {
	escStart := p.pos
	p.pos++ // consume '\'
	if p.eof() {
		return nil, p.errorf(escStart, "trailing backslash")
	}
	c := p.cur()

	switch c {
	case 'A':
		p.pos++
		return p.newNode(OpBeginText), nil
	case 'z':
		p.pos++
		return p.newNode(OpEndText), nil
	case 'b':
		p.pos++
		return p.newNode(OpWordBoundary), nil
	case 'B':
		p.pos++
		return p.newNode(OpNoWordBoundary), nil
	case 'd', 'D', 's', 'S', 'w', 'W':
		p.pos++
		cls, _ := udata.PerlClass(string(c))
		n := p.newNode(OpCharClass)
		n.Class = applyFold(cls, p.flags.CaseInsensitive)
		return n, nil
	case 'p', 'P':
		return p.parseUnicodeProperty(escStart)
	case 'k':
		return p.parseNamedBackref(escStart)
	}
	if c >= '1' && c <= '9' {
		p.pos++
		idx := int(c - '0')
		for !p.eof() && isDigit(p.cur()) {
			idx = idx*10 + int(p.cur()-'0')
			p.pos++
		}
		n := p.newNode(OpBackref)
		n.BackrefIndex = idx
		return n, nil
	}

	r, _, err := p.parseEscapedRune(escStart)
	if err != nil {
		return nil, err
	}
	n := p.newNode(OpLiteral)
	n.Rune = []rune{r}
	n.FoldCase = p.flags.CaseInsensitive
	return n, nil
}

func (p *parser) parseNamedBackref(escStart int) (*Node, error) {
	p.pos++ // consume 'k'
	if p.eof() || p.cur() != '<' {
		return nil, p.errorf(escStart, "expected '<' after \\k")
	}
	p.pos++
	nameStart := p.pos
	for !p.eof() && p.cur() != '>' {
		p.pos++
	}
	if p.eof() {
		return nil, p.errorf(escStart, "unterminated named backreference")
	}
	name := p.src[nameStart:p.pos]
	p.pos++
	n := p.newNode(OpBackref)
	n.BackrefName = name
	return n, nil
}

func (p *parser) parseUnicodeProperty(escStart int) (*Node, error) {
	negate := p.cur() == 'P'
	p.pos++ // consume 'p'/'P'
	var name string
	if !p.eof() && p.cur() == '{' {
		p.pos++
		nameStart := p.pos
		for !p.eof() && p.cur() != '}' {
			p.pos++
		}
		if p.eof() {
			return nil, p.errorf(escStart, "unterminated \\p{...}")
		}
		name = p.src[nameStart:p.pos]
		p.pos++
	} else if !p.eof() {
		name = string(p.cur())
		p.pos++
	} else {
		return nil, p.errorf(escStart, "missing property name")
	}
	if strings.HasPrefix(name, "^") {
		negate = !negate
		name = name[1:]
	}
	cls, ok := udata.Property(name)
	if !ok {
		return nil, p.errorf(escStart, "unknown Unicode property %q", name)
	}
	if negate {
		cls = cls.Negate()
	}
	n := p.newNode(OpCharClass)
	n.Class = applyFold(cls, p.flags.CaseInsensitive)
	return n, nil
}

// parseEscapedRune resolves a single-character escape (\n, \xNN, \x{H...},
// \uNNNN, or an escaped metacharacter/punctuation) to its code point. Used
// both outside and inside character classes.
func (p *parser) parseEscapedRune(escStart int) (rune, int, error) {
	c := p.cur()
	switch c {
	case 'n':
		p.pos++
		return '\n', 1, nil
	case 't':
		p.pos++
		return '\t', 1, nil
	case 'r':
		p.pos++
		return '\r', 1, nil
	case 'f':
		p.pos++
		return '\f', 1, nil
	case 'v':
		p.pos++
		return '\v', 1, nil
	case 'a':
		p.pos++
		return '\a', 1, nil
	case '0':
		p.pos++
		return 0, 1, nil
	case 'x':
		return p.parseHexEscape(escStart)
	case 'u':
		p.pos++
		return p.parseFixedHex(escStart, 4)
	case 'U':
		p.pos++
		return p.parseFixedHex(escStart, 8)
	}
	if isAlnum(c) {
		return 0, 0, p.errorf(escStart, "invalid escape sequence '\\%c'", c)
	}
	r, size, valid := p.nextRune()
	if !valid {
		return 0, 0, p.errorf(escStart, "invalid UTF-8 after backslash")
	}
	p.pos += size
	return r, size, nil
}

func (p *parser) parseHexEscape(escStart int) (rune, int, error) {
	p.pos++ // consume 'x'
	if !p.eof() && p.cur() == '{' {
		p.pos++
		hexStart := p.pos
		for !p.eof() && p.cur() != '}' {
			p.pos++
		}
		if p.eof() {
			return 0, 0, p.errorf(escStart, "unterminated \\x{...}")
		}
		hex := p.src[hexStart:p.pos]
		p.pos++
		v, err := strconv.ParseInt(hex, 16, 32)
		if err != nil || v > 0x10FFFF {
			return 0, 0, p.errorf(escStart, "invalid \\x{%s}", hex)
		}
		return rune(v), 1, nil
	}
	return p.parseFixedHex(escStart, 2)
}

func (p *parser) parseFixedHex(escStart int, n int) (rune, int, error) {
	if p.pos+n > len(p.src) {
		return 0, 0, p.errorf(escStart, "incomplete hex escape")
	}
	hex := p.src[p.pos : p.pos+n]
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, 0, p.errorf(escStart, "invalid hex escape \\%s", hex)
	}
	p.pos += n
	return rune(v), 1, nil
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func applyFold(cls charclass.Class, fold bool) charclass.Class {
	if !fold {
		return cls
	}
	return cls.CaseFold(udata.SimpleFold)
}
