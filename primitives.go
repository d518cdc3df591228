package comb2

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// literalCombinator matches a fixed string ("seek_if" for multi-byte
// literals, basic/literal.h's Literal<Lit> for the integral/non-integral
// split).
type literalCombinator struct {
	text string
}

// Lit matches text literally at the cursor.
func Lit(text string) Combinator {
	return literalCombinator{text: text}
}

func (l literalCombinator) Match(seq *Sequencer, ctx Context) Status {
	if len(l.text) == 1 {
		if seq.ConsumeIf(l.text[0]) {
			return Match
		}
		return NotMatch
	}
	if seq.SeekIf(l.text) {
		return Match
	}
	return NotMatch
}

func (l literalCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected literal %q but not", l.text))
}

func (l literalCombinator) String() string { return fmt.Sprintf("%q", l.text) }

// oneOfCombinator matches iff the current byte appears in set (basic/literal.h
// OneOfLiteral<Lit>).
type oneOfCombinator struct {
	set string
}

// OneOf matches a single byte that appears anywhere in set.
func OneOf(set string) Combinator {
	return oneOfCombinator{set: set}
}

func (o oneOfCombinator) Match(seq *Sequencer, ctx Context) Status {
	cur, ok := seq.Current(0)
	if !ok {
		return NotMatch
	}
	if strings.IndexByte(o.set, cur) >= 0 {
		seq.Consume()
		return Match
	}
	return NotMatch
}

func (o oneOfCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected one of %q but not", o.set))
}

func (o oneOfCombinator) String() string { return fmt.Sprintf("[%s]", o.set) }

// noneOfCombinator matches iff the current byte does NOT appear in set and
// is not end-of-input. Used by composite scanners (e.g. a c_str body byte
// excluding quote/backslash/newline).
type noneOfCombinator struct {
	set string
}

// NoneOf matches a single byte that is present in the input but absent
// from set.
func NoneOf(set string) Combinator {
	return noneOfCombinator{set: set}
}

func (o noneOfCombinator) Match(seq *Sequencer, ctx Context) Status {
	cur, ok := seq.Current(0)
	if !ok {
		return NotMatch
	}
	if strings.IndexByte(o.set, cur) >= 0 {
		return NotMatch
	}
	seq.Consume()
	return Match
}

func (o noneOfCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected byte outside %q but not", o.set))
}

func (o noneOfCombinator) String() string { return fmt.Sprintf("[^%s]", o.set) }

// rangeCombinator matches a single byte in [lo, hi] (basic/literal.h
// RangeLiteral<LitA,LitB>).
type rangeCombinator struct {
	lo, hi byte
}

// Range matches a single byte b with lo <= b <= hi.
func Range(lo, hi byte) Combinator {
	return rangeCombinator{lo: lo, hi: hi}
}

func (r rangeCombinator) Match(seq *Sequencer, ctx Context) Status {
	cur, ok := seq.Current(0)
	if !ok || cur < r.lo || cur > r.hi {
		return NotMatch
	}
	seq.Consume()
	return Match
}

func (r rangeCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected range [%c-%c] but not", r.lo, r.hi))
}

func (r rangeCombinator) String() string { return fmt.Sprintf("[%c-%c]", r.lo, r.hi) }

// eosCombinator matches only at end of input.
type eosCombinator struct{}

// EOS matches iff the cursor is at end of input.
var EOS Combinator = eosCombinator{}

func (eosCombinator) Match(seq *Sequencer, ctx Context) Status {
	if seq.Eos() {
		return Match
	}
	return NotMatch
}
func (eosCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, "expected end of input but not")
}
func (eosCombinator) String() string { return "<eos>" }

// bosCombinator matches only at start of input.
type bosCombinator struct{}

// BOS matches iff the cursor is at the very start of the input.
var BOS Combinator = bosCombinator{}

func (bosCombinator) Match(seq *Sequencer, ctx Context) Status {
	if seq.Rptr == 0 {
		return Match
	}
	return NotMatch
}
func (bosCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, "expected start of input but not")
}
func (bosCombinator) String() string { return "<bos>" }

// bolCombinator matches at start of input or immediately after a CR/LF.
type bolCombinator struct{}

// BOL matches iff the cursor is at start of input or right after \r or \n.
var BOL Combinator = bolCombinator{}

func (bolCombinator) Match(seq *Sequencer, ctx Context) Status {
	if seq.Rptr == 0 {
		return Match
	}
	if prev, ok := seq.Current(-1); ok && (prev == '\r' || prev == '\n') {
		return Match
	}
	return NotMatch
}
func (bolCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, "expected start of line but not")
}
func (bolCombinator) String() string { return "<bol>" }

// nullCombinator always matches without consuming, used as a left-fold seed
// ("and_(with_auto_rule(null), g)").
type nullCombinator struct{}

// Null always matches and never advances the cursor.
var Null Combinator = nullCombinator{}

func (nullCombinator) Match(seq *Sequencer, ctx Context) Status { return Match }
func (nullCombinator) MustMatchError(seq *Sequencer, ctx Context) {
}
func (nullCombinator) String() string { return "<null>" }

// Unicode decoding primitives (basic/unicode.h): decode one UTF-8 code
// point; on decode failure consult ctx's UTFErrorHook to decide Fatal vs
// NotMatch.

func decodeRune(seq *Sequencer, ctx Context) (rune, int, Status) {
	if seq.Eos() {
		return 0, 0, NotMatch
	}
	r, size := utf8.DecodeRuneInString(seq.Remain())
	if r == utf8.RuneError && size <= 1 {
		if isFatalUTFError(ctx, seq, errorf("invalid utf-8 sequence at byte %d", seq.Rptr)) {
			return 0, 0, Fatal
		}
		return 0, 0, NotMatch
	}
	return r, size, Match
}

type unicodeLiteralCombinator struct {
	r rune
}

// ULit matches a single Unicode code point literally.
func ULit(r rune) Combinator {
	return unicodeLiteralCombinator{r: r}
}

func (u unicodeLiteralCombinator) Match(seq *Sequencer, ctx Context) Status {
	ptr := seq.Rptr
	code, size, st := decodeRune(seq, ctx)
	if st != Match {
		return st
	}
	if code != u.r {
		seq.Rptr = ptr
		return NotMatch
	}
	seq.ConsumeN(size)
	return Match
}

func (u unicodeLiteralCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected unicode literal %q but not", u.r))
}
func (u unicodeLiteralCombinator) String() string { return fmt.Sprintf("u%q", u.r) }

type unicodeOneOfCombinator struct {
	set []rune
}

// UOneOf matches one code point that appears in set.
func UOneOf(set ...rune) Combinator {
	return unicodeOneOfCombinator{set: set}
}

func (u unicodeOneOfCombinator) Match(seq *Sequencer, ctx Context) Status {
	ptr := seq.Rptr
	code, size, st := decodeRune(seq, ctx)
	if st != Match {
		return st
	}
	for _, r := range u.set {
		if r == code {
			seq.ConsumeN(size)
			return Match
		}
	}
	seq.Rptr = ptr
	return NotMatch
}

func (u unicodeOneOfCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, "expected one of unicode ", string(u.set), " but not")
}
func (u unicodeOneOfCombinator) String() string { return fmt.Sprintf("u[%s]", string(u.set)) }

type unicodeRangeCombinator struct {
	lo, hi rune
}

// URange matches one code point in [lo, hi].
func URange(lo, hi rune) Combinator {
	return unicodeRangeCombinator{lo: lo, hi: hi}
}

func (u unicodeRangeCombinator) Match(seq *Sequencer, ctx Context) Status {
	ptr := seq.Rptr
	code, size, st := decodeRune(seq, ctx)
	if st != Match {
		return st
	}
	if code < u.lo || code > u.hi {
		seq.Rptr = ptr
		return NotMatch
	}
	seq.ConsumeN(size)
	return Match
}

func (u unicodeRangeCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected unicode range [%c-%c] but not", u.lo, u.hi))
}
func (u unicodeRangeCombinator) String() string { return fmt.Sprintf("u[%c-%c]", u.lo, u.hi) }

type unicodeAnyCombinator struct{}

// UAny matches any single well-formed code point.
var UAny Combinator = unicodeAnyCombinator{}

func (unicodeAnyCombinator) Match(seq *Sequencer, ctx Context) Status {
	_, size, st := decodeRune(seq, ctx)
	if st != Match {
		return st
	}
	seq.ConsumeN(size)
	return Match
}

func (unicodeAnyCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, "expected any unicode character but not")
}
func (unicodeAnyCombinator) String() string { return "<uany>" }
