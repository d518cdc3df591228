package comb2

import "fmt"

// This file implements the logic combinators as plain recursive Go calls —
// recursive-descent recursion needs no trampoline, since native call stacks
// suffice — rather than a trampoline/continuation-passing engine. Every
// combinator here restores seq.Rptr itself on NotMatch and propagates Fatal
// without transformation.

type andCombinator struct {
	a, b Combinator
}

// And runs a then, only if it matched, b; the result is b's status.
func And(a, b Combinator) Combinator {
	return andCombinator{a: a, b: b}
}

func (c andCombinator) Match(seq *Sequencer, ctx Context) Status {
	ptr := seq.Rptr
	st := c.a.Match(seq, ctx)
	if st == Match {
		st = c.b.Match(seq, ctx)
	}
	if st == NotMatch {
		seq.Rptr = ptr
	}
	return st
}

func (c andCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	c.a.MustMatchError(seq, ctx)
	c.b.MustMatchError(seq, ctx)
}

func (c andCombinator) String() string { return fmt.Sprintf("(%v %v)", c.a, c.b) }

type orCombinator struct {
	a, b Combinator
}

// Or tries a; on NotMatch restores the cursor and tries b. Fatal from
// either short-circuits immediately.
func Or(a, b Combinator) Combinator {
	return orCombinator{a: a, b: b}
}

func (c orCombinator) Match(seq *Sequencer, ctx Context) Status {
	ptr := seq.Rptr
	logicEntry(ctx, BranchEntry)
	st := c.a.Match(seq, ctx)
	if st == Match {
		logicResult(ctx, BranchResult, st)
		return st
	}
	if st == Fatal {
		return Fatal
	}
	logicResult(ctx, BranchOther, st)
	logicEntry(ctx, BranchOther)
	seq.Rptr = ptr
	st = c.b.Match(seq, ctx)
	logicResult(ctx, BranchResult, st)
	return st
}

func (c orCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	c.a.MustMatchError(seq, ctx)
	c.b.MustMatchError(seq, ctx)
}

func (c orCombinator) String() string { return fmt.Sprintf("(%v / %v)", c.a, c.b) }

type optionalCombinator struct {
	a Combinator
}

// Optional always succeeds; on NotMatch it restores the cursor.
func Optional(a Combinator) Combinator {
	if _, ok := a.(repeatCombinator); ok {
		// Optional(Repeat(x)) is the canonical "zero or more" shape ('*');
		// nothing to reject here. The rejected shape is the reverse nesting,
		// enforced in Repeat below.
	}
	return optionalCombinator{a: a}
}

func (c optionalCombinator) Match(seq *Sequencer, ctx Context) Status {
	ptr := seq.Rptr
	logicEntry(ctx, OptionalEntry)
	st := c.a.Match(seq, ctx)
	if st == Fatal {
		return Fatal
	}
	if st == NotMatch {
		seq.Rptr = ptr
	}
	logicResult(ctx, OptionalResult, st)
	return Match
}

func (c optionalCombinator) MustMatchError(seq *Sequencer, ctx Context) {}

func (c optionalCombinator) String() string { return fmt.Sprintf("%v?", c.a) }

type repeatCombinator struct {
	a Combinator
}

// Repeat matches one-or-more repetitions of a. It panics at construction
// time if a is itself an Optional: Optional always matches, possibly
// without advancing, so Repeat(Optional(x)) would trip the infinite-loop
// guard as soon as x stops matching. The correct shape is
// Optional(Repeat(x)).
func Repeat(a Combinator) Combinator {
	if _, ok := a.(optionalCombinator); ok {
		panic(errorRepeatOfOptional)
	}
	return repeatCombinator{a: a}
}

func (c repeatCombinator) Match(seq *Sequencer, ctx Context) Status {
	logicEntry(ctx, RepeatEntry)
	count := 0
	for {
		before := seq.Rptr
		st := c.a.Match(seq, ctx)
		if st == Fatal {
			return Fatal
		}
		if st == NotMatch {
			seq.Rptr = before
			break
		}
		if seq.Rptr <= before {
			reportErrorSeq(ctx, seq, "detect infinity loop at ", before)
			return Fatal
		}
		count++
		logicEntry(ctx, RepeatStep)
	}
	var final Status
	if count > 0 {
		final = Match
	} else {
		final = NotMatch
	}
	logicResult(ctx, RepeatResult, final)
	return final
}

func (c repeatCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	c.a.MustMatchError(seq, ctx)
}

func (c repeatCombinator) String() string { return fmt.Sprintf("%v+", c.a) }

type limitedRepeatCombinator struct {
	min, max int // max < 0 means unbounded
	a        Combinator
}

// LimitedRepeat matches between min and max (inclusive, max<0 = unbounded)
// repetitions of a; Match iff at least min iterations succeeded.
func LimitedRepeat(min, max int, a Combinator) Combinator {
	return limitedRepeatCombinator{min: min, max: max, a: a}
}

func (c limitedRepeatCombinator) Match(seq *Sequencer, ctx Context) Status {
	start := seq.Rptr
	logicEntry(ctx, RepeatEntry)
	count := 0
	for c.max < 0 || count < c.max {
		before := seq.Rptr
		st := c.a.Match(seq, ctx)
		if st == Fatal {
			return Fatal
		}
		if st == NotMatch {
			seq.Rptr = before
			break
		}
		if seq.Rptr <= before {
			reportErrorSeq(ctx, seq, "detect infinity loop at ", before)
			return Fatal
		}
		count++
		logicEntry(ctx, RepeatStep)
	}
	var final Status
	if count >= c.min {
		final = Match
	} else {
		final = NotMatch
		seq.Rptr = start
	}
	logicResult(ctx, RepeatResult, final)
	return final
}

func (c limitedRepeatCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	c.a.MustMatchError(seq, ctx)
}

func (c limitedRepeatCombinator) String() string {
	return fmt.Sprintf("%v{%d,%d}", c.a, c.min, c.max)
}

type mustMatchCombinator struct {
	a Combinator
}

// MustMatch is the cut: if a fails to match, MustMatch reports a's
// diagnostic and returns Fatal instead of NotMatch.
func MustMatch(a Combinator) Combinator {
	return mustMatchCombinator{a: a}
}

func (c mustMatchCombinator) Match(seq *Sequencer, ctx Context) Status {
	st := c.a.Match(seq, ctx)
	if st == NotMatch {
		c.a.MustMatchError(seq, ctx)
		return Fatal
	}
	return st
}

func (c mustMatchCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	c.a.MustMatchError(seq, ctx)
}

func (c mustMatchCombinator) String() string { return fmt.Sprintf("%v!", c.a) }

type peekCombinator struct {
	a Combinator
}

// Peek runs a speculatively: the cursor and any committed tree state are
// always restored, and a's own Match/NotMatch is forwarded unchanged. A
// Fatal from a is additionally reported via ctx before being forwarded.
func Peek(a Combinator) Combinator {
	return peekCombinator{a: a}
}

func (c peekCombinator) Match(seq *Sequencer, ctx Context) Status {
	logicEntry(ctx, PeekBegin)
	ptr := seq.Rptr
	st := c.a.Match(seq, ctx)
	seq.Rptr = ptr
	logicResult(ctx, PeekEnd, st)
	if st == Fatal {
		reportError(ctx, "fatal at peeking")
	}
	return st
}

func (c peekCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	c.a.MustMatchError(seq, ctx)
}

func (c peekCombinator) String() string { return fmt.Sprintf("^%v", c.a) }

type notCombinator struct {
	a Combinator
}

// Not is Peek with Match/NotMatch inverted; Fatal still propagates as
// Fatal.
func Not(a Combinator) Combinator {
	return notCombinator{a: a}
}

func (c notCombinator) Match(seq *Sequencer, ctx Context) Status {
	logicEntry(ctx, PeekBegin)
	ptr := seq.Rptr
	st := c.a.Match(seq, ctx)
	seq.Rptr = ptr
	logicResult(ctx, PeekEnd, st)
	switch st {
	case Match:
		return NotMatch
	case NotMatch:
		return Match
	default:
		reportError(ctx, "fatal at peeking")
		return Fatal
	}
}

func (c notCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("expected not %v but matched", c.a))
}

func (c notCombinator) String() string { return fmt.Sprintf("~%v", c.a) }
