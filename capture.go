package comb2

import "fmt"

// groupCombinator is a structural capture: it brackets a child combinator
// with begin_group/end_group hooks and records the span it covered on
// success.
type groupCombinator struct {
	tag any
	a   Combinator
}

// Group wraps a with a structural, tagged capture (basic/group.h
// Group<Tag,A>).
func Group(tag any, a Combinator) Combinator {
	return groupCombinator{tag: tag, a: a}
}

func (c groupCombinator) Match(seq *Sequencer, ctx Context) Status {
	beginGroup(ctx, c.tag)
	begin := seq.Rptr
	st := c.a.Match(seq, ctx)
	pos := NoPos
	if st == Match {
		pos = Pos{Begin: begin, End: seq.Rptr}
	}
	endGroup(ctx, st, c.tag, pos)
	return st
}

func (c groupCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("not match to group. tag: %v", c.tag))
	c.a.MustMatchError(seq, ctx)
}

func (c groupCombinator) String() string { return fmt.Sprintf("group(%v, %v)", c.tag, c.a) }

// stringCombinator is a scalar capture: while a runs, provisional-tree
// creation is suppressed (str_count semaphore, see BranchTable); on Match,
// end_string may itself downgrade the status to Fatal (a caller-side content
// validation hook).
type stringCombinator struct {
	tag any
	a   Combinator
}

// String wraps a with a scalar, tagged capture (basic/group.h
// String<Tag,A>).
func String(tag any, a Combinator) Combinator {
	return stringCombinator{tag: tag, a: a}
}

func (c stringCombinator) Match(seq *Sequencer, ctx Context) Status {
	beginString(ctx, c.tag)
	begin := seq.Rptr
	st := c.a.Match(seq, ctx)
	if st != Match {
		return endString(ctx, st, c.tag, seq, NoPos)
	}
	pos := Pos{Begin: begin, End: seq.Rptr}
	return endString(ctx, st, c.tag, seq, pos)
}

func (c stringCombinator) MustMatchError(seq *Sequencer, ctx Context) {
	reportErrorSeq(ctx, seq, fmt.Sprintf("not match to string. tag: %v", c.tag))
	c.a.MustMatchError(seq, ctx)
}

func (c stringCombinator) String() string { return fmt.Sprintf("str(%v, %v)", c.tag, c.a) }
