package comb2

// Dynamic is a type-erased combinator handle (basic/dynamic.h
// TypeErased<I,C,R,A>). In Go, an interface value is already a type-erased,
// single-owner handle — there is no manual allocator to parameterize, so
// this wraps a Combinator to reproduce only the behavior the source cares
// about: an empty/zero handle is distinguishable from a populated one, and
// invoking an empty handle is a Fatal match with a fixed diagnostic rather
// than a panic.
type Dynamic struct {
	inner Combinator
}

// NewDynamic wraps any Combinator in a Dynamic handle.
func NewDynamic(c Combinator) Dynamic {
	return Dynamic{inner: c}
}

// Empty reports whether this handle owns no combinator, mirroring
// TypeErased::operator bool().
func (d Dynamic) Empty() bool {
	return d.inner == nil
}

// Take returns the held combinator and clears this handle, modeling the
// source's move-construction/move-assignment (which zeroes the source).
func (d *Dynamic) Take() Combinator {
	c := d.inner
	d.inner = nil
	return c
}

// Match forwards to the held combinator, or reports Fatal if empty.
func (d Dynamic) Match(seq *Sequencer, ctx Context) Status {
	if d.inner == nil {
		reportErrorSeq(ctx, seq, "null pointer at type erased")
		return Fatal
	}
	return d.inner.Match(seq, ctx)
}

// MustMatchError forwards to the held combinator, or reports the same
// diagnostic Match itself would already have reported.
func (d Dynamic) MustMatchError(seq *Sequencer, ctx Context) {
	if d.inner == nil {
		reportErrorSeq(ctx, seq, "null pointer at type erased")
		return
	}
	d.inner.MustMatchError(seq, ctx)
}

func (d Dynamic) String() string {
	if d.inner == nil {
		return "<empty dynamic>"
	}
	if s, ok := d.inner.(interface{ String() string }); ok {
		return s.String()
	}
	return "<dynamic>"
}
