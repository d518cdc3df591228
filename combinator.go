package comb2

// Combinator is a composable parser. Match attempts to recognize a prefix
// of the remaining input at seq.Rptr, reporting Match/NotMatch/Fatal and
// advancing seq.Rptr only on Match (NotMatch must leave it exactly as
// found). MustMatchError is called by a wrapping MustMatch cut when Match
// returned NotMatch, and is responsible for reporting a diagnostic via
// ctx's ErrorHooks — most combinators implement it by calling
// reportError/reportErrorSeq with a fixed message.
//
// This is the type-erasure contract underlying the whole engine: the value
// is Fn(cursor, ctx, rec) -> Status with a parallel must_match_error hook,
// needing no variance or inheritance. Dynamic wraps exactly this interface.
type Combinator interface {
	Match(seq *Sequencer, ctx Context) Status
	MustMatchError(seq *Sequencer, ctx Context)
}

// CombinatorFunc adapts a plain matching function plus an error callback
// into a Combinator, mirroring the source's Proxy(f, onFail) (basic/proxy.h).
type CombinatorFunc struct {
	Fn      func(seq *Sequencer, ctx Context) Status
	OnFail  func(seq *Sequencer, ctx Context)
	Display string
}

func (f CombinatorFunc) Match(seq *Sequencer, ctx Context) Status {
	return f.Fn(seq, ctx)
}

func (f CombinatorFunc) MustMatchError(seq *Sequencer, ctx Context) {
	if f.OnFail != nil {
		f.OnFail(seq, ctx)
		return
	}
	reportErrorSeq(ctx, seq, "expected ", f.Display, " but not")
}

func (f CombinatorFunc) String() string {
	if f.Display != "" {
		return f.Display
	}
	return "proxy(...)"
}

// Proxy wraps an arbitrary recognizer function with an onFail diagnostic,
// exactly as basic/proxy.h's proxy(fn, err).
func Proxy(fn func(seq *Sequencer, ctx Context) Status, onFail func(seq *Sequencer, ctx Context)) Combinator {
	return CombinatorFunc{Fn: fn, OnFail: onFail}
}

func defaultMustMatchError(display string) func(seq *Sequencer, ctx Context) {
	return func(seq *Sequencer, ctx Context) {
		reportErrorSeq(ctx, seq, "expected ", display, " but not")
	}
}
