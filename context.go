package comb2

// Context is any value a combinator tree is run against. The engine never
// names a concrete context type: every combinator that needs a hook probes
// for one of the capability interfaces below via a type assertion and calls
// it only if present. This is the explicit capability-set replacement for
// the source's SFINAE-probed duck typing.
type Context = any

// GroupHooks is implemented by a context that wants to observe structural
// Group captures.
type GroupHooks interface {
	BeginGroup(tag any)
	EndGroup(status Status, tag any, pos Pos)
}

// StringHooks is implemented by a context that wants to observe scalar
// String captures. While a String capture is active, provisional tree
// creation must be suppressed by anything also implementing GroupHooks or
// LogicHooks; see BranchTable for the canonical implementation of all three.
type StringHooks interface {
	BeginString(tag any)
	EndString(status Status, tag any, seq *Sequencer, pos Pos) Status
}

// LogicHooks is implemented by a context that wants to observe entry/exit
// of Or/Repeat/Optional/Peek branches.
type LogicHooks interface {
	LogicEntry(kind CallbackKind)
	LogicResult(kind CallbackKind, status Status)
}

// ErrorHooks is implemented by a context that accumulates human-readable
// diagnostics. Args are rendered with fmt.Sprint-style concatenation by the
// caller; the context decides the sink (buffer, logger, ...).
type ErrorHooks interface {
	Error(args ...any)
	ErrorSeq(seq *Sequencer, args ...any)
}

// UTFErrorHook is implemented by a context that wants to classify a UTF-8
// decode failure as Fatal (true) or recoverable NotMatch (false). Absent,
// the default policy is false.
type UTFErrorHook interface {
	UTFError(seq *Sequencer, err error) bool
}

// IndentHook is implemented by a context that tracks the currently expected
// indentation width for the indent() composite. Absent, the default is -1
// (no expectation).
type IndentHook interface {
	ExpectIndent() int
}

func beginGroup(ctx Context, tag any) {
	if h, ok := ctx.(GroupHooks); ok {
		h.BeginGroup(tag)
	}
}

func endGroup(ctx Context, status Status, tag any, pos Pos) {
	if h, ok := ctx.(GroupHooks); ok {
		h.EndGroup(status, tag, pos)
	}
}

func beginString(ctx Context, tag any) {
	if h, ok := ctx.(StringHooks); ok {
		h.BeginString(tag)
	}
}

func endString(ctx Context, status Status, tag any, seq *Sequencer, pos Pos) Status {
	if h, ok := ctx.(StringHooks); ok {
		return h.EndString(status, tag, seq, pos)
	}
	return status
}

func logicEntry(ctx Context, kind CallbackKind) {
	if h, ok := ctx.(LogicHooks); ok {
		h.LogicEntry(kind)
	}
}

func logicResult(ctx Context, kind CallbackKind, status Status) {
	if h, ok := ctx.(LogicHooks); ok {
		h.LogicResult(kind, status)
	}
}

func reportError(ctx Context, args ...any) {
	if h, ok := ctx.(ErrorHooks); ok {
		h.Error(args...)
	}
}

func reportErrorSeq(ctx Context, seq *Sequencer, args ...any) {
	if h, ok := ctx.(ErrorHooks); ok {
		h.ErrorSeq(seq, args...)
	}
}

func isFatalUTFError(ctx Context, seq *Sequencer, err error) bool {
	if h, ok := ctx.(UTFErrorHook); ok {
		return h.UTFError(seq, err)
	}
	return false
}

func expectIndent(ctx Context) int {
	if h, ok := ctx.(IndentHook); ok {
		return h.ExpectIndent()
	}
	return -1
}

// BaseContext is an embeddable no-op implementation of every capability
// interface. Embed it in a concrete context type and override only the
// hooks that type cares about — the unembedded ones keep behaving as if
// absent entirely.
type BaseContext struct{}

func (BaseContext) BeginGroup(tag any)                        {}
func (BaseContext) EndGroup(status Status, tag any, pos Pos)  {}
func (BaseContext) BeginString(tag any)                       {}
func (BaseContext) EndString(status Status, tag any, seq *Sequencer, pos Pos) Status {
	return status
}
func (BaseContext) LogicEntry(kind CallbackKind)                  {}
func (BaseContext) LogicResult(kind CallbackKind, status Status)  {}
func (BaseContext) Error(args ...any)                              {}
func (BaseContext) ErrorSeq(seq *Sequencer, args ...any) {}
func (BaseContext) UTFError(seq *Sequencer, err error) bool { return false }
func (BaseContext) ExpectIndent() int                       { return -1 }
