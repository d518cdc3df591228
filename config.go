package comb2

import "fmt"

// Default limits that grammar.Table's recursion/loop guard (comb2/grammar)
// starts from, mirroring hucsmn-peg's DefaultCallstackLimit/DefaultLoopLimit.
const (
	DefaultCallstackLimit = 500
	DefaultLoopLimit      = 500
)

// Config controls the resource limits and optional bookkeeping a top-level
// parse run applies, matching hucsmn-peg's Config struct (peg.go) field for
// field, generalized to comb2's native-recursion engine. Nothing in this
// package reads CallstackLimit or LoopLimit: there is no trampoline step
// counter to consult, and grammar-driven parses are bounded by
// grammar.Table's own CallstackLimit/LoopLimit fields instead.
type Config struct {
	// CallstackLimit is the recursion-depth cap; zero or negative means
	// unlimited.
	CallstackLimit int
	// LoopLimit is the loop-iteration cap; zero or negative means
	// unlimited.
	LoopLimit int
	// DisableLineColumnCounting is carried for parity with hucsmn-peg's
	// Config; Run does not consult it, and its diagnostics report byte
	// offsets either way.
	DisableLineColumnCounting bool
	// DisableGrouping skips installing GroupHooks on the Run context,
	// causing Group captures to have no effect beyond running their inner
	// combinator.
	DisableGrouping bool
	// DisableCapturing skips installing StringHooks, causing String
	// captures to have no effect beyond running their inner combinator.
	DisableCapturing bool
}

// DefaultConfig matches hucsmn-peg's defaultConfig: bounded recursion and
// loops, with line/column counting, grouping, and capturing all enabled.
var DefaultConfig = Config{
	CallstackLimit: DefaultCallstackLimit,
	LoopLimit:      DefaultLoopLimit,
}

// Result is what a top-level Run produces: whether the combinator matched,
// how much of the input it consumed, the collected tree (nil only if both
// grouping and capturing were disabled; otherwise a root GroupNode, possibly
// with no children), and any
// diagnostics text accumulated through ErrorHooks along the way.
type Result struct {
	Ok   bool
	Pos  Pos
	Tree *GroupNode
	Errs []string
}

// runContext composes BranchTable (honoring DisableGrouping/DisableCapturing
// by simply never being consulted) with an error sink; it is the concrete
// Context a Config.Run builds for the caller, analogous to hucsmn-peg's
// internal *context wiring a Config into one place.
type runContext struct {
	BaseContext
	tree   *BranchTable
	errs   []string
	config Config
}

func (c *runContext) BeginGroup(tag any) {
	if c.config.DisableGrouping {
		return
	}
	c.tree.BeginGroup(tag)
}

func (c *runContext) EndGroup(status Status, tag any, pos Pos) {
	if c.config.DisableGrouping {
		return
	}
	c.tree.EndGroup(status, tag, pos)
}

func (c *runContext) BeginString(tag any) {
	if c.config.DisableCapturing {
		return
	}
	c.tree.BeginString(tag)
}

func (c *runContext) EndString(status Status, tag any, seq *Sequencer, pos Pos) Status {
	if c.config.DisableCapturing {
		return status
	}
	return c.tree.EndString(status, tag, seq, pos)
}

func (c *runContext) LogicEntry(kind CallbackKind) { c.tree.LogicEntry(kind) }
func (c *runContext) LogicResult(kind CallbackKind, status Status) {
	c.tree.LogicResult(kind, status)
}

func (c *runContext) Error(args ...any) {
	c.errs = append(c.errs, fmt.Sprint(args...))
}

func (c *runContext) ErrorSeq(seq *Sequencer, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf("at byte %d: %s", seq.Rptr, fmt.Sprint(args...)))
}

// Run parses text with a under cfg's grouping/capturing toggles, building a
// fresh runContext. It does not read LoopLimit/CallstackLimit — calling a
// bare a.Match directly (as Run does) is only safe for grammars small enough that native call depth is
// not a concern; grammar-driven parsing always goes through the grammar and
// driver packages instead.
func (cfg Config) Run(a Combinator, text string) *Result {
	seq := NewSequencer(text)
	ctx := &runContext{tree: &BranchTable{}, config: cfg}
	st := a.Match(seq, ctx)
	res := &Result{Ok: st == Match, Pos: Pos{Begin: 0, End: seq.Rptr}, Errs: ctx.errs}
	if !cfg.DisableGrouping || !cfg.DisableCapturing {
		res.Tree = Collect(ctx.tree.Root())
	}
	return res
}

// Run parses text against a using DefaultConfig.
func Run(a Combinator, text string) *Result {
	return DefaultConfig.Run(a, text)
}
