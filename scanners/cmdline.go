package scanners

import "github.com/comb2go/comb2"

// Grounded on original_source's composite/cmdline.h: a whitespace-and-quote
// aware command-line argument splitter built entirely out of the same
// primitive/logic/capture combinators as every other scanner in this
// package, rather than a hand-rolled string-splitting loop.

// ArgKind distinguishes a bare, unquoted argument from one that came from a
// quoted string literal (and therefore may need escape processing before
// use).
type ArgKind int

const (
	PlainArg ArgKind = iota
	QuotedArg
)

func (k ArgKind) String() string {
	if k == QuotedArg {
		return "QuotedArg"
	}
	return "PlainArg"
}

// Arg is one token produced by SplitCommandLine.
type Arg struct {
	Kind ArgKind
	Pos  comb2.Pos
	Text string
}

var (
	cmdlineSpace  = comb2.Or(Space, comb2.Or(Tab, EOL))
	cmdlineSpaces = comb2.Optional(comb2.Repeat(cmdlineSpace))

	// A quoted arg is a weak-cut string or char literal immediately
	// followed (without being consumed) by a space or end of input — the
	// peek distinguishes `"a""b"` (no space between: not a single arg) from
	// `"a" "b"` (two args).
	quotedArgBody = comb2.And(
		comb2.Or(CStrWeak, CharStrWeak),
		comb2.Peek(comb2.Or(cmdlineSpace, comb2.EOS)),
	)
	// A plain arg is one-or-more bytes that are each not a space/eos.
	plainArgBody = comb2.Repeat(comb2.And(comb2.Not(comb2.Or(cmdlineSpace, comb2.EOS)), comb2.UAny))
)

// cmdlineCollector is a minimal comb2.Context implementing only
// StringHooks: it records the span and tag of every completed String
// capture, which is all command-line splitting needs from the engine.
type cmdlineCollector struct {
	comb2.BaseContext
	args []Arg
}

func (c *cmdlineCollector) EndString(status comb2.Status, tag any, seq *comb2.Sequencer, pos comb2.Pos) comb2.Status {
	if status == comb2.Match {
		c.args = append(c.args, Arg{Kind: tag.(ArgKind), Pos: pos, Text: seq.ReadAt(pos.Begin, pos.End-pos.Begin)})
	}
	return status
}

// commandLineGrammar is spaces & *((str_arg | arg) & spaces).
func commandLineGrammar() comb2.Combinator {
	strArg := comb2.String(QuotedArg, quotedArgBody)
	arg := comb2.String(PlainArg, plainArgBody)
	item := comb2.And(comb2.Or(strArg, arg), cmdlineSpaces)
	return comb2.And(cmdlineSpaces, comb2.Optional(comb2.Repeat(item)))
}

// SplitCommandLine tokenizes input the way a shell would, recognizing
// double- and single-quoted (with backslash escapes) string arguments
// alongside bare whitespace-delimited ones. It reports the exact byte span
// of every token, matching original_source's command_line_callback
// (confirmed against its embedded test cases: "hello world" yields two
// PlainArg tokens at [0,5) and [6,11); `echo "hello\" world"` yields a
// PlainArg at [0,4) and a QuotedArg at [5,20)).
func SplitCommandLine(input string) ([]Arg, bool) {
	seq := comb2.NewSequencer(input)
	ctx := &cmdlineCollector{}
	st := commandLineGrammar().Match(seq, ctx)
	return ctx.args, st == comb2.Match
}
