package grammar

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/comb2go/comb2"
)

// Table is the compiled grammar together with the runtime state its own
// rule dispatch needs to detect left recursion (the recursion-safe
// caller): a TopdownTable in original_source's terms. The
// compiler and the recursion guard are kept in the same struct because
// every compiled Ident reference closes directly over it, exactly as
// topdown.cpp's handle_ident closes over the C++ TopdownTable reference.
type Table struct {
	Desc  *Description
	Rules map[string]comb2.Combinator

	// CallstackLimit bounds the call-stack depth at which a named rule may
	// still be entered; every frame counts, named-rule frames and the
	// Sequence/OrderedChoice position frames alike. Zero or negative means
	// unlimited. Defaults to comb2.DefaultCallstackLimit.
	CallstackLimit int
	// LoopLimit bounds the total number of named-rule invocations across
	// one ParseRoot call, a backstop against grammars that recurse through
	// a large but finite fan-out without ever advancing the cursor enough
	// to trip CheckRecursion's structural classification. Defaults to
	// comb2.DefaultLoopLimit.
	LoopLimit int

	// Logger, when non-nil, receives a debug event for every named-rule
	// call site entered and exited during a parse (the original's "calling
	// rule" trace). Nil is a silent no-op, not a missing feature.
	Logger *slog.Logger

	innerAtomicRules bool
	stack            CallStack
	invocationCount  int
	autoRuleOrder    []string
}

// ResetParseState clears per-parse runtime state (the call stack and
// invocation counter) so a compiled Table can be reused safely across
// independent parses.
func (t *Table) ResetParseState() {
	t.stack = CallStack{}
	t.innerAtomicRules = false
	t.invocationCount = 0
}

func errAt(ctx comb2.Context, seq *comb2.Sequencer, msg string) {
	if h, ok := ctx.(comb2.ErrorHooks); ok {
		h.ErrorSeq(seq, msg)
	}
}

// withAutoRule wraps g so that, once it matches and the engine is not
// already inside another auto-rule expansion or a token! rule, every rule named in
// Desc.AutoRules runs in turn at the current cursor position. Any auto
// rule failing short-circuits the whole wrapped production — auto rules
// are mandatory preconditions, not best-effort side effects (e.g. a
// grammar declaring `auto! ws` uses this to require whitespace-skipping
// before every other production). Grounded on topdown.cpp's
// with_auto_rule.
func withAutoRule(g comb2.Combinator, table *Table) comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		res := g.Match(seq, ctx)
		if res != comb2.Match || table.innerAtomicRules {
			return res
		}
		table.innerAtomicRules = true
		defer func() { table.innerAtomicRules = false }()
		for _, name := range table.autoRuleOrder {
			rule, ok := table.Rules[name]
			if !ok {
				errAt(ctx, seq, "undefined reference to auto rule: "+name)
				return comb2.Fatal
			}
			r := rule.Match(seq, ctx)
			if r != comb2.Match {
				return r
			}
		}
		return res
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		g.MustMatchError(seq, ctx)
	})
}

// withIndexed records an anonymous {kind, index, maxIndex} frame on the
// call stack for the duration of g, so CallStack.CheckRecursion can tell
// whether a later re-entry into the same rule crossed an OrderedChoice
// frame (making it classifiable as left recursion rather than an
// unconditional infinite loop). Grounded on topdown.cpp's with_indexed.
func withIndexed(kind NodeKind, index, maxIndex int, g comb2.Combinator, table *Table) comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		table.stack.Push(KindFrame(seq.Rptr, kind, index, maxIndex))
		defer table.stack.Pop()
		return g.Match(seq, ctx)
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		g.MustMatchError(seq, ctx)
	})
}

// handleIdent compiles an Ident reference into the recursion-safe caller:
// it checks for left recursion/infinite recursion before ever dispatching,
// pushes a named frame for the duration of the call, and additionally sets
// the "inside a token" flag for the duration of a rule declared with
// token!. Grounded on topdown.cpp's handle_ident.
func handleIdent(name string, table *Table) comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		rule, ok := table.Rules[name]
		if !ok {
			return comb2.Fatal
		}
		if rt := table.stack.CheckRecursion(name, seq.Rptr, OrderedChoice); rt != RecursionNone {
			errAt(ctx, seq, "left recursion detected for rule: "+name)
			return comb2.Fatal
		}
		if table.CallstackLimit > 0 && len(table.stack.frames) >= table.CallstackLimit {
			errAt(ctx, seq, "callstack limit exceeded entering rule: "+name)
			return comb2.Fatal
		}
		table.invocationCount++
		if table.LoopLimit > 0 && table.invocationCount > table.LoopLimit {
			errAt(ctx, seq, "loop limit exceeded entering rule: "+name)
			return comb2.Fatal
		}
		if table.Logger != nil {
			table.Logger.Debug("calling rule", "name", name, "pos", seq.Rptr)
		}
		table.stack.Push(NamedFrame(seq.Rptr, name))
		defer table.stack.Pop()
		if _, isToken := table.Desc.Tokens[name]; isToken {
			old := table.innerAtomicRules
			table.innerAtomicRules = true
			defer func() { table.innerAtomicRules = old }()
		}
		status := rule.Match(seq, ctx)
		if table.Logger != nil {
			table.Logger.Debug("rule returned", "name", name, "status", status.String(), "pos", seq.Rptr)
		}
		return status
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		rule, ok := table.Rules[name]
		if !ok {
			errAt(ctx, seq, "undefined reference to rule: "+name)
			return
		}
		rule.MustMatchError(seq, ctx)
	})
}

// eofRule is the table's predefined "eof" rule.
func eofRule() comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		if seq.Eos() {
			return comb2.Match
		}
		return comb2.NotMatch
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		if !seq.Eos() {
			errAt(ctx, seq, "expected end of file")
		}
	})
}

// terminalCaptureTag reports the generic capture tag a Primary's base
// should be wrapped with: Literal and RangeGroup bases have no rule name of
// their own, so they are tagged by their own NodeKind; Ident and Group
// bases already self-capture (an Ident dispatches through handleIdent,
// which is Group/String-wrapped per rule declaration; a Group recurses
// into whatever its single child resolves to) and are left untagged here.
func terminalCaptureTag(base any) (NodeKind, bool) {
	switch n := base.(type) {
	case comb2.Token:
		if n.Tag == Literal {
			return Literal, true
		}
		return 0, false
	case *comb2.GroupNode:
		if kind, ok := n.Tag.(NodeKind); ok && kind == RangeGroup {
			return RangeGroup, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// analyzeDefinitionBodyPrimary lowers a single Primary node, applying its
// postfix operator if any. capture controls whether a bare Literal/
// RangeGroup base is wrapped in its anonymous scalar Token capture; the
// bool it returns reports whether that capture was actually emitted (the
// base may be an Ident/Group, which never captures here regardless of the
// capture argument). Sequence uses this to allow only the first capturable
// Primary among its children to emit a Token: a rule body like
// `item = [a-z]+ " "*` has two bare terminals in one Sequence, but should
// yield exactly one Token per item, so the trailing run is structural
// filler, not a second capture.
func analyzeDefinitionBodyPrimary(n *comb2.GroupNode, table *Table, capture bool) (comb2.Combinator, bool, error) {
	if len(n.Children) != 1 && len(n.Children) != 2 {
		return nil, false, fmt.Errorf("primary must have one or two children")
	}
	inner, err := analyzeDefinitionBody(n.Children[0], table)
	if err != nil {
		return nil, false, err
	}
	if len(n.Children) == 2 {
		tok, ok := n.Children[1].(comb2.Token)
		if !ok || tok.Tag != Token {
			return nil, false, fmt.Errorf("primary's second child is not token")
		}
		switch tok.Text {
		case "+":
			inner = comb2.Repeat(inner)
		case "*":
			inner = comb2.Optional(comb2.Repeat(inner))
		case "?":
			inner = comb2.Optional(inner)
		case "!":
			inner = comb2.MustMatch(inner)
		case "+!":
			inner = comb2.MustMatch(comb2.Repeat(inner))
		case "^":
			inner = comb2.Peek(inner)
		case "~":
			inner = comb2.Not(inner)
		default:
			return nil, false, fmt.Errorf("unknown postfix token: %s", tok.Text)
		}
	}
	captured := false
	if tag, ok := terminalCaptureTag(n.Children[0]); ok && capture {
		inner = comb2.String(tag, inner)
		captured = true
	}
	return withAutoRule(inner, table), captured, nil
}

// orCombine is a helper that OR-combines successive range alternatives
// without needing a sentinel seed value, since comb2.Or is binary.
func orCombine(acc, next comb2.Combinator) comb2.Combinator {
	if acc == nil {
		return next
	}
	return comb2.Or(acc, next)
}

// analyzeDefinitionBody lowers one meta-AST node to a runtime combinator.
// Grounded on topdown.cpp's analyze_definition_body; node is either a
// comb2.Token (a leaf capture: Literal, Ident, or a single Range) or a
// *comb2.GroupNode (a structural capture: Group, RangeGroup, Primary,
// Sequence, OrderedChoice).
func analyzeDefinitionBody(node any, table *Table) (comb2.Combinator, error) {
	switch n := node.(type) {
	case comb2.Token:
		switch n.Tag {
		case Literal:
			text, err := unescapeLiteral(n.Text)
			if err != nil {
				return nil, err
			}
			return comb2.Lit(text), nil
		case Ident:
			return handleIdent(n.Text, table), nil
		default:
			return nil, fmt.Errorf("unsupported token kind in definition body: %v", n.Tag)
		}
	case *comb2.GroupNode:
		kind, _ := n.Tag.(NodeKind)
		switch kind {
		case Group:
			if len(n.Children) != 1 {
				return nil, fmt.Errorf("group must have exactly one child")
			}
			return analyzeDefinitionBody(n.Children[0], table)
		case RangeGroup:
			if len(n.Children) == 0 {
				return nil, fmt.Errorf("range group must have at least one child")
			}
			var body comb2.Combinator
			for _, child := range n.Children {
				tok, ok := child.(comb2.Token)
				if !ok || tok.Tag != Range {
					return nil, fmt.Errorf("range group's child is not range")
				}
				switch {
				case len(tok.Text) == 1:
					body = orCombine(body, comb2.Lit(tok.Text))
				case len(tok.Text) == 3 && tok.Text[1] == '-':
					start, end := tok.Text[0], tok.Text[2]
					if start > end {
						return nil, fmt.Errorf("invalid range: %s", tok.Text)
					}
					body = orCombine(body, comb2.Range(start, end))
				default:
					return nil, fmt.Errorf("invalid range: %s", tok.Text)
				}
			}
			return withAutoRule(body, table), nil
		case Primary:
			g, _, err := analyzeDefinitionBodyPrimary(n, table, true)
			return g, err
		case Sequence:
			if len(n.Children) == 0 {
				return nil, fmt.Errorf("sequence must have at least one child")
			}
			if len(n.Children) == 1 {
				return analyzeDefinitionBody(n.Children[0], table)
			}
			var body comb2.Combinator
			captured := false
			for i, child := range n.Children {
				var part comb2.Combinator
				var err error
				if pg, ok := child.(*comb2.GroupNode); ok {
					if kind, _ := pg.Tag.(NodeKind); kind == Primary {
						var got bool
						part, got, err = analyzeDefinitionBodyPrimary(pg, table, !captured)
						captured = captured || got
					} else {
						part, err = analyzeDefinitionBody(child, table)
					}
				} else {
					part, err = analyzeDefinitionBody(child, table)
				}
				if err != nil {
					return nil, err
				}
				indexed := withIndexed(Sequence, i, len(n.Children)-1, part, table)
				if body == nil {
					body = indexed
				} else {
					body = comb2.And(body, indexed)
				}
			}
			return body, nil
		case OrderedChoice:
			if len(n.Children) == 0 {
				return nil, fmt.Errorf("ordered_choice must have at least one child")
			}
			if len(n.Children) == 1 {
				return analyzeDefinitionBody(n.Children[0], table)
			}
			var body comb2.Combinator
			for i, child := range n.Children {
				part, err := analyzeDefinitionBody(child, table)
				if err != nil {
					return nil, err
				}
				indexed := withIndexed(OrderedChoice, i, len(n.Children)-1, part, table)
				if body == nil {
					body = indexed
				} else {
					body = comb2.Or(body, indexed)
				}
			}
			return body, nil
		default:
			return nil, fmt.Errorf("unsupported node kind in definition body: %v", n.Tag)
		}
	default:
		return nil, fmt.Errorf("unsupported node shape in definition body")
	}
}

// Compile lowers a validated Description into a runtime Table, grounded
// on topdown.cpp's convert_topdown/analyze_definition: every
// defined rule is compiled to And(withAutoRule(Null), body) so auto rules
// run as a mandatory precondition before the rule's own body, matching
// analyze_definition's wrapping rather than convert_topdown's narrower
// direct assignment (see DESIGN.md's Open Question entry).
//
// Every compiled rule is additionally tagged for tree collection: a rule
// named in Tokens is wrapped in a scalar String(name, ...) capture (its
// whole match becomes one Token, regardless of internal structure); every
// other rule is wrapped in a structural Group(name, ...) capture — see
// DESIGN.md's Open Question entry on this point.
func Compile(desc *Description) (*Table, error) {
	table := &Table{
		Desc:           desc,
		Rules:          map[string]comb2.Combinator{},
		CallstackLimit: comb2.DefaultCallstackLimit,
		LoopLimit:      comb2.DefaultLoopLimit,
	}
	for name := range desc.AutoRules {
		table.autoRuleOrder = append(table.autoRuleOrder, name)
	}
	sort.Strings(table.autoRuleOrder)
	table.Rules["eof"] = eofRule()
	for _, name := range desc.DefinitionOrder {
		body := desc.Definitions[name]
		g, err := analyzeDefinitionBody(body, table)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze definition body for rule %s: %w", name, err)
		}
		var tagged comb2.Combinator
		if _, isToken := desc.Tokens[name]; isToken {
			tagged = comb2.String(name, g)
		} else {
			tagged = comb2.Group(name, g)
		}
		table.Rules[name] = comb2.And(withAutoRule(comb2.Null, table), tagged)
	}
	return table, nil
}

// ParseRoot runs the compiled root rule against input, grounded on
// topdown.cpp's do_topdown_parse (minus its CLI/file-reporting concerns,
// which live in comb2/driver). The call stack is reset first so a Table
// can be reused across independent parses.
func (t *Table) ParseRoot(input string) (tree *comb2.GroupNode, consumed int, ok bool, errs []string) {
	t.ResetParseState()
	res := comb2.DefaultConfig.Run(handleIdent(t.Desc.RootName, t), input)
	t.ResetParseState()
	return res.Tree, res.Pos.End, res.Ok, res.Errs
}

// unescapeLiteral strips a literal token's surrounding quote characters and
// processes the same escape grammar as scanners.CStrEscapes (\xXX, \uXXXX,
// \UXXXXXXXX, \NNN octal, and the usual single-letter C escapes).
func unescapeLiteral(raw string) (string, error) {
	if len(raw) < 2 {
		return "", fmt.Errorf("malformed literal: %q", raw)
	}
	inner := raw[1 : len(raw)-1]
	var out strings.Builder
	i := 0
	for i < len(inner) {
		c := inner[i]
		if c != '\\' {
			out.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(inner) {
			return "", fmt.Errorf("trailing backslash in literal: %q", raw)
		}
		esc := inner[i+1]
		switch esc {
		case 'a':
			out.WriteByte('\a')
			i += 2
		case 'b':
			out.WriteByte('\b')
			i += 2
		case 'f':
			out.WriteByte('\f')
			i += 2
		case 'n':
			out.WriteByte('\n')
			i += 2
		case 'r':
			out.WriteByte('\r')
			i += 2
		case 't':
			out.WriteByte('\t')
			i += 2
		case 'v':
			out.WriteByte('\v')
			i += 2
		case '\\':
			out.WriteByte('\\')
			i += 2
		case '\'':
			out.WriteByte('\'')
			i += 2
		case '"':
			out.WriteByte('"')
			i += 2
		case 'x':
			if i+4 > len(inner) {
				return "", fmt.Errorf("truncated \\x escape in literal: %q", raw)
			}
			v, err := strconv.ParseUint(inner[i+2:i+4], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape in literal: %q", raw)
			}
			out.WriteByte(byte(v))
			i += 4
		case 'u':
			if i+6 > len(inner) {
				return "", fmt.Errorf("truncated \\u escape in literal: %q", raw)
			}
			v, err := strconv.ParseUint(inner[i+2:i+6], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\u escape in literal: %q", raw)
			}
			out.WriteRune(rune(v))
			i += 6
		case 'U':
			if i+10 > len(inner) {
				return "", fmt.Errorf("truncated \\U escape in literal: %q", raw)
			}
			v, err := strconv.ParseUint(inner[i+2:i+10], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\U escape in literal: %q", raw)
			}
			out.WriteRune(rune(v))
			i += 10
		default:
			if esc >= '0' && esc <= '7' {
				end := i + 2
				for end < len(inner) && end < i+4 && inner[end] >= '0' && inner[end] <= '7' {
					end++
				}
				v, err := strconv.ParseUint(inner[i+1:end], 8, 32)
				if err != nil {
					return "", fmt.Errorf("invalid octal escape in literal: %q", raw)
				}
				out.WriteByte(byte(v))
				i = end
			} else {
				return "", fmt.Errorf("unknown escape \\%c in literal: %q", esc, raw)
			}
		}
	}
	return out.String(), nil
}
