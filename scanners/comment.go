package scanners

import "github.com/comb2go/comb2"

// Comment builds a parametric comment scanner (original_source's
// composite/comment.h comment(begin, inner, end, nest)). When nest is
// false it is a linear comment (C-style block or //-to-eol); when true, the
// begin marker may recur inside and each recurrence increments a depth
// counter that decrements on end, so nested_c_comment-style grammars are
// representable. Reaching end-of-input before the matching end marker is
// always Fatal, regardless of nesting.
func Comment(begin, end string, nest bool) comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		if !seq.SeekIf(begin) {
			return comb2.NotMatch
		}
		depth := 1
		for {
			if seq.Eos() {
				comb2Error(ctx, seq, "unexpected EOF while parsing comment. expect "+end)
				return comb2.Fatal
			}
			if nest && seq.Match(begin) {
				seq.ConsumeN(len(begin))
				depth++
				continue
			}
			if seq.Match(end) {
				seq.ConsumeN(len(end))
				depth--
				if depth == 0 {
					return comb2.Match
				}
				continue
			}
			seq.Consume()
		}
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		comb2Error(ctx, seq, "expected comment starting with "+begin+" but not")
	})
}

// comb2Error is a thin forwarding helper so this package doesn't need to
// export comb2's unexported reportErrorSeq; Error reporting still funnels
// through the same Context capability (comb2.ErrorHooks) the core engine
// uses.
func comb2Error(ctx comb2.Context, seq *comb2.Sequencer, args ...any) {
	if h, ok := ctx.(comb2.ErrorHooks); ok {
		full := append([]any{}, args...)
		h.ErrorSeq(seq, full...)
	}
}

// Linear, single-line comments (no explicit end marker: they run to end of
// line or end of input).
func LineComment(begin string) comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		if !seq.SeekIf(begin) {
			return comb2.NotMatch
		}
		for !seq.Eos() {
			if b, _ := seq.Current(0); b == '\n' {
				break
			}
			seq.Consume()
		}
		return comb2.Match
	}, nil)
}

// Concrete instances grounded on composite/comment.h.
var (
	// CComment is a non-nesting C-style block comment /* ... */.
	CComment = Comment("/*", "*/", false)
	// NestedCComment is the nesting variant of CComment.
	NestedCComment = Comment("/*", "*/", true)
	// ShellComment runs from '#' to end of line.
	ShellComment = LineComment("#")
	// CppComment runs from '//' to end of line.
	CppComment = LineComment("//")
	// AsmComment runs from ';' to end of line.
	AsmComment = LineComment(";")
)
