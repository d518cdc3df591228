package scanners

import "github.com/comb2go/comb2"

// IndentMode is an overlapping bit-flag set, not five independent cases:
// Equal is one bit, and Less/More are a second, mutually exclusive bit.
// Restored faithfully from original_source's composite/indent.h rather
// than flattened to five unrelated constants.
type IndentMode int

const (
	Less      IndentMode = 0x1
	Equal     IndentMode = 0x2
	LessEqual IndentMode = Less | Equal
	More      IndentMode = 0x4
	MoreEqual IndentMode = More | Equal
)

func countLeadingSpaces(seq *comb2.Sequencer) int {
	n := 0
	for {
		b, ok := seq.Current(n)
		if !ok || b != ' ' {
			break
		}
		n++
	}
	return n
}

// MakeIndent builds an indent-comparison scanner: it counts the run of
// space bytes at the cursor, compares the count against
// ctx.(comb2.IndentHook).ExpectIndent() (or -1 / "no expectation" if the
// context doesn't implement the hook) per mode, and on success consumes
// exactly that many space bytes.
//
// When no expectation is set (ExpectIndent() < 0), any width satisfies: a
// negative expected width combined with More is resolved as
// "unconditionally satisfied", since an absent expectation cannot
// meaningfully constrain "more than" anything.
func MakeIndent(mode IndentMode) comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		width := countLeadingSpaces(seq)
		expected := -1
		if h, ok := ctx.(comb2.IndentHook); ok {
			expected = h.ExpectIndent()
		}
		if expected >= 0 {
			ok := (mode&Equal != 0 && width == expected) ||
				(mode&Less != 0 && width < expected) ||
				(mode&More != 0 && width > expected)
			if !ok {
				return comb2.NotMatch
			}
		}
		seq.ConsumeN(width)
		return comb2.Match
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		comb2Error(ctx, seq, "expected matching indentation but not")
	})
}

var (
	// Indent requires the same indentation width as currently expected.
	Indent = MakeIndent(Equal)
	// NewIndent requires a strictly deeper indentation (opening a new
	// block).
	NewIndent = MakeIndent(More)
	// NewOrEqIndent requires an indentation at least as deep as expected.
	NewOrEqIndent = MakeIndent(MoreEqual)
	// LessIndent requires a strictly shallower indentation (closing a
	// block).
	LessIndent = MakeIndent(Less)
	// LessEqIndent requires an indentation no deeper than expected.
	LessEqIndent = MakeIndent(LessEqual)
)
