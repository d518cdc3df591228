package comb2

// Status is the three-valued result of running a combinator against a
// Sequencer. Match and NotMatch are both ordinary outcomes a caller may
// backtrack from; Fatal aborts the whole parse and must never be
// swallowed by an intermediate combinator.
type Status int

const (
	// NotMatch means the combinator did not recognize the input at the
	// current position. The cursor is restored to its entry value by the
	// combinator itself before returning this status.
	NotMatch Status = iota
	// Match means the combinator recognized a (possibly empty) prefix of
	// the remaining input; the cursor has advanced accordingly.
	Match
	// Fatal means parsing cannot continue. It is produced by a cut
	// (MustMatch), an infinite-loop guard, left-recursion detection, or an
	// unrecoverable decoding error, and short-circuits every ancestor.
	Fatal
)

func (s Status) String() string {
	switch s {
	case Match:
		return "match"
	case NotMatch:
		return "not_match"
	case Fatal:
		return "fatal"
	default:
		return "status(?)"
	}
}

// Pos is a half-open byte span [Begin, End) into the input buffer a
// Sequencer was built from.
type Pos struct {
	Begin int
	End   int
}

// NoPos is the sentinel value denoting "no position was recorded", mirroring
// the source's {~0,~0} sentinel.
var NoPos = Pos{Begin: -1, End: -1}

// Len reports the number of bytes spanned, or 0 for NoPos.
func (p Pos) Len() int {
	if p == NoPos || p.End < p.Begin {
		return 0
	}
	return p.End - p.Begin
}

// CallbackKind names the point in a logic combinator's evaluation that
// triggered a Context.LogicEntry/LogicResult call.
type CallbackKind int

const (
	OptionalEntry CallbackKind = iota
	OptionalResult
	BranchEntry
	BranchOther
	BranchResult
	RepeatEntry
	RepeatStep
	RepeatResult
	PeekBegin
	PeekEnd
)

func (k CallbackKind) String() string {
	switch k {
	case OptionalEntry:
		return "optional_entry"
	case OptionalResult:
		return "optional_result"
	case BranchEntry:
		return "branch_entry"
	case BranchOther:
		return "branch_other"
	case BranchResult:
		return "branch_result"
	case RepeatEntry:
		return "repeat_entry"
	case RepeatStep:
		return "repeat_step"
	case RepeatResult:
		return "repeat_result"
	case PeekBegin:
		return "peek_begin"
	case PeekEnd:
		return "peek_end"
	default:
		return "callback(?)"
	}
}
