package scanners

import "github.com/comb2go/comb2"

// Grounded on original_source's composite/string.h: a parametric string
// literal builder with strong/weak/partial variants differing only in how
// hard the closing delimiter is cut.

const (
	// VariantStrong cuts immediately once the opening quote has matched:
	// any failure in the body or the missing close quote is Fatal.
	VariantStrong = iota
	// VariantWeak leaves the body uncut and cuts only on the closing quote:
	// once the body run has ended, a missing closing quote is Fatal. The
	// body is zero-or-more, so an unterminated literal is Fatal here just
	// as with VariantStrong.
	VariantWeak
	// VariantPartial never cuts: an unterminated literal is NotMatch.
	VariantPartial
)

func limitedRepeatN(n int, a comb2.Combinator) comb2.Combinator {
	return comb2.LimitedRepeat(n, n, a)
}

var backSlash = comb2.Lit(`\`)

func escHex2() comb2.Combinator {
	return comb2.And(backSlash, comb2.And(comb2.OneOf("xX"), comb2.MustMatch(limitedRepeatN(2, HexDigit))))
}

func escHex4() comb2.Combinator {
	return comb2.And(backSlash, comb2.And(comb2.Lit("u"), comb2.MustMatch(limitedRepeatN(4, HexDigit))))
}

func escHex8() comb2.Combinator {
	return comb2.And(backSlash, comb2.And(comb2.Lit("U"), comb2.MustMatch(limitedRepeatN(8, HexDigit))))
}

func escOct3() comb2.Combinator {
	return comb2.And(backSlash, comb2.MustMatch(limitedRepeatN(3, OctDigit)))
}

func escSimple() comb2.Combinator {
	return comb2.And(backSlash, comb2.OneOf("abfnrtv\\'\""))
}

// CStrEscapes is the escape alternation shared by c_str/char_str: \U, \u,
// \x, a single simple-escape byte, or \NNN (octal). The octal form cuts
// right after the backslash, so it is tried last.
var CStrEscapes = comb2.Or(escHex8(), comb2.Or(escHex4(), comb2.Or(escHex2(), comb2.Or(escSimple(), escOct3()))))

func quotedStringVariant(quote string, exclude string, escapes comb2.Combinator, variant int) comb2.Combinator {
	open := comb2.Lit(quote)
	closeQ := comb2.Lit(quote)
	var bodyItem comb2.Combinator
	if escapes != nil {
		bodyItem = comb2.Or(escapes, comb2.NoneOf(exclude))
	} else {
		bodyItem = comb2.NoneOf(exclude)
	}
	zeroOrMoreBody := comb2.Optional(comb2.Repeat(bodyItem))
	switch variant {
	case VariantStrong:
		return comb2.And(open, comb2.MustMatch(comb2.And(zeroOrMoreBody, closeQ)))
	case VariantWeak:
		return comb2.And(open, comb2.And(zeroOrMoreBody, comb2.MustMatch(closeQ)))
	default:
		return comb2.And(open, comb2.And(zeroOrMoreBody, closeQ))
	}
}

// CStr, CStrWeak, CStrPartial match a C-style double-quoted string with \x,
// \u, \U, octal, and simple escapes, differing only by cut strength.
var (
	CStr        = quotedStringVariant(`"`, "\"\\\n\r", CStrEscapes, VariantStrong)
	CStrWeak    = quotedStringVariant(`"`, "\"\\\n\r", CStrEscapes, VariantWeak)
	CStrPartial = quotedStringVariant(`"`, "\"\\\n\r", CStrEscapes, VariantPartial)

	// CharStr, CharStrWeak, CharStrPartial are the same family for
	// single-quoted character literals.
	CharStr        = quotedStringVariant(`'`, "'\\\n\r", CStrEscapes, VariantStrong)
	CharStrWeak    = quotedStringVariant(`'`, "'\\\n\r", CStrEscapes, VariantWeak)
	CharStrPartial = quotedStringVariant(`'`, "'\\\n\r", CStrEscapes, VariantPartial)
)

// jsRegexEscapes covers only the backslash-escape form (any backslash
// followed by one byte, JS regex literals don't share C's escape grammar).
var jsRegexEscapes = comb2.And(backSlash, comb2.NoneOf("\n\r"))

// JSRegexStr, JSRegexStrWeak, JSRegexStrPartial match a `/regex/` literal,
// excluding bare '/' and newlines from the body.
var (
	JSRegexStr        = quotedStringVariant("/", "/\\\n\r", jsRegexEscapes, VariantStrong)
	JSRegexStrWeak     = quotedStringVariant("/", "/\\\n\r", jsRegexEscapes, VariantWeak)
	JSRegexStrPartial = quotedStringVariant("/", "/\\\n\r", jsRegexEscapes, VariantPartial)
)

// GoRawStr, GoRawStrWeak, GoRawStrPartial match a Go raw string literal
// `...`: no escape processing at all, any byte but the backtick itself.
var (
	GoRawStr        = quotedStringVariant("`", "`", nil, VariantStrong)
	GoRawStrWeak    = quotedStringVariant("`", "`", nil, VariantWeak)
	GoRawStrPartial = quotedStringVariant("`", "`", nil, VariantPartial)
)

func tripleQuotedVariant(quote string, variant int) comb2.Combinator {
	open := comb2.Lit(quote + quote + quote)
	closeQ := comb2.Lit(quote + quote + quote)
	bodyItem := comb2.Or(CStrEscapes, comb2.And(comb2.Not(closeQ), comb2.UAny))
	zeroOrMoreBody := comb2.Optional(comb2.Repeat(bodyItem))
	switch variant {
	case VariantStrong:
		return comb2.And(open, comb2.MustMatch(comb2.And(zeroOrMoreBody, closeQ)))
	case VariantWeak:
		return comb2.And(open, comb2.And(zeroOrMoreBody, comb2.MustMatch(closeQ)))
	default:
		return comb2.And(open, comb2.And(zeroOrMoreBody, closeQ))
	}
}

// PyDocStrDouble / PyDocStrSingle match Python triple-quoted docstrings
// (""".."""  / '''...'''), allowing embedded newlines and C-style escapes.
var (
	PyDocStrDouble        = tripleQuotedVariant(`"`, VariantStrong)
	PyDocStrDoubleWeak    = tripleQuotedVariant(`"`, VariantWeak)
	PyDocStrDoublePartial = tripleQuotedVariant(`"`, VariantPartial)

	PyDocStrSingle        = tripleQuotedVariant(`'`, VariantStrong)
	PyDocStrSingleWeak    = tripleQuotedVariant(`'`, VariantWeak)
	PyDocStrSinglePartial = tripleQuotedVariant(`'`, VariantPartial)
)

// innerCppRawStrProxy scans for a C++11 raw string's matched-delimiter tail
// `)delim"`, where delim is whatever byte run preceded the opening '(' (0
// to 16 bytes, none of them parens/backslash/whitespace per the C++
// standard; this scanner accepts any run of bytes excluding '(').
// Grounded on original_source's hand-written inner_cpp_raw_str proxy.
func innerCppRawStrProxy(delim string) comb2.Combinator {
	closer := ")" + delim + `"`
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		for {
			if seq.Eos() {
				return comb2.NotMatch
			}
			if seq.Match(closer) {
				seq.ConsumeN(len(closer))
				return comb2.Match
			}
			seq.Consume()
		}
	}, nil)
}

// CppRawStr matches a C++11 raw string literal R"delim(...)delim" with an
// arbitrary delimiter captured from the source itself, rather than a fixed
// constructor argument — it is therefore a Combinator-returning function,
// not a plain value like the other families.
func CppRawStr() comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		ptr := seq.Rptr
		if comb2.Lit("R").Match(seq, ctx) != comb2.Match {
			return comb2.NotMatch
		}
		if comb2.Lit(`"`).Match(seq, ctx) != comb2.Match {
			seq.Rptr = ptr
			return comb2.NotMatch
		}
		delimStart := seq.Rptr
		for {
			b, ok := seq.Current(0)
			if !ok || b == '(' {
				break
			}
			seq.Consume()
		}
		delim := seq.ReadAt(delimStart, seq.Rptr-delimStart)
		if comb2.Lit("(").Match(seq, ctx) != comb2.Match {
			seq.Rptr = ptr
			return comb2.NotMatch
		}
		inner := innerCppRawStrProxy(delim)
		if st := comb2.MustMatch(inner).Match(seq, ctx); st != comb2.Match {
			return st
		}
		return comb2.Match
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
	})
}
