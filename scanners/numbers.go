package scanners

import "github.com/comb2go/comb2"

// Grounded on original_source's composite/number.h.

func digitInRadix(radix int) comb2.Combinator {
	switch radix {
	case 2:
		return Bit
	case 8:
		return OctDigit
	case 16:
		return HexDigit
	default:
		return Digit
	}
}

// RadixNumber matches a single digit valid in the given radix (2, 8, 10, or
// 16).
func RadixNumber(radix int) comb2.Combinator {
	return digitInRadix(radix)
}

var (
	hexPrefix = comb2.Or(comb2.Lit("0x"), comb2.Lit("0X"))
	octPrefix = comb2.Or(comb2.Lit("0o"), comb2.Lit("0O"))
	binPrefix = comb2.Or(comb2.Lit("0b"), comb2.Lit("0B"))

	// DecInteger is one or more decimal digits, no prefix.
	DecInteger = comb2.Repeat(Digit)
	// HexInteger requires a 0x/0X prefix then cuts to one-or-more hex
	// digits: an input like "0x" with no digits is Fatal, not NotMatch.
	HexInteger = comb2.And(hexPrefix, comb2.MustMatch(comb2.Repeat(HexDigit)))
	// OctInteger requires a 0o/0O prefix then cuts to one-or-more octal
	// digits.
	OctInteger = comb2.And(octPrefix, comb2.MustMatch(comb2.Repeat(OctDigit)))
	// BinInteger requires a 0b/0B prefix then cuts to one-or-more binary
	// digits.
	BinInteger = comb2.And(binPrefix, comb2.MustMatch(comb2.Repeat(Bit)))
)

func makeDecFloat() comb2.Combinator {
	digits := comb2.Repeat(Digit)
	dotThenDigits := comb2.And(comb2.Lit("."), digits)
	digitsThenDot := comb2.And(digits, comb2.Optional(comb2.And(comb2.Lit("."), comb2.Optional(digits))))
	body := comb2.Or(dotThenDigits, digitsThenDot)
	exp := comb2.And(
		comb2.Or(comb2.Lit("e"), comb2.Lit("E")),
		comb2.And(comb2.Optional(comb2.OneOf("+-")), comb2.MustMatch(digits)),
	)
	return comb2.And(body, comb2.Optional(exp))
}

func makeHexFloat() comb2.Combinator {
	digits := comb2.Repeat(HexDigit)
	dotThenDigits := comb2.And(comb2.Lit("."), digits)
	digitsThenDot := comb2.And(digits, comb2.Optional(comb2.And(comb2.Lit("."), comb2.Optional(digits))))
	body := comb2.And(hexPrefix, comb2.Or(dotThenDigits, digitsThenDot))
	exp := comb2.And(
		comb2.Or(comb2.Lit("p"), comb2.Lit("P")),
		comb2.And(comb2.Optional(comb2.OneOf("+-")), comb2.MustMatch(comb2.Repeat(Digit))),
	)
	// The exponent is optional; once a 'p'/'P' marker is seen its digit run
	// is cut, matching the original's make_hex_float cutting the exponent
	// digits, never the exponent marker itself.
	return comb2.And(body, comb2.Optional(exp))
}

var (
	// DecFloat matches ".5", "5.", "5.5", with an optional e/E exponent
	// whose digit run is cut once the exponent marker is seen.
	DecFloat = makeDecFloat()
	// NotDecFloat is the negative-lookahead companion used by grammars
	// that must distinguish a bare integer from the start of a float.
	NotDecFloat = comb2.Not(DecFloat)

	// HexFloat matches a "0x"-prefixed hex float with an optional 'p'/'P'
	// exponent whose digit run is cut once the exponent marker is seen.
	HexFloat = makeHexFloat()
	// NotHexFloat is the negative-lookahead companion of HexFloat.
	NotHexFloat = comb2.Not(HexFloat)
)
