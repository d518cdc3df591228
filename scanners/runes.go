// Package scanners is a composite library of prebuilt recognizers for
// identifiers, numbers, strings, comments, and indentation, each expressed
// as a composition of comb2's primitive and logic combinators. Grounded on
// hucsmn-peg's pegutil subpackage for package shape and naming, and on
// original_source's src/include/comb2/composite/*.h for exact grammar
// semantics (ranges, cut points, escape productions) where they resolve
// ambiguities left open elsewhere.
package scanners

import "github.com/comb2go/comb2"

// Byte classes (composite/range.h). Only ASCII classes are provided; full
// Unicode property classes are out of scope.
var (
	SmallAlphabet = comb2.Range('a', 'z')
	LargeAlphabet = comb2.Range('A', 'Z')
	Alphabet      = comb2.Or(SmallAlphabet, LargeAlphabet)
	Digit         = comb2.Range('0', '9')
	Bit           = comb2.Range('0', '1')
	OctDigit      = comb2.Range('0', '7')
	HexDigit      = comb2.Or(Digit, comb2.Or(comb2.Range('a', 'f'), comb2.Range('A', 'F')))

	CIdentFirst = comb2.Or(Alphabet, comb2.Lit("_"))
	CIdentNext  = comb2.Or(Alphabet, comb2.Or(Digit, comb2.Lit("_")))
	// CIdent recognizes a C-style identifier: (alpha|'_') (alnum|'_')*.
	CIdent = comb2.And(CIdentFirst, comb2.Optional(comb2.Repeat(CIdentNext)))

	Space = comb2.Lit(" ")
	Tab   = comb2.Lit("\t")

	ByteOrderMark = comb2.Lit("\xef\xbb\xbf")

	CarriageReturn = comb2.Lit("\r")
	LineFeed       = comb2.Lit("\n")
	WinEOL         = comb2.Lit("\r\n")
	UnixEOL        = comb2.Lit("\n")
	OldMacEOL      = comb2.Lit("\r")
	// EOL matches an optional '\r' followed by a mandatory '\n' — i.e. it
	// accepts "\n" and "\r\n" but not a lone trailing "\r"
	// (composite/range.h: `-lit('\r') & lit('\n')`).
	EOL = comb2.And(comb2.Optional(CarriageReturn), LineFeed)
)
