// Package grammar implements the meta-grammar parser and grammar compiler:
// a tiny self-describing PEG DSL, parsed by the very combinators it
// describes, then lowered to a runtime combinator graph.
// Grounded on original_source's src/tool/cmb2parse/grammar.h (the embedded
// meta-grammar and its NodeKind-tagged productions) and topdown.cpp (the
// lowering pass, compiled to Go closures instead of C++ template lambdas).
package grammar

import (
	"github.com/comb2go/comb2"
	"github.com/comb2go/comb2/scanners"
)

// NodeKind tags every node the meta-grammar parser produces.
type NodeKind int

const (
	Root NodeKind = iota
	Ident
	Definition
	Literal
	Group
	Token
	Primary
	Sequence
	OrderedChoice
	Range
	RangeGroup
	TokenDefinition
	GroupDefinition
	RootDefinition
	OmitIfOneDefinition
	AutoDefinition
)

func (k NodeKind) String() string {
	switch k {
	case Root:
		return "root"
	case Ident:
		return "ident"
	case Definition:
		return "definition"
	case Literal:
		return "literal"
	case Group:
		return "group"
	case Token:
		return "token"
	case Primary:
		return "primary"
	case Sequence:
		return "sequence"
	case OrderedChoice:
		return "ordered_choice"
	case Range:
		return "range"
	case RangeGroup:
		return "range_group"
	case TokenDefinition:
		return "token_definition"
	case GroupDefinition:
		return "group_definition"
	case RootDefinition:
		return "root_definition"
	case OmitIfOneDefinition:
		return "omit_if_one_definition"
	case AutoDefinition:
		return "auto_definition"
	default:
		return "unknown"
	}
}

var (
	metaSpace      = comb2.Or(scanners.Space, scanners.Tab)
	metaSpaces     = comb2.Optional(comb2.Repeat(metaSpace))
	metaNewLine    = scanners.EOL
	metaSpaceLines = comb2.Optional(comb2.Repeat(comb2.Or(metaSpace, metaNewLine)))
	endOfLine      = comb2.MustMatch(comb2.Or(metaNewLine, comb2.EOS))

	metaIdent   = comb2.String(Ident, scanners.CIdent)
	metaLiteral = comb2.String(Literal, comb2.Or(scanners.CStr, scanners.CharStr))

	repeatToken         = comb2.Lit("+")
	optionalRepeatToken = comb2.Lit("*")
	optionalToken       = comb2.Lit("?")
	forceErrorToken     = comb2.Lit("!")
	peekToken           = comb2.Lit("^")
	notToken            = comb2.Lit("~")

	// range := any ('-' any!)?
	metaRange = comb2.String(Range, comb2.And(comb2.UAny, comb2.Optional(comb2.And(comb2.Lit("-"), comb2.MustMatch(comb2.UAny)))))

	// range_group := '[' range (not_(']') range)* ']'!
	rangeGroup = comb2.Group(RangeGroup, comb2.And(
		comb2.Lit("["),
		comb2.And(metaRange, comb2.And(
			comb2.Optional(comb2.Repeat(comb2.And(comb2.Not(comb2.Lit("]")), metaRange))),
			comb2.MustMatch(comb2.Lit("]")),
		)),
	))

	// definition := ident '='! definitionBody spaces eol!
	definitionRule = comb2.Group(Definition, comb2.And(
		metaIdent,
		comb2.And(metaSpaces, comb2.And(
			comb2.MustMatch(comb2.Lit("=")),
			comb2.And(metaSpaces, comb2.And(definitionBodyRef(), comb2.And(metaSpaces, endOfLine))),
		)),
	))

	// group_ := '(' spaces definitionBody spaces ')'!
	groupRule = comb2.Group(Group, comb2.And(
		comb2.Lit("("),
		comb2.And(metaSpaces, comb2.And(definitionBodyRef(), comb2.And(metaSpaces, comb2.MustMatch(comb2.Lit(")"))))),
	))

	primaryChoice = comb2.Or(metaLiteral, comb2.Or(metaIdent, comb2.Or(rangeGroup, groupRule)))

	postfixToken = comb2.String(Token, comb2.Or(
		forceErrorToken,
		comb2.Or(comb2.And(repeatToken, comb2.Optional(forceErrorToken)),
			comb2.Or(peekToken, comb2.Or(notToken, comb2.Or(optionalRepeatToken, optionalToken)))),
	))

	postfixRule = comb2.Group(Primary, comb2.And(primaryChoice, comb2.Optional(comb2.And(metaSpaces, postfixToken))))

	sequenceRule = comb2.Group(Sequence, comb2.And(postfixRule, comb2.Optional(comb2.Repeat(comb2.And(metaSpaces, postfixRule)))))

	orderedChoiceRule = comb2.Group(OrderedChoice, comb2.And(sequenceRule, comb2.Optional(comb2.Repeat(
		comb2.And(metaSpaces, comb2.And(comb2.Lit("/"), comb2.And(metaSpaces, sequenceRule))),
	))))

	someIdentAndLine    = comb2.And(comb2.Repeat(comb2.And(metaSpaces, metaIdent)), comb2.And(metaSpaces, endOfLine))
	singleIdentAndLine  = comb2.And(metaSpaces, comb2.And(comb2.MustMatch(metaIdent), comb2.And(metaSpaces, endOfLine)))
	tokenDefinitionRule = comb2.Group(TokenDefinition, comb2.And(comb2.Lit("token!"), someIdentAndLine))
	groupDefinitionRule = comb2.Group(GroupDefinition, comb2.And(comb2.Lit("group!"), someIdentAndLine))
	omitIfOneRule       = comb2.Group(OmitIfOneDefinition, comb2.And(comb2.Lit("omit_one!"), someIdentAndLine))
	autoDefinitionRule  = comb2.Group(AutoDefinition, comb2.And(comb2.Lit("auto!"), someIdentAndLine))
	rootDefinitionRule  = comb2.Group(RootDefinition, comb2.And(comb2.Lit("root!"), singleIdentAndLine))

	bodyRule = comb2.Or(tokenDefinitionRule, comb2.Or(groupDefinitionRule, comb2.Or(rootDefinitionRule, comb2.Or(omitIfOneRule, comb2.Or(autoDefinitionRule, definitionRule)))))

	rootRule = comb2.And(metaSpaceLines, comb2.And(comb2.Optional(comb2.Repeat(comb2.And(bodyRule, metaSpaceLines))), comb2.MustMatch(comb2.EOS)))
)

// definitionBody is ordered_choice, referenced recursively by definitionRule
// and groupRule before it is itself fully constructed (the original's
// method_proxy(body) forward declaration). It is assigned in init, after
// package-level var evaluation has built orderedChoiceRule; referring to
// orderedChoiceRule directly from the proxy would be an initialization
// cycle. definitionBodyRef returns a thin proxy that defers to it.
var definitionBody comb2.Combinator

func init() { definitionBody = orderedChoiceRule }

func definitionBodyRef() comb2.Combinator {
	return comb2.Proxy(func(seq *comb2.Sequencer, ctx comb2.Context) comb2.Status {
		return definitionBody.Match(seq, ctx)
	}, func(seq *comb2.Sequencer, ctx comb2.Context) {
		definitionBody.MustMatchError(seq, ctx)
	})
}

// ParseMeta parses grammar source text into its collected meta-AST. ok is
// false when the source is not a well-formed grammar description; errs
// carries whatever diagnostics were reported along the way.
func ParseMeta(source string) (tree *comb2.GroupNode, errs []string, ok bool) {
	res := comb2.Run(rootRule, source)
	return res.Tree, res.Errs, res.Ok
}
