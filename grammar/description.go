package grammar

import (
	"fmt"

	"github.com/comb2go/comb2"
)

// Description is the validated, name-indexed view of a parsed meta-AST,
// grounded on original_source's grammar.h Description struct.
type Description struct {
	DefinitionOrder []string
	Definitions     map[string]*comb2.GroupNode // each value is the rule's OrderedChoice body node
	RootName        string
	Tokens          map[string]struct{}
	Groups          map[string]struct{}
	OmitIfOne       map[string]struct{}
	AutoRules       map[string]struct{}
}

func newDescription() *Description {
	return &Description{
		Definitions: map[string]*comb2.GroupNode{},
		Tokens:      map[string]struct{}{},
		Groups:      map[string]struct{}{},
		OmitIfOne:   map[string]struct{}{},
		AutoRules:   map[string]struct{}{},
	}
}

func asGroup(n any) (*comb2.GroupNode, bool) {
	g, ok := n.(*comb2.GroupNode)
	return g, ok
}

func asToken(n any) (comb2.Token, bool) {
	t, ok := n.(comb2.Token)
	return t, ok
}

// identNames collects every Ident-tagged Token among a directive node's
// children (token!/group!/omit_one!/auto! each take one-or-more names,
// root! exactly one — both shapes are representable as a name list).
func identNames(group *comb2.GroupNode) ([]string, error) {
	var names []string
	for _, child := range group.Children {
		tok, ok := asToken(child)
		if !ok || tok.Tag != Ident {
			return nil, fmt.Errorf("directive child is not an identifier")
		}
		names = append(names, tok.Text)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("directive names no identifiers")
	}
	return names, nil
}

// AnalyzeDescription walks a ParseMeta root and builds a validated
// Description, grounded on original_source's analyze_description (declared
// in grammar.h, its definition is part of the pack's distillation —
// reconstructed here from the invariants grammar.h documents and the
// consuming code in topdown.cpp/convert_topdown).
func AnalyzeDescription(root *comb2.GroupNode) (*Description, error) {
	desc := newDescription()
	for _, child := range root.Children {
		group, ok := asGroup(child)
		if !ok {
			return nil, fmt.Errorf("unexpected leaf at grammar top level")
		}
		kind, _ := group.Tag.(NodeKind)
		switch kind {
		case Definition:
			if len(group.Children) != 2 {
				return nil, fmt.Errorf("definition node does not have exactly two children")
			}
			idTok, ok := asToken(group.Children[0])
			if !ok || idTok.Tag != Ident {
				return nil, fmt.Errorf("definition node's first child is not ident")
			}
			body, ok := asGroup(group.Children[1])
			if !ok || body.Tag != OrderedChoice {
				return nil, fmt.Errorf("definition node's second child is not ordered_choice")
			}
			if _, dup := desc.Definitions[idTok.Text]; dup {
				return nil, fmt.Errorf("duplicate definition for rule: %s", idTok.Text)
			}
			desc.Definitions[idTok.Text] = body
			desc.DefinitionOrder = append(desc.DefinitionOrder, idTok.Text)
		case TokenDefinition:
			names, err := identNames(group)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				desc.Tokens[n] = struct{}{}
			}
		case GroupDefinition:
			names, err := identNames(group)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				desc.Groups[n] = struct{}{}
			}
		case OmitIfOneDefinition:
			names, err := identNames(group)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				desc.OmitIfOne[n] = struct{}{}
			}
		case AutoDefinition:
			names, err := identNames(group)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				desc.AutoRules[n] = struct{}{}
			}
		case RootDefinition:
			names, err := identNames(group)
			if err != nil {
				return nil, err
			}
			if len(names) != 1 {
				return nil, fmt.Errorf("root! directive must name exactly one rule")
			}
			if desc.RootName != "" {
				return nil, fmt.Errorf("duplicate root! directive")
			}
			desc.RootName = names[0]
		default:
			return nil, fmt.Errorf("unsupported top-level node kind: %v", kind)
		}
	}
	if err := validateDescription(desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func validateDescription(desc *Description) error {
	if desc.RootName == "" {
		return fmt.Errorf("no root! directive found")
	}
	if _, ok := desc.Definitions[desc.RootName]; !ok {
		return fmt.Errorf("root rule is not defined: %s", desc.RootName)
	}
	for name := range desc.Tokens {
		if _, ok := desc.Groups[name]; ok {
			return fmt.Errorf("rule %s cannot be both token! and group!", name)
		}
	}
	checkDefined := func(set map[string]struct{}, directive string) error {
		for name := range set {
			if _, ok := desc.Definitions[name]; !ok {
				return fmt.Errorf("%s directive refers to undefined rule: %s", directive, name)
			}
		}
		return nil
	}
	if err := checkDefined(desc.Tokens, "token!"); err != nil {
		return err
	}
	if err := checkDefined(desc.Groups, "group!"); err != nil {
		return err
	}
	if err := checkDefined(desc.OmitIfOne, "omit_one!"); err != nil {
		return err
	}
	if err := checkDefined(desc.AutoRules, "auto!"); err != nil {
		return err
	}
	return nil
}
