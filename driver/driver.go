// Package driver wires the meta-grammar parser and grammar compiler
// together into a top-level entry point: compile grammar source once, then
// parse any number of inputs against the resulting table, rendering the
// collected tree as text or JSON. Grounded on original_source's
// src/tool/cmb2parse/topdown.cpp (do_topdown_parse, print_tree,
// print_json_tree), generalized the way hucsmn-peg's peg.go layers
// Parse/Match/ConfiguredMatch convenience entry points over its lower-level
// pattern type.
package driver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/comb2go/comb2"
	"github.com/comb2go/comb2/grammar"
)

// CompileGrammar parses grammar source text and lowers it to a runtime
// Table in one step, the composition a CLI front end actually wants.
func CompileGrammar(source string) (*grammar.Table, error) {
	tree, errs, ok := grammar.ParseMeta(source)
	if !ok {
		return nil, fmt.Errorf("grammar source is malformed: %s", strings.Join(errs, "; "))
	}
	desc, err := grammar.AnalyzeDescription(tree)
	if err != nil {
		return nil, fmt.Errorf("grammar validation failed: %w", err)
	}
	table, err := grammar.Compile(desc)
	if err != nil {
		return nil, fmt.Errorf("grammar compilation failed: %w", err)
	}
	return table, nil
}

// Driver runs a compiled grammar repeatedly against input text, optionally
// tracing rule dispatch through Logger. Installing a logger with SetLogger
// also threads it onto Table, so the compiled grammar's own per-rule "calling
// rule" trace (grammar.Table.Logger) comes along with the driver's
// parse-level trace; assigning the Logger field directly leaves Table as is.
type Driver struct {
	Table  *grammar.Table
	Logger *slog.Logger
}

// New builds a Driver around an already-compiled Table. Logger may be nil,
// in which case tracing is a no-op.
func New(table *grammar.Table) *Driver {
	return &Driver{Table: table}
}

// SetLogger installs logger as both the driver's own parse-level tracer and
// the compiled table's per-rule dispatch tracer.
func (d *Driver) SetLogger(logger *slog.Logger) {
	d.Logger = logger
	d.Table.Logger = logger
}

// ParseResult is one input's outcome: either a collected tree plus whatever
// diagnostics fired along the way (possibly none, on a clean match), or a
// failure with no tree at all.
type ParseResult struct {
	Tree     *comb2.GroupNode
	Consumed int
	Errs     []string
}

// Parse runs the root rule against input and requires the whole input be
// consumed — a Match that stops short of eos() is still reported as a
// failure, since the grammar only describes one document, not a prefix of
// one. Grounded on do_topdown_parse's "full parse or error" contract.
func (d *Driver) Parse(input string) (*ParseResult, error) {
	if d.Logger != nil {
		d.Logger.Debug("parsing input", "root", d.Table.Desc.RootName, "length", len(input))
	}
	tree, consumed, ok, errs := d.Table.ParseRoot(input)
	if !ok || consumed != len(input) {
		calc := comb2.NewPositionCalculator(input)
		pos := calc.Calculate(consumed)
		excerpt := comb2.SourceExcerpt(input, pos)
		diag := fmt.Sprintf("parse failed at %s\n%s", pos, excerpt)
		if len(errs) > 0 {
			diag = fmt.Sprintf("%s\n%s", diag, strings.Join(errs, "\n"))
		}
		if d.Logger != nil {
			d.Logger.Debug("parse failed", "pos", pos.String(), "consumed", consumed, "input_len", len(input))
		}
		return nil, fmt.Errorf("%s", diag)
	}
	if d.Logger != nil {
		d.Logger.Debug("parse succeeded", "consumed", consumed)
	}
	return &ParseResult{Tree: tree, Consumed: consumed, Errs: errs}, nil
}

// rootLabel is what the outermost synthetic wrapper node (comb2.Collect's
// Tag: nil group, which never corresponds to a named rule) renders as.
const rootLabel = "<root>"

// collapseOmitIfOne replaces any GroupNode whose Tag names a rule in
// desc.OmitIfOne and that has exactly one child with that child, repeating
// until no further collapse applies (a chain of single-child omittable
// rules collapses all the way down). Leaves and non-omittable/multi-child
// groups pass through unchanged other than their children being collapsed
// recursively.
func collapseOmitIfOne(node any, desc *grammar.Description) any {
	group, ok := node.(*comb2.GroupNode)
	if !ok {
		return node
	}
	children := make([]any, len(group.Children))
	for i, child := range group.Children {
		children[i] = collapseOmitIfOne(child, desc)
	}
	collapsed := &comb2.GroupNode{Tag: group.Tag, Pos: group.Pos, Children: children}
	for {
		name, isName := collapsed.Tag.(string)
		if !isName {
			return collapsed
		}
		if _, omit := desc.OmitIfOne[name]; !omit || len(collapsed.Children) != 1 {
			return collapsed
		}
		child := collapsed.Children[0]
		childGroup, ok := child.(*comb2.GroupNode)
		if !ok {
			return child
		}
		collapsed = childGroup
	}
}

// RenderText prints tree as an indented outline, one unit of indent per
// nesting level, a "token: <text>" line per Token leaf, and descends through
// the outermost synthetic wrapper node as "<root>" instead of its absent
// rule name. Grounded on topdown.cpp's print_tree.
func RenderText(tree *comb2.GroupNode, desc *grammar.Description) string {
	var b strings.Builder
	root := collapseOmitIfOne(tree, desc)
	renderTextNode(&b, root, rootLabel, 0)
	return b.String()
}

func renderTextNode(b *strings.Builder, node any, label string, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case comb2.Token:
		fmt.Fprintf(b, "%s%v\n", indent, label)
		fmt.Fprintf(b, "%s  token: %s\n", indent, n.Text)
	case *comb2.GroupNode:
		fmt.Fprintf(b, "%s%v\n", indent, label)
		for _, child := range n.Children {
			childLabel := "?"
			switch c := child.(type) {
			case comb2.Token:
				childLabel = fmt.Sprint(c.Tag)
			case *comb2.GroupNode:
				childLabel = fmt.Sprint(c.Tag)
			}
			renderTextNode(b, child, childLabel, depth+1)
		}
	}
}

// jsonNode mirrors the JSON tree format: "tag" always present, "token" only
// on leaves, "children" only on groups.
type jsonNode struct {
	Tag      string     `json:"tag"`
	Token    string     `json:"token,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func toJSONNode(node any, label string) jsonNode {
	switch n := node.(type) {
	case comb2.Token:
		return jsonNode{Tag: label, Token: n.Text}
	case *comb2.GroupNode:
		children := make([]jsonNode, 0, len(n.Children))
		for _, child := range n.Children {
			childLabel := "?"
			switch c := child.(type) {
			case comb2.Token:
				childLabel = fmt.Sprint(c.Tag)
			case *comb2.GroupNode:
				childLabel = fmt.Sprint(c.Tag)
			}
			children = append(children, toJSONNode(child, childLabel))
		}
		return jsonNode{Tag: label, Children: children}
	default:
		return jsonNode{Tag: label}
	}
}

// RenderJSON marshals tree to the JSON tree format, applying the same
// omit_if_one collapsing and root relabeling as RenderText. Grounded on
// topdown.cpp's print_json_tree.
func RenderJSON(tree *comb2.GroupNode, desc *grammar.Description) (string, error) {
	root := collapseOmitIfOne(tree, desc)
	node := toJSONNode(root, rootLabel)
	var out strings.Builder
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("failed to marshal parse tree: %w", err)
	}
	return strings.TrimSuffix(out.String(), "\n"), nil
}
