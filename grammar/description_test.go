package grammar

import (
	"testing"

	"github.com/comb2go/comb2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Description {
	t.Helper()
	tree, errs, ok := ParseMeta(src)
	require.True(t, ok, "errs: %v", errs)
	desc, err := AnalyzeDescription(tree)
	require.NoError(t, err)
	return desc
}

func TestAnalyzeDescriptionBasic(t *testing.T) {
	desc := mustParse(t, "root! expr\nexpr = [0-9]+\n")
	assert.Equal(t, "expr", desc.RootName)
	assert.Contains(t, desc.Definitions, "expr")
	assert.Equal(t, []string{"expr"}, desc.DefinitionOrder)
}

func TestAnalyzeDescriptionDirectives(t *testing.T) {
	src := "" +
		"token! ident\n" +
		"group! block\n" +
		"omit_one! expr\n" +
		"auto! term\n" +
		"root! expr\n" +
		"ident = [a-zA-Z_]+\n" +
		"term = ident\n" +
		"expr = term\n" +
		"block = \"{\" expr \"}\"\n"
	desc := mustParse(t, src)
	assert.Contains(t, desc.Tokens, "ident")
	assert.Contains(t, desc.Groups, "block")
	assert.Contains(t, desc.OmitIfOne, "expr")
	assert.Contains(t, desc.AutoRules, "term")
}

func TestAnalyzeDescriptionRejectsMissingRoot(t *testing.T) {
	tree, _, ok := ParseMeta("expr = [0-9]+\n")
	require.True(t, ok)
	_, err := AnalyzeDescription(tree)
	assert.Error(t, err)
}

func TestAnalyzeDescriptionRejectsUndefinedRoot(t *testing.T) {
	tree, _, ok := ParseMeta("root! missing\nexpr = [0-9]+\n")
	require.True(t, ok)
	_, err := AnalyzeDescription(tree)
	assert.Error(t, err)
}

func TestAnalyzeDescriptionRejectsDuplicateDefinitions(t *testing.T) {
	tree, _, ok := ParseMeta("root! expr\nexpr = [0-9]+\nexpr = [a-z]+\n")
	require.True(t, ok)
	_, err := AnalyzeDescription(tree)
	assert.Error(t, err)
}

func TestAnalyzeDescriptionRejectsTokenAndGroupClash(t *testing.T) {
	tree, _, ok := ParseMeta("token! expr\ngroup! expr\nroot! expr\nexpr = [0-9]+\n")
	require.True(t, ok)
	_, err := AnalyzeDescription(tree)
	assert.Error(t, err)
}

func TestAnalyzeDescriptionRejectsUndefinedTokenRule(t *testing.T) {
	tree, _, ok := ParseMeta("token! missing\nroot! expr\nexpr = [0-9]+\n")
	require.True(t, ok)
	_, err := AnalyzeDescription(tree)
	assert.Error(t, err)
}

func TestIdentNamesRejectsEmptyDirective(t *testing.T) {
	// grammar.go's someIdentAndLine already refuses a directive line with
	// zero identifiers at the parse stage, so this exercises identNames'
	// own defense directly against a directive node with no children.
	_, err := identNames(&comb2.GroupNode{Tag: TokenDefinition})
	assert.Error(t, err)
}
