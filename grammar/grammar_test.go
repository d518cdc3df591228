package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "ident", Ident.String())
	assert.Equal(t, "token_definition", TokenDefinition.String())
	assert.Equal(t, "unknown", NodeKind(999).String())
}

func TestParseMetaSingleRule(t *testing.T) {
	src := "root! expr\n" +
		"expr = [0-9]+\n"
	tree, errs, ok := ParseMeta(src)
	require.True(t, ok, "errs: %v", errs)
	require.NotNil(t, tree)
}

func TestParseMetaRejectsMalformed(t *testing.T) {
	src := "expr = \n"
	_, _, ok := ParseMeta(src)
	assert.False(t, ok)
}

func TestParseMetaWithAllDeclarations(t *testing.T) {
	src := "" +
		"token! ident\n" +
		"group! block\n" +
		"omit_one! expr\n" +
		"auto! term\n" +
		"root! expr\n" +
		"ident = [a-zA-Z_]+\n" +
		"term = ident / \"(\" expr \")\"\n" +
		"expr = term (\"+\" term)*\n" +
		"block = \"{\" expr \"}\"\n"
	_, errs, ok := ParseMeta(src)
	require.True(t, ok, "errs: %v", errs)
}

func TestParseMetaRejectsDirectiveWithNoIdentifiers(t *testing.T) {
	src := "token!\n" +
		"root! expr\n" +
		"expr = [0-9]+\n"
	_, _, ok := ParseMeta(src)
	assert.False(t, ok)
}

func TestParseMetaGroupAndRangeGroup(t *testing.T) {
	src := "root! expr\n" +
		"expr = ([a-zA-Z] [a-zA-Z0-9]*)\n"
	_, errs, ok := ParseMeta(src)
	require.True(t, ok, "errs: %v", errs)
}
