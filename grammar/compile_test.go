package grammar

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/comb2go/comb2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, src string) *Table {
	t.Helper()
	tree, errs, ok := ParseMeta(src)
	require.True(t, ok, "parse errs: %v", errs)
	desc, err := AnalyzeDescription(tree)
	require.NoError(t, err)
	table, err := Compile(desc)
	require.NoError(t, err)
	return table
}

func TestCompileAndParseSimpleNumber(t *testing.T) {
	table := compileSource(t, "root! num\nnum = [0-9]+\n")
	tree, consumed, ok, errs := table.ParseRoot("123")
	require.True(t, ok, "errs: %v", errs)
	assert.Equal(t, 3, consumed)
	require.NotNil(t, tree)
}

func TestCompileLiteralEscapes(t *testing.T) {
	table := compileSource(t, `root! lit
lit = "a\nb"
`)
	_, consumed, ok, errs := table.ParseRoot("a\nb")
	require.True(t, ok, "errs: %v", errs)
	assert.Equal(t, 3, consumed)
}

func TestCompileOrderedChoiceAndSequence(t *testing.T) {
	src := "root! expr\n" +
		"expr = \"a\" \"b\" / \"c\"\n"
	table := compileSource(t, src)

	_, _, ok, _ := table.ParseRoot("ab")
	assert.True(t, ok)

	_, _, ok, _ = table.ParseRoot("c")
	assert.True(t, ok)

	_, _, ok, _ = table.ParseRoot("x")
	assert.False(t, ok)
}

func TestCompileTokenRuleProducesToken(t *testing.T) {
	table := compileSource(t, "token! ident\nroot! ident\nident = [a-zA-Z_]+\n")
	tree, _, ok, errs := table.ParseRoot("hello")
	require.True(t, ok, "errs: %v", errs)
	require.Len(t, tree.Children, 1)
	_, isToken := tree.Children[0].(comb2.Token)
	assert.True(t, isToken)
}

func TestCompileLeftRecursionIsRejected(t *testing.T) {
	src := "root! expr\n" +
		"expr = expr \"+\" num / num\n" +
		"num = [0-9]+\n"
	table := compileSource(t, src)
	_, _, ok, errs := table.ParseRoot("1+2")
	assert.False(t, ok)
	assert.NotEmpty(t, errs)
}

func TestCompileAutoRuleRunsBeforeEachProduction(t *testing.T) {
	src := "auto! ws\n" +
		"root! expr\n" +
		"ws = \" \"*\n" +
		"expr = num (\"+\" num)*\n" +
		"num = [0-9]+\n"
	table := compileSource(t, src)
	_, consumed, ok, errs := table.ParseRoot("1 + 2")
	require.True(t, ok, "errs: %v", errs)
	assert.Equal(t, 5, consumed)
}

func TestTableLoggerTracesRuleDispatch(t *testing.T) {
	table := compileSource(t, "root! num\nnum = [0-9]+\n")
	var buf bytes.Buffer
	table.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, _, ok, errs := table.ParseRoot("123")
	require.True(t, ok, "errs: %v", errs)

	out := buf.String()
	assert.Contains(t, out, "calling rule")
	assert.Contains(t, out, "name=num")
	assert.Contains(t, out, "rule returned")
}

func TestCompileSequenceOfBareTerminalsCapturesOnlyOneToken(t *testing.T) {
	table := compileSource(t, "root! items\nitems = item+\nitem = [a-z]+ \" \"*\n")
	tree, _, ok, errs := table.ParseRoot("a b c")
	require.True(t, ok, "errs: %v", errs)
	require.Len(t, tree.Children, 1)

	items, ok := tree.Children[0].(*comb2.GroupNode)
	require.True(t, ok)
	require.Len(t, items.Children, 3)

	for i, want := range []string{"a", "b", "c"} {
		item, ok := items.Children[i].(*comb2.GroupNode)
		require.True(t, ok)
		require.Lenf(t, item.Children, 1, "item %d should capture exactly one token, not one per sequenced terminal", i)
		tok, ok := item.Children[0].(comb2.Token)
		require.True(t, ok)
		assert.Equal(t, want, tok.Text)
	}
}

func TestUnescapeLiteralHandlesEscapes(t *testing.T) {
	out, err := unescapeLiteral(`"a\tb\x41B"`)
	require.NoError(t, err)
	assert.Equal(t, "a\tbAB", out)
}

func TestUnescapeLiteralRejectsTrailingBackslash(t *testing.T) {
	_, err := unescapeLiteral("\"a\\\"")
	assert.Error(t, err)
}
