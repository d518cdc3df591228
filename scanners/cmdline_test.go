package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandLinePlainArgs(t *testing.T) {
	args, ok := SplitCommandLine("hello world")
	require.True(t, ok)
	require.Len(t, args, 2)
	assert.Equal(t, PlainArg, args[0].Kind)
	assert.Equal(t, "hello", args[0].Text)
	assert.Equal(t, "world", args[1].Text)
}

func TestSplitCommandLineQuotedArg(t *testing.T) {
	args, ok := SplitCommandLine(`echo "hello\" world"`)
	require.True(t, ok)
	require.Len(t, args, 2)
	assert.Equal(t, PlainArg, args[0].Kind)
	assert.Equal(t, "echo", args[0].Text)
	assert.Equal(t, QuotedArg, args[1].Kind)
}

func TestSplitCommandLineAdjacentQuotesFallBackToPlainArg(t *testing.T) {
	// With no space between the closing and opening quote, the quoted-arg
	// peek fails and the whole run is swallowed as one plain arg instead.
	args, ok := SplitCommandLine(`"a""b"`)
	require.True(t, ok)
	require.Len(t, args, 1)
	assert.Equal(t, PlainArg, args[0].Kind)
	assert.Equal(t, `"a""b"`, args[0].Text)
}

func TestSplitCommandLineEmpty(t *testing.T) {
	args, ok := SplitCommandLine("")
	assert.True(t, ok)
	assert.Empty(t, args)
}

func TestArgKindString(t *testing.T) {
	assert.Equal(t, "PlainArg", PlainArg.String())
	assert.Equal(t, "QuotedArg", QuotedArg.String())
}
