package comb2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchTableRootIsLazilyInitialized(t *testing.T) {
	var bt BranchTable
	root := bt.Root()
	require.NotNil(t, root)
	assert.Empty(t, root.children)
}

func TestBranchTableGroupLifecycle(t *testing.T) {
	var bt BranchTable
	bt.BeginGroup("g")
	bt.EndGroup(Match, "g", Pos{Begin: 0, End: 3})

	collected := Collect(bt.Root())
	require.Len(t, collected.Children, 1)
	g, ok := collected.Children[0].(*GroupNode)
	require.True(t, ok)
	assert.Equal(t, "g", g.Tag)
}

func TestBranchTableGroupDiscardedOnNotMatch(t *testing.T) {
	var bt BranchTable
	bt.BeginGroup("g")
	bt.EndGroup(NotMatch, "g", Pos{Begin: 0, End: 0})

	collected := Collect(bt.Root())
	assert.Empty(t, collected.Children)
}

func TestBranchTableStringLifecycle(t *testing.T) {
	var bt BranchTable
	seq := NewSequencer("hello")
	bt.BeginString("word")
	st := bt.EndString(Match, "word", seq, Pos{Begin: 0, End: 5})
	assert.Equal(t, Match, st)

	collected := Collect(bt.Root())
	require.Len(t, collected.Children, 1)
	tok, ok := collected.Children[0].(Token)
	require.True(t, ok)
	assert.Equal(t, "hello", tok.Text)
}

func TestBranchTableStringSuppressesNestedGroupViaStrCount(t *testing.T) {
	var bt BranchTable
	seq := NewSequencer("xy")
	bt.BeginString("tok")
	bt.BeginGroup("nested") // must be suppressed: strCount > 0
	bt.EndGroup(Match, "nested", Pos{Begin: 0, End: 1})
	bt.EndString(Match, "tok", seq, Pos{Begin: 0, End: 2})

	collected := Collect(bt.Root())
	require.Len(t, collected.Children, 1)
	_, ok := collected.Children[0].(Token)
	assert.True(t, ok)
}

func TestBranchTableAnonymousBranchFlattens(t *testing.T) {
	var bt BranchTable
	bt.LogicEntry(BranchEntry)
	bt.BeginGroup("inner")
	bt.EndGroup(Match, "inner", Pos{Begin: 0, End: 1})
	bt.LogicResult(BranchResult, Match)

	collected := Collect(bt.Root())
	require.Len(t, collected.Children, 1)
	_, ok := collected.Children[0].(*GroupNode)
	assert.True(t, ok)
}

func TestBranchTableLexerModeSuppressesBranchFrames(t *testing.T) {
	var bt BranchTable
	bt.LexerMode = true
	before := len(bt.Root().children)
	bt.LogicEntry(RepeatEntry)
	bt.LogicResult(RepeatResult, Match)
	assert.Equal(t, before, len(bt.Root().children))
}

func TestBranchTablePeekSuppressesTreeCommits(t *testing.T) {
	var bt BranchTable
	bt.LogicEntry(PeekBegin)
	bt.BeginGroup("g")
	bt.EndGroup(Match, "g", Pos{Begin: 0, End: 1})
	bt.LogicResult(PeekEnd, Match)

	// Peek suppresses Group capture exactly like a nested String would
	// (shares the strCount semaphore), so nothing is committed.
	collected := Collect(bt.Root())
	assert.Empty(t, collected.Children)
}

func TestVisitNodesSkipsAnonymousBranches(t *testing.T) {
	var bt BranchTable
	bt.LogicEntry(BranchEntry)
	bt.BeginGroup("inner")
	bt.EndGroup(Match, "inner", Pos{Begin: 0, End: 1})
	bt.LogicResult(BranchResult, Match)

	var events []bool
	VisitNodes(bt.Root(), func(node any, enter bool) {
		events = append(events, enter)
	})
	assert.Equal(t, []bool{true, false}, events)
}

func TestVisitNodesRawExposesAnonymousBranches(t *testing.T) {
	var bt BranchTable
	bt.LogicEntry(BranchEntry)
	bt.BeginGroup("inner")
	bt.EndGroup(Match, "inner", Pos{Begin: 0, End: 1})
	bt.LogicResult(BranchResult, Match)

	var count int
	VisitNodesRaw(bt.Root(), func(node any, enter bool) {
		count++
	})
	// One enter+leave for the anonymous branch, one enter+leave for "inner".
	assert.Equal(t, 4, count)
}
