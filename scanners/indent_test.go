package scanners

import (
	"testing"

	"github.com/comb2go/comb2"
	"github.com/stretchr/testify/assert"
)

type fixedIndentContext struct {
	comb2.BaseContext
	expected int
}

func (c *fixedIndentContext) ExpectIndent() int { return c.expected }

func runIndent(g comb2.Combinator, expected int, text string) *comb2.Result {
	seq := comb2.NewSequencer(text)
	ctx := &fixedIndentContext{expected: expected}
	st := g.Match(seq, ctx)
	return &comb2.Result{Ok: st == comb2.Match, Pos: comb2.Pos{Begin: 0, End: seq.Rptr}}
}

func TestIndentEqual(t *testing.T) {
	assert.True(t, runIndent(Indent, 4, "    x").Ok)
	assert.False(t, runIndent(Indent, 4, "  x").Ok)
}

func TestNewIndentRequiresDeeper(t *testing.T) {
	assert.True(t, runIndent(NewIndent, 2, "    x").Ok)
	assert.False(t, runIndent(NewIndent, 4, "    x").Ok)
}

func TestLessIndentRequiresShallower(t *testing.T) {
	assert.True(t, runIndent(LessIndent, 4, "  x").Ok)
	assert.False(t, runIndent(LessIndent, 4, "    x").Ok)
}

func TestNewOrEqIndent(t *testing.T) {
	assert.True(t, runIndent(NewOrEqIndent, 4, "    x").Ok)
	assert.True(t, runIndent(NewOrEqIndent, 4, "      x").Ok)
	assert.False(t, runIndent(NewOrEqIndent, 4, "  x").Ok)
}

func TestLessEqIndent(t *testing.T) {
	assert.True(t, runIndent(LessEqIndent, 4, "    x").Ok)
	assert.True(t, runIndent(LessEqIndent, 4, "  x").Ok)
	assert.False(t, runIndent(LessEqIndent, 4, "      x").Ok)
}

func TestIndentWithNoExpectationAlwaysSatisfied(t *testing.T) {
	res := comb2.Run(NewIndent, "    x")
	assert.True(t, res.Ok)
}
