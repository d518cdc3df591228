package comb2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLit(t *testing.T) {
	assert.True(t, Run(Lit("hello"), "hello world").Ok)
	assert.False(t, Run(Lit("hello"), "goodbye").Ok)
	assert.True(t, Run(Lit("x"), "x").Ok)
}

func TestOneOf(t *testing.T) {
	g := OneOf("abc")
	assert.True(t, Run(g, "a").Ok)
	assert.True(t, Run(g, "c").Ok)
	assert.False(t, Run(g, "d").Ok)
}

func TestNoneOf(t *testing.T) {
	g := NoneOf("abc")
	assert.True(t, Run(g, "d").Ok)
	assert.False(t, Run(g, "a").Ok)
	assert.False(t, Run(g, "").Ok)
}

func TestRange(t *testing.T) {
	g := Range('0', '9')
	assert.True(t, Run(g, "5").Ok)
	assert.False(t, Run(g, "a").Ok)
}

func TestEOSAndBOS(t *testing.T) {
	assert.True(t, Run(EOS, "").Ok)
	assert.False(t, Run(EOS, "x").Ok)
	assert.True(t, Run(BOS, "x").Ok)
}

func TestBOL(t *testing.T) {
	g := And(Lit("a\n"), BOL)
	assert.True(t, Run(g, "a\n").Ok)

	g2 := And(Lit("ab"), BOL)
	assert.False(t, Run(g2, "ab").Ok)
}

func TestNullNeverConsumes(t *testing.T) {
	res := Run(Null, "anything")
	assert.True(t, res.Ok)
	assert.Equal(t, 0, res.Pos.End)
}

func TestULit(t *testing.T) {
	assert.True(t, Run(ULit('世'), "世界").Ok)
	assert.False(t, Run(ULit('世'), "a").Ok)
}

func TestUOneOf(t *testing.T) {
	g := UOneOf('世', '界')
	assert.True(t, Run(g, "世").Ok)
	assert.False(t, Run(g, "a").Ok)
}

func TestURange(t *testing.T) {
	g := URange('a', 'z')
	assert.True(t, Run(g, "m").Ok)
	assert.False(t, Run(g, "世").Ok)
}

func TestUAny(t *testing.T) {
	assert.True(t, Run(UAny, "世").Ok)
	assert.False(t, Run(UAny, "").Ok)
}
