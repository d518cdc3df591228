package scanners

import (
	"testing"

	"github.com/comb2go/comb2"
	"github.com/stretchr/testify/assert"
)

func TestRadixNumber(t *testing.T) {
	assert.True(t, comb2.Run(RadixNumber(2), "1").Ok)
	assert.False(t, comb2.Run(RadixNumber(2), "2").Ok)
	assert.True(t, comb2.Run(RadixNumber(16), "f").Ok)
	assert.True(t, comb2.Run(RadixNumber(10), "9").Ok)
}

func TestDecInteger(t *testing.T) {
	assert.True(t, comb2.Run(DecInteger, "12345").Ok)
	assert.False(t, comb2.Run(DecInteger, "abc").Ok)
}

func TestHexIntegerRequiresDigitsAfterPrefix(t *testing.T) {
	res := comb2.Run(HexInteger, "0xFF")
	assert.True(t, res.Ok)

	res = comb2.Run(HexInteger, "0x")
	assert.False(t, res.Ok)
	assert.NotEmpty(t, res.Errs)
}

func TestOctAndBinInteger(t *testing.T) {
	assert.True(t, comb2.Run(OctInteger, "0o17").Ok)
	assert.True(t, comb2.Run(BinInteger, "0b101").Ok)
	assert.False(t, comb2.Run(BinInteger, "0b").Ok)
}

func TestDecFloat(t *testing.T) {
	assert.True(t, comb2.Run(DecFloat, "5.5").Ok)
	assert.True(t, comb2.Run(DecFloat, ".5").Ok)
	assert.True(t, comb2.Run(DecFloat, "5.").Ok)
	assert.True(t, comb2.Run(DecFloat, "5.5e10").Ok)
	assert.True(t, comb2.Run(DecFloat, "5e+10").Ok)
}

func TestNotDecFloatIsNegativeLookahead(t *testing.T) {
	res := comb2.Run(comb2.And(NotDecFloat, comb2.Repeat(Digit)), "123")
	assert.False(t, res.Ok)
}

func TestHexFloat(t *testing.T) {
	assert.True(t, comb2.Run(HexFloat, "0x1.8p3").Ok)
	assert.False(t, comb2.Run(HexFloat, "1.8p3").Ok)
}
