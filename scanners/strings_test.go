package scanners

import (
	"testing"

	"github.com/comb2go/comb2"
	"github.com/stretchr/testify/assert"
)

func TestCStrBasic(t *testing.T) {
	assert.True(t, comb2.Run(CStr, `"hello"`).Ok)
	assert.True(t, comb2.Run(CStr, `"with \n escape"`).Ok)
	assert.True(t, comb2.Run(CStr, `"\x41A\U00000041"`).Ok)
}

func TestCStrStrongCutsOnUnterminated(t *testing.T) {
	res := comb2.Run(CStr, `"unterminated`)
	assert.False(t, res.Ok)
	assert.NotEmpty(t, res.Errs)
}

func TestCStrPartialAllowsUnterminated(t *testing.T) {
	res := comb2.Run(CStrPartial, `"unterminated`)
	assert.False(t, res.Ok)
	assert.Empty(t, res.Errs)
}

func TestCharStr(t *testing.T) {
	assert.True(t, comb2.Run(CharStr, `'a'`).Ok)
	assert.True(t, comb2.Run(CharStr, `'\n'`).Ok)
}

func TestGoRawStr(t *testing.T) {
	assert.True(t, comb2.Run(GoRawStr, "`raw\nstring`").Ok)
	res := comb2.Run(GoRawStr, "`unterminated")
	assert.False(t, res.Ok)
	assert.NotEmpty(t, res.Errs)
}

func TestJSRegexStr(t *testing.T) {
	assert.True(t, comb2.Run(JSRegexStr, `/abc\/def/`).Ok)
}

func TestPyDocStr(t *testing.T) {
	assert.True(t, comb2.Run(PyDocStrDouble, `"""multi
line
string"""`).Ok)
	assert.True(t, comb2.Run(PyDocStrSingle, "'''abc'''").Ok)
}

func TestCppRawStr(t *testing.T) {
	g := CppRawStr()
	assert.True(t, comb2.Run(g, `R"(hello world)"`).Ok)
	assert.True(t, comb2.Run(g, `R"delim(has ) paren)delim"`).Ok)
	assert.False(t, comb2.Run(g, `"not a raw string"`).Ok)
}
