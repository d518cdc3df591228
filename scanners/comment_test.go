package scanners

import (
	"testing"

	"github.com/comb2go/comb2"
	"github.com/stretchr/testify/assert"
)

func TestCComment(t *testing.T) {
	assert.True(t, comb2.Run(CComment, "/* hello */").Ok)
	res := comb2.Run(CComment, "/* unterminated")
	assert.False(t, res.Ok)
	assert.NotEmpty(t, res.Errs)
}

func TestNestedCComment(t *testing.T) {
	text := "/* outer /* inner */ still outer */"
	nested := comb2.Run(NestedCComment, text)
	assert.True(t, nested.Ok)
	assert.Equal(t, len(text), nested.Pos.End)

	// The non-nesting variant stops at the first "*/", consuming less.
	linear := comb2.Run(CComment, text)
	assert.True(t, linear.Ok)
	assert.Less(t, linear.Pos.End, nested.Pos.End)
}

func TestLineComments(t *testing.T) {
	res := comb2.Run(ShellComment, "# hello\nnext line")
	assert.True(t, res.Ok)
	assert.Equal(t, 7, res.Pos.End)

	assert.True(t, comb2.Run(CppComment, "// hello").Ok)
	assert.True(t, comb2.Run(AsmComment, "; hello").Ok)
}
