package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallStackCheckRecursionNoPriorFrame(t *testing.T) {
	var stack CallStack
	assert.Equal(t, RecursionNone, stack.CheckRecursion("expr", 0, OrderedChoice))
}

func TestCallStackCheckRecursionForwardProgressIsNone(t *testing.T) {
	var stack CallStack
	stack.Push(NamedFrame(0, "expr"))
	assert.Equal(t, RecursionNone, stack.CheckRecursion("expr", 5, OrderedChoice))
}

func TestCallStackCheckRecursionInfinity(t *testing.T) {
	var stack CallStack
	stack.Push(NamedFrame(3, "expr"))
	assert.Equal(t, RecursionInfinity, stack.CheckRecursion("expr", 3, OrderedChoice))
}

func TestCallStackCheckRecursionLeft(t *testing.T) {
	var stack CallStack
	stack.Push(NamedFrame(3, "expr"))
	stack.Push(KindFrame(3, OrderedChoice, 0, 1))
	assert.Equal(t, RecursionLeft, stack.CheckRecursion("expr", 3, OrderedChoice))
}

func TestCallStackPushPop(t *testing.T) {
	var stack CallStack
	assert.True(t, stack.Empty())
	stack.Push(NamedFrame(0, "a"))
	assert.False(t, stack.Empty())
	stack.Pop()
	assert.True(t, stack.Empty())
	stack.Pop() // pop on empty is a no-op
	assert.True(t, stack.Empty())
}

func TestRecursionTypeString(t *testing.T) {
	assert.Equal(t, "none", RecursionNone.String())
	assert.Equal(t, "left", RecursionLeft.String())
	assert.Equal(t, "infinity", RecursionInfinity.String())
}

func TestStackFrameIsNamedAsAndIsKind(t *testing.T) {
	named := NamedFrame(1, "x")
	assert.True(t, named.IsNamedAs("x"))
	assert.False(t, named.IsNamedAs("y"))
	assert.False(t, named.IsKind(OrderedChoice))

	kind := KindFrame(1, OrderedChoice, 0, 2)
	assert.True(t, kind.IsKind(OrderedChoice))
	assert.False(t, kind.IsNamedAs("x"))
}
