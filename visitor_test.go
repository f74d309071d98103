package cheby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_VisitsEveryNodeInPreOrder(t *testing.T) {
	root := simpleRoot()
	var names []string
	Inspect(root, func(n Node) bool {
		names = append(names, n.NodeName())
		return true
	})
	assert.Equal(t, []string{"MyMap", "ctrl", "enable", "status"}, names)
}

func TestInspect_StopsDescendingWhenCallbackReturnsFalse(t *testing.T) {
	root := simpleRoot()
	var names []string
	Inspect(root, func(n Node) bool {
		names = append(names, n.NodeName())
		// never descend into ctrl's fields
		return n.NodeName() != "ctrl"
	})
	assert.Equal(t, []string{"MyMap", "ctrl", "status"}, names)
}

func TestInspect_NilNodeIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		Inspect(nil, func(n Node) bool { return true })
	})
}

type countingVisitor struct {
	regs int
}

func (c *countingVisitor) VisitRoot(*RootNode) error     { return nil }
func (c *countingVisitor) VisitBlock(*BlockNode) error   { return nil }
func (c *countingVisitor) VisitSubmap(*SubmapNode) error { return nil }
func (c *countingVisitor) VisitRepeat(*RepeatNode) error { return nil }
func (c *countingVisitor) VisitMemory(*MemoryNode) error { return nil }
func (c *countingVisitor) VisitReg(*RegNode) error       { c.regs++; return nil }
func (c *countingVisitor) VisitField(*FieldNode) error   { return nil }

func TestNode_AcceptDispatchesToMatchingVisitMethod(t *testing.T) {
	root := simpleRoot()
	v := &countingVisitor{}
	for _, child := range root.Children {
		require.NoError(t, child.Accept(v))
	}
	assert.Equal(t, 2, v.regs)
}
