package cheby

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootNode_Extent(t *testing.T) {
	r := &RootNode{CBlkBits: 4, CSelBits: 2}
	assert.Equal(t, 1<<6, r.Extent())
}

func TestRepeatNode_IsRAM(t *testing.T) {
	ram := &RepeatNode{Child: &RegNode{Name: "r"}}
	assert.True(t, ram.IsRAM())

	notRAM := &RepeatNode{Child: &BlockNode{Name: "b"}}
	assert.False(t, notRAM.IsRAM())
}

func TestRepeatNode_Extent(t *testing.T) {
	r := &RepeatNode{Count: 8, CElSize: 4}
	assert.Equal(t, 32, r.Extent())
}

func TestMemoryNode_ExtentAndFIFO(t *testing.T) {
	m := &MemoryNode{CDepth: 16, Inner: &RegNode{CSize: 4}}
	assert.Equal(t, 64, m.Extent())
	assert.False(t, m.IsFIFO())

	fifo := &MemoryNode{
		CDepth: 4,
		Inner:  &RegNode{CSize: 4},
		Extensions: Extensions{
			"x_driver_edge.fifo": BoolExt(true),
		},
	}
	assert.True(t, fifo.IsFIFO())
}

func TestRegNode_ReadableWritable(t *testing.T) {
	tests := []struct {
		access       Access
		readable     bool
		writable     bool
	}{
		{AccessRW, true, true},
		{AccessRO, true, false},
		{AccessWO, false, true},
		{AccessCst, false, false},
	}
	for _, tt := range tests {
		r := &RegNode{Access: tt.access}
		assert.Equal(t, tt.readable, r.Readable(), "access=%s readable", tt.access)
		assert.Equal(t, tt.writable, r.Writable(), "access=%s writable", tt.access)
	}
}

func TestFieldNode_WidthAndString(t *testing.T) {
	single := &FieldNode{Name: "en", Lo: 3, Hi: 3}
	assert.Equal(t, 1, single.Width())
	assert.Equal(t, "en[3]", single.String())

	ranged := &FieldNode{Name: "mode", Lo: 4, Hi: 7}
	assert.Equal(t, 4, ranged.Width())
	assert.Equal(t, "mode[7:4]", ranged.String())
}

func TestSubmapNode_IsInclude(t *testing.T) {
	inc := &SubmapNode{Interface: "include"}
	assert.True(t, inc.IsInclude())

	busConnected := &SubmapNode{Interface: "wb-32-be"}
	assert.False(t, busConnected.IsInclude())
}
