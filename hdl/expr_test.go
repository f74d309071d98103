package hdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConst(t *testing.T) {
	c := NewConst(5, 8)
	assert.Equal(t, uint64(5), c.Value)
	assert.Equal(t, 8, c.Width)
}

func TestNewSlice(t *testing.T) {
	s := NewSlice(NewRef("x"), 7, 4)
	assert.Equal(t, 7, s.Hi)
	assert.Equal(t, 4, s.Lo)
}

func TestAndOr(t *testing.T) {
	a := And(NewRef("a"), NewRef("b"))
	assert.Equal(t, OpAnd, a.Op)

	o := Or(NewRef("a"), NewRef("b"))
	assert.Equal(t, OpOr, o.Op)
}

func TestLogicOp_String(t *testing.T) {
	assert.Equal(t, "and", OpAnd.String())
	assert.Equal(t, "or", OpOr.String())
}

func TestDir_String(t *testing.T) {
	assert.Equal(t, "in", In.String())
	assert.Equal(t, "out", Out.String())
	assert.Equal(t, "inout", Inout.String())
}

func TestNewReplicate(t *testing.T) {
	r := NewReplicate(4, NewConst(1, 1))
	assert.Equal(t, 4, r.Count)
}

func TestNewEq(t *testing.T) {
	e := NewEq(NewRef("a"), NewConst(0, 1))
	_, ok := e.Left.(*Ref)
	assert.True(t, ok)
}
