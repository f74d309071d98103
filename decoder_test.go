package cheby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheby-go/cheby/hdl"
)

func TestLog2Exact(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 0}, {2, 1}, {4, 2}, {8, 3}, {1024, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, log2Exact(tt.n))
	}
}

func TestFieldDecode(t *testing.T) {
	tests := []struct {
		name      string
		f         *FieldNode
		off, word int
		want      *fieldSlice
	}{
		{
			name: "field fully inside one word",
			f:    &FieldNode{Lo: 4, Hi: 7},
			off:  0, word: 32,
			want: &fieldSlice{DLo: 4, DHi: 7, VLo: 0, VHi: 3},
		},
		{
			name: "field outside this word's window",
			f:    &FieldNode{Lo: 40, Hi: 47},
			off:  0, word: 32,
			want: nil,
		},
		{
			name: "field spanning two words, low half",
			f:    &FieldNode{Lo: 24, Hi: 39},
			off:  0, word: 32,
			want: &fieldSlice{DLo: 24, DHi: 31, VLo: 0, VHi: 7},
		},
		{
			name: "field spanning two words, high half",
			f:    &FieldNode{Lo: 24, Hi: 39},
			off:  32, word: 32,
			want: &fieldSlice{DLo: 0, DHi: 7, VLo: 8, VHi: 15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldDecode(tt.f, tt.off, tt.word)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestSliceExpr_OmitsFullWidthSlice(t *testing.T) {
	ref := hdl.NewRef("x")
	full := sliceExpr(ref, 31, 0, 32)
	assert.Same(t, ref, full)

	partial := sliceExpr(ref, 7, 0, 32)
	sl, ok := partial.(*hdl.Slice)
	require.True(t, ok)
	assert.Equal(t, 7, sl.Hi)
	assert.Equal(t, 0, sl.Lo)
}

func TestGroupByPrefix(t *testing.T) {
	nodes := []Node{
		&RegNode{Name: "a", CAddress: 0x00},
		&RegNode{Name: "b", CAddress: 0x04},
		&RegNode{Name: "c", CAddress: 0x10},
	}
	groups := groupByPrefix(nodes, 4) // partition on bit 4 upward
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].nodes, 2)
	assert.Len(t, groups[1].nodes, 1)
}

func TestAddRegDecoder_SingleWordRegisterSkipsSwitch(t *testing.T) {
	reg := &RegNode{Name: "r", CAddress: 0, CSize: 4}
	var leafCalls int
	ctx := &decodeCtx{AddrSig: "adr", WordBits: 32, WordSize: 4, AddrWordBits: 2, Leaf: func(n Node, foff int) ([]hdl.Stmt, error) {
		leafCalls++
		return nil, nil
	}}
	stmts, err := addRegDecoder(ctx, reg, 2)
	require.NoError(t, err)
	assert.Nil(t, stmts)
	assert.Equal(t, 1, leafCalls)
}

func TestAddRegDecoder_MultiWordRegisterSwitchesOverWords(t *testing.T) {
	reg := &RegNode{Name: "r", CAddress: 0, CSize: 8} // two 32-bit words
	var foffs []int
	ctx := &decodeCtx{AddrSig: "adr", WordBits: 32, WordSize: 4, AddrWordBits: 2, Leaf: func(n Node, foff int) ([]hdl.Stmt, error) {
		if n != nil {
			foffs = append(foffs, foff)
		}
		return nil, nil
	}}
	stmts, err := addRegDecoder(ctx, reg, 3) // one extra bit beyond AddrWordBits to select the word
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*hdl.Switch)
	require.True(t, ok)
	assert.Equal(t, []int{32, 0}, foffs)
}
