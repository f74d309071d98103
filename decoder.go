package cheby

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/cheby-go/cheby/hdl"
)

// leafFunc is invoked once the decoder recursion has isolated a
// single addressable unit. n is nil for the default (unmapped)
// branch. foff is the bit offset into the node's value that this
// particular word-choice covers (always 0 except for a Reg wider
// than one bus word, where the reg layer calls it once per word).
type leafFunc func(n Node, foff int) ([]hdl.Stmt, error)

// decodeCtx threads the constants every decoder call needs without
// re-deriving them at each recursion level.
type decodeCtx struct {
	AddrSig      string // signal already selected by the bus-split mux, or the unified adr
	WordBits     int
	WordSize     int // bytes
	AddrWordBits int
	Leaf         leafFunc
}

func sortedChildren(nodes []Node) []Node {
	out := append([]Node{}, nodes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Addr() < out[j].Addr() })
	return out
}

// addrGroup is one case arm of a block-layer switch: children sharing
// the same address prefix once masked down to the next partition
// boundary.
type addrGroup struct {
	prefix uint64
	nodes  []Node
}

func groupByPrefix(nodes []Node, lo int) []addrGroup {
	var groups []addrGroup
	for _, n := range nodes {
		p := uint64(n.Addr()) >> uint(lo)
		if len(groups) > 0 && groups[len(groups)-1].prefix == p {
			groups[len(groups)-1].nodes = append(groups[len(groups)-1].nodes, n)
		} else {
			groups = append(groups, addrGroup{prefix: p, nodes: []Node{n}})
		}
	}
	return groups
}

// log2Exact returns n's base-2 logarithm assuming n is a power of
// two; callers must check 1<<log2Exact(n) == n themselves (§4.4 step
// 2's "assert maxsz is a power of two").
func log2Exact(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// repeatElem is a virtual re-addressing of a Repeat's templated child,
// used only during decoder synthesis to present the block layer with
// `count` sibling nodes at their element addresses. It is never
// attached to the input tree.
type repeatElem struct {
	Node
	addr int
}

func (r repeatElem) Addr() int { return r.addr }

func repeatChildren(t *RepeatNode) []Node {
	out := make([]Node, t.Count)
	for i := 0; i < t.Count; i++ {
		out[i] = repeatElem{Node: t.Child, addr: t.CAddress + i*t.CElSize}
	}
	return out
}

// addBlockDecoder implements §4.4's block layer: a recursive partition
// of nodes (already address-sorted, relative to the enclosing block)
// into a nested switch over increasingly narrow address-bit windows
// bounded above by hi.
func addBlockDecoder(ctx *decodeCtx, nodes []Node, hi int) ([]hdl.Stmt, error) {
	if len(nodes) == 0 {
		return ctx.Leaf(nil, 0)
	}
	if len(nodes) == 1 {
		return addBlockLeaf(ctx, nodes[0], hi)
	}

	maxsz := 0
	for _, n := range nodes {
		if e := n.Extent(); e > maxsz {
			maxsz = e
		}
	}
	maxszl2 := log2Exact(maxsz)
	if maxsz == 0 || 1<<uint(maxszl2) != maxsz {
		return nil, InvariantViolationError{Message: fmt.Sprintf("child extent %d is not a power of two", maxsz)}
	}
	if maxszl2 >= hi {
		return nil, InvariantViolationError{Message: fmt.Sprintf("children need at least %d address bits, only %d available", maxszl2+1, hi)}
	}

	groups := groupByPrefix(nodes, maxszl2)
	sw := hdl.NewSwitch(hdl.NewSlice(hdl.NewRef(ctx.AddrSig), hi-1, maxszl2))
	for _, g := range groups {
		body, err := addBlockDecoder(ctx, g.nodes, maxszl2)
		if err != nil {
			return nil, err
		}
		c := sw.AddChoice(fmt.Sprintf("%d", g.prefix))
		for _, s := range body {
			c.Add(s)
		}
	}
	def, err := ctx.Leaf(nil, 0)
	if err != nil {
		return nil, err
	}
	sw.SetDefault(def...)
	return []hdl.Stmt{sw}, nil
}

// addBlockLeaf handles a singleton group: either it descends one more
// level (Block, included Submap, non-RAM Repeat) or it is truly atomic
// (Reg, bus-connected Submap, RAM, Memory), in which case it calls
// into the reg layer or the caller's leaf function directly.
func addBlockLeaf(ctx *decodeCtx, n Node, hi int) ([]hdl.Stmt, error) {
	switch t := n.(type) {
	case *RegNode:
		return addRegDecoder(ctx, t, hi)
	case *BlockNode:
		return addBlockDecoder(ctx, sortedChildren(t.Children), t.CBlkBits)
	case *SubmapNode:
		if t.IsInclude() {
			if t.Root == nil {
				return ctx.Leaf(nil, 0)
			}
			return addBlockDecoder(ctx, sortedChildren(t.Root.Children), t.CBlkBits)
		}
		return ctx.Leaf(t, 0)
	case *RepeatNode:
		if t.IsRAM() {
			return ctx.Leaf(t, 0)
		}
		return addBlockDecoder(ctx, repeatChildren(t), hi)
	case *MemoryNode:
		return ctx.Leaf(t, 0)
	default:
		return nil, UnhandledNodeError{Node: n}
	}
}

// addRegDecoder implements §4.4's register layer for a single
// register, possibly spanning several bus words.
func addRegDecoder(ctx *decodeCtx, reg *RegNode, blkBits int) ([]hdl.Stmt, error) {
	width := blkBits - ctx.AddrWordBits
	if width <= 0 {
		return ctx.Leaf(reg, 0)
	}
	if reg.CSize <= ctx.WordSize {
		return ctx.Leaf(reg, 0)
	}

	sw := hdl.NewSwitch(hdl.NewSlice(hdl.NewRef(ctx.AddrSig), width-1, 0))
	mask := uint64(1)<<uint(width) - 1
	for suboff := 0; suboff < reg.CSize; suboff += ctx.WordSize {
		foff := (reg.CSize - ctx.WordSize - suboff) * 8
		body, err := ctx.Leaf(reg, foff)
		if err != nil {
			return nil, err
		}
		choice := (uint64(reg.CAddress+suboff) >> uint(ctx.AddrWordBits)) & mask
		c := sw.AddChoice(fmt.Sprintf("%d", choice))
		for _, s := range body {
			c.Add(s)
		}
	}
	def, err := ctx.Leaf(nil, 0)
	if err != nil {
		return nil, err
	}
	sw.SetDefault(def...)
	return []hdl.Stmt{sw}, nil
}

// fieldSlice is the bit-range pair field_decode computes: the slice
// of the bus data word and the matching slice of the field's own
// value, for one word of a (possibly multi-word) register.
type fieldSlice struct {
	DLo, DHi int
	VLo, VHi int
}

// fieldDecode computes the intersection of field f's bit range with
// the current word window [off, off+wordBits), per §4.4. A nil result
// means f is not touched by this word.
func fieldDecode(f *FieldNode, off, wordBits int) *fieldSlice {
	lo, hi := f.Lo, f.Hi
	wordLo, wordHi := off, off+wordBits-1

	iLo := maxInt(lo, wordLo)
	iHi := minInt(hi, wordHi)
	if iLo > iHi {
		return nil
	}
	dLo := iLo - off
	dHi := iHi - off
	vLo := iLo - lo
	vHi := vLo + (dHi - dLo)
	return &fieldSlice{DLo: dLo, DHi: dHi, VLo: vLo, VHi: vHi}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// sliceExpr slices e to [hi:lo], or returns e unchanged when the
// slice covers the whole signal (§4.4's "omit the slice if the full
// width is covered").
func sliceExpr(e hdl.Expr, hi, lo, fullWidth int) hdl.Expr {
	if lo == 0 && hi == fullWidth-1 {
		return e
	}
	return hdl.NewSlice(e, hi, lo)
}
