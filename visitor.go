package cheby

// Visitor is implemented by anything that needs to walk the
// elaborated tree exhaustively. Components that only care about one
// or two node kinds should prefer Inspect instead of implementing the
// full interface.
type Visitor interface {
	VisitRoot(*RootNode) error
	VisitBlock(*BlockNode) error
	VisitSubmap(*SubmapNode) error
	VisitRepeat(*RepeatNode) error
	VisitMemory(*MemoryNode) error
	VisitReg(*RegNode) error
	VisitField(*FieldNode) error
}

// children returns a node's direct descendants, in tree order. Field
// nodes (Reg's children) are included so Inspect can reach them; Root
// and Block's "children" are their declared sequence; a Repeat's
// single templated child and a Memory's inner Reg count as one
// child each.
func children(n Node) []Node {
	switch t := n.(type) {
	case *RootNode:
		return t.Children
	case *BlockNode:
		return t.Children
	case *SubmapNode:
		if t.Root != nil {
			return []Node{t.Root}
		}
		return nil
	case *RepeatNode:
		if t.Child != nil {
			return []Node{t.Child}
		}
		return nil
	case *MemoryNode:
		if t.Inner != nil {
			return []Node{t.Inner}
		}
		return nil
	case *RegNode:
		out := make([]Node, len(t.Fields))
		for i, f := range t.Fields {
			out[i] = f
		}
		return out
	case *FieldNode:
		return nil
	default:
		return nil
	}
}

// Inspect traverses the tree in depth-first, pre-order. If f returns
// false for a node, Inspect does not descend into that node's
// children. This mirrors the single-type-switch walker idiom used
// when a full Visitor implementation would be overkill for a pass
// that only touches one or two node kinds.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, c := range children(n) {
		Inspect(c, f)
	}
}
