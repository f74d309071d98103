package cheby

import "fmt"

// Node is the interface implemented by every variant of the
// elaborated register-map tree (§3.1). The tree is produced upstream
// by the front-end parser and the address layout pass; this package
// only reads it — back-references created during generation are kept
// in side tables (see nodeSignals in ports.go), never written onto
// the node itself.
type Node interface {
	// NodeName returns the node's name as given by the front end.
	// Root and Field may return "".
	NodeName() string

	// Addr returns c_address: the node's offset relative to its
	// parent's base address, in bytes.
	Addr() int

	// Extent returns the number of bytes this node occupies in its
	// parent's address space (c_size for a Reg, count*c_elsize for a
	// Repeat, 1<<c_blk_bits for a Block/Submap, 1<<(c_sel_bits +
	// c_blk_bits) for a Root, and so on).
	Extent() int

	// Ext returns the node's extension map (x_hdl / x_driver_edge),
	// never nil.
	Ext() *Extensions

	// Accept dispatches to the matching Visit* method.
	Accept(Visitor) error
}

// Access is the permission a Reg grants to the bus.
type Access string

const (
	AccessRW Access = "rw"
	AccessRO Access = "ro"
	AccessWO Access = "wo"
	AccessCst Access = "cst"
)

// HDLType is how a Field is realized in hardware.
type HDLType string

const (
	HDLTypeReg  HDLType = "reg"
	HDLTypeWire HDLType = "wire"
)

// RootNode is the top of an elaborated map, or the top of a referenced
// sub-map when a Submap's interface is not "include".
type RootNode struct {
	Name        string
	Description string
	Bus         string // protocol identifier, e.g. "wb-32-be"
	CWordBits   int
	CWordSize   int
	CAddrBits   int
	CAddrWordBits int
	CSelBits    int
	CBlkBits    int
	Children    []Node
	Extensions  Extensions
}

func (n *RootNode) NodeName() string { return n.Name }
func (n *RootNode) Addr() int        { return 0 }
func (n *RootNode) Extent() int      { return 1 << uint(n.CBlkBits+n.CSelBits) }
func (n *RootNode) Ext() *Extensions { return &n.Extensions }
func (n *RootNode) Accept(v Visitor) error { return v.VisitRoot(n) }

// BlockNode is a named sub-region holding children at relative
// addresses.
type BlockNode struct {
	Name        string
	Description string
	CAddress    int
	CBlkBits    int
	Children    []Node
	Extensions  Extensions
}

func (n *BlockNode) NodeName() string { return n.Name }
func (n *BlockNode) Addr() int        { return n.CAddress }
func (n *BlockNode) Extent() int      { return 1 << uint(n.CBlkBits) }
func (n *BlockNode) Ext() *Extensions { return &n.Extensions }
func (n *BlockNode) Accept(v Visitor) error { return v.VisitBlock(n) }

// SubmapNode is a named reference to another Root, inline or by
// filename, optionally speaking its own bus protocol.
type SubmapNode struct {
	Name        string
	Description string
	CAddress    int
	CBlkBits    int
	Filename    string // set when the sub-map is referenced by file
	Interface   string // "include", "wb-32-be", "axi4-lite-32", ...
	Root        *RootNode // the referenced (or inlined) root
	Extensions  Extensions
}

func (n *SubmapNode) NodeName() string { return n.Name }
func (n *SubmapNode) Addr() int        { return n.CAddress }
func (n *SubmapNode) Extent() int      { return 1 << uint(n.CBlkBits) }
func (n *SubmapNode) Ext() *Extensions { return &n.Extensions }
func (n *SubmapNode) Accept(v Visitor) error { return v.VisitSubmap(n) }

// IsInclude reports whether this sub-map's children should be
// inlined into the parent's address space rather than treated as a
// bus-connected slave.
func (n *SubmapNode) IsInclude() bool { return n.Interface == "include" }

// RepeatNode is `Count` copies of a single Child at stride CElSize.
// An Array of a single Reg is RAM-backed (see IsRAM).
type RepeatNode struct {
	Name        string
	Description string
	CAddress    int
	Count       int
	CElSize     int
	Child       Node
	Extensions  Extensions
}

func (n *RepeatNode) NodeName() string { return n.Name }
func (n *RepeatNode) Addr() int        { return n.CAddress }
func (n *RepeatNode) Extent() int      { return n.Count * n.CElSize }
func (n *RepeatNode) Ext() *Extensions { return &n.Extensions }
func (n *RepeatNode) Accept(v Visitor) error { return v.VisitRepeat(n) }

// IsRAM reports whether this Repeat is RAM-backed (its child is a
// bare Reg, not a Block or Submap).
func (n *RepeatNode) IsRAM() bool {
	_, ok := n.Child.(*RegNode)
	return ok
}

// MemoryNode is a block with a depth and, optionally, FIFO semantics,
// containing a single inner Reg describing the word layout.
type MemoryNode struct {
	Name        string
	Description string
	CAddress    int
	CDepth      int
	Inner       *RegNode
	Extensions  Extensions
}

func (n *MemoryNode) NodeName() string { return n.Name }
func (n *MemoryNode) Addr() int        { return n.CAddress }
func (n *MemoryNode) Extent() int      { return n.CDepth * n.Inner.CSize }
func (n *MemoryNode) Ext() *Extensions { return &n.Extensions }
func (n *MemoryNode) Accept(v Visitor) error { return v.VisitMemory(n) }

// IsFIFO reports the x_driver_edge.fifo extension.
func (n *MemoryNode) IsFIFO() bool {
	return n.Extensions.Bool("x_driver_edge.fifo", false)
}

// RegNode is a leaf register.
type RegNode struct {
	Name        string
	Description string
	Access      Access
	CAddress    int
	CSize       int // bytes
	Fields      []*FieldNode
	Extensions  Extensions
}

func (n *RegNode) NodeName() string { return n.Name }
func (n *RegNode) Addr() int        { return n.CAddress }
func (n *RegNode) Extent() int      { return n.CSize }
func (n *RegNode) Ext() *Extensions { return &n.Extensions }
func (n *RegNode) Accept(v Visitor) error { return v.VisitReg(n) }

func (n *RegNode) Readable() bool { return n.Access == AccessRW || n.Access == AccessRO }
func (n *RegNode) Writable() bool { return n.Access == AccessRW || n.Access == AccessWO }

// FieldNode is a bit range [Lo, Hi] within its parent register.
type FieldNode struct {
	Name           string
	Description    string
	Lo, Hi         int
	HDLType        HDLType
	Preset         *int
	HDLWriteStrobe bool
	CIOWidth       int
	CRWidth        int
	CName          string
	Extensions     Extensions
}

func (n *FieldNode) NodeName() string { return n.Name }
func (n *FieldNode) Addr() int        { return 0 }
func (n *FieldNode) Extent() int      { return 0 }
func (n *FieldNode) Ext() *Extensions { return &n.Extensions }
func (n *FieldNode) Accept(v Visitor) error { return v.VisitField(n) }

// Width returns the field's bit width, Hi-Lo+1.
func (n *FieldNode) Width() int { return n.Hi - n.Lo + 1 }

func (n *FieldNode) String() string {
	if n.Lo == n.Hi {
		return fmt.Sprintf("%s[%d]", n.Name, n.Lo)
	}
	return fmt.Sprintf("%s[%d:%d]", n.Name, n.Hi, n.Lo)
}
