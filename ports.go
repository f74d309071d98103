package cheby

import (
	"github.com/cheby-go/cheby/busgen"
	"github.com/cheby-go/cheby/hdl"
)

// nodeSignals is the side table of back-references port
// materialization attaches to a node: the HDL ports/signals it owns,
// looked up by the decoder and the write/read processes (C4) without
// ever mutating the input tree (§9 Design Notes).
type nodeSignals struct {
	// Field-level.
	PortIn, PortOut, PortWr, RegSig string

	// Submap-level (non-include).
	Slave *busgen.SlavePorts
	Bus   busgen.BusGen

	// RAM-level (Repeat-of-Reg): user-facing port B, materialized here.
	RAMAdr, RAMRd, RAMDat string

	// RAM-level bus-facing port A plus write/read serialization latch,
	// populated by setupRAMs in generate.go once the decoder knows
	// whether the register is both readable and writable.
	RAMBusAdr, RAMBusWe, RAMBusDatW, RAMBusDatR string
	RAMWrDly, RAMWrDlyAdr, RAMWrDlyDat          string
}

// sigTable maps a node to its attached signals; kept outside the tree
// so the elaborated input stays read-only.
type sigTable map[Node]*nodeSignals

func (t sigTable) get(n Node) *nodeSignals {
	s, ok := t[n]
	if !ok {
		s = &nodeSignals{}
		t[n] = s
	}
	return s
}

// materializePorts walks root's tree attaching ports/signals per
// §4.3. isigs is the bundle already populated by busgen.ExpandBus for
// the top-level protocol.
func materializePorts(root *RootNode, m *hdl.Module, info busgen.RootInfo, isigs *busgen.Signals, sigs sigTable) error {
	var walk func(n Node, group, prefix string) error
	walk = func(n Node, group, prefix string) error {
		switch t := n.(type) {
		case *RootNode:
			for _, c := range t.Children {
				if err := walk(c, group, prefix); err != nil {
					return err
				}
			}
		case *BlockNode:
			g := group
			if t.Extensions.Has("x_hdl.iogroup") {
				g = t.Extensions.String("x_hdl.iogroup", g)
			}
			for _, c := range t.Children {
				if err := walk(c, g, prefix+t.Name+"_"); err != nil {
					return err
				}
			}
		case *SubmapNode:
			if t.IsInclude() {
				if t.Root == nil {
					return nil
				}
				for _, c := range t.Root.Children {
					if err := walk(c, group, prefix); err != nil {
						return err
					}
				}
				return nil
			}
			return materializeSubmap(t, m, info, sigs)
		case *RepeatNode:
			if t.IsRAM() {
				return materializeRAM(t, m, info, group, sigs)
			}
			return walk(t.Child, group, prefix)
		case *MemoryNode:
			return walk(t.Inner, group, prefix)
		case *RegNode:
			// Fields without a CName are named after the enclosing
			// block names, then reg_field.
			named := *t
			named.Name = prefix + t.Name
			for _, f := range t.Fields {
				materializeField(&named, f, m, group, sigs)
			}
		case *FieldNode:
			// reached only via RegNode above
		default:
			return UnhandledNodeError{Node: n}
		}
		return nil
	}
	return walk(root, "", "")
}

func materializeField(reg *RegNode, f *FieldNode, m *hdl.Module, group string, sigs sigTable) {
	ns := sigs.get(f)
	base := f.CName
	if base == "" {
		base = reg.Name + "_" + f.Name
	}
	width := f.CIOWidth
	if width == 0 {
		width = f.Width()
	}

	if f.HDLType == HDLTypeWire && reg.Readable() {
		ns.PortIn = base + "_i"
		m.AddPort(groupedPort(ns.PortIn, width, hdl.In, group))
	}
	if reg.Writable() {
		ns.PortOut = base + "_o"
		m.AddPort(groupedPort(ns.PortOut, width, hdl.Out, group))
	}
	if f.HDLWriteStrobe {
		ns.PortWr = base + "_wr"
		m.AddPort(groupedPort(ns.PortWr, 1, hdl.Out, group))
	}
	if f.HDLType == HDLTypeReg {
		rw := f.CRWidth
		if rw == 0 {
			rw = f.Width()
		}
		ns.RegSig = base + "_reg"
		m.AddDecl(hdl.NewDecl(ns.RegSig, rw, hdl.Reg))
	}
}

func materializeRAM(rep *RepeatNode, m *hdl.Module, info busgen.RootInfo, group string, sigs sigTable) error {
	reg, ok := rep.Child.(*RegNode)
	if !ok {
		return InvariantViolationError{Node: rep, Message: "RAM-backed repeat's child is not a Reg"}
	}
	ns := sigs.get(rep)
	adrWidth := bitsFor(rep.Count)
	dataWidth := reg.CSize * 8

	ns.RAMAdr = rep.Name + "_adr"
	ns.RAMDat = rep.Name + "_dat"
	m.AddPort(groupedPort(ns.RAMAdr, adrWidth, hdl.In, group))
	m.AddPort(groupedPort(ns.RAMDat, dataWidth, hdl.Out, group))

	// Writes to a RAM-backed register always arrive over the bus
	// (port A, wired in setupRAMs/writeLeaf); the user-facing port B
	// is read-only, so there is no _we port here (S6).
	if reg.Readable() {
		ns.RAMRd = rep.Name + "_rd"
		m.AddPort(groupedPort(ns.RAMRd, 1, hdl.In, group))
	}
	return nil
}

// groupedPort builds a port and, if group is non-empty, tags it so
// the printer can emit it under an x_hdl.iogroup interface instead of
// the flat port list (§4.3).
func groupedPort(name string, width int, dir hdl.Dir, group string) *hdl.Port {
	p := hdl.NewPort(name, width, dir)
	p.Group = group
	return p
}

func materializeSubmap(sub *SubmapNode, m *hdl.Module, info busgen.RootInfo, sigs sigTable) error {
	gen, err := busgen.NameToBusGen(sub.Interface)
	if err != nil {
		return err
	}
	sinfo := busgen.SubmapInfo{
		Name:    sub.Name,
		Bus:     sub.Interface,
		BlkBits: sub.CBlkBits,
		IOGroup: sub.Extensions.String("x_hdl.iogroup", ""),
	}
	sp, err := gen.GenBusSlave(info, m, sub.Name, sinfo)
	if err != nil {
		return err
	}
	ns := sigs.get(sub)
	ns.Slave = sp
	ns.Bus = gen
	return nil
}

// bitsFor returns the number of address bits needed to index n
// distinct elements.
func bitsFor(n int) int {
	if n <= 1 {
		return 1
	}
	bits, v := 0, 1
	for v < n {
		v <<= 1
		bits++
	}
	return bits
}
