package cheby

import (
	"github.com/cheby-go/cheby/busgen"
	"github.com/cheby-go/cheby/hdl"
)

// buildWriteProcess emits the single synchronous write process
// described in §4.4: reset clears every backing register to its
// preset, write-strobes pulse for one cycle, and the address decoder
// dispatches to field assignment, sub-map write_bus_slave, or RAM
// write handling.
func buildWriteProcess(root *RootNode, m *hdl.Module, info busgen.RootInfo, isigs *busgen.Signals, sigs sigTable) error {
	proc := hdl.NewSyncProcess("clk_i", "rst_n_i")

	Inspect(root, func(n Node) bool {
		f, ok := n.(*FieldNode)
		if !ok {
			return true
		}
		ns := sigs.get(f)
		if ns.RegSig != "" {
			preset := uint64(0)
			if f.Preset != nil {
				preset = uint64(*f.Preset)
			}
			rw := f.CRWidth
			if rw == 0 {
				rw = f.Width()
			}
			proc.AddReset(hdl.NewRef(ns.RegSig), hdl.NewConst(preset, rw))
		}
		return true
	})

	proc.AddReset(hdl.NewRef(isigs.WrAck), hdl.NewConst(0, 1))
	proc.Add(hdl.NewAssign(hdl.NewRef(isigs.WrAck), hdl.NewConst(0, 1)))

	Inspect(root, func(n Node) bool {
		f, ok := n.(*FieldNode)
		if !ok {
			return true
		}
		if ns := sigs.get(f); ns.PortWr != "" {
			proc.Add(hdl.NewAssign(hdl.NewRef(ns.PortWr), hdl.NewConst(0, 1)))
		}
		return true
	})

	wrCond := hdl.And(hdl.NewRef(isigs.WrInt), hdl.NewNot(hdl.NewRef(isigs.WrAck)))
	top := hdl.NewIf(wrCond)

	ctx := &decodeCtx{
		AddrSig:      isigs.AdrW,
		WordBits:     info.WordBits,
		WordSize:     info.WordSize,
		AddrWordBits: info.AddrWordBits,
		Leaf: func(n Node, foff int) ([]hdl.Stmt, error) {
			return writeLeaf(n, foff, proc, info, isigs, sigs)
		},
	}
	body, err := addBlockDecoder(ctx, sortedChildren(root.Children), info.AddrBits)
	if err != nil {
		return err
	}
	for _, s := range body {
		top.AddThen(s)
	}
	proc.Add(top)
	addDeferredRAMWrites(root, proc, sigs)
	m.AddStmt(proc)
	return nil
}

// addDeferredRAMWrites flushes a write deferred by h_ram_wr_dly (§4.4)
// on the cycle after the conflicting read, once the RAM's bus port is
// no longer contended. This runs every cycle regardless of wr_int, so
// it is appended after the main decode conditional.
func addDeferredRAMWrites(root Node, proc *hdl.SyncProcess, sigs sigTable) {
	Inspect(root, func(n Node) bool {
		rep, ok := n.(*RepeatNode)
		if !ok || !rep.IsRAM() {
			return true
		}
		ns := sigs[rep]
		if ns == nil || ns.RAMWrDly == "" {
			return true
		}
		flush := hdl.NewIf(hdl.NewRef(ns.RAMWrDly))
		flush.AddThen(hdl.NewAssign(hdl.NewRef(ns.RAMBusWe), hdl.NewConst(1, 1)))
		flush.AddThen(hdl.NewAssign(hdl.NewRef(ns.RAMBusDatW), hdl.NewRef(ns.RAMWrDlyDat)))
		flush.AddThen(hdl.NewAssign(hdl.NewRef(ns.RAMWrDly), hdl.NewConst(0, 1)))
		proc.Add(flush)
		return true
	})
}

func writeLeaf(n Node, foff int, proc *hdl.SyncProcess, info busgen.RootInfo, isigs *busgen.Signals, sigs sigTable) ([]hdl.Stmt, error) {
	switch t := n.(type) {
	case nil:
		return nil, nil

	case *RegNode:
		if !t.Writable() {
			return []hdl.Stmt{hdl.NewAssign(hdl.NewRef(isigs.WrAck), hdl.NewConst(1, 1))}, nil
		}
		stmts := []hdl.Stmt{hdl.NewAssign(hdl.NewRef(isigs.WrAck), hdl.NewConst(1, 1))}
		for _, f := range t.Fields {
			fs := fieldDecode(f, foff, info.WordBits)
			if fs == nil {
				continue
			}
			ns := sigs.get(f)
			dat := sliceExpr(hdl.NewRef(isigs.DatI), fs.DHi, fs.DLo, info.WordBits)
			if ns.RegSig != "" {
				rw := f.CRWidth
				if rw == 0 {
					rw = f.Width()
				}
				lhs := sliceExpr(hdl.NewRef(ns.RegSig), fs.VHi, fs.VLo, rw)
				stmts = append(stmts, hdl.NewAssign(lhs, dat))
			}
			if f.HDLWriteStrobe && ns.PortWr != "" {
				stmts = append(stmts, hdl.NewAssign(hdl.NewRef(ns.PortWr), hdl.NewConst(1, 1)))
			}
		}
		return stmts, nil

	case *SubmapNode:
		ns := sigs.get(t)
		if ns.Bus == nil || ns.Slave == nil {
			return nil, UnsupportedFeatureError{Feature: "submap write", Detail: t.Name}
		}
		ack := ns.Bus.WriteBusSlave(proc, ns.Slave, isigs)
		return []hdl.Stmt{hdl.NewAssign(hdl.NewRef(isigs.WrAck), ack)}, nil

	case *RepeatNode:
		ns := sigs.get(t)
		stmts := []hdl.Stmt{hdl.NewAssign(hdl.NewRef(isigs.WrAck), hdl.NewConst(1, 1))}
		if ns.RAMRd != "" {
			// h_ram_wr_dly: a read on the other port this cycle defers
			// the bus write by one cycle (§4.4).
			deferIf := hdl.NewIf(hdl.NewRef(ns.RAMRd))
			deferIf.AddThen(hdl.NewAssign(hdl.NewRef(ns.RAMWrDly), hdl.NewConst(1, 1)))
			deferIf.AddThen(hdl.NewAssign(hdl.NewRef(ns.RAMWrDlyAdr), hdl.NewRef(ns.RAMBusAdr)))
			deferIf.AddThen(hdl.NewAssign(hdl.NewRef(ns.RAMWrDlyDat), hdl.NewRef(isigs.DatI)))
			deferIf.AddElse(hdl.NewAssign(hdl.NewRef(ns.RAMBusWe), hdl.NewConst(1, 1)))
			deferIf.AddElse(hdl.NewAssign(hdl.NewRef(ns.RAMBusDatW), hdl.NewRef(isigs.DatI)))
			stmts = append(stmts, deferIf)
		} else {
			stmts = append(stmts, hdl.NewAssign(hdl.NewRef(ns.RAMBusWe), hdl.NewConst(1, 1)))
			stmts = append(stmts, hdl.NewAssign(hdl.NewRef(ns.RAMBusDatW), hdl.NewRef(isigs.DatI)))
		}
		return stmts, nil

	case *MemoryNode:
		return writeLeaf(t.Inner, foff, proc, info, isigs, sigs)

	default:
		return nil, UnhandledNodeError{Node: n}
	}
}

// buildReadProcess emits the two-stage read pipeline of §4.4: a
// synchronous latch stage followed by a combinational mux stage that
// also drives sub-map and RAM leaves (whose own data is already
// combinational, so they bypass the latch).
func buildReadProcess(root *RootNode, m *hdl.Module, info busgen.RootInfo, isigs *busgen.Signals, sigs sigTable) error {
	m.AddDecl(hdl.NewDecl("reg_rdat_int", info.WordBits, hdl.Reg))
	m.AddDecl(hdl.NewDecl("rd_ack1_int", 1, hdl.Reg))

	latch := hdl.NewSyncProcess("clk_i", "rst_n_i")
	latch.AddReset(hdl.NewRef("reg_rdat_int"), hdl.NewConst(0, info.WordBits))
	latch.AddReset(hdl.NewRef("rd_ack1_int"), hdl.NewConst(0, 1))

	rdCond := hdl.And(hdl.NewRef(isigs.RdInt), hdl.NewNot(hdl.NewRef(isigs.RdAck)))
	top := hdl.NewIf(rdCond)

	latchCtx := &decodeCtx{
		AddrSig:      isigs.AdrR,
		WordBits:     info.WordBits,
		WordSize:     info.WordSize,
		AddrWordBits: info.AddrWordBits,
		Leaf: func(n Node, foff int) ([]hdl.Stmt, error) {
			return readLatchLeaf(n, foff, info, sigs)
		},
	}
	latchBody, err := addBlockDecoder(latchCtx, sortedChildren(root.Children), info.AddrBits)
	if err != nil {
		return err
	}
	// Default every unmapped address to data=0 (§4.4); a matching leaf's
	// assignment below overrides this within the same cycle.
	top.AddThen(hdl.NewAssign(hdl.NewRef("reg_rdat_int"), hdl.NewConst(0, info.WordBits)))
	for _, s := range latchBody {
		top.AddThen(s)
	}
	top.AddThen(hdl.NewAssign(hdl.NewRef("rd_ack1_int"), hdl.NewConst(1, 1)))
	top.AddElse(hdl.NewAssign(hdl.NewRef("rd_ack1_int"), hdl.NewConst(0, 1)))
	latch.Add(top)
	m.AddStmt(latch)

	mux := hdl.NewCombProcess(isigs.RdInt, "reg_rdat_int", "rd_ack1_int")
	mux.Add(hdl.NewAssign(hdl.NewRef(isigs.DatO), hdl.NewRef("reg_rdat_int")))
	mux.Add(hdl.NewAssign(hdl.NewRef(isigs.RdAck), hdl.NewConst(1, 1)))

	muxCond := hdl.NewRef(isigs.RdInt)
	muxTop := hdl.NewIf(muxCond)
	muxCtx := &decodeCtx{
		AddrSig:      isigs.AdrR,
		WordBits:     info.WordBits,
		WordSize:     info.WordSize,
		AddrWordBits: info.AddrWordBits,
		Leaf: func(n Node, foff int) ([]hdl.Stmt, error) {
			return readMuxLeaf(n, foff, mux, info, isigs, sigs)
		},
	}
	muxBody, err := addBlockDecoder(muxCtx, sortedChildren(root.Children), info.AddrBits)
	if err != nil {
		return err
	}
	for _, s := range muxBody {
		muxTop.AddThen(s)
	}
	mux.Add(muxTop)
	m.AddStmt(mux)
	return nil
}

// readLatchLeaf only fires for Reg: it assembles the register's
// current value, field by field, into reg_rdat_int.
// Sub-maps and RAM already produce combinational read data, handled
// in readMuxLeaf instead, so every other node kind is a no-op here.
func readLatchLeaf(n Node, foff int, info busgen.RootInfo, sigs sigTable) ([]hdl.Stmt, error) {
	reg, ok := n.(*RegNode)
	if !ok {
		return nil, nil
	}
	if !reg.Readable() {
		return nil, nil
	}
	var stmts []hdl.Stmt
	for _, f := range reg.Fields {
		fs := fieldDecode(f, foff, info.WordBits)
		if fs == nil {
			continue
		}
		ns := sigs.get(f)
		var src hdl.Expr
		switch {
		case ns.RegSig != "":
			rw := f.CRWidth
			if rw == 0 {
				rw = f.Width()
			}
			src = sliceExpr(hdl.NewRef(ns.RegSig), fs.VHi, fs.VLo, rw)
		case ns.PortIn != "":
			src = sliceExpr(hdl.NewRef(ns.PortIn), fs.VHi, fs.VLo, f.Width())
		default:
			continue
		}
		lhs := sliceExpr(hdl.NewRef("reg_rdat_int"), fs.DHi, fs.DLo, info.WordBits)
		stmts = append(stmts, hdl.NewAssign(lhs, src))
	}
	return stmts, nil
}

// readMuxLeaf handles the branches the latch stage cannot: sub-maps
// and RAM, whose read data is already available combinationally, plus
// the Reg/default branches that simply forward the latched value.
func readMuxLeaf(n Node, foff int, proc *hdl.CombProcess, info busgen.RootInfo, isigs *busgen.Signals, sigs sigTable) ([]hdl.Stmt, error) {
	switch t := n.(type) {
	case nil:
		return nil, nil

	case *RegNode:
		return nil, nil // already covered by the default mux assignment

	case *SubmapNode:
		ns := sigs.get(t)
		if ns.Bus == nil || ns.Slave == nil {
			return nil, UnsupportedFeatureError{Feature: "submap read", Detail: t.Name}
		}
		_, data, ack := ns.Bus.ReadBusSlave(proc, ns.Slave, isigs)
		return []hdl.Stmt{
			hdl.NewAssign(hdl.NewRef(isigs.DatO), data),
			hdl.NewAssign(hdl.NewRef(isigs.RdAck), ack),
		}, nil

	case *RepeatNode:
		ns := sigs.get(t)
		proc.Sensitize(ns.RAMBusDatR)
		return []hdl.Stmt{
			hdl.NewAssign(hdl.NewRef(isigs.DatO), hdl.NewRef(ns.RAMBusDatR)),
			hdl.NewAssign(hdl.NewRef(isigs.RdAck), hdl.NewConst(1, 1)),
		}, nil

	case *MemoryNode:
		return readMuxLeaf(t.Inner, foff, proc, info, isigs, sigs)

	default:
		return nil, UnhandledNodeError{Node: n}
	}
}
