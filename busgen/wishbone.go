package busgen

import "github.com/cheby-go/cheby/hdl"

// wishbone implements the classic pipelined Wishbone B4 slave
// interface (bus name "wb-32-be"): strobe/cycle/we/ack/stall, unified
// address bus (adrr == adrw == adr).
type wishbone struct{}

func NewWishbone() BusGen { return wishbone{} }

func (wishbone) ExpandBus(root RootInfo, m *hdl.Module) (*Signals, error) {
	selWidth := root.WordSize
	if selWidth < 1 {
		selWidth = 1
	}

	m.AddPort(hdl.NewPort("clk_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("rst_n_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("wb_adr_i", root.AddrBits, hdl.In))
	m.AddPort(hdl.NewPort("wb_dat_i", root.WordBits, hdl.In))
	m.AddPort(hdl.NewPort("wb_dat_o", root.WordBits, hdl.Out))
	m.AddPort(hdl.NewPort("wb_cyc_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("wb_stb_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("wb_sel_i", selWidth, hdl.In))
	m.AddPort(hdl.NewPort("wb_we_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("wb_ack_o", 1, hdl.Out))
	m.AddPort(hdl.NewPort("wb_stall_o", 1, hdl.Out))

	m.AddDecl(hdl.NewDecl("wb_en", 1, hdl.Wire))
	m.AddDecl(hdl.NewDecl("rd_int", 1, hdl.Wire))
	m.AddDecl(hdl.NewDecl("wr_int", 1, hdl.Wire))
	m.AddDecl(hdl.NewDecl("rd_ack", 1, hdl.Wire))
	m.AddDecl(hdl.NewDecl("wr_ack", 1, hdl.Wire))

	cyc := hdl.NewRef("wb_cyc_i")
	stb := hdl.NewRef("wb_stb_i")
	we := hdl.NewRef("wb_we_i")
	wbEn := hdl.NewRef("wb_en")
	rdAck := hdl.NewRef("rd_ack")
	wrAck := hdl.NewRef("wr_ack")

	m.AddStmt(hdl.NewAssign(hdl.NewRef("wb_en"), hdl.And(cyc, stb)))
	m.AddStmt(hdl.NewAssign(hdl.NewRef("rd_int"), hdl.And(wbEn, hdl.NewNot(we))))
	m.AddStmt(hdl.NewAssign(hdl.NewRef("wr_int"), hdl.And(wbEn, we)))
	m.AddStmt(hdl.NewAssign(hdl.NewRef("wb_ack_o"), hdl.Or(rdAck, wrAck)))
	m.AddStmt(hdl.NewAssign(hdl.NewRef("wb_stall_o"), hdl.And(hdl.NewNot(hdl.Or(rdAck, wrAck)), wbEn)))

	return &Signals{
		RdInt: "rd_int", WrInt: "wr_int", RdAck: "rd_ack", WrAck: "wr_ack",
		Adr: "wb_adr_i", AdrR: "wb_adr_i", AdrW: "wb_adr_i",
		DatI: "wb_dat_i", DatO: "wb_dat_o",
		BusSplit: false,
	}, nil
}

func (wishbone) GenBusSlave(root RootInfo, m *hdl.Module, prefix string, sub SubmapInfo) (*SlavePorts, error) {
	sp := newSlavePorts(prefix, sub.BlkBits)
	add := func(logical string, width int, kind hdl.DeclKind) {
		name := prefix + "_" + logical
		m.AddDecl(hdl.NewDecl(name, width, kind))
		sp.set(logical, name)
	}
	selWidth := root.WordSize
	if selWidth < 1 {
		selWidth = 1
	}
	add("cyc", 1, hdl.Wire)
	add("stb", 1, hdl.Wire)
	add("we", 1, hdl.Wire)
	add("sel", selWidth, hdl.Wire)
	add("adr", sub.BlkBits, hdl.Wire)
	add("dat_o", root.WordBits, hdl.Wire) // parent -> slave
	add("dat_i", root.WordBits, hdl.Wire) // slave -> parent
	add("ack", 1, hdl.Wire)
	add("stall", 1, hdl.Wire)
	add("wrackdone", 1, hdl.Reg)
	return sp, nil
}

func (wishbone) WireBusSlave(m *hdl.Module, sp *SlavePorts, isigs *Signals) {
	hi := sp.AddrBits - 1
	if hi < 0 {
		hi = 0
	}
	m.AddStmt(hdl.NewAssign(sp.ref("adr"), hdl.NewSlice(hdl.NewRef(isigs.Adr), hi, 0)))
	m.AddStmt(hdl.NewAssign(sp.ref("dat_o"), hdl.NewRef(isigs.DatI)))
	m.AddStmt(hdl.NewAssign(sp.ref("sel"), hdl.NewReplicate(1, hdl.NewConst(1, 1))))
}

func (wishbone) WriteBusSlave(proc *hdl.SyncProcess, sp *SlavePorts, isigs *Signals) hdl.Expr {
	wrackdone := sp.ref("wrackdone")
	cycStb := hdl.Or(hdl.NewRef(isigs.WrInt), hdl.NewRef(isigs.RdInt))

	body := hdl.NewIf(hdl.NewNot(wrackdone))
	body.AddThen(hdl.NewAssign(sp.ref("cyc"), cycStb))
	body.AddThen(hdl.NewAssign(sp.ref("stb"), cycStb))
	body.AddThen(hdl.NewAssign(sp.ref("we"), hdl.NewRef(isigs.WrInt)))
	ackNotDone := hdl.And(sp.ref("ack"), hdl.NewNot(wrackdone))
	latch := hdl.NewIf(ackNotDone)
	latch.AddThen(hdl.NewAssign(wrackdone, hdl.NewConst(1, 1)))
	body.AddThen(latch)
	proc.Add(body)

	return ackNotDone
}

func (wishbone) ReadBusSlave(proc *hdl.CombProcess, sp *SlavePorts, isigs *Signals) (hdl.Expr, hdl.Expr, hdl.Expr) {
	proc.Sensitize(sp.Names["dat_i"])
	proc.Sensitize(sp.Names["ack"])
	cond := hdl.NewRef(isigs.RdInt)
	data := sp.ref("dat_i")
	ack := hdl.And(sp.ref("ack"), hdl.NewRef(isigs.RdInt))
	return cond, data, ack
}
