package busgen

import "github.com/cheby-go/cheby/hdl"

// axi4lite implements a full AXI4-Lite slave interface (bus name
// "axi4-lite-32"): independent AW/W/B/AR/R channels with a split
// address path (adrw latches awaddr, adrr latches araddr).
type axi4lite struct{}

func NewAXI4Lite() BusGen { return axi4lite{} }

const axiResp = 0 // OKAY (2'b00)

func (axi4lite) ExpandBus(root RootInfo, m *hdl.Module) (*Signals, error) {
	strbWidth := root.WordSize
	if strbWidth < 1 {
		strbWidth = 1
	}

	m.AddPort(hdl.NewPort("clk_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("rst_n_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_awaddr", root.AddrBits, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_awvalid", 1, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_awready", 1, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_wdata", root.WordBits, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_wstrb", strbWidth, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_wvalid", 1, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_wready", 1, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_bresp", 2, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_bvalid", 1, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_bready", 1, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_araddr", root.AddrBits, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_arvalid", 1, hdl.In))
	m.AddPort(hdl.NewPort("s_axi_arready", 1, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_rdata", root.WordBits, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_rresp", 2, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_rvalid", 1, hdl.Out))
	m.AddPort(hdl.NewPort("s_axi_rready", 1, hdl.In))

	for _, d := range []*hdl.Decl{
		hdl.NewDecl("adrw", root.AddrBits, hdl.Reg),
		hdl.NewDecl("adrr", root.AddrBits, hdl.Reg),
		hdl.NewDecl("awready_r", 1, hdl.Reg),
		hdl.NewDecl("wready_r", 1, hdl.Reg),
		hdl.NewDecl("arready_r", 1, hdl.Reg),
		hdl.NewDecl("bvalid_r", 1, hdl.Reg),
		hdl.NewDecl("rvalid_r", 1, hdl.Reg),
		hdl.NewDecl("aw_pending", 1, hdl.Reg),
		hdl.NewDecl("w_pending", 1, hdl.Reg),
		hdl.NewDecl("ar_pending", 1, hdl.Reg),
		hdl.NewDecl("rd_int", 1, hdl.Wire),
		hdl.NewDecl("wr_int", 1, hdl.Wire),
		hdl.NewDecl("rd_ack", 1, hdl.Wire),
		hdl.NewDecl("wr_ack", 1, hdl.Wire),
	} {
		m.AddDecl(d)
	}

	ref := hdl.NewRef
	m.AddStmt(hdl.NewAssign(ref("s_axi_awready"), ref("awready_r")))
	m.AddStmt(hdl.NewAssign(ref("s_axi_wready"), ref("wready_r")))
	m.AddStmt(hdl.NewAssign(ref("s_axi_arready"), ref("arready_r")))
	m.AddStmt(hdl.NewAssign(ref("s_axi_bvalid"), ref("bvalid_r")))
	m.AddStmt(hdl.NewAssign(ref("s_axi_rvalid"), ref("rvalid_r")))
	m.AddStmt(hdl.NewAssign(ref("s_axi_bresp"), hdl.NewConst(axiResp, 2)))
	m.AddStmt(hdl.NewAssign(ref("s_axi_rresp"), hdl.NewConst(axiResp, 2)))
	m.AddStmt(hdl.NewAssign(ref("wr_int"), hdl.And(hdl.And(ref("aw_pending"), ref("w_pending")), hdl.NewNot(ref("bvalid_r")))))
	m.AddStmt(hdl.NewAssign(ref("rd_int"), hdl.And(ref("ar_pending"), hdl.NewNot(ref("rvalid_r")))))

	proc := hdl.NewSyncProcess("clk_i", "rst_n_i")
	proc.AddReset(ref("awready_r"), hdl.NewConst(1, 1))
	proc.AddReset(ref("wready_r"), hdl.NewConst(1, 1))
	proc.AddReset(ref("arready_r"), hdl.NewConst(1, 1))
	proc.AddReset(ref("bvalid_r"), hdl.NewConst(0, 1))
	proc.AddReset(ref("rvalid_r"), hdl.NewConst(0, 1))
	proc.AddReset(ref("aw_pending"), hdl.NewConst(0, 1))
	proc.AddReset(ref("w_pending"), hdl.NewConst(0, 1))
	proc.AddReset(ref("ar_pending"), hdl.NewConst(0, 1))

	awAccept := hdl.NewIf(hdl.And(ref("s_axi_awvalid"), ref("awready_r")))
	awAccept.AddThen(hdl.NewAssign(ref("adrw"), ref("s_axi_awaddr")))
	awAccept.AddThen(hdl.NewAssign(ref("awready_r"), hdl.NewConst(0, 1)))
	awAccept.AddThen(hdl.NewAssign(ref("aw_pending"), hdl.NewConst(1, 1)))
	proc.Add(awAccept)

	wAccept := hdl.NewIf(hdl.And(ref("s_axi_wvalid"), ref("wready_r")))
	wAccept.AddThen(hdl.NewAssign(ref("wready_r"), hdl.NewConst(0, 1)))
	wAccept.AddThen(hdl.NewAssign(ref("w_pending"), hdl.NewConst(1, 1)))
	proc.Add(wAccept)

	wrDone := hdl.NewIf(hdl.And(ref("bvalid_r"), ref("s_axi_bready")))
	wrDone.AddThen(hdl.NewAssign(ref("bvalid_r"), hdl.NewConst(0, 1)))
	wrDone.AddThen(hdl.NewAssign(ref("awready_r"), hdl.NewConst(1, 1)))
	wrDone.AddThen(hdl.NewAssign(ref("wready_r"), hdl.NewConst(1, 1)))
	wrDone.AddThen(hdl.NewAssign(ref("aw_pending"), hdl.NewConst(0, 1)))
	wrDone.AddThen(hdl.NewAssign(ref("w_pending"), hdl.NewConst(0, 1)))
	proc.Add(wrDone)

	wrAckRise := hdl.NewIf(ref("wr_ack"))
	wrAckRise.AddThen(hdl.NewAssign(ref("bvalid_r"), hdl.NewConst(1, 1)))
	proc.Add(wrAckRise)

	arAccept := hdl.NewIf(hdl.And(ref("s_axi_arvalid"), ref("arready_r")))
	arAccept.AddThen(hdl.NewAssign(ref("adrr"), ref("s_axi_araddr")))
	arAccept.AddThen(hdl.NewAssign(ref("arready_r"), hdl.NewConst(0, 1)))
	arAccept.AddThen(hdl.NewAssign(ref("ar_pending"), hdl.NewConst(1, 1)))
	proc.Add(arAccept)

	rdDone := hdl.NewIf(hdl.And(ref("rvalid_r"), ref("s_axi_rready")))
	rdDone.AddThen(hdl.NewAssign(ref("rvalid_r"), hdl.NewConst(0, 1)))
	rdDone.AddThen(hdl.NewAssign(ref("arready_r"), hdl.NewConst(1, 1)))
	rdDone.AddThen(hdl.NewAssign(ref("ar_pending"), hdl.NewConst(0, 1)))
	proc.Add(rdDone)

	rdAckRise := hdl.NewIf(ref("rd_ack"))
	rdAckRise.AddThen(hdl.NewAssign(ref("rvalid_r"), hdl.NewConst(1, 1)))
	proc.Add(rdAckRise)

	m.AddStmt(proc)

	return &Signals{
		RdInt: "rd_int", WrInt: "wr_int", RdAck: "rd_ack", WrAck: "wr_ack",
		AdrR: "adrr", AdrW: "adrw",
		DatI: "s_axi_wdata", DatO: "s_axi_rdata",
		BusSplit: true,
	}, nil
}

// GenBusSlave emits the master-side port group used to connect
// outward to an axi4-lite-32 sub-map, regardless of the parent's own
// top-level protocol (S4: a wb-32-be top connecting to an
// axi4-lite-32 sub-map gets exactly these signals).
func (axi4lite) GenBusSlave(root RootInfo, m *hdl.Module, prefix string, sub SubmapInfo) (*SlavePorts, error) {
	sp := newSlavePorts(prefix, sub.BlkBits)
	strbWidth := root.WordSize
	if strbWidth < 1 {
		strbWidth = 1
	}
	addOut := func(logical, suffix string, width int, kind hdl.DeclKind) {
		name := prefix + "_" + logical + "_" + suffix
		m.AddDecl(hdl.NewDecl(name, width, kind))
		sp.set(logical, name)
	}
	addOut("awaddr", "o", sub.BlkBits, hdl.Wire)
	addOut("awvalid", "o", 1, hdl.Reg)
	addOut("awready", "i", 1, hdl.Wire)
	addOut("wdata", "o", root.WordBits, hdl.Wire)
	addOut("wstrb", "o", strbWidth, hdl.Wire)
	addOut("wvalid", "o", 1, hdl.Reg)
	addOut("wready", "i", 1, hdl.Wire)
	addOut("bresp", "i", 2, hdl.Wire)
	addOut("bvalid", "i", 1, hdl.Wire)
	addOut("bready", "o", 1, hdl.Wire)
	addOut("araddr", "o", sub.BlkBits, hdl.Wire)
	addOut("arvalid", "o", 1, hdl.Wire)
	addOut("arready", "i", 1, hdl.Wire)
	addOut("rdata", "i", root.WordBits, hdl.Wire)
	addOut("rresp", "i", 2, hdl.Wire)
	addOut("rvalid", "i", 1, hdl.Wire)
	addOut("rready", "o", 1, hdl.Wire)
	return sp, nil
}

func (axi4lite) WireBusSlave(m *hdl.Module, sp *SlavePorts, isigs *Signals) {
	hi := sp.AddrBits - 1
	if hi < 0 {
		hi = 0
	}
	adr := isigs.AdrW
	if adr == "" {
		adr = isigs.Adr
	}
	m.AddStmt(hdl.NewAssign(sp.ref("awaddr"), hdl.NewSlice(hdl.NewRef(adr), hi, 0)))
	adrR := isigs.AdrR
	if adrR == "" {
		adrR = isigs.Adr
	}
	m.AddStmt(hdl.NewAssign(sp.ref("araddr"), hdl.NewSlice(hdl.NewRef(adrR), hi, 0)))
	m.AddStmt(hdl.NewAssign(sp.ref("wdata"), hdl.NewRef(isigs.DatI)))
	m.AddStmt(hdl.NewAssign(sp.ref("wstrb"), hdl.NewReplicate(1, hdl.NewConst(1, 1))))
	m.AddStmt(hdl.NewAssign(sp.ref("bready"), hdl.NewConst(1, 1)))
	m.AddStmt(hdl.NewAssign(sp.ref("rready"), hdl.NewConst(1, 1)))
	m.AddStmt(hdl.NewAssign(sp.ref("arvalid"), hdl.NewRef(isigs.RdInt)))
}

func (axi4lite) WriteBusSlave(proc *hdl.SyncProcess, sp *SlavePorts, isigs *Signals) hdl.Expr {
	wrInt := hdl.NewRef(isigs.WrInt)

	raiseAW := hdl.NewIf(hdl.And(wrInt, hdl.NewNot(sp.ref("awvalid"))))
	raiseAW.AddThen(hdl.NewAssign(sp.ref("awvalid"), hdl.NewConst(1, 1)))
	proc.Add(raiseAW)

	clearAW := hdl.NewIf(hdl.And(sp.ref("awvalid"), sp.ref("awready")))
	clearAW.AddThen(hdl.NewAssign(sp.ref("awvalid"), hdl.NewConst(0, 1)))
	proc.Add(clearAW)

	raiseW := hdl.NewIf(hdl.And(wrInt, hdl.NewNot(sp.ref("wvalid"))))
	raiseW.AddThen(hdl.NewAssign(sp.ref("wvalid"), hdl.NewConst(1, 1)))
	proc.Add(raiseW)

	clearW := hdl.NewIf(hdl.And(sp.ref("wvalid"), sp.ref("wready")))
	clearW.AddThen(hdl.NewAssign(sp.ref("wvalid"), hdl.NewConst(0, 1)))
	proc.Add(clearW)

	return sp.ref("bvalid")
}

func (axi4lite) ReadBusSlave(proc *hdl.CombProcess, sp *SlavePorts, isigs *Signals) (hdl.Expr, hdl.Expr, hdl.Expr) {
	proc.Sensitize(sp.Names["rdata"])
	proc.Sensitize(sp.Names["rvalid"])
	cond := hdl.NewRef(isigs.RdInt)
	data := sp.ref("rdata")
	ack := sp.ref("rvalid")
	return cond, data, ack
}
