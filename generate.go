package cheby

import (
	"strconv"

	"github.com/cheby-go/cheby/busgen"
	"github.com/cheby-go/cheby/hdl"
)

// Generate is the top-level entry point for C1-C4: it builds the HDL
// module implementing root's register bank behind its chosen bus
// protocol. The returned Module is handed to the (external) printer;
// Generate itself never produces text.
func Generate(root *RootNode, cfg *Config) (*hdl.Module, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	gen, err := busgen.NameToBusGen(root.Bus)
	if err != nil {
		return nil, err
	}

	info := rootInfo(root)
	if info.WordBits == 0 {
		info.WordBits = cfg.WordBitsDefault
	}
	m := hdl.NewModule(root.Name)

	isigs, err := gen.ExpandBus(info, m)
	if err != nil {
		return nil, err
	}

	sigs := sigTable{}
	if err := materializePorts(root, m, info, isigs, sigs); err != nil {
		return nil, err
	}
	if err := wireSubmaps(root, m, isigs, sigs); err != nil {
		return nil, err
	}
	setupRAMs(root, m, info, sigs)

	if isigs.BusSplit {
		m.AddDecl(hdl.NewDecl("adr", info.AddrBits, hdl.Wire))
		mux := hdl.NewCombProcess(isigs.RdInt, isigs.AdrR, isigs.AdrW)
		ifs := hdl.NewIf(hdl.NewRef(isigs.RdInt))
		ifs.AddThen(hdl.NewAssign(hdl.NewRef("adr"), hdl.NewRef(isigs.AdrR)))
		ifs.AddElse(hdl.NewAssign(hdl.NewRef("adr"), hdl.NewRef(isigs.AdrW)))
		mux.Add(ifs)
		m.AddStmt(mux)
		isigs.Adr = "adr"
	}
	wireRAMAddresses(root, m, isigs, sigs)

	if err := buildWriteProcess(root, m, info, isigs, sigs); err != nil {
		return nil, err
	}
	if err := buildReadProcess(root, m, info, isigs, sigs); err != nil {
		return nil, err
	}

	return m, nil
}

func rootInfo(root *RootNode) busgen.RootInfo {
	return busgen.RootInfo{
		Bus:          root.Bus,
		WordBits:     root.CWordBits,
		WordSize:     root.CWordSize,
		AddrBits:     root.CAddrBits,
		AddrWordBits: root.CAddrWordBits,
		SelBits:      root.CSelBits,
		BlkBits:      root.CBlkBits,
		BusGroup:     root.Extensions.String("x_hdl.busgroup", ""),
	}
}

// wireSubmaps emits the continuous address/data wiring for every
// bus-connected (non-include) sub-map found anywhere in the tree.
func wireSubmaps(root Node, m *hdl.Module, isigs *busgen.Signals, sigs sigTable) error {
	var err error
	Inspect(root, func(n Node) bool {
		if err != nil {
			return false
		}
		sub, ok := n.(*SubmapNode)
		if !ok || sub.IsInclude() {
			return true
		}
		ns := sigs[sub]
		if ns == nil || ns.Bus == nil {
			err = UnsupportedFeatureError{Feature: "submap", Detail: sub.Name}
			return false
		}
		ns.Bus.WireBusSlave(m, ns.Slave, isigs)
		return true
	})
	return err
}

// setupRAMs attaches the internal bus-facing signals and the dual-port
// memory instance for every RAM-style Repeat. The user-facing
// _adr/_rd/_dat ports (materialized in ports.go) form the memory's
// second port; the bus side (port A) is driven by the write/read
// processes built afterwards.
func setupRAMs(root Node, m *hdl.Module, info busgen.RootInfo, sigs sigTable) {
	Inspect(root, func(n Node) bool {
		rep, ok := n.(*RepeatNode)
		if !ok || !rep.IsRAM() {
			return true
		}
		reg := rep.Child.(*RegNode)
		adrWidth := bitsFor(rep.Count)
		dataWidth := reg.CSize * 8

		ns := sigs.get(rep)
		ns.RAMBusAdr = rep.Name + "_bus_adr"
		ns.RAMBusWe = rep.Name + "_bus_we"
		ns.RAMBusDatW = rep.Name + "_bus_dat_w"
		ns.RAMBusDatR = rep.Name + "_bus_dat_r"
		m.AddDecl(hdl.NewDecl(ns.RAMBusAdr, adrWidth, hdl.Wire))
		m.AddDecl(hdl.NewDecl(ns.RAMBusWe, 1, hdl.Wire))
		m.AddDecl(hdl.NewDecl(ns.RAMBusDatW, dataWidth, hdl.Wire))
		m.AddDecl(hdl.NewDecl(ns.RAMBusDatR, dataWidth, hdl.Wire))

		inst := hdl.NewInstance("generic_dpram", rep.Name+"_ram")
		inst.AddParam("ADDR_WIDTH", strconv.Itoa(adrWidth))
		inst.AddParam("DATA_WIDTH", strconv.Itoa(dataWidth))
		inst.Connect("clk_i", hdl.NewRef("clk_i"))
		inst.Connect("a_addr_i", hdl.NewRef(ns.RAMBusAdr))
		inst.Connect("a_we_i", hdl.NewRef(ns.RAMBusWe))
		inst.Connect("a_dat_i", hdl.NewRef(ns.RAMBusDatW))
		inst.Connect("a_dat_o", hdl.NewRef(ns.RAMBusDatR))
		inst.Connect("b_addr_i", hdl.NewRef(ns.RAMAdr))
		inst.Connect("b_we_i", hdl.NewConst(0, 1))
		inst.Connect("b_dat_o", hdl.NewRef(ns.RAMDat))
		m.AddStmt(inst)

		if reg.Writable() && reg.Readable() {
			ns.RAMWrDly = rep.Name + "_wr_dly"
			ns.RAMWrDlyAdr = rep.Name + "_wr_dly_adr"
			ns.RAMWrDlyDat = rep.Name + "_wr_dly_dat"
			m.AddDecl(hdl.NewDecl(ns.RAMWrDly, 1, hdl.Reg))
			m.AddDecl(hdl.NewDecl(ns.RAMWrDlyAdr, adrWidth, hdl.Reg))
			m.AddDecl(hdl.NewDecl(ns.RAMWrDlyDat, dataWidth, hdl.Reg))
		}
		return true
	})
}

// wireRAMAddresses ties each RAM's bus-facing address port to the
// slice of the (already bus-split-resolved) address bus that selects
// its element; the leaf callbacks in process.go only drive the write
// enable and data lines.
func wireRAMAddresses(root Node, m *hdl.Module, isigs *busgen.Signals, sigs sigTable) {
	Inspect(root, func(n Node) bool {
		rep, ok := n.(*RepeatNode)
		if !ok || !rep.IsRAM() {
			return true
		}
		ns := sigs[rep]
		if ns == nil || ns.RAMBusAdr == "" {
			return true
		}
		lo := log2Exact(rep.CElSize)
		hi := lo + bitsFor(rep.Count) - 1
		m.AddStmt(hdl.NewAssign(hdl.NewRef(ns.RAMBusAdr), hdl.NewSlice(hdl.NewRef(isigs.Adr), hi, lo)))
		return true
	})
}
