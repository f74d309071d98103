package busgen

import "github.com/cheby-go/cheby/hdl"

// sram is slave-only: it exposes addr_o/data_i/data_o ports sized to
// the memory's block bits and word width. It is not valid as a
// top-level bus.
type sram struct{}

func NewSRAM() BusGen { return sram{} }

func (sram) ExpandBus(root RootInfo, m *hdl.Module) (*Signals, error) {
	return nil, UnsupportedBusError{Bus: "sram (slave-only, not valid as a top-level bus)"}
}

func (sram) GenBusSlave(root RootInfo, m *hdl.Module, prefix string, sub SubmapInfo) (*SlavePorts, error) {
	sp := newSlavePorts(prefix, sub.BlkBits)
	add := func(logical, name string, width int, kind hdl.DeclKind) {
		full := prefix + "_" + name
		m.AddDecl(hdl.NewDecl(full, width, kind))
		sp.set(logical, full)
	}
	add("addr", "addr_o", sub.BlkBits, hdl.Wire)
	add("data_o", "data_o", root.WordBits, hdl.Wire) // parent -> memory
	add("data_i", "data_i", root.WordBits, hdl.Wire) // memory -> parent
	add("we", "we_o", 1, hdl.Wire)
	add("rd", "rd_o", 1, hdl.Wire)
	return sp, nil
}

func (sram) WireBusSlave(m *hdl.Module, sp *SlavePorts, isigs *Signals) {
	hi := sp.AddrBits - 1
	if hi < 0 {
		hi = 0
	}
	adr := isigs.Adr
	if adr == "" {
		adr = isigs.AdrW
	}
	m.AddStmt(hdl.NewAssign(sp.ref("addr"), hdl.NewSlice(hdl.NewRef(adr), hi, 0)))
	m.AddStmt(hdl.NewAssign(sp.ref("data_o"), hdl.NewRef(isigs.DatI)))
}

func (sram) WriteBusSlave(proc *hdl.SyncProcess, sp *SlavePorts, isigs *Signals) hdl.Expr {
	proc.Add(hdl.NewAssign(sp.ref("we"), hdl.NewRef(isigs.WrInt)))
	return hdl.NewConst(1, 1) // a plain dual-port SRAM always completes a write in one cycle
}

func (sram) ReadBusSlave(proc *hdl.CombProcess, sp *SlavePorts, isigs *Signals) (hdl.Expr, hdl.Expr, hdl.Expr) {
	proc.Sensitize(sp.Names["data_i"])
	cond := hdl.NewRef(isigs.RdInt)
	return cond, sp.ref("data_i"), hdl.NewConst(1, 1)
}
