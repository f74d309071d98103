package busgen

import (
	"fmt"

	"github.com/cheby-go/cheby/hdl"
)

// cernBEVME implements the CERN-BE-VME protocol family. The bus name
// is "cern-be-vme-[err-][split-]…"; BusErr enables rderr_o/wrerr_o
// ports, Split keeps separate read/write address buses.
type cernBEVME struct {
	BusErr bool
	Split  bool
}

func NewCernBEVME(buserr, split bool) BusGen {
	return cernBEVME{BusErr: buserr, Split: split}
}

func (c cernBEVME) ExpandBus(root RootInfo, m *hdl.Module) (*Signals, error) {
	m.AddPort(hdl.NewPort("clk_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("rst_n_i", 1, hdl.In))

	sig := &Signals{RdInt: "vme_rd_i", WrInt: "vme_wr_i", RdAck: "rd_ack", WrAck: "wr_ack",
		DatI: "vme_dat_i", DatO: "vme_dat_o"}

	if c.Split {
		m.AddPort(hdl.NewPort("vme_adrr_i", root.AddrBits, hdl.In))
		m.AddPort(hdl.NewPort("vme_adrw_i", root.AddrBits, hdl.In))
		sig.AdrR, sig.AdrW = "vme_adrr_i", "vme_adrw_i"
		sig.BusSplit = true
	} else {
		m.AddPort(hdl.NewPort("vme_adr_i", root.AddrBits, hdl.In))
		sig.Adr, sig.AdrR, sig.AdrW = "vme_adr_i", "vme_adr_i", "vme_adr_i"
		sig.BusSplit = false
	}

	m.AddPort(hdl.NewPort("vme_dat_i", root.WordBits, hdl.In))
	m.AddPort(hdl.NewPort("vme_dat_o", root.WordBits, hdl.Out))
	m.AddPort(hdl.NewPort("vme_rd_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("vme_wr_i", 1, hdl.In))
	m.AddPort(hdl.NewPort("vme_rack_o", 1, hdl.Out))
	m.AddPort(hdl.NewPort("vme_wack_o", 1, hdl.Out))

	m.AddDecl(hdl.NewDecl("rd_ack", 1, hdl.Wire))
	m.AddDecl(hdl.NewDecl("wr_ack", 1, hdl.Wire))

	m.AddStmt(hdl.NewAssign(hdl.NewRef("vme_rack_o"), hdl.NewRef("rd_ack")))
	m.AddStmt(hdl.NewAssign(hdl.NewRef("vme_wack_o"), hdl.NewRef("wr_ack")))

	if c.BusErr {
		m.AddPort(hdl.NewPort("vme_rderr_o", 1, hdl.Out))
		m.AddPort(hdl.NewPort("vme_wrerr_o", 1, hdl.Out))
		m.AddStmt(hdl.NewAssign(hdl.NewRef("vme_rderr_o"), hdl.NewConst(0, 1)))
		m.AddStmt(hdl.NewAssign(hdl.NewRef("vme_wrerr_o"), hdl.NewConst(0, 1)))
	}

	return sig, nil
}

func (c cernBEVME) GenBusSlave(root RootInfo, m *hdl.Module, prefix string, sub SubmapInfo) (*SlavePorts, error) {
	return nil, UnsupportedSlaveError{Bus: "cern-be-vme", Detail: fmt.Sprintf("sub-map %q", sub.Name)}
}

func (cernBEVME) WireBusSlave(m *hdl.Module, sp *SlavePorts, isigs *Signals) {
	panic("cern-be-vme: slave side is not implemented, GenBusSlave should have failed before this was reached")
}

func (cernBEVME) WriteBusSlave(proc *hdl.SyncProcess, sp *SlavePorts, isigs *Signals) hdl.Expr {
	panic("cern-be-vme: slave side is not implemented, GenBusSlave should have failed before this was reached")
}

func (cernBEVME) ReadBusSlave(proc *hdl.CombProcess, sp *SlavePorts, isigs *Signals) (hdl.Expr, hdl.Expr, hdl.Expr) {
	panic("cern-be-vme: slave side is not implemented, GenBusSlave should have failed before this was reached")
}
