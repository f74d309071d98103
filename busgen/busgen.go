// Package busgen implements the bus-protocol strategies (C2): for
// each supported protocol, the code that emits top-level bus ports,
// the internal read/write-detect and ack-combining logic, and the
// master-side wiring needed when a sub-map is itself a bus slave.
//
// A protocol is reached only through the BusGen capability interface,
// never by switching on a type name downstream — NameToBusGen is the
// single string-dispatch boundary (§9 Design Notes).
package busgen

import "github.com/cheby-go/cheby/hdl"

// RootInfo is the subset of a Root node's fields a bus strategy
// needs. Passing this instead of a *cheby.Node avoids an import cycle
// between cheby (which calls into busgen) and busgen (which would
// otherwise need the tree types) — busgen only ever needs these
// scalars, never tree structure.
type RootInfo struct {
	Bus           string
	WordBits      int
	WordSize      int
	AddrBits      int
	AddrWordBits  int
	SelBits       int
	BlkBits       int
	BusGroup      string // x_hdl.busgroup, "" if absent
}

// SubmapInfo is the subset of a Submap node's fields needed to wire a
// sub-map as a bus slave.
type SubmapInfo struct {
	Name     string
	Bus      string // the sub-map's own protocol (its Root.Bus, or Interface when not "include")
	BlkBits  int
	IOGroup  string
}

// Signals is the bundle of internal signal names a bus strategy
// populates on ExpandBus and that the decoder (C4) consumes when
// building the read/write processes. Every field is a bare signal
// name (no prefix); module code refers to it through hdl.NewRef.
type Signals struct {
	RdInt string
	WrInt string
	RdAck string
	WrAck string

	Adr  string // unified address bus name (aliases AdrR/AdrW when !BusSplit)
	AdrR string
	AdrW string

	DatI string
	DatO string

	BusSplit bool // true when the protocol keeps separate read/write address buses

	// RAM write/read serialization delay signal name. Nothing in this
	// module sets or reads it: the root package tracks RAM write
	// deferral per RAM (see setupRAMs), and no bus strategy consults
	// this field.
	RamWrDly string
}

// SlavePorts names the master-side ports/signals a parent module gets
// when it connects outward to a sub-map instance speaking a given
// protocol. The field set is intentionally loose (a name map) because
// each protocol has a different channel shape (Wishbone: one pair of
// handshake signals; AXI4-Lite: five channels).
type SlavePorts struct {
	Prefix   string            // e.g. "<submapname>"; emitted names are "<prefix>_<signal>..."
	Names    map[string]string // logical signal name -> emitted port/signal name
	AddrBits int               // the slave's own address width (sub.BlkBits)
}

func newSlavePorts(prefix string, addrBits int) *SlavePorts {
	return &SlavePorts{Prefix: prefix, Names: map[string]string{}, AddrBits: addrBits}
}

func (sp *SlavePorts) set(logical, emitted string) { sp.Names[logical] = emitted }
func (sp *SlavePorts) ref(logical string) *hdl.Ref  { return hdl.NewRef(sp.Names[logical]) }

// BusGen is the capability every supported protocol implements.
type BusGen interface {
	// ExpandBus adds the top-level bus ports to m and emits the
	// internal read/write-detect and ack-combining logic, returning
	// the populated Signals bundle. Fails with an error for a
	// protocol not valid as a top-level bus (sram).
	ExpandBus(root RootInfo, m *hdl.Module) (*Signals, error)

	// GenBusSlave adds master-side ports/signals on m to connect
	// outward to a sub-map instance named by prefix. Fails for
	// protocols whose slave side is not implemented
	// (cern-be-vme-*, and sram is slave-only so succeeds here but
	// fails ExpandBus).
	GenBusSlave(root RootInfo, m *hdl.Module, prefix string, sub SubmapInfo) (*SlavePorts, error)

	// WireBusSlave emits continuous assignments tying the parent's
	// address/data into the slave's port group.
	WireBusSlave(m *hdl.Module, sp *SlavePorts, isigs *Signals)

	// WriteBusSlave drives the slave's write handshake inside the
	// write process and returns the expression the write process
	// assigns to the parent's write-ack for this sub-map's address.
	WriteBusSlave(proc *hdl.SyncProcess, sp *SlavePorts, isigs *Signals) hdl.Expr

	// ReadBusSlave extends the read process's sensitivity list with
	// the slave's read-side signals and returns the (condition, data)
	// pair for this sub-map's arm of the read-data mux, plus the
	// expression assigned to the parent's read-ack. It adds no
	// statements to proc.
	ReadBusSlave(proc *hdl.CombProcess, sp *SlavePorts, isigs *Signals) (cond hdl.Expr, data hdl.Expr, ack hdl.Expr)
}
