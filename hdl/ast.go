// Package hdl defines the data-only HDL abstract syntax tree consumed
// by the (external, out of scope) VHDL/Verilog printer, plus a
// pseudo-RTL text Print function that stands in for that printer in
// this repository's own tests. hdl has no behavior beyond holding
// children: every constructor here just assembles a struct. The
// generation logic lives in the root cheby package and in busgen.
package hdl

// Dir is a port's direction, from the module's point of view.
type Dir int

const (
	In Dir = iota
	Out
	Inout
)

func (d Dir) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case Inout:
		return "inout"
	default:
		return "?"
	}
}

// Port is a module-level port.
type Port struct {
	Name    string
	Width   int // 0 means a single bit
	Dir     Dir
	Comment string
	Group   string // non-empty when emitted under an x_hdl.iogroup
}

// DeclKind distinguishes a plain wire from a clocked register.
type DeclKind int

const (
	Wire DeclKind = iota
	Reg
)

// Decl is an internal signal declaration.
type Decl struct {
	Name    string
	Width   int
	Kind    DeclKind
	Comment string
}

// Module owns ordered sequences of ports, declarations and
// statements; ownership of every AST node is exclusive to its parent.
type Module struct {
	Name       string
	Ports      []*Port
	Decls      []*Decl
	Statements []Stmt
}

func NewModule(name string) *Module { return &Module{Name: name} }

func (m *Module) AddPort(p *Port)   { m.Ports = append(m.Ports, p) }
func (m *Module) AddDecl(d *Decl)   { m.Decls = append(m.Decls, d) }
func (m *Module) AddStmt(s Stmt)    { m.Statements = append(m.Statements, s) }

func NewPort(name string, width int, dir Dir) *Port {
	return &Port{Name: name, Width: width, Dir: dir}
}

func NewDecl(name string, width int, kind DeclKind) *Decl {
	return &Decl{Name: name, Width: width, Kind: kind}
}
