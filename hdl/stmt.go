package hdl

// Stmt is the closed set of statement kinds a Module body can
// contain. The marker method keeps the set closed to this package;
// callers switch on concrete type the way gen_go.go's code emitter
// switches on grammar AST node type.
type Stmt interface{ stmtNode() }

// Assign is a continuous (combinational) assignment, `LHS <= RHS` or
// `LHS = RHS` depending on the surrounding process kind.
type Assign struct {
	LHS Expr
	RHS Expr
}

func (*Assign) stmtNode() {}

func NewAssign(lhs, rhs Expr) *Assign { return &Assign{LHS: lhs, RHS: rhs} }

// SyncProcess is a clocked process: on Reset, every signal in
// ResetList is driven to its paired reset value; otherwise Body runs.
type SyncProcess struct {
	Clock     string
	Reset     string
	ResetList []*Assign
	Body      []Stmt
}

func (*SyncProcess) stmtNode() {}

func NewSyncProcess(clock, reset string) *SyncProcess {
	return &SyncProcess{Clock: clock, Reset: reset}
}

func (p *SyncProcess) AddReset(lhs, rhs Expr) {
	p.ResetList = append(p.ResetList, NewAssign(lhs, rhs))
}

func (p *SyncProcess) Add(s Stmt) { p.Body = append(p.Body, s) }

// CombProcess is a combinational process, sensitive to every signal
// in Sensitivity.
type CombProcess struct {
	Sensitivity []string
	Body        []Stmt
}

func (*CombProcess) stmtNode() {}

func NewCombProcess(sensitivity ...string) *CombProcess {
	return &CombProcess{Sensitivity: append([]string{}, sensitivity...)}
}

func (p *CombProcess) Sensitize(name string) {
	p.Sensitivity = append(p.Sensitivity, name)
}

func (p *CombProcess) Add(s Stmt) { p.Body = append(p.Body, s) }

// If is a two-armed conditional; Else may be empty.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (*If) stmtNode() {}

func NewIf(cond Expr) *If { return &If{Cond: cond} }

func (s *If) AddThen(st Stmt) { s.Then = append(s.Then, st) }
func (s *If) AddElse(st Stmt) { s.Else = append(s.Else, st) }

// Choice is one arm of a Switch: a matching constant (rendered
// verbatim, so it can carry a radix/width prefix) and the statements
// that run when Select equals it.
type Choice struct {
	Const string
	Body  []Stmt
}

// Switch is a structural switch over Select with zero or more
// Choices and an optional Default arm. This is the AST shape the
// address decoder (C4) emits.
type Switch struct {
	Select  Expr
	Choices []*Choice
	Default []Stmt
}

func (*Switch) stmtNode() {}

func NewSwitch(sel Expr) *Switch { return &Switch{Select: sel} }

func (s *Switch) AddChoice(constant string) *Choice {
	c := &Choice{Const: constant}
	s.Choices = append(s.Choices, c)
	return c
}

func (c *Choice) Add(s Stmt) { c.Body = append(c.Body, s) }

func (s *Switch) SetDefault(body ...Stmt) { s.Default = body }

// Param is a named parameter passed to a sub-instance.
type Param struct {
	Name  string
	Value string
}

// Conn is a named connection from a sub-instance's port to an
// expression in the parent module.
type Conn struct {
	Port  string
	Value Expr
}

// Instance is a sub-module instantiation.
type Instance struct {
	ModuleName string
	InstName   string
	Params     []*Param
	Conns      []*Conn
}

func (*Instance) stmtNode() {}

func NewInstance(moduleName, instName string) *Instance {
	return &Instance{ModuleName: moduleName, InstName: instName}
}

func (i *Instance) AddParam(name, value string) {
	i.Params = append(i.Params, &Param{Name: name, Value: value})
}

func (i *Instance) Connect(port string, value Expr) {
	i.Conns = append(i.Conns, &Conn{Port: port, Value: value})
}
