package hdl

import (
	"fmt"
	"io"
	"strings"
)

// printer is an indenting text builder, the same shape as the
// grammar compiler's outputWriter: a strings.Builder plus an indent
// level, with writei/writeil helpers layered on top.
type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) in()  { p.indent++ }
func (p *printer) out() { p.indent-- }

func (p *printer) writei(s string) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	p.buf.WriteString(s)
}

func (p *printer) writeil(s string) {
	p.writei(s)
	p.buf.WriteByte('\n')
}

// Print renders m as a pseudo-RTL text form: ports, declarations,
// then statements in emission order. It exists so Module trees built
// by this repository can be inspected and diffed in tests; it does
// not aim to produce compilable VHDL/Verilog (that printer is an
// external collaborator per the spec this module implements).
func Print(m *Module, w io.Writer) error {
	p := &printer{}
	p.writeil(fmt.Sprintf("module %s", m.Name))
	p.in()
	for _, port := range m.Ports {
		width := ""
		if port.Width > 1 {
			width = fmt.Sprintf("[%d:0]", port.Width-1)
		}
		group := ""
		if port.Group != "" {
			group = fmt.Sprintf(" @%s", port.Group)
		}
		p.writeil(fmt.Sprintf("port %s %s%s%s", port.Dir, port.Name, width, group))
	}
	for _, d := range m.Decls {
		width := ""
		if d.Width > 1 {
			width = fmt.Sprintf("[%d:0]", d.Width-1)
		}
		kind := "wire"
		if d.Kind == Reg {
			kind = "reg"
		}
		p.writeil(fmt.Sprintf("%s %s%s", kind, d.Name, width))
	}
	for _, s := range m.Statements {
		printStmt(p, s)
	}
	p.out()
	p.writeil("endmodule")
	_, err := io.WriteString(w, p.buf.String())
	return err
}

// String is a convenience wrapper around Print for tests.
func String(m *Module) string {
	var b strings.Builder
	_ = Print(m, &b)
	return b.String()
}

func printStmt(p *printer, s Stmt) {
	switch t := s.(type) {
	case *Assign:
		p.writeil(fmt.Sprintf("assign %s = %s", printExpr(t.LHS), printExpr(t.RHS)))

	case *SyncProcess:
		p.writeil(fmt.Sprintf("process(%s, %s) sync", t.Clock, t.Reset))
		p.in()
		p.writeil("reset:")
		p.in()
		for _, r := range t.ResetList {
			p.writeil(fmt.Sprintf("%s <= %s", printExpr(r.LHS), printExpr(r.RHS)))
		}
		p.out()
		for _, st := range t.Body {
			printStmt(p, st)
		}
		p.out()

	case *CombProcess:
		p.writeil(fmt.Sprintf("process(%s) comb", strings.Join(t.Sensitivity, ", ")))
		p.in()
		for _, st := range t.Body {
			printStmt(p, st)
		}
		p.out()

	case *If:
		p.writeil(fmt.Sprintf("if %s", printExpr(t.Cond)))
		p.in()
		for _, st := range t.Then {
			printStmt(p, st)
		}
		p.out()
		if len(t.Else) > 0 {
			p.writeil("else")
			p.in()
			for _, st := range t.Else {
				printStmt(p, st)
			}
			p.out()
		}

	case *Switch:
		p.writeil(fmt.Sprintf("switch %s", printExpr(t.Select)))
		p.in()
		for _, c := range t.Choices {
			p.writeil(fmt.Sprintf("case %s:", c.Const))
			p.in()
			for _, st := range c.Body {
				printStmt(p, st)
			}
			p.out()
		}
		p.writeil("default:")
		p.in()
		for _, st := range t.Default {
			printStmt(p, st)
		}
		p.out()
		p.out()

	case *Instance:
		p.writeil(fmt.Sprintf("instance %s %s", t.ModuleName, t.InstName))
		p.in()
		for _, prm := range t.Params {
			p.writeil(fmt.Sprintf("#%s => %s", prm.Name, prm.Value))
		}
		for _, c := range t.Conns {
			p.writeil(fmt.Sprintf(".%s(%s)", c.Port, printExpr(c.Value)))
		}
		p.out()

	default:
		p.writeil(fmt.Sprintf("<unknown stmt %T>", s))
	}
}

func printExpr(e Expr) string {
	switch t := e.(type) {
	case *Const:
		return fmt.Sprintf("%d'd%d", t.Width, t.Value)
	case *Ref:
		return t.Name
	case *Slice:
		if t.Hi == t.Lo {
			return fmt.Sprintf("%s[%d]", printExpr(t.Base), t.Hi)
		}
		return fmt.Sprintf("%s[%d:%d]", printExpr(t.Base), t.Hi, t.Lo)
	case *Replicate:
		return fmt.Sprintf("{%d{%s}}", t.Count, printExpr(t.Value))
	case *Logic:
		return fmt.Sprintf("(%s %s %s)", printExpr(t.Left), t.Op, printExpr(t.Right))
	case *Not:
		return fmt.Sprintf("!%s", printExpr(t.Operand))
	case *Eq:
		return fmt.Sprintf("(%s == %s)", printExpr(t.Left), printExpr(t.Right))
	default:
		return exprString(e)
	}
}
