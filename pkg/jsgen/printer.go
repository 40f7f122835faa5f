package jsgen

import "strings"

const defaultIndent = "  "

type printer struct {
	sb    strings.Builder
	base  string
	unit  string
	level int
}

// PrintOption configures Print.
type PrintOption func(*printer)

// WithBaseIndent sets the indentation of the line the fragment starts on.
// Nested lines are indented relative to it.
func WithBaseIndent(base string) PrintOption {
	return func(p *printer) {
		p.base = base
	}
}

// WithIndentUnit sets the indentation added per nesting level.
// Empty values are ignored.
func WithIndentUnit(unit string) PrintOption {
	return func(p *printer) {
		if unit != "" {
			p.unit = unit
		}
	}
}

// Print renders n. The first line is not indented; the caller places it.
func Print(n Node, opts ...PrintOption) string {
	p := &printer{unit: defaultIndent}
	for _, opt := range opts {
		opt(p)
	}
	n.print(p)
	return p.sb.String()
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(p.base)
	for i := 0; i < p.level; i++ {
		p.sb.WriteString(p.unit)
	}
}

func (p *printer) list(nodes []Expr) {
	for i, n := range nodes {
		if i > 0 {
			p.write(", ")
		}
		n.print(p)
	}
}

func (n Ident) print(p *printer) {
	p.write(string(n))
}

func (n Raw) print(p *printer) {
	p.write(string(n))
}

func (n String) print(p *printer) {
	q := n.Quote
	if q == 0 {
		q = '\''
	}
	p.sb.WriteByte(q)
	p.write(n.Value)
	p.sb.WriteByte(q)
}

func (n *Member) print(p *printer) {
	n.Object.print(p)
	p.write(".")
	p.write(n.Property)
}

func (n *Call) print(p *printer) {
	n.Callee.print(p)
	p.write("(")
	p.list(n.Args)
	p.write(")")
}

func (n *Await) print(p *printer) {
	p.write("await ")
	n.Expr.print(p)
}

func (n *Binary) print(p *printer) {
	n.Left.print(p)
	p.write(" " + n.Op + " ")
	n.Right.print(p)
}

func (n *ObjectPattern) print(p *printer) {
	if len(n.Names) == 0 {
		p.write("{}")
		return
	}
	p.write("{ " + strings.Join(n.Names, ", ") + " }")
}

func (n *Object) print(p *printer) {
	if len(n.Properties) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.level++
	for _, prop := range n.Properties {
		p.newline()
		p.write(prop.Key + ": ")
		prop.Value.print(p)
		p.write(",")
	}
	p.level--
	p.newline()
	p.write("}")
}

func (n *Arrow) print(p *printer) {
	if n.Async {
		p.write("async ")
	}
	p.write(n.TypeParams)
	p.write("(")
	p.list(n.Params)
	p.write(")")
	p.write(n.ReturnType)
	p.write(" => ")
	printBody(p, n.Body)
}

func (n *FuncDecl) print(p *printer) {
	if n.Export {
		p.write("export ")
	}
	if n.Async {
		p.write("async ")
	}
	p.write("function")
	if n.Name != "" {
		p.write(" " + n.Name)
	} else {
		p.write(" ")
	}
	p.write(n.TypeParams)
	p.write("(")
	p.list(n.Params)
	p.write(")")
	p.write(n.ReturnType)
	p.write(" ")
	printBody(p, n.Body)
}

func printBody(p *printer, body Node) {
	if body == nil {
		p.write("{}")
		return
	}
	body.print(p)
}

func (n *Block) print(p *printer) {
	if len(n.Stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.level++
	for _, s := range n.Stmts {
		p.newline()
		s.print(p)
	}
	p.level--
	p.newline()
	p.write("}")
}

func (n *ExprStmt) print(p *printer) {
	n.Expr.print(p)
	p.write(";")
}

func (n *If) print(p *printer) {
	p.write("if (")
	n.Cond.print(p)
	p.write(") ")
	if n.Then == nil {
		p.write("{}")
		return
	}
	n.Then.print(p)
}

func (n *Return) print(p *printer) {
	if n.Value == nil {
		p.write("return;")
		return
	}
	p.write("return ")
	n.Value.print(p)
	p.write(";")
}

func (n *Import) print(p *printer) {
	p.write("import { " + strings.Join(n.Names, ", ") + " } from ")
	String{Value: n.From}.print(p)
	p.write(";")
}
