// Package jsgen builds and prints small JavaScript fragments.
//
// Fragments are emitted in place of the syntax nodes they replace, so the
// printer only needs to know the indentation of the line it lands on. Source
// text carried over verbatim (callback bodies, arguments) is wrapped in Raw.
package jsgen

// Node is any printable fragment.
type Node interface {
	print(p *printer)
}

// Expr is a fragment that can appear in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a fragment that can appear in statement position.
type Stmt interface {
	Node
	stmtNode()
}

// Ident is a bare identifier.
type Ident string

// Raw is source text emitted unchanged. It is both an expression and a
// statement; callers are responsible for its validity in either position.
type Raw string

// String is a string literal. Value is emitted between the quotes as-is, so
// it must already be escaped for Quote. A zero Quote prints single quotes.
type String struct {
	Value string
	Quote byte
}

// Member is `Object.Property`.
type Member struct {
	Object   Expr
	Property string
}

// Call is `Callee(Args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Await is `await Expr`.
type Await struct {
	Expr Expr
}

// Binary is `Left Op Right`.
type Binary struct {
	Left  Expr
	Op    string
	Right Expr
}

// ObjectPattern is a destructuring parameter such as `{ page }`.
type ObjectPattern struct {
	Names []string
}

// Property is one `Key: Value` entry of an Object.
type Property struct {
	Key   string
	Value Expr
}

// Object is an object literal printed one property per line.
type Object struct {
	Properties []Property
}

// Arrow is an arrow function. Body is a *Block or an expression.
type Arrow struct {
	Async      bool
	TypeParams string
	Params     []Expr
	ReturnType string
	Body       Node
}

// FuncDecl is a function declaration, or a function expression when Name
// is empty. TypeParams and ReturnType hold TypeScript annotations verbatim,
// ReturnType including its leading colon.
type FuncDecl struct {
	Export     bool
	Async      bool
	Name       string
	TypeParams string
	Params     []Expr
	ReturnType string
	Body       Node
}

// Block is a braced statement list.
type Block struct {
	Stmts []Stmt
}

// ExprStmt is an expression followed by a semicolon.
type ExprStmt struct {
	Expr Expr
}

// If is an if statement without else branch.
type If struct {
	Cond Expr
	Then *Block
}

// Return is `return Value;`, or a bare `return;` when Value is nil.
type Return struct {
	Value Expr
}

// Import is a named import declaration.
type Import struct {
	Names []string
	From  string
}

func (Ident) exprNode()          {}
func (Raw) exprNode()            {}
func (String) exprNode()         {}
func (*Member) exprNode()        {}
func (*Call) exprNode()          {}
func (*Await) exprNode()         {}
func (*Binary) exprNode()        {}
func (*ObjectPattern) exprNode() {}
func (*Object) exprNode()        {}
func (*Arrow) exprNode()         {}
func (*FuncDecl) exprNode()      {}

func (Raw) stmtNode()       {}
func (*FuncDecl) stmtNode() {}
func (*Block) stmtNode()    {}
func (*ExprStmt) stmtNode() {}
func (*If) stmtNode()       {}
func (*Return) stmtNode()   {}
func (*Import) stmtNode()   {}