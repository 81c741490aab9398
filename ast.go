// ast.go: the tagged node types produced by the parser and walked by the
// evaluator. Nodes are read-only once built and live for one
// parse/evaluate cycle; every node remembers the line/column of the token
// that introduced it.
package cortado

// Expr is implemented by every expression node.
type Expr interface {
	Pos() (line, col int)
	expr()
}

// Program is the root node: top-level method definitions plus top-level
// expression statements, both in source order.
type Program struct {
	Defs  []*MethodDef
	Stmts []Expr
}

// MethodDef is a top-level `method name(params) { body }` definition.
type MethodDef struct {
	Name   string
	Params []string
	Body   *Block
	Line   int
	Col    int
}

// Block is a brace-delimited statement sequence; its value is the value of
// the last statement (Nil when empty).
type Block struct {
	Stmts []Expr
	Line  int
	Col   int
}

// Call applies the method bound to Name to Args. Dotted calls desugar here:
// `a.f` becomes Call("f", [a]) and `a.f(b)` becomes Call("f", [a, b]), so
// the evaluator never sees a receiver.
type Call struct {
	Name string
	Args []Expr
	Line int
	Col  int
}

// Given is the `given <subject> { when ... default ... }` expression.
type Given struct {
	Subject Expr
	Whens   []WhenClause
	Default *DefaultClause
	Line    int
	Col     int
}

// WhenClause is one `when <pred> => <result>` guarded clause. Both sides
// evaluate with `it` bound to the subject.
type WhenClause struct {
	Pred   Expr
	Result Expr
	Line   int
	Col    int
}

// DefaultClause is the optional `default => <result>` clause.
type DefaultClause struct {
	Result Expr
	Line   int
	Col    int
}

// Binary is an infix operator application. Line/Col point at the operator.
type Binary struct {
	Op    TokenType
	Left  Expr
	Right Expr
	Line  int
	Col   int
}

// Unary is prefix negation.
type Unary struct {
	Op      TokenType
	Operand Expr
	Line    int
	Col     int
}

// Literal is a typed constant carried as its runtime Value.
type Literal struct {
	Val  Value
	Line int
	Col  int
}

// Ident is a name reference resolved through the environment chain.
type Ident struct {
	Name string
	Line int
	Col  int
}

// It is the implicit subject reference, valid only inside a when clause.
type It struct {
	Line int
	Col  int
}

func (n *Block) Pos() (int, int)   { return n.Line, n.Col }
func (n *Call) Pos() (int, int)    { return n.Line, n.Col }
func (n *Given) Pos() (int, int)   { return n.Line, n.Col }
func (n *Binary) Pos() (int, int)  { return n.Line, n.Col }
func (n *Unary) Pos() (int, int)   { return n.Line, n.Col }
func (n *Literal) Pos() (int, int) { return n.Line, n.Col }
func (n *Ident) Pos() (int, int)   { return n.Line, n.Col }
func (n *It) Pos() (int, int)      { return n.Line, n.Col }

func (*Block) expr()   {}
func (*Call) expr()    {}
func (*Given) expr()   {}
func (*Binary) expr()  {}
func (*Unary) expr()   {}
func (*Literal) expr() {}
func (*Ident) expr()   {}
func (*It) expr()      {}
