// interp.go: the tree-walking evaluator and the embedding surface.
//
// An Interpreter owns two well-known environment frames:
//
//   - Core:   builtins (just `print` for now), parent of Global.
//   - Global: program state. Top-level method definitions land here, so a
//     REPL that keeps one Interpreter keeps its definitions.
//
// EvalProgram first binds every top-level method definition into Global,
// then evaluates the top-level statements in order. Binding before running
// is what makes forward references and self-recursion work regardless of
// definition order.
//
// Evaluation is a strict, depth-first, single-threaded tree walk. Internal
// failures panic with a *RuntimeError and are recovered at the public entry
// points; there is no local recovery anywhere in the walk. Argument
// expressions and binary operands evaluate strictly left to right.
package cortado

import (
	"fmt"
	"io"
	"os"
)

// DefaultMaxDepth bounds user-method recursion. Deep enough for real
// programs, shallow enough to fail fast with StackOverflow instead of
// exhausting the host stack.
const DefaultMaxDepth = 8192

// Interpreter evaluates Cortado programs against a persistent Global
// environment. The output sink is supplied by the host; the interpreter
// never opens files or streams itself.
type Interpreter struct {
	Core   *Env // builtins; parent of Global
	Global *Env // program state (persists across EvalProgram calls)

	out      io.Writer
	depth    int
	maxDepth int
}

// NewInterpreter creates an interpreter writing `print` output to out
// (os.Stdout when nil).
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	ip := &Interpreter{out: out, maxDepth: DefaultMaxDepth}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	ip.installBuiltins()
	return ip
}

// registerNative installs a builtin method into Core.
func (ip *Interpreter) registerNative(name string, params []string, impl NativeImpl) {
	ip.Core.Define(name, MethodVal(&Method{Name: name, Params: params, Native: impl}))
}

func (ip *Interpreter) installBuiltins() {
	// print writes the value's rendering, newline-terminated, and evaluates
	// to its argument so chains like `x.print.f` keep composing.
	ip.registerNative("print", []string{"value"}, func(ip *Interpreter, args []Value) Value {
		fmt.Fprintln(ip.out, Render(args[0]))
		return args[0]
	})
}

// EvalSource parses and evaluates src, returning the value of every
// top-level statement in order.
func (ip *Interpreter) EvalSource(src string) ([]Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return ip.EvalProgram(prog)
}

// EvalProgram evaluates prog in Global: definitions first (all of them,
// before any statement runs), then statements in order. On failure the
// statement values so far are discarded and the *RuntimeError is returned.
func (ip *Interpreter) EvalProgram(prog *Program) (out []Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			out, err = nil, re
		}
	}()

	for _, def := range prog.Defs {
		ip.Global.Define(def.Name, MethodVal(&Method{
			Name:   def.Name,
			Params: def.Params,
			Body:   def.Body,
			Env:    ip.Global,
		}))
	}
	for _, stmt := range prog.Stmts {
		out = append(out, ip.eval(stmt, ip.Global))
	}
	return out, nil
}

// Apply invokes a method Value from host code with the given arguments.
func (ip *Interpreter) Apply(fn Value, args []Value) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			out, err = Nil, re
		}
	}()
	return ip.apply(fn, "<applied method>", args, 0, 0), nil
}

// ----- internal walk -----

func failAt(kind RuntimeErrorKind, line, col int, format string, a ...interface{}) {
	panic(&RuntimeError{Kind: kind, Line: line, Col: col, Msg: fmt.Sprintf(format, a...)})
}

func (ip *Interpreter) eval(e Expr, env *Env) Value {
	switch n := e.(type) {
	case *Literal:
		return n.Val

	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			failAt(UnboundName, n.Line, n.Col, "unbound name: %s", n.Name)
		}
		return v

	case *It:
		v, ok := env.Get("it")
		if !ok {
			failAt(UnboundName, n.Line, n.Col, "'it' is only bound inside a when clause")
		}
		return v

	case *Block:
		result := Nil
		for _, s := range n.Stmts {
			result = ip.eval(s, env)
		}
		return result

	case *Unary:
		v := ip.eval(n.Operand, env)
		switch v.Tag {
		case VTInt:
			return Int(-v.Data.(int64))
		case VTFloat:
			return Float(-v.Data.(float64))
		}
		failAt(TypeMismatch, n.Line, n.Col, "unary '-' needs an Int or Float, got %s", v.Tag)

	case *Binary:
		return ip.evalBinary(n, env)

	case *Call:
		fn, ok := env.Get(n.Name)
		if !ok {
			failAt(UnboundName, n.Line, n.Col, "unbound name: %s", n.Name)
		}
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			args[i] = ip.eval(a, env)
		}
		return ip.apply(fn, n.Name, args, n.Line, n.Col)

	case *Given:
		return ip.evalGiven(n, env)
	}
	panic(fmt.Sprintf("cortado: unhandled AST node %T", e))
}

func (ip *Interpreter) apply(fn Value, name string, args []Value, line, col int) Value {
	if fn.Tag != VTMethod {
		failAt(NotCallable, line, col, "%s is not callable (it is a %s value)", name, fn.Tag)
	}
	m := fn.Data.(*Method)
	if len(args) != len(m.Params) {
		failAt(ArityMismatch, line, col, "%s takes %d argument(s), got %d",
			m.Name, len(m.Params), len(args))
	}
	if m.Native != nil {
		return m.Native(ip, args)
	}

	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > ip.maxDepth {
		failAt(StackOverflow, line, col, "call depth exceeded %d frames (unbounded recursion in %s?)",
			ip.maxDepth, m.Name)
	}

	frame := NewEnv(m.Env)
	for i, p := range m.Params {
		frame.Define(p, args[i])
	}
	return ip.eval(m.Body, frame)
}

func (ip *Interpreter) evalBinary(n *Binary, env *Env) Value {
	// Boolean connectives short-circuit and never see the right operand
	// when the left decides the result.
	if n.Op == AMP || n.Op == PIPE {
		l := ip.eval(n.Left, env)
		if l.Tag != VTBool {
			failAt(TypeMismatch, n.Line, n.Col, "operands of %s must be Bool, got %s", n.Op, l.Tag)
		}
		if n.Op == AMP && !l.Data.(bool) {
			return Bool(false)
		}
		if n.Op == PIPE && l.Data.(bool) {
			return Bool(true)
		}
		r := ip.eval(n.Right, env)
		if r.Tag != VTBool {
			failAt(TypeMismatch, n.Line, n.Col, "operands of %s must be Bool, got %s", n.Op, r.Tag)
		}
		return r
	}

	l := ip.eval(n.Left, env)
	r := ip.eval(n.Right, env)

	switch n.Op {
	case EQ:
		return Bool(valueEqual(l, r))
	case NEQ:
		return Bool(!valueEqual(l, r))
	}

	// Arithmetic and ordering are strict: two Ints or two Floats, nothing
	// is coerced.
	if l.Tag == VTInt && r.Tag == VTInt {
		a, b := l.Data.(int64), r.Data.(int64)
		switch n.Op {
		case PLUS:
			return Int(a + b)
		case MINUS:
			return Int(a - b)
		case MULT:
			return Int(a * b)
		case DIV:
			if b == 0 {
				failAt(DivisionByZero, n.Line, n.Col, "integer division by zero")
			}
			return Int(a / b)
		case LESS:
			return Bool(a < b)
		case LESS_EQ:
			return Bool(a <= b)
		case GREATER:
			return Bool(a > b)
		case GREATER_EQ:
			return Bool(a >= b)
		}
	}
	if l.Tag == VTFloat && r.Tag == VTFloat {
		a, b := l.Data.(float64), r.Data.(float64)
		switch n.Op {
		case PLUS:
			return Float(a + b)
		case MINUS:
			return Float(a - b)
		case MULT:
			return Float(a * b)
		case DIV:
			return Float(a / b)
		case LESS:
			return Bool(a < b)
		case LESS_EQ:
			return Bool(a <= b)
		case GREATER:
			return Bool(a > b)
		case GREATER_EQ:
			return Bool(a >= b)
		}
	}

	failAt(TypeMismatch, n.Line, n.Col, "operator %s needs two Ints or two Floats, got %s and %s",
		n.Op, l.Tag, r.Tag)
	return Nil // unreachable
}

// evalGiven implements first-match-wins guarded clauses. The subject is
// evaluated once; each predicate runs in a short-lived scope where `it` is
// bound to the subject, and a matching clause's result runs in that same
// scope. The default clause runs in the enclosing scope: `it` is a when
// clause affair.
func (ip *Interpreter) evalGiven(n *Given, env *Env) Value {
	subj := ip.eval(n.Subject, env)
	for i := range n.Whens {
		w := &n.Whens[i]
		scope := NewEnv(env)
		scope.Define("it", subj)
		pred := ip.eval(w.Pred, scope)
		if pred.Tag != VTBool {
			pl, pc := w.Pred.Pos()
			failAt(TypeMismatch, pl, pc, "a when predicate must evaluate to Bool, got %s", pred.Tag)
		}
		if pred.Data.(bool) {
			return ip.eval(w.Result, scope)
		}
	}
	if n.Default != nil {
		return ip.eval(n.Default.Result, env)
	}
	failAt(NoMatchingClause, n.Line, n.Col, "no when clause matched %s and there is no default clause",
		FormatValue(subj))
	return Nil // unreachable
}
