package cortado

import (
	"fmt"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return prog
}

func parseKind(t *testing.T, src string) ParseErrorKind {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) unexpectedly succeeded", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Parse(%q) returned %T, want *ParseError", src, err)
	}
	return pe.Kind
}

// exprString renders an expression tree in a position-free prefix form so two
// differently written sources can be compared structurally.
func exprString(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return n.Val.String()
	case *Ident:
		return n.Name
	case *It:
		return "it"
	case *Unary:
		return fmt.Sprintf("(neg %s)", exprString(n.Operand))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", n.Op, exprString(n.Left), exprString(n.Right))
	case *Call:
		parts := make([]string, 0, len(n.Args)+1)
		parts = append(parts, "call:"+n.Name)
		for _, a := range n.Args {
			parts = append(parts, exprString(a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Block:
		parts := make([]string, 0, len(n.Stmts)+1)
		parts = append(parts, "block")
		for _, s := range n.Stmts {
			parts = append(parts, exprString(s))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Given:
		var b strings.Builder
		fmt.Fprintf(&b, "(given %s", exprString(n.Subject))
		for _, w := range n.Whens {
			fmt.Fprintf(&b, " (when %s %s)", exprString(w.Pred), exprString(w.Result))
		}
		if n.Default != nil {
			fmt.Fprintf(&b, " (default %s)", exprString(n.Default.Result))
		}
		b.WriteString(")")
		return b.String()
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func stmt1(t *testing.T, src string) Expr {
	t.Helper()
	prog := mustParse(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("Parse(%q): %d statements, want 1", src, len(prog.Stmts))
	}
	return prog.Stmts[0]
}

func sameShape(t *testing.T, a, b string) {
	t.Helper()
	sa := exprString(stmt1(t, a))
	sb := exprString(stmt1(t, b))
	if sa != sb {
		t.Fatalf("shapes differ:\n%q => %s\n%q => %s", a, sa, b, sb)
	}
}

func Test_Parser_DottedCallDesugars(t *testing.T) {
	sameShape(t, "10.calculate-factorial", "calculate-factorial(10)")
	if got := exprString(stmt1(t, "10.f")); got != "(call:f 10)" {
		t.Fatalf("got %s", got)
	}
}

func Test_Parser_DottedChainIsLeftAssociative(t *testing.T) {
	if got := exprString(stmt1(t, "a.f.g")); got != "(call:g (call:f a))" {
		t.Fatalf("got %s", got)
	}
	sameShape(t, "10.calculate-factorial.print", "print(calculate-factorial(10))")
}

func Test_Parser_DottedCallReceiverIsFirstArgument(t *testing.T) {
	if got := exprString(stmt1(t, "x.f(y, z)")); got != "(call:f x y z)" {
		t.Fatalf("got %s", got)
	}
	sameShape(t, "x.f(y, z)", "f(x, y, z)")
}

func Test_Parser_DotBindsTighterThanOperators(t *testing.T) {
	if got := exprString(stmt1(t, "1 + n.f")); got != "('+' 1 (call:f n))" {
		t.Fatalf("got %s", got)
	}
	if got := exprString(stmt1(t, "-n.f")); got != "(neg (call:f n))" {
		t.Fatalf("got %s", got)
	}
}

func Test_Parser_Precedence(t *testing.T) {
	cases := [][2]string{
		{"1 + 2 * 3", "('+' 1 ('*' 2 3))"},
		{"(1 + 2) * 3", "('*' ('+' 1 2) 3)"},
		{"1 - 2 - 3", "('-' ('-' 1 2) 3)"},
		{"1 < 2 & 2 < 3", "('&' ('<' 1 2) ('<' 2 3))"},
		{"a & b | c & d", "('|' ('&' a b) ('&' c d))"},
		{"1 + 2 == 3", "('==' ('+' 1 2) 3)"},
		{"1 /= 2", "('/=' 1 2)"},
		{"-2 + 3", "('+' (neg 2) 3)"},
	}
	for _, c := range cases {
		if got := exprString(stmt1(t, c[0])); got != c[1] {
			t.Fatalf("%q:\n got %s\nwant %s", c[0], got, c[1])
		}
	}
}

func Test_Parser_MethodDefinition(t *testing.T) {
	prog := mustParse(t, `
method calculate-factorial(n) {
    given n {
        when it < 2 => 1
        default => n * calculate-factorial(n - 1)
    }
}
`)
	if len(prog.Defs) != 1 || len(prog.Stmts) != 0 {
		t.Fatalf("defs=%d stmts=%d", len(prog.Defs), len(prog.Stmts))
	}
	def := prog.Defs[0]
	if def.Name != "calculate-factorial" {
		t.Fatalf("name = %q", def.Name)
	}
	if len(def.Params) != 1 || def.Params[0] != "n" {
		t.Fatalf("params = %v", def.Params)
	}
	want := "(block (given n (when ('<' it 2) 1) (default ('*' n (call:calculate-factorial ('-' n 1))))))"
	if got := exprString(def.Body); got != want {
		t.Fatalf("body:\n got %s\nwant %s", got, want)
	}
}

func Test_Parser_NoArgMethod(t *testing.T) {
	prog := mustParse(t, "method answer() { 42 }")
	if len(prog.Defs[0].Params) != 0 {
		t.Fatalf("params = %v", prog.Defs[0].Params)
	}
}

func Test_Parser_DefsAndStatementsInterleave(t *testing.T) {
	prog := mustParse(t, `
1.f
method f(n) { n }
2.f
`)
	if len(prog.Defs) != 1 || len(prog.Stmts) != 2 {
		t.Fatalf("defs=%d stmts=%d", len(prog.Defs), len(prog.Stmts))
	}
}

func Test_Parser_SemicolonsSeparateStatements(t *testing.T) {
	prog := mustParse(t, "1; 2; 3;")
	if len(prog.Stmts) != 3 {
		t.Fatalf("stmts = %d", len(prog.Stmts))
	}
}

func Test_Parser_GivenClauseSeparators(t *testing.T) {
	prog := mustParse(t, `given 1 { when it == 1 => "a", when it == 2 => "b"; default => "c" }`)
	g := prog.Stmts[0].(*Given)
	if len(g.Whens) != 2 || g.Default == nil {
		t.Fatalf("whens=%d default=%v", len(g.Whens), g.Default)
	}
}

func Test_Parser_ErrorKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind ParseErrorKind
	}{
		{"method f { 1 }", MissingParameterList},
		{"method f(n) { n", UnterminatedBlock},
		{"given 1 { when it == 1 => 2", UnterminatedBlock},
		{"given 1 { default => 1 default => 2 }", DuplicateDefault},
		{"1 +", UnexpectedToken},
		{"x = 1", UnexpectedToken},
		{"when it == 1 => 2", UnexpectedToken},
		{"1 ~ 2", UnexpectedToken},
		{"f(1", UnexpectedToken},
	}
	for _, c := range cases {
		if got := parseKind(t, c.src); got != c.kind {
			t.Fatalf("%q: kind = %v, want %v", c.src, got, c.kind)
		}
	}
}

func Test_Parser_NestedMethodRejected(t *testing.T) {
	if got := parseKind(t, "method f(n) { method g(m) { m } }"); got != UnexpectedToken {
		t.Fatalf("kind = %v", got)
	}
}

func Test_Parser_InteractiveIncomplete(t *testing.T) {
	for _, src := range []string{
		"method f(n) {",
		"given 1 {",
		"1 +",
		"f(1,",
	} {
		_, err := ParseInteractive(src)
		if err == nil || !IsIncomplete(err) {
			t.Fatalf("%q: want incomplete, got %v", src, err)
		}
	}
	// A genuine syntax error stays hard even interactively.
	_, err := ParseInteractive("x = 1")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("want hard error, got %v", err)
	}
	// Batch mode never reports incomplete.
	_, err = Parse("method f(n) {")
	if IsIncomplete(err) {
		t.Fatalf("batch parse reported incomplete: %v", err)
	}
}
