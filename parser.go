// parser.go: recursive-descent parser for Cortado.
//
// The parser consumes the full token sequence and returns one Program.
// Binary expressions use a small binding-power table instead of one grammar
// rule per precedence level; everything else is plain descent. Precedence,
// low to high: | ; & ; == /= ; < > <= >= ; + - ; * / ; unary - ; dotted
// call chaining; primary.
//
// Dotted calls desugar during parsing: `a.f` => Call("f",[a]) and
// `a.f(b, c)` => Call("f",[a, b, c]), left-associative, so `a.f.g` is
// Call("g",[Call("f",[a])]). A plain `f(b)` is the same Call node without
// the receiver insertion; `f` must be tight against `(` (CLROUND).
//
// In interactive mode, failures caused by running out of input surface as
// ParseIncomplete so a REPL can prompt for a continuation line.
package cortado

import "fmt"

// Parse parses a complete Cortado source string and returns its Program.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseInteractive parses in REPL-friendly mode: unterminated constructs at
// end of input produce an error for which IsIncomplete reports true.
func ParseInteractive(src string) (*Program, error) {
	toks, err := NewLexerInteractive(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: true}
	return p.program()
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

// ----- token basics -----

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF is always last
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) match(tt TokenType) bool {
	if p.peek().Type == tt {
		p.i++
		return true
	}
	return false
}

func (p *parser) need(tt TokenType, msg string) (Token, error) {
	if p.match(tt) {
		return p.prev(), nil
	}
	g := p.peek()
	return Token{}, p.errAt(g, UnexpectedToken, fmt.Sprintf("%s, got %s", msg, g.Type))
}

// errAt builds a ParseError at tok. At end of input in interactive mode the
// kind is downgraded to ParseIncomplete, whatever it would have been.
func (p *parser) errAt(tok Token, kind ParseErrorKind, msg string) error {
	if p.interactive && tok.Type == EOF {
		kind = ParseIncomplete
	}
	return &ParseError{Kind: kind, Line: tok.Line, Col: tok.Col, Msg: msg}
}

// unterminated reports a brace block that hit end of input. The caret points
// at the opening brace, which is more useful than pointing at EOF.
func (p *parser) unterminated(open Token, msg string) error {
	if p.interactive {
		eof := p.peek()
		return &ParseError{Kind: ParseIncomplete, Line: eof.Line, Col: eof.Col, Msg: msg}
	}
	return &ParseError{Kind: UnterminatedBlock, Line: open.Line, Col: open.Col, Msg: msg}
}

func (p *parser) skipSemicolons() {
	for p.peek().Type == SEMICOLON {
		p.i++
	}
}

// ----- precedence -----

func lbp(tt TokenType) (int, bool) {
	switch tt {
	case PIPE:
		return 20, true
	case AMP:
		return 30, true
	case EQ, NEQ:
		return 40, true
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return 50, true
	case PLUS, MINUS:
		return 60, true
	case MULT, DIV:
		return 70, true
	}
	return 0, false
}

// ----- grammar -----

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for {
		p.skipSemicolons()
		if p.atEnd() {
			return prog, nil
		}
		if p.peek().Type == METHOD {
			def, err := p.methodDef()
			if err != nil {
				return nil, err
			}
			prog.Defs = append(prog.Defs, def)
			continue
		}
		e, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, e)
	}
}

func (p *parser) methodDef() (*MethodDef, error) {
	kw := p.peek()
	p.i++ // 'method'

	nameTok, err := p.need(ID, "expected a method name after 'method'")
	if err != nil {
		return nil, err
	}
	name := nameTok.Literal.(string)

	if t := p.peek().Type; t != CLROUND && t != LROUND {
		return nil, p.errAt(p.peek(), MissingParameterList,
			fmt.Sprintf("expected '(' to open the parameter list of %s", name))
	}
	p.i++

	var params []string
	if !p.match(RROUND) {
		for {
			tok, err := p.need(ID, "expected a parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, tok.Literal.(string))
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.need(RROUND, "expected ')' after the parameter list"); err != nil {
			return nil, err
		}
	}

	body, err := p.braceBlock()
	if err != nil {
		return nil, err
	}
	return &MethodDef{Name: name, Params: params, Body: body, Line: kw.Line, Col: kw.Col}, nil
}

// braceBlock parses `{ stmt* }`. Statements may be separated by semicolons
// but need not be; the block's value is its last statement.
func (p *parser) braceBlock() (*Block, error) {
	open, err := p.need(LCURLY, "expected '{'")
	if err != nil {
		return nil, err
	}
	blk := &Block{Line: open.Line, Col: open.Col}
	for {
		p.skipSemicolons()
		if p.match(RCURLY) {
			return blk, nil
		}
		if p.atEnd() {
			return nil, p.unterminated(open, "block opened here was never closed with '}'")
		}
		e, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, e)
	}
}

func (p *parser) expression(minBP int) (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tt := p.peek().Type
		bp, ok := lbp(tt)
		if !ok || bp <= minBP {
			return left, nil
		}
		op := p.peek()
		p.i++
		right, err := p.expression(bp)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tt, Left: left, Right: right, Line: op.Line, Col: op.Col}
	}
}

func (p *parser) unary() (Expr, error) {
	if p.peek().Type == MINUS {
		op := p.peek()
		p.i++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: MINUS, Operand: operand, Line: op.Line, Col: op.Col}, nil
	}
	return p.postfix()
}

// postfix handles left-associative dotted call chaining.
func (p *parser) postfix() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == PERIOD {
		p.i++
		nameTok, err := p.need(ID, "expected a method name after '.'")
		if err != nil {
			return nil, err
		}
		args := []Expr{e}
		if p.peek().Type == CLROUND {
			more, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			args = append(args, more...)
		}
		e = &Call{Name: nameTok.Literal.(string), Args: args, Line: nameTok.Line, Col: nameTok.Col}
	}
	return e, nil
}

// callArgs parses `(arg, ...)` starting at a CLROUND.
func (p *parser) callArgs() ([]Expr, error) {
	p.i++ // '('
	var args []Expr
	if p.match(RROUND) {
		return args, nil
	}
	for {
		e, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RROUND, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.i++
		return &Literal{Val: Int(tok.Literal.(int64)), Line: tok.Line, Col: tok.Col}, nil
	case FLOAT:
		p.i++
		return &Literal{Val: Float(tok.Literal.(float64)), Line: tok.Line, Col: tok.Col}, nil
	case STRING:
		p.i++
		return &Literal{Val: Str(tok.Literal.(string)), Line: tok.Line, Col: tok.Col}, nil
	case BOOLEAN:
		p.i++
		return &Literal{Val: Bool(tok.Literal.(bool)), Line: tok.Line, Col: tok.Col}, nil
	case IT:
		p.i++
		return &It{Line: tok.Line, Col: tok.Col}, nil
	case ID:
		p.i++
		name := tok.Literal.(string)
		if p.peek().Type == CLROUND {
			args, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			return &Call{Name: name, Args: args, Line: tok.Line, Col: tok.Col}, nil
		}
		return &Ident{Name: name, Line: tok.Line, Col: tok.Col}, nil
	case GIVEN:
		return p.given()
	case LROUND, CLROUND:
		p.i++
		e, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')' to close the grouping"); err != nil {
			return nil, err
		}
		return e, nil
	case METHOD:
		return nil, p.errAt(tok, UnexpectedToken, "method definitions are only allowed at the top level")
	case WHEN, DEFAULT:
		return nil, p.errAt(tok, UnexpectedToken,
			fmt.Sprintf("%s clauses only appear inside a given block", tok.Type))
	case ASSIGN:
		return nil, p.errAt(tok, UnexpectedToken, "'=' is not an operator in Cortado, did you mean '=='?")
	case EOF:
		return nil, p.errAt(tok, UnexpectedToken, "unexpected end of input, expected an expression")
	default:
		return nil, p.errAt(tok, UnexpectedToken, fmt.Sprintf("unexpected %s", tok.Type))
	}
}

// given parses `given <subject> { when <pred> => <result> ... default => <result> }`.
// Clauses may be separated by commas or semicolons; at most one default is
// allowed and clause order is preserved.
func (p *parser) given() (Expr, error) {
	kw := p.peek()
	p.i++ // 'given'

	subject, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	open, err := p.need(LCURLY, "expected '{' after the given subject")
	if err != nil {
		return nil, err
	}

	g := &Given{Subject: subject, Line: kw.Line, Col: kw.Col}
	for {
		for p.peek().Type == COMMA || p.peek().Type == SEMICOLON {
			p.i++
		}
		switch p.peek().Type {
		case RCURLY:
			p.i++
			return g, nil
		case WHEN:
			w := p.peek()
			p.i++
			pred, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.need(FATARROW, "expected '=>' after the when predicate"); err != nil {
				return nil, err
			}
			res, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			g.Whens = append(g.Whens, WhenClause{Pred: pred, Result: res, Line: w.Line, Col: w.Col})
		case DEFAULT:
			d := p.peek()
			p.i++
			if g.Default != nil {
				return nil, &ParseError{Kind: DuplicateDefault, Line: d.Line, Col: d.Col,
					Msg: "a given expression may have at most one default clause"}
			}
			if _, err := p.need(FATARROW, "expected '=>' after 'default'"); err != nil {
				return nil, err
			}
			res, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			g.Default = &DefaultClause{Result: res, Line: d.Line, Col: d.Col}
		case EOF:
			return nil, p.unterminated(open, "given block opened here was never closed with '}'")
		default:
			return nil, p.errAt(p.peek(), UnexpectedToken,
				fmt.Sprintf("expected 'when', 'default' or '}' in a given block, got %s", p.peek().Type))
		}
	}
}
