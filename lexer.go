// lexer.go: scans Cortado source text into tokens.
//
// The scanner is byte-oriented with 1-based line/column tracking. Two rules
// carry most of the language's flavor:
//
//   - Identifiers use maximal munch: letters, digits and '_' always continue,
//     and '-' continues only when the next character is a letter or '_', so
//     `calculate-factorial` is one token while `n-1` is three. A single
//     trailing '?' or '!' belongs to the identifier (`valid?`, `push!`).
//   - '(' is whitespace-sensitive: tight against the previous token it opens
//     a call (CLROUND), otherwise it groups (LROUND).
//
// '#' starts a line comment. A fresh Lexer is required per source unit.
package cortado

import (
	"fmt"
	"strconv"
	"strings"
)

// Lexer scans a Cortado source string into tokens.
type Lexer struct {
	src              string
	start            int // start index of current token
	cur              int // current index
	line             int // 1-based
	col              int // 1-based column of the next unread byte
	tokens           []Token
	whitespaceBefore bool
	interactive      bool

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// NewLexerInteractive creates a lexer whose end-of-input failures (an
// unterminated string at EOF) are reported as incomplete, so a REPL can ask
// for a continuation line instead of erroring out.
func NewLexerInteractive(src string) *Lexer {
	l := NewLexer(src)
	l.interactive = true
	return l
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:      tt,
		Lexeme:    l.src[l.start:l.cur],
		Literal:   lit,
		Line:      l.tokStartLine,
		Col:       l.tokStartCol,
		StartByte: l.start,
		EndByte:   l.cur,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	l.whitespaceBefore = false
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch {
		case ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t':
			l.whitespaceBefore = true
			l.advance()
		case ch == '#':
			l.whitespaceBefore = true
			for {
				b, ok := l.peek()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
		default:
			l.start = l.cur
			return
		}
	}
	l.start = l.cur
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) err(kind LexErrorKind, msg string) error {
	return &LexError{Kind: kind, Line: l.line, Col: l.col, Msg: msg}
}

// ----- scanners -----

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_-]* with '-' continuing only
// before a letter or '_', plus one optional trailing '?' or '!'.
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if isAlphaNum(b) {
			l.advance()
			continue
		}
		if b == '-' {
			if b2, ok2 := l.peekN(1); ok2 && isAlpha(b2) {
				l.advance()
				continue
			}
		}
		break
	}
	if b, ok := l.peek(); ok && (b == '?' || b == '!') {
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber consumes an integer or float literal. '_' separators are
// allowed between digits; a '.' continues the number only when followed by a
// digit, so `10.f` stays an integer followed by a dotted call.
func (l *Lexer) scanNumber() (tt TokenType, lit interface{}, err error) {
	digits := func() {
		for {
			b, ok := l.peek()
			if !ok || !(isDigit(b) || b == '_') {
				return
			}
			l.advance()
		}
	}
	digits()

	isFloat := false
	if b, ok := l.peek(); ok && b == '.' {
		if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
			isFloat = true
			l.advance()
			digits()
		}
	}

	lex := strings.ReplaceAll(l.src[l.start:l.cur], "_", "")
	if isFloat {
		v, convErr := strconv.ParseFloat(lex, 64)
		if convErr != nil {
			return 0, nil, l.err(InvalidCharacter, "invalid float literal")
		}
		return FLOAT, v, nil
	}
	v, convErr := strconv.ParseInt(lex, 10, 64)
	if convErr != nil {
		return 0, nil, l.err(InvalidCharacter, fmt.Sprintf("integer literal out of range: %s", lex))
	}
	return INTEGER, v, nil
}

// scanString consumes a single- or double-quoted string literal. Strings are
// single-line; a raw newline before the closing quote is an error.
func (l *Lexer) scanString(del byte) (string, error) {
	var out []byte
	for {
		ch, ok := l.advance()
		if !ok {
			if l.interactive {
				return "", l.err(LexIncomplete, "string was not terminated")
			}
			return "", l.err(UnterminatedString,
				"reached end of input before the closing quote -- add a closing "+string(del))
		}
		if ch == del {
			return string(out), nil
		}
		if ch == '\n' {
			return "", l.err(UnterminatedString,
				"found a newline before the closing quote -- keep strings on one line")
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				if l.interactive {
					return "", l.err(LexIncomplete, "string was not terminated")
				}
				return "", l.err(UnterminatedString, "unfinished escape sequence")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			case '\'':
				out = append(out, '\'')
			default:
				return "", l.err(InvalidCharacter, fmt.Sprintf("invalid escape sequence: \\%c", esc))
			}
			continue
		}
		out = append(out, ch)
	}
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()

	switch ch {
	case '(':
		if l.whitespaceBefore || len(l.tokens) == 0 {
			return l.addToken(LROUND, nil), nil
		}
		return l.addToken(CLROUND, nil), nil
	case ')':
		return l.addToken(RROUND, nil), nil
	case '{':
		return l.addToken(LCURLY, nil), nil
	case '}':
		return l.addToken(RCURLY, nil), nil
	case '[':
		return l.addToken(LSQUARE, nil), nil
	case ']':
		return l.addToken(RSQUARE, nil), nil
	case ',':
		return l.addToken(COMMA, nil), nil
	case '.':
		return l.addToken(PERIOD, nil), nil
	case ':':
		return l.addToken(COLON, nil), nil
	case ';':
		return l.addToken(SEMICOLON, nil), nil
	case '~':
		return l.addToken(TILDE, nil), nil
	case '+':
		return l.addToken(PLUS, nil), nil
	case '-':
		return l.addToken(MINUS, nil), nil
	case '*':
		return l.addToken(MULT, nil), nil
	case '/':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(NEQ, nil), nil
		}
		return l.addToken(DIV, nil), nil
	case '&':
		return l.addToken(AMP, nil), nil
	case '|':
		return l.addToken(PIPE, nil), nil
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(EQ, nil), nil
		}
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.addToken(FATARROW, nil), nil
		}
		return l.addToken(ASSIGN, nil), nil
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(LESS_EQ, nil), nil
		}
		return l.addToken(LESS, nil), nil
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(GREATER_EQ, nil), nil
		}
		return l.addToken(GREATER, nil), nil
	case '"', '\'':
		text, err := l.scanString(ch)
		if err != nil {
			return Token{}, err
		}
		return l.addToken(STRING, text), nil
	}

	if isDigit(ch) {
		l.cur = l.start // rewind; scanNumber reads from the first digit
		l.col = l.tokStartCol
		tt, lit, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(tt, lit), nil
	}

	if isAlpha(ch) {
		l.cur = l.start
		l.col = l.tokStartCol
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			if tt == BOOLEAN {
				return l.addToken(BOOLEAN, lex == "true"), nil
			}
			return l.addToken(tt, nil), nil
		}
		return l.addToken(ID, lex), nil
	}

	return Token{}, &LexError{
		Kind: InvalidCharacter,
		Line: l.tokStartLine,
		Col:  l.tokStartCol,
		Msg: fmt.Sprintf("unknown character %q -- did you mean an operator, identifier or a string? "+
			"Try adding spaces, or wrap text in quotes", ch),
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
