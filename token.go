// token.go: token kinds produced by the Cortado lexer.
package cortado

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND    // "(" when preceded by whitespace (grouping)
	CLROUND   // "(" when not preceded by whitespace (call-open)
	RROUND    // ")"
	LCURLY    // "{"
	RCURLY    // "}"
	LSQUARE   // "["
	RSQUARE   // "]"
	COMMA     // ","
	PERIOD    // "."
	COLON     // ":"
	SEMICOLON // ";"
	TILDE     // "~"
	FATARROW  // "=>"

	// Operators
	PLUS   // "+"
	MINUS  // "-"
	MULT   // "*"
	DIV    // "/"
	ASSIGN // "=" is lexed so the parser can reject it with a position
	EQ     // "=="
	NEQ    // "/="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	AMP  // "&"
	PIPE // "|"

	// Literals & identifiers
	ID
	INTEGER
	FLOAT
	STRING
	BOOLEAN

	// Keywords
	METHOD
	GIVEN
	WHEN
	DEFAULT
	IT
)

// Token is a lexical token with optional literal value. Tokens are immutable
// once produced by the lexer.
type Token struct {
	Type      TokenType
	Lexeme    string      // raw text slice
	Literal   interface{} // parsed value for literals (int64, float64, string, bool)
	Line      int         // 1-based
	Col       int         // 1-based
	StartByte int
	EndByte   int
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"method":  METHOD,
	"given":   GIVEN,
	"when":    WHEN,
	"default": DEFAULT,
	"it":      IT,
	"true":    BOOLEAN,
	"false":   BOOLEAN,
}

var tokenNames = map[TokenType]string{
	EOF:        "end of input",
	LROUND:     "'('",
	CLROUND:    "'('",
	RROUND:     "')'",
	LCURLY:     "'{'",
	RCURLY:     "'}'",
	LSQUARE:    "'['",
	RSQUARE:    "']'",
	COMMA:      "','",
	PERIOD:     "'.'",
	COLON:      "':'",
	SEMICOLON:  "';'",
	TILDE:      "'~'",
	FATARROW:   "'=>'",
	PLUS:       "'+'",
	MINUS:      "'-'",
	MULT:       "'*'",
	DIV:        "'/'",
	ASSIGN:     "'='",
	EQ:         "'=='",
	NEQ:        "'/='",
	LESS:       "'<'",
	LESS_EQ:    "'<='",
	GREATER:    "'>'",
	GREATER_EQ: "'>='",
	AMP:        "'&'",
	PIPE:       "'|'",
	ID:         "identifier",
	INTEGER:    "integer literal",
	FLOAT:      "float literal",
	STRING:     "string literal",
	BOOLEAN:    "boolean literal",
	METHOD:     "'method'",
	GIVEN:      "'given'",
	WHEN:       "'when'",
	DEFAULT:    "'default'",
	IT:         "'it'",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(tt))
}
