// errors.go: the three error families and caret-snippet rendering.
//
// Lexing, parsing and evaluation each fail with their own error type, all
// carrying a 1-based source position. WrapErrorWithSource turns any of them
// into a multi-line snippet with a caret under the offending column:
//
//	PARSE ERROR at 3:12: unexpected token ')'
//
//	   2 | method f(n) {
//	   3 |   n + )
//	      |       ^
//	   4 | }
//
// Everything else passes through unchanged.
package cortado

import (
	"fmt"
	"strings"
)

// LexErrorKind classifies lexer failures.
type LexErrorKind int

const (
	UnterminatedString LexErrorKind = iota
	InvalidCharacter
	LexIncomplete // interactive mode only: more input may complete the token
)

// LexError is a tokenization failure. Always fatal to the current parse.
type LexError struct {
	Kind LexErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ParseErrorKind classifies parser failures.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnterminatedBlock
	MissingParameterList
	DuplicateDefault
	ParseIncomplete // interactive mode only: more input may complete the form
)

// ParseError is a syntax failure. Fatal to producing a Program.
type ParseError struct {
	Kind ParseErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// RuntimeErrorKind classifies evaluation failures.
type RuntimeErrorKind int

const (
	UnboundName RuntimeErrorKind = iota
	NotCallable
	ArityMismatch
	TypeMismatch
	NoMatchingClause
	StackOverflow
	DivisionByZero
)

// RuntimeError is raised at the point of failure during evaluation and
// propagates outward through the call chain with no local recovery.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err means "the input so far is a valid prefix
// but ended early". REPLs use it to prompt for a continuation line.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *LexError:
		return e.Kind == LexIncomplete
	case *ParseError:
		return e.Kind == ParseIncomplete
	default:
		return false
	}
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes lex/parse/runtime errors and
// leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in <name>")
// in the header, typically a file path or "<repl>".
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", caretSnippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", srcName, e.Line, e.Col, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", caretSnippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// caretSnippet builds the snippet: header, one line of context before and
// after when available, and a caret under the 1-based column. Out-of-range
// coordinates are clamped so rendering never fails.
func caretSnippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
