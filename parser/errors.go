package parser

import (
	"fmt"
	"strings"

	"github.com/casegen/casegen/lexer"
)

// ParseError represents a parsing error with location and context
// information. The first error aborts the enclosing parse; directives
// never aggregate several errors in one pass.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Token   lexer.Token
	Input   string
}

// ErrorKind represents different categories of parsing errors
type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorUnexpected
	ErrorInvalid
	ErrorEmptyList
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorSyntax:
		return "syntax error"
	case ErrorUnexpected:
		return "unexpected token"
	case ErrorInvalid:
		return "invalid"
	case ErrorEmptyList:
		return "empty list"
	default:
		return "error"
	}
}

// Error returns the formatted error message with line/column and a code
// snippet pointing at the offending token.
func (e ParseError) Error() string {
	snippet := e.createCodeSnippet()
	if snippet == "" {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Kind.String(), e.Message, snippet)
}

// createCodeSnippet creates a code snippet showing the error location
func (e ParseError) createCodeSnippet() string {
	if e.Input == "" || e.Token.Pos.Line == 0 {
		return ""
	}

	lines := strings.Split(e.Input, "\n")
	if e.Token.Pos.Line > len(lines) {
		return ""
	}

	lineContent := lines[e.Token.Pos.Line-1]

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %d:%d\n", e.Token.Pos.Line, e.Token.Pos.Column))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", e.Token.Pos.Line, lineContent))
	snippet.WriteString("   | ")
	if e.Token.Pos.Column > 0 && e.Token.Pos.Column <= len(lineContent)+1 {
		snippet.WriteString(strings.Repeat(" ", e.Token.Pos.Column-1) + "^")
	}

	return snippet.String()
}

// errorAt creates an error anchored at a specific token
func (c *cursor) errorAt(kind ErrorKind, tok lexer.Token, message string) error {
	return ParseError{
		Kind:    kind,
		Message: message,
		Token:   tok,
		Input:   c.input,
	}
}

// unexpectedError creates an error for an unexpected current token
func (c *cursor) unexpectedError(expected string) error {
	got := c.current()
	return c.errorAt(ErrorUnexpected, got, fmt.Sprintf("expected %s, got %s", expected, got.Type.String()))
}

// invalidError creates an error for a structurally invalid construct
func (c *cursor) invalidError(message string) error {
	return c.errorAt(ErrorInvalid, c.current(), message)
}
