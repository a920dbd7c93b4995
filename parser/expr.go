package parser

import (
	"fmt"

	"github.com/casegen/casegen/lexer"
)

// unwrapName is the marker of the deprecated wrapped expression form:
// Unwrap("<code>"). The string body is re-lexed and parsed as an
// expression.
const unwrapName = "Unwrap"

// parseIdent parses a single identifier token
func parseIdent(c *cursor) (Ident, error) {
	tok, err := c.expect(lexer.IDENTIFIER, "an identifier")
	if err != nil {
		return Ident{}, err
	}
	return Ident{Name: tok.Text, Pos: tok.Pos}, nil
}

// parseExpr parses one host-language expression by direct capture
func parseExpr(c *cursor) (Expr, error) {
	start := c.current()
	e, err := captureExpr(c)
	if err != nil {
		return Expr{}, c.errorAt(ErrorSyntax, start, fmt.Sprintf("cannot parse as an expression: %s", errMessage(err)))
	}
	return e, nil
}

// parseCaseArg parses one test case argument. The deprecated wrapped form
// is tried first on a fork; otherwise the token sequence is captured
// directly like any expression.
func parseCaseArg(c *cursor) (CaseArg, error) {
	if e, ok, err := tryUnwrap(c); ok || err != nil {
		return CaseArg{Expr: e}, err
	}
	e, err := parseExpr(c)
	if err != nil {
		return CaseArg{}, err
	}
	return CaseArg{Expr: e}, nil
}

// tryUnwrap recognizes Unwrap("...") on a fork. On a structural match it
// surfaces a deprecation notice, commits, and parses the string body; body
// parse failures are then real errors, not a rollback.
func tryUnwrap(c *cursor) (Expr, bool, error) {
	f := c.fork()

	name, ok := f.tryEat(lexer.IDENTIFIER)
	if !ok || name.Text != unwrapName {
		return Expr{}, false, nil
	}
	if _, ok := f.tryEat(lexer.LPAREN); !ok {
		return Expr{}, false, nil
	}
	lit, ok := f.tryEat(lexer.STRING)
	if !ok {
		return Expr{}, false, nil
	}
	if _, ok := f.tryEat(lexer.RPAREN); !ok {
		return Expr{}, false, nil
	}

	f.notice(Notice{
		Message: fmt.Sprintf("%s(\"<code>\") is deprecated, a case argument accepts arbitrary code now", unwrapName),
		Pos:     name.Pos,
	})
	c.commit(f)

	e, err := parseExprSource(c, lexer.Unquote(lit), lit)
	return e, true, err
}

// parseExprSource re-lexes a string body and parses it as one expression
// that must consume the whole body. The result is positioned at the
// enclosing literal so diagnostics point into the annotation, not into the
// re-lexed text.
func parseExprSource(c *cursor, body string, lit lexer.Token) (Expr, error) {
	sub := newCursor([]byte(body), lexer.Tokenize([]byte(body)))
	e, err := captureExpr(sub)
	if err == nil && !sub.atEnd() {
		err = sub.unexpectedError("end of expression")
	}
	if err != nil {
		return Expr{}, c.errorAt(ErrorSyntax, lit, fmt.Sprintf("cannot parse as an expression: %s", errMessage(err)))
	}
	e.Pos = lit.Pos
	return e, nil
}

func matchingCloser(opener lexer.TokenType) lexer.TokenType {
	switch opener {
	case lexer.LPAREN:
		return lexer.RPAREN
	case lexer.LSQUARE:
		return lexer.RSQUARE
	default:
		return lexer.RBRACE
	}
}

// captureExpr captures a balanced token run as one expression. The run
// ends at a comma or closing bracket at depth zero, or at end of input.
// Brackets inside the run must nest by kind.
func captureExpr(c *cursor) (Expr, error) {
	start := c.current()
	var last lexer.Token
	var open []lexer.TokenType
	count := 0

	for {
		tok := c.current()
		switch tok.Type {
		case lexer.EOF:
			if len(open) > 0 {
				return Expr{}, c.errorAt(ErrorSyntax, start, "unbalanced group in expression")
			}
			if count == 0 {
				return Expr{}, c.unexpectedError("an expression")
			}
			return Expr{Raw: c.raw(start, last), Pos: start.Pos}, nil
		case lexer.ILLEGAL:
			return Expr{}, c.errorAt(ErrorSyntax, tok, fmt.Sprintf("invalid token %q", tok.Text))
		case lexer.COMMA:
			if len(open) == 0 {
				if count == 0 {
					return Expr{}, c.unexpectedError("an expression")
				}
				return Expr{Raw: c.raw(start, last), Pos: start.Pos}, nil
			}
		case lexer.LPAREN, lexer.LSQUARE, lexer.LBRACE:
			open = append(open, tok.Type)
		case lexer.RPAREN, lexer.RSQUARE, lexer.RBRACE:
			if len(open) == 0 {
				if count == 0 {
					return Expr{}, c.unexpectedError("an expression")
				}
				return Expr{Raw: c.raw(start, last), Pos: start.Pos}, nil
			}
			if matchingCloser(open[len(open)-1]) != tok.Type {
				return Expr{}, c.errorAt(ErrorSyntax, tok, fmt.Sprintf("mismatched %q in expression", tok.Text))
			}
			open = open[:len(open)-1]
		}
		last = c.next()
		count++
	}
}

// parseTypeExpr captures a type between angle brackets. The cursor stands
// just past the opening '<'; the run ends before the matching '>' which
// the caller consumes.
func parseTypeExpr(c *cursor) (TypeExpr, error) {
	start := c.current()
	var last lexer.Token
	depth := 0
	count := 0

	for {
		tok := c.current()
		switch tok.Type {
		case lexer.EOF:
			return TypeExpr{}, c.errorAt(ErrorSyntax, start, "unbalanced angle brackets in type binding")
		case lexer.ILLEGAL:
			return TypeExpr{}, c.errorAt(ErrorSyntax, tok, fmt.Sprintf("invalid token %q", tok.Text))
		case lexer.LT:
			depth++
		case lexer.GT:
			if depth == 0 {
				if count == 0 {
					return TypeExpr{}, c.unexpectedError("a type")
				}
				return TypeExpr{Raw: c.raw(start, last), Pos: start.Pos}, nil
			}
			depth--
		}
		last = c.next()
		count++
	}
}

// errMessage extracts the bare message from a ParseError so wrapped causes
// do not repeat the code snippet.
func errMessage(err error) string {
	if pe, ok := err.(ParseError); ok {
		return pe.Message
	}
	return err.Error()
}
