package parser

import (
	"github.com/casegen/casegen/lexer"
)

// cursor is a positional view over the token sequence of one annotation.
// Speculative parsing forks the cursor: a fork advances independently and
// is either committed back (position and notices merge into the parent) or
// discarded, leaving the parent untouched.
type cursor struct {
	tokens  []lexer.Token
	pos     int
	input   string
	notices []Notice
}

func newCursor(source []byte, tokens []lexer.Token) *cursor {
	return &cursor{tokens: tokens, input: string(source)}
}

// peek returns the token n positions ahead without consuming, clamped to
// the trailing EOF token.
func (c *cursor) peek(n int) lexer.Token {
	idx := c.pos + n
	if idx >= len(c.tokens) {
		idx = len(c.tokens) - 1
	}
	return c.tokens[idx]
}

// current returns the token at the cursor position
func (c *cursor) current() lexer.Token {
	return c.peek(0)
}

// at reports whether the current token has the given type
func (c *cursor) at(tt lexer.TokenType) bool {
	return c.current().Type == tt
}

// atEnd reports whether the input is exhausted
func (c *cursor) atEnd() bool {
	return c.at(lexer.EOF)
}

// next consumes and returns the current token. At end of input it keeps
// returning EOF without advancing past it.
func (c *cursor) next() lexer.Token {
	tok := c.current()
	if tok.Type != lexer.EOF {
		c.pos++
	}
	return tok
}

// tryEat consumes the current token if it has the given type
func (c *cursor) tryEat(tt lexer.TokenType) (lexer.Token, bool) {
	if !c.at(tt) {
		return lexer.Token{}, false
	}
	return c.next(), true
}

// expect consumes a token of the given type or fails with a positioned
// error naming what was expected.
func (c *cursor) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if tok, ok := c.tryEat(tt); ok {
		return tok, nil
	}
	return lexer.Token{}, c.unexpectedError(what)
}

// fork returns an independent trial cursor at the same position. Notices
// recorded on the fork are dropped unless the fork is committed.
func (c *cursor) fork() *cursor {
	return &cursor{tokens: c.tokens, pos: c.pos, input: c.input}
}

// commit adopts a fork's advanced position and its recorded notices
func (c *cursor) commit(f *cursor) {
	c.pos = f.pos
	c.notices = append(c.notices, f.notices...)
}

// notice records a non-fatal diagnostic
func (c *cursor) notice(n Notice) {
	c.notices = append(c.notices, n)
}

// raw returns the source text spanned by the two tokens, inclusive
func (c *cursor) raw(from, to lexer.Token) string {
	start := from.Pos.Offset
	end := to.End()
	if start < 0 || end > len(c.input) || start > end {
		return ""
	}
	return c.input[start:end]
}

// speculate runs parse on a fork and commits only on success. A failed
// attempt leaves the cursor untouched and its error is deliberately
// swallowed: failure just means "try the next alternative".
func speculate[T any](c *cursor, parse func(*cursor) (T, error)) (T, bool) {
	f := c.fork()
	v, err := parse(f)
	if err != nil {
		var zero T
		return zero, false
	}
	c.commit(f)
	return v, true
}
