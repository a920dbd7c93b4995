package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ASCII character lookup tables for fast classification
var (
	isWhitespace [128]bool
	isDigit      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
		letter := ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = letter || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}
}

// Lexer tokenizes the argument text of one annotation occurrence.
// The input is the raw token sequence between the marker's parentheses,
// not a full program.
type Lexer struct {
	input  string
	pos    int // current byte offset
	line   int
	column int
}

// NewLexer creates a lexer over the given annotation source
func NewLexer(source []byte) *Lexer {
	return &Lexer{
		input:  string(source),
		line:   1,
		column: 1,
	}
}

// Tokenize lexes the whole input, returning the token sequence terminated
// by a single EOF token.
func Tokenize(source []byte) []Token {
	l := NewLexer(source)
	// Heuristic: one token per two bytes covers typical annotation text
	tokens := make([]Token, 0, len(source)/2+1)
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Next returns the next token, or an EOF token when input is exhausted
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: EOF, Pos: l.position()}
	}

	pos := l.position()
	ch := l.input[l.pos]

	// Two-character operators take priority over their single-char prefixes
	if l.pos+1 < len(l.input) {
		pair := l.input[l.pos : l.pos+2]
		if tt, ok := TwoCharTokens[pair]; ok {
			l.advance(2)
			return Token{Type: tt, Text: pair, Pos: pos}
		}
	}

	switch {
	case ch < 128 && isIdentStart[ch], ch >= 128:
		return l.scanIdentifier(pos)
	case ch < 128 && isDigit[ch]:
		return l.scanNumber(pos)
	case ch == '"' || ch == '\'' || ch == '`':
		return l.scanString(pos)
	}

	if tt, ok := SingleCharTokens[ch]; ok {
		l.advance(1)
		return Token{Type: tt, Text: string(ch), Pos: pos}
	}

	l.advance(1)
	return Token{Type: ILLEGAL, Text: string(ch), Pos: pos}
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.pos}
}

// advance moves n bytes forward, keeping line/column in sync
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.input); i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch < 128 && isWhitespace[ch] {
			l.advance(1)
			continue
		}
		return
	}
}

func (l *Lexer) scanIdentifier(pos Position) Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch < 128 {
			if !isIdentPart[ch] {
				break
			}
			l.advance(1)
			continue
		}
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advance(size)
	}
	if l.pos == start {
		// Non-ASCII byte that does not start a letter
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.advance(size)
		return Token{Type: ILLEGAL, Text: l.input[start:l.pos], Pos: pos}
	}
	text := l.input[start:l.pos]
	if tt, ok := Keywords[text]; ok {
		return Token{Type: tt, Text: text, Pos: pos}
	}
	return Token{Type: IDENTIFIER, Text: text, Pos: pos}
}

// scanNumber scans integers and floats, including exponent forms (1e6,
// 2.5e-3). A leading sign is a separate MINUS/PLUS token.
func (l *Lexer) scanNumber(pos Position) Token {
	start := l.pos
	tt := INTEGER

	for l.pos < len(l.input) && l.input[l.pos] < 128 && isDigit[l.input[l.pos]] {
		l.advance(1)
	}

	// Fractional part; a bare trailing dot stays a DOT token
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' &&
		l.input[l.pos+1] < 128 && isDigit[l.input[l.pos+1]] {
		tt = FLOAT
		l.advance(1)
		for l.pos < len(l.input) && l.input[l.pos] < 128 && isDigit[l.input[l.pos]] {
			l.advance(1)
		}
	}

	// Exponent part
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		next := l.pos + 1
		if next < len(l.input) && (l.input[next] == '+' || l.input[next] == '-') {
			next++
		}
		if next < len(l.input) && l.input[next] < 128 && isDigit[l.input[next]] {
			tt = FLOAT
			l.advance(next - l.pos)
			for l.pos < len(l.input) && l.input[l.pos] < 128 && isDigit[l.input[l.pos]] {
				l.advance(1)
			}
		}
	}

	return Token{Type: tt, Text: l.input[start:l.pos], Pos: pos}
}

// scanString scans "...", '...' and `...` literals. Quotes are kept in the
// token text so captured expressions reproduce their source exactly; the
// Unquote helper strips them. Backslash escapes are honored except in
// backtick raw strings.
func (l *Lexer) scanString(pos Position) Token {
	quote := l.input[l.pos]
	start := l.pos
	l.advance(1)

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && quote != '`' && l.pos+1 < len(l.input) {
			l.advance(2)
			continue
		}
		l.advance(1)
		if ch == quote {
			return Token{Type: STRING, Text: l.input[start:l.pos], Pos: pos}
		}
	}

	// Unterminated string: surface the rest as ILLEGAL so the parser can
	// report a positioned error instead of looping
	return Token{Type: ILLEGAL, Text: l.input[start:l.pos], Pos: pos}
}

// Unquote returns the body of a STRING token without its surrounding
// quotes. Escape sequences are kept as written: the parser re-lexes the
// body, it does not interpret it.
func Unquote(tok Token) string {
	text := tok.Text
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
