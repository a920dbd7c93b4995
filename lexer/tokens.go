package lexer

// TokenType represents lexical tokens of the annotation argument language
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Structure
	COLONCOLON // :: - separates modifiers and case descriptions
	ARROW      // => - introduces a value list
	COMMA      // ,
	COLON      // :
	EQUALS     // =
	DOT        // .
	SEMICOLON  // ;

	// Brackets and braces
	LPAREN  // (
	RPAREN  // )
	LSQUARE // [
	RSQUARE // ]
	LBRACE  // {
	RBRACE  // }

	// Angle brackets. Kept as single-char tokens with no <= / >= / >> pairs:
	// type bindings like name<T> must match brackets without splitting
	// multi-char operators.
	LT // <
	GT // >

	// Operators that may occur inside captured expressions
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /
	MODULO   // %
	AMP      // &
	PIPE     // |
	NOT      // !
	EQ_EQ    // ==
	NOT_EQ   // !=
	AND_AND  // &&
	OR_OR    // ||

	// Literals and content
	IDENTIFIER // argument names, fixture names, modifier names
	INTEGER    // 123, 0
	FLOAT      // 3.14, 1e6, 2.5e-3
	STRING     // "string", 'c' or `raw string` content, quotes included
	BOOLEAN    // true, false
)

// Token represents a lexical token
type Token struct {
	Type TokenType
	Text string
	Pos  Position
}

// String returns the token text (for testing and debugging)
func (t Token) String() string {
	return t.Text
}

// End returns the byte offset just past the token text.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Text)
}

// Position represents a position in the annotation source
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case COLONCOLON:
		return "COLONCOLON"
	case ARROW:
		return "ARROW"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case EQUALS:
		return "EQUALS"
	case DOT:
		return "DOT"
	case SEMICOLON:
		return "SEMICOLON"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LSQUARE:
		return "LSQUARE"
	case RSQUARE:
		return "RSQUARE"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case MODULO:
		return "MODULO"
	case AMP:
		return "AMP"
	case PIPE:
		return "PIPE"
	case NOT:
		return "NOT"
	case EQ_EQ:
		return "EQ_EQ"
	case NOT_EQ:
		return "NOT_EQ"
	case AND_AND:
		return "AND_AND"
	case OR_OR:
		return "OR_OR"
	case IDENTIFIER:
		return "IDENTIFIER"
	case INTEGER:
		return "INTEGER"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case BOOLEAN:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// Keywords maps string literals to their corresponding token types.
// The `case` marker is intentionally absent: it is an ordinary identifier
// that the parser recognizes by value, so it stays usable as an argument
// name.
var Keywords = map[string]TokenType{
	"true":  BOOLEAN,
	"false": BOOLEAN,
}

// SingleCharTokens maps single characters to their token types
var SingleCharTokens = map[byte]TokenType{
	',': COMMA,
	':': COLON,
	'=': EQUALS,
	'.': DOT,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'[': LSQUARE,
	']': RSQUARE,
	'{': LBRACE,
	'}': RBRACE,
	'<': LT,
	'>': GT,
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
	'/': DIVIDE,
	'%': MODULO,
	'&': AMP,
	'|': PIPE,
	'!': NOT,
}

// TwoCharTokens maps two-character sequences to their token types
var TwoCharTokens = map[string]TokenType{
	"::": COLONCOLON,
	"=>": ARROW,
	"==": EQ_EQ,
	"!=": NOT_EQ,
	"&&": AND_AND,
	"||": OR_OR,
}
