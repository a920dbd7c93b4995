package parser

import (
	"github.com/casegen/casegen/lexer"
)

func isLiteral(tt lexer.TokenType) bool {
	switch tt {
	case lexer.INTEGER, lexer.FLOAT, lexer.STRING, lexer.BOOLEAN:
		return true
	default:
		return false
	}
}

// parseModifier parses one modifier chain entry: a bare flag, a tagged
// group of flags, or a type binding. A name=value pair is not a supported
// form and is rejected outright.
func parseModifier(c *cursor) (Modifier, error) {
	// Type binding is decided by the token two positions ahead: name '<'
	if c.peek(1).Type == lexer.LT {
		name, err := parseIdent(c)
		if err != nil {
			return Modifier{}, err
		}
		if _, err := c.expect(lexer.LT, "'<'"); err != nil {
			return Modifier{}, err
		}
		typ, err := parseTypeExpr(c)
		if err != nil {
			return Modifier{}, err
		}
		if _, err := c.expect(lexer.GT, "'>'"); err != nil {
			return Modifier{}, err
		}
		return Modifier{Kind: ModifierType, Name: name, Type: &typ}, nil
	}

	if tok := c.current(); isLiteral(tok.Type) {
		return Modifier{}, c.errorAt(ErrorInvalid, tok, "unexpected literal")
	}
	name, err := parseIdent(c)
	if err != nil {
		return Modifier{}, err
	}
	if tok := c.current(); tok.Type == lexer.EQUALS {
		return Modifier{}, c.errorAt(ErrorInvalid, tok, "invalid attribute")
	}

	if _, ok := c.tryEat(lexer.LPAREN); !ok {
		return Modifier{Kind: ModifierAttr, Name: name}, nil
	}

	// Tagged group: every inner item must be a bare identifier
	var args []Ident
	for !c.at(lexer.RPAREN) {
		tok := c.current()
		if isLiteral(tok.Type) {
			return Modifier{}, c.errorAt(ErrorInvalid, tok, "unexpected literal")
		}
		id, err := parseIdent(c)
		if err != nil {
			return Modifier{}, err
		}
		if c.at(lexer.LPAREN) || c.at(lexer.EQUALS) || c.at(lexer.LT) {
			return Modifier{}, c.errorAt(ErrorInvalid, tok, "should be an identifier")
		}
		args = append(args, id)
		if _, ok := c.tryEat(lexer.COMMA); !ok {
			break
		}
	}
	if _, err := c.expect(lexer.RPAREN, "')'"); err != nil {
		return Modifier{}, err
	}
	return Modifier{Kind: ModifierTagged, Name: name, Args: args}, nil
}

// parseModifierChain parses a '::'-separated modifier sequence until input
// is exhausted. The chain is normally the suffix of a directive; a
// trailing separator before end of input is tolerated.
func parseModifierChain(c *cursor) (Modifiers, error) {
	var mods Modifiers
	if c.atEnd() {
		return mods, nil
	}
	for {
		mod, err := parseModifier(c)
		if err != nil {
			return Modifiers{}, err
		}
		mods.List = append(mods.List, mod)
		if _, ok := c.tryEat(lexer.COLONCOLON); !ok {
			return mods, nil
		}
		if c.atEnd() {
			return mods, nil
		}
	}
}
