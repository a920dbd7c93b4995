package parser

import (
	"time"

	"github.com/casegen/casegen/lexer"
)

// caseKeyword anchors a test case declaration. It is an ordinary
// identifier, not a reserved word: without a trailing parenthesis group it
// still names a plain argument.
const caseKeyword = "case"

// parseFixture parses `name(expr, ...)`. The parenthesis group is
// required; the positional list may be empty and tolerates a trailing
// comma.
func parseFixture(c *cursor) (*Fixture, error) {
	name, err := parseIdent(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var positional []Expr
	for !c.at(lexer.RPAREN) {
		e, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		positional = append(positional, e)
		if _, ok := c.tryEat(lexer.COMMA); !ok {
			break
		}
	}
	if _, err := c.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &Fixture{Name: name, Positional: positional}, nil
}

// parseTestCase parses `case(args...)` or `case::description(args...)`
func parseTestCase(c *cursor) (*TestCase, error) {
	tok := c.current()
	name, err := parseIdent(c)
	if err != nil {
		return nil, err
	}
	if name.Name != caseKeyword {
		return nil, c.errorAt(ErrorSyntax, tok, "expected a test case")
	}

	var description *Ident
	if _, ok := c.tryEat(lexer.COLONCOLON); ok {
		d, err := parseIdent(c)
		if err != nil {
			return nil, err
		}
		description = &d
	}

	if _, err := c.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []CaseArg
	for !c.at(lexer.RPAREN) {
		a, err := parseCaseArg(c)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if _, ok := c.tryEat(lexer.COMMA); !ok {
			break
		}
	}
	if _, err := c.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &TestCase{Args: args, Description: description}, nil
}

// parseValueList parses `name => [expr, ...]`. An empty bracket pair is a
// construction error: the list parsed structurally but an empty axis can
// never produce a test run.
func parseValueList(c *cursor) (*ValueList, error) {
	arg, err := parseIdent(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.ARROW, "'=>'"); err != nil {
		return nil, err
	}
	open, err := c.expect(lexer.LSQUARE, "square brackets")
	if err != nil {
		return nil, err
	}
	var values []CaseArg
	for !c.at(lexer.RSQUARE) {
		a, err := parseCaseArg(c)
		if err != nil {
			return nil, err
		}
		values = append(values, a)
		if _, ok := c.tryEat(lexer.COMMA); !ok {
			break
		}
	}
	if _, err := c.expect(lexer.RSQUARE, "']'"); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, c.errorAt(ErrorEmptyList, open, "values list should not be empty")
	}
	return &ValueList{Arg: arg, Values: values}, nil
}

// parseVectorTrailing parses a comma-separated item list, stopping at end
// of input or at the '::' introducing the modifier chain. An empty slot
// (trailing comma, doubled separators) is dropped silently; a genuinely
// unparsable slot aborts with the item parser's error.
func parseVectorTrailing[T any](c *cursor, parse func(*cursor) (T, error)) ([]T, error) {
	var items []T
	for !c.atEnd() && !c.at(lexer.COLONCOLON) {
		if _, ok := c.tryEat(lexer.COMMA); ok {
			// empty slot, drop it
			continue
		}
		it, err := parse(c)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		if _, ok := c.tryEat(lexer.COMMA); !ok {
			break
		}
	}
	return items, nil
}

// parseParametrizeItem classifies one parametrize slot. Alternatives are
// tried on forks in fixed priority order: a test case is anchored by the
// `case` keyword, a fixture needs a trailing parenthesis group that a bare
// argument name lacks, so the order never misclassifies a plain name.
func parseParametrizeItem(c *cursor) (ParametrizeItem, error) {
	if tc, ok := speculate(c, parseTestCase); ok {
		return ParametrizeItem{Case: tc}, nil
	}
	if fx, ok := speculate(c, parseFixture); ok {
		return ParametrizeItem{Fixture: fx}, nil
	}
	if id, ok := speculate(c, parseIdent); ok {
		return ParametrizeItem{ArgName: &id}, nil
	}
	// No alternative matched; none of their errors is more authoritative
	// than another here, so report generically.
	return ParametrizeItem{}, c.invalidError("cannot parse parametrize info")
}

// parseMatrixItem classifies one matrix slot. A '=>' two tokens ahead
// always means a value list, whatever else the name could be.
func parseMatrixItem(c *cursor) (MatrixItem, error) {
	if c.peek(1).Type == lexer.ARROW {
		vl, err := parseValueList(c)
		if err != nil {
			return MatrixItem{}, err
		}
		return MatrixItem{ValueList: vl}, nil
	}
	if fx, ok := speculate(c, parseFixture); ok {
		return MatrixItem{Fixture: fx}, nil
	}
	return MatrixItem{}, c.invalidError("cannot parse matrix info")
}

func parseRsTestItem(c *cursor) (RsTestItem, error) {
	fx, err := parseFixture(c)
	if err != nil {
		return RsTestItem{}, err
	}
	return RsTestItem{Fixture: fx}, nil
}

func parseFixtureItem(c *cursor) (FixtureItem, error) {
	fx, err := parseFixture(c)
	if err != nil {
		return FixtureItem{}, err
	}
	return FixtureItem{Fixture: fx}, nil
}

// parseDirective is the shared shape of all four composite grammars:
// `[items] [:: modifiers]`. Empty input yields the all-default instance;
// input starting with '::' has no items; the modifier chain, when present,
// must consume the rest.
func parseDirective[D any](c *cursor, parseData func(*cursor) (D, error)) (D, Modifiers, error) {
	var data D
	var mods Modifiers

	if c.atEnd() {
		return data, mods, nil
	}

	if !c.at(lexer.COLONCOLON) {
		d, err := parseData(c)
		if err != nil {
			return data, mods, err
		}
		data = d
		if !c.atEnd() && !c.at(lexer.COLONCOLON) {
			return data, mods, c.unexpectedError("',' or '::'")
		}
	}

	if _, ok := c.tryEat(lexer.COLONCOLON); ok {
		m, err := parseModifierChain(c)
		if err != nil {
			return data, mods, err
		}
		mods = m
	}
	if !c.atEnd() {
		return data, mods, c.unexpectedError("'::'")
	}
	return data, mods, nil
}

// beginParse lexes the source and sets up the cursor and telemetry clock
func beginParse(source []byte, cfg *config) (*cursor, time.Time, time.Time) {
	start := time.Now()
	tokens := lexer.Tokenize(source)
	lexDone := time.Now()
	return newCursor(source, tokens), start, lexDone
}

// finishParse flushes committed notices and fills telemetry
func finishParse(c *cursor, cfg *config, start, lexDone time.Time, err error) {
	if cfg.telemetry != nil {
		cfg.telemetry.TokenCount = len(c.tokens)
		cfg.telemetry.LexTime = lexDone.Sub(start)
		cfg.telemetry.ParseTime = time.Since(lexDone)
		if err != nil {
			cfg.telemetry.ErrorCount = 1
		}
	}
	if cfg.notices != nil {
		for _, n := range c.notices {
			cfg.notices.Emit(n)
		}
	}
}

// ParseParametrize parses the argument list of a parametrize annotation
func ParseParametrize(source []byte, opts ...Option) (ParametrizeInfo, error) {
	cfg := newConfig(opts)
	c, start, lexDone := beginParse(source, cfg)
	data, mods, err := parseDirective(c, func(c *cursor) (ParametrizeData, error) {
		items, err := parseVectorTrailing(c, parseParametrizeItem)
		return ParametrizeData{Items: items}, err
	})
	finishParse(c, cfg, start, lexDone, err)
	if err != nil {
		return ParametrizeInfo{}, err
	}
	return ParametrizeInfo{Data: data, Modifiers: mods}, nil
}

// ParseMatrix parses the argument list of a matrix annotation
func ParseMatrix(source []byte, opts ...Option) (MatrixInfo, error) {
	cfg := newConfig(opts)
	c, start, lexDone := beginParse(source, cfg)
	args, mods, err := parseDirective(c, func(c *cursor) (MatrixValues, error) {
		items, err := parseVectorTrailing(c, parseMatrixItem)
		return MatrixValues{Items: items}, err
	})
	finishParse(c, cfg, start, lexDone, err)
	if err != nil {
		return MatrixInfo{}, err
	}
	return MatrixInfo{Args: args, Modifiers: mods}, nil
}

// ParseRsTest parses the argument list of an rstest annotation
func ParseRsTest(source []byte, opts ...Option) (RsTestInfo, error) {
	cfg := newConfig(opts)
	c, start, lexDone := beginParse(source, cfg)
	data, mods, err := parseDirective(c, func(c *cursor) (RsTestData, error) {
		items, err := parseVectorTrailing(c, parseRsTestItem)
		return RsTestData{Items: items}, err
	})
	finishParse(c, cfg, start, lexDone, err)
	if err != nil {
		return RsTestInfo{}, err
	}
	return RsTestInfo{Data: data, Modifiers: mods}, nil
}

// ParseFixture parses the argument list of a fixture annotation
func ParseFixture(source []byte, opts ...Option) (FixtureInfo, error) {
	cfg := newConfig(opts)
	c, start, lexDone := beginParse(source, cfg)
	data, mods, err := parseDirective(c, func(c *cursor) (FixtureData, error) {
		items, err := parseVectorTrailing(c, parseFixtureItem)
		return FixtureData{Items: items}, err
	})
	finishParse(c, cfg, start, lexDone, err)
	if err != nil {
		return FixtureInfo{}, err
	}
	return FixtureInfo{Data: data, Modifiers: mods}, nil
}
