package parser

import (
	"iter"

	"github.com/casegen/casegen/lexer"
)

// Ident is an identifier captured from the annotation source
type Ident struct {
	Name string
	Pos  lexer.Position
}

func (i Ident) String() string { return i.Name }

// Expr is a host-language expression captured verbatim. The parser records
// the raw text and its position; it never evaluates or type-checks it.
type Expr struct {
	Raw string
	Pos lexer.Position
}

func (e Expr) String() string { return e.Raw }

// TypeExpr is a host-language type captured verbatim from an angle-bracket
// binding like name<T>.
type TypeExpr struct {
	Raw string
	Pos lexer.Position
}

func (t TypeExpr) String() string { return t.Raw }

// CaseArg is one test case argument: an expression that can be assigned to
// a test parameter.
type CaseArg struct {
	Expr Expr
}

func (a CaseArg) String() string { return a.Expr.Raw }

// Fixture is a named input with positional construction arguments
type Fixture struct {
	Name       Ident
	Positional []Expr
}

// TestCase is one literal argument tuple for a single generated test,
// with an optional human-readable description.
type TestCase struct {
	Args        []CaseArg
	Description *Ident
}

// SpanStart returns the position of the first argument, or the zero
// position for an empty argument list.
func (tc *TestCase) SpanStart() lexer.Position {
	if len(tc.Args) == 0 {
		return lexer.Position{}
	}
	return tc.Args[0].Expr.Pos
}

// SpanEnd returns the position of the last argument, or the zero position
// for an empty argument list.
func (tc *TestCase) SpanEnd() lexer.Position {
	if len(tc.Args) == 0 {
		return lexer.Position{}
	}
	return tc.Args[len(tc.Args)-1].Expr.Pos
}

// ValueList is a named, non-empty list of candidate values: one axis of a
// matrix cross-product.
type ValueList struct {
	Arg    Ident
	Values []CaseArg
}

// ModifierKind discriminates the three modifier shapes
type ModifierKind int

const (
	ModifierAttr   ModifierKind = iota // bare flag: trace
	ModifierTagged                     // named group: notrace(a, b)
	ModifierType                       // type binding: default<T>
)

func (k ModifierKind) String() string {
	switch k {
	case ModifierAttr:
		return "attr"
	case ModifierTagged:
		return "tagged"
	case ModifierType:
		return "type"
	default:
		return "unknown"
	}
}

// Modifier is one entry of a modifier chain. Kind selects which of Args
// and Type is meaningful.
type Modifier struct {
	Kind ModifierKind
	Name Ident
	Args []Ident   // ModifierTagged only
	Type *TypeExpr // ModifierType only
}

// Modifiers is the ordered modifier chain of a directive. Order is
// preserved; later entries do not override earlier ones, the consumer
// interprets all of them.
type Modifiers struct {
	List []Modifier
}

// Has reports whether a modifier with the given name is present
func (m Modifiers) Has(name string) bool {
	for _, mod := range m.List {
		if mod.Name.Name == name {
			return true
		}
	}
	return false
}

// ParametrizeItem classifies one slot of a parametrize item list.
// Exactly one field is non-nil.
type ParametrizeItem struct {
	Fixture *Fixture
	ArgName *Ident
	Case    *TestCase
}

// ParametrizeData is the item list of a parametrize directive
type ParametrizeData struct {
	Items []ParametrizeItem
}

// Args yields the bare argument names in declaration order
func (d ParametrizeData) Args() iter.Seq[Ident] {
	return func(yield func(Ident) bool) {
		for _, it := range d.Items {
			if it.ArgName != nil && !yield(*it.ArgName) {
				return
			}
		}
	}
}

// Cases yields the test cases in declaration order
func (d ParametrizeData) Cases() iter.Seq[*TestCase] {
	return func(yield func(*TestCase) bool) {
		for _, it := range d.Items {
			if it.Case != nil && !yield(it.Case) {
				return
			}
		}
	}
}

// Fixtures yields the fixtures in declaration order
func (d ParametrizeData) Fixtures() iter.Seq[*Fixture] {
	return func(yield func(*Fixture) bool) {
		for _, it := range d.Items {
			if it.Fixture != nil && !yield(it.Fixture) {
				return
			}
		}
	}
}

// ParametrizeInfo is one fully parsed parametrize annotation
type ParametrizeInfo struct {
	Data      ParametrizeData
	Modifiers Modifiers
}

// MatrixItem classifies one slot of a matrix item list.
// Exactly one field is non-nil.
type MatrixItem struct {
	ValueList *ValueList
	Fixture   *Fixture
}

// MatrixValues is the item list of a matrix directive
type MatrixValues struct {
	Items []MatrixItem
}

// ListValues yields the value lists in declaration order
func (v MatrixValues) ListValues() iter.Seq[*ValueList] {
	return func(yield func(*ValueList) bool) {
		for _, it := range v.Items {
			if it.ValueList != nil && !yield(it.ValueList) {
				return
			}
		}
	}
}

// Fixtures yields the fixtures in declaration order
func (v MatrixValues) Fixtures() iter.Seq[*Fixture] {
	return func(yield func(*Fixture) bool) {
		for _, it := range v.Items {
			if it.Fixture != nil && !yield(it.Fixture) {
				return
			}
		}
	}
}

// MatrixInfo is one fully parsed matrix annotation
type MatrixInfo struct {
	Args      MatrixValues
	Modifiers Modifiers
}

// RsTestItem classifies one slot of an rstest item list. Fixtures are the
// only variant today; the wrapper keeps the set open for future ones.
type RsTestItem struct {
	Fixture *Fixture
}

// Name returns the item's name
func (it RsTestItem) Name() Ident {
	return it.Fixture.Name
}

// RsTestData is the item list of an rstest directive
type RsTestData struct {
	Items []RsTestItem
}

// Fixtures yields the fixtures in declaration order
func (d RsTestData) Fixtures() iter.Seq[*Fixture] {
	return func(yield func(*Fixture) bool) {
		for _, it := range d.Items {
			if it.Fixture != nil && !yield(it.Fixture) {
				return
			}
		}
	}
}

// RsTestInfo is one fully parsed rstest annotation
type RsTestInfo struct {
	Data      RsTestData
	Modifiers Modifiers
}

// FixtureItem classifies one slot of a fixture item list. Fixtures are the
// only variant today.
type FixtureItem struct {
	Fixture *Fixture
}

// Name returns the item's name
func (it FixtureItem) Name() Ident {
	return it.Fixture.Name
}

// FixtureData is the item list of a fixture directive
type FixtureData struct {
	Items []FixtureItem
}

// Fixtures yields the fixtures in declaration order
func (d FixtureData) Fixtures() iter.Seq[*Fixture] {
	return func(yield func(*Fixture) bool) {
		for _, it := range d.Items {
			if it.Fixture != nil && !yield(it.Fixture) {
				return
			}
		}
	}
}

// FixtureInfo is one fully parsed fixture annotation
type FixtureInfo struct {
	Data      FixtureData
	Modifiers Modifiers
}
