package parser

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/casegen/casegen/lexer"
)

// ignorePos drops source positions from tree comparisons; builders below
// construct expected nodes without them.
var ignorePos = cmpopts.IgnoreTypes(lexer.Position{})

func ident(name string) Ident {
	return Ident{Name: name}
}

func expr(raw string) Expr {
	return Expr{Raw: raw}
}

func caseArgs(raws ...string) []CaseArg {
	out := make([]CaseArg, 0, len(raws))
	for _, r := range raws {
		out = append(out, CaseArg{Expr: expr(r)})
	}
	return out
}

func fixture(name string, args ...string) *Fixture {
	f := &Fixture{Name: ident(name)}
	for _, a := range args {
		f.Positional = append(f.Positional, expr(a))
	}
	return f
}

func attr(name string) Modifier {
	return Modifier{Kind: ModifierAttr, Name: ident(name)}
}

func tagged(name string, args ...string) Modifier {
	m := Modifier{Kind: ModifierTagged, Name: ident(name)}
	for _, a := range args {
		m.Args = append(m.Args, ident(a))
	}
	return m
}

func typed(name, raw string) Modifier {
	return Modifier{Kind: ModifierType, Name: ident(name), Type: &TypeExpr{Raw: raw}}
}

// parseOne runs an item-level parser over the whole input
func parseOne[T any](t *testing.T, input string, parse func(*cursor) (T, error)) T {
	t.Helper()
	c := newCursor([]byte(input), lexer.Tokenize([]byte(input)))
	v, err := parse(c)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return v
}

func parseOneErr[T any](t *testing.T, input string, parse func(*cursor) (T, error)) error {
	t.Helper()
	c := newCursor([]byte(input), lexer.Tokenize([]byte(input)))
	_, err := parse(c)
	if err == nil {
		t.Fatalf("parse %q: expected error, got none", input)
	}
	return err
}

func TestRsTestHappyPath(t *testing.T) {
	data, err := ParseRsTest([]byte(`my_fixture(42, "other"), other([]int{42})
		:: trace :: notrace(some)`))
	if err != nil {
		t.Fatal(err)
	}

	want := RsTestInfo{
		Data: RsTestData{Items: []RsTestItem{
			{Fixture: fixture("my_fixture", "42", `"other"`)},
			{Fixture: fixture("other", "[]int{42}")},
		}},
		Modifiers: Modifiers{List: []Modifier{
			attr("trace"),
			tagged("notrace", "some"),
		}},
	}

	if diff := cmp.Diff(want, data, ignorePos); diff != "" {
		t.Errorf("rstest mismatch (-want +got):\n%s", diff)
	}
}

func TestRsTestEmptyFixtures(t *testing.T) {
	data, err := ParseRsTest([]byte("::trace::notrace(some)"))
	if err != nil {
		t.Fatal(err)
	}

	want := RsTestInfo{
		Modifiers: Modifiers{List: []Modifier{
			attr("trace"),
			tagged("notrace", "some"),
		}},
	}

	if diff := cmp.Diff(want, data, ignorePos); diff != "" {
		t.Errorf("rstest mismatch (-want +got):\n%s", diff)
	}
}

func TestRsTestEmptyModifiers(t *testing.T) {
	data, err := ParseRsTest([]byte(`my_fixture(42, "other")`))
	if err != nil {
		t.Fatal(err)
	}

	want := RsTestInfo{
		Data: RsTestData{Items: []RsTestItem{
			{Fixture: fixture("my_fixture", "42", `"other"`)},
		}},
	}

	if diff := cmp.Diff(want, data, ignorePos); diff != "" {
		t.Errorf("rstest mismatch (-want +got):\n%s", diff)
	}
}

func TestRsTestEmptyInputIsDefault(t *testing.T) {
	data, err := ParseRsTest(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(RsTestInfo{}, data); diff != "" {
		t.Errorf("expected all-default instance (-want +got):\n%s", diff)
	}
}

func TestFixtureDirectiveHappyPath(t *testing.T) {
	data, err := ParseFixture([]byte(`my_fixture(42, "other"), other([]int{42})
		:: trace :: notrace(some)`))
	if err != nil {
		t.Fatal(err)
	}

	want := FixtureInfo{
		Data: FixtureData{Items: []FixtureItem{
			{Fixture: fixture("my_fixture", "42", `"other"`)},
			{Fixture: fixture("other", "[]int{42}")},
		}},
		Modifiers: Modifiers{List: []Modifier{
			attr("trace"),
			tagged("notrace", "some"),
		}},
	}

	if diff := cmp.Diff(want, data, ignorePos); diff != "" {
		t.Errorf("fixture info mismatch (-want +got):\n%s", diff)
	}
}

func TestFixtureDirectiveAcceptsTrailingComma(t *testing.T) {
	data, err := ParseFixture([]byte("first(42),"))
	if err != nil {
		t.Fatal(err)
	}
	fixtures := slices.Collect(data.Data.Fixtures())
	if len(fixtures) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(fixtures))
	}
	if got := fixtures[0].Name.Name; got != "first" {
		t.Errorf("fixture name = %q, want %q", got, "first")
	}
}

func TestItemNameAccessors(t *testing.T) {
	rstest, err := ParseRsTest([]byte("inner(42)"))
	if err != nil {
		t.Fatal(err)
	}
	if got := rstest.Data.Items[0].Name().Name; got != "inner" {
		t.Errorf("rstest item name = %q, want %q", got, "inner")
	}

	fx, err := ParseFixture([]byte("outer(42)"))
	if err != nil {
		t.Fatal(err)
	}
	if got := fx.Data.Items[0].Name().Name; got != "outer" {
		t.Errorf("fixture item name = %q, want %q", got, "outer")
	}
}

func TestParseErrorRendersSnippet(t *testing.T) {
	_, err := ParseRsTest([]byte("my_fixture(42"))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "-->") || !strings.Contains(msg, "^") {
		t.Errorf("error should carry a caret snippet, got:\n%s", msg)
	}
}

func TestTelemetryOption(t *testing.T) {
	var tel Telemetry
	if _, err := ParseRsTest([]byte("f(42)"), WithTelemetry(&tel)); err != nil {
		t.Fatal(err)
	}
	if tel.TokenCount == 0 {
		t.Error("telemetry should count tokens")
	}
	if tel.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", tel.ErrorCount)
	}

	var telErr Telemetry
	if _, err := ParseRsTest([]byte("f(42"), WithTelemetry(&telErr)); err == nil {
		t.Fatal("expected error")
	}
	if telErr.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", telErr.ErrorCount)
	}
}
