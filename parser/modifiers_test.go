package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModifierOneSimpleIdent(t *testing.T) {
	mods := parseOne(t, "my_ident", parseModifierChain)

	want := Modifiers{List: []Modifier{attr("my_ident")}}
	if diff := cmp.Diff(want, mods, ignorePos); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestModifierOneSimpleGroup(t *testing.T) {
	mods := parseOne(t, "group_tag(first, second)", parseModifierChain)

	want := Modifiers{List: []Modifier{tagged("group_tag", "first", "second")}}
	if diff := cmp.Diff(want, mods, ignorePos); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestModifierOneSimpleType(t *testing.T) {
	mods := parseOne(t, "type_tag<map[string][]int>", parseModifierChain)

	want := Modifiers{List: []Modifier{typed("type_tag", "map[string][]int")}}
	if diff := cmp.Diff(want, mods, ignorePos); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestModifierNestedAngleType(t *testing.T) {
	mods := parseOne(t, "kind<pair<K, V>>", parseModifierChain)

	want := Modifiers{List: []Modifier{typed("kind", "pair<K, V>")}}
	if diff := cmp.Diff(want, mods, ignorePos); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestModifierChainIntegrated(t *testing.T) {
	mods := parseOne(t, "simple :: tagged(a, b) :: kind<(u32, T)> :: more(c, d)", parseModifierChain)

	want := Modifiers{List: []Modifier{
		attr("simple"),
		tagged("tagged", "a", "b"),
		typed("kind", "(u32, T)"),
		tagged("more", "c", "d"),
	}}
	if diff := cmp.Diff(want, mods, ignorePos); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestModifierChainToleratesTrailingSeparator(t *testing.T) {
	mods := parseOne(t, "trace ::", parseModifierChain)

	want := Modifiers{List: []Modifier{attr("trace")}}
	if diff := cmp.Diff(want, mods, ignorePos); diff != "" {
		t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestModifierInvalidShapes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "name equals value is not supported",
			input:   "name = 42",
			message: "invalid attribute",
		},
		{
			name:    "literal in place of a modifier",
			input:   "42",
			message: "unexpected literal",
		},
		{
			name:    "literal inside tagged group",
			input:   "tag(42)",
			message: "unexpected literal",
		},
		{
			name:    "string literal inside tagged group",
			input:   `tag("first")`,
			message: "unexpected literal",
		},
		{
			name:    "nested group inside tagged group",
			input:   "tag(inner(a))",
			message: "should be an identifier",
		},
		{
			name:    "unclosed type binding",
			input:   "kind<(u32, T)",
			message: "unbalanced angle brackets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseOneErr(t, tt.input, parseModifierChain)
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error = %v, want %q", err, tt.message)
			}
		})
	}
}

func TestModifiersHas(t *testing.T) {
	mods := parseOne(t, "trace :: notrace(a)", parseModifierChain)

	if !mods.Has("trace") || !mods.Has("notrace") {
		t.Error("Has should find parsed modifiers")
	}
	if mods.Has("missing") {
		t.Error("Has should not find absent modifiers")
	}
}
