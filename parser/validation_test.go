package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKnownModifiers(t *testing.T) {
	mods := parseOne(t, "trace :: notrace(a, b) :: default<u32>", parseModifierChain)

	assert.Empty(t, mods.Validate())
}

func TestValidateUnknownModifierSuggests(t *testing.T) {
	mods := parseOne(t, "trase", parseModifierChain)

	warnings := mods.Validate()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, `unknown modifier "trase"`)
	assert.Equal(t, "trace", warnings[0].Suggestion)
	assert.Contains(t, warnings[0].String(), `did you mean "trace"?`)
}

func TestValidateUnknownModifierNoCandidate(t *testing.T) {
	mods := parseOne(t, "completely_unrelated", parseModifierChain)

	warnings := mods.Validate()
	require.Len(t, warnings, 1)
	assert.Empty(t, warnings[0].Suggestion)
	assert.Equal(t, warnings[0].Message, warnings[0].String())
}

func TestValidateWrongShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trace takes no arguments",
			input: "trace(some_arg)",
			want:  `modifier "trace" expects the attr form, got tagged`,
		},
		{
			name:  "notrace needs argument names",
			input: "notrace",
			want:  `modifier "notrace" expects the tagged form, got attr`,
		},
		{
			name:  "default needs a type binding",
			input: "default(u32)",
			want:  `modifier "default" expects the type form, got tagged`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := parseOne(t, tt.input, parseModifierChain)
			warnings := mods.Validate()
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.want, warnings[0].Message)
		})
	}
}

func TestValidateExtraNamesAllowAnyShape(t *testing.T) {
	mods := parseOne(t, "custom :: custom(a) :: custom<T>", parseModifierChain)

	assert.NotEmpty(t, mods.Validate())
	assert.Empty(t, mods.Validate("custom"))
}

func TestValidateWarningCarriesPosition(t *testing.T) {
	mods := parseOne(t, "trace :: bogus", parseModifierChain)

	warnings := mods.Validate()
	require.Len(t, warnings, 1)
	assert.Equal(t, 10, warnings[0].Pos.Column)
}
