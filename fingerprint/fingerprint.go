// Package fingerprint derives a stable identity for a parsed annotation.
// The generator uses it as a cache key: an unchanged fingerprint means the
// generated tests for that annotation are still valid.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/casegen/casegen/parser"
)

// CanonicalDirective is the intermediate form for deterministic hashing.
// It keeps only content: raw expression text, names, and shapes. Positions
// are dropped so moving an annotation or reflowing its whitespace does not
// invalidate the cache.
type CanonicalDirective struct {
	Version   uint8 // canonical format version
	Kind      string
	Items     []CanonicalItem
	Modifiers []CanonicalModifier
}

// CanonicalItem is a union over the slot kinds of all four directives.
// Type discriminates; unused fields stay at their zero value.
type CanonicalItem struct {
	Type        string // "arg", "fixture", "case", "values"
	Name        string
	Exprs       []string
	Description string
}

// CanonicalModifier represents one modifier chain entry in canonical form
type CanonicalModifier struct {
	Kind uint8
	Name string
	Args []string
	Type string
}

// Parametrize builds the canonical form of a parametrize annotation
func Parametrize(info parser.ParametrizeInfo) *CanonicalDirective {
	cd := newDirective("parametrize", info.Modifiers)
	for _, item := range info.Data.Items {
		switch {
		case item.ArgName != nil:
			cd.Items = append(cd.Items, CanonicalItem{Type: "arg", Name: item.ArgName.Name})
		case item.Fixture != nil:
			cd.Items = append(cd.Items, canonicalFixture(item.Fixture))
		case item.Case != nil:
			ci := CanonicalItem{Type: "case", Exprs: rawArgs(item.Case.Args)}
			if item.Case.Description != nil {
				ci.Description = item.Case.Description.Name
			}
			cd.Items = append(cd.Items, ci)
		}
	}
	return cd
}

// Matrix builds the canonical form of a matrix annotation
func Matrix(info parser.MatrixInfo) *CanonicalDirective {
	cd := newDirective("matrix", info.Modifiers)
	for _, item := range info.Args.Items {
		switch {
		case item.ValueList != nil:
			cd.Items = append(cd.Items, CanonicalItem{
				Type:  "values",
				Name:  item.ValueList.Arg.Name,
				Exprs: rawArgs(item.ValueList.Values),
			})
		case item.Fixture != nil:
			cd.Items = append(cd.Items, canonicalFixture(item.Fixture))
		}
	}
	return cd
}

// RsTest builds the canonical form of an rstest annotation
func RsTest(info parser.RsTestInfo) *CanonicalDirective {
	cd := newDirective("rstest", info.Modifiers)
	for _, item := range info.Data.Items {
		cd.Items = append(cd.Items, canonicalFixture(item.Fixture))
	}
	return cd
}

// Fixture builds the canonical form of a fixture annotation
func Fixture(info parser.FixtureInfo) *CanonicalDirective {
	cd := newDirective("fixture", info.Modifiers)
	for _, item := range info.Data.Items {
		cd.Items = append(cd.Items, canonicalFixture(item.Fixture))
	}
	return cd
}

func newDirective(kind string, mods parser.Modifiers) *CanonicalDirective {
	cd := &CanonicalDirective{
		Version: 1,
		Kind:    kind,
	}
	for _, mod := range mods.List {
		cm := CanonicalModifier{
			Kind: uint8(mod.Kind),
			Name: mod.Name.Name,
		}
		for _, arg := range mod.Args {
			cm.Args = append(cm.Args, arg.Name)
		}
		if mod.Type != nil {
			cm.Type = mod.Type.Raw
		}
		cd.Modifiers = append(cd.Modifiers, cm)
	}
	return cd
}

func canonicalFixture(fx *parser.Fixture) CanonicalItem {
	ci := CanonicalItem{Type: "fixture", Name: fx.Name.Name}
	for _, e := range fx.Positional {
		ci.Exprs = append(ci.Exprs, e.Raw)
	}
	return ci
}

func rawArgs(args []parser.CaseArg) []string {
	raws := make([]string, len(args))
	for i, a := range args {
		raws[i] = a.Expr.Raw
	}
	return raws
}

// MarshalBinary produces deterministic CBOR encoding of the canonical
// directive, byte-for-byte stable across runs.
func (cd *CanonicalDirective) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	// Type alias to avoid infinite recursion: CBOR would call
	// MarshalBinary again otherwise.
	type canonicalDirectiveAlias CanonicalDirective
	alias := (*canonicalDirectiveAlias)(cd)

	data, err := encMode.Marshal(alias)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Hash computes the SHA-256 hash of the canonical directive
func (cd *CanonicalDirective) Hash() ([32]byte, error) {
	data, err := cd.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// Hex returns the hash as a lowercase hex string
func (cd *CanonicalDirective) Hex() (string, error) {
	sum, err := cd.Hash()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}
