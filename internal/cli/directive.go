package cli

import (
	"fmt"

	"github.com/casegen/casegen/fingerprint"
	"github.com/casegen/casegen/gen"
	"github.com/casegen/casegen/marker"
	"github.com/casegen/casegen/parser"
)

// Directive is one parsed marker, uniform across the four annotation
// kinds so the commands can treat them alike.
type Directive struct {
	Marker    marker.Marker
	Modifiers parser.Modifiers
	Canonical *fingerprint.CanonicalDirective

	expand func(fn string) ([]gen.Test, error)
}

// parseMarker parses a marker's argument text according to its kind
func parseMarker(m marker.Marker, opts ...parser.Option) (*Directive, error) {
	d := &Directive{Marker: m}
	source := []byte(m.Args)

	switch m.Kind {
	case marker.KindParametrize:
		info, err := parser.ParseParametrize(source, opts...)
		if err != nil {
			return nil, err
		}
		d.Modifiers = info.Modifiers
		d.Canonical = fingerprint.Parametrize(info)
		d.expand = func(fn string) ([]gen.Test, error) { return gen.Parametrize(fn, info) }
	case marker.KindMatrix:
		info, err := parser.ParseMatrix(source, opts...)
		if err != nil {
			return nil, err
		}
		d.Modifiers = info.Modifiers
		d.Canonical = fingerprint.Matrix(info)
		d.expand = func(fn string) ([]gen.Test, error) { return gen.Matrix(fn, info) }
	case marker.KindRsTest:
		info, err := parser.ParseRsTest(source, opts...)
		if err != nil {
			return nil, err
		}
		d.Modifiers = info.Modifiers
		d.Canonical = fingerprint.RsTest(info)
		d.expand = singleTest
	case marker.KindFixture:
		info, err := parser.ParseFixture(source, opts...)
		if err != nil {
			return nil, err
		}
		d.Modifiers = info.Modifiers
		d.Canonical = fingerprint.Fixture(info)
		d.expand = singleTest
	default:
		return nil, fmt.Errorf("unknown annotation kind %q", m.Kind)
	}
	return d, nil
}

func singleTest(fn string) ([]gen.Test, error) {
	return []gen.Test{{Name: fn}}, nil
}

// FuncName returns the template function the marker precedes, with a
// placeholder for detached markers so expansion still produces names.
func (d *Directive) FuncName() string {
	if d.Marker.Func != "" {
		return d.Marker.Func
	}
	return "Test"
}

// Expand produces the generated tests for this directive
func (d *Directive) Expand() ([]gen.Test, error) {
	return d.expand(d.FuncName())
}

// parseFile scans a file and parses every marker in it
func parseFile(path string, opts ...parser.Option) ([]*Directive, error) {
	markers, err := marker.ScanFile(path)
	if err != nil {
		return nil, err
	}
	directives := make([]*Directive, 0, len(markers))
	for _, m := range markers {
		d, err := parseMarker(m, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", m.File, m.Line, err)
		}
		directives = append(directives, d)
	}
	return directives, nil
}
