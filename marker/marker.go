// Package marker extracts casegen annotations from Go source files.
// An annotation is a comment of the form
//
//	//casegen:parametrize arg, case(42), case(24)
//
// placed above a test template function. The argument text may continue
// over following //-comment lines. The scanner collects the raw argument
// text without interpreting it; parsing belongs to the parser package.
package marker

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/casegen/casegen/lexer"
)

const prefix = "//casegen:"

// Kinds understood by the generator, in the annotation's kind position
const (
	KindParametrize = "parametrize"
	KindMatrix      = "matrix"
	KindRsTest      = "rstest"
	KindFixture     = "fixture"
)

// Marker is one annotation occurrence in a source file
type Marker struct {
	Kind string
	Args string // raw argument text, continuation lines joined
	Func string // name of the function the annotation precedes, "" when detached
	File string
	Line int // 1-based line of the marker comment
}

// Pos returns the marker's location in the file
func (m Marker) Pos() lexer.Position {
	return lexer.Position{Line: m.Line, Column: 1}
}

// KnownKind reports whether the marker's kind names a directive the
// generator understands.
func KnownKind(kind string) bool {
	switch kind {
	case KindParametrize, KindMatrix, KindRsTest, KindFixture:
		return true
	}
	return false
}

// ScanFile scans one source file for annotations
func ScanFile(path string) ([]Marker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	defer f.Close()

	markers, err := scan(bufio.NewScanner(f), path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return markers, nil
}

// ScanSource scans in-memory source, attributing markers to name
func ScanSource(source []byte, name string) ([]Marker, error) {
	return scan(bufio.NewScanner(strings.NewReader(string(source))), name)
}

func scan(sc *bufio.Scanner, file string) ([]Marker, error) {
	var markers []Marker
	var open *Marker // marker still collecting continuation lines

	line := 0
	for sc.Scan() {
		line++
		trimmed := strings.TrimSpace(sc.Text())

		if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
			if open != nil {
				markers = append(markers, *open)
			}
			kind, args, _ := strings.Cut(rest, " ")
			if kind == "" {
				return nil, fmt.Errorf("line %d: marker has no kind", line)
			}
			open = &Marker{
				Kind: kind,
				Args: strings.TrimSpace(args),
				File: file,
				Line: line,
			}
			continue
		}

		if open == nil {
			continue
		}

		// Plain comment lines extend the open marker's argument text.
		// Anything else closes it; a function header also names it.
		if body, ok := strings.CutPrefix(trimmed, "//"); ok {
			open.Args = joinArgs(open.Args, strings.TrimSpace(body))
			continue
		}
		if name, ok := funcName(trimmed); ok {
			open.Func = name
		}
		if trimmed != "" {
			markers = append(markers, *open)
			open = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if open != nil {
		markers = append(markers, *open)
	}
	return markers, nil
}

func joinArgs(head, tail string) string {
	if head == "" {
		return tail
	}
	if tail == "" {
		return head
	}
	return head + " " + tail
}

// funcName extracts the identifier from a `func Name(` header. Methods
// are not templates, so a receiver disqualifies the line.
func funcName(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "func ")
	if !ok || strings.HasPrefix(rest, "(") {
		return "", false
	}
	name, _, ok := strings.Cut(rest, "(")
	name, _, _ = strings.Cut(name, "[") // drop a type parameter list
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
