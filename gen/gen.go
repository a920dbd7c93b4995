// Package gen expands parsed annotations into the set of tests the
// generator would emit. It resolves names and argument bindings only;
// emitting Go source is the generator's own concern.
package gen

import (
	"fmt"

	"github.com/casegen/casegen/parser"
)

// Test is one expanded test: its generated name and the raw expression
// bound to each argument.
type Test struct {
	Name string
	Args map[string]string
}

// Parametrize expands a parametrize annotation for the template function
// fn. Each case yields one test named fn_case_<index> or, when the case
// carries a description, fn_case_<description>. Indices are 1-based and
// zero-padded to the width of the case count so generated names sort in
// declaration order.
func Parametrize(fn string, info parser.ParametrizeInfo) ([]Test, error) {
	var argNames []string
	for arg := range info.Data.Args() {
		argNames = append(argNames, arg.Name)
	}

	var cases []*parser.TestCase
	for tc := range info.Data.Cases() {
		cases = append(cases, tc)
	}
	if len(cases) == 0 {
		return []Test{{Name: fn}}, nil
	}

	width := len(fmt.Sprint(len(cases)))
	tests := make([]Test, len(cases))
	for i, tc := range cases {
		if len(tc.Args) != len(argNames) {
			return nil, fmt.Errorf("case %d has %d values for %d arguments", i+1, len(tc.Args), len(argNames))
		}
		name := fmt.Sprintf("%s_case_%0*d", fn, width, i+1)
		if tc.Description != nil {
			name = fmt.Sprintf("%s_case_%s", fn, tc.Description.Name)
		}
		args := make(map[string]string, len(argNames))
		for j, argName := range argNames {
			args[argName] = tc.Args[j].Expr.Raw
		}
		tests[i] = Test{Name: name, Args: args}
	}
	return tests, nil
}

// Matrix expands a matrix annotation into the cross-product of its value
// lists. Each test name carries one _<arg>_<index> component per list, in
// declaration order, with the first list varying slowest.
func Matrix(fn string, info parser.MatrixInfo) ([]Test, error) {
	var lists []*parser.ValueList
	for vl := range info.Args.ListValues() {
		lists = append(lists, vl)
	}
	if len(lists) == 0 {
		return []Test{{Name: fn}}, nil
	}

	tests := []Test{{Name: fn, Args: map[string]string{}}}
	for _, vl := range lists {
		width := len(fmt.Sprint(len(vl.Values)))
		next := make([]Test, 0, len(tests)*len(vl.Values))
		for _, base := range tests {
			for i, value := range vl.Values {
				args := make(map[string]string, len(base.Args)+1)
				for k, v := range base.Args {
					args[k] = v
				}
				args[vl.Arg.Name] = value.Expr.Raw
				next = append(next, Test{
					Name: fmt.Sprintf("%s_%s_%0*d", base.Name, vl.Arg.Name, width, i+1),
					Args: args,
				})
			}
		}
		tests = next
	}
	return tests, nil
}
