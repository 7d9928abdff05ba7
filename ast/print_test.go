// Copyright 2026 The Toit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/parser"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
)

func parseUnit(t *testing.T, text string) (*ast.Unit, *diag.List) {
	t.Helper()
	mgr := source.NewManager(&source.MapFilesystem{Files: map[string][]byte{"/t.toit": []byte(text)}})
	res := mgr.Load("/t.toit")
	if !res.OK() {
		t.Fatalf("load failed: %v", res.Error)
	}
	diags := diag.NewList()
	symbols := symbol.New()
	scn := scanner.New(res.Source, symbols, diags)
	p := parser.New(res.Source, scn, symbols, diags)
	return p.ParseUnit(), diags
}

// outline flattens a unit into the declaration shapes the print/re-parse
// property compares: node type and name per declaration, in order.
func outline(unit *ast.Unit) []string {
	var out []string
	for _, imp := range unit.Imports {
		names := ""
		for i, s := range imp.Segments {
			if i > 0 {
				names += "."
			}
			names += s.Name.Text()
		}
		out = append(out, "import "+names)
	}
	for _, d := range unit.Decls {
		switch d := d.(type) {
		case *ast.Class:
			out = append(out, "class "+d.Name.Name.Text())
			for _, m := range d.Members {
				switch m := m.(type) {
				case *ast.Method:
					out = append(out, "  method "+m.Name.Name.Text())
				case *ast.Field:
					out = append(out, "  field "+m.Name.Name.Text())
				}
			}
		case *ast.Method:
			out = append(out, "method "+d.Name.Name.Text())
		case *ast.Field:
			out = append(out, "field "+d.Name.Name.Text())
		}
	}
	return out
}

// For a unit that parses without diagnostics, the printer's output,
// re-scanned and re-parsed, yields structurally identical declarations.
func TestPrintReparseRoundTrip(t *testing.T) {
	const text = "" +
		"import core.collections\n" +
		"class Point:\n" +
		"  x/int := 0\n" +
		"  y/int := 0\n" +
		"  manhattan -> int:\n" +
		"    return x + y\n" +
		"dist a b:\n" +
		"  return a - b\n"
	unit, diags := parseUnit(t, text)
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}

	printed := ast.Print(unit)
	reparsed, rediags := parseUnit(t, printed)
	if rediags.HasErrors() {
		t.Fatalf("printer output failed to re-parse:\n%s\ndiagnostics: %v", printed, rediags.Diagnostics())
	}
	if diff := cmp.Diff(outline(unit), outline(reparsed)); diff != "" {
		t.Errorf("print/re-parse changed the declaration outline (-orig +reparsed):\n%s", diff)
	}
}

// Printing twice is stable: print(parse(print(parse(text)))) equals the
// first print.
func TestPrintIsIdempotent(t *testing.T) {
	const text = "main:\n  if true:\n    return 1\n  return 2\n"
	unit, _ := parseUnit(t, text)
	printed := ast.Print(unit)
	reparsed, _ := parseUnit(t, printed)
	again := ast.Print(reparsed)
	if diff := cmp.Diff(printed, again); diff != "" {
		t.Errorf("printing is not stable under re-parse:\n%s", diff)
	}
}
