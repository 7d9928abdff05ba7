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

package parser

import (
	"strings"
	"testing"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
)

// parseText drives the full scanner+parser pipeline over text the way
// cmd/toitc's parse command does, returning the resulting Unit and the
// diagnostics collected along the way.
func parseText(t *testing.T, text string) (*ast.Unit, *diag.List) {
	t.Helper()
	mgr := source.NewManager(&source.MapFilesystem{Files: map[string][]byte{"/t.toit": []byte(text)}})
	res := mgr.Load("/t.toit")
	if !res.OK() {
		t.Fatalf("load failed: %v", res.Error)
	}
	diags := diag.NewList()
	symbols := symbol.New()
	scn := scanner.New(res.Source, symbols, diags)
	p := New(res.Source, scn, symbols, diags)
	unit := p.ParseUnit()
	return unit, diags
}

// Scenario 1 from the spec's seed tests: a simple class with one typed
// method.
func TestParseSimpleClass(t *testing.T) {
	unit, diags := parseText(t, "class A:\n  foo x/int -> int: return x + 1\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if len(unit.Decls) != 1 {
		t.Fatalf("expected 1 top-level decl, got %d", len(unit.Decls))
	}
	class, ok := unit.Decls[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected *ast.Class, got %T", unit.Decls[0])
	}
	if class.Name == nil || class.Name.Name.Text() != "A" {
		t.Fatalf("expected class named A, got %+v", class.Name)
	}
	if len(class.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(class.Members))
	}
	method, ok := class.Members[0].(*ast.Method)
	if !ok {
		t.Fatalf("expected *ast.Method, got %T", class.Members[0])
	}
	if method.Name.Name.Text() != "foo" {
		t.Errorf("method name = %q, want foo", method.Name.Name.Text())
	}
	if len(method.Parameters) != 1 || method.Parameters[0].Name.Name.Text() != "x" {
		t.Fatalf("expected one parameter named x, got %+v", method.Parameters)
	}
	if method.ReturnType == nil {
		t.Fatal("expected a return type annotation")
	}
	if method.Body == nil || len(method.Body.Statements) != 1 {
		t.Fatalf("expected a one-statement body, got %+v", method.Body)
	}
	ret, ok := method.Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", method.Body.Statements[0])
	}
	if _, ok := ret.Value.(*ast.Binary); !ok {
		t.Errorf("expected return value to be a binary expression, got %T", ret.Value)
	}
}

// Scenario 2: indentation-driven block argument.
func TestParseIndentationDrivenBlock(t *testing.T) {
	unit, diags := parseText(t, "main:\n  list.do:\n    print it\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if len(unit.Decls) != 1 {
		t.Fatalf("expected 1 top-level decl, got %d", len(unit.Decls))
	}
	method := unit.Decls[0].(*ast.Method)
	if len(method.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in main's body, got %d", len(method.Body.Statements))
	}
	call, ok := method.Body.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", method.Body.Statements[0])
	}
	dot, ok := call.Callee.(*ast.Dot)
	if !ok || dot.Name.Name.Text() != "do" {
		t.Fatalf("expected callee list.do, got %+v", call.Callee)
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected 1 argument (the block), got %d", len(call.Arguments))
	}
	block, ok := call.Arguments[0].Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected the argument to be a block/lambda, got %T", call.Arguments[0].Value)
	}
	if len(block.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement inside the block, got %d", len(block.Body.Statements))
	}
	if _, ok := block.Body.Statements[0].(*ast.Call); !ok {
		t.Errorf("expected print-it call inside the block, got %T", block.Body.Statements[0])
	}
}

// Scenario 3: ternary binds tighter than a trailing colon's block
// interpretation -- "x := true ? foo: bar" parses as one assignment of a
// conditional, not an assignment whose value is a block.
func TestParseTernaryVsBlockAmbiguity(t *testing.T) {
	unit, diags := parseText(t, "main:\n  x := true ? foo: bar\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	if len(method.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d: %+v", len(method.Body.Statements), method.Body.Statements)
	}
	decl, ok := method.Body.Statements[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected *ast.Declaration for \":=\", got %T", method.Body.Statements[0])
	}
	cond, ok := decl.Assignment.Value.(*ast.Conditional)
	if !ok {
		t.Fatalf("expected the assigned value to be a conditional, got %T", decl.Assignment.Value)
	}
	if _, ok := cond.Then.(*ast.Identifier); !ok {
		t.Errorf("expected the then-branch to be the identifier foo, got %T", cond.Then)
	}
	if _, ok := cond.Else.(*ast.Identifier); !ok {
		t.Errorf("expected the else-branch to be the identifier bar, got %T", cond.Else)
	}
}

// Scenario 4: string interpolation with a postfix (dotted) expression.
func TestParseStringInterpolationWithDot(t *testing.T) {
	unit, diags := parseText(t, "main:\n  print \"x=$obj.field\"\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	call := method.Body.Statements[0].(*ast.Call)
	str, ok := call.Arguments[0].Value.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected a string literal argument, got %T", call.Arguments[0].Value)
	}
	if !str.IsInterpolated() {
		t.Fatal("expected the string to be interpolated")
	}
	if len(str.Interpolations) != 1 {
		t.Fatalf("expected exactly 1 interpolation, got %d", len(str.Interpolations))
	}
	dot, ok := str.Interpolations[0].(*ast.Dot)
	if !ok {
		t.Fatalf("expected the interpolation to be obj.field, got %T", str.Interpolations[0])
	}
	if dot.Name.Name.Text() != "field" {
		t.Errorf("expected .field, got .%s", dot.Name.Name.Text())
	}
}

// Scenario 6: a missing colon at the end of a class signature is
// recovered from -- one diagnostic is reported, but the class and its
// member still show up in the AST.
func TestParseRecoversFromMissingColon(t *testing.T) {
	unit, diags := parseText(t, "class A\n  foo: 1\n")
	if len(diags.Diagnostics()) == 0 {
		t.Fatal("expected a diagnostic for the missing colon")
	}
	if len(unit.Decls) != 1 {
		t.Fatalf("expected the class to still be recovered, got %d decls", len(unit.Decls))
	}
	class, ok := unit.Decls[0].(*ast.Class)
	if !ok {
		t.Fatalf("expected *ast.Class even after the recovery, got %T", unit.Decls[0])
	}
	if class.Name.Name.Text() != "A" {
		t.Errorf("expected class A, got %q", class.Name.Name.Text())
	}
}

func TestParseEmptyFileProducesEmptyUnit(t *testing.T) {
	unit, diags := parseText(t, "")
	if len(diags.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics for an empty file, got %v", diags.Diagnostics())
	}
	if len(unit.Decls) != 0 || len(unit.Imports) != 0 || len(unit.Exports) != 0 {
		t.Errorf("expected an entirely empty unit, got %+v", unit)
	}
}

func TestParseImportAndExport(t *testing.T) {
	unit, diags := parseText(t, "import foo.bar as fb show baz\nexport *\nmain:\n  return 1\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if len(unit.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(unit.Imports))
	}
	imp := unit.Imports[0]
	if len(imp.Segments) != 2 || imp.Segments[0].Name.Text() != "foo" || imp.Segments[1].Name.Text() != "bar" {
		t.Errorf("expected segments [foo bar], got %+v", imp.Segments)
	}
	if imp.Prefix == nil || imp.Prefix.Name.Text() != "fb" {
		t.Errorf("expected prefix fb, got %+v", imp.Prefix)
	}
	if len(imp.Show) != 1 || imp.Show[0].Name.Text() != "baz" {
		t.Errorf("expected show [baz], got %+v", imp.Show)
	}
	if len(unit.Exports) != 1 || !unit.Exports[0].ExportAll {
		t.Errorf("expected one export *, got %+v", unit.Exports)
	}
}

func TestParseWhileLoop(t *testing.T) {
	unit, diags := parseText(t, "main:\n  while true:\n    break\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	wh, ok := method.Body.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("expected *ast.While, got %T", method.Body.Statements[0])
	}
	if len(wh.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in the while body, got %d", len(wh.Body.Statements))
	}
	if _, ok := wh.Body.Statements[0].(*ast.Branch); !ok {
		t.Errorf("expected a break statement, got %T", wh.Body.Statements[0])
	}
}

func TestParseIfElse(t *testing.T) {
	unit, diags := parseText(t, "main:\n  if true:\n    return 1\n  else:\n    return 2\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	ifStmt, ok := method.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", method.Body.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseEmptyBlockIsError(t *testing.T) {
	_, diags := parseText(t, "main:\n")
	if len(diags.Diagnostics()) == 0 {
		t.Error("expected an error for an empty block")
	}
}

func TestParseDeclarationsStrictlyIncreasingPositions(t *testing.T) {
	unit, diags := parseText(t, "foo:\n  return 1\nbar:\n  return 2\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if len(unit.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(unit.Decls))
	}
	if !(unit.Decls[0].Pos() < unit.Decls[1].Pos()) {
		t.Errorf("sibling declarations must have strictly increasing From positions: %d, %d",
			unit.Decls[0].Pos(), unit.Decls[1].Pos())
	}
}

func TestIndentationStackDepthRestoredAfterParse(t *testing.T) {
	mgr := source.NewManager(&source.MapFilesystem{Files: map[string][]byte{"/t.toit": []byte("class A:\n  foo:\n    return 1\n")}})
	res := mgr.Load("/t.toit")
	diags := diag.NewList()
	symbols := symbol.New()
	scn := scanner.New(res.Source, symbols, diags)
	pp := New(res.Source, scn, symbols, diags)
	pp.ParseUnit()
	// Every construct pops the frame it pushed and ParseUnit pops its own
	// synthetic bottom frame last, so the stack is back to empty once
	// parsing finishes -- the same depth it started at.
	if pp.indentStack.Size() != 0 {
		t.Errorf("indentation stack should be fully unwound after a complete parse, got size %d", pp.indentStack.Size())
	}
}

func TestParseMultiStatementBody(t *testing.T) {
	unit, diags := parseText(t, "main:\n  foo\n  bar\n  return 1\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	if len(method.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d: %+v", len(method.Body.Statements), method.Body.Statements)
	}
}

// Boundary from the spec: inside nested ifs, an "else" at the column of
// the outer "if" binds to the outer one.
func TestParseElseBindsToOuterIf(t *testing.T) {
	unit, diags := parseText(t, "main:\n  if a:\n    if b:\n      foo\n  else:\n    bar\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	outer := method.Body.Statements[0].(*ast.If)
	if outer.Else == nil {
		t.Fatal("expected the outer if to own the else branch")
	}
	inner, ok := outer.Then.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected a nested if in the then-branch, got %T", outer.Then.Statements[0])
	}
	if inner.Else != nil {
		t.Error("the inner if must not have captured the outer else")
	}
}

func TestParseElseBindsToInnerIf(t *testing.T) {
	unit, diags := parseText(t, "main:\n  if a:\n    if b:\n      foo\n    else:\n      bar\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	outer := method.Body.Statements[0].(*ast.If)
	if outer.Else != nil {
		t.Error("the outer if must not have captured the inner else")
	}
	inner := outer.Then.Statements[0].(*ast.If)
	if inner.Else == nil {
		t.Fatal("expected the inner if to own the else branch")
	}
}

// {} is a set, {:} is a map -- pinned by the spec's open-questions list.
func TestParseEmptySetVsEmptyMap(t *testing.T) {
	unit, diags := parseText(t, "main:\n  a := {}\n  b := {:}\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	set := method.Body.Statements[0].(*ast.Declaration).Assignment.Value.(*ast.CollectionLiteral)
	if set.Kind != ast.CollectionSet {
		t.Errorf("{} should be a set, got kind %d", set.Kind)
	}
	m := method.Body.Statements[1].(*ast.Declaration).Assignment.Value.(*ast.CollectionLiteral)
	if m.Kind != ast.CollectionMap {
		t.Errorf("{:} should be a map, got kind %d", m.Kind)
	}
}

func TestParseNamedArguments(t *testing.T) {
	unit, diags := parseText(t, "main:\n  foo --bar 1 --flag --no-slow\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	call := method.Body.Statements[0].(*ast.Call)
	if len(call.Arguments) != 3 {
		t.Fatalf("expected 3 arguments, got %d: %+v", len(call.Arguments), call.Arguments)
	}
	if call.Arguments[0].Name.Name.Text() != "bar" || call.Arguments[0].IsBoolFlag {
		t.Errorf("expected --bar 1 named value argument, got %+v", call.Arguments[0])
	}
	if call.Arguments[1].Name.Name.Text() != "flag" || !call.Arguments[1].IsBoolFlag {
		t.Errorf("expected --flag boolean argument, got %+v", call.Arguments[1])
	}
	noFlag := call.Arguments[2]
	if noFlag.Name.Name.Text() != "slow" || !noFlag.IsBoolFlag {
		t.Errorf("expected --no-slow inverted flag, got %+v", noFlag)
	}
	if lit, ok := noFlag.Value.(*ast.Literal); !ok || lit.Value {
		t.Errorf("--no-slow should carry a false literal, got %+v", noFlag.Value)
	}
}

// "print 1 + 2" is one argument; "foo a b" is two.
func TestParseArgumentGrouping(t *testing.T) {
	unit, diags := parseText(t, "main:\n  print 1 + 2\n  foo a b\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	print_ := method.Body.Statements[0].(*ast.Call)
	if len(print_.Arguments) != 1 {
		t.Fatalf("print 1 + 2 should have 1 argument, got %d", len(print_.Arguments))
	}
	if _, ok := print_.Arguments[0].Value.(*ast.Binary); !ok {
		t.Errorf("the argument should be the binary 1 + 2, got %T", print_.Arguments[0].Value)
	}
	foo := method.Body.Statements[1].(*ast.Call)
	if len(foo.Arguments) != 2 {
		t.Fatalf("foo a b should have 2 arguments, got %d: %+v", len(foo.Arguments), foo.Arguments)
	}
}

// Call arguments may continue on following lines indented deeper than the
// call itself.
func TestParseMultilineCallArguments(t *testing.T) {
	unit, diags := parseText(t, "main:\n  foo\n    1\n    2\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	call, ok := method.Body.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected a call with continuation-line arguments, got %T", method.Body.Statements[0])
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
}

func TestParseOperatorDeclaration(t *testing.T) {
	unit, diags := parseText(t, "class A:\n  operator == other:\n    return true\n  operator [] i:\n    return i\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	class := unit.Decls[0].(*ast.Class)
	if len(class.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(class.Members))
	}
	eq := class.Members[0].(*ast.Method)
	if !eq.IsOperator || eq.Name.Name.Text() != "==" {
		t.Errorf("expected operator ==, got %+v", eq.Name)
	}
	idx := class.Members[1].(*ast.Method)
	if !idx.IsOperator || idx.Name.Name.Text() != "[]" {
		t.Errorf("expected operator [], got %q", idx.Name.Name.Text())
	}
}

func TestParseThisParameter(t *testing.T) {
	unit, diags := parseText(t, "class A:\n  constructor this.x:\n    foo\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	class := unit.Decls[0].(*ast.Class)
	ctor := class.Members[0].(*ast.Method)
	if !ctor.IsConstructor {
		t.Error("expected a constructor")
	}
	if len(ctor.Parameters) != 1 || !ctor.Parameters[0].IsThis || ctor.Parameters[0].Name.Name.Text() != "x" {
		t.Fatalf("expected one this.x parameter, got %+v", ctor.Parameters)
	}
}

func TestParseRelativeImport(t *testing.T) {
	unit, diags := parseText(t, "import ..shared.util\nmain:\n  return 1\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	imp := unit.Imports[0]
	if imp.Dots != 2 {
		t.Errorf("expected 2 leading dots, got %d", imp.Dots)
	}
	if len(imp.Segments) != 2 {
		t.Errorf("expected segments [shared util], got %+v", imp.Segments)
	}
}

func TestParseImportAfterDeclarationIsError(t *testing.T) {
	unit, diags := parseText(t, "main:\n  return 1\nimport foo\n")
	if len(diags.Diagnostics()) == 0 {
		t.Fatal("expected an out-of-order import diagnostic")
	}
	// The import is still parsed and recorded.
	if len(unit.Imports) != 1 {
		t.Errorf("expected the late import to still be recorded, got %d", len(unit.Imports))
	}
}

func TestParseFieldWithType(t *testing.T) {
	unit, diags := parseText(t, "class A:\n  x/int := 0\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	class := unit.Decls[0].(*ast.Class)
	field := class.Members[0].(*ast.Field)
	if field.Type == nil {
		t.Error("expected the field to carry a type annotation")
	}
	if field.Default == nil {
		t.Error("expected the field to carry a default value")
	}
}

func TestParseTryFinally(t *testing.T) {
	unit, diags := parseText(t, "main:\n  try:\n    foo\n  finally:\n    bar\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	try := method.Body.Statements[0].(*ast.Try)
	if try.Finally == nil {
		t.Fatal("expected a finally clause")
	}
}

func TestParseForLoop(t *testing.T) {
	unit, diags := parseText(t, "main:\n  for i := 0; i < 3; i++:\n    print i\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	loop := method.Body.Statements[0].(*ast.For)
	if loop.Init == nil || loop.Cond == nil || loop.Update == nil {
		t.Fatalf("expected all three for clauses, got %+v", loop)
	}
	if len(loop.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(loop.Body.Statements))
	}
}

func TestParseBreakWithLabel(t *testing.T) {
	unit, diags := parseText(t, "main:\n  while true:\n    break.outer\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	wh := method.Body.Statements[0].(*ast.While)
	br := wh.Body.Statements[0].(*ast.Branch)
	if br.Label == nil || br.Label.Name.Text() != "outer" {
		t.Fatalf("expected break.outer, got %+v", br.Label)
	}
}

func TestParseRecursionDepthGuard(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("main:\n  x := ")
	for i := 0; i < 600; i++ {
		sb.WriteByte('(')
	}
	sb.WriteString("1")
	for i := 0; i < 600; i++ {
		sb.WriteByte(')')
	}
	sb.WriteByte('\n')
	unit, diags := parseText(t, sb.String())
	if !diags.HasErrors() {
		t.Fatal("expected the recursion-depth error")
	}
	if len(unit.Decls) != 0 {
		t.Errorf("a fatal depth overflow discards the pending declarations, got %d", len(unit.Decls))
	}
}

func TestParseMonitorCannotBeAbstract(t *testing.T) {
	_, diags := parseText(t, "abstract monitor M:\n  foo:\n    return 1\n")
	if !diags.HasErrors() {
		t.Error("expected an error for an abstract monitor")
	}
}

// Boundary from the spec: a lone '"' at EOF reports one unterminated
// string error and leaves a synthetic empty string literal in the AST.
func TestParseUnterminatedStringAtEOF(t *testing.T) {
	unit, diags := parseText(t, "main:\n  x := \"")
	if !diags.HasErrors() {
		t.Fatal("expected the unterminated-string error")
	}
	method := unit.Decls[0].(*ast.Method)
	decl := method.Body.Statements[0].(*ast.Declaration)
	str, ok := decl.Assignment.Value.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected a synthetic string literal, got %T", decl.Assignment.Value)
	}
	if len(str.Segments) != 1 || str.Segments[0] != "" {
		t.Errorf("expected one empty segment, got %q", str.Segments)
	}
}

// Boundary from the spec: a block ":" on its own line at exactly the
// call's indentation column still belongs to the call.
func TestParseBlockColonAtCallColumn(t *testing.T) {
	unit, diags := parseText(t, "main:\n  foo.do\n  :\n    it\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	call, ok := method.Body.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected a call, got %T", method.Body.Statements[0])
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected the block argument, got %d arguments", len(call.Arguments))
	}
	if _, ok := call.Arguments[0].Value.(*ast.Lambda); !ok {
		t.Errorf("expected a block argument, got %T", call.Arguments[0].Value)
	}
}

// A negated number folds the "-" into the literal itself.
func TestParseNegatedLiteralFolds(t *testing.T) {
	unit, diags := parseText(t, "main:\n  x := -1\n")
	if len(diags.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	method := unit.Decls[0].(*ast.Method)
	decl := method.Body.Statements[0].(*ast.Declaration)
	lit, ok := decl.Assignment.Value.(*ast.Literal)
	if !ok {
		t.Fatalf("expected a folded literal, got %T", decl.Assignment.Value)
	}
	if !lit.IsNegated {
		t.Error("expected the literal to be marked negated")
	}
}
