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

package scanner

import (
	"testing"

	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

func newTestScanner(t *testing.T, text string) (*Scanner, *diag.List) {
	t.Helper()
	mgr := source.NewManager(&source.MapFilesystem{Files: map[string][]byte{"/t.toit": []byte(text)}})
	res := mgr.Load("/t.toit")
	if !res.OK() {
		t.Fatalf("load failed: %v", res.Error)
	}
	diags := diag.NewList()
	return New(res.Source, symbol.New(), diags), diags
}

type tok struct {
	kind token.Kind
	text string
}

func scanAll(t *testing.T, s *Scanner) []tok {
	t.Helper()
	var out []tok
	for {
		st := s.Next()
		if st.Token == token.EOS {
			break
		}
		text := ""
		if st.Data != nil {
			text = st.Data.Text()
		}
		out = append(out, tok{st.Token, text})
		if len(out) > 1000 {
			t.Fatal("scanAll: runaway scan, aborting")
		}
	}
	return out
}

func TestScanSimpleClassSignature(t *testing.T) {
	s, diags := newTestScanner(t, "class A:\n  foo x/int -> int: return x + 1\n")
	got := scanAll(t, s)
	want := []token.Kind{
		token.CLASS, token.IDENTIFIER, token.COLON, token.NEWLINE,
		token.IDENTIFIER, token.IDENTIFIER, token.DIV, token.IDENTIFIER, token.RARROW, token.IDENTIFIER, token.COLON,
		token.RETURN, token.IDENTIFIER, token.ADD, token.INTEGER, token.NEWLINE,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i].kind != k {
			t.Errorf("token %d = %v, want %v (full: %v)", i, got[i].kind, k, got)
		}
	}
	if len(diags.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags.Diagnostics())
	}
}

func TestScanIndentationTracked(t *testing.T) {
	s, _ := newTestScanner(t, "main:\n  list.do:\n    print it\n")
	// Manually walk Next() and check the indentation stamped on the
	// first token of each line.
	first := s.Next() // "main"
	if first.Indentation != 0 {
		t.Errorf("main indentation = %d, want 0", first.Indentation)
	}
	for first.Token != token.NEWLINE {
		first = s.Next()
	}
	next := s.Next() // "list"
	if next.Indentation != 2 {
		t.Errorf("list indentation = %d, want 2", next.Indentation)
	}
}

func TestScanAttachedFlag(t *testing.T) {
	s, _ := newTestScanner(t, "foo.bar foo .bar\n")
	toks := make([]State, 0)
	for {
		st := s.Next()
		if st.Token == token.EOS {
			break
		}
		toks = append(toks, st)
	}
	// foo . bar foo . bar -- the second "." must not be attached.
	var dots []State
	for _, tk := range toks {
		if tk.Token == token.PERIOD {
			dots = append(dots, tk)
		}
	}
	if len(dots) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(dots))
	}
	if !dots[0].IsAttached {
		t.Error("foo.bar's period should be attached")
	}
	if dots[1].IsAttached {
		t.Error("foo .bar's period should not be attached (whitespace before it)")
	}
}

func TestScanDeprecatedBang(t *testing.T) {
	s, diags := newTestScanner(t, "not x\n!x\n")
	first := s.Next()
	if first.Token != token.NOT {
		t.Fatalf("expected NOT for \"not\", got %v", first.Token)
	}
	for first.Token != token.NEWLINE {
		first = s.Next()
	}
	bang := s.Next()
	if bang.Token != token.NOT {
		t.Errorf("\"!\" should scan as NOT, got %v", bang.Token)
	}
	found := false
	for _, d := range diags.Diagnostics() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	if !found {
		t.Error("expected a deprecation warning for \"!\"")
	}
}

func TestScanBangEqualsIsNotDeprecated(t *testing.T) {
	s, diags := newTestScanner(t, "a != b\n")
	toks := scanAll(t, s)
	foundNE := false
	for _, tk := range toks {
		if tk.kind == token.NE {
			foundNE = true
		}
	}
	if !foundNE {
		t.Error("\"!=\" should scan as NE")
	}
	for _, d := range diags.Diagnostics() {
		if d.Severity == diag.Warning {
			t.Errorf("\"!=\" should not trigger the \"!\" deprecation warning, got %v", d)
		}
	}
}

func TestScanDeprecatedLogicalOperators(t *testing.T) {
	s, diags := newTestScanner(t, "a && b || c\n")
	toks := scanAll(t, s)
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.kind)
	}
	wantHasAnd, wantHasOr := false, false
	for _, k := range kinds {
		if k == token.LOGICAL_AND {
			wantHasAnd = true
		}
		if k == token.LOGICAL_OR {
			wantHasOr = true
		}
	}
	if !wantHasAnd || !wantHasOr {
		t.Fatalf("expected LOGICAL_AND and LOGICAL_OR, got %v", kinds)
	}
	if len(diags.Diagnostics()) != 2 {
		t.Errorf("expected 2 deprecation warnings (one per operator), got %d: %v", len(diags.Diagnostics()), diags.Diagnostics())
	}
}

func TestScanIsNotDeprecatedBangForm(t *testing.T) {
	s, diags := newTestScanner(t, "a is !b\n")
	toks := scanAll(t, s)
	found := false
	for _, tk := range toks {
		if tk.kind == token.IS_NOT {
			found = true
		}
	}
	if !found {
		t.Errorf("\"is !\" should scan as IS_NOT, got %v", toks)
	}
	if len(diags.Diagnostics()) == 0 {
		t.Error("expected a deprecation warning for \"is !\"")
	}
}

func TestScanIsNotKeywordForm(t *testing.T) {
	s, diags := newTestScanner(t, "a is not b\n")
	toks := scanAll(t, s)
	found := false
	for _, tk := range toks {
		if tk.kind == token.IS_NOT {
			found = true
		}
	}
	if !found {
		t.Errorf("\"is not\" should scan as IS_NOT, got %v", toks)
	}
	if len(diags.Diagnostics()) != 0 {
		t.Errorf("\"is not\" is the preferred spelling, should not warn, got %v", diags.Diagnostics())
	}
}

func TestScanStringInterpolation(t *testing.T) {
	s, _ := newTestScanner(t, `"x=$obj.field"` + "\n")
	part := s.Next()
	if part.Token != token.STRING_PART {
		t.Fatalf("expected STRING_PART, got %v", part.Token)
	}
	ident := s.NextInterpolatedPart()
	if ident.Token != token.IDENTIFIER || ident.Data.Text() != "obj" {
		t.Fatalf("expected identifier \"obj\", got %v %v", ident.Token, ident.Data)
	}
	dot := s.Next()
	if dot.Token != token.PERIOD {
		t.Fatalf("expected PERIOD after obj, got %v", dot.Token)
	}
	field := s.Next()
	if field.Token != token.IDENTIFIER || field.Data.Text() != "field" {
		t.Fatalf("expected identifier \"field\", got %v %v", field.Token, field.Data)
	}
	end := s.NextStringPart(false)
	if end.Token != token.STRING_END {
		t.Fatalf("expected STRING_END, got %v", end.Token)
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		text string
		kind token.Kind
	}{
		{"123", token.INTEGER},
		{"1_000", token.INTEGER},
		{"0x7f", token.INTEGER},
		{"0b101", token.INTEGER},
		{"1.5", token.DOUBLE},
		{"1.5e-17", token.DOUBLE},
		{"1e10", token.DOUBLE},
	}
	for _, c := range cases {
		s, diags := newTestScanner(t, c.text+"\n")
		st := s.Next()
		if st.Token != c.kind {
			t.Errorf("scanning %q: got %v, want %v", c.text, st.Token, c.kind)
		}
		if len(diags.Diagnostics()) != 0 {
			t.Errorf("scanning %q produced diagnostics: %v", c.text, diags.Diagnostics())
		}
	}
}

func TestScanUnterminatedStringAtEOF(t *testing.T) {
	s, diags := newTestScanner(t, `"`)
	st := s.Next()
	if st.Token != token.STRING_END {
		t.Errorf("expected STRING_END for unterminated string, got %v", st.Token)
	}
	if !diags.HasErrors() {
		t.Error("expected an unterminated-string error")
	}
}

func TestScanIllegalByte(t *testing.T) {
	s, diags := newTestScanner(t, "@\n")
	st := s.Next()
	if st.Token != token.ILLEGAL {
		t.Errorf("expected ILLEGAL, got %v", st.Token)
	}
	if !diags.HasErrors() {
		t.Error("expected an illegal-character error")
	}
}

func TestScanTabWidthRoundsToEight(t *testing.T) {
	s, _ := newTestScanner(t, "a:\n\tfoo\n")
	first := s.Next()
	for first.Token != token.NEWLINE {
		first = s.Next()
	}
	next := s.Next()
	if next.Indentation != 8 {
		t.Errorf("single-tab indentation = %d, want 8 (TAB_WIDTH)", next.Indentation)
	}
}

func TestScanToitdocComment(t *testing.T) {
	s, _ := newTestScanner(t, "/** Adds two. */\nadd a b:\n  return a + b\n")
	// Consume all tokens so the comment builder is fully populated.
	for {
		st := s.Next()
		if st.Token == token.EOS {
			break
		}
	}
	comments := s.Comments()
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if !comments[0].IsToitdoc || !comments[0].IsMultiline {
		t.Errorf("comment = %+v, want toitdoc multiline", comments[0])
	}
}

func TestScanSingleLineToitdocRun(t *testing.T) {
	s, _ := newTestScanner(t, "/// line one\n/// line two\nfoo:\n  return 1\n")
	for {
		st := s.Next()
		if st.Token == token.EOS {
			break
		}
	}
	comments := s.Comments()
	if len(comments) != 2 {
		t.Fatalf("expected 2 separate single-line comments from the scanner (merging is the attacher's job), got %d", len(comments))
	}
	for _, c := range comments {
		if !c.IsToitdoc {
			t.Errorf("comment %+v should be toitdoc", c)
		}
	}
}

func TestScanHexAndBinaryFloats(t *testing.T) {
	cases := []struct {
		text string
		kind token.Kind
	}{
		{"0x7p+3", token.DOUBLE},
		{"0x1.8p1", token.DOUBLE},
		{"0xff", token.INTEGER},
	}
	for _, c := range cases {
		s, diags := newTestScanner(t, c.text+"\n")
		st := s.Next()
		if st.Token != c.kind {
			t.Errorf("scanning %q: got %v, want %v", c.text, st.Token, c.kind)
		}
		if len(diags.Diagnostics()) != 0 {
			t.Errorf("scanning %q produced diagnostics: %v", c.text, diags.Diagnostics())
		}
	}
}

// A hex literal with a fraction but no binary exponent is an error.
func TestScanHexFloatRequiresExponent(t *testing.T) {
	s, diags := newTestScanner(t, "0x1.8\n")
	s.Next()
	if !diags.HasErrors() {
		t.Error("expected an error for a hex float without an exponent")
	}
}

// A '_' digit separator must be followed by a digit.
func TestScanNumberSeparatorNeedsDigit(t *testing.T) {
	s, diags := newTestScanner(t, "1_\n")
	s.Next()
	if !diags.HasErrors() {
		t.Error("expected an error for a trailing '_' separator")
	}
}

func TestScanByteArrayOpener(t *testing.T) {
	s, _ := newTestScanner(t, "#[1, 2]\n")
	st := s.Next()
	if st.Token != token.LSHARP_BRACK {
		t.Fatalf("expected LSHARP_BRACK for \"#[\", got %v", st.Token)
	}
}

func TestScanPrimitiveKeyword(t *testing.T) {
	s, _ := newTestScanner(t, "#primitive.core.write\n")
	st := s.Next()
	if st.Token != token.PRIMITIVE {
		t.Fatalf("expected PRIMITIVE, got %v", st.Token)
	}
	if dot := s.Next(); dot.Token != token.PERIOD {
		t.Fatalf("expected PERIOD after #primitive, got %v", dot.Token)
	}
}

// Up to five quotes may end a multi-line string; the surplus beyond the
// closing three belongs to the string's content.
func TestScanMultilineStringTrailingQuotes(t *testing.T) {
	s, diags := newTestScanner(t, `"""x"""""`+"\n")
	st := s.Next()
	if st.Token != token.STRING_MULTI_LINE {
		t.Fatalf("expected STRING_MULTI_LINE, got %v", st.Token)
	}
	if len(diags.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags.Diagnostics())
	}
	if next := s.Next(); next.Token != token.NEWLINE {
		t.Errorf("the whole quote run should be consumed, next = %v", next.Token)
	}
}

// An identifier containing the confirmed LSP marker is flagged and the
// marker byte is excised before canonicalization.
func TestScanLSPSelectionMarker(t *testing.T) {
	mgr := source.NewManager(&source.MapFilesystem{Files: map[string][]byte{"/t.toit": []byte("foobar\n")}})
	res := mgr.LoadWithLSPMarker("/t.toit", 3)
	if !res.OK() {
		t.Fatalf("load failed: %v", res.Error)
	}
	diags := diag.NewList()
	s := New(res.Source, symbol.New(), diags)
	st := s.Next()
	if st.Token != token.IDENTIFIER {
		t.Fatalf("expected IDENTIFIER, got %v", st.Token)
	}
	if !st.IsLSPSelection {
		t.Error("expected the token to be flagged as the LSP selection")
	}
	if st.Data.Text() != "foobar" {
		t.Errorf("marker should be excised before interning, got %q", st.Data.Text())
	}
	if len(diags.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags.Diagnostics())
	}
}

// In completion mode a keyword at the selection marker scans as an
// identifier so keyword prefixes still complete.
func TestScanLSPSelectionKeywordAsIdentifier(t *testing.T) {
	mgr := source.NewManager(&source.MapFilesystem{Files: map[string][]byte{"/t.toit": []byte("for\n")}})
	res := mgr.LoadWithLSPMarker("/t.toit", 3)
	if !res.OK() {
		t.Fatalf("load failed: %v", res.Error)
	}
	s := New(res.Source, symbol.New(), diag.NewList())
	s.SetLspSelectionIsIdentifier(true)
	st := s.Next()
	if st.Token != token.IDENTIFIER {
		t.Fatalf("completion mode should scan \"for<marker>\" as IDENTIFIER, got %v", st.Token)
	}
	if !st.IsLSPSelection {
		t.Error("expected the LSP selection flag")
	}
}

// A marker byte outside any identifier, or not confirmed by the source,
// is an illegal character.
func TestScanUnconfirmedMarkerIsIllegal(t *testing.T) {
	s, diags := newTestScanner(t, "\x01\n")
	st := s.Next()
	if st.Token != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for an unconfirmed marker byte, got %v", st.Token)
	}
	if !diags.HasErrors() {
		t.Error("expected an illegal-character error")
	}
}

func TestScanTabInLeadingWhitespaceIsError(t *testing.T) {
	s, diags := newTestScanner(t, "a:\n\tfoo\n")
	for {
		st := s.Next()
		if st.Token == token.EOS {
			break
		}
	}
	if !diags.HasErrors() {
		t.Error("expected a tabs-in-leading-whitespace error")
	}
}

func TestScanNamedNoToken(t *testing.T) {
	s, _ := newTestScanner(t, "foo --no-verbose\n")
	kinds := []token.Kind{}
	for {
		st := s.Next()
		if st.Token == token.EOS {
			break
		}
		kinds = append(kinds, st.Token)
	}
	found := false
	for _, k := range kinds {
		if k == token.NAMED_NO {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a NAMED_NO token for \"--no-\", got %v", kinds)
	}
}
