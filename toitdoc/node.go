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

// Package toitdoc implements the secondary, nested parser for Toit's
// structured documentation-comment mini-language (spec.md §4.H): the
// indentation-sensitive grammar of sections, itemized lists, code blocks,
// paragraphs and "$ref" cross-references that lives inside a "///" run or
// a "/** ... */" block. Grounded on original_source/toitdoc_node.h (the
// TOITDOC_NODES variant list) and toitdoc_parser.cc (the hand-rolled
// cursor/construct-stack parser below).
package toitdoc

import (
	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/token"
)

// Node is implemented by every toitdoc tree element, mirroring
// toitdoc::Node's accept/is_X/as_X family with a Go type switch instead
// of C++ double dispatch.
type Node interface {
	node()
}

// Contents is the root of one parsed toitdoc block: a sequence of
// sections, where an un-headed run of statements before the first "#
// Title" is itself an implicit section with an invalid title.
type Contents struct {
	Sections []*Section
}

func (*Contents) node() {}

// Section is a "# Title" heading (absent for the implicit leading
// section) followed by its statements.
type Section struct {
	Title      string // "" for the implicit leading section
	HasTitle   bool
	Statements []Statement
}

func (*Section) node() {}

// Statement is implemented by every section-body element: a code block,
// an itemized list, or a paragraph.
type Statement interface {
	Node
	statement()
}

// CodeSection is a ``` ... ``` verbatim block.
type CodeSection struct {
	Code string
}

func (*CodeSection) node()      {}
func (*CodeSection) statement() {}

// Itemized is a run of "- " / "* " items at the same indentation.
type Itemized struct {
	Items []*Item
}

func (*Itemized) node()      {}
func (*Itemized) statement() {}

// Item is one entry of an Itemized list: its own nested statements.
type Item struct {
	Statements []Statement
}

func (*Item) node()      {}
func (*Item) statement() {}

// Paragraph is a run of Expressions: plain text interleaved with code
// spans, quoted strings and "$ref" references, with adjacent Text nodes
// already merged.
type Paragraph struct {
	Expressions []Expression
}

func (*Paragraph) node()      {}
func (*Paragraph) statement() {}

// Expression is implemented by every paragraph-level inline element.
type Expression interface {
	Node
	expression()
	// Text returns the expression's raw text, for diagnostics that quote
	// the offending reference ("to_warning_string" in the original).
	Text() string
}

// Text is a run of plain prose.
type Text struct{ Value string }

func (*Text) node()          {}
func (*Text) expression()    {}
func (t *Text) Text() string { return t.Value }

// Code is a `backtick` inline code span.
type Code struct{ Value string }

func (*Code) node()          {}
func (*Code) expression()    {}
func (c *Code) Text() string { return c.Value }

// Link is a quoted "text" immediately followed by "(url)". The grammar
// implemented here never constructs one (see DESIGN.md); the type is kept
// to match toitdoc_node.h's variant list and to give a future URL-aware
// pass somewhere to attach a resolved link.
type Link struct {
	Value string
	URL   string
}

func (*Link) node()          {}
func (*Link) expression()    {}
func (l *Link) Text() string { return l.Value }

// Ref is a resolved "$name" or "$(signature)" cross-reference. ID indexes
// into Doc.Refs, where the re-entrant parse of the reference is stored as
// an *ast.ToitdocReference; Value is the raw reference text, used for
// "to_warning_string"-style diagnostics without needing to re-render the
// AST.
type Ref struct {
	ID    int
	Value string
}

func (*Ref) node()          {}
func (*Ref) expression()    {}
func (r *Ref) Text() string { return r.Value }

// Doc is the fully parsed result of one toitdoc comment block, the Go
// analogue of the original's Toitdoc<RefNode> template instantiated at
// ast::Node*. Contents is nil only for an invalid/absent toitdoc.
type Doc struct {
	Contents *Contents
	Refs     []*ast.ToitdocReference
	// Range is the source range of the comment block this toitdoc was
	// extracted from (delimiters included), used by the attacher to tell
	// whether a later "///" run is a separate, unattached module comment
	// (spec.md §4.I step 5).
	Range token.Range
}

// IsValid reports whether d denotes an actual parsed toitdoc, mirroring
// Toitdoc::is_valid.
func (d *Doc) IsValid() bool { return d != nil && d.Contents != nil }
