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

package ast

import (
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

// Identifier is a name reference: a local, a parameter, a type name, or
// half of a qualified path (Dot's target).
type Identifier struct {
	comments
	NamePos token.Pos
	Name    *symbol.Symbol
}

func (n *Identifier) Pos() token.Pos { return n.NamePos }
func (n *Identifier) End() token.Pos { return n.NamePos + token.Pos(len(n.Name.Text())) }
func (n *Identifier) exprNode()      {}
func (n *Identifier) stmtNode()      {}

// LspSelection is an Identifier that carries the LSP selection marker
// (see scanner.LSPSelectionMarker): the parser emits this subtype instead
// of a plain Identifier so tooling built on this front end can find
// "where is the cursor" without a separate side channel.
type LspSelection struct {
	Identifier
}

// LiteralKind distinguishes the several literal token shapes that share
// the Literal node (rather than one type per kind, following the
// original's preference for a tagged Literal over many leaf AST classes
// for constants).
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralDouble
	LiteralBoolean
	LiteralNullLit
	LiteralCharacter
)

// Literal is a non-string constant: an integer, double, boolean, null, or
// character literal. A leading "-" directly before a number folds into
// the literal itself (IsNegated) rather than producing a Unary node, so
// later phases see "-1" as one constant.
type Literal struct {
	comments
	from, to  token.Pos
	Kind      LiteralKind
	Data      *symbol.Symbol // nil for boolean/null, whose spelling is fixed
	Value     bool           // meaningful only for LiteralBoolean
	IsNegated bool
}

// SetNegated folds a leading "-" at minusPos into the literal.
func (n *Literal) SetNegated(minusPos token.Pos) {
	n.IsNegated = true
	n.from = minusPos
}

func (n *Literal) Pos() token.Pos { return n.from }
func (n *Literal) End() token.Pos { return n.to }
func (n *Literal) exprNode()      {}
func (n *Literal) stmtNode()      {}

// StringLiteral is a (possibly multi-line, possibly interpolated) string.
// A plain string has exactly one literal Segment and no
// Interpolations; an interpolated string "foo $bar baz" has two literal
// Segments ("foo ", " baz") and one Expr in Interpolations slotted
// between them, matching the scanner's STRING_PART/STRING_END split.
type StringLiteral struct {
	comments
	from, to      token.Pos
	Multiline     bool
	Segments      []string // raw, still-escaped text between interpolations
	Interpolations []Expr  // one fewer than len(Segments)-ambiguous cases aside
	Formats       []string // optional "%5.2f"-style format spec per interpolation, "" if none
}

func (n *StringLiteral) Pos() token.Pos { return n.from }
func (n *StringLiteral) End() token.Pos { return n.to }
func (n *StringLiteral) exprNode()      {}
func (n *StringLiteral) stmtNode()      {}

// IsInterpolated reports whether this string contains "$" interpolations.
func (n *StringLiteral) IsInterpolated() bool { return len(n.Interpolations) > 0 }

// Dot is a member access "target.name", used for both qualified names
// (library.ClassName) and field/method access (receiver.field).
type Dot struct {
	comments
	Target Expr
	Name   *Identifier
}

func (n *Dot) Pos() token.Pos { return n.Target.Pos() }
func (n *Dot) End() token.Pos { return n.Name.End() }
func (n *Dot) exprNode()      {}
func (n *Dot) stmtNode()      {}

// Index is a "target[index]" or "target[from..to]" slice expression.
type Index struct {
	comments
	Target   Expr
	Index    Expr // nil for a slice
	From, To Expr // non-nil only for "target[from..to]"
	IsSlice  bool
	to       token.Pos
}

func (n *Index) Pos() token.Pos { return n.Target.Pos() }
func (n *Index) End() token.Pos { return n.to }
func (n *Index) exprNode()      {}
func (n *Index) stmtNode()      {}

// Call is a function/method invocation, covering both "callee(args)" and
// the no-parens block-argument form "callee: ...".
type Call struct {
	comments
	Callee    Expr
	Arguments []Argument
	to        token.Pos
}

func (n *Call) Pos() token.Pos { return n.Callee.Pos() }
func (n *Call) End() token.Pos { return n.to }
func (n *Call) exprNode()      {}
func (n *Call) stmtNode()      {}

// Argument is one call argument, optionally named ("--name value" or
// "--flag"/"--no-flag" for booleans).
type Argument struct {
	Name  *Identifier // nil for a positional argument
	Value Expr
	IsBoolFlag bool // came from --flag/--no-flag rather than --name value
}

// Unary is a prefix operator application ("-x", "not x", "~x") or, with
// IsPostfix set, the "x++"/"x--" postfix forms.
type Unary struct {
	comments
	OpPos     token.Pos
	Op        token.Kind
	Expr      Expr
	IsPostfix bool
}

func (n *Unary) Pos() token.Pos {
	if n.IsPostfix {
		return n.Expr.Pos()
	}
	return n.OpPos
}
func (n *Unary) End() token.Pos {
	if n.IsPostfix {
		return n.OpPos + token.Pos(len(n.Op.String()))
	}
	return n.Expr.End()
}
func (n *Unary) exprNode()      {}
func (n *Unary) stmtNode()      {}

// Binary is an infix operator application, built by the parser's
// precedence-climbing binary expression parser (see package parser).
type Binary struct {
	comments
	Left  Expr
	Op    token.Kind
	OpPos token.Pos
	Right Expr
}

func (n *Binary) Pos() token.Pos { return n.Left.Pos() }
func (n *Binary) End() token.Pos { return n.Right.End() }
func (n *Binary) exprNode()      {}
func (n *Binary) stmtNode()      {}

// Assignment covers "=", ":=", "::=" and the compound "+=" family.
type Assignment struct {
	comments
	Target Expr
	Op     token.Kind
	OpPos  token.Pos
	Value  Expr
}

func (n *Assignment) Pos() token.Pos { return n.Target.Pos() }
func (n *Assignment) End() token.Pos { return n.Value.End() }
func (n *Assignment) exprNode()      {}
func (n *Assignment) stmtNode()      {}

// Conditional is "cond ? then : else" -- rarely used in Toit source but
// part of the grammar via PRECEDENCE_CONDITIONAL.
type Conditional struct {
	comments
	Cond, Then, Else Expr
}

func (n *Conditional) Pos() token.Pos { return n.Cond.Pos() }
func (n *Conditional) End() token.Pos { return n.Else.End() }
func (n *Conditional) exprNode()      {}
func (n *Conditional) stmtNode()      {}

// Parenthesized wraps an expression in "(...)" purely to record the
// source's own grouping for round-trip-faithful printing; it carries no
// semantic weight of its own.
type Parenthesized struct {
	comments
	LParen Expr
	from, to token.Pos
}

func (n *Parenthesized) Pos() token.Pos { return n.from }
func (n *Parenthesized) End() token.Pos { return n.to }
func (n *Parenthesized) exprNode()      {}
func (n *Parenthesized) stmtNode()      {}

// Lambda is a ":"-introduced block or a "::"-introduced lambda argument;
// the two share one node because both produce a parameter list plus a
// body Sequence, and only differ in capture semantics resolved at a later
// phase. IsBlock is true for the ":" form.
type Lambda struct {
	comments
	from       token.Pos
	IsBlock    bool
	Parameters []*Parameter
	Body       *Sequence
	to         token.Pos
}

func (n *Lambda) Pos() token.Pos { return n.from }
func (n *Lambda) End() token.Pos { return n.to }
func (n *Lambda) exprNode()      {}
func (n *Lambda) stmtNode()      {}

// CollectionKind distinguishes the bracket shapes that share the
// CollectionLiteral node, the same tagged-node approach Literal takes
// for its several constant kinds.
type CollectionKind int

const (
	CollectionList CollectionKind = iota
	CollectionSet
	CollectionMap
	CollectionByteArray
)

// CollectionLiteral is a "[a,b,c]" list, "#[b,b,b]" byte array, "{a,b}"
// set, or "{k:v,...}" map. Keys is non-nil only for CollectionMap, one
// entry per Elements entry holding the corresponding value; an empty
// map ("{:}") and an empty set ("{}") both have nil Keys/Elements and
// are told apart only by Kind.
type CollectionLiteral struct {
	comments
	from, to token.Pos
	Kind     CollectionKind
	Keys     []Expr
	Elements []Expr
}

func (n *CollectionLiteral) Pos() token.Pos { return n.from }
func (n *CollectionLiteral) End() token.Pos { return n.to }
func (n *CollectionLiteral) exprNode()      {}
func (n *CollectionLiteral) stmtNode()      {}

// TypeAnnotation is a type expression: a possibly-qualified name, possibly
// suffixed with "?" for nullable.
type TypeAnnotation struct {
	comments
	Name     Expr // *Identifier or *Dot
	Nullable bool
	to       token.Pos
}

func (n *TypeAnnotation) Pos() token.Pos { return n.Name.Pos() }
func (n *TypeAnnotation) End() token.Pos { return n.to }
func (n *TypeAnnotation) exprNode()      {}
