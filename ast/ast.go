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

// Package ast defines the syntax tree this front end's parser builds.
// Node shapes and the comments/Node interface split follow cue/ast/ast.go
// closely: a handful of interfaces (Node, Expr, Decl) rather than one
// do-everything struct, an embeddable comments mixin, and Pos()/End() on
// every concrete type. Unlike the original C++ compiler's arena-owned
// nodes, nodes here are ordinary garbage-collected Go structs; a Unit
// keeps a flat Nodes slice for traversal order but does not own storage
// (see DESIGN.md Open Question #2).
package ast

import "github.com/toitlang/toitc/token"

// Node is implemented by every syntax tree element.
type Node interface {
	// Pos returns the position of the first token belonging to the node.
	Pos() token.Pos
	// End returns the position one past the last token belonging to the
	// node.
	End() token.Pos
	Comments() []*CommentGroup
	AddComment(*CommentGroup)
}

// Range returns the [Pos, End) range of n.
func Range(n Node) token.Range {
	return token.Range{From: n.Pos(), To: n.End()}
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Decl is implemented by every top-level or class-member declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is implemented by every statement-position node inside a method
// body. Most expressions double as statements (an expression statement),
// so Expr values are also valid Stmts; control-flow forms (If, While, …)
// implement Stmt but not Expr.
type Stmt interface {
	Node
	stmtNode()
}

// comments is embedded by every concrete node type to implement the
// Comments()/AddComment() half of Node, exactly as cue/ast's comments
// struct does.
type comments struct {
	groups []*CommentGroup
}

func (c *comments) Comments() []*CommentGroup { return c.groups }
func (c *comments) AddComment(g *CommentGroup) {
	c.groups = append(c.groups, g)
}

// Comment is one // or /* */ run, already stripped of its delimiters is
// NOT done here (unlike cue/ast.Comment.Text()) because toitdoc parsing
// needs the raw delimiters to tell a "///" toitdoc comment from a plain
// "//" one.
type Comment struct {
	Slash    token.Pos
	Text     string
	Multiline bool
}

func (c *Comment) Pos() token.Pos { return c.Slash }
func (c *Comment) End() token.Pos { return c.Slash + token.Pos(len(c.Text)) }

// CommentGroup is a contiguous run of comment lines attached to a single
// declaration, mirroring cue/ast.CommentGroup (Position/Doc/Line placement
// relative to the node it's attached to).
type CommentGroup struct {
	comments
	Doc      bool // attached above the node, as documentation
	Line     bool // attached to the right of the node, on the same line
	List     []*Comment
}

func (g *CommentGroup) Pos() token.Pos {
	if len(g.List) == 0 {
		return token.NoPos
	}
	return g.List[0].Pos()
}

func (g *CommentGroup) End() token.Pos {
	if len(g.List) == 0 {
		return token.NoPos
	}
	return g.List[len(g.List)-1].End()
}

// Unit is the root node of one parsed file: its imports/exports and its
// top-level declarations (classes, top-level methods and fields).
type Unit struct {
	comments
	SourcePath string
	Imports    []*Import
	Exports    []*Export
	Decls      []Decl

	// Nodes lists every node reachable from this unit in a stable,
	// roughly source-order traversal; populated once by the parser after
	// the unit is fully built, consumed by the toitdoc attacher.
	Nodes []Node

	from, to token.Pos
}

func (u *Unit) Pos() token.Pos { return u.from }
func (u *Unit) End() token.Pos { return u.to }
func (u *Unit) SetRange(from, to token.Pos) {
	u.from, u.to = from, to
}

// Import is an "import" declaration: a target library path, an optional
// local prefix ("import foo.bar as baz"), and an optional show-list
// restricting which names are brought into scope.
type Import struct {
	comments
	ImportPos token.Pos
	// Dots counts the leading dots of a relative import: "import .foo" has
	// one, "import ..foo" two, and so on.
	Dots     int
	Segments []*Identifier // dotted path components
	Prefix   *Identifier   // nil unless "as" was used
	ShowAll  bool
	Show     []*Identifier
	to       token.Pos
}

func (n *Import) Pos() token.Pos { return n.ImportPos }
func (n *Import) End() token.Pos { return n.to }
func (n *Import) declNode()      {}

// Export is an "export" declaration, the mirror image of Import.
type Export struct {
	comments
	ExportPos token.Pos
	ExportAll bool
	Names     []*Identifier
	to        token.Pos
}

func (n *Export) Pos() token.Pos { return n.ExportPos }
func (n *Export) End() token.Pos { return n.to }
func (n *Export) declNode()      {}

// ClassKind distinguishes the four declaration forms that share the same
// member-list grammar.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindMixin
	ClassKindMonitor
)

// Class is a class/interface/mixin/monitor declaration.
type Class struct {
	comments
	KeywordPos token.Pos
	Kind       ClassKind
	Name       *Identifier
	IsAbstract bool
	Super      *Identifier // nil if no "extends"
	Interfaces []*Identifier
	Mixins     []*Identifier
	Members    []Decl // *Method and *Field
	to         token.Pos
}

func (n *Class) Pos() token.Pos { return n.KeywordPos }
func (n *Class) End() token.Pos { return n.to }
func (n *Class) declNode()      {}

// Parameter is one formal parameter of a Method: a name, an optional type
// annotation, an optional default value, and the flags distinguishing
// Toit's several parameter kinds (named, block, this-parameter for field
// shorthand constructors).
type Parameter struct {
	comments
	Name       *Identifier
	Type       Expr // nil if untyped
	Default    Expr // nil if no default
	IsNamed    bool
	IsBlock    bool
	IsThis     bool // "this.x" constructor field shorthand
	IsRequired bool // named parameter marked required
	from, to   token.Pos
}

func (n *Parameter) Pos() token.Pos { return n.from }
func (n *Parameter) End() token.Pos { return n.to }

// Method is a top-level function or class member method, covering plain
// methods, constructors, factories, operators and getters/setters, which
// in Toit's grammar all share one declaration shape distinguished by
// Name/flags rather than separate node types.
type Method struct {
	comments
	Name          *Identifier
	Parameters    []*Parameter
	ReturnType    Expr // nil if unannotated
	Body          *Sequence // nil for abstract/external methods
	IsStatic      bool
	IsAbstract    bool
	IsConstructor bool
	IsFactory     bool
	IsOperator    bool
	IsSetter      bool
	IsExternal    bool
	Primitive     *PrimitiveRef // non-nil if body is "#primitive.module.name"
	from, to      token.Pos
}

func (n *Method) Pos() token.Pos { return n.from }
func (n *Method) End() token.Pos { return n.to }
func (n *Method) declNode()      {}

// PrimitiveRef names a "#primitive.module.name" body, the escape hatch
// methods use to bind to a VM-provided implementation. This front end
// parses the reference but has nothing to resolve it against (the
// resolver is out of scope).
type PrimitiveRef struct {
	comments
	HashPos token.Pos
	Module  *Identifier
	Name    *Identifier
	to      token.Pos
}

func (n *PrimitiveRef) Pos() token.Pos { return n.HashPos }
func (n *PrimitiveRef) End() token.Pos { return n.to }

// Field is a class-level field declaration, optionally with a default
// value expression and/or a type annotation.
type Field struct {
	comments
	Name     *Identifier
	Type     Expr
	Default  Expr
	IsStatic bool
	IsFinal  bool
	from, to token.Pos
}

func (n *Field) Pos() token.Pos { return n.from }
func (n *Field) End() token.Pos { return n.to }
func (n *Field) declNode()      {}
