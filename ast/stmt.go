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

import "github.com/toitlang/toitc/token"

// Sequence is a braces-free, indentation-delimited block of statements --
// a method body, an if/else branch, a loop body, or a top-level unit's
// implicit top sequence. It is the one node type every indented construct
// bottoms out in.
type Sequence struct {
	comments
	Statements []Stmt
	from, to   token.Pos
}

func (n *Sequence) Pos() token.Pos { return n.from }
func (n *Sequence) End() token.Pos { return n.to }
func (n *Sequence) stmtNode()      {}

// SetRange records the sequence's span once its closing DEDENT (or EOF)
// has been located; the parser always constructs a Sequence before it
// knows the end position.
func (n *Sequence) SetRange(from, to token.Pos) {
	n.from, n.to = from, to
}

// If is an "if cond:\n  then\nelse:\n  else_" statement. Else is nil if
// there is no else branch; a chained "else if" is represented as a
// Sequence containing a single If statement, matching how the parser
// naturally recurses.
type If struct {
	comments
	IfPos token.Pos
	Cond  Expr
	Then  *Sequence
	Else  *Sequence
}

func (n *If) Pos() token.Pos { return n.IfPos }
func (n *If) End() token.Pos {
	if n.Else != nil {
		return n.Else.End()
	}
	return n.Then.End()
}
func (n *If) stmtNode() {}

// While is a "while cond:\n  body" loop.
type While struct {
	comments
	WhilePos token.Pos
	Cond     Expr
	Body     *Sequence
}

func (n *While) Pos() token.Pos { return n.WhilePos }
func (n *While) End() token.Pos { return n.Body.End() }
func (n *While) stmtNode()      {}

// For is a "for init; cond; update:\n  body" loop. Any of Init/Cond/Update
// may be nil for the corresponding clause being omitted.
type For struct {
	comments
	ForPos token.Pos
	Init   Stmt
	Cond   Expr
	Update Stmt
	Body   *Sequence
}

func (n *For) Pos() token.Pos { return n.ForPos }
func (n *For) End() token.Pos { return n.Body.End() }
func (n *For) stmtNode()      {}

// Return is a "return" or "return expr" statement.
type Return struct {
	comments
	ReturnPos token.Pos
	Value     Expr // nil for a bare return
	to        token.Pos
}

func (n *Return) Pos() token.Pos { return n.ReturnPos }
func (n *Return) End() token.Pos { return n.to }
func (n *Return) stmtNode()      {}

// BranchKind distinguishes break/continue.
type BranchKind int

const (
	BranchBreak BranchKind = iota
	BranchContinue
)

// Branch is a "break" or "continue" statement, with an optional labeled
// target and an optional value (Toit's "break value" escapes a block with
// a result).
type Branch struct {
	comments
	KeywordPos token.Pos
	Kind       BranchKind
	Label      *Identifier
	Value      Expr
	to         token.Pos
}

func (n *Branch) Pos() token.Pos { return n.KeywordPos }
func (n *Branch) End() token.Pos { return n.to }
func (n *Branch) stmtNode()      {}

// Try is a "try:\n  body\nfinally:\n  finally_" statement. Toit's try
// construct has no catch clauses of its own (exceptions are caught via
// the "catch:" block-argument call convention, parsed as an ordinary
// Call); only the finally clause is special syntax.
type Try struct {
	comments
	TryPos  token.Pos
	Body    *Sequence
	Finally *Sequence // nil if no finally clause
}

func (n *Try) Pos() token.Pos { return n.TryPos }
func (n *Try) End() token.Pos {
	if n.Finally != nil {
		return n.Finally.End()
	}
	return n.Body.End()
}
func (n *Try) stmtNode() {}

// Assert is an "assert: cond" statement.
type Assert struct {
	comments
	AssertPos token.Pos
	Cond      Expr
}

func (n *Assert) Pos() token.Pos { return n.AssertPos }
func (n *Assert) End() token.Pos { return n.Cond.End() }
func (n *Assert) stmtNode()      {}

// Declaration wraps a local variable declaration statement, "name := value"
// or "name ::= value", inside a Sequence. (Non-local assignments to an
// already-declared name parse as plain *Assignment expression statements;
// this node exists only to mark "this identifier is newly bound here" for
// later tooling, since the parser otherwise has no other place to record
// that fact once the walrus operators elaborate into *Assignment.)
type Declaration struct {
	comments
	Assignment *Assignment
	IsFinal    bool
}

func (n *Declaration) Pos() token.Pos { return n.Assignment.Pos() }
func (n *Declaration) End() token.Pos { return n.Assignment.End() }
func (n *Declaration) stmtNode()      {}
