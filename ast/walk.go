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

// Visitor is implemented by callers that want to walk a tree without
// hand-rolling the recursion for every node type, mirroring cue/ast's
// Walk/Visitor pair. Before returns the visitor to recurse into n's
// children with (or nil to skip them); After runs once children (if any)
// have been visited.
type Visitor interface {
	Before(n Node) (w Visitor)
	After(n Node)
}

// Walk traverses n and its children in source order, calling v.Before on
// entry and v.After on exit of every node, exactly as ast.Walk does in
// cue/ast/walk.go.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	w := v.Before(n)
	if w != nil {
		walkChildren(w, n)
	}
	v.After(n)
}

func walkChildren(v Visitor, n Node) {
	switch n := n.(type) {
	case *Unit:
		for _, imp := range n.Imports {
			Walk(v, imp)
		}
		for _, exp := range n.Exports {
			Walk(v, exp)
		}
		for _, d := range n.Decls {
			Walk(v, d)
		}
	case *Import:
		for _, s := range n.Segments {
			Walk(v, s)
		}
		if n.Prefix != nil {
			Walk(v, n.Prefix)
		}
		for _, s := range n.Show {
			Walk(v, s)
		}
	case *Export:
		for _, s := range n.Names {
			Walk(v, s)
		}
	case *Class:
		Walk(v, n.Name)
		if n.Super != nil {
			Walk(v, n.Super)
		}
		for _, i := range n.Interfaces {
			Walk(v, i)
		}
		for _, m := range n.Mixins {
			Walk(v, m)
		}
		for _, m := range n.Members {
			Walk(v, m)
		}
	case *Method:
		Walk(v, n.Name)
		for _, p := range n.Parameters {
			Walk(v, p)
		}
		if n.ReturnType != nil {
			Walk(v, n.ReturnType)
		}
		if n.Primitive != nil {
			Walk(v, n.Primitive)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *Parameter:
		Walk(v, n.Name)
		if n.Type != nil {
			Walk(v, n.Type)
		}
		if n.Default != nil {
			Walk(v, n.Default)
		}
	case *Field:
		Walk(v, n.Name)
		if n.Type != nil {
			Walk(v, n.Type)
		}
		if n.Default != nil {
			Walk(v, n.Default)
		}
	case *Sequence:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *While:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *For:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Update != nil {
			Walk(v, n.Update)
		}
		Walk(v, n.Body)
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Branch:
		if n.Label != nil {
			Walk(v, n.Label)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Try:
		Walk(v, n.Body)
		if n.Finally != nil {
			Walk(v, n.Finally)
		}
	case *Assert:
		Walk(v, n.Cond)
	case *Declaration:
		Walk(v, n.Assignment)
	case *Dot:
		Walk(v, n.Target)
		Walk(v, n.Name)
	case *Index:
		Walk(v, n.Target)
		if n.Index != nil {
			Walk(v, n.Index)
		}
		if n.From != nil {
			Walk(v, n.From)
		}
		if n.To != nil {
			Walk(v, n.To)
		}
	case *Call:
		Walk(v, n.Callee)
		for _, a := range n.Arguments {
			Walk(v, a.Value)
		}
	case *Unary:
		Walk(v, n.Expr)
	case *Binary:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Assignment:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *Conditional:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		Walk(v, n.Else)
	case *Parenthesized:
		Walk(v, n.LParen)
	case *Lambda:
		for _, p := range n.Parameters {
			Walk(v, p)
		}
		Walk(v, n.Body)
	case *TypeAnnotation:
		Walk(v, n.Name)
	case *CollectionLiteral:
		for _, k := range n.Keys {
			Walk(v, k)
		}
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *PrimitiveRef:
		Walk(v, n.Module)
		Walk(v, n.Name)
	case *StringLiteral:
		for _, e := range n.Interpolations {
			Walk(v, e)
		}
	case *Identifier, *LspSelection, *Literal, *ToitdocReference:
		// leaves
	}
}

// TraversingVisitor is a Visitor whose embedders only need to override
// Before/After for the node kinds they care about; everything else is
// traversed with no side effect, matching the convenience base type
// pattern common in the pack's AST-walking code.
type TraversingVisitor struct {
	BeforeFunc func(Node) bool
	AfterFunc  func(Node)
}

func (t *TraversingVisitor) Before(n Node) Visitor {
	if t.BeforeFunc != nil && !t.BeforeFunc(n) {
		return nil
	}
	return t
}

func (t *TraversingVisitor) After(n Node) {
	if t.AfterFunc != nil {
		t.AfterFunc(n)
	}
}
