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

// This file collects the small constructor + SetEnd/SetRange pairs the
// parser needs to fill in a node's unexported position fields once its
// end (and, for a few kinds discovered only after their body, start) is
// known. Every exported field is still set directly via a struct
// literal by the caller; only from/to stay unexported; the pattern
// mirrors Sequence.SetRange and Unit.SetRange above.

func NewImport(pos token.Pos) *Import { return &Import{ImportPos: pos} }
func (n *Import) SetEnd(to token.Pos) { n.to = to }

func NewExport(pos token.Pos) *Export { return &Export{ExportPos: pos} }
func (n *Export) SetEnd(to token.Pos) { n.to = to }

func NewClass(pos token.Pos) *Class  { return &Class{KeywordPos: pos} }
func (n *Class) SetEnd(to token.Pos) { n.to = to }

func NewParameter(from token.Pos) *Parameter { return &Parameter{from: from} }
func (n *Parameter) SetEnd(to token.Pos)     { n.to = to }

func NewMethod(from token.Pos) *Method { return &Method{from: from} }
func (n *Method) SetEnd(to token.Pos)  { n.to = to }

func NewPrimitiveRef(hashPos token.Pos) *PrimitiveRef { return &PrimitiveRef{HashPos: hashPos} }
func (n *PrimitiveRef) SetEnd(to token.Pos)           { n.to = to }

func NewField(from token.Pos) *Field { return &Field{from: from} }
func (n *Field) SetEnd(to token.Pos) { n.to = to }

func NewLiteral(from, to token.Pos, kind LiteralKind, data *symbol.Symbol, value bool) *Literal {
	return &Literal{from: from, to: to, Kind: kind, Data: data, Value: value}
}

func NewStringLiteral(from, to token.Pos, multiline bool, segments []string, interpolations []Expr, formats []string) *StringLiteral {
	return &StringLiteral{from: from, to: to, Multiline: multiline, Segments: segments, Interpolations: interpolations, Formats: formats}
}

func NewCollectionLiteral(from token.Pos, kind CollectionKind) *CollectionLiteral {
	return &CollectionLiteral{from: from, Kind: kind}
}
func (n *CollectionLiteral) SetEnd(to token.Pos) { n.to = to }

func NewIndex(from token.Pos) *Index { return &Index{} }
func (n *Index) SetEnd(to token.Pos) { n.to = to }

func NewCall(from token.Pos) *Call { return &Call{} }
func (n *Call) SetEnd(to token.Pos) { n.to = to }

func NewParenthesized(from token.Pos) *Parenthesized { return &Parenthesized{from: from} }
func (n *Parenthesized) SetEnd(to token.Pos)          { n.to = to }

func NewLambda(from token.Pos) *Lambda { return &Lambda{from: from} }
func (n *Lambda) SetEnd(to token.Pos)  { n.to = to }

func NewTypeAnnotation(name Expr) *TypeAnnotation { return &TypeAnnotation{Name: name} }
func (n *TypeAnnotation) SetEnd(to token.Pos)      { n.to = to }

func NewReturn(pos token.Pos) *Return { return &Return{ReturnPos: pos} }
func (n *Return) SetEnd(to token.Pos) { n.to = to }

func NewBranch(pos token.Pos, kind BranchKind) *Branch { return &Branch{KeywordPos: pos, Kind: kind} }
func (n *Branch) SetEnd(to token.Pos)                  { n.to = to }

func (n *ToitdocReference) SetRange(from, to token.Pos) { n.from, n.to = from, to }
