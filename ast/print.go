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
	"fmt"
	"strings"

	"github.com/toitlang/toitc/token"
)

// Printer renders a tree back to Toit-ish source text. It is a debugging
// aid, not the language's formatter (see SPEC_FULL.md §4.G) -- output is
// readable and round-trips structurally, but makes no promises about
// matching whatever canonical style a real "toit fmt" would produce,
// mirroring cue/parser/print.go's similarly unambitious debug printer.
type Printer struct {
	sb     strings.Builder
	indent int
}

// Print renders n and returns the resulting text.
func Print(n Node) string {
	p := &Printer{}
	p.node(n)
	return p.sb.String()
}

func (p *Printer) writeIndent() {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
}

func (p *Printer) node(n Node) {
	switch n := n.(type) {
	case *Unit:
		for _, imp := range n.Imports {
			p.node(imp)
			p.sb.WriteByte('\n')
		}
		for _, exp := range n.Exports {
			p.node(exp)
			p.sb.WriteByte('\n')
		}
		for i, d := range n.Decls {
			if i > 0 {
				p.sb.WriteByte('\n')
			}
			p.node(d)
		}
	case *Import:
		p.sb.WriteString("import ")
		p.sb.WriteString(strings.Repeat(".", n.Dots))
		p.identList(n.Segments, ".")
		if n.Prefix != nil {
			p.sb.WriteString(" as ")
			p.node(n.Prefix)
		}
		if n.ShowAll {
			p.sb.WriteString(" show *")
		} else if len(n.Show) > 0 {
			p.sb.WriteString(" show ")
			p.identList(n.Show, " ")
		}
	case *Export:
		p.sb.WriteString("export ")
		if n.ExportAll {
			p.sb.WriteString("*")
		} else {
			p.identList(n.Names, " ")
		}
	case *Class:
		switch n.Kind {
		case ClassKindInterface:
			p.sb.WriteString("interface ")
		case ClassKindMixin:
			p.sb.WriteString("mixin ")
		case ClassKindMonitor:
			p.sb.WriteString("monitor ")
		default:
			if n.IsAbstract {
				p.sb.WriteString("abstract class ")
			} else {
				p.sb.WriteString("class ")
			}
		}
		p.node(n.Name)
		if n.Super != nil {
			p.sb.WriteString(" extends ")
			p.node(n.Super)
		}
		if len(n.Mixins) > 0 {
			p.sb.WriteString(" with ")
			p.identList(n.Mixins, " ")
		}
		if len(n.Interfaces) > 0 {
			p.sb.WriteString(" implements ")
			p.identList(n.Interfaces, " ")
		}
		p.sb.WriteString(":\n")
		p.indent++
		for _, m := range n.Members {
			p.writeIndent()
			p.node(m)
			p.sb.WriteByte('\n')
		}
		p.indent--
	case *Method:
		p.writeMethodSignature(n)
		if n.Primitive != nil {
			p.sb.WriteString(":\n")
			p.indent++
			p.writeIndent()
			fmt.Fprintf(&p.sb, "#primitive.%s.%s\n", n.Primitive.Module.Name, n.Primitive.Name.Name)
			p.indent--
		} else if n.Body != nil {
			p.sb.WriteString(":\n")
			p.indent++
			p.node(n.Body)
			p.indent--
		} else {
			p.sb.WriteByte('\n')
		}
	case *Field:
		if n.IsStatic {
			p.sb.WriteString("static ")
		}
		p.node(n.Name)
		if n.Type != nil {
			p.sb.WriteByte('/')
			p.node(n.Type)
		}
		if n.Default != nil {
			if n.IsFinal {
				p.sb.WriteString(" ::= ")
			} else {
				p.sb.WriteString(" := ")
			}
			p.node(n.Default)
		}
	case *Sequence:
		for _, s := range n.Statements {
			p.writeIndent()
			p.node(s)
			p.sb.WriteByte('\n')
		}
	case *If:
		p.sb.WriteString("if ")
		p.node(n.Cond)
		p.sb.WriteString(":\n")
		p.indent++
		p.node(n.Then)
		p.indent--
		if n.Else != nil {
			p.writeIndent()
			p.sb.WriteString("else:\n")
			p.indent++
			p.node(n.Else)
			p.indent--
		}
	case *While:
		p.sb.WriteString("while ")
		p.node(n.Cond)
		p.sb.WriteString(":\n")
		p.indent++
		p.node(n.Body)
		p.indent--
	case *Return:
		p.sb.WriteString("return")
		if n.Value != nil {
			p.sb.WriteString(" ")
			p.node(n.Value)
		}
	case *Branch:
		if n.Kind == BranchBreak {
			p.sb.WriteString("break")
		} else {
			p.sb.WriteString("continue")
		}
		if n.Value != nil {
			p.sb.WriteString(" ")
			p.node(n.Value)
		}
	case *Identifier:
		p.sb.WriteString(n.Name.Text())
	case *LspSelection:
		p.sb.WriteString(n.Name.Text())
	case *Literal:
		if n.IsNegated {
			p.sb.WriteByte('-')
		}
		if n.Data != nil {
			p.sb.WriteString(n.Data.Text())
		} else if n.Kind == LiteralBoolean {
			if n.Value {
				p.sb.WriteString("true")
			} else {
				p.sb.WriteString("false")
			}
		} else {
			p.sb.WriteString("null")
		}
	case *StringLiteral:
		p.sb.WriteByte('"')
		for i, seg := range n.Segments {
			p.sb.WriteString(seg)
			if i < len(n.Interpolations) {
				p.sb.WriteByte('$')
				p.node(n.Interpolations[i])
			}
		}
		p.sb.WriteByte('"')
	case *Dot:
		p.node(n.Target)
		p.sb.WriteByte('.')
		p.node(n.Name)
	case *Index:
		p.node(n.Target)
		p.sb.WriteByte('[')
		if n.IsSlice {
			if n.From != nil {
				p.node(n.From)
			}
			p.sb.WriteString("..")
			if n.To != nil {
				p.node(n.To)
			}
		} else {
			p.node(n.Index)
		}
		p.sb.WriteByte(']')
	case *Call:
		p.node(n.Callee)
		p.sb.WriteByte('(')
		for i, a := range n.Arguments {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if a.Name != nil {
				p.sb.WriteString("--")
				p.sb.WriteString(a.Name.Name.Text())
				if !a.IsBoolFlag {
					p.sb.WriteByte(' ')
					p.node(a.Value)
				}
			} else {
				p.node(a.Value)
			}
		}
		p.sb.WriteByte(')')
	case *Unary:
		if n.IsPostfix {
			p.node(n.Expr)
			p.sb.WriteString(n.Op.String())
		} else {
			p.sb.WriteString(n.Op.String())
			if n.Op == token.NOT {
				p.sb.WriteByte(' ')
			}
			p.node(n.Expr)
		}
	case *Binary:
		p.node(n.Left)
		p.sb.WriteByte(' ')
		p.sb.WriteString(n.Op.String())
		p.sb.WriteByte(' ')
		p.node(n.Right)
	case *Assignment:
		p.node(n.Target)
		p.sb.WriteByte(' ')
		p.sb.WriteString(n.Op.String())
		p.sb.WriteByte(' ')
		p.node(n.Value)
	case *Conditional:
		p.node(n.Cond)
		p.sb.WriteString(" ? ")
		p.node(n.Then)
		p.sb.WriteString(" : ")
		p.node(n.Else)
	case *Parenthesized:
		p.sb.WriteByte('(')
		p.node(n.LParen)
		p.sb.WriteByte(')')
	case *Lambda:
		if n.IsBlock {
			p.sb.WriteString(": ")
		} else {
			p.sb.WriteString(":: ")
		}
		p.node(n.Body)
	case *TypeAnnotation:
		p.node(n.Name)
		if n.Nullable {
			p.sb.WriteByte('?')
		}
	case *CollectionLiteral:
		p.printCollectionLiteral(n)
	case *Declaration:
		p.node(n.Assignment)
	case *Try:
		p.sb.WriteString("try:\n")
		p.indent++
		p.node(n.Body)
		p.indent--
		if n.Finally != nil {
			p.writeIndent()
			p.sb.WriteString("finally:\n")
			p.indent++
			p.node(n.Finally)
			p.indent--
		}
	case *Assert:
		p.sb.WriteString("assert: ")
		p.node(n.Cond)
	case *For:
		p.sb.WriteString("for ")
		if n.Init != nil {
			p.node(n.Init)
		}
		p.sb.WriteString("; ")
		if n.Cond != nil {
			p.node(n.Cond)
		}
		p.sb.WriteString("; ")
		if n.Update != nil {
			p.node(n.Update)
		}
		p.sb.WriteString(":\n")
		p.indent++
		p.node(n.Body)
		p.indent--
	default:
		fmt.Fprintf(&p.sb, "<%T>", n)
	}
}

func (p *Printer) printCollectionLiteral(n *CollectionLiteral) {
	open, close := "[", "]"
	if n.Kind == CollectionByteArray {
		open = "#["
	} else if n.Kind == CollectionSet || n.Kind == CollectionMap {
		open, close = "{", "}"
	}
	p.sb.WriteString(open)
	if n.Kind == CollectionMap && len(n.Elements) == 0 {
		p.sb.WriteByte(':')
	}
	for i, e := range n.Elements {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		if n.Kind == CollectionMap {
			p.node(n.Keys[i])
			p.sb.WriteByte(':')
		}
		p.node(e)
	}
	p.sb.WriteString(close)
}

func (p *Printer) identList(ids []*Identifier, sep string) {
	for i, id := range ids {
		if i > 0 {
			p.sb.WriteString(sep)
		}
		p.node(id)
	}
}

func (p *Printer) writeMethodSignature(n *Method) {
	if n.IsStatic {
		p.sb.WriteString("static ")
	}
	if n.IsAbstract {
		p.sb.WriteString("abstract ")
	}
	p.node(n.Name)
	for _, param := range n.Parameters {
		p.sb.WriteByte(' ')
		if param.IsNamed {
			p.sb.WriteString("--")
		}
		if param.IsBlock {
			p.sb.WriteString("[")
		}
		if param.IsThis {
			p.sb.WriteString("this.")
		}
		p.node(param.Name)
		if param.Type != nil {
			p.sb.WriteByte('/')
			p.node(param.Type)
		}
		if param.IsBlock {
			p.sb.WriteString("]")
		}
		if param.Default != nil {
			p.sb.WriteString("=")
			p.node(param.Default)
		}
	}
	if n.ReturnType != nil {
		p.sb.WriteString(" -> ")
		p.node(n.ReturnType)
	}
}
