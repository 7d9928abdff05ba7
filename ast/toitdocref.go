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

// ToitdocReference is the result of parsing one "$name" or "$(signature)"
// cross-reference embedded in a toitdoc comment. It is never part of a
// Unit's normal Decls/Nodes tree -- the toitdoc parser builds one of these
// per "$..." it encounters by re-entering the main parser (see
// parser.Parser.ParseToitdocReference) and stores it in a toitdoc.Doc's
// Refs list instead, exactly as the original's
// Toitdoc<ast::Node*>::refs() does.
type ToitdocReference struct {
	comments
	from, to token.Pos

	// Segments is the dotted path, e.g. "foo.Bar.baz" or an operator name
	// ("==", "[]", "[]="). A signature reference's head name is
	// Segments[len(Segments)-1].
	Segments []*Identifier
	// IsSetter records a trailing attached "=" on the last segment, e.g.
	// "$foo.bar=".
	IsSetter bool
	// Signature is non-nil for a parenthesized reference, "$(name param*)".
	Signature *ToitdocSignature
}

func (n *ToitdocReference) Pos() token.Pos { return n.from }
func (n *ToitdocReference) End() token.Pos { return n.to }
func (n *ToitdocReference) exprNode()      {}

// ToitdocSignatureParam is one parameter of a signature reference: a bare
// name, a "[name]" block parameter, or a "--name" named parameter.
type ToitdocSignatureParam struct {
	Name    *Identifier
	IsBlock bool
	IsNamed bool
}

// ToitdocSignature is the parenthesized parameter-shape selector of a
// signature reference, used to disambiguate overloads ("$(foo a b)" vs
// "$(foo a --b)").
type ToitdocSignature struct {
	Name       *Identifier
	Parameters []*ToitdocSignatureParam
}
