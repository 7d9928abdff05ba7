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

// Package attacher matches every "///" and "/** ... */" comment a scanner
// collected against the declaration it documents, parsing the matched
// text with package toitdoc and recording the result in a Registry.
//
// The original compiler stores a parsed Toitdoc directly on the ir::Node
// it documents (ast::Declaration::set_toitdoc, ast::Class::set_toitdoc);
// doing the same here would make package ast import package toitdoc,
// which must itself import ast (a Doc's Refs are *ast.ToitdocReference,
// and parsing one re-enters package parser, which imports ast). Instead
// this package owns an explicit side table, modeled on the
// ToitdocRegistry class original_source/toitdoc.h defines for the exact
// same "look up a node's toitdoc after the fact" need, just at a later
// compiler stage than the one used here.
package attacher

import (
	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/toitdoc"
)

// Registry maps a declaration (or the Unit itself, for a module comment)
// to its attached toitdoc, the result of one call to Attach.
type Registry struct {
	byNode map[ast.Node]*toitdoc.Doc
	Module *toitdoc.Doc
}

// Lookup returns the toitdoc attached to n, or nil if none was attached.
func (r *Registry) Lookup(n ast.Node) *toitdoc.Doc {
	if r == nil {
		return nil
	}
	return r.byNode[n]
}

func (r *Registry) set(n ast.Node, doc *toitdoc.Doc) {
	if doc == nil {
		return
	}
	if r.byNode == nil {
		r.byNode = make(map[ast.Node]*toitdoc.Doc)
	}
	r.byNode[n] = doc
}

// Attach matches unit's declarations (top-level classes/methods/fields,
// and every member of every class) against comments and returns the
// resulting Registry, mirroring attach_toitdoc in
// original_source/toitdoc_parser.cc. Toitdoc parse errors are downgraded
// to warnings (see diag.SeverityAdjusting): a malformed comment never
// fails the surrounding unit.
func Attach(unit *ast.Unit, comments []scanner.Comment, src *source.Source, symbols *symbol.Canonicalizer, mgr *source.Manager, diags diag.Sink) *Registry {
	reg := &Registry{}
	if len(comments) == 0 {
		return reg
	}
	if diags == nil {
		diags = diag.NullDiagnostics{}
	}

	toitdocDiags := diag.SeverityAdjusting{Sink: diags, MinSeverity: diag.Warning}
	cm := newCommentsManager(comments, src, symbols, mgr, toitdocDiags)

	var earliest ast.Node
	for _, decl := range unit.Decls {
		if earliest == nil || ast.Range(decl).IsBefore(ast.Range(earliest)) {
			earliest = decl
		}

		if class, ok := decl.(*ast.Class); ok {
			reg.set(class, cm.findFor(class))
			for _, member := range class.Members {
				reg.set(member, cm.findFor(member))
			}
		} else {
			reg.set(decl, cm.findFor(decl))
		}
	}

	for i, c := range comments {
		if !c.IsToitdoc {
			continue
		}
		isModuleComment := false
		switch {
		case earliest == nil:
			isModuleComment = true
		case ast.Range(earliest).IsBefore(c.Range):
			isModuleComment = false
		default:
			declDoc := reg.Lookup(earliest)
			if declDoc.IsValid() {
				isModuleComment = c.Range.To <= declDoc.Range.From
			} else {
				isModuleComment = true
			}
		}
		if isModuleComment {
			reg.Module = cm.makeASTToitdoc(i)
		}
		break
	}

	return reg
}
