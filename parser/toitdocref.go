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

package parser

import (
	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

// ParseToitdocReference is the parser's secondary entry point, invoked by
// package toitdoc for every "$name" or "$(signature)" embedded in a
// comment block. The caller is expected to have positioned the Parser's
// scanner at the first byte after the "$" (see toitdoc.parseRef) and to
// pass a diag.Sink that downgrades everything to warnings
// (diag.SeverityAdjusting) -- a broken $ref never fails the surrounding
// unit.
//
// Two grammars share this entry point: an identifier-reference (a dotted
// path, optionally an operator name, optionally a trailing attached "="
// for a setter) and a signature-reference (a parenthesized
// "(name parameter*)" that disambiguates an overload by parameter shape).
func (p *Parser) ParseToitdocReference() *ast.ToitdocReference {
	ref := &ast.ToitdocReference{}
	start := p.peekRange().From
	end := start

	if p.cur().tok == token.LPAREN {
		p.consume()
		ref.Signature = p.parseToitdocSignature()
		if p.cur().tok == token.RPAREN {
			end = p.consume().rng.To
		} else {
			p.errorExpected(p.cur(), token.RPAREN)
			end = p.peekRange().From
		}
	} else {
		seg := p.parseToitdocName()
		ref.Segments = append(ref.Segments, seg)
		end = seg.End()
		// The dotted path only continues while both the "." and the
		// identifier after it are attached; "$foo. More text" ends the
		// reference at "foo", with the period belonging to the prose.
		for p.cur().tok == token.PERIOD && p.cur().attached {
			next := p.queue.Get(0)
			if next.Token != token.IDENTIFIER || !next.IsAttached {
				break
			}
			p.consume()
			seg = p.parseToitdocName()
			ref.Segments = append(ref.Segments, seg)
			end = seg.End()
		}
		if p.cur().tok == token.ASSIGN && p.cur().attached {
			end = p.consume().rng.To
			ref.IsSetter = true
		}
	}

	ref.SetRange(start, end)
	return ref
}

// parseToitdocSignature parses the inside of a "(name parameter*)"
// signature reference; the caller consumes both parens itself.
func (p *Parser) parseToitdocSignature() *ast.ToitdocSignature {
	sig := &ast.ToitdocSignature{Name: p.parseToitdocName()}
	for p.cur().tok != token.RPAREN && p.cur().tok != token.EOS {
		sig.Parameters = append(sig.Parameters, p.parseToitdocSignatureParam())
	}
	return sig
}

func (p *Parser) parseToitdocSignatureParam() *ast.ToitdocSignatureParam {
	switch p.cur().tok {
	case token.LBRACK:
		p.consume()
		name := p.parseIdentifierOrSync()
		p.expect(token.RBRACK)
		return &ast.ToitdocSignatureParam{Name: name, IsBlock: true}
	case token.DECREMENT:
		p.consume()
		return &ast.ToitdocSignatureParam{Name: p.parseIdentifierOrSync(), IsNamed: true}
	default:
		return &ast.ToitdocSignatureParam{Name: p.parseIdentifierOrSync()}
	}
}

// parseToitdocName parses one segment of a dotted reference path: either a
// plain identifier or an operator name ("==", "+", "[]", "[]=", "[..]"),
// the latter reassembled from its constituent tokens, the same family of
// bracket-operator spellings the class-member grammar recognizes for
// "operator []" declarations.
func (p *Parser) parseToitdocName() *ast.Identifier {
	c := p.cur()
	if c.tok == token.IDENTIFIER {
		p.consume()
		return &ast.Identifier{NamePos: c.rng.From, Name: c.data}
	}
	if isToitdocOperatorStart(c.tok) {
		return p.parseToitdocOperatorName()
	}
	p.reportErrorAt(c.rng, "expected identifier or operator name in toitdoc reference, found %s", c.tok)
	p.forceProgress()
	return &ast.Identifier{NamePos: c.rng.From}
}

func (p *Parser) parseToitdocOperatorName() *ast.Identifier {
	start := p.consume()
	from, to := start.rng.From, start.rng.To
	if start.tok == token.LBRACK {
		for p.cur().tok != token.RBRACK && p.cur().tok != token.EOS && p.cur().attached {
			p.consume()
		}
		if p.cur().tok == token.RBRACK {
			to = p.cur().rng.To
			p.consume()
		}
		if p.cur().tok == token.ASSIGN && p.cur().attached {
			to = p.cur().rng.To
			p.consume()
		}
	}
	text := p.rawText(token.Range{From: from, To: to})
	return &ast.Identifier{NamePos: from, Name: symbol.Synthetic(text)}
}

func isToitdocOperatorStart(k token.Kind) bool {
	switch k {
	case token.EQ, token.NE, token.LT, token.GT, token.LTE, token.GTE,
		token.ADD, token.SUB, token.MUL, token.DIV, token.MOD,
		token.BIT_OR, token.BIT_XOR, token.BIT_AND, token.BIT_SHL, token.BIT_SHR, token.BIT_USHR,
		token.BIT_NOT, token.SLICE, token.LBRACK:
		return true
	default:
		return false
	}
}
