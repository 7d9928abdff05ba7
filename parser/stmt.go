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
	"fmt"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/token"
)

// parseStatement parses one statement inside a Sequence: a control-flow
// construct, or (by default) a declaration/expression statement.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().tok {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.TRY:
		return p.parseTry()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBranch(ast.BranchBreak)
	case token.CONTINUE:
		return p.parseBranch(ast.BranchContinue)
	case token.ASSERT:
		return p.parseAssert()
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement parses a local declaration or a plain expression
// statement; it is also what a for-loop's init/update clause reduces to.
func (p *Parser) parseSimpleStatement() ast.Stmt {
	expr := p.parseExpr()
	if asn, ok := expr.(*ast.Assignment); ok && (asn.Op == token.DEFINE || asn.Op == token.DEFINE_FINAL) {
		return &ast.Declaration{Assignment: asn, IsFinal: asn.Op == token.DEFINE_FINAL}
	}
	if s, ok := expr.(ast.Stmt); ok {
		return s
	}
	return nil
}

// parseIf parses "if cond:\n  then" with an optional "else:\n  else_" or
// "else if ...". The condition is parsed with an IF_CONDITION frame on the
// indentation stack so that a call inside the condition does not mistake
// the if's own trailing ":" for its own block argument.
//
// An "else" at the column of the outer of several nested ifs binds to the
// outermost one by construction: when an inner if's body closes, the
// sticky DEDENT covering the "else" line stays current until the frame at
// the else's own column has popped, so only the if whose body frame sits
// at that column ever sees the ELSE token directly.
func (p *Parser) parseIf() *ast.If {
	start := p.consume() // IF
	level := start.indentation
	n := &ast.If{IfPos: start.rng.From}
	p.indentStack.Push(level, KindIfCondition, start.rng)
	n.Cond = p.parseExpr()
	p.indentStack.PopOne()
	p.expect(token.COLON)
	n.Then = p.parseBody(KindIfBody, level)
	if p.cur().tok == token.ELSE {
		p.consume()
		if p.cur().tok == token.IF {
			elseIf := p.parseIf()
			n.Else = &ast.Sequence{Statements: []ast.Stmt{elseIf}}
			n.Else.SetRange(elseIf.Pos(), elseIf.End())
			return n
		}
		p.expect(token.COLON)
		n.Else = p.parseBody(KindIfBody, level)
	}
	return n
}

// parseWhile parses "while cond:\n  body".
func (p *Parser) parseWhile() *ast.While {
	start := p.consume() // WHILE
	n := &ast.While{WhilePos: start.rng.From}
	p.indentStack.Push(start.indentation, KindWhileCondition, start.rng)
	n.Cond = p.parseExpr()
	p.indentStack.PopOne()
	p.expect(token.COLON)
	n.Body = p.parseBody(KindWhileBody, start.indentation)
	return n
}

// parseFor parses the C-style "for init; cond; update:\n  body" loop. Each
// clause gets its own indentation-stack frame, matching the original's
// FOR_INIT/FOR_CONDITION/FOR_UPDATE/FOR_BODY transitions, so that a call
// inside e.g. the update clause can't swallow the loop's own ":".
func (p *Parser) parseFor() *ast.For {
	start := p.consume() // FOR
	n := &ast.For{ForPos: start.rng.From}

	p.indentStack.Push(start.indentation, KindForInit, start.rng)
	if p.cur().tok != token.SEMICOLON {
		n.Init = p.parseSimpleStatement()
	}
	p.expect(token.SEMICOLON)
	p.indentStack.PopOne()

	p.indentStack.Push(start.indentation, KindForCondition, start.rng)
	if p.cur().tok != token.SEMICOLON {
		n.Cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	p.indentStack.PopOne()

	p.indentStack.Push(start.indentation, KindForUpdate, start.rng)
	if p.cur().tok != token.COLON {
		n.Update = p.parseSimpleStatement()
	}
	p.indentStack.PopOne()

	p.expect(token.COLON)
	n.Body = p.parseBody(KindForBody, start.indentation)
	return n
}

// parseTry parses "try:\n  body" with an optional "finally:\n  finally_"
// clause. Toit's try has no catch clauses of its own; exceptions are caught
// via the ordinary "catch:" block-argument call convention. A "finally" at
// the column of the outermost of several same-column trys binds to that
// outermost one, for the same sticky-DEDENT reason parseIf documents.
func (p *Parser) parseTry() *ast.Try {
	start := p.consume() // TRY
	n := &ast.Try{TryPos: start.rng.From}
	p.expect(token.COLON)
	n.Body = p.parseBody(KindTry, start.indentation)
	if p.cur().tok == token.FINALLY {
		p.consume()
		p.expect(token.COLON)
		n.Finally = p.parseBody(KindTry, start.indentation)
	}
	return n
}

// parseAssert parses "assert: cond", a single-line statement (not an
// indented block) despite the colon.
func (p *Parser) parseAssert() *ast.Assert {
	start := p.consume() // ASSERT
	n := &ast.Assert{AssertPos: start.rng.From}
	p.expect(token.COLON)
	n.Cond = p.parseExpr()
	return n
}

// hasStatementValue reports whether the current token could start the
// optional trailing value of a return/break/continue statement, as opposed
// to the statement ending right there (dedent, EOS, or a new line).
func (p *Parser) hasStatementValue() bool {
	c := p.cur()
	if c.atNewline || c.tok == token.DEDENT || c.tok == token.EOS {
		return false
	}
	return true
}

// parseReturn parses "return" or "return expr". The deprecated
// "return.label" spelling is still accepted (with a warning) and its label
// discarded, since this front end's Return node carries no label -- only
// break/continue do, per the original grammar.
func (p *Parser) parseReturn() *ast.Return {
	start := p.consume() // RETURN
	n := ast.NewReturn(start.rng.From)
	if p.cur().tok == token.PERIOD {
		p.consume()
		p.reportWarningAt(p.peekRange(), "'return.label' is deprecated")
		p.parseIdentifierOrSync()
	}
	if p.hasStatementValue() {
		n.Value = p.parseExpr()
	}
	n.SetEnd(p.peekRange().From)
	return n
}

// parseBranch parses "break"/"continue", with an optional ".label" and an
// optional value ("break value" escapes a block with a result).
func (p *Parser) parseBranch(kind ast.BranchKind) *ast.Branch {
	start := p.consume() // BREAK or CONTINUE
	n := ast.NewBranch(start.rng.From, kind)
	if p.cur().tok == token.PERIOD {
		p.consume()
		n.Label = p.parseIdentifierOrSync()
	}
	if p.hasStatementValue() {
		n.Value = p.parseExpr()
	}
	n.SetEnd(p.peekRange().From)
	return n
}

// reportWarningAt reports a non-fatal diagnostic at rng, the Warning
// counterpart of reportErrorAt.
func (p *Parser) reportWarningAt(rng token.Range, format string, args ...interface{}) {
	p.diags.Report(diag.Diagnostic{
		Severity: diag.Warning,
		Range:    rng,
		Location: p.src.Location(rng.From),
		Message:  fmt.Sprintf(format, args...),
	})
}
