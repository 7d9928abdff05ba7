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
	"strings"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/token"
)

// parseExpr parses a full expression, including the lowest-precedence
// assignment and conditional forms. It is also the recursion gate for the
// tree-depth guard: a pathological nesting depth reports one fatal error
// and fast-forwards to end of file instead of overflowing the stack.
func (p *Parser) parseExpr() ast.Expr {
	if p.treeDepth >= maxTreeDepth {
		p.fatalOverflow()
		return &ast.Identifier{NamePos: p.peekRange().From}
	}
	p.treeDepth++
	defer func() { p.treeDepth-- }()
	return p.parseAssignment()
}

func isAssignOp(tok token.Kind) bool {
	switch tok {
	case token.ASSIGN, token.DEFINE, token.DEFINE_FINAL,
		token.ASSIGN_ADD, token.ASSIGN_SUB, token.ASSIGN_MUL, token.ASSIGN_DIV, token.ASSIGN_MOD,
		token.ASSIGN_BIT_OR, token.ASSIGN_BIT_XOR, token.ASSIGN_BIT_AND,
		token.ASSIGN_BIT_SHL, token.ASSIGN_BIT_SHR, token.ASSIGN_BIT_USHR:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseConditional()
	if isAssignOp(p.cur().tok) {
		op := p.consume()
		right := p.parseAssignment()
		return &ast.Assignment{Target: left, Op: op.tok, OpPos: op.rng.From, Value: right}
	}
	return left
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseBinary(token.PrecedenceOr, true)
	if p.cur().tok == token.CONDITIONAL {
		start := p.consume()
		// A CONDITIONAL_THEN frame keeps a call inside the then-branch
		// from mistaking the ternary's own separating ":" for its own
		// block argument (see canConsumeColon).
		p.indentStack.Push(p.cur().indentation, KindConditionalThen, start.rng)
		then := p.parseExpr()
		p.indentStack.PopOne()
		p.expect(token.COLON)
		els := p.parseExpr()
		return &ast.Conditional{Cond: cond, Then: then, Else: els}
	}
	return cond
}

// isBinaryOperator whitelists the tokens parseBinary is allowed to fold
// into a left-associative chain; ASSIGN*/CONDITIONAL are excluded even
// though some carry a Precedence value, since they are parsed by their
// own dedicated (right-associative, or ternary) productions above.
func isBinaryOperator(tok token.Kind) bool {
	switch tok {
	case token.LOGICAL_OR, token.LOGICAL_AND,
		token.EQ, token.NE,
		token.LT, token.GT, token.LTE, token.GTE, token.IS, token.IS_NOT,
		token.BIT_OR, token.BIT_XOR, token.BIT_AND,
		token.BIT_SHL, token.BIT_SHR, token.BIT_USHR,
		token.ADD, token.SUB, token.MUL, token.DIV, token.MOD:
		return true
	default:
		return false
	}
}

// parseBinary implements precedence climbing over the operators in
// isBinaryOperator, using each Kind's own Precedence() so that e.g. "*"
// binds tighter than "+" without a separate production per level.
// allowCall controls whether an operand may itself be a paren-free call:
// a call's own arguments are parsed with allowCall=false, which is what
// makes "foo a b" two arguments of foo rather than foo(a(b)) -- the same
// job the original's PRECEDENCE_CALL slot in the precedence table does.
func (p *Parser) parseBinary(minPrec token.Precedence, allowCall bool) ast.Expr {
	left := p.parseUnary(allowCall)
	for {
		tok := p.cur().tok
		if !isBinaryOperator(tok) {
			return left
		}
		prec := tok.Precedence()
		if prec < minPrec {
			return left
		}
		op := p.consume()
		right := p.parseBinary(prec+1, allowCall)
		left = &ast.Binary{Left: left, Op: op.tok, OpPos: op.rng.From, Right: right}
	}
}

func (p *Parser) parseUnary(allowCall bool) ast.Expr {
	switch p.cur().tok {
	case token.SUB, token.BIT_NOT, token.NOT:
		op := p.consume()
		operand := p.parseUnary(allowCall)
		if op.tok == token.SUB {
			// "-1" is one negated literal, not a unary expression.
			if lit, ok := operand.(*ast.Literal); ok &&
				(lit.Kind == ast.LiteralInteger || lit.Kind == ast.LiteralDouble) && !lit.IsNegated {
				lit.SetNegated(op.rng.From)
				return lit
			}
		}
		return &ast.Unary{OpPos: op.rng.From, Op: op.tok, Expr: operand}
	default:
		if allowCall {
			return p.parseCallable()
		}
		return p.parsePostfix()
	}
}

// parseCallable parses a postfix chain (member access, indexing,
// parenthesized calls) and then, if what results names something
// callable and a further argument can start here, the paren-free call
// form Toit uses pervasively ("list.add 1", "print x").
func (p *Parser) parseCallable() ast.Expr {
	level := p.cur().indentation
	expr := p.parsePostfix()
	if !isCallableTarget(expr) {
		return expr
	}
	if p.canStartBareArgument() || p.startsBlockArgument(level) || p.startsContinuationArgument(level) {
		return p.parseBareCall(expr, level)
	}
	return expr
}

func isCallableTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.LspSelection, *ast.Dot:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		c := p.cur()
		switch {
		case c.tok == token.PERIOD && !c.atNewline:
			p.consume()
			name := p.parseIdentifierOrSync()
			expr = &ast.Dot{Target: expr, Name: name}
		case c.tok == token.LBRACK && c.attached:
			expr = p.parseIndex(expr)
		case c.tok == token.LPAREN && c.attached:
			expr = p.parseParenCall(expr)
		case (c.tok == token.INCREMENT || c.tok == token.DECREMENT) && c.attached:
			// "i++"/"i--"; attachment keeps "foo --flag" named arguments
			// out of this case.
			p.consume()
			expr = &ast.Unary{OpPos: c.rng.From, Op: c.tok, Expr: expr, IsPostfix: true}
		default:
			return expr
		}
	}
}

func (p *Parser) parseIndex(target ast.Expr) ast.Expr {
	p.consume() // LBRACK
	idx := &ast.Index{Target: target}
	if p.cur().tok == token.SLICE {
		p.consume()
		idx.IsSlice = true
		if p.cur().tok != token.RBRACK {
			idx.To = p.parseExpr()
		}
	} else {
		first := p.parseExpr()
		if p.cur().tok == token.SLICE {
			p.consume()
			idx.IsSlice = true
			idx.From = first
			if p.cur().tok != token.RBRACK {
				idx.To = p.parseExpr()
			}
		} else {
			idx.Index = first
		}
	}
	p.expect(token.RBRACK)
	idx.SetEnd(p.peekRange().From)
	return idx
}

// parseParenCall parses an attached-parenthesis call "callee(arg, ...)".
// The parens make the construct self-delimiting, so the argument list
// lives in a DELIMITED frame: nested calls may consume ":" block
// arguments freely, and dedents inside the parens are skipped.
func (p *Parser) parseParenCall(callee ast.Expr) ast.Expr {
	lparen := p.consume() // LPAREN
	call := ast.NewCall(callee.Pos())
	call.Callee = callee
	p.indentStack.PushDelimited(lparen.indentation, KindDelimited, token.RPAREN, lparen.rng)
	for {
		p.skipDelimiterDedents()
		if p.cur().tok == token.RPAREN || p.cur().tok == token.EOS {
			break
		}
		call.Arguments = append(call.Arguments, p.parseArgument())
		p.skipDelimiterDedents()
		if p.cur().tok != token.COMMA {
			break
		}
		p.consume()
	}
	p.expect(token.RPAREN)
	p.popConstruct()
	call.SetEnd(p.peekRange().From)
	return call
}

// canStartBareArgument reports whether the current token could begin a
// paren-free call argument on the same logical line; the atNewline check
// is what keeps two adjacent statements ("foo\nbar") from being merged
// into a single call ("foo bar").
func (p *Parser) canStartBareArgument() bool {
	c := p.cur()
	if c.atNewline {
		return false
	}
	if c.tok == token.SUB {
		// "f -1" passes negative one; "x - 1" is subtraction. The minus
		// starts an argument only when detached from what precedes it but
		// attached to what follows.
		return !c.attached && p.queue.Get(0).IsAttached
	}
	return couldStartArgument(c.tok)
}

func couldStartArgument(tok token.Kind) bool {
	switch tok {
	case token.IDENTIFIER, token.INTEGER, token.DOUBLE, token.CHARACTER,
		token.STRING, token.STRING_MULTI_LINE, token.STRING_PART, token.STRING_PART_MULTI_LINE,
		token.TRUE, token.FALSE, token.NULL,
		token.LPAREN, token.LBRACK, token.LSHARP_BRACK, token.LBRACE,
		token.DECREMENT, token.NAMED_NO, token.SUB, token.BIT_NOT, token.NOT:
		return true
	default:
		return false
	}
}

// startsBlockArgument reports whether the current token is a ":"/"::"
// that this call may take as its block/lambda argument: on the same line
// subject to the indentation-stack consumption walk, or on a fresh line
// indented at or deeper than the call's own column (consumption rule 2).
func (p *Parser) startsBlockArgument(level int) bool {
	c := p.cur()
	if c.tok != token.COLON && c.tok != token.DOUBLE_COLON {
		return false
	}
	if c.atNewline {
		// A ":" on its own line belongs to the call when it sits at or
		// deeper than the call's column.
		return c.indentation >= level
	}
	return p.canConsumeColon(c.tok == token.DOUBLE_COLON)
}

// startsContinuationArgument reports whether the current token begins a
// call argument on its own line: strictly deeper than the call's own
// column, so "foo\n  bar" is foo(bar) while "foo\nbar" is two statements.
func (p *Parser) startsContinuationArgument(level int) bool {
	c := p.cur()
	return c.atNewline && c.tok != token.DEDENT && c.indentation > level && couldStartArgument(c.tok)
}

// parseBareCall parses the paren-free argument list of a call whose
// callee sits on a line indented at level. A CALL frame covers the
// argument list so that nothing nested inside an argument can consume a
// trailing ":" the call itself is waiting for.
func (p *Parser) parseBareCall(callee ast.Expr, level int) ast.Expr {
	call := ast.NewCall(callee.Pos())
	call.Callee = callee
	p.indentStack.Push(level, KindCall, p.peekRange())
	argIndentation := -1
	for {
		if p.canStartBareArgument() {
			call.Arguments = append(call.Arguments, p.parseArgument())
			continue
		}
		if p.startsContinuationArgument(level) {
			c := p.cur()
			if argIndentation == -1 {
				argIndentation = c.indentation
			} else if c.indentation != argIndentation {
				p.reportWarningAt(c.rng, "Unusual argument indentation")
			}
			call.Arguments = append(call.Arguments, p.parseArgument())
			continue
		}
		break
	}
	p.popConstruct()
	for {
		block, ok := p.tryParseBlockArgument(level)
		if !ok {
			break
		}
		call.Arguments = append(call.Arguments, ast.Argument{Value: block})
	}
	call.SetEnd(p.peekRange().From)
	return call
}

// canConsumeColon decides whether a ":" reached right after a call's
// arguments may be consumed as the start of that call's own block/lambda
// argument, by walking the indentation stack from innermost outward:
// an IF_CONDITION/WHILE_CONDITION/FOR_UPDATE/CONDITIONAL_THEN/CALL frame
// forbids it (that frame intends to receive the ":" itself); a
// BLOCK/DELIMITED/LITERAL/TRY frame allows it. "::" follows a laxer
// rule: if/while/ternary never consume a "::", so only an enclosing CALL
// frame blocks a lambda argument.
func (p *Parser) canConsumeColon(isDoubleColon bool) bool {
	for i := p.indentStack.Size() - 1; i >= 0; i-- {
		switch p.indentStack.entries[i].kind {
		case KindCall:
			return false
		case KindIfCondition, KindWhileCondition, KindForUpdate, KindConditionalThen:
			if !isDoubleColon {
				return false
			}
		case KindBlock, KindDelimited, KindLiteral, KindTry:
			return true
		}
	}
	return true
}

// tryParseBlockArgument consumes a trailing ":"/"::" block or lambda
// argument if one is present and the indentation stack allows consuming
// it here.
func (p *Parser) tryParseBlockArgument(level int) (ast.Expr, bool) {
	if !p.startsBlockArgument(level) {
		return nil, false
	}
	return p.parseBlockOrLambda(level), true
}

// parseBlockOrLambda parses the body following a block/lambda-introducing
// ":" or "::" (already current, not yet consumed), including its optional
// bracket-wrapped parameter list. level is the column of the call line
// the block belongs to; the block's body must be indented deeper.
func (p *Parser) parseBlockOrLambda(level int) ast.Expr {
	start := p.consume() // COLON or DOUBLE_COLON
	lam := ast.NewLambda(start.rng.From)
	lam.IsBlock = start.tok == token.COLON
	for p.cur().tok == token.LBRACK && !p.cur().atNewline && p.looksLikeBlockParameter() {
		lam.Parameters = append(lam.Parameters, p.parseParameter())
	}
	lam.Body = p.parseBody(KindBlock, level)
	lam.SetEnd(p.peekRange().From)
	return lam
}

// looksLikeBlockParameter distinguishes a "[name]" block-parameter
// declaration right after the ":" from a list literal that happens to be
// the block's first expression, by peeking the two tokens after the "[".
func (p *Parser) looksLikeBlockParameter() bool {
	first := p.queue.Get(0)
	if first.Token != token.IDENTIFIER {
		return false
	}
	second := p.queue.Get(1)
	return second.Token == token.RBRACK || second.Token == token.ASSIGN
}

// parseArgument parses one call argument: positional, "--name value",
// "--flag"/"--no-flag" boolean, or a ":"/"::"-introduced block passed in
// an explicitly delimited context. Argument expressions are parsed with
// calls disallowed (see parseBinary) but binary operators admitted, so
// "print 1 + 2" is one argument.
func (p *Parser) parseArgument() ast.Argument {
	switch p.cur().tok {
	case token.COLON, token.DOUBLE_COLON:
		c := p.cur()
		return ast.Argument{Value: p.parseBlockOrLambda(c.indentation)}
	case token.DECREMENT:
		p.consume()
		name := p.parseIdentifierOrSync()
		if p.cur().tok == token.ASSIGN && p.cur().attached {
			p.consume()
			return ast.Argument{Name: name, Value: p.parseArgumentExpr()}
		}
		// A following "--" starts the next named argument, not this one's
		// value; only then is this a bare boolean flag.
		if p.canStartBareArgument() && p.cur().tok != token.DECREMENT && p.cur().tok != token.NAMED_NO {
			return ast.Argument{Name: name, Value: p.parseArgumentExpr()}
		}
		return ast.Argument{Name: name, Value: &ast.Literal{Kind: ast.LiteralBoolean, Value: true}, IsBoolFlag: true}
	case token.NAMED_NO:
		p.consume()
		name := p.parseIdentifierOrSync()
		return ast.Argument{Name: name, Value: &ast.Literal{Kind: ast.LiteralBoolean, Value: false}, IsBoolFlag: true}
	default:
		return ast.Argument{Value: p.parseArgumentExpr()}
	}
}

// parseArgumentExpr parses an argument expression: binary operators and
// tighter, no bare calls, no assignment, no ternary.
func (p *Parser) parseArgumentExpr() ast.Expr {
	if p.treeDepth >= maxTreeDepth {
		p.fatalOverflow()
		return &ast.Identifier{NamePos: p.peekRange().From}
	}
	p.treeDepth++
	defer func() { p.treeDepth-- }()
	return p.parseBinary(token.PrecedenceEquality, false)
}

func (p *Parser) parsePrimary() ast.Expr {
	c := p.cur()
	switch c.tok {
	case token.IDENTIFIER:
		return p.parseIdentifierExpr()
	case token.INTEGER:
		c2 := p.consume()
		return ast.NewLiteral(c2.rng.From, c2.rng.To, ast.LiteralInteger, c2.data, false)
	case token.DOUBLE:
		c2 := p.consume()
		return ast.NewLiteral(c2.rng.From, c2.rng.To, ast.LiteralDouble, c2.data, false)
	case token.CHARACTER:
		c2 := p.consume()
		return ast.NewLiteral(c2.rng.From, c2.rng.To, ast.LiteralCharacter, c2.data, false)
	case token.TRUE, token.FALSE:
		c2 := p.consume()
		return ast.NewLiteral(c2.rng.From, c2.rng.To, ast.LiteralBoolean, nil, c2.tok == token.TRUE)
	case token.NULL:
		c2 := p.consume()
		return ast.NewLiteral(c2.rng.From, c2.rng.To, ast.LiteralNullLit, nil, false)
	case token.STRING, token.STRING_MULTI_LINE, token.STRING_PART, token.STRING_PART_MULTI_LINE,
		token.STRING_END, token.STRING_END_MULTI_LINE:
		// The _END kinds surface directly only for unterminated strings;
		// the scanner has already reported those, and the literal comes
		// out synthetic-empty.
		return p.parseStringLiteral()
	case token.LPAREN:
		return p.parseParenthesized()
	case token.LBRACK:
		return p.parseListLiteral()
	case token.LSHARP_BRACK:
		return p.parseByteArrayLiteral()
	case token.LBRACE:
		return p.parseMapOrSetLiteral()
	}
	p.reportErrorAt(p.peekRange(), "expected expression, found %s", c.tok)
	pos := p.peekRange().From
	p.forceProgress()
	return &ast.Identifier{NamePos: pos}
}

func (p *Parser) parseIdentifierExpr() ast.Expr {
	c := p.consume()
	if c.isLSP {
		return &ast.LspSelection{Identifier: ast.Identifier{NamePos: c.rng.From, Name: c.data}}
	}
	return &ast.Identifier{NamePos: c.rng.From, Name: c.data}
}

func (p *Parser) parseParenthesized() ast.Expr {
	start := p.consume() // LPAREN
	p.indentStack.PushDelimited(start.indentation, KindDelimited, token.RPAREN, start.rng)
	inner := p.parseExpr()
	p.skipDelimiterDedents()
	p.expect(token.RPAREN)
	p.popConstruct()
	paren := ast.NewParenthesized(start.rng.From)
	paren.LParen = inner
	paren.SetEnd(p.peekRange().From)
	return paren
}

// parseStringLiteral reassembles a (possibly interpolated, possibly
// multi-line) string from the scanner's STRING_PART/STRING_END chain,
// parsing each "$expr" interpolation via the token queue's
// interpolated-part buffering, matching how the original Scanner and
// Parser hand control back and forth while scanning one string. A
// parenthesized interpolation ("$(expr)", optionally "$(%fmt expr)")
// parses expr with the full expression grammar; a bare "$identifier"
// only extends into a ".field"/"[index]" postfix chain, grounded on
// Parser::parse_string_interpolate.
func (p *Parser) parseStringLiteral() ast.Expr {
	start := p.consume()
	multiline := start.tok == token.STRING_MULTI_LINE || start.tok == token.STRING_PART_MULTI_LINE
	segments := []string{p.stringSegmentText(start, true, multiline)}
	var interpolations []ast.Expr
	var formats []string

	last := start
	tok := start.tok
	for tok == token.STRING_PART || tok == token.STRING_PART_MULTI_LINE {
		p.queue.BufferInterpolatedPart()
		p.haveCurrent = false

		format := ""
		var expr ast.Expr
		switch p.cur().tok {
		case token.LPAREN:
			lparen := p.consume()
			p.indentStack.PushDelimited(lparen.indentation, KindDelimited, token.RPAREN, lparen.rng)
			if p.cur().tok == token.MOD {
				p.consume()
				p.queue.BufferStringFormatPart()
				p.haveCurrent = false
				if fc := p.cur(); fc.tok == token.STRING {
					if fc.data != nil {
						format = fc.data.Text()
					}
					p.consume()
				}
			}
			expr = p.parseExpr()
			p.indentStack.PopOne()
			if p.cur().tok != token.RPAREN {
				p.errorExpected(p.cur(), token.RPAREN)
				p.queue.DiscardBuffered()
			} else {
				p.consume()
			}
		case token.IDENTIFIER:
			expr = p.parseIdentifierExpr()
			expr = p.parseBareInterpolationPostfix(expr)
		default:
			p.reportErrorAt(p.peekRange(), "expected identifier or '(' in string interpolation")
			expr = &ast.Identifier{NamePos: p.peekRange().From}
			p.queue.DiscardBuffered()
		}

		interpolations = append(interpolations, expr)
		formats = append(formats, format)

		p.queue.BufferStringPart(multiline)
		p.haveCurrent = false
		next := p.cur()
		segments = append(segments, p.stringSegmentText(next, false, multiline))
		tok = next.tok
		last = p.consume()
	}

	return ast.NewStringLiteral(start.rng.From, last.rng.To, multiline, segments, interpolations, formats)
}

// stringSegmentText extracts the cooked text of one string-literal
// segment from the token's raw range: the opening quote(s) of the first
// segment, the closing quote(s) of the last, and the "$" a STRING_PART
// stops at are all part of the token's range but not of its text.
func (p *Parser) stringSegmentText(st pstate, isFirst, multiline bool) string {
	text := p.rawText(st.rng)
	if isFirst {
		if multiline {
			text = strings.TrimPrefix(text, `"""`)
		} else {
			text = strings.TrimPrefix(text, `"`)
		}
	}
	switch st.tok {
	case token.STRING_PART, token.STRING_PART_MULTI_LINE:
		text = strings.TrimSuffix(text, "$")
	default:
		if multiline {
			text = strings.TrimSuffix(text, `"""`)
		} else {
			text = strings.TrimSuffix(text, `"`)
		}
	}
	return text
}

// parseBareInterpolationPostfix extends a non-parenthesized "$identifier"
// interpolation into a ".field"/"[index]" chain, deciding whether to
// continue by peeking raw source bytes rather than tokenizing ahead: once
// the scanner reaches the real, already-tokenized identifier, the ordinary
// Next()-driven lookahead used elsewhere in the parser would run straight
// past the string's closing quote and mistake it for the start of a new
// string literal. Grounded on the scanner_peek()/scanner_look_ahead()
// raw-byte checks in Parser::parse_string_interpolate.
func (p *Parser) parseBareInterpolationPostfix(expr ast.Expr) ast.Expr {
	for {
		switch {
		case p.scn.PeekByte(0) == '[':
			expr = p.parseInterpolationIndex(expr)
		case p.scn.PeekByte(0) == '.' && isIdentifierStartByte(p.scn.PeekByte(1)):
			p.consume() // PERIOD, tokenized normally -- no '$'-adjacency ambiguity after a dot
			name := p.parseIdentifierOrSync()
			expr = &ast.Dot{Target: expr, Name: name}
		default:
			return expr
		}
	}
}

// parseInterpolationIndex parses a "[index]"/"[from..to]" postfix reached
// while continuing a bare "$identifier" interpolation. It differs from
// parseIndex only in how it marks the node's end position: parseIndex
// uses p.peekRange().From (the start of whatever comes next), which would
// force the scanner to tokenize past the closing "]" -- exactly the
// over-read parseBareInterpolationPostfix exists to avoid -- so this uses
// the "]" token's own end position instead.
func (p *Parser) parseInterpolationIndex(target ast.Expr) ast.Expr {
	p.consume() // LBRACK
	idx := &ast.Index{Target: target}
	if p.cur().tok == token.SLICE {
		p.consume()
		idx.IsSlice = true
		if p.cur().tok != token.RBRACK {
			idx.To = p.parseExpr()
		}
	} else {
		first := p.parseExpr()
		if p.cur().tok == token.SLICE {
			p.consume()
			idx.IsSlice = true
			idx.From = first
			if p.cur().tok != token.RBRACK {
				idx.To = p.parseExpr()
			}
		} else {
			idx.Index = first
		}
	}
	closeRng := p.peekRange()
	if p.cur().tok == token.RBRACK {
		closeRng = p.consume().rng
	} else {
		p.errorExpected(p.cur(), token.RBRACK)
		p.queue.DiscardBuffered()
	}
	idx.SetEnd(closeRng.To)
	return idx
}

// isIdentifierStartByte reports whether b could begin a Toit identifier,
// mirroring Scanner::is_identifier_start for the parser's raw-byte
// interpolation-postfix lookahead.
func isIdentifierStartByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// skipDelimiterDedents consumes synthetic DEDENT tokens reached while
// inside a bracket-delimited construct (list/map/set/byte-array, or a
// parenthesized expression), whose real closing signal is the bracket
// token itself rather than indentation, so a closing bracket placed back
// at or before the construct's own column ("foo := [\n  1,\n  2,\n]") is
// not mistaken for an unrelated dedent.
func (p *Parser) skipDelimiterDedents() {
	for p.cur().tok == token.DEDENT {
		if p.dedentIndentation < 0 {
			// End-of-file dedent: there is no real token behind it to skip
			// to, and consuming it would just re-derive it forever.
			return
		}
		p.consume()
	}
}

// parseListLiteral parses "[a,b,c]".
func (p *Parser) parseListLiteral() ast.Expr {
	start := p.consume() // LBRACK
	lit := ast.NewCollectionLiteral(start.rng.From, ast.CollectionList)
	p.indentStack.PushDelimited(start.indentation, KindLiteral, token.RBRACK, start.rng)
	p.parseCollectionElements(lit, token.RBRACK)
	p.expect(token.RBRACK)
	p.popConstruct()
	lit.SetEnd(p.peekRange().From)
	return lit
}

// parseByteArrayLiteral parses "#[b,b,b]".
func (p *Parser) parseByteArrayLiteral() ast.Expr {
	start := p.consume() // LSHARP_BRACK
	lit := ast.NewCollectionLiteral(start.rng.From, ast.CollectionByteArray)
	p.indentStack.PushDelimited(start.indentation, KindLiteral, token.RBRACK, start.rng)
	p.parseCollectionElements(lit, token.RBRACK)
	p.expect(token.RBRACK)
	p.popConstruct()
	lit.SetEnd(p.peekRange().From)
	return lit
}

func (p *Parser) parseCollectionElements(lit *ast.CollectionLiteral, end token.Kind) {
	for {
		p.skipDelimiterDedents()
		if p.cur().tok == end || p.cur().tok == token.EOS {
			return
		}
		lit.Elements = append(lit.Elements, p.parseExpr())
		p.skipDelimiterDedents()
		if p.cur().tok != token.COMMA {
			return
		}
		p.consume()
	}
}

// parseMapOrSetLiteral parses "{a,b}" (set), "{k:v,...}" (map), the empty
// set "{}", and the empty map "{:}"; which of the two non-empty shapes it
// is isn't known until the first element is parsed and the parser checks
// whether a ":" follows it.
func (p *Parser) parseMapOrSetLiteral() ast.Expr {
	start := p.consume() // LBRACE
	p.indentStack.PushDelimited(start.indentation, KindLiteral, token.RBRACE, start.rng)

	if p.cur().tok == token.COLON {
		p.consume()
		lit := ast.NewCollectionLiteral(start.rng.From, ast.CollectionMap)
		p.skipDelimiterDedents()
		p.expect(token.RBRACE)
		p.popConstruct()
		lit.SetEnd(p.peekRange().From)
		return lit
	}
	p.skipDelimiterDedents()
	if p.cur().tok == token.RBRACE {
		p.consume()
		lit := ast.NewCollectionLiteral(start.rng.From, ast.CollectionSet)
		p.popConstruct()
		lit.SetEnd(p.peekRange().From)
		return lit
	}

	first := p.parseExpr()
	if p.cur().tok == token.COLON {
		p.consume()
		lit := ast.NewCollectionLiteral(start.rng.From, ast.CollectionMap)
		lit.Keys = append(lit.Keys, first)
		lit.Elements = append(lit.Elements, p.parseExpr())
		for {
			p.skipDelimiterDedents()
			if p.cur().tok != token.COMMA {
				break
			}
			p.consume()
			p.skipDelimiterDedents()
			if p.cur().tok == token.RBRACE {
				break
			}
			lit.Keys = append(lit.Keys, p.parseExpr())
			p.expect(token.COLON)
			lit.Elements = append(lit.Elements, p.parseExpr())
		}
		p.skipDelimiterDedents()
		p.expect(token.RBRACE)
		p.popConstruct()
		lit.SetEnd(p.peekRange().From)
		return lit
	}

	lit := ast.NewCollectionLiteral(start.rng.From, ast.CollectionSet)
	lit.Elements = append(lit.Elements, first)
	for {
		p.skipDelimiterDedents()
		if p.cur().tok != token.COMMA {
			break
		}
		p.consume()
		p.skipDelimiterDedents()
		if p.cur().tok == token.RBRACE {
			break
		}
		lit.Elements = append(lit.Elements, p.parseExpr())
	}
	p.skipDelimiterDedents()
	p.expect(token.RBRACE)
	p.popConstruct()
	lit.SetEnd(p.peekRange().From)
	return lit
}

func (p *Parser) rawText(rng token.Range) string {
	text := p.src.Text()
	from, to := int(rng.From-p.src.File().Base()), int(rng.To-p.src.File().Base())
	if from < 0 || to > len(text) || from > to {
		return ""
	}
	return string(text[from:to])
}
