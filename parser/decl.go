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
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

// parseImport parses "import [.|..]* segment('.'segment)* [as ident |
// show (ident+|'*')]". Leading dots make the import relative: one dot for
// the current library's directory, each further dot one level up.
func (p *Parser) parseImport() *ast.Import {
	start := p.consume() // IMPORT
	imp := ast.NewImport(start.rng.From)
	for p.cur().tok == token.PERIOD || p.cur().tok == token.SLICE {
		if p.cur().tok == token.PERIOD {
			imp.Dots++
		} else {
			imp.Dots += 2
		}
		p.consume()
	}
	imp.Segments = append(imp.Segments, p.parseIdentifierOrSync())
	for p.cur().tok == token.PERIOD {
		p.consume()
		imp.Segments = append(imp.Segments, p.parseIdentifierOrSync())
	}
	if p.cur().tok == token.AS {
		p.consume()
		imp.Prefix = p.parseIdentifierOrSync()
	}
	if p.isShowKeyword() {
		p.consume()
		if p.cur().tok == token.MUL {
			p.consume()
			imp.ShowAll = true
		} else {
			imp.Show = append(imp.Show, p.parseIdentifierOrSync())
			for p.cur().tok == token.COMMA || (p.cur().tok == token.IDENTIFIER && !p.cur().atNewline) {
				if p.cur().tok == token.COMMA {
					p.consume()
				}
				imp.Show = append(imp.Show, p.parseIdentifierOrSync())
			}
		}
	}
	imp.SetEnd(p.peekRange().From)
	p.syncAfterDecl()
	return imp
}

func (p *Parser) parseExport() *ast.Export {
	start := p.consume() // EXPORT
	exp := ast.NewExport(start.rng.From)
	if p.cur().tok == token.MUL {
		p.consume()
		exp.ExportAll = true
	} else {
		exp.Names = append(exp.Names, p.parseIdentifierOrSync())
		for p.cur().tok == token.COMMA || (p.cur().tok == token.IDENTIFIER && !p.cur().atNewline) {
			if p.cur().tok == token.COMMA {
				p.consume()
			}
			exp.Names = append(exp.Names, p.parseIdentifierOrSync())
		}
	}
	exp.SetEnd(p.peekRange().From)
	p.syncAfterDecl()
	return exp
}

// isShowKeyword recognizes the contextual "show" keyword: the original
// grammar spells it as a plain identifier rather than a reserved word
// (only meaningful right after an import's path/prefix), so the parser
// checks the current token's text rather than its Kind.
func (p *Parser) isShowKeyword() bool { return p.isContextualKeyword("show") }

func (p *Parser) isContextualKeyword(text string) bool {
	c := p.cur()
	return c.tok == token.IDENTIFIER && c.data != nil && c.data.Text() == text
}

func (p *Parser) parseIdentifierOrSync() *ast.Identifier {
	if p.cur().tok != token.IDENTIFIER {
		p.errorExpected(p.cur(), token.IDENTIFIER)
		return &ast.Identifier{NamePos: p.peekRange().From}
	}
	c := p.consume()
	return &ast.Identifier{NamePos: c.rng.From, Name: c.data}
}

// syncAfterDecl skips tokens until the next top-level-looking token,
// guarding against an infinite loop on malformed input the same way
// cue/parser's syncExpr does.
func (p *Parser) syncAfterDecl() {
	for p.cur().tok != token.EOS && p.cur().tok != token.DEDENT &&
		p.cur().tok != token.IMPORT && p.cur().tok != token.EXPORT &&
		!(p.cur().tok == token.IDENTIFIER && p.cur().atNewline) &&
		!(p.cur().atNewline && (p.cur().tok == token.CLASS || p.cur().tok == token.ABSTRACT)) {
		if p.cur().atNewline {
			return
		}
		if !p.forceProgress() {
			return
		}
	}
}

// forceProgress consumes one token and reports whether the parser is
// still making progress, aborting (returning false) once the same
// position has been revisited maxSyncRetries times -- this is the direct
// analogue of cue/parser's syncPos/syncCnt anti-infinite-loop guard.
const maxSyncRetries = 10

func (p *Parser) forceProgress() bool {
	pos := p.peekRange().From
	if pos == p.syncPos {
		p.syncCnt++
		if p.syncCnt > maxSyncRetries {
			return false
		}
	} else {
		p.syncPos = pos
		p.syncCnt = 0
	}
	if p.cur().tok == token.EOS {
		return false
	}
	p.consume()
	return true
}

func (p *Parser) parseTopLevelDecl() ast.Decl {
	if p.cur().tok == token.CLASS || p.cur().tok == token.ABSTRACT || p.isClassLikeKeyword() {
		return p.parseClass()
	}
	if p.cur().tok == token.IDENTIFIER {
		return p.parseMember(true)
	}
	p.reportErrorAt(p.peekRange(), "expected declaration, found %s", p.cur().tok)
	p.forceProgress()
	return nil
}

func (p *Parser) isClassLikeKeyword() bool {
	c := p.cur()
	if c.tok != token.IDENTIFIER || c.data == nil {
		return false
	}
	switch c.data.Text() {
	case "interface", "mixin", "monitor":
		return true
	default:
		return false
	}
}

func (p *Parser) parseClass() *ast.Class {
	start := p.cur()
	level := start.indentation
	class := ast.NewClass(start.rng.From)
	abstractRange := token.NoRange
	if p.cur().tok == token.ABSTRACT {
		class.IsAbstract = true
		abstractRange = p.consume().rng
	}
	switch {
	case p.cur().tok == token.CLASS:
		class.Kind = ast.ClassKindClass
		p.consume()
	case p.isClassLikeKeyword():
		switch p.cur().data.Text() {
		case "interface":
			class.Kind = ast.ClassKindInterface
		case "mixin":
			class.Kind = ast.ClassKindMixin
		case "monitor":
			class.Kind = ast.ClassKindMonitor
		}
		if class.IsAbstract && class.Kind != ast.ClassKindMixin {
			p.reportErrorAt(abstractRange, "%ss can't be abstract", p.cur().data.Text())
			class.IsAbstract = false
		}
		p.consume()
	default:
		p.reportErrorAt(p.peekRange(), "expected 'class', 'interface', 'mixin' or 'monitor'")
	}
	class.Name = p.parseIdentifierOrSync()

	for {
		switch {
		case p.isContextualKeyword("extends"):
			p.consume()
			class.Super = p.parseIdentifierOrSync()
		case p.isContextualKeyword("with"):
			p.consume()
			class.Mixins = append(class.Mixins, p.parseIdentifierOrSync())
			for p.cur().tok == token.COMMA {
				p.consume()
				class.Mixins = append(class.Mixins, p.parseIdentifierOrSync())
			}
		case p.isContextualKeyword("implements"):
			p.consume()
			class.Interfaces = append(class.Interfaces, p.parseIdentifierOrSync())
			for p.cur().tok == token.COMMA {
				p.consume()
				class.Interfaces = append(class.Interfaces, p.parseIdentifierOrSync())
			}
		default:
			goto headerDone
		}
	}
headerDone:

	if p.cur().tok == token.COLON {
		p.consume()
	} else {
		p.reportErrorAt(p.peekRange(), "Missing colon to end the class signature")
	}

	p.cur()
	p.indentStack.Push(level, KindClass, start.rng)
	p.reevaluateCurrent(level)
	memberIndentation := -1
	for p.cur().tok != token.DEDENT && p.cur().tok != token.EOS && !p.overflowed {
		mc := p.cur()
		if memberIndentation == -1 {
			memberIndentation = mc.indentation
		} else if mc.atNewline && mc.indentation != memberIndentation {
			p.reportErrorAt(mc.rng, "Class members must be at the same indentation")
		}
		m := p.parseMember(false)
		if m == nil {
			if !p.forceProgress() {
				break
			}
			continue
		}
		class.Members = append(class.Members, m)
	}
	p.popConstruct()
	class.SetEnd(p.peekRange().From)
	return class
}

// parseMember parses a single class member (method or field) or, at
// isTopLevel, a top-level function or global variable -- the same
// grammar production in both contexts.
func (p *Parser) parseMember(isTopLevel bool) ast.Decl {
	level := p.cur().indentation
	isStatic := false
	staticRange := token.NoRange
	if p.cur().tok == token.STATIC {
		isStatic = true
		staticRange = p.consume().rng
	}
	isAbstract := false
	if p.cur().tok == token.ABSTRACT {
		isAbstract = true
		p.consume()
	}
	if isTopLevel && isStatic {
		p.reportErrorAt(staticRange, "Top-level declarations can't be static")
		isStatic = false
	}

	if p.cur().tok != token.IDENTIFIER {
		p.reportErrorAt(p.peekRange(), "expected a declaration name, found %s", p.cur().tok)
		p.forceProgress()
		return nil
	}

	from := p.peekRange().From
	if p.isContextualKeyword("operator") && p.startsOperatorName(p.queue.Get(0).Token) {
		p.consume()
		name := p.parseOperatorName()
		return p.parseMethodTail(from, level, name, isStatic, isAbstract, true)
	}

	name := p.parseIdentifierOrSync()
	if p.cur().tok == token.LPAREN || p.looksLikeParameterStart() ||
		p.cur().tok == token.RARROW || p.cur().tok == token.COLON ||
		(p.cur().tok == token.ASSIGN && p.cur().attached) {
		return p.parseMethodTail(from, level, name, isStatic, isAbstract, false)
	}
	return p.parseField(from, name, isStatic)
}

func (p *Parser) looksLikeParameterStart() bool {
	c := p.cur()
	if c.atNewline {
		return false
	}
	switch c.tok {
	case token.IDENTIFIER, token.LBRACK, token.DECREMENT:
		return true
	default:
		return false
	}
}

// startsContinuationParameter reports whether the current token begins a
// parameter on its own line, indented deeper than the declaration --
// long signatures wrap this way.
func (p *Parser) startsContinuationParameter(level int) bool {
	c := p.cur()
	if !c.atNewline || c.tok == token.DEDENT || c.indentation <= level {
		return false
	}
	switch c.tok {
	case token.IDENTIFIER, token.LBRACK, token.DECREMENT:
		return true
	default:
		return false
	}
}

// startsOperatorName reports whether k can begin a user-definable operator
// name after the "operator" keyword.
func (p *Parser) startsOperatorName(k token.Kind) bool {
	switch k {
	case token.EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.ADD, token.SUB, token.MUL, token.DIV, token.MOD,
		token.BIT_OR, token.BIT_XOR, token.BIT_AND, token.BIT_SHL, token.BIT_SHR, token.BIT_USHR,
		token.BIT_NOT, token.LBRACK, token.SLICE:
		return true
	default:
		return false
	}
}

// parseOperatorName parses the operator token(s) after "operator" into a
// synthetic identifier: "==", "+", "[]", "[]=", "[..]" and friends. The
// bracket forms are tokenized as attached bracket sequences; whitespace
// inside one yields a warning but is still accepted.
func (p *Parser) parseOperatorName() *ast.Identifier {
	start := p.consume()
	from := start.rng.From
	text := start.tok.String()
	if start.tok == token.LBRACK {
		var parts []string
		if p.cur().tok == token.SLICE {
			if !p.cur().attached {
				p.reportWarningAt(p.peekRange(), "No whitespace allowed in '[..]' operator")
			}
			p.consume()
			parts = append(parts, "..")
		}
		if p.cur().tok == token.RBRACK {
			if !p.cur().attached {
				p.reportWarningAt(p.peekRange(), "No whitespace allowed in bracket operator")
			}
			p.consume()
		} else {
			p.errorExpected(p.cur(), token.RBRACK)
		}
		text = "[" + strings.Join(parts, "") + "]"
		if p.cur().tok == token.ASSIGN && p.cur().attached && len(parts) == 0 {
			p.consume()
			text = "[]="
		}
	}
	return &ast.Identifier{NamePos: from, Name: symbol.Synthetic(text)}
}

func (p *Parser) parseMethodTail(from token.Pos, level int, name *ast.Identifier, isStatic, isAbstract, isOperator bool) *ast.Method {
	m := ast.NewMethod(from)
	m.Name = name
	m.IsStatic = isStatic
	m.IsAbstract = isAbstract
	m.IsOperator = isOperator
	m.IsConstructor = p.isConstructorName(name)
	if p.cur().tok == token.ASSIGN && p.cur().attached && !isOperator {
		// "name= value:" setter declaration form.
		p.consume()
		m.IsSetter = true
	}
	// The signature lives in its own frame so wrapped parameters on
	// deeper lines stay inside it while a following member at the
	// declaration's own column dedents out of it.
	p.indentStack.Push(level, KindDeclarationSignature, p.peekRange())
	paramIndentation := -1
	for {
		if p.looksLikeParameterStart() {
			m.Parameters = append(m.Parameters, p.parseParameter())
			continue
		}
		if p.startsContinuationParameter(level) {
			c := p.cur()
			if paramIndentation == -1 {
				paramIndentation = c.indentation
			} else if c.indentation != paramIndentation {
				p.reportWarningAt(c.rng, "Unusual parameter indentation")
			}
			m.Parameters = append(m.Parameters, p.parseParameter())
			continue
		}
		break
	}
	if p.cur().tok == token.RARROW {
		p.consume()
		m.ReturnType = p.parseTypeAnnotation()
	}
	p.popConstruct()
	if p.cur().tok != token.COLON {
		m.SetEnd(p.peekRange().From)
		p.syncAfterDecl()
		return m
	}
	p.consume()
	if p.cur().tok == token.PRIMITIVE {
		m.Primitive = p.parsePrimitiveRef()
		m.SetEnd(p.peekRange().From)
		return m
	}
	seq := p.parseBody(KindSequence, level)
	m.Body = seq
	m.SetEnd(seq.End())
	return m
}

func (p *Parser) isConstructorName(name *ast.Identifier) bool {
	return name.Name != nil && name.Name == p.pre.Constructor
}

func (p *Parser) parsePrimitiveRef() *ast.PrimitiveRef {
	start := p.consume() // PRIMITIVE
	ref := ast.NewPrimitiveRef(start.rng.From)
	p.expect(token.PERIOD)
	ref.Module = p.parseIdentifierOrSync()
	p.expect(token.PERIOD)
	ref.Name = p.parseIdentifierOrSync()
	ref.SetEnd(p.peekRange().From)
	return ref
}

func (p *Parser) parseField(from token.Pos, name *ast.Identifier, isStatic bool) *ast.Field {
	f := ast.NewField(from)
	f.Name = name
	f.IsStatic = isStatic
	if p.cur().tok == token.DIV {
		p.consume()
		f.Type = p.parseTypeAnnotation()
	}
	if p.cur().tok == token.DEFINE_FINAL {
		f.IsFinal = true
		p.consume()
		f.Default = p.parseExpr()
	} else if p.cur().tok == token.DEFINE {
		p.consume()
		f.Default = p.parseExpr()
	}
	// End at the field's last sub-node rather than at the next token, which
	// may be the following member (with any comments in between).
	end := p.peekRange().From
	if f.Default != nil {
		end = f.Default.End()
	} else if f.Type != nil {
		end = f.Type.End()
	}
	f.SetEnd(end)
	p.syncAfterDecl()
	return f
}

func (p *Parser) parseParameter() *ast.Parameter {
	start := p.peekRange().From
	param := ast.NewParameter(start)
	if p.cur().tok == token.DECREMENT {
		param.IsNamed = true
		p.consume()
	}
	if p.cur().tok == token.LBRACK {
		param.IsBlock = true
		p.consume()
		param.Name = p.parseIdentifierOrSync()
		p.expect(token.RBRACK)
	} else {
		param.Name = p.parseIdentifierOrSync()
		if param.Name.Name == p.pre.This && p.cur().tok == token.PERIOD && p.cur().attached {
			// "this.x" constructor shorthand: the parameter initializes
			// field x directly.
			p.consume()
			param.IsThis = true
			param.Name = p.parseIdentifierOrSync()
		}
	}
	if p.cur().tok == token.DIV {
		p.consume()
		param.Type = p.parseTypeAnnotation()
	}
	if p.cur().tok == token.ASSIGN {
		p.consume()
		param.Default = p.parseArgumentExpr()
	}
	param.SetEnd(p.peekRange().From)
	return param
}

func (p *Parser) parseTypeAnnotation() ast.Expr {
	var name ast.Expr = p.parseIdentifierOrSync()
	for p.cur().tok == token.PERIOD && p.cur().attached {
		p.consume()
		name = &ast.Dot{Target: name, Name: p.parseIdentifierOrSync()}
	}
	t := ast.NewTypeAnnotation(name)
	if p.cur().tok == token.CONDITIONAL && p.cur().attached {
		p.consume()
		t.Nullable = true
	}
	t.SetEnd(p.peekRange().From)
	return t
}
