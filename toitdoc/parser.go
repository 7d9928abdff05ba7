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

package toitdoc

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/parser"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

// refSourceCounter gives each toitdoc block re-entering the main parser
// for a "$ref" its own virtual source name: source.Manager.LoadVirtual
// caches by name, and two different comment blocks' extracted text must
// never collide on the same cached entry.
var refSourceCounter uint64

// construct names one of the nested grammar contexts a cursor position can
// be inside of; each carries its own indentation requirement and decides
// whether peek() treats a dedent as end-of-construct or as an error.
// Mirrors ToitdocParser::Construct in original_source/toitdoc_parser.cc.
type construct int

const (
	constructContents construct = iota
	constructSectionTitle
	constructItemized
	constructItemStart
	constructItem
	constructParagraph
	constructCodeSection
	constructComment
)

// Parser parses one extracted toitdoc block's text into a Doc, re-entering
// the main recursive-descent parser for every "$ref" it finds along the
// way. Grounded on ToitdocParser in original_source/toitdoc_parser.cc; the
// indentation-stack/cursor fields below are a direct, line-by-line port of
// that class's private state.
type Parser struct {
	extracted *Extracted
	symbols   *symbol.Canonicalizer
	mgr       *source.Manager
	diags     diag.Sink

	refs   []*ast.ToitdocReference
	refSrc *source.Source // lazily loaded virtual source sharing extracted.Text, for "$ref" re-parsing

	indentationStack []int
	constructStack   []construct

	index           int
	lineIndentation int
	isAtDedent      bool
	nextIndex       int
	nextIndentation int
}

// New creates a Parser over the already delimiter-stripped text in
// extracted. symbols interns identifiers encountered while parsing "$ref"
// cross-references; mgr is used to load the synthetic source each "$ref"
// is re-parsed against; diags receives every reported problem (the caller
// is expected to pass a diag.SeverityAdjusting wrapping the real sink, so
// a broken reference never fails the surrounding unit -- see
// original_source/toitdoc_parser.cc's ToitdocDiagnostics).
func New(extracted *Extracted, symbols *symbol.Canonicalizer, mgr *source.Manager, diags diag.Sink) *Parser {
	return &Parser{
		extracted:       extracted,
		symbols:         symbols,
		mgr:             mgr,
		diags:           diags,
		nextIndex:       -1,
		nextIndentation: -1,
	}
}

// Parse runs the toitdoc grammar over the whole extracted text and returns
// the resulting Doc, mirroring ToitdocParser::parse.
func (p *Parser) Parse() *Doc {
	p.pushConstruct(constructContents, -1)
	defer p.popConstruct(constructContents)

	p.skipInitialWhitespace()
	var sections []*Section
	for p.peek() != 0 {
		sections = append(sections, p.parseSection())
	}

	return &Doc{
		Contents: &Contents{Sections: sections},
		Refs:     p.refs,
		Range:    p.extracted.Range(0, len(p.extracted.Text)),
	}
}

// --- grammar -----------------------------------------------------------

func (p *Parser) parseSection() *Section {
	var statements []Statement
	var title string
	hasTitle := false

	if p.peek() == '#' {
		p.pushConstruct(constructSectionTitle, p.lineIndentation)
		p.advance(1)
		for p.peek() == ' ' {
			p.advance(1)
		}
		begin := p.index
		for p.peek() != 0 {
			p.advance(1)
		}
		title = p.makeString(begin, p.index)
		hasTitle = true
		p.popConstruct(constructSectionTitle)
	}

	p.skipWhitespace()
	for p.peek() != '#' && p.peek() != 0 {
		if s := p.parseStatement(); s != nil {
			statements = append(statements, s)
		}
		p.skipWhitespace()
	}
	return &Section{Title: title, HasTitle: hasTitle, Statements: statements}
}

func (p *Parser) parseStatement() Statement {
	if p.matches("```") {
		return p.parseCodeSection()
	}
	if p.matches("- ") || p.matches("* ") {
		return p.parseItemized()
	}
	return p.parseParagraph(-1)
}

func (p *Parser) parseCodeSection() *CodeSection {
	p.pushConstruct(constructCodeSection, p.lineIndentation)
	defer p.popConstruct(constructCodeSection)

	p.advanceLiteral("```")
	begin := p.index
	for p.peek() != 0 {
		if p.matches("```") {
			end := p.index
			p.advanceLiteral("```")
			// The newline closing the opening fence line and the one before
			// the closing fence are not part of the code.
			code := strings.TrimSuffix(strings.TrimPrefix(p.makeString(begin, end), "\n"), "\n")
			return &CodeSection{Code: code}
		}
		p.advance(1)
	}
	p.reportError(begin-3, p.index, "Unterminated code section")
	return &CodeSection{Code: p.makeString(begin, p.index)}
}

func isOperatorStart(c int) bool {
	switch c {
	case '=', '<', '>', '+', '-', '*', '/', '%', '~', '&', '|', '^', '[':
		return true
	default:
		return false
	}
}

func isCommentStart(c1, c2 int) bool { return c1 == '/' && (c2 == '/' || c2 == '*') }

func isEOL(c int) bool { return c == '\n' || c == 0 }

func isIdentifierStart(c int) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (p *Parser) parseItemized() *Itemized {
	p.pushConstruct(constructItemized, p.lineIndentation)
	defer p.popConstruct(constructItemized)

	indentation := p.lineIndentation
	var items []*Item
	for {
		items = append(items, p.parseItem(indentation))
		p.skipWhitespace()
		if !(p.matches("- ") || p.matches("* ")) {
			break
		}
	}
	return &Itemized{Items: items}
}

func (p *Parser) parseItem(indentation int) *Item {
	p.advance(2)

	var statements []Statement
	func() {
		p.pushConstruct(constructItemStart, indentation)
		defer p.popConstruct(constructItemStart)

		p.skipWhitespace()
		if first := p.parseParagraph(indentation + 2); first != nil {
			statements = append(statements, first)
		}
	}()

	p.pushConstruct(constructItem, indentation)
	defer p.popConstruct(constructItem)

	p.skipWhitespace()
	for p.peek() != 0 {
		if s := p.parseStatement(); s != nil {
			statements = append(statements, s)
		}
		p.skipWhitespace()
	}
	return &Item{Statements: statements}
}

func (p *Parser) parseParagraph(indentationOverride int) *Paragraph {
	indentation := p.lineIndentation
	if indentationOverride >= 0 {
		indentation = indentationOverride
	}
	p.pushConstruct(constructParagraph, indentation)
	defer p.popConstruct(constructParagraph)

	var expressions []Expression
	textStart := p.index

	for {
		c := p.peek()
		isSpecial := false

		switch c {
		case 0:
			isSpecial = true
		case '`':
			isSpecial = true
		case '$':
			la := p.lookAhead(1)
			isSpecial = la == '(' || isIdentifierStart(la) ||
				(isOperatorStart(la) && !isCommentStart(p.lookAhead(1), p.lookAhead(2)))
		case '"':
			isSpecial = true
		case '/':
			isSpecial = p.lookAhead(1) == '*'
		case '\\':
			if isEOL(p.lookAhead(1)) {
				break
			}
			p.advance(2)
			continue
		case '\'':
			if isEOL(p.lookAhead(1)) {
				break
			}
			if p.lookAhead(1) == '\\' {
				if isEOL(p.lookAhead(2)) {
					break
				}
				if p.lookAhead(3) == '\'' {
					p.advance(3)
					continue
				}
			} else if p.lookAhead(2) == '\'' {
				p.advance(2)
				continue
			}
		}

		if !isSpecial {
			p.advance(1)
			continue
		}

		if textStart != p.index {
			expressions = append(expressions, &Text{Value: p.makeString(textStart, p.index)})
		}

		if c == 0 {
			break
		}

		switch c {
		case '`':
			expressions = append(expressions, p.parseCode())
		case '"':
			expressions = append(expressions, p.parseStringExpr())
		case '$':
			expressions = append(expressions, p.parseRef())
		case '/':
			p.skipComment(true)
		}

		textStart = p.index
	}

	return mergeAdjacentText(expressions)
}

func mergeAdjacentText(expressions []Expression) *Paragraph {
	var combined []Expression
	for i := 0; i < len(expressions); i++ {
		e := expressions[i]
		t, isText := e.(*Text)
		if !isText {
			combined = append(combined, e)
			continue
		}
		var buf strings.Builder
		buf.WriteString(t.Value)
		j := i + 1
		for j < len(expressions) {
			next, ok := expressions[j].(*Text)
			if !ok {
				break
			}
			buf.WriteString(next.Value)
			j++
		}
		combined = append(combined, &Text{Value: buf.String()})
		i = j - 1
	}
	if len(combined) == 0 {
		return nil
	}
	return &Paragraph{Expressions: combined}
}

func (p *Parser) parseCode() *Code {
	return &Code{Value: p.parseDelimited('`', false, "Incomplete `code` segment")}
}

func (p *Parser) parseStringExpr() *Text {
	return &Text{Value: p.parseDelimited('"', true, "Incomplete string")}
}

func (p *Parser) parseDelimited(delimiter byte, keepDelimitersAndEscapes bool, errorMessage string) string {
	delimitedBegin := p.index
	chunkStart := p.index
	if !keepDelimitersAndEscapes {
		chunkStart = p.index + 1
	}
	var c int
	var buf strings.Builder
	for {
		p.advance(1)
		c = p.peek()
		if c == '\\' && (p.lookAhead(1) == '\\' || p.lookAhead(1) == int(delimiter)) {
			if keepDelimitersAndEscapes {
				p.advance(2)
			} else {
				buf.WriteString(p.makeString(chunkStart, p.index))
				p.advance(1)
				chunkStart = p.index
				p.advance(1)
			}
		}
		if c == int(delimiter) || c == 0 {
			break
		}
	}

	var endOffset int
	if c != int(delimiter) {
		p.reportError(delimitedBegin, p.index, errorMessage)
		endOffset = p.index
	} else {
		if keepDelimitersAndEscapes {
			endOffset = p.index + 1
		} else {
			endOffset = p.index
		}
		p.advance(1)
	}
	buf.WriteString(p.makeString(chunkStart, endOffset))
	return buf.String()
}

// parseRef parses a "$name" or "$(signature)" reference by re-entering the
// main parser on a synthetic source loaded from the extracted text,
// mirroring ToitdocParser::parse_ref.
func (p *Parser) parseRef() *Ref {
	begin := p.index + 1
	isParenthesized := p.lookAhead(1) == '('

	if p.refSrc == nil {
		name := fmt.Sprintf("toitdoc-ref-%d", atomic.AddUint64(&refSourceCounter, 1))
		p.refSrc = p.mgr.LoadVirtual(name, p.extracted.Text)
	}
	refSrc := p.refSrc
	scn := scanner.New(refSrc, p.symbols, diag.NullDiagnostics{})
	scn.AdvanceTo(begin)
	refParser := parser.New(refSrc, scn, p.symbols, p.diags)
	node := refParser.ParseToitdocReference()

	id := len(p.refs)
	p.refs = append(p.refs, node)

	end := p.indexAfterRef(refSrc, node)
	begin2, end2 := begin, end
	if isParenthesized {
		begin2++
		if p.lookAhead(-1) == ')' {
			end2--
		}
	}
	return &Ref{ID: id, Value: p.makeString(begin2, end2)}
}

// indexAfterRef advances the cursor past the bytes the sub-parser consumed
// and returns that new index; refSrc.OffsetInSource converts the
// sub-parser's node.End() (a Pos in the whole manager's dense offset
// space) back into a byte offset within the shared extracted text, which
// is also a valid toitdoc cursor position since refSrc was loaded from
// that exact byte slice.
func (p *Parser) indexAfterRef(refSrc *source.Source, node interface{ End() token.Pos }) int {
	end := refSrc.OffsetInSource(node.End())
	if end > p.index {
		p.advance(end - p.index)
	}
	return p.index
}

func (p *Parser) skipComment(shouldReportError bool) {
	p.pushConstruct(constructComment, p.lineIndentation)
	defer p.popConstruct(constructComment)

	begin := p.index
	p.advance(2)
	for {
		c := p.peek()
		if c == 0 {
			break
		} else if c == '\\' {
			if p.lookAhead(1) != 0 {
				p.advance(2)
			} else {
				p.advance(1)
			}
		} else if c == '*' && p.lookAhead(1) == '/' {
			p.advance(2)
			return
		} else {
			p.advance(1)
		}
	}
	if shouldReportError {
		p.reportError(begin, p.index, "Unterminated comment")
	}
}

// --- construct stack -----------------------------------------------------

func (p *Parser) pushConstruct(c construct, indentation int) {
	p.indentationStack = append(p.indentationStack, indentation)
	p.constructStack = append(p.constructStack, c)
}

func (p *Parser) popConstruct(c construct) {
	p.indentationStack = p.indentationStack[:len(p.indentationStack)-1]
	p.constructStack = p.constructStack[:len(p.constructStack)-1]
	p.isAtDedent = false
	p.nextIndentation = -1
	p.nextIndex = -1
}

func (p *Parser) topConstruct() construct {
	return p.constructStack[len(p.constructStack)-1]
}

func (p *Parser) topIndentation() int {
	return p.indentationStack[len(p.indentationStack)-1]
}

// --- cursor --------------------------------------------------------------

func (p *Parser) matches(s string) bool {
	for i := 0; i < len(s); i++ {
		if p.lookAhead(i) != int(s[i]) {
			return false
		}
	}
	return true
}

func isNewline(c int) bool { return c == '\n' || c == '\r' }

// peek returns the current cursor character, normalizing any run of
// whitespace that follows a newline into a single ' ' (or '\0' at a
// dedent), exactly as ToitdocParser::peek does; callers never see '\r' or
// '\n' directly.
func (p *Parser) peek() int {
	var isSingleLine, isDelimited, allowsEmptyLine, mustBeIndented bool

	switch p.topConstruct() {
	case constructSectionTitle, constructItemStart:
		isSingleLine = true
	case constructCodeSection:
		isDelimited = true
		allowsEmptyLine = true
	case constructContents:
		allowsEmptyLine = true
	case constructItemized:
		allowsEmptyLine = true
	case constructItem:
		allowsEmptyLine = true
		mustBeIndented = true
	case constructParagraph:
		mustBeIndented = true
	case constructComment:
		return p.byteAt(p.index)
	}

	if p.isAtDedent {
		return 0
	}
	text := p.extracted.Text
	if p.index >= len(text) {
		return 0
	}
	c := p.byteAt(p.index)
	if !isNewline(c) {
		return c
	}

	if isSingleLine {
		return 0
	}
	if p.nextIndex != -1 {
		return ' '
	}

	nextIndex := p.index
	if c == '\r' && p.byteAt(p.index+1) == '\n' {
		nextIndex = p.index + 2
	} else {
		nextIndex = p.index + 1
	}
	nextIndentation := 0
	skippedMultiple := false
	for {
		b := p.byteAt(nextIndex)
		if b == ' ' {
			nextIndentation++
			nextIndex++
			continue
		}
		if isNewline(b) {
			skippedMultiple = true
			nextIndentation = 0
			if b == '\r' && p.byteAt(nextIndex+1) == '\n' {
				nextIndex += 2
			} else {
				nextIndex++
			}
			continue
		}
		break
	}
	p.nextIndex = nextIndex
	p.nextIndentation = nextIndentation

	if skippedMultiple && !allowsEmptyLine {
		p.isAtDedent = true
		return 0
	}

	top := p.topIndentation()
	switch {
	case nextIndentation < top:
		if isDelimited {
			if p.byteAt(nextIndex) != 0 {
				p.reportError(p.index, p.index+1, "Bad indentation")
			}
			return ' '
		}
		p.isAtDedent = true
		return 0
	case nextIndentation == top:
		// A paragraph continues onto a line at its own indentation unless
		// that line opens a section title, a code section or a list item.
		if p.topConstruct() == constructParagraph {
			b := p.byteAt(nextIndex)
			opensStatement := b == '#' ||
				((b == '-' || b == '*') && p.byteAt(nextIndex+1) == ' ') ||
				(b == '`' && p.byteAt(nextIndex+1) == '`' && p.byteAt(nextIndex+2) == '`')
			if !opensStatement {
				return ' '
			}
		}
		if mustBeIndented {
			p.isAtDedent = true
			return 0
		}
		return ' '
	default:
		return ' '
	}
}

func (p *Parser) byteAt(i int) int {
	text := p.extracted.Text
	if i < 0 || i >= len(text) {
		return 0
	}
	return int(text[i])
}

func (p *Parser) lookAhead(n int) int {
	if n == 0 {
		return p.peek()
	}
	return p.byteAt(p.index + n)
}

func (p *Parser) advance(n int) {
	for i := 0; i < n; i++ {
		c := p.peek()
		if c == 0 {
			p.isAtDedent = false
			return
		}
		if p.nextIndex >= 0 {
			p.index = p.nextIndex
			p.lineIndentation = p.nextIndentation
			p.nextIndex = -1
			p.nextIndentation = -1
		} else {
			p.index++
		}
	}
}

func (p *Parser) advanceLiteral(s string) { p.advance(len(s)) }

func (p *Parser) skipInitialWhitespace() {
	initial := 0
	for p.byteAt(initial) == ' ' {
		initial++
	}
	p.lineIndentation = initial
	p.skipWhitespace()
}

func (p *Parser) skipWhitespace() {
	for p.peek() == ' ' {
		p.advance(1)
	}
}

// makeString extracts text[from:to), squashing spaces and replacing
// newlines with a single space inside prose constructs (CONTENTS,
// SECTION_TITLE, PARAGRAPH), and skipping each continuation line's
// indentation, mirroring ToitdocParser::make_string.
func (p *Parser) makeString(from, to int) string {
	squashSpaces := false
	replaceNewlinesWithSpace := false
	switch p.topConstruct() {
	case constructContents, constructSectionTitle, constructParagraph:
		squashSpaces = true
		replaceNewlinesWithSpace = true
	case constructCodeSection:
		// keep verbatim
	}

	text := p.extracted.Text
	var buf strings.Builder
	lastWasSpace := false
	lastWasNewline := false
	indentation := p.topIndentation()
	i := from
	for i < to {
		if lastWasNewline {
			lastWasNewline = false
			for j := 0; j < indentation; j++ {
				if i >= len(text) || text[i] != ' ' {
					break
				}
				i++
			}
			if i >= to {
				break
			}
		}
		c := int(text[i])
		if c == '\n' && replaceNewlinesWithSpace {
			c = ' '
		}
		if c == ' ' && lastWasSpace && squashSpaces {
			i++
			continue
		}
		lastWasNewline = c == '\n'
		lastWasSpace = c == ' '
		buf.WriteByte(byte(c))
		i++
	}
	return buf.String()
}

func (p *Parser) reportError(from, to int, message string) {
	rng := p.extracted.Range(from, to)
	p.diags.Report(diag.Diagnostic{
		Severity: diag.Error,
		Range:    rng,
		Location: p.extracted.src.Location(rng.From),
		Message:  message,
	})
}
