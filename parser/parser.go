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

// Package parser implements the recursive-descent parser: it turns a
// scanner's token stream into an *ast.Unit, rewriting NEWLINE tokens into
// DEDENT tokens by comparing each new line's indentation against an
// explicit IndentationStack, exactly as the original compiler's Parser
// does (see parser.h/parser.cc). Grounded structurally on cue/parser's
// tracing/comment-state/error-recovery machinery (parser.go,
// interface.go), with the indentation-stack-driven token rewrite itself
// grounded on the original compiler since CUE has no analogue (CUE uses
// automatic comma insertion, not indentation).
package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

// maxTreeDepth and maxIndentationDepth bound recursion the same way the
// original's check_tree_height/check_indentation_stack_depth do: past
// this many nested constructs, the parser gives up on the rest of the
// file rather than overflowing the Go goroutine stack on pathological or
// adversarial input.
const (
	maxTreeDepth        = 250
	maxIndentationDepth = 250
)

// pstate is the parser's view of one token: the scanner's raw state plus
// the (possibly rewritten) token kind and whether a newline was swallowed
// to reach it.
type pstate struct {
	tok         token.Kind
	data        *symbol.Symbol
	rng         token.Range
	indentation int
	atNewline   bool
	attached    bool
	isLSP       bool
}

// Parser holds all state for parsing one source into one ast.Unit. A
// Parser is not safe for concurrent use and is not reused across units.
type Parser struct {
	src   *source.Source
	scn   *scanner.Scanner
	diags diag.Sink
	pre   *symbol.Predefined
	queue *tokenQueue

	indentStack IndentationStack

	current     pstate
	haveCurrent bool

	// dedentIndentation is the indentation of the line that produced the
	// current sticky DEDENT; the same DEDENT stays current until every
	// construct it closes has popped its frame (see popConstruct).
	dedentIndentation int

	// stashed holds a token that was fetched before a construct's frame
	// was pushed and turned out to belong outside that construct; it is
	// re-delivered once the synthetic DEDENT covering it is exhausted.
	stashed    pstate
	hasStashed bool

	treeDepth  int
	overflowed bool

	trace  bool
	logger *logrus.Logger

	syncPos token.Pos
	syncCnt int
}

// New creates a Parser reading src through scn. symbols interns
// identifiers and numbers encountered; diags receives every reported
// problem.
func New(src *source.Source, scn *scanner.Scanner, symbols *symbol.Canonicalizer, diags diag.Sink) *Parser {
	if diags == nil {
		diags = diag.NullDiagnostics{}
	}
	return &Parser{
		src:   src,
		scn:   scn,
		diags: diags,
		pre:   symbol.NewPredefined(symbols),
		queue: newTokenQueue(scn),
	}
}

// SetTrace enables logrus-based trace logging of every token consumed,
// the structured-logging counterpart of the teacher's fmt.Println-based
// parser tracing (see SPEC_FULL.md's ambient stack section).
func (p *Parser) SetTrace(logger *logrus.Logger) {
	p.trace = true
	p.logger = logger
}

// ParseUnit parses the whole source as a compilation unit: optional
// hash-bang line, imports, exports, then top-level declarations. Imports
// and exports placed after the first declaration are reported but still
// parsed, so the AST stays as complete as possible.
func (p *Parser) ParseUnit() *ast.Unit {
	p.scn.SkipHashBangLine()
	unit := &ast.Unit{SourcePath: p.src.Path()}
	start := p.peekRange().From

	p.indentStack.Push(-1, KindSequence, token.NoRange)

	firstDeclRange := token.NoRange
	for !p.overflowed {
		c := p.cur()
		if c.tok == token.EOS || c.tok == token.DEDENT {
			// The only DEDENT that survives to the unit level is the one
			// covering end-of-file; anything shallower was exhausted when
			// the construct producing it closed.
			break
		}
		switch c.tok {
		case token.IMPORT:
			if firstDeclRange.IsValid() {
				p.reportOutOfOrder(c.rng, "Imports must precede the declarations", firstDeclRange)
			}
			unit.Imports = append(unit.Imports, p.parseImport())
		case token.EXPORT:
			if firstDeclRange.IsValid() {
				p.reportOutOfOrder(c.rng, "Exports must precede the declarations", firstDeclRange)
			}
			unit.Exports = append(unit.Exports, p.parseExport())
		default:
			d := p.parseTopLevelDecl()
			if d != nil {
				unit.Decls = append(unit.Decls, d)
				if !firstDeclRange.IsValid() {
					firstDeclRange = ast.Range(d)
				}
			}
		}
	}

	if p.overflowed {
		unit.Decls = nil
	}
	unit.SetRange(start, p.peekRange().To)
	p.indentStack.PopOne()
	p.collectNodes(unit)
	return unit
}

// collectNodes populates unit.Nodes with a flat, source-order listing of
// every node in the tree, consumed by the toitdoc attacher.
func (p *Parser) collectNodes(unit *ast.Unit) {
	v := &ast.TraversingVisitor{
		BeforeFunc: func(n ast.Node) bool {
			unit.Nodes = append(unit.Nodes, n)
			return true
		},
	}
	ast.Walk(v, unit)
}

// --- token stream -----------------------------------------------------

func (p *Parser) cur() pstate {
	if !p.haveCurrent {
		p.advance()
		p.haveCurrent = true
	}
	return p.current
}

func (p *Parser) peekRange() token.Range {
	return p.cur().rng
}

// consume returns the current token and advances past it.
func (p *Parser) consume() pstate {
	c := p.cur()
	if p.trace && p.logger != nil {
		p.logger.WithField("token", c.tok.String()).Trace("consume")
	}
	p.haveCurrent = false
	return c
}

// expect consumes the current token if it matches kind, otherwise reports
// an error and leaves the stream positioned where it was (error recovery
// decides what to do next).
func (p *Parser) expect(kind token.Kind) pstate {
	c := p.cur()
	if c.tok != kind {
		p.errorExpected(c, kind)
		return c
	}
	return p.consume()
}

func (p *Parser) errorExpected(c pstate, want token.Kind) {
	p.reportErrorAt(c.rng, "expected %s, found %s", want, c.tok)
}

func (p *Parser) reportErrorAt(rng token.Range, format string, args ...interface{}) {
	if p.overflowed {
		// The fatal depth error has already been reported; the cascade of
		// "expected ..." errors produced while unwinding is noise.
		return
	}
	p.diags.Report(diag.Diagnostic{
		Severity: diag.Error,
		Range:    rng,
		Location: p.src.Location(rng.From),
		Message:  fmt.Sprintf(format, args...),
	})
}

// reportOutOfOrder groups the primary error with a note pointing at the
// first declaration, the way the original's diagnostics pair an error
// with its cross-referencing notes.
func (p *Parser) reportOutOfOrder(rng token.Range, message string, declRange token.Range) {
	if p.overflowed {
		return
	}
	p.diags.StartGroup()
	p.reportErrorAt(rng, "%s", message)
	p.diags.Report(diag.Diagnostic{
		Severity: diag.Note,
		Range:    declRange,
		Location: p.src.Location(declRange.From),
		Message:  "first declaration was here",
	})
	p.diags.EndGroup()
}

// advance fetches the next pstate, rewriting NEWLINE/EOS into DEDENT as
// dictated by the indentation stack. A DEDENT produced here is sticky:
// it stays the current token until every construct it closes has popped
// its frame and called popConstruct, which re-evaluates whether the
// dedent still applies to the new stack top.
func (p *Parser) advance() {
	if p.hasStashed {
		p.current = p.stashed
		p.hasStashed = false
		return
	}

	raw := p.pullRaw()
	if raw.tok != token.NEWLINE && raw.tok != token.EOS {
		p.current = raw
		return
	}

	newIndentation, skip := p.peekIndentationAfterNewlines()
	for i := 0; i < skip; i++ {
		p.queue.Consume()
	}

	if !p.indentStack.IsEmpty() && newIndentation <= p.indentStack.TopIndentation() {
		p.dedentIndentation = newIndentation
		p.current = pstate{tok: token.DEDENT, atNewline: true, indentation: newIndentation, rng: raw.rng}
		return
	}

	if raw.tok == token.EOS {
		p.current = raw
		return
	}
	p.advance()
	p.current.atNewline = true
}

func (p *Parser) pullRaw() pstate {
	st := p.queue.Get(0)
	p.queue.Consume()
	return p.toPstate(st)
}

// peekIndentationAfterNewlines looks ahead (without consuming) past any
// further blank-line NEWLINEs to find the indentation of the next
// substantive token, and how many buffered states it had to skip to get
// there.
func (p *Parser) peekIndentationAfterNewlines() (indentation, skip int) {
	i := 0
	for {
		st := p.queue.Get(i)
		if st.Token == token.EOS {
			return -1, i
		}
		if st.Token != token.NEWLINE {
			return st.Indentation, i
		}
		i++
	}
}

func (p *Parser) toPstate(st scanner.State) pstate {
	return pstate{
		tok:         st.Token,
		data:        st.Data,
		rng:         p.src.Range(st.From, st.To),
		indentation: st.Indentation,
		attached:    st.IsAttached,
		isLSP:       st.IsLSPSelection,
	}
}

// --- indentation-delimited constructs -----------------------------------

// popConstruct pops the innermost frame and, if a sticky DEDENT is
// current, re-evaluates it against the new top: once no remaining frame
// closes at the dedent's indentation, the dedent is exhausted and the
// next real token becomes current again.
func (p *Parser) popConstruct() {
	p.indentStack.PopOne()
	if p.haveCurrent && p.current.tok == token.DEDENT {
		if p.indentStack.IsEmpty() || p.dedentIndentation > p.indentStack.TopIndentation() {
			p.haveCurrent = false
		}
	}
}

// reevaluateCurrent retrofits the freshly pushed frame at level onto a
// token that was already fetched before the push: if that token starts a
// new line at or below the construct's own column (or is EOS), it belongs
// outside the construct, so it is stashed and replaced by the DEDENT the
// push would have produced had it happened before the fetch.
func (p *Parser) reevaluateCurrent(level int) {
	if !p.haveCurrent || p.current.tok == token.DEDENT {
		return
	}
	c := p.current
	isEOS := c.tok == token.EOS
	if !isEOS && (!c.atNewline || c.indentation > level) {
		return
	}
	ind := c.indentation
	if isEOS {
		ind = -1
	}
	p.stashed = c
	p.hasStashed = true
	p.dedentIndentation = ind
	p.current = pstate{tok: token.DEDENT, atNewline: true, indentation: ind, rng: c.rng}
}

// fatalOverflow reports the single bounded-recovery error and fast
// forwards the scanner to end of file; every open construct then unwinds
// through the terminal DEDENT cascade.
func (p *Parser) fatalOverflow() {
	if p.overflowed {
		return
	}
	p.reportErrorAt(p.peekRange(), "Maximal recursion depth exceeded")
	p.overflowed = true
	p.scn.AdvanceTo(p.src.Size())
	p.queue.DiscardBuffered()
	p.haveCurrent = false
	p.hasStashed = false
}

// parseBody parses the statement list of an already-opened ":" block --
// the colon itself must have been consumed by the caller (some
// constructs, like a block/lambda argument, need to inspect the colon
// before deciding to consume it). level is the indentation column of the
// construct that owns the body (the line its keyword or ":" sits on);
// every statement line must be indented strictly deeper. An empty block
// -- a ":" immediately followed by a dedent back to the enclosing level,
// or by end of file -- is reported as an error.
func (p *Parser) parseBody(kind Kind, level int) *ast.Sequence {
	seq := &ast.Sequence{}
	c := p.cur()
	from := c.rng.From
	if p.indentStack.Size() > maxIndentationDepth {
		p.fatalOverflow()
		seq.SetRange(from, from)
		return seq
	}
	p.indentStack.Push(level, kind, c.rng)
	p.reevaluateCurrent(level)

	if p.cur().tok == token.DEDENT || p.cur().tok == token.EOS {
		p.reportErrorAt(p.peekRange(), "Empty block")
	}
	for !p.overflowed {
		t := p.cur().tok
		if t == token.DEDENT || t == token.EOS {
			break
		}
		// Inside a delimited context (a block argument in parens, a block
		// inside a literal) the enclosing delimiter ends the body before
		// any dedent does.
		if t == token.RPAREN || t == token.RBRACK || t == token.RBRACE ||
			t == token.COMMA || t == token.SEMICOLON {
			break
		}
		s := p.parseStatement()
		if s == nil {
			if !p.forceProgress() {
				break
			}
			continue
		}
		seq.Statements = append(seq.Statements, s)
	}
	to := p.peekRange().From
	p.popConstruct()
	seq.SetRange(from, to)
	return seq
}
