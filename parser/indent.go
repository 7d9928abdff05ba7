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

import "github.com/toitlang/toitc/token"

// Kind names the syntactic construct an IndentationStack entry belongs to.
// Reproduced verbatim (in meaning and in order) from the original
// compiler's IndentationStack::Kind enum in parser.h: every construct that
// can span multiple lines pushes one of these so that a later line whose
// indentation drops back to (or below) the construct's own level can be
// recognized as a DEDENT closing it.
type Kind int

const (
	KindImport Kind = iota
	KindExport
	KindDeclaration
	KindDeclarationSignature
	KindClass
	KindBlock
	KindIfCondition
	KindIfBody
	KindWhileCondition
	KindWhileBody
	KindForInit
	KindForCondition
	KindForUpdate
	KindForBody
	KindConditional
	KindConditionalThen
	KindConditionalElse
	KindLogical
	KindCall
	KindAssignment
	KindDelimited
	KindLiteral
	KindPrimitive
	KindTry
	KindSequence
)

type indentEntry struct {
	indentation int
	kind        Kind
	endToken    token.Kind
	startRange  token.Range
}

// IndentationStack tracks the nested multiline constructs currently open,
// each remembering the column it must dedent back to (or past) to be
// considered closed. Grounded directly on the original IndentationStack;
// a plain Go slice replaces the hand-rolled std::vector<Entry>, with the
// same push/pop/top_*/is_outmost operations.
type IndentationStack struct {
	entries []indentEntry
}

// Push opens a new construct with no explicit closing token (e.g. an `if`
// body, closed purely by dedent).
func (s *IndentationStack) Push(level int, kind Kind, startRange token.Range) {
	s.PushDelimited(level, kind, token.INVALID, startRange)
}

// PushDelimited opens a new construct that is additionally expected to
// close with endToken (e.g. a parenthesized expression, closed by `)`
// even if reached before any dedent).
func (s *IndentationStack) PushDelimited(level int, kind Kind, endToken token.Kind, startRange token.Range) {
	s.entries = append(s.entries, indentEntry{level, kind, endToken, startRange})
}

// Pop closes the n most recently opened constructs.
func (s *IndentationStack) Pop(n int) {
	s.entries = s.entries[:len(s.entries)-n]
}

// PopOne closes the top construct and returns the indentation it was
// opened at.
func (s *IndentationStack) PopOne() int {
	top := s.TopIndentation()
	s.entries = s.entries[:len(s.entries)-1]
	return top
}

// Size returns the number of currently open constructs.
func (s *IndentationStack) Size() int { return len(s.entries) }

// IsEmpty reports whether no construct is open.
func (s *IndentationStack) IsEmpty() bool { return len(s.entries) == 0 }

// TopIndentation returns the indentation the innermost open construct was
// pushed at.
func (s *IndentationStack) TopIndentation() int {
	return s.entries[len(s.entries)-1].indentation
}

// TopKind returns the Kind of the innermost open construct.
func (s *IndentationStack) TopKind() Kind {
	return s.entries[len(s.entries)-1].kind
}

// TopEndToken returns the token the innermost open construct expects to
// be explicitly closed with, or token.INVALID if it closes purely by
// dedent.
func (s *IndentationStack) TopEndToken() token.Kind {
	return s.entries[len(s.entries)-1].endToken
}

// TopStartRange returns the source range of the token that opened the
// innermost construct, used to anchor "unterminated construct" errors.
func (s *IndentationStack) TopStartRange() token.Range {
	return s.entries[len(s.entries)-1].startRange
}

// IsOutmost reports whether the innermost entry (which must have the
// given kind) is the outermost construct at its indentation level -- i.e.
// no enclosing construct at the very same column is also of this kind.
// Mirrors IndentationStack::is_outmost, used to disambiguate a dedent that
// could close more than one same-column construct of the same kind (e.g.
// nested `if` bodies at identical indentation due to a one-line `if`).
func (s *IndentationStack) IsOutmost(kind Kind) bool {
	thisIndentation := s.TopIndentation()
	for i := len(s.entries) - 2; i >= 0; i-- {
		e := s.entries[i]
		if e.indentation != thisIndentation {
			return true
		}
		if e.kind == kind {
			return false
		}
	}
	return true
}
