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

// Package symbol implements interned strings ("symbols"): identifiers and
// number literals are canonicalized once per distinct spelling so that
// later comparisons (e.g. "is this identifier named 'this'?") are pointer
// comparisons rather than string comparisons. This mirrors the original
// compiler's Symbol/SymbolCanonicalizer/Trie design in symbol.h and
// symbol_canonicalizer.h.
package symbol

// Symbol is an interned string. Two Symbols denote the same text if and
// only if they are the same pointer; the zero value (nil) is the invalid
// symbol.
type Symbol struct {
	text string
}

// Invalid is the sentinel returned where the original returns
// Symbol::invalid(), e.g. for tokens that carry no textual payload.
var Invalid *Symbol

// Synthetic creates a Symbol that is not, and will never be, registered in
// any canonicalizer trie. It is used for symbols derived purely from a
// token's fixed syntax (e.g. the text "+=" for ASSIGN_ADD) where identity
// interning buys nothing because the string is a compile-time constant.
func Synthetic(text string) *Symbol {
	return &Symbol{text: text}
}

// Text returns the symbol's underlying string.
func (s *Symbol) Text() string {
	if s == nil {
		return ""
	}
	return s.text
}

// IsValid reports whether s is not the invalid symbol.
func (s *Symbol) IsValid() bool {
	return s != nil
}

// IsPrivate reports whether the symbol follows Toit's private-member
// naming convention: an identifier ending in an underscore names a
// library- or class-private member. Grounded on
// Symbol::is_private_identifier in the original symbol.h. The toitdoc
// attacher consults it to note documentation cross-references that point
// at private names (attacher.commentsManager.reportPrivateRefs).
func (s *Symbol) IsPrivate() bool {
	// A bare "_" is the ignore-binding, not a private name.
	if s == nil || len(s.text) < 2 {
		return false
	}
	return s.text[len(s.text)-1] == '_'
}

func (s *Symbol) String() string {
	return s.Text()
}
