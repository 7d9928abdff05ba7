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

package symbol

// Canonicalizer interns the two lexical categories that need identity
// comparisons: identifiers/keywords and number literals. Grounded directly
// on the original SymbolCanonicalizer, which keeps exactly these two tries
// (identifier_trie_ and number_trie_) because identifiers are compared by
// identity constantly (keyword dispatch, scope lookup) while number
// literals are interned mainly so that the scanner can reuse one
// allocation for a repeated constant within a single unit.
//
// A Canonicalizer is not safe for concurrent use; each parse owns one.
type Canonicalizer struct {
	identifiers *trie
	numbers     *trie
}

// New creates an empty Canonicalizer.
func New() *Canonicalizer {
	return &Canonicalizer{
		identifiers: newTrie(),
		numbers:     newTrie(),
	}
}

// CanonicalizeIdentifier interns text as an identifier or keyword spelling.
func (c *Canonicalizer) CanonicalizeIdentifier(text string) *Symbol {
	return c.identifiers.intern(text)
}

// CanonicalizeNumber interns text as a numeric literal spelling.
func (c *Canonicalizer) CanonicalizeNumber(text string) *Symbol {
	return c.numbers.intern(text)
}

// LookupIdentifier returns the already-interned identifier Symbol for
// text, if any. Used by Symbols to pre-populate predefined identities.
func (c *Canonicalizer) LookupIdentifier(text string) (*Symbol, bool) {
	return c.identifiers.lookup(text)
}
