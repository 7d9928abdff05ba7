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

// trie is a byte-keyed prefix tree mapping spellings to interned Symbols.
// The original compiler (trie.h/trie.cc) hand-rolls a node whose children
// start as an inlined two-element array and grow into a heap-allocated,
// geometrically resized array as more children are added -- an optimization
// for a language (C++) without a built-in associative container anywhere
// near as convenient as Go's map. A map[byte]*trieNode is the idiomatic Go
// equivalent of "a node's children, keyed by next byte" and is what this
// front end uses instead; see DESIGN.md for the full rationale.
type trie struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	sym      *Symbol // non-nil once a symbol has been fully inserted here.
}

func newTrie() *trie {
	return &trie{root: &trieNode{}}
}

// intern returns the Symbol for text, creating and caching it on first use.
func (t *trie) intern(text string) *Symbol {
	n := t.root
	for i := 0; i < len(text); i++ {
		b := text[i]
		if n.children == nil {
			n.children = make(map[byte]*trieNode, 1)
		}
		child, ok := n.children[b]
		if !ok {
			child = &trieNode{}
			n.children[b] = child
		}
		n = child
	}
	if n.sym == nil {
		n.sym = &Symbol{text: text}
	}
	return n.sym
}

// lookup returns the Symbol for text if it has already been interned,
// without creating a new entry.
func (t *trie) lookup(text string) (*Symbol, bool) {
	n := t.root
	for i := 0; i < len(text); i++ {
		if n.children == nil {
			return nil, false
		}
		child, ok := n.children[text[i]]
		if !ok {
			return nil, false
		}
		n = child
	}
	if n.sym == nil {
		return nil, false
	}
	return n.sym, true
}
