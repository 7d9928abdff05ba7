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

import "github.com/toitlang/toitc/scanner"

// tokenQueue buffers scanner lookahead states plus one retained "previous"
// slot, so the parser can peek arbitrarily far ahead (bounded in practice
// by how deep a single construct's lookahead goes) and still know what it
// most recently consumed. The original ScannerStateQueue hand-rolls a
// power-of-two ring buffer with manual rotate-and-double growth because
// C++ gives it nothing better for a fixed-capacity circular buffer; a Go
// slice already amortizes growth and bounds-checks safely, so this keeps
// the same "previous + buffered" indexing scheme (get(-1) is previous,
// get(0) is the first not-yet-consumed state) on top of a plain slice
// instead of replicating the manual wraparound arithmetic.
type tokenQueue struct {
	scanner *scanner.Scanner

	previous scanner.State
	buffered []scanner.State
}

func newTokenQueue(s *scanner.Scanner) *tokenQueue {
	return &tokenQueue{scanner: s}
}

// Consume drops the oldest buffered state, making it the new "previous".
func (q *tokenQueue) Consume() {
	q.previous = q.buffered[0]
	q.buffered = q.buffered[1:]
}

// DiscardBuffered drops every buffered state without consuming them as
// "previous" -- used when the parser abandons a speculative lookahead
// (e.g. a string interpolation's sub-expression failed to parse and the
// scanner must be realigned to resume scanning string content).
func (q *tokenQueue) DiscardBuffered() {
	q.buffered = q.buffered[:0]
}

// BufferInterpolatedPart, BufferStringPart and BufferStringFormatPart ask
// the scanner to produce one more state using a scanner mode other than
// Next, appending it to the buffer.
func (q *tokenQueue) BufferInterpolatedPart() {
	q.buffered = append(q.buffered, q.scanner.NextInterpolatedPart())
}

func (q *tokenQueue) BufferStringPart(isMultiline bool) {
	q.buffered = append(q.buffered, q.scanner.NextStringPart(isMultiline))
}

func (q *tokenQueue) BufferStringFormatPart() {
	q.buffered = append(q.buffered, q.scanner.NextStringFormatPart())
}

// Get returns the buffered state at position i, buffering more from the
// scanner as needed. i == -1 returns the previous (most recently
// consumed) state.
func (q *tokenQueue) Get(i int) scanner.State {
	if i == -1 {
		return q.previous
	}
	for i >= len(q.buffered) {
		q.buffered = append(q.buffered, q.scanner.Next())
	}
	return q.buffered[i]
}
