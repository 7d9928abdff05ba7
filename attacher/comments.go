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

package attacher

import (
	"fmt"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/toitdoc"
	"github.com/toitlang/toitc/token"
)

// commentsManager finds the comment (if any) attached to a declaration and
// parses it into a toitdoc.Doc, mirroring CommentsManager in
// original_source/toitdoc_parser.cc. comments must already be sorted by
// position, which the scanner guarantees by construction.
type commentsManager struct {
	comments []scanner.Comment
	src      *source.Source
	symbols  *symbol.Canonicalizer
	mgr      *source.Manager
	diags    diag.Sink

	lastIndex int
}

func newCommentsManager(comments []scanner.Comment, src *source.Source, symbols *symbol.Canonicalizer, mgr *source.Manager, diags diag.Sink) *commentsManager {
	return &commentsManager{comments: comments, src: src, symbols: symbols, mgr: mgr, diags: diags}
}

// findClosestBefore returns the index of the comment closest to, but
// entirely before, node's range, or -1 if none exists. A small cache
// (lastIndex) makes the common case -- declarations visited in source
// order -- O(1) instead of O(log n).
func (cm *commentsManager) findClosestBefore(node ast.Node) int {
	nodeRange := ast.Range(node)
	if nodeRange.IsBefore(cm.comments[0].Range) {
		return -1
	}
	last := len(cm.comments) - 1
	if cm.comments[last].Range.IsBefore(nodeRange) {
		return last
	}

	if cm.lastIndex+1 <= last &&
		cm.comments[cm.lastIndex].Range.IsBefore(nodeRange) &&
		nodeRange.IsBefore(cm.comments[cm.lastIndex+1].Range) {
		return cm.lastIndex
	}

	start, end := 0, last
	for start < end {
		mid := start + (end-start)/2
		if cm.comments[mid].Range.IsBefore(nodeRange) {
			if nodeRange.IsBefore(cm.comments[mid+1].Range) {
				cm.lastIndex = mid
				return mid
			}
			start = mid + 1
		} else {
			end = mid
		}
	}
	return -1
}

// isAttachedIdx reports whether comments[i1] and comments[i2] are adjacent
// with nothing but whitespace between them.
func (cm *commentsManager) isAttachedIdx(i1, i2 int) bool {
	return cm.isAttached(cm.comments[i1].Range, cm.comments[i2].Range, false)
}

// isAttached reports whether next directly follows previous: at most one
// newline between them, and -- when allowModifiers is true -- a single
// line of non-colon-containing text in between (a declaration's
// modifiers, e.g. "abstract", sitting between a toitdoc and the
// declaration's own range, which the parser doesn't fold into the
// declaration's range). Ported from CommentsManager::is_attached, which
// carries the same hack and the same TODO to fix the declaration range
// instead.
func (cm *commentsManager) isAttached(previous, next token.Range, allowModifiers bool) bool {
	text := cm.src.Text()
	i := cm.src.OffsetInSource(previous.To)
	end := cm.src.OffsetInSource(next.From)

	for i < end && text[i] == ' ' {
		i++
	}
	if i == end {
		return true
	}
	if text[i] == '\r' {
		i++
	}
	if i == end {
		return true
	}
	if text[i] != '\n' {
		return false
	}
	i++
	for i < end && text[i] == ' ' {
		i++
	}
	if i == end {
		return true
	}
	if !allowModifiers {
		return false
	}
	for ; i < end; i++ {
		if text[i] == '\n' || text[i] == '\r' || text[i] == ':' {
			return false
		}
	}
	return true
}

// findFor returns the toitdoc attached to node, or an invalid Doc if none
// is, mirroring CommentsManager::find_for.
func (cm *commentsManager) findFor(node ast.Node) *toitdoc.Doc {
	closest := cm.findClosestBefore(node)
	if closest == -1 {
		return nil
	}
	if !cm.isAttached(cm.comments[closest].Range, ast.Range(node), true) {
		return nil
	}
	closestToit := closest
	for {
		if cm.comments[closestToit].IsToitdoc {
			break
		}
		if closestToit == 0 {
			return nil
		}
		if !cm.isAttachedIdx(closestToit-1, closestToit) {
			return nil
		}
		closestToit--
	}
	return cm.makeASTToitdoc(closestToit)
}

// makeASTToitdoc extracts and parses the toitdoc comment at index,
// stitching together a run of adjacent "///" lines into a single comment
// block first, mirroring CommentsManager::make_ast_toitdoc.
func (cm *commentsManager) makeASTToitdoc(index int) *toitdoc.Doc {
	firstToit, lastToit := index, index
	if !cm.comments[index].IsMultiline {
		for firstToit > 0 &&
			!cm.comments[firstToit-1].IsMultiline &&
			cm.comments[firstToit-1].IsToitdoc &&
			cm.isAttachedIdx(firstToit-1, firstToit) {
			firstToit--
		}
		for lastToit < len(cm.comments)-1 &&
			!cm.comments[lastToit+1].IsMultiline &&
			cm.comments[lastToit+1].IsToitdoc &&
			cm.isAttachedIdx(lastToit, lastToit+1) {
			lastToit++
		}
	}

	rng := cm.comments[firstToit].Range.Extend(cm.comments[lastToit].Range)
	fromOffset := cm.src.OffsetInSource(rng.From)
	toOffset := cm.src.OffsetInSource(rng.To)

	var extracted *toitdoc.Extracted
	if cm.comments[firstToit].IsMultiline {
		extracted = toitdoc.ExtractMultiline(cm.src, fromOffset, toOffset)
	} else {
		extracted = toitdoc.ExtractSingleline(cm.src, fromOffset, toOffset)
	}

	p := toitdoc.New(extracted, cm.symbols, cm.mgr, cm.diags)
	doc := p.Parse()
	cm.reportPrivateRefs(doc)
	return doc
}

// reportPrivateRefs notes every "$ref" in doc whose target name follows
// the private naming convention (a trailing underscore): documentation
// pointing readers at a library- or class-private member usually means
// the wrong overload was referenced, but it is legal, so this stays a
// note rather than a warning.
func (cm *commentsManager) reportPrivateRefs(doc *toitdoc.Doc) {
	for _, ref := range doc.Refs {
		name := privateRefName(ref)
		if name == nil {
			continue
		}
		rng := ast.Range(ref)
		cm.diags.Report(diag.Diagnostic{
			Severity: diag.Note,
			Range:    rng,
			Location: cm.mgr.Location(rng.From),
			Message:  fmt.Sprintf("documentation references private name '%s'", name.Text()),
		})
	}
}

// privateRefName returns the referenced member's name symbol when it is
// private: the signature head for a "$(name param*)" reference, the last
// dotted segment otherwise (the leading segments are containers, whose
// own privacy is not what the reference resolves to).
func privateRefName(ref *ast.ToitdocReference) *symbol.Symbol {
	var name *ast.Identifier
	if ref.Signature != nil {
		name = ref.Signature.Name
	} else if n := len(ref.Segments); n > 0 {
		name = ref.Segments[n-1]
	}
	if name == nil || !name.Name.IsPrivate() {
		return nil
	}
	return name.Name
}
