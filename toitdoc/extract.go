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
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/token"
)

// Extracted is the delimiter-stripped text of one toitdoc comment block
// (a "/** ... */" run or a contiguous run of "///" lines), plus the
// per-line mapping back to the original source needed to give parse
// errors and "$ref" sub-parses real file positions. Grounded on
// ToitdocSource/ToitdocTextBuilder in
// original_source/toitdoc_parser.cc.
type Extracted struct {
	Text []byte

	src                *source.Source
	sourceLineOffsets  []int // offset (within src.Text()) where each extracted line began
	toitdocLineOffsets []int // matching offset within Text
}

// sourceOffsetAt maps a byte offset within Text back to a byte offset
// within the original source's text, mirroring
// ToitdocSource::source_offset_at's fast-path-plus-binary-search.
func (e *Extracted) sourceOffsetAt(offset int) int {
	last := len(e.toitdocLineOffsets) - 1
	if offset >= e.toitdocLineOffsets[last] {
		return e.sourceLineOffsets[last] + (offset - e.toitdocLineOffsets[last])
	}
	start, end := 0, last
	for {
		mid := start + (end-start)/2
		if e.toitdocLineOffsets[mid] <= offset && offset < e.toitdocLineOffsets[mid+1] {
			return e.sourceLineOffsets[mid] + (offset - e.toitdocLineOffsets[mid])
		}
		if e.toitdocLineOffsets[mid] > offset {
			end = mid
		} else {
			start = mid + 1
		}
	}
}

// Range converts an extracted-text [from, to) span into a token.Range in
// the original source, the Go analogue of ToitdocSource::range.
func (e *Extracted) Range(from, to int) token.Range {
	return e.src.Range(e.sourceOffsetAt(from), e.sourceOffsetAt(to))
}

type lineBuilder struct {
	sourceLineOffsets  []int
	toitdocLineOffsets []int
	text               []byte
}

func (b *lineBuilder) addLine(text []byte, from, to int) {
	b.sourceLineOffsets = append(b.sourceLineOffsets, from)
	b.toitdocLineOffsets = append(b.toitdocLineOffsets, len(b.text))
	b.text = append(b.text, text[from:to]...)
	b.text = append(b.text, '\n')
}

func (b *lineBuilder) build(src *source.Source, fallbackFrom int) *Extracted {
	if len(b.sourceLineOffsets) == 0 {
		b.addLine(nil, 0, 0)
		b.sourceLineOffsets[0] = fallbackFrom
	}
	// Drop the trailing '\n' (and a preceding '\r', for CRLF sources) added
	// by the last addLine call -- it may not exist in the actual source.
	if len(b.text) > 0 {
		b.text = b.text[:len(b.text)-1]
	}
	if len(b.text) > 0 && b.text[len(b.text)-1] == '\r' {
		b.text = b.text[:len(b.text)-1]
	}
	return &Extracted{
		Text:               b.text,
		src:                src,
		sourceLineOffsets:  b.sourceLineOffsets,
		toitdocLineOffsets: b.toitdocLineOffsets,
	}
}

// ExtractMultiline strips the leading "/**" and trailing "*/" from a
// "/** ... */" comment and removes each following line's shared leading
// indentation (computed from how far the "/**" itself is indented),
// mirroring extract_multiline_comment_text.
func ExtractMultiline(src *source.Source, from, to int) *Extracted {
	text := src.Text()

	indentation := 0
	for i := from; i > 0 && text[i-1] == ' '; i-- {
		indentation++
	}

	from += 3 // "/**"
	if to-2 >= from && text[to-2] == '*' && text[to-1] == '/' {
		to -= 2
	}

	b := &lineBuilder{}
	isFirstLine := true
	lineStart := from
	atBOL := false
	i := from
	for ; i < to; i++ {
		if atBOL {
			atBOL = false
			for j := 0; j < indentation; j++ {
				if i < to && text[i] == ' ' {
					lineStart++
					i++
				} else {
					break
				}
			}
			if i >= to {
				break
			}
		}
		if text[i] == '\n' {
			if !isFirstLine || i != lineStart {
				b.addLine(text, lineStart, i)
			}
			lineStart = i + 1
			atBOL = true
			isFirstLine = false
		}
	}
	if isFirstLine {
		for lineStart < to && text[lineStart] == ' ' {
			lineStart++
		}
		for to > lineStart && text[to-1] == ' ' {
			to--
		}
		b.addLine(text, lineStart, to)
	} else if lineStart != to {
		b.addLine(text, lineStart, to)
	}
	return b.build(src, from)
}

// ExtractSingleline strips the leading "///" (and one following space, if
// present) from each line of a contiguous run of "///" comments, mirroring
// extract_singleline_comment_text.
func ExtractSingleline(src *source.Source, from, to int) *Extracted {
	text := src.Text()
	b := &lineBuilder{}
	atBOL := true
	lineStart := -1
	for i := from; i <= to; i++ {
		if atBOL {
			for text[i] == ' ' {
				i++
			}
			// text[i:i+3] == "///"
			i += 3
			if i < len(text) && text[i] == ' ' {
				i++
			}
			lineStart = i
			atBOL = false
		}
		if i == to || text[i] == '\n' {
			b.addLine(text, lineStart, i)
			atBOL = true
		}
	}
	return b.build(src, from)
}
