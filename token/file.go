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

package token

import "sort"

// File tracks the line boundaries of a single loaded source file within the
// shared, monotonically increasing Pos space. It mirrors cue/token's File
// line-table, simplified to the single responsibility this front end needs:
// turning a Pos into a Location. Base/Size carve out this file's slice of
// the global Pos space; the source manager is responsible for choosing
// non-overlapping slices as files are loaded.
type File struct {
	name string
	base Pos // Pos of the first byte of this file.
	size int // number of bytes in this file.

	// lines holds the Pos of the first byte of every line in the file,
	// always starting with base. Appended to as AddLine is called while
	// scanning; never shrinks.
	lines []Pos

	// cachedIndex remembers the line index of the last lookup, mirroring
	// the original SourceManager's cached_offset_/cached_location_ fields:
	// successive lookups during diagnostics printing are usually close
	// together (adjacent tokens in a single error message), so a linear
	// scan forward from the cache usually beats a fresh binary search.
	cachedIndex int
}

// NewFile creates a File for a chunk of the global Pos space starting at
// base and spanning size bytes.
func NewFile(name string, base Pos, size int) *File {
	return &File{
		name:  name,
		base:  base,
		size:  size,
		lines: []Pos{base},
	}
}

// Name returns the file's path as it was loaded.
func (f *File) Name() string { return f.name }

// Base returns the Pos of the first byte in the file.
func (f *File) Base() Pos { return f.base }

// Size returns the number of bytes in the file.
func (f *File) Size() int { return f.size }

// End returns the Pos one past the last byte in the file.
func (f *File) End() Pos { return f.base + Pos(f.size) }

// Contains reports whether p falls within this file's slice of Pos space.
func (f *File) Contains(p Pos) bool {
	return p >= f.base && p <= f.End()
}

// AddLine records that a new line starts at the absolute position p. Lines
// must be added in increasing order; the scanner calls this every time it
// scans a newline.
func (f *File) AddLine(p Pos) {
	if n := len(f.lines); n == 0 || f.lines[n-1] < p {
		f.lines = append(f.lines, p)
	}
}

// Location converts an absolute Pos into a 1-based line/column pair.
func (f *File) Location(p Pos) Location {
	if !p.IsValid() || !f.Contains(p) {
		return Location{Filename: f.name}
	}
	i := f.lineIndex(p)
	lineStart := f.lines[i]
	return Location{
		Filename: f.name,
		Line:     i + 1,
		Column:   int(p-lineStart) + 1,
	}
}

// lineIndex returns the index into f.lines of the line containing p,
// consulting (and updating) the cache before falling back to a binary
// search, per the original SourceManager's caching strategy.
func (f *File) lineIndex(p Pos) int {
	if i := f.cachedIndex; i >= 0 && i < len(f.lines) {
		if f.lines[i] <= p && (i+1 == len(f.lines) || p < f.lines[i+1]) {
			return i
		}
		// Scan forward a short distance from the cached index before
		// falling back to binary search: diagnostics are usually
		// printed in source order, so the next lookup is usually just
		// ahead of the last one.
		for j := i; j < len(f.lines)-1 && j < i+8; j++ {
			if f.lines[j] <= p && p < f.lines[j+1] {
				f.cachedIndex = j
				return j
			}
		}
	}
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > p }) - 1
	if i < 0 {
		i = 0
	}
	f.cachedIndex = i
	return i
}

// LineCount returns the number of lines recorded so far.
func (f *File) LineCount() int { return len(f.lines) }
