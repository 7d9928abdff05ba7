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

// Package source owns loaded source text: reading bytes from a filesystem
// (or a virtual/in-memory origin), assigning each loaded file a disjoint
// slice of the shared token.Pos space, and mapping positions back to
// locations. Grounded on the original compiler's sources.h (Source,
// SourceManager) and adapted from cue/token's File/Pos bookkeeping plus
// the teacher's internal/source read-abstraction and
// internal/filesystem/osfs.go OS filesystem.
package source

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/toitlang/toitc/token"
)

// VirtualFilePrefix marks a path as not backed by a real file -- e.g. a
// buffer the LSP server keeps open that has never been saved to disk.
// Mirrors Source::VIRTUAL_FILE_PREFIX in the original sources.h.
const VirtualFilePrefix = "///"

// Source is a single loaded compilation input: its path, its text, and its
// slice of the shared Pos space.
type Source struct {
	path string
	text []byte
	file *token.File

	// lspOffset, if >= 0, is the byte offset of an injected LSP selection
	// marker (see IsLSPMarkerAt). -1 means no marker was injected.
	lspOffset int
}

// Path returns the path the source was loaded from, or a virtual path
// beginning with VirtualFilePrefix.
func (s *Source) Path() string { return s.path }

// Text returns the raw bytes of the source, including any injected LSP
// marker byte.
func (s *Source) Text() []byte { return s.text }

// Size returns the number of bytes in Text.
func (s *Source) Size() int { return len(s.text) }

// File returns the token.File tracking this source's line table.
func (s *Source) File() *token.File { return s.file }

// IsVirtual reports whether the source has no backing file on disk.
func (s *Source) IsVirtual() bool {
	return strings.HasPrefix(s.path, VirtualFilePrefix)
}

// Range builds a token.Range from byte offsets within this source.
func (s *Source) Range(from, to int) token.Range {
	base := s.file.Base()
	return token.Range{From: base + token.Pos(from), To: base + token.Pos(to)}
}

// OffsetInSource converts an absolute Pos back into a byte offset within
// this source's text, the inverse of Range.
func (s *Source) OffsetInSource(p token.Pos) int {
	return int(p - s.file.Base())
}

// IsLSPMarkerAt reports whether offset is the position of an injected LSP
// selection marker byte. See scanner.LSPSelectionMarker.
func (s *Source) IsLSPMarkerAt(offset int) bool {
	return s.lspOffset >= 0 && offset == s.lspOffset
}

// TextRangeWithoutMarker returns the text in [from, to) with the injected
// marker byte cut out -- i.e. as if the marker had never been inserted,
// matching LspSource::text_range_without_marker. The offsets are in the
// marker-injected coordinate space the scanner operates in.
func (s *Source) TextRangeWithoutMarker(from, to int) []byte {
	if s.lspOffset < from || s.lspOffset >= to {
		return s.text[from:to]
	}
	out := make([]byte, 0, to-from-1)
	out = append(out, s.text[from:s.lspOffset]...)
	out = append(out, s.text[s.lspOffset+1:to]...)
	return out
}

// errorPath returns the path to use in diagnostics: absolute paths are
// left alone, virtual paths are shown verbatim.
func (s *Source) errorPath() string {
	return s.path
}

// Location converts p into a human-readable line/column, prefixed with
// this source's error path.
func (s *Source) Location(p token.Pos) token.Location {
	loc := s.file.Location(p)
	loc.Filename = s.errorPath()
	return loc
}

// newSource wraps raw bytes loaded from path (or a virtual name) with a
// freshly allocated token.File at the given base position. If
// lspOffset >= 0, a scanner.LSPSelectionMarker byte is inserted at
// that offset first, matching LspSource's constructor.
func newSource(path string, text []byte, base token.Pos, lspOffset int) *Source {
	if lspOffset >= 0 {
		text = injectMarker(text, lspOffset)
	}
	return &Source{
		path:      path,
		text:      text,
		file:      token.NewFile(path, base, len(text)),
		lspOffset: lspOffset,
	}
}

const lspSelectionMarker = 1

func injectMarker(text []byte, offset int) []byte {
	out := make([]byte, 0, len(text)+1)
	out = append(out, text[:offset]...)
	out = append(out, lspSelectionMarker)
	out = append(out, text[offset:]...)
	return out
}

// readFile is a small wrapper kept in the shape of the teacher's
// internal/source.FileSource.Read, so that Manager.Load and tests share
// one code path for turning a filesystem into bytes.
func readFile(fsys Filesystem, path string) ([]byte, error) {
	if fsys == nil {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return b, nil
	}
	return fsys.ReadContent(path)
}

// canonicalPath normalizes path for use as a map key and diagnostic
// prefix, matching the original's preference for absolute, slash-style
// paths.
func canonicalPath(path string) string {
	if strings.HasPrefix(path, VirtualFilePrefix) {
		return path
	}
	return filepath.ToSlash(filepath.Clean(path))
}
