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

package source

import (
	"bytes"
	"testing"
)

func TestLoadWithLSPMarkerInjectsByte(t *testing.T) {
	fs := &MapFilesystem{Files: map[string][]byte{"/m.toit": []byte("foobar")}}
	m := NewManager(fs)
	r := m.LoadWithLSPMarker("/m.toit", 3)
	if !r.OK() {
		t.Fatalf("load failed: %v", r.Error)
	}
	s := r.Source
	if s.Size() != len("foobar")+1 {
		t.Fatalf("expected marker byte to grow the text by one, got size %d", s.Size())
	}
	if !s.IsLSPMarkerAt(3) {
		t.Error("IsLSPMarkerAt(3) should be true at the injection offset")
	}
	if s.IsLSPMarkerAt(4) {
		t.Error("IsLSPMarkerAt(4) should be false")
	}
	if s.Text()[3] != lspSelectionMarker {
		t.Errorf("byte at injected offset = %d, want %d", s.Text()[3], lspSelectionMarker)
	}
}

func TestTextRangeWithoutMarkerExcisesMarker(t *testing.T) {
	fs := &MapFilesystem{Files: map[string][]byte{"/m.toit": []byte("foobar")}}
	m := NewManager(fs)
	r := m.LoadWithLSPMarker("/m.toit", 3)
	s := r.Source
	// Raw text is "foo\x01bar"; the logical text (marker excised) is "foobar".
	got := s.TextRangeWithoutMarker(0, s.Size())
	if !bytes.Equal(got, []byte("foobar")) {
		t.Errorf("TextRangeWithoutMarker(whole range) = %q, want %q", got, "foobar")
	}
	// A range entirely before the marker is unaffected.
	got = s.TextRangeWithoutMarker(0, 2)
	if !bytes.Equal(got, []byte("fo")) {
		t.Errorf("TextRangeWithoutMarker(0,2) = %q, want %q", got, "fo")
	}
}

func TestSourceWithoutLSPMarkerIsPassthrough(t *testing.T) {
	fs := &MapFilesystem{Files: map[string][]byte{"/p.toit": []byte("hello")}}
	m := NewManager(fs)
	r := m.Load("/p.toit")
	s := r.Source
	if s.IsLSPMarkerAt(0) {
		t.Error("a source with no injected marker should never report IsLSPMarkerAt")
	}
	got := s.TextRangeWithoutMarker(1, 3)
	if !bytes.Equal(got, []byte("el")) {
		t.Errorf("TextRangeWithoutMarker(1,3) = %q, want %q", got, "el")
	}
}

func TestSourceRangeUsesFileBase(t *testing.T) {
	fs := &MapFilesystem{Files: map[string][]byte{"/p.toit": []byte("hello")}}
	m := NewManager(fs)
	r := m.Load("/p.toit")
	rng := r.Source.Range(1, 3)
	base := r.Source.File().Base()
	if rng.From != base+1 || rng.To != base+3 {
		t.Errorf("Range(1,3) = %v, want {%d,%d}", rng, base+1, base+3)
	}
}
