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

import "testing"

func TestFileLocation(t *testing.T) {
	// "abc\ndef\nghi" -- lines start at 0, 4, 8.
	f := NewFile("f.toit", 0, 11)
	f.AddLine(4)
	f.AddLine(8)

	cases := []struct {
		pos          Pos
		line, column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
		{10, 3, 3},
	}
	for _, c := range cases {
		loc := f.Location(c.pos)
		if loc.Line != c.line || loc.Column != c.column {
			t.Errorf("Location(%d) = %d:%d, want %d:%d", c.pos, loc.Line, loc.Column, c.line, c.column)
		}
	}
}

func TestFileLocationOutOfRange(t *testing.T) {
	f := NewFile("f.toit", 100, 10)
	loc := f.Location(5)
	if loc.IsValid() {
		t.Errorf("Location(5) out of [100,110] should be invalid, got %v", loc)
	}
}

func TestFileLocationSequentialCache(t *testing.T) {
	// Sequential lookups exercise the cachedIndex fast path as well as
	// the binary-search fallback; both must agree with each other.
	f := NewFile("f.toit", 0, 100)
	for i := 0; i < 20; i++ {
		f.AddLine(Pos(i * 5))
	}
	for i := 0; i < 20; i++ {
		loc := f.Location(Pos(i * 5))
		if loc.Line != i+1 {
			t.Errorf("Location(%d) line = %d, want %d", i*5, loc.Line, i+1)
		}
	}
	// Now walk backwards, forcing the cache to miss every time.
	for i := 19; i >= 0; i-- {
		loc := f.Location(Pos(i * 5))
		if loc.Line != i+1 {
			t.Errorf("backwards Location(%d) line = %d, want %d", i*5, loc.Line, i+1)
		}
	}
}

func TestFileContainsEndInclusive(t *testing.T) {
	f := NewFile("f.toit", 10, 5)
	if !f.Contains(f.End()) {
		t.Error("Contains(End()) should be true, one-past-end is used for EOF diagnostics")
	}
	if f.Contains(f.End() + 1) {
		t.Error("Contains(End()+1) should be false")
	}
	if f.Contains(9) {
		t.Error("Contains(base-1) should be false")
	}
}
