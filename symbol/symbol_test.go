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

import "testing"

func TestCanonicalizeIdentifierIdentity(t *testing.T) {
	c := New()
	a := c.CanonicalizeIdentifier("foo")
	b := c.CanonicalizeIdentifier("foo")
	if a != b {
		t.Errorf("canonicalizing %q twice returned different symbols: %p != %p", "foo", a, b)
	}
	other := c.CanonicalizeIdentifier("bar")
	if a == other {
		t.Error("distinct spellings must not share a symbol")
	}
}

func TestCanonicalizeNumberIdentity(t *testing.T) {
	c := New()
	a := c.CanonicalizeNumber("123")
	b := c.CanonicalizeNumber("123")
	if a != b {
		t.Error("canonicalizing the same numeric spelling twice must return the same symbol")
	}
}

func TestIdentifierAndNumberTriesAreIndependent(t *testing.T) {
	c := New()
	id := c.CanonicalizeIdentifier("123")
	num := c.CanonicalizeNumber("123")
	if id == num {
		t.Error("identifier and number tries must not share interned symbols even for the same bytes")
	}
}

func TestLookupIdentifier(t *testing.T) {
	c := New()
	if _, ok := c.LookupIdentifier("never_interned"); ok {
		t.Error("LookupIdentifier should report false for a never-canonicalized name")
	}
	want := c.CanonicalizeIdentifier("seen")
	got, ok := c.LookupIdentifier("seen")
	if !ok || got != want {
		t.Errorf("LookupIdentifier(%q) = %v, %v, want %v, true", "seen", got, ok, want)
	}
}

func TestSymbolIsPrivate(t *testing.T) {
	c := New()
	if !c.CanonicalizeIdentifier("foo_").IsPrivate() {
		t.Error(`"foo_" should be private`)
	}
	if c.CanonicalizeIdentifier("foo").IsPrivate() {
		t.Error(`"foo" should not be private`)
	}
	if c.CanonicalizeIdentifier("_").IsPrivate() {
		t.Error(`"_" alone should not be considered private (empty name before the underscore)`)
	}
}

func TestSyntheticNeverCollidesWithInterned(t *testing.T) {
	c := New()
	interned := c.CanonicalizeIdentifier("x")
	synth := Synthetic("x")
	if interned == synth {
		t.Error("Synthetic should never be identical to an interned symbol, even for equal text")
	}
	if synth.Text() != "x" {
		t.Errorf("Synthetic text = %q, want %q", synth.Text(), "x")
	}
}

func TestPredefinedIdentitiesRoundtrip(t *testing.T) {
	c := New()
	pre := NewPredefined(c)
	if pre.This != c.CanonicalizeIdentifier("this") {
		t.Error("Predefined.This should be identical to re-canonicalizing \"this\"")
	}
	if !pre.IsReserved(pre.This) {
		t.Error("this should be reserved")
	}
	if pre.IsReserved(pre.It) {
		t.Error("it should not be unconditionally reserved")
	}
	if !pre.IsFutureReserved(pre.Mixin) {
		t.Error("mixin should be future-reserved")
	}
	if pre.IsFutureReserved(pre.This) {
		t.Error("this is reserved, not merely future-reserved")
	}
}
