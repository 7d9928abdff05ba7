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

// Predefined holds the identifiers the parser and toitdoc attacher need to
// compare against by identity rather than by re-canonicalizing a string
// literal at every use site. This is a representative subset of the
// original Symbols class in token.h -- the full IDENTIFIERS macro also
// lists dozens of runtime-entry-point names (used by the resolver/codegen
// stages this front end does not implement); only the names the scanner,
// parser and toitdoc packages actually reference are reproduced here.
type Predefined struct {
	This        *Symbol
	Super       *Symbol
	Constructor *Symbol
	Underscore  *Symbol

	Throw   *Symbol
	Rethrow *Symbol
	Catch   *Symbol
	Switch  *Symbol
	Enum    *Symbol
	Mixin   *Symbol
	Interface *Symbol

	It      *Symbol
	Call    *Symbol
	Main    *Symbol
	From    *Symbol
	To      *Symbol
	Monitor *Symbol
	Operator *Symbol
}

// NewPredefined interns every predefined identifier in c, so that later
// comparisons against, say, Symbols.This are pointer comparisons.
func NewPredefined(c *Canonicalizer) *Predefined {
	return &Predefined{
		This:        c.CanonicalizeIdentifier("this"),
		Super:       c.CanonicalizeIdentifier("super"),
		Constructor: c.CanonicalizeIdentifier("constructor"),
		Underscore:  c.CanonicalizeIdentifier("_"),

		Throw:     c.CanonicalizeIdentifier("throw"),
		Rethrow:   c.CanonicalizeIdentifier("rethrow"),
		Catch:     c.CanonicalizeIdentifier("catch"),
		Switch:    c.CanonicalizeIdentifier("switch"),
		Enum:      c.CanonicalizeIdentifier("enum"),
		Mixin:     c.CanonicalizeIdentifier("mixin"),
		Interface: c.CanonicalizeIdentifier("interface"),

		It:       c.CanonicalizeIdentifier("it"),
		Call:     c.CanonicalizeIdentifier("call"),
		Main:     c.CanonicalizeIdentifier("main"),
		From:     c.CanonicalizeIdentifier("from"),
		To:       c.CanonicalizeIdentifier("to"),
		Monitor:  c.CanonicalizeIdentifier("monitor"),
		Operator: c.CanonicalizeIdentifier("operator"),
	}
}

// IsReserved reports whether name is one of the four identifiers that are
// always reserved, regardless of context (this/super/constructor/_).
func (p *Predefined) IsReserved(name *Symbol) bool {
	return name == p.This || name == p.Super || name == p.Constructor || name == p.Underscore
}

// IsFutureReserved reports whether name is reserved for a language feature
// this compiler does not yet implement as a full keyword (throw, rethrow,
// catch, switch, enum, mixin, interface) but still rejects as an
// identifier, matching Symbols::is_future_reserved.
func (p *Predefined) IsFutureReserved(name *Symbol) bool {
	switch name {
	case p.Throw, p.Rethrow, p.Catch, p.Switch, p.Enum, p.Mixin, p.Interface:
		return true
	default:
		return false
	}
}
