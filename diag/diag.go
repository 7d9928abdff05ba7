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

// Package diag implements the diagnostics sink the scanner, parser and
// toitdoc packages report through: a severity-tagged, range-carrying
// message type plus an accumulating list with the same sort/dedup/print
// shape as cue/errors, generalized with the error/warning/note severities
// this front end's spec requires.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toitlang/toitc/token"
)

// Severity classifies a diagnostic. Order matters: it is used to sort
// diagnostics that share a position, errors first.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "diagnostic"
	}
}

// Sink is implemented by anything that wants to observe diagnostics as
// they're produced. The parser and toitdoc parser are written against this
// interface so that a caller can plug in a NullDiagnostics sink (used when
// the toitdoc attacher re-invokes the parser to resolve a "$ref").
type Sink interface {
	Report(d Diagnostic)
	StartGroup()
	EndGroup()
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Range    token.Range
	Location token.Location
	Message  string
}

func (d Diagnostic) String() string {
	if d.Location.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// List accumulates diagnostics in report order, grouped by StartGroup/
// EndGroup the same way cue/errors.list groups related errors (e.g. "3
// errors in this struct literal") so they print together.
type List struct {
	diags  []Diagnostic
	groups []int // indices into diags where a group starts
	inGroup bool
}

var _ Sink = (*List)(nil)

// NewList creates an empty diagnostics list.
func NewList() *List {
	return &List{}
}

// Report appends d to the list.
func (l *List) Report(d Diagnostic) {
	l.diags = append(l.diags, d)
}

// StartGroup marks the beginning of a run of related diagnostics.
func (l *List) StartGroup() {
	if !l.inGroup {
		l.groups = append(l.groups, len(l.diags))
		l.inGroup = true
	}
}

// EndGroup closes the most recently opened group.
func (l *List) EndGroup() {
	l.inGroup = false
}

// Diagnostics returns the accumulated diagnostics in report order.
func (l *List) Diagnostics() []Diagnostic {
	return l.diags
}

// HasErrors reports whether any diagnostic in the list has Error severity.
func (l *List) HasErrors() bool {
	for _, d := range l.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by position, matching cue/errors' stable
// by-filename-then-line-then-column order.
func (l *List) Sort() {
	sort.SliceStable(l.diags, func(i, j int) bool {
		a, b := l.diags[i].Location, l.diags[j].Location
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Print writes every diagnostic to sb, one per line, in the classic
// "file:line:col: severity: message" shape.
func (l *List) Print(sb *strings.Builder) {
	for _, d := range l.diags {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
}

// NullDiagnostics discards every report. It is the sink the toitdoc
// attacher passes when re-parsing an expression purely to resolve a
// "$ref" -- the original compiler's toitdoc resolution path explicitly
// never wants a failed reference to surface as a top-level parse error.
type NullDiagnostics struct{}

var _ Sink = NullDiagnostics{}

func (NullDiagnostics) Report(Diagnostic) {}
func (NullDiagnostics) StartGroup()       {}
func (NullDiagnostics) EndGroup()         {}

// SeverityAdjusting wraps a Sink and caps the severity of every reported
// diagnostic at MinSeverity: a more severe diagnostic (e.g. an Error when
// MinSeverity is Warning) is reported at MinSeverity, a less severe one is
// passed on unchanged -- used by the toitdoc parser, whose own syntax
// errors are always downgraded to warnings (a malformed toitdoc comment
// should never fail the surrounding unit's compilation).
type SeverityAdjusting struct {
	Sink        Sink
	MinSeverity Severity
}

var _ Sink = SeverityAdjusting{}

func (s SeverityAdjusting) Report(d Diagnostic) {
	if d.Severity < s.MinSeverity {
		d.Severity = s.MinSeverity
	}
	s.Sink.Report(d)
}

func (s SeverityAdjusting) StartGroup() { s.Sink.StartGroup() }
func (s SeverityAdjusting) EndGroup()   { s.Sink.EndGroup() }
