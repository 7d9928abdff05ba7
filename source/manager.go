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
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/toitlang/toitc/token"
)

// LoadStatus reports the outcome of a single Load call, mirroring the
// original SourceManager::LoadResult::Status enum.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadNotFound
	LoadNotRegularFile
	LoadFailedToReadFile
)

// LoadResult is the outcome of loading one file: either a *Source on
// success, or a status describing why it couldn't be loaded.
type LoadResult struct {
	Status LoadStatus
	Source *Source
	Error  error
}

// OK reports whether the load succeeded.
func (r LoadResult) OK() bool { return r.Status == LoadOK }

// Manager owns every Source loaded during a single compilation and
// assigns each one a disjoint slice of the shared token.Pos space in load
// order, exactly as the original SourceManager assigns dense positions
// across all loaded files. It also caches loaded sources by canonical
// path so the same file is never read from disk twice.
type Manager struct {
	fs      Filesystem
	loaded  map[string]*Source
	order   []*Source
	nextPos token.Pos
}

// NewManager creates a Manager that resolves real files through fs. Pass
// nil to use the default OS filesystem rooted at the process's cwd.
func NewManager(fs Filesystem) *Manager {
	if fs == nil {
		fs = &OSFilesystem{}
	}
	return &Manager{
		fs:     fs,
		loaded: make(map[string]*Source),
	}
}

// Load reads path (resolving relative paths against the manager's
// filesystem) and registers it as a new Source, unless it was already
// loaded, in which case the cached Source is returned.
func (m *Manager) Load(path string) LoadResult {
	return m.load(path, -1)
}

// LoadWithLSPMarker behaves like Load but injects scanner.LSPSelectionMarker
// at offset before scanning, matching LspSource's role in the original.
func (m *Manager) LoadWithLSPMarker(path string, offset int) LoadResult {
	return m.load(path, offset)
}

func (m *Manager) load(path string, lspOffset int) LoadResult {
	key := canonicalPath(path)
	if lspOffset < 0 {
		if s, ok := m.loaded[key]; ok {
			return LoadResult{Status: LoadOK, Source: s}
		}
	}

	if !m.fs.Exists(path) {
		return LoadResult{Status: LoadNotFound, Error: fmt.Errorf("no such file: %s", path)}
	}
	if !m.fs.IsRegularFile(path) {
		return LoadResult{Status: LoadNotRegularFile, Error: fmt.Errorf("not a regular file: %s", path)}
	}
	text, err := readFile(m.fs, path)
	if err != nil {
		return LoadResult{Status: LoadFailedToReadFile, Error: err}
	}

	base := m.nextPos
	s := newSource(key, text, base, lspOffset)
	m.nextPos = base + token.Pos(s.Size()) + 1 // +1 gap so End() of one file never equals Base() of the next.
	if lspOffset < 0 {
		m.loaded[key] = s
	}
	m.order = append(m.order, s)
	return LoadResult{Status: LoadOK, Source: s}
}

// LoadVirtual registers in-memory text that has no backing file, e.g. an
// unsaved editor buffer, under a path beginning with VirtualFilePrefix.
func (m *Manager) LoadVirtual(name string, text []byte) *Source {
	key := VirtualFilePrefix + name
	if s, ok := m.loaded[key]; ok {
		return s
	}
	base := m.nextPos
	s := newSource(key, text, base, -1)
	m.nextPos = base + token.Pos(s.Size()) + 1
	m.loaded[key] = s
	m.order = append(m.order, s)
	return s
}

// LoadFiles loads every path, continuing past individual failures and
// aggregating them with hashicorp/go-multierror -- this is the outer
// "can every file in this batch even be opened" check; the per-unit
// parse-diagnostics channel (package diag) is unaffected by it and keeps
// running on whatever files did load.
func (m *Manager) LoadFiles(paths []string) ([]*Source, error) {
	var sources []*Source
	var errs *multierror.Error
	for _, p := range paths {
		res := m.Load(p)
		if !res.OK() {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p, res.Error))
			continue
		}
		sources = append(sources, res.Source)
	}
	if errs != nil {
		return sources, errs.ErrorOrNil()
	}
	return sources, nil
}

// Find returns the Source that owns p, or nil if p lies outside every
// loaded file's range. Used by diagnostics printing to turn a bare Pos
// into a Location.
func (m *Manager) Find(p token.Pos) *Source {
	// Sources are appended in increasing-base order, so a linear scan
	// from the back finds the owning file in the common case (most
	// lookups are for recently scanned positions) while staying correct
	// for any order of lookups.
	for i := len(m.order) - 1; i >= 0; i-- {
		if m.order[i].file.Contains(p) {
			return m.order[i]
		}
	}
	return nil
}

// Location converts p into a human-readable Location by finding its
// owning Source.
func (m *Manager) Location(p token.Pos) token.Location {
	if s := m.Find(p); s != nil {
		return s.Location(p)
	}
	return token.Location{}
}

// Sources returns every loaded source, in load order.
func (m *Manager) Sources() []*Source {
	return m.order
}
