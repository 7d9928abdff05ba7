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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Filesystem is the narrow capability the source manager needs to resolve
// and load a path. It is the Go-native shape of the forward-declared
// Filesystem capability referenced (but not defined) by the original
// sources.h: exactly the operations the compiler driver calls, nothing
// from the package/module-loader's broader filesystem policy (out of
// scope, see SPEC_FULL.md Non-goals). Paths are strings; absolute paths
// begin with "/", virtual paths with VirtualFilePrefix.
type Filesystem interface {
	Exists(path string) bool
	IsRegularFile(path string) bool
	IsDirectory(path string) bool
	ReadContent(path string) ([]byte, error)
	Cwd() string
	// LibraryRoot is the directory holding the SDK's core libraries, used
	// by the (out-of-scope) import resolver; "" when not configured.
	LibraryRoot() string
	// PackageCachePaths lists the directories downloaded packages may
	// live in, in lookup order.
	PackageCachePaths() []string
	// ListToitDirectoryEntries calls cb once per ".toit" file (without
	// the extension) and once per subdirectory in path.
	ListToitDirectoryEntries(path string, cb func(name string, isDirectory bool))
}

// OSFilesystem is a Filesystem backed by the real operating system,
// adapted from internal/filesystem.OSFS: relative paths resolve against
// CWD, everything else behaves like the corresponding os.* call.
type OSFilesystem struct {
	CWD        string
	SDKLibRoot string
	CachePaths []string
}

var _ Filesystem = (*OSFilesystem)(nil)

func (o *OSFilesystem) abs(path string) string {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		path = filepath.Clean(filepath.Join(o.CWD, path))
	}
	return filepath.ToSlash(path)
}

func (o *OSFilesystem) Exists(path string) bool {
	_, err := os.Stat(o.abs(path))
	return err == nil
}

func (o *OSFilesystem) IsRegularFile(path string) bool {
	info, err := os.Stat(o.abs(path))
	return err == nil && info.Mode().IsRegular()
}

func (o *OSFilesystem) IsDirectory(path string) bool {
	info, err := os.Stat(o.abs(path))
	return err == nil && info.IsDir()
}

func (o *OSFilesystem) ReadContent(path string) ([]byte, error) {
	return os.ReadFile(o.abs(path))
}

func (o *OSFilesystem) Cwd() string {
	if o.CWD != "" {
		return o.CWD
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func (o *OSFilesystem) LibraryRoot() string { return o.SDKLibRoot }

func (o *OSFilesystem) PackageCachePaths() []string { return o.CachePaths }

func (o *OSFilesystem) ListToitDirectoryEntries(path string, cb func(name string, isDirectory bool)) {
	entries, err := os.ReadDir(o.abs(path))
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			cb(e.Name(), true)
			continue
		}
		if strings.HasSuffix(e.Name(), ".toit") {
			cb(strings.TrimSuffix(e.Name(), ".toit"), false)
		}
	}
}

// MapFilesystem is an in-memory Filesystem used by tests and by virtual
// (editor-buffer) sources that were never written to disk.
type MapFilesystem struct {
	Files map[string][]byte
	CWD   string
}

var _ Filesystem = (*MapFilesystem)(nil)

func (m *MapFilesystem) Exists(path string) bool {
	_, ok := m.Files[path]
	return ok
}

func (m *MapFilesystem) IsRegularFile(path string) bool {
	_, ok := m.Files[path]
	return ok
}

func (m *MapFilesystem) IsDirectory(path string) bool {
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range m.Files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (m *MapFilesystem) ReadContent(path string) ([]byte, error) {
	b, ok := m.Files[path]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return b, nil
}

func (m *MapFilesystem) Cwd() string {
	if m.CWD == "" {
		return "."
	}
	return m.CWD
}

func (m *MapFilesystem) LibraryRoot() string { return "" }

func (m *MapFilesystem) PackageCachePaths() []string { return nil }

func (m *MapFilesystem) ListToitDirectoryEntries(path string, cb func(name string, isDirectory bool)) {
	prefix := strings.TrimSuffix(path, "/") + "/"
	seenDirs := map[string]bool{}
	var names []string
	for p := range m.Files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			dir := rest[:i]
			if !seenDirs[dir] {
				seenDirs[dir] = true
				names = append(names, dir+"/")
			}
			continue
		}
		if strings.HasSuffix(rest, ".toit") {
			names = append(names, strings.TrimSuffix(rest, ".toit"))
		}
	}
	sort.Strings(names)
	for _, n := range names {
		if strings.HasSuffix(n, "/") {
			cb(strings.TrimSuffix(n, "/"), true)
		} else {
			cb(n, false)
		}
	}
}
