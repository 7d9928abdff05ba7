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

// Package astinternal renders a syntax tree as a multi-line, Go-like
// textual dump, including node positions and concrete types -- the
// low-level companion to ast.Print's source-shaped rendering, used by
// "toitc parse --debug" and by parser development. Adapted from the
// reflection-walking debug printer the teacher keeps in the same
// internal package for its own AST.
package astinternal

import (
	"fmt"
	gotoken "go/token"
	"reflect"
	"strings"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/token"
)

// AppendDebug writes a multi-line representation of node to dst,
// including position information and any relevant Go types.
func AppendDebug(dst []byte, node ast.Node, config DebugConfig) []byte {
	d := &debugPrinter{cfg: config}
	dst = d.value(dst, reflect.ValueOf(node), nil)
	dst = d.newline(dst)
	return dst
}

// DebugConfig configures the behavior of [AppendDebug].
type DebugConfig struct {
	// Filter is called before each value in a syntax tree.
	// Values for which the function returns false are omitted.
	Filter func(reflect.Value) bool

	// OmitEmpty causes empty strings, empty structs, empty lists,
	// nil pointers, invalid positions, and missing tokens to be omitted.
	OmitEmpty bool
}

type debugPrinter struct {
	cfg   DebugConfig
	level int
}

func (d *debugPrinter) printf(dst []byte, format string, args ...any) []byte {
	return fmt.Appendf(dst, format, args...)
}

func (d *debugPrinter) newline(dst []byte) []byte {
	return fmt.Appendf(dst, "\n%s", strings.Repeat("\t", d.level))
}

var (
	typeTokenPos   = reflect.TypeFor[token.Pos]()
	typeTokenRange = reflect.TypeFor[token.Range]()
	typeTokenKind  = reflect.TypeFor[token.Kind]()
	typeSymbol     = reflect.TypeFor[interface{ Text() string }]()
)

func (d *debugPrinter) value(dst []byte, v reflect.Value, impliedType reflect.Type) []byte {
	if d.cfg.Filter != nil && !d.cfg.Filter(v) {
		return dst
	}
	// Skip over interface types.
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	// Indirecting a nil interface gives a zero value.
	if !v.IsValid() {
		if !d.cfg.OmitEmpty {
			dst = d.printf(dst, "nil")
		}
		return dst
	}

	// Symbols print as their interned text rather than as a struct, since
	// the unexported text field would otherwise be invisible.
	if v.Type().Implements(typeSymbol) && v.Kind() == reflect.Ptr && !v.IsNil() {
		dst = d.printf(dst, "symbol(%q)", v.Interface().(interface{ Text() string }).Text())
		return dst
	}

	// We print the original pointer type if there was one.
	origType := v.Type()

	v = reflect.Indirect(v)
	// Indirecting a nil pointer gives a zero value.
	if !v.IsValid() {
		if !d.cfg.OmitEmpty {
			dst = d.printf(dst, "nil")
		}
		return dst
	}

	if d.cfg.OmitEmpty && v.IsZero() {
		return dst
	}

	t := v.Type()
	switch t {
	// Position-ish types stringify themselves.
	case typeTokenPos:
		dst = d.printf(dst, "pos(%d)", v.Int())
		return dst
	case typeTokenRange:
		r := v.Interface().(token.Range)
		dst = d.printf(dst, "range(%d..%d)", r.From, r.To)
		return dst
	case typeTokenKind:
		dst = d.printf(dst, "token(%q)", v.Interface().(token.Kind).String())
		return dst
	}

	undoValue := len(dst)
	switch t.Kind() {
	default:
		// We assume all other kinds are basic in practice, like string or bool.
		if t.PkgPath() != "" {
			// Mention defined and non-predeclared types, for clarity.
			dst = d.printf(dst, "%s(%#v)", t, v)
		} else {
			dst = d.printf(dst, "%#v", v)
		}

	case reflect.Slice:
		if origType != impliedType {
			dst = d.printf(dst, "%s", origType)
		}
		dst = d.printf(dst, "{")
		d.level++
		anyElems := false
		for i := 0; i < v.Len(); i++ {
			ev := v.Index(i)
			undoElem := len(dst)
			dst = d.newline(dst)
			// A slice literal implies its element type, so matching
			// element types go unmentioned.
			if dst2 := d.value(dst, ev, t.Elem()); len(dst2) == len(dst) {
				dst = dst[:undoElem]
			} else {
				dst = dst2
				anyElems = true
			}
		}
		d.level--
		if !anyElems && d.cfg.OmitEmpty {
			dst = dst[:undoValue]
		} else {
			if anyElems {
				dst = d.newline(dst)
			}
			dst = d.printf(dst, "}")
		}

	case reflect.Struct:
		if origType != impliedType {
			dst = d.printf(dst, "%s", origType)
		}
		dst = d.printf(dst, "{")
		anyElems := false
		d.level++
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if !gotoken.IsExported(f.Name) {
				continue
			}
			// Unit.Nodes duplicates the whole tree in flat form; dumping
			// it would print every node twice.
			if f.Name == "Nodes" {
				continue
			}
			undoElem := len(dst)
			dst = d.newline(dst)
			dst = d.printf(dst, "%s: ", f.Name)
			if dst2 := d.value(dst, v.Field(i), nil); len(dst2) == len(dst) {
				dst = dst[:undoElem]
			} else {
				dst = dst2
				anyElems = true
			}
		}
		if v.CanAddr() {
			if n, ok := v.Addr().Interface().(ast.Node); ok {
				undoElem := len(dst)
				dst = d.newline(dst)
				dst = d.printf(dst, "Range: ")
				if dst2 := d.value(dst, reflect.ValueOf(ast.Range(n)), nil); len(dst2) == len(dst) {
					dst = dst[:undoElem]
				} else {
					dst = dst2
					anyElems = true
				}
			}
		}
		d.level--
		if !anyElems && d.cfg.OmitEmpty {
			dst = dst[:undoValue]
		} else {
			if anyElems {
				dst = d.newline(dst)
			}
			dst = d.printf(dst, "}")
		}
	}
	return dst
}
