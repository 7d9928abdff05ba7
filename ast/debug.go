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

package ast

import "github.com/alecthomas/repr"

// Dump renders n as a raw Go struct tree, for debugging the parser itself
// rather than reading Toit source back -- the second of this front end's
// two debug renderers alongside Print, adapted from
// internal/astinternal/debug.go's role in the teacher (which dumps CUE's
// AST the same way, via its own hand-rolled walker; here the established
// `alecthomas/repr` struct-dumper already does the job without needing a
// bespoke walker).
func Dump(n Node) string {
	return repr.String(n, repr.Indent("  "), repr.OmitEmpty(true))
}
