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

package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/toitlang/toitc/ast"
	"github.com/toitlang/toitc/attacher"
	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/internal/astinternal"
	"github.com/toitlang/toitc/parser"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
)

var (
	useRepr  bool
	useDebug bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "parse one or more Toit source files and print diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Help()
			return fmt.Errorf("parse: at least one file required")
		}

		logger := newLogger()
		mgr := source.NewManager(nil)
		symbols := symbol.New()
		diags := diag.NewList()

		hasErrors := false
		for _, path := range args {
			result := mgr.Load(path)
			if !result.OK() {
				diags.Report(diag.Diagnostic{
					Severity: diag.Error,
					Message:  fmt.Sprintf("%s: %v", path, result.Error),
				})
				hasErrors = true
				continue
			}
			src := result.Source

			scn := scanner.New(src, symbols, diags)
			p := parser.New(src, scn, symbols, diags)
			p.SetTrace(logger)
			unit := p.ParseUnit()

			reg := attacher.Attach(unit, scn.Comments(), src, symbols, mgr, diags)

			switch {
			case useRepr:
				fmt.Println(ast.Dump(unit))
				if reg.Module.IsValid() {
					repr.Println(reg.Module.Contents)
				}
			case useDebug:
				fmt.Println(string(astinternal.AppendDebug(nil, unit, astinternal.DebugConfig{OmitEmpty: true})))
			default:
				fmt.Println(ast.Print(unit))
			}
		}

		diags.Sort()
		var sb strings.Builder
		diags.Print(&sb)
		fmt.Print(sb.String())

		if diags.HasErrors() || hasErrors {
			return fmt.Errorf("parse: encountered errors")
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&useRepr, "repr", false, "dump the parsed tree with alecthomas/repr instead of the Toit-ish debug printer")
	parseCmd.Flags().BoolVar(&useDebug, "debug", false, "dump the parsed tree with positions and node types")
	rootCmd.AddCommand(parseCmd)
}
