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

	"github.com/spf13/cobra"

	"github.com/toitlang/toitc/diag"
	"github.com/toitlang/toitc/scanner"
	"github.com/toitlang/toitc/source"
	"github.com/toitlang/toitc/symbol"
	"github.com/toitlang/toitc/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "scan a single Toit source file and print its raw token stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return fmt.Errorf("tokens: exactly one file required")
		}

		mgr := source.NewManager(nil)
		symbols := symbol.New()
		symbol.NewPredefined(symbols) // intern the same reserved identifiers the parser would
		diags := diag.NewList()

		result := mgr.Load(args[0])
		if !result.OK() {
			return fmt.Errorf("%s: %v", args[0], result.Error)
		}
		src := result.Source

		scn := scanner.New(src, symbols, diags)
		scn.SkipHashBangLine()
		for {
			st := scn.Next()
			loc := src.Location(src.Range(st.From, st.To).From)
			text := ""
			if st.Data != nil {
				text = st.Data.Text()
			}
			fmt.Printf("%s:%d:%d\t%s\t%s\n", loc.Filename, loc.Line, loc.Column, st.Token, text)
			if st.Token == token.EOS {
				break
			}
		}

		diags.Sort()
		var sb strings.Builder
		diags.Print(&sb)
		fmt.Print(sb.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
