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

// Command toitc is a thin cobra CLI over the front-end packages: it loads
// files through source.Manager, drives scanner/parser/attacher, and prints
// diagnostics or dumps the result, never reimplementing any of that logic
// itself. Grounded on the teacher's cmd/cue and on vippsas-sqlcode's
// cli/cmd/root.go for the cobra root-command shape.
package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	rootCmd = &cobra.Command{
		Use:          "toitc",
		Short:        "toitc",
		SilenceUsage: true,
		Long:         `A front end for the Toit language: scans, parses and attaches toitdoc comments.`,
	}

	verbose bool
)

// Execute runs the root command, returning the first error any subcommand
// reported.
func Execute() error {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable trace logging of the scanner and parser")
	// Accept the underscore spellings of multi-word flags too.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	return rootCmd.Execute()
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.TraceLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func main() {
	if err := Execute(); err != nil {
		logrus.StandardLogger().Error(err)
		os.Exit(1)
	}
}
