// Copyright 2026 The MSBuild Language Authors
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


package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/parser"
)

func newParseCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <expression>",
		Short: "print the syntax tree of an expression",
		Long: `Parse parses an MSBuild expression and prints its syntax tree, one node
per line with its byte range.

The --options flag selects which references the expression may contain:
items, metadata and lists. Property references are always allowed. With
--condition the expression is parsed as the value of a Condition
attribute.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runParse),
	}
	cmd.Flags().Bool(string(flagCondition), false, "parse a condition")
	cmd.Flags().StringSlice(string(flagOptions), []string{"items", "metadata", "lists"},
		"references allowed in the expression (items,metadata,lists or none)")
	return cmd
}

func runParse(cmd *Command, args []string) error {
	var n ast.Node
	if flagCondition.Bool(cmd) {
		n = parser.ParseCondition(args[0], 0)
	} else {
		opts, err := parseOptions(flagOptions.StringSlice(cmd))
		if err != nil {
			return err
		}
		n = parser.Parse(args[0], opts, 0)
	}
	if err := ast.Fprint(cmd.OutOrStdout(), n); err != nil {
		return err
	}
	for _, e := range ast.Errors(n) {
		kind, _, _ := ast.ErrorInfo(e)
		fmt.Fprintf(cmd.Stderr(), "%d: %s\n", e.Pos(), kind.Message())
	}
	return nil
}

func parseOptions(names []string) (parser.Options, error) {
	var opts parser.Options
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "items":
			opts |= parser.Items
		case "metadata":
			opts |= parser.Metadata
		case "lists":
			opts |= parser.Lists
		case "none", "":
		default:
			return 0, fmt.Errorf("unknown option %q", name)
		}
	}
	return opts, nil
}
