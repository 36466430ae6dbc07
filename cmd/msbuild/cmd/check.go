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
	"github.com/spf13/cobra"

	"msbuildlang.org/go/msbuild/diag"
)

func newCheckCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "report problems in project files",
		Long: `Check builds each project file, following its imports and SDKs, and
prints the problems found: malformed expressions, invalid values,
unknown elements and attributes, and imports or SDKs that cannot be
resolved.

Check exits with a non-zero code if any error is found. Warnings alone do
not fail the check.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: mkRunE(c, runCheck),
	}
	return cmd
}

func runCheck(cmd *Command, args []string) error {
	ctx := cmd.Context()
	ws, err := newWorkspace(cmd)
	if err != nil {
		return err
	}
	var all diag.List
	for _, name := range args {
		doc, _, _, err := ws.open(ctx, name)
		if err != nil {
			return err
		}
		all = append(all, doc.Diagnostics...)
	}
	printDiagnostics(cmd.OutOrStdout(), ws, all)
	if all.HasErrors() {
		exit()
	}
	return nil
}
