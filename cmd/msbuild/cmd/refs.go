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

	"github.com/spf13/cobra"

	"msbuildlang.org/go/msbuild/references"
	"msbuildlang.org/go/msbuild/resolve"
)

func newRefsCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs <file> <position>",
		Short: "list references to the symbol at a position",
		Long: `Refs finds the symbol at a position in a project file and lists every
reference to it in that file, with how the reference uses the symbol:
Declaration, Read or Write.

Items, properties, metadata, tasks, targets, item and property
functions, class names, enum values and known values are supported.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runRefs),
	}
	return cmd
}

func runRefs(cmd *Command, args []string) error {
	ctx := cmd.Context()
	ws, err := newWorkspace(cmd)
	if err != nil {
		return err
	}
	doc, xml, text, err := ws.open(ctx, args[0])
	if err != nil {
		return err
	}
	offset, err := parseOffset(doc.File, args[1])
	if err != nil {
		return err
	}
	types := resolve.SchemaTypeProvider{Schemas: doc.GetSchemas(false)}
	rr := resolve.Resolve(ctx, xml, text, doc, types, offset, ws.cfg.Logger)
	if !references.CanCreate(rr) {
		return fmt.Errorf("%s: no symbol to find references to", ws.position(doc, offset))
	}
	results, err := references.Collect(ctx, doc, xml, text, rr, types, ws.cfg.Logger)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(w, "%s: %v %s\n", ws.position(doc, r.Offset), r.Usage, text[r.Offset:r.Offset+r.Length])
	}
	return nil
}
