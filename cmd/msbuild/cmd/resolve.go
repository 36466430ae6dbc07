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
	"io"

	"github.com/spf13/cobra"

	"msbuildlang.org/go/msbuild/resolve"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/syntax"
)

func newResolveCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file> <position>",
		Short: "describe the symbol at a position",
		Long: `Resolve prints what is at a position in a project file: the kind and
name of the referenced symbol, where the reference is, and the element
and attribute it appears in. For file names, the files they refer to are
listed.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runResolve),
	}
	return cmd
}

func runResolve(cmd *Command, args []string) error {
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
	if rr == nil {
		return fmt.Errorf("%s: nothing to resolve", ws.position(doc, offset))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "element: %s (%v)\n", rr.Element.Name, rr.ElementSyntax.Kind())
	if rr.AttributeSyntax != nil {
		fmt.Fprintf(w, "attribute: %s (%v)\n", rr.Attribute.Name, rr.AttributeSyntax.Kind())
	}
	if rr.ReferenceKind == resolve.None && rr.Reference == nil {
		return nil
	}
	fmt.Fprintf(w, "kind: %v\n", rr.ReferenceKind)
	fmt.Fprintf(w, "location: %s\n", ws.position(doc, rr.ReferenceOffset))
	printReference(w, ws, rr.Reference)
	return nil
}

func printReference(w io.Writer, ws *workspace, ref any) {
	switch x := ref.(type) {
	case []string:
		fmt.Fprintln(w, "paths:")
		for _, p := range x {
			fmt.Fprintf(w, "\t%s\n", ws.displayPath(p))
		}
		return
	case resolve.MetadataReference:
		fmt.Fprintf(w, "reference: %s.%s\n", x.Item, x.Metadata)
	case resolve.TaskParameterReference:
		fmt.Fprintf(w, "reference: %s.%s\n", x.Task, x.Parameter)
	case resolve.StaticFunctionReference:
		fmt.Fprintf(w, "reference: [%s]::%s\n", x.Class, x.Function)
	case resolve.PropertyFunctionReference:
		fmt.Fprintf(w, "reference: %s\n", x.Function)
		fmt.Fprintf(w, "receiver: %v\n", x.Kind)
	case *syntax.Element:
		fmt.Fprintf(w, "reference: %s\n", x.Name())
	case *syntax.Attribute:
		fmt.Fprintf(w, "reference: %s\n", x.Name())
	case schema.Symbol:
		fmt.Fprintf(w, "reference: %s\n", x.Name())
		if d := x.Description(); d != "" {
			fmt.Fprintf(w, "description: %s\n", d)
		}
	case string:
		fmt.Fprintf(w, "reference: %s\n", x)
	}
}
