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

package document

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/schema"
)

// An ImportResolver loads the files named by an import expression. It is
// created for one importing document.
type ImportResolver interface {
	// Resolve returns an Import for each file that expr refers to. If sdk
	// is not empty, expr is relative to the SDK's directory. Files that
	// cannot be loaded are returned as unresolved imports.
	Resolve(ctx context.Context, expr, sdk string) []*Import
}

// An SdkResolver finds the directory of an SDK.
type SdkResolver interface {
	ResolveSdk(ref schema.SdkReference) (dir string, ok bool)
}

// Config is the environment in which documents are built.
type Config struct {
	SdkResolver SdkResolver

	// NewImportResolver returns the import resolver for the document with
	// the given filename. If it is nil, imports are not followed.
	NewImportResolver func(cfg *Config, filename string) ImportResolver

	// GlobalProperties are used to expand import expressions.
	GlobalProperties map[string]string

	// Properties collects the values of properties that import expressions
	// depend on.
	Properties *PropertyValueCollector

	// Schema is the declared schema of the toplevel document.
	Schema *schema.Schema

	Logger *slog.Logger

	project string
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// forProject returns a copy of c for loading the project in filename.
func (c *Config) forProject(filename string) *Config {
	var cp Config
	if c != nil {
		cp = *c
	}
	cp.project = filename
	if cp.Properties == nil {
		cp.Properties = NewPropertyValueCollector()
	}
	return &cp
}

func (c *Config) importResolver(filename string) ImportResolver {
	if c.NewImportResolver == nil {
		return nopResolver{}
	}
	return c.NewImportResolver(c, filename)
}

func (c *Config) resolveSdk(ref schema.SdkReference) (string, bool) {
	if c.SdkResolver == nil {
		return "", false
	}
	return c.SdkResolver.ResolveSdk(ref)
}

type nopResolver struct{}

func (nopResolver) Resolve(context.Context, string, string) []*Import { return nil }

// PropertyValueCollector records the values of marked properties.
type PropertyValueCollector struct {
	marked map[string]bool
	values map[string][]string
}

func NewPropertyValueCollector() *PropertyValueCollector {
	return &PropertyValueCollector{
		marked: make(map[string]bool),
		values: make(map[string][]string),
	}
}

// Mark requests that values of the named property be collected.
func (c *PropertyValueCollector) Mark(name string) {
	c.marked[schema.FoldName(name)] = true
}

func (c *PropertyValueCollector) IsMarked(name string) bool {
	return c.marked[schema.FoldName(name)]
}

// Collect records a value of the named property if it is marked. It
// reports whether the value was recorded.
func (c *PropertyValueCollector) Collect(name, value string) bool {
	key := schema.FoldName(name)
	if !c.marked[key] {
		return false
	}
	for _, v := range c.values[key] {
		if v == value {
			return true
		}
	}
	c.values[key] = append(c.values[key], value)
	return true
}

// Values returns the recorded values of the named property in the order
// they were seen.
func (c *PropertyValueCollector) Values(name string) []string {
	return c.values[schema.FoldName(name)]
}

// maxExpansions limits the number of alternative values an expression with
// multiply defined properties expands to.
const maxExpansions = 16

// expand evaluates an expression made of text and simple property
// references, returning each value it may have. thisFile is the file the
// expression appears in. Files are named by rooted slash-separated paths,
// so that directories obtained from the well-known properties are not
// joined with the importing file's directory again. It reports false if
// the expression contains anything else.
func (c *Config) expand(n ast.Node, thisFile string) ([]string, bool) {
	switch x := n.(type) {
	case nil:
		return []string{""}, true
	case *ast.Text:
		return []string{x.Unescaped()}, true
	case *ast.Property:
		if !x.IsSimple() {
			return nil, false
		}
		return c.propertyValues(x.Name(), thisFile), true
	case *ast.Concat:
		results := []string{""}
		for _, piece := range x.Nodes {
			values, ok := c.expand(piece, thisFile)
			if !ok {
				return nil, false
			}
			var next []string
			for _, r := range results {
				for _, v := range values {
					if len(next) < maxExpansions {
						next = append(next, r+v)
					}
				}
			}
			results = next
		}
		return results, true
	}
	return nil, false
}

func (c *Config) propertyValues(name, thisFile string) []string {
	if v, ok := wellKnownProperty(name, thisFile, c.project); ok {
		return []string{v}
	}
	for k, v := range c.GlobalProperties {
		if schema.NamesEqual(k, name) {
			return []string{v}
		}
	}
	if c.Properties != nil {
		if values := c.Properties.Values(name); len(values) > 0 {
			return values
		}
	}
	// Undefined properties are empty.
	return []string{""}
}

func wellKnownProperty(name, thisFile, project string) (string, bool) {
	file, isThis := thisFile, true
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "msbuildthisfile"):
		lower = strings.TrimPrefix(lower, "msbuildthisfile")
	case strings.HasPrefix(lower, "msbuildproject"):
		lower = strings.TrimPrefix(lower, "msbuildproject")
		file, isThis = project, false
		if lower == "name" {
			lower = "filename"
		}
	default:
		return "", false
	}
	if file == "" {
		return "", false
	}
	base := path.Base(file)
	switch lower {
	case "":
		if isThis {
			return base, true
		}
	case "file":
		return base, true
	case "filename":
		return strings.TrimSuffix(base, path.Ext(base)), true
	case "extension":
		return path.Ext(base), true
	case "directory":
		return rooted(path.Dir(file)) + "/", true
	case "fullpath":
		return rooted(file), true
	}
	return "", false
}

func rooted(p string) string {
	if p == "." {
		return ""
	}
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
