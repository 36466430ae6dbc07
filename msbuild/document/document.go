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

// Package document models an MSBuild file together with the files it
// imports.
//
// A Document is built from an XML tree. Building resolves the SDKs and
// imports of the file, loading imported files through an ImportResolver,
// and records every item, property, metadata, target and task that the
// file declares or references in an inferred schema. The documents of a
// project form a directed acyclic graph. A built graph is not modified, so
// it may be queried concurrently.
package document

import (
	"context"
	"iter"
	"sort"
	"time"

	"msbuildlang.org/go/msbuild/diag"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/token"
	"msbuildlang.org/go/msbuild/xmldom"
)

// Document is a parsed MSBuild file.
type Document struct {
	Filename   string
	IsToplevel bool

	// Imports are the imports of the file in evaluation order, including
	// the implicit imports of its SDKs. Unresolved imports are included.
	Imports []*Import

	// Schema declares the symbols of the file, if a schema is available.
	Schema *schema.Schema

	// InferredSchema records the symbols the file declares or references.
	InferredSchema *schema.InferredSchema

	// Diagnostics are only collected for toplevel documents.
	Diagnostics diag.List

	Annotations Annotations

	// File maps offsets in the text to positions.
	File *token.File

	config *Config
}

// New returns an empty document.
func New(filename string, isToplevel bool) *Document {
	return &Document{
		Filename:       filename,
		IsToplevel:     isToplevel,
		InferredSchema: schema.NewInferred(isToplevel),
		Annotations:    make(Annotations),
	}
}

// Import is an import of another file.
type Import struct {
	// OriginalText is the import expression as written.
	OriginalText string
	// Filename is the file the expression resolved to, if any.
	Filename string
	// Sdk is the SDK reference the import is relative to, if any.
	Sdk       string
	Timestamp time.Time

	// IsImplicit reports whether the import was added for an SDK rather
	// than written in the file.
	IsImplicit bool

	// Document is nil if the import could not be resolved, in which case
	// Err says why.
	Document *Document
	Err      error
}

// IsResolved reports whether the imported file was loaded.
func (i *Import) IsResolved() bool { return i.Document != nil }

// AddImport appends an import.
func (d *Document) AddImport(imp *Import) {
	d.Imports = append(d.Imports, imp)
}

// DescendentImports returns the imports of the document and, recursively,
// of the documents they load, depth first.
func (d *Document) DescendentImports() iter.Seq[*Import] {
	return func(yield func(*Import) bool) {
		d.descendentImports(yield)
	}
}

func (d *Document) descendentImports(yield func(*Import) bool) bool {
	for _, imp := range d.Imports {
		if !yield(imp) {
			return false
		}
		if imp.Document != nil && !imp.Document.descendentImports(yield) {
			return false
		}
	}
	return true
}

// DescendentDocuments returns the documents loaded by the resolved
// imports of DescendentImports.
func (d *Document) DescendentDocuments() iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		for imp := range d.DescendentImports() {
			if imp.Document != nil && !yield(imp.Document) {
				return
			}
		}
	}
}

// SelfAndDescendents returns d followed by DescendentDocuments.
func (d *Document) SelfAndDescendents() iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		if !yield(d) {
			return
		}
		for doc := range d.DescendentDocuments() {
			if !yield(doc) {
				return
			}
		}
	}
}

// GetSchemas returns the schemas in scope for the document in precedence
// order. Declared schemas come before inferred ones: first the document's
// own declared schema, then those of its descendants, then its own
// inferred schema unless skipInferred is set, then the inferred schemas
// of its descendants.
func (d *Document) GetSchemas(skipInferred bool) schema.Schemas {
	var s schema.Schemas
	if d.Schema != nil {
		s = append(s, d.Schema)
	}
	for doc := range d.DescendentDocuments() {
		if doc.Schema != nil {
			s = append(s, doc.Schema)
		}
	}
	if !skipInferred && d.InferredSchema != nil {
		s = append(s, d.InferredSchema)
	}
	for doc := range d.DescendentDocuments() {
		if doc.InferredSchema != nil {
			s = append(s, doc.InferredSchema)
		}
	}
	return s
}

// FilesSeenIn returns the sorted names of the imported files whose inferred
// schemas record sym. The document itself is not included.
func (d *Document) FilesSeenIn(sym schema.Symbol) []string {
	seen := map[string]bool{}
	for doc := range d.DescendentDocuments() {
		if doc.Filename != "" && doc.InferredSchema.Contains(sym) {
			seen[doc.Filename] = true
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Annotations attaches navigation targets to XML nodes.
type Annotations map[xmldom.Node][]*Navigation

// Navigation links a span of a node's value to files.
type Navigation struct {
	Span  token.Span
	Paths []string
	IsSdk bool
}

// Add attaches nav to n.
func (a Annotations) Add(n xmldom.Node, nav *Navigation) {
	a[n] = append(a[n], nav)
}

// At returns the navigation of n whose span contains offset, or nil.
func (a Annotations) At(n xmldom.Node, offset int) *Navigation {
	for _, nav := range a[n] {
		if nav.Span.Start <= offset && offset <= nav.Span.End {
			return nav
		}
	}
	return nil
}

// Open parses and builds the toplevel document in text.
func Open(ctx context.Context, cfg *Config, filename, text string) (*Document, *xmldom.Document, error) {
	c := cfg.forProject(filename)
	xml := xmldom.Parse(filename, text)
	doc := New(filename, true)
	doc.Schema = c.Schema
	err := doc.Build(ctx, xml, c)
	return doc, xml, err
}
