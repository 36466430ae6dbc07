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


// Package references finds all the places in a document that refer to a
// symbol, as found by package resolve.
package references

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"msbuildlang.org/go/msbuild/document"
	"msbuildlang.org/go/msbuild/resolve"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/token"
	"msbuildlang.org/go/msbuild/visitor"
	"msbuildlang.org/go/msbuild/xmldom"
)

// Usage describes how a reference uses its symbol.
type Usage int

const (
	Declaration Usage = 1 << iota
	Read
	Write
)

func (u Usage) String() string {
	if u == 0 {
		return "None"
	}
	var parts []string
	for _, x := range []struct {
		bit  Usage
		name string
	}{{Declaration, "Declaration"}, {Read, "Read"}, {Write, "Write"}} {
		if u&x.bit != 0 {
			parts = append(parts, x.name)
			u &^= x.bit
		}
	}
	if u != 0 {
		parts = append(parts, fmt.Sprintf("Usage(%d)", int(u)))
	}
	return strings.Join(parts, "|")
}

// Result is a single reference.
type Result struct {
	Offset int
	Length int
	Usage  Usage
}

func (r Result) Span() token.Span { return token.NewSpan(r.Offset, r.Length) }

// A Reporter receives references in document order.
type Reporter func(Result)

// A Collector walks a document and reports the references to one symbol.
type Collector struct {
	doc     *document.Document
	text    string
	handler visitor.Handler
	logger  *slog.Logger
	kind    resolve.ReferenceKind
	name    string
}

// CanCreate reports whether Create supports the reference in rr.
func CanCreate(rr *resolve.Result) bool {
	if rr == nil || rr.ElementSyntax == nil || rr.ReferenceName() == "" {
		return false
	}
	switch rr.ReferenceKind {
	case resolve.Property,
		resolve.Item,
		resolve.Task,
		resolve.Metadata,
		resolve.Target,
		resolve.ItemFunction,
		resolve.PropertyFunction,
		resolve.StaticPropertyFunction,
		resolve.ClassName,
		resolve.Enum,
		resolve.KnownValue:
		return true
	}
	return false
}

// Create returns a collector for the symbol rr refers to. text is the
// document's source, parsed by Run if it is not given a parsed document.
// functionTypes determines the receivers of property functions; it may be
// nil, in which case all receivers are taken to be strings.
func Create(doc *document.Document, text string, rr *resolve.Result, functionTypes resolve.FunctionTypeProvider, report Reporter, logger *slog.Logger) (*Collector, error) {
	if !CanCreate(rr) {
		kind := resolve.None
		if rr != nil {
			kind = rr.ReferenceKind
		}
		return nil, fmt.Errorf("cannot find references to %v", kind)
	}
	name := rr.ReferenceName()
	b := base{name: name, report: report}
	var h visitor.Handler
	switch ref := rr.Reference.(type) {
	case resolve.MetadataReference:
		h = &metadataCollector{base: b, item: ref.Item}
	case resolve.StaticFunctionReference:
		h = &staticFunctionCollector{base: b, class: ref.Class}
	case resolve.PropertyFunctionReference:
		h = &propertyFunctionCollector{base: b, kind: ref.Kind, types: functionTypes}
	default:
		switch rr.ReferenceKind {
		case resolve.Item:
			h = &itemCollector{b}
		case resolve.Property:
			h = &propertyCollector{b}
		case resolve.Task:
			// A UsingTask TaskName may be namespace-qualified.
			b.name = name[strings.LastIndexByte(name, '.')+1:]
			h = &taskCollector{b}
		case resolve.Target:
			h = &targetCollector{b}
		case resolve.ItemFunction:
			h = &itemFunctionCollector{b}
		case resolve.ClassName:
			h = &classCollector{b}
		case resolve.Enum:
			h = &enumCollector{b}
		case resolve.KnownValue:
			if sym, ok := rr.Reference.(schema.Symbol); ok {
				h = &knownValueCollector{base: b, value: sym}
			}
		}
	}
	if h == nil {
		return nil, fmt.Errorf("unexpected %T reference for %v", rr.Reference, rr.ReferenceKind)
	}
	return newCollector(doc, text, h, rr.ReferenceKind, name, logger), nil
}

// TargetDefinitions returns a collector that reports only the Target
// elements that define the named target.
func TargetDefinitions(doc *document.Document, text, target string, report Reporter, logger *slog.Logger) *Collector {
	h := &targetDefinitionCollector{base{name: target, report: report}}
	return newCollector(doc, text, h, resolve.Target, target, logger)
}

func newCollector(doc *document.Document, text string, h visitor.Handler, kind resolve.ReferenceKind, name string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{doc: doc, text: text, handler: h, logger: logger, kind: kind, name: name}
}

// Run walks the whole document and reports every reference. If xml is nil
// the collector's text is parsed. It returns the context's error if ctx is
// canceled, after which no further references are reported.
func (c *Collector) Run(ctx context.Context, xml *xmldom.Document) error {
	if xml == nil {
		xml = xmldom.Parse(c.doc.Filename, c.text)
	}
	c.logger.Debug("finding references", "file", c.doc.Filename, "kind", c.kind, "name", c.name)
	w := &visitor.Walker{
		Schemas: c.doc.GetSchemas(false),
		Handler: c.handler,
	}
	return w.Walk(ctx, xml.Root(), nil)
}

// Collect runs a collector and returns the references it finds.
func Collect(ctx context.Context, doc *document.Document, xml *xmldom.Document, text string, rr *resolve.Result, functionTypes resolve.FunctionTypeProvider, logger *slog.Logger) ([]Result, error) {
	var results []Result
	c, err := Create(doc, text, rr, functionTypes, func(r Result) {
		results = append(results, r)
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Run(ctx, xml); err != nil {
		return nil, err
	}
	return results, nil
}
