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

// Package resolve finds the symbol at a position in an MSBuild document.
package resolve

import (
	"context"
	"log/slog"
	"strings"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/document"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/syntax"
	"msbuildlang.org/go/msbuild/visitor"
	"msbuildlang.org/go/msbuild/xmldom"
)

// Resolve returns what is at offset in the document: the innermost element
// and attribute with known syntax, and the reference under the offset, if
// any. If xml is nil, text is parsed. functionTypes may be nil, in which
// case property functions on properties have an Unknown receiver.
//
// Resolve returns nil if the offset is not inside an element with known
// syntax or if ctx is canceled.
func Resolve(ctx context.Context, xml *xmldom.Document, text string, doc *document.Document, functionTypes FunctionTypeProvider, offset int, logger *slog.Logger) *Result {
	if logger == nil {
		logger = slog.Default()
	}
	if xml == nil {
		xml = xmldom.Parse(doc.Filename, text)
	}

	// The syntax of an element depends on its parent, so resolve it down
	// the path.
	var (
		el     *xmldom.Element
		elSyn  *syntax.Element
		att    *xmldom.Attribute
		attSyn *syntax.Attribute
	)
	for _, n := range xml.NodePath(offset) {
		if a, ok := n.(*xmldom.Attribute); ok {
			// Namespace declarations and other prefixed attributes leave
			// the element resolved without an attribute.
			if !isPrefixed(a.Name) {
				att = a
				if elSyn != nil {
					attSyn = elSyn.Attribute(a.Name)
				}
			}
			break
		}
		if elSyn != nil && elSyn.ValueKind() == schema.Data {
			break
		}
		switch x := n.(type) {
		case *xmldom.Element:
			if !isPrefixed(x.Name) {
				el = x
				if elSyn = syntax.GetElement(x.Name, elSyn); elSyn != nil {
					continue
				}
			}
		case *xmldom.Text:
			continue
		case *xmldom.ClosingTag:
			if el != nil && x == el.ClosingTag {
				continue
			}
		}
		elSyn = nil
	}
	if elSyn == nil {
		return nil
	}

	rr := &Result{
		ElementSyntax:   elSyn,
		AttributeSyntax: attSyn,
		Element:         el,
		Attribute:       att,
	}
	r := &resolver{doc: doc, rr: rr, offset: offset, types: functionTypes}
	w := &visitor.Walker{
		Schemas: doc.GetSchemas(false),
		Handler: r,
		Start:   offset,
		Length:  1,
	}
	if err := w.Walk(ctx, el, elSyn); err != nil {
		logger.Debug("resolve canceled", "file", doc.Filename, "offset", offset, "err", err)
		return nil
	}
	return rr
}

func isPrefixed(name string) bool { return strings.IndexByte(name, ':') >= 0 }

type resolver struct {
	visitor.NopHandler
	doc    *document.Document
	rr     *Result
	offset int
	types  FunctionTypeProvider
}

func (r *resolver) in(start, length int) bool {
	return r.offset >= start && r.offset <= start+length
}

func (r *resolver) set(kind ReferenceKind, offset, length int, ref any) {
	r.rr.ReferenceKind = kind
	r.rr.ReferenceOffset = offset
	r.rr.ReferenceLength = length
	r.rr.Reference = ref
}

func (r *resolver) ResolvedElement(el *xmldom.Element, syn *syntax.Element, sym schema.TypedSymbol) bool {
	if el != r.rr.Element {
		return false
	}
	if el.Name == "" || !r.in(el.NameSpan.Start, len(el.Name)) {
		return true
	}
	start, length := el.NameSpan.Start, len(el.Name)
	switch syn.Kind() {
	case syntax.Item, syntax.ItemDefinition:
		r.set(Item, start, length, el.Name)
	case syntax.Metadata:
		r.set(Metadata, start, length, MetadataReference{Item: parentName(el), Metadata: el.Name})
	case syntax.Task:
		r.set(Task, start, length, el.Name)
	case syntax.Parameter:
		if task := declaringTask(el); task != "" {
			r.set(TaskParameter, start, length, TaskParameterReference{Task: task, Parameter: el.Name})
		}
	case syntax.Property:
		r.set(Property, start, length, el.Name)
	default:
		if !syn.IsAbstract() {
			r.set(Keyword, start, length, syn)
		}
	}
	return false
}

func (r *resolver) ResolvedAttribute(el *xmldom.Element, att *xmldom.Attribute, elSyn *syntax.Element, attSyn *syntax.Attribute, sym schema.TypedSymbol) bool {
	if att != r.rr.Attribute {
		return false
	}
	r.rr.AttributeSyntax = attSyn
	if !r.in(att.NameSpan.Start, len(att.Name)) {
		return true
	}
	start, length := att.NameSpan.Start, len(att.Name)
	switch attSyn.Kind().AbstractKind() {
	case syntax.Metadata:
		r.set(Metadata, start, length, MetadataReference{Item: el.Name, Metadata: att.Name})
	case syntax.Parameter:
		r.set(TaskParameter, start, length, TaskParameterReference{Task: el.Name, Parameter: att.Name})
	default:
		if !attSyn.IsAbstract() {
			r.set(Keyword, start, length, attSyn)
		}
	}
	return false
}

func (r *resolver) AttributeValue(v *visitor.Value) { r.value(v) }
func (r *resolver) ElementValue(v *visitor.Value)   { r.value(v) }

func (r *resolver) value(v *visitor.Value) {
	path := ast.FindPath(v.Node, r.offset)
	if len(path) == 0 {
		return
	}
	parent := ast.Parent(path)
	switch x := path[len(path)-1].(type) {
	case *ast.ItemName:
		r.set(Item, x.Offset, len(x.Name), x.Name)
	case *ast.PropertyName:
		r.set(Property, x.Offset, x.Length, x.Name)
	case *ast.Metadata:
		if !x.IsQualified() || r.offset >= x.NameOffset {
			ref := MetadataReference{Item: visitor.MetadataItem(v, path[:len(path)-1], x), Metadata: x.Name}
			r.set(Metadata, x.NameOffset, len(x.Name), ref)
		} else {
			r.set(Item, x.ItemOffset, len(x.Item), x.Item)
		}
	case *ast.FunctionName:
		r.function(x, parent)
	case *ast.ClassReference:
		if x.Name == "" {
			return
		}
		switch parent.(type) {
		case *ast.ArgumentList:
			r.set(Enum, x.Offset, x.Length, x.Name)
		case *ast.FunctionInvocation:
			r.set(ClassName, x.Offset, x.Length, x.Name)
		}
	case *ast.Text:
		r.text(v, x, parent)
	}
}

func (r *resolver) function(name *ast.FunctionName, parent ast.Node) {
	start, length := name.Offset, len(name.Name)
	switch p := parent.(type) {
	case *ast.FunctionInvocation:
		switch p.Kind {
		case ast.ItemFunction:
			r.set(ItemFunction, start, length, name.Name)
		case ast.StaticFunction:
			if class, ok := p.Target.(*ast.ClassReference); ok {
				r.set(StaticPropertyFunction, start, length, StaticFunctionReference{Class: class.Name, Function: name.Name})
			}
		case ast.InstanceFunction:
			switch p.Target.(type) {
			case *ast.PropertyName, *ast.FunctionInvocation:
				kind := schema.Unknown
				if r.types != nil {
					kind = r.types.ResolveType(p)
				}
				r.set(PropertyFunction, start, length, PropertyFunctionReference{Kind: kind, Function: name.Name})
			}
		}
	case *ast.ConditionFunction:
		r.set(ConditionFunction, start, length, name.Name)
	}
}

func (r *resolver) text(v *visitor.Value, lit *ast.Text, parent ast.Node) {
	kind := v.InferredKind.WithoutModifiers()
	if lit.IsPure {
		r.pureLiteral(v, kind, lit)
	}
	switch kind {
	case schema.File, schema.FileOrFolder, schema.ProjectFile, schema.TaskAssemblyFile:
		var n ast.Node = lit
		if c, ok := parent.(*ast.Concat); ok {
			n = c
		}
		r.paths(v, n)
	}
}

var literalKinds = map[schema.ValueKind]ReferenceKind{
	schema.TargetName:                Target,
	schema.NuGetID:                   NuGetID,
	schema.PropertyName:              Property,
	schema.ItemName:                  Item,
	schema.TaskName:                  Task,
	schema.TargetFramework:           TargetFramework,
	schema.TargetFrameworkIdentifier: TargetFrameworkIdentifier,
	schema.TargetFrameworkVersion:    TargetFrameworkVersion,
	schema.TargetFrameworkProfile:    TargetFrameworkProfile,
}

func (r *resolver) pureLiteral(v *visitor.Value, kind schema.ValueKind, lit *ast.Text) {
	value, start, length := lit.TrimmedUnescaped()
	r.set(None, start, length, value)
	if value == "" {
		return
	}
	if k, ok := literalKinds[kind]; ok {
		r.rr.ReferenceKind = k
		return
	}
	switch kind {
	case schema.TaskOutputParameterName:
		r.set(TaskParameter, start, length, TaskParameterReference{Task: parentName(v.Element), Parameter: value})
		return
	case schema.MetadataName:
		// KeepMetadata and RemoveMetadata name metadata of the included
		// items.
		if item := firstItemName(visitor.IncludeExpression(v.Element)); item != "" {
			r.set(Metadata, start, length, MetadataReference{Item: item, Metadata: value})
		}
		return
	}
	if kv := schema.FindKnownValue(v.Symbol, kind, value); kv != nil {
		r.set(KnownValue, start, length, kv)
	}
}

// paths resolves a file name expression to the files it may refer to,
// preferring the files an import was resolved to.
func (r *resolver) paths(v *visitor.Value, n ast.Node) {
	if v.Attribute != nil {
		if nav := r.doc.Annotations.At(v.Attribute, r.offset); nav != nil && !nav.IsSdk {
			r.set(FileOrFolder, nav.Span.Start, nav.Span.End-nav.Span.Start, nav.Paths)
			return
		}
	}
	if paths := r.doc.Paths(n); len(paths) > 0 {
		r.set(FileOrFolder, n.Pos(), n.Len(), paths)
	}
}

func parentName(el *xmldom.Element) string {
	if el.Parent == nil {
		return ""
	}
	return el.Parent.Name
}

// declaringTask returns the name of the task an inline task parameter
// belongs to, as declared by UsingTask/ParameterGroup/Parameter.
func declaringTask(el *xmldom.Element) string {
	if el.Parent == nil || el.Parent.Parent == nil {
		return ""
	}
	for _, att := range el.Parent.Parent.Attributes {
		if strings.EqualFold(att.Name, "TaskName") {
			name := strings.TrimSpace(att.Value)
			return name[strings.LastIndexByte(name, '.')+1:]
		}
	}
	return ""
}

func firstItemName(n ast.Node) string {
	for d := range ast.Descendants(n) {
		if x, ok := d.(*ast.ItemName); ok {
			return x.Name
		}
	}
	return ""
}
