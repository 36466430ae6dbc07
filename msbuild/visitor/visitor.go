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

// Package visitor walks an MSBuild document, resolving each element and
// attribute against the MSBuild grammar and the schemas in scope, and
// parsing the values it finds.
package visitor

import (
	"context"
	"math"
	"strings"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/parser"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/syntax"
	"msbuildlang.org/go/msbuild/xmldom"
)

// A Handler receives the elements, attributes and values found by a
// Walker. Embed NopHandler to implement only some of the methods.
type Handler interface {
	// ResolvedElement is called for an element with known syntax. sym
	// describes the element's value. It returns whether to visit the
	// element's attributes, value and children.
	ResolvedElement(el *xmldom.Element, syn *syntax.Element, sym schema.TypedSymbol) bool

	// UnknownElement is called for an element that is not valid where it
	// appears. Its contents are not visited.
	UnknownElement(el *xmldom.Element)

	// ResolvedAttribute is called for an attribute with known syntax. It
	// returns whether to parse and visit the attribute's value.
	ResolvedAttribute(el *xmldom.Element, att *xmldom.Attribute, elSyn *syntax.Element, attSyn *syntax.Attribute, sym schema.TypedSymbol) bool

	UnknownAttribute(el *xmldom.Element, att *xmldom.Attribute)

	ElementValue(v *Value)
	AttributeValue(v *Value)
}

// NopHandler visits everything and does nothing.
type NopHandler struct{}

func (NopHandler) ResolvedElement(*xmldom.Element, *syntax.Element, schema.TypedSymbol) bool {
	return true
}

func (NopHandler) UnknownElement(*xmldom.Element) {}

func (NopHandler) ResolvedAttribute(*xmldom.Element, *xmldom.Attribute, *syntax.Element, *syntax.Attribute, schema.TypedSymbol) bool {
	return true
}

func (NopHandler) UnknownAttribute(*xmldom.Element, *xmldom.Attribute) {}
func (NopHandler) ElementValue(*Value)                                 {}
func (NopHandler) AttributeValue(*Value)                               {}

// Value is a parsed element or attribute value.
type Value struct {
	Element         *xmldom.Element
	Attribute       *xmldom.Attribute // nil for element values
	ElementSyntax   *syntax.Element
	AttributeSyntax *syntax.Attribute // nil for element values

	// Symbol describes the value, and InferredKind is its kind, guessed
	// from the symbol's name if the symbol does not say.
	Symbol       schema.TypedSymbol
	InferredKind schema.ValueKind

	// Text is the raw value and Offset its position in the document.
	Text   string
	Offset int
	Node   ast.Node // nil if Text is empty
}

// A Walker visits the elements of a document.
type Walker struct {
	Schemas schema.Schemas
	Handler Handler

	// Start and Length restrict the walk to the elements and attributes
	// that overlap the span. A Length of zero means the end of the
	// document.
	Start  int
	Length int

	ctx context.Context
	end int
}

// Walk visits el and its descendants. If resolved is nil, the syntax of el
// is looked up as the root of the document; otherwise it is the syntax of
// el. Walk returns the context's error if it was canceled.
func (w *Walker) Walk(ctx context.Context, el *xmldom.Element, resolved *syntax.Element) error {
	w.ctx = ctx
	w.end = math.MaxInt
	if w.Length > 0 {
		w.end = w.Start + w.Length
	}
	if el == nil {
		return nil
	}
	if resolved != nil {
		return w.visitResolved(el, resolved)
	}
	return w.resolveAndVisit(el, nil)
}

func (w *Walker) resolveAndVisit(el *xmldom.Element, parent *syntax.Element) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	if el.Name == "" {
		return nil
	}
	syn := syntax.GetElement(el.Name, parent)
	if syn == nil {
		w.Handler.UnknownElement(el)
		return nil
	}
	return w.visitResolved(el, syn)
}

func (w *Walker) visitResolved(el *xmldom.Element, syn *syntax.Element) error {
	var parentName string
	if el.Parent != nil {
		parentName = el.Parent.Name
	}
	sym := syntax.ElementSymbol(w.Schemas, syn, parentName, el.Name)
	if !w.Handler.ResolvedElement(el, syn, sym) {
		return nil
	}
	w.visitAttributesAndValue(el, syn, sym)

	if syn.ValueKind() != schema.Nothing {
		return nil
	}
	for child := range el.Elements() {
		if child.OuterSpan().End < w.Start {
			continue
		}
		if child.StartTag.Start > w.end {
			break
		}
		if err := w.resolveAndVisit(child, syn); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) visitAttributesAndValue(el *xmldom.Element, syn *syntax.Element, sym schema.TypedSymbol) {
	for _, att := range el.Attributes {
		if att.Span().End < w.Start {
			continue
		}
		if att.Span().Start > w.end {
			return
		}
		if att.Name == "" {
			continue
		}
		attSyn := syn.Attribute(att.Name)
		if attSyn == nil {
			w.Handler.UnknownAttribute(el, att)
			continue
		}
		attSym, specialized := syntax.AttributeSymbol(w.Schemas, attSyn, el.Name, att.Name)
		if !w.Handler.ResolvedAttribute(el, att, syn, specialized, attSym) || !att.HasValue {
			continue
		}
		node, kind := ParseValue(att.Value, att.ValueOffset, attSym)
		w.Handler.AttributeValue(&Value{
			Element:         el,
			Attribute:       att,
			ElementSyntax:   syn,
			AttributeSyntax: specialized,
			Symbol:          attSym,
			InferredKind:    kind,
			Text:            att.Value,
			Offset:          att.ValueOffset,
			Node:            node,
		})
	}

	if k := syn.ValueKind(); k == schema.Nothing || k == schema.Data {
		return
	}
	if el.SelfClosing || !el.Ended {
		return
	}
	// TODO: join text split by comments or CDATA sections.
	text := el.FirstText()
	if text == nil {
		return
	}
	node, kind := ParseValue(text.Value, text.Span().Start, sym)
	w.Handler.ElementValue(&Value{
		Element:       el,
		ElementSyntax: syn,
		Symbol:        sym,
		InferredKind:  kind,
		Text:          text.Value,
		Offset:        text.Span().Start,
		Node:          node,
	})
}

// ParseValue parses the value of an element or attribute described by sym,
// returning the expression and the kind inferred for the value. Values are
// parsed even if their kind forbids expressions, so that lists, whitespace
// and offsets are handled uniformly.
func ParseValue(text string, offset int, sym schema.TypedSymbol) (ast.Node, schema.ValueKind) {
	kind := schema.Unknown
	if sym != nil {
		kind = schema.InferValueKind(sym)
	}
	if sym != nil && sym.ValueKind() == schema.Condition {
		return parser.ParseCondition(text, offset), kind
	}
	return parser.Parse(text, kind.ExpressionOptions(), offset), kind
}

// IncludeExpression parses the Include attribute of an item element. It
// returns nil if the element has no Include or it is blank.
func IncludeExpression(el *xmldom.Element) ast.Node {
	for _, att := range el.Attributes {
		if strings.EqualFold(att.Name, "Include") {
			if strings.TrimSpace(att.Value) == "" {
				return nil
			}
			return parser.Parse(att.Value, parser.ItemsMetadataAndLists, att.ValueOffset)
		}
	}
	return nil
}

// MetadataItem returns the item type a metadata reference in v belongs to:
// its qualifier, the item of the innermost enclosing item reference such as
// a transform, or else the item whose element the value is on. path holds
// the ancestors of m, outermost first.
func MetadataItem(v *Value, path []ast.Node, m *ast.Metadata) string {
	if m.IsQualified() {
		return m.Item
	}
	for i := len(path) - 1; i >= 0; i-- {
		if it, ok := path[i].(*ast.Item); ok {
			if name := it.Name(); name != "" {
				return name
			}
		}
	}
	switch v.ElementSyntax.Kind() {
	case syntax.Item, syntax.ItemDefinition:
		return v.Element.Name
	case syntax.Metadata:
		if v.Element.Parent != nil {
			return v.Element.Parent.Name
		}
	}
	return ""
}
