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

// Package xmldom reads XML into a tree of nodes that keep their source
// spans.
//
// The reader is tolerant: it never fails. Unterminated elements are closed
// implicitly at the tag that closes an ancestor or at the end of the text,
// and closing tags that match no open element are dropped. Both are
// recorded as problems. Attribute values and text are kept raw, with
// entity references undecoded, so that offsets within values map directly
// onto the source.
package xmldom

import (
	"iter"

	"msbuildlang.org/go/msbuild/token"
)

// A Node is an element, attribute, text or closing tag.
type Node interface {
	Span() token.Span
	node()
}

// Document is a parsed XML file.
type Document struct {
	Filename string
	Text     string

	// Nodes are the top-level elements in source order.
	Nodes []*Element

	Problems []Problem
}

// Problem records malformed markup.
type Problem struct {
	Span    token.Span
	Message string
}

// Root returns the first top-level element, or nil.
func (d *Document) Root() *Element {
	if len(d.Nodes) == 0 {
		return nil
	}
	return d.Nodes[0]
}

// Element is an XML element.
type Element struct {
	Name     string
	NameSpan token.Span

	// StartTag covers the start tag from '<' up to and including '>' or,
	// if the tag is unterminated, up to where scanning stopped.
	StartTag token.Span

	Attributes []*Attribute
	Children   []Node // *Element and *Text
	Parent     *Element

	// ClosingTag is nil for self-closing and unterminated elements.
	ClosingTag *ClosingTag

	// SelfClosing is set for elements written as <Name/>.
	SelfClosing bool

	// Ended reports whether the element was closed explicitly, either by
	// a matching closing tag or by being self-closing.
	Ended bool

	tagClosed bool // the start tag has its '>'
	end       int
}

// Span returns the span of the start tag.
func (e *Element) Span() token.Span { return e.StartTag }

// OuterSpan returns the span of the whole element including its content
// and closing tag.
func (e *Element) OuterSpan() token.Span {
	return token.Span{Start: e.StartTag.Start, End: e.end}
}

// Elements returns the child elements.
func (e *Element) Elements() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, c := range e.Children {
			if el, ok := c.(*Element); ok && !yield(el) {
				return
			}
		}
	}
}

// FirstText returns the first text child, or nil.
func (e *Element) FirstText() *Text {
	for _, c := range e.Children {
		if t, ok := c.(*Text); ok {
			return t
		}
	}
	return nil
}

// Attribute returns the first attribute with the given name, or nil.
func (e *Element) Attribute(name string) *Attribute {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AttributeValue returns the raw value of the named attribute.
func (e *Element) AttributeValue(name string) (string, bool) {
	if a := e.Attribute(name); a != nil && a.HasValue {
		return a.Value, true
	}
	return "", false
}

// Attribute is an attribute of an element.
type Attribute struct {
	Name     string
	NameSpan token.Span

	// Value is the raw text between the quotes.
	Value       string
	ValueOffset int
	HasValue    bool

	// Terminated is false if the closing quote is missing.
	Terminated bool

	span token.Span
}

func (a *Attribute) Span() token.Span { return a.span }

// Text is character data. For CDATA sections Value excludes the markers.
type Text struct {
	Value string
	CDATA bool

	span token.Span
}

func (t *Text) Span() token.Span { return t.span }

// ClosingTag is the closing tag of an element.
type ClosingTag struct {
	Name string

	span token.Span
}

func (c *ClosingTag) Span() token.Span { return c.span }

func (*Element) node()    {}
func (*Attribute) node()  {}
func (*Text) node()       {}
func (*ClosingTag) node() {}

// NodePath returns the chain of nodes from a top-level element down to the
// innermost node at offset. The last node is an *Attribute if the offset is
// on an attribute, a *Text or *ClosingTag if it is in text or a closing
// tag, and an *Element otherwise. An offset at the end of a name or
// attribute is considered to be on it. The result is nil if offset is
// outside every element.
func (d *Document) NodePath(offset int) []Node {
	for _, el := range d.Nodes {
		if containsElement(el, offset) {
			return elementPath(nil, el, offset)
		}
	}
	return nil
}

func containsElement(el *Element, offset int) bool {
	s := el.OuterSpan()
	if offset < s.Start {
		return false
	}
	if el.Ended {
		return offset < s.End
	}
	return offset <= s.End
}

func elementPath(path []Node, el *Element, offset int) []Node {
	path = append(path, el)
	if offset < el.StartTag.End || !el.tagClosed && offset == el.StartTag.End {
		for _, a := range el.Attributes {
			if a.span.Start <= offset && offset <= a.span.End {
				return append(path, a)
			}
		}
		return path
	}
	if el.ClosingTag != nil && el.ClosingTag.span.Start <= offset {
		return append(path, el.ClosingTag)
	}
	for c := range el.Elements() {
		if containsElement(c, offset) {
			return elementPath(path, c, offset)
		}
	}
	for _, c := range el.Children {
		if t, ok := c.(*Text); ok && t.span.Start <= offset && offset <= t.span.End {
			return append(path, t)
		}
	}
	return path
}
