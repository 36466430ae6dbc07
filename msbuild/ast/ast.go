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

// Package ast declares the types used to represent syntax trees for
// expressions of the MSBuild language.
//
// Every node records the absolute byte range it was parsed from. A parent's
// range always contains the ranges of its children. Errors are nodes too:
// parsing never fails, it produces *Error and *IncompleteError nodes in the
// places where the text is malformed.
package ast

import "msbuildlang.org/go/msbuild/token"

// A Node represents any node in an expression tree.
type Node interface {
	Pos() int // position of first byte belonging to the node
	End() int // position of first byte immediately after the node
	Len() int

	exprNode()
}

// Range is the source range of a node. It is embedded in every node type.
type Range struct {
	Offset int
	Length int
}

func (r Range) Pos() int { return r.Offset }
func (r Range) End() int { return r.Offset + r.Length }
func (r Range) Len() int { return r.Length }

// Span returns r as a token.Span.
func (r Range) Span() token.Span { return token.NewSpan(r.Offset, r.Length) }

// ContainsOffset reports whether offset lies within n, counting the
// offset just past the end as inside.
func ContainsOffset(n Node, offset int) bool {
	return n.Pos() <= offset && offset <= n.End()
}

// SpanOf returns the span of n.
func SpanOf(n Node) token.Span { return token.Span{Start: n.Pos(), End: n.End()} }

// ----------------------------------------------------------------------------
// Literal text and containers

// Text is a run of literal text. Value is the raw source text; entity
// references are not decoded.
type Text struct {
	Range
	Value string

	// IsPure is set when the text is a complete value on its own (the whole
	// expression, a whole list entry or a whole quoted string) and contains
	// no entity references, so that Value can be compared directly against
	// names.
	IsPure bool
}

// Concat is a sequence of adjacent text runs and references.
type Concat struct {
	Range
	Nodes []Node
}

// List is a sequence of values separated by semicolons.
type List struct {
	Range
	Nodes []Node
}

// QuotedExpression is a single, double or backtick quoted string. The
// string content is parsed as an expression in its own right. Expression is
// nil for an empty string.
type QuotedExpression struct {
	Range
	Quote      byte
	Expression Node
}

// ParenGroup is a parenthesized condition subexpression.
type ParenGroup struct {
	Range
	Expression Node
}

// ----------------------------------------------------------------------------
// References

// Property is a $(...) reference. Expression is a *PropertyName for a
// simple property, a *FunctionInvocation, a *RegistryValue, or an error
// node.
type Property struct {
	Range
	Expression Node
}

// Name returns the referenced property name if the property is simple.
func (p *Property) Name() string {
	if n, ok := p.Expression.(*PropertyName); ok {
		return n.Name
	}
	return ""
}

// IsSimple reports whether p references a property by name only.
func (p *Property) IsSimple() bool {
	_, ok := p.Expression.(*PropertyName)
	return ok
}

// Item is an @(...) reference. Expression is an *ItemName, an
// *ItemTransform, a *FunctionInvocation of kind ItemFunction, or an error
// node.
type Item struct {
	Range
	Expression Node
}

// Name returns the name of the referenced item type, looking through
// transforms and item functions.
func (i *Item) Name() string {
	switch x := i.Expression.(type) {
	case *ItemName:
		return x.Name
	case *ItemTransform:
		return x.Target.Name
	case *FunctionInvocation:
		return x.ItemName()
	}
	return ""
}

// IsSimple reports whether i references an item by name only.
func (i *Item) IsSimple() bool {
	_, ok := i.Expression.(*ItemName)
	return ok
}

// Metadata is a %(...) reference, optionally qualified by an item name.
type Metadata struct {
	Range
	Item       string // empty if unqualified
	ItemOffset int
	Name       string
	NameOffset int
}

// IsQualified reports whether the metadata names its item type.
func (m *Metadata) IsQualified() bool { return m.Item != "" }

// ItemSpan returns the span of the qualifying item name.
func (m *Metadata) ItemSpan() token.Span { return token.NewSpan(m.ItemOffset, len(m.Item)) }

// NameSpan returns the span of the metadata name.
func (m *Metadata) NameSpan() token.Span { return token.NewSpan(m.NameOffset, len(m.Name)) }

// RegistryValue is the $(Registry:Key@Value) shorthand. Path holds the text
// following the "Registry:" prefix.
type RegistryValue struct {
	Range
	Path string
}

// ----------------------------------------------------------------------------
// Names

// PropertyName is the name of a property.
type PropertyName struct {
	Range
	Name string
}

// ItemName is the name of an item type.
type ItemName struct {
	Range
	Name string
}

// FunctionName is the name of a property function, item function or
// condition function.
type FunctionName struct {
	Range
	Name string
}

// ClassReference is a dotted class name in a static property function, or
// a bare word used as an argument, such as an enum value.
type ClassReference struct {
	Range
	Name string
}

// ----------------------------------------------------------------------------
// Functions

// InvocationKind distinguishes the forms of FunctionInvocation.
type InvocationKind int

const (
	// InstanceFunction is $(Prop.Method(...)) or $(Prop.Member), where the
	// target is a property name or another invocation.
	InstanceFunction InvocationKind = iota
	// StaticFunction is $([Class]::Method(...)); the target is a
	// *ClassReference.
	StaticFunction
	// Indexer is $(Prop[...]); Function is nil.
	Indexer
	// ItemFunction is @(Item->Method(...)).
	ItemFunction
)

func (k InvocationKind) String() string {
	switch k {
	case InstanceFunction:
		return "instance"
	case StaticFunction:
		return "static"
	case Indexer:
		return "indexer"
	case ItemFunction:
		return "item"
	}
	return "unknown"
}

// FunctionInvocation is a call or member access on a target.
//
// Arguments is nil for member access without parentheses. Otherwise it is
// an *ArgumentList or an error node wrapping one.
type FunctionInvocation struct {
	Range
	Kind      InvocationKind
	Target    Node
	Function  *FunctionName
	Arguments Node
}

// ArgumentList returns the invocation's arguments, looking through an
// incomplete error, or nil if there are none.
func (f *FunctionInvocation) ArgumentList() *ArgumentList {
	return asArgumentList(f.Arguments)
}

// ItemName returns the item type an item function is applied to.
func (f *FunctionInvocation) ItemName() string {
	switch t := f.Target.(type) {
	case *ItemName:
		return t.Name
	case *FunctionInvocation:
		return t.ItemName()
	}
	return ""
}

func asArgumentList(n Node) *ArgumentList {
	switch x := n.(type) {
	case *ArgumentList:
		return x
	case *IncompleteError:
		return asArgumentList(x.Node)
	}
	return nil
}

// ArgumentList is a parenthesized or bracketed argument list. Each argument
// is an *IntLiteral, *FloatLiteral, *BoolLiteral, *QuotedExpression,
// *ClassReference, *Property, *Item, *Metadata or an error node.
type ArgumentList struct {
	Range
	Arguments []Node
}

// IntLiteral is an integer argument.
type IntLiteral struct {
	Range
	Value int64
}

// FloatLiteral is a floating point argument.
type FloatLiteral struct {
	Range
	Value float64
}

// BoolLiteral is a true or false argument.
type BoolLiteral struct {
	Range
	Value bool
}

// ItemTransform is @(Item->'transform', 'separator').
//
// Transform and Separator are *QuotedExpression nodes, or an error node if
// the string is malformed. Separator is nil if absent.
type ItemTransform struct {
	Range
	Target    *ItemName
	Transform Node
	Separator Node
}

// ----------------------------------------------------------------------------
// Conditions

// OperatorKind is the operator of a ConditionOperator.
type OperatorKind int

const (
	And OperatorKind = iota
	Or
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Not
)

var operatorNames = [...]string{
	And:          "and",
	Or:           "or",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	Not:          "!",
}

func (k OperatorKind) String() string {
	if int(k) < len(operatorNames) {
		return operatorNames[k]
	}
	return "?"
}

// ConditionOperator is a boolean or comparison operator. Left is nil for
// the unary Not.
type ConditionOperator struct {
	Range
	Op    OperatorKind
	Left  Node
	Right Node
}

// ConditionFunction is a built-in condition function such as Exists.
type ConditionFunction struct {
	Range
	Name      *FunctionName
	Arguments Node // *ArgumentList or an error node
}

// ArgumentList returns the function's arguments, looking through an
// incomplete error.
func (f *ConditionFunction) ArgumentList() *ArgumentList {
	return asArgumentList(f.Arguments)
}

// ----------------------------------------------------------------------------
// Errors

// Error marks malformed text. WasEOF is set when the error was caused by
// reaching the end of the text.
type Error struct {
	Range
	Kind   ErrorKind
	WasEOF bool
}

// IncompleteError is an error that wraps the part of a construct that was
// parsed successfully before the error was found.
type IncompleteError struct {
	Range
	Kind   ErrorKind
	WasEOF bool
	Node   Node
}

// ErrorInfo returns the kind and EOF flag of an error node. ok is false if
// n is not an error node.
func ErrorInfo(n Node) (kind ErrorKind, wasEOF bool, ok bool) {
	switch x := n.(type) {
	case *Error:
		return x.Kind, x.WasEOF, true
	case *IncompleteError:
		return x.Kind, x.WasEOF, true
	}
	return 0, false, false
}

func (*Text) exprNode()               {}
func (*Concat) exprNode()             {}
func (*List) exprNode()               {}
func (*QuotedExpression) exprNode()   {}
func (*ParenGroup) exprNode()         {}
func (*Property) exprNode()           {}
func (*Item) exprNode()               {}
func (*Metadata) exprNode()           {}
func (*RegistryValue) exprNode()      {}
func (*PropertyName) exprNode()       {}
func (*ItemName) exprNode()           {}
func (*FunctionName) exprNode()       {}
func (*ClassReference) exprNode()     {}
func (*FunctionInvocation) exprNode() {}
func (*ArgumentList) exprNode()       {}
func (*IntLiteral) exprNode()         {}
func (*FloatLiteral) exprNode()       {}
func (*BoolLiteral) exprNode()        {}
func (*ItemTransform) exprNode()      {}
func (*ConditionOperator) exprNode()  {}
func (*ConditionFunction) exprNode()  {}
func (*Error) exprNode()              {}
func (*IncompleteError) exprNode()    {}
