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


package references

import (
	"strings"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/resolve"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/syntax"
	"msbuildlang.org/go/msbuild/visitor"
	"msbuildlang.org/go/msbuild/xmldom"
)

type base struct {
	visitor.NopHandler
	name   string
	report Reporter
}

func (b *base) match(s string) bool { return schema.NamesEqual(b.name, s) }

func (b *base) add(offset, length int, u Usage) {
	b.report(Result{Offset: offset, Length: length, Usage: u})
}

// pureMatch reports n if it is literal text equal to the name.
func (b *base) pureMatch(n ast.Node, u Usage) {
	t, ok := n.(*ast.Text)
	if !ok || !t.IsPure {
		return
	}
	if value, offset, length := t.TrimmedUnescaped(); b.match(value) {
		b.add(offset, length, u)
	}
}

// pureMatches calls pureMatch for a literal value or each entry of a list.
func (b *base) pureMatches(n ast.Node, u Usage) {
	if l, ok := n.(*ast.List); ok {
		for _, e := range l.Nodes {
			b.pureMatch(e, u)
		}
		return
	}
	b.pureMatch(n, u)
}

// eachNode calls f for every node of the tree rooted at root with the path
// from root to the node. The path is only valid during the call.
func eachNode(root ast.Node, f func(path []ast.Node)) {
	if root == nil {
		return
	}
	var stack []ast.Node
	ast.Walk(root, func(n ast.Node) bool {
		stack = append(stack, n)
		f(stack)
		return true
	}, func(ast.Node) {
		stack = stack[:len(stack)-1]
	})
}

func last(path []ast.Node) ast.Node { return path[len(path)-1] }

func nameOf(el *xmldom.Element) string {
	if el == nil {
		return ""
	}
	return el.Name
}

func trimGet(name string) string {
	if len(name) > 4 && name[:4] == "get_" {
		return name[4:]
	}
	return name
}

type itemCollector struct{ base }

func (c *itemCollector) ResolvedElement(el *xmldom.Element, syn *syntax.Element, _ schema.TypedSymbol) bool {
	switch syn.Kind() {
	case syntax.Item, syntax.ItemDefinition:
		if c.match(el.Name) {
			c.add(el.NameSpan.Start, len(el.Name), Write)
		}
	}
	return true
}

func (c *itemCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *itemCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *itemCollector) value(v *visitor.Value) {
	if createsItems(v) {
		c.pureMatch(v.Node, Write)
	}
	eachNode(v.Node, func(path []ast.Node) {
		switch x := last(path).(type) {
		case *ast.ItemName:
			if c.match(x.Name) {
				c.add(x.Offset, len(x.Name), Read)
			}
		case *ast.Metadata:
			if x.IsQualified() && c.match(x.Item) {
				c.add(x.ItemOffset, len(x.Item), Read)
			}
		}
	})
}

// createsItems reports whether the value names an item type that is
// written to: the ItemName of a task output or the OutputItemType of a
// project reference.
func createsItems(v *visitor.Value) bool {
	if v.AttributeSyntax != nil {
		switch v.AttributeSyntax.Kind() {
		case syntax.OutputItemName:
			return true
		case syntax.ItemMetadata:
			return isOutputItemType(v.Element.Name, v.Attribute.Name)
		}
		return false
	}
	return v.ElementSyntax.Kind() == syntax.Metadata && isOutputItemType(nameOf(v.Element.Parent), v.Element.Name)
}

func isOutputItemType(item, metadata string) bool {
	return strings.EqualFold(item, "ProjectReference") && strings.EqualFold(metadata, "OutputItemType")
}

type propertyCollector struct{ base }

func (c *propertyCollector) ResolvedElement(el *xmldom.Element, syn *syntax.Element, _ schema.TypedSymbol) bool {
	if syn.Kind() == syntax.Property && c.match(el.Name) {
		c.add(el.NameSpan.Start, len(el.Name), Write)
	}
	return true
}

func (c *propertyCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *propertyCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *propertyCollector) value(v *visitor.Value) {
	if v.Symbol != nil && v.Symbol.ValueKind() == schema.PropertyName.AsLiteral() {
		c.pureMatch(v.Node, Write)
	}
	eachNode(v.Node, func(path []ast.Node) {
		if x, ok := last(path).(*ast.PropertyName); ok && c.match(x.Name) {
			c.add(x.Offset, x.Length, Read)
		}
	})
}

type metadataCollector struct {
	base
	item string
}

func (c *metadataCollector) ResolvedElement(el *xmldom.Element, syn *syntax.Element, _ schema.TypedSymbol) bool {
	if syn.Kind() == syntax.Metadata && c.match(el.Name) && schema.NamesEqual(c.item, nameOf(el.Parent)) {
		c.add(el.NameSpan.Start, len(el.Name), Write)
	}
	return true
}

func (c *metadataCollector) ResolvedAttribute(el *xmldom.Element, att *xmldom.Attribute, _ *syntax.Element, attSyn *syntax.Attribute, _ schema.TypedSymbol) bool {
	if attSyn.Kind().AbstractKind() == syntax.Metadata && c.match(att.Name) && schema.NamesEqual(c.item, el.Name) {
		c.add(att.NameSpan.Start, len(att.Name), Write)
	}
	return true
}

func (c *metadataCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *metadataCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *metadataCollector) value(v *visitor.Value) {
	if v.Symbol != nil && v.Symbol.ValueKind().IsKindOrListOfKind(schema.MetadataName) {
		// KeepMetadata and RemoveMetadata name metadata of the items
		// in Include.
		if c.includes(v.Element) {
			c.pureMatches(v.Node, Read)
		}
		return
	}
	eachNode(v.Node, func(path []ast.Node) {
		m, ok := last(path).(*ast.Metadata)
		if !ok || !c.match(m.Name) {
			return
		}
		if schema.NamesEqual(c.item, visitor.MetadataItem(v, path[:len(path)-1], m)) {
			c.add(m.NameOffset, len(m.Name), Read)
		}
	})
}

func (c *metadataCollector) includes(el *xmldom.Element) bool {
	for n := range ast.Descendants(visitor.IncludeExpression(el)) {
		if x, ok := n.(*ast.ItemName); ok && schema.NamesEqual(c.item, x.Name) {
			return true
		}
	}
	return false
}

type taskCollector struct{ base }

func (c *taskCollector) ResolvedElement(el *xmldom.Element, syn *syntax.Element, _ schema.TypedSymbol) bool {
	switch syn.Kind() {
	case syntax.Task:
		if c.match(el.Name) {
			c.add(el.NameSpan.Start, len(el.Name), Read)
		}
	case syntax.UsingTask:
		for _, att := range el.Attributes {
			if strings.EqualFold(att.Name, "TaskName") {
				c.declaration(att)
			}
		}
	}
	return true
}

// declaration reports a UsingTask TaskName whose last dotted segment is
// the task name.
func (c *taskCollector) declaration(att *xmldom.Attribute) {
	v := att.Value
	start := len(v) - len(strings.TrimLeft(v, " \t\r\n"))
	v = strings.TrimSpace(v)
	i := strings.LastIndexByte(v, '.') + 1
	if name := v[i:]; c.match(name) {
		c.add(att.ValueOffset+start+i, len(name), Declaration)
	}
}

type targetCollector struct{ base }

func (c *targetCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *targetCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *targetCollector) value(v *visitor.Value) {
	if v.Symbol == nil || !v.Symbol.ValueKind().IsKindOrListOfKind(schema.TargetName) {
		return
	}
	usage := Read
	if v.AttributeSyntax != nil && v.AttributeSyntax.Kind() == syntax.TargetName {
		usage = Declaration
	}
	c.pureMatches(v.Node, usage)
}

type targetDefinitionCollector struct{ base }

func (c *targetDefinitionCollector) ResolvedElement(el *xmldom.Element, syn *syntax.Element, _ schema.TypedSymbol) bool {
	if syn.Kind() != syntax.Target {
		return syn.Kind() == syntax.Project
	}
	for _, att := range el.Attributes {
		if strings.EqualFold(att.Name, "Name") {
			t := &ast.Text{Range: ast.Range{Offset: att.ValueOffset, Length: len(att.Value)}, Value: att.Value, IsPure: true}
			c.pureMatch(t, Declaration)
		}
	}
	return false
}

type itemFunctionCollector struct{ base }

func (c *itemFunctionCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *itemFunctionCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *itemFunctionCollector) value(v *visitor.Value) {
	eachNode(v.Node, func(path []ast.Node) {
		x, ok := last(path).(*ast.FunctionInvocation)
		if ok && x.Kind == ast.ItemFunction && x.Function != nil && c.match(x.Function.Name) {
			c.add(x.Function.Offset, len(x.Function.Name), Read)
		}
	})
}

type staticFunctionCollector struct {
	base
	class string
}

func (c *staticFunctionCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *staticFunctionCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *staticFunctionCollector) value(v *visitor.Value) {
	eachNode(v.Node, func(path []ast.Node) {
		x, ok := last(path).(*ast.FunctionInvocation)
		if !ok || x.Kind != ast.StaticFunction || x.Function == nil {
			return
		}
		class, ok := x.Target.(*ast.ClassReference)
		if !ok || !strings.EqualFold(class.Name, c.class) {
			return
		}
		if schema.NamesEqual(trimGet(c.name), trimGet(x.Function.Name)) {
			c.add(x.Function.Offset, len(x.Function.Name), Read)
		}
	})
}

type propertyFunctionCollector struct {
	base
	kind  schema.ValueKind
	types resolve.FunctionTypeProvider
}

func (c *propertyFunctionCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *propertyFunctionCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *propertyFunctionCollector) value(v *visitor.Value) {
	eachNode(v.Node, func(path []ast.Node) {
		x, ok := last(path).(*ast.FunctionInvocation)
		if !ok || x.Kind != ast.InstanceFunction || x.Function == nil {
			return
		}
		if !schema.NamesEqual(trimGet(c.name), trimGet(x.Function.Name)) {
			return
		}
		kind := schema.Unknown
		if c.types != nil {
			kind = c.types.ResolveType(x)
		}
		if orString(kind) == orString(c.kind) {
			c.add(x.Function.Offset, len(x.Function.Name), Read)
		}
	})
}

// orString treats receivers of unknown type as strings.
func orString(k schema.ValueKind) schema.ValueKind {
	if k == schema.Unknown {
		return schema.String
	}
	return k
}

type classCollector struct{ base }

func (c *classCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *classCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *classCollector) value(v *visitor.Value) {
	eachNode(v.Node, func(path []ast.Node) {
		x, ok := last(path).(*ast.FunctionInvocation)
		if !ok || x.Kind != ast.StaticFunction {
			return
		}
		if class, ok := x.Target.(*ast.ClassReference); ok && c.match(class.Name) {
			c.add(class.Offset, class.Length, Read)
		}
	})
}

type enumCollector struct{ base }

func (c *enumCollector) ElementValue(v *visitor.Value)   { c.value(v) }
func (c *enumCollector) AttributeValue(v *visitor.Value) { c.value(v) }

func (c *enumCollector) value(v *visitor.Value) {
	eachNode(v.Node, func(path []ast.Node) {
		args, ok := last(path).(*ast.ArgumentList)
		if !ok {
			return
		}
		for _, a := range args.Arguments {
			if x, ok := a.(*ast.ClassReference); ok && c.match(x.Name) {
				c.add(x.Offset, x.Length, Read)
			}
		}
	})
}

// knownValueCollector finds literals that resolve to the same known value,
// which is only possible in values of the same type.
type knownValueCollector struct {
	base
	value schema.Symbol
}

func (c *knownValueCollector) ElementValue(v *visitor.Value)   { c.literals(v) }
func (c *knownValueCollector) AttributeValue(v *visitor.Value) { c.literals(v) }

func (c *knownValueCollector) literals(v *visitor.Value) {
	check := func(n ast.Node) {
		t, ok := n.(*ast.Text)
		if !ok || !t.IsPure {
			return
		}
		value, offset, length := t.TrimmedUnescaped()
		if kv := schema.FindKnownValue(v.Symbol, v.InferredKind, value); kv != nil && kv == c.value {
			c.add(offset, length, Read)
		}
	}
	if l, ok := v.Node.(*ast.List); ok {
		for _, e := range l.Nodes {
			check(e)
		}
		return
	}
	check(v.Node)
}
