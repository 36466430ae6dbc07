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

package parser

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"msbuildlang.org/go/msbuild/ast"
)

func TestErrorKinds(t *testing.T) {
	testCases := []struct {
		in   string
		kind ast.ErrorKind
	}{
		// properties
		{"$(", ast.ExpectingPropertyName},
		{"$(    ", ast.ExpectingPropertyName},
		{"$(.", ast.ExpectingPropertyName},
		{"$(   .", ast.ExpectingPropertyName},
		{"$(a", ast.ExpectingRightParenOrPeriod},
		{"$(a-", ast.ExpectingRightParenOrPeriod},
		// metadata
		{"%(", ast.ExpectingMetadataOrItemName},
		{"%(.", ast.ExpectingMetadataOrItemName},
		{"%(a", ast.ExpectingRightParenOrPeriod},
		{"%(a.b", ast.ExpectingRightParen},
		{"%(a.b.", ast.ExpectingRightParen},
		{"%(a.", ast.ExpectingMetadataName},
		{"%(a.)", ast.ExpectingMetadataName},
		{"%(a-", ast.ExpectingRightAngleBracket},
		{"%(a->", ast.ExpectingMetadataName},
		{"%(a->b", ast.ExpectingRightParen},
		// items
		{"@(.", ast.ExpectingItemName},
		{"@(", ast.ExpectingItemName},
		{"@(a", ast.ExpectingRightParenOrDash},
		{"@(a.", ast.ExpectingRightParenOrDash},
		{"@(a-", ast.ExpectingRightAngleBracket},
		{"@(a   -", ast.ExpectingRightAngleBracket},
		{"@(a-.", ast.ExpectingRightAngleBracket},
		{"@(a->", ast.ExpectingMethodOrTransform},
		{"@(a->  ", ast.ExpectingMethodOrTransform},
		{"@(a->.", ast.ExpectingMethodOrTransform},
		{"@(a->'f", ast.IncompleteString},
		{"@(a->''", ast.ExpectingRightParen},
		{"@(a->''d", ast.ExpectingRightParen},
		{"@(a->'' ", ast.ExpectingRightParen},
		{"@(a->a", ast.ExpectingLeftParen},
		{"@(a->  a", ast.ExpectingLeftParen},
		{"@(foo->'x', ", ast.ExpectingValue},
		{"@(foo->'x', '", ast.IncompleteString},
		{"@(foo->'x', ''", ast.ExpectingRightParen},
		// instance property functions
		{"$(a.", ast.ExpectingMethodName},
		{"$(a..", ast.ExpectingMethodName},
		{"$(a.b.", ast.ExpectingMethodName},
		{"$(a.b().", ast.ExpectingMethodName},
		{"$(a.b()  .  ", ast.ExpectingMethodName},
		{"$(a.b", ast.IncompleteProperty},
		{"$(a.b(", ast.ExpectingRightParenOrValue},
		{"$(a.b(/", ast.ExpectingRightParenOrValue},
		{"$(a.b(.", ast.IncompleteValue},
		{"$(a.b(true,.", ast.IncompleteValue},
		{"$(a.b(true,   .", ast.IncompleteValue},
		{"$(a.b()", ast.ExpectingRightParenOrPeriod},
		{"$(a.b(true,true)", ast.ExpectingRightParenOrPeriod},
		{"$(a.b(true,true)   ", ast.ExpectingRightParenOrPeriod},
		{"$(a.b(true,true)   _", ast.ExpectingRightParenOrPeriod},
		{"$(a.b(1,", ast.ExpectingValue},
		{"$(a.b(true,", ast.ExpectingValue},
		{"$(a.b(true,   ", ast.ExpectingValue},
		{"$(a.b(true,/", ast.ExpectingValue},
		{"$(a.b(true,   /", ast.ExpectingValue},
		{"$(a.b(true,true", ast.ExpectingRightParenOrComma},
		// static property functions
		{"$([a", ast.ExpectingBracketColonColon},
		{"$([ a", ast.ExpectingBracketColonColon},
		{"$([a ", ast.ExpectingBracketColonColon},
		{"$( [a ", ast.ExpectingBracketColonColon},
		{"$([a]", ast.ExpectingBracketColonColon},
		{"$([a)", ast.ExpectingBracketColonColon},
		{"$([a]:", ast.ExpectingBracketColonColon},
		{"$([a]: ", ast.ExpectingBracketColonColon},
		{"$([a.b", ast.ExpectingBracketColonColon},
		{"$([a]::", ast.ExpectingMethodName},
		{"$([a]:: ", ast.ExpectingMethodName},
		{"$([a]:: (", ast.ExpectingMethodName},
		{"$([a]::b", ast.IncompleteProperty},
		{"$([a]:: b", ast.IncompleteProperty},
		{"$([a]::b ", ast.IncompleteProperty},
		{"$([a]::b(", ast.ExpectingRightParenOrValue},
		{"$([a]::b($", ast.ExpectingRightParenOrValue},
		{"$([a]::b(  $", ast.ExpectingRightParenOrValue},
		{"$([a]::b(  %", ast.ExpectingRightParenOrValue},
		{"$([a]::b (", ast.ExpectingRightParenOrValue},
		{"$([a]::b( ", ast.ExpectingRightParenOrValue},
		{"$([a]::b()", ast.ExpectingRightParenOrPeriod},
		{"$([a]::b(1,", ast.ExpectingValue},
		{"$([a]::b(1,$", ast.ExpectingValue},
		{"$([a]::b(1,%", ast.ExpectingValue},
		{"$([a]::b(1,   %", ast.ExpectingValue},
		{"$([a]::b(true,", ast.ExpectingValue},
		{"$([a]::b(1,1", ast.ExpectingRightParenOrComma},
		{"$([a]::b(1,tr", ast.ExpectingRightParenOrComma},
		{"$([a]::b(1,foo.bar", ast.ExpectingRightParenOrComma},
		{"$([a]::b(1,1x", ast.CouldNotParseNumber},
		{"$([a]::b(0xG", ast.CouldNotParseNumber},
		{"$([a]::b(1e-", ast.CouldNotParseNumber},
		{"$([a]::b(1,foo.", ast.ExpectingClassNameComponent},
		{"$([a.b.", ast.ExpectingClassNameComponent},
		{"$([a.1", ast.ExpectingClassNameComponent},
		{"$([a.  ", ast.ExpectingClassNameComponent},
		{"$([ a .  ", ast.ExpectingClassNameComponent},
		{"$([ a . b  . ", ast.ExpectingClassNameComponent},
		{"$([ a . )", ast.ExpectingClassNameComponent},
		{"$([ a . b . )", ast.ExpectingClassNameComponent},
		{"$([1", ast.ExpectingClassName},
		// entities
		{"&", ast.IncompleteOrUnsupportedEntity},
		{"&f", ast.IncompleteOrUnsupportedEntity},
		{"& ", ast.IncompleteOrUnsupportedEntity},
		{"&amp", ast.IncompleteOrUnsupportedEntity},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			// A large base offset exposes offset arithmetic bugs.
			n := Parse(tc.in, Metadata, 1000)
			errs := ast.Errors(n)
			qt.Assert(t, qt.HasLen(errs, 1), qt.Commentf("%s", ast.Sprint(n)))
			kind, _, _ := ast.ErrorInfo(errs[0])
			qt.Assert(t, qt.Equals(kind, tc.kind))
			checkRanges(t, n, tc.in, 1000)
		})
	}
}

func TestWasEOF(t *testing.T) {
	testCases := []struct {
		in  string
		eof bool
	}{
		{"$(", true},
		{"$(a b)", false},
		{"@(a->'x' q", false},
		{"%(a.b", true},
		{"&!", false},
	}
	for _, tc := range testCases {
		n := Parse(tc.in, ItemsMetadataAndLists, 0)
		errs := ast.Errors(n)
		qt.Assert(t, qt.HasLen(errs, 1), qt.Commentf("%q", tc.in))
		_, eof, _ := ast.ErrorInfo(errs[0])
		qt.Check(t, qt.Equals(eof, tc.eof), qt.Commentf("%q", tc.in))
	}
}

func TestSimpleNames(t *testing.T) {
	testCases := []struct {
		in   string
		name string
	}{
		{"$(prop)", "prop"},
		{"%(meta)", "meta"},
		{"@(item)", "item"},
		{"$(prop123)", "prop123"},
		{"$(p)", "p"},
		{"$(   Foo   )", "Foo"},
		{"%(  meta  )", "meta"},
		{"@(  item  )", "item"},
		{"$(_prop)", "_prop"},
		{"@(_Foo12_3)", "_Foo12_3"},
		{"$(prop-name)", "prop-name"},
		{"%(meta-name)", "meta-name"},
		{"@(item-name)", "item-name"},
		{"$(prop_Name)", "prop_Name"},
	}
	for _, tc := range testCases {
		n := Parse(tc.in, ItemsAndMetadata, 1000)
		var got string
		switch x := n.(type) {
		case *ast.Property:
			qt.Assert(t, qt.IsTrue(x.IsSimple()))
			got = x.Name()
		case *ast.Item:
			qt.Assert(t, qt.IsTrue(x.IsSimple()))
			got = x.Name()
		case *ast.Metadata:
			qt.Assert(t, qt.IsFalse(x.IsQualified()))
			got = x.Name
		default:
			t.Fatalf("%q: unexpected node %T", tc.in, n)
		}
		qt.Check(t, qt.Equals(got, tc.name), qt.Commentf("%q", tc.in))
	}
}

func TestLiterals(t *testing.T) {
	for _, in := range []string{"$", "@", "%", "$a", "@b", "%c", "$ ", "@ ", "% "} {
		n := Parse(in, Metadata, 0)
		txt, ok := n.(*ast.Text)
		qt.Assert(t, qt.IsTrue(ok), qt.Commentf("%q: got %T", in, n))
		qt.Check(t, qt.Equals(txt.Unescaped(), in))
		qt.Check(t, qt.IsTrue(txt.IsPure))
	}

	testCases := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"abc&apos; ", "abc'"},
		{"  abc&apos; ", "abc'"},
	}
	for _, tc := range testCases {
		txt := Parse(tc.in, Metadata, 0).(*ast.Text)
		got, _, _ := txt.TrimmedUnescaped()
		qt.Check(t, qt.Equals(got, tc.want))
		qt.Check(t, qt.Equals(txt.IsPure, tc.in == "abc"))
	}
}

func TestDisallowed(t *testing.T) {
	testCases := []struct {
		in   string
		opts Options
		kind ast.ErrorKind
	}{
		{"%(Foo)", None, ast.MetadataDisallowed},
		{"@(Foo)", None, ast.ItemsDisallowed},
		{"@(Foo)", Metadata, ast.ItemsDisallowed},
		{"x%(Foo.Bar)y", Items, ast.MetadataDisallowed},
	}
	for _, tc := range testCases {
		n := Parse(tc.in, tc.opts, 0)
		errs := ast.Errors(n)
		qt.Assert(t, qt.HasLen(errs, 1))
		e, ok := errs[0].(*ast.Error)
		qt.Assert(t, qt.IsTrue(ok))
		qt.Check(t, qt.Equals(e.Kind, tc.kind))
		qt.Check(t, qt.IsFalse(e.WasEOF))
	}

	// The same text is accepted once the construct is permitted.
	item, ok := Parse("@(Foo)", Items, 0).(*ast.Item)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(item.Name(), "Foo"))

	// Errors inside a disallowed construct are reported as they are.
	n := Parse("@(Foo->", None, 0)
	errs := ast.Errors(n)
	qt.Assert(t, qt.HasLen(errs, 1))
	kind, _, _ := ast.ErrorInfo(errs[0])
	qt.Assert(t, qt.Equals(kind, ast.ExpectingMethodOrTransform))
}

func TestQualifiedMetadata(t *testing.T) {
	testCases := []struct {
		in         string
		item, name string
	}{
		{"%(Foo.Bar)", "Foo", "Bar"},
		{"%(_Foo._Bar)", "_Foo", "_Bar"},
		{"%(_Foo12_3._Bar3_4)", "_Foo12_3", "_Bar3_4"},
		{"%( Foo.Bar)", "Foo", "Bar"},
		{"%(Foo .Bar)", "Foo", "Bar"},
		{"%(Foo. Bar)", "Foo", "Bar"},
		{"%(Foo.Bar )", "Foo", "Bar"},
		{"%( Foo . Bar )", "Foo", "Bar"},
		{"%(Foo->Bar)", "Foo", "Bar"},
	}
	for _, tc := range testCases {
		m, ok := Parse(tc.in, Metadata, 0).(*ast.Metadata)
		qt.Assert(t, qt.IsTrue(ok), qt.Commentf("%q", tc.in))
		qt.Check(t, qt.Equals(m.Item, tc.item))
		qt.Check(t, qt.Equals(m.Name, tc.name))
		qt.Check(t, qt.Equals(tc.in[m.ItemOffset:m.ItemSpan().End], tc.item))
		qt.Check(t, qt.Equals(tc.in[m.NameOffset:m.NameSpan().End], tc.name))
	}
}

func TestFunctionArguments(t *testing.T) {
	testCases := []struct {
		in       string
		opts     Options
		kind     ast.InvocationKind
		target   string
		function string
		args     []any
	}{
		{"$(Foo.Bar())", None, ast.InstanceFunction, "Foo", "Bar", nil},
		{"$(   Foo  .  Bar  (  )  )", None, ast.InstanceFunction, "Foo", "Bar", nil},
		{"$(Foo.Baz('Hello'))", None, ast.InstanceFunction, "Foo", "Baz", []any{"Hello"}},
		{"$(Foo.A(5))", None, ast.InstanceFunction, "Foo", "A", []any{int64(5)}},
		{"$(Foo.A(true,   20 ))", None, ast.InstanceFunction, "Foo", "A", []any{true, int64(20)}},
		{"$(Foo.A(20.5))", None, ast.InstanceFunction, "Foo", "A", []any{20.5}},
		{"$(Foo.A(.61))", None, ast.InstanceFunction, "Foo", "A", []any{.61}},
		{"$(Foo.A(-3))", None, ast.InstanceFunction, "Foo", "A", []any{int64(-3)}},
		{"$(Foo.A('bees', 2, 'more bees'))", None, ast.InstanceFunction, "Foo", "A", []any{"bees", int64(2), "more bees"}},
		{"$(Foo.A(`bees`, `more bees`))", None, ast.InstanceFunction, "Foo", "A", []any{"bees", "more bees"}},
		{"$(a[0])", None, ast.Indexer, "a", "", []any{int64(0)}},
		{"$(a['hello',true])", None, ast.Indexer, "a", "", []any{"hello", true}},
		{"$([Foo]::Bar())", None, ast.StaticFunction, "Foo", "Bar", nil},
		{"$(   [Foo]::    Bar  (  )  )", None, ast.StaticFunction, "Foo", "Bar", nil},
		{"$([Foo.Bar]::A())", None, ast.StaticFunction, "Foo.Bar", "A", nil},
		{"$([Foo  .  Bar]::A())", None, ast.StaticFunction, "Foo.Bar", "A", nil},
		{"$([  Foo  .  Bar  ]::A())", None, ast.StaticFunction, "Foo.Bar", "A", nil},
		{"$([Foo.Bar]::A ( 'bees' , 2 , 'more bees' ) )", None, ast.StaticFunction, "Foo.Bar", "A", []any{"bees", int64(2), "more bees"}},
		{"$([Foo]::Bar($(Baz)))", None, ast.StaticFunction, "Foo", "Bar", []any{"$Baz"}},
		{"$([Foo]::Bar(%(Baz)))", None, ast.StaticFunction, "Foo", "Bar", []any{"%Baz"}},
		{"$([Foo]::Bar('baz', $(abc), %(xyz), 1))", None, ast.StaticFunction, "Foo", "Bar", []any{"baz", "$abc", "%xyz", int64(1)}},
		{"$([System.IO.Path]::Combine(a, b))", None, ast.StaticFunction, "System.IO.Path", "Combine", []any{"#a", "#b"}},
		{"$([Foo]::Bar(0x1F, -0x10, 1e-3, 2.5E+2))", None, ast.StaticFunction, "Foo", "Bar", []any{int64(31), int64(-16), 0.001, 250.0}},
		{"@(Foo->Bar())", ItemsMetadataAndLists, ast.ItemFunction, "Foo", "Bar", nil},
		{"@(   Foo  ->  Bar  (  )  )", ItemsMetadataAndLists, ast.ItemFunction, "Foo", "Bar", nil},
		{"@(Foo->A('bees' , 2 , 'more bees'))", ItemsMetadataAndLists, ast.ItemFunction, "Foo", "A", []any{"bees", int64(2), "more bees"}},
		{"@(Foo->A(`bees`, 'more bees'))", ItemsMetadataAndLists, ast.ItemFunction, "Foo", "A", []any{"bees", "more bees"}},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			n := Parse(tc.in, tc.opts, 1000)
			qt.Assert(t, qt.HasLen(ast.Errors(n), 0), qt.Commentf("%s", ast.Sprint(n)))
			var inv *ast.FunctionInvocation
			switch x := n.(type) {
			case *ast.Property:
				qt.Assert(t, qt.IsFalse(x.IsSimple()))
				inv = x.Expression.(*ast.FunctionInvocation)
			case *ast.Item:
				qt.Assert(t, qt.IsFalse(x.IsSimple()))
				inv = x.Expression.(*ast.FunctionInvocation)
			default:
				t.Fatalf("unexpected node %T", n)
			}
			qt.Assert(t, qt.Equals(inv.Kind, tc.kind))
			switch target := inv.Target.(type) {
			case *ast.PropertyName:
				qt.Check(t, qt.Equals(target.Name, tc.target))
			case *ast.ItemName:
				qt.Check(t, qt.Equals(target.Name, tc.target))
			case *ast.ClassReference:
				qt.Check(t, qt.Equals(target.Name, tc.target))
			default:
				t.Fatalf("unexpected target %T", inv.Target)
			}
			if tc.function == "" {
				qt.Check(t, qt.IsNil(inv.Function))
			} else {
				qt.Check(t, qt.Equals(inv.Function.Name, tc.function))
			}
			checkArgs(t, inv.ArgumentList(), tc.args)
		})
	}
}

// checkArgs compares arguments against want, where a string is the content
// of a quoted string, "$x" and "%x" are simple property and metadata
// references and "#x" is a bare word.
func checkArgs(t *testing.T, list *ast.ArgumentList, want []any) {
	t.Helper()
	qt.Assert(t, qt.IsNotNil(list))
	qt.Assert(t, qt.HasLen(list.Arguments, len(want)))
	for i, w := range want {
		arg := list.Arguments[i]
		switch w := w.(type) {
		case int64:
			qt.Check(t, qt.Equals(arg.(*ast.IntLiteral).Value, w))
		case float64:
			qt.Check(t, qt.Equals(arg.(*ast.FloatLiteral).Value, w))
		case bool:
			qt.Check(t, qt.Equals(arg.(*ast.BoolLiteral).Value, w))
		case string:
			switch w[0] {
			case '$':
				qt.Check(t, qt.Equals(arg.(*ast.Property).Name(), w[1:]))
			case '%':
				qt.Check(t, qt.Equals(arg.(*ast.Metadata).Name, w[1:]))
			case '#':
				qt.Check(t, qt.Equals(arg.(*ast.ClassReference).Name, w[1:]))
			default:
				q := arg.(*ast.QuotedExpression)
				qt.Check(t, qt.Equals(q.Expression.(*ast.Text).Value, w))
			}
		default:
			panic(fmt.Sprintf("unsupported argument %T", w))
		}
	}
}

func TestTrees(t *testing.T) {
	barBaz := &ast.QuotedExpression{
		Range: rng(7, 12),
		Quote: '\'',
		Expression: &ast.Metadata{
			Range: rng(8, 10),
			Item:  "Bar", ItemOffset: 10,
			Name: "Baz", NameOffset: 14,
		},
	}
	testCases := []struct {
		name string
		in   string
		opts Options
		want ast.Node
	}{{
		name: "Concat",
		in:   "abc$(Foo)cde@(baritem)510",
		opts: Items,
		want: &ast.Concat{Range: rng(0, 25), Nodes: []ast.Node{
			text(0, "abc", false),
			simpleProperty(3, "Foo"),
			text(9, "cde", false),
			simpleItem(12, "baritem"),
			text(22, "510", false),
		}},
	}, {
		name: "List",
		in:   "abc;$(Foo)cde;@(baritem);stuff",
		opts: ItemsAndLists,
		want: &ast.List{Range: rng(0, 30), Nodes: []ast.Node{
			text(0, "abc", true),
			&ast.Concat{Range: rng(4, 9), Nodes: []ast.Node{
				simpleProperty(4, "Foo"),
				text(10, "cde", false),
			}},
			simpleItem(14, "baritem"),
			text(25, "stuff", true),
		}},
	}, {
		name: "NoLists",
		in:   "abc;$(Foo)",
		opts: None,
		want: &ast.Concat{Range: rng(0, 10), Nodes: []ast.Node{
			text(0, "abc;", false),
			simpleProperty(4, "Foo"),
		}},
	}, {
		name: "EmptyListEntry",
		in:   "a;;b",
		opts: ItemsAndLists,
		want: &ast.List{Range: rng(0, 4), Nodes: []ast.Node{
			text(0, "a", true),
			text(2, "", true),
			text(3, "b", true),
		}},
	}, {
		name: "OnlySeparator",
		in:   ";",
		opts: ItemsAndLists,
		want: &ast.List{Range: rng(0, 1), Nodes: []ast.Node{
			text(0, "", true),
			text(1, "", true),
		}},
	}, {
		name: "TrailingSeparator",
		in:   "a;",
		opts: ItemsAndLists,
		want: &ast.List{Range: rng(0, 2), Nodes: []ast.Node{
			text(0, "a", true),
			text(2, "", true),
		}},
	}, {
		name: "ListWithEntities",
		in:   "a&apos;bc;$(Foo)c&#xA;de",
		opts: ItemsAndLists,
		want: &ast.List{Range: rng(0, 24), Nodes: []ast.Node{
			text(0, "a&apos;bc", false),
			&ast.Concat{Range: rng(10, 14), Nodes: []ast.Node{
				simpleProperty(10, "Foo"),
				text(16, "c&#xA;de", false),
			}},
		}},
	}, {
		name: "XmlEntities",
		in:   "&quot;;d&foo;bar",
		opts: Lists,
		want: &ast.List{Range: rng(0, 16), Nodes: []ast.Node{
			text(0, "&quot;", false),
			text(7, "d&foo;bar", false),
		}},
	}, {
		name: "ItemTransform",
		in:   "@(Foo->'%(Bar.Baz)')",
		opts: ItemsMetadataAndLists,
		want: &ast.Item{Range: rng(0, 20), Expression: &ast.ItemTransform{
			Range:     rng(2, 17),
			Target:    &ast.ItemName{Range: rng(2, 3), Name: "Foo"},
			Transform: barBaz,
		}},
	}, {
		name: "ItemTransformWithSeparator",
		in:   "@(Foo->'%(Bar.Baz)', '$(x)')",
		opts: ItemsMetadataAndLists,
		want: &ast.Item{Range: rng(0, 28), Expression: &ast.ItemTransform{
			Range:     rng(2, 25),
			Target:    &ast.ItemName{Range: rng(2, 3), Name: "Foo"},
			Transform: barBaz,
			Separator: &ast.QuotedExpression{Range: rng(21, 6), Quote: '\'', Expression: simpleProperty(22, "x")},
		}},
	}, {
		name: "FunctionChaining",
		in:   "$(Foo.Bar()[0].Baz(1,'hi'))",
		opts: ItemsMetadataAndLists,
		want: &ast.Property{Range: rng(0, 27), Expression: invocation(2, 24, ast.InstanceFunction,
			invocation(2, 12, ast.Indexer,
				invocation(2, 9, ast.InstanceFunction,
					&ast.PropertyName{Range: rng(2, 3), Name: "Foo"},
					function(6, "Bar"),
					arguments(9, 2),
				),
				nil,
				arguments(11, 3, &ast.IntLiteral{Range: rng(12, 1), Value: 0}),
			),
			function(15, "Baz"),
			arguments(18, 8,
				&ast.IntLiteral{Range: rng(19, 1), Value: 1},
				&ast.QuotedExpression{Range: rng(21, 4), Quote: '\'', Expression: text(22, "hi", true)},
			),
		)},
	}, {
		name: "ComplexArgs",
		in:   "$(Foo.Bar($(Baz), 'thing'))",
		opts: ItemsMetadataAndLists,
		want: &ast.Property{Range: rng(0, 27), Expression: invocation(2, 24, ast.InstanceFunction,
			&ast.PropertyName{Range: rng(2, 3), Name: "Foo"},
			function(6, "Bar"),
			arguments(9, 17,
				simpleProperty(10, "Baz"),
				&ast.QuotedExpression{Range: rng(18, 7), Quote: '\'', Expression: text(19, "thing", true)},
			),
		)},
	}, {
		name: "StaticFunction",
		in:   "$([Foo]::Bar())",
		want: &ast.Property{Range: rng(0, 15), Expression: invocation(2, 12, ast.StaticFunction,
			&ast.ClassReference{Range: rng(3, 3), Name: "Foo"},
			function(9, "Bar"),
			arguments(12, 2),
		)},
	}, {
		name: "MemberAccess",
		in:   "$(Foo.Length)",
		want: &ast.Property{Range: rng(0, 13), Expression: &ast.FunctionInvocation{
			Range:    rng(2, 10),
			Kind:     ast.InstanceFunction,
			Target:   &ast.PropertyName{Range: rng(2, 3), Name: "Foo"},
			Function: function(6, "Length"),
		}},
	}, {
		name: "ItemFunction",
		in:   "@(Foo->Bar(1))",
		opts: Items,
		want: &ast.Item{Range: rng(0, 14), Expression: invocation(2, 11, ast.ItemFunction,
			&ast.ItemName{Range: rng(2, 3), Name: "Foo"},
			function(7, "Bar"),
			arguments(10, 3, &ast.IntLiteral{Range: rng(11, 1), Value: 1}),
		)},
	}, {
		name: "RegistryKey",
		in:   `$(Registry:HKEY_LOCAL_MACHINE\Software\Microsoft\.NETFramework@InstallRoot)`,
		want: &ast.Property{Range: rng(0, 75), Expression: &ast.RegistryValue{
			Range: rng(2, 72),
			Path:  `HKEY_LOCAL_MACHINE\Software\Microsoft\.NETFramework@InstallRoot`,
		}},
	}, {
		name: "IncompleteProperty",
		in:   "$(Foo",
		want: &ast.IncompleteError{
			Range:  rng(0, 5),
			Kind:   ast.ExpectingRightParenOrPeriod,
			WasEOF: true,
			Node: &ast.Property{
				Range:      rng(0, 5),
				Expression: &ast.PropertyName{Range: rng(2, 3), Name: "Foo"},
			},
		},
	}, {
		name: "RecoveryAfterError",
		in:   "@(a-.",
		opts: ItemsAndLists,
		want: &ast.Concat{Range: rng(0, 5), Nodes: []ast.Node{
			&ast.IncompleteError{
				Range: rng(0, 4),
				Kind:  ast.ExpectingRightAngleBracket,
				Node: &ast.Item{
					Range:      rng(0, 3),
					Expression: &ast.ItemName{Range: rng(2, 1), Name: "a"},
				},
			},
			text(4, ".", false),
		}},
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, base := range []int{0, 123} {
				got := Parse(tc.in, tc.opts, base)
				want := clone(tc.want)
				shift(want, base)
				qt.Assert(t, qt.DeepEquals(got, want), qt.Commentf("base %d\n%s", base, pretty.Sprint(got)))
			}
		})
	}
}

func TestInvariants(t *testing.T) {
	inputs := []string{
		"abc;$(Foo)cde;@(baritem);stuff",
		"$(Foo.Bar()[0].Baz(1,'hi'))",
		"@(Foo->'%(Bar.Baz)', '$(x)')",
		"$([System.IO.Path]::Combine($(MSBuildThisFileDirectory), '..\\x.props'))",
		"a&apos;bc;$(Foo)c&#xA;de",
		"a&!pos;bc;$(Foo)c&#xA;de",
		"$(a.b(true,   .",
		"@(foo->'x', '",
		"$([ a . b . )",
		"%( Foo . Bar )x;%(Baz",
		"$(Foo) @(Bar->Distinct()->Count()) %(x.y)",
		"$(a b) $(c",
		";$(Foo);;@(Bar);",
	}
	for _, in := range inputs {
		for _, opts := range []Options{None, Items, ItemsMetadataAndLists} {
			n0 := Parse(in, opts, 0)
			checkRanges(t, n0, in, 0)
			n := Parse(in, opts, 77)
			checkRanges(t, n, in, 77)
			shift(n0, 77)
			qt.Assert(t, qt.DeepEquals(n, n0), qt.Commentf("%q %v", in, opts))
		}
	}
}

func TestBadEntityInList(t *testing.T) {
	n := Parse("a&!pos;bc;$(Foo)c&#xA;de", ItemsAndLists, 500)
	errs := ast.Errors(n)
	qt.Assert(t, qt.HasLen(errs, 1))
	kind, _, _ := ast.ErrorInfo(errs[0])
	qt.Assert(t, qt.Equals(kind, ast.IncompleteOrUnsupportedEntity))
}

func TestQuotedAllowsMetadata(t *testing.T) {
	n := Parse("%(Baz)", None, 0)
	kind, _, ok := ast.ErrorInfo(n)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(kind, ast.MetadataDisallowed))

	n = Parse("$(Foo.Bar('%(Baz)'))", None, 0)
	qt.Assert(t, qt.HasLen(ast.Errors(n), 0))
	inv := n.(*ast.Property).Expression.(*ast.FunctionInvocation)
	q := inv.ArgumentList().Arguments[0].(*ast.QuotedExpression)
	qt.Check(t, qt.Equals(q.Expression.(*ast.Metadata).Name, "Baz"))
}

func TestParseEmpty(t *testing.T) {
	qt.Assert(t, qt.IsNil(Parse("", ItemsMetadataAndLists, 0)))
	qt.Assert(t, qt.IsNil(ParseCondition("   ", 0)))
}

// checkRanges verifies that every node lies within the text and within its
// parent.
func checkRanges(t *testing.T, root ast.Node, text string, base int) {
	t.Helper()
	if root == nil {
		return
	}
	var stack []ast.Node
	ast.Walk(root, func(n ast.Node) bool {
		qt.Check(t, qt.IsTrue(n.Pos() >= base && n.End() <= base+len(text) && n.Len() >= 0),
			qt.Commentf("%q: %T [%d,%d) outside text", text, n, n.Pos(), n.End()))
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			qt.Check(t, qt.IsTrue(parent.Pos() <= n.Pos() && n.End() <= parent.End()),
				qt.Commentf("%q: %T [%d,%d) outside parent %T [%d,%d)", text, n, n.Pos(), n.End(), parent, parent.Pos(), parent.End()))
		}
		stack = append(stack, n)
		return true
	}, func(ast.Node) {
		stack = stack[:len(stack)-1]
	})
}

func rng(offset, length int) ast.Range { return ast.Range{Offset: offset, Length: length} }

func text(offset int, value string, pure bool) *ast.Text {
	return &ast.Text{Range: rng(offset, len(value)), Value: value, IsPure: pure}
}

func simpleProperty(offset int, name string) *ast.Property {
	return &ast.Property{
		Range:      rng(offset, len(name)+3),
		Expression: &ast.PropertyName{Range: rng(offset+2, len(name)), Name: name},
	}
}

func simpleItem(offset int, name string) *ast.Item {
	return &ast.Item{
		Range:      rng(offset, len(name)+3),
		Expression: &ast.ItemName{Range: rng(offset+2, len(name)), Name: name},
	}
}

func function(offset int, name string) *ast.FunctionName {
	return &ast.FunctionName{Range: rng(offset, len(name)), Name: name}
}

func arguments(offset, length int, args ...ast.Node) *ast.ArgumentList {
	return &ast.ArgumentList{Range: rng(offset, length), Arguments: args}
}

func invocation(offset, length int, kind ast.InvocationKind, target ast.Node, fn *ast.FunctionName, args ast.Node) *ast.FunctionInvocation {
	return &ast.FunctionInvocation{Range: rng(offset, length), Kind: kind, Target: target, Function: fn, Arguments: args}
}

// shift moves every offset in the tree rooted at n by k.
func shift(n ast.Node, k int) {
	if n == nil {
		return
	}
	ast.Walk(n, func(n ast.Node) bool {
		r := reflect.ValueOf(n).Elem().FieldByName("Range")
		off := r.FieldByName("Offset")
		off.SetInt(off.Int() + int64(k))
		if m, ok := n.(*ast.Metadata); ok {
			m.NameOffset += k
			if m.IsQualified() {
				m.ItemOffset += k
			}
		}
		return true
	}, nil)
}

// clone returns a deep copy of the tree rooted at n, so that shared
// expectations can be shifted independently.
func clone(n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	return cloneValue(reflect.ValueOf(n)).Interface().(ast.Node)
}

func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		c := reflect.New(v.Type().Elem())
		c.Elem().Set(cloneValue(v.Elem()))
		return c
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		c := reflect.New(v.Type()).Elem()
		c.Set(cloneValue(v.Elem()))
		return c
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			c.Field(i).Set(cloneValue(v.Field(i)))
		}
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			c.Index(i).Set(cloneValue(v.Index(i)))
		}
		return c
	}
	return v
}
