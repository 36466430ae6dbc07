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

package ast_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/parser"
)

func TestUnescape(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{"abc", "abc"},
		{"a&amp;b", "a&b"},
		{"&lt;&gt;&quot;&apos;", `<>"'`},
		{"&#x41;&#66;", "AB"},
		{"&foo;", "&foo;"},
		{"a&b", "a&b"},
		{"&#0;", "&#0;"},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(ast.Unescape(tc.in), tc.out), qt.Commentf("%q", tc.in))
	}
}

func TestScanEntity(t *testing.T) {
	testCases := []struct {
		in string
		n  int
		ok bool
	}{
		{"&amp;", 5, true},
		{"&#10;", 5, true},
		{"&#xAf;", 6, true},
		{"&amp", 4, false},
		{"&#x;", 3, false},
		{"&#12a;", 4, false},
		{"& ", 1, false},
		{"&", 1, false},
	}
	for _, tc := range testCases {
		n, ok := ast.ScanEntity(tc.in, 0)
		qt.Check(t, qt.Equals(n, tc.n), qt.Commentf("%q", tc.in))
		qt.Check(t, qt.Equals(ok, tc.ok), qt.Commentf("%q", tc.in))
	}
}

func TestConstValues(t *testing.T) {
	v, ok := ast.AsConstBool(parser.Parse("TRUE", parser.None, 0))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(v))

	_, ok = ast.AsConstBool(parser.Parse("yes", parser.None, 0))
	qt.Assert(t, qt.IsFalse(ok))

	_, ok = ast.AsConstBool(parser.Parse("$(x)", parser.None, 0))
	qt.Assert(t, qt.IsFalse(ok))

	s, ok := ast.AsConstString(parser.Parse("a&amp;b", parser.None, 0))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(s, "a&amp;b"))

	qt.Assert(t, qt.IsTrue(ast.IsNullOrEmpty(nil)))
	qt.Assert(t, qt.IsTrue(ast.IsNullOrWhitespace(parser.Parse(" &#x20; ", parser.None, 0))))
	qt.Assert(t, qt.IsFalse(ast.IsNullOrWhitespace(parser.Parse(" x ", parser.None, 0))))
}

func TestFprint(t *testing.T) {
	n := parser.Parse("$(Foo.Bar(1))", parser.None, 0)
	var b strings.Builder
	qt.Assert(t, qt.IsNil(ast.Fprint(&b, n)))
	qt.Assert(t, qt.Equals(b.String(), `Property [0,13)
  FunctionInvocation [2,12) instance
    PropertyName [2,5) Foo
    FunctionName [6,9) Bar
    ArgumentList [9,12)
      IntLiteral [10,11) 1
`))

	qt.Assert(t, qt.Equals(ast.Sprint(parser.Parse("$(", parser.None, 0)), `IncompleteError [0,2) ExpectingPropertyName eof
  Property [0,2)
`))
}

func TestFind(t *testing.T) {
	const in = "$(Foo.Bar($(Baz), 'x'))"
	root := parser.Parse(in, parser.None, 0)

	name := func(n ast.Node) string {
		switch x := n.(type) {
		case *ast.PropertyName:
			return "prop " + x.Name
		case *ast.FunctionName:
			return "func " + x.Name
		case *ast.Text:
			return "text " + x.Value
		case nil:
			return "nil"
		}
		return fmt.Sprintf("%T", n)
	}
	testCases := []struct {
		offset int
		want   string
	}{
		{3, "prop Foo"},
		{5, "prop Foo"},
		{7, "func Bar"},
		{12, "prop Baz"},
		{19, "text x"},
		{100, "nil"},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(name(ast.Find(root, tc.offset)), tc.want), qt.Commentf("offset %d", tc.offset))
	}

	path := ast.FindPath(root, 12)
	qt.Assert(t, qt.HasLen(path, 5))
	inner, ok := ast.Parent(path).(*ast.Property)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(inner.Name(), "Baz"))

	foo := ast.Find(root, 3)
	x := ast.Find(root, 19)
	_, ok = ast.CommonAncestor(root, foo, x).(*ast.FunctionInvocation)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParentSkipsIncomplete(t *testing.T) {
	root := parser.Parse("$(Foo", parser.None, 0)
	path := ast.FindPath(root, 3)
	qt.Assert(t, qt.HasLen(path, 3))
	_, ok := ast.Parent(path).(*ast.Property)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNil(ast.Parent(path[:2])))
}

func TestDescendants(t *testing.T) {
	root := parser.Parse("$(a);@(b);%(c)", parser.ItemsMetadataAndLists, 0)
	var count int
	for range ast.Descendants(root) {
		count++
	}
	// List, Property, PropertyName, Item, ItemName, Metadata.
	qt.Assert(t, qt.Equals(count, 6))

	count = 0
	for range ast.Descendants(root) {
		count++
		if count == 2 {
			break
		}
	}
	qt.Assert(t, qt.Equals(count, 2))
	qt.Assert(t, qt.HasLen(ast.Errors(root), 0))
}
