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

package diag

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"msbuildlang.org/go/msbuild/token"
)

func TestListSortAndPrint(t *testing.T) {
	f := token.NewFile("x.proj", "<Project>\n  <Foo/>\n</Project>\n")
	var list List
	list.AddNew(f, UnknownAttribute, Warning, token.NewSpan(13, 3), "unknown %q", "Foo")
	list.AddNew(f, EmptySdkAttribute, Error, token.NewSpan(1, 7), "empty SDK")
	list.Sort()

	qt.Assert(t, qt.Equals(list[0].Code, EmptySdkAttribute))
	qt.Assert(t, qt.IsTrue(list.HasErrors()))
	qt.Assert(t, qt.HasLen(list.Filter(UnknownAttribute), 1))

	var buf strings.Builder
	Print(&buf, list)
	qt.Assert(t, qt.Equals(buf.String(), `x.proj:1:2: error EmptySdkAttribute: empty SDK
x.proj:2:4: warning UnknownAttribute: unknown "Foo"
`))
	qt.Assert(t, qt.ErrorMatches(list.Err(), `x.proj:1:2: empty SDK \(and 1 more errors\)`))
}

func TestWarningsAreNotErrors(t *testing.T) {
	var list List
	list.AddNew(nil, InvalidValue, Warning, token.NewSpan(0, 1), "odd")
	qt.Assert(t, qt.IsNil(list.Err()))
	qt.Assert(t, qt.Equals(list[0].Error(), "odd"))
}

func TestFprintConfig(t *testing.T) {
	f := token.NewFile("src/x.proj", "<Project Foo='1' />")
	var list List
	list.AddNew(f, UnknownAttribute, Warning, token.NewSpan(9, 3), "unknown attribute %q", "Foo")
	list.AddNew(nil, MissingProject, Error, token.NewSpan(0, 0), "no project")

	var buf strings.Builder
	Fprint(&buf, list, &Config{
		Filename: func(name string) string { return strings.TrimPrefix(name, "src/") },
		Format: func(w io.Writer, format string, args ...any) {
			fmt.Fprintf(w, "> "+format, args...)
		},
	})
	qt.Assert(t, qt.Equals(buf.String(), `> x.proj:1:10: warning UnknownAttribute: unknown attribute "Foo"
> [0,0): error MissingProject: no project
`))
}
