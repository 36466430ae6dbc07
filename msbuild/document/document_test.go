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

package document_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"msbuildlang.org/go/msbuild/diag"
	"msbuildlang.org/go/msbuild/document"
	"msbuildlang.org/go/msbuild/parser"
	"msbuildlang.org/go/msbuild/schema"
)

var stamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func archiveFS(archive string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, f := range txtar.Parse([]byte(archive)).Files {
		fsys[f.Name] = &fstest.MapFile{Data: f.Data, ModTime: stamp}
	}
	return fsys
}

func open(t *testing.T, fsys fstest.MapFS, name string, cfg *document.Config) *document.Document {
	t.Helper()
	loader := &document.FSLoader{FS: fsys}
	if cfg == nil {
		cfg = &document.Config{}
	}
	cfg.SdkResolver = &document.DirSdkResolver{FS: fsys, Roots: []string{"sdks"}}
	cfg.NewImportResolver = loader.ImportResolver
	doc, _, err := document.Open(context.Background(), cfg, name, string(fsys[name].Data))
	qt.Assert(t, qt.IsNil(err))
	return doc
}

type importInfo struct {
	Filename string
	Implicit bool
	Resolved bool
}

func imports(doc *document.Document) []importInfo {
	var infos []importInfo
	for _, imp := range doc.Imports {
		infos = append(infos, importInfo{imp.Filename, imp.IsImplicit, imp.IsResolved()})
	}
	return infos
}

func codes(doc *document.Document) []diag.Code {
	var c []diag.Code
	for _, d := range doc.Diagnostics {
		c = append(c, d.Code)
	}
	return c
}

const sdkArchive = `
-- sdks/My.Sdk/Sdk/Sdk.props --
<Project>
  <PropertyGroup>
    <OptimizeIt>false</OptimizeIt>
  </PropertyGroup>
</Project>
-- sdks/My.Sdk/Sdk/Sdk.props.buildschema.yaml --
properties:
  OptimizeIt:
    description: Whether to optimize.
    kind: bool
-- sdks/My.Sdk/Sdk/Sdk.targets --
<Project>
  <Target Name="SdkBuild" />
</Project>
-- sdks/Versioned/1.0.0/Sdk/Sdk.props --
<Project />
-- sdks/Versioned/1.2.0/Sdk/Sdk.props --
<Project />
-- sdks/Versioned/2.0.0/Sdk/Sdk.props --
<Project />
`

func TestSdkImportOrder(t *testing.T) {
	fsys := archiveFS(sdkArchive + `
-- proj/a.proj --
<Project Sdk="My.Sdk">
  <Import Project="b.props" />
  <Import Project="missing.props" />
</Project>
-- proj/b.props --
<Project>
  <ItemGroup><Widget Include="w" /></ItemGroup>
</Project>
`)
	doc := open(t, fsys, "proj/a.proj", nil)
	want := []importInfo{
		{"sdks/My.Sdk/Sdk/Sdk.props", true, true},
		{"proj/b.props", false, true},
		{"proj/missing.props", false, false},
		{"sdks/My.Sdk/Sdk/Sdk.targets", true, true},
	}
	if diff := cmp.Diff(want, imports(doc)); diff != "" {
		t.Errorf("imports (-want +got):\n%s", diff)
	}
	qt.Check(t, qt.DeepEquals(codes(doc), []diag.Code{diag.UnresolvedImport}))
	qt.Check(t, qt.Equals(doc.Imports[1].Timestamp, stamp))

	qt.Check(t, qt.IsNotNil(doc.GetSchemas(false).Item("Widget")))
	qt.Check(t, qt.IsNotNil(doc.GetSchemas(false).Target("SdkBuild")))
	qt.Check(t, qt.DeepEquals(doc.FilesSeenIn(schema.NewItem("Widget", "")), []string{"proj/b.props"}))
}

func TestSdkElements(t *testing.T) {
	fsys := archiveFS(sdkArchive + `
-- a.proj --
<Project>
  <Sdk Name="Versioned" MinimumVersion="1.1" />
  <Sdk Name="Versioned" Version="1.0.0" />
</Project>
`)
	doc := open(t, fsys, "a.proj", nil)
	var got []string
	for _, imp := range doc.Imports {
		if imp.IsResolved() {
			got = append(got, imp.Filename)
		}
	}
	qt.Check(t, qt.DeepEquals(got, []string{
		"sdks/Versioned/2.0.0/Sdk/Sdk.props",
		"sdks/Versioned/1.0.0/Sdk/Sdk.props",
	}))
	qt.Check(t, qt.HasLen(doc.Diagnostics, 0))
}

func TestSdkFourPartVersions(t *testing.T) {
	fsys := archiveFS(`
-- sdks/X/0.9/Sdk/Sdk.props --
<Project />
-- sdks/X/1.2.3.4/Sdk/Sdk.props --
<Project />
-- sdks/X/1.2.3.9/Sdk/Sdk.props --
<Project />
-- sdks/X/1.2.3.10/Sdk/Sdk.props --
<Project />
-- a.proj --
<Project Sdk="X/min=1.0">
</Project>
`)
	r := &document.DirSdkResolver{FS: fsys, Roots: []string{"sdks"}}
	for _, tc := range []struct {
		min  string
		want string
	}{
		{"1.0", "sdks/X/1.2.3.10/Sdk"},
		{"0.1", "sdks/X/1.2.3.10/Sdk"},
		{"1.2.3.10", "sdks/X/1.2.3.10/Sdk"},
		{"1.2.4", ""},
	} {
		dir, ok := r.ResolveSdk(schema.SdkReference{Name: "X", MinimumVersion: tc.min})
		qt.Check(t, qt.Equals(dir, tc.want), qt.Commentf("min=%s", tc.min))
		qt.Check(t, qt.Equals(ok, tc.want != ""))
	}

	doc := open(t, fsys, "a.proj", nil)
	qt.Check(t, qt.HasLen(doc.Diagnostics, 0))
	qt.Assert(t, qt.HasLen(doc.Imports, 2))
	qt.Check(t, qt.Equals(doc.Imports[0].Filename, "sdks/X/1.2.3.10/Sdk/Sdk.props"))
	qt.Check(t, qt.IsTrue(doc.Imports[0].IsResolved()))
}

func TestSdkDiagnostics(t *testing.T) {
	fsys := archiveFS(sdkArchive + `
-- a.proj --
<Project Sdk="My.Sdk; ;Nope.Sdk">
</Project>
`)
	doc := open(t, fsys, "a.proj", nil)
	qt.Check(t, qt.DeepEquals(codes(doc), []diag.Code{diag.EmptySdkAttribute, diag.UnresolvedSdk}))
	qt.Check(t, qt.HasLen(doc.Imports, 2))
}

func TestImportCycle(t *testing.T) {
	fsys := archiveFS(`
-- a.proj --
<Project>
  <Import Project="b.props" />
  <Import Project="a.proj" />
</Project>
-- b.props --
<Project>
  <Import Project="a.proj" />
</Project>
`)
	doc := open(t, fsys, "a.proj", nil)
	qt.Assert(t, qt.HasLen(doc.Imports, 2))
	qt.Check(t, qt.DeepEquals(codes(doc), []diag.Code{diag.ImportCycle}))

	b := doc.Imports[0].Document
	qt.Assert(t, qt.IsNotNil(b))
	err := b.Imports[0].Err
	qt.Check(t, qt.ErrorIs(err, document.ErrImportCycle))
	qt.Check(t, qt.ErrorMatches(err, `import cycle: a.proj -> b.props -> a.proj`))
	qt.Check(t, qt.IsTrue(errors.Is(doc.Imports[1].Err, document.ErrImportCycle)))
}

func TestImportExpansion(t *testing.T) {
	fsys := archiveFS(`
-- src/app.proj --
<Project>
  <PropertyGroup>
    <Common>$(MSBuildThisFileDirectory)common</Common>
    <Common Condition="'$(X)' != ''">$(MSBuildThisFileDirectory)other</Common>
  </PropertyGroup>
  <Import Project="$(Common)\base.props" />
  <Import Project="$(Configuration).props" />
  <Import Project="parts\*.props" />
  <Import Project="@(Foo)" />
</Project>
-- src/common/base.props --
<Project />
-- src/other/base.props --
<Project />
-- src/Debug.props --
<Project />
-- src/parts/x.props --
<Project />
-- src/parts/y.props --
<Project />
`)
	cfg := &document.Config{
		GlobalProperties: map[string]string{"configuration": "Debug"},
		Properties:       document.NewPropertyValueCollector(),
	}
	doc := open(t, fsys, "src/app.proj", cfg)
	want := []importInfo{
		{"src/common/base.props", false, true},
		{"src/other/base.props", false, true},
		{"src/Debug.props", false, true},
		{"src/parts/x.props", false, true},
		{"src/parts/y.props", false, true},
		{"", false, false},
	}
	if diff := cmp.Diff(want, imports(doc)); diff != "" {
		t.Errorf("imports (-want +got):\n%s", diff)
	}
	qt.Check(t, qt.DeepEquals(cfg.Properties.Values("COMMON"), []string{"/src/common", "/src/other"}))
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []diag.Code
	}{{
		name: "clean",
		text: `<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003"><Target Name="Build" /></Project>`,
	}, {
		name: "missing project",
		text: `<Other />`,
		want: []diag.Code{diag.MissingProject},
	}, {
		name: "unexpected element",
		text: `<Project><Bogus /></Project>`,
		want: []diag.Code{diag.UnexpectedElement},
	}, {
		name: "unknown attribute",
		text: `<Project><Target Name="Build" Frob="1" /></Project>`,
		want: []diag.Code{diag.UnknownAttribute},
	}, {
		name: "unterminated",
		text: `<Project><Target Name="Build">`,
		want: []diag.Code{diag.UnterminatedElement, diag.UnterminatedElement},
	}, {
		name: "expression error",
		text: `<Project><PropertyGroup><A>$(B</A></PropertyGroup></Project>`,
		want: []diag.Code{diag.ExpressionError},
	}, {
		name: "invalid bool",
		text: `<Project><Target Name="Build" KeepDuplicateOutputs="maybe" /></Project>`,
		want: []diag.Code{diag.InvalidValue},
	}, {
		name: "expressions are not validated",
		text: `<Project><Target Name="Build" KeepDuplicateOutputs="$(Keep)" /></Project>`,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, _, err := document.Open(context.Background(), nil, "a.proj", tc.text)
			qt.Assert(t, qt.IsNil(err))
			qt.Check(t, qt.DeepEquals(codes(doc), tc.want))
		})
	}
}

func TestDeclaredSchemaValidation(t *testing.T) {
	fsys := archiveFS(sdkArchive + `
-- a.proj --
<Project Sdk="My.Sdk">
  <PropertyGroup>
    <OptimizeIt>maybe</OptimizeIt>
    <EnableThing>maybe</EnableThing>
  </PropertyGroup>
</Project>
`)
	doc := open(t, fsys, "a.proj", nil)
	qt.Assert(t, qt.DeepEquals(codes(doc), []diag.Code{diag.InvalidValue}))
	qt.Check(t, qt.Equals(doc.Diagnostics[0].Pos.Line, 3))
}

func TestInferredSchema(t *testing.T) {
	const text = `<Project>
  <ItemGroup>
    <Compile Include="@(Source)" Link="%(Compile.Dir)%(Name)" />
  </ItemGroup>
  <Target Name="Build" DependsOnTargets="Prepare">
    <Tool Input="$(ToolPath)">
      <Output TaskParameter="Result" ItemName="Results" PropertyName="LastResult" />
    </Tool>
  </Target>
  <UsingTask TaskName="My.Tasks.Inline" TaskFactory="CodeTaskFactory">
    <ParameterGroup>
      <Files Output="true" Required="TRUE" />
    </ParameterGroup>
    <Task>code</Task>
  </UsingTask>
</Project>`
	doc, _, err := document.Open(context.Background(), nil, "a.proj", text)
	qt.Assert(t, qt.IsNil(err))
	inf := doc.InferredSchema
	for _, item := range []string{"Compile", "Source", "Results"} {
		qt.Check(t, qt.IsNotNil(inf.Item(item)), qt.Commentf("item %s", item))
	}
	for _, prop := range []string{"ToolPath", "LastResult"} {
		qt.Check(t, qt.IsNotNil(inf.Property(prop)), qt.Commentf("property %s", prop))
	}
	qt.Check(t, qt.IsNotNil(inf.Metadata("Compile", "Dir")))
	qt.Check(t, qt.IsNotNil(inf.Metadata("Compile", "Name")))
	qt.Check(t, qt.IsNotNil(inf.Target("Build")))
	qt.Check(t, qt.IsNotNil(inf.Task("Tool")))

	task := inf.Task("Inline")
	qt.Assert(t, qt.IsNotNil(task))
	p := task.Parameter("Files")
	qt.Assert(t, qt.IsNotNil(p))
	qt.Check(t, qt.IsTrue(p.IsOutput))
	qt.Check(t, qt.IsTrue(p.IsRequired))
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := document.Open(ctx, nil, "a.proj", `<Project><Target Name="A" /></Project>`)
	qt.Assert(t, qt.ErrorIs(err, context.Canceled))
}

func TestTrackedProperties(t *testing.T) {
	fsys := archiveFS(`
-- a.proj --
<Project>
  <Import Project="$(Root.Trim())\x.props" />
  <Import Project="$(Plain)\y.props" />
  <UsingTask TaskName="T" AssemblyFile="$([System.IO.Path]::Combine($(TaskDir), 'a.dll'))" />
</Project>
`)
	props := document.NewPropertyValueCollector()
	open(t, fsys, "a.proj", &document.Config{Properties: props})
	for _, name := range []string{"Root", "Plain", "TaskDir"} {
		qt.Check(t, qt.IsTrue(props.IsMarked(name)), qt.Commentf("%s", name))
	}
	qt.Check(t, qt.IsFalse(props.IsMarked("Trim")))
}

func TestPropertyValueCollector(t *testing.T) {
	c := document.NewPropertyValueCollector()
	qt.Check(t, qt.IsFalse(c.Collect("Dir", "a")))
	c.Mark("Dir")
	qt.Check(t, qt.IsTrue(c.IsMarked("DIR")))
	qt.Check(t, qt.IsTrue(c.Collect("dir", "a")))
	qt.Check(t, qt.IsTrue(c.Collect("Dir", "b")))
	qt.Check(t, qt.IsTrue(c.Collect("Dir", "a")))
	qt.Check(t, qt.DeepEquals(c.Values("Dir"), []string{"a", "b"}))
}

func TestAnnotations(t *testing.T) {
	fsys := archiveFS(sdkArchive + `
-- a.proj --
<Project Sdk="My.Sdk">
  <Import Project="b.props" />
</Project>
-- b.props --
<Project />
`)
	loader := &document.FSLoader{FS: fsys}
	cfg := &document.Config{
		SdkResolver:       &document.DirSdkResolver{FS: fsys, Roots: []string{"sdks"}},
		NewImportResolver: loader.ImportResolver,
	}
	doc, xml, err := document.Open(context.Background(), cfg, "a.proj", string(fsys["a.proj"].Data))
	qt.Assert(t, qt.IsNil(err))

	project := xml.Root()
	sdk := project.Attribute("Sdk")
	nav := doc.Annotations.At(sdk, sdk.ValueOffset+2)
	qt.Assert(t, qt.IsNotNil(nav))
	qt.Check(t, qt.IsTrue(nav.IsSdk))
	qt.Check(t, qt.DeepEquals(nav.Paths, []string{"sdks/My.Sdk/Sdk"}))

	var imp *document.Navigation
	for el := range project.Elements() {
		att := el.Attribute("Project")
		imp = doc.Annotations.At(att, att.ValueOffset)
	}
	qt.Assert(t, qt.IsNotNil(imp))
	qt.Check(t, qt.DeepEquals(imp.Paths, []string{"b.props"}))
}

func TestPaths(t *testing.T) {
	cfg := &document.Config{GlobalProperties: map[string]string{"Out": "bin"}}
	doc, _, err := document.Open(context.Background(), cfg, "src/a.proj", `<Project />`)
	qt.Assert(t, qt.IsNil(err))

	tests := []struct {
		expr string
		want []string
	}{
		{`b.cs`, []string{"src/b.cs"}},
		{`$(MSBuildThisFileDirectory)sub\x.cs`, []string{"src/sub/x.cs"}},
		{`$(Out)/$(MSBuildProjectName).dll`, []string{"src/bin/a.dll"}},
		{`../lib.props`, []string{"lib.props"}},
		{`@(Compile)`, nil},
	}
	for _, tc := range tests {
		got := doc.Paths(parser.Parse(tc.expr, parser.Items, 0))
		qt.Check(t, qt.DeepEquals(got, tc.want), qt.Commentf("%s", tc.expr))
	}
}
