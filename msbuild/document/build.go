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

package document

import (
	"context"
	"errors"
	"path"
	"strings"

	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/diag"
	"msbuildlang.org/go/msbuild/parser"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/syntax"
	"msbuildlang.org/go/msbuild/token"
	"msbuildlang.org/go/msbuild/visitor"
	"msbuildlang.org/go/msbuild/xmldom"
)

// ErrImportCycle is wrapped by the error of an import that would load a
// file that is already being loaded.
var ErrImportCycle = errors.New("import cycle")

// Build populates the document from its XML tree. It resolves the SDKs of
// the root Project element, adds their Sdk.props imports, visits the body
// of the project, loading explicit imports and recording symbols, and then
// adds the Sdk.targets imports.
//
// Build returns an error only if ctx is canceled.
func (d *Document) Build(ctx context.Context, xml *xmldom.Document, cfg *Config) error {
	if cfg == nil || cfg.Properties == nil {
		cfg = cfg.forProject(d.Filename)
	}
	d.File = token.NewFile(d.Filename, xml.Text)
	d.config = cfg

	var project *xmldom.Element
	for _, el := range xml.Nodes {
		if el.Name == "Project" {
			project = el
			break
		}
	}
	if project == nil {
		d.report(diag.MissingProject, diag.Error, token.Span{}, "missing Project element")
		return nil
	}

	sdks := d.resolveSdks(cfg, project)
	trackProperties(cfg.Properties, project)
	resolver := cfg.importResolver(d.Filename)

	for _, sdk := range sdks {
		d.addSdkImport(ctx, resolver, sdk.id, "Sdk.props")
	}

	b := &schemaBuilder{doc: d, cfg: cfg, resolver: resolver, ctx: ctx}
	w := &visitor.Walker{Schemas: d.GetSchemas(false), Handler: b}
	if err := w.Walk(ctx, project, nil); err != nil {
		return err
	}

	for _, sdk := range sdks {
		d.addSdkImport(ctx, resolver, sdk.id, "Sdk.targets")
	}
	d.Diagnostics.Sort()
	return ctx.Err()
}

// Paths returns the files that a path expression in the document may
// refer to. Properties are expanded as they are for imports. Paths returns
// nil if the expression cannot be evaluated.
func (d *Document) Paths(n ast.Node) []string {
	cfg := d.config
	if cfg == nil {
		cfg = (*Config)(nil).forProject(d.Filename)
	}
	values, ok := cfg.expand(n, d.Filename)
	if !ok {
		return nil
	}
	return splitPaths(path.Dir(d.Filename), values)
}

func (d *Document) report(code diag.Code, sev diag.Severity, span token.Span, format string, args ...any) {
	if d.IsToplevel {
		d.Diagnostics.AddNew(d.File, code, sev, span, format, args...)
	}
}

func (d *Document) addSdkImport(ctx context.Context, resolver ImportResolver, sdk, file string) {
	imports := resolver.Resolve(ctx, file, sdk)
	if len(imports) == 0 {
		return
	}
	imp := imports[0]
	imp.IsImplicit = true
	d.AddImport(imp)
}

type sdkRef struct {
	id   string
	span token.Span
}

// resolveSdks returns the SDKs of the Sdk attribute and Sdk elements of
// the project that resolve.
func (d *Document) resolveSdks(cfg *Config, project *xmldom.Element) []sdkRef {
	var sdks []sdkRef
	resolve := func(n xmldom.Node, id string, span token.Span) {
		ref, err := schema.ParseSdkReference(id)
		if err != nil {
			d.report(diag.UnresolvedSdk, diag.Error, span, "invalid SDK reference %q: %v", id, err)
			return
		}
		dir, ok := cfg.resolveSdk(ref)
		if !ok {
			cfg.logger().Debug("SDK not found", "sdk", id, "file", d.Filename)
			d.report(diag.UnresolvedSdk, diag.Error, span, "could not resolve SDK %q", id)
			return
		}
		sdks = append(sdks, sdkRef{id: id, span: span})
		if d.IsToplevel {
			d.Annotations.Add(n, &Navigation{Span: span, Paths: []string{dir}, IsSdk: true})
		}
	}

	if att := attributeFold(project, "Sdk"); att != nil && att.Value != "" {
		offset := att.ValueOffset
		if !d.IsToplevel {
			offset = att.Span().Start
		}
		for _, seg := range splitSdks(att.Value, offset) {
			if seg.id == "" {
				d.report(diag.EmptySdkAttribute, diag.Warning, seg.span, "empty SDK reference")
				continue
			}
			resolve(att, seg.id, seg.span)
		}
	}

	for el := range project.Elements() {
		if !strings.EqualFold(el.Name, "Sdk") {
			continue
		}
		name := attributeFold(el, "Name")
		if name == nil || strings.TrimSpace(name.Value) == "" {
			continue
		}
		id := strings.TrimSpace(name.Value)
		if v := attributeFold(el, "Version"); v != nil && strings.TrimSpace(v.Value) != "" {
			id += "/" + strings.TrimSpace(v.Value)
		} else if v := attributeFold(el, "MinimumVersion"); v != nil && strings.TrimSpace(v.Value) != "" {
			id += "/min=" + strings.TrimSpace(v.Value)
		}
		resolve(name, id, token.NewSpan(name.ValueOffset, len(name.Value)))
	}
	return sdks
}

// splitSdks splits a semicolon separated list of SDK references, trimming
// each. Empty entries have an empty id and the span of the whole entry.
func splitSdks(value string, offset int) []sdkRef {
	var refs []sdkRef
	start := 0
	for {
		end := strings.IndexByte(value[start:], ';')
		if end < 0 {
			end = len(value)
		} else {
			end += start
		}
		s, e := start, end
		for s < e && isSpace(value[s]) {
			s++
		}
		for e > s && isSpace(value[e-1]) {
			e--
		}
		if e > s {
			refs = append(refs, sdkRef{id: value[s:e], span: token.Span{Start: offset + s, End: offset + e}})
		} else {
			refs = append(refs, sdkRef{span: token.Span{Start: offset + start, End: offset + end}})
		}
		if end == len(value) {
			return refs
		}
		start = end + 1
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// trackProperties marks the properties that the project's import paths
// and task assembly files depend on.
func trackProperties(props *PropertyValueCollector, project *xmldom.Element) {
	mark := func(value string) {
		for n := range ast.Descendants(parser.Parse(value, parser.None, 0)) {
			// Includes the targets of property functions.
			if p, ok := n.(*ast.PropertyName); ok {
				props.Mark(p.Name)
			}
		}
	}
	for el := range project.Elements() {
		var att *xmldom.Attribute
		switch {
		case strings.EqualFold(el.Name, "Import"):
			att = attributeFold(el, "Project")
		case strings.EqualFold(el.Name, "UsingTask"):
			att = attributeFold(el, "AssemblyFile")
		}
		if att != nil && att.HasValue {
			mark(att.Value)
		}
	}
}

func attributeFold(el *xmldom.Element, name string) *xmldom.Attribute {
	for _, a := range el.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// schemaBuilder records the symbols of a document in its inferred schema,
// loads its imports and reports problems in its values.
type schemaBuilder struct {
	visitor.NopHandler
	doc      *Document
	cfg      *Config
	resolver ImportResolver
	ctx      context.Context
}

func (b *schemaBuilder) ResolvedElement(el *xmldom.Element, syn *syntax.Element, sym schema.TypedSymbol) bool {
	inf := b.doc.InferredSchema
	switch syn.Kind() {
	case syntax.Item, syntax.ItemDefinition:
		inf.SeeItem(el.Name)
	case syntax.Property:
		inf.SeeProperty(el.Name)
	case syntax.Metadata:
		if el.Parent != nil {
			inf.SeeMetadata(el.Parent.Name, el.Name)
		}
	case syntax.Task:
		inf.SeeTask(el.Name)
	case syntax.Target:
		if name := attributeFold(el, "Name"); name != nil && strings.TrimSpace(name.Value) != "" {
			inf.SeeTarget(strings.TrimSpace(name.Value))
		}
	case syntax.UsingTask:
		if name := attributeFold(el, "TaskName"); name != nil {
			if task := lastSegment(name.Value); task != "" {
				inf.SeeTask(task)
			}
		}
	case syntax.Parameter:
		b.seeParameter(el)
	case syntax.Import:
		b.resolveImport(el)
	}
	if !el.Ended && !el.SelfClosing {
		b.doc.report(diag.UnterminatedElement, diag.Warning, el.NameSpan, "element %s is not closed", el.Name)
	}
	return true
}

// seeParameter records a parameter of an inline task declared by
// UsingTask/ParameterGroup/Parameter.
func (b *schemaBuilder) seeParameter(el *xmldom.Element) {
	group := el.Parent
	if group == nil || group.Parent == nil {
		return
	}
	name := attributeFold(group.Parent, "TaskName")
	if name == nil {
		return
	}
	taskName := lastSegment(name.Value)
	if taskName == "" {
		return
	}
	p := b.doc.InferredSchema.SeeTask(taskName).AddParameter(el.Name, "", schema.Unknown)
	if v := attributeFold(el, "Output"); v != nil {
		p.IsOutput, _ = ast.AsConstBool(&ast.Text{Value: strings.TrimSpace(v.Value)})
	}
	if v := attributeFold(el, "Required"); v != nil {
		p.IsRequired, _ = ast.AsConstBool(&ast.Text{Value: strings.TrimSpace(v.Value)})
	}
}

// lastSegment returns the last component of a dotted task name.
func lastSegment(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (b *schemaBuilder) resolveImport(el *xmldom.Element) {
	proj := attributeFold(el, "Project")
	if proj == nil || strings.TrimSpace(proj.Value) == "" {
		return
	}
	var sdk string
	if att := attributeFold(el, "Sdk"); att != nil {
		sdk = strings.TrimSpace(att.Value)
		if v := attributeFold(el, "Version"); v != nil && strings.TrimSpace(v.Value) != "" {
			sdk += "/" + strings.TrimSpace(v.Value)
		} else if v := attributeFold(el, "MinimumVersion"); v != nil && strings.TrimSpace(v.Value) != "" {
			sdk += "/min=" + strings.TrimSpace(v.Value)
		}
	}
	span := token.NewSpan(proj.ValueOffset, len(proj.Value))
	var resolved []string
	for _, imp := range b.resolver.Resolve(b.ctx, proj.Value, sdk) {
		b.doc.AddImport(imp)
		switch {
		case imp.Document != nil:
			resolved = append(resolved, imp.Filename)
		case errors.Is(imp.Err, ErrImportCycle):
			b.cfg.logger().Debug("import cycle", "file", b.doc.Filename, "import", imp.Filename)
			b.doc.report(diag.ImportCycle, diag.Warning, span, "%v", imp.Err)
		default:
			b.cfg.logger().Debug("unresolved import", "file", b.doc.Filename, "import", proj.Value, "err", imp.Err)
			b.doc.report(diag.UnresolvedImport, diag.Warning, span, "could not resolve import %q: %v", proj.Value, imp.Err)
		}
	}
	if len(resolved) > 0 && b.doc.IsToplevel {
		b.doc.Annotations.Add(proj, &Navigation{Span: span, Paths: resolved})
	}
}

func (b *schemaBuilder) UnknownElement(el *xmldom.Element) {
	parent := "document"
	if el.Parent != nil {
		parent = el.Parent.Name
	}
	b.doc.report(diag.UnexpectedElement, diag.Warning, el.NameSpan, "unexpected element %s in %s", el.Name, parent)
}

func (b *schemaBuilder) UnknownAttribute(el *xmldom.Element, att *xmldom.Attribute) {
	if att.Name == "xmlns" || strings.HasPrefix(att.Name, "xmlns:") {
		return
	}
	b.doc.report(diag.UnknownAttribute, diag.Warning, att.NameSpan, "unknown attribute %s on %s", att.Name, el.Name)
}

func (b *schemaBuilder) AttributeValue(v *visitor.Value) {
	switch v.AttributeSyntax.Kind() {
	case syntax.OutputItemName:
		if name := strings.TrimSpace(v.Text); name != "" {
			b.doc.InferredSchema.SeeItem(name)
		}
	case syntax.OutputPropertyName:
		if name := strings.TrimSpace(v.Text); name != "" {
			b.doc.InferredSchema.SeeProperty(name)
		}
	}
	b.value(v)
}

func (b *schemaBuilder) ElementValue(v *visitor.Value) {
	if v.ElementSyntax.Kind() == syntax.Property && b.cfg.Properties.IsMarked(v.Element.Name) {
		if values, ok := b.cfg.expand(v.Node, b.doc.Filename); ok {
			for _, s := range values {
				b.cfg.Properties.Collect(v.Element.Name, strings.TrimSpace(s))
			}
		}
	}
	b.value(v)
}

func (b *schemaBuilder) value(v *visitor.Value) {
	if v.Node == nil {
		return
	}
	inf := b.doc.InferredSchema
	var (
		inError int
		stack   []ast.Node
	)
	ast.Walk(v.Node, func(n ast.Node) bool {
		path := stack
		stack = append(stack, n)
		if kind, _, ok := ast.ErrorInfo(n); ok {
			// Errors nested in a reported error are not reported again.
			if inError == 0 {
				b.doc.report(diag.ExpressionError, diag.Error, ast.SpanOf(n), "%s", kind.Message())
			}
			inError++
			return true
		}
		switch x := n.(type) {
		case *ast.Property:
			if x.IsSimple() {
				inf.SeeProperty(x.Name())
			}
		case *ast.Item:
			if name := x.Name(); name != "" {
				inf.SeeItem(name)
			}
		case *ast.Metadata:
			if item := visitor.MetadataItem(v, path, x); item != "" {
				inf.SeeMetadata(item, x.Name)
			}
		}
		return true
	}, func(n ast.Node) {
		stack = stack[:len(stack)-1]
		if _, _, ok := ast.ErrorInfo(n); ok {
			inError--
		}
	})
	if b.doc.IsToplevel && v.Symbol != nil {
		b.validate(v)
	}
}

// validate checks the literal parts of a value against its declared kind.
func (b *schemaBuilder) validate(v *visitor.Value) {
	kind := v.Symbol.ValueKind()
	switch kind.WithoutModifiers() {
	case schema.Unknown, schema.Condition, schema.Nothing, schema.Data:
		return
	}
	check := func(n ast.Node) {
		t, ok := n.(*ast.Text)
		if !ok || !t.IsPure {
			return
		}
		value, offset, length := t.TrimmedUnescaped()
		if value == "" {
			return
		}
		if err := schema.ValidateLiteral(kind, v.Symbol.CustomType(), value); err != nil {
			b.doc.report(diag.InvalidValue, diag.Error, token.NewSpan(offset, length), "%v", err)
		}
	}
	if list, ok := v.Node.(*ast.List); ok {
		for _, n := range list.Nodes {
			check(n)
		}
		return
	}
	check(v.Node)
}
