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
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"msbuildlang.org/go/msbuild/parser"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/xmldom"
)

// FSLoader loads imported files from a file system. Files are named by
// slash-separated paths relative to the root of FS.
//
// Each imported file is loaded once per toplevel project. An FSLoader is
// not safe for concurrent use.
type FSLoader struct {
	FS fs.FS

	project string
	loading []string
	cache   map[string]*loaded
}

type loaded struct {
	doc   *Document
	stamp time.Time
	err   error
}

// ImportResolver returns the resolver for the imports of the document in
// filename. It may be used as Config.NewImportResolver.
func (l *FSLoader) ImportResolver(cfg *Config, filename string) ImportResolver {
	if l.cache == nil || cfg.project != l.project {
		l.project = cfg.project
		l.loading = []string{cfg.project}
		l.cache = make(map[string]*loaded)
	}
	return &fsResolver{loader: l, cfg: cfg, filename: filename}
}

type fsResolver struct {
	loader   *FSLoader
	cfg      *Config
	filename string
}

var errUnevaluated = errors.New("import expression cannot be evaluated")

func (r *fsResolver) Resolve(ctx context.Context, expr, sdk string) []*Import {
	base := path.Dir(r.filename)
	if sdk != "" {
		ref, err := schema.ParseSdkReference(sdk)
		if err != nil {
			return []*Import{{OriginalText: expr, Sdk: sdk, Err: err}}
		}
		dir, ok := r.cfg.resolveSdk(ref)
		if !ok {
			return []*Import{{OriginalText: expr, Sdk: sdk, Err: fmt.Errorf("SDK %s not found", ref)}}
		}
		base = dir
	}

	values, ok := r.cfg.expand(parser.Parse(expr, parser.None, 0), r.filename)
	if !ok {
		return []*Import{{OriginalText: expr, Sdk: sdk, Err: errUnevaluated}}
	}
	var files []string
	for _, p := range splitPaths(base, values) {
		if !strings.ContainsAny(p, "*?[") {
			files = append(files, p)
			continue
		}
		// Wildcards that match nothing import nothing.
		matches, _ := fs.Glob(r.loader.FS, p)
		files = append(files, matches...)
	}

	var imports []*Import
	seen := make(map[string]bool)
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		imp := &Import{OriginalText: expr, Filename: f, Sdk: sdk}
		imp.Document, imp.Timestamp, imp.Err = r.loader.load(ctx, r.cfg, f)
		imports = append(imports, imp)
	}
	return imports
}

// splitPaths splits semicolon separated path lists and makes each path
// relative to the root of the file system. Paths starting with a slash are
// already rooted; others are relative to base.
func splitPaths(base string, values []string) []string {
	var paths []string
	for _, v := range values {
		for _, p := range strings.Split(v, ";") {
			p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
			if p == "" {
				continue
			}
			if rest, ok := strings.CutPrefix(p, "/"); ok {
				p = path.Clean(rest)
			} else {
				p = path.Join(base, p)
			}
			paths = append(paths, p)
		}
	}
	return paths
}

func (l *FSLoader) load(ctx context.Context, cfg *Config, name string) (*Document, time.Time, error) {
	if i := slices.Index(l.loading, name); i >= 0 {
		chain := append(slices.Clone(l.loading[i:]), name)
		return nil, time.Time{}, fmt.Errorf("%w: %s", ErrImportCycle, strings.Join(chain, " -> "))
	}
	if e, ok := l.cache[name]; ok {
		return e.doc, e.stamp, e.err
	}
	e := &loaded{}
	e.doc, e.stamp, e.err = l.read(ctx, cfg, name)
	if ctx.Err() == nil {
		l.cache[name] = e
	}
	return e.doc, e.stamp, e.err
}

func (l *FSLoader) read(ctx context.Context, cfg *Config, name string) (*Document, time.Time, error) {
	if !fs.ValidPath(name) {
		return nil, time.Time{}, fmt.Errorf("invalid path %q", name)
	}
	info, err := fs.Stat(l.FS, name)
	if err != nil {
		return nil, time.Time{}, err
	}
	if info.IsDir() {
		return nil, time.Time{}, fmt.Errorf("%s is a directory", name)
	}
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, time.Time{}, err
	}

	doc := New(name, false)
	doc.Schema = l.schemaFor(cfg, name)
	l.loading = append(l.loading, name)
	err = doc.Build(ctx, xmldom.Parse(name, string(data)), cfg)
	l.loading = l.loading[:len(l.loading)-1]
	if err != nil {
		return nil, time.Time{}, err
	}
	return doc, info.ModTime(), nil
}

// schemaFor loads the schema stored next to an imported file, as in
// Sdk.props.buildschema.yaml. A file without one has no schema.
func (l *FSLoader) schemaFor(cfg *Config, name string) *schema.Schema {
	for _, ext := range []string{".buildschema.yaml", ".buildschema.json"} {
		f, err := l.FS.Open(name + ext)
		if err != nil {
			continue
		}
		s, err := schema.Load(f)
		f.Close()
		if err != nil {
			cfg.logger().Warn("ignoring schema", "file", name+ext, "err", err)
			continue
		}
		return s
	}
	return nil
}

// DirSdkResolver finds SDKs in directories laid out as
// <root>/<name>/<version>/Sdk or <root>/<name>/Sdk.
type DirSdkResolver struct {
	FS    fs.FS
	Roots []string
}

func (r *DirSdkResolver) ResolveSdk(ref schema.SdkReference) (string, bool) {
	for _, root := range r.Roots {
		dir := path.Join(root, ref.Name)
		if ref.Version != "" {
			if d := path.Join(dir, ref.Version, "Sdk"); r.isDir(d) {
				return d, true
			}
		}
		if ref.MinimumVersion != "" {
			if v := r.newest(dir, ref.MinimumVersion); v != "" {
				return path.Join(dir, v, "Sdk"), true
			}
		}
		if d := path.Join(dir, "Sdk"); r.isDir(d) {
			return d, true
		}
	}
	return "", false
}

// newest returns the highest version directory in dir that is at least
// min and contains an SDK.
func (r *DirSdkResolver) newest(dir, min string) string {
	entries, err := fs.ReadDir(r.FS, dir)
	if err != nil {
		return ""
	}
	best := ""
	for _, e := range entries {
		v := e.Name()
		if !e.IsDir() || schema.CompareVersions(v, min) < 0 {
			continue
		}
		if best != "" && schema.CompareVersions(v, best) <= 0 {
			continue
		}
		if r.isDir(path.Join(dir, v, "Sdk")) {
			best = v
		}
	}
	return best
}

func (r *DirSdkResolver) isDir(name string) bool {
	info, err := fs.Stat(r.FS, name)
	return err == nil && info.IsDir()
}
