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


package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"msbuildlang.org/go/msbuild/diag"
	"msbuildlang.org/go/msbuild/document"
	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/token"
	"msbuildlang.org/go/msbuild/xmldom"
)

// sdksPathEnv lists additional SDK directories, separated like PATH.
const sdksPathEnv = "MSBUILD_SDKS_PATH"

func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

// printDiagnostics prints list to w with file names relative to the
// workspace's working directory.
func printDiagnostics(w io.Writer, ws *workspace, list diag.List) {
	// Link x/text as our localizer.
	p := message.NewPrinter(getLang())
	diag.Fprint(w, list, &diag.Config{
		Format: func(w io.Writer, format string, args ...any) {
			p.Fprintf(w, format, args...)
		},
		Filename: ws.displayPath,
	})
}

// A workspace loads build files from the local file system. Files are
// addressed by slash-separated paths relative to the file system root,
// which is what the document loader expects.
type workspace struct {
	fsys fs.FS
	cwd  string
	cfg  *document.Config
}

func newWorkspace(cmd *Command) (*workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	ws := &workspace{fsys: os.DirFS("/"), cwd: cwd}

	var roots []string
	dirs := append(flagSdks.StringArray(cmd), filepath.SplitList(os.Getenv(sdksPathEnv))...)
	for _, dir := range dirs {
		if dir != "" {
			roots = append(roots, ws.fsPath(dir))
		}
	}
	sch, err := loadSchemas(flagSchema.StringArray(cmd))
	if err != nil {
		return nil, err
	}
	props, err := parseDefines(flagDefine.StringArray(cmd))
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if flagVerbose.Bool(cmd) {
		level = slog.LevelDebug
	}
	loader := &document.FSLoader{FS: ws.fsys}
	ws.cfg = &document.Config{
		SdkResolver:       &document.DirSdkResolver{FS: ws.fsys, Roots: roots},
		NewImportResolver: loader.ImportResolver,
		GlobalProperties:  props,
		Schema:            sch,
		Logger:            slog.New(slog.NewTextHandler(cmd.OutOrStderr(), &slog.HandlerOptions{Level: level})),
	}
	return ws, nil
}

// fsPath converts a file name given on the command line to a path in the
// workspace file system.
func (ws *workspace) fsPath(name string) string {
	if !filepath.IsAbs(name) {
		name = filepath.Join(ws.cwd, name)
	}
	return strings.TrimPrefix(filepath.ToSlash(name), "/")
}

// displayPath converts a workspace path for printing, relative to the
// working directory when it is below it.
func (ws *workspace) displayPath(p string) string {
	abs := filepath.FromSlash("/" + p)
	rel, err := filepath.Rel(ws.cwd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return rel
}

// position formats an offset in doc for printing.
func (ws *workspace) position(doc *document.Document, offset int) string {
	pos := doc.File.Position(offset)
	pos.Filename = ws.displayPath(pos.Filename)
	return pos.String()
}

// open reads and builds the project in the named file.
func (ws *workspace) open(ctx context.Context, name string) (*document.Document, *xmldom.Document, string, error) {
	p := ws.fsPath(name)
	data, err := fs.ReadFile(ws.fsys, p)
	if err != nil {
		return nil, nil, "", fmt.Errorf("reading %s: %w", name, err)
	}
	text := string(data)
	doc, xml, err := document.Open(ctx, ws.cfg, p, text)
	if err != nil {
		return nil, nil, "", err
	}
	return doc, xml, text, nil
}

func loadSchemas(files []string) (*schema.Schema, error) {
	if len(files) == 0 {
		return nil, nil
	}
	s := schema.New()
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		other, err := schema.Load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading schema %s: %w", name, err)
		}
		s.Merge(other)
	}
	return s, nil
}

func parseDefines(defs []string) (map[string]string, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	props := make(map[string]string, len(defs))
	for _, def := range defs {
		name, value, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid property definition %q: expected name=value", def)
		}
		props[name] = value
	}
	return props, nil
}

// parseOffset parses a position in f given as line:column or as a byte
// offset.
func parseOffset(f *token.File, s string) (int, error) {
	if line, col, ok := strings.Cut(s, ":"); ok {
		l, err1 := strconv.Atoi(line)
		c, err2 := strconv.Atoi(col)
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("invalid position %q: expected line:column or offset", s)
		}
		offset, ok := f.Offset(l, c)
		if !ok {
			return 0, fmt.Errorf("position %s is outside %s", s, f.Name())
		}
		return offset, nil
	}
	offset, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: expected line:column or offset", s)
	}
	if offset < 0 || offset > f.Size() {
		return 0, fmt.Errorf("offset %d is outside %s", offset, f.Name())
	}
	return offset, nil
}
