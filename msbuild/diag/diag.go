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

// Package diag defines the diagnostics reported while building a document.
//
// Diagnostics are values, not Go errors: a document with diagnostics is still
// a usable document. A List can be turned into an error with [List.Err] at
// the boundaries that need one.
package diag

import (
	"fmt"
	"io"
	"sort"

	"msbuildlang.org/go/msbuild/token"
)

// Severity classifies a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Code identifies the kind of a diagnostic.
type Code string

const (
	EmptySdkAttribute   Code = "EmptySdkAttribute"
	UnresolvedSdk       Code = "UnresolvedSdk"
	UnresolvedImport    Code = "UnresolvedImport"
	ImportCycle         Code = "ImportCycle"
	ExpressionError     Code = "ExpressionError"
	InvalidValue        Code = "InvalidValue"
	MissingProject      Code = "MissingProject"
	UnexpectedElement   Code = "UnexpectedElement"
	UnknownAttribute    Code = "UnknownAttribute"
	UnterminatedElement Code = "UnterminatedElement"
)

// A Diagnostic is a message attached to a span of a build file.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Span     token.Span
	Message  string

	// Pos is the printable start position, set when the diagnostic is
	// created with a line table.
	Pos token.Position
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() || d.Pos.Filename != "" {
		return fmt.Sprintf("%s: %s", d.Pos, d.Message)
	}
	return d.Message
}

// New creates a diagnostic. If f is non-nil it is used to compute the
// printable position of the span start.
func New(f *token.File, code Code, sev Severity, span token.Span, format string, args ...any) *Diagnostic {
	d := &Diagnostic{
		Code:     code,
		Severity: sev,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	}
	if f != nil {
		d.Pos = f.Position(span.Start)
	}
	return d
}

// List is a list of diagnostics.
// The zero value for a List is an empty List ready to use.
type List []*Diagnostic

// Add appends d to the list.
func (p *List) Add(d *Diagnostic) {
	*p = append(*p, d)
}

// AddNew creates a diagnostic and appends it to the list.
func (p *List) AddNew(f *token.File, code Code, sev Severity, span token.Span, format string, args ...any) {
	p.Add(New(f, code, sev, span, format, args...))
}

// Reset resets a List to no diagnostics.
func (p *List) Reset() { *p = (*p)[0:0] }

// List implements the sort Interface.
func (p List) Len() int      { return len(p) }
func (p List) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p List) Less(i, j int) bool {
	e, f := p[i], p[j]
	if c := e.Pos.Compare(f.Pos); c != 0 {
		return c < 0
	}
	if e.Span != f.Span {
		if e.Span.Start != f.Span.Start {
			return e.Span.Start < f.Span.Start
		}
		return e.Span.End < f.Span.End
	}
	return e.Message < f.Message
}

// Sort sorts a List by position, then by message.
func (p List) Sort() {
	sort.Stable(p)
}

// HasErrors reports whether the list contains an entry of severity Error.
func (p List) HasErrors() bool {
	for _, d := range p {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics with the given code.
func (p List) Filter(code Code) List {
	var out List
	for _, d := range p {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// A List implements the error interface.
func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this list of diagnostics if it
// contains at least one error. Warnings alone yield nil.
func (p List) Err() error {
	if !p.HasErrors() {
		return nil
	}
	return p
}

// Print prints the diagnostics to w, one per line, prefixed by severity
// and code.
func Print(w io.Writer, list List) {
	Fprint(w, list, nil)
}

// A Config controls how Fprint prints diagnostics.
type Config struct {
	// Format formats each line. It defaults to fmt.Fprintf.
	Format func(w io.Writer, format string, args ...any)

	// Filename rewrites the file names of positions, for instance to make
	// them relative to the working directory.
	Filename func(name string) string
}

// Fprint is like Print but formats the diagnostics according to cfg, which
// may be nil.
func Fprint(w io.Writer, list List, cfg *Config) {
	format := func(w io.Writer, format string, args ...any) {
		fmt.Fprintf(w, format, args...)
	}
	if cfg != nil && cfg.Format != nil {
		format = cfg.Format
	}
	for _, d := range list {
		p := d.Pos
		if cfg != nil && cfg.Filename != nil && p.Filename != "" {
			p.Filename = cfg.Filename(p.Filename)
		}
		pos := p.String()
		if !p.IsValid() && p.Filename == "" {
			pos = d.Span.String()
		}
		format(w, "%s: %s %s: %s\n", pos, d.Severity, d.Code, d.Message)
	}
}
