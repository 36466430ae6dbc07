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

// Package token defines source spans and the line tables that map byte
// offsets in a build file to printable line:column positions.
package token

import (
	"cmp"
	"fmt"
)

// -----------------------------------------------------------------------------
// Positions

// Position describes an arbitrary and printable source position within a file,
// including offset, line, and column location,
// which can be rendered in a human-friendly text form.
//
// A Position is valid if the line number is > 0.
type Position struct {
	Filename string // filename, if any
	Offset   int    // offset, starting at 0
	Line     int    // line number, starting at 1
	Column   int    // column number, starting at 1 (byte count)
}

// IsValid reports whether the position is valid.
func (pos *Position) IsValid() bool { return pos.Line > 0 }

// String returns a human-readable form of a position in one of several forms:
//
//	file:line:column    valid position with file name
//	line:column         valid position without file name
//	file                invalid position with file name
//	-                   invalid position without file name
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Compare orders positions by filename and then offset.
func (pos Position) Compare(q Position) int {
	if c := cmp.Compare(pos.Filename, q.Filename); c != 0 {
		return c
	}
	return cmp.Compare(pos.Offset, q.Offset)
}

// -----------------------------------------------------------------------------
// Spans

// Span is a half-open byte range [Start, End) within a single text.
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span starting at start with the given length.
func NewSpan(start, length int) Span {
	return Span{Start: start, End: start + length}
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether s covers no bytes.
func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Contains reports whether offset lies within s. The end offset is
// included so that a cursor placed directly after a name still hits it.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// ContainsSpan reports whether t lies entirely within s.
func (s Span) ContainsSpan(t Span) bool {
	return t.Start >= s.Start && t.End <= s.End
}

// Overlaps reports whether s and t share at least one offset, treating
// both as closed ranges.
func (s Span) Overlaps(t Span) bool {
	return s.Start <= t.End && t.Start <= s.End
}

// Shift returns s moved by n bytes.
func (s Span) Shift(n int) Span {
	return Span{s.Start + n, s.End + n}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
