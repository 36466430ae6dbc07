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

package token

// A File has a name, size, and line offset table.
//
// A File is immutable once created and safe for concurrent use.
type File struct {
	name  string
	size  int
	lines []int // offset of the first byte of each line; lines[0] == 0
}

// NewFile returns a File for the given content, computing its line table.
func NewFile(filename string, content string) *File {
	f := &File{name: filename, size: len(content), lines: []int{0}}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

// Name returns the file name of f.
func (f *File) Name() string { return f.name }

// Size returns the size of the content f was created from.
func (f *File) Size() int { return f.size }

// LineCount returns the number of lines in f.
func (f *File) LineCount() int { return len(f.lines) }

// fixOffset fixes an out-of-bounds offset such that 0 <= offset <= f.size.
func (f *File) fixOffset(offset int) int {
	switch {
	case offset < 0:
		return 0
	case offset > f.size:
		return f.size
	default:
		return offset
	}
}

// Position returns the Position value for the given byte offset.
// Out-of-bounds offsets are clamped to the file.
func (f *File) Position(offset int) Position {
	offset = f.fixOffset(offset)
	i := searchInts(f.lines, offset)
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     i + 1,
		Column:   offset - f.lines[i] + 1,
	}
}

// Offset returns the byte offset of the 1-based line and column, and
// whether they denote a location inside the file.
func (f *File) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(f.lines) || column < 1 {
		return 0, false
	}
	offset := f.lines[line-1] + column - 1
	end := f.size
	if line < len(f.lines) {
		end = f.lines[line] - 1
	}
	if offset > end {
		return 0, false
	}
	return offset, true
}

func searchInts(a []int, x int) int {
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2 // avoid overflow when computing h
		// i ≤ h < j
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}
