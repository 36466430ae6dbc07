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

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestFilePosition(t *testing.T) {
	f := NewFile("a.proj", "ab\ncde\n\nf")
	testCases := []struct {
		offset int
		want   string
	}{
		{0, "a.proj:1:1"},
		{1, "a.proj:1:2"},
		{2, "a.proj:1:3"},
		{3, "a.proj:2:1"},
		{6, "a.proj:2:4"},
		{7, "a.proj:3:1"},
		{8, "a.proj:4:1"},
		{9, "a.proj:4:2"},
		{100, "a.proj:4:2"},
		{-4, "a.proj:1:1"},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(f.Position(tc.offset).String(), tc.want), qt.Commentf("offset %d", tc.offset))
	}
	qt.Assert(t, qt.Equals(f.LineCount(), 4))
}

func TestFileOffset(t *testing.T) {
	f := NewFile("", "ab\ncde\n")
	for offset := 0; offset < f.Size(); offset++ {
		pos := f.Position(offset)
		got, ok := f.Offset(pos.Line, pos.Column)
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.Equals(got, offset))
	}
	_, ok := f.Offset(1, 5)
	qt.Assert(t, qt.IsFalse(ok))
	_, ok = f.Offset(0, 1)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestSpan(t *testing.T) {
	s := NewSpan(4, 3)
	qt.Assert(t, qt.Equals(s, Span{4, 7}))
	qt.Assert(t, qt.Equals(s.Len(), 3))
	qt.Assert(t, qt.IsTrue(s.Contains(4)))
	qt.Assert(t, qt.IsTrue(s.Contains(7)))
	qt.Assert(t, qt.IsFalse(s.Contains(8)))
	qt.Assert(t, qt.IsTrue(s.ContainsSpan(Span{5, 7})))
	qt.Assert(t, qt.IsFalse(s.ContainsSpan(Span{3, 7})))
	qt.Assert(t, qt.IsTrue(s.Overlaps(Span{7, 9})))
	qt.Assert(t, qt.Equals(s.Shift(10), Span{14, 17}))
	qt.Assert(t, qt.Equals(s.String(), "[4,7)"))
}
