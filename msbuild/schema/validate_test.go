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

package schema

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestCompareVersions(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"1.2.0", "1.10.0", -1},
		{"1.2.3.4", "1.0", 1},
		{"1.0", "1.2.3.4", -1},
		{"1.2.3.10", "1.2.3.9", 1},
		{"1.2.3.0", "1.2.3", 0},
		{"4.7.2", "4.7.2.0", 0},
		{"8.0.100", "8.0.100-preview.1", 1},
		{"8.0.100-preview.2", "8.0.100-preview.10", -1},
		{"banana", "1.0", -1},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(CompareVersions(tc.a, tc.b), tc.want), qt.Commentf("%s vs %s", tc.a, tc.b))
	}
}
