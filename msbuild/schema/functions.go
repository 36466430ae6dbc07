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

// Property functions on strings, keyed by folded name. Only the return
// kind matters here; it is used to type chained invocations.
var stringFunctions = map[string]*FunctionInfo{}

func init() {
	for _, f := range []struct {
		name string
		kind ValueKind
		desc string
	}{
		{"Length", Int, "Gets the number of characters"},
		{"Contains", Bool, "Returns whether the string contains a substring"},
		{"StartsWith", Bool, "Returns whether the string starts with a prefix"},
		{"EndsWith", Bool, "Returns whether the string ends with a suffix"},
		{"Equals", Bool, "Returns whether the strings are equal"},
		{"IndexOf", Int, "Returns the index of a substring"},
		{"LastIndexOf", Int, "Returns the last index of a substring"},
		{"CompareTo", Int, "Compares two strings"},
		{"Replace", String, "Replaces occurrences of a substring"},
		{"Substring", String, "Returns part of the string"},
		{"Trim", String, "Removes surrounding whitespace"},
		{"TrimStart", String, "Removes leading characters"},
		{"TrimEnd", String, "Removes trailing characters"},
		{"ToLower", String, "Converts to lower case"},
		{"ToLowerInvariant", String, "Converts to lower case"},
		{"ToUpper", String, "Converts to upper case"},
		{"ToUpperInvariant", String, "Converts to upper case"},
		{"PadLeft", String, "Pads the start of the string"},
		{"PadRight", String, "Pads the end of the string"},
		{"Split", String.AsList(), "Splits the string"},
	} {
		stringFunctions[FoldName(f.name)] = &FunctionInfo{
			info:     info{name: f.name, description: f.desc, kind: f.kind},
			Receiver: String,
		}
	}
}

// LookupFunction returns the property function with the given name that
// applies to values of the receiver kind, or nil. Any kind that is not a
// list behaves as a string.
func LookupFunction(receiver ValueKind, name string) *FunctionInfo {
	if receiver.IsList() {
		return nil
	}
	if len(name) > 4 && name[:4] == "get_" {
		name = name[4:]
	}
	return stringFunctions[FoldName(name)]
}
