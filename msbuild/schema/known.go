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

import "strings"

func constants(pairs ...string) []Symbol {
	syms := make([]Symbol, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		syms = append(syms, &ConstantSymbol{name: pairs[i], description: pairs[i+1]})
	}
	return syms
}

var (
	boolValues = constants(
		"true", "Logical true",
		"false", "Logical false",
	)
	continueOnErrorValues = constants(
		"WarnAndContinue", "When the task fails, log a warning and continue",
		"true", "Equivalent to WarnAndContinue",
		"ErrorAndContinue", "When the task fails, log an error and continue",
		"ErrorAndStop", "When the task fails, log an error and stop the build",
		"false", "Equivalent to ErrorAndStop",
	)
	importanceValues = constants(
		"high", "High importance, always shown",
		"normal", "Normal importance",
		"low", "Low importance, only shown in detailed logs",
	)
	taskArchitectureValues = constants(
		"*", "Any architecture",
		"CurrentArchitecture", "The architecture of the current process",
		"x86", "32-bit x86",
		"x64", "64-bit x64",
		"arm64", "64-bit ARM",
	)
	taskRuntimeValues = constants(
		"*", "Any runtime",
		"CurrentRuntime", "The runtime of the current process",
		"CLR2", ".NET Framework 2.0 runtime",
		"CLR4", ".NET Framework 4.0 runtime",
		"NET", ".NET runtime",
	)
	hostOSValues = constants(
		"Windows_NT", "Windows",
		"Unix", "Linux and other Unix systems",
		"OSX", "macOS",
	)
	toolsVersionValues = constants(
		"2.0", "MSBuild 2.0",
		"3.5", "MSBuild 3.5",
		"4.0", "MSBuild 4.0",
		"12.0", "MSBuild 12.0",
		"14.0", "MSBuild 14.0",
		"15.0", "MSBuild 15.0",
		"Current", "The current MSBuild version",
	)
)

// SimpleValues returns the well-known values of a kind, or nil if the kind
// has none. Modifiers are ignored.
func SimpleValues(kind ValueKind) []Symbol {
	switch kind.WithoutModifiers() {
	case Bool:
		return boolValues
	case ContinueOnError:
		return continueOnErrorValues
	case Importance:
		return importanceValues
	case TaskArchitecture:
		return taskArchitectureValues
	case TaskRuntime:
		return taskRuntimeValues
	case HostOS:
		return hostOSValues
	case ToolsVersion:
		return toolsVersionValues
	}
	return nil
}

// KnownValues returns the values of the symbol's custom type if it has
// one, otherwise the simple values of its kind.
func KnownValues(sym TypedSymbol, kind ValueKind) []Symbol {
	if sym != nil {
		if ct := sym.CustomType(); ct != nil {
			values := make([]Symbol, len(ct.Values))
			for i, v := range ct.Values {
				values[i] = v
			}
			return values
		}
	}
	return SimpleValues(kind)
}

// FindKnownValue returns the known value matching name. Custom types honor
// their case sensitivity; all other values match case-insensitively.
func FindKnownValue(sym TypedSymbol, kind ValueKind, name string) Symbol {
	var ct *CustomTypeInfo
	if sym != nil {
		ct = sym.CustomType()
	}
	for _, v := range KnownValues(sym, kind) {
		if ct.Matches(v.Name(), name) {
			return v
		}
	}
	return nil
}

// InferValueKind returns the kind of the symbol, guessing one from the
// symbol's name if it is Unknown.
func InferValueKind(sym TypedSymbol) ValueKind {
	if sym == nil {
		return Unknown
	}
	if k := sym.ValueKind(); k != Unknown {
		return k
	}
	switch sym.(type) {
	case *ItemInfo:
		return UnknownItem.AsList()
	case *PropertyInfo, *MetadataInfo:
	default:
		return Unknown
	}
	name := sym.Name()
	has := func(suffix string) bool {
		return len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix)
	}
	starts := func(prefix string) bool {
		return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
	}
	switch {
	case starts("Enable") || starts("Disable") || starts("Require") || has("Enabled") || has("Disabled") || has("Required"):
		return Bool
	case has("DependsOn"):
		return TargetName.AsList()
	case has("FileName"):
		return Filename
	case has("Path"):
		return FileOrFolder
	case has("Paths"):
		return FileOrFolder.AsList()
	case has("Directory") || has("Dir"):
		return Folder
	case has("Directories") || has("Dirs"):
		return Folder.AsList()
	case has("File"):
		return File
	case has("Files"):
		return File.AsList()
	case has("Url"):
		return Url
	case has("Ext"):
		return Extension
	case has("Guid"):
		return Guid
	}
	return Unknown
}
