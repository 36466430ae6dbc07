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

// Package schema defines the symbols of the MSBuild language and the
// tables that describe them.
//
// A symbol is anything with a name and a description: items, properties,
// metadata, tasks, task parameters, targets, functions and the values of
// custom types. Symbols that describe values also carry a ValueKind.
package schema

import (
	"strings"

	"msbuildlang.org/go/msbuild/parser"
)

// ValueKind is the semantic domain of a value, optionally combined with the
// modifiers List, CommaList and Literal.
type ValueKind int

const (
	Unknown ValueKind = iota

	// Data is opaque content that is not parsed, such as the body of
	// ProjectExtensions.
	Data
	// Nothing means an element has child elements instead of a value.
	Nothing

	String
	Bool
	Int
	Float
	Guid
	Url
	Version
	SdkVersion
	VersionSuffixed
	Lcid
	Culture
	Condition

	TargetName
	ItemName
	PropertyName
	MetadataName
	TaskName
	TaskAssemblyName
	TaskAssemblyFile
	TaskFactory
	TaskArchitecture
	TaskRuntime
	TaskOutputParameterName
	TaskParameterType
	ToolsVersion
	Importance
	ContinueOnError
	HostOS
	HostRuntime
	Configuration
	Platform

	ProjectFile
	File
	Folder
	FolderWithSlash
	FileOrFolder
	Extension
	Filename
	MatchItem

	Sdk
	SdkWithVersion
	NuGetID
	NuGetVersion
	ProjectKindGuid
	TargetFramework
	TargetFrameworkIdentifier
	TargetFrameworkVersion
	TargetFrameworkProfile
	TargetFrameworkMoniker
	ClrNamespace
	ClrType
	ClrTypeName
	UnknownItem
	CustomType

	numKinds
)

// Modifiers.
const (
	// List is a semicolon separated list of values of the base kind.
	List ValueKind = 1 << (28 + iota)
	// CommaList is a comma separated list of values of the base kind.
	CommaList
	// Literal means expressions are not permitted.
	Literal

	modifierMask = List | CommaList | Literal
)

var kindNames = [...]string{
	Unknown:                   "Unknown",
	Data:                      "Data",
	Nothing:                   "Nothing",
	String:                    "String",
	Bool:                      "Bool",
	Int:                       "Int",
	Float:                     "Float",
	Guid:                      "Guid",
	Url:                       "Url",
	Version:                   "Version",
	SdkVersion:                "SdkVersion",
	VersionSuffixed:           "VersionSuffixed",
	Lcid:                      "Lcid",
	Culture:                   "Culture",
	Condition:                 "Condition",
	TargetName:                "TargetName",
	ItemName:                  "ItemName",
	PropertyName:              "PropertyName",
	MetadataName:              "MetadataName",
	TaskName:                  "TaskName",
	TaskAssemblyName:          "TaskAssemblyName",
	TaskAssemblyFile:          "TaskAssemblyFile",
	TaskFactory:               "TaskFactory",
	TaskArchitecture:          "TaskArchitecture",
	TaskRuntime:               "TaskRuntime",
	TaskOutputParameterName:   "TaskOutputParameterName",
	TaskParameterType:         "TaskParameterType",
	ToolsVersion:              "ToolsVersion",
	Importance:                "Importance",
	ContinueOnError:           "ContinueOnError",
	HostOS:                    "HostOS",
	HostRuntime:               "HostRuntime",
	Configuration:             "Configuration",
	Platform:                  "Platform",
	ProjectFile:               "ProjectFile",
	File:                      "File",
	Folder:                    "Folder",
	FolderWithSlash:           "FolderWithSlash",
	FileOrFolder:              "FileOrFolder",
	Extension:                 "Extension",
	Filename:                  "Filename",
	MatchItem:                 "MatchItem",
	Sdk:                       "Sdk",
	SdkWithVersion:            "SdkWithVersion",
	NuGetID:                   "NuGetID",
	NuGetVersion:              "NuGetVersion",
	ProjectKindGuid:           "ProjectKindGuid",
	TargetFramework:           "TargetFramework",
	TargetFrameworkIdentifier: "TargetFrameworkIdentifier",
	TargetFrameworkVersion:    "TargetFrameworkVersion",
	TargetFrameworkProfile:    "TargetFrameworkProfile",
	TargetFrameworkMoniker:    "TargetFrameworkMoniker",
	ClrNamespace:              "ClrNamespace",
	ClrType:                   "ClrType",
	ClrTypeName:               "ClrTypeName",
	UnknownItem:               "UnknownItem",
	CustomType:                "CustomType",
}

// String returns the kind name followed by its modifiers, for example
// "TargetName-list".
func (k ValueKind) String() string {
	base := k.WithoutModifiers()
	name := "ValueKind?"
	if base >= 0 && base < numKinds {
		name = kindNames[base]
	}
	if k&List != 0 {
		name += "-list"
	}
	if k&CommaList != 0 {
		name += "-commalist"
	}
	if k&Literal != 0 {
		name += "-literal"
	}
	return name
}

// ParseValueKind parses the names produced by String. Matching ignores case
// and dashes within the base name, so "target-name-list" is accepted too.
func ParseValueKind(s string) (ValueKind, bool) {
	var mods ValueKind
	s = FoldName(strings.TrimSpace(s))
	for {
		switch {
		case strings.HasSuffix(s, "-commalist"):
			mods |= CommaList
			s = strings.TrimSuffix(s, "-commalist")
			continue
		case strings.HasSuffix(s, "-list"):
			mods |= List
			s = strings.TrimSuffix(s, "-list")
			continue
		case strings.HasSuffix(s, "-literal"):
			mods |= Literal
			s = strings.TrimSuffix(s, "-literal")
			continue
		}
		break
	}
	s = strings.ReplaceAll(s, "-", "")
	for k, name := range kindNames {
		if FoldName(name) == s {
			return ValueKind(k) | mods, true
		}
	}
	return Unknown, false
}

// WithoutModifiers returns the base kind.
func (k ValueKind) WithoutModifiers() ValueKind { return k &^ modifierMask }

func (k ValueKind) IsList() bool { return k&(List|CommaList) != 0 }

// AllowsLists reports whether the value may be a semicolon separated list.
func (k ValueKind) AllowsLists() bool { return k&List != 0 }

// AllowsExpressions reports whether the value may contain references.
func (k ValueKind) AllowsExpressions() bool { return k&Literal == 0 }

func (k ValueKind) AsList() ValueKind { return k | List }

func (k ValueKind) AsLiteral() ValueKind { return k | Literal }

// IsKindOrListOfKind reports whether k is base, optionally as a list or
// literal.
func (k ValueKind) IsKindOrListOfKind(base ValueKind) bool {
	return k.WithoutModifiers() == base
}

// IsFile reports whether the kind names files or folders on disk.
func (k ValueKind) IsFile() bool {
	switch k.WithoutModifiers() {
	case File, Folder, FolderWithSlash, FileOrFolder, ProjectFile, TaskAssemblyFile:
		return true
	}
	return false
}

// ExpressionOptions returns the parser options for values of this kind.
// Values that forbid expressions are parsed with the same grammar so that
// lists and ranges are still available.
func (k ValueKind) ExpressionOptions() parser.Options {
	opts := parser.ItemsAndMetadata
	if k.AllowsLists() {
		opts |= parser.Lists
	}
	return opts
}
