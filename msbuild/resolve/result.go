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

package resolve

import (
	"strconv"

	"msbuildlang.org/go/msbuild/schema"
	"msbuildlang.org/go/msbuild/syntax"
	"msbuildlang.org/go/msbuild/token"
	"msbuildlang.org/go/msbuild/xmldom"
)

// ReferenceKind classifies what a Result refers to.
type ReferenceKind int

const (
	None ReferenceKind = iota
	Item
	Property
	Metadata
	Task
	TaskParameter
	Keyword
	Target
	KnownValue
	NuGetID
	TargetFramework
	TargetFrameworkIdentifier
	TargetFrameworkVersion
	TargetFrameworkProfile
	FileOrFolder
	ItemFunction
	PropertyFunction
	StaticPropertyFunction
	ClassName
	Enum
	ConditionFunction
)

var kindNames = [...]string{
	None:                      "None",
	Item:                      "Item",
	Property:                  "Property",
	Metadata:                  "Metadata",
	Task:                      "Task",
	TaskParameter:             "TaskParameter",
	Keyword:                   "Keyword",
	Target:                    "Target",
	KnownValue:                "KnownValue",
	NuGetID:                   "NuGetID",
	TargetFramework:           "TargetFramework",
	TargetFrameworkIdentifier: "TargetFrameworkIdentifier",
	TargetFrameworkVersion:    "TargetFrameworkVersion",
	TargetFrameworkProfile:    "TargetFrameworkProfile",
	FileOrFolder:              "FileOrFolder",
	ItemFunction:              "ItemFunction",
	PropertyFunction:          "PropertyFunction",
	StaticPropertyFunction:    "StaticPropertyFunction",
	ClassName:                 "ClassName",
	Enum:                      "Enum",
	ConditionFunction:         "ConditionFunction",
}

func (k ReferenceKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ReferenceKind(" + strconv.Itoa(int(k)) + ")"
}

// MetadataReference refers to metadata of an item type.
type MetadataReference struct {
	Item     string
	Metadata string
}

// TaskParameterReference refers to a parameter of a task.
type TaskParameterReference struct {
	Task      string
	Parameter string
}

// StaticFunctionReference refers to a static property function such as
// $([System.IO.Path]::Combine(...)).
type StaticFunctionReference struct {
	Class    string
	Function string
}

// PropertyFunctionReference refers to a function invoked on a property
// value of the given kind.
type PropertyFunctionReference struct {
	Kind     schema.ValueKind
	Function string
}

// Result describes what is at an offset in a document.
//
// Reference depends on ReferenceKind:
//
//	Metadata                 MetadataReference
//	TaskParameter            TaskParameterReference
//	StaticPropertyFunction   StaticFunctionReference
//	PropertyFunction         PropertyFunctionReference
//	Keyword                  *syntax.Element or *syntax.Attribute
//	KnownValue               schema.Symbol
//	FileOrFolder             []string
//
// For all other kinds it is the referenced name.
type Result struct {
	ElementSyntax   *syntax.Element
	AttributeSyntax *syntax.Attribute
	Element         *xmldom.Element
	Attribute       *xmldom.Attribute

	ReferenceKind   ReferenceKind
	ReferenceOffset int
	ReferenceLength int
	Reference       any
}

// Span returns the span of the reference.
func (r *Result) Span() token.Span {
	return token.NewSpan(r.ReferenceOffset, r.ReferenceLength)
}

// ReferenceName returns the name of the referenced symbol.
func (r *Result) ReferenceName() string {
	switch x := r.Reference.(type) {
	case string:
		return x
	case MetadataReference:
		return x.Metadata
	case TaskParameterReference:
		return x.Parameter
	case StaticFunctionReference:
		return x.Function
	case PropertyFunctionReference:
		return x.Function
	case schema.Symbol:
		return x.Name()
	}
	return ""
}
