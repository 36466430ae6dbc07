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
	"strings"

	"golang.org/x/text/cases"
)

// Symbol is anything that can be described to a user.
type Symbol interface {
	Name() string
	Description() string
}

// TypedSymbol is a symbol that describes a value.
type TypedSymbol interface {
	Symbol
	ValueKind() ValueKind
	// CustomType returns the type of values of kind CustomType, or nil.
	CustomType() *CustomTypeInfo
}

// Deprecatable is implemented by symbols that may be deprecated. An empty
// message means the symbol is not deprecated.
type Deprecatable interface {
	DeprecationMessage() string
}

// HelpURLer is implemented by symbols that link to documentation.
type HelpURLer interface {
	HelpURL() string
}

// FoldName returns the case folded form of a symbol name. MSBuild names
// compare case-insensitively.
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// NamesEqual reports whether two symbol names are the same.
func NamesEqual(a, b string) bool {
	return a == b || strings.EqualFold(a, b) || FoldName(a) == FoldName(b)
}

// info holds the fields shared by all typed symbols.
type info struct {
	name        string
	description string
	kind        ValueKind
	customType  *CustomTypeInfo
	deprecation string
	helpURL     string
}

func (i *info) Name() string                { return i.name }
func (i *info) Description() string         { return i.description }
func (i *info) ValueKind() ValueKind        { return i.kind }
func (i *info) CustomType() *CustomTypeInfo { return i.customType }
func (i *info) DeprecationMessage() string  { return i.deprecation }
func (i *info) HelpURL() string             { return i.helpURL }

// ItemInfo describes an item type.
type ItemInfo struct {
	info

	// IncludeKind is the kind of the values of the Include, Exclude, Update
	// and Remove attributes, if the item declares one.
	IncludeKind ValueKind

	metadata map[string]*MetadataInfo
}

// NewItem returns an item with the given name and no metadata.
func NewItem(name, description string) *ItemInfo {
	return &ItemInfo{info: info{name: name, description: description, kind: UnknownItem.AsList()}}
}

// Metadata returns the metadata declared for the item.
func (it *ItemInfo) Metadata(name string) *MetadataInfo {
	return it.metadata[FoldName(name)]
}

// AddMetadata declares metadata on the item, returning the existing
// declaration if there is one.
func (it *ItemInfo) AddMetadata(name, description string, kind ValueKind) *MetadataInfo {
	key := FoldName(name)
	if m := it.metadata[key]; m != nil {
		return m
	}
	if it.metadata == nil {
		it.metadata = make(map[string]*MetadataInfo)
	}
	m := &MetadataInfo{info: info{name: name, description: description, kind: kind}, Item: it}
	it.metadata[key] = m
	return m
}

// PropertyInfo describes a property.
type PropertyInfo struct {
	info
	DefaultValue string
	IsReserved   bool
	IsReadOnly   bool
}

func NewProperty(name, description string, kind ValueKind) *PropertyInfo {
	return &PropertyInfo{info: info{name: name, description: description, kind: kind}}
}

// MetadataInfo describes metadata on an item type.
type MetadataInfo struct {
	info
	Item *ItemInfo
}

// NewMetadata returns metadata that is not attached to a declared item.
func NewMetadata(item *ItemInfo, name string) *MetadataInfo {
	return &MetadataInfo{info: info{name: name}, Item: item}
}

// TaskInfo describes a task and its parameters.
type TaskInfo struct {
	info
	parameters map[string]*TaskParameterInfo
	order      []*TaskParameterInfo
}

func NewTask(name, description string) *TaskInfo {
	return &TaskInfo{info: info{name: name, description: description, kind: Nothing}}
}

// Parameter returns the named parameter, or nil.
func (t *TaskInfo) Parameter(name string) *TaskParameterInfo {
	return t.parameters[FoldName(name)]
}

// Parameters returns the parameters in declaration order.
func (t *TaskInfo) Parameters() []*TaskParameterInfo { return t.order }

// AddParameter declares a parameter, returning the existing declaration if
// there is one.
func (t *TaskInfo) AddParameter(name, description string, kind ValueKind) *TaskParameterInfo {
	key := FoldName(name)
	if p := t.parameters[key]; p != nil {
		return p
	}
	if t.parameters == nil {
		t.parameters = make(map[string]*TaskParameterInfo)
	}
	p := &TaskParameterInfo{info: info{name: name, description: description, kind: kind}, Task: t}
	t.parameters[key] = p
	t.order = append(t.order, p)
	return p
}

// TaskParameterInfo describes a parameter of a task.
type TaskParameterInfo struct {
	info
	Task       *TaskInfo
	IsOutput   bool
	IsRequired bool
}

// TargetInfo describes a target.
type TargetInfo struct {
	info
}

func NewTarget(name, description string) *TargetInfo {
	return &TargetInfo{info: info{name: name, description: description, kind: Nothing}}
}

// FunctionInfo describes a property function. ValueKind is the kind of the
// returned value.
type FunctionInfo struct {
	info
	Receiver ValueKind
}

// CustomTypeInfo is a named enumeration of literal values.
type CustomTypeInfo struct {
	Name          string
	Description   string
	CaseSensitive bool
	Values        []*CustomTypeValue
}

// NewCustomType returns a type with the given values, which are attached to
// it.
func NewCustomType(name string, caseSensitive bool, values ...*CustomTypeValue) *CustomTypeInfo {
	t := &CustomTypeInfo{Name: name, CaseSensitive: caseSensitive, Values: values}
	for _, v := range values {
		v.customType = t
	}
	return t
}

// Value returns the value with the given name, honoring the type's case
// sensitivity.
func (t *CustomTypeInfo) Value(name string) *CustomTypeValue {
	for _, v := range t.Values {
		if t.Matches(v.name, name) {
			return v
		}
	}
	return nil
}

// Matches compares two value names using the type's case sensitivity.
func (t *CustomTypeInfo) Matches(a, b string) bool {
	if t != nil && t.CaseSensitive {
		return a == b
	}
	return NamesEqual(a, b)
}

// CustomTypeValue is one of the values of a custom type.
type CustomTypeValue struct {
	info
}

func NewCustomTypeValue(name, description string) *CustomTypeValue {
	return &CustomTypeValue{info: info{name: name, description: description, kind: CustomType}}
}

// ConstantSymbol is a well-known literal value, such as "true" for Bool or
// "high" for Importance.
type ConstantSymbol struct {
	name, description string
}

func (c *ConstantSymbol) Name() string        { return c.name }
func (c *ConstantSymbol) Description() string { return c.description }
