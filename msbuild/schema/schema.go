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
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Source looks up symbols by name. All lookups are case-insensitive and
// return nil when the symbol is unknown.
type Source interface {
	Item(name string) *ItemInfo
	Property(name string) *PropertyInfo
	Metadata(itemName, name string) *MetadataInfo
	Task(name string) *TaskInfo
	Target(name string) *TargetInfo
}

// Schemas is a list of sources in precedence order. Each lookup returns the
// first match.
type Schemas []Source

func (s Schemas) Item(name string) *ItemInfo {
	for _, src := range s {
		if v := src.Item(name); v != nil {
			return v
		}
	}
	return nil
}

func (s Schemas) Property(name string) *PropertyInfo {
	for _, src := range s {
		if v := src.Property(name); v != nil {
			return v
		}
	}
	return nil
}

func (s Schemas) Metadata(itemName, name string) *MetadataInfo {
	for _, src := range s {
		if v := src.Metadata(itemName, name); v != nil {
			return v
		}
	}
	return nil
}

func (s Schemas) Task(name string) *TaskInfo {
	for _, src := range s {
		if v := src.Task(name); v != nil {
			return v
		}
	}
	return nil
}

func (s Schemas) Target(name string) *TargetInfo {
	for _, src := range s {
		if v := src.Target(name); v != nil {
			return v
		}
	}
	return nil
}

// TaskParameter returns the named parameter of the first task declaring it.
func (s Schemas) TaskParameter(taskName, name string) *TaskParameterInfo {
	for _, src := range s {
		if t := src.Task(taskName); t != nil {
			if p := t.Parameter(name); p != nil {
				return p
			}
		}
	}
	return nil
}

// Schema is a table of declared symbols.
type Schema struct {
	items      map[string]*ItemInfo
	properties map[string]*PropertyInfo
	tasks      map[string]*TaskInfo
	targets    map[string]*TargetInfo
	types      map[string]*CustomTypeInfo
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{
		items:      make(map[string]*ItemInfo),
		properties: make(map[string]*PropertyInfo),
		tasks:      make(map[string]*TaskInfo),
		targets:    make(map[string]*TargetInfo),
		types:      make(map[string]*CustomTypeInfo),
	}
}

func (s *Schema) Item(name string) *ItemInfo         { return s.items[FoldName(name)] }
func (s *Schema) Property(name string) *PropertyInfo { return s.properties[FoldName(name)] }
func (s *Schema) Task(name string) *TaskInfo         { return s.tasks[FoldName(name)] }
func (s *Schema) Target(name string) *TargetInfo     { return s.targets[FoldName(name)] }

func (s *Schema) Metadata(itemName, name string) *MetadataInfo {
	if it := s.Item(itemName); it != nil {
		return it.Metadata(name)
	}
	return nil
}

// CustomType returns the named custom type, or nil.
func (s *Schema) CustomType(name string) *CustomTypeInfo { return s.types[FoldName(name)] }

// AddItem adds an item, returning the existing one if the name is taken.
func (s *Schema) AddItem(item *ItemInfo) *ItemInfo {
	key := FoldName(item.Name())
	if v := s.items[key]; v != nil {
		return v
	}
	s.items[key] = item
	return item
}

func (s *Schema) AddProperty(p *PropertyInfo) *PropertyInfo {
	key := FoldName(p.Name())
	if v := s.properties[key]; v != nil {
		return v
	}
	s.properties[key] = p
	return p
}

func (s *Schema) AddTask(t *TaskInfo) *TaskInfo {
	key := FoldName(t.Name())
	if v := s.tasks[key]; v != nil {
		return v
	}
	s.tasks[key] = t
	return t
}

func (s *Schema) AddTarget(t *TargetInfo) *TargetInfo {
	key := FoldName(t.Name())
	if v := s.targets[key]; v != nil {
		return v
	}
	s.targets[key] = t
	return t
}

// Contains reports whether the schema has a symbol of the same kind and
// name as sym.
func (s *Schema) Contains(sym Symbol) bool {
	switch x := sym.(type) {
	case *ItemInfo:
		return s.Item(x.Name()) != nil
	case *PropertyInfo:
		return s.Property(x.Name()) != nil
	case *MetadataInfo:
		return x.Item != nil && s.Metadata(x.Item.Name(), x.Name()) != nil
	case *TaskInfo:
		return s.Task(x.Name()) != nil
	case *TargetInfo:
		return s.Target(x.Name()) != nil
	}
	return false
}

// Merge adds the symbols and types of other that s does not have.
func (s *Schema) Merge(other *Schema) {
	for k, v := range other.types {
		if s.types[k] == nil {
			s.types[k] = v
		}
	}
	for _, it := range other.items {
		s.AddItem(it)
	}
	for _, p := range other.properties {
		s.AddProperty(p)
	}
	for _, t := range other.tasks {
		s.AddTask(t)
	}
	for _, t := range other.targets {
		s.AddTarget(t)
	}
}

// Items returns the items in name order.
func (s *Schema) Items() []*ItemInfo { return sortedValues(s.items) }

func (s *Schema) Properties() []*PropertyInfo { return sortedValues(s.properties) }

func (s *Schema) Tasks() []*TaskInfo { return sortedValues(s.tasks) }

func (s *Schema) Targets() []*TargetInfo { return sortedValues(s.targets) }

func sortedValues[T Symbol](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]T, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return values
}

// ----------------------------------------------------------------------------
// Loading

type fileSchema struct {
	License    string                    `yaml:"license"`
	Types      map[string]fileCustomType `yaml:"types"`
	Properties map[string]fileValue      `yaml:"properties"`
	Items      map[string]fileItem       `yaml:"items"`
	Targets    map[string]fileSymbol     `yaml:"targets"`
	Tasks      map[string]fileTask       `yaml:"tasks"`
}

type fileSymbol struct {
	Description string `yaml:"description"`
	Deprecated  string `yaml:"deprecationMessage"`
	HelpURL     string `yaml:"helpUrl"`
}

type fileValue struct {
	fileSymbol `yaml:",inline"`
	Kind       string   `yaml:"kind"`
	Type       string   `yaml:"type"`
	Values     []string `yaml:"values"`
	Default    string   `yaml:"defaultValue"`
	Reserved   bool     `yaml:"reserved"`
	ReadOnly   bool     `yaml:"readOnly"`
	Required   bool     `yaml:"required"`
	Output     bool     `yaml:"output"`
}

type fileItem struct {
	fileSymbol  `yaml:",inline"`
	IncludeKind string               `yaml:"includeKind"`
	Metadata    map[string]fileValue `yaml:"metadata"`
}

type fileTask struct {
	fileSymbol `yaml:",inline"`
	Parameters map[string]fileValue `yaml:"parameters"`
}

type fileCustomType struct {
	Description   string            `yaml:"description"`
	CaseSensitive bool              `yaml:"caseSensitive"`
	Values        map[string]string `yaml:"values"`
}

// Load reads a schema file. Schema files are YAML documents, so JSON
// schemas are accepted too:
//
//	properties:
//	  Configuration:
//	    description: The build configuration.
//	    kind: configuration
//	items:
//	  Compile:
//	    includeKind: file-list
//	    metadata:
//	      Link: {kind: file}
//	tasks:
//	  Copy:
//	    parameters:
//	      SourceFiles: {kind: file-list, required: true}
//	types:
//	  Color:
//	    values: {red: "", green: ""}
func Load(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f fileSchema
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	s := New()
	for _, name := range sortedKeys(f.Types) {
		t := f.Types[name]
		var values []*CustomTypeValue
		for _, v := range sortedKeys(t.Values) {
			values = append(values, NewCustomTypeValue(v, t.Values[v]))
		}
		ct := NewCustomType(name, t.CaseSensitive, values...)
		ct.Description = t.Description
		s.types[FoldName(name)] = ct
	}
	for _, name := range sortedKeys(f.Properties) {
		v := f.Properties[name]
		inf, err := s.valueInfo(name, v)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		s.AddProperty(&PropertyInfo{info: inf, DefaultValue: v.Default, IsReserved: v.Reserved, IsReadOnly: v.ReadOnly})
	}
	for _, name := range sortedKeys(f.Items) {
		v := f.Items[name]
		it := NewItem(name, v.Description)
		it.deprecation, it.helpURL = v.Deprecated, v.HelpURL
		if v.IncludeKind != "" {
			k, ok := ParseValueKind(v.IncludeKind)
			if !ok {
				return nil, fmt.Errorf("item %s: unknown kind %q", name, v.IncludeKind)
			}
			it.IncludeKind = k
		}
		for _, mname := range sortedKeys(v.Metadata) {
			mv := v.Metadata[mname]
			inf, err := s.valueInfo(mname, mv)
			if err != nil {
				return nil, fmt.Errorf("item %s: metadata %s: %w", name, mname, err)
			}
			m := it.AddMetadata(mname, "", Unknown)
			m.info = inf
		}
		s.AddItem(it)
	}
	for _, name := range sortedKeys(f.Targets) {
		v := f.Targets[name]
		t := NewTarget(name, v.Description)
		t.deprecation, t.helpURL = v.Deprecated, v.HelpURL
		s.AddTarget(t)
	}
	for _, name := range sortedKeys(f.Tasks) {
		v := f.Tasks[name]
		t := NewTask(name, v.Description)
		t.deprecation, t.helpURL = v.Deprecated, v.HelpURL
		for _, pname := range sortedKeys(v.Parameters) {
			pv := v.Parameters[pname]
			inf, err := s.valueInfo(pname, pv)
			if err != nil {
				return nil, fmt.Errorf("task %s: parameter %s: %w", name, pname, err)
			}
			p := t.AddParameter(pname, "", Unknown)
			p.info = inf
			p.IsOutput, p.IsRequired = pv.Output, pv.Required
		}
		s.AddTask(t)
	}
	return s, nil
}

func (s *Schema) valueInfo(name string, v fileValue) (info, error) {
	inf := info{
		name:        name,
		description: v.Description,
		deprecation: v.Deprecated,
		helpURL:     v.HelpURL,
	}
	if v.Kind != "" {
		k, ok := ParseValueKind(v.Kind)
		if !ok {
			return inf, fmt.Errorf("unknown kind %q", v.Kind)
		}
		inf.kind = k
	}
	switch {
	case v.Type != "":
		ct := s.CustomType(v.Type)
		if ct == nil {
			return inf, fmt.Errorf("unknown type %q", v.Type)
		}
		inf.customType = ct
		inf.kind = CustomType | inf.kind&modifierMask
	case len(v.Values) > 0:
		values := make([]*CustomTypeValue, len(v.Values))
		for i, name := range v.Values {
			values[i] = NewCustomTypeValue(name, "")
		}
		inf.customType = NewCustomType("", false, values...)
		inf.kind = CustomType | inf.kind&modifierMask
	}
	return inf, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
