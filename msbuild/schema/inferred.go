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

// InferredSchema records the symbols observed in a document that were not
// necessarily declared anywhere. Symbols are added with kind Unknown.
type InferredSchema struct {
	Schema
	IsToplevel bool
}

func NewInferred(isToplevel bool) *InferredSchema {
	return &InferredSchema{Schema: *New(), IsToplevel: isToplevel}
}

// SeeItem records an item, returning the recorded symbol.
func (s *InferredSchema) SeeItem(name string) *ItemInfo {
	if it := s.Item(name); it != nil {
		return it
	}
	return s.AddItem(NewItem(name, ""))
}

// SeeProperty records a property.
func (s *InferredSchema) SeeProperty(name string) *PropertyInfo {
	if p := s.Property(name); p != nil {
		return p
	}
	return s.AddProperty(NewProperty(name, "", Unknown))
}

// SeeMetadata records metadata of the given item, recording the item too.
func (s *InferredSchema) SeeMetadata(itemName, name string) *MetadataInfo {
	return s.SeeItem(itemName).AddMetadata(name, "", Unknown)
}

// SeeTarget records a target.
func (s *InferredSchema) SeeTarget(name string) *TargetInfo {
	if t := s.Target(name); t != nil {
		return t
	}
	return s.AddTarget(NewTarget(name, ""))
}

// SeeTask records a task.
func (s *InferredSchema) SeeTask(name string) *TaskInfo {
	if t := s.Task(name); t != nil {
		return t
	}
	return s.AddTask(NewTask(name, ""))
}
