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

package syntax

import "msbuildlang.org/go/msbuild/schema"

// ElementSymbol returns the symbol that describes the value of an element
// with the given syntax. For abstract elements this is the item, property,
// metadata or task with the element's name, taken from schemas or created
// if no schema declares it. parentName is the name of the element's parent,
// which qualifies metadata. Other elements are described by their syntax.
func ElementSymbol(schemas schema.Schemas, el *Element, parentName, name string) schema.TypedSymbol {
	switch el.kind {
	case Item:
		if it := schemas.Item(name); it != nil {
			return it
		}
		return schema.NewItem(name, "")
	case Property:
		if p := schemas.Property(name); p != nil {
			return p
		}
		return schema.NewProperty(name, "", schema.Unknown)
	case Metadata:
		if m := schemas.Metadata(parentName, name); m != nil {
			return m
		}
		return schema.NewMetadata(itemOrNew(schemas, parentName), name)
	case Task:
		if t := schemas.Task(name); t != nil {
			return t
		}
		return schema.NewTask(name, "")
	}
	return el
}

// AttributeSymbol returns the symbol that describes the value of an
// attribute with the given syntax, together with the attribute syntax to
// use for it.
//
// Metadata attributes are described by the metadata of the element's item
// and parameter attributes by the parameter of the element's task. The
// Include, Exclude, Update and Remove attributes take the include kind of
// the item if it declares one, in which case a specialized copy of attr is
// returned.
func AttributeSymbol(schemas schema.Schemas, attr *Attribute, elementName, name string) (schema.TypedSymbol, *Attribute) {
	switch attr.kind {
	case ItemMetadata:
		if m := schemas.Metadata(elementName, name); m != nil {
			return m, attr
		}
		return schema.NewMetadata(itemOrNew(schemas, elementName), name), attr
	case TaskParameter:
		if p := schemas.TaskParameter(elementName, name); p != nil {
			return p, attr
		}
		return schema.NewTask(elementName, "").AddParameter(name, "", schema.Unknown), attr
	}
	if attr.kind.IsItemOperation() {
		if it := schemas.Item(elementName); it != nil && it.IncludeKind != schema.Unknown {
			spec := attr.WithValueKind(it.IncludeKind)
			return spec, spec
		}
	}
	return attr, attr
}

func itemOrNew(schemas schema.Schemas, name string) *schema.ItemInfo {
	if it := schemas.Item(name); it != nil {
		return it
	}
	return schema.NewItem(name, "")
}
