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
	"msbuildlang.org/go/msbuild/ast"
	"msbuildlang.org/go/msbuild/schema"
)

// A FunctionTypeProvider determines the kind of value a property function
// is invoked on.
type FunctionTypeProvider interface {
	// ResolveType returns the kind of the target of inv, or Unknown.
	ResolveType(inv *ast.FunctionInvocation) schema.ValueKind
}

// SchemaTypeProvider types property function targets using the property
// declarations of a set of schemas and the return kinds of known string
// functions.
type SchemaTypeProvider struct {
	Schemas schema.Schemas
}

func (p SchemaTypeProvider) ResolveType(inv *ast.FunctionInvocation) schema.ValueKind {
	return p.kindOf(inv.Target)
}

func (p SchemaTypeProvider) kindOf(n ast.Node) schema.ValueKind {
	switch x := n.(type) {
	case *ast.PropertyName:
		if prop := p.Schemas.Property(x.Name); prop != nil {
			return schema.InferValueKind(prop)
		}
	case *ast.QuotedExpression:
		return schema.String
	case *ast.FunctionInvocation:
		if x.Kind != ast.InstanceFunction || x.Function == nil {
			break
		}
		if f := schema.LookupFunction(p.kindOf(x.Target), x.Function.Name); f != nil {
			return f.ValueKind()
		}
	}
	return schema.Unknown
}
