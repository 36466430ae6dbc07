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

package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at n to w, one node per
// line with its range and salient fields.
func Fprint(w io.Writer, n Node) error {
	if n == nil {
		_, err := fmt.Fprintln(w, "<nil>")
		return err
	}
	var err error
	depth := 0
	Walk(n, func(n Node) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s [%d,%d)%s\n", strings.Repeat("  ", depth), nodeName(n), n.Pos(), n.End(), nodeDetail(n))
		depth++
		return true
	}, func(Node) {
		depth--
	})
	return err
}

// Sprint returns the dump that Fprint would write.
func Sprint(n Node) string {
	var b strings.Builder
	Fprint(&b, n)
	return b.String()
}

func nodeName(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func nodeDetail(n Node) string {
	switch x := n.(type) {
	case *Text:
		if x.IsPure {
			return fmt.Sprintf(" %q pure", x.Value)
		}
		return fmt.Sprintf(" %q", x.Value)
	case *PropertyName:
		return " " + x.Name
	case *ItemName:
		return " " + x.Name
	case *FunctionName:
		return " " + x.Name
	case *ClassReference:
		return " " + x.Name
	case *Metadata:
		if x.IsQualified() {
			return " " + x.Item + "." + x.Name
		}
		return " " + x.Name
	case *RegistryValue:
		return " " + x.Path
	case *FunctionInvocation:
		return " " + x.Kind.String()
	case *IntLiteral:
		return fmt.Sprintf(" %d", x.Value)
	case *FloatLiteral:
		return fmt.Sprintf(" %g", x.Value)
	case *BoolLiteral:
		return fmt.Sprintf(" %t", x.Value)
	case *QuotedExpression:
		return fmt.Sprintf(" %c", x.Quote)
	case *ConditionOperator:
		return " " + x.Op.String()
	case *Error:
		return errorDetail(x.Kind, x.WasEOF)
	case *IncompleteError:
		return errorDetail(x.Kind, x.WasEOF)
	}
	return ""
}

func errorDetail(k ErrorKind, eof bool) string {
	if eof {
		return " " + k.String() + " eof"
	}
	return " " + k.String()
}
