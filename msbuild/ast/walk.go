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

import "iter"

// Walk traverses an expression tree in depth-first order: It starts by
// calling before(node); node must not be nil. If before returns true, Walk
// invokes itself recursively for each of the non-nil children of node,
// followed by a call of after. Both functions may be nil. If before is nil,
// it is assumed to always return true.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if before != nil && !before(node) {
		return
	}
	for _, c := range children(node) {
		Walk(c, before, after)
	}
	if after != nil {
		after(node)
	}
}

// Descendants returns node followed by all of its descendants in
// depth-first order.
func Descendants(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if node != nil {
			descend(node, yield)
		}
	}
}

func descend(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range children(n) {
		if !descend(c, yield) {
			return false
		}
	}
	return true
}

// Errors returns all error nodes in the tree rooted at node, outermost
// first.
func Errors(node Node) []Node {
	var errs []Node
	for n := range Descendants(node) {
		if _, _, ok := ErrorInfo(n); ok {
			errs = append(errs, n)
		}
	}
	return errs
}

// children returns the non-nil children of n in source order.
func children(n Node) []Node {
	var c []Node
	add := func(n Node) {
		if n != nil {
			c = append(c, n)
		}
	}
	switch x := n.(type) {
	case *Concat:
		return x.Nodes
	case *List:
		return x.Nodes
	case *QuotedExpression:
		add(x.Expression)
	case *ParenGroup:
		add(x.Expression)
	case *Property:
		add(x.Expression)
	case *Item:
		add(x.Expression)
	case *FunctionInvocation:
		add(x.Target)
		if x.Function != nil {
			add(x.Function)
		}
		add(x.Arguments)
	case *ArgumentList:
		return x.Arguments
	case *ItemTransform:
		if x.Target != nil {
			add(x.Target)
		}
		add(x.Transform)
		add(x.Separator)
	case *ConditionOperator:
		add(x.Left)
		add(x.Right)
	case *ConditionFunction:
		if x.Name != nil {
			add(x.Name)
		}
		add(x.Arguments)
	case *IncompleteError:
		add(x.Node)
	}
	return c
}

// Find returns the innermost node of the tree rooted at n whose range
// contains offset, or nil if n does not contain it.
func Find(n Node, offset int) Node {
	path := FindPath(n, offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// FindPath returns the chain of nodes from n down to the innermost node
// containing offset. The result is empty if n does not contain offset.
//
// The path stands in for parent links: the parent of path[i] is path[i-1].
func FindPath(n Node, offset int) []Node {
	if n == nil || !ContainsOffset(n, offset) {
		return nil
	}
	path := []Node{n}
	for {
		c := findChild(n, offset)
		if c == nil {
			return path
		}
		path = append(path, c)
		n = c
	}
}

func findChild(n Node, offset int) Node {
	switch x := n.(type) {
	case *FunctionInvocation:
		// The function name wins over the target and arguments it abuts.
		if x.Function != nil && ContainsOffset(x.Function, offset) {
			return x.Function
		}
	case *ConditionFunction:
		if x.Name != nil && ContainsOffset(x.Name, offset) {
			return x.Name
		}
	case *ArgumentList:
		// A cursor between "a," and "b" belongs to the later argument.
		for i := len(x.Arguments) - 1; i >= 0; i-- {
			if c := x.Arguments[i]; ContainsOffset(c, offset) {
				return c
			}
		}
		return nil
	case *Error:
		return nil
	}
	for _, c := range children(n) {
		if ContainsOffset(c, offset) {
			return c
		}
	}
	return nil
}

// Parent returns the nearest ancestor of the last node in path that is not
// an *IncompleteError, or nil if there is none.
func Parent(path []Node) Node {
	for i := len(path) - 2; i >= 0; i-- {
		if _, ok := path[i].(*IncompleteError); !ok {
			return path[i]
		}
	}
	return nil
}

// CommonAncestor returns the innermost node of the tree rooted at root that
// contains both a and b, or nil if either is not in the tree.
func CommonAncestor(root, a, b Node) Node {
	pa := pathTo(root, a)
	pb := pathTo(root, b)
	var common Node
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			break
		}
		common = pa[i]
	}
	return common
}

func pathTo(root, target Node) []Node {
	if root == target {
		return []Node{root}
	}
	for _, c := range children(root) {
		if p := pathTo(c, target); p != nil {
			return append([]Node{root}, p...)
		}
	}
	return nil
}
