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

package parser

import (
	"strings"

	"msbuildlang.org/go/msbuild/ast"
)

// ParseCondition parses the value of a Condition attribute. Conditions
// combine comparisons with "and", "or", "!" and parentheses; operands are
// quoted strings, references, bare words and condition functions such as
// Exists('path'). It returns nil for empty or blank text.
func ParseCondition(text string, baseOffset int) ast.Node {
	p := &parser{text: text, base: baseOffset, opts: ItemsAndMetadata}
	p.skipSpace()
	if p.eof() {
		return nil
	}
	n, hasErr := p.parseOr()
	if hasErr {
		return n
	}
	p.skipSpace()
	if !p.eof() {
		return p.incomplete(ast.UnexpectedCharacter, n)
	}
	return n
}

func (p *parser) parseOr() (ast.Node, bool) {
	return p.parseBinary(ast.Or, "or", (*parser).parseAnd)
}

func (p *parser) parseAnd() (ast.Node, bool) {
	return p.parseBinary(ast.And, "and", (*parser).parseComparison)
}

func (p *parser) parseBinary(op ast.OperatorKind, keyword string, operand func(*parser) (ast.Node, bool)) (ast.Node, bool) {
	left, hasErr := operand(p)
	for !hasErr {
		save := p.pos
		p.skipSpace()
		if !p.matchKeyword(keyword) {
			p.pos = save
			break
		}
		p.pos += len(keyword)
		var right ast.Node
		right, hasErr = operand(p)
		left = &ast.ConditionOperator{
			Range: ast.Range{Offset: left.Pos(), Length: p.off(p.pos) - left.Pos()},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	return left, hasErr
}

func (p *parser) matchKeyword(kw string) bool {
	rest := p.text[p.pos:]
	if !hasPrefixFold(rest, kw) {
		return false
	}
	return len(rest) == len(kw) || !isNameChar(rest[len(kw)])
}

func (p *parser) parseComparison() (ast.Node, bool) {
	left, hasErr := p.parseUnary()
	if hasErr {
		return left, true
	}
	save := p.pos
	p.skipSpace()

	var op ast.OperatorKind
	width := 2
	switch c, next := p.peek(), p.peekAt(1); {
	case c == '=' && next == '=':
		op = ast.Equal
	case c == '!' && next == '=':
		op = ast.NotEqual
	case c == '<' && next == '=':
		op = ast.LessEqual
	case c == '>' && next == '=':
		op = ast.GreaterEqual
	case c == '<':
		op, width = ast.Less, 1
	case c == '>':
		op, width = ast.Greater, 1
	case c == '=' || c == '!':
		p.pos++
		partial := &ast.ConditionOperator{
			Range: ast.Range{Offset: left.Pos(), Length: p.off(p.pos) - left.Pos()},
			Op:    ast.Equal,
			Left:  left,
		}
		if c == '!' {
			partial.Op = ast.NotEqual
		}
		kind := ast.ExpectingEquals
		if p.eof() {
			kind = ast.IncompleteOperator
		}
		return p.incomplete(kind, partial), true
	default:
		p.pos = save
		return left, false
	}
	p.pos += width
	right, hasErr := p.parseUnary()
	return &ast.ConditionOperator{
		Range: ast.Range{Offset: left.Pos(), Length: p.off(p.pos) - left.Pos()},
		Op:    op,
		Left:  left,
		Right: right,
	}, hasErr
}

func (p *parser) parseUnary() (ast.Node, bool) {
	p.skipSpace()
	start := p.pos
	c := p.peek()
	switch {
	case p.eof():
		return p.errorHere(ast.ExpectingValue), true
	case c == '!' && p.peekAt(1) != '=':
		p.pos++
		operand, hasErr := p.parseUnary()
		return &ast.ConditionOperator{Range: p.rangeFrom(start), Op: ast.Not, Right: operand}, hasErr
	case c == '(':
		p.pos++
		inner, hasErr := p.parseOr()
		if hasErr {
			return &ast.ParenGroup{Range: p.rangeFrom(start), Expression: inner}, true
		}
		p.skipSpace()
		if p.peek() != ')' {
			return p.incomplete(ast.ExpectingRightParen, &ast.ParenGroup{Range: p.rangeFrom(start), Expression: inner}), true
		}
		p.pos++
		return &ast.ParenGroup{Range: p.rangeFrom(start), Expression: inner}, false
	case isQuote(c):
		return p.parseQuoted()
	case isReferenceStart(c) && p.peekAt(1) == '(':
		return p.parseReference(c, true, true)
	case isNameStart(c):
		name, _ := p.parseName()
		save := p.pos
		p.skipSpace()
		if p.peek() == '(' {
			fn := &ast.FunctionName{Range: ast.Range{Offset: p.off(start), Length: len(name)}, Name: name}
			args, hasErr := p.parseArgumentList(')')
			return &ast.ConditionFunction{Range: p.rangeFrom(start), Name: fn, Arguments: args}, hasErr
		}
		p.pos = save
		return p.parseBareWord(start), false
	case isBareChar(c):
		return p.parseBareWord(start), false
	}
	return p.errorHere(ast.UnexpectedCharacter), true
}

// parseBareWord scans an unquoted operand such as true, 1.0 or a.b.
func (p *parser) parseBareWord(start int) *ast.Text {
	for !p.eof() && isBareChar(p.text[p.pos]) {
		p.pos++
	}
	v := p.text[start:p.pos]
	return &ast.Text{Range: p.rangeFrom(start), Value: v, IsPure: strings.IndexByte(v, '&') < 0}
}

func isBareChar(c byte) bool {
	return !isSpace(c) && !isQuote(c) && strings.IndexByte("=!<>(),", c) < 0
}
