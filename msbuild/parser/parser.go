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

// Package parser implements a parser for MSBuild expressions and
// conditions.
//
// The parser never fails. Malformed text is represented in the tree by
// *ast.Error and *ast.IncompleteError nodes carrying the most specific
// ast.ErrorKind for what was expected, so that callers always get a tree
// with accurate ranges to work with.
package parser

import (
	"strconv"
	"strings"

	"msbuildlang.org/go/msbuild/ast"
)

// Options control which constructs are permitted in an expression.
// Disallowed items and metadata are still parsed, but are reported as
// ItemsDisallowed and MetadataDisallowed errors.
type Options int

const (
	// Items permits @(...) references.
	Items Options = 1 << iota
	// Metadata permits %(...) references.
	Metadata
	// Lists splits the value into semicolon separated entries.
	Lists

	None                  Options = 0
	ItemsAndLists                 = Items | Lists
	ItemsAndMetadata              = Items | Metadata
	ItemsMetadataAndLists         = Items | Metadata | Lists
)

func (o Options) String() string {
	if o == None {
		return "none"
	}
	var parts []string
	if o&Items != 0 {
		parts = append(parts, "items")
	}
	if o&Metadata != 0 {
		parts = append(parts, "metadata")
	}
	if o&Lists != 0 {
		parts = append(parts, "lists")
	}
	return strings.Join(parts, ",")
}

// Parse parses an expression. The offsets of the resulting nodes are
// relative to baseOffset, so a value can be parsed in place within a larger
// file. Parse returns nil for empty text.
//
// Parse is deterministic: the tree for a given baseOffset is the tree for
// offset zero with every range shifted by baseOffset.
func Parse(text string, opts Options, baseOffset int) ast.Node {
	if text == "" {
		return nil
	}
	p := &parser{text: text, base: baseOffset, opts: opts}
	return p.parseValue()
}

type parser struct {
	text string
	base int
	opts Options
	pos  int
}

func (p *parser) off(i int) int { return p.base + i }

func (p *parser) eof() bool { return p.pos >= len(p.text) }

// peek returns the current byte, or 0 at the end of the text.
func (p *parser) peek() byte { return p.peekAt(0) }

func (p *parser) peekAt(n int) byte {
	if p.pos+n < len(p.text) {
		return p.text[p.pos+n]
	}
	return 0
}

func (p *parser) skipSpace() {
	for p.pos < len(p.text) && isSpace(p.text[p.pos]) {
		p.pos++
	}
}

// rangeFrom returns the range from the text index start to the cursor.
func (p *parser) rangeFrom(start int) ast.Range {
	return ast.Range{Offset: p.off(start), Length: p.pos - start}
}

// errorHere returns an error node for the byte at the cursor and moves the
// cursor past it.
func (p *parser) errorHere(kind ast.ErrorKind) *ast.Error {
	eof := p.eof()
	e := &ast.Error{Range: ast.Range{Offset: p.off(p.pos)}, Kind: kind, WasEOF: eof}
	if !eof {
		e.Length = 1
		p.pos++
	}
	return e
}

// incomplete wraps a partially parsed node in an error of the given kind.
// The error covers the node and the offending byte at the cursor, if any,
// and the cursor is moved past it.
func (p *parser) incomplete(kind ast.ErrorKind, n ast.Node) *ast.IncompleteError {
	eof := p.eof()
	end := p.off(p.pos)
	if !eof {
		end++
		p.pos++
	}
	if n.End() > end {
		end = n.End()
	}
	return &ast.IncompleteError{
		Range:  ast.Range{Offset: n.Pos(), Length: end - n.Pos()},
		Kind:   kind,
		WasEOF: eof,
		Node:   n,
	}
}

// sub parses the text between the indexes from and to as a nested value,
// such as the content of a quoted string.
func (p *parser) sub(from, to int) ast.Node {
	if from >= to {
		return nil
	}
	sp := &parser{
		text: p.text[from:to],
		base: p.off(from),
		// Quoted arguments and transforms may reference metadata even where
		// the enclosing value may not.
		opts: p.opts&^Lists | Metadata,
	}
	return sp.parseValue()
}

// ----------------------------------------------------------------------------
// Values

func (p *parser) parseValue() ast.Node {
	var entries []ast.Node
	isList := false
	for {
		start := p.pos
		n := p.parseConcat()
		if n == nil {
			// Empty entries keep their place in the list.
			n = &ast.Text{Range: ast.Range{Offset: p.off(start)}, IsPure: true}
		}
		entries = append(entries, n)
		if p.eof() {
			break
		}
		isList = true
		p.pos++ // ';'
	}
	if !isList {
		if ast.IsNullOrEmpty(entries[0]) {
			return nil
		}
		return entries[0]
	}
	return &ast.List{
		Range: ast.Range{Offset: p.base, Length: len(p.text)},
		Nodes: entries,
	}
}

// parseConcat parses text and references up to the end of the text or, if
// lists are enabled, the next semicolon.
func (p *parser) parseConcat() ast.Node {
	var pieces []ast.Node
	textStart := p.pos
	flush := func() {
		if p.pos > textStart {
			pieces = append(pieces, &ast.Text{
				Range: p.rangeFrom(textStart),
				Value: p.text[textStart:p.pos],
			})
		}
	}
loop:
	for !p.eof() {
		c := p.text[p.pos]
		switch {
		case c == ';' && p.opts&Lists != 0:
			break loop
		case isReferenceStart(c) && p.peekAt(1) == '(':
			flush()
			n, _ := p.parseReference(c, p.opts&Items != 0, p.opts&Metadata != 0)
			pieces = append(pieces, n)
			textStart = p.pos
		case c == '&':
			n, ok := ast.ScanEntity(p.text, p.pos)
			if ok {
				p.pos += n
				continue
			}
			flush()
			start := p.pos
			p.pos += n
			eof := p.eof()
			if !eof {
				p.pos++
			}
			pieces = append(pieces, &ast.Error{
				Range:  p.rangeFrom(start),
				Kind:   ast.IncompleteOrUnsupportedEntity,
				WasEOF: eof,
			})
			textStart = p.pos
		default:
			p.pos++
		}
	}
	flush()
	switch len(pieces) {
	case 0:
		return nil
	case 1:
		if t, ok := pieces[0].(*ast.Text); ok {
			t.IsPure = strings.IndexByte(t.Value, '&') < 0
		}
		return pieces[0]
	}
	first, last := pieces[0], pieces[len(pieces)-1]
	return &ast.Concat{
		Range: ast.Range{Offset: first.Pos(), Length: last.End() - first.Pos()},
		Nodes: pieces,
	}
}

// parseReference parses a $(), @() or %() reference starting at the
// cursor. Disallowed items and metadata that parse without error are
// replaced by an error spanning the reference.
func (p *parser) parseReference(c byte, allowItems, allowMetadata bool) (ast.Node, bool) {
	switch c {
	case '$':
		return p.parseProperty()
	case '@':
		n, hasErr := p.parseItem()
		if !hasErr && !allowItems {
			return &ast.Error{Range: ast.Range{Offset: n.Pos(), Length: n.Len()}, Kind: ast.ItemsDisallowed}, true
		}
		return n, hasErr
	default:
		n, hasErr := p.parseMetadata()
		if !hasErr && !allowMetadata {
			return &ast.Error{Range: ast.Range{Offset: n.Pos(), Length: n.Len()}, Kind: ast.MetadataDisallowed}, true
		}
		return n, hasErr
	}
}

// ----------------------------------------------------------------------------
// Properties

func (p *parser) parseProperty() (ast.Node, bool) {
	start := p.pos
	p.pos += 2
	p.skipSpace()

	if hasPrefixFold(p.text[p.pos:], "Registry:") {
		return p.parseRegistryValue(start)
	}

	var expr ast.Node
	if p.peek() == '[' {
		n, hasErr := p.parseStaticInvocation()
		if hasErr {
			return p.property(start, n), true
		}
		expr = n
	} else {
		ns := p.pos
		name, ok := p.parseName()
		if !ok {
			return p.incomplete(ast.ExpectingPropertyName, p.property(start, nil)), true
		}
		expr = &ast.PropertyName{Range: p.rangeFrom(ns), Name: name}
	}

	for {
		p.skipSpace()
		switch p.peek() {
		case ')':
			p.pos++
			return p.property(start, expr), false
		case '.':
			p.pos++
			n, hasErr := p.parseMember(expr.Pos(), expr, ast.InstanceFunction)
			expr = n
			if hasErr {
				return p.property(start, expr), true
			}
		case '[':
			args, hasErr := p.parseArgumentList(']')
			expr = &ast.FunctionInvocation{
				Range:     ast.Range{Offset: expr.Pos(), Length: p.off(p.pos) - expr.Pos()},
				Kind:      ast.Indexer,
				Target:    expr,
				Arguments: args,
			}
			if hasErr {
				return p.property(start, expr), true
			}
		default:
			kind := ast.ExpectingRightParenOrPeriod
			if isBareMember(expr) {
				kind = ast.IncompleteProperty
			}
			return p.incomplete(kind, p.property(start, expr)), true
		}
	}
}

func (p *parser) property(start int, expr ast.Node) *ast.Property {
	return &ast.Property{Range: p.rangeFrom(start), Expression: expr}
}

// isBareMember reports whether n is a member access without arguments,
// such as the Length in $(Foo.Length).
func isBareMember(n ast.Node) bool {
	inv, ok := n.(*ast.FunctionInvocation)
	return ok && inv.Function != nil && inv.Arguments == nil
}

func (p *parser) parseRegistryValue(start int) (ast.Node, bool) {
	rs := p.pos
	end := strings.IndexByte(p.text[rs:], ')')
	if end < 0 {
		p.pos = len(p.text)
		reg := &ast.RegistryValue{Range: p.rangeFrom(rs), Path: p.text[rs+len("Registry:"):]}
		return p.incomplete(ast.ExpectingRightParen, p.property(start, reg)), true
	}
	p.pos = rs + end
	reg := &ast.RegistryValue{Range: p.rangeFrom(rs), Path: p.text[rs+len("Registry:") : p.pos]}
	p.pos++
	return p.property(start, reg), false
}

// parseStaticInvocation parses [Class.Name]::Member starting at the '['.
func (p *parser) parseStaticInvocation() (ast.Node, bool) {
	bs := p.pos
	p.pos++
	p.skipSpace()
	if !isNameStart(p.peek()) {
		return p.errorHere(ast.ExpectingClassName), true
	}
	cls, hasErr := p.parseClassName()
	if hasErr {
		return cls, true
	}
	p.skipSpace()
	if !strings.HasPrefix(p.text[p.pos:], "]::") {
		inv := &ast.FunctionInvocation{Range: p.rangeFrom(bs), Kind: ast.StaticFunction, Target: cls}
		return p.incomplete(ast.ExpectingBracketColonColon, inv), true
	}
	p.pos += len("]::")
	return p.parseMember(p.off(bs), cls, ast.StaticFunction)
}

// parseClassName parses a dotted name. Whitespace is permitted around the
// dots.
func (p *parser) parseClassName() (ast.Node, bool) {
	start := p.pos
	first, _ := p.parseName()
	parts := []string{first}
	end := p.pos
	for {
		save := p.pos
		p.skipSpace()
		if p.peek() != '.' {
			p.pos = save
			break
		}
		p.pos++
		p.skipSpace()
		name, ok := p.parseName()
		if !ok {
			cls := &ast.ClassReference{
				Range: ast.Range{Offset: p.off(start), Length: end - start},
				Name:  strings.Join(parts, "."),
			}
			return p.incomplete(ast.ExpectingClassNameComponent, cls), true
		}
		parts = append(parts, name)
		end = p.pos
	}
	return &ast.ClassReference{
		Range: ast.Range{Offset: p.off(start), Length: end - start},
		Name:  strings.Join(parts, "."),
	}, false
}

// parseMember parses the method or member name following a '.' or '::',
// and its arguments if there are any. start is the absolute offset at which
// the resulting invocation begins.
func (p *parser) parseMember(start int, target ast.Node, kind ast.InvocationKind) (ast.Node, bool) {
	p.skipSpace()
	ns := p.pos
	name, ok := p.parseName()
	if !ok {
		inv := &ast.FunctionInvocation{
			Range:  ast.Range{Offset: start, Length: p.off(p.pos) - start},
			Kind:   kind,
			Target: target,
		}
		return p.incomplete(ast.ExpectingMethodName, inv), true
	}
	inv := &ast.FunctionInvocation{
		Kind:     kind,
		Target:   target,
		Function: &ast.FunctionName{Range: p.rangeFrom(ns), Name: name},
	}
	save := p.pos
	p.skipSpace()
	if p.peek() != '(' {
		p.pos = save
		inv.Range = ast.Range{Offset: start, Length: p.off(p.pos) - start}
		return inv, false
	}
	args, hasErr := p.parseArgumentList(')')
	inv.Arguments = args
	inv.Range = ast.Range{Offset: start, Length: p.off(p.pos) - start}
	return inv, hasErr
}

// ----------------------------------------------------------------------------
// Arguments

// parseArgumentList parses a comma separated argument list starting at the
// opening bracket, up to the given closing bracket.
func (p *parser) parseArgumentList(closing byte) (ast.Node, bool) {
	start := p.pos
	p.pos++
	list := &ast.ArgumentList{}
	p.skipSpace()
	if p.peek() == closing {
		p.pos++
		list.Range = p.rangeFrom(start)
		return list, false
	}
	expecting := ast.ExpectingRightParenOrValue
	for {
		arg, hasErr, ok := p.parseArgument()
		if !ok {
			list.Range = p.rangeFrom(start)
			return p.incomplete(expecting, list), true
		}
		list.Arguments = append(list.Arguments, arg)
		if hasErr {
			list.Range = p.rangeFrom(start)
			return list, true
		}
		p.skipSpace()
		switch p.peek() {
		case closing:
			p.pos++
			list.Range = p.rangeFrom(start)
			return list, false
		case ',':
			p.pos++
			p.skipSpace()
			expecting = ast.ExpectingValue
		default:
			list.Range = p.rangeFrom(start)
			return p.incomplete(ast.ExpectingRightParenOrComma, list), true
		}
	}
}

// parseArgument parses a single argument. ok is false if there is no
// argument at the cursor.
func (p *parser) parseArgument() (n ast.Node, hasErr, ok bool) {
	c := p.peek()
	switch {
	case p.eof():
		return nil, false, false
	case isQuote(c):
		n, hasErr = p.parseQuoted()
		return n, hasErr, true
	case isReferenceStart(c) && p.peekAt(1) == '(':
		n, hasErr = p.parseReference(c, p.opts&Items != 0, true)
		return n, hasErr, true
	case isDigit(c) || c == '.' || (c == '-' || c == '+') && (isDigit(p.peekAt(1)) || p.peekAt(1) == '.'):
		n, hasErr = p.parseNumber()
		return n, hasErr, true
	case isNameStart(c):
		n, hasErr = p.parseClassName()
		if cls, ok := n.(*ast.ClassReference); ok {
			switch {
			case strings.EqualFold(cls.Name, "true"):
				n = &ast.BoolLiteral{Range: cls.Range, Value: true}
			case strings.EqualFold(cls.Name, "false"):
				n = &ast.BoolLiteral{Range: cls.Range, Value: false}
			}
		}
		return n, hasErr, true
	}
	return nil, false, false
}

func (p *parser) parseNumber() (ast.Node, bool) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	hex := hasPrefixFold(p.text[p.pos:], "0x")
scan:
	for !p.eof() {
		switch c := p.text[p.pos]; {
		case isNameChar(c) || c == '.':
		case (c == '-' || c == '+') && !hex && (p.text[p.pos-1] == 'e' || p.text[p.pos-1] == 'E'):
			// signed exponent
		default:
			break scan
		}
		p.pos++
	}
	tok := p.text[start:p.pos]
	digits := strings.TrimLeft(tok, "+-")
	if digits[0] == '.' && (len(digits) == 1 || !isDigit(digits[1])) {
		return &ast.Error{Range: p.rangeFrom(start), Kind: ast.IncompleteValue, WasEOF: p.eof()}, true
	}
	if hex {
		v, err := strconv.ParseInt(digits[2:], 16, 64)
		if err != nil {
			return &ast.Error{Range: p.rangeFrom(start), Kind: ast.CouldNotParseNumber}, true
		}
		if tok[0] == '-' {
			v = -v
		}
		return &ast.IntLiteral{Range: p.rangeFrom(start), Value: v}, false
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return &ast.IntLiteral{Range: p.rangeFrom(start), Value: v}, false
	}
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return &ast.FloatLiteral{Range: p.rangeFrom(start), Value: v}, false
	}
	return &ast.Error{Range: p.rangeFrom(start), Kind: ast.CouldNotParseNumber}, true
}

// parseQuoted parses a quoted string starting at the opening quote. The
// content is parsed as a nested expression.
func (p *parser) parseQuoted() (ast.Node, bool) {
	start := p.pos
	q := p.text[start]
	end := strings.IndexByte(p.text[start+1:], q)
	if end < 0 {
		inner := p.sub(start+1, len(p.text))
		p.pos = len(p.text)
		qe := &ast.QuotedExpression{Range: p.rangeFrom(start), Quote: q, Expression: inner}
		return p.incomplete(ast.IncompleteString, qe), true
	}
	end += start + 1
	inner := p.sub(start+1, end)
	p.pos = end + 1
	qe := &ast.QuotedExpression{Range: p.rangeFrom(start), Quote: q, Expression: inner}
	return qe, inner != nil && len(ast.Errors(inner)) > 0
}

// ----------------------------------------------------------------------------
// Items

func (p *parser) parseItem() (ast.Node, bool) {
	start := p.pos
	p.pos += 2
	p.skipSpace()
	ns := p.pos
	name, ok := p.parseName()
	if !ok {
		return p.incomplete(ast.ExpectingItemName, p.item(start, nil)), true
	}
	in := &ast.ItemName{Range: p.rangeFrom(ns), Name: name}
	p.skipSpace()
	switch p.peek() {
	case ')':
		p.pos++
		return p.item(start, in), false
	case '-':
		if p.peekAt(1) != '>' {
			return p.incomplete(ast.ExpectingRightAngleBracket, p.item(start, in)), true
		}
		p.pos += 2
	default:
		return p.incomplete(ast.ExpectingRightParenOrDash, p.item(start, in)), true
	}

	p.skipSpace()
	var expr ast.Node
	switch c := p.peek(); {
	case isQuote(c):
		tr, hasErr := p.parseTransform(in)
		if hasErr {
			return p.item(start, tr), true
		}
		expr = tr
	case isNameStart(c):
		inv, hasErr := p.parseItemFunction(in)
		if hasErr {
			return p.item(start, inv), true
		}
		expr = inv
	default:
		return p.incomplete(ast.ExpectingMethodOrTransform, p.item(start, in)), true
	}

	p.skipSpace()
	if p.peek() != ')' {
		return p.incomplete(ast.ExpectingRightParen, p.item(start, expr)), true
	}
	p.pos++
	return p.item(start, expr), false
}

func (p *parser) item(start int, expr ast.Node) *ast.Item {
	return &ast.Item{Range: p.rangeFrom(start), Expression: expr}
}

func (p *parser) parseTransform(target *ast.ItemName) (ast.Node, bool) {
	tq, hasErr := p.parseQuoted()
	tr := &ast.ItemTransform{Target: target, Transform: tq}
	setRange := func() {
		tr.Range = ast.Range{Offset: target.Pos(), Length: p.off(p.pos) - target.Pos()}
	}
	if hasErr {
		setRange()
		return tr, true
	}
	save := p.pos
	p.skipSpace()
	if p.peek() != ',' {
		p.pos = save
		setRange()
		return tr, false
	}
	p.pos++
	p.skipSpace()
	if !isQuote(p.peek()) {
		setRange()
		return p.incomplete(ast.ExpectingValue, tr), true
	}
	sq, hasErr := p.parseQuoted()
	tr.Separator = sq
	setRange()
	return tr, hasErr
}

// parseItemFunction parses Name(args) following a '->'. Item functions may
// be chained with further '->'.
func (p *parser) parseItemFunction(target ast.Node) (ast.Node, bool) {
	ns := p.pos
	name, _ := p.parseName()
	inv := &ast.FunctionInvocation{
		Kind:     ast.ItemFunction,
		Target:   target,
		Function: &ast.FunctionName{Range: p.rangeFrom(ns), Name: name},
	}
	setRange := func() {
		inv.Range = ast.Range{Offset: target.Pos(), Length: p.off(p.pos) - target.Pos()}
	}
	p.skipSpace()
	if p.peek() != '(' {
		setRange()
		return p.incomplete(ast.ExpectingLeftParen, inv), true
	}
	args, hasErr := p.parseArgumentList(')')
	inv.Arguments = args
	setRange()
	if hasErr {
		return inv, true
	}
	save := p.pos
	p.skipSpace()
	if p.peek() == '-' && p.peekAt(1) == '>' {
		p.pos += 2
		p.skipSpace()
		if !isNameStart(p.peek()) {
			return p.incomplete(ast.ExpectingMethodName, inv), true
		}
		return p.parseItemFunction(inv)
	}
	p.pos = save
	return inv, false
}

// ----------------------------------------------------------------------------
// Metadata

func (p *parser) parseMetadata() (ast.Node, bool) {
	start := p.pos
	p.pos += 2
	p.skipSpace()
	m := &ast.Metadata{NameOffset: p.off(p.pos)}
	fail := func(kind ast.ErrorKind) (ast.Node, bool) {
		m.Range = p.rangeFrom(start)
		return p.incomplete(kind, m), true
	}
	ns := p.pos
	name, ok := p.parseName()
	if !ok {
		return fail(ast.ExpectingMetadataOrItemName)
	}
	m.Name, m.NameOffset = name, p.off(ns)
	p.skipSpace()
	switch p.peek() {
	case ')':
		p.pos++
		m.Range = p.rangeFrom(start)
		return m, false
	case '.':
		p.pos++
	case '-':
		// %(Item->Metadata) is nonstandard but accepted by MSBuild.
		if p.peekAt(1) != '>' {
			return fail(ast.ExpectingRightAngleBracket)
		}
		p.pos += 2
	default:
		return fail(ast.ExpectingRightParenOrPeriod)
	}

	m.Item, m.ItemOffset = m.Name, m.NameOffset
	p.skipSpace()
	ns = p.pos
	name, ok = p.parseName()
	if !ok {
		m.Name, m.NameOffset = "", p.off(p.pos)
		return fail(ast.ExpectingMetadataName)
	}
	m.Name, m.NameOffset = name, p.off(ns)
	p.skipSpace()
	if p.peek() != ')' {
		return fail(ast.ExpectingRightParen)
	}
	p.pos++
	m.Range = p.rangeFrom(start)
	return m, false
}

// ----------------------------------------------------------------------------
// Names

// parseName scans a name at the cursor. A '-' is part of a name only when
// it is followed by another name character, so that "Foo->" ends at "Foo".
func (p *parser) parseName() (string, bool) {
	if !isNameStart(p.peek()) {
		return "", false
	}
	start := p.pos
	p.pos++
	for !p.eof() {
		c := p.text[p.pos]
		if isNameChar(c) || c == '-' && (isNameChar(p.peekAt(1)) || p.peekAt(1) == '-') {
			p.pos++
			continue
		}
		break
	}
	return p.text[start:p.pos], true
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isNameChar(c byte) bool { return isNameStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isQuote(c byte) bool { return c == '\'' || c == '"' || c == '`' }

func isReferenceStart(c byte) bool { return c == '$' || c == '@' || c == '%' }

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
