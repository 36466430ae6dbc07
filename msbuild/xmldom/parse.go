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

package xmldom

import (
	"fmt"
	"strings"

	"msbuildlang.org/go/msbuild/token"
)

// Parse reads the XML in text. It always returns a document, recording
// malformed markup in its Problems.
func Parse(filename, text string) *Document {
	r := &reader{src: text, doc: &Document{Filename: filename, Text: text}}
	r.run()
	return r.doc
}

type reader struct {
	src   string
	pos   int
	doc   *Document
	stack []*Element
}

func (r *reader) errorf(span token.Span, format string, args ...any) {
	r.doc.Problems = append(r.doc.Problems, Problem{Span: span, Message: fmt.Sprintf(format, args...)})
}

func (r *reader) top() *Element {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *reader) run() {
	for r.pos < len(r.src) {
		if r.src[r.pos] != '<' {
			r.charData()
			continue
		}
		rest := r.src[r.pos:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			r.skipPast("-->", "comment")
		case strings.HasPrefix(rest, "<![CDATA["):
			r.cdata()
		case strings.HasPrefix(rest, "<?"):
			r.skipPast("?>", "processing instruction")
		case strings.HasPrefix(rest, "<!"):
			r.skipPast(">", "declaration")
		case strings.HasPrefix(rest, "</"):
			r.closingTag()
		case len(rest) > 1 && isNameStart(rest[1]):
			r.startTag()
		default:
			r.errorf(token.NewSpan(r.pos, 1), "unexpected '<'")
			r.charData()
		}
	}
	for i := len(r.stack) - 1; i >= 0; i-- {
		el := r.stack[i]
		el.end = len(r.src)
		r.errorf(el.NameSpan, "element %s is not closed", el.Name)
	}
	r.stack = nil
}

func (r *reader) skipPast(end, what string) {
	start := r.pos
	i := strings.Index(r.src[r.pos:], end)
	if i < 0 {
		r.pos = len(r.src)
		r.errorf(token.Span{Start: start, End: r.pos}, "unterminated %s", what)
		return
	}
	r.pos += i + len(end)
}

// charData reads text up to the next '<' other than the one at the
// current position.
func (r *reader) charData() {
	start := r.pos
	r.pos++
	if i := strings.IndexByte(r.src[r.pos:], '<'); i >= 0 {
		r.pos += i
	} else {
		r.pos = len(r.src)
	}
	r.addText(&Text{Value: r.src[start:r.pos], span: token.Span{Start: start, End: r.pos}})
}

func (r *reader) cdata() {
	start := r.pos + len("<![CDATA[")
	end := strings.Index(r.src[start:], "]]>")
	if end < 0 {
		r.errorf(token.Span{Start: r.pos, End: len(r.src)}, "unterminated CDATA section")
		end = len(r.src)
		r.pos = end
	} else {
		end += start
		r.pos = end + len("]]>")
	}
	r.addText(&Text{Value: r.src[start:end], CDATA: true, span: token.Span{Start: start, End: end}})
}

func (r *reader) addText(t *Text) {
	if parent := r.top(); parent != nil {
		parent.Children = append(parent.Children, t)
	}
}

func (r *reader) name() (string, token.Span) {
	start := r.pos
	if r.pos < len(r.src) && isNameStart(r.src[r.pos]) {
		r.pos++
		for r.pos < len(r.src) && isNameChar(r.src[r.pos]) {
			r.pos++
		}
	}
	return r.src[start:r.pos], token.Span{Start: start, End: r.pos}
}

func (r *reader) skipSpace() {
	for r.pos < len(r.src) && isSpace(r.src[r.pos]) {
		r.pos++
	}
}

func (r *reader) startTag() {
	start := r.pos
	r.pos++
	el := &Element{}
	el.Name, el.NameSpan = r.name()

loop:
	for {
		r.skipSpace()
		if r.pos >= len(r.src) {
			break
		}
		switch c := r.src[r.pos]; {
		case c == '>':
			r.pos++
			el.tagClosed = true
			break loop
		case c == '/' && strings.HasPrefix(r.src[r.pos:], "/>"):
			r.pos += 2
			el.tagClosed = true
			el.SelfClosing = true
			break loop
		case c == '<':
			break loop
		case isNameStart(c):
			el.Attributes = append(el.Attributes, r.attribute())
		default:
			r.errorf(token.NewSpan(r.pos, 1), "unexpected %q in tag %s", c, el.Name)
			r.pos++
		}
	}
	el.StartTag = token.Span{Start: start, End: r.pos}
	el.end = r.pos

	if parent := r.top(); parent != nil {
		el.Parent = parent
		parent.Children = append(parent.Children, el)
	} else {
		r.doc.Nodes = append(r.doc.Nodes, el)
	}
	switch {
	case el.SelfClosing:
		el.Ended = true
	case el.tagClosed:
		r.stack = append(r.stack, el)
	default:
		r.errorf(el.StartTag, "unterminated start tag %s", el.Name)
	}
}

func (r *reader) attribute() *Attribute {
	a := &Attribute{}
	start := r.pos
	a.Name, a.NameSpan = r.name()
	a.span = a.NameSpan

	save := r.pos
	r.skipSpace()
	if r.pos >= len(r.src) || r.src[r.pos] != '=' {
		r.pos = save
		r.errorf(a.NameSpan, "attribute %s has no value", a.Name)
		return a
	}
	r.pos++
	r.skipSpace()
	if r.pos >= len(r.src) || !isQuote(r.src[r.pos]) {
		r.errorf(a.NameSpan, "value of attribute %s is not quoted", a.Name)
		a.span = token.Span{Start: start, End: r.pos}
		return a
	}
	q := r.src[r.pos]
	r.pos++
	a.HasValue = true
	a.ValueOffset = r.pos

	// '<' cannot appear in a value, so a value that runs into one is
	// missing its closing quote.
	end := strings.IndexAny(r.src[r.pos:], string(q)+"<")
	switch {
	case end < 0:
		a.Value = r.src[r.pos:]
		r.pos = len(r.src)
	case r.src[r.pos+end] == '<':
		a.Value = r.src[r.pos : r.pos+end]
		r.pos += end
	default:
		a.Value = r.src[r.pos : r.pos+end]
		r.pos += end + 1
		a.Terminated = true
	}
	if !a.Terminated {
		r.errorf(a.NameSpan, "value of attribute %s is not terminated", a.Name)
	}
	a.span = token.Span{Start: start, End: r.pos}
	return a
}

func (r *reader) closingTag() {
	start := r.pos
	r.pos += 2
	name, nameSpan := r.name()
	r.skipSpace()
	if r.pos < len(r.src) && r.src[r.pos] == '>' {
		r.pos++
	} else {
		r.errorf(token.Span{Start: start, End: r.pos}, "unterminated closing tag %s", name)
	}
	span := token.Span{Start: start, End: r.pos}

	i := len(r.stack) - 1
	for ; i >= 0; i-- {
		if r.stack[i].Name == name {
			break
		}
	}
	if i < 0 {
		r.errorf(nameSpan, "unexpected closing tag %s", name)
		return
	}
	for j := len(r.stack) - 1; j > i; j-- {
		el := r.stack[j]
		el.end = start
		r.errorf(el.NameSpan, "element %s is not closed", el.Name)
	}
	el := r.stack[i]
	el.ClosingTag = &ClosingTag{Name: name, span: span}
	el.Ended = true
	el.end = r.pos
	r.stack = r.stack[:i]
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isQuote(c byte) bool { return c == '"' || c == '\'' }

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == ':' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.'
}
