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
	"strconv"
	"strings"
	"unicode/utf8"
)

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// ScanEntity scans an entity reference starting at s[i], which must be '&'.
// It returns the length of the reference including the trailing ';'. If the
// reference is malformed, ok is false and n is the number of bytes that were
// examined before the problem was found, not counting the offending byte.
//
// Named references are accepted whether or not the name is predefined.
func ScanEntity(s string, i int) (n int, ok bool) {
	j := i + 1
	if j < len(s) && s[j] == '#' {
		j++
		hex := j < len(s) && (s[j] == 'x' || s[j] == 'X')
		if hex {
			j++
		}
		start := j
		for j < len(s) && (isDigit(s[j]) || hex && isHexLetter(s[j])) {
			j++
		}
		if j == start || j >= len(s) || s[j] != ';' {
			return j - i, false
		}
		return j + 1 - i, true
	}
	if j >= len(s) || !isLetter(s[j]) {
		return j - i, false
	}
	for j < len(s) && (isLetter(s[j]) || isDigit(s[j])) {
		j++
	}
	if j >= len(s) || s[j] != ';' {
		return j - i, false
	}
	return j + 1 - i, true
}

// Unescape decodes the entity references in s. Unknown named references
// and malformed references are left as they are.
func Unescape(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:amp])
	for i := amp; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		n, ok := ScanEntity(s, i)
		if !ok {
			b.WriteByte('&')
			i++
			continue
		}
		ref := s[i+1 : i+n-1]
		if r, ok := decodeCharRef(ref); ok {
			b.WriteRune(r)
		} else if v, ok := predefinedEntities[ref]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(s[i : i+n])
		}
		i += n
	}
	return b.String()
}

func decodeCharRef(ref string) (rune, bool) {
	if len(ref) < 2 || ref[0] != '#' {
		return 0, false
	}
	digits, base := ref[1:], 10
	if digits[0] == 'x' || digits[0] == 'X' {
		digits, base = digits[1:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, false
	}
	return rune(v), true
}

func isLetter(c byte) bool    { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool     { return c >= '0' && c <= '9' }
func isHexLetter(c byte) bool { return c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Unescaped returns the text with entity references decoded.
func (t *Text) Unescaped() string { return Unescape(t.Value) }

// TrimmedUnescaped returns the text with surrounding whitespace removed and
// entity references decoded, together with the offset and length of the
// trimmed raw text.
func (t *Text) TrimmedUnescaped() (value string, offset, length int) {
	raw := t.Value
	start, end := 0, len(raw)
	for start < end && isSpace(raw[start]) {
		start++
	}
	for end > start && isSpace(raw[end-1]) {
		end--
	}
	// Decoded entities may themselves be whitespace.
	value = strings.TrimSpace(Unescape(raw[start:end]))
	return value, t.Offset + start, end - start
}

// IsNullOrEmpty reports whether n is nil or empty text.
func IsNullOrEmpty(n Node) bool {
	if n == nil {
		return true
	}
	t, ok := n.(*Text)
	return ok && t.Length == 0
}

// IsNullOrWhitespace reports whether n is nil or text that is empty after
// decoding and trimming.
func IsNullOrWhitespace(n Node) bool {
	if n == nil {
		return true
	}
	t, ok := n.(*Text)
	return ok && strings.TrimSpace(t.Unescaped()) == ""
}

// AsConstBool returns the value of a boolean literal or of the text "true"
// or "false" in any case.
func AsConstBool(n Node) (value, ok bool) {
	switch x := n.(type) {
	case *BoolLiteral:
		return x.Value, true
	case *Text:
		switch {
		case strings.EqualFold(x.Value, "true"):
			return true, true
		case strings.EqualFold(x.Value, "false"):
			return false, true
		}
	}
	return false, false
}

// AsConstString returns the raw value of a text node.
func AsConstString(n Node) (string, bool) {
	if t, ok := n.(*Text); ok {
		return t.Value, true
	}
	return "", false
}
