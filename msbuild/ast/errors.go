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

import "strconv"

// ErrorKind describes what the parser expected when it found malformed
// text.
type ErrorKind int

const (
	MetadataDisallowed ErrorKind = iota
	EmptyListEntry
	ExpectingItemName
	ExpectingRightParen
	ExpectingRightParenOrPeriod
	ExpectingPropertyName
	ExpectingMetadataName
	ExpectingMetadataOrItemName
	ExpectingRightAngleBracket
	ExpectingRightParenOrDash
	ItemsDisallowed
	ExpectingMethodName
	ExpectingLeftParen
	ExpectingRightParenOrComma
	ExpectingRightParenOrValue
	ExpectingValue
	CouldNotParseNumber
	IncompleteValue
	ExpectingMethodOrTransform
	ExpectingBracketColonColon
	ExpectingClassName
	ExpectingClassNameComponent
	IncompleteString
	IncompleteProperty
	UnexpectedCharacter
	IncompleteOperator
	ExpectingEquals
	IncompleteOrUnsupportedEntity
)

var errorKindNames = [...]string{
	MetadataDisallowed:            "MetadataDisallowed",
	EmptyListEntry:                "EmptyListEntry",
	ExpectingItemName:             "ExpectingItemName",
	ExpectingRightParen:           "ExpectingRightParen",
	ExpectingRightParenOrPeriod:   "ExpectingRightParenOrPeriod",
	ExpectingPropertyName:         "ExpectingPropertyName",
	ExpectingMetadataName:         "ExpectingMetadataName",
	ExpectingMetadataOrItemName:   "ExpectingMetadataOrItemName",
	ExpectingRightAngleBracket:    "ExpectingRightAngleBracket",
	ExpectingRightParenOrDash:     "ExpectingRightParenOrDash",
	ItemsDisallowed:               "ItemsDisallowed",
	ExpectingMethodName:           "ExpectingMethodName",
	ExpectingLeftParen:            "ExpectingLeftParen",
	ExpectingRightParenOrComma:    "ExpectingRightParenOrComma",
	ExpectingRightParenOrValue:    "ExpectingRightParenOrValue",
	ExpectingValue:                "ExpectingValue",
	CouldNotParseNumber:           "CouldNotParseNumber",
	IncompleteValue:               "IncompleteValue",
	ExpectingMethodOrTransform:    "ExpectingMethodOrTransform",
	ExpectingBracketColonColon:    "ExpectingBracketColonColon",
	ExpectingClassName:            "ExpectingClassName",
	ExpectingClassNameComponent:   "ExpectingClassNameComponent",
	IncompleteString:              "IncompleteString",
	IncompleteProperty:            "IncompleteProperty",
	UnexpectedCharacter:           "UnexpectedCharacter",
	IncompleteOperator:            "IncompleteOperator",
	ExpectingEquals:               "ExpectingEquals",
	IncompleteOrUnsupportedEntity: "IncompleteOrUnsupportedEntity",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

var errorKindMessages = map[ErrorKind]string{
	MetadataDisallowed:            "metadata is not allowed here",
	EmptyListEntry:                "empty list entry",
	ExpectingItemName:             "expecting item name",
	ExpectingRightParen:           "expecting ')'",
	ExpectingRightParenOrPeriod:   "expecting ')' or '.'",
	ExpectingPropertyName:         "expecting property name",
	ExpectingMetadataName:         "expecting metadata name",
	ExpectingMetadataOrItemName:   "expecting metadata or item name",
	ExpectingRightAngleBracket:    "expecting '>'",
	ExpectingRightParenOrDash:     "expecting ')' or '->'",
	ItemsDisallowed:               "items are not allowed here",
	ExpectingMethodName:           "expecting method name",
	ExpectingLeftParen:            "expecting '('",
	ExpectingRightParenOrComma:    "expecting ')' or ','",
	ExpectingRightParenOrValue:    "expecting ')' or a value",
	ExpectingValue:                "expecting a value",
	CouldNotParseNumber:           "could not parse number",
	IncompleteValue:               "incomplete value",
	ExpectingMethodOrTransform:    "expecting item function or transform",
	ExpectingBracketColonColon:    "expecting ']::'",
	ExpectingClassName:            "expecting class name",
	ExpectingClassNameComponent:   "expecting class name component",
	IncompleteString:              "incomplete string",
	IncompleteProperty:            "incomplete property",
	UnexpectedCharacter:           "unexpected character",
	IncompleteOperator:            "incomplete operator",
	ExpectingEquals:               "expecting '='",
	IncompleteOrUnsupportedEntity: "incomplete or unsupported entity",
}

// Message returns a human-readable description of the error kind.
func (k ErrorKind) Message() string {
	if m, ok := errorKindMessages[k]; ok {
		return m
	}
	return k.String()
}
