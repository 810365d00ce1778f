// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"strings"
)

// compactTypes maps JSON Schema types for the compact notation.
var compactTypes = map[string]string{
	"number":  "float",
	"integer": "int",
	"boolean": "bool",
}

// compactStyle renders nested brace blocks with "//" comments:
//
//	{
//	 name*: string  //The user's name, minLength: 1,
//	 age: int  //min: 0
//	}
type compactStyle struct{}

func (compactStyle) notation() Notation { return NotationCompact }

func (compactStyle) typeName(jsonType string) string {
	return mapTypeName(compactTypes, jsonType)
}

func (compactStyle) scalarFallback() string { return "string" }
func (compactStyle) objectFallback() string { return "object" }
func (compactStyle) arrayFallback() string { return "any[]" }
func (compactStyle) unionJoin() string { return " or " }
func (compactStyle) commentPrefix() string { return "// " }
func (compactStyle) inlineDefinitions() bool { return true }

func (compactStyle) nullable(token string) string {
	return token + "?"
}

func (compactStyle) intersection(tokens []string) string {
	return "allOf: " + strings.Join(tokens, ", ")
}

// arrayOf suffixes plain item tokens and brackets composite ones.
func (compactStyle) arrayOf(item string, wrapped bool) string {
	if wrapped || strings.ContainsAny(item, " \n") {
		return "[" + item + "]"
	}

	return item + "[]"
}

func (compactStyle) literal(value any) string {
	return plainText(value)
}

func (s compactStyle) enum(lead string, values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, s.literal(value))
	}

	return lead + " //oneOf: " + strings.Join(parts, ", ")
}

func (s compactStyle) annotate(fragments []string) string {
	return joinAnnotation("  //", fragments)
}

// inlineObject renders brace block at zero indent; nested blocks shift by one space.
func (s compactStyle) inlineObject(fields []field) string {
	if len(fields) == 0 {
		return "{}"
	}

	lines := make([]string, 0, len(fields))
	for _, item := range fields {
		value := item.token + s.annotate(item.fragments)
		lines = append(lines, " "+item.key()+": "+strings.ReplaceAll(value, "\n", "\n "))
	}

	return "{\n" + strings.Join(lines, ",\n") + "\n}"
}

func (s compactStyle) emit(f *formatter) string {
	trailer := s.annotate(f.schemaLevelFragments())

	body := "{}"
	if fields := f.rootFields(); len(fields) > 0 {
		body = s.inlineObject(fields)
	} else if isTypedNode(f.root) {
		if token := f.resolveNode(f.root); token != s.objectFallback() {
			body = token
		}
	}

	return withRequiredComment(s, f, body+trailer)
}
