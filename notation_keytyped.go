// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"strconv"
	"strings"
)

// keyTypedTypes maps JSON Schema types onto Python-style hints.
var keyTypedTypes = map[string]string{
	"string":  "str",
	"integer": "int",
	"number":  "float",
	"boolean": "bool",
	"array":   "list",
	"object":  "dict",
	"null":    "None",
}

// keyTypedStyle renders flat "key: type" lines, definitions as "Def.field" groups:
//
//	# Address
//	Address.city*: str
//
//	name*: str  # The user's name
//	address: Address
type keyTypedStyle struct{}

func (keyTypedStyle) notation() Notation { return NotationKeyTyped }

func (keyTypedStyle) typeName(jsonType string) string {
	return mapTypeName(keyTypedTypes, jsonType)
}

func (keyTypedStyle) scalarFallback() string { return "str" }
func (keyTypedStyle) objectFallback() string { return "dict" }
func (keyTypedStyle) arrayFallback() string { return "list[Any]" }
func (keyTypedStyle) unionJoin() string { return " | " }
func (keyTypedStyle) commentPrefix() string { return "# " }
func (keyTypedStyle) inlineDefinitions() bool { return false }

func (keyTypedStyle) nullable(token string) string {
	return token + " | None"
}

func (keyTypedStyle) intersection(tokens []string) string {
	return strings.Join(tokens, " & ")
}

func (keyTypedStyle) arrayOf(item string, _ bool) string {
	return "list[" + item + "]"
}

func (keyTypedStyle) literal(value any) string {
	switch typed := value.(type) {
	case nil:
		return "None"
	case bool:
		if typed {
			return "True"
		}

		return "False"
	case string:
		return strconv.Quote(typed)
	default:
		return plainText(typed)
	}
}

func (s keyTypedStyle) enum(_ string, values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, s.literal(value))
	}

	return "Literal[" + strings.Join(parts, " | ") + "]"
}

func (keyTypedStyle) annotate(fragments []string) string {
	return joinAnnotation("  # ", fragments)
}

func (keyTypedStyle) inlineObject(fields []field) string {
	if len(fields) == 0 {
		return "{}"
	}

	members := make([]string, 0, len(fields))
	for _, item := range fields {
		members = append(members, item.key()+": "+item.token)
	}

	return "{" + strings.Join(members, ", ") + "}"
}

// lines renders fields as "prefix.key: type" lines.
func (s keyTypedStyle) lines(prefix string, fields []field) []string {
	out := make([]string, 0, len(fields))
	for _, item := range fields {
		out = append(out, prefix+item.key()+": "+item.token+s.annotate(item.fragments))
	}

	return out
}

func (s keyTypedStyle) emit(f *formatter) string {
	sections := make([]string, 0, f.defs.Len()+1)
	for _, name := range f.defs.Keys() {
		if name == f.rootDef {
			continue
		}

		def := objectField(f.defs, name)
		if !hasProperties(def) {
			continue
		}

		lines := s.lines(name+".", f.processProperties(def))
		if f.metadata {
			lines = append([]string{"# " + name}, lines...)
		}

		sections = append(sections, strings.Join(lines, "\n"))
	}

	if fields := f.rootFields(); len(fields) > 0 {
		sections = append(sections, strings.Join(s.lines("", fields), "\n"))
	} else if isTypedNode(f.root) {
		if token := f.resolveNode(f.root); token != s.objectFallback() {
			sections = append(sections, token)
		}
	}

	if len(sections) == 0 {
		return "{}"
	}

	return withRequiredComment(s, f, strings.Join(sections, "\n\n"))
}
