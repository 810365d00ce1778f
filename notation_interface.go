// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"strconv"
	"strings"
)

// interfaceRootName names the interface rendered for root properties.
const interfaceRootName = "Schema"

// interfaceTypes maps JSON Schema types for the interface notation.
var interfaceTypes = map[string]string{
	"integer": "number",
	"number":  "number",
	"boolean": "boolean",
	"array":   "Array",
}

// interfaceStyle renders one interface block per object definition, then the root:
//
//	interface Address {
//	  city*: string;
//	}
//
//	interface Schema {
//	  name*: string;  // The user's name
//	  address: Address;
//	}
type interfaceStyle struct{}

func (interfaceStyle) notation() Notation { return NotationInterface }

func (interfaceStyle) typeName(jsonType string) string {
	return mapTypeName(interfaceTypes, jsonType)
}

func (interfaceStyle) scalarFallback() string { return "any" }
func (interfaceStyle) objectFallback() string { return "object" }
func (interfaceStyle) arrayFallback() string { return "Array<any>" }
func (interfaceStyle) unionJoin() string { return " | " }
func (interfaceStyle) commentPrefix() string { return "// " }
func (interfaceStyle) inlineDefinitions() bool { return false }

func (interfaceStyle) nullable(token string) string {
	return token + " | null"
}

func (interfaceStyle) intersection(tokens []string) string {
	return strings.Join(tokens, " & ")
}

func (interfaceStyle) arrayOf(item string, _ bool) string {
	return "Array<" + item + ">"
}

func (interfaceStyle) literal(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(typed)
	default:
		return plainText(typed)
	}
}

func (s interfaceStyle) enum(_ string, values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, s.literal(value))
	}

	return strings.Join(parts, " | ")
}

func (interfaceStyle) annotate(fragments []string) string {
	return joinAnnotation("  // ", fragments)
}

func (interfaceStyle) inlineObject(fields []field) string {
	if len(fields) == 0 {
		return "{}"
	}

	members := make([]string, 0, len(fields))
	for _, item := range fields {
		members = append(members, item.key()+": "+item.token)
	}

	return "{ " + strings.Join(members, "; ") + " }"
}

// block renders named interface with semicolon-terminated members.
func (s interfaceStyle) block(name string, fields []field) string {
	var out strings.Builder
	out.WriteString("interface " + name + " {\n")
	for _, item := range fields {
		out.WriteString("  " + item.key() + ": " + item.token + ";" + s.annotate(item.fragments) + "\n")
	}

	out.WriteString("}")
	return out.String()
}

func (s interfaceStyle) emit(f *formatter) string {
	blocks := make([]string, 0, f.defs.Len()+1)
	for _, name := range f.defs.Keys() {
		if name == f.rootDef {
			continue
		}

		def := objectField(f.defs, name)
		if !hasProperties(def) {
			continue
		}

		blocks = append(blocks, s.block(name, f.processProperties(def)))
	}

	fields := f.rootFields()
	switch {
	case len(fields) > 0:
		blocks = append(blocks, s.block(interfaceRootName, fields))
	case isTypedNode(f.root):
		token := f.resolveNode(f.root)
		if token == s.objectFallback() {
			blocks = append(blocks, "interface "+interfaceRootName+" {}")
		} else {
			blocks = append(blocks, "type "+interfaceRootName+" = "+token+";")
		}
	default:
		blocks = append(blocks, "interface "+interfaceRootName+" {}")
	}

	return withRequiredComment(s, f, strings.Join(blocks, "\n\n"))
}
