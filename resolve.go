// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"strings"

	json "github.com/goccy/go-json"
)

// resolveNode dispatches one schema node to its resolver.
// Precedence: $ref, enum, anyOf, oneOf, allOf, not, type, properties.
func (f *formatter) resolveNode(value any) string {
	node, ok := value.(*Object)
	if !ok {
		return degradedToken(value)
	}

	switch {
	case node.Has("$ref"):
		return f.resolveRef(stringField(node, "$ref"))
	case node.Has("enum"):
		return f.resolveEnum(node)
	case node.Has("anyOf"):
		return f.resolveUnion(sliceField(node, "anyOf"))
	case node.Has("oneOf"):
		return f.resolveUnion(sliceField(node, "oneOf"))
	case node.Has("allOf"):
		return f.resolveAllOf(sliceField(node, "allOf"))
	case node.Has("not"):
		return f.resolveNot(node)
	case node.Has("type"):
		return f.resolveType(node)
	case hasProperties(node):
		return f.inlineObject(node)
	default:
		return f.style.scalarFallback()
	}
}

// degradedToken renders non-object property values found in malformed schemas.
func degradedToken(value any) string {
	switch value.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number:
		return "number"
	default:
		return "any"
	}
}

// resolveType renders node "type" keyword including nullable and union forms.
func (f *formatter) resolveType(node *Object) string {
	typeValue, exists := node.Get("type")
	if !exists {
		return f.style.scalarFallback()
	}

	names, nullable := typeNames(typeValue)
	switch {
	case len(names) == 0 && nullable:
		return f.style.typeName("null")
	case len(names) == 0:
		return f.style.scalarFallback()
	case len(names) == 1:
		token := f.resolveSingleType(names[0], node)
		if nullable {
			return f.style.nullable(token)
		}

		return token
	default:
		tokens := make([]string, 0, len(names))
		for _, name := range names {
			tokens = append(tokens, f.resolveSingleType(name, node))
		}

		return strings.Join(tokens, f.style.unionJoin())
	}
}

// resolveSingleType renders one non-null type name for node.
func (f *formatter) resolveSingleType(name string, node *Object) string {
	switch name {
	case "array":
		return f.resolveArray(node)
	case "object":
		if hasProperties(node) {
			return f.inlineObject(node)
		}

		return f.style.typeName("object")
	default:
		return f.style.typeName(name)
	}
}

// resolveArray renders array token from "items".
func (f *formatter) resolveArray(node *Object) string {
	items := objectField(node, "items")
	if items == nil {
		return f.style.arrayFallback()
	}

	switch {
	case items.Has("$ref"):
		return f.style.arrayOf(f.resolveRef(stringField(items, "$ref")), true)
	case items.Has("enum"):
		return f.style.arrayOf(f.resolveEnum(items), true)
	case items.Has("anyOf"):
		return f.style.arrayOf(f.resolveUnion(sliceField(items, "anyOf")), true)
	case items.Has("oneOf"):
		return f.style.arrayOf(f.resolveUnion(sliceField(items, "oneOf")), true)
	case items.Has("allOf"):
		return f.style.arrayOf(f.resolveAllOf(sliceField(items, "allOf")), true)
	case items.Has("type"):
		return f.style.arrayOf(f.resolveType(items), hasProperties(items))
	case hasProperties(items):
		return f.style.arrayOf(f.inlineObject(items), true)
	default:
		return f.style.arrayFallback()
	}
}

// inlineObject renders nested object properties in place.
func (f *formatter) inlineObject(node *Object) string {
	return f.style.inlineObject(f.processProperties(node))
}

// typeNames splits "type" keyword into non-null names and null presence.
func typeNames(value any) ([]string, bool) {
	switch typed := value.(type) {
	case string:
		if typed == "null" {
			return nil, true
		}

		return []string{typed}, false
	case []any:
		names := make([]string, 0, len(typed))
		nullable := false
		for _, item := range typed {
			name, ok := item.(string)
			if !ok || name == "" {
				continue
			}

			if name == "null" {
				nullable = true
				continue
			}

			names = append(names, name)
		}

		return names, nullable
	default:
		return nil, false
	}
}

// isArrayNode reports whether node declares array type.
func isArrayNode(node *Object) bool {
	value, _ := node.Get("type")
	names, _ := typeNames(value)
	for _, name := range names {
		if name == "array" {
			return true
		}
	}

	return false
}

// isNullNode reports whether node is exactly {"type": "null"}.
func isNullNode(node *Object) bool {
	value, _ := node.Get("type")
	names, nullable := typeNames(value)
	return nullable && len(names) == 0
}

// isTypedNode reports whether node carries a keyword resolveNode dispatches on.
func isTypedNode(node *Object) bool {
	for _, keyword := range []string{"$ref", "enum", "anyOf", "oneOf", "allOf", "not", "type"} {
		if node.Has(keyword) {
			return true
		}
	}

	return false
}
