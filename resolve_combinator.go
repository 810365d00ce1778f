// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"strings"
)

// emptyArrayToken replaces a null member that follows an array member in unions.
const emptyArrayToken = "[]"

// resolveEnum renders enum values with notation lead type.
func (f *formatter) resolveEnum(node *Object) string {
	values := sliceField(node, "enum")
	if len(values) == 0 {
		return f.style.scalarFallback()
	}

	return f.style.enum(f.enumLead(node, values), values)
}

// enumLead picks display type for enum: first non-null declared type,
// else the type of first non-null value, else scalar fallback.
func (f *formatter) enumLead(node *Object, values []any) string {
	typeValue, _ := node.Get("type")
	names, nullable := typeNames(typeValue)
	if len(names) > 0 {
		token := f.style.typeName(names[0])
		if nullable {
			return f.style.nullable(token)
		}

		return token
	}

	for _, value := range values {
		if value == nil {
			continue
		}

		if jsonType := jsonTypeOf(value); jsonType != "" {
			return f.style.typeName(jsonType)
		}
	}

	return f.style.scalarFallback()
}

// resolveUnion renders anyOf/oneOf members joined by notation union token.
func (f *formatter) resolveUnion(members []any) string {
	tokens := make([]string, 0, len(members))
	seenArray := false

	for index, raw := range members {
		member := asObject(raw)
		if member == nil {
			f.logger.Debug("skip non-object combinator member", "index", index)
			continue
		}

		if seenArray && isNullNode(member) {
			tokens = append(tokens, emptyArrayToken)
			continue
		}

		if isArrayNode(member) {
			seenArray = true
		}

		tokens = append(tokens, f.resolveMember(member))
	}

	if len(tokens) == 0 {
		return f.style.scalarFallback()
	}

	return strings.Join(tokens, f.style.unionJoin())
}

// resolveMember renders one combinator member by its leading keyword.
func (f *formatter) resolveMember(member *Object) string {
	switch {
	case member.Has("enum"):
		return f.resolveEnum(member)
	case member.Has("const"):
		value, _ := member.Get("const")
		return f.style.literal(value)
	case member.Has("$ref"):
		return f.resolveRef(stringField(member, "$ref"))
	case member.Has("type"):
		return f.resolveType(member)
	default:
		return f.resolveNode(member)
	}
}

// resolveAllOf renders allOf members as best-effort intersection.
func (f *formatter) resolveAllOf(members []any) string {
	tokens := make([]string, 0, len(members))
	for index, raw := range members {
		member := asObject(raw)
		if member == nil {
			f.logger.Debug("skip non-object allOf member", "index", index)
			continue
		}

		if hasProperties(member) && !member.Has("$ref") {
			tokens = append(tokens, f.inlineObject(member))
			continue
		}

		tokens = append(tokens, f.resolveMember(member))
	}

	switch len(tokens) {
	case 0:
		return f.style.objectFallback()
	case 1:
		return tokens[0]
	default:
		return f.style.intersection(tokens)
	}
}

// resolveNot renders negated schema.
func (f *formatter) resolveNot(node *Object) string {
	inner := objectField(node, "not")
	if inner == nil {
		return f.style.scalarFallback()
	}

	return "not: " + f.resolveNode(inner)
}
