// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"fmt"
	"strings"
)

const (
	// NotationCompact renders braces with inline "//" comments (JSONish).
	NotationCompact Notation = "jsonish"
	// NotationInterface renders TypeScript-like interface blocks.
	NotationInterface Notation = "typescript"
	// NotationKeyTyped renders indented "key: type" lines with "#" comments (YAML-like).
	NotationKeyTyped Notation = "yaml"
)

// Notation selects the text rendering style of a simplified schema.
type Notation string

// requiredFieldsComment explains the asterisk convention.
const requiredFieldsComment = "Fields marked with * are required"

// notationAliases maps accepted names onto canonical notations.
var notationAliases = map[string]Notation{
	"":           NotationCompact,
	"jsonish":    NotationCompact,
	"compact":    NotationCompact,
	"baml":       NotationCompact,
	"typescript": NotationInterface,
	"ts":         NotationInterface,
	"interface":  NotationInterface,
	"yaml":       NotationKeyTyped,
	"yml":        NotationKeyTyped,
	"keytyped":   NotationKeyTyped,
	"key-typed":  NotationKeyTyped,
}

// Notations returns canonical notation names in stable order.
func Notations() []Notation {
	return []Notation{NotationCompact, NotationInterface, NotationKeyTyped}
}

// ParseNotation resolves notation name or alias, empty name means compact.
func ParseNotation(name string) (Notation, error) {
	notation, ok := notationAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownNotation, name)
	}

	return notation, nil
}

// style is one notation's vocabulary and layout.
//
// The formatter owns traversal, caching and recursion control and asks the
// style only for tokens and final layout.
type style interface {
	notation() Notation
	// typeName maps JSON Schema primitive type name to notation token.
	typeName(jsonType string) string
	scalarFallback() string
	objectFallback() string
	arrayFallback() string
	nullable(token string) string
	unionJoin() string
	intersection(tokens []string) string
	// arrayOf wraps item token, wrapped asks for the bracketed form.
	arrayOf(item string, wrapped bool) string
	literal(value any) string
	enum(lead string, values []any) string
	// inlineDefinitions reports whether $ref to object definition is expanded in place.
	inlineDefinitions() bool
	inlineObject(fields []field) string
	annotate(fragments []string) string
	commentPrefix() string
	emit(f *formatter) string
}

// styleFor returns style implementation for canonical notation.
func styleFor(notation Notation) style {
	switch notation {
	case NotationInterface:
		return interfaceStyle{}
	case NotationKeyTyped:
		return keyTypedStyle{}
	default:
		return compactStyle{}
	}
}

// mapTypeName applies type table and passes unknown names through.
func mapTypeName(table map[string]string, jsonType string) string {
	if mapped, ok := table[jsonType]; ok {
		return mapped
	}

	return jsonType
}

// joinAnnotation joins metadata fragments behind marker.
func joinAnnotation(marker string, fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}

	return marker + strings.Join(fragments, ", ")
}

// withRequiredComment prepends required fields explanation line when needed.
func withRequiredComment(s style, f *formatter, body string) string {
	if !f.sawRequired {
		return body
	}

	return s.commentPrefix() + requiredFieldsComment + "\n" + body
}
