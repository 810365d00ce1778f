// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"strings"
)

// definitionPrefixes lists supported local definition pointer prefixes.
var definitionPrefixes = []string{"#/$defs/", "#/definitions/"}

// primitiveTypes are definition types eligible for cache pre-warming.
var primitiveTypes = map[string]struct{}{
	"string":  {},
	"integer": {},
	"number":  {},
	"boolean": {},
	"null":    {},
}

// definitionsTable returns $defs, falling back to legacy definitions keyword.
func definitionsTable(schema *Object) *Object {
	if defs := objectField(schema, "$defs"); defs != nil {
		return defs
	}

	if defs := objectField(schema, "definitions"); defs != nil {
		return defs
	}

	return NewObject()
}

// definitionName extracts definition name from local reference.
func definitionName(ref string) string {
	ref = strings.TrimSpace(ref)
	for _, prefix := range definitionPrefixes {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}

		name := strings.TrimPrefix(ref, prefix)
		if name == "" || strings.Contains(name, "/") {
			return ""
		}

		return decodeJSONPointerToken(name)
	}

	return ""
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// prewarm caches definitions that are bare primitive aliases.
func (f *formatter) prewarm() {
	for _, name := range f.defs.Keys() {
		def := objectField(f.defs, name)
		if def == nil || def.Has("enum") || hasProperties(def) {
			continue
		}

		typeName := stringField(def, "type")
		if _, ok := primitiveTypes[typeName]; !ok {
			continue
		}

		f.cache[name] = f.resolveType(def)
	}
}

// resolveRef renders referenced definition, guarding against cycles.
//
// The first finished resolution of a key is cached, including one that hit the
// depth ceiling below it. The fallback token itself is never cached.
func (f *formatter) resolveRef(ref string) string {
	name := definitionName(ref)
	if name == "" {
		f.logger.Debug("unsupported reference", "ref", ref)
		return f.style.objectFallback()
	}

	if token, ok := f.cache[name]; ok {
		return token
	}

	def := objectField(f.defs, name)
	if def == nil {
		f.logger.Debug("unresolved reference", "ref", ref)
		return f.style.objectFallback()
	}

	release, ok := f.enterReference(name)
	if !ok {
		f.logger.Debug("reference depth limit reached", "ref", ref, "depth", f.maxDepth)
		return f.style.objectFallback()
	}

	token := f.resolveDefinition(name, def)
	release()

	if _, exists := f.cache[name]; !exists {
		f.cache[name] = token
	}

	return token
}

// enterReference increments live depth for name and returns release callback.
func (f *formatter) enterReference(name string) (func(), bool) {
	if f.depth[name] >= f.maxDepth {
		return nil, false
	}

	f.depth[name]++
	return func() {
		f.depth[name]--
		if f.depth[name] <= 0 {
			delete(f.depth, name)
		}
	}, true
}

// resolveDefinition renders definition body.
func (f *formatter) resolveDefinition(name string, def *Object) string {
	switch {
	case def.Has("enum"):
		return f.resolveEnum(def)
	case hasProperties(def):
		if f.style.inlineDefinitions() {
			return f.inlineObject(def)
		}

		return name
	case def.Has("type"):
		return f.resolveType(def)
	case def.Has("anyOf"), def.Has("oneOf"), def.Has("allOf"), def.Has("$ref"):
		return f.resolveNode(def)
	default:
		return f.style.objectFallback()
	}
}
