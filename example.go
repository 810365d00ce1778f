// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// ExampleOptions configures example payload generation.
type ExampleOptions struct {
	// Mode defaults to ExampleModeAll.
	Mode ExampleMode
	// Format defaults to ExampleFormatJSON.
	Format ExampleFormat
}

// exampleScalarPlaceholders provides fallback values for scalar schema types.
var exampleScalarPlaceholders = map[string]any{
	"string":  "<string>",
	"number":  0,
	"integer": 0,
	"boolean": false,
	"null":    nil,
}

// exampleBuilder converts schema tree into example values.
type exampleBuilder struct {
	root       *Object
	activeRefs map[string]int
	mode       ExampleMode
}

// GenerateExample builds sample payload for schema and encodes it in selected format.
//
// Schema accepts every input Simplify accepts. Object keys follow property
// declaration order; YAML output carries title and description comments.
func GenerateExample(schema any, opt ExampleOptions) ([]byte, error) {
	mode, err := normalizeExampleMode(opt.Mode)
	if err != nil {
		return nil, err
	}

	format, err := normalizeExampleFormat(opt.Format)
	if err != nil {
		return nil, err
	}

	root, err := schemaFromInput(schema)
	if err != nil {
		return nil, err
	}

	builder := &exampleBuilder{
		root:       root,
		mode:       mode,
		activeRefs: make(map[string]int),
	}

	value := builder.buildNode(root)
	if format == ExampleFormatJSON {
		data, err := marshalExampleJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
		}

		return data, nil
	}

	rootNode, err := yamlNodeForValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	builder.annotateYAMLNode(rootNode, root)

	data, err := marshalYAMLNode(rootNode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	return data, nil
}

// normalizeExampleMode validates and normalizes caller mode value.
func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case "":
		return ExampleModeAll, nil
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

// normalizeExampleFormat validates and normalizes caller format value.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "":
		return ExampleFormatJSON, nil
	case "yml":
		return ExampleFormatYAML, nil
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildNode recursively builds example value for one schema node.
func (builder *exampleBuilder) buildNode(value any) any {
	object := asObject(value)
	if object == nil {
		return nil
	}

	if resolved, release, handled := builder.resolvedObjectForReference(object); handled {
		if release != nil {
			defer release()
		}

		if resolved == nil {
			return nil
		}

		return builder.buildNode(resolved)
	}

	return builder.buildFromObject(object)
}

// buildFromObject builds example from schema object without $ref.
func (builder *exampleBuilder) buildFromObject(object *Object) any {
	schemaType := schemaTypeName(object)
	properties, required := builder.collectObjectShape(object)

	if schemaType == "object" || properties.Len() > 0 || len(required) > 0 {
		if value, ok := explicitExampleValue(object); ok && asObject(value) != nil {
			return cloneJSONValue(value)
		}

		return builder.buildObjectFromShape(properties, required)
	}

	if schemaType == "array" || hasArrayShape(object) {
		return builder.buildArrayFromObject(object)
	}

	for _, pick := range []func(*Object) (any, bool){explicitExampleValue, constExampleValue, enumExampleValue} {
		if value, ok := pick(object); ok {
			return cloneJSONValue(value)
		}
	}

	if value, ok := builder.buildCompositionFallback(object); ok {
		return value
	}

	if value, ok := exampleScalarPlaceholders[schemaType]; ok {
		return value
	}

	return nil
}

// buildObjectFromShape materializes object value from collected property shape.
func (builder *exampleBuilder) buildObjectFromShape(properties *Object, required []string) *Object {
	out := NewObject()
	requiredSet := make(map[string]bool, len(required))
	for _, key := range required {
		requiredSet[key] = true
	}

	for _, key := range properties.Keys() {
		if builder.mode == ExampleModeRequired && !requiredSet[key] {
			continue
		}

		schema, _ := properties.Get(key)
		out.Set(key, builder.buildNode(schema))
	}

	return out
}

// buildArrayFromObject materializes array value from schema items/prefixItems.
func (builder *exampleBuilder) buildArrayFromObject(object *Object) []any {
	for _, pick := range []func(*Object) (any, bool){explicitExampleValue, constExampleValue, enumExampleValue} {
		if value, ok := pick(object); ok {
			if items, ok := cloneJSONValue(value).([]any); ok {
				return items
			}
		}
	}

	if prefixItems := sliceField(object, "prefixItems"); len(prefixItems) > 0 {
		out := make([]any, 0, len(prefixItems))
		for _, raw := range prefixItems {
			out = append(out, builder.buildNode(raw))
		}

		return out
	}

	if items := objectField(object, "items"); items != nil {
		return []any{builder.buildNode(items)}
	}

	return []any{}
}

// collectObjectShape returns merged object properties and required keys for node.
func (builder *exampleBuilder) collectObjectShape(object *Object) (*Object, []string) {
	if object == nil {
		return NewObject(), nil
	}

	if resolved, release, handled := builder.resolvedObjectForReference(object); handled {
		if release != nil {
			defer release()
		}

		return builder.collectObjectShape(resolved)
	}

	properties := NewObject()
	if own := objectField(object, "properties"); own != nil {
		properties = mergePropertySchemas(properties, own)
	}

	required := asStringSlice(sliceField(object, "required"))
	for _, raw := range sliceField(object, "allOf") {
		nested := asObject(raw)
		if nested == nil {
			continue
		}

		nestedProperties, nestedRequired := builder.collectObjectShape(nested)
		properties = mergePropertySchemas(properties, nestedProperties)
		required = mergeRequiredKeys(required, nestedRequired)
	}

	return properties, required
}

// mergePropertySchemas appends right properties missing from left, keeping order.
func mergePropertySchemas(left, right *Object) *Object {
	for _, key := range right.Keys() {
		if left.Has(key) {
			continue
		}

		value, _ := right.Get(key)
		left.Set(key, value)
	}

	return left
}

// mergeRequiredKeys appends unique required keys while preserving first-seen order.
func mergeRequiredKeys(left, right []string) []string {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(left)+len(right))
	out := make([]string, 0, len(left)+len(right))

	for _, key := range append(left, right...) {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// buildCompositionFallback builds value from first schema of oneOf/anyOf/allOf.
func (builder *exampleBuilder) buildCompositionFallback(object *Object) (any, bool) {
	for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
		for _, item := range sliceField(object, keyword) {
			if asObject(item) == nil {
				continue
			}

			return builder.buildNode(item), true
		}
	}

	return nil, false
}

// resolvedObjectForReference resolves local ref and merges sibling override keywords.
//
// Handled is false when object has no $ref. Resolved is nil when ref is
// already active on current path.
func (builder *exampleBuilder) resolvedObjectForReference(object *Object) (*Object, func(), bool) {
	ref := strings.TrimSpace(stringField(object, "$ref"))
	if ref == "" {
		return nil, nil, false
	}

	target, ok := builder.resolveLocalReference(ref)
	if !ok {
		return mergeSchemaObjects(NewObject(), object), nil, true
	}

	if builder.activeRefs[ref] > 0 {
		return nil, nil, true
	}

	builder.activeRefs[ref]++
	release := func() {
		builder.activeRefs[ref]--
		if builder.activeRefs[ref] <= 0 {
			delete(builder.activeRefs, ref)
		}
	}

	return mergeSchemaObjects(target, object), release, true
}

// resolveLocalReference resolves local JSON pointer reference against root schema.
func (builder *exampleBuilder) resolveLocalReference(ref string) (*Object, bool) {
	if ref == "#" {
		return builder.root, true
	}

	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}

	value, ok := lookupPointer(builder.root, pointerTokens(strings.TrimPrefix(ref, "#")))
	if !ok {
		return nil, false
	}

	target := asObject(value)
	return target, target != nil
}

// mergeSchemaObjects copies base then overlays sibling keywords except $ref.
func mergeSchemaObjects(base, overlay *Object) *Object {
	out := NewObject()
	for _, source := range []*Object{base, overlay} {
		for _, key := range source.Keys() {
			if key == "$ref" {
				continue
			}

			value, _ := source.Get(key)
			out.Set(key, value)
		}
	}

	return out
}

// schemaTypeName returns first non-null type value from schema "type" keyword.
func schemaTypeName(object *Object) string {
	raw, _ := object.Get("type")
	names, nullable := typeNames(raw)
	if len(names) > 0 {
		return strings.ToLower(names[0])
	}

	if nullable {
		return "null"
	}

	return ""
}

// hasArrayShape reports whether schema has array structure keywords.
func hasArrayShape(object *Object) bool {
	return objectField(object, "items") != nil || len(sliceField(object, "prefixItems")) > 0
}

// explicitExampleValue returns preferred explicit example value from schema object.
func explicitExampleValue(object *Object) (any, bool) {
	if value, ok := object.Get("default"); ok {
		return value, true
	}

	if values := sliceField(object, "examples"); len(values) > 0 {
		return values[0], true
	}

	return object.Get("example")
}

// constExampleValue returns const value as example when available.
func constExampleValue(object *Object) (any, bool) {
	return object.Get("const")
}

// enumExampleValue returns first enum value as example when available.
func enumExampleValue(object *Object) (any, bool) {
	values := sliceField(object, "enum")
	if len(values) == 0 {
		return nil, false
	}

	return values[0], true
}

// cloneJSONValue deep-copies objects and slices used as generated payload values.
func cloneJSONValue(value any) any {
	switch typed := value.(type) {
	case *Object:
		out := NewObject()
		for _, key := range typed.Keys() {
			item, _ := typed.Get(key)
			out.Set(key, cloneJSONValue(item))
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, cloneJSONValue(item))
		}

		return out
	default:
		return typed
	}
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// annotateYAMLNode assigns schema title/description comments to YAML map keys.
func (builder *exampleBuilder) annotateYAMLNode(node *yaml.Node, schema *Object) {
	if schema == nil {
		return
	}

	if resolved, release, handled := builder.resolvedObjectForReference(schema); handled {
		if release != nil {
			defer release()
		}

		builder.annotateYAMLNode(node, resolved)
		return
	}

	switch node.Kind {
	case yaml.MappingNode:
		properties, _ := builder.collectObjectShape(schema)
		for index := 0; index+1 < len(node.Content); index += 2 {
			keyNode := node.Content[index]
			property := objectField(properties, keyNode.Value)
			if property == nil {
				continue
			}

			if comment := schemaKeyComment(property); comment != "" {
				keyNode.HeadComment = comment
			}

			builder.annotateYAMLNode(node.Content[index+1], property)
		}
	case yaml.SequenceNode:
		itemSchema := sequenceItemSchema(schema)
		for _, item := range node.Content {
			builder.annotateYAMLNode(item, itemSchema)
		}
	}
}

// sequenceItemSchema selects best schema for sequence item annotations.
func sequenceItemSchema(schema *Object) *Object {
	if item := objectField(schema, "items"); item != nil {
		return item
	}

	for _, raw := range sliceField(schema, "prefixItems") {
		if item := asObject(raw); item != nil {
			return item
		}
	}

	return nil
}

// schemaKeyComment builds YAML key comment from schema title and description.
func schemaKeyComment(schema *Object) string {
	title := strings.TrimSpace(stringField(schema, "title"))
	description := strings.TrimSpace(stringField(schema, "description"))

	switch {
	case title == "" && description == "":
		return ""
	case title == "" || title == description:
		return normalizeYAMLComment(description)
	case description == "":
		return normalizeYAMLComment(title)
	default:
		return normalizeYAMLComment(title + "\n" + description)
	}
}

// normalizeYAMLComment drops blank lines from comment body.
func normalizeYAMLComment(comment string) string {
	lines := strings.Split(comment, "\n")
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized = append(normalized, line)
	}

	return strings.Join(normalized, "\n")
}
