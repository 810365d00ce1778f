// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

// schemaFromInput normalizes supported model inputs into ordered schema object.
func schemaFromInput(input any) (*Object, error) {
	switch typed := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedModel)
	case *Object:
		if typed == nil {
			return nil, fmt.Errorf("%w: nil *Object", ErrUnsupportedModel)
		}

		return typed, nil
	case []byte:
		return decodeSchemaInput(typed)
	case string:
		return decodeSchemaInput([]byte(typed))
	case json.RawMessage:
		return decodeSchemaInput(typed)
	case map[string]any:
		return orderedValue(typed).(*Object), nil
	case *jsonschema.Schema:
		return reflectedSchema(typed)
	case reflect.Type:
		return reflectedSchema(newReflector().ReflectFromType(typed))
	}

	kind := reflect.TypeOf(input).Kind()
	if kind == reflect.Pointer {
		kind = reflect.TypeOf(input).Elem().Kind()
	}

	if kind != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedModel, input)
	}

	return reflectedSchema(newReflector().Reflect(input))
}

// decodeSchemaInput decodes JSON schema text.
func decodeSchemaInput(data []byte) (*Object, error) {
	schema, err := DecodeSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	return schema, nil
}

// newReflector returns reflector that inlines root struct properties.
func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{ExpandedStruct: true}
}

// reflectedSchema re-decodes reflected schema to keep property order.
func reflectedSchema(schema *jsonschema.Schema) (*Object, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: empty reflected schema", ErrConversion)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal reflected schema: %w", ErrConversion, err)
	}

	return decodeSchemaInput(data)
}
