// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// Object is a JSON object that keeps key insertion order.
//
// Property order is visible in every notation, so schemas are decoded into
// Object values instead of map[string]any. Values held by an Object are nil,
// bool, json.Number, string, []any or *Object.
type Object struct {
	values map[string]any
	keys   []string
}

// NewObject returns empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key, appending key on first insert.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}

	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

// Get returns value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}

	value, ok := o.values[key]
	return value, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.keys)
}

// Map converts object into plain nested maps, dropping key order.
func (o *Object) Map() map[string]any {
	if o == nil {
		return nil
	}

	out := make(map[string]any, len(o.keys))
	for _, key := range o.keys {
		out[key] = plainValue(o.values[key])
	}

	return out
}

// MarshalJSON encodes object with keys in insertion order.
// Characters <, > and & are kept as is.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var out bytes.Buffer
	out.WriteByte('{')
	for index, key := range o.keys {
		if index > 0 {
			out.WriteByte(',')
		}

		keyData, err := json.MarshalNoEscape(key)
		if err != nil {
			return nil, err
		}

		valueData, err := json.MarshalNoEscape(o.values[key])
		if err != nil {
			return nil, err
		}

		out.Write(keyData)
		out.WriteByte(':')
		out.Write(valueData)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}

// DecodeSchema decodes JSON Schema bytes into ordered object tree.
func DecodeSchema(data []byte) (*Object, error) {
	value, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	object, ok := value.(*Object)
	if !ok {
		return nil, ErrSchemaRootType
	}

	return object, nil
}

// decodeOrdered decodes one JSON document keeping object key order.
func decodeOrdered(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := decodeOrderedValue(decoder)
	if err != nil {
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return value, nil
}

// decodeOrderedValue reads next complete value from decoder token stream.
func decodeOrderedValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}

	switch delim {
	case '{':
		object := NewObject()
		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be string, got %T", keyToken)
			}

			value, err := decodeOrderedValue(decoder)
			if err != nil {
				return nil, err
			}

			object.Set(key, value)
		}

		if _, err := decoder.Token(); err != nil {
			return nil, err
		}

		return object, nil

	case '[':
		items := make([]any, 0)
		for decoder.More() {
			value, err := decodeOrderedValue(decoder)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		if _, err := decoder.Token(); err != nil {
			return nil, err
		}

		return items, nil

	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// orderedValue converts decoded Go values into ordered schema values.
// Plain maps have no key order, so their keys are sorted.
func orderedValue(value any) any {
	switch typed := value.(type) {
	case *Object:
		return typed
	case map[string]any:
		object := NewObject()
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)
		for _, key := range keys {
			object.Set(key, orderedValue(typed[key]))
		}

		return object
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, orderedValue(item))
		}

		return out
	case []string:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}

		return out
	case int:
		return json.Number(strconv.Itoa(typed))
	case int64:
		return json.Number(strconv.FormatInt(typed, 10))
	case uint64:
		return json.Number(strconv.FormatUint(typed, 10))
	case float64:
		return json.Number(strconv.FormatFloat(typed, 'g', -1, 64))
	default:
		return typed
	}
}

// plainValue converts ordered values back into plain maps and slices.
func plainValue(value any) any {
	switch typed := value.(type) {
	case *Object:
		return typed.Map()
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, plainValue(item))
		}

		return out
	default:
		return typed
	}
}

// asObject returns value as ordered object or nil.
func asObject(value any) *Object {
	object, _ := value.(*Object)
	return object
}

// asString returns value as string or empty string.
func asString(value any) string {
	text, _ := value.(string)
	return text
}

// asSlice returns value as slice or nil.
func asSlice(value any) []any {
	items, _ := value.([]any)
	return items
}

// asBool returns boolean value and whether value was boolean.
func asBool(value any) (bool, bool) {
	flag, ok := value.(bool)
	return flag, ok
}

// asStringSlice returns string items from slice value.
func asStringSlice(value any) []string {
	items := asSlice(value)
	if len(items) == 0 {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			out = append(out, text)
		}
	}

	return out
}

// objectField returns nested object stored under key.
func objectField(object *Object, key string) *Object {
	value, _ := object.Get(key)
	return asObject(value)
}

// stringField returns string stored under key.
func stringField(object *Object, key string) string {
	value, _ := object.Get(key)
	return asString(value)
}

// sliceField returns slice stored under key.
func sliceField(object *Object, key string) []any {
	value, _ := object.Get(key)
	return asSlice(value)
}

// mustJSONInline marshals value as single-line JSON text.
func mustJSONInline(value any) string {
	data, err := json.MarshalNoEscape(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(data)
}

// plainText renders scalar as bare text and composite values as inline JSON.
func plainText(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case json.Number:
		return typed.String()
	default:
		return mustJSONInline(typed)
	}
}

// jsonTypeOf returns JSON Schema type name for decoded value.
func jsonTypeOf(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		if _, err := typed.Int64(); err == nil {
			return "integer"
		}

		return "number"
	case *Object:
		return "object"
	case []any:
		return "array"
	default:
		return ""
	}
}
