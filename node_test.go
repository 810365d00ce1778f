// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeSchemaKeepsKeyOrder(t *testing.T) {
	t.Parallel()

	schema, err := DecodeSchema([]byte(`{"z": 1, "a": {"y": true, "b": null}, "m": [{"k": "v"}]}`))
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}

	if diff := cmp.Diff([]string{"z", "a", "m"}, schema.Keys()); diff != "" {
		t.Fatalf("root keys mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"y", "b"}, objectField(schema, "a").Keys()); diff != "" {
		t.Fatalf("nested keys mismatch (-want +got):\n%s", diff)
	}

	value, _ := schema.Get("z")
	if value != json.Number("1") {
		t.Fatalf("number decoded as %T %v", value, value)
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if want := `{"z":1,"a":{"y":true,"b":null},"m":[{"k":"v"}]}`; string(encoded) != want {
		t.Fatalf("Marshal = %s, want %s", encoded, want)
	}
}

func TestObjectMarshalJSONKeepsHTMLCharacters(t *testing.T) {
	t.Parallel()

	schema, err := DecodeSchema([]byte(`{"description": "x < y & z", "items": {"example": "<string>"}}`))
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}

	want := `{"description":"x < y & z","items":{"example":"<string>"}}`

	direct, err := schema.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	if string(direct) != want {
		t.Fatalf("MarshalJSON = %s, want %s", direct, want)
	}

	if got := mustJSONInline(schema); got != want {
		t.Fatalf("mustJSONInline = %s, want %s", got, want)
	}
}

func TestDecodeSchemaErrors(t *testing.T) {
	t.Parallel()

	if _, err := DecodeSchema([]byte(`{"a": 1} {"b": 2}`)); !errors.Is(err, ErrDecodeSchema) {
		t.Fatalf("trailing data error = %v", err)
	}

	if _, err := DecodeSchema([]byte(`{"a": `)); !errors.Is(err, ErrDecodeSchema) {
		t.Fatalf("truncated input error = %v", err)
	}

	if _, err := DecodeSchema([]byte(`"text"`)); !errors.Is(err, ErrSchemaRootType) {
		t.Fatalf("scalar root error = %v", err)
	}
}

func TestObjectSetKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	object := NewObject()
	object.Set("b", 1)
	object.Set("a", 2)
	object.Set("b", 3)

	if diff := cmp.Diff([]string{"b", "a"}, object.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(map[string]any{"a": 2, "b": 3}, object.Map()); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}

	var missing *Object
	if missing.Has("a") || missing.Len() != 0 || missing.Keys() != nil {
		t.Fatal("nil object must behave as empty")
	}
}

func TestOrderedValueSortsPlainMaps(t *testing.T) {
	t.Parallel()

	object := asObject(orderedValue(map[string]any{"c": 1, "a": map[string]any{"z": 1, "b": 2}}))
	if diff := cmp.Diff([]string{"a", "c"}, object.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"b", "z"}, objectField(object, "a").Keys()); diff != "" {
		t.Fatalf("nested keys mismatch (-want +got):\n%s", diff)
	}
}
