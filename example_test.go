// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// exampleSchemaFixture is shared across example generation tests.
const exampleSchemaFixture = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$ref": "#/$defs/Config",
  "$defs": {
    "Config": {
      "type": "object",
      "required": ["name", "settings"],
      "properties": {
        "name": {
          "type": "string",
          "default": "demo",
          "title": "Service Name",
          "description": "Human-readable service name."
        },
        "mode": {"type": "string", "examples": ["safe"]},
        "count": {"type": "integer"},
        "features": {"type": "array", "items": {"type": "string"}},
        "settings": {
          "type": "object",
          "required": ["enabled"],
          "properties": {
            "enabled": {
              "type": "boolean",
              "default": true,
              "title": "Enabled",
              "description": "Enables processing pipeline."
            },
            "note": {"type": "string"}
          }
        }
      }
    }
  }
}`

func TestGenerateExampleJSONAllMode(t *testing.T) {
	t.Parallel()

	got, err := GenerateExample(exampleSchemaFixture, ExampleOptions{})
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	want := `{
  "name": "demo",
  "mode": "safe",
  "count": 0,
  "features": [
    "<string>"
  ],
  "settings": {
    "enabled": true,
    "note": "<string>"
  }
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("all mode mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExampleJSONRequiredMode(t *testing.T) {
	t.Parallel()

	got, err := GenerateExample(exampleSchemaFixture, ExampleOptions{Mode: ExampleModeRequired})
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	decoded, err := decodeOrdered(got)
	if err != nil {
		t.Fatalf("decode generated json: %v", err)
	}

	object := asObject(decoded)
	if diff := cmp.Diff([]string{"name", "settings"}, object.Keys()); diff != "" {
		t.Fatalf("required mode keys mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"enabled"}, objectField(object, "settings").Keys()); diff != "" {
		t.Fatalf("nested required keys mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExampleYAMLRequiredMode(t *testing.T) {
	t.Parallel()

	gotBytes, err := GenerateExample(exampleSchemaFixture, ExampleOptions{
		Mode:   ExampleModeRequired,
		Format: "yml",
	})
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	got := string(gotBytes)
	assertContains(t, got, "# Service Name")
	assertContains(t, got, "# Human-readable service name.")
	assertContains(t, got, "name: demo")
	assertContains(t, got, "settings:")
	assertContains(t, got, "# Enabled")
	assertContains(t, got, "# Enables processing pipeline.")
	assertContains(t, got, "enabled: true")
	assertNotContains(t, got, "mode:")
	assertNotContains(t, got, "count:")

	if strings.Index(got, "name:") > strings.Index(got, "settings:") {
		t.Fatalf("yaml keys out of declaration order:\n%s", got)
	}
}

func TestGenerateExampleOptionValidation(t *testing.T) {
	t.Parallel()

	_, err := GenerateExample(exampleSchemaFixture, ExampleOptions{Mode: "broken"})
	if !errors.Is(err, ErrUnknownExampleMode) {
		t.Fatalf("expected ErrUnknownExampleMode, got: %v", err)
	}

	_, err = GenerateExample(exampleSchemaFixture, ExampleOptions{Format: "toml"})
	if !errors.Is(err, ErrUnknownExampleFormat) {
		t.Fatalf("expected ErrUnknownExampleFormat, got: %v", err)
	}
}

func TestGenerateExampleSupportsLocalDefinitionRefs(t *testing.T) {
	t.Parallel()

	schema := `{
  "$ref": "#/$defs/Config",
  "$defs": {
    "Config": {
      "type": "object",
      "required": ["name"],
      "properties": {"name": {"type": "string"}, "extra": {"type": "number"}}
    }
  }
}`

	data, err := GenerateExample(schema, ExampleOptions{Mode: ExampleModeRequired})
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	if strings.TrimSpace(string(data)) != "{\n  \"name\": \"<string>\"\n}" {
		t.Fatalf("unexpected generated json:\n%s", string(data))
	}
}

func TestGenerateExampleStopsOnRecursiveRefs(t *testing.T) {
	t.Parallel()

	data, err := GenerateExample(cyclicSchema, ExampleOptions{})
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	want := "{\n  \"value\": 0,\n  \"next\": null\n}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("recursive example mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExampleCompositionAndEnum(t *testing.T) {
	t.Parallel()

	schema := `{
  "type": "object",
  "allOf": [{"properties": {"kind": {"enum": ["a", "b"]}}, "required": ["kind"]}],
  "properties": {
    "payload": {"oneOf": [{"type": "integer", "const": 7}, {"type": "string"}]},
    "pair": {"type": "array", "prefixItems": [{"type": "boolean"}, {"type": "null"}]}
  }
}`

	data, err := GenerateExample(schema, ExampleOptions{})
	if err != nil {
		t.Fatalf("GenerateExample: %v", err)
	}

	want := "{\n  \"payload\": 7,\n  \"pair\": [\n    false,\n    null\n  ],\n  \"kind\": \"a\"\n}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("composition example mismatch (-want +got):\n%s", diff)
	}
}
