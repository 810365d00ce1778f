// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"errors"
	"strings"
	"testing"
)

const personSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0},
    "email": {"type": "string", "format": "email"},
    "role": {"enum": ["admin", "user"]}
  },
  "required": ["name"]
}`

func TestValidateAcceptsValidData(t *testing.T) {
	t.Parallel()

	inputs := []any{
		`{"name": "Ann", "age": 30}`,
		[]byte("```json\n{\"name\": \"Ann\"}\n```"),
		map[string]any{"name": "Ann", "role": "admin"},
	}

	for _, input := range inputs {
		valid, messages, err := Validate(personSchema, input, ValidateOptions{})
		if err != nil {
			t.Fatalf("Validate(%v): %v", input, err)
		}

		if !valid || len(messages) != 0 {
			t.Fatalf("Validate(%v) = %t, %v", input, valid, messages)
		}
	}
}

func TestValidateReportsOrderedMessages(t *testing.T) {
	t.Parallel()

	valid, messages, err := Validate(personSchema, `{"age": -1}`, ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if valid {
		t.Fatal("Validate reported invalid data as valid")
	}

	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2: %v", len(messages), messages)
	}

	assertContains(t, messages[0], "Validation error at ' (root)': ")
	assertContains(t, messages[0], "(got dict)")
	assertContains(t, messages[0], ` - Required properties: ["name"]`)

	assertContains(t, messages[1], "Validation error at '.age': ")
	assertContains(t, messages[1], "(got -1)")
	assertContains(t, messages[1], " - Constraint: minimum = 0")
}

func TestValidateKeepsIntegerPrecision(t *testing.T) {
	t.Parallel()

	schema := `{"type": "integer", "maximum": 9007199254740992}`

	valid, messages, err := Validate(schema, `9007199254740993`, ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if valid || len(messages) != 1 {
		t.Fatalf("Validate = %t, %v, want one maximum violation", valid, messages)
	}

	assertContains(t, messages[0], "(got 9007199254740993)")

	valid, _, err = Validate(schema, `9007199254740992`, ValidateOptions{})
	if err != nil || !valid {
		t.Fatalf("Validate(max) = %t, %v, want valid", valid, err)
	}
}

func TestValidateKeywordHints(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"name": 5}`:                    " - Expected type: string",
		`{"name": "a", "role": "guest"}`: ` - Allowed values: ["admin","user"]`,
		`{"name": "a", "email": "nope"}`: "(got 'nope')",
	}

	for data, want := range cases {
		valid, messages, err := Validate(personSchema, data, ValidateOptions{})
		if err != nil {
			t.Fatalf("Validate(%s): %v", data, err)
		}

		if valid || len(messages) == 0 {
			t.Fatalf("Validate(%s) = %t, %v", data, valid, messages)
		}

		assertContains(t, strings.Join(messages, "\n"), want)
	}
}

func TestValidateFirstErrorOnly(t *testing.T) {
	t.Parallel()

	_, messages, err := Validate(personSchema, `{"age": -1}`, ValidateOptions{FirstErrorOnly: true})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if len(messages) != 1 {
		t.Fatalf("messages = %v, want one", messages)
	}
}

func TestValidateRawStringFallback(t *testing.T) {
	t.Parallel()

	valid, _, err := Validate(`{"type": "string", "minLength": 3}`, "plain words", ValidateOptions{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if !valid {
		t.Fatal("raw string must validate against string schema")
	}

	valid, messages, err := Validate(`{"type": "object"}`, "plain words", ValidateOptions{NoRepair: true})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if valid {
		t.Fatal("raw string must not validate against object schema")
	}

	assertContains(t, messages[0], "(got 'plain words')")
}

func TestValidateYAMLData(t *testing.T) {
	t.Parallel()

	valid, messages, err := Validate(personSchema, "name: Ann\nage: 4\n", ValidateOptions{Mode: LoadModeYAML})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if !valid {
		t.Fatalf("Validate yaml = %v", messages)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	_, _, err := Validate(`{"type": 12}`, `{}`, ValidateOptions{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid schema error = %v, want ErrValidation", err)
	}

	_, _, err = Validate(personSchema, `{}`, ValidateOptions{Mode: "xml"})
	if !errors.Is(err, ErrUnknownLoadMode) {
		t.Fatalf("unknown mode error = %v, want ErrUnknownLoadMode", err)
	}

	_, _, err = Validate(42, `{}`, ValidateOptions{})
	if !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("unsupported schema error = %v, want ErrUnsupportedModel", err)
	}
}

func TestDescribeInstanceTruncatesLongStrings(t *testing.T) {
	t.Parallel()

	got := describeInstance(strings.Repeat("x", 60))
	want := " (got '" + strings.Repeat("x", 47) + "...')"
	if got != want {
		t.Fatalf("describeInstance = %q, want %q", got, want)
	}
}
