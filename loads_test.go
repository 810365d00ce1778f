// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"errors"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestLoadsJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		want any
		name string
		text string
	}{
		{
			name: "plain object",
			text: `{"a": 1, "b": [true, null]}`,
			want: map[string]any{"a": json.Number("1"), "b": []any{true, nil}},
		},
		{
			name: "markdown fence",
			text: "Here you go:\n```json\n{\"a\": 1}\n```\nAnything else?",
			want: map[string]any{"a": json.Number("1")},
		},
		{
			name: "embedded object",
			text: `Result: {"a": {"b": [1, 2]}} done`,
			want: map[string]any{"a": map[string]any{"b": []any{json.Number("1"), json.Number("2")}}},
		},
		{
			name: "braces inside strings",
			text: `text {"a": "}{"} tail`,
			want: map[string]any{"a": "}{"},
		},
		{
			name: "embedded array",
			text: "values: [1, 2, 3]",
			want: []any{json.Number("1"), json.Number("2"), json.Number("3")},
		},
		{
			name: "repaired fence",
			text: "```json\n{'name': 'Ann', active: True,}\n```",
			want: map[string]any{"name": "Ann", "active": true},
		},
		{
			name: "truncated output",
			text: `{"items": [{"id": 1}, {"id": 2`,
			want: map[string]any{"items": []any{
				map[string]any{"id": json.Number("1")},
				map[string]any{"id": json.Number("2")},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Loads(tc.text, LoadOptions{})
			if err != nil {
				t.Fatalf("Loads: %v", err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Loads mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadsJSONRepair(t *testing.T) {
	t.Parallel()

	cases := []struct {
		want any
		name string
		text string
	}{
		{
			name: "single quotes and python literals",
			text: `{'name': 'Ann', 'ok': True, 'none': None}`,
			want: map[string]any{"name": "Ann", "ok": true, "none": nil},
		},
		{
			name: "unquoted keys and trailing commas",
			text: `{name: "Ann", tags: ["a", "b",],}`,
			want: map[string]any{"name": "Ann", "tags": []any{"a", "b"}},
		},
		{
			name: "missing comma",
			text: `{"a": 1 "b": 2}`,
			want: map[string]any{"a": json.Number("1"), "b": json.Number("2")},
		},
		{
			name: "comments",
			text: "{\"a\": 1, // first\n /* block */ \"b\": 2\n}",
			want: map[string]any{"a": json.Number("1"), "b": json.Number("2")},
		},
		{
			name: "unclosed containers",
			text: `{"a": [1, 2`,
			want: map[string]any{"a": []any{json.Number("1"), json.Number("2")}},
		},
		{
			name: "unterminated string",
			text: `{"a": "hel`,
			want: map[string]any{"a": "hel"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Loads(tc.text, LoadOptions{})
			if err != nil {
				t.Fatalf("Loads: %v", err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Loads mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadsJSONNoRepair(t *testing.T) {
	t.Parallel()

	_, err := Loads(`{'a': 1}`, LoadOptions{NoRepair: true})
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("Loads error = %v, want ErrConversion", err)
	}
}

func TestLoadsJSONSkipMarkdown(t *testing.T) {
	t.Parallel()

	text := "```json\n{\"fenced\": true}\n```"
	got, err := Loads(text, LoadOptions{SkipMarkdown: true})
	if err != nil {
		t.Fatalf("Loads: %v", err)
	}

	if diff := cmp.Diff(map[string]any{"fenced": true}, got); diff != "" {
		t.Fatalf("Loads mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadsYAML(t *testing.T) {
	t.Parallel()

	want := map[string]any{
		"server":  map[string]any{"host": "localhost", "port": json.Number("8080")},
		"enabled": true,
	}

	cases := map[string]string{
		"prose around": "Here is the config:\nserver:\n  host: localhost\n  port: 8080\nenabled: true\n",
		"fenced":       "Sure.\n```yaml\nserver:\n  host: localhost\n  port: 8080\nenabled: true\n```\n",
		"yml fence":    "```yml\nenabled: true\nserver: {host: localhost, port: 8080}\n```",
	}

	for name, text := range cases {
		got, err := Loads(text, LoadOptions{Mode: "yml"})
		if err != nil {
			t.Fatalf("%s: Loads: %v", name, err)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: Loads mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadsYAMLRejectsNonMapping(t *testing.T) {
	t.Parallel()

	_, err := Loads("- a\n- b\n", LoadOptions{Mode: LoadModeYAML})
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("Loads error = %v, want ErrConversion", err)
	}

	if !errors.Is(err, errNotMapping) {
		t.Fatalf("Loads error = %v, want errNotMapping", err)
	}
}

func TestParseYAMLFallsBackToRepairedJSON(t *testing.T) {
	t.Parallel()

	loader := structuredLoader{logger: slog.New(slog.DiscardHandler), repair: true}

	got, err := loader.parseYAML(`{"a": 1, "b": [1, 2`)
	if err != nil {
		t.Fatalf("parseYAML: %v", err)
	}

	want := map[string]any{"a": json.Number("1"), "b": []any{json.Number("1"), json.Number("2")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parseYAML mismatch (-want +got):\n%s", diff)
	}

	_, err = loader.parseYAML(`[1, 2`)
	if !errors.Is(err, ErrConversion) || !errors.Is(err, errNotMapping) {
		t.Fatalf("parseYAML error = %v, want ErrConversion wrapping errNotMapping", err)
	}
}

func TestLoadsUnknownMode(t *testing.T) {
	t.Parallel()

	_, err := Loads("{}", LoadOptions{Mode: "toml"})
	if !errors.Is(err, ErrUnknownLoadMode) {
		t.Fatalf("Loads error = %v, want ErrUnknownLoadMode", err)
	}
}

func TestYAMLRepairCandidates(t *testing.T) {
	t.Parallel()

	got := yamlRepairCandidates("note\n  a: 1\n  b: 2")
	want := []string{
		"note\na: 1\nb: 2",
		"  a: 1\n  b: 2",
		"  a: 1\n  b: 2",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("yamlRepairCandidates mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractYAMLContent(t *testing.T) {
	t.Parallel()

	text := "Here is the result:\nname: demo\nitems:\n  - one\n  - two\n"
	want := "name: demo\nitems:\n  - one\n  - two"
	if got := extractYAMLContent(text); got != want {
		t.Fatalf("extractYAMLContent = %q, want %q", got, want)
	}
}
