// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderPromptInstructions(t *testing.T) {
	t.Parallel()

	result := mustSimplify(t, userSchema, Options{})
	got, err := RenderPrompt(result, PromptOptions{})
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}

	want := "Respond with a JSON object that must be parseable according to the following schema:\n\n" +
		result.String() + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}

	titled, err := RenderPrompt(result, PromptOptions{Title: "The user record"})
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}

	assertContains(t, titled, "The user record must be parseable according to the following schema:\n\n")
}

func TestRenderPromptFenced(t *testing.T) {
	t.Parallel()

	result := mustSimplify(t, userSchema, Options{Notation: NotationKeyTyped})
	got, err := RenderPrompt(result, PromptOptions{Template: "Fenced", Title: "User"})
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}

	want := "## User\n\n" +
		"Respond with a YAML-style object in the following order of fields: `name`, then `age`." +
		" Fields marked with * are required.\n\n" +
		"```yaml\n" + result.String() + "\n```\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fenced prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPromptCustomTemplate(t *testing.T) {
	t.Parallel()

	result := mustSimplify(t, userSchema, Options{Notation: NotationInterface})
	got, err := RenderPrompt(result, PromptOptions{
		TemplateText: "{{ .Notation }}|{{ .Language }}|{{ jsonInline .Fields }}",
	})
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}

	if want := "typescript|typescript|[\"name\",\"age\"]\n"; got != want {
		t.Fatalf("custom prompt = %q, want %q", got, want)
	}
}

func TestRenderPromptErrors(t *testing.T) {
	t.Parallel()

	result := mustSimplify(t, userSchema, Options{})
	if _, err := RenderPrompt(result, PromptOptions{Template: "missing"}); !errors.Is(err, ErrUnknownPromptTemplate) {
		t.Fatalf("unknown template error = %v", err)
	}

	if _, err := RenderPrompt(result, PromptOptions{TemplateText: "{{ .Nope "}); !errors.Is(err, ErrExecutePromptTemplate) {
		t.Fatalf("broken template error = %v", err)
	}

	if _, err := RenderPrompt(nil, PromptOptions{}); !errors.Is(err, ErrExecutePromptTemplate) {
		t.Fatalf("nil result error = %v", err)
	}
}

func TestBuiltinPromptTemplates(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"fenced", "instructions"}, BuiltinPromptTemplateNames()); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}

	for _, name := range BuiltinPromptTemplateNames() {
		text, err := BuiltinPromptTemplate(name)
		if err != nil {
			t.Fatalf("BuiltinPromptTemplate(%s): %v", name, err)
		}

		assertContains(t, text, "{{ .Schema }}")
	}
}
