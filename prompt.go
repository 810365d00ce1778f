// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

const (
	// PromptTemplateInstructions renders one instruction sentence followed by schema text.
	PromptTemplateInstructions = "instructions"
	// PromptTemplateFenced renders field order and schema inside a markdown code fence.
	PromptTemplateFenced = "fenced"
)

// templateFS stores built-in prompt templates embedded into the package.
//
//go:embed templates/*.gotmpl
var templateFS embed.FS

// builtInTemplateFiles maps template aliases to embedded file paths.
var builtInTemplateFiles = map[string]string{
	PromptTemplateInstructions: "templates/instructions.gotmpl",
	PromptTemplateFenced:       "templates/fenced.gotmpl",
}

// notationLanguages maps notation to fence language hint.
var notationLanguages = map[Notation]string{
	NotationCompact:   "json",
	NotationInterface: "typescript",
	NotationKeyTyped:  "yaml",
}

// PromptOptions configures prompt rendering.
type PromptOptions struct {
	// Template names built-in template, empty means PromptTemplateInstructions.
	Template string
	// TemplateText overrides Template with custom text/template source.
	TemplateText string
	// Title names the output being requested.
	Title string
}

// promptView is the view model passed to prompt templates.
type promptView struct {
	Title    string
	Notation Notation
	Schema   string
	Language string
	Format   string
	Fields   []string
	Required bool
}

// RenderPrompt renders LLM output instructions around simplified schema.
func RenderPrompt(result *Result, opt PromptOptions) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: nil result", ErrExecutePromptTemplate)
	}

	promptTemplate, err := resolvePromptTemplate(opt)
	if err != nil {
		return "", err
	}

	view := promptView{
		Title:    strings.TrimSpace(opt.Title),
		Notation: result.Notation(),
		Schema:   result.String(),
		Language: notationLanguages[result.Notation()],
		Format:   "a JSON object",
		Required: result.formatter.sawRequired,
	}

	if result.Notation() == NotationKeyTyped {
		view.Format = "a YAML-style object"
	}

	for _, item := range result.formatter.fields {
		view.Fields = append(view.Fields, item.name)
	}

	var out strings.Builder
	if err := promptTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutePromptTemplate, err)
	}

	return strings.TrimRight(out.String(), "\n") + "\n", nil
}

// BuiltinPromptTemplateNames returns all available built-in template names.
func BuiltinPromptTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinPromptTemplate returns one built-in template source by name.
func BuiltinPromptTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownPromptTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrUnknownPromptTemplate, name, err)
	}

	return string(data), nil
}

// resolvePromptTemplate resolves either custom or built-in template text into a parsed template.
func resolvePromptTemplate(opt PromptOptions) (*template.Template, error) {
	if text := strings.TrimSpace(opt.TemplateText); text != "" {
		parsed, err := template.New("custom").Funcs(promptTemplateFuncs()).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutePromptTemplate, err)
		}

		return parsed, nil
	}

	name := normalizeTemplateName(opt.Template)
	if name == "" {
		name = PromptTemplateInstructions
	}

	text, err := BuiltinPromptTemplate(name)
	if err != nil {
		return nil, err
	}

	parsed, err := template.New(name).Funcs(promptTemplateFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrExecutePromptTemplate, name, err)
	}

	return parsed, nil
}

// normalizeTemplateName normalizes built-in template identifiers.
func normalizeTemplateName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// promptTemplateFuncs provides helpers available inside prompt templates.
func promptTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"fieldList": func(names []string) string {
			quoted := make([]string, 0, len(names))
			for _, name := range names {
				quoted = append(quoted, "`"+name+"`")
			}

			return strings.Join(quoted, ", then ")
		},
		"jsonInline": mustJSONInline,
	}
}
