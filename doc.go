// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

/*
Package schemalite converts JSON Schema documents into compact, token-efficient
text for LLM prompts.

Three notations are available: "jsonish" (compact block), "typescript"
(interface declarations) and "yaml" (one key: type line per property).
Property order follows the source schema and every conversion is deterministic.

Simplify schema bytes:

	schemaBytes, err := os.ReadFile("schema.json")
	if err != nil {
		return err
	}

	result, err := schemalite.Simplify(schemaBytes, schemalite.Options{
		Notation: schemalite.NotationInterface,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.String())

Simplify a Go struct through its reflected schema:

	type Order struct {
		ID    string  `json:"id" jsonschema:"description=Order identifier"`
		Total float64 `json:"total" jsonschema:"minimum=0"`
	}

	result, err := schemalite.Simplify(Order{}, schemalite.Options{})
	if err != nil {
		return err
	}

	dict := result.Dict()
	fmt.Println(dict.Keys())

Compare token usage. DefaultTokenizer counts exact cl100k_base tokens from
embedded BPE ranks and falls back to HeuristicTokenizer:

	result, err := schemalite.Simplify(schemaBytes, schemalite.Options{
		Tokenizer: schemalite.DefaultTokenizer(nil),
	})
	if err != nil {
		return err
	}

	cmp, err := result.CompareTokens(nil)
	if err != nil {
		return err
	}

	fmt.Printf("saved %d tokens (%.2f%%)\n", cmp.TokensSaved, cmp.ReductionPercent)

Extract and validate model output:

	value, err := schemalite.Loads("Sure:\n```json\n{\"id\": \"a1\"}\n```", schemalite.LoadOptions{})
	if err != nil {
		return err
	}

	ok, messages, err := schemalite.Validate(schemaBytes, value, schemalite.ValidateOptions{})
	if err != nil {
		return err
	}

	fmt.Println(ok, messages)

Render prompt instructions:

	prompt, err := schemalite.RenderPrompt(result, schemalite.PromptOptions{
		Template: schemalite.PromptTemplateFenced,
		Title:    "order",
	})
	if err != nil {
		return err
	}

	fmt.Println(prompt)
*/
package schemalite
