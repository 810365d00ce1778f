// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Result is one simplified schema.
//
// String rendering happens once on first use; every view is safe to call
// from multiple goroutines afterwards.
type Result struct {
	formatter *formatter
	schema    *Object
	tokenizer Tokenizer
	text      string
	notation  Notation
	once      sync.Once
}

// String returns simplified schema text, rendering it on first call.
func (r *Result) String() string {
	r.once.Do(func() {
		r.text = r.formatter.render()
	})

	return r.text
}

// Notation returns notation used for rendering.
func (r *Result) Notation() Notation {
	return r.notation
}

// Schema returns original input schema.
func (r *Result) Schema() *Object {
	return r.schema
}

// Dict returns processed root properties keyed by name, required keys suffixed with "*".
func (r *Result) Dict() *Object {
	out := NewObject()
	for _, item := range r.formatter.fields {
		out.Set(item.key(), item.token+r.formatter.style.annotate(item.fragments))
	}

	return out
}

// JSON encodes Dict view, indent <= 0 produces single-line JSON.
func (r *Result) JSON(indent int) (string, error) {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndentWithOption(r.Dict(), "", strings.Repeat(" ", indent), json.DisableHTMLEscape())
	} else {
		data, err = json.MarshalNoEscape(r.Dict())
	}

	if err != nil {
		return "", fmt.Errorf("%w: encode json: %w", ErrConversion, err)
	}

	return string(data), nil
}

// YAML encodes Dict view as block or flow YAML.
func (r *Result) YAML(flow bool) (string, error) {
	node, err := yamlNodeForValue(r.Dict())
	if err != nil {
		return "", fmt.Errorf("%w: encode yaml: %w", ErrConversion, err)
	}

	if flow {
		setYAMLFlowStyle(node)
	}

	data, err := marshalYAMLNode(node)
	if err != nil {
		return "", fmt.Errorf("%w: encode yaml: %w", ErrConversion, err)
	}

	return string(data), nil
}

// TokenCount counts tokens of String view with configured tokenizer.
func (r *Result) TokenCount() (int, error) {
	if r.tokenizer == nil {
		return 0, ErrTokenizerUnavailable
	}

	count, err := r.tokenizer.CountTokens(r.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenizerUnavailable, err)
	}

	return count, nil
}

// CompareTokens compares tokens of original schema JSON and String view.
// A nil original compares against the input schema.
func (r *Result) CompareTokens(original *Object) (TokenComparison, error) {
	if r.tokenizer == nil {
		return TokenComparison{}, ErrTokenizerUnavailable
	}

	if original == nil {
		original = r.schema
	}

	originalJSON, err := json.MarshalNoEscape(original)
	if err != nil {
		return TokenComparison{}, fmt.Errorf("%w: encode original schema: %w", ErrConversion, err)
	}

	originalTokens, err := r.tokenizer.CountTokens(string(originalJSON))
	if err != nil {
		return TokenComparison{}, fmt.Errorf("%w: %w", ErrTokenizerUnavailable, err)
	}

	simplifiedTokens, err := r.TokenCount()
	if err != nil {
		return TokenComparison{}, err
	}

	return compareTokenCounts(originalTokens, simplifiedTokens), nil
}
