// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// validationSchemaURL names in-memory schema resource for compiler.
const validationSchemaURL = "mem:schema"

// gotPreviewLimit bounds string instance preview in messages.
const gotPreviewLimit = 50

// constraintKeywords render as "Constraint: kw = value".
var constraintKeywords = map[string]bool{
	"minimum":   true,
	"maximum":   true,
	"minLength": true,
	"maxLength": true,
	"minItems":  true,
	"maxItems":  true,
}

// ValidateOptions configures data validation.
type ValidateOptions struct {
	// Logger receives debug records; nil discards them.
	Logger *slog.Logger
	// Mode selects syntax for string data, empty means LoadModeJSON.
	Mode LoadMode
	// NoRepair disables lenient repair of string data.
	NoRepair bool
	// FirstErrorOnly keeps only first message.
	FirstErrorOnly bool
}

// Validate checks data against schema using Draft 2020-12 with format assertions.
//
// Schema accepts every input Simplify accepts. String and []byte data goes
// through Loads first; when it cannot be parsed the raw string is validated.
// Returned messages are ordered by instance location.
func Validate(schema any, data any, opt ValidateOptions) (bool, []string, error) {
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	object, err := schemaFromInput(schema)
	if err != nil {
		return false, nil, err
	}

	compiled, err := compileValidationSchema(object)
	if err != nil {
		return false, nil, err
	}

	instance, err := validationInstance(data, opt, logger)
	if err != nil {
		return false, nil, err
	}

	err = compiled.Validate(instance)
	if err == nil {
		return true, nil, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return false, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	leaves := leafValidationErrors(validationErr, nil)
	sort.SliceStable(leaves, func(i, j int) bool {
		if leaves[i].InstanceLocation != leaves[j].InstanceLocation {
			return leaves[i].InstanceLocation < leaves[j].InstanceLocation
		}

		return leaves[i].KeywordLocation < leaves[j].KeywordLocation
	})

	messages := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		messages = append(messages, formatValidationError(leaf, object, instance))
	}

	if opt.FirstErrorOnly && len(messages) > 1 {
		messages = messages[:1]
	}

	return false, messages, nil
}

// compileValidationSchema compiles ordered schema with draft 2020-12 defaults.
func compileValidationSchema(schema *Object) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: encode schema: %w", ErrValidation, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if err := compiler.AddResource(validationSchemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: invalid json schema: %w", ErrValidation, err)
	}

	compiled, err := compiler.Compile(validationSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid json schema: %w", ErrValidation, err)
	}

	return compiled, nil
}

// validationInstance converts data into validator value model.
func validationInstance(data any, opt ValidateOptions, logger *slog.Logger) (any, error) {
	switch typed := data.(type) {
	case []byte:
		data = string(typed)
	case json.RawMessage:
		data = string(typed)
	}

	if text, ok := data.(string); ok {
		loaded, err := Loads(strings.TrimSpace(text), LoadOptions{
			Logger:   logger,
			Mode:     opt.Mode,
			NoRepair: opt.NoRepair,
		})
		if err != nil {
			if errors.Is(err, ErrUnknownLoadMode) {
				return nil, err
			}

			logger.Debug("data not parseable, validating raw string", "error", err.Error())
			return text, nil
		}

		data = loaded
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: encode data: %w", ErrValidation, err)
	}

	var instance any
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	if err = decoder.Decode(&instance); err != nil {
		return nil, fmt.Errorf("%w: decode data: %w", ErrValidation, err)
	}

	return instance, nil
}

// leafValidationErrors collects innermost causes of validation error tree.
func leafValidationErrors(err *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return append(out, err)
	}

	for _, cause := range err.Causes {
		out = leafValidationErrors(cause, out)
	}

	return out
}

// formatValidationError renders one leaf error as LLM-facing message.
func formatValidationError(err *jsonschema.ValidationError, schema *Object, instance any) string {
	path := " (root)"
	tokens := pointerTokens(err.InstanceLocation)
	if len(tokens) > 0 {
		path = "." + strings.Join(tokens, ".")
	}

	var got string
	if value, ok := lookupPointer(instance, tokens); ok {
		got = describeInstance(value)
	}

	return fmt.Sprintf("Validation error at '%s': %s%s%s", path, err.Message, got, keywordInfo(err, schema))
}

// describeInstance renders " (got ...)" suffix for failing value.
func describeInstance(value any) string {
	switch typed := value.(type) {
	case map[string]any, *Object:
		return " (got dict)"
	case []any:
		return " (got list)"
	case nil:
		return " (got null)"
	case string:
		if len([]rune(typed)) > gotPreviewLimit {
			return " (got '" + string([]rune(typed)[:gotPreviewLimit-3]) + "...')"
		}

		return " (got '" + typed + "')"
	default:
		return " (got " + fmt.Sprint(typed) + ")"
	}
}

// keywordInfo renders schema hint for failing keyword.
func keywordInfo(err *jsonschema.ValidationError, schema *Object) string {
	keywordTokens := pointerTokens(err.KeywordLocation)
	if len(keywordTokens) == 0 {
		return ""
	}

	keyword := keywordTokens[len(keywordTokens)-1]
	_, fragment, _ := strings.Cut(err.AbsoluteKeywordLocation, "#")

	value, ok := lookupPointer(schema, pointerTokens(fragment))
	if !ok {
		return ""
	}

	switch {
	case keyword == "required":
		return " - Required properties: " + mustJSONInline(value)
	case keyword == "type":
		return " - Expected type: " + plainText(value)
	case constraintKeywords[keyword]:
		return " - Constraint: " + keyword + " = " + plainText(value)
	case keyword == "pattern":
		return " - Expected pattern: " + plainText(value)
	case keyword == "enum":
		return " - Allowed values: " + mustJSONInline(value)
	default:
		return ""
	}
}

// pointerTokens splits JSON pointer into decoded reference tokens.
func pointerTokens(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}

	parts := strings.Split(pointer, "/")
	for index, part := range parts {
		parts[index] = decodeJSONPointerToken(part)
	}

	return parts
}

// lookupPointer walks decoded pointer tokens through maps, slices and ordered objects.
func lookupPointer(value any, tokens []string) (any, bool) {
	current := value
	for _, token := range tokens {
		switch typed := current.(type) {
		case *Object:
			item, ok := typed.Get(token)
			if !ok {
				return nil, false
			}

			current = item
		case map[string]any:
			item, ok := typed[token]
			if !ok {
				return nil, false
			}

			current = item
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(typed) {
				return nil, false
			}

			current = typed[index]
		default:
			return nil, false
		}
	}

	return current, true
}
