// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"log/slog"
)

const (
	// DefaultMaxDepth is the per-definition recursion ceiling for cyclic references.
	DefaultMaxDepth = 10
)

// Options configures schema simplification.
type Options struct {
	// Tokenizer enables Result token views; nil leaves them unavailable.
	// DefaultTokenizer gives exact cl100k_base counts.
	Tokenizer Tokenizer
	// Logger receives debug records about fallbacks; nil discards them.
	Logger *slog.Logger
	// Notation selects output style, empty means NotationCompact.
	Notation Notation
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
	// OmitMetadata drops inline descriptions and constraints.
	OmitMetadata bool
}

// formatter holds per-conversion state.
// It is used by a single goroutine for the lifetime of one conversion.
type formatter struct {
	style    style
	logger   *slog.Logger
	schema   *Object
	root     *Object
	defs     *Object
	cache    map[string]string
	depth    map[string]int
	fields   []field
	rootDef  string
	maxDepth int
	metadata bool
	// sawRequired is set by any processed object with required keys,
	// nested objects and definition blocks included, not only the root.
	sawRequired bool
	fieldsDone  bool
}

// Simplify converts a schema-like input into compact text notation.
//
// Input may be JSON bytes or string, *Object, map[string]any, an invopop
// *jsonschema.Schema, a reflect.Type or any Go struct value.
func Simplify(input any, opt Options) (*Result, error) {
	notation, err := ParseNotation(string(opt.Notation))
	if err != nil {
		return nil, err
	}

	schema, err := schemaFromInput(input)
	if err != nil {
		return nil, err
	}

	f := newFormatter(schema, notation, opt)
	f.rootFields()

	return &Result{
		formatter: f,
		schema:    schema,
		notation:  notation,
		tokenizer: opt.Tokenizer,
	}, nil
}

// newFormatter builds per-conversion state and pre-warms primitive definitions.
func newFormatter(schema *Object, notation Notation, opt Options) *formatter {
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	maxDepth := opt.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	if schema == nil {
		schema = NewObject()
	}

	f := &formatter{
		style:    styleFor(notation),
		logger:   logger,
		schema:   schema,
		root:     schema,
		defs:     definitionsTable(schema),
		cache:    make(map[string]string),
		depth:    make(map[string]int),
		maxDepth: maxDepth,
		metadata: !opt.OmitMetadata,
	}

	f.redirectRoot()
	f.prewarm()
	return f
}

// redirectRoot follows root-level $ref to an object definition.
// Reflected schemas often carry only {"$ref": "#/$defs/Model"} at the root.
func (f *formatter) redirectRoot() {
	if hasProperties(f.schema) {
		return
	}

	name := definitionName(stringField(f.schema, "$ref"))
	if name == "" {
		return
	}

	def := objectField(f.defs, name)
	if !hasProperties(def) {
		return
	}

	f.root = def
	f.rootDef = name
}

// render produces final text for the configured notation.
func (f *formatter) render() string {
	return f.style.emit(f)
}
