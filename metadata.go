// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

// notationMask selects notations a metadata rule applies to.
type notationMask uint8

const (
	maskCompact notationMask = 1 << iota
	maskInterface
	maskKeyTyped

	maskAll = maskCompact | maskInterface | maskKeyTyped
)

// metadataRule renders one keyword into annotation fragment.
type metadataRule struct {
	render  func(keyword string, value any) (string, bool)
	keyword string
	scope   notationMask
}

// metadataRules is the fixed rendering order of annotation fragments.
var metadataRules = []metadataRule{
	{keyword: "description", scope: maskAll, render: renderVerbatim},
	{keyword: "default", scope: maskAll, render: renderDefault},
	{keyword: "pattern", scope: maskAll, render: renderKeyword},
	{keyword: "minimum", scope: maskAll, render: renderLabel("min")},
	{keyword: "maximum", scope: maskAll, render: renderLabel("max")},
	{keyword: "exclusiveMinimum", scope: maskCompact | maskInterface, render: renderKeyword},
	{keyword: "exclusiveMaximum", scope: maskCompact | maskInterface, render: renderKeyword},
	{keyword: "minLength", scope: maskAll, render: renderKeyword},
	{keyword: "maxLength", scope: maskAll, render: renderKeyword},
	{keyword: "minItems", scope: maskAll, render: renderKeyword},
	{keyword: "maxItems", scope: maskAll, render: renderKeyword},
	{keyword: "minProperties", scope: maskCompact | maskInterface, render: renderKeyword},
	{keyword: "maxProperties", scope: maskCompact | maskInterface, render: renderKeyword},
	{keyword: "multipleOf", scope: maskAll, render: renderKeyword},
	{keyword: "format", scope: maskAll, render: renderKeyword},
	{keyword: "const", scope: maskCompact, render: renderKeyword},
	{keyword: "uniqueItems", scope: maskAll, render: renderUniqueItems},
	{keyword: "contains", scope: maskCompact, render: renderKeyword},
	{keyword: "if", scope: maskCompact, render: renderKeyword},
	{keyword: "then", scope: maskCompact, render: renderKeyword},
	{keyword: "else", scope: maskCompact, render: renderKeyword},
	{keyword: "dependencies", scope: maskCompact, render: renderKeyword},
	{keyword: "patternProperties", scope: maskCompact, render: renderKeyword},
	{keyword: "propertyNames", scope: maskCompact, render: renderKeyword},
	{keyword: "unevaluatedProperties", scope: maskCompact, render: renderKeyword},
}

// schemaLevelKeywords are root keywords rendered as trailing annotation in compact notation.
var schemaLevelKeywords = []string{
	"patternProperties",
	"dependencies",
	"if",
	"then",
	"else",
	"propertyNames",
	"unevaluatedProperties",
}

// maskFor returns rule mask bit for notation.
func maskFor(notation Notation) notationMask {
	switch notation {
	case NotationInterface:
		return maskInterface
	case NotationKeyTyped:
		return maskKeyTyped
	default:
		return maskCompact
	}
}

// metadataFragments renders recognized keywords of property node in fixed order.
func (f *formatter) metadataFragments(value any) []string {
	if !f.metadata {
		return nil
	}

	node := asObject(value)
	if node == nil {
		return nil
	}

	mask := maskFor(f.style.notation())
	var out []string
	for _, rule := range metadataRules {
		if rule.scope&mask == 0 {
			continue
		}

		raw, ok := node.Get(rule.keyword)
		if !ok {
			continue
		}

		if fragment, ok := rule.render(rule.keyword, raw); ok {
			out = append(out, fragment)
		}
	}

	return out
}

// schemaLevelFragments renders root structural keywords.
func (f *formatter) schemaLevelFragments() []string {
	if !f.metadata {
		return nil
	}

	var out []string
	for _, keyword := range schemaLevelKeywords {
		raw, ok := f.schema.Get(keyword)
		if !ok {
			continue
		}

		if fragment, ok := renderKeyword(keyword, raw); ok {
			out = append(out, fragment)
		}
	}

	return out
}

// renderVerbatim renders non-empty text as is.
func renderVerbatim(_ string, value any) (string, bool) {
	text := plainText(value)
	return text, text != ""
}

// renderDefault renders default value, null defaults carry no information.
func renderDefault(_ string, value any) (string, bool) {
	if value == nil {
		return "", false
	}

	return "(defaults to " + plainText(value) + ")", true
}

// renderKeyword renders "keyword: value".
func renderKeyword(keyword string, value any) (string, bool) {
	return keyword + ": " + plainText(value), true
}

// renderLabel renders "label: value" for keywords with short labels.
func renderLabel(label string) func(string, any) (string, bool) {
	return func(_ string, value any) (string, bool) {
		return label + ": " + plainText(value), true
	}
}

// renderUniqueItems renders marker only when uniqueItems is true.
func renderUniqueItems(_ string, value any) (string, bool) {
	if flag, ok := asBool(value); ok && flag {
		return "unique items", true
	}

	return "", false
}
