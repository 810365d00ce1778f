// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	goyaml "github.com/goccy/go-yaml"
	"github.com/kaptinlin/jsonrepair"
)

const (
	// LoadModeJSON extracts and parses JSON content.
	LoadModeJSON LoadMode = "json"
	// LoadModeYAML extracts and parses YAML mapping content.
	LoadModeYAML LoadMode = "yaml"
)

// LoadMode selects structured text syntax for Loads.
type LoadMode string

// minPatternCoverage is the share of text an embedded JSON pattern must cover.
const minPatternCoverage = 0.8

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json(.*?)```")
	yamlFencePattern = regexp.MustCompile("(?s)```ya?ml(.*?)```")

	embeddedJSONPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`),
		regexp.MustCompile(`(?s)\[[^\[\]]*(?:\[[^\[\]]*\][^\[\]]*)*\]`),
	}

	explanatoryWords = []string{"the", "here", "this", "that", "configuration", "data", "result"}
)

// LoadOptions configures structured text loading.
type LoadOptions struct {
	// Logger receives debug records about repair fallbacks; nil discards them.
	Logger *slog.Logger
	// Mode selects syntax, empty means LoadModeJSON.
	Mode LoadMode
	// NoRepair disables lenient repair of malformed content.
	NoRepair bool
	// SkipMarkdown disables extraction from markdown code fences.
	SkipMarkdown bool
}

// Loads extracts JSON or YAML content from free-form text, typically model output.
//
// Values are returned as map[string]any, []any, json.Number, string, bool or nil.
// YAML mode only accepts mappings.
func Loads(text string, opt LoadOptions) (any, error) {
	mode, err := normalizeLoadMode(opt.Mode)
	if err != nil {
		return nil, err
	}

	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	loader := structuredLoader{logger: logger, repair: !opt.NoRepair}
	switch mode {
	case LoadModeYAML:
		return loader.loadYAML(text, !opt.SkipMarkdown)
	default:
		return loader.loadJSON(text, !opt.SkipMarkdown)
	}
}

// normalizeLoadMode validates caller mode value.
func normalizeLoadMode(mode LoadMode) (LoadMode, error) {
	switch LoadMode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case "", LoadModeJSON:
		return LoadModeJSON, nil
	case LoadModeYAML, "yml":
		return LoadModeYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownLoadMode, mode)
	}
}

// structuredLoader carries loader settings through extraction steps.
type structuredLoader struct {
	logger *slog.Logger
	repair bool
}

// loadJSON extracts and parses JSON content.
func (loader structuredLoader) loadJSON(text string, markdown bool) (any, error) {
	extracted, fenced := "", false
	if markdown {
		extracted, fenced = extractFence(text, jsonFencePattern)
	}

	if !fenced {
		extracted = extractJSONContent(text)
	}

	return loader.parseJSON(strings.TrimSpace(extracted))
}

// loadYAML extracts and parses YAML mapping content.
func (loader structuredLoader) loadYAML(text string, markdown bool) (any, error) {
	extracted, fenced := "", false
	if markdown {
		extracted, fenced = extractFence(text, yamlFencePattern)
	}

	if !fenced {
		extracted = extractYAMLContent(text)
	}

	return loader.parseYAML(strings.TrimSpace(extracted))
}

// extractFence returns trimmed body of first matching markdown code fence.
func extractFence(text string, pattern *regexp.Regexp) (string, bool) {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	return strings.TrimSpace(match[1]), true
}

// extractJSONContent finds JSON embedded in text: balanced object, balanced array,
// then longest valid pattern covering most of the text.
func extractJSONContent(text string) string {
	if json.Valid([]byte(strings.TrimSpace(text))) {
		return text
	}

	if object, ok := extractBalanced(text, '{', '}'); ok {
		return object
	}

	if array, ok := extractBalanced(text, '[', ']'); ok {
		return array
	}

	best := ""
	for _, pattern := range embeddedJSONPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if !json.Valid([]byte(match)) {
				continue
			}

			if len(match) > len(best) && float64(len(match)) >= float64(len(text))*minPatternCoverage {
				best = match
			}
		}
	}

	if best != "" {
		return best
	}

	return text
}

// extractBalanced returns first balanced open/close span, ignoring delimiters inside strings.
func extractBalanced(text string, open, closer byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for index := start; index < len(text); index++ {
		char := text[index]
		if inString {
			switch {
			case escaped:
				escaped = false
			case char == '\\':
				escaped = true
			case char == '"':
				inString = false
			}

			continue
		}

		switch char {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return text[start : index+1], true
			}
		}
	}

	return "", false
}

// parseJSON decodes JSON text, falling back to repair when enabled.
func (loader structuredLoader) parseJSON(text string) (any, error) {
	value, err := decodeData([]byte(text))
	if err == nil {
		return value, nil
	}

	if !loader.repair {
		return nil, fmt.Errorf("%w: parse json %q: %w", ErrConversion, truncateText(text, 100), err)
	}

	repaired, repairErr := jsonrepair.JSONRepair(text)
	if repairErr != nil {
		return nil, fmt.Errorf("%w: repair json: %w", ErrConversion, repairErr)
	}

	loader.logger.Debug("json repaired", "error", err.Error())

	value, repairErr = decodeData([]byte(repaired))
	if repairErr != nil {
		return nil, fmt.Errorf("%w: repair and parse json: %w", ErrConversion, repairErr)
	}

	return value, nil
}

// decodeData decodes one JSON value keeping numbers as json.Number.
func decodeData(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return value, nil
}

// parseYAML decodes YAML mapping, applying repair strategies when enabled.
func (loader structuredLoader) parseYAML(text string) (any, error) {
	value, err := decodeYAMLMapping(text)
	if err == nil {
		return value, nil
	}

	if errors.Is(err, errNotMapping) || !loader.repair {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrConversion, err)
	}

	for _, candidate := range yamlRepairCandidates(text) {
		if value, candidateErr := decodeYAMLMapping(candidate); candidateErr == nil {
			loader.logger.Debug("yaml repaired", "error", err.Error())
			return value, nil
		}
	}

	fallback, jsonErr := loader.parseJSON(text)
	if jsonErr != nil {
		return nil, fmt.Errorf("%w: parse yaml with repair: %w", ErrConversion, err)
	}

	mapping, ok := fallback.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: parse yaml with repair: %w", ErrConversion, errNotMapping)
	}

	return mapping, nil
}

// errNotMapping marks YAML documents that parse to non-mapping values.
var errNotMapping = errors.New("yaml content did not parse to a mapping")

// decodeYAMLMapping parses YAML and normalizes mapping into JSON-compatible values.
func decodeYAMLMapping(text string) (map[string]any, error) {
	var raw any
	if err := goyaml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	normalized := normalizeYAMLValue(raw)
	if _, ok := normalized.(map[string]any); !ok {
		return nil, errNotMapping
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	value, err := decodeData(data)
	if err != nil {
		return nil, err
	}

	mapping, _ := value.(map[string]any)
	return mapping, nil
}

// normalizeYAMLValue converts mappings with non-string keys to map[string]any.
func normalizeYAMLValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = normalizeYAMLValue(item)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalizeYAMLValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, normalizeYAMLValue(item))
		}

		return out
	default:
		return typed
	}
}

// yamlRepairCandidates returns repaired variants in order of preference:
// common indentation removed, text from first key line, key lines only.
func yamlRepairCandidates(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, 3)

	minIndent := -1
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		if indent > 0 && (minIndent < 0 || indent < minIndent) {
			minIndent = indent
		}
	}

	if minIndent > 0 {
		prefix := strings.Repeat(" ", minIndent)
		normalized := make([]string, 0, len(lines))
		for _, line := range lines {
			stripped := strings.TrimSpace(line)
			if stripped != "" && !strings.HasPrefix(stripped, "#") {
				line = strings.TrimPrefix(line, prefix)
			}

			normalized = append(normalized, line)
		}

		out = append(out, strings.Join(normalized, "\n"))
	}

	for index, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped != "" && strings.Contains(line, ":") && !strings.HasPrefix(stripped, "#") {
			out = append(out, strings.Join(lines[index:], "\n"))
			break
		}
	}

	trimmed := strings.TrimSpace(text)
	if strings.Contains(trimmed, ":") && !strings.HasPrefix(trimmed, "{") {
		keyLines := make([]string, 0, len(lines))
		for _, line := range strings.Split(trimmed, "\n") {
			if strings.Contains(line, ":") && !strings.HasPrefix(strings.TrimSpace(line), "#") {
				keyLines = append(keyLines, line)
			}
		}

		if len(keyLines) > 0 {
			out = append(out, strings.Join(keyLines, "\n"))
		}
	}

	return out
}

// extractYAMLContent returns first contiguous run of YAML key or list lines.
func extractYAMLContent(text string) string {
	lines := strings.Split(text, "\n")
	start, end := -1, -1

	for index, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		listItem := strings.HasPrefix(stripped, "- ")
		candidate := listItem || (strings.Contains(line, ":") && !strings.HasPrefix(stripped, "{"))
		if candidate && (listItem || isYAMLKeyLine(line)) {
			if start < 0 {
				start = index
			}

			end = index
			continue
		}

		if start >= 0 && !looksLikeYAMLLine(line) {
			break
		}
	}

	if start < 0 {
		return text
	}

	return strings.Join(lines[start:end+1], "\n")
}

// isYAMLKeyLine reports whether line starts with a plain identifier key.
func isYAMLKeyLine(line string) bool {
	stripped := strings.TrimSpace(line)
	key, _, found := strings.Cut(stripped, ":")
	if !found {
		return false
	}

	key = strings.NewReplacer("_", "", "-", "").Replace(strings.TrimSpace(key))
	if key == "" {
		return false
	}

	for _, char := range key {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) {
			return false
		}
	}

	return true
}

// looksLikeYAMLLine reports whether line can continue a YAML block.
func looksLikeYAMLLine(line string) bool {
	stripped := strings.TrimSpace(line)
	switch {
	case stripped == "":
		return true
	case strings.Contains(stripped, ":") && !strings.HasPrefix(stripped, "{"):
		return true
	case strings.HasPrefix(stripped, "- "):
		return true
	case strings.HasPrefix(line, " ") && strings.IndexFunc(stripped, isAlphaNumeric) >= 0:
		return true
	}

	lower := strings.ToLower(stripped)
	for _, word := range explanatoryWords {
		if strings.HasPrefix(lower, word+" ") {
			return false
		}
	}

	return true
}

// isAlphaNumeric reports letters and digits.
func isAlphaNumeric(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsDigit(char)
}

// truncateText shortens text to limit runes with ellipsis.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit]) + "..."
}
