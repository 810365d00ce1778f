// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/woozymasta/schemalite"
)

// errDataInvalid marks validate runs whose messages were already printed.
var errDataInvalid = errors.New("data is invalid")

// runSimplify converts schema and writes selected view.
func (runner *cliRunner) runSimplify(notation notationFlags, format string, args ioArgs) error {
	config, logger, err := runner.settings()
	if err != nil {
		return err
	}

	schemaBytes, err := runner.readInput(args.Input, "schema")
	if err != nil {
		return err
	}

	result, err := schemalite.Simplify(schemaBytes, simplifyOptions(notation, config, logger))
	if err != nil {
		return fmt.Errorf("simplify schema: %w", err)
	}

	text, err := resultView(result, format)
	if err != nil {
		return err
	}

	return runner.writeOutput(args.Output, text, "simplified schema")
}

// resultView renders result in one of CLI output views.
func resultView(result *schemalite.Result, format string) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case "json":
		text, err = result.JSON(2)
	case "yaml":
		text, err = result.YAML(false)
	case "dict":
		text, err = result.YAML(true)
	default:
		text = result.String()
	}

	if err != nil {
		return "", fmt.Errorf("render %s view: %w", format, err)
	}

	return ensureTrailingNewline(text), nil
}

// newTokenizer builds selected token counter, tiktoken falls back to heuristic.
func newTokenizer(counter tokenizerFlags, logger *slog.Logger) schemalite.Tokenizer {
	heuristic := schemalite.HeuristicTokenizer{CharsPerToken: counter.CharsPerToken}
	if counter.Kind == "heuristic" {
		return heuristic
	}

	tokenizer, err := schemalite.NewTiktokenTokenizer(counter.Encoding)
	if err != nil {
		logger.Warn("tiktoken unavailable, using heuristic token estimate", "error", err.Error())
		return heuristic
	}

	return tokenizer
}

// runTokens prints token comparison report.
func (runner *cliRunner) runTokens(notation notationFlags, counter tokenizerFlags, asJSON bool, args ioArgs) error {
	config, logger, err := runner.settings()
	if err != nil {
		return err
	}

	schemaBytes, err := runner.readInput(args.Input, "schema")
	if err != nil {
		return err
	}

	options := simplifyOptions(notation, config, logger)
	options.Tokenizer = newTokenizer(counter, logger)

	result, err := schemalite.Simplify(schemaBytes, options)
	if err != nil {
		return fmt.Errorf("simplify schema: %w", err)
	}

	comparison, err := result.CompareTokens(nil)
	if err != nil {
		return fmt.Errorf("compare tokens: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndentWithOption(comparison, "", "  ", json.DisableHTMLEscape())
		if err != nil {
			return fmt.Errorf("encode token report: %w", err)
		}

		return runner.writeOutput(args.Output, string(data)+"\n", "token report")
	}

	report := fmt.Sprintf(`notation:          %s
original tokens:   %d
simplified tokens: %d
tokens saved:      %d (%.2f%%)
`, result.Notation(), comparison.OriginalTokens, comparison.SimplifiedTokens, comparison.TokensSaved, comparison.ReductionPercent)

	return runner.writeOutput(args.Output, report, "token report")
}

// runDiff prints line diff between two renderings of one schema.
func (runner *cliRunner) runDiff(left, right string, metadata bool, colorMode, input string) error {
	config, logger, err := runner.settings()
	if err != nil {
		return err
	}

	schemaBytes, err := runner.readInput(input, "schema")
	if err != nil {
		return err
	}

	leftOptions := simplifyOptions(notationFlags{Notation: left}, config, logger)
	leftOptions.OmitMetadata = false
	rightOptions := leftOptions
	if metadata {
		rightOptions.OmitMetadata = true
	} else {
		rightOptions.Notation = schemalite.Notation(right)
	}

	leftResult, err := schemalite.Simplify(schemaBytes, leftOptions)
	if err != nil {
		return fmt.Errorf("simplify left: %w", err)
	}

	rightResult, err := schemalite.Simplify(schemaBytes, rightOptions)
	if err != nil {
		return fmt.Errorf("simplify right: %w", err)
	}

	if colorMode == "" {
		colorMode = config.Color
	}

	palette := newDiffPalette(colorEnabled(colorMode, runner.stdout))
	rendered := palette.render(diffLines(leftResult.String(), rightResult.String()))
	if _, err := io.WriteString(runner.stdout, rendered); err != nil {
		return fmt.Errorf("write diff to stdout: %w", err)
	}

	return nil
}

// runLoads extracts structured data and prints it as JSON.
func (runner *cliRunner) runLoads(load loadFlags, skipMarkdown bool, args ioArgs) error {
	_, logger, err := runner.settings()
	if err != nil {
		return err
	}

	text, err := runner.readInput(args.Input, "text")
	if err != nil {
		return err
	}

	value, err := schemalite.Loads(string(text), schemalite.LoadOptions{
		Logger:       logger,
		Mode:         schemalite.LoadMode(load.Mode),
		NoRepair:     load.NoRepair,
		SkipMarkdown: skipMarkdown,
	})
	if err != nil {
		return fmt.Errorf("load %s: %w", load.Mode, err)
	}

	data, err := json.MarshalIndentWithOption(value, "", "  ", json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("encode loaded value: %w", err)
	}

	return runner.writeOutput(args.Output, string(data)+"\n", "loaded value")
}

// runValidate validates data and prints messages.
func (runner *cliRunner) runValidate(load loadFlags, firstError bool, schemaPath, dataPath string) error {
	_, logger, err := runner.settings()
	if err != nil {
		return err
	}

	if strings.TrimSpace(schemaPath) == "" {
		return errors.New("schema path is required")
	}

	schemaBytes, err := runner.readInput(schemaPath, "schema")
	if err != nil {
		return err
	}

	data, err := runner.readInput(dataPath, "data")
	if err != nil {
		return err
	}

	valid, messages, err := schemalite.Validate(schemaBytes, string(data), schemalite.ValidateOptions{
		Logger:         logger,
		Mode:           schemalite.LoadMode(load.Mode),
		NoRepair:       load.NoRepair,
		FirstErrorOnly: firstError,
	})
	if err != nil {
		return fmt.Errorf("validate data: %w", err)
	}

	if valid {
		_, err := io.WriteString(runner.stdout, "valid\n")
		return err
	}

	for _, message := range messages {
		if _, err := fmt.Fprintln(runner.stdout, message); err != nil {
			return fmt.Errorf("write validation messages: %w", err)
		}
	}

	return errDataInvalid
}

// runExample generates example payload.
func (runner *cliRunner) runExample(mode, format string, args ioArgs) error {
	schemaBytes, err := runner.readInput(args.Input, "schema")
	if err != nil {
		return err
	}

	data, err := schemalite.GenerateExample(schemaBytes, schemalite.ExampleOptions{
		Mode:   schemalite.ExampleMode(mode),
		Format: schemalite.ExampleFormat(format),
	})
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	return runner.writeOutput(args.Output, string(data), "example")
}

// runPrompt renders prompt instructions around simplified schema.
func (runner *cliRunner) runPrompt(notation notationFlags, templateName, templatePath, title string, args ioArgs) error {
	config, logger, err := runner.settings()
	if err != nil {
		return err
	}

	schemaBytes, err := runner.readInput(args.Input, "schema")
	if err != nil {
		return err
	}

	result, err := schemalite.Simplify(schemaBytes, simplifyOptions(notation, config, logger))
	if err != nil {
		return fmt.Errorf("simplify schema: %w", err)
	}

	if templateName == "" {
		templateName = config.Template
	}

	promptOptions := schemalite.PromptOptions{Template: templateName, Title: title}
	if templatePath != "" {
		customTemplate, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", templatePath, err)
		}

		promptOptions.TemplateText = string(customTemplate)
	}

	prompt, err := schemalite.RenderPrompt(result, promptOptions)
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	return runner.writeOutput(args.Output, prompt, "prompt")
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	if templateName == "" {
		templateName = schemalite.PromptTemplateInstructions
	}

	tpl, err := schemalite.BuiltinPromptTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, tpl, "template")
}

// runModule reflects module type and writes simplified or raw schema.
func (runner *cliRunner) runModule(moduleOptions moduleSchemaOptions, notation notationFlags, raw bool, outputPath string) error {
	config, logger, err := runner.settings()
	if err != nil {
		return err
	}

	schemaBytes, err := generateModuleSchema(moduleOptions)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	if raw {
		return runner.writeOutput(outputPath, string(schemaBytes), "schema")
	}

	result, err := schemalite.Simplify(schemaBytes, simplifyOptions(notation, config, logger))
	if err != nil {
		return fmt.Errorf("simplify schema: %w", err)
	}

	return runner.writeOutput(outputPath, ensureTrailingNewline(result.String()), "simplified schema")
}

// readInput reads file path or stdin.
func (runner *cliRunner) readInput(path, what string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s file %q: %w", what, path, err)
		}

		return data, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, fmt.Errorf("read %s from stdin: %w", what, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("read %s from stdin: empty input", what)
	}

	return data, nil
}

// writeOutput writes text to file path or stdout.
func (runner *cliRunner) writeOutput(path, text, what string) error {
	if strings.TrimSpace(path) == "" {
		if _, err := io.WriteString(runner.stdout, text); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, path, err)
	}

	return nil
}

// ensureTrailingNewline appends newline when text does not end with one.
func ensureTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}

	return text + "\n"
}
