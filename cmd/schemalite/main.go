// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

// schemalite converts JSON Schema into compact notations for LLM prompts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schemalite"
	_buildTime string
)

// cliOptions describes schemalite CLI flags and subcommands.
type cliOptions struct {
	Global globalFlags `group:"Global"`

	Version  versionCommand  `command:"version" description:"Print version information"`
	Simplify simplifyCommand `command:"simplify" description:"Convert JSON Schema to compact notation"`
	Tokens   tokensCommand   `command:"tokens" description:"Report token savings of simplified schema"`
	Diff     diffCommand     `command:"diff" description:"Show line diff between two renderings of one schema"`
	Loads    loadsCommand    `command:"loads" description:"Extract JSON or YAML from free-form text"`
	Validate validateCommand `command:"validate" description:"Validate data against JSON Schema"`
	Example  exampleCommand  `command:"example" description:"Generate example payload from JSON Schema"`
	Prompt   promptCommand   `command:"prompt" description:"Render LLM output instructions for JSON Schema"`
	Template templateCommand `command:"template" description:"Print built-in prompt template"`
	Module   moduleCommand   `command:"mod2lite" description:"Reflect Go module type and simplify its schema"`
}

// globalFlags groups options shared by every subcommand.
type globalFlags struct {
	ConfigPath string `short:"c" long:"config" description:"YAML config file with notation, max_depth, no_metadata, template and color defaults"`
	Verbose    bool   `short:"v" long:"verbose" description:"Write debug records to stderr"`
}

// notationFlags groups simplification flags.
type notationFlags struct {
	Notation   string `short:"n" long:"notation" description:"Output notation (jsonish, typescript, yaml and aliases)"`
	NoMetadata bool   `long:"no-metadata" description:"Drop inline descriptions and constraints"`
	MaxDepth   int    `long:"max-depth" description:"Per-definition recursion ceiling for cyclic references"`
}

// loadFlags groups structured text loading flags.
type loadFlags struct {
	Mode     string `short:"m" long:"mode" description:"Input syntax" choice:"json" choice:"yaml" choice:"yml" default:"json"`
	NoRepair bool   `long:"no-repair" description:"Disable repair of malformed content"`
}

// ioArgs is the common input/output positional pair.
type ioArgs struct {
	Input  string `positional-arg-name:"input" description:"Input file path (optional; stdin when omitted)"`
	Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
}

// simplifyCommand converts schema to selected notation.
type simplifyCommand struct {
	runner *cliRunner

	Args          ioArgs        `positional-args:"yes"`
	NotationFlags notationFlags `group:"Notation"`
	Format        string        `short:"F" long:"format" description:"Output view" choice:"text" choice:"json" choice:"yaml" choice:"dict" default:"text"`
}

// Execute runs simplify subcommand.
func (command *simplifyCommand) Execute(_ []string) error {
	return command.runner.runSimplify(command.NotationFlags, command.Format, command.Args)
}

// tokensCommand reports token counts.
type tokensCommand struct {
	runner *cliRunner

	Args          ioArgs         `positional-args:"yes"`
	NotationFlags notationFlags  `group:"Notation"`
	Tokenizer     tokenizerFlags `group:"Tokenizer"`
	JSON          bool           `long:"json" description:"Print report as JSON"`
}

// tokenizerFlags selects token counting backend.
type tokenizerFlags struct {
	Kind          string  `long:"tokenizer" description:"Token counter" choice:"tiktoken" choice:"heuristic" default:"tiktoken"`
	Encoding      string  `long:"encoding" description:"tiktoken encoding name" default:"cl100k_base"`
	CharsPerToken float64 `long:"chars-per-token" description:"Characters per token for heuristic tokenizer" default:"4"`
}

// Execute runs tokens subcommand.
func (command *tokensCommand) Execute(_ []string) error {
	return command.runner.runTokens(command.NotationFlags, command.Tokenizer, command.JSON, command.Args)
}

// diffCommand compares two renderings.
type diffCommand struct {
	runner *cliRunner

	Args struct {
		Input string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
	} `positional-args:"yes"`

	Left     string `short:"l" long:"left" description:"Left notation" default:"jsonish"`
	Right    string `short:"r" long:"right" description:"Right notation" default:"typescript"`
	Metadata bool   `long:"metadata" description:"Compare left notation with and without metadata instead of two notations"`
	Color    string `long:"color" description:"Colorize diff output" choice:"auto" choice:"always" choice:"never"`
}

// Execute runs diff subcommand.
func (command *diffCommand) Execute(_ []string) error {
	return command.runner.runDiff(command.Left, command.Right, command.Metadata, command.Color, command.Args.Input)
}

// loadsCommand extracts structured data.
type loadsCommand struct {
	runner *cliRunner

	Args         ioArgs    `positional-args:"yes"`
	LoadFlags    loadFlags `group:"Load"`
	SkipMarkdown bool      `long:"skip-markdown" description:"Do not extract content from markdown code fences"`
}

// Execute runs loads subcommand.
func (command *loadsCommand) Execute(_ []string) error {
	return command.runner.runLoads(command.LoadFlags, command.SkipMarkdown, command.Args)
}

// validateCommand validates data.
type validateCommand struct {
	runner *cliRunner

	Args struct {
		Schema string `positional-arg-name:"schema" description:"JSON Schema file path" required:"yes"`
		Data   string `positional-arg-name:"data" description:"Data file path (optional; stdin when omitted)"`
	} `positional-args:"yes"`

	LoadFlags  loadFlags `group:"Load"`
	FirstError bool      `long:"first-error" description:"Report only first validation error"`
}

// Execute runs validate subcommand.
func (command *validateCommand) Execute(_ []string) error {
	return command.runner.runValidate(command.LoadFlags, command.FirstError, command.Args.Schema, command.Args.Data)
}

// exampleCommand generates example payload.
type exampleCommand struct {
	runner *cliRunner

	Args   ioArgs `positional-args:"yes"`
	Mode   string `short:"m" long:"mode" description:"Property coverage" choice:"all" choice:"required" default:"all"`
	Format string `short:"F" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(command.Mode, command.Format, command.Args)
}

// promptCommand renders prompt instructions.
type promptCommand struct {
	runner *cliRunner

	Args          ioArgs              `positional-args:"yes"`
	NotationFlags notationFlags       `group:"Notation"`
	TemplateFlags templateSelectFlags `group:"Template Select"`
	TemplatePath  string              `short:"f" long:"template-file" description:"Path to custom prompt template (.gotmpl)"`
	Title         string              `short:"T" long:"title" description:"Name of requested output"`
}

// Execute runs prompt subcommand.
func (command *promptCommand) Execute(_ []string) error {
	return command.runner.runPrompt(command.NotationFlags, command.TemplateFlags.TemplateName, command.TemplatePath, command.Title, command.Args)
}

// templateSelectFlags groups built-in template selection flags.
type templateSelectFlags struct {
	TemplateName string `short:"t" long:"template" description:"Built-in template style" choice:"instructions" choice:"fenced"`
}

// templateCommand exports built-in prompt template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateFlags.TemplateName, command.Args.Output)
}

// moduleCommand reflects module type and simplifies resulting schema.
type moduleCommand struct {
	runner *cliRunner
	Args   struct {
		Module string `positional-arg-name:"module" description:"Go module import path (for example: github.com/acme/project)" required:"yes"`
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	ModuleFlags   moduleReflectFlags `group:"Module Reflection"`
	NotationFlags notationFlags      `group:"Notation"`
	Raw           bool               `long:"raw" description:"Print reflected JSON Schema instead of simplified text"`
}

// Execute runs mod2lite subcommand.
func (command *moduleCommand) Execute(_ []string) error {
	return command.runner.runModule(moduleSchemaOptions{
		ModulePath:     command.Args.Module,
		TypeName:       command.ModuleFlags.TypeName,
		PackagePath:    command.ModuleFlags.PackagePath,
		ModuleRootPath: command.ModuleFlags.ModuleRootPath,
	}, command.NotationFlags, command.Raw, command.Args.Output)
}

// moduleReflectFlags groups common module reflection flags.
type moduleReflectFlags struct {
	ModuleRootPath string `short:"r" long:"module-root" description:"Filesystem path to module root (where go.mod is); used as working dir" default:"."`
	PackagePath    string `short:"p" long:"package" description:"Go package import path where the type is declared (optional; defaults to module argument)"`
	TypeName       string `short:"y" long:"type" description:"Go type name to reflect into schema (for example: Config)" required:"yes"`
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout, command.runner.programName)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	global      *globalFlags
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schemalite"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	if !errors.Is(err, errDataInvalid) {
		writeCLIError(runner.stderr, err)
	}

	return 1
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	runner.global = &options.Global
	options.Version.runner = runner
	options.Simplify.runner = runner
	options.Tokens.runner = runner
	options.Diff.runner = runner
	options.Loads.runner = runner
	options.Validate.runner = runner
	options.Example.runner = runner
	options.Prompt.runner = runner
	options.Template.runner = runner
	options.Module.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"simplify": strings.TrimSpace(fmt.Sprintf(`
Convert JSON Schema to compact notation.
Reads schema from file argument or stdin; writes text to file argument or stdout.
Use --format to print the property dictionary as json, yaml or flow yaml (dict).

Examples:
> $ %s simplify schema.json
> $ cat schema.json | %s simplify -n typescript --no-metadata
`, programName, programName)),
		"tokens": strings.TrimSpace(fmt.Sprintf(`
Estimate tokens of original schema JSON and simplified text.
Counts use a characters-per-token heuristic.

Examples:
> $ %s tokens schema.json
> $ %s tokens -n yaml --json schema.json
`, programName, programName)),
		"diff": strings.TrimSpace(fmt.Sprintf(`
Show line diff between two notations of one schema,
or between one notation with and without metadata.

Examples:
> $ %s diff -l jsonish -r yaml schema.json
> $ %s diff --metadata --color always schema.json
`, programName, programName)),
		"loads": strings.TrimSpace(fmt.Sprintf(`
Extract JSON or YAML embedded in free-form text such as model output.
Markdown code fences are preferred; malformed content is repaired unless --no-repair.

Examples:
> $ %s loads answer.txt
> $ cat answer.txt | %s loads -m yaml
`, programName, programName)),
		"validate": strings.TrimSpace(fmt.Sprintf(`
Validate data against JSON Schema (draft 2020-12, format assertions on).
String data is loaded the same way as the loads command.
Exit code is 1 when data is invalid.

Examples:
> $ %s validate schema.json answer.txt
> $ cat answer.yaml | %s validate -m yaml schema.json
`, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in prompt template text (`+"`instructions` or `fenced`"+`).
Use it as a starting point for a custom template file.

Examples:
> $ %s template > prompt.gotmpl
> $ %s template -t fenced templates/fenced.gotmpl
`, programName, programName)),
		"mod2lite": strings.TrimSpace(fmt.Sprintf(`
Reflect Go type into JSON Schema and simplify it.
Use module import path as positional argument.
Use --module-root for local module directory and --package when type is not in module root package.

Examples:
> $ %s mod2lite --module-root . --type Config github.com/acme/project
> $ %s mod2lite --raw --module-root . --package github.com/acme/project/internal/config --type Config github.com/acme/project schema.json
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(output io.Writer, programName string) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, programName, Version, Commit, BuildTime)
}
