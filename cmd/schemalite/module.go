// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// helperModuleSuffix is appended to target module path for temporary helper module.
	helperModuleSuffix = "/schemalite_mod2lite_helper"
	// jsonschemaDependency pins reflector used by temporary helper program.
	jsonschemaDependency = "github.com/invopop/jsonschema@v0.13.0"
)

// moduleSchemaOptions configures module type reflection.
type moduleSchemaOptions struct {
	// ModulePath is the Go module path used by AddGoComments.
	ModulePath string
	// TypeName is the reflected root type name from target package.
	TypeName string
	// PackagePath is optional package import path and defaults to ModulePath.
	PackagePath string
	// ModuleRootPath is local module directory replacing ModulePath in helper module.
	ModuleRootPath string
}

// helperProgram is the temporary reflector source; verbs are filled by helperSource.
const helperProgram = `package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	target %q
)

func main() {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}
	if err := reflector.AddGoComments(%q, %q); err != nil {
		fmt.Fprintf(os.Stderr, "add go comments: %%v\n", err)
		os.Exit(1)
	}

	prefix := strings.TrimSuffix(%q, "/") + "/" + strings.TrimPrefix(%q, "/")
	comments := make(map[string]string, len(reflector.CommentMap))
	for key, value := range reflector.CommentMap {
		key = strings.ReplaceAll(key, "\\", "/")
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			key = strings.TrimSuffix(%q, "/") + rest
		}

		comments[key] = value
	}
	reflector.CommentMap = comments

	data, err := json.MarshalIndent(reflector.Reflect(&target.%s{}), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal schema: %%v\n", err)
		os.Exit(1)
	}

	os.Stdout.Write(append(data, '\n'))
}
`

// generateModuleSchema reflects JSON Schema for module/package/type triple
// by running a throwaway helper module against local module sources.
func generateModuleSchema(options moduleSchemaOptions) ([]byte, error) {
	options = normalizeModuleSchemaOptions(options)
	if options.ModulePath == "" || options.TypeName == "" {
		return nil, errors.New("module path and type name are required")
	}

	root, err := filepath.Abs(options.ModuleRootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve module root path %q: %w", options.ModuleRootPath, err)
	}

	options.ModuleRootPath = filepath.ToSlash(root)

	if _, err := exec.LookPath("go"); err != nil {
		return nil, errors.New("go toolchain not found in PATH; mod2lite requires installed Go")
	}

	helperDir, err := os.MkdirTemp("", "schemalite-mod2lite-")
	if err != nil {
		return nil, fmt.Errorf("create temporary helper dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(helperDir)
	}()

	if err := os.WriteFile(filepath.Join(helperDir, "main.go"), []byte(helperSource(options)), 0o600); err != nil {
		return nil, fmt.Errorf("write temporary helper: %w", err)
	}

	steps := [][]string{
		{"mod", "init", strings.TrimSuffix(options.ModulePath, "/") + helperModuleSuffix},
		{"mod", "edit", "-require=" + options.ModulePath + "@v0.0.0"},
		{"mod", "edit", "-replace=" + options.ModulePath + "=" + options.ModuleRootPath},
		{"get", jsonschemaDependency},
		{"mod", "tidy"},
	}

	for _, step := range steps {
		if _, err := goCommand(helperDir, step...); err != nil {
			return nil, err
		}
	}

	schemaBytes, err := goCommand(helperDir, "run", ".")
	if err != nil {
		return nil, fmt.Errorf("run module schema helper: %w", err)
	}

	return schemaBytes, nil
}

// normalizeModuleSchemaOptions trims options and applies defaults.
func normalizeModuleSchemaOptions(options moduleSchemaOptions) moduleSchemaOptions {
	options.ModulePath = strings.TrimSpace(options.ModulePath)
	options.TypeName = strings.TrimSpace(options.TypeName)
	options.PackagePath = strings.TrimSpace(options.PackagePath)
	if options.PackagePath == "" {
		options.PackagePath = options.ModulePath
	}

	options.ModuleRootPath = strings.TrimSpace(options.ModuleRootPath)
	if options.ModuleRootPath == "" {
		options.ModuleRootPath = "."
	}

	return options
}

// helperSource fills helper program template for options.
func helperSource(options moduleSchemaOptions) string {
	return fmt.Sprintf(helperProgram,
		options.PackagePath,
		options.ModulePath, options.ModuleRootPath,
		options.ModulePath, options.ModuleRootPath,
		options.ModulePath,
		options.TypeName,
	)
}

// goCommand runs go tool in dir and returns stdout; stderr becomes error detail.
func goCommand(dir string, args ...string) ([]byte, error) {
	command := exec.Command("go", args...)
	command.Dir = dir

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}

		return nil, fmt.Errorf("go %s: %s", strings.Join(args, " "), detail)
	}

	return stdout.Bytes(), nil
}
