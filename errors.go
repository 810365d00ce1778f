// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"errors"
	"fmt"
)

// ErrSchemaLite is the base of every error kind returned by this package.
var ErrSchemaLite = errors.New("schemalite")

var (
	// ErrUnsupportedModel is returned when facade input type can not be turned into a schema.
	ErrUnsupportedModel = fmt.Errorf("%w: unsupported model type", ErrSchemaLite)
	// ErrConversion is returned when schema or structured text conversion fails.
	ErrConversion = fmt.Errorf("%w: conversion failed", ErrSchemaLite)
	// ErrValidation is returned when the validator can not run or the schema is invalid.
	ErrValidation = fmt.Errorf("%w: validation error", ErrSchemaLite)
	// ErrTokenizerUnavailable is returned by token views when no tokenizer was configured.
	ErrTokenizerUnavailable = fmt.Errorf("%w: tokenizer unavailable", ErrSchemaLite)
	// ErrUnknownNotation is returned when requested notation is not registered.
	ErrUnknownNotation = fmt.Errorf("%w: unknown notation", ErrSchemaLite)
	// ErrUnknownLoadMode is returned when structured text mode is not json or yaml.
	ErrUnknownLoadMode = fmt.Errorf("%w: unknown load mode", ErrSchemaLite)
)

var (
	// ErrDecodeSchema is returned when schema JSON decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not a JSON object.
	ErrSchemaRootType = errors.New("schema root must be object")
	// ErrUnknownExampleMode is returned when example generation mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example generation format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when generated example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when generated example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
	// ErrUnknownPromptTemplate is returned when requested built-in prompt template is not registered.
	ErrUnknownPromptTemplate = errors.New("unknown prompt template")
	// ErrExecutePromptTemplate is returned when prompt template parsing or execution fails.
	ErrExecutePromptTemplate = errors.New("execute prompt template")
)
