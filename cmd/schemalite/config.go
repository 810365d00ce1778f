// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/woozymasta/schemalite"
)

// envPrefix selects environment variables merged over config file values.
const envPrefix = "SCHEMALITE_"

// cliConfig holds defaults applied when matching flags are not set.
type cliConfig struct {
	Notation   string `koanf:"notation"`
	Template   string `koanf:"template"`
	Color      string `koanf:"color"`
	MaxDepth   int    `koanf:"max_depth"`
	NoMetadata bool   `koanf:"no_metadata"`
}

// loadCLIConfig merges optional YAML config file and SCHEMALITE_* environment.
func loadCLIConfig(path string) (cliConfig, error) {
	k := koanf.New(".")

	if path = strings.TrimSpace(path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cliConfig{}, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	envKey := func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return cliConfig{}, fmt.Errorf("load environment config: %w", err)
	}

	var config cliConfig
	if err := k.Unmarshal("", &config); err != nil {
		return cliConfig{}, fmt.Errorf("decode config: %w", err)
	}

	return config, nil
}

// settings loads config and builds logger for one command run.
func (runner *cliRunner) settings() (cliConfig, *slog.Logger, error) {
	configPath := ""
	verbose := false
	if runner.global != nil {
		configPath = runner.global.ConfigPath
		verbose = runner.global.Verbose
	}

	config, err := loadCLIConfig(configPath)
	if err != nil {
		return cliConfig{}, nil, err
	}

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return config, logger, nil
}

// simplifyOptions merges notation flags over config defaults.
func simplifyOptions(flags notationFlags, config cliConfig, logger *slog.Logger) schemalite.Options {
	options := schemalite.Options{
		Logger:       logger,
		Notation:     schemalite.Notation(config.Notation),
		MaxDepth:     config.MaxDepth,
		OmitMetadata: config.NoMetadata || flags.NoMetadata,
	}

	if strings.TrimSpace(flags.Notation) != "" {
		options.Notation = schemalite.Notation(flags.Notation)
	}

	if flags.MaxDepth > 0 {
		options.MaxDepth = flags.MaxDepth
	}

	return options
}
