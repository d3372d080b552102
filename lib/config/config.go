// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for rootwrite.
//
// Configuration is loaded from a single file specified by:
//   - the ROOTWRITE_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There are no search paths or automatic discovery. If no file is
// specified, built-in defaults apply. This keeps the tool's behavior
// deterministic and auditable: the one surface that decides how a
// privileged helper is invoked has no hidden overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVariable names the environment variable consulted when no
// --config flag is given.
const EnvVariable = "ROOTWRITE_CONFIG"

// Config holds the tunable parameters of a privileged write.
type Config struct {
	// Timeout bounds how long the helper may go without protocol
	// progress while the user is not being prompted.
	Timeout Duration `yaml:"timeout"`

	// SudoPath is the escalation helper binary.
	SudoPath string `yaml:"sudo_path"`

	// ShellPath is the shell that relays the payload to the target
	// path under elevated privileges.
	ShellPath string `yaml:"shell_path"`

	// Prompt selects the credential prompt style: "modal" (full
	// terminal UI) or "plain" (bare masked read).
	Prompt string `yaml:"prompt"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout:   Duration(90 * time.Second),
		SudoPath:  "sudo",
		ShellPath: "/bin/sh",
		Prompt:    "modal",
	}
}

// Load reads the configuration file at path. An empty path falls back
// to ROOTWRITE_CONFIG; if that is also unset, defaults are returned.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvVariable)
	}

	configuration := Default()
	if path == "" {
		return configuration, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &configuration); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := configuration.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return configuration, nil
}

// validate rejects configurations the orchestrator cannot honor.
func (c Config) validate() error {
	if time.Duration(c.Timeout) <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", time.Duration(c.Timeout))
	}
	if c.SudoPath == "" {
		return fmt.Errorf("sudo_path must not be empty")
	}
	if c.ShellPath == "" {
		return fmt.Errorf("shell_path must not be empty")
	}
	switch c.Prompt {
	case "modal", "plain":
	default:
		return fmt.Errorf("prompt must be %q or %q, got %q", "modal", "plain", c.Prompt)
	}
	return nil
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "90s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
