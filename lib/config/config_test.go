// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_NoPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvVariable, "")

	configuration, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	defaults := Default()
	if configuration != defaults {
		t.Errorf("expected defaults %+v, got %+v", defaults, configuration)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "timeout: 2m\nsudo_path: /usr/bin/sudo\nprompt: plain\n")

	configuration, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if time.Duration(configuration.Timeout) != 2*time.Minute {
		t.Errorf("expected timeout 2m, got %v", time.Duration(configuration.Timeout))
	}
	if configuration.SudoPath != "/usr/bin/sudo" {
		t.Errorf("expected sudo_path /usr/bin/sudo, got %q", configuration.SudoPath)
	}
	// Absent fields keep defaults.
	if configuration.ShellPath != "/bin/sh" {
		t.Errorf("expected default shell_path, got %q", configuration.ShellPath)
	}
	if configuration.Prompt != "plain" {
		t.Errorf("expected prompt plain, got %q", configuration.Prompt)
	}
}

func TestLoad_EnvVariable(t *testing.T) {
	path := writeConfig(t, "timeout: 45s\n")
	t.Setenv(EnvVariable, path)

	configuration, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if time.Duration(configuration.Timeout) != 45*time.Second {
		t.Errorf("expected timeout 45s, got %v", time.Duration(configuration.Timeout))
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, "timeout: ninety\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	path := writeConfig(t, "timeout: 0s\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestLoad_RejectsUnknownPromptStyle(t *testing.T) {
	path := writeConfig(t, "prompt: graphical\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown prompt style")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
