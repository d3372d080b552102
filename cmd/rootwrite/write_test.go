// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPayload_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload")
	if err := os.WriteFile(path, []byte("127.0.0.1 localhost\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	payload, err := readPayload(path)
	if err != nil {
		t.Fatalf("readPayload failed: %v", err)
	}
	if string(payload) != "127.0.0.1 localhost\n" {
		t.Errorf("payload = %q", string(payload))
	}
}

func TestReadPayload_MissingFile(t *testing.T) {
	if _, err := readPayload(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestRunWrite_RequiresSingleTarget(t *testing.T) {
	if err := runWrite(&writeFlags{}, nil); err == nil {
		t.Fatal("expected error with no target")
	}
	err := runWrite(&writeFlags{}, []string{"/etc/hosts", "/etc/resolv.conf"})
	if err == nil {
		t.Fatal("expected error with two targets")
	}
	if !strings.Contains(err.Error(), "exactly one target") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunWrite_RejectsEmptyTarget(t *testing.T) {
	if err := runWrite(&writeFlags{}, []string{""}); err == nil {
		t.Fatal("expected error for empty target")
	}
}

func TestRunWrite_RejectsRelativeTarget(t *testing.T) {
	err := runWrite(&writeFlags{}, []string{"etc/hosts"})
	if err == nil {
		t.Fatal("expected error for relative target")
	}
	if !strings.Contains(err.Error(), "absolute") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunWrite_RejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: \"-5s\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runWrite(&writeFlags{configPath: path}, []string{"/etc/hosts"})
	if err == nil {
		t.Fatal("expected error for negative timeout")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRoot_CommandTree(t *testing.T) {
	tree := root()

	names := make(map[string]bool)
	for _, sub := range tree.Subcommands {
		names[sub.Name] = true
	}
	for _, want := range []string{"write", "version"} {
		if !names[want] {
			t.Errorf("command tree missing %q", want)
		}
	}
}

func TestWriteCommand_FlagDefaults(t *testing.T) {
	command := writeCommand()
	flagSet := command.Flags()

	for _, name := range []string{"input", "timeout", "config", "plain-prompt", "sudo", "shell"} {
		if flagSet.Lookup(name) == nil {
			t.Errorf("write command missing --%s", name)
		}
	}
}
