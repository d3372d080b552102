// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "rootwrite",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "write",
				Run: func(args []string) error {
					called = "write"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"write"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "write" {
		t.Errorf("dispatched to %q, want %q", called, "write")
	}
}

func TestCommand_Execute_PassesRemainingArgs(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "rootwrite",
		Subcommands: []*Command{
			{
				Name: "write",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"write", "/etc/hosts"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "/etc/hosts" {
		t.Errorf("args = %v, want [/etc/hosts]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var inputPath string
	var positional []string

	root := &Command{
		Name: "rootwrite",
		Subcommands: []*Command{
			{
				Name: "write",
				Flags: func() *pflag.FlagSet {
					flags := pflag.NewFlagSet("write", pflag.ContinueOnError)
					flags.StringVar(&inputPath, "input", "", "read payload from file")
					return flags
				},
				Run: func(args []string) error {
					positional = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"write", "--input", "/tmp/payload", "/etc/hosts"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if inputPath != "/tmp/payload" {
		t.Errorf("input flag = %q, want %q", inputPath, "/tmp/payload")
	}
	if len(positional) != 1 || positional[0] != "/etc/hosts" {
		t.Errorf("positional args = %v, want [/etc/hosts]", positional)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "rootwrite",
		Subcommands: []*Command{
			{Name: "write", Run: func([]string) error { return nil }},
			{Name: "version", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"wrte"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "write"`) {
		t.Errorf("error should suggest 'write', got: %v", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	root := &Command{
		Name: "rootwrite",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("rootwrite", pflag.ContinueOnError)
			flags.Duration("timeout", 0, "inactivity timeout")
			return flags
		},
		Run: func([]string) error { return nil },
	}

	err := root.Execute([]string{"--timout", "5s"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--timeout") {
		t.Errorf("error should suggest --timeout, got: %v", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "rootwrite",
		Subcommands: []*Command{
			{Name: "write", Run: func([]string) error { return nil }},
		},
	}

	if err := root.Execute(nil); err == nil {
		t.Fatal("expected error when no subcommand given")
	}
}

func TestCommand_PrintHelp_ListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:    "rootwrite",
		Summary: "Write files with elevated privileges",
		Subcommands: []*Command{
			{Name: "write", Summary: "Write stdin to a privileged path"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{Description: "Replace the hosts file", Command: "rootwrite write /etc/hosts < hosts.new"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{"write", "version", "Commands:", "rootwrite write /etc/hosts < hosts.new"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", err.ExitCode())
	}
	if err.Error() != "exit code 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}
