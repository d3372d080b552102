// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
	"golang.org/x/term"

	"github.com/rootwrite/rootwrite/cmd/rootwrite/cli"
	"github.com/rootwrite/rootwrite/lib/config"
	"github.com/rootwrite/rootwrite/lib/escalate"
	"github.com/rootwrite/rootwrite/lib/prompt"
)

// writeFlags holds the write subcommand's flag values. Zero values
// mean "not set": the loaded configuration supplies those.
type writeFlags struct {
	inputPath   string
	timeout     time.Duration
	configPath  string
	plainPrompt bool
	sudoPath    string
	shellPath   string
}

func writeCommand() *cli.Command {
	flags := &writeFlags{}

	return &cli.Command{
		Name:    "write",
		Summary: "Write stdin to a privileged path via sudo",
		Description: `Write a payload to a path the invoking user cannot modify.

The payload is read from stdin (or --input) before sudo is spawned,
then relayed to the target once escalation succeeds. If sudo asks for
a password, the prompt appears in the terminal; submitting retries
until sudo accepts or gives up, and Esc or Ctrl+C abandons the write
with the target untouched.`,
		Usage: "rootwrite write [flags] <target>",
		Examples: []cli.Example{
			{
				Description: "Replace the hosts file",
				Command:     "rootwrite write /etc/hosts < hosts.new",
			},
			{
				Description: "Give sudo two minutes before declaring it hung",
				Command:     "rootwrite write --timeout 2m /etc/resolv.conf < resolv.new",
			},
			{
				Description: "Plain prompt for dumb terminals",
				Command:     "rootwrite write --plain-prompt --input ./app.conf /etc/app/app.conf",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("write", pflag.ContinueOnError)
			flagSet.StringVar(&flags.inputPath, "input", "", "read the payload from this file instead of stdin")
			flagSet.DurationVar(&flags.timeout, "timeout", 0, "inactivity timeout for the sudo helper (default from config, 90s)")
			flagSet.StringVar(&flags.configPath, "config", "", "configuration file (default $"+config.EnvVariable+")")
			flagSet.BoolVar(&flags.plainPrompt, "plain-prompt", false, "use a bare masked password read instead of the modal UI")
			flagSet.StringVar(&flags.sudoPath, "sudo", "", "escalation helper binary (default from config, sudo)")
			flagSet.StringVar(&flags.shellPath, "shell", "", "shell used to relay the payload (default from config, /bin/sh)")
			return flagSet
		},
		Run: func(args []string) error {
			return runWrite(flags, args)
		},
	}
}

func runWrite(flags *writeFlags, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one target path, got %d arguments\n\nRun 'rootwrite write --help' for usage.", len(args))
	}
	target := args[0]
	if target == "" {
		return fmt.Errorf("target path must not be empty")
	}
	if !filepath.IsAbs(target) {
		// The path is resolved inside the helper, under sudo's working
		// directory rules. Requiring an absolute path removes the
		// ambiguity instead of guessing.
		return fmt.Errorf("target path must be absolute, got %q", target)
	}

	configuration, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.timeout > 0 {
		configuration.Timeout = config.Duration(flags.timeout)
	}
	if flags.sudoPath != "" {
		configuration.SudoPath = flags.sudoPath
	}
	if flags.shellPath != "" {
		configuration.ShellPath = flags.shellPath
	}
	if flags.plainPrompt {
		configuration.Prompt = "plain"
	}

	payload, err := readPayload(flags.inputPath)
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger().With("command", "write", "target", target)

	var provider prompt.Provider
	switch configuration.Prompt {
	case "plain":
		provider = &prompt.Terminal{}
	default:
		provider = &prompt.Modal{Theme: prompt.DefaultTheme()}
	}

	writer, err := escalate.New(escalate.Options{
		Prompt:    provider,
		Timeout:   time.Duration(configuration.Timeout),
		SudoPath:  configuration.SudoPath,
		ShellPath: configuration.ShellPath,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := writer.Write(ctx, target, payload); err != nil {
		// A dismissed prompt or an interrupt is the user saying no.
		// The run is over; there is nothing to report.
		if errors.Is(err, escalate.ErrCancelled) || errors.Is(err, context.Canceled) {
			return &cli.ExitError{Code: 1}
		}
		return err
	}

	digest := blake3.Sum256(payload)
	fmt.Fprintf(os.Stderr, "rootwrite: wrote %d bytes to %s (blake3 %x)\n", len(payload), target, digest[:8])
	return nil
}

// readPayload reads the full payload before any process is spawned.
// An empty payload is valid: writing zero bytes truncates the target.
func readPayload(inputPath string) ([]byte, error) {
	if inputPath != "" {
		payload, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("reading payload: %w", err)
		}
		return payload, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is a terminal; pipe the payload in or pass --input")
	}

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading payload from stdin: %w", err)
	}
	return payload, nil
}
