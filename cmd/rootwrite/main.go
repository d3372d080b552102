// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/rootwrite/rootwrite/cmd/rootwrite/cli"
	"github.com/rootwrite/rootwrite/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that manage their own output (like write after a
		// dismissed prompt) return an ExitError with the desired exit
		// code. Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return root().Execute(os.Args[1:])
}

// root builds the rootwrite CLI command tree.
func root() *cli.Command {
	return &cli.Command{
		Name: "rootwrite",
		Description: `Rootwrite: privileged file writes through sudo.

Reads a payload on stdin and writes it to a path the invoking user
cannot touch, prompting for the sudo password in the terminal.`,
		Subcommands: []*cli.Command{
			writeCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("rootwrite %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Replace the hosts file",
				Command:     "rootwrite write /etc/hosts < hosts.new",
			},
			{
				Description: "Install a unit file from an explicit input path",
				Command:     "rootwrite write --input ./app.service /etc/systemd/system/app.service",
			},
		},
	}
}
