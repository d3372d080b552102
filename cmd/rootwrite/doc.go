// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

// Command rootwrite writes files to privileged locations through sudo.
//
// The write subcommand reads a payload from stdin (or --input), spawns
// sudo with a shell relay, answers sudo's password prompt through an
// interactive terminal UI, and hands the payload over once escalation
// succeeds. The target path never passes through the shell command
// line; it travels in the helper's environment.
//
// Set ROOTWRITE_DEBUG for debug-level logging and ROOTWRITE_CONFIG to
// point at a YAML configuration file.
package main
