// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/rootwrite/rootwrite/lib/secret"
)

// Terminal prompts for a password on the controlling terminal with
// echo disabled. It does not render a UI beyond the label line and,
// when present, the previous attempt's error text.
//
// The context is accepted for interface conformance only: a raw
// terminal read cannot be interrupted portably. The escalation
// timeout is suspended while the prompt is open, so an unbounded wait
// here is by contract.
type Terminal struct {
	// TTYPath overrides the terminal device. Empty means /dev/tty.
	TTYPath string

	// Output receives the prompt text. Nil means os.Stderr.
	Output io.Writer

	// Theme styles the output. The zero value renders unstyled text,
	// so a plain Terminal{} remains usable.
	Theme Theme
}

// Secret implements Provider.
func (t *Terminal) Secret(_ context.Context, request Request) (*secret.Buffer, error) {
	ttyPath := t.TTYPath
	if ttyPath == "" {
		ttyPath = "/dev/tty"
	}

	// Stdin carries the payload, so the credential must come from the
	// controlling terminal.
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("prompt: opening terminal: %w", err)
	}
	defer tty.Close()

	output := t.Output
	if output == nil {
		output = os.Stderr
	}

	if request.PriorError != "" {
		fmt.Fprintln(output, t.Theme.Error.Render(request.PriorError))
	}

	label := "Password:"
	if request.AccountHint != "" {
		label = fmt.Sprintf("Password for %s:", request.AccountHint)
	}
	fmt.Fprint(output, t.Theme.Label.Render(label)+" ")

	passwordBytes, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(output)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrDismissed
		}
		return nil, fmt.Errorf("prompt: reading password: %w", err)
	}

	// FromBytes zeros passwordBytes after copying.
	return secret.FromBytes(passwordBytes)
}
