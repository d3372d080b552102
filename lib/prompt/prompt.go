// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt is the credential prompt boundary for rootwrite.
//
// A [Provider] presents exactly one masked input request to the user
// and returns either the entered secret or [ErrDismissed]. Dismissal
// is distinct from an empty secret: an empty secret.Buffer means the
// user submitted an empty password, which only the escalation helper
// may judge.
//
// Two implementations are provided. [Terminal] does a bare masked read
// on the controlling terminal, matching the classic sudo experience.
// [Modal] renders a full terminal UI with the previous attempt's error
// text, for interactive sessions. Both read from /dev/tty rather than
// stdin, because stdin usually carries the payload being written.
package prompt

import (
	"context"
	"errors"

	"github.com/rootwrite/rootwrite/lib/secret"
)

// Request carries the context shown alongside a credential prompt.
type Request struct {
	// AccountHint names the account whose credential is requested,
	// usually the invoking user.
	AccountHint string

	// PriorError is the diagnostic text the helper produced since the
	// previous prompt (empty on the first attempt). Showing it is what
	// makes a rejected password visible to the user before the retry.
	PriorError string
}

// ErrDismissed is returned when the user closes the prompt without
// submitting a secret.
var ErrDismissed = errors.New("prompt: dismissed")

// Provider presents a masked input request. Implementations block
// until the user responds; the caller suspends its protocol timeout
// for the duration. At most one prompt is outstanding at a time.
//
// The returned buffer is owned by the caller, which closes it once the
// secret has been relayed to the helper.
type Provider interface {
	Secret(ctx context.Context, request Request) (*secret.Buffer, error)
}

// Func adapts a function to the Provider interface. Tests use it to
// script prompt responses.
type Func func(ctx context.Context, request Request) (*secret.Buffer, error)

// Secret implements Provider.
func (f Func) Secret(ctx context.Context, request Request) (*secret.Buffer, error) {
	return f(ctx, request)
}
