// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

// Package escalate performs a privileged file write by driving sudo
// through its line-oriented challenge/response protocol.
//
// The helper is launched so that every protocol signal arrives as a
// complete line on its stderr: a fixed password marker each time a
// credential is wanted, and a fixed payload marker once authentication
// has succeeded and the helper is about to read the file contents from
// its stdin. Everything else on stderr is diagnostic text, accumulated
// so it can be shown to the user — either as the error context of the
// next password prompt or as the failure message when the helper exits
// nonzero.
//
// The protocol itself lives in [Machine], a pure state machine fed one
// event at a time, so every transition is unit-testable without a
// process. [Writer] owns the runtime around it: the child process and
// its pipes, the single-goroutine event loop, the credential prompt,
// and a one-shot timeout guard that is disarmed whenever the user is
// being prompted (a human may take arbitrarily long) and rearmed the
// moment the credential is relayed.
//
// On every return path the helper process has been reaped — killed
// first if it had not already exited. The password travels only from
// the prompt's locked buffer to the helper's stdin; it is never
// logged, never retained, and never placed on the Go heap.
package escalate
