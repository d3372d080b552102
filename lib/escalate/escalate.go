// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package escalate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"os/user"
	"time"

	"github.com/zeebo/blake3"

	"github.com/rootwrite/rootwrite/lib/clock"
	"github.com/rootwrite/rootwrite/lib/prompt"
)

// DefaultTimeout bounds how long the helper may go without protocol
// progress while the user is not being prompted.
const DefaultTimeout = 90 * time.Second

// Options configures a Writer.
type Options struct {
	// Prompt supplies the credential when the helper asks. Required.
	Prompt prompt.Provider

	// Timeout overrides DefaultTimeout.
	Timeout time.Duration

	// SudoPath is the escalation helper binary. Default "sudo".
	SudoPath string

	// ShellPath runs the payload relay under elevated privileges.
	// Default "/bin/sh".
	ShellPath string

	// AccountHint names the account in the prompt. Default: the
	// invoking user.
	AccountHint string

	// Clock schedules the timeout. Default: the real clock.
	Clock clock.Clock

	// Logger for operation progress. Secrets and payload content are
	// never logged. Nil means slog.Default().
	Logger *slog.Logger
}

// Writer performs privileged file writes. A Writer is reusable; each
// Write owns one helper process for its full duration. Concurrent
// Writes on one Writer are not coordinated — callers serialize.
type Writer struct {
	prompt      prompt.Provider
	timeout     time.Duration
	accountHint string
	clock       clock.Clock
	logger      *slog.Logger

	// newCommand builds the helper invocation for a target path.
	// Tests substitute a fake helper here.
	newCommand func(target string) *exec.Cmd
}

// New creates a Writer.
func New(options Options) (*Writer, error) {
	if options.Prompt == nil {
		return nil, fmt.Errorf("escalate: prompt provider is required")
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	sudoPath := options.SudoPath
	if sudoPath == "" {
		sudoPath = "sudo"
	}
	shellPath := options.ShellPath
	if shellPath == "" {
		shellPath = "/bin/sh"
	}

	accountHint := options.AccountHint
	if accountHint == "" {
		if current, err := user.Current(); err == nil {
			accountHint = current.Username
		}
	}

	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Writer{
		prompt:      options.Prompt,
		timeout:     timeout,
		accountHint: accountHint,
		clock:       clk,
		logger:      logger,
		newCommand: func(target string) *exec.Cmd {
			return helperCommand(sudoPath, shellPath, target)
		},
	}, nil
}

// Write writes payload to target with elevated privileges. It blocks
// until the operation resolves: nil on success, ErrCancelled when the
// user dismisses the prompt, *TimeoutError when the helper stalls, or
// *HelperExitError when the helper exits nonzero. On every return the
// helper process has been reaped.
//
// Context cancellation kills the helper and returns ctx.Err().
func (w *Writer) Write(ctx context.Context, target string, payload []byte) error {
	if target == "" {
		return fmt.Errorf("escalate: target path is required")
	}

	command := w.newCommand(target)

	stdin, err := command.StdinPipe()
	if err != nil {
		return fmt.Errorf("escalate: creating stdin pipe: %w", err)
	}
	stderr, err := command.StderrPipe()
	if err != nil {
		stdin.Close()
		return fmt.Errorf("escalate: creating stderr pipe: %w", err)
	}
	// Stdout is part of the helper contract but unused; leaving it nil
	// discards it.

	if err := command.Start(); err != nil {
		stdin.Close()
		return fmt.Errorf("escalate: starting helper: %w", err)
	}

	digest := blake3.Sum256(payload)
	w.logger.Debug("helper started",
		"target", target,
		"pid", command.Process.Pid,
		"payload_bytes", len(payload),
		"payload_digest", fmt.Sprintf("%x", digest[:8]))

	// One goroutine turns the diagnostic stream and the process exit
	// into a single ordered event source: all stderr lines are
	// delivered before the exit event, and the exit event is delivered
	// before the channel closes. The loop below is the only consumer,
	// so events are processed strictly in arrival order.
	events := make(chan Event)
	go readEvents(command, stderr, events)

	return w.run(ctx, command, stdin, events, target, payload)
}

// readEvents scans stderr to EOF, reaps the process, and closes the
// event channel.
func readEvents(command *exec.Cmd, stderr io.Reader, events chan<- Event) {
	scanner := bufio.NewScanner(stderr)
	// sudo diagnostics are short, but a helper is untrusted input.
	scanner.Buffer(make([]byte, 0, 4*1024), 256*1024)
	for scanner.Scan() {
		events <- Event{Kind: EventLine, Line: scanner.Text()}
	}
	// A scanner error here is almost always the pipe dying with the
	// process; the exit event carries the interesting part.

	waitErr := command.Wait()
	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			// Wait itself failed; surface its text as diagnostic.
			events <- Event{Kind: EventLine, Line: waitErr.Error()}
			code = -1
		}
	}
	events <- Event{Kind: EventExit, ExitCode: code}
	close(events)
}

// run is the single-threaded event loop around the protocol machine.
func (w *Writer) run(ctx context.Context, command *exec.Cmd, stdin io.WriteCloser, events <-chan Event, target string, payload []byte) error {
	machine := NewMachine()
	guard := newTimeoutGuard(w.clock, w.timeout)
	guard.Arm()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				// The channel closes only after the exit event, which
				// always resolves the loop. Defensive.
				guard.Disarm()
				stdin.Close()
				return fmt.Errorf("escalate: event stream ended without exit")
			}

			step := machine.Step(event)
			switch step.Action {
			case ActionPrompt:
				// A human may take arbitrarily long; the deadline
				// must not run while the prompt is open.
				guard.Disarm()
				if err := w.promptAndSubmit(ctx, machine, stdin, step.ErrorContext); err != nil {
					w.abort(command, events)
					stdin.Close()
					return err
				}
				guard.Arm()

			case ActionSendPayload:
				w.logger.Debug("authenticated, delivering payload", "target", target)
				// Deliver on a separate goroutine: a helper that stops
				// reading must not wedge the event loop. If the
				// Authenticated timeout kills the process, the write
				// unblocks with EPIPE, and the exit event settles the
				// outcome either way.
				go func() {
					_, _ = stdin.Write(payload)
					stdin.Close()
				}()
				guard.Arm()

			case ActionResolve:
				guard.Disarm()
				w.logger.Debug("privileged write complete", "target", target)
				return nil

			case ActionFail:
				guard.Disarm()
				stdin.Close()
				return &HelperExitError{Code: step.ExitCode, Diagnostic: step.Diagnostic}

			case ActionNone:
				// Diagnostic text accumulated; keep consuming.
			}

		case <-guard.C():
			step := machine.Step(Event{Kind: EventTimeout})
			guard.Disarm()
			w.abort(command, events)
			stdin.Close()
			w.logger.Debug("helper timed out", "target", target, "timeout", w.timeout)
			return &TimeoutError{Duration: w.timeout, Diagnostic: step.Diagnostic}

		case <-ctx.Done():
			guard.Disarm()
			w.abort(command, events)
			stdin.Close()
			return ctx.Err()
		}
	}
}

// promptAndSubmit opens the credential prompt and, on submission,
// relays the credential line to the helper. Returns ErrCancelled on
// dismissal.
func (w *Writer) promptAndSubmit(ctx context.Context, machine *Machine, stdin io.Writer, errorContext string) error {
	buffer, err := w.prompt.Secret(ctx, prompt.Request{
		AccountHint: w.accountHint,
		PriorError:  errorContext,
	})
	if err != nil {
		machine.Step(Event{Kind: EventPromptDismissed})
		if errors.Is(err, prompt.ErrDismissed) {
			return ErrCancelled
		}
		return fmt.Errorf("escalate: credential prompt: %w", err)
	}
	defer buffer.Close()

	step := machine.Step(Event{Kind: EventSecretSubmitted})
	if step.Action != ActionSubmitSecret {
		return fmt.Errorf("escalate: unexpected state %v after prompt", machine.State())
	}

	if err := buffer.WriteLineTo(stdin); err != nil {
		// The helper likely died mid-prompt; its exit event carries
		// the real story. Log and keep going.
		w.logger.Debug("relaying credential failed", "error", err)
	}
	return nil
}

// abort force-kills the helper and drains the event stream to its
// close, which guarantees the process has been reaped before the
// operation's outcome is reported.
func (w *Writer) abort(command *exec.Cmd, events <-chan Event) {
	if command.Process != nil {
		_ = command.Process.Kill()
	}
	for range events {
	}
}
