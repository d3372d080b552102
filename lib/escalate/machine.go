// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package escalate

import "strings"

// State is the protocol position of a privileged write.
type State int

const (
	// StateAwaitingSignal means the helper is running and no marker
	// has been seen since spawn or since the last credential was
	// relayed.
	StateAwaitingSignal State = iota

	// StateAwaitingPassword means the password marker was seen and the
	// user is being prompted. The timeout guard is disarmed here.
	StateAwaitingPassword

	// StateAuthenticated means the payload marker was seen and the
	// payload is being delivered on the helper's stdin.
	StateAuthenticated

	// StateCompleted means the helper exited 0.
	StateCompleted

	// StateFailed means the helper exited nonzero, the user dismissed
	// the prompt, or the timeout fired. Terminal.
	StateFailed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateAwaitingSignal:
		return "awaiting-signal"
	case StateAwaitingPassword:
		return "awaiting-password"
	case StateAuthenticated:
		return "authenticated"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventKind discriminates Machine inputs.
type EventKind int

const (
	// EventLine is one complete line from the helper's stderr.
	EventLine EventKind = iota

	// EventSecretSubmitted means the prompt returned a credential.
	EventSecretSubmitted

	// EventPromptDismissed means the user closed the prompt without
	// submitting.
	EventPromptDismissed

	// EventExit means the helper process exited.
	EventExit

	// EventTimeout means the timeout guard fired.
	EventTimeout
)

// Event is a single Machine input.
type Event struct {
	Kind EventKind

	// Line holds the stderr line for EventLine.
	Line string

	// ExitCode holds the process exit code for EventExit.
	ExitCode int
}

// Action tells the orchestrator what a transition requires of it.
type Action int

const (
	// ActionNone requires nothing; keep consuming events.
	ActionNone Action = iota

	// ActionPrompt opens the credential prompt. The timeout guard must
	// be disarmed first. Step.ErrorContext carries the diagnostic text
	// accumulated since the previous prompt.
	ActionPrompt

	// ActionSubmitSecret relays the credential line to the helper's
	// stdin and rearms the timeout guard.
	ActionSubmitSecret

	// ActionSendPayload writes the whole payload to the helper's stdin,
	// closes it, and rearms the timeout guard.
	ActionSendPayload

	// ActionResolve reports success.
	ActionResolve

	// ActionFail reports helper failure. Step carries the exit code and
	// accumulated diagnostic text.
	ActionFail

	// ActionCancel kills the helper and reports silent cancellation.
	ActionCancel

	// ActionTimeout kills the helper and reports a timeout, carrying
	// the accumulated diagnostic text.
	ActionTimeout
)

// Step is the outcome of one Machine transition.
type Step struct {
	Action Action

	// ErrorContext is set for ActionPrompt.
	ErrorContext string

	// Diagnostic is set for ActionFail and ActionTimeout.
	Diagnostic string

	// ExitCode is set for ActionFail.
	ExitCode int
}

// Machine is the protocol state machine. It consumes one Event at a
// time and never touches a process, a pipe, or a timer — the caller
// performs the returned Action. Not safe for concurrent use; rootwrite
// drives it from a single event loop.
type Machine struct {
	state      State
	diagnostic []string
}

// NewMachine returns a Machine in StateAwaitingSignal.
func NewMachine() *Machine {
	return &Machine{state: StateAwaitingSignal}
}

// State returns the current protocol state.
func (m *Machine) State() State {
	return m.state
}

// Step applies one event and returns the required action. Terminal
// states absorb every event: a write operation resolves exactly once.
func (m *Machine) Step(event Event) Step {
	if m.state == StateCompleted || m.state == StateFailed {
		return Step{Action: ActionNone}
	}

	switch event.Kind {
	case EventLine:
		return m.stepLine(event.Line)

	case EventSecretSubmitted:
		if m.state != StateAwaitingPassword {
			return Step{Action: ActionNone}
		}
		m.state = StateAwaitingSignal
		return Step{Action: ActionSubmitSecret}

	case EventPromptDismissed:
		if m.state != StateAwaitingPassword {
			return Step{Action: ActionNone}
		}
		m.state = StateFailed
		return Step{Action: ActionCancel}

	case EventExit:
		// Exit 0 is success regardless of state: it should only occur
		// after payload delivery, but the helper is the authority.
		if event.ExitCode == 0 {
			m.state = StateCompleted
			return Step{Action: ActionResolve}
		}
		m.state = StateFailed
		return Step{
			Action:     ActionFail,
			Diagnostic: m.drainDiagnostic(),
			ExitCode:   event.ExitCode,
		}

	case EventTimeout:
		m.state = StateFailed
		return Step{
			Action:     ActionTimeout,
			Diagnostic: m.drainDiagnostic(),
		}

	default:
		return Step{Action: ActionNone}
	}
}

// stepLine classifies one stderr line. Marker lines are compared for
// exact equality after trimming; anything else is diagnostic text.
func (m *Machine) stepLine(line string) Step {
	trimmed := strings.TrimSpace(line)

	switch trimmed {
	case PasswordMarker:
		if m.state != StateAwaitingSignal {
			// No nested prompts: a repeated password marker while one
			// prompt is open carries no new information.
			return Step{Action: ActionNone}
		}
		m.state = StateAwaitingPassword
		return Step{
			Action:       ActionPrompt,
			ErrorContext: m.drainDiagnostic(),
		}

	case PayloadMarker:
		if m.state != StateAwaitingSignal && m.state != StateAwaitingPassword {
			return Step{Action: ActionNone}
		}
		m.state = StateAuthenticated
		// The buffer resets on every recognized marker so the failure
		// message covers only text after authentication.
		m.diagnostic = nil
		return Step{Action: ActionSendPayload}

	default:
		if trimmed != "" {
			m.diagnostic = append(m.diagnostic, trimmed)
		}
		return Step{Action: ActionNone}
	}
}

// drainDiagnostic returns the accumulated diagnostic text and resets
// the buffer.
func (m *Machine) drainDiagnostic() string {
	text := strings.Join(m.diagnostic, "\n")
	m.diagnostic = nil
	return text
}
