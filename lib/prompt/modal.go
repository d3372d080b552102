// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/rootwrite/rootwrite/lib/secret"
)

// Modal presents the credential prompt as an inline terminal UI: a
// bordered box with the account hint, the previous attempt's error
// text, and a masked input field. Enter submits; Esc or Ctrl+C
// dismisses.
type Modal struct {
	// TTYPath overrides the terminal device used for key input.
	// Empty means /dev/tty.
	TTYPath string

	// Output receives the rendered UI. Nil means os.Stderr.
	Output io.Writer

	// Theme styles the modal. The zero value renders unstyled.
	Theme Theme
}

// Secret implements Provider. It blocks until the user submits or
// dismisses. Context cancellation tears the UI down and is reported
// as the context's error.
func (m *Modal) Secret(ctx context.Context, request Request) (*secret.Buffer, error) {
	ttyPath := m.TTYPath
	if ttyPath == "" {
		ttyPath = "/dev/tty"
	}
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("prompt: opening terminal: %w", err)
	}
	defer tty.Close()

	output := m.Output
	if output == nil {
		output = os.Stderr
	}

	program := tea.NewProgram(
		newModalModel(request, m.Theme),
		tea.WithInput(tty),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt: running modal: %w", err)
	}

	model, ok := final.(modalModel)
	if !ok {
		return nil, errors.New("prompt: unexpected final model")
	}
	if model.dismissed {
		return nil, ErrDismissed
	}

	// Value() is a heap string; copy it into locked memory and zero
	// the transient byte slice. The string itself is unreachable once
	// the model is dropped, which is the best a string boundary allows.
	return secret.FromBytes([]byte(model.input.Value()))
}

// modalModel is the bubbletea model behind Modal.
type modalModel struct {
	request Request
	theme   Theme
	input   textinput.Model
	width   int

	submitted bool
	dismissed bool
}

func newModalModel(request Request, theme Theme) modalModel {
	input := textinput.New()
	input.Prompt = "> "
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Focus()

	return modalModel{
		request: request,
		theme:   theme,
		input:   input,
		width:   80,
	}
}

// Init implements tea.Model.
func (m modalModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m modalModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		return m, nil

	case tea.KeyMsg:
		switch message.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.dismissed = true
			return m, tea.Quit
		}
	}

	var command tea.Cmd
	m.input, command = m.input.Update(message)
	return m, command
}

// View implements tea.Model.
func (m modalModel) View() string {
	// Nothing to show once the user has decided; leaving the box on
	// screen after quit would clutter the scrollback above the
	// helper's own output.
	if m.submitted || m.dismissed {
		return ""
	}

	innerWidth := m.width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}

	var lines []string
	lines = append(lines, m.theme.Title.Render("Administrator access required"))

	label := "Password:"
	if m.request.AccountHint != "" {
		label = fmt.Sprintf("Password for %s:", m.request.AccountHint)
	}
	lines = append(lines, m.theme.Label.Render(label))

	if m.request.PriorError != "" {
		for _, errorLine := range strings.Split(m.request.PriorError, "\n") {
			lines = append(lines, m.theme.Error.Render(ansi.Truncate(errorLine, innerWidth, "…")))
		}
	}

	lines = append(lines, m.input.View())
	lines = append(lines, m.theme.Help.Render("enter submit · esc cancel"))

	return m.theme.Frame.Render(strings.Join(lines, "\n")) + "\n"
}
