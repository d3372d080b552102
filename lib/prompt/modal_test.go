// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(t *testing.T, model modalModel, text string) modalModel {
	t.Helper()
	for _, character := range text {
		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
		model = updated.(modalModel)
	}
	return model
}

func TestModal_SubmitCapturesValue(t *testing.T) {
	model := newModalModel(Request{AccountHint: "ben"}, DefaultTheme())
	model = typeRunes(t, model, "hunter2")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(modalModel)

	if !model.submitted {
		t.Fatal("expected submitted after Enter")
	}
	if model.dismissed {
		t.Fatal("submitted prompt must not also be dismissed")
	}
	if got := model.input.Value(); got != "hunter2" {
		t.Errorf("expected value %q, got %q", "hunter2", got)
	}
}

func TestModal_EscapeDismisses(t *testing.T) {
	model := newModalModel(Request{}, DefaultTheme())
	model = typeRunes(t, model, "partial")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(modalModel)

	if !model.dismissed {
		t.Fatal("expected dismissed after Esc")
	}
}

func TestModal_CtrlCDismisses(t *testing.T) {
	model := newModalModel(Request{}, DefaultTheme())

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	model = updated.(modalModel)

	if !model.dismissed {
		t.Fatal("expected dismissed after Ctrl+C")
	}
}

func TestModal_EmptySubmitIsNotDismissal(t *testing.T) {
	model := newModalModel(Request{}, DefaultTheme())

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(modalModel)

	if !model.submitted {
		t.Fatal("expected empty Enter to submit")
	}
	if model.input.Value() != "" {
		t.Errorf("expected empty value, got %q", model.input.Value())
	}
}

func TestModal_ViewMasksInput(t *testing.T) {
	model := newModalModel(Request{AccountHint: "ben"}, DefaultTheme())
	model = typeRunes(t, model, "hunter2")

	view := model.View()
	if strings.Contains(view, "hunter2") {
		t.Fatal("view leaked the password")
	}
	if !strings.Contains(view, "ben") {
		t.Error("view missing the account hint")
	}
}

func TestModal_ViewShowsPriorError(t *testing.T) {
	model := newModalModel(Request{PriorError: "Sorry, try again."}, DefaultTheme())

	if view := model.View(); !strings.Contains(view, "Sorry, try again.") {
		t.Error("view missing the prior error text")
	}
}

func TestModal_ViewEmptyAfterDecision(t *testing.T) {
	model := newModalModel(Request{}, DefaultTheme())
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(modalModel)

	if model.View() != "" {
		t.Error("expected empty view after submit")
	}
}
