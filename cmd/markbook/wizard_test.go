// Tests for the grade-entry wizard state machine. The bubbletea model is
// driven directly through handleSubmit, the same path Update takes on an
// enter keypress.
package main

import (
	"strings"
	"testing"

	"markbook/internal/gradebook"

	tea "github.com/charmbracelet/bubbletea"
)

// submit pushes one line of input through the wizard.
func submit(t *testing.T, m Wizard, value string) Wizard {
	t.Helper()
	model, _ := m.handleSubmit(value)
	next, ok := model.(Wizard)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return next
}

// enterRecord walks a full valid record through the wizard.
func enterRecord(t *testing.T, m Wizard, name, category, grade, weight string) Wizard {
	t.Helper()
	m = submit(t, m, name)
	m = submit(t, m, category)
	m = submit(t, m, grade)
	return submit(t, m, weight)
}

func TestWizard_HappyPath(t *testing.T) {
	m := NewWizard()
	m = enterRecord(t, m, "Essay 1", "fa", "85.5", "10")

	if m.step != stepContinue {
		t.Fatalf("expected continue step, got %v", m.step)
	}
	if m.session.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", m.session.Len())
	}
	got := m.session.Export()[0]
	want := gradebook.Assignment{Name: "Essay 1", Category: gradebook.Formative, Grade: 85.5, Weight: 10}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestWizard_RepromptsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		advance []string // valid inputs to reach the step under test
		bad     string
		errPart string
	}{
		{"empty name", nil, "", "cannot be empty"},
		{"bad category", []string{"Essay"}, "XX", "'FA' or 'SA'"},
		{"grade not a number", []string{"Essay", "FA"}, "ninety", "between 0 and 100"},
		{"grade out of range", []string{"Essay", "FA"}, "150", "between 0 and 100"},
		{"weight zero", []string{"Essay", "FA", "90"}, "0", "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWizard()
			for _, v := range tt.advance {
				m = submit(t, m, v)
			}
			before := m.step
			m = submit(t, m, tt.bad)
			if m.step != before {
				t.Errorf("wizard advanced past invalid input")
			}
			if !strings.Contains(m.errText, tt.errPart) {
				t.Errorf("expected error containing %q, got %q", tt.errPart, m.errText)
			}
			if m.session.Len() != 0 {
				t.Error("invalid input entered the session")
			}
		})
	}
}

func TestWizard_ContinueLoop(t *testing.T) {
	m := NewWizard()
	m = enterRecord(t, m, "Essay 1", "FA", "80", "10")
	m = submit(t, m, "y")
	if m.step != stepName {
		t.Fatalf("expected name step after 'y', got %v", m.step)
	}
	m = enterRecord(t, m, "Final", "SA", "92", "30")
	if m.session.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", m.session.Len())
	}

	// Invalid answer stays on the continue prompt.
	m = submit(t, m, "maybe")
	if m.step != stepContinue {
		t.Error("invalid continue answer should not advance")
	}
	if !strings.Contains(m.errText, "'y' or 'n'") {
		t.Errorf("unexpected error text %q", m.errText)
	}

	model, cmd := m.handleSubmit("n")
	if cmd == nil {
		t.Fatal("expected quit command on 'n'")
	}
	final := model.(Wizard)
	if final.aborted {
		t.Error("a normal finish is not an abort")
	}
}

func TestWizard_EscAborts(t *testing.T) {
	m := NewWizard()
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command on esc")
	}
	if !model.(Wizard).aborted {
		t.Error("esc should mark the session aborted")
	}
}

func TestWizard_ViewShowsPromptAndHistory(t *testing.T) {
	m := NewWizard()
	if !strings.Contains(m.View(), "Assignment Name:") {
		t.Error("initial view missing name prompt")
	}

	m = enterRecord(t, m, "Essay 1", "FA", "80", "10")
	view := m.View()
	if !strings.Contains(view, "Essay 1 (FA): 80.00% - Weight: 10.00") {
		t.Errorf("view missing history line:\n%s", view)
	}
	if !strings.Contains(view, "Add another assignment?") {
		t.Error("view missing continue prompt")
	}
}
