package main

import (
	"fmt"
	"strconv"
	"strings"

	"markbook/internal/gradebook"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// GRADE ENTRY WIZARD
// =============================================================================
// Steps through one assignment at a time: name, category, grade, weight,
// then asks whether to continue. Validation failures keep the wizard on
// the same step with the reason shown; the session only ever holds
// records that passed validation.

type wizardStep int

const (
	stepName wizardStep = iota
	stepCategory
	stepGrade
	stepWeight
	stepContinue
)

// Wizard is the bubbletea model for the interactive entry session.
type Wizard struct {
	session *gradebook.Session
	input   textinput.Model
	step    wizardStep
	errText string
	history []string

	// Fields collected for the assignment in progress.
	pendingName     string
	pendingCategory gradebook.Category
	pendingGrade    float64

	aborted bool
}

// NewWizard builds a wizard over a fresh session.
func NewWizard() Wizard {
	ti := textinput.New()
	ti.Placeholder = "Assignment name..."
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 48

	return Wizard{
		session: gradebook.NewSession(),
		input:   ti,
		step:    stepName,
	}
}

func (m Wizard) Init() tea.Cmd {
	return textinput.Blink
}

func (m Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit(strings.TrimSpace(m.input.Value()))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit advances the wizard by one step, or stays put with an
// error message when the input does not validate.
func (m Wizard) handleSubmit(value string) (tea.Model, tea.Cmd) {
	m.errText = ""

	switch m.step {
	case stepName:
		if value == "" {
			m.errText = "Value cannot be empty."
			return m, nil
		}
		m.pendingName = value
		m.step = stepCategory
		m.resetInput("FA or SA...")

	case stepCategory:
		category, err := gradebook.ParseCategory(value)
		if err != nil {
			m.errText = "Category must be 'FA' or 'SA'"
			return m, nil
		}
		m.pendingCategory = category
		m.step = stepGrade
		m.resetInput("0-100...")

	case stepGrade:
		grade, err := strconv.ParseFloat(value, 64)
		if err != nil || grade < 0 || grade > 100 {
			m.errText = "Grade must be between 0 and 100"
			return m, nil
		}
		m.pendingGrade = grade
		m.step = stepWeight
		m.resetInput("> 0...")

	case stepWeight:
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil || weight <= 0 {
			m.errText = "Weight must be a positive number"
			return m, nil
		}
		a, err := m.session.Add(m.pendingName, m.pendingCategory, m.pendingGrade, weight)
		if err != nil {
			// Should not happen: every field was checked on its own
			// step. Surface it and restart the record to be safe.
			m.errText = err.Error()
			m.step = stepName
			m.resetInput("Assignment name...")
			return m, nil
		}
		m.history = append(m.history, fmt.Sprintf("%d. %s (%s): %.2f%% - Weight: %.2f",
			m.session.Len(), a.Name, a.Category, a.Grade, a.Weight))
		m.step = stepContinue
		m.resetInput("y/n...")

	case stepContinue:
		switch strings.ToLower(value) {
		case "y", "yes":
			m.step = stepName
			m.resetInput("Assignment name...")
		case "n", "no":
			return m, tea.Quit
		default:
			m.errText = "Please enter 'y' or 'n'."
		}
	}
	return m, nil
}

func (m *Wizard) resetInput(placeholder string) {
	m.input.Reset()
	m.input.Placeholder = placeholder
}

// prompt returns the label for the current step.
func (m Wizard) prompt() string {
	switch m.step {
	case stepName:
		return "Assignment Name:"
	case stepCategory:
		return "Category (FA/SA):"
	case stepGrade:
		return "Grade (0-100):"
	case stepWeight:
		return "Weight (> 0):"
	case stepContinue:
		return "Add another assignment? (y/n):"
	}
	return ""
}

func (m Wizard) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("markbook - grade entry"))
	b.WriteString("\n\n")

	if len(m.history) > 0 {
		b.WriteString(historyStyle.Render(strings.Join(m.history, "\n")))
		b.WriteString("\n\n")
	}

	b.WriteString(promptStyle.Render(m.prompt()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter to confirm - esc to quit"))
	b.WriteString("\n")
	return b.String()
}
