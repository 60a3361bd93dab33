// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// passphraseModel reads a keystore passphrase with masked echo. With
// confirm set it asks twice and requires both entries to match.
type passphraseModel struct {
	title  string
	inputs []textinput.Model
	focus  int
	errMsg string

	done      bool
	cancelled bool
}

func newPassphraseModel(confirm bool) *passphraseModel {
	count, title := 1, "UNLOCK IDENTITY"
	if confirm {
		count, title = 2, "NEW IDENTITY"
	}

	inputs := make([]textinput.Model, count)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = "passphrase"
		in.CharLimit = 256
		in.Width = 40
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
		inputs[i] = in
	}
	if confirm {
		inputs[1].Placeholder = "repeat passphrase"
	}
	inputs[0].Focus()

	return &passphraseModel{title: title, inputs: inputs}
}

func (m *passphraseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - esc, ctrl+c  cancel the prompt.
//   - tab          moves focus to the next input.
//   - shift+tab    moves focus to the previous input.
//   - enter        submits, or moves on from the first of two inputs.
//
// All other key events go to the focused input.
func (m *passphraseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc, keys.quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *passphraseModel) submit() (tea.Model, tea.Cmd) {
	if m.inputs[m.focus].Value() == "" {
		m.errMsg = "Passphrase is required"
		return m, nil
	}
	if m.focus < len(m.inputs)-1 {
		m.errMsg = ""
		m.focusNext()
		return m, nil
	}
	if len(m.inputs) == 2 && m.inputs[0].Value() != m.inputs[1].Value() {
		m.errMsg = "Passphrases do not match"
		m.inputs[1].SetValue("")
		return m, nil
	}

	m.errMsg = ""
	m.done = true
	return m, tea.Quit
}

func (m *passphraseModel) value() string {
	return m.inputs[0].Value()
}

func (m *passphraseModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	labels := []string{"Passphrase", "Repeat"}

	var b strings.Builder
	for i, in := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("[")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(m.title, strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: confirm")
}

func (m *passphraseModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *passphraseModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
