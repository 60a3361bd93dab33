package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var sessionRequest = models.SignatureRequest{
	Purpose: models.PurposeSession,
	Payload: []byte("challenge bytes"),
	Summary: "Start a session for scope vault-access\nValid for 10m0s",
}

// ── approval ─────────────────────────────────────────────────────────────────

func TestApprovalModel_Keys(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		approved bool
	}{
		{"y approves", runes("y"), true},
		{"enter approves", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"n refuses", runes("n"), false},
		{"esc refuses", tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"ctrl+c refuses", tea.KeyMsg{Type: tea.KeyCtrlC}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := newApprovalModel(sessionRequest).Update(tt.msg)

			m := updated.(approvalModel)
			assert.True(t, m.decided)
			assert.Equal(t, tt.approved, m.approved)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestApprovalModel_IgnoresOtherInput(t *testing.T) {
	updated, cmd := newApprovalModel(sessionRequest).Update(runes("x"))

	assert.False(t, updated.(approvalModel).decided)
	assert.Nil(t, cmd)

	updated, cmd = updated.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.False(t, updated.(approvalModel).decided)
	assert.Nil(t, cmd)
}

func TestApprovalModel_View(t *testing.T) {
	view := newApprovalModel(sessionRequest).View()

	assert.Contains(t, view, "START SESSION")
	assert.Contains(t, view, "Start a session for scope vault-access")
	assert.Contains(t, view, "Valid for 10m0s")
	assert.Contains(t, view, fmt.Sprintf("%d bytes", len(sessionRequest.Payload)))

	tx := newApprovalModel(models.SignatureRequest{Purpose: models.PurposeTransaction, Summary: strings.Repeat("a", 200)}).View()
	assert.Contains(t, tx, "SIGN TRANSACTION")
	assert.Contains(t, tx, strings.Repeat("a", summaryWidth-3)+"...")
}

func TestTUI_Approve(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ui := New(strings.NewReader(tt.input), &bytes.Buffer{}, tea.WithoutRenderer())

			approved, err := ui.Approve(context.Background(), sessionRequest)

			require.NoError(t, err)
			assert.Equal(t, tt.want, approved)
		})
	}
}

// ── passphrase ───────────────────────────────────────────────────────────────

func TestPassphraseModel_Single(t *testing.T) {
	m := newPassphraseModel(false)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Passphrase is required", m.errMsg)
	assert.False(t, m.done)

	m.Update(runes("hunter2"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.done)
	assert.Equal(t, "hunter2", m.value())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPassphraseModel_ConfirmMismatch(t *testing.T) {
	m := newPassphraseModel(true)

	m.Update(runes("one"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.focus, "enter moves to the repeat field")

	m.Update(runes("two"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.done)
	assert.Equal(t, "Passphrases do not match", m.errMsg)
	assert.Empty(t, m.inputs[1].Value())

	m.Update(runes("one"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.done)
	assert.Equal(t, "one", m.value())
}

func TestPassphraseModel_Navigation(t *testing.T) {
	m := newPassphraseModel(true)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, m.focus)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.focus)
}

func TestPassphraseModel_Cancel(t *testing.T) {
	m := newPassphraseModel(false)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.cancelled)
	assert.False(t, m.done)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPassphraseModel_ViewMasksInput(t *testing.T) {
	m := newPassphraseModel(true)
	m.Update(runes("secret"))

	view := m.View()

	assert.Contains(t, view, "NEW IDENTITY")
	assert.NotContains(t, view, "secret")
	assert.Contains(t, view, "******")
}

// ── build info ───────────────────────────────────────────────────────────────

func TestRenderBuildInfo(t *testing.T) {
	out := RenderBuildInfo(models.NewAppBuildInfo("1.4.0", "", "abc123"), "")

	assert.Contains(t, out, "Version:     1.4.0")
	assert.Contains(t, out, "Date:        N/A")
	assert.Contains(t, out, "Commit:      abc123")
	assert.NotContains(t, out, "Devnet")

	assert.Contains(t, RenderBuildInfo(models.AppBuildInfo{}, "0.9.0"), "Devnet:      0.9.0")
}

// ── errors ───────────────────────────────────────────────────────────────────

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"denied", adapter.ErrSignatureDenied, "Signature request refused"},
		{"wrapped protocol error", fmt.Errorf("claim: %w", safe.ErrTooEarly), "The inactivity period has not elapsed yet"},
		{"network", errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "Network is down or a collaborator is unreachable"},
		{"other", errors.New("something odd"), "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.err))
		})
	}
}
