// Package tui renders the interactive prompts of the client: signature
// approval and the keystore passphrase.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-safe-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs prompts on the given terminal streams.
type TUI struct {
	in   io.Reader
	out  io.Writer
	opts []tea.ProgramOption
}

func New(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *TUI {
	return &TUI{in: in, out: out, opts: opts}
}

// Approve shows req and reports whether the user agreed to sign it. It
// satisfies identity.Approver.
func (t *TUI) Approve(ctx context.Context, req models.SignatureRequest) (bool, error) {
	final, err := t.run(ctx, newApprovalModel(req))
	if err != nil {
		return false, err
	}

	result, ok := final.(approvalModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.decided && result.approved, nil
}

// Passphrase reads a keystore passphrase. With confirm set the user types
// it twice.
func (t *TUI) Passphrase(ctx context.Context, confirm bool) (string, error) {
	final, err := t.run(ctx, newPassphraseModel(confirm))
	if err != nil {
		return "", err
	}

	result, ok := final.(*passphraseModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if !result.done {
		return "", ErrUserQuit
	}
	return result.value(), nil
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	}, t.opts...)

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}
