package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const summaryWidth = 72

// approvalModel asks whether one signature request may be signed.
type approvalModel struct {
	req models.SignatureRequest

	decided  bool
	approved bool
}

func newApprovalModel(req models.SignatureRequest) approvalModel {
	return approvalModel{req: req}
}

func (m approvalModel) Init() tea.Cmd { return nil }

// Update answers on y/enter (sign) or n/esc/ctrl+c (refuse). Anything else
// is ignored.
func (m approvalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.approve, keys.enter):
		m.decided, m.approved = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.deny, keys.esc, keys.quit):
		m.decided, m.approved = true, false
		return m, tea.Quit
	}
	return m, nil
}

func (m approvalModel) View() string {
	if m.decided {
		return ""
	}

	title := "SIGNATURE REQUEST"
	switch m.req.Purpose {
	case models.PurposeSession:
		title = "START SESSION"
	case models.PurposeTransaction:
		title = "SIGN TRANSACTION"
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(m.req.Summary), "\n") {
		b.WriteString(fitText(line, summaryWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Payload"))
	b.WriteString(fmt.Sprintf("%d bytes", len(m.req.Payload)))

	return overlayBoxStyle.Render(renderPage(title, b.String(), "y / enter: sign │ n / esc: refuse"))
}
