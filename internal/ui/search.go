package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelfscan/internal/session"
)

// renderSearch renders the manual ISBN search modal.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Search by ISBN"))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(styles.WarningText.Render(strings.TrimSpace(m.spinner.View()) + " Searching…"))
	case m.searchOutcome == nil:
		b.WriteString(styles.FaintText.Render("enter to search • esc to close"))
	case !m.searchOutcome.Found:
		b.WriteString(styles.DangerText.Render(session.MsgNotFound))
	default:
		b.WriteString(m.searchViewport.View())
		if !m.searchViewport.AtBottom() || !m.searchViewport.AtTop() {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render("up/down to scroll"))
		}
	}

	modalWidth := SearchModalWidth
	if m.width > 0 && m.width-4 < modalWidth {
		modalWidth = maxInt(m.width-4, 30)
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
