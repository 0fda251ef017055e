package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/five82/shelfscan/internal/catalog"
	"github.com/five82/shelfscan/internal/state"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot
	compact := m.width < LayoutCompactWidth

	badge := snap.Phase.String()
	if snap.IsOffline() {
		badge = "offline"
	}
	label := strings.ToUpper(badge)
	if isBusy(snap.Phase) {
		label = strings.TrimSpace(m.spinner.View()) + " " + label
	}

	parts := []string{
		bg.Render("shelfscan", styles.Logo),
		styles.BadgeStyle(badge).Render(label),
	}

	if host := displayHost(m.apiURL); host != "" {
		limit := 40
		if compact {
			limit = 24
		}
		parts = append(parts,
			bg.Render("API", styles.MutedText)+bg.Space()+bg.Render(truncateMiddle(host, limit), styles.Text))
	}

	if snap.ShelvesLoaded {
		total, open := shelfSummary(snap.Shelves)
		openStyle := styles.SuccessText
		if open == 0 {
			openStyle = styles.DangerText
		}
		parts = append(parts,
			bg.Render("Shelves:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", total), styles.Text)+bg.Space()+
				bg.Render(fmt.Sprintf("(%d open)", open), openStyle))
	}

	if !compact {
		if ago := formatUpdated(snap.UpdatedAt, m.now); ago != "" {
			parts = append(parts, bg.Render(ago, styles.FaintText))
		}
	}

	if snap.IsOffline() && snap.LastError != nil {
		limit := 60
		if compact {
			limit = 30
		}
		parts = append(parts,
			bg.Render("UNREACHABLE", styles.DangerText)+bg.Space()+
				bg.Render(truncate(snap.LastError.Error(), limit), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderScanBar renders the keyboard-wedge field, the last scan and the status line.
func (m Model) renderScanBar() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	line := m.scanInput.View()
	if snap.ScanText != "" {
		line += "   " + styles.AccentText.Render(snap.ScanText)
	}

	if snap.Status == "" {
		return line + "\n" + styles.FaintText.Render("Waiting for a scan.")
	}
	return line + "\n" + styles.StatusStyle(snap.StatusKind).Render(truncate(snap.Status, maxInt(m.width-2, 20)))
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, styles.WarningText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return strings.Join(parts, styles.FaintText.Render(" • "))
}

func isBusy(p state.Phase) bool {
	switch p {
	case state.PhaseImporting, state.PhaseFetchingShelves, state.PhasePlacing:
		return true
	}
	return false
}

// displayHost strips the scheme from the API URL for display.
func displayHost(apiURL string) string {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return ""
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		return u.Host
	}
	return apiURL
}

// formatUpdated renders how long ago the session state last changed.
func formatUpdated(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}
	d := now.Sub(at)
	switch {
	case d < 2*time.Second:
		return "updated just now"
	case d < time.Minute:
		return fmt.Sprintf("updated %ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("updated %dm ago", int(d.Minutes()))
	default:
		return "updated " + at.Format("15:04")
	}
}

// shelfSummary is used by the shelf panel title.
func shelfSummary(options []catalog.ShelfOption) (total, open int) {
	for _, opt := range options {
		if opt.HasSpace() {
			open++
		}
	}
	return len(options), open
}
