package ui

import (
	"fmt"
	"strings"

	"github.com/five82/shelfscan/internal/session"
)

// shelfChromeRows is the header, scan bar, footer and panel chrome height.
const shelfChromeRows = 12

// renderShelves renders the shelf selector, helper line and place action.
func (m Model) renderShelves(width int) string {
	styles := m.theme.Styles()
	snap := m.snapshot
	inner := maxInt(width-4, 10)
	view := session.BuildShelfView(snap.Shelves, snap.SelectedShelfID)

	title := "Shelves"
	if total, open := shelfSummary(snap.Shelves); total > 0 {
		title = fmt.Sprintf("Shelves  %d/%d open", open, total)
	}
	lines := []string{styles.AccentText.Bold(true).Render(title)}

	if view.EmptyMessage != "" {
		lines = append(lines, "", styles.MutedText.Render(view.EmptyMessage))
		return styles.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
	}

	selectedIdx := 0
	for i, e := range view.Entries {
		if e.Selected {
			selectedIdx = i
			break
		}
	}
	rows := maxInt(m.height-shelfChromeRows, 3)
	start, end := visibleWindow(len(view.Entries), selectedIdx, rows)
	if start > 0 {
		lines = append(lines, styles.FaintText.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for _, e := range view.Entries[start:end] {
		label := truncate(e.Label, inner-2)
		switch {
		case e.Selected:
			lines = append(lines, styles.Selected.Render("▸ "+padRight(label, inner-2)))
		case e.Disabled:
			lines = append(lines, styles.FaintText.Render("  "+label))
		default:
			lines = append(lines, styles.Text.Render("  "+label))
		}
	}
	if rest := len(view.Entries) - end; rest > 0 {
		lines = append(lines, styles.FaintText.Render(fmt.Sprintf("  ↓ %d more", rest)))
	}

	lines = append(lines, "")
	helperStyle := styles.MutedText
	if !view.PlaceEnabled {
		helperStyle = styles.WarningText
	}
	for _, l := range wrapText(view.Helper, inner) {
		lines = append(lines, helperStyle.Render(l))
	}

	lines = append(lines, "", m.renderPlaceButton(view.PlaceEnabled))
	return styles.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderPlaceButton(enabled bool) string {
	styles := m.theme.Styles()
	switch {
	case m.snapshot.Placing:
		return styles.WarningText.Render("[ " + strings.TrimSpace(m.spinner.View()) + " Placing… ]")
	case enabled && m.snapshot.Book != nil:
		return styles.SuccessText.Render("[ enter  Place on shelf ]")
	default:
		return styles.FaintText.Render("[ Place on shelf ]")
	}
}

// visibleWindow returns the [start, end) range of n rows that fits in limit
// rows and keeps selected in view.
func visibleWindow(n, selected, limit int) (int, int) {
	if limit <= 0 || n <= limit {
		return 0, n
	}
	start := selected - limit/2
	if start < 0 {
		start = 0
	}
	if start+limit > n {
		start = n - limit
	}
	return start, start + limit
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}
