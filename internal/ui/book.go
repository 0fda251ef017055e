package ui

import (
	"strings"

	"github.com/five82/shelfscan/internal/session"
)

// maxDescriptionLines caps the description shown in the book panel.
const maxDescriptionLines = 8

// renderBook renders the imported book, or the empty state.
func (m Model) renderBook(width int) string {
	styles := m.theme.Styles()
	inner := maxInt(width-4, 10)

	lines := []string{styles.AccentText.Bold(true).Render("Book")}

	card := session.FormatBookCard(m.snapshot.Book)
	if card.Title == "" {
		lines = append(lines,
			"",
			styles.MutedText.Render("No book yet."),
			styles.FaintText.Render("Scan a barcode or type an ISBN and press enter."),
		)
		return styles.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
	}

	for _, l := range wrapText(card.Title, inner) {
		lines = append(lines, styles.Text.Bold(true).Render(l))
	}

	if len(card.Authors) == 0 {
		lines = append(lines, styles.MutedText.Render(session.MsgUnknownAuthor))
	} else {
		lines = append(lines, m.renderPills(card.Authors, inner))
	}

	if card.Publisher != "" {
		lines = append(lines, styles.MutedText.Render(truncate(card.Publisher, inner)))
	}

	if card.Description != "" {
		lines = append(lines, "")
		if m.showDesc {
			desc := wrapText(card.Description, inner)
			if len(desc) > maxDescriptionLines {
				desc = append(desc[:maxDescriptionLines-1], truncate(desc[maxDescriptionLines-1], inner-3)+"...")
			}
			for _, l := range desc {
				lines = append(lines, styles.Text.Render(l))
			}
		} else {
			lines = append(lines, styles.FaintText.Render("description hidden (d)"))
		}
	}

	return styles.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderPills renders author names as pills, wrapping at width.
func (m Model) renderPills(names []string, width int) string {
	styles := m.theme.Styles()
	var rows []string
	var row []string
	used := 0
	for _, name := range names {
		label := truncate(name, maxInt(width-2, 4))
		w := len([]rune(label)) + 2
		if used > 0 && used+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row, used = nil, 0
		}
		if used > 0 {
			used++
		}
		row = append(row, styles.Pill.Render(label))
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}
