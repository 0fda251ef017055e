package session

import (
	"fmt"
	"strings"

	"github.com/five82/shelfscan/internal/catalog"
)

// BookCard is the display form of an imported book.
type BookCard struct {
	Title       string
	Authors     []string
	Publisher   string
	Description string
}

// FormatBookCard builds the card for book. A nil book yields the zero card.
func FormatBookCard(book *catalog.Book) BookCard {
	if book == nil {
		return BookCard{}
	}
	card := BookCard{
		Title:       fmt.Sprintf("%s (%s)", book.Title, book.ISBN),
		Description: strings.TrimSpace(book.Description),
	}
	for _, a := range book.Authors {
		if a = strings.TrimSpace(a); a != "" {
			card.Authors = append(card.Authors, a)
		}
	}
	if p := strings.TrimSpace(book.Publisher); p != "" {
		card.Publisher = "Publisher: " + p
	}
	return card
}

// AuthorLine joins the authors, or returns MsgUnknownAuthor.
func (c BookCard) AuthorLine() string {
	if len(c.Authors) == 0 {
		return MsgUnknownAuthor
	}
	return strings.Join(c.Authors, ", ")
}

// Lines renders the card as plain text, omitting empty fields.
func (c BookCard) Lines() []string {
	if c.Title == "" {
		return nil
	}
	lines := []string{c.Title, c.AuthorLine()}
	if c.Publisher != "" {
		lines = append(lines, c.Publisher)
	}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	return lines
}
