package session

import (
	"fmt"

	"github.com/five82/shelfscan/internal/catalog"
)

// ShelfEntry is one row of the shelf selector.
type ShelfEntry struct {
	ID       int64
	Label    string
	Disabled bool
	Selected bool
}

// ShelfView is the rendered form of a shelf options snapshot.
type ShelfView struct {
	Entries      []ShelfEntry
	SelectedID   int64
	Helper       string
	EmptyMessage string
	PlaceEnabled bool
}

// BuildShelfView renders options with selectedID highlighted. When
// selectedID is not a shelf with space the first shelf with space is used.
func BuildShelfView(options []catalog.ShelfOption, selectedID int64) ShelfView {
	if len(options) == 0 {
		return ShelfView{EmptyMessage: MsgNoShelves}
	}

	selected, ok := catalog.FindShelf(options, selectedID)
	if !ok || !selected.HasSpace() {
		selected, ok = catalog.FindShelf(options, firstWithSpace(options))
	}

	view := ShelfView{Entries: make([]ShelfEntry, 0, len(options))}
	if ok {
		view.SelectedID = selected.ShelfID
		view.Helper = ShelfHelper(selected)
		view.PlaceEnabled = true
	} else {
		view.Helper = MsgAllFull
	}
	for _, opt := range options {
		view.Entries = append(view.Entries, ShelfEntry{
			ID:       opt.ShelfID,
			Label:    ShelfLabel(opt),
			Disabled: !opt.HasSpace(),
			Selected: ok && opt.ShelfID == view.SelectedID,
		})
	}
	return view
}

// ShelfLabel formats an entry as "bookcase • shelf (count/capacity)".
func ShelfLabel(opt catalog.ShelfOption) string {
	return fmt.Sprintf("%s • %s (%d/%d)", opt.BookcaseLabel, opt.ShelfLabel, opt.BookCount, opt.BookCapacity)
}

// ShelfHelper describes the occupancy of opt.
func ShelfHelper(opt catalog.ShelfOption) string {
	availability := "No space left"
	if n := opt.OpenSlots(); n > 0 {
		availability = fmt.Sprintf("%d open slot(s)", n)
	}
	return fmt.Sprintf("%s → %s • %d/%d filled • %s",
		opt.BookcaseLabel, opt.ShelfLabel, opt.BookCount, opt.BookCapacity, availability)
}
