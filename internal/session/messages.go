package session

import (
	"errors"

	"github.com/five82/shelfscan/internal/catalog"
)

// Operator-facing status lines.
const (
	msgScanned         = "Scanned: %s"
	msgImporting       = "Fetching book details and saving to your library…"
	msgSaved           = "Saved “%s”. Pick a shelf to finish."
	msgImportFailed    = "Something went wrong while importing."
	msgShelvesFailed   = "Unable to load shelf options"
	msgPickValidShelf  = "Pick a valid shelf before placing the book."
	msgPlacing         = "Placing book on shelf…"
	msgPlaceFailed     = "Unable to place book on shelf."
	msgPlaced          = "Book placed on %s / %s."
	msgReadyForNext    = "Ready for next scan."
	msgRefreshingShelf = "Refreshing shelf options…"

	// MsgNoShelves is shown instead of the shelf list when the catalog has none.
	MsgNoShelves = "No shelves available yet."
	// MsgAllFull replaces the helper line when no shelf has space.
	MsgAllFull = "All shelves are full — create space to continue."
	// MsgNotFound is the search outcome for a missing book.
	MsgNotFound = "Book not found."
	// MsgUnknownAuthor stands in for an empty author list.
	MsgUnknownAuthor = "Unknown author"
)

var (
	// ErrBlankISBN is returned when an ISBN is empty after trimming.
	ErrBlankISBN = errors.New("isbn is blank")
	// ErrNoBook is returned by PlaceOnShelf before any import succeeded.
	ErrNoBook = errors.New("no book to place")
	// ErrInvalidShelf is returned when the selected shelf is not in the last-fetched options.
	ErrInvalidShelf = errors.New("selected shelf is not a valid option")
	// ErrPlacementInFlight is returned while a placement request is outstanding.
	ErrPlacementInFlight = errors.New("placement already in progress")
)

// failureMessage returns the server's text for HTTP errors and fallback for
// everything else.
func failureMessage(err error, fallback string) string {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return fallback
}

func isTransport(err error) bool {
	return errors.Is(err, catalog.ErrTransport)
}
