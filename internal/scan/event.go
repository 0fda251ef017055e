package scan

import "time"

// Event is one decoded barcode.
type Event struct {
	Text   string
	At     time.Time
	Source string
}
