package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which panels stack vertically.
	LayoutCompactWidth = 100

	// LayoutMinPanelWidth is the narrowest a side-by-side panel gets.
	LayoutMinPanelWidth = 36
)

// Search modal dimensions.
const (
	SearchModalWidth     = 72
	SearchViewportHeight = 16
)

// Timing constants.
const (
	// DefaultUIInterval drives the "updated ago" clock in the header.
	DefaultUIInterval = time.Second

	// ActionTimeout bounds a single catalog call started from the UI.
	ActionTimeout = 45 * time.Second
)
