// Package session drives one scan-to-shelf session against the catalog.
//
// The Controller is the single writer of the session state. Sources hand it
// decoded codes through HandleScan (or a bus subscription from ScanHandler),
// the terminal view calls SelectShelf, MoveSelection, PlaceOnShelf and Search
// from its commands, and every change is pushed to Subscribe listeners as a
// state.Snapshot.
//
// A scan cycle:
//
//	HandleScan ─ dedupe ─→ ImportBook ─→ reload shelves ─→ awaiting placement
//	                                                        │
//	PlaceOnShelf ←──────────────── operator picks shelf ────┘
//	     └─→ confirmation, "Ready for next scan.", reload shelves
//
// Failures never leave a distinct error state: the phase goes back to where it
// was and the status line carries the server's message or a generic one.
//
// PollShelves is the background variant of RefreshShelves: it keeps the
// operator's selection and leaves the status line alone.
//
// BuildShelfView and FormatBookCard turn snapshot data into display strings
// and are shared by the terminal view and the headless commands.
package session
