// Package ui provides the terminal interface for shelfscan.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program styled with Lip Gloss. It renders the
// session.Controller snapshot and never owns workflow state itself: every
// action (submit a scan, place, refresh, move the selection, search) runs as
// a tea.Cmd that calls the controller and returns the resulting snapshot.
// Background changes, such as scans from a device, arrive through
// Controller.Subscribe and are forwarded with Program.Send.
//
// # Package Structure
//
//   - app.go: Model, Update loop, commands and Run
//   - header.go: status bar, scan field, status line and footer
//   - book.go: imported book panel
//   - shelves.go: shelf selector and place action
//   - search.go: manual ISBN lookup modal
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: color themes and styling helpers
//
// # Scan Input
//
// USB barcode scanners behave as keyboards. Digits, X and - are routed into
// the scan field regardless of focus, and enter submits the field. With an
// empty field, enter places the current book on the selected shelf.
//
// # Layout
//
// At LayoutCompactWidth columns and above the book and shelf panels sit side
// by side; narrower terminals stack them.
package ui
