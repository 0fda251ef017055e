// Package app is the composition root for shelfscan.
//
// # Overview
//
// Setup loads configuration and wires the pieces every command shares:
//
//  1. Load ~/.config/shelfscan/config.toml (env overrides applied last)
//  2. Build the slog logger, writing to the log file or the caller's writer
//  3. Create the catalog HTTP client with the configured request timeout
//  4. Create the session.Controller with the configured dedupe window
//  5. Create the scan.Bus that barcode sources publish to
//
// Run adds the interactive pieces: it subscribes the controller to the bus,
// attaches the optional line device, loads shelves, starts the background
// shelf poller and blocks in the terminal UI until the user quits or the
// context is cancelled.
//
// RunScan is the headless counterpart used by `shelfscan scan`. It reads
// decoded lines from any io.Reader and prints each status line the
// controller produces.
//
// # Shelf Polling
//
// StartShelfPoller refreshes shelf capacities in the background so a shelf
// filled from another station stops being offered. Consecutive failures back
// off exponentially up to maxBackoff. Polling skips while an import or
// placement is running and never overwrites the status line.
package app
