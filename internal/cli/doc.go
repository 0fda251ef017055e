// Package cli defines the shelfscan command tree.
//
// The root command runs the interactive session. Subcommands (scan, import,
// shelves, search) drive the same session controller without the terminal
// UI and print its status lines, which makes them usable from scripts.
// main wraps the tree with fang for styled help, --version and signal
// handling.
package cli
