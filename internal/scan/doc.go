// Package scan carries decoded barcode text from its sources to the session.
//
// A source is anything that yields decoded text: the keyboard-wedge field in
// the terminal view, a serial scanner exposed as a TTY, or stdin in headless
// mode. Sources publish Events on a Bus; the session subscribes once and
// passes each code through a Deduplicator before importing it.
//
// # Basic Usage
//
//	bus := scan.NewBus()
//	defer bus.Close()
//
//	unsubscribe, err := bus.Subscribe("session", func(ev scan.Event) {
//		controller.HandleScan(ctx, ev.Text)
//	})
//
//	src := scan.NewLineSource(os.Stdin, "stdin")
//	err = src.Run(ctx, bus)
//
// # Duplicate Suppression
//
// Scanners fire repeatedly while a barcode stays in view. Deduplicator
// rejects a code equal to the last accepted one while the window (default
// two seconds) has not elapsed. A different code is always accepted.
package scan
