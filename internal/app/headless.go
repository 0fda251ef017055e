package app

import (
	"context"
	"fmt"
	"io"

	"github.com/five82/shelfscan/internal/scan"
	"github.com/five82/shelfscan/internal/state"
)

// ScanSummary counts the outcome of a headless scan run.
type ScanSummary struct {
	Accepted int
	Imported int
	Placed   int
	Failed   int
}

func (s ScanSummary) String() string {
	return fmt.Sprintf("%d scanned, %d imported, %d placed, %d failed", s.Accepted, s.Imported, s.Placed, s.Failed)
}

// RunScan reads decoded barcode lines from r and imports each accepted ISBN,
// writing status lines to out. When shelfID is non-zero every imported book
// is placed on that shelf. It returns when r is exhausted or ctx is cancelled.
func (e *Env) RunScan(ctx context.Context, r io.Reader, name string, out io.Writer, shelfID int64) (ScanSummary, error) {
	var summary ScanSummary

	printer := &statusPrinter{out: out}
	unsubscribe := e.Controller.Subscribe(printer.print)
	defer unsubscribe()

	remove, err := e.Bus.Subscribe("headless", func(ev scan.Event) {
		accepted, _, err := e.Controller.Scan(ctx, ev.Text)
		if !accepted {
			return
		}
		summary.Accepted++
		if err != nil {
			summary.Failed++
			return
		}
		summary.Imported++
		if shelfID == 0 {
			return
		}
		if !e.Controller.SelectShelf(shelfID) {
			summary.Failed++
			fmt.Fprintf(out, "%-7s Shelf %d is full or not offered; book left unplaced.\n", state.StatusError, shelfID)
			return
		}
		if _, err := e.Controller.PlaceOnShelf(ctx); err != nil {
			summary.Failed++
			return
		}
		summary.Placed++
	})
	if err != nil {
		return summary, fmt.Errorf("subscribe headless: %w", err)
	}
	defer remove()

	e.Logger.Info("Headless scan started", "source", name, "shelf_id", shelfID)
	err = scan.NewLineSource(r, name).Run(ctx, e.Bus)
	e.Logger.Info("Headless scan finished", "accepted", summary.Accepted, "imported", summary.Imported,
		"placed", summary.Placed, "failed", summary.Failed)
	return summary, err
}

// statusPrinter writes each new scan line and status line once.
type statusPrinter struct {
	out      io.Writer
	lastScan string
	lastText string
}

func (p *statusPrinter) print(snap state.Snapshot) {
	if snap.ScanText != "" && snap.ScanText != p.lastScan {
		p.lastScan = snap.ScanText
		fmt.Fprintf(p.out, "%-7s %s\n", "scan", snap.ScanText)
	}
	if snap.Status != "" && snap.Status != p.lastText {
		p.lastText = snap.Status
		fmt.Fprintf(p.out, "%-7s %s\n", snap.StatusKind, snap.Status)
	}
}
