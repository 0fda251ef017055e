package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/shelfscan/internal/catalog"
	"github.com/five82/shelfscan/internal/scan"
	"github.com/five82/shelfscan/internal/state"
)

// Controller owns one scan session: the dedupe gate, the current book, the
// shelf options and the status line.
type Controller struct {
	api    catalog.API
	store  *state.Store
	dedupe *scan.Deduplicator
	logger *slog.Logger
	now    func() time.Time

	// importSlot admits one import at a time.
	importSlot chan struct{}
	// shelfSeq counts shelf fetches; a poll only commits if it is the latest.
	shelfSeq atomic.Uint64

	mu        sync.Mutex
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(state.Snapshot)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now for dedupe decisions and snapshot stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDedupeWindow sets how long a repeated scan is ignored.
func WithDedupeWindow(window time.Duration) Option {
	return func(c *Controller) {
		c.dedupe = scan.NewDeduplicator(window)
	}
}

// New builds a Controller over api.
func New(api catalog.API, opts ...Option) *Controller {
	c := &Controller{
		api:        api,
		dedupe:     scan.NewDeduplicator(scan.DefaultDedupeWindow),
		logger:     slog.Default(),
		now:        time.Now,
		importSlot: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = state.NewStore(c.now)
	return c
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Subscribe registers fn to receive every state change. The returned func
// removes it.
func (c *Controller) Subscribe(fn func(state.Snapshot)) func() {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify(snap state.Snapshot) {
	c.mu.Lock()
	fns := make([]func(state.Snapshot), 0, len(c.listeners))
	for _, l := range c.listeners {
		fns = append(fns, l.fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (c *Controller) update(fn func(*state.Snapshot)) state.Snapshot {
	snap := c.store.Update(fn)
	c.notify(snap)
	return snap
}

// ScanHandler adapts HandleScan to a bus subscriber.
func (c *Controller) ScanHandler(ctx context.Context) scan.Handler {
	return func(ev scan.Event) {
		c.HandleScan(ctx, ev.Text)
	}
}

// HandleScan runs an accepted scan through the import flow. It returns false
// without touching the network when the code is blank or a repeat inside the
// dedupe window.
func (c *Controller) HandleScan(ctx context.Context, code string) bool {
	accepted, _, _ := c.Scan(ctx, code)
	return accepted
}

// Scan is HandleScan that also returns the import result. book and err are
// nil when the scan was not accepted.
func (c *Controller) Scan(ctx context.Context, code string) (bool, *catalog.Book, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, nil, nil
	}
	if !c.dedupe.Accept(code, c.now()) {
		c.logger.Debug("Duplicate scan ignored", "isbn", code, "window", c.dedupe.Window())
		return false, nil, nil
	}

	c.update(func(s *state.Snapshot) {
		s.ScanText = fmt.Sprintf(msgScanned, code)
	})
	book, err := c.ImportBook(ctx, code)
	return true, book, err
}

// ImportBook sends isbn to the catalog, shows the returned book and then
// refreshes shelf options once. A failure restores the previous phase and
// leaves the error on the status line. Imports run one at a time; a second
// call waits for the first to finish.
func (c *Controller) ImportBook(ctx context.Context, isbn string) (*catalog.Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, ErrBlankISBN
	}

	select {
	case c.importSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("import %s: %w", isbn, ctx.Err())
	}
	defer func() { <-c.importSlot }()

	var prev state.Phase
	c.update(func(s *state.Snapshot) {
		prev = s.Phase
		s.Phase = state.PhaseImporting
		s.SetStatus(state.StatusInfo, msgImporting)
	})

	c.logger.Info("Importing book", "isbn", isbn)
	book, err := c.api.ImportBook(ctx, isbn)
	c.store.RecordResult(err, isTransport(err))
	if err != nil {
		c.logger.Warn("Import failed", "isbn", isbn, "error", err)
		c.update(func(s *state.Snapshot) {
			s.Phase = prev
			s.SetStatus(state.StatusError, failureMessage(err, msgImportFailed))
		})
		return nil, fmt.Errorf("import %s: %w", isbn, err)
	}

	c.logger.Info("Book imported", "isbn", isbn, "book_id", book.BookID, "title", book.Title)
	c.update(func(s *state.Snapshot) {
		s.Book = book.Clone()
		s.Phase = state.PhaseFetchingShelves
		s.SetStatus(state.StatusSuccess, fmt.Sprintf(msgSaved, book.Title))
	})

	_ = c.reloadShelves(ctx, false)
	c.update(func(s *state.Snapshot) {
		s.Phase = state.PhaseAwaitingPlacement
	})
	return book, nil
}

// LoadShelves performs the initial shelf fetch. Failure is logged and
// otherwise ignored since there is no book to place yet.
func (c *Controller) LoadShelves(ctx context.Context) {
	if err := c.reloadShelves(ctx, true); err != nil {
		c.logger.Debug("Initial shelf load failed", "error", err)
	}
}

// RefreshShelves re-fetches shelf options and reselects. Failure is shown on
// the status line.
func (c *Controller) RefreshShelves(ctx context.Context) error {
	c.update(func(s *state.Snapshot) {
		if !s.Placing {
			s.SetStatus(state.StatusInfo, msgRefreshingShelf)
		}
	})
	return c.reloadShelves(ctx, false)
}

func (c *Controller) reloadShelves(ctx context.Context, quiet bool) error {
	c.shelfSeq.Add(1)
	options, err := c.api.FetchShelfOptions(ctx)
	c.store.RecordResult(err, isTransport(err))
	if err != nil {
		if quiet {
			c.notify(c.store.Snapshot())
		} else {
			c.logger.Warn("Shelf options failed", "error", err)
			c.update(func(s *state.Snapshot) {
				s.SetStatus(state.StatusError, msgShelvesFailed)
			})
		}
		return fmt.Errorf("fetch shelf options: %w", err)
	}

	c.logger.Debug("Shelf options loaded", "count", len(options))
	c.update(func(s *state.Snapshot) {
		s.Shelves = options
		s.ShelvesLoaded = true
		s.SelectedShelfID = firstWithSpace(options)
		if s.Status == msgRefreshingShelf {
			s.SetStatus(state.StatusInfo, "")
		}
	})
	return nil
}

// PollShelves refreshes shelf capacities in the background. It keeps the
// current selection while that shelf still has space, never touches the
// status line, and does nothing while an import or placement is running.
// A result is dropped when another fetch started or the session got busy
// while the request was in flight.
func (c *Controller) PollShelves(ctx context.Context) error {
	if busy(c.store.Snapshot()) {
		return nil
	}

	seq := c.shelfSeq.Add(1)
	options, err := c.api.FetchShelfOptions(ctx)
	c.store.RecordResult(err, isTransport(err))
	if err != nil {
		c.notify(c.store.Snapshot())
		return fmt.Errorf("poll shelf options: %w", err)
	}

	snap, ok := c.store.UpdateIf(func(s *state.Snapshot) bool {
		if busy(*s) || c.shelfSeq.Load() != seq {
			return false
		}
		s.Shelves = options
		s.ShelvesLoaded = true
		if opt, found := catalog.FindShelf(options, s.SelectedShelfID); !found || !opt.HasSpace() {
			s.SelectedShelfID = firstWithSpace(options)
		}
		return true
	})
	if ok {
		c.notify(snap)
	} else {
		c.logger.Debug("Stale shelf poll dropped")
	}
	return nil
}

// busy reports whether an import or placement owns the shelf options.
func busy(s state.Snapshot) bool {
	return s.Placing || s.Phase == state.PhaseImporting || s.Phase == state.PhaseFetchingShelves
}

// SelectShelf selects id when it is in the current options and has space.
func (c *Controller) SelectShelf(id int64) bool {
	snap, ok := c.store.UpdateIf(func(s *state.Snapshot) bool {
		opt, found := catalog.FindShelf(s.Shelves, id)
		if !found || !opt.HasSpace() {
			return false
		}
		s.SelectedShelfID = id
		return true
	})
	if ok {
		c.notify(snap)
	}
	return ok
}

// MoveSelection steps to the next (delta > 0) or previous selectable shelf.
// Full shelves are skipped; the selection stops at either end.
func (c *Controller) MoveSelection(delta int) bool {
	if delta == 0 {
		return false
	}
	snap, ok := c.store.UpdateIf(func(s *state.Snapshot) bool {
		next := stepSelection(s.Shelves, s.SelectedShelfID, delta)
		if next == 0 || next == s.SelectedShelfID {
			return false
		}
		s.SelectedShelfID = next
		return true
	})
	if ok {
		c.notify(snap)
	}
	return ok
}

// PlaceOnShelf assigns the current book to the selected shelf. Only one
// placement runs at a time; Placing stays set until the request finishes.
func (c *Controller) PlaceOnShelf(ctx context.Context) (*catalog.Placement, error) {
	var (
		refusal error
		bookID  int64
		shelf   catalog.ShelfOption
		prev    state.Phase
	)
	snap, changed := c.store.UpdateIf(func(s *state.Snapshot) bool {
		switch {
		case s.Book == nil:
			refusal = ErrNoBook
			return false
		case s.Placing:
			refusal = ErrPlacementInFlight
			return false
		}
		opt, ok := s.SelectedShelf()
		if !ok || !opt.HasSpace() {
			refusal = ErrInvalidShelf
			s.SetStatus(state.StatusError, msgPickValidShelf)
			return true
		}
		bookID = s.Book.BookID
		shelf = opt
		prev = s.Phase
		s.Placing = true
		s.Phase = state.PhasePlacing
		s.SetStatus(state.StatusInfo, msgPlacing)
		return true
	})
	if changed {
		c.notify(snap)
	}
	if refusal != nil {
		return nil, refusal
	}

	c.logger.Info("Placing book", "book_id", bookID, "shelf_id", shelf.ShelfID)
	placement, err := c.api.PlaceOnShelf(ctx, bookID, shelf.ShelfID)
	c.store.RecordResult(err, isTransport(err))
	if err != nil {
		c.logger.Warn("Placement failed", "book_id", bookID, "shelf_id", shelf.ShelfID, "error", err)
		c.update(func(s *state.Snapshot) {
			s.Placing = false
			s.Phase = prev
			s.SetStatus(state.StatusError, failureMessage(err, msgPlaceFailed))
		})
		return nil, fmt.Errorf("place book %d on shelf %d: %w", bookID, shelf.ShelfID, err)
	}

	c.logger.Info("Book placed", "book_id", bookID, "shelf_id", shelf.ShelfID,
		"bookcase", placement.BookcaseLabel, "shelf", placement.ShelfLabel)
	c.update(func(s *state.Snapshot) {
		s.Placing = false
		s.Phase = state.PhaseIdle
		s.SetStatus(state.StatusSuccess, fmt.Sprintf(msgPlaced, placement.BookcaseLabel, placement.ShelfLabel))
		s.ScanText = msgReadyForNext
	})

	// Counts changed; keep the confirmation on screen if the refresh fails.
	if err := c.reloadShelves(ctx, true); err != nil {
		c.logger.Warn("Shelf refresh after placement failed", "error", err)
	}
	return placement, nil
}

func firstWithSpace(options []catalog.ShelfOption) int64 {
	for _, opt := range options {
		if opt.HasSpace() {
			return opt.ShelfID
		}
	}
	return 0
}

func stepSelection(options []catalog.ShelfOption, current int64, delta int) int64 {
	idx := -1
	for i, opt := range options {
		if opt.ShelfID == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return firstWithSpace(options)
	}

	step := 1
	if delta < 0 {
		step = -1
	}
	remaining := delta * step
	last := current
	for i := idx + step; i >= 0 && i < len(options) && remaining > 0; i += step {
		if options[i].HasSpace() {
			last = options[i].ShelfID
			remaining--
		}
	}
	return last
}
