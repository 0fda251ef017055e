package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/shelfscan/internal/catalog"
)

type fakeAPI struct {
	mu sync.Mutex

	importCalls []string
	shelfCalls  int
	placeCalls  [][2]int64
	searchCalls []string

	importFn func(isbn string) (*catalog.Book, error)
	shelves  []catalog.ShelfOption
	shelfErr error
	shelfFn  func(call int) ([]catalog.ShelfOption, error)
	placeFn  func(ctx context.Context, bookID, shelfID int64) (*catalog.Placement, error)
	searchFn func(isbn string) (json.RawMessage, error)
}

var _ catalog.API = (*fakeAPI)(nil)

func (f *fakeAPI) ImportBook(_ context.Context, isbn string) (*catalog.Book, error) {
	f.mu.Lock()
	f.importCalls = append(f.importCalls, isbn)
	fn := f.importFn
	f.mu.Unlock()
	if fn == nil {
		return &catalog.Book{BookID: 1, Title: "Untitled", ISBN: isbn}, nil
	}
	return fn(isbn)
}

func (f *fakeAPI) FetchShelfOptions(context.Context) ([]catalog.ShelfOption, error) {
	f.mu.Lock()
	f.shelfCalls++
	if fn := f.shelfFn; fn != nil {
		call := f.shelfCalls
		f.mu.Unlock()
		return fn(call)
	}
	defer f.mu.Unlock()
	if f.shelfErr != nil {
		return nil, f.shelfErr
	}
	return append([]catalog.ShelfOption(nil), f.shelves...), nil
}

func (f *fakeAPI) PlaceOnShelf(ctx context.Context, bookID, shelfID int64) (*catalog.Placement, error) {
	f.mu.Lock()
	f.placeCalls = append(f.placeCalls, [2]int64{bookID, shelfID})
	fn := f.placeFn
	shelves := f.shelves
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, bookID, shelfID)
	}
	opt, _ := catalog.FindShelf(shelves, shelfID)
	return &catalog.Placement{
		BookID:        bookID,
		ShelfID:       shelfID,
		ShelfLabel:    opt.ShelfLabel,
		BookcaseLabel: opt.BookcaseLabel,
	}, nil
}

func (f *fakeAPI) SearchByISBN(_ context.Context, isbn string) (json.RawMessage, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, isbn)
	fn := f.searchFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(isbn)
}

func (f *fakeAPI) counts() (imports, shelves, places int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.importCalls), f.shelfCalls, len(f.placeCalls)
}

// fakeClock is advanced by tests to drive the dedupe window.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestController(api catalog.API, opts ...Option) *Controller {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(api, append([]Option{WithLogger(quiet)}, opts...)...)
}

func hallShelves() []catalog.ShelfOption {
	return []catalog.ShelfOption{
		{ShelfID: 1, ShelfLabel: "Top", BookcaseLabel: "Hall", BookCapacity: 5, BookCount: 5},
		{ShelfID: 2, ShelfLabel: "Middle", BookcaseLabel: "Hall", BookCapacity: 10, BookCount: 3},
		{ShelfID: 3, ShelfLabel: "Bottom", BookcaseLabel: "Hall", BookCapacity: 4, BookCount: 4},
		{ShelfID: 4, ShelfLabel: "Left", BookcaseLabel: "Study", BookCapacity: 8, BookCount: 7},
	}
}
