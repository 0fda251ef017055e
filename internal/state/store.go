package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/shelfscan/internal/catalog"
)

// Phase is where the session is in the scan → import → place cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseImporting
	PhaseFetchingShelves
	PhaseAwaitingPlacement
	PhasePlacing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "ready"
	case PhaseImporting:
		return "importing"
	case PhaseFetchingShelves:
		return "loading shelves"
	case PhaseAwaitingPlacement:
		return "pick shelf"
	case PhasePlacing:
		return "placing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// StatusKind colors the status line.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "info"
	}
}

// offlineThreshold is the number of consecutive transport failures after
// which the catalog is reported unreachable.
const offlineThreshold = 2

// Snapshot is the session state the view renders.
type Snapshot struct {
	Phase      Phase
	ScanText   string
	Status     string
	StatusKind StatusKind

	Book            *catalog.Book
	Shelves         []catalog.ShelfOption
	ShelvesLoaded   bool
	SelectedShelfID int64
	Placing         bool

	LastError           error
	ConsecutiveFailures int // transport failures in a row
	UpdatedAt           time.Time
}

// IsOffline returns true when the catalog has been unreachable for several
// requests in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= offlineThreshold
}

// SelectedShelf returns the selected option when it is still in the list.
func (s Snapshot) SelectedShelf() (catalog.ShelfOption, bool) {
	if s.SelectedShelfID == 0 {
		return catalog.ShelfOption{}, false
	}
	return catalog.FindShelf(s.Shelves, s.SelectedShelfID)
}

// SetStatus sets the status line and its kind.
func (s *Snapshot) SetStatus(kind StatusKind, text string) {
	s.Status = text
	s.StatusKind = kind
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewStore returns a Store whose UpdatedAt stamps come from now. A nil now
// uses time.Now.
func NewStore(now func() time.Time) *Store {
	return &Store{now: now}
}

// Update applies fn to the snapshot under the write lock and returns a copy
// of the result.
func (s *Store) Update(fn func(*Snapshot)) Snapshot {
	snap, _ := s.UpdateIf(func(work *Snapshot) bool {
		fn(work)
		return true
	})
	return snap
}

// UpdateIf applies fn to a working copy and commits it only when fn returns
// true. The returned snapshot reflects the stored state either way.
func (s *Store) UpdateIf(fn func(*Snapshot) bool) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := clone(s.snapshot)
	if !fn(&work) {
		return clone(s.snapshot), false
	}
	work.UpdatedAt = s.clock()
	s.snapshot = work
	return clone(s.snapshot), true
}

// RecordResult tracks catalog reachability. Transport failures count toward
// IsOffline; any answer from the server resets the counter.
func (s *Store) RecordResult(err error, transport bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil && transport {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = err
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snapshot)
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func clone(src Snapshot) Snapshot {
	dup := src
	dup.Book = src.Book.Clone()
	dup.Shelves = cloneShelves(src.Shelves)
	if src.LastError != nil {
		dup.LastError = fmt.Errorf("%w", src.LastError)
	}
	return dup
}

func cloneShelves(items []catalog.ShelfOption) []catalog.ShelfOption {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.ShelfOption, len(items))
	copy(dup, items)
	return dup
}
