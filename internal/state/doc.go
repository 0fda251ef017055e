// Package state holds the scan session state shared between the controller
// and the terminal view.
//
// # Overview
//
// The controller is the only writer. Network results, scans and key presses
// all end up as Store.Update calls; the view only ever sees Snapshot values.
//
//	Controller:                     View:
//	┌──────────────────┐            ┌──────────────────┐
//	│ ImportBook()     │            │                  │
//	│ RefreshShelves() │            │                  │
//	│ PlaceOnShelf()   │            │                  │
//	│      ↓           │            │                  │
//	│ store.Update()   │───────────→│ snapshot → View()│
//	└──────────────────┘  (mutex)   └──────────────────┘
//
// # Snapshots
//
// Snapshot copies the current book and the shelf list, so a value handed to
// the view never changes underneath it. Book, Shelves and LastError are all
// cloned.
//
// # Conditional Updates
//
// UpdateIf lets the controller test and set in one locked step:
//
//	_, ok := store.UpdateIf(func(s *state.Snapshot) bool {
//		if s.Placing {
//			return false
//		}
//		s.Placing = true
//		return true
//	})
//
// When fn returns false nothing it changed is kept.
//
// # Reachability
//
// RecordResult counts consecutive transport failures. IsOffline turns true
// after two in a row and the header shows the catalog as unreachable until a
// request gets any HTTP answer.
//
// # Testing Considerations
//
// The zero Store is ready to use. NewStore takes a clock so tests can assert
// on UpdatedAt.
package state
