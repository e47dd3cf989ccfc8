// Package state provides thread-safe state management for the zeuz TUI.
//
// # Overview
//
// The Store is where background polling meets UI rendering. The poller
// writes home lists, reading history and notifications; the UI reads
// deep-copied snapshots on every refresh tick.
//
//	Producer (Poller):              Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ FetchHome()      │            │                  │
//	│ FetchHistory()   │            │                  │
//	│      ↓           │            │                  │
//	│ store.Update*()  │───────────→│ store.Snapshot() │
//	│      ↓           │  (mutex)   │      ↓           │
//	│  repeat...       │            │  render UI       │
//	└──────────────────┘            └──────────────────┘
//
// # Update Semantics
//
// UpdateHome and UpdateTrending follow the same rule: on error the previous
// lists are kept, LastError and LastUpdated are set and ConsecutiveFailures
// is incremented. On success the lists are replaced and the failure counter
// resets. IsOffline reports two or more consecutive failures.
//
// UpdateUser is separate. History and notifications need a signed-in user,
// so their failures land in UserError and do not affect the offline state.
//
// # Versioning
//
// Version increases only when displayed data actually changes. The UI
// compares it against the last version it rendered and skips rebuilding the
// carousels otherwise, so an unchanged poll never disturbs a running
// auto-advance cycle.
package state
