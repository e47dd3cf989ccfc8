package state

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Featured      []zeuzapi.Novel
	Trending      []zeuzapi.Novel
	TrendingRange string
	LatestUpdates []zeuzapi.Novel
	NewArrivals   []zeuzapi.Novel
	HasHome       bool

	LastRead      *zeuzapi.HistoryEntry
	Notifications []zeuzapi.Notification
	UnreadCount   int
	UserError     error // last history/notifications failure; does not count as offline

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int    // Number of consecutive home poll failures
	Version             uint64 // Bumped whenever displayed data changes
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateHome replaces the four home lists. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) UpdateHome(home zeuzapi.Home, timeRange string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.recordFailureLocked(err)
		return
	}

	changed := s.snapshot.TrendingRange != timeRange ||
		!sameNovels(s.snapshot.Trending, home.Trending)
	s.snapshot.Trending = cloneNovels(home.Trending)
	s.snapshot.TrendingRange = timeRange
	s.updateListsLocked(home, changed)
}

// UpdateHomeLists replaces the featured, latest and new arrival lists but
// keeps the current trending list and range. The poller uses it when the
// trending range changed while a home poll was in flight.
func (s *Store) UpdateHomeLists(home zeuzapi.Home) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateListsLocked(home, false)
}

func (s *Store) updateListsLocked(home zeuzapi.Home, changed bool) {
	changed = changed ||
		!s.snapshot.HasHome ||
		!sameNovels(s.snapshot.Featured, home.Featured) ||
		!sameNovels(s.snapshot.LatestUpdates, home.LatestUpdates) ||
		!sameNovels(s.snapshot.NewArrivals, home.NewArrivals)

	s.snapshot.Featured = cloneNovels(home.Featured)
	s.snapshot.LatestUpdates = cloneNovels(home.LatestUpdates)
	s.snapshot.NewArrivals = cloneNovels(home.NewArrivals)
	s.snapshot.HasHome = true
	s.recordSuccessLocked(changed)
}

// UpdateTrending replaces only the trending list, used when the time range
// changes.
func (s *Store) UpdateTrending(novels []zeuzapi.Novel, timeRange string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.recordFailureLocked(err)
		return
	}

	changed := s.snapshot.TrendingRange != timeRange || !sameNovels(s.snapshot.Trending, novels)
	s.snapshot.Trending = cloneNovels(novels)
	s.snapshot.TrendingRange = timeRange
	s.recordSuccessLocked(changed)
}

// UpdateUser records the reading history and notification feed. Either may
// be nil when only one was fetched. Failures are kept in UserError and never
// mark the store offline, since they usually mean "not signed in".
func (s *Store) UpdateUser(history []zeuzapi.HistoryEntry, feed *zeuzapi.NotificationFeed, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.UserError = err
		return
	}
	s.snapshot.UserError = nil

	changed := false
	if history != nil {
		var last *zeuzapi.HistoryEntry
		if len(history) > 0 {
			entry := history[0]
			last = &entry
		}
		if !reflect.DeepEqual(s.snapshot.LastRead, last) {
			s.snapshot.LastRead = last
			changed = true
		}
	}
	if feed != nil {
		if s.snapshot.UnreadCount != feed.TotalUnread || !reflect.DeepEqual(s.snapshot.Notifications, feed.Notifications) {
			changed = true
		}
		s.snapshot.Notifications = cloneNotifications(feed.Notifications)
		s.snapshot.UnreadCount = feed.TotalUnread
	}
	if changed {
		s.snapshot.Version++
	}
}

// MarkNotificationsRead zeroes the unread badge after the dropdown is opened.
func (s *Store) MarkNotificationsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.UnreadCount != 0 {
		s.snapshot.UnreadCount = 0
		s.snapshot.Version++
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Featured = cloneNovels(s.snapshot.Featured)
	snap.Trending = cloneNovels(s.snapshot.Trending)
	snap.LatestUpdates = cloneNovels(s.snapshot.LatestUpdates)
	snap.NewArrivals = cloneNovels(s.snapshot.NewArrivals)
	snap.Notifications = cloneNotifications(s.snapshot.Notifications)
	if s.snapshot.LastRead != nil {
		entry := *s.snapshot.LastRead
		snap.LastRead = &entry
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	if s.snapshot.UserError != nil {
		snap.UserError = fmt.Errorf("%w", s.snapshot.UserError)
	}
	return snap
}

func (s *Store) recordFailureLocked(err error) {
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

func (s *Store) recordSuccessLocked(changed bool) {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	if changed {
		s.snapshot.Version++
	}
}

func sameNovels(a, b []zeuzapi.Novel) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || reflect.DeepEqual(a, b)
}

func cloneNovels(items []zeuzapi.Novel) []zeuzapi.Novel {
	if len(items) == 0 {
		return nil
	}
	dup := make([]zeuzapi.Novel, len(items))
	for i, n := range items {
		dup[i] = n
		if len(n.Chapters) > 0 {
			dup[i].Chapters = append([]zeuzapi.Chapter(nil), n.Chapters...)
		}
	}
	return dup
}

func cloneNotifications(items []zeuzapi.Notification) []zeuzapi.Notification {
	if len(items) == 0 {
		return nil
	}
	dup := make([]zeuzapi.Notification, len(items))
	copy(dup, items)
	return dup
}
