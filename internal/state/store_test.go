package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

func sampleHome() zeuzapi.Home {
	return zeuzapi.Home{
		Featured:      []zeuzapi.Novel{{ID: "f1", Chapters: []zeuzapi.Chapter{{Number: 1}}}, {ID: "f2"}},
		Trending:      []zeuzapi.Novel{{ID: "t1"}},
		LatestUpdates: []zeuzapi.Novel{{ID: "u1"}},
		NewArrivals:   []zeuzapi.Novel{{ID: "n1"}, {ID: "n2"}},
	}
}

func TestStore_UpdateHomeAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.UpdateHome(sampleHome(), "day", nil)

	snap := s.Snapshot()
	if !snap.HasHome || len(snap.Featured) != 2 || snap.Featured[0].ID != "f1" {
		t.Fatalf("snapshot featured = %#v, want f1,f2", snap.Featured)
	}
	if snap.TrendingRange != "day" || len(snap.NewArrivals) != 2 {
		t.Fatalf("snapshot = %#v, want day range and 2 arrivals", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.Version != 1 {
		t.Fatalf("Version = %d, want 1", snap.Version)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Featured[0].ID = "changed"
	snap.Featured[0].Chapters[0].Number = 99
	snap2 := s.Snapshot()
	if snap2.Featured[0].ID != "f1" || snap2.Featured[0].Chapters[0].Number != 1 {
		t.Fatalf("Snapshot should clone novels; got %#v", snap2.Featured[0])
	}
}

func TestStore_VersionOnlyBumpsOnChange(t *testing.T) {
	var s Store

	s.UpdateHome(sampleHome(), "day", nil)
	s.UpdateHome(sampleHome(), "day", nil)
	if v := s.Snapshot().Version; v != 1 {
		t.Fatalf("Version after identical update = %d, want 1", v)
	}

	home := sampleHome()
	home.Featured = home.Featured[:1]
	s.UpdateHome(home, "day", nil)
	if v := s.Snapshot().Version; v != 2 {
		t.Fatalf("Version after featured change = %d, want 2", v)
	}

	s.UpdateTrending([]zeuzapi.Novel{{ID: "t1"}}, "week", nil)
	snap := s.Snapshot()
	if snap.Version != 3 || snap.TrendingRange != "week" {
		t.Fatalf("after range change: Version=%d range=%q, want 3/week", snap.Version, snap.TrendingRange)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.UpdateHome(sampleHome(), "day", nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.UpdateHome(zeuzapi.Home{}, "week", origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Featured, prev.Featured) || snap.TrendingRange != "day" {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Featured, prev.Featured)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if snap.Version != prev.Version {
		t.Fatalf("Version changed on error: %d -> %d", prev.Version, snap.Version)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store: failures=%d offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.UpdateHome(zeuzapi.Home{}, "day", errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v after %d failures, want %v", snap.IsOffline(), i+1, wantOffline)
		}
	}

	// Success resets counter
	s.UpdateTrending(nil, "day", nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_UpdateUser(t *testing.T) {
	var s Store

	history := []zeuzapi.HistoryEntry{{NovelID: "a", Progress: 30}, {NovelID: "b"}}
	feed := &zeuzapi.NotificationFeed{
		Notifications: []zeuzapi.Notification{{ID: "x"}},
		TotalUnread:   150,
	}
	s.UpdateUser(history, feed, nil)

	snap := s.Snapshot()
	if snap.LastRead == nil || snap.LastRead.NovelID != "a" {
		t.Fatalf("LastRead = %#v, want first history entry", snap.LastRead)
	}
	if snap.UnreadCount != 150 || len(snap.Notifications) != 1 {
		t.Fatalf("notifications = %d/%d, want 150 unread, 1 item", snap.UnreadCount, len(snap.Notifications))
	}
	v := snap.Version

	// Notifications only: history stays.
	s.UpdateUser(nil, &zeuzapi.NotificationFeed{TotalUnread: 2}, nil)
	snap = s.Snapshot()
	if snap.LastRead == nil || snap.UnreadCount != 2 || snap.Version != v+1 {
		t.Fatalf("after feed-only update: %#v", snap)
	}

	// An empty history clears the continue-reading card.
	s.UpdateUser([]zeuzapi.HistoryEntry{}, nil, nil)
	if snap = s.Snapshot(); snap.LastRead != nil {
		t.Fatalf("LastRead = %#v, want nil after empty history", snap.LastRead)
	}

	s.UpdateUser(nil, nil, zeuzapi.ErrUnauthorized)
	snap = s.Snapshot()
	if !errors.Is(snap.UserError, zeuzapi.ErrUnauthorized) {
		t.Fatalf("UserError = %v, want ErrUnauthorized", snap.UserError)
	}
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("user errors must not count as poll failures")
	}

	snap.LastRead = &zeuzapi.HistoryEntry{NovelID: "mutated"}
	if s.Snapshot().LastRead != nil {
		t.Fatalf("Snapshot should not share LastRead")
	}
}

func TestStore_MarkNotificationsRead(t *testing.T) {
	var s Store
	s.UpdateUser(nil, &zeuzapi.NotificationFeed{TotalUnread: 4}, nil)
	v := s.Snapshot().Version

	s.MarkNotificationsRead()
	snap := s.Snapshot()
	if snap.UnreadCount != 0 || snap.Version != v+1 {
		t.Fatalf("after MarkNotificationsRead: unread=%d version=%d", snap.UnreadCount, snap.Version)
	}
	s.MarkNotificationsRead()
	if s.Snapshot().Version != v+1 {
		t.Fatalf("second MarkNotificationsRead should not bump Version")
	}
}

func TestStore_UpdateHomeListsKeepsTrending(t *testing.T) {
	var s Store
	s.UpdateHome(sampleHome(), "day", nil)
	s.UpdateTrending([]zeuzapi.Novel{{ID: "w1"}, {ID: "w2"}}, "week", nil)
	v := s.Snapshot().Version

	home := sampleHome()
	home.Trending = []zeuzapi.Novel{{ID: "stale"}}
	home.LatestUpdates = []zeuzapi.Novel{{ID: "u2"}}
	s.UpdateHomeLists(home)

	snap := s.Snapshot()
	if snap.TrendingRange != "week" || len(snap.Trending) != 2 || snap.Trending[0].ID != "w1" {
		t.Fatalf("trending = %#v range %q, want the week list", snap.Trending, snap.TrendingRange)
	}
	if snap.LatestUpdates[0].ID != "u2" {
		t.Fatalf("latest = %#v, want u2", snap.LatestUpdates)
	}
	if snap.Version != v+1 {
		t.Fatalf("Version = %d, want %d", snap.Version, v+1)
	}

	s.UpdateHomeLists(home)
	if got := s.Snapshot().Version; got != v+1 {
		t.Fatalf("Version after identical lists = %d, want %d", got, v+1)
	}
}
