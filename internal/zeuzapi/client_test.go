package zeuzapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIURL)
	}

	u, err = parseBaseURL("https://api.example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchHomeQueriesEachListInOrder(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		queries []url.Values
		auth    string
		agent   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/novels" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		queries = append(queries, r.URL.Query())
		auth = r.Header.Get("Authorization")
		agent = r.Header.Get("User-Agent")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		filter := r.URL.Query().Get("filter")
		novel := Novel{ID: filter + "-1", Title: filter}
		// Featured comes back wrapped, the rest as bare arrays.
		if filter == FilterFeatured {
			_ = json.NewEncoder(w).Encode(map[string]any{"novels": []Novel{novel}})
			return
		}
		_ = json.NewEncoder(w).Encode([]Novel{novel})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, " secret ")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	home, err := c.FetchHome(ctx, "week")
	if err != nil {
		t.Fatalf("FetchHome returned error: %v", err)
	}
	if len(home.Featured) != 1 || home.Featured[0].ID != "featured-1" {
		t.Fatalf("Featured = %#v, want featured-1", home.Featured)
	}
	if len(home.Trending) != 1 || home.Trending[0].ID != "trending-1" {
		t.Fatalf("Trending = %#v, want trending-1", home.Trending)
	}
	if len(home.LatestUpdates) != 1 || home.LatestUpdates[0].ID != "latest_updates-1" {
		t.Fatalf("LatestUpdates = %#v, want latest_updates-1", home.LatestUpdates)
	}
	if len(home.NewArrivals) != 1 || home.NewArrivals[0].ID != "latest_added-1" {
		t.Fatalf("NewArrivals = %#v, want latest_added-1", home.NewArrivals)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 4 {
		t.Fatalf("got %d requests, want 4", len(queries))
	}
	want := []struct{ filter, limit, timeRange string }{
		{"featured", "5", ""},
		{"trending", "", "week"},
		{"latest_updates", "24", ""},
		{"latest_added", "", ""},
	}
	for i, w := range want {
		q := queries[i]
		if q.Get("filter") != w.filter || q.Get("limit") != w.limit || q.Get("timeRange") != w.timeRange {
			t.Fatalf("request %d query = %v, want filter=%s limit=%q timeRange=%q", i, q, w.filter, w.limit, w.timeRange)
		}
	}
	if auth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want Bearer secret", auth)
	}
	if !strings.HasPrefix(agent, "zeuz-tui/") {
		t.Fatalf("User-Agent = %q, want zeuz-tui/*", agent)
	}
}

func TestClient_HistoryAndNotifications(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/novel/library":
			if r.URL.Query().Get("type") != "history" {
				http.Error(w, "bad type", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`[{"novelId":"n1","title":"First","lastChapterId":12,"lastChapterTitle":"Dawn","progress":40}]`))
		case "/api/notifications":
			_, _ = w.Write([]byte(`{"notifications":[{"_id":"x","novelId":"n1","title":"First","lastChapterNumber":13}],"totalUnread":120}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	history, err := c.FetchHistory(context.Background())
	if err != nil {
		t.Fatalf("FetchHistory returned error: %v", err)
	}
	if len(history) != 1 || history[0].LastChapterID != 12 || history[0].ProgressRatio() != 0.4 {
		t.Fatalf("FetchHistory = %#v, want one entry at chapter 12, 40%%", history)
	}

	feed, err := c.FetchNotifications(context.Background())
	if err != nil {
		t.Fatalf("FetchNotifications returned error: %v", err)
	}
	if feed.TotalUnread != 120 || len(feed.Notifications) != 1 || feed.Notifications[0].Key() != "n1" {
		t.Fatalf("FetchNotifications = %#v, want 120 unread and one item for n1", feed)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want none without a token", gotAuth)
	}
}

func TestClient_HTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/notifications":
			http.Error(w, "login", http.StatusUnauthorized)
		case "/api/novel/library":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/api/novels":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "stale")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchNotifications(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("FetchNotifications error = %v, want ErrUnauthorized", err)
	}

	_, err = c.FetchHistory(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchHistory error = %v, want decode response error", err)
	}

	_, err = c.FetchHome(context.Background(), "day")
	if err == nil || !strings.Contains(err.Error(), "fetch featured") || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchHome error = %v, want featured status 500 error", err)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchNovels(context.Background(), NovelQuery{}); err == nil {
		t.Fatalf("FetchNovels on nil client returned nil error")
	}
	if _, err := c.FetchNotifications(context.Background()); err == nil {
		t.Fatalf("FetchNotifications on nil client returned nil error")
	}
}

func TestWebURL(t *testing.T) {
	if got := WebURL("https://zeuz.app/", "abc 1"); got != "https://zeuz.app/novel/abc%201" {
		t.Fatalf("WebURL = %q", got)
	}
}
