package zeuzapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the API rejects the configured token.
var ErrUnauthorized = errors.New("unauthorized")

// Fetcher defines the calls the home screen makes. It is implemented by
// *Client and can be faked in tests.
type Fetcher interface {
	FetchHome(ctx context.Context, timeRange string) (Home, error)
	FetchNovels(ctx context.Context, query NovelQuery) ([]Novel, error)
	FetchHistory(ctx context.Context) ([]HistoryEntry, error)
	FetchNotifications(ctx context.Context) (NotificationFeed, error)
	MarkNotificationsRead(ctx context.Context) error
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the zeuz HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultAPIURL    = "127.0.0.1:8080"
	defaultUserAgent = "zeuz-tui/0.1"
	requestTimeout   = 8 * time.Second
)

// Filters understood by /api/novels.
const (
	FilterFeatured      = "featured"
	FilterTrending      = "trending"
	FilterLatestUpdates = "latest_updates"
	FilterLatestAdded   = "latest_added"
)

// NewClient builds a Client for the API at apiURL. A bare host:port is
// treated as http.
func NewClient(apiURL, token string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     strings.TrimSpace(token),
	}, nil
}

// NovelQuery configures /api/novels requests.
type NovelQuery struct {
	Filter    string
	Limit     int
	TimeRange string
}

// FetchNovels retrieves one filtered novel list.
func (c *Client) FetchNovels(ctx context.Context, query NovelQuery) ([]Novel, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if filter := strings.TrimSpace(query.Filter); filter != "" {
		values.Set("filter", filter)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if tr := strings.TrimSpace(query.TimeRange); tr != "" {
		values.Set("timeRange", tr)
	}
	rel := &url.URL{Path: "/api/novels", RawQuery: values.Encode()}
	var payload novelList
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return []Novel(payload), nil
}

// Home bundles the four novel lists shown on the home screen.
type Home struct {
	Featured      []Novel
	Trending      []Novel
	LatestUpdates []Novel
	NewArrivals   []Novel
}

// FetchHome loads featured, trending, latest updates and new arrivals, in
// that order. The first failure aborts the load.
func (c *Client) FetchHome(ctx context.Context, timeRange string) (Home, error) {
	if c == nil {
		return Home{}, fmt.Errorf("client is nil")
	}
	var home Home
	steps := []struct {
		name  string
		query NovelQuery
		dest  *[]Novel
	}{
		{"featured", NovelQuery{Filter: FilterFeatured, Limit: 5}, &home.Featured},
		{"trending", NovelQuery{Filter: FilterTrending, TimeRange: timeRange}, &home.Trending},
		{"latest updates", NovelQuery{Filter: FilterLatestUpdates, Limit: 24}, &home.LatestUpdates},
		{"new arrivals", NovelQuery{Filter: FilterLatestAdded}, &home.NewArrivals},
	}
	for _, step := range steps {
		novels, err := c.FetchNovels(ctx, step.query)
		if err != nil {
			return Home{}, fmt.Errorf("fetch %s: %w", step.name, err)
		}
		*step.dest = novels
	}
	return home, nil
}

// FetchHistory retrieves the reading history, most recent first.
func (c *Client) FetchHistory(ctx context.Context) ([]HistoryEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/novel/library", RawQuery: url.Values{"type": {"history"}}.Encode()}
	var payload []HistoryEntry
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchNotifications retrieves the notification feed and unread total.
func (c *Client) FetchNotifications(ctx context.Context) (NotificationFeed, error) {
	if c == nil {
		return NotificationFeed{}, fmt.Errorf("client is nil")
	}
	var payload NotificationFeed
	if err := c.do(ctx, http.MethodGet, "/api/notifications", &payload); err != nil {
		return NotificationFeed{}, err
	}
	return payload, nil
}

// MarkNotificationsRead clears the unread counter on the server.
func (c *Client) MarkNotificationsRead(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPost, "/api/notifications/read", nil)
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("api %s: %w", rel.Path, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// WebURL returns the public page for a novel under webBase.
func WebURL(webBase, novelID string) string {
	base := strings.TrimRight(strings.TrimSpace(webBase), "/")
	return base + "/novel/" + url.PathEscape(novelID)
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
