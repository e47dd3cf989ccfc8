package zeuzapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Novel mirrors a novel entry from /api/novels.
type Novel struct {
	ID                string    `json:"_id"`
	Title             string    `json:"title"`
	Author            string    `json:"author"`
	Cover             string    `json:"cover"`
	Status            string    `json:"status"`
	ChaptersCount     int       `json:"chaptersCount"`
	Views             int64     `json:"views"`
	Chapters          []Chapter `json:"chapters"`
	LastChapterUpdate string    `json:"lastChapterUpdate"`
	UpdatedAt         string    `json:"updatedAt"`
}

// Key identifies the novel in carousels and lists.
func (n Novel) Key() string {
	if n.ID != "" {
		return n.ID
	}
	return n.Title
}

// LatestChapter returns the highest-numbered chapter listed on the novel.
func (n Novel) LatestChapter() (Chapter, bool) {
	if len(n.Chapters) == 0 {
		return Chapter{}, false
	}
	best := n.Chapters[0]
	for _, ch := range n.Chapters[1:] {
		if ch.Number > best.Number {
			best = ch
		}
	}
	return best, true
}

// ParsedUpdatedAt returns the most recent chapter update time, falling back
// to the record's updatedAt.
func (n Novel) ParsedUpdatedAt() time.Time {
	if t := parseTime(n.LastChapterUpdate); !t.IsZero() {
		return t
	}
	return parseTime(n.UpdatedAt)
}

// StatusKind returns the normalized publication status.
func (n Novel) StatusKind() StatusKind {
	return ParseStatus(n.Status)
}

// Chapter is a chapter reference embedded in a novel.
type Chapter struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Notification is one entry of the notifications feed.
type Notification struct {
	ID                string `json:"_id"`
	NovelID           string `json:"novelId"`
	Title             string `json:"title"`
	Cover             string `json:"cover"`
	UpdatedAt         string `json:"updatedAt"`
	LastChapterNumber int    `json:"lastChapterNumber"`
}

// Key identifies the notification's novel, used to open it.
func (n Notification) Key() string {
	if n.NovelID != "" {
		return n.NovelID
	}
	return n.ID
}

// ParsedUpdatedAt returns UpdatedAt as time.Time when possible.
func (n Notification) ParsedUpdatedAt() time.Time {
	return parseTime(n.UpdatedAt)
}

// NotificationFeed mirrors /api/notifications.
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	TotalUnread   int            `json:"totalUnread"`
}

// HistoryEntry is one record of the reading history. The first entry is the
// most recently read novel.
type HistoryEntry struct {
	NovelID          string  `json:"novelId"`
	Title            string  `json:"title"`
	Cover            string  `json:"cover"`
	LastChapterID    int     `json:"lastChapterId"`
	LastChapterTitle string  `json:"lastChapterTitle"`
	Progress         float64 `json:"progress"`
}

// ProgressRatio returns Progress as a 0..1 fraction. The API reports a
// percentage.
func (h HistoryEntry) ProgressRatio() float64 {
	p := h.Progress / 100
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// novelList accepts both {"novels": [...]} and a bare array.
type novelList []Novel

func (l *novelList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '[' {
		var items []Novel
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var wrapped struct {
		Novels []Novel `json:"novels"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Novels
	return nil
}

// StatusKind classifies a novel's publication status.
type StatusKind int

const (
	StatusOngoing StatusKind = iota
	StatusCompleted
	StatusStopped
)

// ParseStatus maps the API's status values (Arabic or English) to a kind.
// Unknown values count as ongoing.
func ParseStatus(value string) StatusKind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "مكتملة", "completed", "complete":
		return StatusCompleted
	case "متوقفة", "stopped", "paused", "hiatus":
		return StatusStopped
	}
	return StatusOngoing
}

// Label returns the display label.
func (s StatusKind) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusStopped:
		return "Stopped"
	}
	return "Ongoing"
}

// Color returns the tag colour used by the web and mobile clients.
func (s StatusKind) Color() string {
	switch s {
	case StatusCompleted:
		return "#27ae60"
	case StatusStopped:
		return "#c0392b"
	}
	return "#8e44ad"
}

func (s StatusKind) String() string {
	return strings.ToLower(s.Label())
}

// TimeRanges lists the trending windows in display order.
var TimeRanges = []string{"day", "week", "month"}

// NextTimeRange cycles through TimeRanges.
func NextTimeRange(current string) string {
	for i, r := range TimeRanges {
		if r == current {
			return TimeRanges[(i+1)%len(TimeRanges)]
		}
	}
	return TimeRanges[0]
}

// FormatCount renders large counts compactly (1.2K, 3.4M).
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "K"
	}
	return fmt.Sprintf("%d", n)
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
