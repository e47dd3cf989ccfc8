package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"unknown", time.Time{}, "soon"},
		{"future", now.Add(time.Hour), "just now"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"one day", now.Add(-25 * time.Hour), "1 day ago"},
		{"months", now.Add(-65 * 24 * time.Hour), "2 months ago"},
		{"years", now.Add(-800 * 24 * time.Hour), "2 years ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, timeAgo(tc.at, now))
		})
	}
}

func TestUnreadBadge(t *testing.T) {
	cases := map[int]string{
		-1:  "",
		0:   "",
		7:   "7",
		99:  "99",
		100: "99+",
		540: "99+",
	}
	for in, want := range cases {
		assert.Equal(t, want, unreadBadge(in), "unreadBadge(%d)", in)
	}
}

func TestPageDots(t *testing.T) {
	assert.Empty(t, pageDots(0, 1))
	assert.Equal(t, "○ ● ○", pageDots(1, 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "padded", truncate("  padded  ", 20))
	assert.Equal(t, "abc...", truncate("abcdefghij", 6))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "رواية...", truncate("رواية طويلة جدا", 8), "counts runes")
}

func TestTruncateMiddle(t *testing.T) {
	assert.Empty(t, truncateMiddle("  ", 10))
	assert.Equal(t, "https…abcdef", truncateMiddle("https://zeuz.app/novel/abcdef", 12))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4), "padRight never cuts")
}
