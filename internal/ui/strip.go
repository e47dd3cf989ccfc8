package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zeuzapp/zeuz/internal/carousel"
)

// settleDelay approximates the time an animated scroll takes to come to rest.
const settleDelay = 250 * time.Millisecond

// settleMsg reports where a strip came to rest after an offset scroll.
type settleMsg struct {
	strip string
	index int
}

// strip is a horizontally scrolling row of equally sized items. Items are
// laid out lazily: only the first measured items have a known position, and
// the window grows as the user scrolls. It implements carousel.View.
type strip struct {
	name     string
	extent   float64 // cells per item, gap included
	count    int
	window   int // items laid out ahead of the viewport
	measured int
	offset   float64

	pending []tea.Cmd
}

var _ carousel.View = (*strip)(nil)

func newStrip(name string, extent float64, window int) *strip {
	if window < 1 {
		window = 1
	}
	return &strip{name: name, extent: extent, window: window}
}

// ScrollToIndex jumps to index when it has been laid out. Otherwise it
// reports an IndexScrollError carrying the average measured extent.
func (s *strip) ScrollToIndex(index int, animated bool) error {
	if index < 0 || index >= s.count || index >= s.measured {
		avg := 0.0
		if s.measured > 0 {
			avg = s.extent
		}
		return &carousel.IndexScrollError{Index: index, AverageItemExtent: avg}
	}
	s.offset = float64(index) * s.extent
	s.measure(index)
	return nil
}

// ScrollToOffset always succeeds. Offsets past either end are clamped. The
// strip then settles on the nearest item and reports it with a settleMsg.
func (s *strip) ScrollToOffset(offset float64, animated bool) {
	s.offset = s.clamp(offset)
	index := s.Index()
	s.measure(index)

	name := s.name
	if animated {
		s.pending = append(s.pending, tea.Tick(settleDelay, func(time.Time) tea.Msg {
			return settleMsg{strip: name, index: index}
		}))
		return
	}
	s.pending = append(s.pending, func() tea.Msg {
		return settleMsg{strip: name, index: index}
	})
}

// SetCount replaces the number of items. The measured window and offset
// shrink with the list; a fresh list lays out its first window.
func (s *strip) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	s.count = n
	if s.measured > n {
		s.measured = n
	}
	if s.measured == 0 {
		s.measured = min(n, s.window)
	}
	s.offset = s.clamp(s.offset)
}

// SetExtent changes the item size, keeping the current item in place.
func (s *strip) SetExtent(extent float64) {
	if extent <= 0 || extent == s.extent {
		return
	}
	index := s.Index()
	s.extent = extent
	s.offset = s.clamp(float64(index) * extent)
}

// Index returns the item nearest the current offset.
func (s *strip) Index() int {
	if s.extent <= 0 || s.count == 0 {
		return 0
	}
	i := int(math.Round(s.offset / s.extent))
	return max(0, min(i, s.count-1))
}

// Visible returns the first item index and how many items fit in width
// cells, never more than remain.
func (s *strip) Visible(width int) (first, n int) {
	if s.count == 0 || s.extent <= 0 {
		return 0, 0
	}
	first = int(s.offset / s.extent)
	n = max(1, int(float64(width)/s.extent))
	if first+n > s.count {
		n = s.count - first
	}
	return first, n
}

// Drain returns queued settle commands.
func (s *strip) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *strip) measure(index int) {
	s.measured = max(s.measured, min(s.count, index+s.window+1))
}

func (s *strip) clamp(offset float64) float64 {
	if s.count == 0 || offset < 0 {
		return 0
	}
	limit := float64(s.count-1) * s.extent
	return math.Min(offset, limit)
}
