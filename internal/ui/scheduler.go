package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zeuzapp/zeuz/internal/carousel"
)

// timerFiredMsg is delivered when a carousel timer's tick elapses.
type timerFiredMsg struct {
	id uint64
}

// teaClock implements carousel.Clock on top of tea.Tick, so timer callbacks
// run inside Update like every other event. It is not safe for concurrent
// use; only the Update goroutine may touch it.
type teaClock struct {
	now     func() time.Time
	nextID  uint64
	timers  map[uint64]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	clock *teaClock
	id    uint64
	f     func()
}

func newTeaClock() *teaClock {
	return &teaClock{
		now:    time.Now,
		timers: make(map[uint64]*teaTimer),
	}
}

// Now returns the current time.
func (c *teaClock) Now() time.Time {
	return c.now()
}

// AfterFunc registers f and queues a tick command for it. The command only
// reaches the runtime once Drain is called.
func (c *teaClock) AfterFunc(d time.Duration, f func()) carousel.Timer {
	c.nextID++
	id := c.nextID
	t := &teaTimer{clock: c, id: id, f: f}
	c.timers[id] = t
	c.pending = append(c.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

// Fire runs the callback for id. Stopped or already fired timers are
// ignored and Fire reports false.
func (c *teaClock) Fire(id uint64) bool {
	t, ok := c.timers[id]
	if !ok {
		return false
	}
	delete(c.timers, id)
	t.f()
	return true
}

// Drain returns the tick commands queued since the last call.
func (c *teaClock) Drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}

// Live returns the number of timers that are scheduled and not stopped.
func (c *teaClock) Live() int {
	return len(c.timers)
}

// Stop cancels the timer. The tick already in flight still arrives and is
// dropped by Fire.
func (t *teaTimer) Stop() bool {
	if _, ok := t.clock.timers[t.id]; !ok {
		return false
	}
	delete(t.clock.timers, t.id)
	return true
}
