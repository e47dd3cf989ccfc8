package ui

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeuzapp/zeuz/internal/carousel"
)

func TestTeaClock_FireRunsOnce(t *testing.T) {
	c := newTeaClock()
	calls := 0
	c.AfterFunc(time.Second, func() { calls++ })

	require.Zero(t, calls, "AfterFunc ran the callback synchronously")
	assert.Equal(t, 1, c.Live())
	assert.True(t, c.Fire(1))
	assert.False(t, c.Fire(1), "a timer fires once")
	assert.Equal(t, 1, calls)
	assert.Zero(t, c.Live())
}

func TestTeaClock_StopDropsTick(t *testing.T) {
	c := newTeaClock()
	calls := 0
	timer := c.AfterFunc(time.Second, func() { calls++ })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.False(t, c.Fire(1), "stopped timer fired")
	assert.Zero(t, calls)
}

func TestTeaClock_Drain(t *testing.T) {
	c := newTeaClock()
	assert.Nil(t, c.Drain())

	c.AfterFunc(time.Millisecond, func() {})
	c.AfterFunc(time.Millisecond, func() {})
	assert.NotNil(t, c.Drain())
	assert.Nil(t, c.Drain(), "Drain empties the queue")
}

func TestTeaClock_Now(t *testing.T) {
	c := newTeaClock()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }
	assert.True(t, c.Now().Equal(fixed))
}

func TestTeaClock_DrivesController(t *testing.T) {
	c := newTeaClock()
	view := newStrip("rail", 24, 5)
	view.SetCount(3)

	ctrl := carousel.New[string](carousel.Options{Name: "rail", Clock: c})
	ctrl.Attach(view)
	ctrl.SetItems([]string{"a", "b", "c"})
	require.NoError(t, ctrl.Activate(time.Second, true))

	for i := 0; i < 3; i++ {
		ids := liveIDs(c)
		require.Len(t, ids, 1, "round %d", i)
		c.Fire(ids[0])
	}
	assert.Equal(t, 0, ctrl.State().Index, "index wraps after three ticks")

	ctrl.Deactivate()
	assert.Zero(t, c.Live())
}

// liveIDs returns the ids of scheduled timers in scheduling order.
func liveIDs(c *teaClock) []uint64 {
	ids := make([]uint64, 0, len(c.timers))
	for id := range c.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
