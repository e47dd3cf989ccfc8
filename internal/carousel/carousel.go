package carousel

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidInterval is returned by Activate for a non-positive interval.
var ErrInvalidInterval = errors.New("carousel: interval must be positive")

// Options configure a Controller.
type Options struct {
	// Name identifies the controller in logs ("hero", "rail").
	Name string
	// Cooldown is how long auto-advance stays suppressed after TouchEnd.
	Cooldown time.Duration
	// MinItems is the smallest list that auto-advances. Values below 1 are
	// treated as 1.
	MinItems int
	// ItemExtent is the fallback extent per item used when a failed index
	// scroll carries no estimate of its own.
	ItemExtent float64
	Clock      Clock
	Logger     *zerolog.Logger
}

type scrollKind int

const (
	scrollNone scrollKind = iota
	scrollIndex
)

// scrollRequest is computed under the lock and issued after it is released,
// so views are free to call back into the controller.
type scrollRequest struct {
	kind  scrollKind
	view  View
	index int
}

// Controller advances an index through a list of items on a fixed cadence
// while its surface is active and the user is not interacting with it.
//
// All methods are safe for concurrent use and none of them fail: empty
// lists, missing views and stale timers degrade to no-ops.
type Controller[T any] struct {
	mu sync.Mutex

	name       string
	cooldown   time.Duration
	minItems   int
	itemExtent float64
	clock      Clock
	log        zerolog.Logger

	view          View
	items         []T
	index         int
	active        bool
	suppressed    bool
	cyclic        bool
	interval      time.Duration
	lastAdvanceAt time.Time

	advanceTimer  Timer
	advanceGen    uint64
	cooldownTimer Timer
	cooldownGen   uint64
}

// New returns an idle controller with no items.
func New[T any](opts Options) *Controller[T] {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	minItems := opts.MinItems
	if minItems < 1 {
		minItems = 1
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Controller[T]{
		name:       opts.Name,
		cooldown:   opts.Cooldown,
		minItems:   minItems,
		itemExtent: opts.ItemExtent,
		clock:      clock,
		log:        logger.With().Str("carousel", opts.Name).Logger(),
		index:      -1,
		cyclic:     true,
	}
}

// Name returns the controller's name.
func (c *Controller[T]) Name() string {
	return c.name
}

// Attach binds the controller to a view. Passing nil detaches it; scroll
// requests are then dropped.
func (c *Controller[T]) Attach(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

// SetItems replaces the item list. A current index that no longer fits is
// clamped to the last item.
func (c *Controller[T]) SetItems(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = cloneItems(items)
	n := len(c.items)
	switch {
	case n == 0:
		c.index = -1
	case c.index < 0:
		c.index = 0
	case c.index >= n:
		c.index = n - 1
	}
}

// Activate (re)starts the repeating advance timer. A running timer is
// replaced, never stacked. Pending suppression is left as is.
func (c *Controller[T]) Activate(interval time.Duration, cyclic bool) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopAdvanceLocked()
	c.active = true
	c.cyclic = cyclic
	c.interval = interval
	c.scheduleAdvanceLocked()
	c.log.Debug().Dur("interval", interval).Bool("cyclic", cyclic).Msg("activated")
	return nil
}

// Deactivate cancels both timers and clears suppression. Timers that fire
// anyway are discarded.
func (c *Controller[T]) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopAdvanceLocked()
	c.stopCooldownLocked()
	if c.active {
		c.log.Debug().Msg("deactivated")
	}
	c.active = false
	c.suppressed = false
}

// TouchStart suppresses auto-advance until the cooldown after the next
// TouchEnd elapses.
func (c *Controller[T]) TouchStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopCooldownLocked()
	c.suppressed = true
}

// TouchEnd schedules the end of suppression after the cooldown. While the
// controller is idle suppression ends immediately since no timers may
// outlive an active period.
func (c *Controller[T]) TouchEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopCooldownLocked()
	if !c.active || c.cooldown <= 0 {
		c.suppressed = false
		return
	}
	c.cooldownGen++
	gen := c.cooldownGen
	c.cooldownTimer = c.clock.AfterFunc(c.cooldown, func() { c.releaseSuppression(gen) })
}

// Settled reconciles the current index with where the view came to rest.
func (c *Controller[T]) Settled(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	if n == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	if index != c.index {
		c.index = index
		c.lastAdvanceAt = c.clock.Now()
	}
}

// Tick advances once, exactly as if the advance timer had fired now. It is
// a no-op while idle, suppressed or short of items.
func (c *Controller[T]) Tick() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		c.log.Debug().Msg("tick while idle discarded")
		return
	}
	req := c.advanceLocked()
	c.mu.Unlock()

	c.issue(req)
}

// ScrollToIndexFailed falls back to an offset scroll of extent*index. A
// non-positive extent is replaced with the configured item extent; when
// neither is usable the request is dropped.
func (c *Controller[T]) ScrollToIndexFailed(index int, extent float64) {
	c.mu.Lock()
	view := c.view
	if extent <= 0 {
		extent = c.itemExtent
	}
	c.mu.Unlock()

	if view == nil || index < 0 || extent <= 0 {
		c.log.Debug().Int("index", index).Float64("extent", extent).Msg("offset fallback dropped")
		return
	}
	view.ScrollToOffset(extent*float64(index), true)
}

// State returns a copy of the controller's state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Index:         c.index,
		Len:           len(c.items),
		Active:        c.active,
		Suppressed:    c.suppressed,
		Cyclic:        c.cyclic,
		Interval:      c.interval,
		LastAdvanceAt: c.lastAdvanceAt,
	}
}

// Current returns the item at the current index.
func (c *Controller[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.index < 0 || c.index >= len(c.items) {
		return zero, false
	}
	return c.items[c.index], true
}

// Items returns a copy of the item list.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

func (c *Controller[T]) fire(gen uint64) {
	c.mu.Lock()
	if !c.active || gen != c.advanceGen {
		c.mu.Unlock()
		c.log.Debug().Msg("stale advance timer discarded")
		return
	}
	req := c.advanceLocked()
	c.scheduleAdvanceLocked()
	c.mu.Unlock()

	c.issue(req)
}

func (c *Controller[T]) releaseSuppression(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.cooldownGen {
		return
	}
	c.cooldownTimer = nil
	c.suppressed = false
}

// advanceLocked moves the index forward optimistically; the view is trusted
// to converge and Settled corrects any drift.
func (c *Controller[T]) advanceLocked() scrollRequest {
	if !c.active || c.suppressed {
		return scrollRequest{}
	}
	n := len(c.items)
	if n == 0 || n < c.minItems {
		return scrollRequest{}
	}
	next := c.index + 1
	if next >= n {
		if !c.cyclic {
			return scrollRequest{}
		}
		next = 0
	}
	c.index = next
	c.lastAdvanceAt = c.clock.Now()
	return scrollRequest{kind: scrollIndex, view: c.view, index: next}
}

func (c *Controller[T]) issue(req scrollRequest) {
	if req.kind != scrollIndex || req.view == nil {
		return
	}
	err := req.view.ScrollToIndex(req.index, true)
	if err == nil {
		return
	}
	var scrollErr *IndexScrollError
	if errors.As(err, &scrollErr) {
		c.ScrollToIndexFailed(req.index, scrollErr.AverageItemExtent)
		return
	}
	c.log.Debug().Err(err).Int("index", req.index).Msg("index scroll failed")
	c.ScrollToIndexFailed(req.index, 0)
}

func (c *Controller[T]) scheduleAdvanceLocked() {
	c.advanceGen++
	gen := c.advanceGen
	c.advanceTimer = c.clock.AfterFunc(c.interval, func() { c.fire(gen) })
}

func (c *Controller[T]) stopAdvanceLocked() {
	if c.advanceTimer != nil {
		c.advanceTimer.Stop()
		c.advanceTimer = nil
	}
	c.advanceGen++
}

func (c *Controller[T]) stopCooldownLocked() {
	if c.cooldownTimer != nil {
		c.cooldownTimer.Stop()
		c.cooldownTimer = nil
	}
	c.cooldownGen++
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
