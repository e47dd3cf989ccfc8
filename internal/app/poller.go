package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zeuzapp/zeuz/internal/state"
	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

const (
	defaultPollInterval = 60 * time.Second
	maxBackoff          = 10 * time.Minute
)

// Poller refreshes the store from the API in the background.
type Poller struct {
	store    *state.Store
	client   zeuzapi.Fetcher
	interval time.Duration
	logger   zerolog.Logger
	trigger  chan struct{}

	mu        sync.Mutex
	timeRange string
}

// NewPoller builds a poller. A non-positive interval uses the default.
func NewPoller(store *state.Store, client zeuzapi.Fetcher, interval time.Duration, timeRange string, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		store:     store,
		client:    client,
		interval:  interval,
		logger:    logger,
		trigger:   make(chan struct{}, 1),
		timeRange: timeRange,
	}
}

// Start launches the background goroutine and returns immediately. The loop
// waits longer after consecutive failures, see calculateBackoff.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		for {
			p.refresh(ctx)
			wait := calculateBackoff(p.store.Snapshot().ConsecutiveFailures, p.interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-p.trigger:
				timer.Stop()
			case <-timer.C:
			}
		}
	}()
}

// Refresh asks the background loop to poll now. It never blocks.
func (p *Poller) Refresh() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// TimeRange returns the trending window the poller requests.
func (p *Poller) TimeRange() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timeRange
}

// RefreshTrending switches the trending window and reloads that list. A
// result that arrives after another range was selected is dropped.
func (p *Poller) RefreshTrending(ctx context.Context, timeRange string) {
	p.mu.Lock()
	p.timeRange = timeRange
	p.mu.Unlock()

	novels, err := p.client.FetchNovels(ctx, zeuzapi.NovelQuery{Filter: zeuzapi.FilterTrending, TimeRange: timeRange})
	if err != nil {
		p.logger.Warn().Err(err).Str("range", timeRange).Msg("trending refresh failed")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timeRange != timeRange {
		p.logger.Debug().Str("range", timeRange).Str("current", p.timeRange).Msg("stale trending result dropped")
		return
	}
	p.store.UpdateTrending(novels, timeRange, err)
}

// RefreshUser reloads the reading history and notifications. Each call is
// independent; one failing does not skip the other.
func (p *Poller) RefreshUser(ctx context.Context) {
	history, err := p.client.FetchHistory(ctx)
	if err != nil {
		p.logger.Debug().Err(err).Msg("history refresh failed")
		p.store.UpdateUser(nil, nil, err)
	} else {
		p.store.UpdateUser(history, nil, nil)
	}

	feed, err := p.client.FetchNotifications(ctx)
	if err != nil {
		p.logger.Debug().Err(err).Msg("notifications refresh failed")
		p.store.UpdateUser(nil, nil, err)
		return
	}
	p.store.UpdateUser(nil, &feed, nil)
}

// MarkNotificationsRead clears the unread badge locally and on the server.
func (p *Poller) MarkNotificationsRead(ctx context.Context) {
	p.store.MarkNotificationsRead()
	if err := p.client.MarkNotificationsRead(ctx); err != nil {
		p.logger.Debug().Err(err).Msg("mark notifications read failed")
	}
}

func (p *Poller) refresh(ctx context.Context) {
	timeRange := p.TimeRange()
	home, err := p.client.FetchHome(ctx, timeRange)

	// The range lock is held through the store write so a concurrent
	// RefreshTrending cannot slip in between the check and the update.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.store.UpdateHome(zeuzapi.Home{}, timeRange, err)
		p.logger.Warn().Err(err).Msg("home poll failed")
		return
	}
	if p.timeRange != timeRange {
		p.store.UpdateHomeLists(home)
		p.logger.Debug().Str("range", timeRange).Str("current", p.timeRange).Msg("home refreshed, stale trending dropped")
		return
	}
	p.store.UpdateHome(home, timeRange, nil)
	p.logger.Debug().
		Int("featured", len(home.Featured)).
		Int("trending", len(home.Trending)).
		Int("latest", len(home.LatestUpdates)).
		Int("new", len(home.NewArrivals)).
		Msg("home refreshed")
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
