package app

import (
	"context"
	"fmt"
	"time"

	"github.com/zeuzapp/zeuz/internal/config"
	"github.com/zeuzapp/zeuz/internal/logging"
	"github.com/zeuzapp/zeuz/internal/prefs"
	"github.com/zeuzapp/zeuz/internal/state"
	"github.com/zeuzapp/zeuz/internal/ui"
	"github.com/zeuzapp/zeuz/internal/zeuzapi"
)

// Options configure the zeuz application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/zeuz/prefs.toml
	PollEvery  int    // seconds; zero uses refresh_seconds from the config
}

// Run boots the zeuz TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := zeuzapi.NewClient(cfg.APIURL, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}

	interval := cfg.RefreshInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logger.Info().
		Str("api", cfg.APIURL).
		Bool("signed_in", cfg.Token != "").
		Dur("refresh", interval).
		Msg("zeuz starting")

	poller := NewPoller(store, client, interval, userPrefs.TrendingRange, logging.Component(logger, "poller"))
	poller.Start(ctx)

	uiOpts := ui.Options{
		Context:       ctx,
		Store:         store,
		Refresher:     poller,
		Config:        &cfg,
		Logger:        &logger,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
		TrendingRange: userPrefs.TrendingRange,
	}
	err = ui.Run(uiOpts)
	logger.Info().Err(err).Msg("zeuz stopped")
	return err
}
