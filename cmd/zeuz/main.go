package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zeuzapp/zeuz/internal/app"
	"github.com/zeuzapp/zeuz/internal/fixtures"
	"github.com/zeuzapp/zeuz/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	root.AddCommand(newFixturesCmd())
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "zeuz: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:           "zeuz",
		Short:         "Browse zeuz novels from the terminal.",
		Long:          "zeuz shows the novel home feed with auto-advancing featured and trending carousels.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/zeuz/config.toml)")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/zeuz/prefs.toml)")
	cmd.Flags().IntVar(&opts.PollEvery, "refresh", 0, "home feed refresh interval in seconds (overrides the config)")
	return cmd
}

func newFixturesCmd() *cobra.Command {
	var (
		addr    string
		seed    int64
		size    int
		catalog string
		write   string
		token   string
		level   string
	)
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Serve a local zeuz API backed by a generated or saved catalog.",
		Long: "fixtures serves the subset of the zeuz API the TUI reads. " +
			"Use --catalog to load a JSON catalog, otherwise one is generated from --seed.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewConsole(level)
			fs := afero.NewOsFs()

			var cat fixtures.Catalog
			if catalog != "" {
				loaded, err := fixtures.LoadFile(fs, catalog)
				if err != nil {
					return err
				}
				cat = loaded
			} else {
				cat = fixtures.Generate(seed, size, time.Now())
			}

			if write != "" {
				if err := fixtures.SaveFile(fs, write, cat); err != nil {
					return err
				}
				logger.Info().Str("path", write).Int("novels", len(cat.Entries)).Msg("catalog written")
			}

			srv := fixtures.NewServer(fixtures.Options{
				Catalog: cat,
				Token:   token,
				Logger:  logging.Component(logger, "fixtures"),
			})
			err := srv.ListenAndServe(cmd.Context(), addr)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the generated catalog")
	cmd.Flags().IntVar(&size, "size", 40, "number of generated novels")
	cmd.Flags().StringVar(&catalog, "catalog", "", "load this JSON catalog instead of generating one")
	cmd.Flags().StringVar(&write, "write", "", "also save the served catalog to this path")
	cmd.Flags().StringVar(&token, "token", "", "bearer token required on per-user endpoints")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level")
	return cmd
}
