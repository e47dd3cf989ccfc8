package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zeuzapp/zeuz/internal/logging"
)

// Options configure the fixtures server.
type Options struct {
	Catalog Catalog
	// Token, when set, is required as a bearer token on the per-user
	// endpoints (history and notifications), matching the real API.
	Token  string
	Logger zerolog.Logger
}

// Server serves the zeuz API contract from an in-memory catalog.
type Server struct {
	mu      sync.RWMutex
	catalog Catalog
	token   string
	logger  zerolog.Logger
}

// NewServer builds a Server.
func NewServer(opts Options) *Server {
	return &Server{
		catalog: opts.Catalog,
		token:   strings.TrimSpace(opts.Token),
		logger:  opts.Logger,
	}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondText(w, "ok")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/novels", s.handleNovels)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Get("/novel/library", s.handleLibrary)
			r.Get("/notifications", s.handleNotifications)
			r.Post("/notifications/read", s.handleMarkRead)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Int("novels", len(s.catalog.Entries)).Msg("fixtures server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleNovels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	filter := q.Get("filter")

	s.mu.RLock()
	novels, ok := s.catalog.Query(filter, q.Get("timeRange"), limit)
	s.mu.RUnlock()
	if !ok {
		respondBadRequest(w, "unknown filter "+strconv.Quote(filter))
		return
	}

	// The real API is inconsistent here: new arrivals come back as a bare
	// array, everything else is wrapped.
	if filter == "latest_added" {
		respondJSON(w, novels)
		return
	}
	respondJSON(w, map[string]any{"novels": novels})
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("type") != "history" {
		respondBadRequest(w, "only type=history is supported")
		return
	}
	s.mu.RLock()
	history := s.catalog.History
	s.mu.RUnlock()
	if history == nil {
		respondJSON(w, []any{})
		return
	}
	respondJSON(w, history)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	respondJSON(w, map[string]any{
		"notifications": s.catalog.Notifications,
		"totalUnread":   s.catalog.Unread,
	})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.catalog.Unread = 0
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			respondText(w, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		respondText(w, err.Error())
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	respondText(w, message)
}

func respondText(w http.ResponseWriter, body string) {
	_, _ = w.Write([]byte(body))
}
