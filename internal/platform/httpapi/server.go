// Package httpapi serves 2048 games as a JSON API over HTTP.
//
// Routes:
//   - GET    /health
//   - POST   /games               start a game, optional {"seed": n}
//   - GET    /games/{id}          current state
//   - POST   /games/{id}/moves    {"direction": "left|right|up|down"}
//   - DELETE /games/{id}          abandon a game
//   - GET    /scores              best finished API games
//
// Game responses carry "won" and "gameOver" as separate grid checks. Unlike
// the engine's move outcome, a won board that has no moves left reports
// "gameOver": true as well.
//
// Each game owns its own engine. Finished games are recorded in the scores
// table under the classic variant id when a store is configured.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// Server bundles the router, the session table and the optional score store.
type Server struct {
	cfg             config.HTTPConfig
	fourProbability float64
	r               *chi.Mux
	sessions        *sessions
	store           *storage.Store
	logger          *log.Logger
}

// New constructs a Server and registers its routes. store may be nil, in
// which case finished games are not recorded and /scores returns 503.
func New(cfg config.HTTPConfig, fourProbability float64, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-api",
		})
	}

	s := &Server{
		cfg:             cfg,
		fourProbability: fourProbability,
		r:               chi.NewRouter(),
		sessions:        newSessions(),
		store:           store,
		logger:          logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	if cfg.RequestTimeout > 0 {
		s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	s.r.Use(jsonContentType)

	s.r.Get("/health", s.handleHealth)
	s.r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Get("/{id}", s.handleGetGame)
		r.Post("/{id}/moves", s.handleMove)
		r.Delete("/{id}", s.handleDeleteGame)
	})
	s.r.Get("/scores", s.handleScores)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.cfg.SessionTTL > 0 {
		go s.sweep(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweep drops idle sessions until ctx is cancelled.
func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.sessions.expire(s.cfg.SessionTTL, now); n > 0 {
				s.logger.Debug("expired idle games", "count", n, "active", s.sessions.len())
			}
		}
	}
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request at debug level with its status and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
