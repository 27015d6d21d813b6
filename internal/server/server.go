// Package server serves a compiled article and its activity log to the
// frontend. It also keeps the two backend routes the frontend pings.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/riverfjs/directivemd"
	"github.com/riverfjs/directivemd/internal/activitylog"
	"github.com/riverfjs/directivemd/internal/watch"
)

// Server holds the current article behind an atomic pointer so the watcher
// can swap it while requests are in flight.
type Server struct {
	cfg     Config
	logger  *log.Logger
	opts    []directivemd.Option
	article atomic.Pointer[directivemd.Article]
	now     func() time.Time
}

// New creates a Server. opts are passed to every compile.
func New(cfg Config, logger *log.Logger, opts ...directivemd.Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		opts:   append([]directivemd.Option{directivemd.WithLogger(logger)}, opts...),
		now:    time.Now,
	}
}

// Article returns the current article, or nil before the first compile.
func (s *Server) Article() *directivemd.Article {
	return s.article.Load()
}

// SetArticle replaces the served article.
func (s *Server) SetArticle(a *directivemd.Article) {
	s.article.Store(a)
}

// Reload compiles ArticlePath and swaps it in. The previous article keeps
// being served when compilation fails.
func (s *Server) Reload(ctx context.Context) error {
	a, err := directivemd.CompileFile(ctx, s.cfg.ArticlePath, s.opts...)
	if err != nil {
		return err
	}
	s.article.Store(a)
	s.logger.Info("compiled article",
		"path", s.cfg.ArticlePath,
		"chapters", len(a.Chapters),
		"cues", len(a.Cues),
		"diagnostics", len(a.Diagnostics))
	return nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors(s.cfg.FrontendURL))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/hello", s.handleHello)
	})
	r.Get("/article", s.handleArticleHTML)
	r.Get("/article.json", s.handleArticleJSON)
	r.Get("/agent-log.json", s.handleAgentLog)
	return r
}

// Run compiles the article, optionally starts the watcher and serves until
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		return err
	}

	if s.cfg.Watch {
		w, err := s.startWatcher(ctx)
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("backend server running", "url", "http://localhost"+s.cfg.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// startWatcher recompiles the article on change. The watcher is closed when
// it fails to start.
func (s *Server) startWatcher(ctx context.Context) (*watch.Watcher, error) {
	w, err := watch.New(s.cfg.ArticlePath, s.cfg.Debounce, func(ctx context.Context) {
		if err := s.Reload(ctx); err != nil {
			s.logger.Error("recompile failed", "err", err)
		}
	}, s.logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, fmt.Errorf("watch %s: %w", s.cfg.ArticlePath, err)
	}
	return w, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from backend!"})
}

func (s *Server) handleArticleHTML(w http.ResponseWriter, r *http.Request) {
	a := s.article.Load()
	if a == nil {
		http.Error(w, "article not compiled", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(a.HTML))
}

func (s *Server) handleArticleJSON(w http.ResponseWriter, r *http.Request) {
	a := s.article.Load()
	if a == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "article not compiled"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleAgentLog(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.LogPath)
	if errors.Is(err, os.ErrNotExist) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "agent log not found"})
		return
	}
	if err != nil {
		s.logger.Error("read agent log", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "agent log unreadable"})
		return
	}
	if err := activitylog.Validate(data); err != nil {
		s.logger.Warn("agent log rejected", "path", s.cfg.LogPath, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
