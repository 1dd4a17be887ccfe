// Package server implements the draft-inclusive local serve mode: build,
// watch, rebuild, and serve the rendered site over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// BuildFunc performs one draft-inclusive build into the serve output dir.
type BuildFunc func(ctx context.Context) error

// Server runs the local preview loop.
type Server struct {
	cfg      *config.Config
	outDir   string
	buildFn  BuildFunc
	recorder metrics.Recorder
	registry *prom.Registry

	mu        sync.Mutex // serializes rebuilds
	lastBuild time.Time
}

// New creates a serve-mode server. buildFn is invoked for the initial build
// and every rebuild; outDir is the tree it renders into.
func New(cfg *config.Config, outDir string, buildFn BuildFunc) *Server {
	s := &Server{
		cfg:      cfg,
		outDir:   outDir,
		buildFn:  buildFn,
		recorder: metrics.NoopRecorder{},
	}
	if cfg.Serve.Metrics {
		s.registry = prom.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}
	return s
}

// Run builds once, then serves until ctx is canceled. Content changes and
// the periodic schedule both trigger rebuilds; the schedule exists so
// future-dated posts appear once their publication time passes.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx, "initial"); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	watcher, err := NewWatcher(
		[]string{s.cfg.Content.Dir, s.cfg.Content.StaticDir},
		500*time.Millisecond,
		func() { _ = s.rebuild(ctx, "watch") },
	)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.cfg.RebuildInterval()),
		gocron.NewTask(func() { _ = s.rebuild(ctx, "schedule") }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()

	addr := fmt.Sprintf(":%d", s.cfg.Serve.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Serving blog with drafts", "addr", addr, "output", s.outDir)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// Handler returns the serve-mode HTTP surface: the rendered site at /,
// /healthz, and /metrics when enabled.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.outDir)))
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	last := s.lastBuild
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"last_build": last.UTC().Format(time.RFC3339),
	})
}

// rebuild runs one build, serialized so watcher and scheduler triggers
// cannot overlap.
func (s *Server) rebuild(ctx context.Context, trigger string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobID := uuid.NewString()
	slog.Info("Rebuilding site", "trigger", trigger, "job_id", jobID)

	start := time.Now()
	err := s.buildFn(ctx)
	dur := time.Since(start)
	s.recorder.RecordBuildDuration(dur)

	if err != nil {
		s.recorder.RecordRebuild(trigger, "failure")
		slog.Error("Rebuild failed", "trigger", trigger, "job_id", jobID, "error", err)
		return err
	}

	s.lastBuild = time.Now()
	s.recorder.RecordRebuild(trigger, "success")
	slog.Info("Rebuild finished", "trigger", trigger, "job_id", jobID, "duration", dur)

	if store, err := post.LoadStore(s.cfg.Content.Dir); err == nil {
		s.recorder.SetPostCount(len(store.Posts))
	}
	return nil
}
