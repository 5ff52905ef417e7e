// Package worker provides the local HTTP API for promptdeck.
package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/thebtf/promptdeck/internal/catalog"
	"github.com/thebtf/promptdeck/internal/config"
	"github.com/thebtf/promptdeck/internal/engine"
	"github.com/thebtf/promptdeck/internal/history"
	"github.com/thebtf/promptdeck/internal/slot"
	"github.com/thebtf/promptdeck/internal/suggest"
	"github.com/thebtf/promptdeck/internal/telemetry"
	"github.com/thebtf/promptdeck/internal/watcher"
	"github.com/thebtf/promptdeck/internal/worker/sse"
	"github.com/thebtf/promptdeck/pkg/models"
)

const shutdownTimeout = 5 * time.Second

// Options customizes service construction.
type Options struct {
	Version string
	Slot    slot.Slot // overrides the backend selected by config
	Catalog *catalog.Registry
	Clock   func() time.Time
}

// Service is the promptdeck worker. It owns the current history list and
// serializes every mutation of it.
type Service struct {
	version        string
	config         *config.Config
	slot           slot.Slot
	store          *history.Store
	engine         *engine.Engine
	catalog        *catalog.Registry
	sseBroadcaster *sse.Broadcaster
	router         chi.Router
	server         *http.Server
	now            func() time.Time
	startTime      time.Time

	mu       sync.Mutex
	history  models.HistoryList
	watchers []*watcher.Watcher
	closed   bool

	ready        atomic.Bool
	shutdownOnce sync.Once
	shutdownErr  error
}

// New builds a Service from cfg and loads the persisted history.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Service, error) {
	s := opts.Slot
	if s == nil {
		var err error
		s, err = slot.Open(ctx, slot.OptionsFromConfig(cfg))
		if err != nil {
			return nil, err
		}
	}

	reg := opts.Catalog
	if reg == nil {
		var err error
		reg, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	store := history.NewStore(s, cfg.SlotName)
	eng := engine.New(store,
		engine.WithClock(now),
		engine.WithGenerator(suggest.Generator{Enhanced: cfg.EnhancedSuggestions}),
		engine.WithMetrics(telemetry.Global()),
	)

	list, err := eng.Load(ctx)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("load history: %w", err)
	}

	svc := &Service{
		version:        opts.Version,
		config:         cfg,
		slot:           s,
		store:          store,
		engine:         eng,
		catalog:        reg,
		sseBroadcaster: sse.NewBroadcaster(),
		router:         chi.NewRouter(),
		now:            now,
		startTime:      now(),
		history:        list,
	}
	svc.setupRoutes()
	svc.server = &http.Server{
		Addr:              net.JoinHostPort(cfg.WorkerHost, strconv.Itoa(cfg.WorkerPort)),
		Handler:           svc.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Int("records", len(list)).
		Str("storage", cfg.Storage).
		Str("slot", store.SlotName()).
		Msg("History loaded")

	return svc, nil
}

func (s *Service) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RealIP)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Post("/suggestions", s.handlePreview)
		r.Post("/prompts", s.handleSubmit)
		r.Get("/history", s.handleHistory)
		r.Delete("/history", s.handleClearHistory)
		r.Delete("/history/{id}", s.handleDeleteRecord)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/events", s.sseBroadcaster.HandleSSE)
	})
}

// Handler returns the HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Service) Addr() string {
	return s.server.Addr
}

// Run serves HTTP and watches for external changes until ctx is cancelled
// or the listener fails.
func (s *Service) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	// Watchers are registered before any goroutine can reach Shutdown.
	s.startWatchers(gctx)
	s.ready.Store(true)

	g.Go(func() error {
		log.Info().Str("addr", s.server.Addr).Str("version", s.version).Msg("Worker listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown stops watchers, drains the HTTP server and closes the slot.
// Safe to call more than once.
func (s *Service) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.ready.Store(false)

		s.mu.Lock()
		s.closed = true
		watchers := s.watchers
		s.watchers = nil
		s.mu.Unlock()

		for _, w := range watchers {
			if err := w.Stop(); err != nil {
				log.Warn().Err(err).Msg("Failed to stop watcher")
			}
		}
		var errs []error
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
		}

		s.mu.Lock()
		err := s.store.Close()
		s.mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Errorf("close slot: %w", err))
		}
		s.shutdownErr = errors.Join(errs...)
		log.Info().Msg("Worker stopped")
	})
	return s.shutdownErr
}

// startWatchers reloads history when another process rewrites the file slot
// and reports edits to the settings file.
func (s *Service) startWatchers(ctx context.Context) {
	if f, ok := s.slot.(*slot.File); ok {
		s.addWatcher(f.Path(s.store.SlotName()), func(ev watcher.Event) {
			log.Debug().Str("event", ev.String()).Msg("History slot changed on disk")
			s.reload(ctx)
		})
	}

	s.addWatcher(config.SettingsPath(), func(ev watcher.Event) {
		log.Info().
			Str("event", ev.String()).
			Str("path", config.SettingsPath()).
			Msg("Settings changed; restart the worker to apply")
	})
}

func (s *Service) addWatcher(path string, onEvent func(watcher.Event)) {
	w, err := watcher.New(path, onEvent)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to create watcher")
		return
	}
	if err := w.Start(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to start watcher")
		_ = w.Stop()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = w.Stop()
		return
	}
	s.watchers = append(s.watchers, w)
}

// reload replaces the in-memory list with the persisted one if they differ.
func (s *Service) reload(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	list, err := s.engine.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		log.Warn().Err(err).Msg("Failed to reload history")
		return
	}
	changed := !sameHistory(s.history, list)
	if changed {
		s.history = list
	}
	s.mu.Unlock()

	if changed {
		log.Info().Int("records", len(list)).Msg("History reloaded")
		s.publish("reload", 0, len(list))
	}
}

func (s *Service) publish(op string, id int64, count int) {
	s.sseBroadcaster.Broadcast(sse.Event{
		Type:    "history",
		Payload: historyEvent{Op: op, ID: id, Count: count},
	})
}

func sameHistory(a, b models.HistoryList) bool {
	ea, err := history.Encode(a)
	if err != nil {
		return false
	}
	eb, err := history.Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}
