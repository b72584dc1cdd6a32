// Package app assembles the diagnosis server from configuration.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"dirok/internal/diagnosis/handler"
	"dirok/internal/diagnosis/metrics"
	"dirok/internal/diagnosis/service"
	"dirok/internal/diagnosis/store/history"
	httpapi "dirok/internal/http"
	"dirok/internal/inference/engine"
	"dirok/internal/knowledgebase"
	"dirok/internal/platform/config"
	"dirok/internal/platform/httpserver"
	platformmetrics "dirok/internal/platform/metrics"
	"dirok/internal/platform/redis"
	"dirok/internal/platform/tracing"
)

const shutdownTimeout = 10 * time.Second

// Server is a fully wired diagnosis server.
type Server struct {
	HTTP    *http.Server
	Service *service.Service

	redis          *redis.Client
	watcher        *knowledgebase.Watcher
	tracerShutdown tracing.ShutdownFunc
	logger         *slog.Logger
}

// New loads the knowledge base, picks a history backend and builds the router.
// A fresh Prometheus registry is used so repeated construction in tests does not collide.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger) (*Server, error) {
	kb, err := knowledgebase.Load(cfg.KnowledgeBasePath)
	if err != nil {
		return nil, err
	}
	symptoms, diseases, rules := kb.Counts()
	logger.InfoContext(ctx, "knowledge base loaded",
		"path", cfg.KnowledgeBasePath,
		"symptoms", symptoms,
		"diseases", diseases,
		"rules", rules,
	)

	tracerShutdown, err := tracing.Setup(ctx, cfg.Tracing, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, errors.Join(err, tracerShutdown(ctx))
	}

	var store history.Store
	health := map[string]httpapi.HealthCheck{}
	if redisClient != nil {
		store = history.NewRedis(redisClient.Client, cfg.HistoryLimit, history.WithKeyPrefix(cfg.Redis.KeyPrefix))
		health["redis"] = redisClient.Health
		logger.InfoContext(ctx, "using redis history store")
	} else {
		store = history.NewInMemory(cfg.HistoryLimit)
		logger.InfoContext(ctx, "using in-memory history store", "limit", cfg.HistoryLimit)
	}

	svc, err := service.New(kb, store,
		service.WithLogger(logger),
		service.WithMetrics(metrics.NewWithRegistry(reg)),
		service.WithResultCache(cfg.ResultCacheSize),
		service.WithEngine(engine.New(
			engine.WithParallelism(cfg.EngineParallelism),
			engine.WithLogger(logger),
		)),
	)
	if err != nil {
		return nil, errors.Join(err, closeRedis(redisClient), tracerShutdown(ctx))
	}

	var watcher *knowledgebase.Watcher
	if cfg.WatchKnowledgeBase && cfg.KnowledgeBasePath != "" {
		watcher, err = knowledgebase.NewWatcher(cfg.KnowledgeBasePath, svc.ReplaceKnowledgeBase,
			knowledgebase.WithWatchLogger(logger))
		if err != nil {
			return nil, errors.Join(err, closeRedis(redisClient), tracerShutdown(ctx))
		}
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:   logger,
		Gatherer: reg,
		Metrics:  platformmetrics.New(reg),
		Health:   health,
		Modules:  []httpapi.Registrar{handler.New(svc, logger)},
	})

	return &Server{
		HTTP:           httpserver.New(cfg.Addr, router),
		Service:        svc,
		redis:          redisClient,
		watcher:        watcher,
		tracerShutdown: tracerShutdown,
		logger:         logger,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully. The
// knowledge-base watcher, when configured, runs for the same lifetime.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchDone := make(chan struct{})
	if s.watcher != nil {
		go func() {
			defer close(watchDone)
			if err := s.watcher.Run(ctx); err != nil {
				s.logger.ErrorContext(ctx, "knowledge base watcher stopped", "error", err)
			}
		}()
	} else {
		close(watchDone)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting dirok", "addr", s.HTTP.Addr)
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		serveErr = err
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}
	cancel()
	<-watchDone

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	return errors.Join(
		serveErr,
		s.HTTP.Shutdown(shutdownCtx),
		closeRedis(s.redis),
		s.tracerShutdown(shutdownCtx),
	)
}

func closeRedis(c *redis.Client) error {
	if c == nil {
		return nil
	}
	return c.Close()
}
