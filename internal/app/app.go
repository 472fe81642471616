package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"teamTasks/internal/config"
	"teamTasks/internal/handlers"
	"teamTasks/internal/logger"
	"teamTasks/internal/middleware"
	"teamTasks/internal/models/task"
	"teamTasks/internal/view"
	"teamTasks/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	store     *Store
	worker    *worker.StatsWorker
	shutdowns []func() // функции для graceful shutdown, выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	store, err := OpenStore(ctx, a.config.Storage)
	if err != nil {
		return err
	}
	a.store = store
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Storage: Закрытие хранилища...")
		if err := store.Close(); err != nil {
			logger.Error("Storage: Ошибка закрытия хранилища", err)
		}
	})

	// метрики обновляются сразу после изменения, воркер лишь страхует от пропусков
	store.Service.Subscribe(func(tasks []*task.Task) {
		worker.Publish(view.Aggregate(tasks))
	})
	a.worker = worker.NewStatsWorker(store.Service, &a.config.Worker.Interval)

	a.router = a.newRouter(store.Service)
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "teamTasks"),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("Приложение инициализировано",
		zap.String("addr", a.server.Addr),
		zap.String("storage", a.config.Storage.Type))
	return nil
}

func (a *App) newRouter(svc handlers.Service) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if a.config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(middleware.RateLimitOptions{
			TrustHeaders: a.config.RateLimit.TrustHeaders,
			Interval:     a.config.RateLimit.Interval,
			Burst:        a.config.RateLimit.Burst,
			CacheSize:    a.config.RateLimit.CacheSize,
			TTL:          a.config.RateLimit.CacheTTL,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())
	handlers.NewTaskHandler(svc).Register(r)

	return r
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает http сервер и воркер статистики и блокируется до отмены ctx или ошибки сервера
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Worker: Пересчёт статистики запущен", zap.Duration("interval", a.worker.Interval()))
		a.worker.Start(gctx)
		return nil
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.server != nil {
		logger.Info("HTTP: Остановка сервера...")
		err = a.server.Shutdown(ctx)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
	return err
}
