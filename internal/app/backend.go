package app

import (
	"context"
	"fmt"
	"teamTasks/internal/config"
	"teamTasks/internal/logger"
	"teamTasks/internal/repository"
	"teamTasks/internal/service"
	"teamTasks/internal/storage"
	"teamTasks/internal/storage/file"
	"teamTasks/internal/storage/inmemory"
	"teamTasks/internal/storage/postgres"
	redisstorage "teamTasks/internal/storage/redis"
	"teamTasks/internal/storage/sqlite"

	"go.uber.org/zap"
)

// OpenBackend открывает хранилище выбранного в настройках типа
func OpenBackend(ctx context.Context, cfg config.StorageConfig) (storage.Backend, error) {
	logger.Info("Storage: Открытие хранилища", zap.String("type", cfg.Type))

	switch cfg.Type {
	case storage.TypeFile:
		return file.NewOsStorage(cfg.File.Dir)

	case storage.TypeMemory:
		return inmemory.New(), nil

	case storage.TypeSQLite:
		return sqlite.Open(cfg.SQLite.Path)

	case storage.TypePostgres:
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(cfg.Postgres.URL); err != nil {
				return nil, fmt.Errorf("миграции postgres: %w", err)
			}
		}
		return postgres.New(ctx, cfg.Postgres.URL, postgres.PoolOptions{
			MaxConnections: cfg.Postgres.MaxConnections,
			MinConnections: cfg.Postgres.MinConnections,
			IdleTimeout:    cfg.Postgres.IdleTimeout,
		})

	case storage.TypeRedis:
		return redisstorage.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)

	default:
		return nil, fmt.Errorf("неизвестный тип хранилища %q", cfg.Type)
	}
}

// Store - хранилище задач вместе с открытым бэкендом
type Store struct {
	Service *service.TaskService
	Backend storage.Backend
}

func (s *Store) Close() error {
	return s.Backend.Close()
}

// OpenStore открывает бэкенд, собирает репозиторий и сервис и загружает коллекцию.
// При ошибке загрузки бэкенд закрывается, чтобы повреждённые данные не были перезаписаны
func OpenStore(ctx context.Context, cfg config.StorageConfig, opts ...service.Option) (*Store, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo := repository.NewTaskRepository(backend, cfg.Key)
	svc := service.NewTaskService(repo, opts...)

	if err := svc.Initialize(ctx); err != nil {
		if closeErr := backend.Close(); closeErr != nil {
			logger.Warn("Storage: Ошибка закрытия хранилища", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("загрузка задач: %w", err)
	}

	return &Store{Service: svc, Backend: backend}, nil
}
