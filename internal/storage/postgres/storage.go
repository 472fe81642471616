package postgres

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"teamTasks/internal/logger"
	"teamTasks/internal/storage"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

type PoolOptions struct {
	MaxConnections int32
	MinConnections int32
	IdleTimeout    time.Duration
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConnections: 10,
		MinConnections: 2,
		IdleTimeout:    5 * time.Minute,
	}
}

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string, opts PoolOptions) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Storage: Ошибка загрузки конфига", err)
		return nil, errors.Wrap(err, "could not parse connection string")
	}

	if opts.MaxConnections > 0 {
		config.MaxConns = opts.MaxConnections
	}
	if opts.MinConnections > 0 {
		config.MinConns = opts.MinConnections
	}
	if opts.IdleTimeout > 0 {
		config.MaxConnIdleTime = opts.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Storage: Ошибка создания пула", err)
		return nil, errors.Wrap(err, "could not create pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Storage: Неудачная проверка ping", err)
		return nil, errors.Wrap(err, "ping")
	}

	logger.Info("Storage: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

// Migrate накатывает встроенные миграции таблицы kv_store
func Migrate(connString string) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.WithStack(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(connString))
	if err != nil {
		return errors.Wrap(err, "could not prepare migrations")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("Storage: ошибка закрытия мигратора", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not apply migrations")
	}

	logger.Info("Storage: миграции применены")
	return nil
}

// драйвер pgx/v5 в golang-migrate регистрируется под схемой pgx5
func migrateURL(connString string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}

func (s *Storage) Close() error {
	s.pool.Close()
	logger.Info("Storage: Закрытие всех соединений PostgreSQL")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Storage: Неудачная проверка ping", err)
		return errors.Wrap(err, "ping")
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	start := time.Now()

	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		logger.Error("Storage: Не удалось прочитать значение", err, zap.String("key", key), zap.Duration("ms", time.Since(start)))
		return nil, errors.Wrap(err, fmt.Sprintf("could not read key '%s'", key))
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Storage: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return value, nil
}

// Put - один INSERT .. ON CONFLICT, значение меняется атомарно
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	start := time.Now()

	if value == nil {
		value = []byte{}
	}

	query := `INSERT INTO kv_store (key, value, updated_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (key) DO UPDATE
				SET value = EXCLUDED.value,
					updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		logger.Error("Storage: Не удалось записать значение", err, zap.String("key", key), zap.Duration("ms", time.Since(start)))
		return errors.Wrap(err, fmt.Sprintf("could not write key '%s'", key))
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Storage: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
