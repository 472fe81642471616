package redis

import (
	"context"
	"teamTasks/internal/logger"
	"teamTasks/internal/storage"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultPrefix = "teamtasks:"

type Storage struct {
	client *redis.Client
	prefix string
}

// Open подключается к Redis и проверяет соединение. Пустой prefix заменяется на DefaultPrefix
func Open(ctx context.Context, addr, password string, db int, prefix string) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "could not reach redis at '%s'", addr)
	}

	logger.Info("Storage: подключение к Redis установлено", zap.String("addr", addr))
	return New(client, prefix), nil
}

func New(client *redis.Client, prefix string) *Storage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return errors.WithStack(s.client.Ping(ctx).Err())
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "could not read key '%s'", key)
	}

	return data, nil
}

// SET в Redis заменяет значение целиком
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "could not write key '%s'", key)
	}
	return nil
}

func (s *Storage) Close() error {
	return errors.WithStack(s.client.Close())
}
