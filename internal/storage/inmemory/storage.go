package inmemory

import (
	"context"
	"slices"
	"sync"
	"teamTasks/internal/logger"
	"teamTasks/internal/storage"
)

type Storage struct {
	values map[string][]byte
	mtx    *sync.RWMutex
}

func New() *Storage {
	return &Storage{
		values: make(map[string][]byte),
		mtx:    &sync.RWMutex{},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Debug("Storage: память доступна")
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.values[key] = slices.Clone(value)
	return nil
}

func (s *Storage) Close() error {
	return nil
}
