// Package storage описывает локальное key-value хранилище, в которое записывается коллекция задач.
// Любой бэкенд заменяет значение целиком: Put либо записывает новое значение полностью,
// либо возвращает ошибку и оставляет прежнее.
package storage

import (
	"context"
	"errors"
	"regexp"
)

var ErrKeyNotFound = errors.New("key not found")

var ErrInvalidKey = errors.New("invalid key")

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	HealthCheck(ctx context.Context) error
	Close() error
}

const (
	TypeFile     = "file"
	TypeMemory   = "memory"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeRedis    = "redis"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey отклоняет ключи, которые нельзя использовать как имя файла или ключ строки
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
