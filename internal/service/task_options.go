package service

import (
	"teamTasks/internal/models/task"
	"time"

	"github.com/google/uuid"
)

type Option func(*TaskService)

// WithSeed задаёт задачи, которыми заполняется пустое хранилище при первом запуске
func WithSeed(seed []task.Task) Option {
	return func(s *TaskService) {
		s.seed = seed
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *TaskService) {
		s.newID = newID
	}
}

func defaultClock() time.Time {
	return time.Now().UTC()
}

// UUIDv7 упорядочен по времени создания
func defaultID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
