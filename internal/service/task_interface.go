package service

import (
	"context"
	"teamTasks/internal/models/task"
)

// TaskRepository - долговременное хранилище всей коллекции задач
type TaskRepository interface {
	Load(context.Context) ([]*task.Task, error)
	Save(context.Context, []*task.Task) error
	HealthCheck(context.Context) error
}
