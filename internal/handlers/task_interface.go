package handlers

import (
	"context"
	"teamTasks/internal/models/task"
	"teamTasks/internal/service"
	"teamTasks/internal/view"
)

type Service interface {
	HealthCheck(ctx context.Context) error
	GetAll(ctx context.Context) []*task.Task
	GetByID(ctx context.Context, id string) (*task.Task, error)
	Create(ctx context.Context, in task.Input) (*task.Task, error)
	Update(ctx context.Context, id string, options ...task.TaskOption) (bool, error)
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, id, identifier string) (service.ShareResult, error)
	Unshare(ctx context.Context, id, identifier string) (service.ShareResult, error)
	Filter(ctx context.Context, spec view.Spec) []*task.Task
	Stats(ctx context.Context) view.Stats
}

var _ Service = (*service.TaskService)(nil)
