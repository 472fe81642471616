package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"teamTasks/internal/logger"
	"teamTasks/internal/models/task"
	"teamTasks/internal/storage"
	"time"

	"go.uber.org/zap"
)

const DefaultKey = "tasks"

// TaskRepository пишет всю коллекцию задач одним JSON-массивом под одним ключом
type TaskRepository struct {
	backend storage.Backend
	key     string
}

func NewTaskRepository(backend storage.Backend, key string) *TaskRepository {
	if key == "" {
		key = DefaultKey
	}
	return &TaskRepository{
		backend: backend,
		key:     key,
	}
}

func (r *TaskRepository) Key() string {
	return r.key
}

func (r *TaskRepository) HealthCheck(ctx context.Context) error {
	return r.backend.HealthCheck(ctx)
}

// Load читает коллекцию. ErrNotFound - ключа нет, ErrMalformed - данные не разбираются
func (r *TaskRepository) Load(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	data, err := r.backend.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			logger.Info("Repository: Сохранённая коллекция отсутствует", zap.String("key", r.key))
			return nil, ErrNotFound
		}
		logger.Error("Repository: Не удалось прочитать коллекцию", err, zap.String("key", r.key))
		return nil, fmt.Errorf("чтение коллекции: %w", err)
	}

	tasks, err := Decode(data)
	if err != nil {
		logger.Error("Repository: Коллекция повреждена", err, zap.String("key", r.key))
		return nil, err
	}

	logger.Info("Repository: Коллекция загружена",
		zap.String("key", r.key),
		zap.Int("tasks", len(tasks)),
		zap.Duration("ms", time.Since(start)))
	return tasks, nil
}

// Save заменяет сохранённую коллекцию целиком
func (r *TaskRepository) Save(ctx context.Context, tasks []*task.Task) error {
	start := time.Now()

	data, err := Encode(tasks)
	if err != nil {
		return err
	}

	if err := r.backend.Put(ctx, r.key, data); err != nil {
		logger.Error("Repository: Не удалось сохранить коллекцию", err, zap.String("key", r.key))
		return fmt.Errorf("запись коллекции: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная запись", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func Encode(tasks []*task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("сериализация коллекции: %w", err)
	}
	return data, nil
}

// Decode принимает только JSON-массив объектов задач
func Decode(data []byte) ([]*task.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: ожидался JSON-массив", ErrMalformed)
	}

	var tasks []*task.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	for i, t := range tasks {
		if t == nil {
			return nil, fmt.Errorf("%w: элемент %d равен null", ErrMalformed, i)
		}
	}

	return tasks, nil
}
