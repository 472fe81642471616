package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"teamTasks/internal/logger"
	"teamTasks/internal/metrics"
	"teamTasks/internal/models/task"
	"teamTasks/internal/repository"
	"teamTasks/internal/view"
	"time"

	"go.uber.org/zap"
)

const maxIDAttempts = 8

// TaskService - единственный владелец коллекции задач в процессе.
// Любое изменение сначала записывается в хранилище и только потом
// становится видно в памяти.
type TaskService struct {
	repo  TaskRepository
	mtx   sync.RWMutex
	tasks []*task.Task

	seed  []task.Task
	now   func() time.Time
	newID func() string

	obsMtx    sync.Mutex
	observers map[int]func([]*task.Task)
	nextObs   int

	// изменение получает номер под mtx, снимки раздаются строго по номерам
	version     uint64
	deliverMtx  sync.Mutex
	deliverCond *sync.Cond
	delivered   uint64
}

func NewTaskService(repo TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		repo:      repo,
		tasks:     []*task.Task{},
		seed:      task.SeedV1(),
		now:       defaultClock,
		newID:     defaultID,
		observers: make(map[int]func([]*task.Task)),
	}
	s.deliverCond = sync.NewCond(&s.deliverMtx)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		logger.Error("Service: хранилище недоступно", err)
		return fmt.Errorf("проверка хранилища: %w", err)
	}
	return nil
}

// Initialize загружает сохранённую коллекцию как есть. Если её нет - записывает начальные задачи.
// Повреждённые данные возвращаются ошибкой LOAD_FAILED, коллекция в памяти остаётся пустой
func (s *TaskService) Initialize(ctx context.Context) error {
	s.mtx.Lock()

	tasks, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.tasks = tasks
		logger.Info("Service: Задачи загружены", zap.Int("tasks", len(tasks)))

	case errors.Is(err, repository.ErrNotFound):
		seeded := make([]*task.Task, len(s.seed))
		for i := range s.seed {
			seeded[i] = s.seed[i].Clone()
		}
		if err := s.repo.Save(ctx, seeded); err != nil {
			s.tasks = []*task.Task{}
			s.mtx.Unlock()
			logger.Error("Service: Не удалось записать начальные задачи", err)
			return NewPersistFailed("seed", err)
		}
		s.tasks = seeded
		logger.Info("Service: Хранилище заполнено начальными задачами", zap.Int("tasks", len(seeded)))

	default:
		s.tasks = []*task.Task{}
		s.mtx.Unlock()
		logger.Error("Service: Ошибка загрузки задач", err)
		return NewLoadFailed(err)
	}

	snapshot := task.CloneAll(s.tasks)
	version := s.nextVersion()
	s.mtx.Unlock()

	s.deliver(version, snapshot)
	return nil
}

func (s *TaskService) GetAll(ctx context.Context) []*task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return task.CloneAll(s.tasks)
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	i := indexOf(s.tasks, id)
	if i < 0 {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id))
		return nil, NewNotFound(id)
	}
	return s.tasks[i].Clone(), nil
}

// Create присваивает id и временные метки, добавляет задачу в конец коллекции и сохраняет
func (s *TaskService) Create(ctx context.Context, in task.Input) (*task.Task, error) {
	if err := in.ValidateEnums(); err != nil {
		return nil, validationError(err)
	}
	sharedWith, err := normalizeIdentifiers(in.SharedWith)
	if err != nil {
		return nil, err
	}
	in.SharedWith = sharedWith

	var created *task.Task
	err = s.mutate(ctx, "create", func(current []*task.Task) ([]*task.Task, bool, error) {
		id, err := s.uniqueID(current)
		if err != nil {
			return nil, false, err
		}

		created = task.New(id, in, s.now())

		next := make([]*task.Task, 0, len(current)+1)
		next = append(next, current...)
		next = append(next, created)
		return next, true, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Service: Задача создана", zap.String("task_id", created.ID))
	return created.Clone(), nil
}

// Update применяет только переданные опции. Отсутствующая задача - не ошибка: возвращается false
func (s *TaskService) Update(ctx context.Context, id string, options ...task.TaskOption) (bool, error) {
	found := false
	err := s.mutate(ctx, "update", func(current []*task.Task) ([]*task.Task, bool, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, false, nil
		}
		found = true

		prev := current[i]
		updated := prev.Clone()
		updated.Apply(options...)

		updated.ID = prev.ID
		updated.CreatedAt = prev.CreatedAt
		if updated.Status != prev.Status && !updated.Status.Valid() {
			return nil, false, NewValidationError("status", "неизвестный статус "+string(updated.Status))
		}
		if updated.Priority != prev.Priority && !updated.Priority.Valid() {
			return nil, false, NewValidationError("priority", "неизвестный приоритет "+string(updated.Priority))
		}
		if !slices.Equal(updated.SharedWith, prev.SharedWith) {
			sharedWith, err := normalizeIdentifiers(updated.SharedWith)
			if err != nil {
				return nil, false, err
			}
			updated.SharedWith = sharedWith
		}
		updated.UpdatedAt = s.stamp(prev.UpdatedAt)

		next := slices.Clone(current)
		next[i] = updated
		return next, true, nil
	})
	if err != nil {
		return false, err
	}

	if !found {
		logger.Info("Service: Задача для обновления не найдена", zap.String("target_id", id))
		return false, nil
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", id))
	return true, nil
}

// Delete удаляет задачу, если она есть, и сохраняет получившуюся коллекцию
func (s *TaskService) Delete(ctx context.Context, id string) error {
	removed := false
	err := s.mutate(ctx, "delete", func(current []*task.Task) ([]*task.Task, bool, error) {
		next := slices.DeleteFunc(slices.Clone(current), func(t *task.Task) bool {
			return t.ID == id
		})
		removed = len(next) != len(current)
		return next, true, nil
	})
	if err != nil {
		return err
	}

	logger.Info("Service: Удаление задачи", zap.String("task_id", id), zap.Bool("removed", removed))
	return nil
}

func (s *TaskService) Filter(ctx context.Context, spec view.Spec) []*task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return task.CloneAll(view.Filter(s.tasks, spec))
}

func (s *TaskService) Stats(ctx context.Context) view.Stats {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return view.Aggregate(s.tasks)
}

// Subscribe регистрирует наблюдателя, который получает копию коллекции после каждого изменения.
// Снимки приходят по одному и в том порядке, в котором изменения были записаны
func (s *TaskService) Subscribe(fn func([]*task.Task)) (unsubscribe func()) {
	s.obsMtx.Lock()
	defer s.obsMtx.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMtx.Lock()
		defer s.obsMtx.Unlock()
		delete(s.observers, id)
	}
}

// mutate выполняет изменение под эксклюзивной блокировкой: вычисляет новую коллекцию,
// записывает её и только после успешной записи подменяет коллекцию в памяти.
// fn не должен менять элементы current, changed=false означает, что писать нечего
func (s *TaskService) mutate(ctx context.Context, operation string, fn func(current []*task.Task) (next []*task.Task, changed bool, err error)) error {
	s.mtx.Lock()

	next, changed, err := fn(s.tasks)
	if err != nil {
		s.mtx.Unlock()
		metrics.ObserveMutation(operation, metrics.ResultFailed)
		logger.Warn("Service: Изменение отклонено", zap.String("operation", operation), zap.Error(err))
		return err
	}
	if !changed {
		s.mtx.Unlock()
		metrics.ObserveMutation(operation, metrics.ResultNoop)
		return nil
	}

	start := time.Now()
	if err := s.repo.Save(ctx, next); err != nil {
		s.mtx.Unlock()
		metrics.ObserveMutation(operation, metrics.ResultFailed)
		logger.Error("Service: Изменение не сохранено", err, zap.String("operation", operation))
		return NewPersistFailed(operation, err)
	}
	metrics.PersistDuration.Observe(time.Since(start).Seconds())

	s.tasks = next
	snapshot := task.CloneAll(next)
	version := s.nextVersion()
	s.mtx.Unlock()

	metrics.ObserveMutation(operation, metrics.ResultOK)
	s.deliver(version, snapshot)
	return nil
}

// вызывается под mtx
func (s *TaskService) nextVersion() uint64 {
	s.version++
	return s.version
}

// deliver ждёт, пока разойдутся снимки всех предыдущих изменений, и раздаёт свой.
// Наблюдатель может читать хранилище, но не должен его менять
func (s *TaskService) deliver(version uint64, snapshot []*task.Task) {
	s.deliverMtx.Lock()
	defer s.deliverMtx.Unlock()

	for s.delivered+1 != version {
		s.deliverCond.Wait()
	}
	defer func() {
		s.delivered = version
		s.deliverCond.Broadcast()
	}()

	s.obsMtx.Lock()
	observers := make([]func([]*task.Task), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMtx.Unlock()

	for _, fn := range observers {
		fn(task.CloneAll(snapshot))
	}
}

// stamp возвращает время изменения строго позже предыдущего
func (s *TaskService) stamp(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (s *TaskService) uniqueID(current []*task.Task) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id != "" && indexOf(current, id) < 0 {
			return id, nil
		}
	}
	return "", NewBusinessError("ID_CONFLICT", "не удалось сгенерировать уникальный id задачи",
		ToDetail("attempts", maxIDAttempts))
}

func indexOf(tasks []*task.Task, id string) int {
	return slices.IndexFunc(tasks, func(t *task.Task) bool {
		return t.ID == id
	})
}

func validationError(err error) error {
	var fieldErr *task.FieldError
	if errors.As(err, &fieldErr) {
		return NewValidationError(fieldErr.Field, fieldErr.Reason)
	}
	return NewBusinessError(CodeValidation, err.Error())
}
