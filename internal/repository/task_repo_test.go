package repository_test

import (
	"context"
	"errors"
	"teamTasks/internal/models/task"
	"teamTasks/internal/repository"
	"teamTasks/internal/storage"
	"teamTasks/internal/storage/inmemory"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend - мок хранилища ключ-значение
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBackend) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockBackend) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBackend) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ storage.Backend = (*MockBackend)(nil)

func sampleTasks() []*task.Task {
	seed := task.SeedV1()
	res := make([]*task.Task, len(seed))
	for i := range seed {
		res[i] = &seed[i]
	}
	res = append(res, &task.Task{
		ID:          "0194c0a2-7b1e-7c3a-9b1e-3f1a2b3c4d5e",
		Title:       "A",
		Description: "",
		Status:      task.StatusTodo,
		Priority:    task.PriorityLow,
		DueDate:     task.MustParseDate("2025-02-01"),
		CreatedAt:   time.Date(2025, time.January, 20, 12, 0, 0, 123456789, time.UTC),
		UpdatedAt:   time.Date(2025, time.January, 21, 12, 0, 0, 987654321, time.UTC),
		Tags:        []string{"x", "x"},
		SharedWith:  []string{"x@y.com"},
	})
	return res
}

// TestTaskRepository_RoundTrip - сохранение и загрузка дают ту же коллекцию в том же порядке
func TestTaskRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTaskRepository(inmemory.New(), "")

	original := sampleTasks()
	require.NoError(t, repo.Save(ctx, original))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(original))
	for i := range original {
		assert.Equal(t, original[i], loaded[i], "задача %d", i)
	}
}

func TestTaskRepository_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	backend := inmemory.New()
	repo := repository.NewTaskRepository(backend, "")

	require.NoError(t, repo.Save(ctx, nil))

	raw, err := backend.Get(ctx, repository.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestTaskRepository_LoadMissing(t *testing.T) {
	repo := repository.NewTaskRepository(inmemory.New(), "custom")
	assert.Equal(t, "custom", repo.Key())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_LoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not json", blob: "{{{"},
		{name: "object instead of array", blob: `{"id":"1"}`},
		{name: "wrong field type", blob: `[{"id":"1","tags":"oops"}]`},
		{name: "bad due date", blob: `[{"id":"1","dueDate":"01/10/2025"}]`},
		{name: "null element", blob: `[null]`},
		{name: "empty", blob: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := inmemory.New()
			require.NoError(t, backend.Put(ctx, repository.DefaultKey, []byte(tt.blob)))

			repo := repository.NewTaskRepository(backend, "")
			_, err := repo.Load(ctx)
			assert.ErrorIs(t, err, repository.ErrMalformed)
		})
	}
}

// старые задачи загружаются как есть, без проверки перечислений
func TestTaskRepository_LoadVerbatim(t *testing.T) {
	ctx := context.Background()
	backend := inmemory.New()
	blob := `[{"id":"7","title":"Legacy","status":"archived","priority":"urgent","dueDate":"","createdAt":"2024-12-31T23:59:59.000Z","updatedAt":"2024-12-31T23:59:59.000Z"}]`
	require.NoError(t, backend.Put(ctx, repository.DefaultKey, []byte(blob)))

	loaded, err := repository.NewTaskRepository(backend, "").Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, task.Status("archived"), loaded[0].Status)
	assert.Equal(t, task.Priority("urgent"), loaded[0].Priority)
	assert.True(t, loaded[0].DueDate.IsZero())
}

func TestTaskRepository_BackendErrors(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	backend.On("Get", mock.Anything, "tasks").Return(nil, errors.New("connection refused"))
	backend.On("Put", mock.Anything, "tasks", mock.Anything).Return(errors.New("quota exceeded"))

	repo := repository.NewTaskRepository(backend, "")

	_, err := repo.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.NotErrorIs(t, err, repository.ErrMalformed)

	err = repo.Save(ctx, sampleTasks())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	backend.AssertExpectations(t)
}
