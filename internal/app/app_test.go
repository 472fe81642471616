package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"teamTasks/internal/app"
	"teamTasks/internal/config"
	"teamTasks/internal/models/task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, storageType string) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			AllowedOrigins: []string{"*"},
		},
		Logging: config.LoggingConfig{Level: "error"},
		Storage: config.StorageConfig{
			Type:   storageType,
			Key:    "tasks",
			File:   config.FileConfig{Dir: t.TempDir()},
			SQLite: config.SQLiteConfig{Path: t.TempDir() + "/tasks.db"},
		},
		Worker: config.WorkerConfig{Interval: time.Minute},
	}
}

func newApp(t *testing.T, storageType string) *app.App {
	t.Helper()

	a := app.New(testConfig(t, storageType))
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(func() {
		_ = a.Shutdown(context.Background())
	})
	return a
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestApp_Routes(t *testing.T) {
	a := newApp(t, "memory")
	h := a.Handler()

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(t, h, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Tasks []task.Task `json:"tasks"`
		Total int         `json:"total"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Equal(t, 3, list.Total, "пустое хранилище заполняется начальными задачами")

	w = do(t, h, http.MethodPost, "/tasks", `{"title":"A","status":"todo","priority":"low","dueDate":"2025-02-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Task task.Task `json:"task"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	w = do(t, h, http.MethodPatch, "/tasks/"+created.Task.ID, `{"status":"in-progress"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/tasks/"+created.Task.ID+"/share", `{"identifier":"x@y.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = do(t, h, http.MethodPost, "/tasks/"+created.Task.ID+"/share", `{"identifier":"x@y.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodGet, "/tasks/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":4,"completed":1,"inProgress":2,"pending":1}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "teamtasks_tasks_total 4")
	assert.Contains(t, w.Body.String(), "teamtasks_mutations_total")

	w = do(t, h, http.MethodDelete, "/tasks/"+created.Task.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/tasks/"+created.Task.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// адрес в пути отзыва доступа может прийти закодированным
func TestApp_UnshareEncodedIdentifier(t *testing.T) {
	a := newApp(t, "memory")
	h := a.Handler()

	w := do(t, h, http.MethodDelete, "/tasks/2/share/team%40example.com", "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, h, http.MethodGet, "/tasks/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Task task.Task `json:"task"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Empty(t, got.Task.SharedWith)

	w = do(t, h, http.MethodDelete, "/tasks/2/share/team%40example.com", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOpenStore_FileSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, "file")

	first, err := app.OpenStore(ctx, cfg.Storage)
	require.NoError(t, err)
	created, err := first.Service.Create(ctx, task.Input{Title: "persisted"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.OpenStore(ctx, cfg.Storage)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
	assert.Len(t, second.Service.GetAll(ctx), 4)
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, "sqlite")

	store, err := app.OpenStore(ctx, cfg.Storage)
	require.NoError(t, err)
	defer store.Close()

	assert.Len(t, store.Service.GetAll(ctx), 3)
}

func TestOpenBackend_UnknownType(t *testing.T) {
	_, err := app.OpenBackend(context.Background(), config.StorageConfig{Type: "mongo"})
	assert.Error(t, err)
}
