package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"teamTasks/internal/handlers/dto"
	"teamTasks/internal/logger"
	"teamTasks/internal/models/task"
	"teamTasks/internal/service"
	"teamTasks/internal/view"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

// Register вешает обработчики задач на роутер
func (h *TaskHandler) Register(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.GetTasks)   // GET /tasks?status=&priority=&search=
		r.Post("/", h.PostTask) // POST /tasks
		r.Get("/stats", h.GetStats)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTaskByID)
			r.Patch("/", h.UpdateTaskByID)
			r.Delete("/", h.DeleteTaskByID)

			r.Post("/share", h.ShareTask)
			r.Delete("/share/{identifier}", h.UnshareTask)
		})
	})
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	err := h.TaskService.HealthCheck(r.Context())
	if err != nil {
		logger.Warn("HTTP: Хранилище недоступно", zap.Error(err))
	}
	healthCheck(w, err)
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := r.URL.Query()
	spec, err := view.ParseSpec(query.Get("status"), query.Get("priority"), query.Get("search"))
	if err != nil {

		logger.Warn("HTTP: Неверный фильтр",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		handleBusinessError(w, fieldError(err))
		return
	}

	var tasks []*task.Task
	if spec == view.Everything {
		tasks = h.TaskService.GetAll(r.Context())
	} else {
		tasks = h.TaskService.Filter(r.Context(), spec)
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("tasks", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("tasks", tasks),
		toPayload("total", len(tasks)),
	)
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	stats := h.TaskService.Stats(r.Context())

	responseWithJSON(w, http.StatusOK,
		toPayload("total", stats.Total),
		toPayload("completed", stats.Completed),
		toPayload("inProgress", stats.InProgress),
		toPayload("pending", stats.Pending),
	)
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	in := request.Input()
	if err := in.Validate(); err != nil {

		logger.Warn("HTTP: Ошибка валидации",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		handleBusinessError(w, fieldError(err))
		return
	}

	created, err := h.TaskService.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, "create_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", created))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	found, err := h.TaskService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, "get_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", found.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", found))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	if err := request.Validate(); err != nil {
		logger.Warn("HTTP: Ошибка валидации", zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		handleBusinessError(w, fieldError(err))
		return
	}
	if request.Empty() {
		responseWithError(w, http.StatusBadRequest, "не передано ни одного поля для обновления")
		return
	}

	found, err := h.TaskService.Update(r.Context(), id, request.Options()...)
	if err != nil {
		respondError(w, r, "update_task", err)
		return
	}
	if !found {
		handleBusinessError(w, service.NewNotFound(id))
		return
	}

	updated, err := h.TaskService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, "update_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", updated))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.Delete(r.Context(), id); err != nil {
		respondError(w, r, "delete_task", err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ShareTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var request dto.ShareRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	result, err := h.TaskService.Share(r.Context(), id, request.Identifier)
	if err != nil {
		respondError(w, r, "share_task", err)
		return
	}
	if err := result.Err(id, strings.TrimSpace(request.Identifier)); err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доступ выдан",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("id", id),
		toPayload("identifier", strings.TrimSpace(request.Identifier)),
		toPayload("result", result.String()),
	)
}

func (h *TaskHandler) UnshareTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}
	identifier, err := pathParam(r, "identifier")
	if err != nil {

		logger.Warn("HTTP: Неверный адрес в пути",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		handleBusinessError(w, service.NewValidationError("identifier", "адрес в пути закодирован неверно"))
		return
	}

	result, err := h.TaskService.Unshare(r.Context(), id, identifier)
	if err != nil {
		respondError(w, r, "unshare_task", err)
		return
	}
	if err := result.Err(id, identifier); err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доступ отозван",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func taskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {

		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "empty id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return "", false
	}
	return id, true
}

// pathParam раскодирует параметр, если chi сопоставлял маршрут по RawPath (например x%40y.com)
func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

func fieldError(err error) error {
	var fieldErr *task.FieldError
	if errors.As(err, &fieldErr) {
		return service.NewValidationError(fieldErr.Field, fieldErr.Reason)
	}
	return service.NewBusinessError(service.CodeValidation, err.Error())
}
