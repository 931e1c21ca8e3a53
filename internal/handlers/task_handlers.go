package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"taskease/internal/handlers/dto"
	"taskease/internal/logger"
	"taskease/internal/middleware"
	"taskease/internal/models/task"
	"taskease/internal/query"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultUpcomingLimit = 5

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		handleBusinessError(w, err)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

// GetTasks отдаёт снимок задач владельца; ?category= и ?status=
// фильтруют его, "All" или отсутствие параметра — без фильтра.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), owner)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		tasks = query.ByCategory(tasks, category)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if status != query.All {
			if _, valid := task.ParseStatus(status); !valid {
				responseWithError(w, http.StatusBadRequest, "неверное значение status")
				return
			}
		}
		tasks = query.ByStatus(tasks, status)
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks, time.Now().UTC())))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	deadline, ok := parseDeadline(w, r, request.Deadline)
	if !ok {
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), owner, request.Title, request.Description, request.Category, deadline)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(created, time.Now().UTC())))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	t, err := h.TaskService.GetTask(r.Context(), owner, id)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(t, time.Now().UTC())))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	options := []task.TaskOption{}
	if request.Title != nil {
		options = append(options, task.WithTitle(*request.Title))
	}
	if request.Description != nil {
		options = append(options, task.WithDescription(*request.Description))
	}
	if request.Category != nil {
		options = append(options, task.WithCategory(*request.Category))
	}
	if request.Deadline != nil {
		if *request.Deadline == "" {
			options = append(options, task.ClearDeadline())
		} else {
			deadline, ok := parseDeadline(w, r, *request.Deadline)
			if !ok {
				return
			}
			options = append(options, task.WithDeadline(*deadline))
		}
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), owner, id, options...)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated, time.Now().UTC())))
}

// SetTaskStatus переключает Pending/Completed; повторная установка
// того же статуса — успех.
func (h *TaskHandler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var request dto.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	status, valid := task.ParseStatus(request.Status)
	if !valid {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "status"),
			zap.String("received", request.Status),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "status должен быть Pending или Completed")
		return
	}

	updated, err := h.TaskService.SetStatus(r.Context(), owner, id, status)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Статус обновлён",
		zap.String("task_id", updated.ID.String()),
		zap.String("status", string(updated.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated, time.Now().UTC())))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), owner, id); err != nil {
		handleBusinessError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) GetUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	limit := defaultUpcomingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("query", "limit"),
				zap.String("received", raw),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение limit")
			return
		}
		limit = parsed
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), owner)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	now := time.Now().UTC()
	upcoming := query.Upcoming(tasks, now, limit)

	logger.Info("HTTP_OUT: Предстоящие задачи получены",
		zap.Int("count", len(upcoming)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(upcoming, now)))
}

// GetAnalytics считает общий прогресс и прогресс по категориям на
// свежем снимке.
func (h *TaskHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), owner)
	if err != nil {
		handleBusinessError(w, err)
		return
	}

	analytics := dto.AnalyticsResponse{
		Summary:    query.Summarize(tasks),
		ByCategory: query.ProgressByCategory(tasks),
	}

	logger.Info("HTTP_OUT: Аналитика получена",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("analytics", analytics))
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	owner, ok := middleware.GetOwner(r.Context())
	if !ok {
		logger.Warn("HTTP: Владелец отсутствует в контексте",
			zap.String("path", r.URL.Path))
		responseWithError(w, http.StatusUnauthorized, "требуется аутентификация")
		return uuid.Nil, false
	}
	return owner, true
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}

func parseDeadline(w http.ResponseWriter, r *http.Request, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}

	deadline, err := time.ParseInLocation(dto.DeadlineLayout, raw, time.UTC)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "deadline"),
			zap.String("received", raw),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "deadline должен быть датой в формате 2006-01-02")
		return nil, false
	}
	return &deadline, true
}
