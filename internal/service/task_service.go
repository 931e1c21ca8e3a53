package service

import (
	"context"
	"errors"
	"strings"
	"taskease/internal/logger"
	"taskease/internal/models/task"
	repo "taskease/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// проверка бизнес-правил жизненного цикла задач; все ошибки наружу
// уходят как *BusinessError

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(taskRepo repo.TaskRepository) TaskService {
	return TaskService{
		repo: taskRepo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return NewStorageFailure("health_check", err)
	}
	return nil
}

// CreateTask создаёт задачу: пустой (после trim) заголовок — ошибка
// валидации, пустая категория становится "Other".
func (s *TaskService) CreateTask(ctx context.Context, owner uuid.UUID, title, description, category string, deadline *time.Time) (*task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewValidationError("title", "не может быть пустым")
	}

	if category == "" {
		category = task.DefaultCategory
	}

	t := &task.Task{
		ID:          uuid.New(),
		Owner:       owner,
		Title:       title,
		Description: description,
		Category:    category,
		Deadline:    deadline,
		Status:      task.StatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		logger.Error("Service: Не удалось создать задачу", err)
		return nil, NewStorageFailure("create_task", err)
	}

	return t, nil
}

// ListTasks отдаёт свежий снимок задач владельца в порядке отображения.
func (s *TaskService) ListTasks(ctx context.Context, owner uuid.UUID) ([]*task.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		logger.Error("Service: Не удалось получить задачи", err)
		return nil, NewStorageFailure("list_tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, owner, id uuid.UUID) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("задача", id.String())
		}
		return nil, NewStorageFailure("get_task", err)
	}
	return t, nil
}

// SetStatus идемпотентен: повторная установка того же статуса —
// успешный no-op без записи в хранилище.
func (s *TaskService) SetStatus(ctx context.Context, owner, id uuid.UUID, status task.Status) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("задача", id.String())
		}
		return nil, NewStorageFailure("set_status", err)
	}

	if t.Status == status {
		return t, nil
	}

	t.Status = status
	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("задача", id.String())
		}
		logger.Error("Service: Не удалось обновить статус", err)
		return nil, NewStorageFailure("set_status", err)
	}

	return t, nil
}

// UpdateTask применяет частичное обновление; заголовок перепроверяется,
// если среди опций есть его изменение.
func (s *TaskService) UpdateTask(ctx context.Context, owner, id uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("задача", id.String())
		}
		return nil, NewStorageFailure("update_task", err)
	}

	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}

	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return nil, NewValidationError("title", "не может быть пустым")
	}
	if t.Category == "" {
		t.Category = task.DefaultCategory
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("задача", id.String())
		}
		logger.Error("Service: Не удалось обновить задачу", err)
		return nil, NewStorageFailure("update_task", err)
	}

	return t, nil
}

// DeleteTask удаляет навсегда: ни мягкого удаления, ни восстановления.
func (s *TaskService) DeleteTask(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return NewNotFound("задача", id.String())
		}
		logger.Error("Service: Не удалось удалить задачу", err)
		return NewStorageFailure("delete_task", err)
	}
	return nil
}
