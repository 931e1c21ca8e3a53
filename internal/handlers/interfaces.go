package handlers

import (
	"context"
	"taskease/internal/models/task"
	"time"

	"github.com/google/uuid"
)

type TaskService interface {
	HealthCheck(ctx context.Context) error
	CreateTask(ctx context.Context, owner uuid.UUID, title, description, category string, deadline *time.Time) (*task.Task, error)
	ListTasks(ctx context.Context, owner uuid.UUID) ([]*task.Task, error)
	GetTask(ctx context.Context, owner, id uuid.UUID) (*task.Task, error)
	SetStatus(ctx context.Context, owner, id uuid.UUID, status task.Status) (*task.Task, error)
	UpdateTask(ctx context.Context, owner, id uuid.UUID, options ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, owner, id uuid.UUID) error
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, username, password string) (string, uuid.UUID, error)
}
