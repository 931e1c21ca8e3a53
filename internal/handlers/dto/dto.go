package dto

import (
	"taskease/internal/models/task"
	"taskease/internal/query"
	"time"

	"github.com/google/uuid"
)

// дедлайн ходит по проводу как дата без времени
const DeadlineLayout = time.DateOnly

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Deadline    string `json:"deadline,omitempty"`
}

// UpdateTaskRequest: nil поле — не менять, пустой deadline — снять.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    string     `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	Due         string     `json:"due"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type AnalyticsResponse struct {
	Summary    query.Summary      `json:"summary"`
	ByCategory map[string]float64 `json:"by_category"`
}

func FromTask(t *task.Task, today time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Status:      string(t.Status),
		Due:         string(query.Due(t, today)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Deadline != nil {
		resp.Deadline = t.Deadline.Format(DeadlineLayout)
	}
	return resp
}

func FromTaskList(tasks []*task.Task, today time.Time) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t, today)
	}
	return result
}
