package repository

import (
	"context"
	"taskease/internal/models/task"
	"taskease/internal/models/user"

	"github.com/google/uuid"
)

// TaskRepository is the durable store for one collection of tasks.
// All reads and writes are scoped by owner: an id that exists but
// belongs to another owner behaves as ErrNotFound.
//
// ListByOwner returns a fresh snapshot in display order (ascending
// deadline, nil deadlines last, ties by created_at); callers must
// re-invoke it to observe later mutations.
//
// Every mutator is write-through: it either fully commits or leaves
// both the durable copy and the in-memory state unchanged.
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Update(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, owner, id uuid.UUID) (*task.Task, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*task.Task, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	HealthCheck(ctx context.Context) error
}

// UserRepository stores user records. Create returns ErrDuplicate when
// username or email is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
