package task

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SoloOwner is the implicit owner used when the service runs without
// accounts. All tasks belong to it in that mode.
var SoloOwner = uuid.Nil

const DefaultCategory = "Other"

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Owner       uuid.UUID  `json:"owner" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	Status      Status     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

type Status string

const StatusPending Status = "Pending"
const StatusCompleted Status = "Completed"

// ParseStatus validates a status value coming from the outside.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// Clone returns a deep copy so repository snapshots stay detached
// from later mutations.
func (t *Task) Clone() *Task {
	c := *t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}

// Sort orders tasks for display: ascending deadline, tasks without a
// deadline after all dated ones, ties broken by creation time.
func Sort(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.Deadline == nil && b.Deadline == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.Deadline == nil:
			return false
		case b.Deadline == nil:
			return true
		case a.Deadline.Equal(*b.Deadline):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Deadline.Before(*b.Deadline)
		}
	})
}
