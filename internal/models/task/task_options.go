package task

import "time"

// TaskOption mutates a task during a partial update.
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(t *Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(t *Task) {
		t.Description = description
	}
}

func WithCategory(category string) TaskOption {
	if category == "" {
		category = DefaultCategory
	}
	return func(t *Task) {
		t.Category = category
	}
}

func WithDeadline(deadline time.Time) TaskOption {
	return func(t *Task) {
		d := deadline
		t.Deadline = &d
	}
}

func ClearDeadline() TaskOption {
	return func(t *Task) {
		t.Deadline = nil
	}
}
