package task_test

import (
	"taskease/internal/models/task"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// TestParseStatus принимает только Pending и Completed
func TestParseStatus(t *testing.T) {
	got, ok := task.ParseStatus("Pending")
	require.True(t, ok)
	assert.Equal(t, task.StatusPending, got)

	got, ok = task.ParseStatus("Completed")
	require.True(t, ok)
	assert.Equal(t, task.StatusCompleted, got)

	for _, raw := range []string{"", "pending", "Done", "COMPLETED"} {
		_, ok := task.ParseStatus(raw)
		assert.False(t, ok, raw)
	}
}

// TestClone: копия не делит указатели с оригиналом
func TestClone(t *testing.T) {
	updated := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	original := &task.Task{
		ID:        uuid.New(),
		Title:     "task",
		Deadline:  datePtr(2025, 5, 1),
		Status:    task.StatusPending,
		UpdatedAt: &updated,
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	*clone.Deadline = clone.Deadline.AddDate(0, 0, 7)
	clone.Status = task.StatusCompleted

	assert.Equal(t, task.StatusPending, original.Status)
	assert.True(t, original.Deadline.Equal(*datePtr(2025, 5, 1)))
}

// TestSort: по возрастанию дедлайна, без дедлайна — в конце, при
// равенстве — по времени создания
func TestSort(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	undated := &task.Task{Title: "undated", CreatedAt: base}
	late := &task.Task{Title: "late", Deadline: datePtr(2025, 9, 1), CreatedAt: base}
	earlyOld := &task.Task{Title: "early-old", Deadline: datePtr(2025, 3, 1), CreatedAt: base}
	earlyNew := &task.Task{Title: "early-new", Deadline: datePtr(2025, 3, 1), CreatedAt: base.Add(time.Hour)}

	tasks := []*task.Task{undated, late, earlyNew, earlyOld}
	task.Sort(tasks)

	titles := make([]string, len(tasks))
	for i, tk := range tasks {
		titles[i] = tk.Title
	}
	assert.Equal(t, []string{"early-old", "early-new", "late", "undated"}, titles)
}
