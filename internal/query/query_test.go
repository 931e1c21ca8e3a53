package query_test

import (
	"taskease/internal/models/task"
	"taskease/internal/query"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTask(title, category string, status task.Status, deadline *time.Time) *task.Task {
	return &task.Task{
		ID:        uuid.New(),
		Owner:     task.SoloOwner,
		Title:     title,
		Category:  category,
		Status:    status,
		Deadline:  deadline,
		CreatedAt: time.Now(),
	}
}

func datePtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// TestByCategory проверяет фильтр по категории и значение "All"
func TestByCategory(t *testing.T) {
	tasks := []*task.Task{
		newTask("Essay", "School", task.StatusPending, nil),
		newTask("Gym", "Health", task.StatusPending, nil),
		newTask("Read", "School", task.StatusCompleted, nil),
	}

	school := query.ByCategory(tasks, "School")
	assert.Len(t, school, 2)
	for _, tk := range school {
		assert.Equal(t, "School", tk.Category)
	}

	assert.Len(t, query.ByCategory(tasks, query.All), 3)
	assert.Empty(t, query.ByCategory(tasks, "Work"))
}

// TestByStatus проверяет фильтр по статусу
func TestByStatus(t *testing.T) {
	tasks := []*task.Task{
		newTask("Essay", "School", task.StatusPending, nil),
		newTask("Read", "School", task.StatusCompleted, nil),
	}

	pending := query.ByStatus(tasks, string(task.StatusPending))
	assert.Len(t, pending, 1)
	assert.Equal(t, "Essay", pending[0].Title)

	assert.Len(t, query.ByStatus(tasks, query.All), 2)
}

// TestDueClassification — сценарий из жизни: эссе на сегодня,
// спортзал вчера
func TestDueClassification(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	essay := newTask("Essay", "School", task.StatusPending, datePtr(today))
	gym := newTask("Gym", "Health", task.StatusPending, datePtr(yesterday))

	assert.Equal(t, query.DueToday, query.Due(essay, today))
	assert.Equal(t, query.DueOverdue, query.Due(gym, today))

	// выполненная задача не считается просроченной
	gym.Status = task.StatusCompleted
	assert.Equal(t, query.DueNone, query.Due(gym, today))

	// без дедлайна классификации нет
	undated := newTask("Idea", "Other", task.StatusPending, nil)
	assert.Equal(t, query.DueNone, query.Due(undated, today))
}

// TestUpcoming проверяет, что попадают только ожидающие задачи с
// дедлайном не раньше сегодня
func TestUpcoming(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	essay := newTask("Essay", "School", task.StatusPending, datePtr(today))
	gym := newTask("Gym", "Health", task.StatusPending, datePtr(yesterday))
	done := newTask("Done", "School", task.StatusCompleted, datePtr(tomorrow))
	undated := newTask("Idea", "Other", task.StatusPending, nil)

	tasks := []*task.Task{gym, essay, done, undated}
	upcoming := query.Upcoming(tasks, today, 5)

	assert.Len(t, upcoming, 1)
	assert.Equal(t, "Essay", upcoming[0].Title)
}

// TestUpcomingLimit проверяет усечение и сохранение порядка
func TestUpcomingLimit(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tasks := []*task.Task{}
	for i := 0; i < 10; i++ {
		tasks = append(tasks, newTask("Task", "Other", task.StatusPending, datePtr(today.AddDate(0, 0, i))))
	}

	upcoming := query.Upcoming(tasks, today, 3)
	assert.Len(t, upcoming, 3)
	assert.Equal(t, *datePtr(today), *upcoming[0].Deadline)
	assert.Equal(t, *datePtr(today.AddDate(0, 0, 2)), *upcoming[2].Deadline)
}

// TestProgress: пустой список — 0, K из N — K/N
func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, query.Progress(nil))
	assert.Equal(t, 0.0, query.Progress([]*task.Task{}))

	tasks := []*task.Task{
		newTask("a", "Other", task.StatusCompleted, nil),
		newTask("b", "Other", task.StatusPending, nil),
		newTask("c", "Other", task.StatusCompleted, nil),
		newTask("d", "Other", task.StatusPending, nil),
	}
	assert.InDelta(t, 0.5, query.Progress(tasks), 1e-9)

	all := []*task.Task{newTask("a", "Other", task.StatusCompleted, nil)}
	assert.Equal(t, 1.0, query.Progress(all))
}

// TestProgressByCategory: только присутствующие категории
func TestProgressByCategory(t *testing.T) {
	tasks := []*task.Task{
		newTask("a", "School", task.StatusCompleted, nil),
		newTask("b", "School", task.StatusPending, nil),
		newTask("c", "Health", task.StatusCompleted, nil),
	}

	byCat := query.ProgressByCategory(tasks)
	assert.Len(t, byCat, 2)
	assert.InDelta(t, 0.5, byCat["School"], 1e-9)
	assert.Equal(t, 1.0, byCat["Health"])
	_, exists := byCat["Work"]
	assert.False(t, exists)
}

// TestSummarize проверяет счётчики аналитики
func TestSummarize(t *testing.T) {
	tasks := []*task.Task{
		newTask("a", "School", task.StatusCompleted, nil),
		newTask("b", "School", task.StatusPending, nil),
		newTask("c", "Health", task.StatusPending, nil),
	}

	s := query.Summarize(tasks)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Pending)
	assert.InDelta(t, 1.0/3.0, s.Progress, 1e-9)

	empty := query.Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0.0, empty.Progress)
}
