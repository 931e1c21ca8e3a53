package inmemory_test

import (
	"context"
	"taskease/internal/models/task"
	"taskease/internal/repository"
	"taskease/internal/repository/task/inmemory"
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

// TestTaskStorage_Create тестирует создание задачи
func TestTaskStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	owner := uuid.New()

	taskToCreate := &task.Task{
		ID:       uuid.New(),
		Owner:    owner,
		Title:    "Test Task",
		Category: "School",
		Status:   task.StatusPending,
	}

	err := storage.Create(ctx, taskToCreate)
	require.NoError(t, err)

	assert.False(t, taskToCreate.CreatedAt.IsZero())

	retrieved, err := storage.GetByID(ctx, owner, taskToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Task", retrieved.Title)
	assert.Equal(t, task.StatusPending, retrieved.Status)
}

// TestTaskStorage_GetByID тестирует получение с учётом владельца
func TestTaskStorage_GetByID(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	owner := uuid.New()
	stranger := uuid.New()

	taskID := uuid.New()
	err := storage.Create(ctx, &task.Task{
		ID:     taskID,
		Owner:  owner,
		Title:  "Test Get Task",
		Status: task.StatusPending,
	})
	require.NoError(t, err)

	retrieved, err := storage.GetByID(ctx, owner, taskID)
	require.NoError(t, err)
	assert.Equal(t, taskID, retrieved.ID)

	// чужая задача выглядит как несуществующая
	_, err = storage.GetByID(ctx, stranger, taskID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = storage.GetByID(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_Update тестирует обновление задачи
func TestTaskStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	owner := uuid.New()

	taskToCreate := &task.Task{
		ID:     uuid.New(),
		Owner:  owner,
		Title:  "Original Title",
		Status: task.StatusPending,
	}
	require.NoError(t, storage.Create(ctx, taskToCreate))

	taskToCreate.Title = "Updated Title"
	taskToCreate.Status = task.StatusCompleted
	require.NoError(t, storage.Update(ctx, taskToCreate))

	retrieved, err := storage.GetByID(ctx, owner, taskToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", retrieved.Title)
	assert.Equal(t, task.StatusCompleted, retrieved.Status)
	assert.NotNil(t, retrieved.UpdatedAt)

	// обновление несуществующей задачи
	err = storage.Update(ctx, &task.Task{ID: uuid.New(), Owner: owner})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_Delete: удаление навсегда, повторное — NotFound
func TestTaskStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	owner := uuid.New()

	taskToDelete := &task.Task{
		ID:     uuid.New(),
		Owner:  owner,
		Title:  "Task to delete",
		Status: task.StatusPending,
	}
	require.NoError(t, storage.Create(ctx, taskToDelete))

	require.NoError(t, storage.Delete(ctx, owner, taskToDelete.ID))

	_, err := storage.GetByID(ctx, owner, taskToDelete.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = storage.Delete(ctx, owner, taskToDelete.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := storage.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// TestTaskStorage_ListByOwner: порядок отображения и изоляция владельцев
func TestTaskStorage_ListByOwner(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	owner := uuid.New()
	other := uuid.New()

	late := &task.Task{ID: uuid.New(), Owner: owner, Title: "late", Deadline: datePtr(2025, 3, 20), Status: task.StatusPending}
	early := &task.Task{ID: uuid.New(), Owner: owner, Title: "early", Deadline: datePtr(2025, 3, 10), Status: task.StatusPending}
	undated := &task.Task{ID: uuid.New(), Owner: owner, Title: "undated", Status: task.StatusPending}
	foreign := &task.Task{ID: uuid.New(), Owner: other, Title: "foreign", Status: task.StatusPending}

	for _, tk := range []*task.Task{late, undated, early, foreign} {
		require.NoError(t, storage.Create(ctx, tk))
	}

	list, err := storage.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// по возрастанию дедлайна, без дедлайна — в конце
	assert.Equal(t, "early", list[0].Title)
	assert.Equal(t, "late", list[1].Title)
	assert.Equal(t, "undated", list[2].Title)
}

// TestTaskStorage_SnapshotIsolation: снимок не видит последующих мутаций
func TestTaskStorage_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()
	owner := uuid.New()

	created := &task.Task{ID: uuid.New(), Owner: owner, Title: "before", Status: task.StatusPending}
	require.NoError(t, storage.Create(ctx, created))

	snapshot, err := storage.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	created.Title = "after"
	require.NoError(t, storage.Update(ctx, created))

	assert.Equal(t, "before", snapshot[0].Title)

	// и мутация снимка не протекает в хранилище
	snapshot[0].Title = "mangled"
	fresh, err := storage.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", fresh.Title)
}
