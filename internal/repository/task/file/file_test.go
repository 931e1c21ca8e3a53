package file_test

import (
	"context"
	"os"
	"path/filepath"
	"taskease/internal/models/task"
	"taskease/internal/repository"
	"taskease/internal/repository/task/file"
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

func newStore(t *testing.T) (*file.TaskStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	storage, err := file.New(path)
	require.NoError(t, err)
	return storage, path
}

// TestFileStorage_CreateAndReload: список переживает перезапуск,
// порядок и поля совпадают поэлементно
func TestFileStorage_CreateAndReload(t *testing.T) {
	ctx := context.Background()
	storage, path := newStore(t)
	owner := uuid.New()

	tasks := []*task.Task{
		{ID: uuid.New(), Owner: owner, Title: "early", Category: "School", Deadline: datePtr(2025, 3, 10), Status: task.StatusPending},
		{ID: uuid.New(), Owner: owner, Title: "late", Category: "Health", Deadline: datePtr(2025, 3, 20), Status: task.StatusCompleted},
		{ID: uuid.New(), Owner: owner, Title: "undated", Category: "Other", Status: task.StatusPending},
	}
	for _, tk := range tasks {
		require.NoError(t, storage.Create(ctx, tk))
	}

	before, err := storage.ListByOwner(ctx, owner)
	require.NoError(t, err)

	reloaded, err := file.New(path)
	require.NoError(t, err)

	after, err := reloaded.ListByOwner(ctx, owner)
	require.NoError(t, err)

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Title, after[i].Title)
		assert.Equal(t, before[i].Category, after[i].Category)
		assert.Equal(t, before[i].Status, after[i].Status)
		if before[i].Deadline == nil {
			assert.Nil(t, after[i].Deadline)
		} else {
			require.NotNil(t, after[i].Deadline)
			assert.True(t, before[i].Deadline.Equal(*after[i].Deadline))
		}
	}
}

// TestFileStorage_UpdateAndDelete пишутся насквозь
func TestFileStorage_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	storage, path := newStore(t)
	owner := uuid.New()

	created := &task.Task{ID: uuid.New(), Owner: owner, Title: "task", Status: task.StatusPending}
	require.NoError(t, storage.Create(ctx, created))

	created.Status = task.StatusCompleted
	require.NoError(t, storage.Update(ctx, created))

	reloaded, err := file.New(path)
	require.NoError(t, err)
	got, err := reloaded.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, got.Status)

	require.NoError(t, storage.Delete(ctx, owner, created.ID))

	reloaded, err = file.New(path)
	require.NoError(t, err)
	_, err = reloaded.GetByID(ctx, owner, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestFileStorage_NotFound: операции по чужому или отсутствующему id
func TestFileStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStore(t)
	owner := uuid.New()

	created := &task.Task{ID: uuid.New(), Owner: owner, Title: "task", Status: task.StatusPending}
	require.NoError(t, storage.Create(ctx, created))

	_, err := storage.GetByID(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = storage.Update(ctx, &task.Task{ID: uuid.New(), Owner: owner})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = storage.Delete(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestFileStorage_NoTempLeftovers: после мутаций в каталоге только
// сам файл задач
func TestFileStorage_NoTempLeftovers(t *testing.T) {
	ctx := context.Background()
	storage, path := newStore(t)
	owner := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, storage.Create(ctx, &task.Task{
			ID:     uuid.New(),
			Owner:  owner,
			Title:  "task",
			Status: task.StatusPending,
		}))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

// TestFileStorage_RollbackOnWriteFailure: при неудачной записи память
// остаётся прежней
func TestFileStorage_RollbackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	storage, err := file.New(path)
	require.NoError(t, err)
	owner := uuid.New()

	created := &task.Task{ID: uuid.New(), Owner: owner, Title: "kept", Status: task.StatusPending}
	require.NoError(t, storage.Create(ctx, created))

	// без каталога временный файл создать нельзя
	require.NoError(t, os.RemoveAll(dir))

	err = storage.Create(ctx, &task.Task{ID: uuid.New(), Owner: owner, Title: "lost", Status: task.StatusPending})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStorage)

	list, err := storage.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Title)
}
