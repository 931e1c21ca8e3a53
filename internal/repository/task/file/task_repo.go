package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"taskease/internal/logger"
	"taskease/internal/models/task"
	repo "taskease/internal/repository"
	"time"

	"github.com/google/uuid"
)

// TaskStorage is the flat-file variant: the whole task list is kept in
// memory and rewritten to one JSON file on every mutation. The write
// goes to a temp file in the same directory followed by os.Rename;
// the in-memory state is swapped only after the rename succeeds.
type TaskStorage struct {
	path    string
	storage map[uuid.UUID]*task.Task
	ids     []uuid.UUID
	mtx     *sync.RWMutex
}

// New opens the store at path; a missing file starts empty.
func New(path string) (*TaskStorage, error) {
	s := &TaskStorage{
		path:    path,
		storage: make(map[uuid.UUID]*task.Task),
		ids:     []uuid.UUID{},
		mtx:     &sync.RWMutex{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TaskStorage) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("чтение %s: %w", s.path, errors.Join(repo.ErrStorage, err))
	}

	var tasks []*task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("разбор %s: %w", s.path, errors.Join(repo.ErrStorage, err))
	}

	for _, t := range tasks {
		s.storage[t.ID] = t
		s.ids = append(s.ids, t.ID)
	}
	logger.Info("Repository: Файл задач загружен")
	return nil
}

// flush writes the given state to disk. On success it becomes the new
// in-memory state; on failure the caller's original state is kept.
func (s *TaskStorage) flush(storage map[uuid.UUID]*task.Task, ids []uuid.UUID) error {
	tasks := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, storage[id])
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация задач: %w", errors.Join(repo.ErrStorage, err))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("временный файл: %w", errors.Join(repo.ErrStorage, err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("запись задач: %w", errors.Join(repo.ErrStorage, err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("синхронизация файла: %w", errors.Join(repo.ErrStorage, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("закрытие файла: %w", errors.Join(repo.ErrStorage, err))
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("замена файла: %w", errors.Join(repo.ErrStorage, err))
	}

	s.storage = storage
	s.ids = ids
	return nil
}

func (s *TaskStorage) cloneState() (map[uuid.UUID]*task.Task, []uuid.UUID) {
	storage := make(map[uuid.UUID]*task.Task, len(s.storage))
	for id, t := range s.storage {
		storage[id] = t.Clone()
	}
	ids := make([]uuid.UUID, len(s.ids))
	copy(ids, s.ids)
	return storage, ids
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		logger.Error("Repository: Каталог хранилища недоступен", err)
		return errors.Join(repo.ErrStorage, err)
	}
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = time.Now()
	}

	storage, ids := s.cloneState()
	storage[taskToCreate.ID] = taskToCreate.Clone()
	ids = append(ids, taskToCreate.ID)

	return s.flush(storage, ids)
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok || existing.Owner != taskToUpdate.Owner {
		return repo.ErrNotFound
	}

	now := time.Now()
	taskToUpdate.UpdatedAt = &now

	storage, ids := s.cloneState()
	storage[taskToUpdate.ID] = taskToUpdate.Clone()

	return s.flush(storage, ids)
}

func (s *TaskStorage) GetByID(ctx context.Context, owner, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok || taskToGet.Owner != owner {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, owner, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToDelete, ok := s.storage[id]
	if !ok || taskToDelete.Owner != owner {
		return repo.ErrNotFound
	}

	storage, ids := s.cloneState()
	delete(storage, id)
	for ind, val := range ids {
		if val == id {
			ids = append(ids[:ind], ids[ind+1:]...)
			break
		}
	}

	return s.flush(storage, ids)
}

func (s *TaskStorage) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if t.Owner != owner {
			continue
		}
		res = append(res, t.Clone())
	}

	task.Sort(res)
	return res, nil
}

var _ repo.TaskRepository = (*TaskStorage)(nil)
