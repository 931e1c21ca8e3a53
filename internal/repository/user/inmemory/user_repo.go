package inmemory

import (
	"context"
	"sync"
	"taskease/internal/models/user"
	repo "taskease/internal/repository"
	"time"

	"github.com/google/uuid"
)

type UserStorage struct {
	byID       map[uuid.UUID]*user.User
	byUsername map[string]uuid.UUID
	emails     map[string]struct{}
	mtx        *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		byID:       make(map[uuid.UUID]*user.User),
		byUsername: make(map[string]uuid.UUID),
		emails:     make(map[string]struct{}),
		mtx:        &sync.RWMutex{},
	}
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.byUsername[u.Username]; exists {
		return repo.ErrDuplicate
	}
	if _, exists := s.emails[u.Email]; exists {
		return repo.ErrDuplicate
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	stored := *u
	s.byID[u.ID] = &stored
	s.byUsername[u.Username] = u.ID
	s.emails[u.Email] = struct{}{}
	return nil
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}

	u := *s.byID[id]
	return &u, nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	u := *stored
	return &u, nil
}

var _ repo.UserRepository = (*UserStorage)(nil)
