package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"taskease/internal/auth"
	"taskease/internal/logger"
	"taskease/internal/models/user"
	repo "taskease/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	repo   repo.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAuthService(userRepo repo.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) AuthService {
	return AuthService{
		repo:   userRepo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register создаёт аккаунт. Пароль в открытом виде никогда не
// сохраняется и не логируется.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return uuid.Nil, NewValidationError("username", "не может быть пустым")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return uuid.Nil, NewValidationError("email", "неверный формат")
	}
	if password == "" {
		return uuid.Nil, NewValidationError("password", "не может быть пустым")
	}
	// у bcrypt жёсткий предел 72 байта
	if len(password) > 72 {
		return uuid.Nil, NewValidationError("password", "не длиннее 72 символов")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.Error("Service: Ошибка хеширования пароля", err)
		return uuid.Nil, NewStorageFailure("register", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			logger.Info("Service: Повторная регистрация", zap.String("username", username))
			return uuid.Nil, NewDuplicateIdentity("username/email")
		}
		logger.Error("Service: Не удалось создать пользователя", err)
		return uuid.Nil, NewStorageFailure("register", err)
	}

	return u.ID, nil
}

// Authenticate возвращает id пользователя при совпадении пароля.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (uuid.UUID, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return uuid.Nil, NewNotFound("пользователь", username)
		}
		logger.Error("Service: Не удалось получить пользователя", err)
		return uuid.Nil, NewStorageFailure("authenticate", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		logger.Info("Service: Неудачный вход", zap.String("username", username))
		return uuid.Nil, NewInvalidCredentials()
	}

	return u.ID, nil
}

// Login аутентифицирует и выдаёт сессионный токен.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, uuid.UUID, error) {
	id, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", uuid.Nil, err
	}

	token, err := s.tokens.Generate(id)
	if err != nil {
		logger.Error("Service: Ошибка выпуска токена", err)
		return "", uuid.Nil, NewStorageFailure("login", err)
	}
	return token, id, nil
}
