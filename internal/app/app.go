package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskease/internal/auth"
	"taskease/internal/config"
	"taskease/internal/handlers"
	"taskease/internal/logger"
	"taskease/internal/middleware"
	"taskease/internal/migrations"
	repo "taskease/internal/repository"
	taskfile "taskease/internal/repository/task/file"
	taskmem "taskease/internal/repository/task/inmemory"
	taskpg "taskease/internal/repository/task/postgres"
	usermem "taskease/internal/repository/user/inmemory"
	userpg "taskease/internal/repository/user/postgres"
	"taskease/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	taskRepo  repo.TaskRepository
	userRepo  repo.UserRepository
	tokens    *auth.TokenManager
	shutdowns []func() // выполняются в обратном порядке при остановке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initRepositories(ctx); err != nil {
		return err
	}

	taskService := service.NewTaskService(a.taskRepo)
	taskHandler := handlers.NewTaskHandler(&taskService)

	if a.config.Auth.Enabled {
		a.tokens = auth.NewTokenManager(auth.TokenConfig{
			Secret: a.config.Auth.JWTSecret,
			TTL:    a.config.Auth.TokenTTL,
		})
	}

	a.router = chi.NewRouter()
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logging)
	a.router.Use(middleware.RateLimit(100))
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))

	a.router.Get("/health", taskHandler.HealthCheck)

	if a.config.Auth.Enabled {
		hasher := auth.NewPasswordHasher(a.config.Auth.BcryptCost)
		authService := service.NewAuthService(a.userRepo, hasher, a.tokens)
		authHandler := handlers.NewAuthHandler(&authService)

		a.router.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})
	}

	a.router.Route("/tasks", func(r chi.Router) {
		if a.config.Auth.Enabled {
			r.Use(middleware.Authenticate(a.tokens))
		} else {
			r.Use(middleware.SoloOwner)
		}

		r.Get("/", taskHandler.GetTasks)          // GET /tasks
		r.Post("/", taskHandler.PostTask)         // POST /tasks
		r.Get("/upcoming", taskHandler.GetUpcomingTasks) // GET /tasks/upcoming
		r.Get("/analytics", taskHandler.GetAnalytics)    // GET /tasks/analytics

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}

			r.Put("/status", taskHandler.SetTaskStatus) // PUT /tasks/{id}/status
		})
	})

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

func (a *App) initRepositories(ctx context.Context) error {
	switch a.config.Repository.Type {
	case "postgres":
		if err := migrations.Up(a.config.Database.URL); err != nil {
			return err
		}

		storage, err := taskpg.New(ctx, a.config.Database.URL)
		if err != nil {
			return fmt.Errorf("создание postgres репозитория: %w", err)
		}
		a.taskRepo = storage
		a.userRepo = userpg.New(storage.Pool())
		a.shutdowns = append(a.shutdowns, storage.Close)

	case "file":
		storage, err := taskfile.New(a.config.Repository.Path)
		if err != nil {
			return fmt.Errorf("открытие файлового репозитория: %w", err)
		}
		a.taskRepo = storage
		a.userRepo = usermem.NewUserStorage()

	case "inmemory":
		a.taskRepo = taskmem.NewTaskStorage()
		a.userRepo = usermem.NewUserStorage()

	default:
		return fmt.Errorf("неизвестный repository.type: %q", a.config.Repository.Type)
	}

	return nil
}

// Run блокируется до отмены контекста, потом гасит сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Server started")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return fmt.Errorf("запуск сервера: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	a.runShutdowns()
	return nil
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
