package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/platform/postgres"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	categoryStore store.CategoryStore
	priorityStore store.PriorityStore
	taskStore     store.TaskStore

	userService     service.UserService
	categoryService service.CategoryService
	priorityService service.PriorityService
	taskService     service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the configuration, logger and database connection
// that must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewUserStore(db, logger)
	app.categoryStore = postgres.NewCategoryStore(db, logger)
	app.priorityStore = postgres.NewPriorityStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)

	var err error
	app.userService, err = service.NewUserService(app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(app.categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.priorityService, err = service.NewPriorityService(app.priorityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create priority service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		db,
		app.taskStore,
		app.userStore,
		app.categoryStore,
		app.priorityStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
