// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deskhub/deskhub/internal/domain"
	"github.com/deskhub/deskhub/internal/infra/blob"
	"github.com/deskhub/deskhub/internal/infra/config"
	"github.com/deskhub/deskhub/internal/infra/logging"
	"github.com/deskhub/deskhub/internal/infra/session"
	"github.com/deskhub/deskhub/internal/store"
	"github.com/deskhub/deskhub/internal/usecase"
)

// Config holds the application configuration paths.
type Config struct {
	Root       string // Working directory the CLI was invoked in
	DeskhubDir string // Path to the .deskhub directory
	DataDir    string // Path to the blob data directory
}

// newConfig resolves the deskhub paths for a working directory,
// honoring a [storage] dir override from the app config.
func newConfig(root string, appConfig *domain.Config) Config {
	deskhubDir := domain.DeskhubDir(root)
	dataDir := domain.DataDir(deskhubDir)
	if appConfig != nil && appConfig.Storage.Dir != "" {
		dataDir = appConfig.Storage.Dir
	}
	return Config{
		Root:       root,
		DeskhubDir: deskhubDir,
		DataDir:    dataDir,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store            domain.TaskStore
	Blobs            domain.BlobStore
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	Sessions         domain.SessionProvider
	ConfigLoader     domain.ConfigLoader

	// Pointer fields
	Logger    *logging.Logger
	AppConfig *domain.Config

	// Configuration
	Config Config
}

// New creates a new Container rooted at the given directory.
// The task store is only opened if the data directory exists; commands
// other than 'init' fail with ErrNotInitialized before that.
func New(dir string) (*Container, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		dir = cwd
	}

	deskhubDir := domain.DeskhubDir(dir)
	configLoader := config.NewLoader(deskhubDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := newConfig(dir, appConfig)
	logger := logging.New(cfg.DeskhubDir, logging.ParseLevel(appConfig.Log.Level))
	blobs := blob.New(cfg.DataDir)
	clock := domain.RealClock{}

	c := &Container{
		Blobs:            blobs,
		StoreInitializer: blobs,
		Clock:            clock,
		Sessions:         session.New(cfg.DeskhubDir),
		ConfigLoader:     configLoader,
		Logger:           logger,
		AppConfig:        appConfig,
		Config:           cfg,
	}

	if blobs.IsInitialized() {
		taskStore, err := store.Open(blobs, clock, logger)
		if err != nil {
			return nil, fmt.Errorf("open task store: %w", err)
		}
		c.Store = taskStore
	}

	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, taskStore domain.TaskStore, sessions domain.SessionProvider, configLoader domain.ConfigLoader, clock domain.Clock) *Container {
	return &Container{
		Store:        taskStore,
		Sessions:     sessions,
		ConfigLoader: configLoader,
		Clock:        clock,
		Config:       cfg,
	}
}

// domainLogger adapts the concrete logger to the domain interface
// without smuggling a typed nil past the callers' nil checks.
func (c *Container) domainLogger() domain.Logger {
	if c.Logger == nil {
		return nil
	}
	return c.Logger
}

// RequireStore returns the task store, or ErrNotInitialized when the
// data directory has not been created yet.
func (c *Container) RequireStore() (domain.TaskStore, error) {
	if c.Store == nil {
		return nil, domain.ErrNotInitialized
	}
	return c.Store, nil
}

// Initialize creates the data directory and opens the task store,
// bootstrapping the seed collection on first run.
func (c *Container) Initialize() error {
	if c.Store != nil {
		return domain.ErrAlreadyInitialized
	}
	if err := c.StoreInitializer.Initialize(); err != nil {
		return err
	}
	taskStore, err := store.Open(c.Blobs, c.Clock, c.domainLogger())
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	c.Store = taskStore
	return nil
}

// CurrentIdentity returns the logged-in CLI actor.
func (c *Container) CurrentIdentity() (*domain.Identity, error) {
	return c.Sessions.Current()
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.Logger != nil {
		return c.Logger.Close()
	}
	return nil
}

// SessionPath returns the session file location, for display purposes.
func (c *Container) SessionPath() string {
	return filepath.Join(c.Config.DeskhubDir, "session.json")
}

// UseCase factory methods

// FileTaskUseCase returns a new FileTask use case.
func (c *Container) FileTaskUseCase() (*usecase.FileTask, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewFileTask(s, c.domainLogger()), nil
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() (*usecase.UpdateTask, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewUpdateTask(s, c.domainLogger()), nil
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() (*usecase.DeleteTask, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewDeleteTask(s, c.domainLogger()), nil
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() (*usecase.ShowTask, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewShowTask(s), nil
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() (*usecase.ListTasks, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewListTasks(s), nil
}

// TaskHistoryUseCase returns a new TaskHistory use case.
func (c *Container) TaskHistoryUseCase() (*usecase.TaskHistory, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewTaskHistory(s), nil
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() (*usecase.ImportTasks, error) {
	s, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	return usecase.NewImportTasks(s, c.domainLogger()), nil
}

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.ConfigLoader, c.Sessions)
}
