package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pointage/adapters/sqlite"
	"pointage/app"
	"pointage/internal/api"
	"pointage/internal/auth"
	"pointage/internal/config"
	"pointage/internal/logging"
	"pointage/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *logging.Logger

	// Infrastructure
	DB       *sqlx.DB
	Migrator *sqlite.Migrator
	TxRunner ports.TxRunner

	// Repositories (data access layer)
	UserRepo        ports.UserRepository
	SessionRepo     ports.SessionRepository
	EventRepo       ports.EventRepository
	WorkstationRepo ports.WorkstationRepository
	ReportRepo      ports.ReportRepository

	// Live update fan-out
	SSEHub *api.SSEHub

	// Services
	Tracker *app.TrackerService
	Reports *app.ReportService

	// Auth
	TokenIssuer *auth.TokenIssuer

	// HTTP
	Server *api.Server
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		log = logging.NewDefaultLogger()
	}

	return &Container{
		Config: cfg,
		Log:    log,
	}, nil
}

// Init opens the database, applies migrations and wires every component
func (c *Container) Init(ctx context.Context) error {
	db, err := sqlite.Open(c.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.DB = db

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.Migrator = sqlite.NewMigrator(db)
	if err := c.Migrator.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	c.initRepositories()
	c.initServices()
	c.initHTTP()

	c.Log.Info("container initialized, database at %s", c.Config.Database.Path)
	return nil
}

func (c *Container) initRepositories() {
	c.TxRunner = sqlite.NewTxRunner(c.DB)
	c.UserRepo = sqlite.NewUserRepository(c.DB)
	c.SessionRepo = sqlite.NewSessionRepository(c.DB)
	c.EventRepo = sqlite.NewEventRepository(c.DB)
	c.WorkstationRepo = sqlite.NewWorkstationRepository(c.DB)
	c.ReportRepo = sqlite.NewReportRepository(c.DB)
}

func (c *Container) initServices() {
	c.SSEHub = api.NewSSEHub(c.Log)

	c.Tracker = app.NewTrackerService(
		c.TxRunner, c.SessionRepo, c.EventRepo, c.WorkstationRepo, c.SSEHub, c.Log)
	c.Reports = app.NewReportService(
		c.ReportRepo, c.EventRepo, c.Config.Reports.DefaultRangeDays, c.Log)

	c.TokenIssuer = auth.NewTokenIssuer(c.Config.Auth)
}

func (c *Container) initHTTP() {
	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(c.TokenIssuer, c.UserRepo, c.Log),
		TimeTracking: api.NewTimeTrackingHandler(c.Tracker, c.Log),
		Dashboard:    api.NewDashboardHandler(c.Reports, c.SSEHub, c.Log),
		Workstations: api.NewWorkstationHandler(c.WorkstationRepo, c.Log),
		Reports:      api.NewReportHandler(c.Reports, c.Log),
	}
	c.Server = api.NewServer(c.Config.Server, c.TokenIssuer, c.UserRepo, handlers, c.Log)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
