package app

import (
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"weatherdash.app/api"
	"weatherdash.app/config"
	"weatherdash.app/database"
	"weatherdash.app/geocode"
	"weatherdash.app/metrics"
	"weatherdash.app/normalize"
	"weatherdash.app/providers"
	"weatherdash.app/repository"
	"weatherdash.app/scheduler"
	"weatherdash.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

// initializeDatabase opens the preferences database. When the redis backend
// is selected no database connection is made at all.
func (app *Application) initializeDatabase() error {
	if app.config.Preferences.Backend != "db" {
		slog.Info("Preferences backend is redis, skipping database initialization")
		return nil
	}

	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	resolver := geocode.NewResolver(geocode.NewNominatimClient(app.config.Forecast.GeocodeBaseURL))

	provider, err := app.createForecastProvider()
	if err != nil {
		return fmt.Errorf("create forecast provider: %w", err)
	}

	prefsRepo, err := app.createPreferencesRepository()
	if err != nil {
		return fmt.Errorf("create preferences repository: %w", err)
	}

	weatherService := service.NewWeatherService(
		resolver,
		provider,
		normalize.NewNormalizer(),
		prefsRepo,
		metrics.NewQueryMetrics("api"),
		app.config.Forecast.PastDays,
	)

	app.server = api.NewServer(app.db, app.config, weatherService)
	app.scheduler = scheduler.NewScheduler(&app.config.Scheduler, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}

// createForecastProvider builds the upstream provider, optionally wrapped in
// the file logging decorator
func (app *Application) createForecastProvider() (providers.ForecastProvider, error) {
	var provider providers.ForecastProvider = providers.NewOpenMeteoProvider(&app.config.Forecast)

	if app.config.Forecast.EnableLogging {
		fileLogger, err := providers.NewFileLogger(app.config.Forecast.LogFilePath)
		if err != nil {
			return nil, err
		}
		provider = providers.NewForecastLoggerDecorator(provider, fileLogger, "open-meteo")
	}

	return provider, nil
}

func (app *Application) createPreferencesRepository() (repository.PreferencesRepository, error) {
	if app.config.Preferences.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     app.config.Preferences.RedisAddr,
			Password: app.config.Preferences.RedisPassword,
			DB:       app.config.Preferences.RedisDB,
		})
		return repository.NewRedisPreferencesRepository(client, 0), nil
	}

	return repository.NewDBPreferencesRepository(app.db), nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting snapshot refresh scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
