package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server      ServerConfig      `split_words:"true"`
	Database    DatabaseConfig    `split_words:"true"`
	Forecast    ForecastConfig    `split_words:"true"`
	Preferences PreferencesConfig `split_words:"true"`
	Scheduler   SchedulerConfig   `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"weatherdash.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherdash"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ForecastConfig contains settings for the upstream weather and geocoding providers.
// The request window always asks for PastDays of trailing history plus
// ForecastDays of forward horizon; the normalizer depends on PastDays to
// locate calendar-today within the daily series.
type ForecastConfig struct {
	ProviderBaseURL string `envconfig:"FORECAST_PROVIDER_BASE_URL" default:"https://api.open-meteo.com/v1"`
	GeocodeBaseURL  string `envconfig:"GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	PastDays        int    `envconfig:"FORECAST_PAST_DAYS" default:"7"`
	ForecastDays    int    `envconfig:"FORECAST_DAYS" default:"14"`
	EnableLogging   bool   `envconfig:"FORECAST_ENABLE_LOGGING" default:"false"`
	LogFilePath     string `envconfig:"FORECAST_LOG_FILE" default:"logs/provider.log"`
}

// PreferencesConfig selects the session preference store backend
type PreferencesConfig struct {
	Backend       string `envconfig:"PREFS_BACKEND" default:"db"`
	RedisAddr     string `envconfig:"PREFS_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"PREFS_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"PREFS_REDIS_DB" default:"0"`
}

// SchedulerConfig contains settings for the background snapshot refresh
type SchedulerConfig struct {
	Enabled         bool `envconfig:"REFRESH_ENABLED" default:"true"`
	RefreshInterval int  `envconfig:"REFRESH_INTERVAL" default:"30"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if err := c.Preferences.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.Path == "" {
			return errors.NewConfigurationError("DB_PATH cannot be empty when DB_DRIVER is sqlite", nil)
		}
	case "postgres":
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > 65535 {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		if err := d.ValidateSSLMode(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("DB_DRIVER must be either 'sqlite' or 'postgres'", nil)
	}
	return nil
}

// Validate checks forecast provider configuration
func (f *ForecastConfig) Validate() error {
	if err := validateBaseURL("FORECAST_PROVIDER_BASE_URL", f.ProviderBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("GEOCODE_BASE_URL", f.GeocodeBaseURL); err != nil {
		return err
	}
	if f.PastDays < 0 || f.PastDays > 14 {
		return errors.NewConfigurationError("FORECAST_PAST_DAYS must be between 0 and 14", nil)
	}
	if f.ForecastDays < 1 || f.ForecastDays > 16 {
		return errors.NewConfigurationError("FORECAST_DAYS must be between 1 and 16", nil)
	}
	return nil
}

// Validate checks preference store configuration
func (p *PreferencesConfig) Validate() error {
	switch p.Backend {
	case "db":
		return nil
	case "redis":
		if p.RedisAddr == "" {
			return errors.NewConfigurationError("PREFS_REDIS_ADDR cannot be empty when PREFS_BACKEND is redis", nil)
		}
		return nil
	default:
		return errors.NewConfigurationError("PREFS_BACKEND must be either 'db' or 'redis'", nil)
	}
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if !s.Enabled {
		return nil
	}
	if s.RefreshInterval < 1 {
		return errors.NewConfigurationError("REFRESH_INTERVAL must be at least 1 minute", nil)
	}
	if s.RefreshInterval > 1440 {
		return errors.NewConfigurationError("REFRESH_INTERVAL cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
