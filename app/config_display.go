package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"weatherdash.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Driver: %s\n", cfg.Database.Driver)
	log.Printf("  Path: %s\n", cfg.Database.Path)
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)
	log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)

	log.Printf("\nFORECAST:\n")
	log.Printf("  Provider Base URL: %s\n", cfg.Forecast.ProviderBaseURL)
	log.Printf("  Geocode Base URL: %s\n", cfg.Forecast.GeocodeBaseURL)
	log.Printf("  Past Days: %d\n", cfg.Forecast.PastDays)
	log.Printf("  Forecast Days: %d\n", cfg.Forecast.ForecastDays)
	log.Printf("  Provider Logging: %t\n", cfg.Forecast.EnableLogging)

	log.Printf("\nPREFERENCES:\n")
	log.Printf("  Backend: %s\n", cfg.Preferences.Backend)
	if cfg.Preferences.Backend == "redis" {
		log.Printf("  Redis Addr: %s\n", cfg.Preferences.RedisAddr)
		log.Printf("  Redis Password: %s\n", cd.maskString(cfg.Preferences.RedisPassword))
		log.Printf("  Redis DB: %d\n", cfg.Preferences.RedisDB)
	}

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Enabled: %t\n", cfg.Scheduler.Enabled)
	log.Printf("  Refresh Interval: %d minutes\n", cfg.Scheduler.RefreshInterval)

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}
