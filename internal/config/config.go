package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/database"
	"github.com/mrlokans/booknotes/internal/scheduler"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Demo
		Tasks
		ContentCleanup
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Catalog struct {
		SearchMode   catalog.SearchMode
		StrictGenres bool // Reject genres outside the vocabulary on writes
	}
	Demo struct {
		Enabled bool // Block every write request
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	ContentCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Metrics struct {
		Enabled bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	// Catalog defaults
	v.SetDefault("search_mode", string(catalog.SearchTitleAuthor))
	v.SetDefault("strict_genres", true)

	v.SetDefault("demo_mode", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("content_cleanup_enabled", true)
	v.SetDefault("content_cleanup_schedule", scheduler.DefaultCleanupSchedule)

	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Catalog: Catalog{
			SearchMode:   catalog.SearchMode(v.GetString("SEARCH_MODE")),
			StrictGenres: v.GetBool("STRICT_GENRES"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		ContentCleanup: ContentCleanup{
			Enabled:  v.GetBool("CONTENT_CLEANUP_ENABLED"),
			Schedule: v.GetString("CONTENT_CLEANUP_SCHEDULE"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

// Validate checks the values that are parsed further downstream, normalizing
// the search mode. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	mode, err := catalog.ParseSearchMode(string(c.Catalog.SearchMode))
	if err != nil {
		errs = append(errs, fmt.Errorf("SEARCH_MODE: %w", err))
	} else {
		c.Catalog.SearchMode = mode
	}

	if _, err := database.ParseLogLevel(c.Database.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("DATABASE_LOG_LEVEL: %w", err))
	}

	if c.Database.Path == "" {
		errs = append(errs, errors.New("DATABASE_PATH: must not be empty"))
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d is out of range", c.HTTP.Port))
	}

	if c.Tasks.Enabled && c.ContentCleanup.Enabled {
		if err := scheduler.ValidateSchedule(c.ContentCleanup.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("CONTENT_CLEANUP_SCHEDULE: %w", err))
		}
	}

	return errors.Join(errs...)
}
