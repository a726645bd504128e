package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64
	MaxPages       int // 0 means unlimited

	// Job state
	JobTTL time.Duration

	// Outline extraction
	LineTolerance float64
	ExceptionPage int // negative disables the exception-page detector
	PageWorkers   int

	// Batch mode
	InputDir  string
	OutputDir string

	// Extraction latency stats
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCOUTLINE_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		MaxPages:       envInt("MAX_PAGES", 2000),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		LineTolerance: envFloat("LINE_TOLERANCE", 3.0),
		ExceptionPage: envInt("EXCEPTION_PAGE", outline.DefaultExceptionPage),
		PageWorkers:   envInt("PAGE_WORKERS", 4),

		InputDir:  envOr("INPUT_DIR", "input"),
		OutputDir: envOr("OUTPUT_DIR", "output"),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxPages < 0 {
		cfg.MaxPages = 0
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.LineTolerance <= 0 {
		cfg.LineTolerance = 3.0
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// OutlineOptions returns the extraction settings carried by the config.
func (c Config) OutlineOptions() outline.Options {
	return outline.Options{
		LineTolerance: c.LineTolerance,
		ExceptionPage: c.ExceptionPage,
		Workers:       c.PageWorkers,
	}
}

// Validate checks values that flags can set after Load has clamped the
// environment.
func (c Config) Validate() error {
	if c.LineTolerance <= 0 || math.IsNaN(c.LineTolerance) || math.IsInf(c.LineTolerance, 0) {
		return fmt.Errorf("LINE_TOLERANCE must be a positive number, got %v", c.LineTolerance)
	}
	if c.PageWorkers <= 0 {
		return fmt.Errorf("PAGE_WORKERS must be positive, got %d", c.PageWorkers)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("MAX_PAGES must not be negative, got %d", c.MaxPages)
	}
	return nil
}

// ValidateServer adds the checks that only apply to the HTTP service.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("DOCOUTLINE_API_KEY is required")
	}
	if c.WorkerCount <= 0 || c.MaxQueueSize <= 0 {
		return fmt.Errorf("WORKER_COUNT and MAX_QUEUE_SIZE must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
