package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvHost            = "PONG_HOST"
	EnvPort            = "PONG_PORT"
	EnvContentRoot     = "PONG_CONTENT_ROOT"
	EnvStaticDir       = "PONG_STATIC_DIR"
	EnvRootStatic      = "PONG_ROOT_STATIC"
	EnvMetrics         = "PONG_METRICS"
	EnvShutdownTimeout = "PONG_SHUTDOWN_TIMEOUT"
	EnvMaxBodyBytes    = "PONG_MAX_BODY_BYTES"
)

// Config holds the server settings
type Config struct {
	Host            string
	Port            string
	ContentRoot     string
	StaticDir       string
	RootStatic      bool
	SaveData        bool
	Metrics         bool
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            "5000",
		ContentRoot:     ".",
		StaticDir:       "static",
		RootStatic:      true,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    10 << 20,
	}
}

// Load builds a config from defaults, an optional .env file and the
// environment. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	var err error

	if v, ok := os.LookupEnv(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv(EnvContentRoot); ok {
		cfg.ContentRoot = v
	}
	if v, ok := os.LookupEnv(EnvStaticDir); ok {
		cfg.StaticDir = v
	}
	if v, ok := os.LookupEnv(EnvRootStatic); ok {
		if cfg.RootStatic, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvRootStatic, err)
		}
	}
	if v, ok := os.LookupEnv(EnvMetrics); ok {
		if cfg.Metrics, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvMetrics, err)
		}
	}
	if v, ok := os.LookupEnv(EnvShutdownTimeout); ok {
		if cfg.ShutdownTimeout, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvShutdownTimeout, err)
		}
	}
	if v, ok := os.LookupEnv(EnvMaxBodyBytes); ok {
		if cfg.MaxBodyBytes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvMaxBodyBytes, err)
		}
	}

	return cfg, nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// StaticRoot returns the static asset directory; a relative StaticDir is
// taken relative to the content root.
func (c Config) StaticRoot() string {
	if filepath.IsAbs(c.StaticDir) {
		return c.StaticDir
	}
	return filepath.Join(c.ContentRoot, c.StaticDir)
}

// Validate checks the settings that would otherwise fail at startup
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}

	info, err := os.Stat(c.ContentRoot)
	if err != nil {
		return fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("content root %s is not a directory", c.ContentRoot)
	}
	return nil
}
