package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/beqramo/case/internal/mealdb"
)

// Config captures mealmarket's runtime settings.
type Config struct {
	APIBase        string
	DataDir        string
	Store          string
	LogFile        string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/mealmarket/config.toml"
	defaultDataDir        = "~/.local/share/mealmarket"
	defaultStore          = "file"
	defaultLogName        = "mealmarket.log"
	defaultRequestTimeout = 10 * time.Second
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		DataDir        string `toml:"data_dir"`
		Store          string `toml:"store"`
		LogFile        string `toml:"log_file"`
		RequestTimeout string `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
		cfg.LogFile = filepath.Join(cfg.DataDir, defaultLogName)
	}
	if store := strings.ToLower(strings.TrimSpace(raw.Store)); store != "" {
		cfg.Store = store
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("request_timeout must be positive, got %s", d)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func defaults() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		APIBase:        mealdb.DefaultBaseURL,
		DataDir:        dataDir,
		Store:          defaultStore,
		LogFile:        filepath.Join(dataDir, defaultLogName),
		RequestTimeout: defaultRequestTimeout,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
