package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid config")

// Source kinds.
const (
	SourceFixture = "fixture"
	SourceFile    = "file"
	SourceRemote  = "remote"
)

// Config holds the resolved takedown settings.
type Config struct {
	Source      string
	CatalogPath string
	RemoteURL   string
	Listen      string
	LogFile     string
	LogLevel    string
	Layout      string
	PollSeconds int
	CORSOrigins []string
	RateLimit   int // requests per minute per client IP
}

const (
	defaultConfigPath  = "~/.config/takedown/config.toml"
	defaultCatalogPath = "~/.config/takedown/catalog.yaml"
	defaultLogFile     = "~/.local/share/takedown/takedown.log"
	defaultRemoteURL   = "127.0.0.1:7611"
	defaultListen      = "127.0.0.1:7611"
	defaultLogLevel    = "info"
	defaultLayout      = "admin"
	defaultPollSeconds = 5
	defaultRateLimit   = 300

	envPrefix = "TAKEDOWN_"
)

// fileConfig mirrors the TOML file; koanf tags name the env overlay keys.
type fileConfig struct {
	Source      string   `toml:"source" koanf:"source"`
	CatalogPath string   `toml:"catalog_path" koanf:"catalog_path"`
	RemoteURL   string   `toml:"remote_url" koanf:"remote_url"`
	Listen      string   `toml:"listen" koanf:"listen"`
	LogFile     string   `toml:"log_file" koanf:"log_file"`
	LogLevel    string   `toml:"log_level" koanf:"log_level"`
	Layout      string   `toml:"layout" koanf:"layout"`
	PollSeconds int      `toml:"poll_seconds" koanf:"poll_seconds"`
	CORSOrigins []string `toml:"cors_origins" koanf:"cors_origins"`
	RateLimit   int      `toml:"rate_limit" koanf:"rate_limit"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:      SourceFixture,
		CatalogPath: mustExpand(defaultCatalogPath),
		RemoteURL:   defaultRemoteURL,
		Listen:      defaultListen,
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    defaultLogLevel,
		Layout:      defaultLayout,
		PollSeconds: defaultPollSeconds,
		CORSOrigins: []string{"*"},
		RateLimit:   defaultRateLimit,
	}
}

// Load reads the TOML config at path (or the default location), then applies
// TAKEDOWN_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		bytes, readErr := io.ReadAll(file)
		_ = file.Close()
		if readErr != nil {
			return Config{}, fmt.Errorf("read config: %w", readErr)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := applyEnv(&raw); err != nil {
		return Config{}, err
	}

	return resolve(raw)
}

// applyEnv overlays TAKEDOWN_SOURCE, TAKEDOWN_REMOTE_URL, ... onto raw.
func applyEnv(raw *fileConfig) error {
	k := koanf.New(".")
	provider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	if len(k.Keys()) == 0 {
		return nil
	}
	var overlay fileConfig
	if err := k.UnmarshalWithConf("", &overlay, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: env: %v", ErrInvalidConfig, err)
	}
	raw.merge(overlay)
	return nil
}

// merge copies the fields set in o over c.
func (c *fileConfig) merge(o fileConfig) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&c.Source, o.Source)
	setString(&c.CatalogPath, o.CatalogPath)
	setString(&c.RemoteURL, o.RemoteURL)
	setString(&c.Listen, o.Listen)
	setString(&c.LogFile, o.LogFile)
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.Layout, o.Layout)
	if o.PollSeconds != 0 {
		c.PollSeconds = o.PollSeconds
	}
	if o.RateLimit != 0 {
		c.RateLimit = o.RateLimit
	}
	if len(o.CORSOrigins) > 0 {
		c.CORSOrigins = o.CORSOrigins
	}
}

func resolve(raw fileConfig) (Config, error) {
	cfg := Default()

	if v := strings.ToLower(strings.TrimSpace(raw.Source)); v != "" {
		cfg.Source = v
	}
	switch cfg.Source {
	case SourceFixture, SourceFile, SourceRemote:
	default:
		return Config{}, fmt.Errorf("%w: source %q (want fixture, file or remote)", ErrInvalidConfig, raw.Source)
	}

	if v := strings.TrimSpace(raw.CatalogPath); v != "" {
		cfg.CatalogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.RemoteURL); v != "" {
		cfg.RemoteURL = v
	}
	if v := strings.TrimSpace(raw.Listen); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		if _, err := zapcore.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, raw.LogLevel)
		}
		cfg.LogLevel = v
	}

	if v := strings.ToLower(strings.TrimSpace(raw.Layout)); v != "" {
		if v != "admin" && v != "review" {
			return Config{}, fmt.Errorf("%w: layout %q (want admin or review)", ErrInvalidConfig, raw.Layout)
		}
		cfg.Layout = v
	}

	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.RateLimit > 0 {
		cfg.RateLimit = raw.RateLimit
	}

	if origins := trimAll(raw.CORSOrigins); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}

	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
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
