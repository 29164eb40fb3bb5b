// Package config loads mdinclude settings from a YAML or JSON(C) file.
//
// Values missing from the file keep their defaults; command line flags are
// applied on top by the caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/miorlan/mdinclude/internal/domain"
)

// Config is the complete mdinclude configuration.
type Config struct {
	// BasePath is the directory (or URL) relative references are resolved
	// against. Empty means the directory of the input document.
	BasePath string `yaml:"base_path" json:"base_path"`

	// Encoding of included resources and of the input document.
	Encoding string `yaml:"encoding" json:"encoding"`

	// HTTPTimeout bounds each remote fetch. Zero waits indefinitely.
	HTTPTimeout *Duration `yaml:"http_timeout" json:"http_timeout"`

	MaxDepth    int   `yaml:"max_depth" json:"max_depth"`
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`

	// Validate checks YAML/JSON output as an OpenAPI document.
	Validate bool `yaml:"validate" json:"validate"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Duration is a time.Duration written as "30s", "1m" etc. A bare number is
// taken as seconds, so 0 disables the timeout in both YAML and JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && (node.Tag == "!!int" || node.Tag == "!!float") {
		var seconds float64
		if err := node.Decode(&seconds); err != nil {
			return err
		}
		d.Duration = secondsToDuration(seconds)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		d.Duration = secondsToDuration(v)
		return nil
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("duration must be a string or a number of seconds, got %s", data)
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Encoding:    "utf-8",
		HTTPTimeout: &Duration{30 * time.Second},
		LogLevel:    "info",
	}
}

// Load reads path and merges it over Defaults.
func Load(path string, parser domain.Parser) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var fromFile Config
	if err := parser.Unmarshal(data, &fromFile, domain.DetectFormat(path)); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := Merge(Defaults(), fromFile)
	if err := cfg.Check(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays the set values of over onto base.
func Merge(base, over Config) Config {
	out := base
	if strings.TrimSpace(over.BasePath) != "" {
		out.BasePath = strings.TrimSpace(over.BasePath)
	}
	if strings.TrimSpace(over.Encoding) != "" {
		out.Encoding = strings.TrimSpace(over.Encoding)
	}
	// Explicit zero is meaningful here (no timeout), hence the pointer.
	if over.HTTPTimeout != nil {
		out.HTTPTimeout = &Duration{over.HTTPTimeout.Duration}
	}
	if over.MaxDepth != 0 {
		out.MaxDepth = over.MaxDepth
	}
	if over.MaxFileSize != 0 {
		out.MaxFileSize = over.MaxFileSize
	}
	if over.Validate {
		out.Validate = true
	}
	if strings.TrimSpace(over.LogLevel) != "" {
		out.LogLevel = strings.TrimSpace(over.LogLevel)
	}
	return out
}

// Check reports settings that cannot be used.
func (c Config) Check() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative: %d", c.MaxDepth))
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("max_file_size must not be negative: %d", c.MaxFileSize))
	}
	if c.HTTPTimeout != nil && c.HTTPTimeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("http_timeout must not be negative: %s", c.HTTPTimeout.Duration))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Timeout returns the HTTP timeout, zero when unset.
func (c Config) Timeout() time.Duration {
	if c.HTTPTimeout == nil {
		return 0
	}
	return c.HTTPTimeout.Duration
}

// Level returns LogLevel as a slog level.
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}
