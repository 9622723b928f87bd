package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/storage"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file.
const FileName = ".stackaudit.yaml"

const defaultDebounce = 500 * time.Millisecond

// Config holds the per-project settings. Command-line flags take precedence.
type Config struct {
	ReportFile string `yaml:"report_file"`
	// Catalog is a path to a custom requirement catalog, relative to the
	// project root unless absolute.
	Catalog string `yaml:"catalog,omitempty"`
	// Ignore lists extra path segments excluded from the source scan.
	Ignore     []string    `yaml:"ignore,omitempty"`
	IgnoreFile string      `yaml:"ignore_file"`
	LogLevel   string      `yaml:"log_level,omitempty"`
	Watch      WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ReportFile: storage.DefaultReportFile,
		IgnoreFile: storage.DefaultIgnoreFile,
		Watch:      WatchConfig{Debounce: defaultDebounce},
	}
}

// Load reads FileName from root. A missing file yields the defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	// #nosec G304 -- the file name is fixed
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", FileName, err)
	}

	if cfg.ReportFile == "" {
		cfg.ReportFile = storage.DefaultReportFile
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = defaultDebounce
	}
	return cfg, nil
}

// LoadCatalog returns the configured catalog, or the built-in one when none
// is set.
func (c *Config) LoadCatalog(root string) (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	path := c.Catalog
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return catalog.Load(path)
}

// IgnoreSegments merges the catalog ignore list with the configured extras.
func (c *Config) IgnoreSegments(cat *catalog.Catalog) []string {
	seen := make(map[string]bool)
	var out []string
	for _, seg := range append(append([]string{}, cat.Sources.Ignore...), c.Ignore...) {
		if seg == "" || seen[seg] {
			continue
		}
		seen[seg] = true
		out = append(out, seg)
	}
	return out
}

// Level maps LogLevel to a slog level. Unknown values select info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
