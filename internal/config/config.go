// Package config layers defaults, the JSON config file, ATTIO_* environment variables and
// explicitly-set flags into a Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/attio-tui/attio-tui/internal/api"
)

const (
	EnvPrefix       = "ATTIO_"
	DefaultPageSize = 25
	MaxPageSize     = 500
)

type KeySource string

const (
	KeyNone        KeySource = ""
	KeyConfig      KeySource = "config"
	KeyCredentials KeySource = "credentials"
)

type Config struct {
	APIKey      string `koanf:"api_key"`
	BaseURL     string `koanf:"base_url"`
	Debug       bool   `koanf:"debug"`
	ExportDir   string `koanf:"export_dir"`
	ColumnsPath string `koanf:"columns"`
	PageSize    int    `koanf:"page_size"`

	ConfigFile   string    `koanf:"-"`
	APIKeySource KeySource `koanf:"-"`
}

type Options struct {
	// ConfigFile overrides DefaultPath. A missing file is fine.
	ConfigFile string
	Flags      *pflag.FlagSet
	Logger     *slog.Logger
	// Credentials supplies a stored key for a base URL when none is configured.
	Credentials func(baseURL string) (string, bool)
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		h, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config dir")
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "attio-tui", "config.json"), nil
}

func defaults() map[string]any {
	return map[string]any{
		"api_key":    "",
		"base_url":   api.DefaultBaseURL,
		"debug":      false,
		"export_dir": "",
		"columns":    "",
		"page_size":  DefaultPageSize,
	}
}

// flagKeys maps flag names whose config key is not the snake_case form of the name.
var flagKeys = map[string]string{
	"api-url": "base_url",
	"config":  "",
}

func Load(opts Options) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	path := strings.TrimSpace(opts.ConfigFile)
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		fk, err := loadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			logger.Warn("ignoring config file", "path", path, "error", err)
		default:
			if err := k.Merge(fk); err != nil {
				return nil, fmt.Errorf("merging config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if opts.Flags != nil {
		flags := opts.Flags
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			if key == "" {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFile = path
	cfg.normalize()

	if cfg.APIKey != "" {
		cfg.APIKeySource = KeyConfig
	} else if opts.Credentials != nil {
		if key, ok := opts.Credentials(cfg.BaseURL); ok {
			cfg.APIKey = key
			cfg.APIKeySource = KeyCredentials
		}
	}
	return &cfg, nil
}

// loadFile parses the JSON config file and checks that it decodes into a Config. A file
// that does not is rejected as a whole.
func loadFile(path string) (*koanf.Koanf, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	var decoded Config
	if err := fk.Unmarshal("", &decoded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return fk, nil
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = api.DefaultBaseURL
	}
	c.ExportDir = strings.TrimSpace(c.ExportDir)
	c.ColumnsPath = strings.TrimSpace(c.ColumnsPath)
	switch {
	case c.PageSize <= 0:
		c.PageSize = DefaultPageSize
	case c.PageSize > MaxPageSize:
		c.PageSize = MaxPageSize
	}
}

// Redacted is safe to print: the API key is reduced to its last four characters.
func (c Config) Redacted() Config {
	c.APIKey = RedactKey(c.APIKey)
	return c
}

func RedactKey(key string) string {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return ""
	case len(key) <= 4:
		return "****"
	}
	return "****" + key[len(key)-4:]
}
