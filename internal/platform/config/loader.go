package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from a YAML file with .env/environment overrides.
type Loader struct {
	useDotEnv bool
	path      string
}

// NewLoader creates a loader that reads config.yaml from the working directory.
func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      "config.yaml",
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the configuration file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load reads the YAML file, applies defaults and environment overrides.
// A missing file is not an error: defaults describe a working dev setup.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	if env := os.Getenv("LIMBAN_CONFIG"); env != "" {
		l.path = env
	}

	cfg := &Config{}
	data, err := os.ReadFile(l.path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	// Derived images are always encoded as webp, so any other extension
	// would name files the encoder cannot produce.
	if cfg.Pipeline.Extension != "webp" {
		return nil, fmt.Errorf("unsupported pipeline extension %q: only webp is supported", cfg.Pipeline.Extension)
	}

	return &Result{Config: cfg, Path: l.path}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CMS_ENDPOINT"); v != "" {
		cfg.CMS.Endpoint = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
}
