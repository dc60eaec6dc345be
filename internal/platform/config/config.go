package config

import (
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	CMS      CMSConfig      `yaml:"cms"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// CMSConfig points at the headless content API the site is built from.
type CMSConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	AssetHost  string        `yaml:"asset_host"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// PipelineConfig tunes the image variant derivation batch.
type PipelineConfig struct {
	OutputDir    string        `yaml:"output_dir"`
	PublicPrefix string        `yaml:"public_prefix"`
	MappingPath  string        `yaml:"mapping_path"`
	Extension    string        `yaml:"extension"`
	BatchSize    int           `yaml:"batch_size"`
	BatchPause   time.Duration `yaml:"batch_pause"`
	MaxAttempts  int           `yaml:"max_attempts"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type CacheConfig struct {
	Driver   string           `yaml:"driver"`
	Capacity int              `yaml:"capacity"`
	TTL      time.Duration    `yaml:"ttl"`
	Redis    RedisCacheConfig `yaml:"redis,omitempty"`
}

type RedisCacheConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// AdminConfig protects the back-office pages. Basic credentials only.
type AdminConfig struct {
	PathPrefix string `yaml:"path_prefix"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
}
