package config

import "time"

// ApplyDefaults fills unset fields with working development values.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.IP == "" {
		cfg.Server.IP = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "limban.log"
	}
	if cfg.CMS.AssetHost == "" {
		cfg.CMS.AssetHost = "graphassets.com"
	}
	if cfg.CMS.Timeout <= 0 {
		cfg.CMS.Timeout = 15 * time.Second
	}
	if cfg.CMS.MaxRetries <= 0 {
		cfg.CMS.MaxRetries = 3
	}
	if cfg.Pipeline.OutputDir == "" {
		cfg.Pipeline.OutputDir = "public/optimized"
	}
	if cfg.Pipeline.PublicPrefix == "" {
		cfg.Pipeline.PublicPrefix = "/optimized"
	}
	if cfg.Pipeline.MappingPath == "" {
		cfg.Pipeline.MappingPath = "public/image-mapping.json"
	}
	if cfg.Pipeline.Extension == "" {
		cfg.Pipeline.Extension = "webp"
	}
	if cfg.Pipeline.BatchSize <= 0 {
		cfg.Pipeline.BatchSize = 4
	}
	if cfg.Pipeline.BatchPause <= 0 {
		cfg.Pipeline.BatchPause = 100 * time.Millisecond
	}
	if cfg.Pipeline.MaxAttempts <= 0 {
		cfg.Pipeline.MaxAttempts = 3
	}
	if cfg.Pipeline.FetchTimeout <= 0 {
		cfg.Pipeline.FetchTimeout = 15 * time.Second
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Cache.Capacity <= 0 {
		cfg.Cache.Capacity = 500
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "limban.db"
	}
	if cfg.Admin.PathPrefix == "" {
		cfg.Admin.PathPrefix = "/nabmil"
	}
}
