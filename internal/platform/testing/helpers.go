package testing

import (
	"testing"

	"limban-server-go/internal/platform/config"
	"limban-server-go/internal/platform/logging"
)

// SetupTestConfig returns a config with defaults applied and all file paths
// pointed at the test's temp dir.
func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	dir := t.TempDir()
	cfg.Log.Dir = dir
	cfg.Pipeline.OutputDir = dir
	cfg.Pipeline.MappingPath = dir + "/image-mapping.json"
	cfg.Database.DSN = dir + "/test.db"
	return cfg
}

// SetupTestLogger returns a logger writing only to the test's temp dir.
func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.New(logging.Config{
		Level:    "debug",
		Dir:      t.TempDir(),
		Filename: "test.log",
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func AssertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}
