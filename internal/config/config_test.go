package config

import (
	"errors"
	"testing"

	"github.com/corpuskit/winnow/internal/domain"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_CleaningParams(t *testing.T) {
	cfg := validConfig()
	cfg.Cleaning.Bands = 10 // 10*4 != 128

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for band/row mismatch")
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Cleaning.MinQuality != 60 {
		t.Errorf("expected MinQuality=60, got %d", cfg.Cleaning.MinQuality)
	}
	if cfg.Cleaning.ShingleSize != 5 {
		t.Errorf("expected ShingleSize=5, got %d", cfg.Cleaning.ShingleSize)
	}
	if cfg.Cleaning.NumHashes != 128 {
		t.Errorf("expected NumHashes=128, got %d", cfg.Cleaning.NumHashes)
	}
	if cfg.Cleaning.Bands != 32 || cfg.Cleaning.Rows != 4 {
		t.Errorf("expected 32x4 banding, got %dx%d", cfg.Cleaning.Bands, cfg.Cleaning.Rows)
	}
	if cfg.Cleaning.Threshold != 0.7 {
		t.Errorf("expected Threshold=0.7, got %g", cfg.Cleaning.Threshold)
	}
	if cfg.Cleaning.MaxBatchSize != 10000 {
		t.Errorf("expected MaxBatchSize=10000, got %d", cfg.Cleaning.MaxBatchSize)
	}
	if cfg.Storage.KeyPrefix != "winnow:" {
		t.Errorf("expected KeyPrefix='winnow:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 5, WriteTimeoutSec: 60, ShutdownSec: 5},
		Cleaning: CleaningConfig{
			MinQuality: 75, ShingleSize: 3, NumHashes: 64, Bands: 16, Rows: 4,
			Threshold: 0.8, MaxBatchSize: 500,
		},
		Storage: StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 5 {
		t.Errorf("expected ReadTimeoutSec=5, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Cleaning.MinQuality != 75 || cfg.Cleaning.NumHashes != 64 {
		t.Errorf("cleaning overrides lost: %+v", cfg.Cleaning)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestCleaningConfig_Engine(t *testing.T) {
	cfg := validConfig()
	engine := cfg.Cleaning.Engine()

	if err := engine.Validate(); err != nil {
		t.Fatalf("default engine config must validate: %v", err)
	}
	if engine.MinQuality != cfg.Cleaning.MinQuality {
		t.Errorf("min quality not carried over: %d", engine.MinQuality)
	}
}
