package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corpuskit/winnow/internal/cleaner"
)

// Config holds the winnow API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cleaning CleaningConfig `yaml:"cleaning"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CleaningConfig holds the cleaning engine parameters. Zero values fall
// back to the engine defaults.
type CleaningConfig struct {
	MinQuality   int     `yaml:"min_quality"`
	ShingleSize  int     `yaml:"shingle_size"`
	NumHashes    int     `yaml:"num_hashes"`
	Bands        int     `yaml:"bands"`
	Rows         int     `yaml:"rows"`
	Threshold    float64 `yaml:"similarity_threshold"`
	MaxBatchSize int     `yaml:"max_batch_size"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local,
// dev, prod), expanding ${VAR} references from the environment.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting
// to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Cleaning.MinQuality <= 0 {
		c.Cleaning.MinQuality = cleaner.DefaultMinQuality
	}
	if c.Cleaning.ShingleSize <= 0 {
		c.Cleaning.ShingleSize = cleaner.DefaultShingleSize
	}
	if c.Cleaning.NumHashes <= 0 {
		c.Cleaning.NumHashes = cleaner.DefaultNumHashes
	}
	if c.Cleaning.Bands <= 0 {
		c.Cleaning.Bands = cleaner.DefaultBands
	}
	if c.Cleaning.Rows <= 0 {
		c.Cleaning.Rows = cleaner.DefaultRows
	}
	if c.Cleaning.Threshold <= 0 {
		c.Cleaning.Threshold = cleaner.DefaultThreshold
	}
	if c.Cleaning.MaxBatchSize <= 0 {
		c.Cleaning.MaxBatchSize = 10000
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "winnow:"
	}
}

// Validate checks the configuration for correctness. Cleaning parameters
// are validated by the engine itself so construction fails fast.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if err := c.Cleaning.Engine().Validate(); err != nil {
		return fmt.Errorf("cleaning: %w", err)
	}
	return nil
}

// Engine converts the YAML cleaning section to the engine configuration.
func (c CleaningConfig) Engine() cleaner.Config {
	return cleaner.Config{
		MinQuality:  c.MinQuality,
		ShingleSize: c.ShingleSize,
		NumHashes:   c.NumHashes,
		Bands:       c.Bands,
		Rows:        c.Rows,
		Threshold:   c.Threshold,
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
