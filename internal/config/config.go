package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/domain"
)

// Config holds the docq configuration.
type Config struct {
	HTTP        HTTPConfig                  `yaml:"http"`
	Database    DatabaseConfig              `yaml:"database"`
	Auth        AuthConfig                  `yaml:"auth"`
	Query       QueryConfig                 `yaml:"query"`
	Collections map[string]CollectionConfig `yaml:"collections"`
	Logging     LoggingConfig               `yaml:"logging"`
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
	Driver           string   `yaml:"driver"` // redis (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// QueryConfig holds store-wide query defaults.
type QueryConfig struct {
	FullTextSearchFields []string `yaml:"full_text_search_fields"`
	MaxResults           int      `yaml:"max_results"`
	KeyPrefix            string   `yaml:"key_prefix"`
}

// CollectionConfig overrides query defaults for one collection.
// A nil FullTextSearchFields inherits the query default; an explicit
// empty list disables term search for the collection.
type CollectionConfig struct {
	FullTextSearchFields []string `yaml:"full_text_search_fields"`
	// Fields, when set, is the index schema created on server start.
	Fields []domain.Field `yaml:"fields"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}

	def := domain.DefaultQueryConfig()
	if c.Query.FullTextSearchFields == nil {
		c.Query.FullTextSearchFields = def.FullTextSearchFields
	}
	if c.Query.MaxResults <= 0 {
		c.Query.MaxResults = def.MaxResults
	}
	if c.Query.KeyPrefix == "" {
		c.Query.KeyPrefix = def.KeyPrefix
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.Driver != "redis" {
		return fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Database.DB < 0 {
		return fmt.Errorf("database.db must be non-negative, got %d", c.Database.DB)
	}
	for name, cc := range c.Collections {
		if !db.IsValidIdentifier(name) {
			return fmt.Errorf("collections.%s: invalid collection name", name)
		}
		for _, f := range cc.FullTextSearchFields {
			if !db.IsValidIdentifier(f) {
				return fmt.Errorf("collections.%s.full_text_search_fields: invalid field %q", name, f)
			}
		}
		if len(cc.Fields) == 0 {
			continue
		}
		if err := (domain.Schema{Fields: cc.Fields}).Validate(); err != nil {
			return fmt.Errorf("collections.%s.fields: %w", name, err)
		}
		for _, f := range cc.Fields {
			if !db.IsValidIdentifier(f.Name) {
				return fmt.Errorf("collections.%s.fields: invalid field %q", name, f.Name)
			}
		}
	}
	for _, f := range c.Query.FullTextSearchFields {
		if !db.IsValidIdentifier(f) {
			return fmt.Errorf("query.full_text_search_fields: invalid field %q", f)
		}
	}
	return nil
}

// Domain returns the store-side query defaults.
func (c *Config) Domain() domain.QueryConfig {
	return domain.QueryConfig{
		KeyPrefix:            c.Query.KeyPrefix,
		MaxResults:           c.Query.MaxResults,
		FullTextSearchFields: c.Query.FullTextSearchFields,
	}
}

// SearchOverrides returns per-collection searchable fields, keyed by
// collection. Collections without an explicit list are omitted.
func (c *Config) SearchOverrides() map[string][]string {
	out := make(map[string][]string, len(c.Collections))
	for name, cc := range c.Collections {
		if cc.FullTextSearchFields != nil {
			out[name] = cc.FullTextSearchFields
		}
	}
	return out
}

// Schemas returns the declared index schema of every collection that has one.
func (c *Config) Schemas() map[string]domain.Schema {
	out := make(map[string]domain.Schema, len(c.Collections))
	for name, cc := range c.Collections {
		if len(cc.Fields) > 0 {
			out[name] = domain.Schema{Fields: cc.Fields}
		}
	}
	return out
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
