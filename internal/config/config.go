package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rana718/tabqa/internal/types"
	"github.com/spf13/viper"
)

const FileName = "tabqa.config.json"

const EnvPrefix = "TABQA"

// nestedKeys are registered up front so TABQA_OUTPUT_TABLE_DATA and friends
// reach Unmarshal even when no config file mentions them.
var nestedKeys = []string{
	"output.table_data",
	"output.sim_data",
	"output.compression",
	"database.provider",
	"database.url_env",
}

// BindEnv maps TABQA_* variables onto config keys, with "." in nested keys
// spelled "_".
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range nestedKeys {
		_ = viper.BindEnv(key)
	}
}

// Config is the tabqa.config.json layout. Size is the number of rows per
// question block, NTables the number of questions to simulate, and a zero
// Seed seeds from the clock.
type Config struct {
	Version     string   `json:"version" mapstructure:"version"`
	DataDir     string   `json:"data_dir" mapstructure:"data_dir"`
	Delimiter   string   `json:"delimiter" mapstructure:"delimiter"`
	Shuffle     bool     `json:"shuffle" mapstructure:"shuffle"`
	Limit       int      `json:"limit,omitempty" mapstructure:"limit"`
	Size        int      `json:"size" mapstructure:"size"`
	NTables     int      `json:"n_tables" mapstructure:"n_tables"`
	MaxLength   int      `json:"max_length,omitempty" mapstructure:"max_length"`
	SampleBound int      `json:"sample_bound" mapstructure:"sample_bound"`
	MinDistinct int      `json:"min_distinct" mapstructure:"min_distinct"`
	Seed        int64    `json:"seed,omitempty" mapstructure:"seed"`
	Output      Output   `json:"output" mapstructure:"output"`
	Database    Database `json:"database" mapstructure:"database"`
}

type Output struct {
	TableData   string `json:"table_data" mapstructure:"table_data"`
	SimData     string `json:"sim_data" mapstructure:"sim_data"`
	Compression string `json:"compression,omitempty" mapstructure:"compression"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults(func(string) bool { return false })
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults(viper.IsSet)
	return &cfg, nil
}

// applyDefaults fills zero fields. Numeric fields the user set explicitly
// are left alone so that Validate can reject them.
func (c *Config) applyDefaults(isSet func(string) bool) {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Delimiter == "" {
		c.Delimiter = ";"
	}
	if c.Size == 0 && !isSet("size") {
		c.Size = 2
	}
	if c.NTables == 0 && !isSet("n_tables") {
		c.NTables = 500
	}
	if c.SampleBound == 0 && !isSet("sample_bound") {
		c.SampleBound = 10
	}
	if c.MinDistinct == 0 && !isSet("min_distinct") {
		c.MinDistinct = 2
	}
	if c.Output.TableData == "" {
		c.Output.TableData = filepath.Join(c.DataDir, "table_data.txt")
	}
	if c.Output.SimData == "" {
		c.Output.SimData = filepath.Join(c.DataDir, "sim_data.txt")
	}
	if c.Output.Compression == "" {
		c.Output.Compression = "none"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return types.ConfigurationError("validate size", fmt.Errorf("%w: got %d", types.ErrInvalidBlockSize, c.Size))
	}
	if c.NTables <= 0 {
		return types.ConfigurationError("validate n_tables", fmt.Errorf("n_tables must be positive, got %d", c.NTables))
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return types.ConfigurationError("validate delimiter", fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter))
	}
	if c.Limit < 0 {
		return types.ConfigurationError("validate limit", fmt.Errorf("limit cannot be negative, got %d", c.Limit))
	}
	if c.MaxLength < 0 {
		return types.ConfigurationError("validate max_length", fmt.Errorf("max_length cannot be negative, got %d", c.MaxLength))
	}
	if c.SampleBound <= 0 {
		return types.ConfigurationError("validate sample_bound", fmt.Errorf("sample_bound must be positive, got %d", c.SampleBound))
	}
	if c.MinDistinct < 1 {
		return types.ConfigurationError("validate min_distinct", fmt.Errorf("min_distinct must be at least 1, got %d", c.MinDistinct))
	}

	switch c.Output.Compression {
	case "none", "zstd":
	default:
		return types.ConfigurationError("validate output.compression", fmt.Errorf("unsupported compression: %s. Supported: none, zstd", c.Output.Compression))
	}

	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return types.ConfigurationError("validate database.provider", fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders))
	}

	return nil
}

func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", types.ConfigurationError("database url", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv))
	}
	return dbURL, nil
}

// ResolveInput returns name unchanged when it exists, otherwise the same name
// under DataDir.
func (c *Config) ResolveInput(name string) string {
	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) {
		return name
	}
	candidate := filepath.Join(c.DataDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}

func (c *Config) ResolveInputs(names []string) []string {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = c.ResolveInput(name)
	}
	return paths
}

// NewRand returns the random source for a run. A zero seed uses the clock.
func (c *Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (c *Config) WriteFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return types.IOError("write config", path, err)
	}
	return nil
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject writes a default config file and creates the data
// directory. It fails if the config file already exists.
func InitializeProject() error {
	if IsInitialized() {
		return types.ConfigurationError("init", fmt.Errorf("%s already exists", FileName))
	}

	cfg := DefaultConfig()
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return types.IOError("create directory", cfg.DataDir, err)
	}
	return cfg.WriteFile(FileName)
}
