package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/tabqa/internal/types"
	"github.com/spf13/viper"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	return tempDir
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Size != 2 {
		t.Errorf("Expected size to be 2, got %d", config.Size)
	}
	if config.NTables != 500 {
		t.Errorf("Expected n_tables to be 500, got %d", config.NTables)
	}
	if config.Delimiter != ";" {
		t.Errorf("Expected delimiter to be ';', got '%s'", config.Delimiter)
	}
	if config.SampleBound != 10 {
		t.Errorf("Expected sample_bound to be 10, got %d", config.SampleBound)
	}
	if config.MinDistinct != 2 {
		t.Errorf("Expected min_distinct to be 2, got %d", config.MinDistinct)
	}
	if config.Output.TableData != filepath.Join("data", "table_data.txt") {
		t.Errorf("Expected table_data to be 'data/table_data.txt', got '%s'", config.Output.TableData)
	}
	if config.Output.SimData != filepath.Join("data", "sim_data.txt") {
		t.Errorf("Expected sim_data to be 'data/sim_data.txt', got '%s'", config.Output.SimData)
	}
	if config.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", config.Database.URLEnv)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("size", 3)
	viper.Set("delimiter", ",")
	viper.Set("output.compression", "zstd")
	viper.Set("data_dir", "tables")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Size != 3 {
		t.Errorf("Expected size 3, got %d", cfg.Size)
	}
	if cfg.DelimiterRune() != ',' {
		t.Errorf("Expected delimiter ',', got %q", cfg.DelimiterRune())
	}
	if cfg.Output.Compression != "zstd" {
		t.Errorf("Expected compression zstd, got %s", cfg.Output.Compression)
	}
	if cfg.Output.TableData != filepath.Join("tables", "table_data.txt") {
		t.Errorf("Expected table_data under data_dir, got %s", cfg.Output.TableData)
	}
	if cfg.NTables != 500 {
		t.Errorf("Expected default n_tables 500, got %d", cfg.NTables)
	}
}

func TestLoadNestedKeysFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("TABQA_OUTPUT_TABLE_DATA", "out/tables.txt")
	t.Setenv("TABQA_DATABASE_PROVIDER", "sqlite")
	BindEnv()

	if got := viper.GetString("output.table_data"); got != "out/tables.txt" {
		t.Errorf("Expected output.table_data from env, got %q", got)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Output.TableData != "out/tables.txt" {
		t.Errorf("Expected table_data out/tables.txt, got %s", cfg.Output.TableData)
	}
	if cfg.Database.Provider != "sqlite" {
		t.Errorf("Expected provider sqlite, got %s", cfg.Database.Provider)
	}
}

func TestLoadKeepsExplicitZeroSize(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("size", 0)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Size != 0 {
		t.Fatalf("Expected explicit size 0 to be kept, got %d", cfg.Size)
	}

	err = cfg.Validate()
	if !types.IsKind(err, types.ConfigurationErrorKind) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	if !errors.Is(err, types.ErrInvalidBlockSize) {
		t.Errorf("Expected ErrInvalidBlockSize, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative size", func(c *Config) { c.Size = -1 }},
		{"zero n_tables", func(c *Config) { c.NTables = 0 }},
		{"multi-char delimiter", func(c *Config) { c.Delimiter = ";;" }},
		{"negative limit", func(c *Config) { c.Limit = -5 }},
		{"negative max_length", func(c *Config) { c.MaxLength = -1 }},
		{"zero sample_bound", func(c *Config) { c.SampleBound = 0 }},
		{"zero min_distinct", func(c *Config) { c.MinDistinct = 0 }},
		{"unknown compression", func(c *Config) { c.Output.Compression = "lz4" }},
		{"unknown provider", func(c *Config) { c.Database.Provider = "oracle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !types.IsKind(err, types.ConfigurationErrorKind) {
				t.Errorf("Expected configuration error, got %v", err)
			}
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "TABQA_TEST_DB_URL"

	t.Setenv("TABQA_TEST_DB_URL", "")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected error for empty database URL")
	}

	t.Setenv("TABQA_TEST_DB_URL", "sqlite://./test.db")
	url, err := cfg.GetDatabaseURL()
	if err != nil {
		t.Fatalf("GetDatabaseURL() failed: %v", err)
	}
	if url != "sqlite://./test.db" {
		t.Errorf("Expected sqlite URL, got %s", url)
	}
}

func TestResolveInput(t *testing.T) {
	tempDir := chdirTemp(t)

	if err := os.MkdirAll("data", 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join("data", "cities.csv"), []byte("id;city\n"), 0644); err != nil {
		t.Fatalf("Failed to write table: %v", err)
	}
	if err := os.WriteFile("local.csv", []byte("id;city\n"), 0644); err != nil {
		t.Fatalf("Failed to write table: %v", err)
	}

	cfg := DefaultConfig()
	if got := cfg.ResolveInput("cities.csv"); got != filepath.Join("data", "cities.csv") {
		t.Errorf("Expected data/cities.csv, got %s", got)
	}
	if got := cfg.ResolveInput("local.csv"); got != "local.csv" {
		t.Errorf("Expected local.csv, got %s", got)
	}
	if got := cfg.ResolveInput("missing.csv"); got != "missing.csv" {
		t.Errorf("Expected missing.csv unchanged, got %s", got)
	}
	abs := filepath.Join(tempDir, "nowhere.csv")
	if got := cfg.ResolveInput(abs); got != abs {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
}

func TestNewRandIsSeeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42

	a, b := cfg.NewRand(), cfg.NewRand()
	for i := 0; i < 10; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("Expected identical sequences for the same seed, got %d and %d", x, y)
		}
	}
}

func TestInitializeProject(t *testing.T) {
	tempDir := chdirTemp(t)

	if err := InitializeProject(); err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	configPath := filepath.Join(tempDir, FileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configPath)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "data")); os.IsNotExist(err) {
		t.Errorf("Directory data was not created")
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read generated config: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Size != 2 || cfg.Delimiter != ";" {
		t.Errorf("Generated config did not round trip: size=%d delimiter=%q", cfg.Size, cfg.Delimiter)
	}

	if err := InitializeProject(); err == nil {
		t.Error("Expected second initialization to fail, but it succeeded")
	}
}

func TestIsInitialized(t *testing.T) {
	tempDir := chdirTemp(t)

	if IsInitialized() {
		t.Error("Expected project to not be initialized, but it was")
	}

	if err := os.WriteFile(filepath.Join(tempDir, FileName), []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	if !IsInitialized() {
		t.Error("Expected project to be initialized, but it wasn't")
	}
}
