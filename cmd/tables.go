package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/tabqa/internal/config"
	"github.com/Rana718/tabqa/internal/database"
	"github.com/Rana718/tabqa/internal/table"
	"github.com/Rana718/tabqa/internal/types"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindFlags ties config keys to the flags of the command being run. Binding
// happens at run time because several commands share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadTables returns the file tables in argument order followed by the
// database tables in flag order. "*" reads every table of the database.
func loadTables(ctx context.Context, cfg *config.Config, files, dbTables []string, rng types.Rand) ([]*types.Table, error) {
	if len(files) == 0 && len(dbTables) == 0 {
		return nil, types.ConfigurationError("load tables", errors.New("no input tables: pass files or --db-table"))
	}

	opts := table.Options{
		Delimiter: cfg.DelimiterRune(),
		Shuffle:   cfg.Shuffle,
		Limit:     cfg.Limit,
		Rand:      rng,
	}

	paths := cfg.ResolveInputs(files)
	byPath, err := table.Load(paths, opts)
	if err != nil {
		return nil, err
	}
	tables := make([]*types.Table, 0, len(paths)+len(dbTables))
	for _, p := range paths {
		tables = append(tables, byPath[p])
	}

	if len(dbTables) == 0 {
		return tables, nil
	}

	fromDB, err := loadDatabaseTables(ctx, cfg, dbTables, opts)
	if err != nil {
		return nil, err
	}
	return append(tables, fromDB...), nil
}

func loadDatabaseTables(ctx context.Context, cfg *config.Config, names []string, opts table.Options) ([]*types.Table, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter, err := database.NewAdapter(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, types.InputError("connect", cfg.Database.Provider, err)
	}
	defer adapter.Close()

	if err := adapter.Ping(ctx); err != nil {
		return nil, types.InputError("connect", cfg.Database.Provider, fmt.Errorf("failed to connect to database: %w", err))
	}

	if len(names) == 1 && names[0] == "*" {
		names, err = adapter.GetAllTableNames(ctx)
		if err != nil {
			return nil, types.InputError("list tables", cfg.Database.Provider, err)
		}
		log.Debugf("found %d tables", len(names))
	}

	byName, err := table.LoadDatabase(ctx, adapter, names, opts)
	if err != nil {
		return nil, err
	}
	tables := make([]*types.Table, 0, len(names))
	for _, n := range names {
		tables = append(tables, byName[n])
	}
	return tables, nil
}
