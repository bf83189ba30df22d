package database

import (
	"fmt"

	"github.com/Rana718/tabqa/internal/database/mysql"
	"github.com/Rana718/tabqa/internal/database/postgres"
	"github.com/Rana718/tabqa/internal/database/sqlite"
	"github.com/Rana718/tabqa/internal/types"
)

func NewAdapter(provider string) (DatabaseAdapter, error) {
	switch provider {
	case "postgresql", "postgres", "":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, types.ConfigurationError("new adapter", fmt.Errorf("unsupported database provider %q", provider))
	}
}
