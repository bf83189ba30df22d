package database

import (
	"context"
)

// DatabaseAdapter is a read-only table source. GetTableData returns the
// column names in table order and the rows as driver values. A limit of 0
// reads the whole table.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	GetAllTableNames(ctx context.Context) ([]string, error)
	GetTableData(ctx context.Context, tableName string, limit uint64) ([]string, [][]interface{}, error)
}
