package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/tabqa/internal/database/common"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite://"), "file:")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?mode=ro"
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	query, args, err := s.qb.Select("name").From("sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where(squirrel.NotLike{"name": "sqlite_%"}).
		OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s *Adapter) GetTableData(ctx context.Context, tableName string, limit uint64) ([]string, [][]interface{}, error) {
	// SQLite accepts the same double-quoted identifiers as PostgreSQL.
	quoted, err := common.QuoteTable(tableName, pq.QuoteIdentifier)
	if err != nil {
		return nil, nil, err
	}
	query, args, err := common.SelectAll(s.qb, quoted, limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}
	defer rows.Close()

	return common.ScanRows(rows)
}
