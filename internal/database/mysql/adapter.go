package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/tabqa/internal/database/common"
	driver "github.com/go-sql-driver/mysql"
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

var sslModes = strings.NewReplacer(
	"ssl-mode=REQUIRED", "tls=skip-verify",
	"ssl-mode=DISABLED", "tls=false",
	"ssl-mode=VERIFY_CA", "tls=true",
	"ssl-mode=VERIFY_IDENTITY", "tls=true",
	"sslmode=require", "tls=skip-verify",
	"sslmode=disable", "tls=false",
	"sslmode=verify-ca", "tls=true",
	"sslmode=verify-full", "tls=true",
)

// toDSN accepts either a driver DSN or a mysql:// URL and always enables
// parseTime so DATETIME columns scan as time.Time.
func toDSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		if atIndex := strings.LastIndex(dsn, "@"); atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			if slashIndex := strings.Index(remainder, "/"); slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := sslModes.Replace(remainder[slashIndex+1:])
				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := toDSN(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	query, args, err := m.qb.Select("table_name").From("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where(squirrel.Eq{"table_type": "BASE TABLE"}).
		OrderBy("table_name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
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

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m *Adapter) GetTableData(ctx context.Context, tableName string, limit uint64) ([]string, [][]interface{}, error) {
	quoted, err := common.QuoteTable(tableName, quoteIdentifier)
	if err != nil {
		return nil, nil, err
	}
	query, args, err := common.SelectAll(m.qb, quoted, limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}
	defer rows.Close()

	return common.ScanRows(rows)
}
