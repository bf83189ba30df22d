package common

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
)

// validIdentifier accepts plain table names with an optional schema prefix.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// QuoteTable validates name and quotes each dotted part with quote.
func QuoteTable(name string, quote func(string) string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quote(p)
	}
	return strings.Join(parts, "."), nil
}

// SelectAll builds SELECT * FROM table ORDER BY 1 with an optional LIMIT.
// Ordering by the first column keeps row order, and so seeded runs, stable
// across queries.
func SelectAll(qb squirrel.StatementBuilderType, quotedTable string, limit uint64) (string, []interface{}, error) {
	q := qb.Select("*").From(quotedTable).OrderBy("1")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.ToSql()
}

// ScanRows drains rows into positional values. []byte cells are copied since
// the driver may reuse its buffers.
func ScanRows(rows *sql.Rows) ([]string, [][]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	return columns, result, rows.Err()
}
