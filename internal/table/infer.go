package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/tabqa/internal/types"
)

var missingMarkers = map[string]bool{
	"": true, "NA": true, "N/A": true, "NaN": true, "nan": true, "null": true, "NULL": true,
}

type cell struct {
	raw     string
	missing bool
}

// FromRecords builds a table from string records, inferring one kind per
// column: number if every present cell parses as a number, bool if every
// present cell is True/False, text otherwise.
func FromRecords(name string, header []string, records [][]string) (*types.Table, error) {
	cells := make([][]cell, len(records))
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, types.InputError("parse table", name,
				fmt.Errorf("%w: row %d has %d fields, header has %d", types.ErrColumnMismatch, i+2, len(rec), len(header)))
		}
		row := make([]cell, len(rec))
		for j, s := range rec {
			row[j] = cell{raw: s, missing: missingMarkers[strings.TrimSpace(s)]}
		}
		cells[i] = row
	}
	return build(name, header, cells)
}

// FromValues builds a table from database driver values.
func FromValues(name string, columns []string, rows [][]interface{}) (*types.Table, error) {
	cells := make([][]cell, len(rows))
	for i, rec := range rows {
		if len(rec) != len(columns) {
			return nil, types.InputError("read table", name,
				fmt.Errorf("%w: row %d has %d values, expected %d", types.ErrColumnMismatch, i+1, len(rec), len(columns)))
		}
		row := make([]cell, len(rec))
		for j, v := range rec {
			row[j] = driverCell(v)
		}
		cells[i] = row
	}
	return build(name, columns, cells)
}

func driverCell(v interface{}) cell {
	switch val := v.(type) {
	case nil:
		return cell{missing: true}
	case []byte:
		return cell{raw: string(val), missing: missingMarkers[strings.TrimSpace(string(val))]}
	case string:
		return cell{raw: val, missing: missingMarkers[strings.TrimSpace(val)]}
	case bool:
		return cell{raw: types.Bool(val).String()}
	case int64:
		return cell{raw: strconv.FormatInt(val, 10)}
	case int32:
		return cell{raw: strconv.FormatInt(int64(val), 10)}
	case int:
		return cell{raw: strconv.Itoa(val)}
	case uint64:
		return cell{raw: strconv.FormatUint(val, 10)}
	case float64:
		if math.IsNaN(val) {
			return cell{missing: true}
		}
		return cell{raw: strconv.FormatFloat(val, 'f', -1, 64)}
	case float32:
		return cell{raw: strconv.FormatFloat(float64(val), 'f', -1, 32)}
	case time.Time:
		return cell{raw: val.Format("2006-01-02 15:04:05")}
	default:
		return cell{raw: fmt.Sprintf("%v", val)}
	}
}

func build(name string, header []string, rows [][]cell) (*types.Table, error) {
	if len(header) == 0 {
		return nil, types.InputError("parse table", name, errors.New("empty header"))
	}
	if len(rows) == 0 {
		return nil, types.InputError("parse table", name, types.ErrEmptyTable)
	}

	seen := make(map[string]bool, len(header))
	t := &types.Table{Name: name, Columns: make([]types.Column, len(header))}
	for j, h := range header {
		colName := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if colName == "" {
			colName = fmt.Sprintf("Unnamed: %d", j)
		}
		if seen[colName] {
			return nil, types.InputError("parse table", name, fmt.Errorf("duplicate column name %q", colName))
		}
		seen[colName] = true

		column := make([]cell, len(rows))
		for i := range rows {
			column[i] = rows[i][j]
		}
		t.Columns[j] = inferColumn(colName, column)
	}
	return t, nil
}

func inferColumn(name string, cells []cell) types.Column {
	kind := types.KindNumber
	integral := true
	for _, c := range cells {
		if c.missing {
			continue
		}
		raw := strings.TrimSpace(c.raw)
		if !isDecimal(raw) {
			kind = types.KindText
			break
		}
		if _, ok := parseInteger(raw); !ok {
			integral = false
		}
	}
	if kind == types.KindText {
		kind = types.KindBool
		for _, c := range cells {
			if c.missing {
				continue
			}
			if _, ok := types.ParseBool(c.raw); !ok {
				kind = types.KindText
				break
			}
		}
	}

	values := make([]types.Value, len(cells))
	for i, c := range cells {
		raw := strings.TrimSpace(c.raw)
		switch {
		case c.missing:
			values[i] = types.Missing()
		case kind == types.KindNumber && integral:
			digits, _ := parseInteger(raw)
			values[i] = types.Integer(digits)
		case kind == types.KindNumber:
			f, _ := strconv.ParseFloat(raw, 64)
			values[i] = types.Number(f)
		case kind == types.KindBool:
			b, _ := types.ParseBool(c.raw)
			values[i] = types.Bool(b)
		default:
			values[i] = types.Text(c.raw)
		}
	}
	return types.Column{Name: name, Kind: kind, Values: values}
}

// isDecimal accepts what ParseFloat accepts except hex literals, which
// stay text.
func isDecimal(s string) bool {
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// parseInteger returns the canonical digits of an int64 or uint64 literal.
func parseInteger(s string) (string, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), true
	}
	if u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64); err == nil {
		return strconv.FormatUint(u, 10), true
	}
	return "", false
}
