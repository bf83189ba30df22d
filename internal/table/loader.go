package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/Rana718/tabqa/internal/types"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// Delimiter separates fields. Defaults to ';'.
	Delimiter rune
	// Shuffle permutes the rows before Limit is applied.
	Shuffle bool
	// Limit keeps the first N rows; 0 means all rows.
	Limit int
	// Rand drives the shuffle. A clock-seeded source is used when nil.
	Rand types.Rand
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ';'
	}
	return o.Delimiter
}

// Load reads every path into a table keyed by that path.
func Load(paths []string, opts Options) (map[string]*types.Table, error) {
	tables := make(map[string]*types.Table, len(paths))
	for _, path := range paths {
		t, err := LoadFile(path, opts)
		if err != nil {
			return nil, err
		}
		tables[path] = t
	}
	return tables, nil
}

func LoadFile(path string, opts Options) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.InputError("open table", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f, path, opts.delimiter())
	if err != nil {
		return nil, err
	}

	Arrange(t, opts)
	log.Debugf("loaded %s: %d rows, %d columns", path, t.NumRows(), t.NumColumns())
	return t, nil
}

// ReadCSV parses delimited text whose first record is the header.
func ReadCSV(r io.Reader, name string, delimiter rune) (*types.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			err = fmt.Errorf("%w: %v", types.ErrColumnMismatch, err)
		}
		return nil, types.InputError("parse table", name, err)
	}
	if len(records) == 0 {
		return nil, types.InputError("parse table", name, errors.New("missing header row"))
	}

	return FromRecords(name, records[0], records[1:])
}

// Arrange applies the shuffle and the row limit, in that order.
func Arrange(t *types.Table, opts Options) {
	if opts.Shuffle {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		t.Permute(permutation(t.NumRows(), rng))
	}
	if opts.Limit > 0 {
		t.Truncate(opts.Limit)
	}
}

// permutation is a Fisher-Yates shuffle of [0, n).
func permutation(n int, rng types.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// TableReader is the part of a database adapter the loader needs.
type TableReader interface {
	GetTableData(ctx context.Context, tableName string, limit uint64) ([]string, [][]interface{}, error)
}

// LoadDatabase reads whole tables through a database adapter. The limit is
// pushed into the query unless rows are shuffled first.
func LoadDatabase(ctx context.Context, db TableReader, names []string, opts Options) (map[string]*types.Table, error) {
	var pushdown uint64
	if !opts.Shuffle && opts.Limit > 0 {
		pushdown = uint64(opts.Limit)
	}

	tables := make(map[string]*types.Table, len(names))
	for _, name := range names {
		columns, rows, err := db.GetTableData(ctx, name, pushdown)
		if err != nil {
			return nil, types.InputError("query table", name, err)
		}

		t, err := FromValues(name, columns, rows)
		if err != nil {
			return nil, err
		}

		Arrange(t, opts)
		log.Debugf("loaded table %s: %d rows, %d columns", name, t.NumRows(), t.NumColumns())
		tables[name] = t
	}
	return tables, nil
}
