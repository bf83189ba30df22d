package corpus

import (
	"fmt"
	"io"

	"github.com/Rana718/tabqa/internal/types"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// Size is the number of fact rows between question attempts.
	Size int
	// NTables is the number of questions synthetic mode emits before it stops.
	NTables int
}

// Question is one emitted question. Subject and Categorical are column
// positions, Ref is the 1-based position of the supporting row in its block.
type Question struct {
	Subject     int
	Categorical int
	Key         types.Value
	Answer      types.Value
	Ref         int
}

// State is threaded through every emission step. Count is the id of the last
// line written in the current block and Rows holds the block's rows.
type State struct {
	Count     int
	Rows      [][]types.Value
	Questions int
}

type Stats struct {
	Facts     int
	Questions int
	Skipped   int
}

// RowSource yields rows in column order until it runs out.
type RowSource interface {
	Next() ([]types.Value, bool)
}

type Generator struct {
	w           io.Writer
	columns     []string
	categorical int
	opts        Options
	rand        types.Rand
}

func New(w io.Writer, columns []string, categorical int, opts Options, rng types.Rand) (*Generator, error) {
	if opts.Size <= 0 {
		return nil, types.ConfigurationError("new generator", fmt.Errorf("%w: got %d", types.ErrInvalidBlockSize, opts.Size))
	}
	if len(columns) < 2 {
		return nil, types.ConfigurationError("new generator", fmt.Errorf("%w: table has %d column(s)", types.ErrNoSubjectColumn, len(columns)))
	}
	if categorical < 0 || categorical >= len(columns) {
		return nil, types.ConfigurationError("new generator", fmt.Errorf("%w: index %d out of range", types.ErrNoCategoricalColumn, categorical))
	}
	return &Generator{
		w:           w,
		columns:     columns,
		categorical: categorical,
		opts:        opts,
		rand:        rng,
	}, nil
}

// Generate writes one fact per table row in stored order, with a question
// attempt after every Size rows.
func (g *Generator) Generate(t *types.Table) (Stats, error) {
	if t.NumColumns() != len(g.columns) {
		return Stats{}, types.InputError("generate", t.Name,
			fmt.Errorf("%w: table has %d columns, generator has %d", types.ErrColumnMismatch, t.NumColumns(), len(g.columns)))
	}
	_, stats, err := g.run(&tableRows{table: t}, func(State) bool { return false })
	return stats, err
}

// Simulate writes synthetic rows until NTables questions have been emitted.
func (g *Generator) Simulate(src RowSource) (Stats, error) {
	if g.opts.NTables <= 0 {
		return Stats{}, types.ConfigurationError("simulate", fmt.Errorf("n_tables must be positive, got %d", g.opts.NTables))
	}
	// The subject is drawn from [1, len(columns)). If that range holds only
	// the categorical column every attempt is skipped and the loop never ends.
	if len(g.columns) == 2 && g.categorical == 1 {
		return Stats{}, types.ConfigurationError("simulate", types.ErrNoSubjectColumn)
	}

	target := g.opts.NTables
	_, stats, err := g.run(src, func(st State) bool { return st.Questions >= target })
	return stats, err
}

func (g *Generator) run(src RowSource, done func(State) bool) (State, Stats, error) {
	var (
		st    State
		stats Stats
	)
	for !done(st) {
		row, ok := src.Next()
		if !ok {
			break
		}

		var err error
		st, err = g.writeFact(st, row)
		if err != nil {
			return st, stats, err
		}
		stats.Facts++

		if st.Count%g.opts.Size != 0 {
			continue
		}

		var emitted bool
		st, emitted, err = g.writeQuestion(st)
		if err != nil {
			return st, stats, err
		}
		if emitted {
			stats.Questions++
		} else {
			stats.Skipped++
		}
	}

	log.Debugf("wrote %d facts, %d questions, skipped %d", stats.Facts, stats.Questions, stats.Skipped)
	return st, stats, nil
}

func (g *Generator) writeFact(st State, row []types.Value) (State, error) {
	if len(row) != len(g.columns) {
		return st, types.InputError("write fact", "",
			fmt.Errorf("%w: row has %d values, expected %d", types.ErrColumnMismatch, len(row), len(g.columns)))
	}

	st.Count++
	if _, err := fmt.Fprintln(g.w, FormatFact(st.Count, g.columns, row)); err != nil {
		return st, types.IOError("write fact", "", err)
	}
	st.Rows = append(st.Rows, row)
	return st, nil
}

// writeQuestion picks a buffered row and a non-identifier column. Picking the
// categorical column skips the attempt without touching the block, so later
// attempts draw from a larger buffer and ids keep counting.
func (g *Generator) writeQuestion(st State) (State, bool, error) {
	if len(st.Rows) == 0 {
		return st, false, nil
	}

	s := g.rand.Intn(len(st.Rows))
	q := 1 + g.rand.Intn(len(g.columns)-1)
	if q == g.categorical {
		return st, false, nil
	}

	row := st.Rows[s]
	question := Question{
		Subject:     q,
		Categorical: g.categorical,
		Key:         row[g.categorical],
		Answer:      row[q],
		Ref:         s + 1,
	}

	st.Count++
	if _, err := fmt.Fprintln(g.w, FormatQuestion(st.Count, g.columns, question)); err != nil {
		return st, false, types.IOError("write question", "", err)
	}

	st.Questions++
	st.Count = 0
	st.Rows = nil
	return st, true, nil
}

type tableRows struct {
	table *types.Table
	next  int
}

func (r *tableRows) Next() ([]types.Value, bool) {
	if r.next >= r.table.NumRows() {
		return nil, false
	}
	row := r.table.Row(r.next)
	r.next++
	return row, true
}
