package profile

import (
	"github.com/Rana718/tabqa/internal/types"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// SampleBound caps the number of distinct sample values kept per column.
	SampleBound int
	// MinDistinct is the number of distinct values a text column needs to be
	// used as a question key.
	MinDistinct int
}

func DefaultOptions() Options {
	return Options{SampleBound: 10, MinDistinct: 2}
}

// ColumnProfile stores distinct-value statistics for one column.
type ColumnProfile struct {
	Name          string          `json:"name" yaml:"name"`
	Kind          types.ValueKind `json:"kind" yaml:"kind"`
	DistinctCount int             `json:"distinct_count" yaml:"distinct_count"`
	// First SampleBound distinct values in the order they were encountered.
	SampleValues  []types.Value `json:"sample_values" yaml:"sample_values"`
	IsCategorical bool          `json:"categorical" yaml:"categorical"`
}

type TableProfile struct {
	Name         string          `json:"name" yaml:"name"`
	Rows         int             `json:"rows" yaml:"rows"`
	Columns      []ColumnProfile `json:"columns" yaml:"columns"`
	MeanDistinct float64         `json:"mean_distinct" yaml:"mean_distinct"`
}

func Profile(t *types.Table, opts Options) TableProfile {
	if opts.SampleBound <= 0 {
		opts.SampleBound = DefaultOptions().SampleBound
	}
	if opts.MinDistinct <= 0 {
		opts.MinDistinct = DefaultOptions().MinDistinct
	}

	p := TableProfile{
		Name:    t.Name,
		Rows:    t.NumRows(),
		Columns: make([]ColumnProfile, len(t.Columns)),
	}

	total := 0
	for i, c := range t.Columns {
		p.Columns[i] = profileColumn(c, opts)
		total += p.Columns[i].DistinctCount
	}
	if len(t.Columns) > 0 {
		p.MeanDistinct = float64(total) / float64(len(t.Columns))
	}

	log.Debugf("%s: %d rows, %d columns, mean distinct %.2f", p.Name, p.Rows, len(p.Columns), p.MeanDistinct)
	return p
}

func profileColumn(c types.Column, opts Options) ColumnProfile {
	seen := make(map[string]struct{})
	var samples []types.Value
	for _, v := range c.Values {
		key := v.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if len(samples) < opts.SampleBound {
			samples = append(samples, v)
		}
	}

	return ColumnProfile{
		Name:          c.Name,
		Kind:          c.Kind,
		DistinctCount: len(seen),
		SampleValues:  samples,
		IsCategorical: c.Kind == types.KindText && len(seen) >= opts.MinDistinct,
	}
}

// CategoricalColumns returns the positions of the categorical columns.
func (p TableProfile) CategoricalColumns() []int {
	var idx []int
	for i, c := range p.Columns {
		if c.IsCategorical {
			idx = append(idx, i)
		}
	}
	return idx
}

// Categorical returns the first categorical column, or a configuration error
// when the table has none.
func (p TableProfile) Categorical() (int, error) {
	idx := p.CategoricalColumns()
	if len(idx) == 0 {
		return 0, types.ConfigurationError("select categorical column "+p.Name, types.ErrNoCategoricalColumn)
	}
	return idx[0], nil
}

// Samples returns the sample values of every column in column order.
func (p TableProfile) Samples() [][]types.Value {
	samples := make([][]types.Value, len(p.Columns))
	for i, c := range p.Columns {
		samples[i] = c.SampleValues
	}
	return samples
}

func (p TableProfile) ColumnNames() []string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return names
}
