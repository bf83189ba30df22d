package seeder

import (
	"fmt"

	"github.com/Rana718/tabqa/internal/types"
)

// Sampler fabricates rows by drawing every column, with replacement, from the
// values observed in a real table.
type Sampler struct {
	samples [][]types.Value
	rand    types.Rand
	counter int
}

func NewSampler(samples [][]types.Value, rng types.Rand) (*Sampler, error) {
	if len(samples) == 0 {
		return nil, types.InputError("sample rows", "", fmt.Errorf("%w: no columns to sample", types.ErrEmptyTable))
	}
	for i, s := range samples {
		if len(s) == 0 {
			return nil, types.InputError("sample rows", "", fmt.Errorf("%w: column %d has no sample values", types.ErrEmptyTable, i))
		}
	}
	return &Sampler{samples: samples, rand: rng}, nil
}

// Next returns a new synthetic row. The stream never ends.
func (s *Sampler) Next() ([]types.Value, bool) {
	row := make([]types.Value, len(s.samples))
	for i, values := range s.samples {
		row[i] = values[s.rand.Intn(len(values))]
	}
	s.counter++
	return row, true
}

// Generated reports how many rows have been fabricated.
func (s *Sampler) Generated() int {
	return s.counter
}
