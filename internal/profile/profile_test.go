package profile

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/Rana718/tabqa/internal/table"
	"github.com/Rana718/tabqa/internal/types"
)

func mustTable(t *testing.T, src string) *types.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(src), "test", ';')
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	return tbl
}

func TestProfileColumns(t *testing.T) {
	tbl := mustTable(t, "id;city;country;count\n1;Linz;AT;10\n2;Wels;AT;10\n3;Linz;AT;7\n")

	p := Profile(tbl, DefaultOptions())

	if p.Rows != 3 {
		t.Errorf("Expected 3 rows, got %d", p.Rows)
	}
	wantDistinct := []int{3, 2, 1, 2}
	for i, c := range p.Columns {
		if c.DistinctCount != wantDistinct[i] {
			t.Errorf("Column %s: expected %d distinct values, got %d", c.Name, wantDistinct[i], c.DistinctCount)
		}
	}
	if p.MeanDistinct != 2 {
		t.Errorf("Expected mean distinct 2, got %v", p.MeanDistinct)
	}

	var cities []string
	for _, v := range p.Columns[1].SampleValues {
		cities = append(cities, v.String())
	}
	if !reflect.DeepEqual(cities, []string{"Linz", "Wels"}) {
		t.Errorf("Expected samples in encounter order, got %v", cities)
	}

	// country has a single value and is not discriminative
	if got := p.CategoricalColumns(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Expected categorical columns [1], got %v", got)
	}
	if got := p.ColumnNames(); !reflect.DeepEqual(got, []string{"id", "city", "country", "count"}) {
		t.Errorf("Unexpected column names %v", got)
	}
}

func TestProfileMinDistinctThreshold(t *testing.T) {
	tbl := mustTable(t, "id;a;b\n1;x;p\n2;y;p\n3;z;q\n")

	p := Profile(tbl, Options{SampleBound: 10, MinDistinct: 3})
	if got := p.CategoricalColumns(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Expected only column a to reach 3 distinct values, got %v", got)
	}

	p = Profile(tbl, Options{SampleBound: 10, MinDistinct: 1})
	if got := p.CategoricalColumns(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Expected both text columns with threshold 1, got %v", got)
	}
}

func TestProfileMissingCountsOnce(t *testing.T) {
	tbl := mustTable(t, "id;city\n1;\n2;Linz\n3;\n")

	p := Profile(tbl, DefaultOptions())
	if p.Columns[1].DistinctCount != 2 {
		t.Errorf("Expected missing values to count as one distinct value, got %d", p.Columns[1].DistinctCount)
	}
}

func TestCategoricalRequiresTextColumn(t *testing.T) {
	tbl := mustTable(t, "id;count;flag\n1;10;True\n2;20;False\n")

	p := Profile(tbl, DefaultOptions())
	_, err := p.Categorical()
	if !types.IsKind(err, types.ConfigurationErrorKind) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	if !errors.Is(err, types.ErrNoCategoricalColumn) {
		t.Errorf("Expected ErrNoCategoricalColumn, got %v", err)
	}
}

func TestSampleBoundHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		cols := 1 + rng.Intn(6)
		rows := 1 + rng.Intn(60)
		bound := 1 + rng.Intn(12)

		var b strings.Builder
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(';')
			}
			fmt.Fprintf(&b, "c%d", j)
		}
		b.WriteByte('\n')
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if j > 0 {
					b.WriteByte(';')
				}
				fmt.Fprintf(&b, "v%d", rng.Intn(25))
			}
			b.WriteByte('\n')
		}

		p := Profile(mustTable(t, b.String()), Options{SampleBound: bound, MinDistinct: 2})

		total := 0
		for _, s := range p.Samples() {
			if len(s) > bound {
				t.Fatalf("Column sample of %d exceeds bound %d", len(s), bound)
			}
			total += len(s)
		}
		if total > cols*bound {
			t.Fatalf("Trial %d: %d samples exceed %d columns x %d bound", trial, total, cols, bound)
		}
	}
}
