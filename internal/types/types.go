package types

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindText ValueKind = iota
	KindNumber
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Value is a single table cell. The kind is fixed when the table is loaded,
// so formatting never has to inspect Go types.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Bool   bool
}

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Integer is a whole number rendered from its exact decimal digits, so ids
// beyond 2^53 keep every digit. Number holds the nearest float.
func Integer(digits string) Value {
	f, _ := strconv.ParseFloat(digits, 64)
	return Value{Kind: KindNumber, Number: f, Text: digits}
}

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Missing is an empty cell. It renders as "nan".
func Missing() Value { return Value{Kind: KindNumber, Number: math.NaN()} }

func (v Value) IsMissing() bool { return v.Kind == KindNumber && math.IsNaN(v.Number) }

// String renders the value the way it appears in fact and question lines.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		switch {
		case math.IsNaN(v.Number):
			return "nan"
		case math.IsInf(v.Number, 1):
			return "inf"
		case math.IsInf(v.Number, -1):
			return "-inf"
		case v.Text != "":
			return v.Text
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return v.Text
	}
}

func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Key identifies a value for distinct counting. Missing values share one key.
func (v Value) Key() string {
	return v.Kind.String() + ":" + v.String()
}

type Column struct {
	Name   string
	Kind   ValueKind
	Values []Value
}

// Table is a set of equal-length named columns.
type Table struct {
	Name    string
	Columns []Column
}

func (t *Table) NumRows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// Permute reorders every column by perm, where perm[i] is the source row of
// the new row i.
func (t *Table) Permute(perm []int) {
	for j := range t.Columns {
		src := t.Columns[j].Values
		dst := make([]Value, len(perm))
		for i, p := range perm {
			dst[i] = src[p]
		}
		t.Columns[j].Values = dst
	}
}

// Truncate keeps the first n rows.
func (t *Table) Truncate(n int) {
	if n < 0 || n >= t.NumRows() {
		return
	}
	for j := range t.Columns {
		t.Columns[j].Values = t.Columns[j].Values[:n]
	}
}

// ParseBool accepts the spellings a CSV export uses for booleans.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Rand is the random source used for shuffling, sampling and question
// selection. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}
