package stellar

import "fmt"

// Table holds named per-zone columns of equal length. Column order is the
// order in which columns were first set.
type Table struct {
	names []string
	cols  map[string][]float64
	n     int
}

// NewTable returns an empty table for n zones.
func NewTable(n int) *Table {
	return &Table{
		cols: make(map[string][]float64),
		n:    n,
	}
}

// Len returns the zone count.
func (t *Table) Len() int { return t.n }

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the named column. The slice is shared with the table;
// callers that modify it must copy first.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, MissingColumn(name)
	}
	return col, nil
}

// Set adds or replaces a column. The values are stored without copying.
func (t *Table) Set(name string, values []float64) error {
	if len(values) != t.n {
		return &ColumnError{
			Column:  name,
			Wrapped: fmt.Errorf("%w: %d zones, table has %d", ErrLengthMismatch, len(values), t.n),
		}
	}
	if _, ok := t.cols[name]; !ok {
		t.names = append(t.names, name)
	}
	t.cols[name] = values
	return nil
}

// Select returns a new table with only the named columns, in the order given.
func (t *Table) Select(names ...string) (*Table, error) {
	out := NewTable(t.n)
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if err := out.Set(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Row returns the values of zone i across all columns, in column order.
func (t *Table) Row(i int) []float64 {
	row := make([]float64, len(t.names))
	for j, name := range t.names {
		row[j] = t.cols[name][i]
	}
	return row
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := NewTable(t.n)
	for _, name := range t.names {
		col := make([]float64, t.n)
		copy(col, t.cols[name])
		c.names = append(c.names, name)
		c.cols[name] = col
	}
	return c
}
