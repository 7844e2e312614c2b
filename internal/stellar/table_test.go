package stellar

import (
	"errors"
	"math"
	"testing"
)

func TestTable_SetAndColumn(t *testing.T) {
	tbl := NewTable(3)
	if err := tbl.Set("radius", []float64{1, 2, 3}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := tbl.Set("mass", []float64{4, 5, 6}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got := tbl.Columns()
	if len(got) != 2 || got[0] != "radius" || got[1] != "mass" {
		t.Errorf("unexpected column order %v", got)
	}

	col, err := tbl.Column("mass")
	if err != nil {
		t.Fatalf("column failed: %v", err)
	}
	if col[2] != 6 {
		t.Errorf("expected 6, got %f", col[2])
	}

	if err := tbl.Set("radius", []float64{7, 8, 9}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(tbl.Columns()) != 2 {
		t.Errorf("replacing a column should not add a new name")
	}
}

func TestTable_Errors(t *testing.T) {
	tbl := NewTable(2)

	err := tbl.Set("radius", []float64{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	_, err = tbl.Column("temperature")
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}

	var colErr *ColumnError
	if !errors.As(err, &colErr) || colErr.Column != "temperature" {
		t.Errorf("expected ColumnError for temperature, got %v", err)
	}
}

func TestTable_SelectRowClone(t *testing.T) {
	tbl := NewTable(2)
	_ = tbl.Set("a", []float64{1, 2})
	_ = tbl.Set("b", []float64{3, 4})
	_ = tbl.Set("c", []float64{5, 6})

	sel, err := tbl.Select("c", "a")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	row := sel.Row(1)
	if len(row) != 2 || row[0] != 6 || row[1] != 2 {
		t.Errorf("unexpected row %v", row)
	}

	if _, err := tbl.Select("a", "missing"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}

	c := tbl.Clone()
	colC, _ := c.Column("a")
	colC[0] = 100
	orig, _ := tbl.Column("a")
	if orig[0] != 1 {
		t.Error("clone shares storage with original")
	}
}

func TestCheckLengths(t *testing.T) {
	if err := CheckLengths(2, []float64{1, 2}, []float64{3, 4}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := CheckLengths(2, []float64{1, 2}, []float64{3}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"empty", nil, nil},
		{"finite", []float64{1, 2}, nil},
		{"inf and nan", []float64{math.Inf(1), 1, math.NaN()}, []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Degenerate(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("Degenerate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Degenerate() = %v, want %v", got, tt.want)
				}
			}
			if IsFinite(tt.values) != (len(tt.want) == 0) {
				t.Errorf("IsFinite disagrees with Degenerate for %v", tt.values)
			}
		})
	}
}
