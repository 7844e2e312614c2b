package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `# grid mass radius stability
# header line two
1  1.0e33  1.0e8  conv

2  ---     2.0e8  rad
3  3.0e33  3.5e8  ---
`

func TestRead(t *testing.T) {
	raw, err := Read(strings.NewReader(sample), Options{Skiprows: 2, MissingChar: "---"})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if raw.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", raw.NumRows())
	}

	mass, err := raw.Float(1)
	if err != nil {
		t.Fatalf("float failed: %v", err)
	}
	expected := []float64{1.0e33, 0.0, 3.0e33}
	for i := range expected {
		if mass[i] != expected[i] {
			t.Errorf("row %d: expected %g, got %g", i, expected[i], mass[i])
		}
	}

	if n := raw.Replaced(1); n != 1 {
		t.Errorf("expected 1 replaced cell, got %d", n)
	}
	if n := raw.Replaced(2); n != 0 {
		t.Errorf("expected 0 replaced cells, got %d", n)
	}
}

func TestFloat_Errors(t *testing.T) {
	raw, err := Read(strings.NewReader(sample), Options{Skiprows: 2, MissingChar: "---"})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if _, err := raw.Float(3); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}
	if _, err := raw.Float(7); !errors.Is(err, ErrShortRow) {
		t.Errorf("expected ErrShortRow, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s12_presn")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := ReadFile(path, Options{Skiprows: 2})
	if err != nil {
		t.Fatalf("read file failed: %v", err)
	}
	if _, err := raw.Float(1); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("without a missing char the sentinel should not parse, got %v", err)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
