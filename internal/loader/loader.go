// Package loader reads raw whitespace-delimited progenitor tables.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrShortRow   = errors.New("loader: row has too few fields")
	ErrNotNumeric = errors.New("loader: cell is not numeric")
)

type Options struct {
	// Skiprows is the number of leading lines to discard.
	Skiprows int
	// MissingChar marks cells that are read as 0.0.
	MissingChar string
}

// Raw is an unformatted table: one slice of fields per non-blank line.
type Raw struct {
	rows    [][]string
	missing string
}

func Read(r io.Reader, opts Options) (*Raw, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	raw := &Raw{missing: opts.MissingChar}
	line := 0
	for sc.Scan() {
		line++
		if line <= opts.Skiprows {
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		raw.rows = append(raw.rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

func ReadFile(path string, opts Options) (*Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, opts)
}

func (r *Raw) NumRows() int { return len(r.rows) }

// Float parses raw column col. Missing-value cells become 0.0.
func (r *Raw) Float(col int) ([]float64, error) {
	out := make([]float64, len(r.rows))
	for i, row := range r.rows {
		if col >= len(row) {
			return nil, fmt.Errorf("%w: row %d has %d fields, need column %d", ErrShortRow, i, len(row), col)
		}
		cell := row[col]
		if r.missing != "" && cell == r.missing {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d column %d: %q", ErrNotNumeric, i, col, cell)
		}
		out[i] = v
	}
	return out, nil
}

// Replaced counts the missing-value cells of column col.
func (r *Raw) Replaced(col int) int {
	if r.missing == "" {
		return 0
	}
	n := 0
	for _, row := range r.rows {
		if col < len(row) && row[col] == r.missing {
			n++
		}
	}
	return n
}
