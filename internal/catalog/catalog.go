// Package catalog keeps per-progenitor metric summaries in a SQLite file so
// a whole series can be compared without reloading every model.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var ErrNotFound = errors.New("catalog: entry not found")

// Entry is the stored summary of one progenitor.
type Entry struct {
	Series    string
	ZAMS      string
	Zones     int
	Network   string
	Metrics   map[string]float64
	UpdatedAt time.Time
}

type Catalog struct {
	db *sql.DB
}

func Open(path string) (*Catalog, error) {
	if path == "" {
		path = "progs.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS summaries (
		series     TEXT NOT NULL,
		zams       TEXT NOT NULL,
		zones      INTEGER NOT NULL,
		network    TEXT NOT NULL,
		metrics    BLOB NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (series, zams)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create summaries table: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Put inserts or replaces the entry for (Series, ZAMS). Non-finite metric
// values are not stored.
func (c *Catalog) Put(ctx context.Context, e Entry) error {
	finite := make(map[string]float64, len(e.Metrics))
	for k, v := range e.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite[k] = v
		}
	}
	payload, err := json.Marshal(finite)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	updated := e.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err = c.db.ExecContext(ctx, `INSERT INTO summaries (series, zams, zones, network, metrics, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (series, zams) DO UPDATE SET
			zones = excluded.zones,
			network = excluded.network,
			metrics = excluded.metrics,
			updated_at = excluded.updated_at`,
		e.Series, e.ZAMS, e.Zones, e.Network, payload, updated.UnixNano())
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", e.Series, e.ZAMS, err)
	}
	return nil
}

func (c *Catalog) Get(ctx context.Context, series, zams string) (*Entry, error) {
	row := c.db.QueryRowContext(ctx, `SELECT series, zams, zones, network, metrics, updated_at
		FROM summaries WHERE series = ? AND zams = ?`, series, zams)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, series, zams)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the entries of a series sorted numerically by ZAMS.
func (c *Catalog) List(ctx context.Context, series string) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT series, zams, zones, network, metrics, updated_at
		FROM summaries WHERE series = ?`, series)
	if err != nil {
		return nil, fmt.Errorf("select summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, errA := strconv.ParseFloat(entries[i].ZAMS, 64)
		b, errB := strconv.ParseFloat(entries[j].ZAMS, 64)
		if errA != nil || errB != nil {
			return entries[i].ZAMS < entries[j].ZAMS
		}
		return a < b
	})
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		e       Entry
		payload []byte
		updated int64
	)
	if err := s.Scan(&e.Series, &e.ZAMS, &e.Zones, &e.Network, &payload, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &e.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	e.UpdatedAt = time.Unix(0, updated)
	return &e, nil
}
