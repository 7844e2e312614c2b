package progenitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/progs/internal/config"
	"github.com/san-kum/progs/internal/loader"
	"github.com/san-kum/progs/internal/network"
	"github.com/san-kum/progs/internal/paths"
	"github.com/san-kum/progs/internal/stellar"
)

var ErrNoConfig = errors.New("progenitor: no configuration for series")

// Progenitor is a single loaded model.
type Progenitor struct {
	ZAMS     string
	Series   string
	Filename string
	Filepath string

	Config      *config.Config
	Table       *stellar.Table
	Network     network.Network
	Composition *stellar.Table
	Sums        *network.Sums
}

func (p *Progenitor) Zones() int { return p.Table.Len() }

// Loader resolves series configuration, networks and model files under a
// paths.Layout.
type Loader struct {
	Layout paths.Layout
	// Config replaces the per-series configuration when set.
	Config *config.Config
}

func NewLoader(root string) *Loader {
	return &Loader{Layout: paths.New(root)}
}

// SeriesConfig returns the configuration for series: the override if set,
// then <root>/config/<series>.ini or .yaml, then the built-in preset.
func (l *Loader) SeriesConfig(series string) (*config.Config, error) {
	series = paths.CheckAlias(series)
	if l.Config != nil {
		cfg := l.Config.Clone()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	iniPath := l.Layout.ConfigFilepath(series)
	candidates := []string{iniPath, strings.TrimSuffix(iniPath, ".ini") + ".yaml"}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			log.WithFields(log.Fields{"series": series, "path": path}).Debug("loading series config")
			return config.LoadFile(path)
		}
	}

	if cfg := config.Preset(series); cfg != nil {
		log.WithField("series", series).Debug("using built-in series config")
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoConfig, series)
}

// Network returns the named network from <root>/networks, falling back to
// the built-in tables.
func (l *Loader) Network(name string) (network.Network, error) {
	path := l.Layout.NetworkFilepath(name)
	if _, err := os.Stat(path); err == nil {
		return network.LoadFile(path)
	}
	return network.Builtin(name)
}

// Find lists the ZAMS labels available for a series.
func (l *Loader) Find(series string) ([]string, error) {
	cfg, err := l.SeriesConfig(series)
	if err != nil {
		return nil, err
	}
	return paths.FindProgs(l.Layout.SeriesPath(series), cfg.Load.MatchStr, cfg.Load.Strip)
}

func (l *Loader) Load(zams, series string) (*Progenitor, error) {
	series = paths.CheckAlias(series)

	cfg, err := l.SeriesConfig(series)
	if err != nil {
		return nil, err
	}
	filename, err := paths.ProgFilename(zams, series)
	if err != nil {
		return nil, err
	}
	filepath, err := l.Layout.ProgFilepath(zams, series)
	if err != nil {
		return nil, err
	}
	net, err := l.Network(cfg.Network.Name)
	if err != nil {
		return nil, err
	}

	raw, err := loader.ReadFile(filepath, loader.Options{
		Skiprows:    cfg.Load.Skiprows,
		MissingChar: cfg.Load.MissingChar,
	})
	if err != nil {
		return nil, err
	}
	warnReplaced(raw, cfg, filename)

	table, err := Assemble(raw, cfg, net)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	comp, err := net.Composition(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	sums, err := network.GetSums(comp, net)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	log.WithFields(log.Fields{
		"series":  series,
		"zams":    zams,
		"zones":   table.Len(),
		"network": net.Name,
	}).Debug("loaded progenitor")

	return &Progenitor{
		ZAMS:        zams,
		Series:      series,
		Filename:    filename,
		Filepath:    filepath,
		Config:      cfg,
		Table:       table,
		Network:     net,
		Composition: comp,
		Sums:        sums,
	}, nil
}

// warnReplaced logs configured columns whose missing cells were zero-filled.
func warnReplaced(raw *loader.Raw, cfg *config.Config, filename string) {
	for _, name := range cfg.ColumnNames() {
		if n := raw.Replaced(cfg.Columns[name]); n > 0 {
			log.WithFields(log.Fields{
				"file":   filename,
				"column": name,
				"cells":  n,
			}).Warn("missing values replaced with 0.0")
		}
	}
}

// LoadSet loads several models of one series concurrently. Results are in
// the order of zams; the first failure cancels the remaining loads.
func (l *Loader) LoadSet(ctx context.Context, series string, zams []string, workers int) ([]*Progenitor, error) {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	progs := make([]*Progenitor, len(zams))
	for i, z := range zams {
		i, z := i, z
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := l.Load(z, series)
			if err != nil {
				return err
			}
			progs[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return progs, nil
}
