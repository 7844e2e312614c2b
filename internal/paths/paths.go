// Package paths resolves progenitor series names and the on-disk layout of
// model files, series configurations and network tables.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var ErrUnknownSeries = errors.New("paths: progenitor series not defined")

var aliases = map[string]string{
	"s16":   "sukhbold_2016",
	"s18":   "sukhbold_2018",
	"WH02":  "wh_02",
	"WH_02": "wh_02",
}

var filenames = map[string]func(zams string) string{
	"sukhbold_2016": func(zams string) string { return "s" + zams + "_presn" },
	"wh_02":         func(zams string) string { return "s" + zams + "_presn" },
}

// CheckAlias returns the full series name if series is a known alias.
func CheckAlias(series string) string {
	if full, ok := aliases[series]; ok {
		return full
	}
	return series
}

// ProgFilename returns the model file name. zams must carry the precision
// used in the file label, e.g. "12.1" or "60".
func ProgFilename(zams, series string) (string, error) {
	series = CheckAlias(series)
	fn, ok := filenames[series]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSeries, series)
	}
	return fn(zams), nil
}

// Layout is a directory tree holding progenitor_sets/, config/ and networks/.
type Layout struct {
	Root string
}

func New(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) SetsPath() string {
	return filepath.Join(l.Root, "progenitor_sets")
}

func (l Layout) SeriesPath(series string) string {
	return filepath.Join(l.SetsPath(), CheckAlias(series))
}

func (l Layout) ProgFilepath(zams, series string) (string, error) {
	name, err := ProgFilename(zams, series)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.SeriesPath(series), name), nil
}

func (l Layout) ConfigFilepath(series string) string {
	return filepath.Join(l.Root, "config", CheckAlias(series)+".ini")
}

func (l Layout) NetworkFilepath(network string) string {
	return filepath.Join(l.Root, "networks", network+".txt")
}

// FindProgs lists the ZAMS labels of model files in dir. A file matches if
// its name contains matchStr; the label is the name with every character
// of strip trimmed from both ends. Labels are sorted numerically.
func FindProgs(dir, matchStr, strip string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type prog struct {
		label string
		zams  float64
	}
	var progs []prog
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), matchStr) {
			continue
		}
		label := strings.Trim(entry.Name(), strip)
		zams, err := strconv.ParseFloat(label, 64)
		if err != nil {
			continue
		}
		progs = append(progs, prog{label: label, zams: zams})
	}

	sort.SliceStable(progs, func(i, j int) bool { return progs[i].zams < progs[j].zams })

	labels := make([]string, len(progs))
	for i, p := range progs {
		labels[i] = p.label
	}
	return labels, nil
}
