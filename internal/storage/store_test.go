package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/progs/internal/network"
	"github.com/san-kum/progs/internal/progenitor"
	"github.com/san-kum/progs/internal/stellar"
)

func testProgenitor(t *testing.T) *progenitor.Progenitor {
	t.Helper()
	tbl := stellar.NewTable(2)
	if err := tbl.Set("radius", []float64{0, 2e8}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Set("compactness", []float64{math.Inf(1), 0.123456789012345}); err != nil {
		t.Fatal(err)
	}
	return &progenitor.Progenitor{
		ZAMS:     "12.1",
		Series:   "sukhbold_2016",
		Filepath: "/data/s12.1_presn",
		Table:    tbl,
		Network:  network.Network{Name: "approx21", Isotopes: []network.Isotope{{Name: "he4", A: 4, Z: 2}}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p := testProgenitor(t)
	runID, err := st.Save(p, map[string]float64{"xi_2.5": 0.25, "bad": math.NaN()})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Series != "sukhbold_2016" || meta.ZAMS != "12.1" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Zones != 2 {
		t.Errorf("expected 2 zones, got %d", meta.Zones)
	}
	if meta.Metrics["xi_2.5"] != 0.25 {
		t.Errorf("expected xi_2.5 0.25, got %f", meta.Metrics["xi_2.5"])
	}
	if _, ok := meta.Metrics["bad"]; ok {
		t.Error("NaN metric should not be stored")
	}

	tbl, err := st.LoadTable(runID)
	if err != nil {
		t.Fatalf("load table failed: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("expected 2 zones, got %d", tbl.Len())
	}
	xi, err := tbl.Column("compactness")
	if err != nil {
		t.Fatalf("compactness column missing: %v", err)
	}
	if !math.IsInf(xi[0], 1) {
		t.Errorf("expected +Inf to round trip, got %g", xi[0])
	}
	if xi[1] != 0.123456789012345 {
		t.Errorf("expected exact round trip, got %.17g", xi[1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testProgenitor(t), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}

	missing := New(filepath.Join(tmpDir, "nope"))
	runs, err = missing.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list for missing dir, got %v, %v", runs, err)
	}
}

func TestStoreSave_RemovesPartialRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	create = func(name string) (*os.File, error) {
		if filepath.Base(name) == "profile.csv" {
			return nil, errors.New("disk full")
		}
		return os.Create(name)
	}
	t.Cleanup(func() { create = os.Create })

	if _, err := st.Save(testProgenitor(t), nil); err == nil {
		t.Fatal("expected save to fail")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directory after a failed save, got %d entries", len(entries))
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testProgenitor(t), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "profile.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("profile.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, testProgenitor(t), map[string]float64{"total_mass": 15}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data struct {
		Zones   int                   `json:"zones"`
		Profile map[string][]*float64 `json:"profile"`
		Metrics map[string]float64    `json:"metrics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if data.Zones != 2 {
		t.Errorf("expected 2 zones, got %d", data.Zones)
	}
	xi := data.Profile["compactness"]
	if len(xi) != 2 || xi[0] != nil || xi[1] == nil {
		t.Errorf("expected null for +Inf and a value otherwise, got %v", xi)
	}
	if data.Metrics["total_mass"] != 15 {
		t.Errorf("expected total_mass 15, got %v", data.Metrics)
	}
}
