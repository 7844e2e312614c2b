package progenitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/progs/internal/config"
)

const tinyINI = `
[load]
skiprows = 1
missing_char = ---
derived_columns = compactness, iron_group, sums

[columns]
zone_mass = 1
mass = 2
radius = 3
temperature = 4
ang_velocity = 5
he4 = 6
ni56 = 7

[network]
name = tiny
iron_group = ni56
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func tinyLayout(t *testing.T, zams ...string) *Loader {
	t.Helper()
	l := NewLoader(t.TempDir())
	writeFile(t, l.Layout.ConfigFilepath("sukhbold_2016"), tinyINI)
	writeFile(t, l.Layout.NetworkFilepath("tiny"), "isotope A Z\nhe4 4 2\nni56 56 28\n")
	for _, z := range zams {
		path, err := l.Layout.ProgFilepath(z, "sukhbold_2016")
		if err != nil {
			t.Fatal(err)
		}
		writeFile(t, path, rawModel)
	}
	return l
}

func TestLoaderLoad(t *testing.T) {
	g := NewWithT(t)
	l := tinyLayout(t, "12.1")

	p, err := l.Load("12.1", "s16")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Series).To(Equal("sukhbold_2016"))
	g.Expect(p.Filename).To(Equal("s12.1_presn"))
	g.Expect(p.Zones()).To(Equal(3))
	g.Expect(p.Network.Name).To(Equal("tiny"))
	g.Expect(p.Composition.Columns()).To(Equal([]string{"he4", "ni56"}))
	g.Expect(p.Sums.SumX).To(Equal([]float64{1.0, 1.0, 1.0}))
	g.Expect(p.Table.Has("compactness")).To(BeTrue())
	g.Expect(p.Table.Has("luminosity")).To(BeFalse())

	_, err = l.Load("99", "s16")
	g.Expect(err).To(HaveOccurred())

	_, err = l.Load("12", "s18")
	g.Expect(err).To(MatchError(ErrNoConfig))
}

func TestLoaderFind(t *testing.T) {
	g := NewWithT(t)
	l := tinyLayout(t, "20", "9.5", "12.1")

	zams, err := l.Find("s16")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(zams).To(Equal([]string{"9.5", "12.1", "20"}))
}

func TestLoaderSeriesConfig(t *testing.T) {
	g := NewWithT(t)
	l := NewLoader(t.TempDir())

	cfg, err := l.SeriesConfig("WH02")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Network.Name).To(Equal("approx19"))

	override := config.Preset("sukhbold_2016")
	l.Config = override
	cfg, err = l.SeriesConfig("wh_02")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Network.Name).To(Equal("approx21"))

	invalid := config.Preset("sukhbold_2016")
	invalid.Network.Name = ""
	l.Config = invalid
	_, err = l.SeriesConfig("wh_02")
	g.Expect(err).To(MatchError(config.ErrInvalidConfig))

	net, err := l.Network("approx21")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(net.Isotopes).To(HaveLen(21))
}

// presetRow builds one zone of the built-in s16 layout.
func presetRow(i int) string {
	fields := []string{
		fmt.Sprint(i),                  // grid
		"1.988409870698051e33",         // zone mass
		fmt.Sprintf("%de33", i+1),      // outer mass
		fmt.Sprintf("%de8", i+1),       // radius
		"0", "1", "1e9", "1", "1", "1", // velocity .. entropy
		"0.01",                         // angular velocity
		"4", "0.5", "conv", "APPROX",   // unused
	}
	iso := make([]string, 21)
	for j := range iso {
		iso[j] = "0"
	}
	iso[4] = "1.0" // he4
	return strings.Join(append(fields, iso...), " ")
}

func TestLoaderLoad_Preset(t *testing.T) {
	g := NewWithT(t)
	l := NewLoader(t.TempDir())

	rows := []string{"# header", "# units"}
	for i := 0; i < 4; i++ {
		rows = append(rows, presetRow(i))
	}
	path, err := l.Layout.ProgFilepath("15", "s16")
	g.Expect(err).NotTo(HaveOccurred())
	writeFile(t, path, strings.Join(rows, "\n")+"\n")

	p, err := l.Load("15", "s16")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Zones()).To(Equal(4))
	g.Expect(p.Table.Has("iron_group")).To(BeTrue())
	g.Expect(p.Sums.Abar[0]).To(BeNumerically("~", 4.0, 1e-12))
}

func TestLoadSet(t *testing.T) {
	g := NewWithT(t)
	l := tinyLayout(t, "10", "11", "12", "13")

	progs, err := l.LoadSet(context.Background(), "s16", []string{"13", "10", "12", "11"}, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(progs).To(HaveLen(4))
	g.Expect(progs[0].ZAMS).To(Equal("13"))
	g.Expect(progs[3].ZAMS).To(Equal("11"))

	_, err = l.LoadSet(context.Background(), "s16", []string{"10", "missing"}, 0)
	g.Expect(err).To(HaveOccurred())
}
