package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/progs/internal/catalog"
	"github.com/san-kum/progs/internal/config"
	"github.com/san-kum/progs/internal/metrics"
	"github.com/san-kum/progs/internal/network"
	"github.com/san-kum/progs/internal/progenitor"
	"github.com/san-kum/progs/internal/stellar"
	"github.com/san-kum/progs/internal/storage"
)

var (
	rootDir    string
	dataDir    string
	configFile string
	verbose    bool
	// show / sums
	columns []string
	rows    int
	// summary
	workers     int
	catalogPath string
	noCatalog   bool
	// export
	outFile string
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "progs",
		Short: "load and analyse pre-supernova progenitor profiles",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.InfoLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "directory holding progenitor_sets/, config/ and networks/")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".progs", "data directory for saved analyses")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "series config file (ini or yaml), overrides the series default")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	listCmd := &cobra.Command{
		Use:   "list [series]",
		Short: "list available models of a series",
		Args:  cobra.ExactArgs(1),
		RunE:  listProgs,
	}

	showCmd := &cobra.Command{
		Use:   "show [series] [zams]",
		Short: "print profile columns",
		Args:  cobra.ExactArgs(2),
		RunE:  showProfile,
	}
	showCmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to print (default all)")
	showCmd.Flags().IntVar(&rows, "rows", 10, "zones to print, 0 for all")

	sumsCmd := &cobra.Command{
		Use:   "sums [series] [zams]",
		Short: "print composition sums",
		Args:  cobra.ExactArgs(2),
		RunE:  showSums,
	}
	sumsCmd.Flags().IntVar(&rows, "rows", 10, "zones to print, 0 for all")

	summaryCmd := &cobra.Command{
		Use:   "summary [series] [zams...]",
		Short: "summary metrics for several models",
		Args:  cobra.MinimumNArgs(1),
		RunE:  summarize,
	}
	summaryCmd.Flags().IntVar(&workers, "workers", 4, "models loaded concurrently")
	summaryCmd.Flags().StringVar(&catalogPath, "catalog", "", "sqlite catalog to record summaries in (default <data>/catalog.db)")
	summaryCmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "do not record summaries")

	catalogCmd := &cobra.Command{
		Use:   "catalog [series]",
		Short: "list catalogued summaries",
		Args:  cobra.ExactArgs(1),
		RunE:  listCatalog,
	}
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "sqlite catalog (default <data>/catalog.db)")

	saveCmd := &cobra.Command{
		Use:   "save [series] [zams]",
		Short: "save an analysed profile",
		Args:  cobra.ExactArgs(2),
		RunE:  saveProfile,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved analyses",
		RunE:  listRuns,
	}

	runCmd := &cobra.Command{
		Use:   "run [run_id]",
		Short: "print saved analysis metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [series] [zams]",
		Short: "export a profile to JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  exportProfile,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in series layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SERIES\tNETWORK\tCOLUMNS\tDERIVED")
			for _, name := range config.ListPresets() {
				cfg := config.Preset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, cfg.Network.Name, len(cfg.Columns), strings.Join(cfg.Load.DerivedColumns, ","))
			}
			return w.Flush()
		},
	}

	networksCmd := &cobra.Command{
		Use:   "networks",
		Short: "list built-in isotope networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range network.BuiltinNames() {
				net, err := network.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s (%d isotopes): %s\n", name, len(net.Isotopes), strings.Join(net.Names(), " "))
			}
			return nil
		},
	}

	rootCmd.AddCommand(listCmd, showCmd, sumsCmd, summaryCmd, catalogCmd, saveCmd, runsCmd, runCmd, exportCmd, presetsCmd, networksCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLoader() (*progenitor.Loader, error) {
	l := progenitor.NewLoader(rootDir)
	if configFile != "" {
		cfg, err := config.LoadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		l.Config = cfg
	}
	return l, nil
}

// catalogFile is the catalog shared by summary and catalog.
func catalogFile() string {
	if catalogPath != "" {
		return catalogPath
	}
	return filepath.Join(dataDir, "catalog.db")
}

func loadOne(series, zams string) (*progenitor.Progenitor, error) {
	l, err := newLoader()
	if err != nil {
		return nil, err
	}
	return l.Load(zams, series)
}

func listProgs(cmd *cobra.Command, args []string) error {
	l, err := newLoader()
	if err != nil {
		return err
	}
	zams, err := l.Find(args[0])
	if err != nil {
		return err
	}
	if len(zams) == 0 {
		fmt.Println("no models found")
		return nil
	}
	for _, z := range zams {
		fmt.Println(z)
	}
	return nil
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6e", v)
}

func renderTable(headers []string, body [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(body...)
	return t.Render()
}

// zoneRows formats the first n zones of the named columns.
func zoneRows(t *stellar.Table, names []string, n int) ([][]string, error) {
	if n <= 0 || n > t.Len() {
		n = t.Len()
	}
	cols := make([][]float64, len(names))
	for j, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	body := make([][]string, n)
	for i := 0; i < n; i++ {
		row := []string{fmt.Sprint(i)}
		for j := range names {
			row = append(row, formatValue(cols[j][i]))
		}
		body[i] = row
	}
	return body, nil
}

func showProfile(cmd *cobra.Command, args []string) error {
	p, err := loadOne(args[0], args[1])
	if err != nil {
		return err
	}

	names := columns
	if len(names) == 0 {
		names = p.Table.Columns()
	}
	body, err := zoneRows(p.Table, names, rows)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s: %d zones, network %s\n", p.Series, p.ZAMS, p.Zones(), p.Network.Name)
	fmt.Println(renderTable(append([]string{"zone"}, names...), body))
	return nil
}

func showSums(cmd *cobra.Command, args []string) error {
	p, err := loadOne(args[0], args[1])
	if err != nil {
		return err
	}

	sums := p.Sums.Table()
	body, err := zoneRows(sums, sums.Columns(), rows)
	if err != nil {
		return err
	}

	if bad := stellar.Degenerate(p.Sums.Abar); len(bad) > 0 {
		log.WithFields(log.Fields{"zones": len(bad), "first": bad[0]}).Warn("zones without composition")
	}
	fmt.Println(renderTable(append([]string{"zone"}, sums.Columns()...), body))
	return nil
}

func summarize(cmd *cobra.Command, args []string) error {
	series := args[0]
	l, err := newLoader()
	if err != nil {
		return err
	}

	zams := args[1:]
	if len(zams) == 0 {
		zams, err = l.Find(series)
		if err != nil {
			return err
		}
	}
	if len(zams) == 0 {
		fmt.Println("no models found")
		return nil
	}

	progs, err := l.LoadSet(context.Background(), series, zams, workers)
	if err != nil {
		return err
	}

	var cat *catalog.Catalog
	if !noCatalog {
		cat, err = catalog.Open(catalogFile())
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	ms := metrics.DefaultMetrics()
	names := metrics.Names(ms)
	body := make([][]string, 0, len(progs))
	for _, p := range progs {
		values, err := metrics.Summarize(p, ms)
		if err != nil {
			log.WithFields(log.Fields{"zams": p.ZAMS, "error": err}).Warn("some metrics unavailable")
		}

		row := []string{p.ZAMS, fmt.Sprint(p.Zones())}
		for _, name := range names {
			if v, ok := values[name]; ok {
				row = append(row, fmt.Sprintf("%.4g", v))
			} else {
				row = append(row, "-")
			}
		}
		body = append(body, row)

		if cat != nil {
			entry := catalog.Entry{
				Series:  p.Series,
				ZAMS:    p.ZAMS,
				Zones:   p.Zones(),
				Network: p.Network.Name,
				Metrics: values,
			}
			if err := cat.Put(cmd.Context(), entry); err != nil {
				return err
			}
		}
	}

	fmt.Println(renderTable(append([]string{"zams", "zones"}, names...), body))
	return nil
}

func listCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Open(catalogFile())
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no entries found")
		return nil
	}

	names := metrics.Names(metrics.DefaultMetrics())
	body := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{e.ZAMS, fmt.Sprint(e.Zones), e.Network}
		for _, name := range names {
			if v, ok := e.Metrics[name]; ok {
				row = append(row, fmt.Sprintf("%.4g", v))
			} else {
				row = append(row, "-")
			}
		}
		body = append(body, row)
	}
	fmt.Println(renderTable(append([]string{"zams", "zones", "network"}, names...), body))
	return nil
}

func saveProfile(cmd *cobra.Command, args []string) error {
	p, err := loadOne(args[0], args[1])
	if err != nil {
		return err
	}

	values, err := metrics.Summarize(p, metrics.DefaultMetrics())
	if err != nil {
		log.WithField("error", err).Warn("some metrics unavailable")
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(p, values)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("zones: %d\n", p.Zones())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSERIES\tZAMS\tTIME\tZONES\tNETWORK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Series,
			run.ZAMS,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Zones,
			run.Network,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportProfile(cmd *cobra.Command, args []string) error {
	p, err := loadOne(args[0], args[1])
	if err != nil {
		return err
	}

	values, err := metrics.Summarize(p, metrics.DefaultMetrics())
	if err != nil {
		log.WithField("error", err).Debug("some metrics unavailable")
	}

	if outFile == "" {
		return storage.ExportJSON(os.Stdout, p, values)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.ExportJSON(f, p, values); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}
