// v1
// cmd/ferienplanung/cmd/project.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/timeisseler/ferienplanung/internal/app"
	"github.com/timeisseler/ferienplanung/internal/config"
	"github.com/timeisseler/ferienplanung/internal/holiday"
	"github.com/timeisseler/ferienplanung/internal/profile"
	"github.com/timeisseler/ferienplanung/internal/projector"
)

var (
	projectInput string
	projectState string
	projectYears []int
	projectOut   string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Projiziert ein Lastprofil auf Zieljahre",
	Long: `Liest ein Lastprofil-CSV (timestamp;load, Dezimalkomma), projiziert
es auf die angegebenen Zieljahre und schreibt je Jahr eine Ausgabedatei
lastprofil_<bundesland>_<jahr>.csv in das Ausgabeverzeichnis.`,
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&projectInput, "input", "i", "", "Pfad zum Lastprofil-CSV (Pflicht)")
	projectCmd.Flags().StringVarP(&projectState, "state", "s", "", "Bundesland-Kürzel, z.B. BW (Pflicht)")
	projectCmd.Flags().IntSliceVarP(&projectYears, "years", "y", nil, "Zieljahre, z.B. 2026,2027 (Pflicht)")
	projectCmd.Flags().StringVarP(&projectOut, "out", "o", ".", "Ausgabeverzeichnis")
	_ = projectCmd.MarkFlagRequired("input")
	_ = projectCmd.MarkFlagRequired("state")
	_ = projectCmd.MarkFlagRequired("years")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	region, err := holiday.ValidateRegion(projectState)
	if err != nil {
		printError("Bundesland", err)
		return err
	}

	f, err := os.Open(projectInput)
	if err != nil {
		printError("Eingabedatei öffnen", err)
		return err
	}
	intervals, err := profile.ParseCSV(f)
	_ = f.Close()
	if err != nil {
		printError("CSV lesen", err)
		return err
	}
	frame, err := profile.BuildFrame(intervals)
	if err != nil {
		printError("Profil rahmen", err)
		return err
	}
	fmt.Printf("Quelljahr %d: %d volle Tage, %d unvollständige Tage, %d-Minuten-Raster\n",
		frame.Year, frame.FullDays(), frame.PartialDays(), int(frame.Step.Minutes()))

	cfg, err := config.Load()
	if err != nil {
		printError("Konfiguration laden", err)
		return err
	}
	logger := cliLogger()
	src, store, err := app.NewSource(cfg, logger)
	if err != nil {
		printError("Feiertagsquelle initialisieren", err)
		return err
	}
	defer func() {
		if store != nil {
			_ = store.Close()
		}
	}()

	if err := os.MkdirAll(projectOut, 0o755); err != nil {
		printError("Ausgabeverzeichnis anlegen", err)
		return err
	}

	runner := projector.New(src, logger)
	results, err := runner.Project(cmd.Context(), frame, region, projectYears)
	if err != nil {
		printError("Projektion", err)
		return err
	}

	failed := 0
	for _, yp := range results {
		if yp.Err != nil {
			failed++
			printError(fmt.Sprintf("Jahr %d", yp.Year), yp.Err)
			continue
		}
		path := filepath.Join(projectOut, fmt.Sprintf("lastprofil_%s_%d.csv", region, yp.Year))
		if err := writeProjection(path, yp); err != nil {
			failed++
			printError(fmt.Sprintf("Jahr %d schreiben", yp.Year), err)
			continue
		}
		fmt.Printf("Jahr %d: %d Intervalle -> %s\n", yp.Year, len(yp.Profile.Intervals), path)
		printKindSummary(yp)
	}
	if failed > 0 {
		return fmt.Errorf("%d von %d Zieljahren fehlgeschlagen", failed, len(results))
	}
	return nil
}

func writeProjection(path string, yp projector.YearProjection) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := profile.WriteCSV(out, yp.Profile); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func printKindSummary(yp projector.YearProjection) {
	counts := make(map[string]int)
	for _, m := range yp.Matches {
		counts[m.Kind.String()]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-28s %d Tage\n", k, counts[k])
	}
}
