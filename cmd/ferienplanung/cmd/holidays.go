// v1
// cmd/ferienplanung/cmd/holidays.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeisseler/ferienplanung/internal/app"
	"github.com/timeisseler/ferienplanung/internal/config"
	"github.com/timeisseler/ferienplanung/internal/holiday"
)

var (
	holidaysState string
	holidaysYear  int
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Zeigt Feiertage und Schulferien eines Jahres",
	RunE:  runHolidays,
}

func init() {
	holidaysCmd.Flags().StringVarP(&holidaysState, "state", "s", "", "Bundesland-Kürzel, z.B. BY (Pflicht)")
	holidaysCmd.Flags().IntVarP(&holidaysYear, "year", "y", 0, "Kalenderjahr (Pflicht)")
	_ = holidaysCmd.MarkFlagRequired("state")
	_ = holidaysCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(holidaysCmd)
}

func runHolidays(cmd *cobra.Command, _ []string) error {
	region, err := holiday.ValidateRegion(holidaysState)
	if err != nil {
		printError("Bundesland", err)
		return err
	}

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

	name, _ := holiday.StateName(region)
	fmt.Printf("%s (%s), %d\n", name, region, holidaysYear)

	publics, err := src.PublicHolidays(cmd.Context(), region, holidaysYear)
	if err != nil {
		printError("Feiertage laden", err)
		return err
	}
	fmt.Println("\nGesetzliche Feiertage:")
	for _, h := range publics {
		fmt.Printf("  %s  %s\n", h.Date, h.Name)
	}

	periods, err := src.SchoolHolidays(cmd.Context(), region, holidaysYear)
	if err != nil {
		printError("Schulferien laden", err)
		return err
	}
	fmt.Println("\nSchulferien:")
	for _, p := range periods {
		fmt.Printf("  %s bis %s  %s\n", p.Start, p.End, p.Name)
	}
	return nil
}
