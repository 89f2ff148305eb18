// v1
// cmd/ferienplanung/cmd/root.go
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ferienplanung",
	Short: "Kalenderbewusste Lastprofil-Projektion",
	Long: `ferienplanung projiziert ein Quelljahr von Lastgang-Messwerten auf
künftige Zieljahre. Jeder Zieltag erhält die Werte eines kalendarisch
gleichartigen Quelltags: Feiertage auf Feiertage, Wochenenden auf
Wochenenden, Schulferien auf Schulferien.

Befehle:
  serve     - HTTP-Dienst starten
  project   - Lastprofil-CSV direkt projizieren
  holidays  - Feiertage und Schulferien eines Jahres anzeigen
  version   - Versionsinformation ausgeben`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "ausführliche Ausgabe")
}

// cliLogger returns a stderr logger for the one-shot commands; the serve
// command uses the service's own file-backed logger instead.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
