// v1
// cmd/ferienplanung/cmd/serve.go
package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timeisseler/ferienplanung/internal/app"
	"github.com/timeisseler/ferienplanung/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den HTTP-Dienst",
	Long: `Startet den HTTP-Dienst für Profil-Upload, Projektion und
CSV-Download. Die Konfiguration wird aus ferienplanung.properties und
FERIENPLANUNG_*-Umgebungsvariablen geladen.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		printError("Konfiguration laden", err)
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		printError("Dienst initialisieren", err)
		return err
	}
	defer func() {
		if cerr := application.Close(); cerr != nil {
			printError("Dienst schließen", cerr)
		}
	}()

	logger := application.Logger()
	logger.Info("service_boot",
		slog.String("listen_address", cfg.ListenAddress),
		slog.String("log_path", cfg.LogFilePath),
		slog.String("properties_path", cfg.PropertiesPath),
		slog.Bool("fallback_enabled", cfg.FallbackEnabled),
		slog.String("cache_db_path", cfg.CacheDBPath),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("service_terminated", slog.Any("err", err))
		return err
	}
	logger.Info("service_stopped")
	return nil
}
