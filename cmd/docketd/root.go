package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/config"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docketd",
	Short: "Legal docket ingestion pipeline",
	Long:  "Ingests noisy free-text docket records into a normalized store, with entity resolution, validation, quarantine of malformed records, and a read-only query API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		l, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
