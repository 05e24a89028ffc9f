package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/report"
)

var (
	reportRunID uint
	reportSince string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the data-quality report",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportSince != "" {
			if _, err := time.Parse("2006-01-02", reportSince); err != nil {
				return fmt.Errorf("invalid --since date, use YYYY-MM-DD: %w", err)
			}
		}

		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}

		r, err := report.Generate(db, report.Options{RunID: reportRunID, Since: reportSince})
		if err != nil {
			return err
		}

		r.Render(os.Stdout)
		if code := r.ExitCode(); code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().UintVar(&reportRunID, "run-id", 0, "Restrict to a specific ingest run")
	reportCmd.Flags().StringVar(&reportSince, "since", "", "Scope to cases filed on/after this date (YYYY-MM-DD)")
	rootCmd.AddCommand(reportCmd)
}
