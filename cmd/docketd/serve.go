package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only query API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}

		// No semantic-search subsystem is wired in this binary; the
		// search endpoint reports it as unavailable.
		srv := server.New(cfg, db, nil, log)

		log.Info("Starting query API",
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.DatabasePath,
		)
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
