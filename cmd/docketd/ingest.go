package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/cache"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/ingest"
)

var (
	ingestFile   string
	ingestSource string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a JSON batch of docket records",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}

		entityCache := cache.NewEntityCache(cfg.CacheTTL)
		pipeline := ingest.NewPipeline(db, entityCache, log, cfg.QuarantineDir, cfg.BatchCommitSize)

		summary, err := pipeline.IngestFile(ingestFile, ingestSource)
		if err != nil {
			return err
		}

		stats := entityCache.Stats()
		log.Info("Entity cache stats", "hits", stats.Hits, "misses", stats.Misses, "size", stats.Size)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFile, "file", "raw_dockets.json", "Path to the JSON batch file")
	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "Source name (defaults to the file name)")
	rootCmd.AddCommand(ingestCmd)
}
