// Package search defines the contract between the query API and the
// semantic-search subsystem. The embedding model and vector index live
// behind this boundary; ingestion only guarantees that cases.docket_text
// is the durable source of truth they index.
package search

import "context"

// Result is one ranked hit from a semantic search over docket text.
type Result struct {
	CaseNumber       string  `json:"case_number"`
	Title            string  `json:"title"`
	FiledDate        string  `json:"filed_date"`
	Judge            string  `json:"judge"`
	Court            string  `json:"court"`
	BestSimilarity   float64 `json:"best_similarity"`
	BestChunkID      int     `json:"best_chunk_id"`
	BestChunkSnippet string  `json:"best_chunk_snippet"`
}

// Searcher is implemented by the semantic-search subsystem.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]Result, error)
}
