package db

import "github.com/kailas-cloud/pensum/internal/domain/filter"

// KNNQuery is the input for vector similarity search.
// A non-empty Filter pre-filters candidates before the KNN step.
type KNNQuery struct {
	IndexName    string
	Filter       filter.Metadata
	Vector       []float32
	K            int
	ReturnFields []string
}

// ListQuery is the input for an exact metadata fetch without ranking.
type ListQuery struct {
	IndexName    string
	Filter       filter.Metadata
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
