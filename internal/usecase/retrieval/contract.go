package retrieval

import (
	"context"

	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/filter"
)

// DocumentStore is the read contract over the curriculum corpus.
type DocumentStore interface {
	// SimilaritySearch returns up to k documents nearest to query.
	SimilaritySearch(ctx context.Context, query string, k int) ([]document.Document, error)
	// FetchByMetadata returns up to limit documents matching every condition of f,
	// in store order. It returns an empty slice, not an error, when nothing matches.
	FetchByMetadata(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error)
}
