package retrieval

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/filter"
)

// mockStore implements DocumentStore for tests.
type mockStore struct {
	similarityFn func(ctx context.Context, query string, k int) ([]document.Document, error)
	fetchFn      func(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error)

	similarityCalls int
	fetchCalls      int
	lastK           int
	lastFilter      filter.Metadata
}

func (m *mockStore) SimilaritySearch(ctx context.Context, query string, k int) ([]document.Document, error) {
	m.similarityCalls++
	m.lastK = k
	if m.similarityFn != nil {
		return m.similarityFn(ctx, query, k)
	}
	return nil, nil
}

func (m *mockStore) FetchByMetadata(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error) {
	m.fetchCalls++
	m.lastFilter = f
	if m.fetchFn != nil {
		return m.fetchFn(ctx, f, limit)
	}
	return nil, nil
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return NewOrchestrator(ms, zap.NewNop()), ms
}

func courseDocs(n int, semester string) []document.Document {
	docs := make([]document.Document, n)
	for i := range docs {
		docs[i] = document.New(
			fmt.Sprintf("Subject: Course %d\nSemester: %s", i+1, semester),
			document.Metadata{document.FieldSemester: semester},
		)
	}
	return docs
}
