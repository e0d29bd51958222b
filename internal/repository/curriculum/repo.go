// Package curriculum stores curriculum documents as Redis hashes behind an FT index
// and serves them to the retrieval orchestrator.
package curriculum

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/pensum/internal/db"
	"github.com/kailas-cloud/pensum/internal/domain"
	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/filter"
)

// store is the consumer interface for the curriculum index (ISP).
type store interface {
	Ping(ctx context.Context) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Config names the index and sizes its vector field.
type Config struct {
	IndexName string
	KeyPrefix string // defaults to KeyPrefix
	VectorDim int
	Distance  db.DistanceMetric
}

// HNSWConfig HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements retrieval.DocumentStore over the FT index.
type Repo struct {
	store    store
	embedder domain.Embedder
	cfg      Config
	hnsw     HNSWConfig
}

// New creates a curriculum repository. Queries are embedded with embedder.
func New(s store, embedder domain.Embedder, cfg Config) *Repo {
	if cfg.Distance == "" {
		cfg.Distance = db.DistanceCosine
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = KeyPrefix
	}
	return &Repo{store: s, embedder: embedder, cfg: cfg, hnsw: HNSWConfig{M: 16, EFConstruct: 200}}
}

// WithHNSW configures HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// IndexName returns the FT index name.
func (r *Repo) IndexName() string { return r.cfg.IndexName }

// SimilaritySearch embeds query and returns the k nearest documents, nearest first.
func (r *Repo) SimilaritySearch(ctx context.Context, query string, k int) ([]document.Document, error) {
	if k <= 0 {
		return nil, nil
	}

	emb, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.cfg.IndexName,
		Vector:       emb.Embedding,
		K:            k,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return toDocuments(sr), nil
}

// FetchByMetadata returns up to limit documents matching every condition of f.
// No match is an empty slice, not an error.
func (r *Repo) FetchByMetadata(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error) {
	if limit <= 0 {
		return []document.Document{}, nil
	}

	sr, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    r.cfg.IndexName,
		Filter:       f,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch by metadata %s: %w", f, err)
	}
	return toDocuments(sr), nil
}

// EnsureIndex creates the FT index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.cfg.IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def, err := buildIndex(r.cfg, r.hnsw)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Ping checks the backing store.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return nil
}
