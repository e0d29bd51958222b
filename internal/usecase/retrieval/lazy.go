package retrieval

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/pensum/internal/domain"
	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/filter"
)

// StoreFactory opens the process-wide document store.
type StoreFactory func(ctx context.Context) (DocumentStore, error)

type storeHandle struct {
	store DocumentStore
}

// LazyStore is a DocumentStore that opens its backing store on first use.
// Concurrent first callers share one attempt; a failed attempt is retried by
// the next call. After the first success the handle is read-only.
type LazyStore struct {
	open   StoreFactory
	handle atomic.Pointer[storeHandle]
	group  singleflight.Group
}

// NewLazyStore creates a LazyStore. Nothing is opened until the first call.
func NewLazyStore(open StoreFactory) *LazyStore {
	return &LazyStore{open: open}
}

// Get returns the backing store, opening it if needed.
func (l *LazyStore) Get(ctx context.Context) (DocumentStore, error) {
	if h := l.handle.Load(); h != nil {
		return h.store, nil
	}

	v, err, _ := l.group.Do("store", func() (any, error) {
		if h := l.handle.Load(); h != nil {
			return h.store, nil
		}
		// one caller's cancellation must not fail everyone waiting on the same attempt
		s, err := l.open(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.handle.Store(&storeHandle{store: s})
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return v.(DocumentStore), nil
}

// Ready reports whether the backing store has been opened.
func (l *LazyStore) Ready() bool {
	return l.handle.Load() != nil
}

// SimilaritySearch opens the store if needed and delegates.
func (l *LazyStore) SimilaritySearch(ctx context.Context, query string, k int) ([]document.Document, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.SimilaritySearch(ctx, query, k) //nolint:wrapcheck // transparent proxy
}

// FetchByMetadata opens the store if needed and delegates.
func (l *LazyStore) FetchByMetadata(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.FetchByMetadata(ctx, f, limit) //nolint:wrapcheck // transparent proxy
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ping opens the store if needed and pings it when the backing store supports it.
func (l *LazyStore) Ping(ctx context.Context) error {
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	if p, ok := s.(pinger); ok {
		return p.Ping(ctx) //nolint:wrapcheck // transparent proxy
	}
	return nil
}
