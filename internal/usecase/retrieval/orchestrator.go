package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/intent"
	"github.com/kailas-cloud/pensum/internal/domain/question"
	"github.com/kailas-cloud/pensum/internal/metrics"
)

// Orchestrator turns a classified question into a text context. It never fails:
// store errors degrade to similarity search, and a failing similarity search
// yields an empty context.
type Orchestrator struct {
	store  DocumentStore
	sizes  Sizes
	logger *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSizes overrides the default retrieval sizes.
func WithSizes(s Sizes) Option {
	return func(o *Orchestrator) { o.sizes = s }
}

// NewOrchestrator creates an Orchestrator over store.
func NewOrchestrator(store DocumentStore, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{store: store, sizes: DefaultSizes(), logger: logger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Retrieve returns the joined contents of the documents selected for q.
func (o *Orchestrator) Retrieve(ctx context.Context, q string, in intent.Intent) string {
	return o.RetrieveText(ctx, question.Parse(q), in)
}

// RetrieveText is Retrieve over an already parsed question.
func (o *Orchestrator) RetrieveText(ctx context.Context, t question.Text, in intent.Intent) string {
	plan := NewPlan(t, in, o.sizes)
	docs := o.documents(ctx, t.Raw(), plan)

	o.logger.Debug("Context retrieved",
		zap.String("intent", in.String()),
		zap.Stringer("filter", plan.Filter),
		zap.Int("k", plan.K),
		zap.Bool("exhaustive", plan.Exhaustive),
		zap.Int("documents", len(docs)),
	)
	return document.Join(docs)
}

func (o *Orchestrator) documents(ctx context.Context, q string, plan Plan) []document.Document {
	if plan.Filter.IsEmpty() {
		return o.similar(ctx, q, plan.K)
	}

	docs, err := o.store.FetchByMetadata(ctx, plan.Filter, plan.K)
	switch {
	case err != nil:
		o.logger.Warn("Filtered fetch failed, falling back to similarity search",
			zap.Stringer("filter", plan.Filter),
			zap.Error(err),
		)
		metrics.RetrievalFallbackTotal.WithLabelValues("error").Inc()
		return o.similar(ctx, q, plan.K)
	case len(docs) == 0:
		o.logger.Debug("Filtered fetch empty, falling back to similarity search",
			zap.Stringer("filter", plan.Filter),
		)
		metrics.RetrievalFallbackTotal.WithLabelValues("empty").Inc()
		return o.similar(ctx, q, plan.K)
	}

	metrics.RetrievalTotal.WithLabelValues("filtered").Inc()
	if !plan.Exhaustive && len(docs) > plan.K {
		docs = docs[:plan.K]
	}
	return docs
}

func (o *Orchestrator) similar(ctx context.Context, q string, k int) []document.Document {
	metrics.RetrievalTotal.WithLabelValues("similarity").Inc()
	docs, err := o.store.SimilaritySearch(ctx, q, k)
	if err != nil {
		o.logger.Warn("Similarity search failed, continuing with empty context",
			zap.Int("k", k),
			zap.Error(err),
		)
		return nil
	}
	return docs
}
