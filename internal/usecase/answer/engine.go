// Package answer composes classification, retrieval and extraction into a single
// answer, and delivers it whole or as a fragment stream with the same routing.
package answer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain"
	"github.com/kailas-cloud/pensum/internal/domain/intent"
	"github.com/kailas-cloud/pensum/internal/domain/question"
	"github.com/kailas-cloud/pensum/internal/metrics"
	"github.com/kailas-cloud/pensum/internal/usecase/classifier"
	"github.com/kailas-cloud/pensum/internal/usecase/extract"
)

// Engine answers curriculum questions. It holds no per-request state.
type Engine struct {
	retriever Retriever
	generator Generator
	identity  string
	persona   string
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithIdentity overrides the fixed identity reply.
func WithIdentity(text string) Option {
	return func(e *Engine) { e.identity = text }
}

// WithPersona overrides the small-talk system prompt.
func WithPersona(prompt string) Option {
	return func(e *Engine) { e.persona = prompt }
}

// New creates an Engine.
func New(retriever Retriever, generator Generator, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		retriever: retriever,
		generator: generator,
		identity:  DefaultIdentity,
		persona:   DefaultPersona,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synthesize classifies q and walks its path up to the point of delivery.
// Deterministic paths return fixed text; generative paths return the prompts.
func (e *Engine) Synthesize(ctx context.Context, q string) Answer {
	t := question.Parse(q)
	in := classifier.ClassifyText(t)
	metrics.IntentsTotal.WithLabelValues(in.String()).Inc()

	a := e.synthesize(ctx, t, in)

	metrics.AnswerPathTotal.WithLabelValues(in.String(), a.Path()).Inc()
	e.logger.Debug("Question routed",
		zap.String("intent", in.String()),
		zap.String("path", a.Path()),
	)
	return a
}

func (e *Engine) synthesize(ctx context.Context, t question.Text, in intent.Intent) Answer {
	switch in {
	case intent.Identity:
		return Fixed(in, e.identity)

	case intent.Social:
		user := t.Raw()
		if t.IsEmpty() {
			user = emptyQuestion
		}
		return Pending(in, e.persona, user)

	case intent.Quantity:
		kind, _ := t.Kind()
		category, _ := t.Category()
		return Fixed(in, QuantitySentence(kind, category))

	case intent.FieldLookup:
		retrieved := e.retriever.RetrieveText(ctx, t, in)
		if v, ok := extract.FieldText(retrieved, t); ok {
			return Fixed(in, v)
		}
		return e.grounded(in, retrieved, t)

	case intent.Listing:
		retrieved := e.retriever.RetrieveText(ctx, t, in)
		records := extract.Records(retrieved)
		if len(records) == 0 {
			return e.grounded(in, retrieved, t)
		}
		if n, ok := t.Semester(); ok {
			records = extract.BySemester(records, strconv.Itoa(n))
			if len(records) == 0 {
				return Fixed(in, NoCoursesForSemester(n))
			}
		}
		return Fixed(in, FormatList(records))

	default:
		return e.grounded(in, e.retriever.RetrieveText(ctx, t, in), t)
	}
}

// grounded hands the already retrieved context to the generative service.
// The intent is kept as classified.
func (e *Engine) grounded(in intent.Intent, retrieved string, t question.Text) Answer {
	return Pending(in, "", GroundedPrompt(retrieved, t.Raw()))
}

// Answer returns the whole answer to q. Generation failures wrap domain.ErrGenerationFailed.
func (e *Engine) Answer(ctx context.Context, q string) (string, error) {
	return e.Render(ctx, e.Synthesize(ctx, q))
}

// Render delivers a synthesized answer as a single string.
func (e *Engine) Render(ctx context.Context, a Answer) (string, error) {
	if !a.IsGenerated() {
		return a.Text(), nil
	}

	start := time.Now()
	out, err := e.generator.Complete(ctx, a.system, a.user)
	metrics.GenerationDuration.WithLabelValues("whole").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues("whole", "error").Inc()
		e.logger.Error("Generation failed",
			zap.String("intent", a.Intent().String()),
			zap.Error(err),
		)
		return "", generationError(err)
	}
	metrics.GenerationRequestsTotal.WithLabelValues("whole", "ok").Inc()
	return out, nil
}

// AnswerStream returns the answer to q as a lazy fragment sequence. Nothing runs
// until the sequence is ranged over, and it can be ranged over only once: a second
// pass yields domain.ErrStreamConsumed. Concatenating the fragments of a
// deterministic answer yields exactly what Answer returns.
func (e *Engine) AnswerStream(ctx context.Context, q string) iter.Seq2[string, error] {
	var used atomic.Bool
	return func(yield func(string, error) bool) {
		if used.Swap(true) {
			yield("", domain.ErrStreamConsumed)
			return
		}
		e.RenderStream(ctx, e.Synthesize(ctx, q))(yield)
	}
}

// RenderStream delivers a synthesized answer as fragments. Fixed text is split
// into words; generated text is relayed as the service produces it.
func (e *Engine) RenderStream(ctx context.Context, a Answer) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !a.IsGenerated() {
			for _, w := range Words(a.Text()) {
				if !yield(w, nil) {
					return
				}
			}
			return
		}
		e.relay(ctx, a, yield)
	}
}

func (e *Engine) relay(ctx context.Context, a Answer, yield func(string, error) bool) {
	start := time.Now()
	defer func() {
		metrics.GenerationDuration.WithLabelValues("stream").Observe(time.Since(start).Seconds())
	}()

	stream, err := e.generator.CompleteStream(ctx, a.system, a.user)
	if err != nil {
		e.streamFailed(a, err)
		yield("", generationError(err))
		return
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			e.logger.Debug("Close generation stream", zap.Error(cerr))
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			metrics.GenerationRequestsTotal.WithLabelValues("stream", "canceled").Inc()
			yield("", fmt.Errorf("answer stream: %w", err))
			return
		}
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			metrics.GenerationRequestsTotal.WithLabelValues("stream", "ok").Inc()
			return
		}
		if err != nil {
			e.streamFailed(a, err)
			yield("", generationError(err))
			return
		}
		if frag == "" {
			continue
		}
		if !yield(frag, nil) {
			metrics.GenerationRequestsTotal.WithLabelValues("stream", "abandoned").Inc()
			return
		}
	}
}

func (e *Engine) streamFailed(a Answer, err error) {
	metrics.GenerationRequestsTotal.WithLabelValues("stream", "error").Inc()
	e.logger.Error("Generation stream failed",
		zap.String("intent", a.Intent().String()),
		zap.Error(err),
	)
}

func generationError(err error) error {
	if errors.Is(err, domain.ErrGenerationFailed) {
		return fmt.Errorf("generate: %w", err)
	}
	return fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
}
