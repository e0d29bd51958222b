package answer

import (
	"context"

	"github.com/kailas-cloud/pensum/internal/domain"
	"github.com/kailas-cloud/pensum/internal/domain/intent"
	"github.com/kailas-cloud/pensum/internal/domain/question"
)

// Retriever returns the text context for a classified question. It never fails.
type Retriever interface {
	RetrieveText(ctx context.Context, t question.Text, in intent.Intent) string
}

// Generator is the generative completion service. An empty system prompt sends
// the user message alone.
type Generator interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteStream(ctx context.Context, system, user string) (Stream, error)
}

// Stream is the generative response handle the engine relays.
type Stream = domain.TextStream
