package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain"
)

// GeneratorConfig holds the chat completion settings.
type GeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Generator is a chat completion client for an OpenAI-compatible endpoint.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewGenerator creates a chat completion client.
func NewGenerator(cfg *GeneratorConfig) *Generator {
	return &Generator{
		client:      newClient(cfg.APIKey, cfg.BaseURL, cfg.HTTPClient),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      cfg.Logger,
	}
}

// Complete returns the whole completion for the prompt pair.
// Every failure wraps domain.ErrGenerationFailed.
func (g *Generator) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, g.request(system, user, false))
	if err != nil {
		return "", parseAPIError("generation", err, domain.ErrGenerationFailed)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerationFailed)
	}

	g.logger.Debug("Completion finished",
		zap.String("model", g.model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// CompleteStream opens a streamed completion. The caller must Close the stream.
func (g *Generator) CompleteStream(ctx context.Context, system, user string) (domain.TextStream, error) {
	s, err := g.client.CreateChatCompletionStream(ctx, g.request(system, user, true))
	if err != nil {
		return nil, parseAPIError("generation", err, domain.ErrGenerationFailed)
	}
	return &chatStream{stream: s}, nil
}

// HealthCheck verifies the endpoint answers ListModels.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func (g *Generator) request(system, user string, stream bool) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: user})

	return openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    msgs,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Stream:      stream,
	}
}

// chatStream adapts the SDK stream to domain.TextStream.
type chatStream struct {
	stream *openai.ChatCompletionStream
}

// Recv returns the next content delta. Chunks without content yield "".
func (c *chatStream) Recv() (string, error) {
	resp, err := c.stream.Recv()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", parseAPIError("generation stream", err, domain.ErrGenerationFailed)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (c *chatStream) Close() error {
	return c.stream.Close() //nolint:wrapcheck // closes the response body
}
