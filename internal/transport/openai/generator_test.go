package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func decodeChatRequest(t *testing.T, r *http.Request) chatRequest {
	t.Helper()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Errorf("decode request: %v", err)
	}
	return req
}

func newTestGenerator(url string) *Generator {
	return NewGenerator(&GeneratorConfig{
		APIKey:      "test-key",
		BaseURL:     url,
		Model:       "llama3.2",
		Temperature: 0.2,
		MaxTokens:   512,
		Logger:      zap.NewNop(),
	})
}

func TestGenerator_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		got = decodeChatRequest(t, r)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","model":"llama3.2",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Calculus I has 4 credits."},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":12,"completion_tokens":6,"total_tokens":18}}`)
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Complete(context.Background(), "You are an advisor.", "credits of calculus?")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Calculus I has 4 credits." {
		t.Errorf("Complete() = %q", out)
	}
	if got.Model != "llama3.2" || got.MaxTokens != 512 || got.Stream {
		t.Errorf("request = %+v", got)
	}
	roles := make([]string, len(got.Messages))
	for i, m := range got.Messages {
		roles[i] = m.Role
	}
	if diff := cmp.Diff([]string{"system", "user"}, roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerator_CompleteWithoutSystemPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeChatRequest(t, r)
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "CONTEXT: ..." {
			t.Errorf("messages = %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer server.Close()

	if _, err := newTestGenerator(server.URL).Complete(context.Background(), "", "CONTEXT: ..."); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestGenerator_CompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":{"message":"model is loading","type":"server_error"}}`)
		}},
		{"no choices", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"choices":[]}`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestGenerator(server.URL).Complete(context.Background(), "", "hi")
			if !errors.Is(err, domain.ErrGenerationFailed) {
				t.Fatalf("err = %v, want ErrGenerationFailed", err)
			}
		})
	}
}

func TestGenerator_CompleteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	if _, err := newTestGenerator(url).Complete(context.Background(), "", "hi"); !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func writeSSE(w http.ResponseWriter, deltas ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	for _, d := range deltas {
		b, _ := json.Marshal(map[string]any{
			"object":  "chat.completion.chunk",
			"choices": []map[string]any{{"index": 0, "delta": map[string]string{"content": d}}},
		})
		fmt.Fprintf(w, "data: %s\n\n", b)
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
}

func TestGenerator_CompleteStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if req := decodeChatRequest(t, r); !req.Stream {
			t.Error("stream flag not set")
		}
		writeSSE(w, "Hello", "", " there")
	}))
	defer server.Close()

	s, err := newTestGenerator(server.URL).CompleteStream(context.Background(), "persona", "hi")
	if err != nil {
		t.Fatalf("CompleteStream: %v", err)
	}
	defer s.Close()

	var frags []string
	for {
		frag, err := s.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		frags = append(frags, frag)
	}
	if diff := cmp.Diff([]string{"Hello", "", " there"}, frags); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerator_CompleteStreamOpenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"auth_error"}}`)
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).CompleteStream(context.Background(), "", "hi")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("upstream message lost: %v", err)
	}
}

func TestGenerator_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if err := newTestGenerator(server.URL).HealthCheck(context.Background()); err == nil {
		t.Error("expected error")
	}
}
