package chi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/pensum/internal/domain"
	healthuc "github.com/kailas-cloud/pensum/internal/usecase/health"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body)) //nolint:noctx // test helper
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

// readFrames returns the data payloads of an SSE body.
func readFrames(t *testing.T, r io.Reader) []string {
	t.Helper()
	var frames []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if data, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
			frames = append(frames, data)
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return frames
}

func TestChat(t *testing.T) {
	srv, me, _ := newTestServer(t)
	var got string
	me.answerFn = func(_ context.Context, q string) (string, error) {
		got = q
		return "4100123", nil
	}

	resp := postJSON(t, srv.URL+"/chat", `{"question":"what is the code of calculus i"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got != "what is the code of calculus i" {
		t.Errorf("engine got %q", got)
	}
	want := ChatResponse{Question: "what is the code of calculus i", Answer: "4100123"}
	if diff := cmp.Diff(want, decode[ChatResponse](t, resp.Body)); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestChat_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		want       ErrorResponse
	}{
		{
			name:       "generation failed",
			err:        fmt.Errorf("%w: upstream 503", domain.ErrGenerationFailed),
			wantStatus: http.StatusBadGateway,
			want:       ErrorResponse{Code: CodeGenerationFailed, Message: MsgGenerationFailed},
		},
		{
			name:       "store unavailable",
			err:        fmt.Errorf("%w: dial tcp", domain.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			want:       ErrorResponse{Code: CodeStoreUnavailable, Message: MsgStoreUnavailable},
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			want:       ErrorResponse{Code: CodeInternalError, Message: MsgInternalError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, me, _ := newTestServer(t)
			me.answerFn = func(_ context.Context, _ string) (string, error) { return "", tt.err }

			resp := postJSON(t, srv.URL+"/chat", `{"question":"hello"}`)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.want, decode[ErrorResponse](t, resp.Body)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChat_BadBody(t *testing.T) {
	srv, me, _ := newTestServer(t)
	called := false
	me.answerFn = func(_ context.Context, _ string) (string, error) {
		called = true
		return "", nil
	}

	resp := postJSON(t, srv.URL+"/chat", `{"question":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body := decode[ErrorResponse](t, resp.Body); body.Code != CodeBadRequest {
		t.Errorf("code = %q", body.Code)
	}
	if called {
		t.Error("engine called for undecodable body")
	}
}

func TestChat_MethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/chat") //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestChatStream(t *testing.T) {
	srv, me, _ := newTestServer(t)
	me.streamFn = func(_ context.Context, _ string) iter.Seq2[string, error] {
		return fragments("Hello", " \"there\"", "!")
	}

	resp := postJSON(t, srv.URL+"/chat/stream", `{"question":"hello"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	want := []string{
		`{"content":"Hello"}`,
		`{"content":" \"there\""}`,
		`{"content":"!"}`,
		`{"done":true}`,
	}
	if diff := cmp.Diff(want, readFrames(t, resp.Body)); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestChatStream_EmptyFragmentStillFramed(t *testing.T) {
	srv, me, _ := newTestServer(t)
	me.streamFn = func(_ context.Context, _ string) iter.Seq2[string, error] { return fragments("") }

	resp := postJSON(t, srv.URL+"/chat/stream", `{"question":"hello"}`)
	want := []string{`{"content":""}`, `{"done":true}`}
	if diff := cmp.Diff(want, readFrames(t, resp.Body)); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestChatStream_Failure(t *testing.T) {
	srv, me, _ := newTestServer(t)
	me.streamFn = func(_ context.Context, _ string) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			if !yield("partial ", nil) {
				return
			}
			yield("", fmt.Errorf("%w: connection reset", domain.ErrGenerationFailed))
		}
	}

	resp := postJSON(t, srv.URL+"/chat/stream", `{"question":"hello"}`)
	frames := readFrames(t, resp.Body)
	if len(frames) != 2 {
		t.Fatalf("frames = %q", frames)
	}
	if frames[0] != `{"content":"partial "}` {
		t.Errorf("first frame = %s", frames[0])
	}
	var last streamFrame
	if err := json.Unmarshal([]byte(frames[1]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Error != CodeGenerationFailed || last.Message != MsgGenerationFailed || last.Done {
		t.Errorf("error frame = %+v", last)
	}
}

func TestChatStream_ClientDisconnectStopsPulling(t *testing.T) {
	srv, me, _ := newTestServer(t)
	pulled := make(chan int, 1)
	me.streamFn = func(ctx context.Context, _ string) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			n := 0
			defer func() { pulled <- n }()
			for {
				if err := ctx.Err(); err != nil {
					yield("", err)
					return
				}
				n++
				if !yield("tick ", nil) {
					return
				}
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/chat/stream", strings.NewReader(`{"question":"hello"}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	sc := bufio.NewScanner(resp.Body)
	sc.Scan()
	cancel()
	_ = resp.Body.Close()

	if n := <-pulled; n == 0 {
		t.Error("expected at least one fragment before disconnect")
	}
}

func TestHealthCheck(t *testing.T) {
	srv, _, mh := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health") //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	want := HealthResponse{Status: "ok", Checks: map[string]string{"store": "ok"}}
	if diff := cmp.Diff(want, decode[HealthResponse](t, resp.Body)); diff != "" {
		t.Errorf("health mismatch (-want +got):\n%s", diff)
	}

	mh.report = healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			healthuc.ComponentStore:      healthuc.CheckOK,
			healthuc.ComponentGeneration: healthuc.CheckError,
		},
	}
	resp2, err := http.Get(srv.URL + "/health") //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("degraded status = %d, want 503", resp2.StatusCode)
	}
	if got := decode[HealthResponse](t, resp2.Body); got.Status != "degraded" || got.Checks["generation"] != "error" {
		t.Errorf("degraded body = %+v", got)
	}
}

func TestRoot(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/") //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body := decode[map[string]string](t, resp.Body)
	if body["service"] != "pensum" || body["status"] != "running" {
		t.Errorf("banner = %v", body)
	}
}

func TestMetrics(t *testing.T) {
	srv, _, _ := newTestServer(t)
	_ = postJSON(t, srv.URL+"/chat", `{"question":"hello"}`)

	resp, err := http.Get(srv.URL + "/metrics") //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `pensum_http_requests_total{method="POST",path="/chat",status="200"}`) {
		t.Error("chat request not counted")
	}
}

func TestNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/collections") //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestChat_EmbeddingTokensHeader(t *testing.T) {
	srv, me, _ := newTestServer(t)
	me.answerFn = func(ctx context.Context, _ string) (string, error) {
		domain.UsageFromContext(ctx).AddTokens(12)
		return "generated", nil
	}

	resp := postJSON(t, srv.URL+"/chat", `{"question":"tell me about calculus"}`)
	if got := resp.Header.Get("X-Embedding-Tokens"); got != "12" {
		t.Errorf("X-Embedding-Tokens = %q, want 12", got)
	}

	me.answerFn = func(_ context.Context, _ string) (string, error) { return "I am pensum", nil }
	resp = postJSON(t, srv.URL+"/chat", `{"question":"who are you"}`)
	if got := resp.Header.Get("X-Embedding-Tokens"); got != "" {
		t.Errorf("X-Embedding-Tokens = %q for an answer without embedding", got)
	}
}
