package chi

import (
	"context"
	"iter"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/pensum/internal/usecase/health"
)

type mockEngine struct {
	answerFn func(ctx context.Context, q string) (string, error)
	streamFn func(ctx context.Context, q string) iter.Seq2[string, error]
}

func (m *mockEngine) Answer(ctx context.Context, q string) (string, error) {
	if m.answerFn != nil {
		return m.answerFn(ctx, q)
	}
	return "answer to " + q, nil
}

func (m *mockEngine) AnswerStream(ctx context.Context, q string) iter.Seq2[string, error] {
	if m.streamFn != nil {
		return m.streamFn(ctx, q)
	}
	return fragments("answer ", "to ", q)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func fragments(frags ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, f := range frags {
			if !yield(f, nil) {
				return
			}
		}
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *mockEngine, *mockHealth) {
	t.Helper()
	me := &mockEngine{}
	mh := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{healthuc.ComponentStore: healthuc.CheckOK},
	}}
	srv := httptest.NewServer(NewRouter(NewServer(me, mh, zap.NewNop()), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, me, mh
}
