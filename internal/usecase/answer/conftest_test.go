package answer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/filter"
	"github.com/kailas-cloud/pensum/internal/usecase/retrieval"
)

// mockStore implements retrieval.DocumentStore for tests.
type mockStore struct {
	similarityFn func(ctx context.Context, query string, k int) ([]document.Document, error)
	fetchFn      func(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error)
	calls        int
}

func (m *mockStore) SimilaritySearch(ctx context.Context, query string, k int) ([]document.Document, error) {
	m.calls++
	if m.similarityFn != nil {
		return m.similarityFn(ctx, query, k)
	}
	return nil, nil
}

func (m *mockStore) FetchByMetadata(ctx context.Context, f filter.Metadata, limit int) ([]document.Document, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, f, limit)
	}
	return nil, nil
}

// mockStream is a scripted generative stream.
type mockStream struct {
	fragments []string
	err       error // returned after the fragments instead of io.EOF
	closed    int
}

func (s *mockStream) Recv() (string, error) {
	if len(s.fragments) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	f := s.fragments[0]
	s.fragments = s.fragments[1:]
	return f, nil
}

func (s *mockStream) Close() error {
	s.closed++
	return nil
}

// mockGenerator implements Generator for tests.
type mockGenerator struct {
	completeFn func(ctx context.Context, system, user string) (string, error)
	stream     *mockStream
	streamErr  error

	calls      int
	lastSystem string
	lastUser   string
}

func (m *mockGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	m.calls++
	m.lastSystem, m.lastUser = system, user
	if m.completeFn != nil {
		return m.completeFn(ctx, system, user)
	}
	return "generated answer", nil
}

func (m *mockGenerator) CompleteStream(_ context.Context, system, user string) (Stream, error) {
	m.calls++
	m.lastSystem, m.lastUser = system, user
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	if m.stream == nil {
		m.stream = &mockStream{fragments: []string{"generated ", "answer"}}
	}
	return m.stream, nil
}

func newTestEngine(t *testing.T) (*Engine, *mockStore, *mockGenerator) {
	t.Helper()
	ms := &mockStore{}
	mg := &mockGenerator{}
	orch := retrieval.NewOrchestrator(ms, zap.NewNop())
	return New(orch, mg, zap.NewNop()), ms, mg
}

func courseContent(name, code, semester, credits, typology, prerequisites string) string {
	s := fmt.Sprintf("Subject: %s\nCode: %s\nSemester: %s\nCredits: %s\nTypology: %s", name, code, semester, credits, typology)
	if prerequisites != "" {
		s += "\nPrerequisites: " + prerequisites
	}
	return s
}

func courseDoc(name, code, semester string) document.Document {
	return document.New(
		courseContent(name, code, semester, "3", "Mandatory Disciplinary", ""),
		document.Metadata{
			document.FieldCode:     code,
			document.FieldName:     name,
			document.FieldSemester: semester,
		},
	)
}

func collect(t *testing.T, seq func(func(string, error) bool)) (string, error) {
	t.Helper()
	var b strings.Builder
	for frag, err := range seq {
		if err != nil {
			return b.String(), err
		}
		b.WriteString(frag)
	}
	return b.String(), nil
}
