package main

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/config"
	"github.com/kailas-cloud/pensum/internal/usecase/retrieval"
)

func testConfig() config.Config {
	cfg := config.Config{
		HTTP:       config.HTTPConfig{Port: 8000},
		Database:   config.DatabaseConfig{Addrs: []string{"127.0.0.1:1"}, ReadinessTimeout: 1},
		Embedding:  config.EmbeddingConfig{Model: "mxbai-embed-large", Dimensions: 1024, BaseURL: "http://127.0.0.1:1/v1"},
		Generation: config.GenerationConfig{Model: "llama3.2", BaseURL: "http://127.0.0.1:1/v1"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestRetrievalSizes(t *testing.T) {
	got := retrievalSizes(testConfig().Retrieval)
	if diff := cmp.Diff(retrieval.DefaultSizes(), got); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestDimensions(t *testing.T) {
	ec := config.EmbeddingConfig{Dimensions: 512}
	if got := requestDimensions(ec); got != 0 {
		t.Errorf("requestDimensions() = %d, want 0", got)
	}
	ec.SendDimensions = true
	if got := requestDimensions(ec); got != 512 {
		t.Errorf("requestDimensions() = %d, want 512", got)
	}
}

func TestEngineOptions(t *testing.T) {
	if n := len(engineOptions(config.AssistantConfig{})); n != 0 {
		t.Errorf("options = %d, want 0", n)
	}
	if n := len(engineOptions(config.AssistantConfig{Identity: "I am Pensum.", Persona: "Be brief."})); n != 2 {
		t.Errorf("options = %d, want 2", n)
	}
}

func TestNewApp_InvalidDistance(t *testing.T) {
	cfg := testConfig()
	cfg.Embedding.Distance = "hamming"
	if _, err := newApp(cfg, zap.NewNop()); err == nil {
		t.Error("expected error for unknown distance")
	}
}

func TestNewApp_StoreOpenedLazily(t *testing.T) {
	a, err := newApp(testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	if a.store.Ready() {
		t.Fatal("store opened during construction")
	}

	// identity questions never touch the store or the providers
	got, err := a.engine.Answer(context.Background(), "who are you")
	if err != nil || got == "" {
		t.Errorf("Answer() = (%q, %v)", got, err)
	}
	if a.store.Ready() {
		t.Error("store opened for an identity question")
	}
}
