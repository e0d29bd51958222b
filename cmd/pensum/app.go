package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pensum/internal/config"
	"github.com/kailas-cloud/pensum/internal/db"
	dbRedis "github.com/kailas-cloud/pensum/internal/db/redis"
	"github.com/kailas-cloud/pensum/internal/domain"
	"github.com/kailas-cloud/pensum/internal/metrics"
	"github.com/kailas-cloud/pensum/internal/repository/curriculum"
	"github.com/kailas-cloud/pensum/internal/repository/embcache"
	"github.com/kailas-cloud/pensum/internal/transport/openai"
	answeruc "github.com/kailas-cloud/pensum/internal/usecase/answer"
	embeddinguc "github.com/kailas-cloud/pensum/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/pensum/internal/usecase/health"
	"github.com/kailas-cloud/pensum/internal/usecase/retrieval"
)

// app is the composition root shared by serve and ask.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     *retrieval.LazyStore
	engine    *answeruc.Engine
	health    *healthuc.Service
	generator *openai.Generator
	embedder  *openai.Embedder

	opened atomic.Pointer[dbRedis.Store]
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	distance, err := db.ParseDistanceMetric(strings.ToLower(cfg.Embedding.Distance))
	if err != nil {
		return nil, fmt.Errorf("embedding distance: %w", err)
	}
	sizes := retrievalSizes(cfg.Retrieval)
	if err := sizes.Validate(); err != nil {
		return nil, fmt.Errorf("retrieval: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	a.embedder = openai.NewEmbedder(&openai.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: requestDimensions(cfg.Embedding),
		Provider:   cfg.Embedding.Provider,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.Embedding.TimeoutSec) * time.Second},
		Logger:     logger,
	})
	a.generator = openai.NewGenerator(&openai.GeneratorConfig{
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		HTTPClient:  &http.Client{Timeout: time.Duration(cfg.Generation.TimeoutSec) * time.Second},
		Logger:      logger,
	})

	a.store = retrieval.NewLazyStore(func(ctx context.Context) (retrieval.DocumentStore, error) {
		return a.openStore(ctx, distance)
	})

	orchestrator := retrieval.NewOrchestrator(a.store, logger, retrieval.WithSizes(sizes))
	a.engine = answeruc.New(orchestrator, a.generator, logger, engineOptions(cfg.Assistant)...)
	a.health = healthuc.New(a.store, a.embedder, a.generator)
	return a, nil
}

// openStore connects to Redis, waits for it and prepares the index. Called on first use.
func (a *app) openStore(ctx context.Context, distance db.DistanceMetric) (retrieval.DocumentStore, error) {
	cfg := a.cfg
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("store not ready: %w", err)
	}

	repo := curriculum.New(store, a.queryEmbedder(store), curriculum.Config{
		IndexName: cfg.Database.IndexName,
		KeyPrefix: cfg.Database.KeyPrefix,
		VectorDim: cfg.Embedding.Dimensions,
		Distance:  distance,
	}).WithHNSW(curriculum.HNSWConfig{
		M:           cfg.Database.HNSWM,
		EFConstruct: cfg.Database.HNSWEFConstruct,
	})

	if cfg.Database.CreateIndex {
		if err := repo.EnsureIndex(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure index: %w", err)
		}
	}

	a.opened.Store(store)
	a.logger.Info("Connected to document store",
		zap.Strings("addrs", cfg.Database.Addrs),
		zap.String("index", repo.IndexName()),
	)
	return repo, nil
}

// queryEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction.
func (a *app) queryEmbedder(store *dbRedis.Store) domain.Embedder {
	ec := a.cfg.Embedding

	var embedder domain.Embedder = embcache.New(a.embedder, store, ec.Model, a.logger,
		embcache.WithTTL(time.Duration(ec.CacheTTLSec)*time.Second),
		embcache.WithCacheCounter(metrics.EmbeddingCacheTotal),
	)

	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, ec.Provider, ec.Model, ec.Dimensions, a.logger)

	// outermost, so the cache key includes the instruction
	if ec.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(embedder, ec.QueryInstruction)
	}
	return embedder
}

// Close releases the store connection if it was opened.
func (a *app) Close() {
	if s := a.opened.Load(); s != nil {
		s.Close()
	}
}

func retrievalSizes(rc config.RetrievalConfig) retrieval.Sizes {
	return retrieval.Sizes{
		FieldLookup:        rc.FieldLookupK,
		FieldLookupUnknown: rc.FieldLookupUnknownK,
		Default:            rc.DefaultK,
		Exhaustive:         rc.ExhaustiveK,
	}
}

func requestDimensions(ec config.EmbeddingConfig) int {
	if ec.SendDimensions {
		return ec.Dimensions
	}
	return 0
}

func engineOptions(ac config.AssistantConfig) []answeruc.Option {
	var opts []answeruc.Option
	if ac.Identity != "" {
		opts = append(opts, answeruc.WithIdentity(ac.Identity))
	}
	if ac.Persona != "" {
		opts = append(opts, answeruc.WithPersona(ac.Persona))
	}
	return opts
}

func loadConfig(path string) (config.Config, string, error) {
	env := config.GetEnv()
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, env, nil
}
