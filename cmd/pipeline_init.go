package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/normalize"
	"github.com/djrooz/btl-agency-scraper/internal/pipeline"
	"github.com/djrooz/btl-agency-scraper/internal/registry"
	"github.com/djrooz/btl-agency-scraper/internal/relevance"
	"github.com/djrooz/btl-agency-scraper/internal/resolve"
	"github.com/djrooz/btl-agency-scraper/internal/store"
)

// pipelineEnv holds the initialized store, vocabulary and pipeline needed
// by the run/demo/serve commands.
type pipelineEnv struct {
	Store    store.Store
	Vocab    *registry.Vocabulary
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up the store, loads the vocabulary and builds the
// Pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	vocab := registry.DefaultVocabulary()
	if cfg.VocabPath != "" {
		vocab, err = registry.LoadVocabulary(cfg.VocabPath)
		if err != nil {
			_ = st.Close()
			return nil, eris.Wrapf(err, "load vocabulary %s", cfg.VocabPath)
		}
		zap.L().Info("loaded vocabulary overrides", zap.String("path", cfg.VocabPath))
	}

	normalizer := normalize.New(vocab, cfg.Pipeline.MinRevenue)
	filter := relevance.NewFilter(vocab)

	thresholds := resolve.DefaultThresholds()
	if cfg.Resolve.SequenceRatio > 0 {
		thresholds.SequenceRatio = cfg.Resolve.SequenceRatio
	}
	if cfg.Resolve.TokenJaccard > 0 {
		thresholds.TokenJaccard = cfg.Resolve.TokenJaccard
	}
	if cfg.Resolve.ContainmentMinLen > 0 {
		thresholds.ContainmentMinLen = cfg.Resolve.ContainmentMinLen
	}
	resolver := resolve.NewResolver(vocab, thresholds)

	p := pipeline.New(normalizer, filter, resolver, pipeline.Options{
		MinRevenue:  cfg.Pipeline.MinRevenue,
		Concurrency: cfg.Pipeline.Concurrency,
	})

	return &pipelineEnv{Store: st, Vocab: vocab, Pipeline: p}, nil
}

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		var poolCfg *store.PoolConfig
		if cfg.Store.Pool != nil {
			poolCfg = &store.PoolConfig{
				MaxConns: cfg.Store.Pool.MaxConns,
				MinConns: cfg.Store.Pool.MinConns,
			}
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, poolCfg)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
