// Package pipeline orchestrates the four processing stages over a batch
// of raw records: normalization, relevance filtering, entity resolution
// and the terminal revenue gate. The pipeline never aborts a batch:
// individual records are dropped and counted, and a (possibly empty)
// result always comes back.
package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/normalize"
	"github.com/djrooz/btl-agency-scraper/internal/relevance"
	"github.com/djrooz/btl-agency-scraper/internal/resolve"
)

// Options tunes pipeline behavior.
type Options struct {
	// MinRevenue drives both the normalizer validity gate and the
	// terminal revenue gate.
	MinRevenue float64
	// Concurrency caps the normalize fan-out. Zero means sequential.
	Concurrency int
}

// Pipeline wires the four stages together.
type Pipeline struct {
	normalizer *normalize.Normalizer
	filter     *relevance.Filter
	resolver   *resolve.Resolver
	opts       Options
}

// Result is what a pipeline run hands back to the caller: the final
// canonical records plus the batch statistics.
type Result struct {
	Records []model.CompanyRecord `json:"records"`
	Stats   model.PipelineStats   `json:"stats"`
	Stages  []model.StageResult   `json:"stages"`
}

// New builds a Pipeline from its stage components.
func New(normalizer *normalize.Normalizer, filter *relevance.Filter, resolver *resolve.Resolver, opts Options) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		filter:     filter,
		resolver:   resolver,
		opts:       opts,
	}
}

// Run processes one batch. Normalization and relevance filtering are
// per-record pure functions and fan out across records; resolution runs
// as a single ordered pass because its greedy grouping threads state
// through the scan.
func (p *Pipeline) Run(ctx context.Context, raws []model.RawRecord) (*Result, error) {
	result := &Result{}
	stats := &result.Stats
	stats.InputCount = len(raws)

	candidates, err := p.runNormalize(ctx, raws, result)
	if err != nil {
		return nil, err
	}

	eligible := p.runStage(result, "relevance", len(candidates), func() []model.CompanyRecord {
		var kept []model.CompanyRecord
		for _, rec := range candidates {
			if p.filter.Relevant(rec) {
				kept = append(kept, rec)
			}
		}
		stats.Irrelevant = len(candidates) - len(kept)
		return kept
	})

	resolved := p.runStage(result, "resolve", len(eligible), func() []model.CompanyRecord {
		out := p.resolver.Resolve(eligible)
		stats.Duplicates = len(eligible) - len(out)
		return out
	})

	final := p.runStage(result, "revenue_gate", len(resolved), func() []model.CompanyRecord {
		var kept []model.CompanyRecord
		for _, rec := range resolved {
			if PassesRevenueGate(rec, p.opts.MinRevenue) {
				kept = append(kept, rec)
			}
		}
		stats.RevenueGated = len(resolved) - len(kept)
		return kept
	})

	result.Records = final
	stats.OutputCount = len(final)
	stats.RemovedCount = stats.InputCount - stats.OutputCount
	if stats.InputCount > 0 {
		rate := float64(stats.RemovedCount) / float64(stats.InputCount) * 100
		stats.RemovedRatePercent = math.Round(rate*100) / 100
	}

	zap.L().Info("pipeline: batch complete",
		zap.Int("input", stats.InputCount),
		zap.Int("output", stats.OutputCount),
		zap.Int("removed", stats.RemovedCount),
		zap.Float64("removed_rate_percent", stats.RemovedRatePercent),
	)
	return result, nil
}

// runNormalize cleans every raw record, preserving input order. Records
// that fail are dropped and counted, never aborting the batch.
func (p *Pipeline) runNormalize(ctx context.Context, raws []model.RawRecord, result *Result) ([]model.CompanyRecord, error) {
	start := time.Now()

	cleaned := make([]*model.CompanyRecord, len(raws))
	outcomes := make([]error, len(raws))

	g, _ := errgroup.WithContext(ctx)
	if p.opts.Concurrency > 0 {
		g.SetLimit(p.opts.Concurrency)
	} else {
		g.SetLimit(1)
	}

	for i, raw := range raws {
		i := i
		raw := raw
		g.Go(func() error {
			rec, err := p.normalizer.Normalize(raw)
			if err != nil {
				outcomes[i] = err
				return nil // individual failures don't abort the batch
			}
			cleaned[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: normalize stage")
	}

	stats := &result.Stats
	var candidates []model.CompanyRecord
	for i, rec := range cleaned {
		if rec != nil {
			candidates = append(candidates, *rec)
			continue
		}
		switch {
		case eris.Is(outcomes[i], normalize.ErrBelowThreshold):
			// Expected business outcome, counted but not logged as an error.
			stats.BelowThreshold++
		default:
			stats.Unsalvageable++
			zap.L().Warn("pipeline: dropped unsalvageable record",
				zap.Int("index", i),
				zap.Error(outcomes[i]),
			)
		}
	}

	result.Stages = append(result.Stages, model.StageResult{
		Name:     "normalize",
		In:       len(raws),
		Out:      len(candidates),
		Duration: time.Since(start).Milliseconds(),
	})
	zap.L().Info("pipeline: stage complete",
		zap.String("stage", "normalize"),
		zap.Int("in", len(raws)),
		zap.Int("out", len(candidates)),
	)
	return candidates, nil
}

// runStage runs one synchronous stage with duration tracking.
func (p *Pipeline) runStage(result *Result, name string, in int, fn func() []model.CompanyRecord) []model.CompanyRecord {
	start := time.Now()
	out := fn()
	result.Stages = append(result.Stages, model.StageResult{
		Name:     name,
		In:       in,
		Out:      len(out),
		Duration: time.Since(start).Milliseconds(),
	})
	zap.L().Info("pipeline: stage complete",
		zap.String("stage", name),
		zap.Int("in", in),
		zap.Int("out", len(out)),
	)
	return out
}
