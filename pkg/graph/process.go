package graph

import (
	"context"

	"github.com/OFFIS-RIT/nodelink/pkg/ai"
	"github.com/OFFIS-RIT/nodelink/pkg/common"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// RefineBatches refines batches concurrently, at most parallelMax at a
// time, and returns them in input order. Model calls are retried up to
// maxRetries times before the rules take over.
func RefineBatches(
	ctx context.Context,
	batches []Batch,
	session *ai.Session,
	parallelMax int,
	maxRetries int,
) []Batch {
	if parallelMax <= 0 {
		parallelMax = 1
	}
	refined := make([]Batch, len(batches))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelMax)
	for i, batch := range batches {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				batch.Method = RefineFailed
				refined[i] = batch
			default:
				refined[i] = refineBatch(gCtx, batch, session, maxRetries)
			}
			return nil
		})
	}
	_ = g.Wait()

	return refined
}

// EnhanceResult is an analysis after batch refinement.
type EnhanceResult struct {
	Analysis *common.Analysis
	Batches  int
	Methods  []RefineMethod
}

// Enhance splits analysis into batches, refines them and writes the merged
// records back into a copy of analysis.
func (c *Adapter) Enhance(ctx context.Context, analysis *common.Analysis) EnhanceResult {
	return c.EnhanceWithConfig(ctx, analysis, c.batchConfig)
}

// EnhanceWithConfig is Enhance with per-call batch sizes. Zero sizes fall
// back to the defaults.
func (c *Adapter) EnhanceWithConfig(ctx context.Context, analysis *common.Analysis, cfg BatchConfig) EnhanceResult {
	out := *analysis
	batches := CreateBatches(analysis, cfg)
	if len(batches) == 0 {
		return EnhanceResult{Analysis: &out}
	}

	if c.session != nil {
		if err := c.session.EnsureReady(ctx); err != nil {
			logger.Debug("Model session unavailable, refining with rules", "err", err)
		}
	}

	refined := RefineBatches(ctx, batches, c.session, c.parallelAiRequests, c.maxRetries)
	merged := MergeBatches(refined)
	merged.Apply(&out)

	logger.Debug("Refined analysis batches",
		"batches", len(batches),
		"entities", len(out.Entities),
		"keywords", len(out.Keywords),
		"relationships", len(out.Relationships),
	)
	return EnhanceResult{Analysis: &out, Batches: len(batches), Methods: merged.Methods}
}
