package usecase

import (
	"context"
	"log/slog"
)

// BatchResult tallies a historical re-ingestion run.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Batch is the historical invocation mode: a bounded URL list drained
// strictly sequentially, bypassing the dedup ledger so operators can
// reprocess old messages.
type Batch struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewBatch wraps the pipeline for operator-invoked runs.
func NewBatch(pipeline *Pipeline, logger *slog.Logger) *Batch {
	return &Batch{pipeline: pipeline, logger: logger}
}

// Run processes every URL in order, logging per-URL failures and
// returning the end-of-run tally.
func (b *Batch) Run(ctx context.Context, urls []string) BatchResult {
	var result BatchResult

	for _, url := range urls {
		state := b.pipeline.Process(ctx, url)
		if state.Success {
			result.Succeeded++
			continue
		}
		result.Failed++
		if b.logger != nil {
			b.logger.Warn("historical url failed", "url", url, "stage", state.FailedAt, "error", state.Err)
		}
	}

	if b.logger != nil {
		b.logger.Info("historical run complete",
			"total", len(urls), "succeeded", result.Succeeded, "failed", result.Failed)
	}
	return result
}
