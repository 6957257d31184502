package usecase

import (
	"context"
	"fmt"
	"testing"

	"NewsCurator/internal/domain"
)

func TestBatchTalliesMixedResults(t *testing.T) {
	t.Parallel()

	renderer, _, sum, _, queue, deps := workingDeps()
	sum.errFor = map[string]error{
		"https://example.com/b": fmt.Errorf("%w: gibberish", domain.ErrUnusableSummary),
	}

	b := NewBatch(NewPipeline(deps), nil)
	result := b.Run(context.Background(), []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	})

	if result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("unexpected tally: %+v", result)
	}
	if renderer.calls != 3 {
		t.Fatalf("expected all URLs attempted, got %d runs", renderer.calls)
	}
	if queue.calls != 2 {
		t.Fatalf("expected two submissions, got %d", queue.calls)
	}
}

func TestBatchEmptyList(t *testing.T) {
	t.Parallel()

	_, _, _, _, _, deps := workingDeps()
	result := NewBatch(NewPipeline(deps), nil).Run(context.Background(), nil)

	if result.Succeeded != 0 || result.Failed != 0 {
		t.Fatalf("unexpected tally for empty list: %+v", result)
	}
}

func TestBatchContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	renderer, _, _, _, _, deps := workingDeps()
	renderer.err = fmt.Errorf("%w: unreachable", domain.ErrRenderTimeout)

	result := NewBatch(NewPipeline(deps), nil).Run(context.Background(),
		[]string{"https://example.com/a", "https://example.com/b"})

	if result.Failed != 2 {
		t.Fatalf("expected both URLs to fail, got %+v", result)
	}
	if renderer.calls != 2 {
		t.Fatalf("run stopped early: %d attempts", renderer.calls)
	}
}
