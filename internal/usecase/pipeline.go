package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// PipelineDeps wires all driven adapters into the URL pipeline.
type PipelineDeps struct {
	Renderer   ports.Renderer
	Extractor  ports.ContentExtractor
	Summarizer ports.Summarizer
	Images     ports.ImageResolver
	Queue      ports.ApprovalQueue
	Logger     *slog.Logger
}

// Pipeline runs the fixed four-stage workflow for a single URL:
// Extract -> Summarize -> ResolveImage -> Assemble. Each stage runs only
// if its predecessor succeeded; any failure is captured into the state
// and terminates the run without affecting the host process.
type Pipeline struct {
	renderer   ports.Renderer
	extractor  ports.ContentExtractor
	summarizer ports.Summarizer
	images     ports.ImageResolver
	queue      ports.ApprovalQueue
	logger     *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		renderer:   deps.Renderer,
		extractor:  deps.Extractor,
		summarizer: deps.Summarizer,
		images:     deps.Images,
		queue:      deps.Queue,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Process executes one pipeline run and returns its terminal state.
func (p *Pipeline) Process(ctx context.Context, url string) domain.PipelineState {
	state := domain.PipelineState{URL: url, Stage: domain.StageIdle}

	state.Stage = domain.StageExtracting
	p.info("stage started", url, state.Stage)

	html, err := p.renderer.Render(ctx, url)
	if err != nil {
		return p.fail(state, domain.StageExtracting, err)
	}

	content, err := p.extractor.Extract(html, url)
	if err != nil {
		return p.fail(state, domain.StageExtracting, err)
	}
	state.Extracted = &content

	state.Stage = domain.StageSummarizing
	p.info("stage started", url, state.Stage)

	processed, err := p.summarizer.Summarize(ctx, content, url)
	if err != nil {
		return p.fail(state, domain.StageSummarizing, err)
	}
	state.Processed = &processed

	state.Stage = domain.StageResolvingImage
	p.info("stage started", url, state.Stage)

	imageRef, err := p.images.Resolve(ctx, content, processed)
	if err != nil {
		return p.fail(state, domain.StageResolvingImage, err)
	}
	state.ImageRef = imageRef

	state.Stage = domain.StageAssembling
	p.info("stage started", url, state.Stage)

	postID, err := p.queue.Submit(ctx, domain.PostCandidate{
		Title:       processed.Title,
		Summary:     processed.Summary,
		SourceURL:   url,
		ImageRef:    imageRef,
		ReleaseDate: p.now().UTC().Format("2006-01-02"),
		Provider:    processed.Provider,
		Type:        string(processed.ContentType),
	})
	if err != nil {
		return p.fail(state, domain.StageAssembling, err)
	}

	state.PostID = postID
	state.Stage = domain.StageDone
	state.Success = true

	if p.logger != nil {
		p.logger.Info("pipeline done", "url", url, "post_id", postID, "title", processed.Title)
	}
	return state
}

func (p *Pipeline) fail(state domain.PipelineState, stage domain.Stage, err error) domain.PipelineState {
	state.Fail(stage, err)
	if p.logger != nil {
		p.logger.Error("pipeline stage failed", "url", state.URL, "stage", stage, "error", err)
	}
	return state
}

func (p *Pipeline) info(msg, url string, stage domain.Stage) {
	if p.logger != nil {
		p.logger.Debug(msg, "url", url, "stage", stage)
	}
}
