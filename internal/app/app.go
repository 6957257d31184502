package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsCurator/internal/config"
	"NewsCurator/internal/extractor"
	"NewsCurator/internal/images"
	"NewsCurator/internal/infrastructure/approval"
	"NewsCurator/internal/infrastructure/imagegen"
	"NewsCurator/internal/infrastructure/llm"
	"NewsCurator/internal/infrastructure/render"
	"NewsCurator/internal/infrastructure/storage"
	"NewsCurator/internal/infrastructure/telegram"
	"NewsCurator/internal/logging"
	"NewsCurator/internal/summarize"
	"NewsCurator/internal/usecase"
)

// Application wires configuration to the pipeline and its two
// invocation modes.
type Application struct {
	cfg     config.Config
	ledger  *storage.SQLiteLedger
	monitor *usecase.Monitor
	batch   *usecase.Batch
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	ledger, err := storage.OpenLedger(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	renderer := render.NewHTTPRenderer(nil,
		time.Duration(cfg.Render.TimeoutSeconds)*time.Second, cfg.Render.UserAgent)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Renderer:  renderer,
		Extractor: extractor.New(baseLogger.With("component", "extractor")),
		Summarizer: summarize.New(
			llm.NewOpenAIClient(cfg.OpenAI),
			baseLogger.With("component", "summarizer"),
		),
		Images: images.NewResolver(
			imagegen.NewHTTPVerifier(nil),
			imagegen.NewGenerator(cfg.OpenAI),
			storage.NewLocalImageStore(cfg.Images.Dir, cfg.Images.PublicPath),
			baseLogger.With("component", "images"),
		),
		Queue:  approval.NewClient(cfg.Approval.BaseURL),
		Logger: baseLogger.With("component", "pipeline"),
	})

	source := telegram.NewSource(
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.PollTimeoutSeconds,
		baseLogger.With("component", "telegram"),
	)

	return &Application{
		cfg:     cfg,
		ledger:  ledger,
		monitor: usecase.NewMonitor(source, ledger, pipeline, baseLogger.With("component", "monitor")),
		batch:   usecase.NewBatch(pipeline, baseLogger.With("component", "batch")),
	}, nil
}

// RunContinuous listens for new messages until ctx is cancelled.
func (a *Application) RunContinuous(ctx context.Context) error {
	return a.monitor.Run(ctx)
}

// RunHistorical drains the given URL list once, bypassing the ledger.
func (a *Application) RunHistorical(ctx context.Context, urls []string) usecase.BatchResult {
	return a.batch.Run(ctx, urls)
}

// Close releases held resources.
func (a *Application) Close() error {
	return a.ledger.Close()
}
