package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// Monitor is the continuous invocation mode: it consumes inbound
// messages, gates each one through the dedup ledger, runs the pipeline
// per URL, and records exactly one terminal ledger row per message.
type Monitor struct {
	source   ports.MessageSource
	ledger   ports.Ledger
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewMonitor wires the message source and ledger around the pipeline.
func NewMonitor(source ports.MessageSource, ledger ports.Ledger, pipeline *Pipeline, logger *slog.Logger) *Monitor {
	return &Monitor{source: source, ledger: ledger, pipeline: pipeline, logger: logger}
}

// Run listens until the source closes or ctx is cancelled. Per-message
// failures are logged and never stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	messages, err := m.source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to message source: %w", err)
	}

	if m.logger != nil {
		m.logger.Info("monitor started")
	}

	for msg := range messages {
		m.handle(ctx, msg)
	}

	return ctx.Err()
}

func (m *Monitor) handle(ctx context.Context, msg domain.Message) {
	if len(msg.URLs) == 0 {
		return
	}

	seen, err := m.ledger.HasProcessed(ctx, msg.ID)
	if err != nil {
		m.logError("ledger lookup failed", msg, err)
		return
	}
	if seen {
		if m.logger != nil {
			m.logger.Debug("message already processed", "message_id", msg.ID)
		}
		return
	}

	status := domain.StatusProcessed
	var firstErr error
	for _, url := range msg.URLs {
		state := m.pipeline.Process(ctx, url)
		if !state.Success {
			status = domain.StatusError
			if firstErr == nil {
				firstErr = state.Err
			}
		}
	}

	rec := domain.ProcessedMessage{
		MessageID:   msg.ID,
		ChatID:      msg.ChatID,
		URL:         strings.Join(msg.URLs, " "),
		ProcessedAt: time.Now().UTC(),
		Status:      status,
	}
	if firstErr != nil {
		rec.ErrorMessage = firstErr.Error()
	}

	if err := m.ledger.Record(ctx, rec); err != nil {
		m.logError("ledger record failed", msg, err)
	}
}

func (m *Monitor) logError(msg string, message domain.Message, err error) {
	if m.logger != nil {
		m.logger.Error(msg, "message_id", message.ID, "chat_id", message.ChatID, "error", err)
	}
}
