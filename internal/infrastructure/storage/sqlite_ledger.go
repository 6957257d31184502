package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

const ledgerSchema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS processed_messages (
    message_id    INTEGER PRIMARY KEY,
    chat_id       TEXT NOT NULL,
    url           TEXT,
    processed_at  TIMESTAMP NOT NULL,
    status        TEXT NOT NULL DEFAULT 'processed',
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_processed_messages_id
    ON processed_messages(message_id);
`

// SQLiteLedger is the durable dedup ledger keyed by message ID. It
// survives restarts and keeps its rows indefinitely as an audit trail.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.Ledger = (*SQLiteLedger)(nil)

// OpenLedger opens (creating if needed) the ledger database at path.
func OpenLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	if _, err := db.Exec(ledgerSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// HasProcessed reports whether the message already reached a terminal
// state, in either status.
func (l *SQLiteLedger) HasProcessed(ctx context.Context, messageID int64) (bool, error) {
	query, args, err := sq.Select("1").
		From("processed_messages").
		Where(sq.Eq{"message_id": messageID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build lookup query: %w", err)
	}

	var one int
	err = l.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}

	return true, nil
}

// Record upserts the terminal outcome for a message. The primary key on
// message_id guarantees a duplicate record can never create a second row.
func (l *SQLiteLedger) Record(ctx context.Context, rec domain.ProcessedMessage) error {
	processedAt := rec.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("processed_messages").
		Columns("message_id", "chat_id", "url", "processed_at", "status", "error_message").
		Values(rec.MessageID, rec.ChatID, rec.URL, processedAt.UTC().Format(time.RFC3339), string(rec.Status), rec.ErrorMessage).
		Suffix(`ON CONFLICT(message_id) DO UPDATE SET
            processed_at = excluded.processed_at,
            status = excluded.status,
            error_message = excluded.error_message`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record query: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record message %d: %w", rec.MessageID, err)
	}

	return nil
}

// Stats returns row counts grouped by terminal status.
func (l *SQLiteLedger) Stats(ctx context.Context) (map[domain.LedgerStatus]int, error) {
	query, args, err := sq.Select("status", "COUNT(*)").
		From("processed_messages").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := map[domain.LedgerStatus]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats[domain.LedgerStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}

	return stats, nil
}

// CleanupOlderThan deletes records older than the given number of days.
// Operator housekeeping; never called automatically.
func (l *SQLiteLedger) CleanupOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	query, args, err := sq.Delete("processed_messages").
		Where(sq.Lt{"processed_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cleanup query: %w", err)
	}

	result, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup ledger: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted rows: %w", err)
	}
	return deleted, nil
}

// Close releases the underlying database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
