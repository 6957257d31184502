package domain

import "time"

// Message is an inbound chat message carrying candidate URLs.
type Message struct {
	ID     int64
	ChatID string
	Text   string
	URLs   []string
	Date   time.Time
}

// LedgerStatus enumerates terminal outcomes recorded per message.
type LedgerStatus string

const (
	StatusProcessed LedgerStatus = "processed"
	StatusError     LedgerStatus = "error"
)

// ProcessedMessage is the durable audit record keyed by message ID.
type ProcessedMessage struct {
	MessageID    int64
	ChatID       string
	URL          string
	ProcessedAt  time.Time
	Status       LedgerStatus
	ErrorMessage string
}
