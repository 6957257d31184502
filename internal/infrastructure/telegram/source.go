package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// urlPattern extracts candidate URLs from message text.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// retryDelay throttles polling after a transport error.
const retryDelay = 5 * time.Second

// Source delivers chat messages via bot-API long polling.
type Source struct {
	botToken    string
	chatID      string
	pollTimeout int
	apiBase     string
	client      *http.Client
	logger      *slog.Logger
}

var _ ports.MessageSource = (*Source)(nil)

// NewSource wires bot credentials and the chat to watch. pollTimeout is
// the long-poll window in seconds.
func NewSource(botToken, chatID string, pollTimeout int, logger *slog.Logger) *Source {
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	return &Source{
		botToken:    botToken,
		chatID:      chatID,
		pollTimeout: pollTimeout,
		apiBase:     "https://api.telegram.org",
		// Client timeout must outlive the server-side long-poll window.
		client: &http.Client{Timeout: time.Duration(pollTimeout+15) * time.Second},
		logger: logger,
	}
}

// Subscribe starts the long-poll loop and returns the message channel.
// The channel closes when ctx is cancelled.
func (s *Source) Subscribe(ctx context.Context) (<-chan domain.Message, error) {
	if s.botToken == "" {
		return nil, fmt.Errorf("telegram source misconfigured: missing bot token")
	}

	messages := make(chan domain.Message)
	go s.poll(ctx, messages)
	return messages, nil
}

func (s *Source) poll(ctx context.Context, messages chan<- domain.Message) {
	defer close(messages)

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := s.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if s.logger != nil {
				s.logger.Warn("poll failed", "error", err)
			}
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}

			msg, ok := s.toMessage(update)
			if !ok {
				continue
			}

			select {
			case messages <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64  `json:"message_id"`
		Date      int64  `json:"date"`
		Text      string `json:"text"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

func (s *Source) getUpdates(ctx context.Context, offset int64) ([]update, error) {
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates", s.apiBase, s.botToken)

	form := url.Values{}
	form.Set("timeout", strconv.Itoa(s.pollTimeout))
	if offset > 0 {
		form.Set("offset", strconv.FormatInt(offset, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+form.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("telegram error %s: %s", resp.Status, detail)
	}

	var reply struct {
		OK     bool     `json:"ok"`
		Result []update `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	if !reply.OK {
		return nil, fmt.Errorf("telegram replied not ok")
	}

	return reply.Result, nil
}

// toMessage filters updates down to text messages from the watched chat
// and extracts their URLs. An empty configured chat ID accepts any chat.
func (s *Source) toMessage(u update) (domain.Message, bool) {
	if u.Message == nil || u.Message.Text == "" {
		return domain.Message{}, false
	}

	chatID := strconv.FormatInt(u.Message.Chat.ID, 10)
	if s.chatID != "" && chatID != s.chatID {
		return domain.Message{}, false
	}

	return domain.Message{
		ID:     u.Message.MessageID,
		ChatID: chatID,
		Text:   u.Message.Text,
		URLs:   urlPattern.FindAllString(u.Message.Text, -1),
		Date:   time.Unix(u.Message.Date, 0).UTC(),
	}, true
}
