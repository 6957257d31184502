package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func textUpdate(updateID, messageID, chatID int64, text string) update {
	u := update{UpdateID: updateID}
	u.Message = &struct {
		MessageID int64  `json:"message_id"`
		Date      int64  `json:"date"`
		Text      string `json:"text"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	}{MessageID: messageID, Date: 1767225600, Text: text}
	u.Message.Chat.ID = chatID
	return u
}

func TestToMessageExtractsURLs(t *testing.T) {
	t.Parallel()

	s := NewSource("token", "", 30, nil)

	msg, ok := s.toMessage(textUpdate(1, 10, 555,
		"check this https://example.com/a and http://example.org/b?q=1 out"))
	if !ok {
		t.Fatal("text update rejected")
	}
	if msg.ID != 10 || msg.ChatID != "555" {
		t.Fatalf("unexpected identity: %+v", msg)
	}
	if len(msg.URLs) != 2 {
		t.Fatalf("expected 2 urls, got %v", msg.URLs)
	}
	if msg.URLs[0] != "https://example.com/a" || msg.URLs[1] != "http://example.org/b?q=1" {
		t.Fatalf("unexpected urls: %v", msg.URLs)
	}
}

func TestToMessageFiltersByChat(t *testing.T) {
	t.Parallel()

	s := NewSource("token", "555", 30, nil)

	if _, ok := s.toMessage(textUpdate(1, 10, 999, "https://example.com")); ok {
		t.Fatal("message from foreign chat accepted")
	}
	if _, ok := s.toMessage(textUpdate(2, 11, 555, "https://example.com")); !ok {
		t.Fatal("message from watched chat rejected")
	}
}

func TestToMessageAcceptsAnyChatWhenUnconfigured(t *testing.T) {
	t.Parallel()

	s := NewSource("token", "", 30, nil)
	if _, ok := s.toMessage(textUpdate(1, 10, 999, "hi")); !ok {
		t.Fatal("empty chat filter should accept any chat")
	}
}

func TestToMessageRejectsNonText(t *testing.T) {
	t.Parallel()

	s := NewSource("token", "", 30, nil)
	if _, ok := s.toMessage(update{UpdateID: 1}); ok {
		t.Fatal("update without message accepted")
	}
	if _, ok := s.toMessage(textUpdate(2, 10, 1, "")); ok {
		t.Fatal("empty text accepted")
	}
}

func TestSubscribeRequiresToken(t *testing.T) {
	t.Parallel()

	s := NewSource("", "", 30, nil)
	if _, err := s.Subscribe(context.Background()); err == nil {
		t.Fatal("expected error without bot token")
	}
}

func TestSubscribeDeliversUpdatesAndAdvancesOffset(t *testing.T) {
	t.Parallel()

	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch polls.Add(1) {
		case 1:
			if r.URL.Query().Get("offset") != "" {
				t.Errorf("first poll should carry no offset, got %q", r.URL.Query().Get("offset"))
			}
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":5,"message":{"message_id":1,"date":1767225600,"text":"https://example.com/a","chat":{"id":7}}},
				{"update_id":6,"message":{"message_id":2,"date":1767225601,"text":"no links here","chat":{"id":7}}}
			]}`))
		case 2:
			if r.URL.Query().Get("offset") != "7" {
				t.Errorf("second poll offset = %q, want 7", r.URL.Query().Get("offset"))
			}
			fallthrough
		default:
			w.Write([]byte(`{"ok":true,"result":[]}`))
		}
	}))
	defer server.Close()

	s := NewSource("token", "", 1, nil)
	s.apiBase = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := s.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	// Updates without URLs still flow through; the monitor skips them.
	first := <-messages
	if first.ID != 1 || len(first.URLs) != 1 {
		t.Fatalf("unexpected first message: %+v", first)
	}
	second := <-messages
	if second.ID != 2 || len(second.URLs) != 0 {
		t.Fatalf("unexpected second message: %+v", second)
	}

	cancel()
	select {
	case _, open := <-messages:
		if open {
			t.Fatal("expected channel to close after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}
