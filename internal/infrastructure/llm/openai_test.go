package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"NewsCurator/internal/config"
)

func testClient(endpoint string) *OpenAIClient {
	return NewOpenAIClient(config.OpenAIConfig{
		Endpoint:       endpoint,
		Model:          "gpt-4o-mini",
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
}

func TestCompleteReturnsAssistantText(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"choices":[{"message":{"content":"  the reply  "}}]}`))
	}))
	defer server.Close()

	reply, err := testClient(server.URL).Complete(context.Background(), "sys", "usr")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "the reply" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotPayload["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %v", gotPayload["model"])
	}
	messages, _ := gotPayload["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected system+user messages, got %v", gotPayload["messages"])
	}
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limit"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), "sys", "usr")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should carry the status: %v", err)
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).Complete(context.Background(), "sys", "usr"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCompleteRejectsMissingCredentials(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient(config.OpenAIConfig{Endpoint: "https://example.com", Model: "m"})
	if _, err := client.Complete(context.Background(), "sys", "usr"); err == nil {
		t.Fatal("expected error without api key")
	}
}
