package render

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"NewsCurator/internal/domain"
)

func TestRenderReturnsPageHTML(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	r := NewHTTPRenderer(nil, 5*time.Second, "")
	html, err := r.Render(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(html, "hello") {
		t.Fatalf("unexpected body: %q", html)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Fatalf("expected browser-like user agent, got %q", gotUA)
	}
}

func TestRenderRejectsNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	r := NewHTTPRenderer(nil, 5*time.Second, "")
	if _, err := r.Render(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestRenderMapsTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	r := NewHTTPRenderer(nil, 20*time.Millisecond, "")
	_, err := r.Render(context.Background(), server.URL)
	if !errors.Is(err, domain.ErrRenderTimeout) {
		t.Fatalf("expected ErrRenderTimeout, got %v", err)
	}
}

func TestRenderRespectsContextDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := NewHTTPRenderer(nil, 0, "")
	_, err := r.Render(ctx, server.URL)
	if !errors.Is(err, domain.ErrRenderTimeout) {
		t.Fatalf("expected ErrRenderTimeout, got %v", err)
	}
}
