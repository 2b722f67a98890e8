package providers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicStream(t *testing.T) {
	body := sseBody(
		`{"type":"message_start"}`,
		`{"type":"content_block_delta","delta":{"text":"Hello"}}`,
		`{"type":"content_block_delta","delta":`,
		`{"type":"ping"}`,
		`{"type":"content_block_delta","delta":{"text":" world"}}`,
		`{"type":"message_stop"}`,
		`{"type":"content_block_delta","delta":{"text":"ignored"}}`,
	)

	var gotReq struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
	}
	var gotKey, gotVersion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	a := NewAnthropic("test-key", discardLogger())
	a.endpoint = srv.URL

	fragments, err := collectStream(t, a, "claude-3-opus", "Hello")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	if got := strings.Join(fragments, ""); got != "Hello world" {
		t.Errorf("Stream() = %q, want %q", got, "Hello world")
	}

	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q, want %q", gotKey, "test-key")
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version = %q, want %q", gotVersion, "2023-06-01")
	}
	if gotReq.Model != "claude-3-opus-20240229" {
		t.Errorf("request model = %q, want %q", gotReq.Model, "claude-3-opus-20240229")
	}
	if gotReq.MaxTokens != 2000 {
		t.Errorf("request max_tokens = %d, want 2000", gotReq.MaxTokens)
	}
}

func TestAnthropicModelName(t *testing.T) {
	tests := []struct {
		modelID string
		want    string
	}{
		{"claude-3-opus", "claude-3-opus-20240229"},
		{"claude-3-sonnet", "claude-3-sonnet-20240229"},
	}

	for _, tt := range tests {
		if got := anthropicModelName(tt.modelID); got != tt.want {
			t.Errorf("anthropicModelName(%q) = %q, want %q", tt.modelID, got, tt.want)
		}
	}
}

func TestAnthropicStreamMissingKey(t *testing.T) {
	a := NewAnthropic("", discardLogger())

	_, err := collectStream(t, a, "claude-3-sonnet", "Hello")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Stream() error = %v, want ErrMissingCredential", err)
	}
	if !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("Stream() error = %q, want it to name ANTHROPIC_API_KEY", err)
	}
}

func TestAnthropicStreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewAnthropic("bad-key", discardLogger())
	a.endpoint = srv.URL

	_, err := collectStream(t, a, "claude-3-opus", "Hello")
	if err == nil {
		t.Fatal("Stream() error = nil, want http error")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("Stream() error = %q, want it to carry the status", err)
	}
}
