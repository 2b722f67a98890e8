package providers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogleStream(t *testing.T) {
	body := strings.Join([]string{
		`{"candidates":[{"content":{"parts":[{"text":"One"}]}}]}`,
		`not json at all`,
		``,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[{"text":" two"}]}}]}`,
	}, "\n")

	var gotPath, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	g := NewGoogle("test-key", discardLogger())
	g.endpoint = srv.URL

	fragments, err := collectStream(t, g, "gemini-pro", "Hello")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	if got := strings.Join(fragments, ""); got != "One two" {
		t.Errorf("Stream() = %q, want %q", got, "One two")
	}

	if !strings.HasSuffix(gotPath, "/models/gemini-pro:streamGenerateContent") {
		t.Errorf("request path = %q, want streaming-generate path for gemini-pro", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key query parameter = %q, want %q", gotKey, "test-key")
	}
}

func TestGoogleStreamMissingKey(t *testing.T) {
	g := NewGoogle("", discardLogger())

	_, err := collectStream(t, g, "gemini-pro", "Hello")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Stream() error = %v, want ErrMissingCredential", err)
	}
	if !strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("Stream() error = %q, want it to name GOOGLE_API_KEY", err)
	}
}

func TestGoogleStreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGoogle("test-key", discardLogger())
	g.endpoint = srv.URL

	_, err := collectStream(t, g, "gemini-pro", "Hello")
	if err == nil {
		t.Fatal("Stream() error = nil, want http error")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("Stream() error = %q, want it to carry the status", err)
	}
}
