package providers

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// collectStream drains a provider stream, returning the fragments seen before the
// first error, if any.
func collectStream(t *testing.T, p Provider, modelID, text string) ([]string, error) {
	t.Helper()

	var fragments []string
	for fragment, err := range p.Stream(context.Background(), modelID, text) {
		if err != nil {
			return fragments, err
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

// sseBody frames each payload as one server-sent event.
func sseBody(payloads ...string) string {
	var sb strings.Builder
	for _, p := range payloads {
		sb.WriteString("data: " + p + "\n\n")
	}
	return sb.String()
}
