package providers

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

const ollamaHostName = "OLLAMA_HOST"

// Ollama streams chat completions from a self-hosted Ollama server. It backs the local
// model entries of the catalog; no API key is involved, only the server host.
type Ollama struct {
	host string

	logger *slog.Logger
}

// NewOllama creates a new Ollama instance pointing at the given server host. The host
// may be empty; calls then fail before any request is made.
func NewOllama(host string, logger *slog.Logger) Ollama {
	return Ollama{
		host:   host,
		logger: logger.With(slog.String("module", "ollama")),
	}
}

// Stream sends a single user message to the Ollama chat API and yields incremental text.
func (o Ollama) Stream(ctx context.Context, modelID, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if o.host == "" {
			yield("", missingCredential(ollamaHostName))
			return
		}

		u, err := url.Parse(o.host)
		if err != nil {
			yield("", fmt.Errorf("invalid ollama host: %w", err))
			return
		}
		client := api.NewClient(u, &http.Client{})

		stream := true
		req := api.ChatRequest{
			Model: modelID,
			Messages: []api.Message{
				{Role: "user", Content: text},
			},
			Stream: &stream,
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		if err := client.Chat(ctx, &req, func(res api.ChatResponse) error {
			if res.Message.Content == "" {
				return nil
			}
			if !yield(res.Message.Content, nil) {
				cancel()
			}
			return nil
		}); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			yield("", fmt.Errorf("error sending request: %w", err))
		}
	}
}
