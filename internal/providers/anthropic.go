package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"

	"github.com/tmaxmax/go-sse"
)

const (
	anthropicAPIEndpoint = "https://api.anthropic.com/v1"
	anthropicKeyName     = "ANTHROPIC_API_KEY"
	anthropicVersion     = "2023-06-01"
)

// Anthropic streams chat completions from the Anthropic messages API.
type Anthropic struct {
	apiKey   string
	endpoint string

	client *http.Client

	logger *slog.Logger
}

type anthropicChatRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Stream      bool               `json:"stream"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicStreamResponse struct {
	Type  string `json:"type"`
	Delta struct {
		Text string `json:"text"`
	} `json:"delta"`
}

// NewAnthropic creates a new Anthropic instance with the specified API key. The key may
// be empty; calls then fail before any request is made.
func NewAnthropic(apiKey string, logger *slog.Logger) Anthropic {
	return Anthropic{
		apiKey:   apiKey,
		endpoint: anthropicAPIEndpoint,
		client:   &http.Client{},
		logger:   logger.With(slog.String("module", "anthropic")),
	}
}

func anthropicModelName(modelID string) string {
	if modelID == "claude-3-opus" {
		return "claude-3-opus-20240229"
	}
	return "claude-3-sonnet-20240229"
}

// Stream sends a single user message to the messages endpoint and yields incremental
// text. Events carry a type discriminator in their JSON payload; only content_block_delta
// events contribute text, message_stop ends the stream, and anything undecodable is
// skipped.
func (a Anthropic) Stream(ctx context.Context, modelID, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if a.apiKey == "" {
			yield("", missingCredential(anthropicKeyName))
			return
		}

		reqBody := anthropicChatRequest{
			Model: anthropicModelName(modelID),
			Messages: []anthropicMessage{
				{Role: "user", Content: text},
			},
			MaxTokens:   maxResponseTokens,
			Temperature: requestTemperature,
			Stream:      true,
		}

		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			yield("", fmt.Errorf("error marshaling request: %w", err))
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			a.endpoint+"/messages", bytes.NewBuffer(jsonBody))
		if err != nil {
			yield("", fmt.Errorf("error creating request: %w", err))
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", a.apiKey)
		req.Header.Set("anthropic-version", anthropicVersion)

		resp, err := a.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			yield("", fmt.Errorf("error sending request: %w", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield("", fmt.Errorf("anthropic api error: %s", resp.Status))
			return
		}

		for ev, err := range sse.Read(resp.Body, nil) {
			if err != nil {
				yield("", fmt.Errorf("error reading response: %w", err))
				return
			}

			var res anthropicStreamResponse
			if err := json.Unmarshal([]byte(ev.Data), &res); err != nil {
				continue
			}

			switch res.Type {
			case "message_stop":
				return
			case "content_block_delta":
				if res.Delta.Text == "" {
					continue
				}
				if !yield(res.Delta.Text, nil) {
					return
				}
			default:
				continue
			}
		}
	}
}
