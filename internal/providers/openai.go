package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/tmaxmax/go-sse"
)

const (
	openAIAPIEndpoint = "https://api.openai.com/v1"
	openAIKeyName     = "OPENAI_API_KEY"

	openAIDoneSentinel = "[DONE]"
)

// OpenAI streams chat completions from the OpenAI API. Request and response bodies use
// the go-openai wire types; framing is decoded with go-sse so that partial or otherwise
// undecodable payload lines can be skipped instead of aborting the stream.
type OpenAI struct {
	apiKey   string
	endpoint string

	client *http.Client

	logger *slog.Logger
}

// NewOpenAI creates a new OpenAI instance with the specified API key. The key may be
// empty; calls then fail before any request is made.
func NewOpenAI(apiKey string, logger *slog.Logger) OpenAI {
	return OpenAI{
		apiKey:   apiKey,
		endpoint: openAIAPIEndpoint,
		client:   &http.Client{},
		logger:   logger.With(slog.String("module", "openai")),
	}
}

// Stream sends a single user message to the chat completions endpoint and yields the
// incremental content deltas. The stream ends at the [DONE] sentinel.
func (o OpenAI) Stream(ctx context.Context, modelID, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if o.apiKey == "" {
			yield("", missingCredential(openAIKeyName))
			return
		}

		reqBody := goopenai.ChatCompletionRequest{
			Model: modelID,
			Messages: []goopenai.ChatCompletionMessage{
				{Role: goopenai.ChatMessageRoleUser, Content: text},
			},
			Stream:      true,
			MaxTokens:   maxResponseTokens,
			Temperature: requestTemperature,
		}

		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			yield("", fmt.Errorf("error marshaling request: %w", err))
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			o.endpoint+"/chat/completions", bytes.NewBuffer(jsonBody))
		if err != nil {
			yield("", fmt.Errorf("error creating request: %w", err))
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+o.apiKey)

		resp, err := o.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			yield("", fmt.Errorf("error sending request: %w", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			yield("", fmt.Errorf("openai api error: %s: %s", resp.Status, body))
			return
		}

		for ev, err := range sse.Read(resp.Body, nil) {
			if err != nil {
				yield("", fmt.Errorf("error reading response: %w", err))
				return
			}
			if ev.Data == openAIDoneSentinel {
				return
			}

			var res goopenai.ChatCompletionStreamResponse
			if err := json.Unmarshal([]byte(ev.Data), &res); err != nil {
				// A data line may be truncated at a chunk boundary; skip it.
				continue
			}
			if len(res.Choices) == 0 {
				continue
			}
			if content := res.Choices[0].Delta.Content; content != "" {
				if !yield(content, nil) {
					return
				}
			}
		}
	}
}
