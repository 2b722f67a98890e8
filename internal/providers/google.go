package providers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strings"
)

const (
	googleAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	googleKeyName     = "GOOGLE_API_KEY"
)

// Google streams generated content from the Gemini streaming-generate API. Unlike the
// other hosted providers this API does not use SSE framing; the response body is a
// sequence of standalone JSON objects, one per line.
type Google struct {
	apiKey   string
	endpoint string

	client *http.Client

	logger *slog.Logger
}

type googleGenerateRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type googleStreamResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
}

// NewGoogle creates a new Google instance with the specified API key. The key may be
// empty; calls then fail before any request is made.
func NewGoogle(apiKey string, logger *slog.Logger) Google {
	return Google{
		apiKey:   apiKey,
		endpoint: googleAPIEndpoint,
		client:   &http.Client{},
		logger:   logger.With(slog.String("module", "google")),
	}
}

// Stream sends a single user message to the streaming-generate endpoint and yields
// incremental text. Each non-blank response line is decoded independently; malformed
// lines are skipped. The stream ends when the body is exhausted.
func (g Google) Stream(ctx context.Context, modelID, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if g.apiKey == "" {
			yield("", missingCredential(googleKeyName))
			return
		}

		reqBody := googleGenerateRequest{
			Contents: []googleContent{
				{Parts: []googlePart{{Text: text}}},
			},
			GenerationConfig: googleGenerationConfig{
				Temperature:     requestTemperature,
				MaxOutputTokens: maxResponseTokens,
			},
		}

		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			yield("", fmt.Errorf("error marshaling request: %w", err))
			return
		}

		url := fmt.Sprintf("%s/models/%s:streamGenerateContent?key=%s", g.endpoint, modelID, g.apiKey)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
		if err != nil {
			yield("", fmt.Errorf("error creating request: %w", err))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			yield("", fmt.Errorf("error sending request: %w", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield("", fmt.Errorf("google api error: %s", resp.Status))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			var res googleStreamResponse
			if err := json.Unmarshal([]byte(line), &res); err != nil {
				continue
			}
			if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
				continue
			}
			if content := res.Candidates[0].Content.Parts[0].Text; content != "" {
				if !yield(content, nil) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("error reading response: %w", err))
		}
	}
}
