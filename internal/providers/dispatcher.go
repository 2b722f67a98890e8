package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gammalabs/gamma-chat/internal/models"
)

// Config carries the credentials and policy used to build a Dispatcher. Empty
// credentials are allowed; the corresponding providers then fail at call time with an
// error naming the missing key.
type Config struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GoogleAPIKey    string
	OllamaHost      string

	// FallbackToSimulated substitutes a locally generated response when a model is not
	// supported or a provider call fails, instead of surfacing the error.
	FallbackToSimulated bool
}

// Dispatcher routes a user message to the provider serving the requested model and
// normalizes the streamed response into text fragments. Exactly one outbound call is
// made per invocation; nothing is retried.
type Dispatcher struct {
	providers map[string]Provider
	fallback  Provider

	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher with one adapter per provider family in the
// catalog.
func NewDispatcher(cfg Config, logger *slog.Logger) Dispatcher {
	d := Dispatcher{
		providers: map[string]Provider{
			models.ProviderOpenAI:    NewOpenAI(cfg.OpenAIAPIKey, logger),
			models.ProviderAnthropic: NewAnthropic(cfg.AnthropicAPIKey, logger),
			models.ProviderGoogle:    NewGoogle(cfg.GoogleAPIKey, logger),
			models.ProviderOllama:    NewOllama(cfg.OllamaHost, logger),
		},
		logger: logger.With(slog.String("module", "dispatcher")),
	}
	if cfg.FallbackToSimulated {
		d.fallback = NewSimulated()
	}
	return d
}

// SendMessage sends text to the provider serving modelID and returns the full response
// once the stream ends. Every non-empty fragment is appended to the result and, when
// onChunk is non-nil, delivered to it synchronously in order. On failure no partial
// result is returned, though fragments already delivered to onChunk stay delivered.
func (d Dispatcher) SendMessage(ctx context.Context, text, modelID string, onChunk func(string)) (string, error) {
	if text == "" {
		return "", errors.New("message is required")
	}

	p, err := d.provider(modelID)
	if err != nil {
		if d.fallback == nil {
			return "", err
		}
		d.logger.Warn("Unsupported model, using simulated response",
			slog.String("model", modelID))
		return d.collect(ctx, d.fallback, modelID, text, onChunk)
	}

	full, err := d.collect(ctx, p, modelID, text, onChunk)
	if err != nil {
		if d.fallback == nil {
			return "", err
		}
		d.logger.Warn("Provider call failed, using simulated response",
			slog.String("model", modelID),
			slog.String("err", err.Error()))
		apology := fmt.Sprintf("I apologize, but I'm having trouble connecting to the %s API right now. This is a fallback response. Error: %s", modelID, err)
		return d.collect(ctx, d.fallback, modelID, apology, onChunk)
	}
	return full, nil
}

func (d Dispatcher) provider(modelID string) (Provider, error) {
	m, ok := models.ModelByID(modelID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, modelID)
	}
	p, ok := d.providers[m.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, modelID)
	}
	return p, nil
}

func (d Dispatcher) collect(ctx context.Context, p Provider, modelID, text string, onChunk func(string)) (string, error) {
	var sb strings.Builder
	for fragment, err := range p.Stream(ctx, modelID, text) {
		if err != nil {
			return "", err
		}
		if fragment == "" {
			continue
		}
		sb.WriteString(fragment)
		if onChunk != nil {
			onChunk(fragment)
		}
	}
	return sb.String(), nil
}
