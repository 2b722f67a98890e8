package providers

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// Provider streams incremental text fragments for a single user message sent to one of
// the supported models. Implementations translate the catalog model id to the vendor's
// own model name and decode the vendor's streaming wire format.
type Provider interface {
	Stream(ctx context.Context, modelID, text string) iter.Seq2[string, error]
}

// ErrUnsupportedModel is returned when a model id is outside the catalog.
var ErrUnsupportedModel = errors.New("unsupported model")

// ErrMissingCredential is returned when a provider is called without its credential
// configured. The wrapped message names the configuration key to set.
var ErrMissingCredential = errors.New("missing credential")

// Request parameters shared by all hosted providers.
const (
	maxResponseTokens  = 2000
	requestTemperature = 0.7
)

func missingCredential(key string) error {
	return fmt.Errorf("%w: %s is not set", ErrMissingCredential, key)
}
