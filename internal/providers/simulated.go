package providers

import (
	"context"
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"
	"time"
)

// Simulated synthesizes a streamed response locally without touching the network. It
// backs the optional fallback path used when a model is not supported or a provider
// call fails.
type Simulated struct {
	delay time.Duration
}

var simulatedTemplates = []string{
	"I understand you're asking about: %q. Let me provide you with a comprehensive response based on my knowledge.",
	"That's an interesting question about %q. Here are some key points to consider:",
	"Regarding your query about %q, I'd be happy to help you explore this topic further.",
	"Thank you for asking about %q. Let me break this down for you step by step.",
}

// NewSimulated creates a Simulated provider with a small per-word delay to mimic a
// streaming response.
func NewSimulated() Simulated {
	return Simulated{delay: 50 * time.Millisecond}
}

// Stream yields a canned response word by word.
func (s Simulated) Stream(ctx context.Context, _, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		response := fmt.Sprintf(simulatedTemplates[rand.IntN(len(simulatedTemplates))], text)

		words := strings.Split(response, " ")
		for i, word := range words {
			if s.delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(s.delay):
				}
			}

			fragment := word
			if i < len(words)-1 {
				fragment += " "
			}
			if !yield(fragment, nil) {
				return
			}
		}
	}
}
