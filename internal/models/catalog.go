package models

// Provider family names used by the dispatcher to pick an adapter.
const (
	ProviderOpenAI    = "OpenAI"
	ProviderAnthropic = "Anthropic"
	ProviderGoogle    = "Google"
	ProviderOllama    = "Ollama"
)

// Pricing holds the price per 1K tokens in USD.
type Pricing struct {
	Input  float64
	Output float64
}

// Model describes one entry of the static model catalog. The catalog is read-only
// reference data used to render the selector and to route the dispatcher.
type Model struct {
	ID           string
	Name         string
	Provider     string
	Description  string
	MaxTokens    int
	Pricing      Pricing
	Capabilities []string
	Icon         string
}

// Catalog is the closed set of supported models. Each id maps to exactly one provider
// family; the dispatcher rejects ids outside this set.
var Catalog = []Model{
	{
		ID:           "gpt-4",
		Name:         "GPT-4",
		Provider:     ProviderOpenAI,
		Description:  "Most capable GPT model, great for complex tasks",
		MaxTokens:    8192,
		Pricing:      Pricing{Input: 0.03, Output: 0.06},
		Capabilities: []string{"Text Generation", "Code", "Analysis", "Creative Writing"},
		Icon:         "🤖",
	},
	{
		ID:           "gpt-3.5-turbo",
		Name:         "GPT-3.5 Turbo",
		Provider:     ProviderOpenAI,
		Description:  "Fast and efficient for most conversational tasks",
		MaxTokens:    4096,
		Pricing:      Pricing{Input: 0.001, Output: 0.002},
		Capabilities: []string{"Text Generation", "Conversations", "Quick Tasks"},
		Icon:         "⚡",
	},
	{
		ID:           "claude-3-opus",
		Name:         "Claude 3 Opus",
		Provider:     ProviderAnthropic,
		Description:  "Most powerful Claude model for complex reasoning",
		MaxTokens:    200000,
		Pricing:      Pricing{Input: 0.015, Output: 0.075},
		Capabilities: []string{"Long Context", "Analysis", "Code", "Research"},
		Icon:         "🧠",
	},
	{
		ID:           "claude-3-sonnet",
		Name:         "Claude 3 Sonnet",
		Provider:     ProviderAnthropic,
		Description:  "Balanced performance and speed",
		MaxTokens:    200000,
		Pricing:      Pricing{Input: 0.003, Output: 0.015},
		Capabilities: []string{"Balanced Tasks", "Analysis", "Writing"},
		Icon:         "🎭",
	},
	{
		ID:           "gemini-pro",
		Name:         "Gemini Pro",
		Provider:     ProviderGoogle,
		Description:  "Google's most capable AI model",
		MaxTokens:    32768,
		Pricing:      Pricing{Input: 0.0005, Output: 0.0015},
		Capabilities: []string{"Multimodal", "Code", "Analysis", "Creative Tasks"},
		Icon:         "💎",
	},
	{
		ID:           "llama3",
		Name:         "Llama 3",
		Provider:     ProviderOllama,
		Description:  "Self-hosted model served by a local Ollama instance",
		MaxTokens:    8192,
		Pricing:      Pricing{},
		Capabilities: []string{"Local", "Private", "Text Generation"},
		Icon:         "🦙",
	},
}

// ModelByID looks up a catalog entry by its id.
func ModelByID(id string) (Model, bool) {
	for _, m := range Catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
