// Package llm wraps the generation provider behind a small Client interface
// so pipeline stages can pick a capability tier without naming models.
package llm

// ModelTier selects model capability per call site rather than per model name.
type ModelTier string

const (
	// TierLite handles classification and short free-text answers
	TierLite ModelTier = "lite"
	// TierStandard handles structured output and tone audits
	TierStandard ModelTier = "standard"
	// TierAdvanced handles bullet rewriting and full resume composition
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM provider for call provenance.
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature is used when a caller does not request a specific
// temperature. Low by default for consistent, verifiable output.
const DefaultTemperature float32 = 0.1

// Config maps tiers to provider model names.
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
}

// DefaultConfig returns the Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel: "text-embedding-004",
	}
}

// GetModel resolves a tier to a model name, falling back to standard then
// lite when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}
