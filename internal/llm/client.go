package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	// at the default temperature
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateWithTemperature generates text content at an explicit temperature
	GenerateWithTemperature(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// GetProvider returns the provider name for call provenance
	GetProvider() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateContent generates text content at the default temperature
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, DefaultTemperature, "")
}

// GenerateWithTemperature generates text content at an explicit temperature
func (c *GeminiClient) GenerateWithTemperature(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	return c.generate(ctx, prompt, tier, temperature, "")
}

// GenerateJSON generates content with the provider's JSON response mode
// enabled, then strips any code fences the model emitted anyway.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, DefaultTemperature, "application/json")
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, temperature float32, mimeType string) (string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(temperature)
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation call to %s failed: %w", name, err)
	}
	return responseText(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// GetProvider returns the provider name
func (c *GeminiClient) GetProvider() string {
	return string(c.config.Provider)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("response carried no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("response candidate carried no content")
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("response candidate carried no text parts")
	}
	return sb.String(), nil
}
