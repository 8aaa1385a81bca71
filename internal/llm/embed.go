package llm

import (
	"context"
	"fmt"
	"math"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Embedder converts text into a dense vector for semantic-similarity checks.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// GeminiEmbedder implements Embedder on top of the Gemini embedding models.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates a new embedder using the configured embedding model.
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  config.EmbeddingModel,
	}, nil
}

// Embed returns the embedding vector for the given text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	model := e.client.EmbeddingModel(e.model)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return resp.Embedding.Values, nil
}

// Close releases resources held by the embedder.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
