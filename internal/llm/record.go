package llm

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-guard/internal/types"
)

// Recorder accumulates a provenance record for every raw AI call made during a
// request, so the orchestration result can expose them for auditability.
type Recorder struct {
	mu      sync.Mutex
	records []types.GenerationRecord
}

// NewRecorder creates an empty call recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds one call record.
func (r *Recorder) Append(rec types.GenerationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// Records returns a copy of all recorded calls in call order.
func (r *Recorder) Records() []types.GenerationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.GenerationRecord, len(r.records))
	copy(out, r.records)
	return out
}

// WrapClient returns a Client whose calls are recorded under the given stage name.
func (r *Recorder) WrapClient(c Client, stage string) Client {
	return &recordedClient{inner: c, recorder: r, stage: stage}
}

// WrapEmbedder returns an Embedder whose calls are recorded under the given stage name.
func (r *Recorder) WrapEmbedder(e Embedder, stage string) Embedder {
	return &recordedEmbedder{inner: e, recorder: r, stage: stage}
}

type recordedClient struct {
	inner    Client
	recorder *Recorder
	stage    string
}

func (c *recordedClient) record(tier ModelTier, start time.Time, err error) {
	c.recorder.Append(types.GenerationRecord{
		Provider:  c.inner.GetProvider(),
		Model:     c.inner.GetModel(tier),
		Stage:     c.stage,
		LatencyMS: time.Since(start).Milliseconds(),
		Timestamp: start,
		Failed:    err != nil,
	})
}

func (c *recordedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	start := time.Now()
	text, err := c.inner.GenerateContent(ctx, prompt, tier)
	c.record(tier, start, err)
	return text, err
}

func (c *recordedClient) GenerateWithTemperature(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	start := time.Now()
	text, err := c.inner.GenerateWithTemperature(ctx, prompt, tier, temperature)
	c.record(tier, start, err)
	return text, err
}

func (c *recordedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	start := time.Now()
	text, err := c.inner.GenerateJSON(ctx, prompt, tier)
	c.record(tier, start, err)
	return text, err
}

func (c *recordedClient) GetModel(tier ModelTier) string { return c.inner.GetModel(tier) }
func (c *recordedClient) GetProvider() string            { return c.inner.GetProvider() }
func (c *recordedClient) Close() error                   { return c.inner.Close() }

type recordedEmbedder struct {
	inner    Embedder
	recorder *Recorder
	stage    string
}

func (e *recordedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := e.inner.Embed(ctx, text)
	provider, model := "embedding", "embedding"
	if ge, ok := e.inner.(*GeminiEmbedder); ok {
		provider = string(ProviderGemini)
		model = ge.model
	}
	e.recorder.Append(types.GenerationRecord{
		Provider:  provider,
		Model:     model,
		Stage:     e.stage,
		LatencyMS: time.Since(start).Milliseconds(),
		Timestamp: start,
		Failed:    err != nil,
	})
	return vec, err
}

func (e *recordedEmbedder) Close() error { return e.inner.Close() }
