package rewriting

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/types"
)

type fakeClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeClient) next() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.calls >= len(f.responses) {
		return "", errors.New("fake client exhausted")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GenerateWithTemperature(_ context.Context, prompt string, _ llm.ModelTier, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) GetProvider() string           { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

// identicalEmbedder returns the same vector for every text, so every pair of
// texts has cosine similarity 1.0.
type identicalEmbedder struct{}

func (identicalEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}
func (identicalEmbedder) Close() error { return nil }

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedding service down")
}
func (failingEmbedder) Close() error { return nil }

func rewriteProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Summary: "Engineer with streaming experience.",
		Skills:  types.Skills{Technical: []string{"Kafka", "Go"}},
		Experience: []types.Experience{
			{Title: "Engineer", Company: "Acme", Bullets: []string{
				"Reduced processing time by 40% for pipelines",
			}},
		},
		RawText: "Reduced processing time by 40% for streaming pipelines using Kafka and Go.",
	}
}

func rewriteJob() *types.JobProfile {
	return &types.JobProfile{
		RawText:       "Seeking engineers with Kafka and Go experience building streaming pipelines.",
		Top10Keywords: []string{"kafka", "go", "streaming"},
	}
}

func TestRewriteBullet_FirstAttemptSucceeds(t *testing.T) {
	original := "Reduced processing time by 40% for pipelines"
	client := &fakeClient{responses: []string{
		`{"rewritten": "Reduced pipelines processing time by 40% using Kafka", "keywords_used": ["kafka"], "needs_user_metric": false}`,
	}}

	record := RewriteBullet(context.Background(), client, identicalEmbedder{}, original, rewriteProfile(), rewriteJob())
	require.True(t, record.ValidationPassed, "errors: %v", record.Attempts)
	assert.Equal(t, original, record.Original)
	assert.False(t, record.FallbackUsed)
	assert.False(t, record.NeedsUserMetric)
	assert.Equal(t, []string{"kafka"}, record.KeywordsUsed)
	assert.Len(t, record.Attempts, 1)
}

func TestRewriteBullet_RetrySucceedsWithFeedback(t *testing.T) {
	original := "Reduced processing time by 40% for pipelines"
	client := &fakeClient{responses: []string{
		`{"rewritten": "Reduced processing time by 90%", "keywords_used": [], "needs_user_metric": false}`,
		`{"rewritten": "Reduced pipelines processing time by 40% using Kafka", "keywords_used": ["kafka"], "needs_user_metric": false}`,
	}}

	record := RewriteBullet(context.Background(), client, identicalEmbedder{}, original, rewriteProfile(), rewriteJob())
	require.True(t, record.ValidationPassed)
	require.Len(t, record.Attempts, 2)
	assert.Contains(t, record.Attempts[0].Errors[0], "TEST R-1 FAILED")

	// Retry prompt leads with the first attempt's failures.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "TEST R-1 FAILED")
}

func TestRewriteBullet_FallbackAfterTwoFailures(t *testing.T) {
	original := "Reduced processing time by 40% for pipelines"
	client := &fakeClient{responses: []string{
		`{"rewritten": "Reduced processing time by 90%", "keywords_used": [], "needs_user_metric": false}`,
		`{"rewritten": "Reduced processing time by 75%", "keywords_used": [], "needs_user_metric": false}`,
	}}

	record := RewriteBullet(context.Background(), client, identicalEmbedder{}, original, rewriteProfile(), rewriteJob())
	assert.False(t, record.ValidationPassed)
	assert.True(t, record.FallbackUsed)
	assert.Equal(t, original, record.Rewritten, "fallback must carry the original bullet")
	assert.Len(t, record.Attempts, 2)
	assert.NotEmpty(t, record.ValidationErrors)
}

func TestRewriteBullet_GenerationErrorFallsBack(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	record := RewriteBullet(context.Background(), client, identicalEmbedder{}, "Did things", rewriteProfile(), rewriteJob())

	assert.True(t, record.FallbackUsed)
	assert.Equal(t, "Did things", record.Rewritten)
	require.Len(t, record.Attempts, 2)
	assert.Contains(t, record.Attempts[0].Errors[0], "API call error")
	assert.Contains(t, record.Attempts[0].Errors[0], "rate limited")
}

func TestAPICallError_WrapsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &APICallError{Message: "bullet rewrite generation", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRewriteBullet_UnparseableOutputFallsBack(t *testing.T) {
	client := &fakeClient{responses: []string{"not json", "still not json"}}
	record := RewriteBullet(context.Background(), client, identicalEmbedder{}, "Did things", rewriteProfile(), rewriteJob())

	assert.True(t, record.FallbackUsed)
	assert.Contains(t, record.Attempts[0].Errors[0], "parse failure")
}

func TestRewriteBullet_MetricPlaceholderFlow(t *testing.T) {
	original := "Reduced processing time for pipelines"
	rewritten := fmt.Sprintf("Reduced pipelines processing time using Kafka %s", MetricPlaceholder)
	client := &fakeClient{responses: []string{
		fmt.Sprintf(`{"rewritten": %q, "keywords_used": ["kafka"], "needs_user_metric": true}`, rewritten),
	}}

	record := RewriteBullet(context.Background(), client, identicalEmbedder{}, original, rewriteProfile(), rewriteJob())
	require.True(t, record.ValidationPassed, "errors: %v", record.Attempts)
	assert.True(t, record.NeedsUserMetric)
	assert.Contains(t, record.Rewritten, MetricPlaceholder)
}
