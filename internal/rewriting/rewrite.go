// Package rewriting generates and validates ATS-optimized rewrites of single
// experience bullets. Generation is untrusted: every rewrite passes six
// deterministic invariants before acceptance, with exactly one feedback-guided
// retry, and the original bullet is carried forward unchanged when both
// attempts fail.
package rewriting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/prompts"
	"github.com/jonathan/resume-guard/internal/scoring"
	"github.com/jonathan/resume-guard/internal/types"
)

// MetricPlaceholder is the literal marker appended to a rewrite whose source
// bullet carries no metric, signalling that a user-supplied number is needed.
const MetricPlaceholder = "[METRIC NEEDED]"

const (
	maxRewriteWords = 28
	minSimilarity   = 0.85
	maxAttempts     = 2
)

// rewriteResponse is the JSON shape the generation contract requires.
type rewriteResponse struct {
	Rewritten       string   `json:"rewritten"`
	KeywordsUsed    []string `json:"keywords_used"`
	NeedsUserMetric bool     `json:"needs_user_metric"`
}

// RewriteBullet runs the bounded generate/validate loop for one bullet.
// It never returns an error: total failure degrades to a fallback record
// carrying the original bullet and every attempt's itemized failures.
func RewriteBullet(ctx context.Context, client llm.Client, embedder llm.Embedder, original string, profile *types.CandidateProfile, job *types.JobProfile) *types.BulletRewriteRecord {
	record := &types.BulletRewriteRecord{Original: original}

	var lastErrors []string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt := buildRewritePrompt(original, job, lastErrors)

		raw, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			apiErr := &APICallError{Message: "bullet rewrite generation", Cause: err}
			lastErrors = []string{apiErr.Error()}
			record.Attempts = append(record.Attempts, types.AttemptLog{Attempt: attempt, Errors: lastErrors})
			continue
		}

		parsed := llm.ParseJSONResponse(raw)
		if !parsed.OK() {
			lastErrors = []string{fmt.Sprintf("parse failure: %s", parsed.Reason)}
			record.Attempts = append(record.Attempts, types.AttemptLog{Attempt: attempt, Raw: raw, Errors: lastErrors})
			continue
		}

		var resp rewriteResponse
		if err := json.Unmarshal(parsed.Value, &resp); err != nil {
			lastErrors = []string{fmt.Sprintf("parse failure: %v", err)}
			record.Attempts = append(record.Attempts, types.AttemptLog{Attempt: attempt, Raw: raw, Errors: lastErrors})
			continue
		}

		lastErrors = ValidateRewrite(ctx, embedder, original, &resp, profile, job)
		record.Attempts = append(record.Attempts, types.AttemptLog{Attempt: attempt, Raw: raw, Errors: lastErrors})

		if len(lastErrors) == 0 {
			record.Rewritten = resp.Rewritten
			record.KeywordsUsed = resp.KeywordsUsed
			record.NeedsUserMetric = resp.NeedsUserMetric
			record.ValidationPassed = true
			return record
		}
	}

	// Both attempts failed: carry the original bullet forward, flagged.
	record.Rewritten = original
	record.FallbackUsed = true
	record.ValidationPassed = false
	record.ValidationErrors = lastErrors
	return record
}

// buildRewritePrompt constructs the generation prompt; on a retry the prompt
// is prefixed with the enumerated failures from the previous attempt.
func buildRewritePrompt(original string, job *types.JobProfile, previousFailures []string) string {
	var keywords []string
	if job != nil {
		keywords = job.Top10Keywords
	}

	metricKey := "metric-instruction-has-digit"
	if !containsDigit(original) {
		metricKey = "metric-instruction-no-digit"
	}
	metricInstruction := prompts.Format(prompts.MustGet("rewriting.json", metricKey), map[string]string{
		"Marker": MetricPlaceholder,
	})

	prompt := prompts.Format(prompts.MustGet("rewriting.json", "rewrite-bullet"), map[string]string{
		"BulletText":        original,
		"Keywords":          strings.Join(keywords, ", "),
		"ActionVerbs":       strings.Join(scoring.ActionVerbs(), ", "),
		"MaxWords":          fmt.Sprintf("%d", maxRewriteWords),
		"MetricInstruction": metricInstruction,
	})

	if len(previousFailures) > 0 {
		retry := prompts.Format(prompts.MustGet("rewriting.json", "rewrite-bullet-retry"), map[string]string{
			"Failures": "- " + strings.Join(previousFailures, "\n- "),
		})
		prompt = retry + prompt
	}
	return prompt
}
