package rewriting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/scoring"
	"github.com/jonathan/resume-guard/internal/textutil"
	"github.com/jonathan/resume-guard/internal/types"
)

// markerTokens are the word tokens of the metric placeholder, always permitted
// in a rewrite's vocabulary.
var markerTokens = textutil.TokenSet(MetricPlaceholder)

func containsDigit(s string) bool { return textutil.ContainsDigit(s) }

// ValidateRewrite checks one rewrite against the six invariants R1-R6. Each
// invariant is checked independently; all failures are returned, itemized.
func ValidateRewrite(ctx context.Context, embedder llm.Embedder, original string, resp *rewriteResponse, profile *types.CandidateProfile, job *types.JobProfile) []string {
	var errs []string
	rewritten := resp.Rewritten

	// R-1: no fabricated numbers.
	originalNumbers := make(map[string]bool)
	for _, n := range textutil.Numbers(original) {
		originalNumbers[n] = true
	}
	for _, n := range textutil.Numbers(rewritten) {
		if !originalNumbers[n] {
			errs = append(errs, fmt.Sprintf("TEST R-1 FAILED: number %q not present in original bullet", n))
		}
	}

	// R-2: claimed keywords must be legitimate and actually used.
	top10 := make(map[string]bool)
	if job != nil {
		for _, k := range job.Top10Keywords {
			top10[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}
	for _, keyword := range resp.KeywordsUsed {
		if !top10[strings.ToLower(strings.TrimSpace(keyword))] {
			errs = append(errs, fmt.Sprintf("TEST R-2 FAILED: claimed keyword %q not in job top-10 keywords", keyword))
		}
		if !textutil.ContainsFold(rewritten, keyword) {
			errs = append(errs, fmt.Sprintf("TEST R-2 FAILED: claimed keyword %q does not appear in rewrite", keyword))
		}
	}

	// R-3: closed vocabulary. Every token must come from the original bullet,
	// the candidate's text, the job's text, the action-verb list, or be a
	// numeric or marker token.
	allowed := textutil.TokenSet(original)
	if profile != nil {
		for tok := range textutil.TokenSet(profile.FullText()) {
			allowed[tok] = true
		}
	}
	if job != nil {
		for tok := range textutil.TokenSet(job.RawText) {
			allowed[tok] = true
		}
	}
	for _, verb := range scoring.ActionVerbs() {
		allowed[verb] = true
	}
	reported := make(map[string]bool)
	for _, token := range textutil.Tokenize(rewritten) {
		if textutil.IsNumeric(token) || markerTokens[token] || reported[token] {
			continue
		}
		if !allowed[token] {
			reported[token] = true
			errs = append(errs, fmt.Sprintf("TEST R-3 FAILED: token %q not found in any permitted source", token))
		}
	}

	// R-4: length cap.
	if wc := textutil.WordCount(rewritten); wc > maxRewriteWords {
		errs = append(errs, fmt.Sprintf("TEST R-4 FAILED: rewrite has %d words (max %d)", wc, maxRewriteWords))
	}

	// R-5: meaning preservation via embedding cosine similarity. An embedding
	// failure is itself a validation error, never a silent pass.
	if embedder == nil {
		errs = append(errs, "TEST R-5 FAILED: embedding service unavailable")
	} else {
		origVec, err1 := embedder.Embed(ctx, original)
		newVec, err2 := embedder.Embed(ctx, rewritten)
		switch {
		case err1 != nil:
			errs = append(errs, fmt.Sprintf("TEST R-5 FAILED: embedding error on original bullet: %v", err1))
		case err2 != nil:
			errs = append(errs, fmt.Sprintf("TEST R-5 FAILED: embedding error on rewritten bullet: %v", err2))
		default:
			if sim := llm.CosineSimilarity(origVec, newVec); sim < minSimilarity {
				errs = append(errs, fmt.Sprintf("TEST R-5 FAILED: similarity %.3f below %.2f threshold", sim, minSimilarity))
			}
		}
	}

	// R-6: metric-flag correctness.
	if !containsDigit(original) {
		if !strings.Contains(rewritten, MetricPlaceholder) {
			errs = append(errs, fmt.Sprintf("TEST R-6 FAILED: original has no metric but rewrite lacks the %s placeholder", MetricPlaceholder))
		}
		if !resp.NeedsUserMetric {
			errs = append(errs, "TEST R-6 FAILED: needs_user_metric must be true when the original bullet has no digit")
		}
	} else if resp.NeedsUserMetric {
		errs = append(errs, "TEST R-6 FAILED: needs_user_metric must be false when the original bullet has a digit")
	}

	return errs
}
