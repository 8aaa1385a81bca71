package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/prompts"
	"github.com/jonathan/resume-guard/internal/types"
)

// ExplainDelta produces a natural-language explanation of the change between
// the baseline and final ATS scores. Best-effort: if the generation call fails
// or the client is nil, a deterministic templated explanation is returned.
func ExplainDelta(ctx context.Context, client llm.Client, baseline, final *types.AtsScoreResult) string {
	if baseline == nil || final == nil {
		return ""
	}
	if client != nil {
		baselineJSON, _ := json.Marshal(baseline)
		finalJSON, _ := json.Marshal(final)
		template := prompts.MustGet("scoring.json", "explain-delta")
		prompt := prompts.Format(template, map[string]string{
			"BaselineJSON": string(baselineJSON),
			"FinalJSON":    string(finalJSON),
		})
		text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return templateExplanation(baseline, final)
}

// templateExplanation builds a fixed-form explanation from the category diffs.
func templateExplanation(baseline, final *types.AtsScoreResult) string {
	var sb strings.Builder
	delta := final.AtsScore - baseline.AtsScore
	switch {
	case delta > 0:
		sb.WriteString(fmt.Sprintf("The ATS score improved from %d to %d (+%d).", baseline.AtsScore, final.AtsScore, delta))
	case delta < 0:
		sb.WriteString(fmt.Sprintf("The ATS score dropped from %d to %d (%d).", baseline.AtsScore, final.AtsScore, delta))
	default:
		sb.WriteString(fmt.Sprintf("The ATS score stayed at %d.", final.AtsScore))
	}

	categories := []struct {
		name   string
		before int
		after  int
	}{
		{"keyword match", baseline.CategoryBreakdown.KeywordMatch, final.CategoryBreakdown.KeywordMatch},
		{"section completeness", baseline.CategoryBreakdown.SectionCompleteness, final.CategoryBreakdown.SectionCompleteness},
		{"formatting safety", baseline.CategoryBreakdown.FormattingSafety, final.CategoryBreakdown.FormattingSafety},
		{"content quality", baseline.CategoryBreakdown.ContentQuality, final.CategoryBreakdown.ContentQuality},
		{"job match relevance", baseline.CategoryBreakdown.JobMatchRelevance, final.CategoryBreakdown.JobMatchRelevance},
	}
	var changes []string
	for _, c := range categories {
		if c.after != c.before {
			changes = append(changes, fmt.Sprintf("%s %+d", c.name, c.after-c.before))
		}
	}
	if len(changes) > 0 {
		sb.WriteString(" Category changes: ")
		sb.WriteString(strings.Join(changes, ", "))
		sb.WriteString(".")
	}
	return sb.String()
}
