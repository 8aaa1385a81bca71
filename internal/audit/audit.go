// Package audit runs the post-hoc integrity scan over a rendered resume. The
// audit is terminal: it observes and reports, never mutates. Five checks are
// deterministic text scans; the sixth is an AI tone classification whose call
// failure is itself recorded as a finding without failing the audit on its own.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/prompts"
	"github.com/jonathan/resume-guard/internal/textutil"
	"github.com/jonathan/resume-guard/internal/types"
)

const (
	maxKeywordOccurrences = 6
	maxSentenceWords      = 35
)

// Auditor runs integrity audits. Client may be nil to skip the tone check.
type Auditor struct {
	Client llm.Client
}

// Audit scans the rendered resume text and returns the aggregated findings.
// The audit passes unless any finding is a major issue.
func (a *Auditor) Audit(ctx context.Context, resumeText string, job *types.JobProfile) *types.IntegrityAuditOutput {
	var issues []types.IntegrityIssue

	issues = append(issues, checkDuplicateHeaders(resumeText)...)
	issues = append(issues, checkDuplicateBullets(resumeText)...)
	issues = append(issues, checkKeywordStuffing(resumeText, job)...)
	issues = append(issues, checkSentenceLength(resumeText)...)
	issues = append(issues, checkStrayMarkers(resumeText)...)
	issues = append(issues, a.checkTone(ctx, resumeText)...)

	severity := types.SeverityNone
	for _, issue := range issues {
		severity = severity.Max(issue.Severity)
	}

	return &types.IntegrityAuditOutput{
		IntegrityPassed: severity != types.SeverityMajor,
		Issues:          issues,
		Severity:        severity,
	}
}

// checkDuplicateHeaders flags repeated "## " section headers.
func checkDuplicateHeaders(text string) []types.IntegrityIssue {
	var issues []types.IntegrityIssue
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "## ") {
			continue
		}
		header := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "## ")))
		if seen[header] {
			issues = append(issues, types.IntegrityIssue{
				Check:    "duplicate_headers",
				Detail:   fmt.Sprintf("section header %q appears more than once", header),
				Severity: types.SeverityMajor,
			})
		}
		seen[header] = true
	}
	return issues
}

// checkDuplicateBullets flags bullet lines that repeat after whitespace and
// case normalization.
func checkDuplicateBullets(text string) []types.IntegrityIssue {
	var issues []types.IntegrityIssue
	seen := make(map[string]bool)
	reported := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		normalized := textutil.NormalizeLine(strings.TrimPrefix(trimmed, "- "))
		if normalized == "" {
			continue
		}
		if seen[normalized] && !reported[normalized] {
			issues = append(issues, types.IntegrityIssue{
				Check:    "duplicate_bullets",
				Detail:   fmt.Sprintf("bullet %q appears more than once", normalized),
				Severity: types.SeverityMajor,
			})
			reported[normalized] = true
		}
		seen[normalized] = true
	}
	return issues
}

// checkKeywordStuffing flags any top job keyword used more than
// maxKeywordOccurrences times as a whole word.
func checkKeywordStuffing(text string, job *types.JobProfile) []types.IntegrityIssue {
	if job == nil {
		return nil
	}
	var issues []types.IntegrityIssue
	for _, keyword := range job.Top10Keywords {
		count := textutil.WholeWordCount(text, keyword)
		if count > maxKeywordOccurrences {
			issues = append(issues, types.IntegrityIssue{
				Check:    "keyword_stuffing",
				Detail:   fmt.Sprintf("keyword %q occurs %d times, limit is %d", keyword, count, maxKeywordOccurrences),
				Severity: types.SeverityMajor,
			})
		}
	}
	return issues
}

// checkSentenceLength flags run-on sentences over maxSentenceWords words.
func checkSentenceLength(text string) []types.IntegrityIssue {
	var issues []types.IntegrityIssue
	for _, sentence := range splitSentences(text) {
		words := textutil.WordCount(sentence)
		if words > maxSentenceWords {
			detail := sentence
			if len(detail) > 80 {
				detail = detail[:80] + "..."
			}
			issues = append(issues, types.IntegrityIssue{
				Check:    "sentence_length",
				Detail:   fmt.Sprintf("sentence of %d words exceeds %d: %q", words, maxSentenceWords, detail),
				Severity: types.SeverityMinor,
			})
		}
	}
	return issues
}

// splitSentences breaks each line on sentence boundaries. A period is a
// boundary only when followed by whitespace or end of line, so decimals like
// "3.5" stay inside their sentence; "!" and "?" always end one.
func splitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		rest := strings.TrimSpace(line)
		start := 0
		for i := 0; i < len(rest); i++ {
			c := rest[i]
			if c != '.' && c != '!' && c != '?' {
				continue
			}
			if c == '.' && i+1 < len(rest) && rest[i+1] != ' ' && rest[i+1] != '\t' {
				continue
			}
			if s := strings.TrimSpace(rest[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
		if s := strings.TrimSpace(rest[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// checkStrayMarkers flags markdown header markers leaking into bullet text.
func checkStrayMarkers(text string) []types.IntegrityIssue {
	var issues []types.IntegrityIssue
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		if strings.Contains(strings.TrimPrefix(trimmed, "- "), "#") {
			issues = append(issues, types.IntegrityIssue{
				Check:    "stray_markers",
				Detail:   fmt.Sprintf("bullet contains a header marker: %q", trimmed),
				Severity: types.SeverityMajor,
			})
		}
	}
	return issues
}

type toneResponse struct {
	Classification string `json:"classification"`
	Reason         string `json:"reason"`
}

// checkTone asks the AI to classify the overall tone. An unavailable or
// failing call is recorded as a minor finding so the audit stays observable
// without blocking on the model.
func (a *Auditor) checkTone(ctx context.Context, text string) []types.IntegrityIssue {
	if a.Client == nil {
		return nil
	}

	prompt := prompts.Format(prompts.MustGet("audit.json", "tone-check"), map[string]string{
		"ResumeText": text,
	})
	raw, err := a.Client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return []types.IntegrityIssue{{
			Check:    "tone",
			Detail:   fmt.Sprintf("tone check unavailable: %v", err),
			Severity: types.SeverityMinor,
		}}
	}

	parsed := llm.ParseJSONResponse(raw)
	if !parsed.OK() {
		return []types.IntegrityIssue{{
			Check:    "tone",
			Detail:   fmt.Sprintf("tone check returned unparseable output: %s", parsed.Reason),
			Severity: types.SeverityMinor,
		}}
	}
	var resp toneResponse
	if err := json.Unmarshal(parsed.Value, &resp); err != nil {
		return []types.IntegrityIssue{{
			Check:    "tone",
			Detail:   fmt.Sprintf("tone check returned unparseable output: %v", err),
			Severity: types.SeverityMinor,
		}}
	}

	switch strings.ToLower(strings.TrimSpace(resp.Classification)) {
	case "clean", "":
		return nil
	case "minor":
		return []types.IntegrityIssue{{
			Check:    "tone",
			Detail:   resp.Reason,
			Severity: types.SeverityMinor,
		}}
	default:
		return []types.IntegrityIssue{{
			Check:    "tone",
			Detail:   resp.Reason,
			Severity: types.SeverityMajor,
		}}
	}
}
