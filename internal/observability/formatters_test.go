package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-guard/internal/types"
)

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintScore("Baseline ATS Score", &types.AtsScoreResult{
		AtsScore: 72,
		CategoryBreakdown: types.CategoryBreakdown{
			KeywordMatch: 30, SectionCompleteness: 20, FormattingSafety: 15, ContentQuality: 5, JobMatchRelevance: 2,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Baseline ATS Score")
	assert.Contains(t, out, "72 / 100")
	assert.Contains(t, out, "Keyword match:        30 / 40")
}

func TestPrintScore_NilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScore("Score", nil)
	assert.Empty(t, buf.String())
}

func TestPrintAudit_TruncatesIssueList(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	issues := make([]types.IntegrityIssue, 7)
	for i := range issues {
		issues[i] = types.IntegrityIssue{Check: "sentence_length", Detail: "too long", Severity: types.SeverityMinor}
	}
	printer.PrintAudit(&types.IntegrityAuditOutput{
		IntegrityPassed: true,
		Severity:        types.SeverityMinor,
		Issues:          issues,
	})

	out := buf.String()
	assert.Contains(t, out, "Issues:   7")
	assert.Contains(t, out, "... and 2 more")
}

func TestPrintOutcome_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintOutcome(&types.OrchestrationResult{
		Success: false,
		Error:   "resume composition failed after 2 attempts",
	})
	assert.Contains(t, buf.String(), "composition failed")
}

func TestZapSink_Emit(t *testing.T) {
	sink := NewZapSink(NewLogger("debug", "console"))
	assert.NotPanics(t, func() {
		sink.Emit(StageEvent{Stage: "compose", Outcome: OutcomeOK})
		sink.Emit(StageEvent{Stage: "guard", Outcome: OutcomeRejected, Detail: "too many pages"})
	})
}

func TestNopSink(t *testing.T) {
	assert.NotPanics(t, func() { NopSink{}.Emit(StageEvent{}) })
}
