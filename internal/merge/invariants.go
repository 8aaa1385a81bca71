package merge

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/textutil"
	"github.com/jonathan/resume-guard/internal/types"
)

// structuralTokens are literals that may legitimately appear in merged field
// values without being present in either source text.
var structuralTokens = map[string]bool{
	"true":    true,
	"false":   true,
	"present": true,
}

// checkInvariants runs the five post-merge integrity checks independently and
// returns every failure as a named violation.
func checkInvariants(original, merged *types.CandidateProfile, job *types.JobProfile, secondary *types.SecondaryProfile, result *types.MergeResult) []string {
	var violations []string

	// M-1: original experience entries' identity fields are byte-identical.
	limit := len(original.Experience)
	if len(merged.Experience) < limit {
		limit = len(merged.Experience)
	}
	for i := 0; i < limit; i++ {
		orig, got := original.Experience[i], merged.Experience[i]
		if orig.Title != got.Title || orig.Company != got.Company ||
			orig.StartDate != got.StartDate || orig.EndDate != got.EndDate {
			violations = append(violations, fmt.Sprintf(
				"TEST M-1 FAILED: experience entry %d identity changed (was %q at %q)", i, orig.Title, orig.Company))
		}
	}

	// M-2: experience entry count is invariant.
	if len(merged.Experience) != len(original.Experience) {
		violations = append(violations, fmt.Sprintf(
			"TEST M-2 FAILED: experience count changed from %d to %d", len(original.Experience), len(merged.Experience)))
	}

	// M-3: every added skill is in both the secondary skill list and the job keywords.
	secondarySkills := make(map[string]bool)
	if secondary != nil {
		for _, s := range secondary.Skills {
			secondarySkills[strings.ToLower(strings.TrimSpace(s))] = true
		}
	}
	jobKeywords := make(map[string]bool)
	for _, k := range job.Top25Keywords {
		jobKeywords[strings.ToLower(strings.TrimSpace(k))] = true
	}
	for _, skill := range result.AddedSkills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if !secondarySkills[key] {
			violations = append(violations, fmt.Sprintf(
				"TEST M-3 FAILED: added skill %q not in secondary profile skill list", skill))
		}
		if !jobKeywords[key] {
			violations = append(violations, fmt.Sprintf(
				"TEST M-3 FAILED: added skill %q not in job keyword list", skill))
		}
	}

	// M-4: every added bullet is verbatim in secondary raw text and 6-50 words.
	for _, bullet := range result.AddedBullets {
		if secondary == nil || !textutil.ContainsFold(secondary.RawText, bullet) {
			violations = append(violations, fmt.Sprintf(
				"TEST M-4 FAILED: added bullet not verbatim in secondary raw text: %q", bullet))
		}
		if wc := textutil.WordCount(bullet); wc < 6 || wc > 50 {
			violations = append(violations, fmt.Sprintf(
				"TEST M-4 FAILED: added bullet has %d words (must be 6-50): %q", wc, bullet))
		}
	}

	// M-5: hallucination guard. Every token in merged field values must exist
	// in the resume text or the secondary raw text. Tokens without letters are
	// structural and exempt, as are a few fixed literals.
	allowed := textutil.TokenSet(original.FullText())
	if secondary != nil {
		for tok := range textutil.TokenSet(secondary.RawText) {
			allowed[tok] = true
		}
	}
	fieldsOnly := cloneProfile(merged)
	fieldsOnly.RawText = ""
	reported := make(map[string]bool)
	for _, token := range textutil.Tokenize(fieldsOnly.FullText()) {
		if textutil.IsNumeric(token) || structuralTokens[token] || reported[token] {
			continue
		}
		if !allowed[token] {
			reported[token] = true
			violations = append(violations, fmt.Sprintf(
				"TEST M-5 FAILED: token %q not traceable to resume or secondary raw text", token))
		}
	}

	return violations
}
