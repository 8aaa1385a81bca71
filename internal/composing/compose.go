// Package composing generates a full structured resume from a verified
// candidate profile plus pre-validated rewritten bullets. Generation output is
// untrusted: every attempt is schema-checked and then held to deterministic
// structural invariants, with one feedback-guided retry. Raw and parsed output
// from every attempt is persisted to the debug store before validation runs.
package composing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-guard/internal/debugstore"
	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/prompts"
	"github.com/jonathan/resume-guard/internal/schemas"
	"github.com/jonathan/resume-guard/internal/types"
)

const maxAttempts = 2

// Composer generates composed resumes. Debug may be nil, in which case raw
// outputs are not persisted.
type Composer struct {
	Client llm.Client
	Debug  debugstore.Store
}

// Compose runs the bounded generate/validate loop. On total failure it
// returns a *ComposeError carrying the concatenated failures from every
// attempt; the attempt logs are returned in all cases.
func (c *Composer) Compose(ctx context.Context, requestID string, profile *types.CandidateProfile, bullets []*types.BulletRewriteRecord, job *types.JobProfile) (*types.ComposeResumeOutput, []types.AttemptLog, error) {
	var attempts []types.AttemptLog
	var allFailures []string

	var lastFailures []string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt, err := buildComposePrompt(profile, bullets, job, lastFailures)
		if err != nil {
			return nil, attempts, &ComposeError{Message: "failed to build compose prompt", Cause: err}
		}

		raw, err := c.Client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			lastFailures = []string{fmt.Sprintf("generation failure: %v", err)}
			attempts = append(attempts, types.AttemptLog{Attempt: attempt, Errors: lastFailures})
			allFailures = append(allFailures, lastFailures...)
			continue
		}
		c.save(ctx, requestID, fmt.Sprintf("compose_attempt_%d_raw", attempt), []byte(raw))

		parsed := llm.ParseJSONResponse(raw)
		if !parsed.OK() {
			lastFailures = []string{fmt.Sprintf("parse failure: %s", parsed.Reason)}
			attempts = append(attempts, types.AttemptLog{Attempt: attempt, Raw: raw, Errors: lastFailures})
			allFailures = append(allFailures, lastFailures...)
			continue
		}
		c.save(ctx, requestID, fmt.Sprintf("compose_attempt_%d_parsed", attempt), parsed.Value)

		lastFailures = validateAttempt(parsed.Value, profile)
		attempts = append(attempts, types.AttemptLog{Attempt: attempt, Raw: raw, Errors: lastFailures})
		allFailures = append(allFailures, lastFailures...)

		if len(lastFailures) == 0 {
			var output types.ComposeResumeOutput
			if err := json.Unmarshal(parsed.Value, &output); err != nil {
				// Schema passed but Go decoding failed; treat as attempt failure.
				lastFailures = []string{fmt.Sprintf("decode failure: %v", err)}
				attempts[len(attempts)-1].Errors = lastFailures
				allFailures = append(allFailures, lastFailures...)
				continue
			}
			return &output, attempts, nil
		}
	}

	return nil, attempts, &ComposeError{
		Message:  fmt.Sprintf("resume composition failed after %d attempts", maxAttempts),
		Failures: allFailures,
	}
}

// validateAttempt schema-checks one parsed attempt and then runs the
// structural invariants. Schema violations short-circuit: structural checks
// assume a well-shaped document.
func validateAttempt(doc json.RawMessage, profile *types.CandidateProfile) []string {
	if err := schemas.ValidateComposeResume(string(doc)); err != nil {
		return []string{fmt.Sprintf("TEST C-1 FAILED: %v", err)}
	}
	var output types.ComposeResumeOutput
	if err := json.Unmarshal(doc, &output); err != nil {
		return []string{fmt.Sprintf("TEST C-1 FAILED: %v", err)}
	}
	return checkInvariants(&output, profile)
}

func buildComposePrompt(profile *types.CandidateProfile, bullets []*types.BulletRewriteRecord, job *types.JobProfile, previousFailures []string) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}

	var bulletLines []string
	for _, b := range bullets {
		bulletLines = append(bulletLines, fmt.Sprintf("- original: %s\n  rewritten: %s", b.Original, b.Rewritten))
	}
	if len(bulletLines) == 0 {
		bulletLines = []string{"(none)"}
	}

	var keywords []string
	if job != nil {
		keywords = job.Top10Keywords
	}

	prompt := prompts.Format(prompts.MustGet("composing.json", "compose-resume"), map[string]string{
		"ProfileJSON":      string(profileJSON),
		"RewrittenBullets": strings.Join(bulletLines, "\n"),
		"Keywords":         strings.Join(keywords, ", "),
	})

	if len(previousFailures) > 0 {
		retry := prompts.Format(prompts.MustGet("composing.json", "compose-resume-retry"), map[string]string{
			"Failures": "- " + strings.Join(previousFailures, "\n- "),
		})
		prompt = retry + prompt
	}
	return prompt, nil
}

func (c *Composer) save(ctx context.Context, requestID, stage string, payload []byte) {
	if c.Debug == nil {
		return
	}
	c.Debug.Save(ctx, requestID, stage, payload)
}
