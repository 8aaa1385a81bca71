// Package pipeline provides the high-level orchestration for guarded resume
// generation. A request flows through fixed stages: input guards, baseline
// scoring, per-bullet rewriting, full composition, re-scoring over the
// rendered output, score explanation, and a terminal integrity audit. Every
// AI output crosses a validation boundary before later stages may depend on
// it, and validated intermediate results are cached by content hash.
package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/resume-guard/internal/audit"
	"github.com/jonathan/resume-guard/internal/cache"
	"github.com/jonathan/resume-guard/internal/composing"
	"github.com/jonathan/resume-guard/internal/debugstore"
	"github.com/jonathan/resume-guard/internal/guard"
	"github.com/jonathan/resume-guard/internal/llm"
	"github.com/jonathan/resume-guard/internal/observability"
	"github.com/jonathan/resume-guard/internal/rendering"
	"github.com/jonathan/resume-guard/internal/rewriting"
	"github.com/jonathan/resume-guard/internal/scoring"
	"github.com/jonathan/resume-guard/internal/types"
)

// Orchestrator wires the pipeline stages together. Cache, Debug, Guard,
// Events, and Recorder are optional; a nil value disables the corresponding
// concern.
type Orchestrator struct {
	Client   llm.Client
	Embedder llm.Embedder
	Cache    cache.Store
	Debug    debugstore.Store
	Guard    *guard.Guard
	Events   observability.EventSink
	Recorder *llm.Recorder
}

// Request is one resume-generation request. FileSizeBytes, PageCount, and
// RecentRequestCount are caller-supplied abuse signals; zero means unknown.
type Request struct {
	RequestID          string
	Profile            *types.CandidateProfile
	Job                *types.JobProfile
	FileSizeBytes      int64
	PageCount          int
	RecentRequestCount int
	OnProgress         ProgressCallback
}

// Run executes the full pipeline. Invalid or rejected input returns an error
// with no result. Once generation starts, failures are reported inside the
// result: Success false with Error set means nothing usable was produced,
// while Success true with audit findings or NeedsUserConfirmation means a
// usable result with known issues.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*types.OrchestrationResult, error) {
	if req.Profile == nil {
		return nil, &MissingFieldError{Field: "profile"}
	}
	if req.Job == nil {
		return nil, &MissingFieldError{Field: "job"}
	}

	// Stage: input guards.
	start := time.Now()
	if o.Guard != nil {
		if err := o.Guard.Check(guard.Signals{
			FileSizeBytes:      req.FileSizeBytes,
			PageCount:          req.PageCount,
			RecentRequestCount: req.RecentRequestCount,
		}); err != nil {
			o.emit(req, "guard", start, observability.OutcomeRejected, err.Error())
			return nil, err
		}
	}
	o.emit(req, "guard", start, observability.OutcomeOK, "")

	result := &types.OrchestrationResult{}

	// Stage: baseline score over the source profile.
	start = time.Now()
	o.progress(req, "baseline_score", "scoring source profile")
	result.BaselineScore = scoring.Score(req.Profile, req.Job)
	o.emit(req, "baseline_score", start, observability.OutcomeOK, "")

	// Stage: per-bullet rewriting, cached by bullet text plus keyword set.
	start = time.Now()
	o.progress(req, "rewrite_bullets", "rewriting experience bullets")
	records, allCached := o.rewriteBullets(ctx, req)
	result.Bullets = records
	result.KeywordsUsed = collectKeywords(records)
	outcome := observability.OutcomeOK
	if allCached && len(records) > 0 {
		outcome = observability.OutcomeCached
	}
	for i := range records {
		if records[i].FallbackUsed {
			outcome = observability.OutcomeFallback
			break
		}
	}
	o.emit(req, "rewrite_bullets", start, outcome, "")

	// Stage: full composition.
	start = time.Now()
	o.progress(req, "compose", "composing resume")
	composed, composeCached, err := o.compose(ctx, req, records)
	if err != nil {
		o.emit(req, "compose", start, observability.OutcomeFailed, err.Error())
		result.Success = false
		result.Error = err.Error()
		result.RawCalls = o.records()
		return result, nil
	}
	result.FinalResume = composed
	composeOutcome := observability.OutcomeOK
	if composeCached {
		composeOutcome = observability.OutcomeCached
	}
	o.emit(req, "compose", start, composeOutcome, "")

	// Stage: render and re-score over the rendered document.
	start = time.Now()
	o.progress(req, "rescore", "scoring rendered resume")
	finalText := rendering.RenderMarkdown(composed)
	result.FinalText = finalText
	derived := rendering.DeriveProfile(finalText)
	result.FinalScore = scoring.Score(derived, req.Job)
	o.emit(req, "rescore", start, observability.OutcomeOK, "")

	// Stage: explain the score delta.
	start = time.Now()
	result.ScoreExplanation = scoring.ExplainDelta(ctx, o.client("explain"), result.BaselineScore, result.FinalScore)
	o.emit(req, "explain", start, observability.OutcomeOK, "")

	// Stage: terminal integrity audit.
	start = time.Now()
	o.progress(req, "audit", "auditing rendered resume")
	auditor := &audit.Auditor{Client: o.client("audit")}
	result.Audit = auditor.Audit(ctx, finalText, req.Job)
	auditOutcome := observability.OutcomeOK
	if !result.Audit.IntegrityPassed {
		auditOutcome = observability.OutcomeFailed
	}
	o.emit(req, "audit", start, auditOutcome, string(result.Audit.Severity))

	result.Success = true
	result.NeedsUserConfirmation = needsConfirmation(records, finalText)
	result.RawCalls = o.records()
	return result, nil
}

// rewriteBullets rewrites every experience bullet in order. Each bullet's
// validated record is cached keyed by the bullet text and the job's keyword
// set, so identical bullets across requests reuse the validated rewrite.
// Fallback records are request-scoped: a record that failed validation is
// never written to the shared store, so a later request retries generation
// instead of inheriting a possibly transient failure. The second return
// reports whether every record came from the cache.
func (o *Orchestrator) rewriteBullets(ctx context.Context, req Request) ([]types.BulletRewriteRecord, bool) {
	client := o.client("rewrite")
	embedder := o.embedder("rewrite")
	keywords := strings.Join(req.Job.Top10Keywords, "\n")

	var records []types.BulletRewriteRecord
	allCached := true
	for _, exp := range req.Profile.Experience {
		for _, bullet := range exp.Bullets {
			key := cache.Key("rewrite_bullet", bullet, keywords)
			payload, cached, err := cache.GetOrCompute(ctx, o.Cache, key, func() ([]byte, bool, error) {
				record := rewriting.RewriteBullet(ctx, client, embedder, bullet, req.Profile, req.Job)
				payload, err := json.Marshal(record)
				return payload, record.ValidationPassed, err
			})
			if err != nil {
				allCached = false
				records = append(records, types.BulletRewriteRecord{
					Original:     bullet,
					Rewritten:    bullet,
					FallbackUsed: true,
				})
				continue
			}
			var record types.BulletRewriteRecord
			if err := json.Unmarshal(payload, &record); err != nil {
				allCached = false
				records = append(records, types.BulletRewriteRecord{
					Original:     bullet,
					Rewritten:    bullet,
					FallbackUsed: true,
				})
				continue
			}
			if cached {
				o.progress(req, "rewrite_bullets", "reused cached rewrite")
			} else {
				allCached = false
			}
			records = append(records, record)
		}
	}
	return records, allCached
}

// compose runs the composition stage, cached by the profile content, the
// rewritten bullets, and the keyword set. The second return reports a cache
// hit. Failed compositions return an error and are never cached.
func (o *Orchestrator) compose(ctx context.Context, req Request, records []types.BulletRewriteRecord) (*types.ComposeResumeOutput, bool, error) {
	composer := &composing.Composer{Client: o.client("compose"), Debug: o.debug()}

	bullets := make([]*types.BulletRewriteRecord, len(records))
	for i := range records {
		bullets[i] = &records[i]
	}

	profileJSON, err := json.Marshal(req.Profile)
	if err != nil {
		return nil, false, err
	}
	var rewritten []string
	for _, b := range bullets {
		rewritten = append(rewritten, b.Rewritten)
	}
	key := cache.Key("compose_resume", string(profileJSON),
		strings.Join(rewritten, "\n"), strings.Join(req.Job.Top10Keywords, "\n"))

	payload, cached, err := cache.GetOrCompute(ctx, o.Cache, key, func() ([]byte, bool, error) {
		output, _, err := composer.Compose(ctx, req.RequestID, req.Profile, bullets, req.Job)
		if err != nil {
			return nil, false, err
		}
		payload, err := json.Marshal(output)
		return payload, true, err
	})
	if err != nil {
		return nil, false, err
	}

	var output types.ComposeResumeOutput
	if err := json.Unmarshal(payload, &output); err != nil {
		return nil, false, err
	}
	return &output, cached, nil
}

// needsConfirmation reports whether any rewrite asked for a user-supplied
// metric, or the placeholder survived into the rendered text.
func needsConfirmation(records []types.BulletRewriteRecord, finalText string) bool {
	for i := range records {
		if records[i].NeedsUserMetric {
			return true
		}
	}
	return strings.Contains(finalText, rewriting.MetricPlaceholder)
}

func collectKeywords(records []types.BulletRewriteRecord) []string {
	seen := make(map[string]bool)
	var keywords []string
	for i := range records {
		for _, kw := range records[i].KeywordsUsed {
			lower := strings.ToLower(kw)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func (o *Orchestrator) client(stage string) llm.Client {
	if o.Recorder == nil {
		return o.Client
	}
	return o.Recorder.WrapClient(o.Client, stage)
}

func (o *Orchestrator) embedder(stage string) llm.Embedder {
	if o.Embedder == nil {
		return nil
	}
	if o.Recorder == nil {
		return o.Embedder
	}
	return o.Recorder.WrapEmbedder(o.Embedder, stage)
}

func (o *Orchestrator) debug() debugstore.Store {
	if o.Debug == nil {
		return debugstore.NopStore{}
	}
	return o.Debug
}

func (o *Orchestrator) records() []types.GenerationRecord {
	if o.Recorder == nil {
		return nil
	}
	return o.Recorder.Records()
}

func (o *Orchestrator) emit(req Request, stage string, start time.Time, outcome observability.Outcome, detail string) {
	if o.Events == nil {
		return
	}
	o.Events.Emit(observability.StageEvent{
		RequestID: req.RequestID,
		Stage:     stage,
		Duration:  time.Since(start),
		Outcome:   outcome,
		Detail:    detail,
	})
}

func (o *Orchestrator) progress(req Request, stage, message string) {
	if req.OnProgress == nil {
		return
	}
	req.OnProgress(ProgressEvent{
		Stage:     stage,
		Message:   message,
		RequestID: req.RequestID,
	})
}
