package types

import "time"

// GenerationRecord captures provenance for one raw AI call.
type GenerationRecord struct {
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Stage     string    `json:"stage"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
	Failed    bool      `json:"failed,omitempty"`
}

// AttemptLog records one generate/validate attempt so that callers always see
// every attempt's failures, not just the last one.
type AttemptLog struct {
	Attempt int      `json:"attempt"`
	Raw     string   `json:"raw"`
	Errors  []string `json:"errors,omitempty"`
}

// BulletRewriteRecord is the validated outcome of rewriting one experience
// bullet. Immutable once validated; cached by a hash of the bullet text plus
// the job keyword set.
type BulletRewriteRecord struct {
	Original         string       `json:"original"`
	Rewritten        string       `json:"rewritten"`
	KeywordsUsed     []string     `json:"keywords_used"`
	NeedsUserMetric  bool         `json:"needs_user_metric"`
	ValidationPassed bool         `json:"validation_passed"`
	ValidationErrors []string     `json:"validation_errors,omitempty"`
	FallbackUsed     bool         `json:"fallback_used,omitempty"`
	Attempts         []AttemptLog `json:"attempts,omitempty"`
}
