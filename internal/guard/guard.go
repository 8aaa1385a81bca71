// Package guard rejects abusive or oversized generation requests before any
// AI call is made: file size, page count, and per-caller request rate.
package guard

import "fmt"

// Default limits applied when a Limits field is zero.
const (
	DefaultMaxFileSizeBytes = int64(5 << 20) // 5 MiB
	DefaultMaxPages         = 10
	DefaultMaxRecentRequest = 20
)

// Limits configures the input-rejection thresholds. Zero values select the
// defaults; negative values disable the corresponding check.
type Limits struct {
	MaxFileSizeBytes  int64
	MaxPages          int
	MaxRecentRequests int
}

// RejectionError reports an input rejected before generation.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("request rejected: %s", e.Reason)
}

// Signals carries the caller-supplied abuse/rate inputs. All are optional:
// a zero or negative value means the signal was not supplied and its check
// is skipped.
type Signals struct {
	FileSizeBytes      int64
	PageCount          int
	RecentRequestCount int
}

// Guard applies the configured limits to request signals.
type Guard struct {
	limits Limits
}

// New creates a Guard, filling zero-valued limits with defaults.
func New(limits Limits) *Guard {
	if limits.MaxFileSizeBytes == 0 {
		limits.MaxFileSizeBytes = DefaultMaxFileSizeBytes
	}
	if limits.MaxPages == 0 {
		limits.MaxPages = DefaultMaxPages
	}
	if limits.MaxRecentRequests == 0 {
		limits.MaxRecentRequests = DefaultMaxRecentRequest
	}
	return &Guard{limits: limits}
}

// Check validates the request signals against the limits. The first violated
// limit is returned as a RejectionError; nil means the request may proceed.
func (g *Guard) Check(signals Signals) error {
	if g.limits.MaxFileSizeBytes > 0 && signals.FileSizeBytes > 0 && signals.FileSizeBytes > g.limits.MaxFileSizeBytes {
		return &RejectionError{Reason: fmt.Sprintf(
			"file size %d bytes exceeds limit of %d bytes", signals.FileSizeBytes, g.limits.MaxFileSizeBytes)}
	}
	if g.limits.MaxPages > 0 && signals.PageCount > 0 && signals.PageCount > g.limits.MaxPages {
		return &RejectionError{Reason: fmt.Sprintf(
			"page count %d exceeds limit of %d pages", signals.PageCount, g.limits.MaxPages)}
	}
	if g.limits.MaxRecentRequests > 0 && signals.RecentRequestCount > 0 && signals.RecentRequestCount > g.limits.MaxRecentRequests {
		return &RejectionError{Reason: fmt.Sprintf(
			"recent request count %d exceeds limit of %d", signals.RecentRequestCount, g.limits.MaxRecentRequests)}
	}
	return nil
}
