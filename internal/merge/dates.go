package merge

import (
	"strings"
	"time"
)

// Sentinels for open-ended date ranges. An empty or "present" end date is
// treated as far-future; a missing start date as far-past.
var (
	farPast   = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// parseStart parses a range start date, defaulting to the far-past sentinel.
func parseStart(s string) time.Time {
	if t, ok := parseDate(s); ok {
		return t
	}
	return farPast
}

// parseEnd parses a range end date, defaulting to the far-future sentinel so
// that "present" positions overlap everything after their start.
func parseEnd(s string) time.Time {
	if t, ok := parseDate(s); ok {
		return t
	}
	return farFuture
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "present", "current", "now":
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01", "2006", "Jan 2006", "January 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] intersect.
func rangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, ae := parseStart(aStart), parseEnd(aEnd)
	bs, be := parseStart(bStart), parseEnd(bEnd)
	return !as.After(be) && !bs.After(ae)
}
