package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_AllowsWithinLimits(t *testing.T) {
	g := New(Limits{})
	assert.NoError(t, g.Check(Signals{FileSizeBytes: 1 << 20, PageCount: 2, RecentRequestCount: 3}))
}

func TestCheck_MissingSignalsSkipChecks(t *testing.T) {
	g := New(Limits{})
	assert.NoError(t, g.Check(Signals{}))
}

func TestCheck_RejectsOversizedFile(t *testing.T) {
	g := New(Limits{MaxFileSizeBytes: 1000})
	err := g.Check(Signals{FileSizeBytes: 1001})
	require.Error(t, err)

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Reason, "file size")
}

func TestCheck_RejectsTooManyPages(t *testing.T) {
	g := New(Limits{MaxPages: 5})
	err := g.Check(Signals{PageCount: 6})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page count")
}

func TestCheck_RejectsRequestFlood(t *testing.T) {
	g := New(Limits{MaxRecentRequests: 10})
	err := g.Check(Signals{RecentRequestCount: 11})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent request count")
}

func TestCheck_NegativeLimitDisablesCheck(t *testing.T) {
	g := New(Limits{MaxPages: -1})
	assert.NoError(t, g.Check(Signals{PageCount: 1000}))
}

func TestLimiter_AllowsBurstThenBlocks(t *testing.T) {
	l := NewLimiter(3, time.Hour)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("caller"), "request %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("caller"))
}

func TestLimiter_CallersAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Hour)
	defer l.Stop()

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}
