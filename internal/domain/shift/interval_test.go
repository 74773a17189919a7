package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapHours_PlainWindow(t *testing.T) {
	// Query [9, 17) against evening window [18, 23): no overlap.
	assert.InDelta(t, 0, OverlapHours(9, 17, 18, 23), 1e-9)

	// Query [16, 20) against [18, 23): two hours inside the window.
	assert.InDelta(t, 2, OverlapHours(16, 20, 18, 23), 1e-9)

	// Query fully inside the window.
	assert.InDelta(t, 2, OverlapHours(19, 21, 18, 23), 1e-9)

	// Query containing the whole window.
	assert.InDelta(t, 5, OverlapHours(12, 24, 18, 23), 1e-9)
}

func TestOverlapHours_WrappingWindow(t *testing.T) {
	// The night window [23, 6) wraps past midnight.

	// Early-morning query hits only the post-midnight half.
	assert.InDelta(t, 2, OverlapHours(4, 8, 23, 6), 1e-9)

	// Late-evening query hits only the pre-midnight half.
	assert.InDelta(t, 0.5, OverlapHours(22, 23.5, 23, 6), 1e-9)

	// Query spanning midnight hits both halves.
	assert.InDelta(t, 3, OverlapHours(22, 26, 23, 6), 1e-9)
}

func TestOverlapHours_OvernightQuery(t *testing.T) {
	// A 22:00-02:00 shift is represented as [22, 26). The hours past 24
	// still count against windows expressed on the 0-24 clock.
	assert.InDelta(t, 1, OverlapHours(22, 26, 18, 23), 1e-9)

	// 20:00-05:00 shift against the night window: 23:00-05:00.
	assert.InDelta(t, 6, OverlapHours(20, 29, 23, 6), 1e-9)

	// 20:00-05:00 against the evening window: 20:00-23:00 only.
	assert.InDelta(t, 3, OverlapHours(20, 29, 18, 23), 1e-9)
}

func TestOverlapHours_ZeroLength(t *testing.T) {
	assert.InDelta(t, 0, OverlapHours(18, 18, 18, 23), 1e-9)
	assert.InDelta(t, 0, OverlapHours(23, 23, 23, 6), 1e-9)
}
