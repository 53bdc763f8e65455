package player

import (
	"math"

	"whisper-sync/internal/app/model"
)

// activeIndex returns the unique i with segs[i].Start <= t and
// (i is last or t < segs[i+1].Start), or -1 when t precedes the first segment.
// segs must be sorted by Start. The scan starts at hint when that segment has
// already begun, so forward playback costs O(1) amortized.
func activeIndex(segs []model.Segment, t float64, hint int) int {
	n := len(segs)
	if n == 0 || math.IsNaN(t) || t < segs[0].Start {
		return -1
	}
	start := 0
	if hint > 0 && hint < n && segs[hint].Start <= t {
		start = hint
	}
	for i := start; i < n; i++ {
		if i == n-1 || t < segs[i+1].Start {
			return i
		}
	}
	return -1
}
