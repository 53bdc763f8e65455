package player

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as m:ss. Fractions are floored, never rounded.
// Negative, NaN and infinite inputs render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
