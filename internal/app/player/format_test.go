package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{0.99, "0:00"},
		{9.5, "0:09"},
		{59.999, "0:59"},
		{60, "1:00"},
		{65, "1:05"},
		{3599, "59:59"},
		{3600, "60:00"},
		{-3, "0:00"},
		{math.NaN(), "0:00"},
		{math.Inf(1), "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.seconds), "FormatTime(%v)", tt.seconds)
	}
}
