package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPercent(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"nil", nil, 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"non-numeric string", "high", 0},
		{"empty string", "", 0},
		{"fraction", 0.42, 42},
		{"fraction string", "0.42", 42},
		{"fraction upper bound", 1.0, 100},
		{"already percent", 42.0, 42},
		{"percent string", "83", 83},
		{"just above one", 1.5, 1.5},
		{"above hundred", 150.0, 100},
		{"negative fraction", -0.5, 0},
		{"negative percent", -20.0, 0},
		{"zero", 0.0, 0},
		{"int input", 83, 83},
		{"value fraction", Value("0.83"), 83},
		{"value percent", Value("83"), 83},
		{"nil value pointer", (*Value)(nil), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToPercent(tt.value), 1e-9)
		})
	}
}

func TestToPercent_FractionRange(t *testing.T) {
	// Every value in [0,1] is read as a fraction and scaled by 100.
	for _, x := range []float64{0, 0.01, 0.25, 0.5, 0.75, 0.99, 1} {
		assert.InDelta(t, x*100, ToPercent(x), 1e-9, "x=%v", x)
	}
	// Values in (1,100] pass through unchanged.
	for _, x := range []float64{1.01, 2, 50, 99.9, 100} {
		assert.InDelta(t, x, ToPercent(x), 1e-9, "x=%v", x)
	}
}
