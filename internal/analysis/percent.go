package analysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToPercent maps an ambiguous raw score to the 0-100 scale. The upstream
// models emit the same quantity as a fraction (0.83) or an already-scaled
// percentage (83) depending on the pipeline; values at or below 1 are read as
// fractions and scaled by 100. Nil and non-numeric input map to 0, and the
// result is clamped to [0, 100] in both directions.
func ToPercent(v any) float64 {
	n, ok := toFloat(v)
	if !ok {
		return 0
	}
	if n <= 1 {
		n *= 100
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case Value:
		return t.Float()
	case *Value:
		if t == nil {
			return 0, false
		}
		return t.Float()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
