package analysis

import "strings"

// emphasisKeywords mark anomaly text that warrants visual emphasis.
var emphasisKeywords = []string{"missing", "invalid", "mismatch", "critical"}

// ShouldEmphasize reports whether anomaly text contains any emphasis keyword,
// case-insensitively.
func ShouldEmphasize(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range emphasisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AnomalyTags are the factor-relevant phrases detected in anomaly text.
type AnomalyTags struct {
	BalancesInconsistent bool
	AmountMismatch       bool
	InvalidDate          bool
	MissingCritical      bool
}

// ClassifyAnomalies scans the joined anomaly text once for the phrases the
// factor rules react to. This is a best-effort lexical match over free text;
// the upstream producer does not emit typed anomaly codes.
func ClassifyAnomalies(anomalies []string) AnomalyTags {
	joined := strings.ToLower(strings.Join(anomalies, " | "))
	return AnomalyTags{
		BalancesInconsistent: strings.Contains(joined, "balances inconsistent"),
		AmountMismatch:       strings.Contains(joined, "amount mismatch"),
		InvalidDate:          strings.Contains(joined, "invalid date"),
		MissingCritical:      strings.Contains(joined, "missing critical fields"),
	}
}
