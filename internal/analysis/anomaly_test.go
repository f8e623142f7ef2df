package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldEmphasize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"missing keyword", "Bank name MISSING from header", true},
		{"invalid keyword", "Invalid date range detected", true},
		{"mismatch keyword", "Amount mismatch between fields", true},
		{"critical keyword", "Critical anomaly in balances", true},
		{"no keyword", "Unusual deposit pattern", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldEmphasize(tt.text))
		})
	}
}

func TestClassifyAnomalies(t *testing.T) {
	tags := ClassifyAnomalies([]string{
		"Balances INCONSISTENT with ledger",
		"Transaction shows amount mismatch",
	})
	assert.True(t, tags.BalancesInconsistent)
	assert.True(t, tags.AmountMismatch)
	assert.False(t, tags.InvalidDate)
	assert.False(t, tags.MissingCritical)

	tags = ClassifyAnomalies([]string{"Invalid date on row 3", "Missing critical fields: payee"})
	assert.False(t, tags.BalancesInconsistent)
	assert.True(t, tags.InvalidDate)
	assert.True(t, tags.MissingCritical)

	tags = ClassifyAnomalies(nil)
	assert.Equal(t, AnomalyTags{}, tags)
}

func TestClassifyAnomalies_PhraseMustBeContiguous(t *testing.T) {
	// The phrase must appear inside one anomaly, not across two.
	tags := ClassifyAnomalies([]string{"ledger balances", "inconsistent totals"})
	assert.False(t, tags.BalancesInconsistent)
}
