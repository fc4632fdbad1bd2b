package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veritide/compliance-cli/internal/model"
)

func TestNormalizeRisk(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		raw  string
		want model.RiskLevel
	}{
		{"plain high", "High", model.RiskHigh},
		{"plain low", "low", model.RiskLow},
		{"critical maps to high", "CRITICAL", model.RiskHigh},
		{"moderate maps to medium", "moderate", model.RiskMedium},
		{"minimal maps to low", "Minimal exposure", model.RiskLow},
		{"embedded in page noise", "Current Levelmedium RiskLast assessment: 2023-10-01", model.RiskMedium},
		{"unknown text passes through", "N/A", "N/A"},
		{"unrecognized passes through trimmed", "  Elevated  ", "Elevated"},
		{"empty defaults to unknown", "", model.RiskUnknown},
		{"whitespace only defaults to unknown", "   ", model.RiskUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRisk(tt.raw, rules))
		})
	}
}

func TestNormalizeRisk_RuleOrderWins(t *testing.T) {
	// "high" appears inside text that also matches a later rule; the first
	// matching rule decides.
	got := NormalizeRisk("high but trending low", DefaultRules())
	assert.Equal(t, model.RiskHigh, got)
}
