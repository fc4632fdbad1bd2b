package extract

import (
	"strings"

	"github.com/veritide/compliance-cli/internal/model"
)

// NormalizeRisk classifies located risk text by case-insensitive keyword
// containment in rule order. Text matching no keyword passes through
// trimmed but unnormalized; empty text defaults to Unknown.
func NormalizeRisk(raw string, rules Rules) model.RiskLevel {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.RiskUnknown
	}
	lowered := strings.ToLower(trimmed)
	for _, rk := range rules.RiskKeywords {
		for _, term := range rk.Terms {
			if strings.Contains(lowered, term) {
				return rk.Level
			}
		}
	}
	return trimmed
}
