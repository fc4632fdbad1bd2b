package extract

import (
	"strconv"
	"strings"

	"github.com/veritide/compliance-cli/internal/model"
)

// RiskKeyword maps a set of portal phrasings onto one canonical risk level.
type RiskKeyword struct {
	Level model.RiskLevel `yaml:"level" mapstructure:"level"`
	Terms []string        `yaml:"terms" mapstructure:"terms"`
}

// Rules holds the tunable classification thresholds and keyword lists the
// assembler applies to extracted data. Kept out of the parsing code so the
// parsers stay pure text -> entities functions.
type Rules struct {
	// FlagThreshold is the numeric amount above which a transaction is
	// flagged regardless of counterparty.
	FlagThreshold float64 `yaml:"flag_threshold" mapstructure:"flag_threshold"`
	// HighRiskKeywords flag a transaction when the counterparty contains
	// any of them, case-insensitively, regardless of amount.
	HighRiskKeywords []string `yaml:"high_risk_keywords" mapstructure:"high_risk_keywords"`
	// RiskKeywords are evaluated in order; the first level whose terms
	// match the located risk text wins.
	RiskKeywords []RiskKeyword `yaml:"risk_keywords" mapstructure:"risk_keywords"`
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		FlagThreshold:    10000,
		HighRiskKeywords: []string{"crypto", "offshore", "casino", "shell"},
		RiskKeywords: []RiskKeyword{
			{Level: model.RiskHigh, Terms: []string{"critical", "high"}},
			{Level: model.RiskMedium, Terms: []string{"moderate", "medium"}},
			{Level: model.RiskLow, Terms: []string{"minimal", "low"}},
		},
	}
}

// ApplyFlagRules derives the Flagged bit for each transaction: true when
// the counterparty contains a high-risk keyword or the numeric amount
// exceeds the threshold. Returns the same slice for chaining.
func ApplyFlagRules(txs []model.Transaction, rules Rules) []model.Transaction {
	for i := range txs {
		tx := &txs[i]
		counterparty := strings.ToLower(tx.Counterparty)
		for _, kw := range rules.HighRiskKeywords {
			if strings.Contains(counterparty, strings.ToLower(kw)) {
				tx.Flagged = true
				tx.FlagReason = "high-risk counterparty: " + kw
				break
			}
		}
		if !tx.Flagged && parseAmount(tx.Amount) > rules.FlagThreshold {
			tx.Flagged = true
			tx.FlagReason = "amount exceeds threshold"
		}
	}
	return txs
}

// parseAmount strips currency symbols and separators and parses the
// remainder. Unparseable amounts count as 0 so they can never trip the
// threshold on their own.
func parseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ',', ' ':
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
