package model

import "time"

// Report is the derived artifact persisted at the end of an investigation.
// It is produced either by the research collaborator (found path) or
// synthesized deterministically without any research call (not-found path).
type Report struct {
	CustomerName        string    `json:"customer_name"`
	GeneratedAt         time.Time `json:"generated_at"`
	RiskLevel           RiskLevel `json:"risk_level"`
	ExecutiveSummary    string    `json:"executive_summary"`
	KeyFindings         []string  `json:"key_findings"`
	TransactionAnalysis string    `json:"transaction_analysis"`
	RecommendedActions  []string  `json:"recommended_actions"`

	// Record is a snapshot of the source record the report was derived
	// from. Read-only downstream; backs the ledger export.
	Record *CustomerRecord `json:"record,omitempty"`
}
