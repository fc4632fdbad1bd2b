package model

// RiskLevel classifies a customer's assessed risk. Values are either one of
// the canonical levels below or raw portal text passed through unnormalized
// when no known keyword is recognized.
type RiskLevel = string

const (
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskUnknown RiskLevel = "Unknown"
)

// PersonalInfo holds the scalar identity fields scraped from the customer
// detail page. Address may be empty meaning "unknown"; it is never omitted.
type PersonalInfo struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	CustomerID  string `json:"customer_id,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Transaction is a single ledger entry reconstructed from the transactions
// region. ID is a synthetic 1-based sequence unique within one record, in
// extraction order (not necessarily chronological).
type Transaction struct {
	ID           int    `json:"id"`
	Date         string `json:"date"`
	Amount       string `json:"amount"`
	Counterparty string `json:"counterparty"`
	Type         string `json:"type"`
	Flagged      bool   `json:"flagged"`
	FlagReason   string `json:"flag_reason,omitempty"`
}

// Investigation is a prior compliance case reconstructed from the
// investigation-history region.
type Investigation struct {
	ID           string `json:"id"` // INV-YYYY-NNN, verbatim
	Date         string `json:"date"`
	Status       string `json:"status"` // Open or Closed
	Summary      string `json:"summary"`
	Investigator string `json:"investigator"`
}

// CustomerRecord is the unit of work: one customer's scraped state,
// assembled fresh per investigation and immutable once handed downstream.
// It is never persisted directly; only derived reports are.
type CustomerRecord struct {
	Personal       PersonalInfo    `json:"personal"`
	RiskLevel      RiskLevel       `json:"risk_level"`
	Transactions   []Transaction   `json:"transactions"`
	Investigations []Investigation `json:"investigations"`
}

// FlaggedTransactions returns the subset of transactions marked as flagged.
func (r *CustomerRecord) FlaggedTransactions() []Transaction {
	var out []Transaction
	for _, tx := range r.Transactions {
		if tx.Flagged {
			out = append(out, tx)
		}
	}
	return out
}

// OpenInvestigations counts prior investigations still open.
func (r *CustomerRecord) OpenInvestigations() int {
	n := 0
	for _, inv := range r.Investigations {
		if inv.Status == "Open" {
			n++
		}
	}
	return n
}
