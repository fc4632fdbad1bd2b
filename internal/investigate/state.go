// Package investigate owns the decision of whether the research phase runs
// at all, and the sequential pipeline around one investigation.
package investigate

import (
	"fmt"
	"time"

	"github.com/veritide/compliance-cli/internal/model"
)

// State is the investigation search outcome. Found and NotFound are both
// terminal for this core; what happens after Found belongs to the research
// collaborator.
type State string

const (
	StateSearching State = "SEARCHING"
	StateFound     State = "FOUND"
	StateNotFound  State = "NOT_FOUND"
)

// Outcome is the state machine's decision for one investigation.
type Outcome struct {
	State  State
	Record *model.CustomerRecord
	Reason string // set on NOT_FOUND
}

// Decide resolves SEARCHING into a terminal state. The search must have
// succeeded and the assembled record must carry a non-empty name; anything
// less is NOT_FOUND. A record with empty fields beyond the name is still
// FOUND; sparse data is valid output, not a failure.
func Decide(found bool, rec *model.CustomerRecord, reason string) Outcome {
	if found && rec != nil && rec.Personal.Name != "" {
		return Outcome{State: StateFound, Record: rec}
	}
	if reason == "" {
		reason = "customer not found"
	}
	return Outcome{State: StateNotFound, Reason: reason}
}

// notFoundActions is the fixed remediation guidance attached to every
// terminal not-found report.
var notFoundActions = []string{
	"Verify the customer name and spelling with the requesting party",
	"Confirm the customer is registered in this portal deployment",
	"Escalate to manual review if the record is expected to exist",
}

// TerminalReport synthesizes the not-found report deterministically,
// without invoking the research collaborator. Skipping research here is a
// deliberate cost and latency optimization: there is nothing to research.
func TerminalReport(customerName, reason string) *model.Report {
	return &model.Report{
		CustomerName: customerName,
		GeneratedAt:  time.Now(),
		RiskLevel:    model.RiskUnknown,
		ExecutiveSummary: fmt.Sprintf(
			"No customer record was retrieved for %s. %s No research phase was run.",
			customerName, reason,
		),
		KeyFindings:        []string{"Customer record not found in the portal"},
		RecommendedActions: notFoundActions,
		Record: &model.CustomerRecord{
			Personal: model.PersonalInfo{
				Name:        "N/A",
				DateOfBirth: "N/A",
				Address:     "N/A",
				CustomerID:  "N/A",
				Email:       "N/A",
				Phone:       "N/A",
			},
			RiskLevel: model.RiskUnknown,
		},
	}
}
