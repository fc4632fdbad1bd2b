package claude

import (
	"fmt"
	"strings"

	"github.com/veritide/compliance-cli/internal/model"
)

const systemPrompt = `You are a compliance analyst. Given a customer record
retrieved from a banking portal, write a concise investigation report.
Respond with exactly these sections, each starting on its own line:

EXECUTIVE SUMMARY:
KEY FINDINGS:
TRANSACTION ANALYSIS:
RECOMMENDED ACTIONS:

KEY FINDINGS and RECOMMENDED ACTIONS are dash-prefixed bullet lists.`

// buildPrompt renders the record as the user message. The record text is
// the model's only source; nothing else about the customer is sent.
func buildPrompt(rec *model.CustomerRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Customer: %s\n", rec.Personal.Name)
	fmt.Fprintf(&b, "Date of birth: %s\n", orUnknown(rec.Personal.DateOfBirth))
	fmt.Fprintf(&b, "Address: %s\n", orUnknown(rec.Personal.Address))
	if rec.Personal.CustomerID != "" {
		fmt.Fprintf(&b, "Customer ID: %s\n", rec.Personal.CustomerID)
	}
	fmt.Fprintf(&b, "Portal risk level: %s\n\n", rec.RiskLevel)

	fmt.Fprintf(&b, "Transactions (%d):\n", len(rec.Transactions))
	for _, tx := range rec.Transactions {
		flag := ""
		if tx.Flagged {
			flag = fmt.Sprintf(" [FLAGGED: %s]", tx.FlagReason)
		}
		fmt.Fprintf(&b, "- %s %s %s (%s)%s\n", tx.Date, tx.Amount, tx.Counterparty, tx.Type, flag)
	}

	fmt.Fprintf(&b, "\nPrior investigations (%d):\n", len(rec.Investigations))
	for _, inv := range rec.Investigations {
		fmt.Fprintf(&b, "- %s %s %s: %s\n", inv.ID, inv.Date, inv.Status, inv.Summary)
	}

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// parseReport splits the model's sectioned response back into report
// fields. Unrecognized leading text is folded into the executive summary.
func parseReport(text string) *model.Report {
	report := &model.Report{}

	section := "EXECUTIVE SUMMARY"
	var summary, analysis []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "EXECUTIVE SUMMARY"):
			section = "EXECUTIVE SUMMARY"
			continue
		case strings.HasPrefix(trimmed, "KEY FINDINGS"):
			section = "KEY FINDINGS"
			continue
		case strings.HasPrefix(trimmed, "TRANSACTION ANALYSIS"):
			section = "TRANSACTION ANALYSIS"
			continue
		case strings.HasPrefix(trimmed, "RECOMMENDED ACTIONS"):
			section = "RECOMMENDED ACTIONS"
			continue
		}
		if trimmed == "" {
			continue
		}
		switch section {
		case "EXECUTIVE SUMMARY":
			summary = append(summary, trimmed)
		case "KEY FINDINGS":
			report.KeyFindings = append(report.KeyFindings, strings.TrimPrefix(trimmed, "- "))
		case "TRANSACTION ANALYSIS":
			analysis = append(analysis, trimmed)
		case "RECOMMENDED ACTIONS":
			report.RecommendedActions = append(report.RecommendedActions, strings.TrimPrefix(trimmed, "- "))
		}
	}

	report.ExecutiveSummary = strings.Join(summary, " ")
	report.TransactionAnalysis = strings.Join(analysis, " ")
	return report
}
