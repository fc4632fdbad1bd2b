// Package report renders investigation reports into persisted documents.
package report

import (
	"fmt"
	"strings"

	"github.com/veritide/compliance-cli/internal/model"
)

// FormatMarkdown generates the human-readable report document.
func FormatMarkdown(rep *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Compliance Investigation Report: %s\n", rep.CustomerName)
	fmt.Fprintf(&b, "Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Risk Level: %s\n\n", rep.RiskLevel)

	b.WriteString("## Executive Summary\n")
	b.WriteString(rep.ExecutiveSummary)
	b.WriteString("\n\n")

	b.WriteString("## Key Findings\n")
	if len(rep.KeyFindings) == 0 {
		b.WriteString("None.\n")
	}
	for _, f := range rep.KeyFindings {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\n")

	if rep.TransactionAnalysis != "" {
		b.WriteString("## Transaction Analysis\n")
		b.WriteString(rep.TransactionAnalysis)
		b.WriteString("\n\n")
	}

	if rec := rep.Record; rec != nil && len(rec.Transactions) > 0 {
		b.WriteString("## Transaction Ledger\n")
		fmt.Fprintf(&b, "- Total: %d\n", len(rec.Transactions))
		fmt.Fprintf(&b, "- Flagged: %d\n", len(rec.FlaggedTransactions()))
		for _, tx := range rec.FlaggedTransactions() {
			fmt.Fprintf(&b, "  - #%d %s %s %s (%s)\n",
				tx.ID, tx.Date, tx.Amount, tx.Counterparty, tx.FlagReason)
		}
		b.WriteString("\n")
	}

	if rec := rep.Record; rec != nil && len(rec.Investigations) > 0 {
		b.WriteString("## Prior Investigations\n")
		for _, inv := range rec.Investigations {
			fmt.Fprintf(&b, "- %s (%s, %s): %s\n", inv.ID, inv.Date, inv.Status, inv.Summary)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommended Actions\n")
	for _, a := range rep.RecommendedActions {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	return b.String()
}
