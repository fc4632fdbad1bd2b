package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerRecord_FlaggedTransactions(t *testing.T) {
	rec := &CustomerRecord{
		Transactions: []Transaction{
			{ID: 1, Counterparty: "Corner Bakery"},
			{ID: 2, Counterparty: "Wire Transfer", Flagged: true, FlagReason: "amount exceeds threshold"},
			{ID: 3, Counterparty: "CryptoVault Exchange", Flagged: true, FlagReason: "high-risk counterparty: crypto"},
		},
	}

	flagged := rec.FlaggedTransactions()
	assert.Len(t, flagged, 2)
	assert.Equal(t, 2, flagged[0].ID)
	assert.Equal(t, 3, flagged[1].ID)
}

func TestCustomerRecord_FlaggedTransactions_Empty(t *testing.T) {
	rec := &CustomerRecord{}
	assert.Empty(t, rec.FlaggedTransactions())
}

func TestCustomerRecord_OpenInvestigations(t *testing.T) {
	rec := &CustomerRecord{
		Investigations: []Investigation{
			{ID: "INV-2022-045", Status: "Closed"},
			{ID: "INV-2023-001", Status: "Open"},
			{ID: "INV-2023-012", Status: "Open"},
		},
	}
	assert.Equal(t, 2, rec.OpenInvestigations())
}

func TestCustomerRecord_OpenInvestigations_None(t *testing.T) {
	rec := &CustomerRecord{
		Investigations: []Investigation{{ID: "INV-2022-045", Status: "Closed"}},
	}
	assert.Equal(t, 0, rec.OpenInvestigations())
}
