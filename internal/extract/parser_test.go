package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactions_FlattenedLedger(t *testing.T) {
	text := "2023-11-01Amazon MarketplacePurchase$156.78" +
		"2023-11-05Wire TransferTransfer$15,000.00" +
		"2023-11-08CryptoVault ExchangeTransfer$3,200.00"

	txs := ParseTransactions(text)
	require.Len(t, txs, 3)

	assert.Equal(t, 1, txs[0].ID)
	assert.Equal(t, "2023-11-01", txs[0].Date)
	assert.Equal(t, "Amazon Marketplace", txs[0].Counterparty)
	assert.Equal(t, "Purchase", txs[0].Type)
	assert.Equal(t, "$156.78", txs[0].Amount)

	assert.Equal(t, 2, txs[1].ID)
	assert.Equal(t, "Wire Transfer", txs[1].Counterparty)
	assert.Equal(t, "Transfer", txs[1].Type)
	assert.Equal(t, "$15,000.00", txs[1].Amount)

	assert.Equal(t, 3, txs[2].ID)
	assert.Equal(t, "CryptoVault Exchange", txs[2].Counterparty)
}

func TestParseTransactions_SequentialIDs(t *testing.T) {
	text := "2023-01-01AaBb$1.002023-01-02CcDd$2.002023-01-03EeFf$3.00"

	txs := ParseTransactions(text)
	require.Len(t, txs, 3)
	for i, tx := range txs {
		assert.Equal(t, i+1, tx.ID)
	}
}

func TestParseTransactions_TruncatedRowDropped(t *testing.T) {
	// The final row lost its amount; it must not be emitted partially.
	text := "2023-11-01Amazon MarketplacePurchase$156.782023-11-02Grocery Store"

	txs := ParseTransactions(text)
	require.Len(t, txs, 1)
	assert.Equal(t, "Amazon Marketplace", txs[0].Counterparty)
}

func TestParseTransactions_EmptyAndGarbage(t *testing.T) {
	assert.Nil(t, ParseTransactions(""))
	assert.Nil(t, ParseTransactions("no ledger rows here, just prose"))
}

func TestParseTransactions_EuroAmount(t *testing.T) {
	txs := ParseTransactions("2023-11-01Hotel BookingTravel€1,200.50")
	require.Len(t, txs, 1)
	assert.Equal(t, "€1,200.50", txs[0].Amount)
	assert.Equal(t, "Hotel Booking", txs[0].Counterparty)
	assert.Equal(t, "Travel", txs[0].Type)
}

func TestSplitMerchant(t *testing.T) {
	tests := []struct {
		name     string
		run      string
		merchant string
		category string
	}{
		{"simple split", "Amazon MarketplacePurchase", "Amazon Marketplace", "Purchase"},
		{"repeated word", "Wire TransferTransfer", "Wire Transfer", "Transfer"},
		{"no transition", "ACME CORP", "ACME CORP", "Transfer"},
		{"all lowercase", "corner shop", "corner shop", "Transfer"},
		{"single token", "Payment", "Payment", "Transfer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merchant, category := splitMerchant(tt.run)
			assert.Equal(t, tt.merchant, merchant)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestParseInvestigations_SingleEntry(t *testing.T) {
	text := "Unusual transaction volumeINV-2023-0012023-11-15closed"

	invs := ParseInvestigations(text)
	require.Len(t, invs, 1)
	assert.Equal(t, "INV-2023-001", invs[0].ID)
	assert.Equal(t, "2023-11-15", invs[0].Date)
	assert.Equal(t, "Closed", invs[0].Status)
	assert.Equal(t, "Unusual transaction volume", invs[0].Summary)
	assert.Equal(t, DefaultInvestigator, invs[0].Investigator)
}

func TestParseInvestigations_BoilerplateStripped(t *testing.T) {
	text := "Investigation HistoryUnusual transaction volumeINV-2023-0012023-11-15OPEN"

	invs := ParseInvestigations(text)
	require.Len(t, invs, 1)
	assert.Equal(t, "Unusual transaction volume", invs[0].Summary)
	assert.Equal(t, "Open", invs[0].Status)
}

func TestParseInvestigations_MultipleEntries(t *testing.T) {
	text := "Structuring concernsINV-2022-0452022-06-01closed" +
		"Sanctions screening hitINV-2023-0122023-09-20open"

	invs := ParseInvestigations(text)
	require.Len(t, invs, 2)
	assert.Equal(t, "INV-2022-045", invs[0].ID)
	assert.Equal(t, "Closed", invs[0].Status)
	assert.Equal(t, "Structuring concerns", invs[0].Summary)
	assert.Equal(t, "INV-2023-012", invs[1].ID)
	assert.Equal(t, "Open", invs[1].Status)
	assert.Equal(t, "Sanctions screening hit", invs[1].Summary)
}

func TestParseInvestigations_GenericSummaryWhenEmpty(t *testing.T) {
	// Nothing precedes the first match, so summary derivation has no text
	// to work with.
	invs := ParseInvestigations("INV-2023-0012023-11-15open")
	require.Len(t, invs, 1)
	assert.Equal(t, genericSummary, invs[0].Summary)
}

func TestParseInvestigations_NoMatches(t *testing.T) {
	assert.Nil(t, ParseInvestigations(""))
	assert.Nil(t, ParseInvestigations("no cases on file"))
	// Wrong id shape must not match.
	assert.Nil(t, ParseInvestigations("INV-23-0012023-11-15open"))
}

func TestLastCaseFragment(t *testing.T) {
	assert.Equal(t, "Unusual volume", lastCaseFragment("Case DetailsUnusual volume"))
	assert.Equal(t, "plain text", lastCaseFragment("plain text"))
	assert.Equal(t, "", lastCaseFragment(""))
}
