// Package extract reconstructs structured customer records from the
// flattened, concatenation-mangled text of rendered portal pages.
//
// The parsers are pure functions from region text to entity slices: no page
// access, no hidden state. They report only what matches the expected
// positional patterns; unmatched residue is discarded and a truncated record
// at the end of a blob is dropped rather than partially emitted.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/veritide/compliance-cli/internal/model"
)

// DefaultInvestigator is recorded on history entries; the portal never
// renders the assigned investigator separately.
const DefaultInvestigator = "Compliance Team"

// genericSummary substitutes for investigation summaries that are empty
// after boilerplate stripping.
const genericSummary = "Prior compliance review"

// defaultCategory is assigned when the merchant/category split yields no
// meaningful trailing token.
const defaultCategory = "Transfer"

// transactionPattern matches one ledger row flattened into the region text:
// an ISO date, a bounded non-currency non-digit run (so it cannot consume
// into the next row's date), and a currency amount.
var transactionPattern = regexp.MustCompile(
	`(\d{4}-\d{2}-\d{2})([^$€£0-9]+?)([$€£]\s?\d[\d,]*(?:\.\d{1,2})?)`,
)

// investigationPattern matches one history row: case id, ISO date, status.
var investigationPattern = regexp.MustCompile(
	`(INV-\d{4}-\d{3})(\d{4}-\d{2}-\d{2})((?i:open|closed))`,
)

// boilerplate lists portal chrome phrases stripped from derived summaries.
var boilerplate = []string{
	"Investigation History",
	"View Details",
	"Case Details",
	"Show More",
	"Status",
}

var statusCaser = cases.Title(language.English)

// ParseTransactions extracts the transaction ledger from the flattened text
// of the transactions region. Rows are emitted left to right with sequential
// 1-based IDs. Unparseable content yields fewer rows, never an error.
func ParseTransactions(containerText string) []model.Transaction {
	matches := transactionPattern.FindAllStringSubmatch(containerText, -1)
	if len(matches) == 0 {
		return nil
	}
	txs := make([]model.Transaction, 0, len(matches))
	for i, m := range matches {
		merchant, category := splitMerchant(strings.TrimSpace(m[2]))
		txs = append(txs, model.Transaction{
			ID:           i + 1,
			Date:         m[1],
			Amount:       strings.TrimSpace(m[3]),
			Counterparty: merchant,
			Type:         category,
		})
	}
	return txs
}

// splitMerchant splits a concatenated middle run at its last lowercase to
// uppercase transition: the prefix is the merchant, the trailing token the
// category. Runs with no usable transition keep the whole text as merchant
// and fall back to the default category.
func splitMerchant(run string) (merchant, category string) {
	runes := []rune(run)
	boundary := -1
	for i := 0; i < len(runes)-1; i++ {
		if unicode.IsLower(runes[i]) && unicode.IsUpper(runes[i+1]) {
			boundary = i + 1
		}
	}
	if boundary <= 0 {
		return run, defaultCategory
	}
	merchant = strings.TrimSpace(string(runes[:boundary]))
	category = strings.TrimSpace(string(runes[boundary:]))
	if len(category) < 2 || merchant == "" {
		return run, defaultCategory
	}
	return merchant, category
}

// ParseInvestigations extracts prior investigations from the flattened text
// of the history region. The summary is recovered from the text immediately
// preceding each match: original whitespace is lost to concatenation, so the
// preceding run is split at letter-case transitions and the final fragment
// is kept, minus known boilerplate. Best-effort only; an empty result gets
// a generic label.
func ParseInvestigations(containerText string) []model.Investigation {
	idx := investigationPattern.FindAllStringSubmatchIndex(containerText, -1)
	if len(idx) == 0 {
		return nil
	}
	invs := make([]model.Investigation, 0, len(idx))
	prevEnd := 0
	for _, m := range idx {
		start, end := m[0], m[1]
		invs = append(invs, model.Investigation{
			ID:           containerText[m[2]:m[3]],
			Date:         containerText[m[4]:m[5]],
			Status:       statusCaser.String(strings.ToLower(containerText[m[6]:m[7]])),
			Summary:      deriveSummary(containerText[prevEnd:start]),
			Investigator: DefaultInvestigator,
		})
		prevEnd = end
	}
	return invs
}

// deriveSummary takes the final case-transition fragment of the preceding
// text and strips boilerplate from it.
func deriveSummary(preceding string) string {
	fragment := lastCaseFragment(preceding)
	for _, phrase := range boilerplate {
		fragment = strings.ReplaceAll(fragment, phrase, "")
	}
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return genericSummary
	}
	return fragment
}

// lastCaseFragment returns the substring after the last lowercase to
// uppercase transition, or the whole string when there is none.
func lastCaseFragment(s string) string {
	runes := []rune(s)
	boundary := 0
	for i := 0; i < len(runes)-1; i++ {
		if unicode.IsLower(runes[i]) && unicode.IsUpper(runes[i+1]) {
			boundary = i + 1
		}
	}
	return strings.TrimSpace(string(runes[boundary:]))
}
