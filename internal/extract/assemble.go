package extract

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/locate"
	"github.com/veritide/compliance-cli/internal/model"
	"github.com/veritide/compliance-cli/internal/page"
)

// Section headings the assembler locates before handing region text to the
// parsers. A heading that is not visible on the page skips its parser
// entirely; that is expected on sparse customer pages.
const (
	TransactionsHeading   = "Recent Transactions"
	InvestigationsHeading = "Investigation History"
)

// Assembler composes locator and parser output into one customer record.
// It owns record construction exclusively: the record it returns is
// complete and is not mutated downstream.
type Assembler struct {
	labels Labels
	rules  Rules
}

// NewAssembler creates an Assembler with the given label sets and rules.
func NewAssembler(labels Labels, rules Rules) *Assembler {
	return &Assembler{labels: labels, rules: rules}
}

// Assemble builds a customer record from the current page. It fails only
// when the page context itself is unusable; individual fields that cannot
// be located degrade to empty values and a record with many empty fields is
// valid output.
func (a *Assembler) Assemble(pg page.Context) (*model.CustomerRecord, error) {
	if pg == nil || !pg.Active() {
		return nil, eris.Wrap(page.ErrNoSession, "extract: assemble")
	}

	loc := locate.New(pg)
	rec := &model.CustomerRecord{
		Personal: model.PersonalInfo{
			Name:        loc.Locate(a.labels.Name),
			DateOfBirth: loc.Locate(a.labels.DateOfBirth),
			Address:     loc.Locate(a.labels.Address),
			CustomerID:  loc.Locate(a.labels.CustomerID),
			Email:       loc.Locate(a.labels.Email),
			Phone:       loc.Locate(a.labels.Phone),
		},
		RiskLevel: NormalizeRisk(loc.Locate(a.labels.RiskLevel), a.rules),
	}

	if text, ok := pg.SectionText(TransactionsHeading); ok {
		rec.Transactions = ApplyFlagRules(ParseTransactions(text), a.rules)
	}
	if text, ok := pg.SectionText(InvestigationsHeading); ok {
		rec.Investigations = ParseInvestigations(text)
	}

	zap.L().Info("extract: record assembled",
		zap.String("customer", rec.Personal.Name),
		zap.String("risk_level", rec.RiskLevel),
		zap.Int("transactions", len(rec.Transactions)),
		zap.Int("investigations", len(rec.Investigations)),
	)

	return rec, nil
}
