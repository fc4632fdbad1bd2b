package investigate

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/extract"
	"github.com/veritide/compliance-cli/internal/model"
	"github.com/veritide/compliance-cli/internal/page"
	"github.com/veritide/compliance-cli/internal/report"
	"github.com/veritide/compliance-cli/internal/store"
	"github.com/veritide/compliance-cli/pkg/claude"
)

// Runner executes one investigation end to end: login, customer search,
// record assembly, the found/not-found decision, and either the research
// phase or the terminal report. Strictly sequential; the session is owned
// exclusively for the duration of the run.
type Runner struct {
	session    page.Session
	assembler  *extract.Assembler
	researcher claude.Researcher
	store      store.Store // optional; nil skips persistence
}

// NewRunner creates a Runner. Pass a nil store to skip persistence.
func NewRunner(session page.Session, assembler *extract.Assembler, researcher claude.Researcher, st store.Store) *Runner {
	return &Runner{
		session:    session,
		assembler:  assembler,
		researcher: researcher,
		store:      st,
	}
}

// Run investigates one customer and returns the final report. Login and
// navigation failures are fatal; extraction-level gaps degrade to empty
// record fields and never abort the run.
func (r *Runner) Run(ctx context.Context, customerName string) (*model.Report, error) {
	log := zap.L().With(zap.String("customer", customerName))
	log.Info("investigate: starting")

	var runID string
	if r.store != nil {
		run, err := r.store.CreateInvestigation(ctx, customerName)
		if err != nil {
			log.Warn("investigate: failed to create run record", zap.Error(err))
		} else {
			runID = run.ID
		}
	}
	setStatus := func(status model.RunStatus, runErr string) {
		if r.store == nil || runID == "" {
			return
		}
		if err := r.store.UpdateStatus(ctx, runID, status, runErr); err != nil {
			log.Warn("investigate: failed to update status", zap.Error(err))
		}
	}

	if err := r.session.Login(ctx); err != nil {
		setStatus(model.RunStatusFailed, err.Error())
		return nil, eris.Wrap(err, "investigate: login")
	}
	setStatus(model.RunStatusSearching, "")

	found, err := r.session.SearchCustomer(ctx, customerName)
	if err != nil {
		setStatus(model.RunStatusFailed, err.Error())
		return nil, eris.Wrap(err, "investigate: customer search")
	}

	var rec *model.CustomerRecord
	reason := "The portal search returned no matching customer."
	if found {
		rec, err = r.assembler.Assemble(r.session.Context())
		if err != nil {
			setStatus(model.RunStatusFailed, err.Error())
			return nil, eris.Wrap(err, "investigate: assemble record")
		}
		if rec.Personal.Name == "" {
			reason = "A record page was reached but no customer name could be extracted."
		}
	}

	outcome := Decide(found, rec, reason)

	var rep *model.Report
	switch outcome.State {
	case StateFound:
		log.Info("investigate: customer found, running research",
			zap.Int("transactions", len(outcome.Record.Transactions)),
			zap.Int("investigations", len(outcome.Record.Investigations)),
		)
		rep, err = r.researcher.Research(ctx, outcome.Record)
		if err != nil {
			setStatus(model.RunStatusFailed, err.Error())
			return nil, eris.Wrap(err, "investigate: research")
		}
		if rep.Record == nil {
			rep.Record = outcome.Record
		}
		setStatus(model.RunStatusFound, "")
	default:
		log.Info("investigate: customer not found, skipping research",
			zap.String("reason", outcome.Reason),
		)
		rep = TerminalReport(customerName, outcome.Reason)
		setStatus(model.RunStatusNotFound, "")
	}

	if r.store != nil && runID != "" {
		doc := report.FormatMarkdown(rep)
		if err := r.store.SaveReport(ctx, runID, rep, doc); err != nil {
			log.Warn("investigate: failed to persist report", zap.Error(err))
		}
	}

	return rep, nil
}
