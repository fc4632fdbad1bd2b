package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/veritide/compliance-cli/internal/extract"
	"github.com/veritide/compliance-cli/internal/investigate"
	"github.com/veritide/compliance-cli/internal/page"
	"github.com/veritide/compliance-cli/internal/store"
	"github.com/veritide/compliance-cli/pkg/claude"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "compliance.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newSession() (*page.PlaywrightSession, error) {
	return page.NewSession(page.Options{
		BaseURL:     cfg.Portal.BaseURL,
		Username:    cfg.Portal.Username,
		Password:    cfg.Portal.Password,
		Headless:    cfg.Browser.Headless,
		SlowMo:      time.Duration(cfg.Browser.SlowMoMs) * time.Millisecond,
		NavTimeout:  time.Duration(cfg.Browser.NavTimeoutSecs) * time.Second,
		NavInterval: time.Duration(cfg.Browser.NavIntervalSecs) * time.Second,
	})
}

func newAssembler() (*extract.Assembler, error) {
	labels, err := cfg.LoadLabels()
	if err != nil {
		return nil, err
	}
	return extract.NewAssembler(labels, cfg.Rules), nil
}

func newResearcher() claude.Researcher {
	return claude.NewClient(cfg.Anthropic.Key,
		claude.WithModel(cfg.Anthropic.Model),
		claude.WithMaxTokens(cfg.Anthropic.MaxTokens),
	)
}

// newRunner wires a fresh session and fresh components for one
// investigation. The returned cleanup closes the session; every
// investigation gets its own.
func newRunner(st store.Store) (*investigate.Runner, func(), error) {
	assembler, err := newAssembler()
	if err != nil {
		return nil, nil, err
	}
	session, err := newSession()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = session.Close() }
	return investigate.NewRunner(session, assembler, newResearcher(), st), cleanup, nil
}
