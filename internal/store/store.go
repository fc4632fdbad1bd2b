// Package store persists investigation runs and their derived reports.
// Customer records themselves are never persisted; only the report derived
// from one survives the run.
package store

import (
	"context"

	"github.com/veritide/compliance-cli/internal/model"
)

// Filter specifies criteria for listing investigation runs.
type Filter struct {
	Status       model.RunStatus `json:"status,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	Limit        int             `json:"limit,omitempty"`
	Offset       int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for investigation runs.
type Store interface {
	// Runs
	CreateInvestigation(ctx context.Context, customerName string) (*model.InvestigationRun, error)
	UpdateStatus(ctx context.Context, runID string, status model.RunStatus, runErr string) error
	GetInvestigation(ctx context.Context, runID string) (*model.InvestigationRun, error)
	ListInvestigations(ctx context.Context, filter Filter) ([]model.InvestigationRun, error)

	// Reports
	SaveReport(ctx context.Context, runID string, report *model.Report, document string) error
	GetReport(ctx context.Context, runID string) (*model.Report, string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
