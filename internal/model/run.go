package model

import "time"

// RunStatus represents the current state of an investigation run.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusSearching RunStatus = "searching"
	RunStatusFound     RunStatus = "found"
	RunStatusNotFound  RunStatus = "not_found"
	RunStatusFailed    RunStatus = "failed"
)

// InvestigationRun tracks one investigation request end to end. The run row
// is what gets listed and queried later; the report body lives alongside it.
type InvestigationRun struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Status       RunStatus `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
