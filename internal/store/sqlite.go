package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/veritide/compliance-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS investigations (
	id            TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'queued',
	error         TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS reports (
	run_id     TEXT PRIMARY KEY REFERENCES investigations(id),
	payload    TEXT NOT NULL,
	document   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_investigations_status ON investigations(status);
CREATE INDEX IF NOT EXISTS idx_investigations_customer ON investigations(customer_name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateInvestigation(ctx context.Context, customerName string) (*model.InvestigationRun, error) {
	now := time.Now().UTC()
	run := &model.InvestigationRun{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Status:       model.RunStatusQueued,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO investigations (id, customer_name, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.CustomerName, string(run.Status), run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert investigation")
	}
	return run, nil
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, runID string, status model.RunStatus, runErr string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE investigations SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), runErr, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update status %s", runID)
	}
	return checkRowsAffected(res, "investigation", runID)
}

func (s *SQLiteStore) GetInvestigation(ctx context.Context, runID string) (*model.InvestigationRun, error) {
	var run model.InvestigationRun
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_name, status, error, created_at, updated_at FROM investigations WHERE id = ?`,
		runID,
	).Scan(&run.ID, &run.CustomerName, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get investigation %s", runID)
	}
	run.Status = model.RunStatus(status)
	return &run, nil
}

func (s *SQLiteStore) ListInvestigations(ctx context.Context, filter Filter) ([]model.InvestigationRun, error) {
	query := `SELECT id, customer_name, status, error, created_at, updated_at FROM investigations WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.CustomerName != "" {
		query += ` AND customer_name = ?`
		args = append(args, filter.CustomerName)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list investigations")
	}
	defer rows.Close()

	var runs []model.InvestigationRun
	for rows.Next() {
		var run model.InvestigationRun
		var status string
		if err := rows.Scan(&run.ID, &run.CustomerName, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan investigation")
		}
		run.Status = model.RunStatus(status)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) SaveReport(ctx context.Context, runID string, report *model.Report, document string) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (run_id, payload, document) VALUES (?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET payload = excluded.payload, document = excluded.document`,
		runID, string(payload), document,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save report %s", runID)
	}
	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, runID string) (*model.Report, string, error) {
	var payload, document string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, document FROM reports WHERE run_id = ?`, runID,
	).Scan(&payload, &document)
	if err != nil {
		return nil, "", eris.Wrapf(err, "sqlite: get report %s", runID)
	}
	var report model.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, "", eris.Wrap(err, "sqlite: unmarshal report")
	}
	return &report, document, nil
}

// checkRowsAffected returns an error when an update matched no rows.
func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s not found: %s", kind, id)
	}
	return nil
}
