package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/veritide/compliance-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. Satisfied by
// pgxmock.PgxPoolIface in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS investigations (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	customer_name TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'queued',
	error         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reports (
	run_id     TEXT PRIMARY KEY REFERENCES investigations(id),
	payload    JSONB NOT NULL,
	document   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_investigations_status ON investigations(status);
CREATE INDEX IF NOT EXISTS idx_investigations_customer ON investigations(customer_name);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateInvestigation(ctx context.Context, customerName string) (*model.InvestigationRun, error) {
	now := time.Now().UTC()
	run := &model.InvestigationRun{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Status:       model.RunStatusQueued,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO investigations (id, customer_name, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.CustomerName, string(run.Status), run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert investigation")
	}
	return run, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, runID string, status model.RunStatus, runErr string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE investigations SET status = $1, error = $2, updated_at = $3 WHERE id = $4`,
		string(status), runErr, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update status %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: investigation not found: %s", runID)
	}
	return nil
}

func (s *PostgresStore) GetInvestigation(ctx context.Context, runID string) (*model.InvestigationRun, error) {
	var run model.InvestigationRun
	var status string
	err := s.pool.QueryRow(ctx,
		`SELECT id, customer_name, status, error, created_at, updated_at FROM investigations WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.CustomerName, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get investigation %s", runID)
	}
	run.Status = model.RunStatus(status)
	return &run, nil
}

func (s *PostgresStore) ListInvestigations(ctx context.Context, filter Filter) ([]model.InvestigationRun, error) {
	query := `SELECT id, customer_name, status, error, created_at, updated_at FROM investigations WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		query += ` AND status = ` + arg(string(filter.Status))
	}
	if filter.CustomerName != "" {
		query += ` AND customer_name = ` + arg(filter.CustomerName)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)
	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list investigations")
	}
	defer rows.Close()

	var runs []model.InvestigationRun
	for rows.Next() {
		var run model.InvestigationRun
		var status string
		if err := rows.Scan(&run.ID, &run.CustomerName, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan investigation")
		}
		run.Status = model.RunStatus(status)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) SaveReport(ctx context.Context, runID string, report *model.Report, document string) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO reports (run_id, payload, document) VALUES ($1, $2, $3)
		 ON CONFLICT (run_id) DO UPDATE SET payload = EXCLUDED.payload, document = EXCLUDED.document`,
		runID, payload, document,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save report %s", runID)
	}
	return nil
}

func (s *PostgresStore) GetReport(ctx context.Context, runID string) (*model.Report, string, error) {
	var payload []byte
	var document string
	err := s.pool.QueryRow(ctx,
		`SELECT payload, document FROM reports WHERE run_id = $1`, runID,
	).Scan(&payload, &document)
	if err != nil {
		return nil, "", eris.Wrapf(err, "postgres: get report %s", runID)
	}
	var report model.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, "", eris.Wrap(err, "postgres: unmarshal report")
	}
	return &report, document, nil
}
