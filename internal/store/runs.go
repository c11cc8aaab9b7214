package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kubev2v/workpark/internal/models"
	srvErrors "github.com/kubev2v/workpark/pkg/errors"
)

// RunStore handles stress run history using DuckDB.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new run store.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Save stores a finished run.
func (s *RunStore) Save(ctx context.Context, r *models.Run) error {
	query, args, err := sq.Insert(tableRuns).
		Columns(runColumns...).
		Values(
			r.ID.String(),
			string(r.Mode),
			string(r.Status),
			r.Workers,
			r.Rounds,
			r.MaxDelay.Microseconds(),
			r.Expected,
			r.Observed,
			r.Duration.Microseconds(),
			r.StartedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Get retrieves a run by id.
func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query, args, err := sq.Select(runColumns...).
		From(tableRuns).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	r, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewRunNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns runs, newest first.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.Run, error) {
	builder := sq.Select(runColumns...).
		From(tableRuns).
		OrderBy("started_at DESC")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}

	return runs, rows.Err()
}

// Count returns the number of runs matching the options.
func (s *RunStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From(tableRuns)

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var (
		r          models.Run
		id         string
		mode       string
		status     string
		maxDelayUs int64
		durationUs int64
	)
	err := row.Scan(
		&id,
		&mode,
		&status,
		&r.Workers,
		&r.Rounds,
		&maxDelayUs,
		&r.Expected,
		&r.Observed,
		&durationUs,
		&r.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	r.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	r.Mode = models.RunMode(mode)
	r.Status = models.RunStatus(status)
	r.MaxDelay = time.Duration(maxDelayUs) * time.Microsecond
	r.Duration = time.Duration(durationUs) * time.Microsecond
	return &r, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByMode(modes ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(modes) == 0 {
			return b
		}
		return b.Where(sq.Eq{"mode": modes})
	}
}

func ByStatus(statuses ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		return b.Where(sq.Eq{"status": statuses})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}
