package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/kubev2v/workpark/internal/models"
	"github.com/kubev2v/workpark/internal/store"
)

// RunService gives read access to the stored run history.
type RunService struct {
	store *store.Store
}

func NewRunService(st *store.Store) *RunService {
	return &RunService{store: st}
}

type RunListParams struct {
	Modes    []string
	Statuses []string
	Limit    uint64
	Offset   uint64
}

type RunListResult struct {
	Runs  []models.Run
	Total int
}

func (s *RunService) List(ctx context.Context, params RunListParams) (*RunListResult, error) {
	filters := []store.ListOption{
		store.ByMode(params.Modes...),
		store.ByStatus(params.Statuses...),
	}

	opts := append([]store.ListOption{}, filters...)
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	runs, err := s.store.Runs().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Get total count without pagination
	total, err := s.store.Runs().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	return &RunListResult{
		Runs:  runs,
		Total: total,
	}, nil
}

func (s *RunService) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	return s.store.Runs().Get(ctx, id)
}
