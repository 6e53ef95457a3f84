// Package store persists pipeline runs and the company rosters they
// produce. Two backends are provided: SQLite for local single-user work
// and PostgreSQL for shared deployments.
package store

import (
	"context"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Source string          `json:"source,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the cleaning pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, source string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, stats model.PipelineStats) error
	FailRun(ctx context.Context, runID string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Companies
	SaveCompanies(ctx context.Context, runID string, records []model.CompanyRecord) error
	ListCompanies(ctx context.Context, runID string) ([]model.CompanyRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
