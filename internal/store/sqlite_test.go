package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteRunLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "demo")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	stats := model.PipelineStats{
		InputCount:         10,
		OutputCount:        6,
		RemovedCount:       4,
		RemovedRatePercent: 40.0,
		Duplicates:         3,
		BelowThreshold:     1,
	}
	require.NoError(t, s.CompleteRun(ctx, run.ID, stats))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, stats, got.Stats)
	assert.Equal(t, "demo", got.Source)
}

func TestSQLiteFailRun(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "dump.json")
	require.NoError(t, err)
	require.NoError(t, s.FailRun(ctx, run.ID))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Zero(t, got.Stats.InputCount)
}

func TestSQLiteRunNotFound(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.GetRun(ctx, "missing")
	assert.Error(t, err)
	assert.Error(t, s.CompleteRun(ctx, "missing", model.PipelineStats{}))
	assert.Error(t, s.FailRun(ctx, "missing"))
}

func TestSQLiteListRuns(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	r1, err := s.CreateRun(ctx, "demo")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "dump.json")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, r1.ID, model.PipelineStats{InputCount: 1, OutputCount: 1}))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, r1.ID, completed[0].ID)

	bySource, err := s.ListRuns(ctx, RunFilter{Source: "dump.json"})
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, model.RunStatusRunning, bySource[0].Status)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteSaveAndListCompanies(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "demo")
	require.NoError(t, err)

	records := []model.CompanyRecord{
		{
			Name: "Oasis", Revenue: 420_000_000, RevenueYear: 2024,
			SegmentTag: model.SegmentSouvenir, Source: "rrar_2025",
		},
		{
			Name: "LBL", TaxID: "7707083893", Revenue: 986_900_000, RevenueYear: 2024,
			SegmentTag: model.SegmentBTL, Source: "marketing_tech",
			IndustryCode: "73.11", EmployeeCount: 250,
			Website: "https://lbl.ru", Region: "Москва",
			Contact: "+74951234567", Description: "BTL агентство",
		},
	}
	require.NoError(t, s.SaveCompanies(ctx, run.ID, records))

	got, err := s.ListCompanies(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Richest first.
	assert.Equal(t, "LBL", got[0].Name)
	assert.Equal(t, "7707083893", got[0].TaxID)
	assert.Equal(t, model.SegmentBTL, got[0].SegmentTag)
	assert.Equal(t, 250, got[0].EmployeeCount)
	assert.Equal(t, "Oasis", got[1].Name)
}

func TestSQLiteListCompaniesEmptyRun(t *testing.T) {
	t.Parallel()

	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "demo")
	require.NoError(t, err)

	got, err := s.ListCompanies(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
