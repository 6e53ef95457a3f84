package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djrooz/btl-agency-scraper/internal/model"
	"github.com/djrooz/btl-agency-scraper/internal/normalize"
	"github.com/djrooz/btl-agency-scraper/internal/pipeline"
	"github.com/djrooz/btl-agency-scraper/internal/registry"
	"github.com/djrooz/btl-agency-scraper/internal/relevance"
	"github.com/djrooz/btl-agency-scraper/internal/resolve"
	"github.com/djrooz/btl-agency-scraper/internal/store"
)

// newTestEnv builds a pipelineEnv backed by a throwaway SQLite database.
func newTestEnv(t *testing.T) *pipelineEnv {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	vocab := registry.DefaultVocabulary()
	p := pipeline.New(
		normalize.New(vocab, 200_000_000),
		relevance.NewFilter(vocab),
		resolve.NewResolver(vocab, resolve.DefaultThresholds()),
		pipeline.Options{MinRevenue: 200_000_000, Concurrency: 4},
	)
	return &pipelineEnv{Store: st, Vocab: vocab, Pipeline: p}
}

func TestRouter_Healthz(t *testing.T) {
	r := buildRouter(newTestEnv(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Process(t *testing.T) {
	env := newTestEnv(t)
	r := buildRouter(env)

	payload := map[string]any{
		"source": "api-test",
		"records": []map[string]any{
			{
				"name":        `ООО "ЛБЛ"`,
				"inn":         "7707083893",
				"revenue":     "986.9 млн",
				"segment_tag": "btl",
				"source":      "marketing_tech",
			},
			{
				"name":       "Креон",
				"revenue":    "340 млн",
				"okved_main": "73.11",
				"source":     "rrar_2025",
			},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/process", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		RunID   string                `json:"run_id"`
		Stats   model.PipelineStats   `json:"stats"`
		Records []model.CompanyRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.RunID)
	assert.Equal(t, 2, resp.Stats.InputCount)
	assert.Equal(t, 2, resp.Stats.OutputCount)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "ЛБЛ", resp.Records[0].Name)

	// The run and roster are persisted.
	run, err := env.Store.GetRun(context.Background(), resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)

	saved, err := env.Store.ListCompanies(context.Background(), resp.RunID)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestRouter_Process_InvalidBody(t *testing.T) {
	r := buildRouter(newTestEnv(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/process", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestRouter_Process_EmptyRecords(t *testing.T) {
	r := buildRouter(newTestEnv(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/process", bytes.NewReader([]byte(`{"source":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "records are required")
}

func TestRouter_ListRuns(t *testing.T) {
	env := newTestEnv(t)
	r := buildRouter(env)

	run, err := env.Store.CreateRun(context.Background(), "demo")
	require.NoError(t, err)
	require.NoError(t, env.Store.CompleteRun(context.Background(), run.ID, model.PipelineStats{InputCount: 1, OutputCount: 1}))

	req := httptest.NewRequest(http.MethodGet, "/v1/runs?status=complete", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Runs []model.Run `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, run.ID, resp.Runs[0].ID)
}

func TestRouter_ListCompanies(t *testing.T) {
	env := newTestEnv(t)
	r := buildRouter(env)

	run, err := env.Store.CreateRun(context.Background(), "demo")
	require.NoError(t, err)
	require.NoError(t, env.Store.SaveCompanies(context.Background(), run.ID, []model.CompanyRecord{
		{Name: "LBL", Revenue: 986_900_000, SegmentTag: model.SegmentBTL},
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/"+run.ID+"/companies", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Companies []model.CompanyRecord `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, "LBL", resp.Companies[0].Name)
}
