package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// PipelineStats summarizes what the pipeline did to a batch. RemovedCount
// covers every record dropped at any stage; nothing is dropped without
// being counted here.
type PipelineStats struct {
	InputCount         int     `json:"input_count"`
	OutputCount        int     `json:"output_count"`
	RemovedCount       int     `json:"removed_count"`
	RemovedRatePercent float64 `json:"removed_rate_percent"`

	// Per-stage breakdown.
	Unsalvageable  int `json:"unsalvageable"`   // normalizer: no usable name or internal failure
	BelowThreshold int `json:"below_threshold"` // normalizer validity gate: positive revenue under minimum
	Irrelevant     int `json:"irrelevant"`      // relevance filter
	Duplicates     int `json:"duplicates"`      // resolver merges
	RevenueGated   int `json:"revenue_gated"`   // terminal revenue gate
}

// Run records one pipeline execution for observability and history.
type Run struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"` // what fed the run: file path, "demo", "http"
	Status    RunStatus     `json:"status"`
	Stats     PipelineStats `json:"stats"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StageResult holds timing and counts for a single pipeline stage.
type StageResult struct {
	Name     string `json:"name"`
	In       int    `json:"in"`
	Out      int    `json:"out"`
	Duration int64  `json:"duration_ms"`
}
