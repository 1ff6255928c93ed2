package model

import "time"

// RunKind distinguishes enhancement runs from content-generation runs.
type RunKind string

const (
	RunKindEnhance  RunKind = "enhance"
	RunKindGenerate RunKind = "generate"
)

// RunStatus tracks a persisted run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSummary is the bookkeeping outcome of an enhancement run.
type RunSummary struct {
	Succeeded       int     `json:"succeeded"`
	Failed          int     `json:"failed"`
	ConfidenceDelta float64 `json:"confidence_delta"`
	CostUSD         float64 `json:"cost_usd"`
}

// Run is a persisted enhancement or generation run.
type Run struct {
	ID        string              `json:"id"`
	Kind      RunKind             `json:"kind"`
	Status    RunStatus           `json:"status"`
	Record    IntelligenceRecord  `json:"record"`
	Enriched  *IntelligenceRecord `json:"enriched,omitempty"`
	Summary   *RunSummary         `json:"summary,omitempty"`
	Content   *StructuredContent  `json:"content,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
