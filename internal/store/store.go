package store

import (
	"context"

	"github.com/sciados/campaign-engine/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Kind      model.RunKind   `json:"kind,omitempty"`
	Status    model.RunStatus `json:"status,omitempty"`
	SourceURL string          `json:"source_url,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Offset    int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for enhancement and generation
// runs. The pipeline itself never writes; callers persist once per run
// after the orchestrator or assembler finishes.
type Store interface {
	CreateRun(ctx context.Context, kind model.RunKind, record model.IntelligenceRecord) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	SaveEnrichment(ctx context.Context, runID string, enriched model.IntelligenceRecord, summary model.RunSummary) error
	SaveContent(ctx context.Context, runID string, content model.StructuredContent) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
