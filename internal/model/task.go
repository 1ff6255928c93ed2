package model

// TaskStatus tracks an enhancement task through its lifecycle.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
)

// EnhancementTask is one unit of orchestrator work: a single category
// enhanced through one selector call. Terminal results are read-only once
// set; the orchestrator is the only writer.
type EnhancementTask struct {
	Category    EnhancementCategory `json:"category"`
	Status      TaskStatus          `json:"status"`
	Result      FactMap             `json:"result,omitempty"`
	ErrorReason string              `json:"error_reason,omitempty"`
	Provider    string              `json:"provider,omitempty"`
	CostUSD     float64             `json:"cost_usd"`
}
