package enhance

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/provider"
	"github.com/sciados/campaign-engine/internal/selector"
)

// confidenceCeiling caps the record's confidence score; maxBoost is the
// increment earned when all six categories succeed.
const (
	confidenceCeiling = 1.0
	maxBoost          = 0.25

	enhancementMaxTokens = 1024
)

// Generator runs one generation request through provider selection.
// *selector.Selector satisfies it.
type Generator interface {
	SelectAndGenerate(ctx context.Context, req provider.GenerationRequest) (provider.GenerationResult, []selector.Attempt, error)
}

// RunResult is the outcome of one enhancement run. A run where every task
// failed is still a completed run: callers treat it as degraded success,
// never as a hard failure.
type RunResult struct {
	Enriched        model.IntelligenceRecord `json:"enriched"`
	Tasks           []model.EnhancementTask  `json:"tasks"`
	Succeeded       int                      `json:"succeeded"`
	Failed          int                      `json:"failed"`
	ConfidenceDelta float64                  `json:"confidence_delta"`
	TotalCostUSD    float64                  `json:"total_cost_usd"`
}

// Orchestrator fans the six enhancer tasks out concurrently and merges
// whatever succeeded into an enriched copy of the input record.
type Orchestrator struct {
	generator Generator
	enhancers []Enhancer
}

// NewOrchestrator creates an Orchestrator over the default six enhancers.
func NewOrchestrator(generator Generator) *Orchestrator {
	return &Orchestrator{generator: generator, enhancers: DefaultEnhancers()}
}

// Enhance runs all six category tasks concurrently, waits for every task
// to reach a terminal state, and merges successful payloads. Task failures
// (exhausted providers, unparseable output) demote their own task only and
// never abort siblings. The error return is reserved for configuration
// errors, which do cancel the remaining tasks and propagate.
func (o *Orchestrator) Enhance(ctx context.Context, record model.IntelligenceRecord) (RunResult, error) {
	tasks := make([]model.EnhancementTask, len(o.enhancers))
	for i, e := range o.enhancers {
		tasks[i] = model.EnhancementTask{Category: e.Category(), Status: model.TaskPending}
	}

	// Each goroutine owns exactly one task slot; the Wait below is the
	// barrier before any slot is read.
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range o.enhancers {
		g.Go(func() error {
			tasks[i].Status = model.TaskRunning
			task, err := o.runTask(gctx, e, record)
			tasks[i] = task
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return RunResult{}, err
	}

	return o.merge(record, tasks), nil
}

func (o *Orchestrator) runTask(ctx context.Context, e Enhancer, record model.IntelligenceRecord) (model.EnhancementTask, error) {
	task := model.EnhancementTask{Category: e.Category(), Status: model.TaskRunning}

	p, err := e.BuildPrompt(&record)
	if err != nil {
		return task, err
	}

	res, attempts, err := o.generator.SelectAndGenerate(ctx, provider.GenerationRequest{
		Prompt:        p.Text,
		SystemMessage: p.System,
		MaxTokens:     enhancementMaxTokens,
		Complexity:    model.ComplexityStandard,
	})
	if err != nil {
		return task, err
	}
	if !res.Success {
		task.Status = model.TaskFailed
		task.ErrorReason = string(res.ErrorReason)
		zap.L().Warn("enhancement task failed",
			zap.String("category", string(e.Category())),
			zap.String("reason", string(res.ErrorReason)),
			zap.Int("attempts", len(attempts)),
		)
		return task, nil
	}

	payload, err := e.ParseResult(res.Content)
	if err != nil {
		task.Status = model.TaskFailed
		task.ErrorReason = err.Error()
		zap.L().Warn("enhancement parse failed",
			zap.String("category", string(e.Category())),
			zap.String("provider", res.ProviderUsed),
			zap.Error(err),
		)
		return task, nil
	}

	task.Status = model.TaskSucceeded
	task.Result = payload
	task.Provider = res.ProviderUsed
	task.CostUSD = res.CostIncurred
	return task, nil
}

// merge folds every succeeded payload into a fresh copy of the record and
// applies the confidence boost. Category keys are disjoint, so merge order
// between tasks cannot affect the result; re-running enhancement replaces
// each category's key rather than duplicating it.
func (o *Orchestrator) merge(record model.IntelligenceRecord, tasks []model.EnhancementTask) RunResult {
	enriched := record.Clone()

	succeeded := 0
	totalCost := 0.0
	for _, t := range tasks {
		totalCost += t.CostUSD
		if t.Status != model.TaskSucceeded {
			continue
		}
		succeeded++
		enriched.Categories[t.Category.Key()] = t.Result
	}

	delta := 0.0
	if succeeded > 0 {
		boost := maxBoost * float64(succeeded) / float64(len(tasks))
		after := math.Min(record.ConfidenceScore+boost, confidenceCeiling)
		delta = after - record.ConfidenceScore
		enriched.ConfidenceScore = after
	}

	zap.L().Info("enhancement run complete",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(tasks)-succeeded),
		zap.Float64("confidence_delta", delta),
		zap.Float64("total_cost_usd", totalCost),
	)

	return RunResult{
		Enriched:        enriched,
		Tasks:           tasks,
		Succeeded:       succeeded,
		Failed:          len(tasks) - succeeded,
		ConfidenceDelta: delta,
		TotalCostUSD:    totalCost,
	}
}
