package enhance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/provider"
	"github.com/sciados/campaign-engine/internal/selector"
)

func baseRecord() model.IntelligenceRecord {
	return model.IntelligenceRecord{
		SourceURL:       "https://example.com/sales",
		ProductName:     "HepatoBurn",
		ConfidenceScore: 0.5,
		Categories: map[string]model.FactMap{
			model.CategoryOffer: {
				"primary_benefit": "supports healthy liver function",
				"details":         "a daily supplement",
			},
			model.CategoryPsychology: {
				"target_audience": "adults over 40",
			},
		},
	}
}

// staticGenerator returns the same result for every call and tracks how
// many calls were in flight simultaneously.
type staticGenerator struct {
	result provider.GenerationResult
	err    error

	mu       sync.Mutex
	inFlight int
	peak     int
	calls    int
}

func (g *staticGenerator) SelectAndGenerate(_ context.Context, _ provider.GenerationRequest) (provider.GenerationResult, []selector.Attempt, error) {
	g.mu.Lock()
	g.calls++
	g.inFlight++
	if g.inFlight > g.peak {
		g.peak = g.inFlight
	}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}()

	if g.err != nil {
		return provider.GenerationResult{}, nil, g.err
	}
	return g.result, []selector.Attempt{{Provider: g.result.ProviderUsed, Success: g.result.Success}}, nil
}

func TestEnhance_AllSucceed(t *testing.T) {
	t.Parallel()
	gen := &staticGenerator{result: provider.GenerationResult{
		Success:      true,
		Content:      `{"finding": "relevant insight", "angles": ["a", "b"]}`,
		ProviderUsed: "groq",
		CostIncurred: 0.002,
	}}
	orch := NewOrchestrator(gen)
	rec := baseRecord()

	res, err := orch.Enhance(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 6, gen.calls)
	assert.InDelta(t, 0.25, res.ConfidenceDelta, 1e-9)
	assert.InDelta(t, 0.75, res.Enriched.ConfidenceScore, 1e-9)
	assert.InDelta(t, 0.012, res.TotalCostUSD, 1e-9)

	// Each category's payload lands under its own disjoint key.
	for _, cat := range model.EnhancementCategories() {
		payload, ok := res.Enriched.Categories[cat.Key()]
		require.True(t, ok, "missing merged key for %s", cat)
		assert.Equal(t, "relevant insight", payload["finding"])
	}

	// The input record is never mutated.
	assert.InDelta(t, 0.5, rec.ConfidenceScore, 1e-9)
	assert.Len(t, rec.Categories, 2)

	for _, task := range res.Tasks {
		assert.Equal(t, model.TaskSucceeded, task.Status)
		assert.Equal(t, "groq", task.Provider)
	}
}

func TestEnhance_TasksRunConcurrently(t *testing.T) {
	t.Parallel()
	// Every call parks until all six have arrived; the run can only
	// complete if the tasks truly overlap.
	var barrier sync.WaitGroup
	barrier.Add(6)
	gen := &barrierGenerator{barrier: &barrier}
	orch := NewOrchestrator(gen)

	res, err := orch.Enhance(context.Background(), baseRecord())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Succeeded)
}

type barrierGenerator struct {
	barrier *sync.WaitGroup
}

func (g *barrierGenerator) SelectAndGenerate(_ context.Context, _ provider.GenerationRequest) (provider.GenerationResult, []selector.Attempt, error) {
	g.barrier.Done()
	g.barrier.Wait()
	return provider.GenerationResult{Success: true, Content: `{"k": "v"}`, ProviderUsed: "p"}, nil, nil
}

func TestEnhance_AllFailIsDegradedSuccess(t *testing.T) {
	t.Parallel()
	gen := &staticGenerator{result: provider.GenerationResult{
		Success:     false,
		ErrorReason: provider.FailureExhausted,
	}}
	orch := NewOrchestrator(gen)
	rec := baseRecord()

	res, err := orch.Enhance(context.Background(), rec)
	require.NoError(t, err, "a fully failed run is still a completed run")

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 6, res.Failed)
	assert.Zero(t, res.ConfidenceDelta)
	assert.Zero(t, res.TotalCostUSD)
	assert.InDelta(t, rec.ConfidenceScore, res.Enriched.ConfidenceScore, 1e-9)
	assert.Equal(t, rec.Categories, res.Enriched.Categories)

	for _, task := range res.Tasks {
		assert.Equal(t, model.TaskFailed, task.Status)
		assert.Equal(t, string(provider.FailureExhausted), task.ErrorReason)
	}
}

func TestEnhance_PartialFailure(t *testing.T) {
	t.Parallel()
	// Credibility and market get unparseable output; the other four
	// succeed. Partial failure is normal operation.
	gen := &switchingGenerator{failFor: []string{"credibility signals", "market context"}}
	orch := NewOrchestrator(gen)

	res, err := orch.Enhance(context.Background(), baseRecord())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.InDelta(t, 0.25*4.0/6.0, res.ConfidenceDelta, 1e-9)

	_, hasCred := res.Enriched.Categories[model.EnhanceCredibility.Key()]
	assert.False(t, hasCred)
	_, hasSci := res.Enriched.Categories[model.EnhanceScientific.Key()]
	assert.True(t, hasSci)
}

type switchingGenerator struct {
	failFor []string
}

func (g *switchingGenerator) SelectAndGenerate(_ context.Context, req provider.GenerationRequest) (provider.GenerationResult, []selector.Attempt, error) {
	for _, marker := range g.failFor {
		if strings.Contains(req.Prompt, marker) {
			return provider.GenerationResult{Success: true, Content: "I could not produce JSON for this.", ProviderUsed: "p"}, nil, nil
		}
	}
	return provider.GenerationResult{Success: true, Content: `{"k": "v"}`, ProviderUsed: "p", CostIncurred: 0.001}, nil, nil
}

func TestEnhance_ConfidenceCappedAtOne(t *testing.T) {
	t.Parallel()
	gen := &staticGenerator{result: provider.GenerationResult{
		Success: true, Content: `{"k": "v"}`, ProviderUsed: "p",
	}}
	orch := NewOrchestrator(gen)
	rec := baseRecord()
	rec.ConfidenceScore = 0.95

	res, err := orch.Enhance(context.Background(), rec)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Enriched.ConfidenceScore, 1e-9)
	assert.InDelta(t, 0.05, res.ConfidenceDelta, 1e-9)
}

func TestEnhance_RerunReplacesWithoutDuplicating(t *testing.T) {
	t.Parallel()
	gen := &staticGenerator{result: provider.GenerationResult{
		Success: true, Content: `{"round": "one"}`, ProviderUsed: "p",
	}}
	orch := NewOrchestrator(gen)

	first, err := orch.Enhance(context.Background(), baseRecord())
	require.NoError(t, err)

	gen2 := &staticGenerator{result: provider.GenerationResult{
		Success: true, Content: `{"round": "two"}`, ProviderUsed: "p",
	}}
	orch2 := NewOrchestrator(gen2)
	second, err := orch2.Enhance(context.Background(), first.Enriched)
	require.NoError(t, err)

	// Same key count: the re-run replaced category payloads in place.
	assert.Len(t, second.Enriched.Categories, len(first.Enriched.Categories))
	for _, cat := range model.EnhancementCategories() {
		assert.Equal(t, "two", second.Enriched.Categories[cat.Key()]["round"])
	}
}

func TestEnhance_ConfigurationErrorPropagates(t *testing.T) {
	t.Parallel()
	gen := &staticGenerator{err: eris.Wrap(selector.ErrNoProviders, "text-generation")}
	orch := NewOrchestrator(gen)

	_, err := orch.Enhance(context.Background(), baseRecord())
	require.Error(t, err)
	assert.True(t, eris.Is(err, selector.ErrNoProviders))
}

func TestDefaultEnhancers(t *testing.T) {
	t.Parallel()
	enhancers := DefaultEnhancers()
	require.Len(t, enhancers, 6)

	seen := map[model.EnhancementCategory]bool{}
	for _, e := range enhancers {
		cat := e.Category()
		assert.True(t, cat.Valid())
		assert.False(t, seen[cat], "duplicate enhancer for %s", cat)
		seen[cat] = true

		p, err := e.BuildPrompt(ptr(baseRecord()))
		require.NoError(t, err)
		assert.NotEmpty(t, p.Text)
		assert.NotEmpty(t, p.System)
	}
}

func ptr(r model.IntelligenceRecord) *model.IntelligenceRecord { return &r }

func TestEnhance_TaskOrderIsStable(t *testing.T) {
	t.Parallel()
	gen := &staticGenerator{result: provider.GenerationResult{Success: true, Content: `{"k": "v"}`, ProviderUsed: "p"}}
	orch := NewOrchestrator(gen)

	res, err := orch.Enhance(context.Background(), baseRecord())
	require.NoError(t, err)

	want := model.EnhancementCategories()
	require.Len(t, res.Tasks, len(want))
	for i, task := range res.Tasks {
		assert.Equal(t, want[i], task.Category, fmt.Sprintf("slot %d", i))
	}
}
