// Package selector chooses a provider for each generation request and
// walks the priority-ordered candidate list until one succeeds.
package selector

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/provider"
)

// ErrNoProviders means the registry has no live candidate for the
// requested capability. This is a configuration error, not a remote one.
var ErrNoProviders = eris.New("no live providers for capability")

// Attempt records one provider try for run diagnostics.
type Attempt struct {
	Provider string                 `json:"provider"`
	Success  bool                   `json:"success"`
	Reason   provider.FailureReason `json:"reason,omitempty"`
	Elapsed  time.Duration          `json:"elapsed"`
}

// Selector resolves requests against the registry and falls back through
// candidates in priority order. Providers whose model proves invalid are
// marked dead in the shared State and skipped on subsequent requests.
type Selector struct {
	registry *provider.Registry
	invoker  provider.Invoker
	state    *State
}

// New creates a Selector. A nil state gets a fresh one, private to this
// selector.
func New(registry *provider.Registry, invoker provider.Invoker, state *State) *Selector {
	if state == nil {
		state = NewState()
	}
	return &Selector{registry: registry, invoker: invoker, state: state}
}

// capabilityFor maps request complexity to the capability used for
// candidate filtering. Simple work goes to the cheap fast tier, complex
// work to reasoning models.
func capabilityFor(c model.Complexity) string {
	switch c {
	case model.ComplexitySimple:
		return provider.CapabilityFast
	case model.ComplexityComplex:
		return provider.CapabilityReasoning
	default:
		return provider.CapabilityTextGeneration
	}
}

// SelectAndGenerate tries each live candidate in priority order until one
// succeeds. Remote failures are folded into the attempts ledger; when
// every candidate fails the result carries FailureExhausted rather than a
// Go error. The error return is reserved for configuration problems.
func (s *Selector) SelectAndGenerate(ctx context.Context, req provider.GenerationRequest) (provider.GenerationResult, []Attempt, error) {
	capability := capabilityFor(req.Complexity)
	candidates := s.candidates(capability)
	if len(candidates) == 0 && capability != provider.CapabilityTextGeneration {
		// The requested tier may be empty (or entirely dead); any
		// text-generation provider can still serve the request.
		capability = provider.CapabilityTextGeneration
		candidates = s.candidates(capability)
	}
	if len(candidates) == 0 {
		return provider.GenerationResult{}, nil, eris.Wrap(ErrNoProviders, capability)
	}

	attempts := make([]Attempt, 0, len(candidates))
	for _, desc := range candidates {
		start := time.Now()
		res, err := s.invoker.Invoke(ctx, desc.Name, req)
		if err != nil {
			return provider.GenerationResult{}, attempts, err
		}

		attempts = append(attempts, Attempt{
			Provider: desc.Name,
			Success:  res.Success,
			Reason:   res.ErrorReason,
			Elapsed:  time.Since(start),
		})

		if res.Success {
			return res, attempts, nil
		}

		if res.ErrorReason == provider.FailureInvalidModel {
			s.state.MarkDead(desc.Name, res.ErrorReason)
			zap.L().Warn("provider marked dead",
				zap.String("provider", desc.Name),
				zap.String("model", desc.Model),
			)
		}

		if ctx.Err() != nil {
			return provider.GenerationResult{}, attempts, eris.Wrap(ctx.Err(), "selection aborted")
		}
	}

	zap.L().Error("all providers exhausted",
		zap.String("capability", capability),
		zap.Int("attempts", len(attempts)),
	)
	return provider.GenerationResult{Success: false, ErrorReason: provider.FailureExhausted}, attempts, nil
}

func (s *Selector) candidates(capability string) []provider.Descriptor {
	all := s.registry.ListProviders(capability)
	live := all[:0:0]
	for _, d := range all {
		if !s.state.IsDead(d.Name) {
			live = append(live, d)
		}
	}
	return live
}
