package selector

import (
	"sync"

	"github.com/sciados/campaign-engine/internal/provider"
)

// State tracks providers that have proven unusable for the lifetime of the
// process, most commonly because their configured model has been
// decommissioned. It is shared by all selections on the same runtime and is
// safe for concurrent use.
type State struct {
	mu   sync.RWMutex
	dead map[string]provider.FailureReason
}

// NewState creates an empty State.
func NewState() *State {
	return &State{dead: make(map[string]provider.FailureReason)}
}

// MarkDead excludes a provider from future selections.
func (s *State) MarkDead(name string, reason provider.FailureReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dead[name] = reason
}

// IsDead reports whether the provider has been excluded.
func (s *State) IsDead(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dead[name]
	return ok
}

// DeadProviders returns a snapshot of excluded providers and the reason
// each was excluded.
func (s *State) DeadProviders() map[string]provider.FailureReason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]provider.FailureReason, len(s.dead))
	for k, v := range s.dead {
		out[k] = v
	}
	return out
}
