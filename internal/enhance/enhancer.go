// Package enhance runs the six-category intelligence enhancement pass.
package enhance

import (
	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/prompt"
)

// Enhancer is the shared capability of the six category enhancers. The set
// is closed: the orchestrator holds one static instance per category.
type Enhancer interface {
	Category() model.EnhancementCategory
	BuildPrompt(record *model.IntelligenceRecord) (prompt.Prompt, error)
	ParseResult(raw string) (model.FactMap, error)
}

// categoryEnhancer is the common implementation. Each category differs in
// its analysis brief (owned by the prompt package), not in mechanics.
type categoryEnhancer struct {
	category model.EnhancementCategory
}

func (e categoryEnhancer) Category() model.EnhancementCategory { return e.category }

func (e categoryEnhancer) BuildPrompt(record *model.IntelligenceRecord) (prompt.Prompt, error) {
	return prompt.BuildEnhancement(record, e.category)
}

func (e categoryEnhancer) ParseResult(raw string) (model.FactMap, error) {
	return parsePayload(raw)
}

// The six enhancer variants.
type (
	ScientificEnhancer  struct{ categoryEnhancer }
	EmotionalEnhancer   struct{ categoryEnhancer }
	CredibilityEnhancer struct{ categoryEnhancer }
	AuthorityEnhancer   struct{ categoryEnhancer }
	MarketEnhancer      struct{ categoryEnhancer }
	ContentEnhancer     struct{ categoryEnhancer }
)

// DefaultEnhancers returns one enhancer per category in dispatch order.
func DefaultEnhancers() []Enhancer {
	return []Enhancer{
		ScientificEnhancer{categoryEnhancer{model.EnhanceScientific}},
		EmotionalEnhancer{categoryEnhancer{model.EnhanceEmotional}},
		CredibilityEnhancer{categoryEnhancer{model.EnhanceCredibility}},
		AuthorityEnhancer{categoryEnhancer{model.EnhanceAuthority}},
		MarketEnhancer{categoryEnhancer{model.EnhanceMarket}},
		ContentEnhancer{categoryEnhancer{model.EnhanceContent}},
	}
}
