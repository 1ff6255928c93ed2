package model

// EnhancementCategory identifies one of the six fixed intelligence
// dimensions that enhancement can augment. The set is closed: the
// orchestrator holds a static enhancer per category and never discovers
// categories at runtime.
type EnhancementCategory string

const (
	EnhanceScientific  EnhancementCategory = "scientific"
	EnhanceEmotional   EnhancementCategory = "emotional"
	EnhanceCredibility EnhancementCategory = "credibility"
	EnhanceAuthority   EnhancementCategory = "authority"
	EnhanceMarket      EnhancementCategory = "market"
	EnhanceContent     EnhancementCategory = "content"
)

// EnhancementCategories returns the six categories in their fixed dispatch
// order.
func EnhancementCategories() []EnhancementCategory {
	return []EnhancementCategory{
		EnhanceScientific,
		EnhanceEmotional,
		EnhanceCredibility,
		EnhanceAuthority,
		EnhanceMarket,
		EnhanceContent,
	}
}

// categoryKeys maps each enhancement category to the record key its merged
// payload lands under. Keys are disjoint from each other and from the
// source categories, so merge order between tasks never matters.
var categoryKeys = map[EnhancementCategory]string{
	EnhanceScientific:  "scientific_support",
	EnhanceEmotional:   "emotional_triggers",
	EnhanceCredibility: "credibility_signals",
	EnhanceAuthority:   "authority_markers",
	EnhanceMarket:      "market_insights",
	EnhanceContent:     "content_strategy",
}

// Key returns the merged-record category key for this enhancement category.
func (c EnhancementCategory) Key() string {
	return categoryKeys[c]
}

// Valid reports whether c is one of the six fixed categories.
func (c EnhancementCategory) Valid() bool {
	_, ok := categoryKeys[c]
	return ok
}
