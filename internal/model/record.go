// Package model defines the core domain types shared across the campaign engine.
package model

import "sort"

// FactMap holds arbitrary key/value facts for one intelligence category.
type FactMap map[string]any

// Source intelligence categories produced by upstream sales-page analysis.
const (
	CategoryOffer       = "offer"
	CategoryPsychology  = "psychology"
	CategoryCompetitive = "competitive"
	CategoryContent     = "content"
	CategoryBrand       = "brand"
)

// IntelligenceRecord holds structured facts about a product derived from
// analyzing its sales page. Enhancement never mutates a record in place;
// enriched records are produced as copies with additional category keys.
type IntelligenceRecord struct {
	SourceURL       string             `json:"source_url"`
	ProductName     string             `json:"product_name"`
	ConfidenceScore float64            `json:"confidence_score"`
	Categories      map[string]FactMap `json:"categories"`
}

// Clone returns a deep copy of the record. Category maps are copied one
// level deep, which is sufficient because fact values are treated as
// immutable once set.
func (r IntelligenceRecord) Clone() IntelligenceRecord {
	out := r
	out.Categories = make(map[string]FactMap, len(r.Categories))
	for cat, facts := range r.Categories {
		fm := make(FactMap, len(facts))
		for k, v := range facts {
			fm[k] = v
		}
		out.Categories[cat] = fm
	}
	return out
}

// Fact returns the string rendering of a category fact, or ("", false) if
// the category or key is absent or the value renders empty.
func (r IntelligenceRecord) Fact(category, key string) (string, bool) {
	facts, ok := r.Categories[category]
	if !ok {
		return "", false
	}
	v, ok := facts[key]
	if !ok {
		return "", false
	}
	s, ok := renderFact(v)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// CategoryNames returns the record's category keys in sorted order.
func (r IntelligenceRecord) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderFact(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []any:
		// Lists render as the first non-empty string element; upstream
		// analysis emits trigger/benefit lists ordered by strength.
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				return s, true
			}
		}
		return "", false
	case []string:
		for _, s := range t {
			if s != "" {
				return s, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
