package prompt

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sciados/campaign-engine/internal/model"
)

// Variable declares one substitution slot in a template. Paths are
// "category.key" lookups into the intelligence record, tried in order;
// the first non-empty match wins. When no path yields data the neutral
// Default is substituted so the template never carries an empty token.
type Variable struct {
	Name    string
	Paths   []string
	Default string
}

// productNameVar is resolved from the record's top-level product name
// rather than a category map.
const productNameVar = "product_name"

var titleCaser = cases.Title(language.English)

// coreVariables is the shared slot table. Content templates declare which
// subset they require; resolution semantics are identical everywhere.
var coreVariables = []Variable{
	{Name: productNameVar, Default: "this product"},
	{Name: "primary_benefit", Paths: []string{"offer.primary_benefit", "offer.main_benefit", "offer.value_proposition"}, Default: "real, measurable results"},
	{Name: "offer_details", Paths: []string{"offer.details", "offer.description", "offer.summary"}, Default: "a complete solution"},
	{Name: "price_point", Paths: []string{"offer.price", "offer.price_point", "offer.pricing"}, Default: "an accessible price"},
	{Name: "guarantee", Paths: []string{"offer.guarantee", "offer.refund_policy"}, Default: "a satisfaction guarantee"},
	{Name: "target_audience", Paths: []string{"psychology.target_audience", "psychology.audience", "brand.audience"}, Default: "people looking for a better way"},
	{Name: "pain_points", Paths: []string{"psychology.pain_points", "psychology.frustrations"}, Default: "the everyday struggles your audience faces"},
	{Name: "desire_states", Paths: []string{"psychology.desire_states", "psychology.desires", "psychology.aspirations"}, Default: "the outcome your audience wants most"},
	{Name: "objections", Paths: []string{"psychology.objections", "psychology.hesitations"}, Default: "common doubts about trying something new"},
	{Name: "emotional_triggers", Paths: []string{"psychology.emotional_triggers", "psychology.triggers"}, Default: "hope, relief, and confidence"},
	{Name: "social_proof", Paths: []string{"psychology.social_proof", "credibility_signals.testimonials", "content.testimonials"}, Default: "feedback from satisfied customers"},
	{Name: "competitive_advantage", Paths: []string{"competitive.advantage", "competitive.differentiator", "competitive.unique_angle"}, Default: "a distinct approach"},
	{Name: "market_position", Paths: []string{"competitive.market_position", "market_insights.position"}, Default: "a trusted option in its category"},
	{Name: "content_themes", Paths: []string{"content.themes", "content.key_messages", "content_strategy.themes"}, Default: "benefit-led storytelling"},
	{Name: "brand_voice", Paths: []string{"brand.voice", "brand.tone", "brand.personality"}, Default: "clear, direct, and friendly"},
}

// resolve returns the variable's value and whether it came from real
// intelligence data.
func resolve(v Variable, record *model.IntelligenceRecord) (string, bool) {
	if v.Name == productNameVar {
		name := strings.TrimSpace(record.ProductName)
		if name == "" {
			return v.Default, false
		}
		return titleCaser.String(name), true
	}
	for _, path := range v.Paths {
		category, key, ok := strings.Cut(path, ".")
		if !ok {
			continue
		}
		if val, ok := record.Fact(category, key); ok {
			return val, true
		}
	}
	return v.Default, false
}

func variableByName(name string) (Variable, bool) {
	for _, v := range coreVariables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
