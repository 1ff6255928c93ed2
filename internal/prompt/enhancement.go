package prompt

import (
	"github.com/rotisserie/eris"

	"github.com/sciados/campaign-engine/internal/model"
)

// ErrUnknownCategory means no enhancement template exists for the
// requested category.
var ErrUnknownCategory = eris.New("no template for enhancement category")

const enhancementSystem = "You are a marketing intelligence analyst. Respond with a single JSON object and nothing else. Every value must be a string or a list of strings. Omit keys you cannot ground in the provided facts rather than inventing data."

const enhancementPreamble = `Product: {{product_name}}
Primary benefit: {{primary_benefit}}
Audience: {{target_audience}}
Offer: {{offer_details}}

`

// enhancementTemplates declare one analysis brief per category. Each asks
// for a flat JSON object whose keys are suggestions, not a fixed schema;
// whatever parses cleanly is merged under the category's record key.
var enhancementTemplates = map[model.EnhancementCategory]contentTemplate{
	model.EnhanceScientific: {
		system: enhancementSystem,
		body: enhancementPreamble + `Identify scientific or evidence-based support for this product's claims. Return JSON with keys such as "mechanism", "evidence_basis", "measurable_outcomes", "credible_framing".`,
		variables: []string{productNameVar, "primary_benefit", "target_audience", "offer_details"},
	},
	model.EnhanceEmotional: {
		system: enhancementSystem,
		body: enhancementPreamble + `Known pain points: {{pain_points}}. Known desires: {{desire_states}}.

Deepen the emotional analysis. Return JSON with keys such as "primary_triggers", "fear_angles", "aspiration_angles", "identity_shift".`,
		variables: []string{productNameVar, "primary_benefit", "target_audience", "offer_details", "pain_points", "desire_states"},
	},
	model.EnhanceCredibility: {
		system: enhancementSystem,
		body: enhancementPreamble + `Social proof on hand: {{social_proof}}. Guarantee: {{guarantee}}.

Identify credibility signals worth surfacing. Return JSON with keys such as "trust_builders", "proof_formats", "risk_reversal", "transparency_points".`,
		variables: []string{productNameVar, "primary_benefit", "target_audience", "offer_details", "social_proof", "guarantee"},
	},
	model.EnhanceAuthority: {
		system: enhancementSystem,
		body: enhancementPreamble + `Identify authority markers for positioning. Return JSON with keys such as "expertise_claims", "endorsement_angles", "category_leadership", "founder_story_hooks".`,
		variables: []string{productNameVar, "primary_benefit", "target_audience", "offer_details"},
	},
	model.EnhanceMarket: {
		system: enhancementSystem,
		body: enhancementPreamble + `Competitive angle: {{competitive_advantage}}. Current position: {{market_position}}.

Analyze the market context. Return JSON with keys such as "market_gap", "positioning_statement", "competitor_weaknesses", "pricing_narrative".`,
		variables: []string{productNameVar, "primary_benefit", "target_audience", "offer_details", "competitive_advantage", "market_position"},
	},
	model.EnhanceContent: {
		system: enhancementSystem,
		body: enhancementPreamble + `Existing themes: {{content_themes}}. Brand voice: {{brand_voice}}.

Propose a content strategy. Return JSON with keys such as "themes", "hooks", "channel_fit", "story_angles".`,
		variables: []string{productNameVar, "primary_benefit", "target_audience", "offer_details", "content_themes", "brand_voice"},
	},
}

// BuildEnhancement produces the analysis prompt for one enhancer category.
func BuildEnhancement(record *model.IntelligenceRecord, category model.EnhancementCategory) (Prompt, error) {
	tmpl, ok := enhancementTemplates[category]
	if !ok {
		return Prompt{}, eris.Wrap(ErrUnknownCategory, string(category))
	}
	return render(record, tmpl)
}
