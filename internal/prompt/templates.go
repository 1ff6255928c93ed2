package prompt

import (
	"fmt"
	"strings"

	"github.com/sciados/campaign-engine/internal/model"
)

// contentTemplate pairs a template body with the variables it requires
// and the system instruction sent alongside it.
type contentTemplate struct {
	system    string
	body      string
	variables []string
}

// stageDescriptions give the model a one-line brief per persuasion stage.
var stageDescriptions = map[model.Stage]string{
	model.StageProblemAwareness:  "Name the problem the reader already feels but has not articulated.",
	model.StageProblemAgitation:  "Make the cost of inaction vivid and personal.",
	model.StageSolutionReveal:    "Introduce the product as the turning point.",
	model.StageBenefitProof:      "Show concrete outcomes and evidence.",
	model.StageSocialValidation:  "Let other customers make the argument.",
	model.StageUrgencyCreation:   "Give an honest reason to act now.",
	model.StageObjectionHandling: "Dismantle the biggest remaining doubt.",
	model.StageCallToAction:      "Ask plainly for the purchase.",
}

// emailSequenceBody renders the email-sequence instructions. The final
// email carries both the objection-handling and call-to-action briefs, so
// eight stages produce seven emails with a stable ordering.
func emailSequenceBody() string {
	var b strings.Builder
	b.WriteString(`Write a {{brand_voice}} email marketing sequence for {{product_name}}.

Audience: {{target_audience}}.
Their pain points: {{pain_points}}.
What they want: {{desire_states}}.
Emotional triggers to use: {{emotional_triggers}}.

The product: {{offer_details}}. Primary benefit: {{primary_benefit}}.
Price: {{price_point}}. Guarantee: {{guarantee}}.
What sets it apart: {{competitive_advantage}}.
Social proof available: {{social_proof}}.
Objections to address: {{objections}}.

Write exactly 7 emails following this persuasion arc:
`)
	for i, stage := range model.EmailStages() {
		desc := stageDescriptions[stage]
		if stage == model.StageCallToAction {
			desc = stageDescriptions[model.StageObjectionHandling] + " Then " +
				strings.ToLower(desc[:1]) + desc[1:]
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, stage, desc)
	}
	b.WriteString(`
Format each email exactly as:
=== EMAIL n ===
SUBJECT: <subject line>
STAGE: <stage name from the list above>
BODY:
<email body>

Do not add commentary before or after the emails.`)
	return b.String()
}

var contentTemplates = map[model.ContentType]contentTemplate{
	model.ContentEmailSequence: {
		system: "You are an expert email marketing copywriter. You write persuasive, specific copy grounded in the product facts you are given, and you follow output format instructions exactly.",
		body:   emailSequenceBody(),
		variables: []string{
			productNameVar, "primary_benefit", "offer_details", "price_point",
			"guarantee", "target_audience", "pain_points", "desire_states",
			"objections", "emotional_triggers", "social_proof",
			"competitive_advantage", "brand_voice",
		},
	},
	model.ContentAdCopy: {
		system: "You are a direct-response advertising copywriter. You write short, punchy ad copy with a single clear claim and call to action.",
		body: `Write 3 short ad variations for {{product_name}}.

Audience: {{target_audience}}. Primary benefit: {{primary_benefit}}.
What sets it apart: {{competitive_advantage}}.
Emotional angle: {{emotional_triggers}}.

Each variation: one headline (under 10 words), two sentences of body copy, one call to action. Separate variations with a blank line.`,
		variables: []string{
			productNameVar, "primary_benefit", "target_audience",
			"competitive_advantage", "emotional_triggers",
		},
	},
	model.ContentBlogPost: {
		system: "You are a content marketing writer. You write helpful, well-structured long-form articles that educate first and sell second.",
		body: `Write a 1200-word blog post about the problem {{product_name}} solves.

Audience: {{target_audience}}.
Their pain points: {{pain_points}}.
What they want: {{desire_states}}.
Content themes to draw on: {{content_themes}}.
Market context: {{market_position}}.

Structure: compelling title, short introduction, 3-5 subheaded sections, a conclusion that naturally introduces {{product_name}} ({{primary_benefit}}) as one solution. Voice: {{brand_voice}}.`,
		variables: []string{
			productNameVar, "target_audience", "pain_points", "desire_states",
			"content_themes", "market_position", "primary_benefit", "brand_voice",
		},
	},
}
