// Package prompt turns intelligence records into provider-ready prompts.
// Building is pure: the same record and content type always produce the
// same prompt text, so results are cacheable and tests are deterministic.
package prompt

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sciados/campaign-engine/internal/model"
)

// Configuration errors raised while building prompts. A malformed template
// table is a programmer error and propagates immediately.
var (
	ErrUnknownContentType = eris.New("no template for content type")
	ErrUnknownVariable    = eris.New("template requires undeclared variable")
)

// Prompt is a fully-substituted prompt plus its system instruction.
// QualityScore is the percentage of template variables filled from real
// intelligence data rather than neutral defaults.
type Prompt struct {
	Text         string
	System       string
	QualityScore float64
}

// Build produces the prompt for one content type from the record's facts.
func Build(record *model.IntelligenceRecord, contentType model.ContentType) (Prompt, error) {
	tmpl, ok := contentTemplates[contentType]
	if !ok {
		return Prompt{}, eris.Wrap(ErrUnknownContentType, string(contentType))
	}
	return render(record, tmpl)
}

// RequiredVariables returns the variable names a content type's template
// declares, in substitution order.
func RequiredVariables(contentType model.ContentType) []string {
	tmpl, ok := contentTemplates[contentType]
	if !ok {
		return nil
	}
	out := make([]string, len(tmpl.variables))
	copy(out, tmpl.variables)
	return out
}

func render(record *model.IntelligenceRecord, tmpl contentTemplate) (Prompt, error) {
	text := tmpl.body
	filled := 0
	for _, name := range tmpl.variables {
		v, ok := variableByName(name)
		if !ok {
			return Prompt{}, eris.Wrap(ErrUnknownVariable, name)
		}
		value, fromData := resolve(v, record)
		if fromData {
			filled++
		}
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}

	score := 100.0
	if len(tmpl.variables) > 0 {
		score = 100 * float64(filled) / float64(len(tmpl.variables))
	}
	return Prompt{Text: text, System: tmpl.system, QualityScore: score}, nil
}
