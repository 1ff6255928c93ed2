// Package assemble generates and parses final marketing content from an
// enriched intelligence record.
package assemble

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/prompt"
	"github.com/sciados/campaign-engine/internal/provider"
	"github.com/sciados/campaign-engine/internal/selector"
)

// maxTokensByType bounds output length per deliverable.
var maxTokensByType = map[model.ContentType]int{
	model.ContentEmailSequence: 4096,
	model.ContentAdCopy:        512,
	model.ContentBlogPost:      4096,
}

// Generator runs one generation request through provider selection.
type Generator interface {
	SelectAndGenerate(ctx context.Context, req provider.GenerationRequest) (provider.GenerationResult, []selector.Attempt, error)
}

// Assembler produces structured content with a single prompt build and a
// single selector call per request.
type Assembler struct {
	generator Generator
}

// New creates an Assembler.
func New(generator Generator) *Assembler {
	return &Assembler{generator: generator}
}

// Generate builds the prompt for contentType, runs it through provider
// selection, and parses the response. Provider exhaustion and parse
// failures return typed errors; partial or placeholder content is never
// fabricated.
func (a *Assembler) Generate(ctx context.Context, record model.IntelligenceRecord, contentType model.ContentType) (model.StructuredContent, error) {
	if !contentType.Valid() {
		return model.StructuredContent{}, eris.Wrap(ErrUnsupportedType, string(contentType))
	}

	p, err := prompt.Build(&record, contentType)
	if err != nil {
		return model.StructuredContent{}, err
	}

	res, attempts, err := a.generator.SelectAndGenerate(ctx, provider.GenerationRequest{
		Prompt:        p.Text,
		SystemMessage: p.System,
		MaxTokens:     maxTokensByType[contentType],
		Complexity:    contentType.Complexity(),
	})
	if err != nil {
		return model.StructuredContent{}, err
	}
	if !res.Success {
		return model.StructuredContent{}, eris.Wrapf(ErrProvidersExhausted, "%s after %d attempts", contentType, len(attempts))
	}

	content := model.StructuredContent{
		Type: contentType,
		Metadata: model.ContentMetadata{
			ProviderUsed:           res.ProviderUsed,
			CostIncurred:           res.CostIncurred,
			PromptQualityScore:     p.QualityScore,
			ConfidenceAtGeneration: record.ConfidenceScore,
			TokensUsed:             res.TokensUsed,
		},
	}

	switch contentType {
	case model.ContentEmailSequence:
		emails, perr := parseEmailSequence(contentType, res.ProviderUsed, res.Content)
		if perr != nil {
			return model.StructuredContent{}, perr
		}
		content.Emails = emails
	default:
		body := strings.TrimSpace(res.Content)
		if body == "" {
			return model.StructuredContent{}, &ParseError{
				ContentType: contentType, Provider: res.ProviderUsed,
				Reason: ReasonEmptyBody, Detail: "provider returned no content",
			}
		}
		content.Body = body
	}

	zap.L().Info("content assembled",
		zap.String("content_type", string(contentType)),
		zap.String("provider", content.Metadata.ProviderUsed),
		zap.Float64("cost_usd", content.Metadata.CostIncurred),
		zap.Float64("prompt_quality", content.Metadata.PromptQualityScore),
	)
	return content, nil
}
