package model

// ContentType identifies a kind of marketing deliverable.
type ContentType string

const (
	ContentEmailSequence ContentType = "email_sequence"
	ContentAdCopy        ContentType = "ad_copy"
	ContentBlogPost      ContentType = "blog_post"
)

// Valid reports whether the content type is one of the supported kinds.
func (t ContentType) Valid() bool {
	switch t {
	case ContentEmailSequence, ContentAdCopy, ContentBlogPost:
		return true
	}
	return false
}

// Complexity classifies how demanding a generation task is. It maps to
// which provider tier the selector tries first.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityStandard Complexity = "standard"
	ComplexityComplex  Complexity = "complex"
)

// Complexity returns the generation complexity for a content type: single
// ad copy is simple, an email sequence is standard, long-form blog content
// is complex.
func (t ContentType) Complexity() Complexity {
	switch t {
	case ContentAdCopy:
		return ComplexitySimple
	case ContentBlogPost:
		return ComplexityComplex
	default:
		return ComplexityStandard
	}
}

// Email is a single message in a generated sequence.
type Email struct {
	Ordinal int    `json:"ordinal"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Stage   Stage  `json:"stage"`
}

// ContentMetadata records how a piece of content was produced.
type ContentMetadata struct {
	ProviderUsed             string  `json:"provider_used"`
	CostIncurred             float64 `json:"cost_incurred"`
	PromptQualityScore       float64 `json:"prompt_quality_score"`
	ConfidenceAtGeneration   float64 `json:"intelligence_confidence_at_generation"`
	TokensUsed               int     `json:"tokens_used"`
}

// StructuredContent is a parsed, typed generation result. Emails is
// populated for email sequences; Body for single-document content types.
type StructuredContent struct {
	Type     ContentType     `json:"type"`
	Emails   []Email         `json:"emails,omitempty"`
	Body     string          `json:"body,omitempty"`
	Metadata ContentMetadata `json:"metadata"`
}
