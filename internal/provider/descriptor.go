// Package provider holds the generation-provider catalog and the uniform
// invocation client that wraps vendor-specific APIs.
package provider

// Capability tags advertised by providers and requested by callers.
const (
	CapabilityTextGeneration = "text-generation"
	CapabilityFast           = "fast"
	CapabilityReasoning      = "reasoning"
)

// Vendor identifiers. Each maps to one registered ChatCompleter.
const (
	VendorAnthropic = "anthropic"
	VendorOpenAI    = "openai"
	VendorGroq      = "groq"
)

// Descriptor is a static catalog entry for one generation provider
// (vendor + model) with its cost and selection policy inputs.
type Descriptor struct {
	Name            string   `yaml:"name"`
	Vendor          string   `yaml:"vendor"`
	Model           string   `yaml:"model"`
	CostPer1KTokens float64  `yaml:"cost_per_1k_tokens"`
	QualityScore    int      `yaml:"quality_score"`
	PriorityRank    int      `yaml:"priority_rank"`
	Capabilities    []string `yaml:"capabilities"`

	// RatePerSecond and Burst feed the per-provider client rate limiter.
	// Zero RatePerSecond means unthrottled.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// HasCapability reports whether the descriptor advertises the given tag.
func (d Descriptor) HasCapability(capability string) bool {
	for _, c := range d.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}
