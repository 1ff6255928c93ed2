// Package cost computes USD cost attribution for provider API usage.
package cost

// ModelRate holds per-model token pricing in USD per million tokens.
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Rates maps model identifiers to their pricing.
type Rates map[string]ModelRate

// Calculator computes costs for completion API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Completion returns the cost of a completion call for a known model. The
// second return is false when the model has no configured rate; callers
// fall back to the provider descriptor's blended per-token rate.
func (c *Calculator) Completion(model string, inputTokens, outputTokens int) (float64, bool) {
	rate, ok := c.rates[model]
	if !ok {
		return 0, false
	}
	in := (float64(inputTokens) / 1e6) * rate.Input
	out := (float64(outputTokens) / 1e6) * rate.Output
	return in + out, true
}

// DefaultRates returns pricing for the default provider catalog's models.
func DefaultRates() Rates {
	return Rates{
		"llama-3.3-70b-versatile":    {Input: 0.59, Output: 0.79},
		"gpt-4o-mini":                {Input: 0.15, Output: 0.60},
		"gpt-4o":                     {Input: 2.50, Output: 10.00},
		"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
		"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
	}
}
