package provider

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sciados/campaign-engine/internal/cost"
	"github.com/sciados/campaign-engine/internal/model"
)

// GenerationRequest is a uniform request to any text-generation provider.
type GenerationRequest struct {
	Prompt        string           `json:"prompt"`
	SystemMessage string           `json:"system_message"`
	MaxTokens     int              `json:"max_tokens"`
	Complexity    model.Complexity `json:"task_complexity"`
}

// GenerationResult is the normalized outcome of one provider attempt.
// Remote failures surface as Success=false with a categorized reason;
// failed attempts incur zero cost and leave ProviderUsed empty.
type GenerationResult struct {
	Content      string        `json:"content"`
	ProviderUsed string        `json:"provider_used,omitempty"`
	TokensUsed   int           `json:"tokens_used"`
	CostIncurred float64       `json:"cost_incurred"`
	Success      bool          `json:"success"`
	ErrorReason  FailureReason `json:"error_reason,omitempty"`
}

// Completion is the vendor-neutral output of a chat completion call.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// ChatCompleter is the adapter interface each vendor client implements.
type ChatCompleter interface {
	Complete(ctx context.Context, model, system, prompt string, maxTokens int) (*Completion, error)
}

// Invoker invokes one named provider with a uniform request. The error
// return is reserved for configuration errors; remote failures are carried
// on the result.
type Invoker interface {
	Invoke(ctx context.Context, name string, req GenerationRequest) (GenerationResult, error)
}

// Client implements Invoker over the registry and a set of vendor adapters.
type Client struct {
	registry *Registry
	vendors  map[string]ChatCompleter
	limiters map[string]*rate.Limiter
	calc     *cost.Calculator
	timeout  time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-invocation timeout. Vendor call hangs are the
// dominant failure mode; the default is 90s.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a provider client. Vendors maps vendor identifiers
// (VendorAnthropic, VendorOpenAI, VendorGroq) to their adapters.
func NewClient(registry *Registry, vendors map[string]ChatCompleter, calc *cost.Calculator, opts ...ClientOption) *Client {
	c := &Client{
		registry: registry,
		vendors:  vendors,
		limiters: make(map[string]*rate.Limiter),
		calc:     calc,
		timeout:  90 * time.Second,
	}
	for _, d := range registry.descriptors {
		if d.RatePerSecond > 0 {
			burst := d.Burst
			if burst < 1 {
				burst = 1
			}
			c.limiters[d.Name] = rate.NewLimiter(rate.Limit(d.RatePerSecond), burst)
		}
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Invoke calls the named provider. Unknown provider names and unmapped
// vendors fail loudly; every remote failure is normalized onto the result.
func (c *Client) Invoke(ctx context.Context, name string, req GenerationRequest) (GenerationResult, error) {
	desc, ok := c.registry.Get(name)
	if !ok {
		return GenerationResult{}, eris.Wrap(ErrUnknownProvider, name)
	}
	vendor, ok := c.vendors[desc.Vendor]
	if !ok {
		return GenerationResult{}, eris.Wrap(ErrUnknownVendor, desc.Vendor)
	}

	if lim := c.limiters[name]; lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return GenerationResult{Success: false, ErrorReason: ClassifyFailure(err)}, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	comp, err := vendor.Complete(callCtx, desc.Model, req.SystemMessage, req.Prompt, req.MaxTokens)
	if err != nil {
		reason := ClassifyFailure(err)
		zap.L().Warn("provider call failed",
			zap.String("provider", name),
			zap.String("model", desc.Model),
			zap.String("reason", string(reason)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return GenerationResult{Success: false, ErrorReason: reason}, nil
	}

	tokens := comp.InputTokens + comp.OutputTokens
	usd, priced := c.calc.Completion(desc.Model, comp.InputTokens, comp.OutputTokens)
	if !priced {
		usd = desc.CostPer1KTokens * float64(tokens) / 1000
	}

	zap.L().Info("provider call complete",
		zap.String("provider", name),
		zap.String("model", desc.Model),
		zap.Int("input_tokens", comp.InputTokens),
		zap.Int("output_tokens", comp.OutputTokens),
		zap.Float64("cost_usd", usd),
		zap.Duration("elapsed", time.Since(start)),
	)

	return GenerationResult{
		Content:      comp.Text,
		ProviderUsed: name,
		TokensUsed:   tokens,
		CostIncurred: usd,
		Success:      true,
	}, nil
}
