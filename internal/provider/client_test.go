package provider

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciados/campaign-engine/internal/cost"
	"github.com/sciados/campaign-engine/internal/model"
)

// fakeCompleter returns a canned completion or error and records calls.
type fakeCompleter struct {
	completion *Completion
	err        error
	calls      int
	lastModel  string
	delay      time.Duration
}

func (f *fakeCompleter) Complete(ctx context.Context, model, system, prompt string, maxTokens int) (*Completion, error) {
	f.calls++
	f.lastModel = model
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}

func clientFixture(t *testing.T, vendors map[string]ChatCompleter, opts ...ClientOption) *Client {
	t.Helper()
	reg, err := NewRegistry([]Descriptor{
		{Name: "fast", Vendor: VendorGroq, Model: "small-model", CostPer1KTokens: 0.001, PriorityRank: 1, Capabilities: []string{CapabilityTextGeneration, CapabilityFast}},
		{Name: "smart", Vendor: VendorAnthropic, Model: "big-model", CostPer1KTokens: 0.010, PriorityRank: 2, Capabilities: []string{CapabilityTextGeneration, CapabilityReasoning}},
	})
	require.NoError(t, err)
	calc := cost.NewCalculator(cost.Rates{"small-model": {Input: 1.00, Output: 2.00}})
	return NewClient(reg, vendors, calc, opts...)
}

func TestInvoke_Success(t *testing.T) {
	t.Parallel()
	fake := &fakeCompleter{completion: &Completion{Text: "hello", InputTokens: 1000, OutputTokens: 500}}
	c := clientFixture(t, map[string]ChatCompleter{VendorGroq: fake})

	res, err := c.Invoke(context.Background(), "fast", GenerationRequest{
		Prompt:     "say hello",
		MaxTokens:  100,
		Complexity: model.ComplexitySimple,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "fast", res.ProviderUsed)
	assert.Equal(t, "hello", res.Content)
	assert.Equal(t, 1500, res.TokensUsed)
	// Priced from the rates table: 1000/1e6*1.00 + 500/1e6*2.00.
	assert.InDelta(t, 0.002, res.CostIncurred, 0.000001)
	assert.Equal(t, "small-model", fake.lastModel)
}

func TestInvoke_FallbackToBlendedRate(t *testing.T) {
	t.Parallel()
	fake := &fakeCompleter{completion: &Completion{Text: "x", InputTokens: 600, OutputTokens: 400}}
	c := clientFixture(t, map[string]ChatCompleter{VendorAnthropic: fake})

	res, err := c.Invoke(context.Background(), "smart", GenerationRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	// big-model has no per-token rates; 1000 tokens at 0.010/1K.
	assert.InDelta(t, 0.010, res.CostIncurred, 0.000001)
}

func TestInvoke_RemoteFailureNormalized(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		reason FailureReason
	}{
		{"invalid model", eris.New("groq: unexpected status 404: model_not_found"), FailureInvalidModel},
		{"rate limited", eris.New("groq: unexpected status 429: rate limit reached"), FailureRateLimited},
		{"timeout", context.DeadlineExceeded, FailureTimeout},
		{"other", eris.New("something odd"), FailureUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakeCompleter{err: tt.err}
			c := clientFixture(t, map[string]ChatCompleter{VendorGroq: fake})

			res, err := c.Invoke(context.Background(), "fast", GenerationRequest{Prompt: "p"})
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, tt.reason, res.ErrorReason)
			assert.Empty(t, res.ProviderUsed)
			assert.Zero(t, res.CostIncurred)
		})
	}
}

func TestInvoke_UnknownProviderFailsLoudly(t *testing.T) {
	t.Parallel()
	c := clientFixture(t, map[string]ChatCompleter{})
	_, err := c.Invoke(context.Background(), "nope", GenerationRequest{Prompt: "p"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownProvider))
}

func TestInvoke_UnmappedVendorFailsLoudly(t *testing.T) {
	t.Parallel()
	c := clientFixture(t, map[string]ChatCompleter{VendorGroq: &fakeCompleter{}})
	_, err := c.Invoke(context.Background(), "smart", GenerationRequest{Prompt: "p"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownVendor))
}

func TestInvoke_TimeoutBecomesFailure(t *testing.T) {
	t.Parallel()
	fake := &fakeCompleter{delay: 200 * time.Millisecond, completion: &Completion{Text: "late"}}
	c := clientFixture(t, map[string]ChatCompleter{VendorGroq: fake}, WithTimeout(10*time.Millisecond))

	res, err := c.Invoke(context.Background(), "fast", GenerationRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, FailureTimeout, res.ErrorReason)
}

func TestClassifyFailure(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want FailureReason
	}{
		{"nil", nil, FailureNone},
		{"decommissioned model", eris.New("the model has been decommissioned"), FailureInvalidModel},
		{"deprecated model", eris.New("openai: chat completion: model has been deprecated"), FailureInvalidModel},
		{"429 in message", eris.New("unexpected status 429: too many requests"), FailureRateLimited},
		{"timeout text", eris.New("net/http: request canceled (Client.Timeout exceeded)"), FailureTimeout},
		{"unknown", eris.New("weird vendor hiccup"), FailureUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyFailure(tt.err))
		})
	}
}
